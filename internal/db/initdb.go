package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/lib/pq"
)

// EnsureDatabase creates the target database through the maintenance
// "postgres" database when it does not exist yet.
func EnsureDatabase(ctx context.Context, connString string, logger log.Logger) error {
	name, err := databaseName(connString)
	if err != nil {
		return fmt.Errorf("parse connection string: %w", err)
	}
	rootConn, err := withDatabase(connString, "postgres")
	if err != nil {
		return fmt.Errorf("build maintenance connection string: %w", err)
	}

	root, err := sql.Open("postgres", rootConn)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer root.Close()

	var one int
	err = root.QueryRowContext(ctx, `SELECT 1 FROM pg_database WHERE datname = $1`, name).Scan(&one)
	switch {
	case err == nil:
		return nil
	case !errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("check database %q: %w", name, err)
	}

	level.Info(logger).Log("msg", "creating database", "name", name)
	if _, err := root.ExecContext(ctx, "CREATE DATABASE "+pq.QuoteIdentifier(name)); err != nil {
		return fmt.Errorf("create database %q: %w", name, err)
	}
	return nil
}

func isURL(connString string) bool {
	return strings.HasPrefix(connString, "postgres://") || strings.HasPrefix(connString, "postgresql://")
}

func databaseName(connString string) (string, error) {
	if isURL(connString) {
		u, err := url.Parse(connString)
		if err != nil {
			return "", err
		}
		if name := strings.TrimPrefix(u.Path, "/"); name != "" {
			return name, nil
		}
		return "", errors.New("connection URL has no database name")
	}
	for _, pair := range strings.Fields(connString) {
		if v, ok := strings.CutPrefix(pair, "dbname="); ok && v != "" {
			return v, nil
		}
	}
	return "", errors.New("connection string has no dbname")
}

func withDatabase(connString, name string) (string, error) {
	if isURL(connString) {
		u, err := url.Parse(connString)
		if err != nil {
			return "", err
		}
		u.Path = "/" + name
		return u.String(), nil
	}
	pairs := strings.Fields(connString)
	for i, pair := range pairs {
		if strings.HasPrefix(pair, "dbname=") {
			pairs[i] = "dbname=" + name
		}
	}
	return strings.Join(pairs, " "), nil
}
