package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"campaignhub/internal/interfaces"
	"campaignhub/internal/models"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) interfaces.UserRepository {
	return &userRepository{db: db}
}

// Create inserts the user and one agreement row per terms type in a single transaction.
func (r *userRepository) Create(ctx context.Context, user *models.User, termsTypes []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin signup: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO users (id, name, phone, email, role, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`
	err = tx.QueryRowContext(ctx, query, user.ID, user.Name, user.Phone, user.Email, user.Role, user.PasswordHash).
		Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return classify(err, nil)
	}

	for _, termsType := range termsTypes {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO terms_agreements (user_id, terms_type, agreed) VALUES ($1, $2, TRUE)`,
			user.ID, termsType,
		); err != nil {
			return fmt.Errorf("insert terms agreement %q: %w", termsType, err)
		}
	}

	return tx.Commit()
}

const userColumns = `id, name, phone, email, role, password_hash, created_at, updated_at`

func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *userRepository) getOne(ctx context.Context, query string, arg any) (*models.User, error) {
	var u models.User
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&u.ID, &u.Name, &u.Phone, &u.Email, &u.Role, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, interfaces.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}
