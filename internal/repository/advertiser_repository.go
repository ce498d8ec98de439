package repository

import (
	"context"
	"database/sql"
	"errors"

	"campaignhub/internal/interfaces"
	"campaignhub/internal/models"
)

type advertiserRepository struct {
	db *sql.DB
}

func NewAdvertiserRepository(db *sql.DB) interfaces.AdvertiserRepository {
	return &advertiserRepository{db: db}
}

var advertiserConstraints = map[string]error{
	"advertiser_profiles_user_id_key":                      interfaces.ErrAlreadyExists,
	"advertiser_profiles_business_registration_number_key": interfaces.ErrDuplicateBusinessNumber,
}

func (r *advertiserRepository) Create(ctx context.Context, p *models.AdvertiserProfile) error {
	query := `
		INSERT INTO advertiser_profiles (user_id, business_name, location, category, business_registration_number)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		p.UserID, p.BusinessName, p.Location, p.Category, p.BusinessRegistrationNumber,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	return classify(err, advertiserConstraints)
}

func (r *advertiserRepository) GetByUserID(ctx context.Context, userID string) (*models.AdvertiserProfile, error) {
	query := `
		SELECT id, user_id, business_name, location, category, business_registration_number, created_at, updated_at
		FROM advertiser_profiles
		WHERE user_id = $1
	`
	var p models.AdvertiserProfile
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&p.ID, &p.UserID, &p.BusinessName, &p.Location, &p.Category, &p.BusinessRegistrationNumber,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, interfaces.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *advertiserRepository) IDByUserID(ctx context.Context, userID string) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `SELECT id FROM advertiser_profiles WHERE user_id = $1`, userID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, interfaces.ErrNotFound
	}
	return id, err
}
