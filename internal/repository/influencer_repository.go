package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"campaignhub/internal/interfaces"
	"campaignhub/internal/models"
)

type influencerRepository struct {
	db *sql.DB
}

func NewInfluencerRepository(db *sql.DB) interfaces.InfluencerRepository {
	return &influencerRepository{db: db}
}

var influencerConstraints = map[string]error{
	"influencer_profiles_user_id_key": interfaces.ErrAlreadyExists,
}

func (r *influencerRepository) Create(ctx context.Context, p *models.InfluencerProfile) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin influencer profile: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO influencer_profiles (user_id, birth_date)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`, p.UserID, p.BirthDate).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return classify(err, influencerConstraints)
	}

	channelQuery := `
		INSERT INTO influencer_channels (influencer_id, platform, channel_name, channel_url, follower_count, verification_status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	for i := range p.Channels {
		ch := &p.Channels[i]
		ch.InfluencerID = p.ID
		if ch.VerificationStatus == "" {
			ch.VerificationStatus = models.VerificationPending
		}
		if err := tx.QueryRowContext(ctx, channelQuery,
			p.ID, ch.Platform, ch.ChannelName, ch.ChannelURL, ch.FollowerCount, ch.VerificationStatus,
		).Scan(&ch.ID); err != nil {
			return fmt.Errorf("insert channel %s: %w", ch.ChannelName, err)
		}
	}

	return tx.Commit()
}

func (r *influencerRepository) GetByUserID(ctx context.Context, userID string) (*models.InfluencerProfile, error) {
	var p models.InfluencerProfile
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, birth_date, created_at, updated_at
		FROM influencer_profiles
		WHERE user_id = $1
	`, userID).Scan(&p.ID, &p.UserID, &p.BirthDate, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, interfaces.ErrNotFound
		}
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, influencer_id, platform, channel_name, channel_url, follower_count, verification_status
		FROM influencer_channels
		WHERE influencer_id = $1
		ORDER BY id
	`, p.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	p.Channels = []models.InfluencerChannel{}
	for rows.Next() {
		var ch models.InfluencerChannel
		if err := rows.Scan(&ch.ID, &ch.InfluencerID, &ch.Platform, &ch.ChannelName, &ch.ChannelURL,
			&ch.FollowerCount, &ch.VerificationStatus); err != nil {
			return nil, err
		}
		p.Channels = append(p.Channels, ch)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *influencerRepository) IDByUserID(ctx context.Context, userID string) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `SELECT id FROM influencer_profiles WHERE user_id = $1`, userID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, interfaces.ErrNotFound
	}
	return id, err
}
