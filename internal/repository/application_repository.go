package repository

import (
	"context"
	"database/sql"
	"errors"

	"campaignhub/internal/interfaces"
	"campaignhub/internal/models"
)

type applicationRepository struct {
	db *sql.DB
}

func NewApplicationRepository(db *sql.DB) interfaces.ApplicationRepository {
	return &applicationRepository{db: db}
}

var applicationConstraints = map[string]error{
	"applications_campaign_id_influencer_id_key": interfaces.ErrAlreadyExists,
}

// Create inserts a pending application only while the campaign is recruiting.
func (r *applicationRepository) Create(ctx context.Context, a *models.Application) error {
	query := `
		INSERT INTO applications (campaign_id, influencer_id, motivation, visit_date, status)
		SELECT $1::bigint, $2::bigint, $3::text, $4::date, 'pending'
		WHERE EXISTS (SELECT 1 FROM campaigns WHERE id = $1 AND status = 'recruiting')
		RETURNING id, status, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query, a.CampaignID, a.InfluencerID, a.Motivation, a.VisitDate).
		Scan(&a.ID, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return &interfaces.StatusConflictError{Resource: "campaign", Expected: string(models.CampaignStatusRecruiting)}
	}
	return classify(err, applicationConstraints)
}

func (r *applicationRepository) ListByInfluencer(ctx context.Context, influencerID int64, status models.ApplicationStatus) ([]models.Application, error) {
	query := `
		SELECT a.id, a.campaign_id, c.title, a.influencer_id, a.motivation, a.visit_date, a.status,
			a.created_at, a.updated_at
		FROM applications a
		JOIN campaigns c ON c.id = a.campaign_id
		WHERE a.influencer_id = $1`
	args := []any{influencerID}
	if status != "" {
		query += ` AND a.status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY a.created_at DESC, a.id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applications := []models.Application{}
	for rows.Next() {
		var a models.Application
		if err := rows.Scan(&a.ID, &a.CampaignID, &a.CampaignTitle, &a.InfluencerID, &a.Motivation,
			&a.VisitDate, &a.Status, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		applications = append(applications, a)
	}
	return applications, rows.Err()
}

// ListByCampaign includes the applicant's contact details for the campaign owner.
func (r *applicationRepository) ListByCampaign(ctx context.Context, campaignID int64) ([]models.ApplicationDetail, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT a.id, a.campaign_id, c.title, a.influencer_id, a.motivation, a.visit_date, a.status,
			a.created_at, a.updated_at, u.name, u.email, u.phone
		FROM applications a
		JOIN campaigns c ON c.id = a.campaign_id
		JOIN influencer_profiles ip ON ip.id = a.influencer_id
		JOIN users u ON u.id = ip.user_id
		WHERE a.campaign_id = $1
		ORDER BY a.created_at ASC, a.id ASC
	`, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applications := []models.ApplicationDetail{}
	for rows.Next() {
		var d models.ApplicationDetail
		if err := rows.Scan(&d.ID, &d.CampaignID, &d.CampaignTitle, &d.InfluencerID, &d.Motivation,
			&d.VisitDate, &d.Status, &d.CreatedAt, &d.UpdatedAt,
			&d.InfluencerName, &d.InfluencerEmail, &d.InfluencerPhone); err != nil {
			return nil, err
		}
		applications = append(applications, d)
	}
	return applications, rows.Err()
}

func (r *applicationRepository) GetByCampaignAndInfluencer(ctx context.Context, campaignID, influencerID int64) (*models.Application, error) {
	var a models.Application
	err := r.db.QueryRowContext(ctx, `
		SELECT id, campaign_id, influencer_id, motivation, visit_date, status, created_at, updated_at
		FROM applications
		WHERE campaign_id = $1 AND influencer_id = $2
	`, campaignID, influencerID).Scan(&a.ID, &a.CampaignID, &a.InfluencerID, &a.Motivation,
		&a.VisitDate, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, interfaces.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *applicationRepository) SelectedRecipients(ctx context.Context, campaignID int64) ([]models.Recipient, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT a.id, u.name, u.email
		FROM applications a
		JOIN influencer_profiles ip ON ip.id = a.influencer_id
		JOIN users u ON u.id = ip.user_id
		WHERE a.campaign_id = $1 AND a.status = 'selected'
		ORDER BY a.id
	`, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recipients []models.Recipient
	for rows.Next() {
		var rc models.Recipient
		if err := rows.Scan(&rc.ApplicationID, &rc.Name, &rc.Email); err != nil {
			return nil, err
		}
		recipients = append(recipients, rc)
	}
	return recipients, rows.Err()
}
