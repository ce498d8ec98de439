package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"campaignhub/internal/interfaces"
	"campaignhub/internal/models"
)

type campaignRepository struct {
	db *sql.DB
}

func NewCampaignRepository(db *sql.DB) interfaces.CampaignRepository {
	return &campaignRepository{db: db}
}

const campaignColumns = `
	c.id, c.advertiser_id, c.title, c.recruitment_start_date, c.recruitment_end_date,
	c.max_participants, c.benefits, c.store_info, c.mission, c.image_url, c.status,
	c.created_at, c.updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCampaign(row rowScanner, extra ...any) (*models.Campaign, error) {
	var (
		c        models.Campaign
		imageURL sql.NullString
	)
	dest := []any{
		&c.ID, &c.AdvertiserID, &c.Title, &c.RecruitmentStartDate, &c.RecruitmentEndDate,
		&c.MaxParticipants, &c.Benefits, &c.StoreInfo, &c.Mission, &imageURL, &c.Status,
		&c.CreatedAt, &c.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	if imageURL.Valid {
		c.ImageURL = &imageURL.String
	}
	return &c, nil
}

func (r *campaignRepository) Create(ctx context.Context, c *models.Campaign) error {
	if c.Status == "" {
		c.Status = models.CampaignStatusRecruiting
	}
	query := `
		INSERT INTO campaigns (
			advertiser_id, title, recruitment_start_date, recruitment_end_date,
			max_participants, benefits, store_info, mission, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		c.AdvertiserID, c.Title, c.RecruitmentStartDate, c.RecruitmentEndDate,
		c.MaxParticipants, c.Benefits, c.StoreInfo, c.Mission, c.Status,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	return classify(err, nil)
}

// GetByID returns the campaign together with its advertiser's business name.
func (r *campaignRepository) GetByID(ctx context.Context, id int64) (*models.Campaign, error) {
	query := `SELECT ` + campaignColumns + `, a.business_name
		FROM campaigns c
		JOIN advertiser_profiles a ON a.id = c.advertiser_id
		WHERE c.id = $1`

	var businessName string
	c, err := scanCampaign(r.db.QueryRowContext(ctx, query, id), &businessName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, interfaces.ErrNotFound
		}
		return nil, err
	}
	c.BusinessName = businessName
	return c, nil
}

func (r *campaignRepository) GetOwned(ctx context.Context, id, advertiserID int64) (*models.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns c WHERE c.id = $1 AND c.advertiser_id = $2`

	c, err := scanCampaign(r.db.QueryRowContext(ctx, query, id, advertiserID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, interfaces.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *campaignRepository) List(ctx context.Context, filter interfaces.CampaignFilter) ([]models.Campaign, error) {
	var (
		where []string
		args  []any
	)
	argPos := 1

	if filter.Status != "" {
		where = append(where, fmt.Sprintf("c.status = $%d", argPos))
		args = append(args, filter.Status)
		argPos++
	}
	if filter.AdvertiserID != 0 {
		where = append(where, fmt.Sprintf("c.advertiser_id = $%d", argPos))
		args = append(args, filter.AdvertiserID)
		argPos++
	}

	query := `SELECT ` + campaignColumns + ` FROM campaigns c`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY c.created_at DESC, c.id DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	campaigns := []models.Campaign{}
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, err
		}
		campaigns = append(campaigns, *c)
	}
	return campaigns, rows.Err()
}

func (r *campaignRepository) TransitionStatus(ctx context.Context, id int64, from, to models.CampaignStatus) error {
	if !from.CanTransitionTo(to) {
		return fmt.Errorf("campaign status cannot move from %s to %s", from, to)
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE campaigns SET status = $1, updated_at = NOW() WHERE id = $2 AND status = $3`,
		to, id, from,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return &interfaces.StatusConflictError{Resource: "campaign", Expected: string(from)}
	}
	return nil
}

func (r *campaignRepository) FinalizeSelection(ctx context.Context, campaignID, advertiserID int64, applicationIDs []int64) (*models.SelectionResult, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin selection: %w", err)
	}
	defer tx.Rollback()

	var status models.CampaignStatus
	err = tx.QueryRowContext(ctx,
		`SELECT status FROM campaigns WHERE id = $1 AND advertiser_id = $2 FOR UPDATE`,
		campaignID, advertiserID,
	).Scan(&status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("lock campaign: %w", err)
	}
	if status != models.CampaignStatusClosed {
		return nil, &interfaces.StatusConflictError{
			Resource: "campaign",
			Expected: string(models.CampaignStatusClosed),
			Current:  string(status),
		}
	}

	rows, err := tx.QueryContext(ctx, `
		UPDATE applications SET status = 'selected', updated_at = NOW()
		WHERE campaign_id = $1 AND id = ANY($2) AND status = 'pending'
		RETURNING id
	`, campaignID, pq.Array(applicationIDs))
	if err != nil {
		return nil, fmt.Errorf("select applications: %w", err)
	}
	result := &models.SelectionResult{CampaignID: campaignID, Selected: []int64{}}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("select applications: %w", err)
		}
		result.Selected = append(result.Selected, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("select applications: %w", err)
	}
	res, err := tx.ExecContext(ctx, `
		UPDATE applications SET status = 'rejected', updated_at = NOW()
		WHERE campaign_id = $1 AND status = 'pending'
	`, campaignID)
	if err != nil {
		return nil, fmt.Errorf("reject remaining applications: %w", err)
	}
	if result.Rejected, err = res.RowsAffected(); err != nil {
		return nil, err
	}

	res, err = tx.ExecContext(ctx,
		`UPDATE campaigns SET status = 'selected', updated_at = NOW() WHERE id = $1 AND status = 'closed'`,
		campaignID,
	)
	if err != nil {
		return nil, fmt.Errorf("mark campaign selected: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, err
	} else if n == 0 {
		return nil, &interfaces.StatusConflictError{Resource: "campaign", Expected: string(models.CampaignStatusClosed)}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit selection: %w", err)
	}
	return result, nil
}

func (r *campaignRepository) SetImageURL(ctx context.Context, id int64, imageURL string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE campaigns SET image_url = $1, updated_at = NOW() WHERE id = $2`,
		imageURL, id,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return interfaces.ErrNotFound
	}
	return nil
}
