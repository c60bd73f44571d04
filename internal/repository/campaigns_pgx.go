package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/octobees/outreach-campaigns/api/internal/entity"
)

const campaignColumns = `id, name, description, status, leads, account_ids, created_at, updated_at`

// PGXCampaignsRepository implements CampaignsRepository using pgx.
type PGXCampaignsRepository struct {
	pool pgxPool
}

// NewPGXCampaignsRepository wires a pgx backed repository.
func NewPGXCampaignsRepository(pool *pgxpool.Pool) *PGXCampaignsRepository {
	return &PGXCampaignsRepository{pool: pool}
}

// Create inserts a campaign and returns the stored row.
func (r *PGXCampaignsRepository) Create(ctx context.Context, campaign *entity.Campaign) (*entity.Campaign, error) {
	if campaign == nil {
		return nil, fmt.Errorf("campaign payload is nil")
	}

	row := r.pool.QueryRow(ctx, `
        INSERT INTO campaigns (name, description, status, leads, account_ids)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING `+campaignColumns,
		campaign.Name,
		campaign.Description,
		string(campaign.Status),
		nonNilStrings(campaign.Leads),
		nonNilIDs(campaign.AccountIDs),
	)

	stored, err := scanCampaign(row)
	if err != nil {
		return nil, fmt.Errorf("insert campaign: %w", err)
	}
	return stored, nil
}

// FindByID fetches a campaign, hiding soft-deleted rows unless opts says otherwise.
func (r *PGXCampaignsRepository) FindByID(ctx context.Context, id uuid.UUID, opts ReadOptions) (*entity.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE id = $1 AND ` + campaignVisibility(opts)

	campaign, err := scanCampaign(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCampaignNotFound
		}
		return nil, fmt.Errorf("query campaign by id: %w", err)
	}
	return campaign, nil
}

// List returns campaigns ordered by creation date (desc).
func (r *PGXCampaignsRepository) List(ctx context.Context, opts ReadOptions) ([]entity.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE ` + campaignVisibility(opts) + ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	defer rows.Close()

	campaigns := make([]entity.Campaign, 0)
	for rows.Next() {
		campaign, err := scanCampaign(rows)
		if err != nil {
			return nil, fmt.Errorf("scan campaign row: %w", err)
		}
		campaigns = append(campaigns, *campaign)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate campaigns: %w", err)
	}
	return campaigns, nil
}

// Update overwrites the mutable fields of a campaign that is not deleted.
func (r *PGXCampaignsRepository) Update(ctx context.Context, campaign *entity.Campaign) (*entity.Campaign, error) {
	if campaign == nil {
		return nil, fmt.Errorf("campaign payload is nil")
	}

	row := r.pool.QueryRow(ctx, `
        UPDATE campaigns
        SET name = $1, description = $2, status = $3, leads = $4, account_ids = $5, updated_at = NOW()
        WHERE id = $6 AND `+notDeleted+`
        RETURNING `+campaignColumns,
		campaign.Name,
		campaign.Description,
		string(campaign.Status),
		nonNilStrings(campaign.Leads),
		nonNilIDs(campaign.AccountIDs),
		campaign.ID,
	)

	updated, err := scanCampaign(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCampaignNotFound
		}
		return nil, fmt.Errorf("update campaign: %w", err)
	}
	return updated, nil
}

// SoftDelete flips an active or inactive campaign to Deleted.
func (r *PGXCampaignsRepository) SoftDelete(ctx context.Context, id uuid.UUID) (*entity.Campaign, error) {
	row := r.pool.QueryRow(ctx, `
        UPDATE campaigns
        SET status = $1, updated_at = NOW()
        WHERE id = $2 AND `+notDeleted+`
        RETURNING `+campaignColumns,
		string(entity.CampaignDeleted),
		id,
	)

	deleted, err := scanCampaign(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCampaignNotFound
		}
		return nil, fmt.Errorf("soft delete campaign: %w", err)
	}
	return deleted, nil
}

func scanCampaign(row pgx.Row) (*entity.Campaign, error) {
	var (
		campaign entity.Campaign
		status   string
	)
	if err := row.Scan(
		&campaign.ID,
		&campaign.Name,
		&campaign.Description,
		&status,
		&campaign.Leads,
		&campaign.AccountIDs,
		&campaign.CreatedAt,
		&campaign.UpdatedAt,
	); err != nil {
		return nil, err
	}
	campaign.Status = entity.CampaignStatus(status)
	campaign.Leads = nonNilStrings(campaign.Leads)
	campaign.AccountIDs = nonNilIDs(campaign.AccountIDs)
	return &campaign, nil
}
