package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/octobees/outreach-campaigns/api/internal/entity"
)

// SQLiteCampaignsRepository implements CampaignsRepository on SQLite.
type SQLiteCampaignsRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteCampaignsRepository wires a SQLite backed repository.
func NewSQLiteCampaignsRepository(db *sql.DB) *SQLiteCampaignsRepository {
	return &SQLiteCampaignsRepository{db: db, now: time.Now}
}

// Create inserts a campaign with a fresh id and timestamps.
func (r *SQLiteCampaignsRepository) Create(ctx context.Context, campaign *entity.Campaign) (*entity.Campaign, error) {
	if campaign == nil {
		return nil, fmt.Errorf("campaign payload is nil")
	}

	leads, err := encodeJSONList(nonNilStrings(campaign.Leads))
	if err != nil {
		return nil, fmt.Errorf("encode leads: %w", err)
	}
	accountIDs, err := encodeJSONList(nonNilIDs(campaign.AccountIDs))
	if err != nil {
		return nil, fmt.Errorf("encode account ids: %w", err)
	}

	id := uuid.New()
	now := formatSQLiteTime(r.now())
	_, err = r.db.ExecContext(ctx, `
        INSERT INTO campaigns (id, name, description, status, leads, account_ids, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id.String(), campaign.Name, campaign.Description, string(campaign.Status), leads, accountIDs, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert campaign: %w", err)
	}

	return r.FindByID(ctx, id, ReadOptions{IncludeDeleted: true})
}

// FindByID fetches a campaign, hiding soft-deleted rows unless opts says otherwise.
func (r *SQLiteCampaignsRepository) FindByID(ctx context.Context, id uuid.UUID, opts ReadOptions) (*entity.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE id = ? AND ` + campaignVisibility(opts)

	campaign, err := scanSQLiteCampaign(r.db.QueryRowContext(ctx, query, id.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCampaignNotFound
		}
		return nil, fmt.Errorf("query campaign by id: %w", err)
	}
	return campaign, nil
}

// List returns campaigns ordered by creation date (desc).
func (r *SQLiteCampaignsRepository) List(ctx context.Context, opts ReadOptions) ([]entity.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE ` + campaignVisibility(opts) + ` ORDER BY created_at DESC, rowid DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	defer rows.Close()

	campaigns := make([]entity.Campaign, 0)
	for rows.Next() {
		campaign, err := scanSQLiteCampaign(rows)
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
func (r *SQLiteCampaignsRepository) Update(ctx context.Context, campaign *entity.Campaign) (*entity.Campaign, error) {
	if campaign == nil {
		return nil, fmt.Errorf("campaign payload is nil")
	}

	leads, err := encodeJSONList(nonNilStrings(campaign.Leads))
	if err != nil {
		return nil, fmt.Errorf("encode leads: %w", err)
	}
	accountIDs, err := encodeJSONList(nonNilIDs(campaign.AccountIDs))
	if err != nil {
		return nil, fmt.Errorf("encode account ids: %w", err)
	}

	res, err := r.db.ExecContext(ctx, `
        UPDATE campaigns
        SET name = ?, description = ?, status = ?, leads = ?, account_ids = ?, updated_at = ?
        WHERE id = ? AND `+notDeleted,
		campaign.Name, campaign.Description, string(campaign.Status), leads, accountIDs,
		formatSQLiteTime(r.now()), campaign.ID.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("update campaign: %w", err)
	}
	if err := requireAffected(res, ErrCampaignNotFound); err != nil {
		return nil, err
	}

	return r.FindByID(ctx, campaign.ID, ReadOptions{IncludeDeleted: true})
}

// SoftDelete flips an active or inactive campaign to Deleted.
func (r *SQLiteCampaignsRepository) SoftDelete(ctx context.Context, id uuid.UUID) (*entity.Campaign, error) {
	res, err := r.db.ExecContext(ctx, `
        UPDATE campaigns SET status = ?, updated_at = ?
        WHERE id = ? AND `+notDeleted,
		string(entity.CampaignDeleted), formatSQLiteTime(r.now()), id.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("soft delete campaign: %w", err)
	}
	if err := requireAffected(res, ErrCampaignNotFound); err != nil {
		return nil, err
	}

	return r.FindByID(ctx, id, ReadOptions{IncludeDeleted: true})
}

func requireAffected(res sql.Result, notFound error) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return notFound
	}
	return nil
}

func scanSQLiteCampaign(row sqliteScanner) (*entity.Campaign, error) {
	var (
		campaign                    entity.Campaign
		id, status, leads, accounts string
		createdAt, updatedAt        string
	)
	if err := row.Scan(&id, &campaign.Name, &campaign.Description, &status, &leads, &accounts, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	if campaign.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("parse campaign id: %w", err)
	}
	campaign.Status = entity.CampaignStatus(status)
	if campaign.Leads, err = decodeStrings(leads); err != nil {
		return nil, err
	}
	if campaign.AccountIDs, err = decodeIDs(accounts); err != nil {
		return nil, err
	}
	if campaign.CreatedAt, err = parseSQLiteTime(createdAt); err != nil {
		return nil, err
	}
	if campaign.UpdatedAt, err = parseSQLiteTime(updatedAt); err != nil {
		return nil, err
	}
	return &campaign, nil
}
