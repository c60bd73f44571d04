package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/octobees/outreach-campaigns/api/internal/entity"
)

var (
	ErrCampaignNotFound = errors.New("campaign not found")
	ErrAccountNotFound  = errors.New("account not found")
	ErrAccountDuplicate = errors.New("account with this linkedin url already exists")
)

// ReadOptions tunes read queries. The zero value hides soft-deleted campaigns.
type ReadOptions struct {
	IncludeDeleted bool
}

// CampaignsRepository persists campaigns. Update and SoftDelete only ever match
// campaigns that are not deleted.
type CampaignsRepository interface {
	Create(ctx context.Context, campaign *entity.Campaign) (*entity.Campaign, error)
	FindByID(ctx context.Context, id uuid.UUID, opts ReadOptions) (*entity.Campaign, error)
	List(ctx context.Context, opts ReadOptions) ([]entity.Campaign, error)
	Update(ctx context.Context, campaign *entity.Campaign) (*entity.Campaign, error)
	SoftDelete(ctx context.Context, id uuid.UUID) (*entity.Campaign, error)
}

// AccountsRepository persists LinkedIn accounts.
type AccountsRepository interface {
	Create(ctx context.Context, account *entity.Account) (*entity.Account, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Account, error)
	List(ctx context.Context) ([]entity.Account, error)
	BulkUpsert(ctx context.Context, accounts []entity.Account) (BulkUpsertResult, error)
}

// BulkUpsertResult summarises the number of rows inserted or updated.
type BulkUpsertResult struct {
	Inserted int
	Updated  int
	Total    int
}

// Repositories bundles the repositories of one storage backend.
type Repositories struct {
	Campaigns CampaignsRepository
	Accounts  AccountsRepository
}

// notDeleted is the predicate every campaign read path is composed with.
const notDeleted = "status <> '" + string(entity.CampaignDeleted) + "'"

// campaignVisibility returns the WHERE fragment hiding soft-deleted campaigns
// unless the caller opted in to see them.
func campaignVisibility(opts ReadOptions) string {
	if opts.IncludeDeleted {
		return "1 = 1"
	}
	return notDeleted
}

// pgxPool is the subset of *pgxpool.Pool used by the repositories.
type pgxPool interface {
	QueryRow(ctx context.Context, query string, args ...any) pgx.Row
	Query(ctx context.Context, query string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error)
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

var _ pgxPool = (*pgxpool.Pool)(nil)

// NewPGXRepositories wires the PostgreSQL backed repositories.
func NewPGXRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Campaigns: NewPGXCampaignsRepository(pool),
		Accounts:  NewPGXAccountsRepository(pool),
	}
}

func nonNilStrings(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func nonNilIDs(values []uuid.UUID) []uuid.UUID {
	if values == nil {
		return []uuid.UUID{}
	}
	return values
}
