package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/octobees/outreach-campaigns/api/internal/entity"
)

const accountColumns = `id, first_name, last_name, linkedin_url, current_job_title, current_company, location, summary, created_at, updated_at`

const accountUpsertSQL = `
        INSERT INTO accounts (first_name, last_name, linkedin_url, current_job_title, current_company, location, summary)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        ON CONFLICT (linkedin_url) DO UPDATE SET
            first_name = EXCLUDED.first_name,
            last_name = EXCLUDED.last_name,
            current_job_title = EXCLUDED.current_job_title,
            current_company = EXCLUDED.current_company,
            location = EXCLUDED.location,
            summary = EXCLUDED.summary,
            updated_at = NOW()
        RETURNING xmax = 0`

// PGXAccountsRepository implements AccountsRepository with pgx.
type PGXAccountsRepository struct {
	pool pgxPool
}

// NewPGXAccountsRepository instantiates an accounts repository.
func NewPGXAccountsRepository(pool *pgxpool.Pool) *PGXAccountsRepository {
	return &PGXAccountsRepository{pool: pool}
}

// Create inserts a new account row.
func (r *PGXAccountsRepository) Create(ctx context.Context, account *entity.Account) (*entity.Account, error) {
	if account == nil {
		return nil, fmt.Errorf("account payload is nil")
	}

	row := r.pool.QueryRow(ctx, `
        INSERT INTO accounts (first_name, last_name, linkedin_url, current_job_title, current_company, location, summary)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING `+accountColumns,
		account.FirstName,
		account.LastName,
		account.LinkedInURL,
		account.CurrentJobTitle,
		account.CurrentCompany,
		account.Location,
		account.Summary,
	)

	stored, err := scanAccount(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, fmt.Errorf("%w: %s", ErrAccountDuplicate, account.LinkedInURL)
		}
		return nil, fmt.Errorf("insert account: %w", err)
	}
	return stored, nil
}

// FindByID retrieves an account by identifier.
func (r *PGXAccountsRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	account, err := scanAccount(r.pool.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("query account by id: %w", err)
	}
	return account, nil
}

// FindByIDs returns the accounts matching ids. Unknown ids are skipped and no
// ordering is guaranteed.
func (r *PGXAccountsRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Account, error) {
	if len(ids) == 0 {
		return []entity.Account{}, nil
	}

	rows, err := r.pool.Query(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("query accounts by ids: %w", err)
	}
	return collectAccounts(rows)
}

// List returns all accounts ordered by creation date (desc).
func (r *PGXAccountsRepository) List(ctx context.Context) ([]entity.Account, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+accountColumns+` FROM accounts ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return collectAccounts(rows)
}

// BulkUpsert inserts or refreshes accounts keyed by linkedin_url in one transaction.
func (r *PGXAccountsRepository) BulkUpsert(ctx context.Context, accounts []entity.Account) (BulkUpsertResult, error) {
	var result BulkUpsertResult
	if len(accounts) == 0 {
		return result, nil
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return result, fmt.Errorf("start bulk upsert tx: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, account := range accounts {
		var inserted bool
		err := tx.QueryRow(ctx, accountUpsertSQL,
			account.FirstName,
			account.LastName,
			account.LinkedInURL,
			account.CurrentJobTitle,
			account.CurrentCompany,
			account.Location,
			account.Summary,
		).Scan(&inserted)
		if err != nil {
			return result, fmt.Errorf("bulk upsert account %q: %w", account.LinkedInURL, err)
		}

		if inserted {
			result.Inserted++
		} else {
			result.Updated++
		}
		result.Total++
	}

	if err := tx.Commit(ctx); err != nil {
		return result, fmt.Errorf("commit bulk upsert tx: %w", err)
	}

	return result, nil
}

func collectAccounts(rows pgx.Rows) ([]entity.Account, error) {
	defer rows.Close()

	accounts := make([]entity.Account, 0)
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan account row: %w", err)
		}
		accounts = append(accounts, *account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate accounts: %w", err)
	}
	return accounts, nil
}

func scanAccount(row pgx.Row) (*entity.Account, error) {
	var account entity.Account
	if err := row.Scan(
		&account.ID,
		&account.FirstName,
		&account.LastName,
		&account.LinkedInURL,
		&account.CurrentJobTitle,
		&account.CurrentCompany,
		&account.Location,
		&account.Summary,
		&account.CreatedAt,
		&account.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &account, nil
}
