package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/octobees/outreach-campaigns/api/internal/entity"
)

// SQLiteAccountsRepository implements AccountsRepository on SQLite.
type SQLiteAccountsRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteAccountsRepository wires a SQLite backed repository.
func NewSQLiteAccountsRepository(db *sql.DB) *SQLiteAccountsRepository {
	return &SQLiteAccountsRepository{db: db, now: time.Now}
}

// Create inserts a new account row.
func (r *SQLiteAccountsRepository) Create(ctx context.Context, account *entity.Account) (*entity.Account, error) {
	if account == nil {
		return nil, fmt.Errorf("account payload is nil")
	}

	id := uuid.New()
	now := formatSQLiteTime(r.now())
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO accounts (id, first_name, last_name, linkedin_url, current_job_title, current_company, location, summary, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id.String(), account.FirstName, account.LastName, account.LinkedInURL,
		account.CurrentJobTitle, account.CurrentCompany, account.Location, account.Summary, now, now,
	)
	if err != nil {
		if isSQLiteUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %s", ErrAccountDuplicate, account.LinkedInURL)
		}
		return nil, fmt.Errorf("insert account: %w", err)
	}

	return r.FindByID(ctx, id)
}

// FindByID retrieves an account by identifier.
func (r *SQLiteAccountsRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	account, err := scanSQLiteAccount(r.db.QueryRowContext(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = ?`, id.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("query account by id: %w", err)
	}
	return account, nil
}

// FindByIDs returns the accounts matching ids. Unknown ids are skipped.
func (r *SQLiteAccountsRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Account, error) {
	if len(ids) == 0 {
		return []entity.Account{}, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = id.String()
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id IN (` + strings.Join(placeholders, ", ") + `)`
	return r.query(ctx, query, args...)
}

// List returns all accounts ordered by creation date (desc).
func (r *SQLiteAccountsRepository) List(ctx context.Context) ([]entity.Account, error) {
	return r.query(ctx, `SELECT `+accountColumns+` FROM accounts ORDER BY created_at DESC, rowid DESC`)
}

// BulkUpsert inserts or refreshes accounts keyed by linkedin_url in one transaction.
func (r *SQLiteAccountsRepository) BulkUpsert(ctx context.Context, accounts []entity.Account) (BulkUpsertResult, error) {
	var result BulkUpsertResult
	if len(accounts) == 0 {
		return result, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return result, fmt.Errorf("start bulk upsert tx: %w", err)
	}
	defer tx.Rollback()

	for _, account := range accounts {
		now := formatSQLiteTime(r.now())

		var existing string
		err := tx.QueryRowContext(ctx, `SELECT id FROM accounts WHERE linkedin_url = ?`, account.LinkedInURL).Scan(&existing)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			_, err = tx.ExecContext(ctx, `
                INSERT INTO accounts (id, first_name, last_name, linkedin_url, current_job_title, current_company, location, summary, created_at, updated_at)
                VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				uuid.NewString(), account.FirstName, account.LastName, account.LinkedInURL,
				account.CurrentJobTitle, account.CurrentCompany, account.Location, account.Summary, now, now,
			)
			result.Inserted++
		case err == nil:
			_, err = tx.ExecContext(ctx, `
                UPDATE accounts
                SET first_name = ?, last_name = ?, current_job_title = ?, current_company = ?, location = ?, summary = ?, updated_at = ?
                WHERE id = ?`,
				account.FirstName, account.LastName, account.CurrentJobTitle, account.CurrentCompany,
				account.Location, account.Summary, now, existing,
			)
			result.Updated++
		}
		if err != nil {
			return BulkUpsertResult{}, fmt.Errorf("bulk upsert account %q: %w", account.LinkedInURL, err)
		}
		result.Total++
	}

	if err := tx.Commit(); err != nil {
		return BulkUpsertResult{}, fmt.Errorf("commit bulk upsert tx: %w", err)
	}

	return result, nil
}

func (r *SQLiteAccountsRepository) query(ctx context.Context, query string, args ...any) ([]entity.Account, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query accounts: %w", err)
	}
	defer rows.Close()

	accounts := make([]entity.Account, 0)
	for rows.Next() {
		account, err := scanSQLiteAccount(rows)
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

func scanSQLiteAccount(row sqliteScanner) (*entity.Account, error) {
	var (
		account              entity.Account
		id                   string
		location, summary    sql.NullString
		createdAt, updatedAt string
	)
	if err := row.Scan(
		&id,
		&account.FirstName,
		&account.LastName,
		&account.LinkedInURL,
		&account.CurrentJobTitle,
		&account.CurrentCompany,
		&location,
		&summary,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}

	var err error
	if account.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("parse account id: %w", err)
	}
	account.Location = nullableString(location)
	account.Summary = nullableString(summary)
	if account.CreatedAt, err = parseSQLiteTime(createdAt); err != nil {
		return nil, err
	}
	if account.UpdatedAt, err = parseSQLiteTime(updatedAt); err != nil {
		return nil, err
	}
	return &account, nil
}
