package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/octobees/outreach-campaigns/api/internal/dto"
	"github.com/octobees/outreach-campaigns/api/internal/entity"
	"github.com/octobees/outreach-campaigns/api/internal/repository"
)

const msgInvalidLinkedInURL = "Must be a valid LinkedIn URL"

// AccountsService exposes read/write operations for LinkedIn accounts.
type AccountsService struct {
	repo repository.AccountsRepository
}

// NewAccountsService creates a new instance of AccountsService.
func NewAccountsService(repo repository.AccountsRepository) *AccountsService {
	return &AccountsService{repo: repo}
}

// Create validates and stores a single account.
func (s *AccountsService) Create(ctx context.Context, req dto.CreateAccountRequest) (*entity.Account, error) {
	account := &entity.Account{
		FirstName:       strings.TrimSpace(req.FirstName),
		LastName:        strings.TrimSpace(req.LastName),
		CurrentJobTitle: strings.TrimSpace(req.CurrentJobTitle),
		CurrentCompany:  strings.TrimSpace(req.CurrentCompany),
		Location:        normalizeOptional(req.Location),
		Summary:         normalizeOptional(req.Summary),
	}
	if account.FirstName == "" || account.LastName == "" || account.CurrentJobTitle == "" || account.CurrentCompany == "" {
		return nil, ValidationError{Message: "firstName, lastName, currentJobTitle and currentCompany are required"}
	}

	linkedInURL, err := normalizeLinkedInURL(req.LinkedInURL)
	if err != nil {
		return nil, ValidationError{Message: msgInvalidLinkedInURL}
	}
	account.LinkedInURL = linkedInURL

	return s.repo.Create(ctx, account)
}

// Get returns one account by id.
func (s *AccountsService) Get(ctx context.Context, rawID string) (*entity.Account, error) {
	id, err := uuid.Parse(strings.TrimSpace(rawID))
	if err != nil {
		return nil, ValidationError{Message: msgInvalidAccountID}
	}
	return s.repo.FindByID(ctx, id)
}

// List returns every account. The result is never nil.
func (s *AccountsService) List(ctx context.Context) ([]entity.Account, error) {
	accounts, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	if accounts == nil {
		accounts = []entity.Account{}
	}
	return accounts, nil
}

// ImportCSV ingests accounts from a CSV reader. Rows missing a required value are
// skipped; an invalid LinkedIn URL rejects the whole file. Existing accounts are
// matched on their LinkedIn URL and updated.
func (s *AccountsService) ImportCSV(ctx context.Context, r io.Reader) (dto.ImportSummary, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return dto.ImportSummary{}, CSVValidationError{Message: "csv file is empty"}
		}
		return dto.ImportSummary{}, CSVValidationError{Message: fmt.Sprintf("read csv header: %v", err)}
	}

	indexMap, valErr := buildHeaderIndex(header)
	if valErr != nil {
		return dto.ImportSummary{}, valErr
	}

	var (
		records []entity.Account
		skipped int
		seen    = make(map[string]int)
		rowNum  = 1
	)

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		rowNum++
		if err != nil {
			return dto.ImportSummary{}, CSVValidationError{Message: fmt.Sprintf("malformed csv on row %d", rowNum)}
		}

		column := func(name string) string {
			idx, ok := indexMap[name]
			if !ok || idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}

		account := entity.Account{
			FirstName:       column("first_name"),
			LastName:        column("last_name"),
			CurrentJobTitle: column("current_job_title"),
			CurrentCompany:  column("current_company"),
			Location:        normalizeString(column("location")),
			Summary:         normalizeString(column("summary")),
		}
		rawURL := column("linkedin_url")
		if account.FirstName == "" || account.LastName == "" || rawURL == "" ||
			account.CurrentJobTitle == "" || account.CurrentCompany == "" {
			skipped++
			continue
		}

		linkedInURL, urlErr := normalizeLinkedInURL(rawURL)
		if urlErr != nil {
			return dto.ImportSummary{}, CSVValidationError{Message: fmt.Sprintf("invalid linkedin_url value on row %d", rowNum)}
		}
		account.LinkedInURL = linkedInURL

		// The last occurrence of a URL within one file wins.
		if idx, dup := seen[linkedInURL]; dup {
			records[idx] = account
			skipped++
			continue
		}
		seen[linkedInURL] = len(records)
		records = append(records, account)
	}

	if len(records) == 0 {
		return dto.ImportSummary{Skipped: skipped}, nil
	}

	result, err := s.repo.BulkUpsert(ctx, records)
	if err != nil {
		return dto.ImportSummary{}, fmt.Errorf("import accounts: %w", err)
	}

	return dto.ImportSummary{
		Inserted: result.Inserted,
		Updated:  result.Updated,
		Skipped:  skipped,
		Total:    result.Total,
	}, nil
}

var requiredCSVHeaders = []string{"first_name", "last_name", "linkedin_url", "current_job_title", "current_company"}

func buildHeaderIndex(header []string) (map[string]int, error) {
	index := make(map[string]int)
	for i, col := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(col, "\ufeff")))
		if _, exists := index[key]; !exists {
			index[key] = i
		}
	}

	missing := make([]string, 0)
	for _, required := range requiredCSVHeaders {
		if _, ok := index[required]; !ok {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, CSVValidationError{Message: fmt.Sprintf("missing required columns: %s", strings.Join(missing, ", "))}
	}
	return index, nil
}

func normalizeString(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}

func normalizeOptional(value *string) *string {
	if value == nil {
		return nil
	}
	return normalizeString(*value)
}
