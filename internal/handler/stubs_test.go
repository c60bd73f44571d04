package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/octobees/outreach-campaigns/api/internal/entity"
	"github.com/octobees/outreach-campaigns/api/internal/llm"
	"github.com/octobees/outreach-campaigns/api/internal/repository"
)

type stubCampaignsRepository struct {
	create     func(ctx context.Context, campaign *entity.Campaign) (*entity.Campaign, error)
	findByID   func(ctx context.Context, id uuid.UUID, opts repository.ReadOptions) (*entity.Campaign, error)
	list       func(ctx context.Context, opts repository.ReadOptions) ([]entity.Campaign, error)
	update     func(ctx context.Context, campaign *entity.Campaign) (*entity.Campaign, error)
	softDelete func(ctx context.Context, id uuid.UUID) (*entity.Campaign, error)
}

func (s *stubCampaignsRepository) Create(ctx context.Context, campaign *entity.Campaign) (*entity.Campaign, error) {
	if s.create != nil {
		return s.create(ctx, campaign)
	}
	stored := *campaign
	stored.ID = uuid.New()
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	return &stored, nil
}

func (s *stubCampaignsRepository) FindByID(ctx context.Context, id uuid.UUID, opts repository.ReadOptions) (*entity.Campaign, error) {
	if s.findByID != nil {
		return s.findByID(ctx, id, opts)
	}
	return nil, repository.ErrCampaignNotFound
}

func (s *stubCampaignsRepository) List(ctx context.Context, opts repository.ReadOptions) ([]entity.Campaign, error) {
	if s.list != nil {
		return s.list(ctx, opts)
	}
	return nil, nil
}

func (s *stubCampaignsRepository) Update(ctx context.Context, campaign *entity.Campaign) (*entity.Campaign, error) {
	if s.update != nil {
		return s.update(ctx, campaign)
	}
	return campaign, nil
}

func (s *stubCampaignsRepository) SoftDelete(ctx context.Context, id uuid.UUID) (*entity.Campaign, error) {
	if s.softDelete != nil {
		return s.softDelete(ctx, id)
	}
	return nil, repository.ErrCampaignNotFound
}

type stubAccountsRepository struct {
	create   func(ctx context.Context, account *entity.Account) (*entity.Account, error)
	findByID func(ctx context.Context, id uuid.UUID) (*entity.Account, error)
	list     func(ctx context.Context) ([]entity.Account, error)
	bulk     func(ctx context.Context, accounts []entity.Account) (repository.BulkUpsertResult, error)
}

func (s *stubAccountsRepository) Create(ctx context.Context, account *entity.Account) (*entity.Account, error) {
	if s.create != nil {
		return s.create(ctx, account)
	}
	stored := *account
	stored.ID = uuid.New()
	return &stored, nil
}

func (s *stubAccountsRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	if s.findByID != nil {
		return s.findByID(ctx, id)
	}
	return nil, repository.ErrAccountNotFound
}

func (s *stubAccountsRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Account, error) {
	return []entity.Account{}, nil
}

func (s *stubAccountsRepository) List(ctx context.Context) ([]entity.Account, error) {
	if s.list != nil {
		return s.list(ctx)
	}
	return nil, nil
}

func (s *stubAccountsRepository) BulkUpsert(ctx context.Context, accounts []entity.Account) (repository.BulkUpsertResult, error) {
	if s.bulk != nil {
		return s.bulk(ctx, accounts)
	}
	return repository.BulkUpsertResult{Inserted: len(accounts), Total: len(accounts)}, nil
}

type stubLLMClient struct {
	complete func(ctx context.Context, req llm.Request) (*llm.Completion, error)
}

func (s *stubLLMClient) Complete(ctx context.Context, req llm.Request) (*llm.Completion, error) {
	if s.complete != nil {
		return s.complete(ctx, req)
	}
	return &llm.Completion{Segments: []string{"Hello there"}}, nil
}

func jsonRequest(method, target, body string) (*http.Request, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req, httptest.NewRecorder()
}
