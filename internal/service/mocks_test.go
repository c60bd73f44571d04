package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/octobees/outreach-campaigns/api/internal/entity"
	"github.com/octobees/outreach-campaigns/api/internal/llm"
	"github.com/octobees/outreach-campaigns/api/internal/repository"
)

type mockCampaignsRepository struct {
	create     func(ctx context.Context, campaign *entity.Campaign) (*entity.Campaign, error)
	findByID   func(ctx context.Context, id uuid.UUID, opts repository.ReadOptions) (*entity.Campaign, error)
	list       func(ctx context.Context, opts repository.ReadOptions) ([]entity.Campaign, error)
	update     func(ctx context.Context, campaign *entity.Campaign) (*entity.Campaign, error)
	softDelete func(ctx context.Context, id uuid.UUID) (*entity.Campaign, error)
}

func (m *mockCampaignsRepository) Create(ctx context.Context, campaign *entity.Campaign) (*entity.Campaign, error) {
	if m.create != nil {
		return m.create(ctx, campaign)
	}
	return nil, errors.New("create not implemented")
}

func (m *mockCampaignsRepository) FindByID(ctx context.Context, id uuid.UUID, opts repository.ReadOptions) (*entity.Campaign, error) {
	if m.findByID != nil {
		return m.findByID(ctx, id, opts)
	}
	return nil, errors.New("find not implemented")
}

func (m *mockCampaignsRepository) List(ctx context.Context, opts repository.ReadOptions) ([]entity.Campaign, error) {
	if m.list != nil {
		return m.list(ctx, opts)
	}
	return nil, errors.New("list not implemented")
}

func (m *mockCampaignsRepository) Update(ctx context.Context, campaign *entity.Campaign) (*entity.Campaign, error) {
	if m.update != nil {
		return m.update(ctx, campaign)
	}
	return nil, errors.New("update not implemented")
}

func (m *mockCampaignsRepository) SoftDelete(ctx context.Context, id uuid.UUID) (*entity.Campaign, error) {
	if m.softDelete != nil {
		return m.softDelete(ctx, id)
	}
	return nil, errors.New("delete not implemented")
}

type mockAccountsRepository struct {
	create    func(ctx context.Context, account *entity.Account) (*entity.Account, error)
	findByID  func(ctx context.Context, id uuid.UUID) (*entity.Account, error)
	findByIDs func(ctx context.Context, ids []uuid.UUID) ([]entity.Account, error)
	list      func(ctx context.Context) ([]entity.Account, error)
	bulk      func(ctx context.Context, accounts []entity.Account) (repository.BulkUpsertResult, error)
}

func (m *mockAccountsRepository) Create(ctx context.Context, account *entity.Account) (*entity.Account, error) {
	if m.create != nil {
		return m.create(ctx, account)
	}
	return nil, errors.New("create not implemented")
}

func (m *mockAccountsRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	if m.findByID != nil {
		return m.findByID(ctx, id)
	}
	return nil, errors.New("find not implemented")
}

func (m *mockAccountsRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Account, error) {
	if m.findByIDs != nil {
		return m.findByIDs(ctx, ids)
	}
	return nil, errors.New("find by ids not implemented")
}

func (m *mockAccountsRepository) List(ctx context.Context) ([]entity.Account, error) {
	if m.list != nil {
		return m.list(ctx)
	}
	return nil, errors.New("list not implemented")
}

func (m *mockAccountsRepository) BulkUpsert(ctx context.Context, accounts []entity.Account) (repository.BulkUpsertResult, error) {
	if m.bulk != nil {
		return m.bulk(ctx, accounts)
	}
	return repository.BulkUpsertResult{}, errors.New("bulk not implemented")
}

type mockLLMClient struct {
	complete func(ctx context.Context, req llm.Request) (*llm.Completion, error)
	calls    int
}

func (m *mockLLMClient) Complete(ctx context.Context, req llm.Request) (*llm.Completion, error) {
	m.calls++
	if m.complete != nil {
		return m.complete(ctx, req)
	}
	return nil, errors.New("complete not implemented")
}
