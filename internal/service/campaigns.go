package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/octobees/outreach-campaigns/api/internal/dto"
	"github.com/octobees/outreach-campaigns/api/internal/entity"
	"github.com/octobees/outreach-campaigns/api/internal/repository"
)

// CampaignsService implements campaign CRUD on top of the repositories.
type CampaignsService struct {
	campaigns repository.CampaignsRepository
	accounts  repository.AccountsRepository
}

// NewCampaignsService creates a new instance of CampaignsService.
func NewCampaignsService(campaigns repository.CampaignsRepository, accounts repository.AccountsRepository) *CampaignsService {
	return &CampaignsService{campaigns: campaigns, accounts: accounts}
}

// Create validates the request and stores a new campaign.
func (s *CampaignsService) Create(ctx context.Context, req dto.CreateCampaignRequest) (*entity.CampaignDetails, error) {
	status := entity.CampaignActive
	if raw := strings.TrimSpace(req.Status); raw != "" {
		status = entity.CampaignStatus(raw)
		if status != entity.CampaignActive && status != entity.CampaignInactive {
			return nil, ValidationError{Message: "Status must be either Active or Inactive"}
		}
	}

	accountIDs, err := parseAccountIDs(req.AccountIDs)
	if err != nil {
		return nil, err
	}

	campaign := &entity.Campaign{
		Name:        req.Name,
		Description: req.Description,
		Status:      status,
		Leads:       req.Leads,
		AccountIDs:  accountIDs,
	}
	if err := validateCampaign(campaign); err != nil {
		return nil, err
	}

	created, err := s.campaigns.Create(ctx, campaign)
	if err != nil {
		return nil, fmt.Errorf("create campaign: %w", err)
	}
	return s.withAccounts(ctx, created)
}

// GetByID returns one campaign with its accounts resolved.
func (s *CampaignsService) GetByID(ctx context.Context, rawID string, opts repository.ReadOptions) (*entity.CampaignDetails, error) {
	id, err := parseCampaignID(rawID)
	if err != nil {
		return nil, err
	}

	campaign, err := s.campaigns.FindByID(ctx, id, opts)
	if err != nil {
		return nil, err
	}
	return s.withAccounts(ctx, campaign)
}

// List returns campaigns newest first. The result is never nil.
func (s *CampaignsService) List(ctx context.Context, opts repository.ReadOptions) ([]entity.CampaignDetails, error) {
	campaigns, err := s.campaigns.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}

	details := make([]entity.CampaignDetails, 0, len(campaigns))
	if len(campaigns) == 0 {
		return details, nil
	}

	var ids []uuid.UUID
	for _, campaign := range campaigns {
		ids = append(ids, campaign.AccountIDs...)
	}
	byID, err := s.lookupAccounts(ctx, ids)
	if err != nil {
		return nil, err
	}

	for _, campaign := range campaigns {
		details = append(details, entity.CampaignDetails{
			Campaign: campaign,
			Accounts: pickAccounts(campaign.AccountIDs, byID),
		})
	}
	return details, nil
}

// Update applies a partial patch to a campaign that has not been deleted.
func (s *CampaignsService) Update(ctx context.Context, rawID string, req dto.UpdateCampaignRequest) (*entity.CampaignDetails, error) {
	id, err := parseCampaignID(rawID)
	if err != nil {
		return nil, err
	}

	var accountIDs []uuid.UUID
	if req.AccountIDs != nil {
		accountIDs, err = parseAccountIDs(*req.AccountIDs)
		if err != nil {
			return nil, err
		}
	}

	campaign, err := s.campaigns.FindByID(ctx, id, repository.ReadOptions{})
	if err != nil {
		return nil, err
	}
	if req.Empty() {
		return s.withAccounts(ctx, campaign)
	}

	if req.Name != nil {
		campaign.Name = *req.Name
	}
	if req.Description != nil {
		campaign.Description = *req.Description
	}
	if req.Status != nil {
		campaign.Status = entity.CampaignStatus(strings.TrimSpace(*req.Status))
	}
	if req.Leads != nil {
		campaign.Leads = *req.Leads
	}
	if req.AccountIDs != nil {
		campaign.AccountIDs = accountIDs
	}

	if err := validateCampaign(campaign); err != nil {
		return nil, err
	}

	updated, err := s.campaigns.Update(ctx, campaign)
	if err != nil {
		return nil, err
	}
	return s.withAccounts(ctx, updated)
}

// Delete soft deletes a campaign. Deleting twice reports the campaign as missing.
func (s *CampaignsService) Delete(ctx context.Context, rawID string) (*entity.Campaign, error) {
	id, err := parseCampaignID(rawID)
	if err != nil {
		return nil, err
	}
	return s.campaigns.SoftDelete(ctx, id)
}

func (s *CampaignsService) withAccounts(ctx context.Context, campaign *entity.Campaign) (*entity.CampaignDetails, error) {
	byID, err := s.lookupAccounts(ctx, campaign.AccountIDs)
	if err != nil {
		return nil, err
	}
	return &entity.CampaignDetails{
		Campaign: *campaign,
		Accounts: pickAccounts(campaign.AccountIDs, byID),
	}, nil
}

func (s *CampaignsService) lookupAccounts(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]entity.Account, error) {
	byID := make(map[uuid.UUID]entity.Account)
	if len(ids) == 0 || s.accounts == nil {
		return byID, nil
	}

	accounts, err := s.accounts.FindByIDs(ctx, dedupeIDs(ids))
	if err != nil {
		return nil, fmt.Errorf("resolve campaign accounts: %w", err)
	}
	for _, account := range accounts {
		byID[account.ID] = account
	}
	return byID, nil
}

// pickAccounts keeps the campaign's ordering and silently drops references to
// accounts that no longer exist.
func pickAccounts(ids []uuid.UUID, byID map[uuid.UUID]entity.Account) []entity.Account {
	accounts := make([]entity.Account, 0, len(ids))
	for _, id := range ids {
		if account, ok := byID[id]; ok {
			accounts = append(accounts, account)
		}
	}
	return accounts
}

func validateCampaign(campaign *entity.Campaign) error {
	campaign.Name = strings.TrimSpace(campaign.Name)
	campaign.Description = strings.TrimSpace(campaign.Description)
	if campaign.Name == "" || campaign.Description == "" {
		return ValidationError{Message: msgNameDescriptionRequired}
	}
	if !campaign.Status.Valid() {
		return ValidationError{Message: "Status must be one of Active, Inactive or Deleted"}
	}

	leads, err := normalizeLeads(campaign.Leads)
	if err != nil {
		return err
	}
	campaign.Leads = leads

	if campaign.AccountIDs == nil {
		campaign.AccountIDs = []uuid.UUID{}
	}
	return nil
}

func parseCampaignID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, ValidationError{Message: msgInvalidCampaignID}
	}
	return id, nil
}

func parseAccountIDs(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, value := range raw {
		id, err := uuid.Parse(strings.TrimSpace(value))
		if err != nil {
			return nil, ValidationError{Message: msgInvalidAccountIDs}
		}
		ids = append(ids, id)
	}
	return dedupeIDs(ids), nil
}

func dedupeIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
