package repository

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/octobees/outreach-campaigns/api/internal/entity"
)

var campaignID = uuid.MustParse("aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa")

func fillCampaign(status string) func(dest ...any) error {
	return func(dest ...any) error {
		created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
		*dest[0].(*uuid.UUID) = campaignID
		*dest[1].(*string) = "Q3 founders"
		*dest[2].(*string) = "Founders in fintech"
		*dest[3].(*string) = status
		*dest[4].(*[]string) = []string{"https://linkedin.com/in/jane"}
		*dest[5].(*[]uuid.UUID) = nil
		*dest[6].(*time.Time) = created
		*dest[7].(*time.Time) = created.Add(time.Minute)
		return nil
	}
}

func TestPGXCampaignsRepository_FindByID_AppliesNotDeletedPredicate(t *testing.T) {
	var captured string
	repo := &PGXCampaignsRepository{pool: &stubPool{
		queryRowFunc: func(ctx context.Context, query string, args ...any) pgx.Row {
			captured = query
			return &stubRow{scan: fillCampaign("Active")}
		},
	}}

	campaign, err := repo.FindByID(context.Background(), campaignID, ReadOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(captured, notDeleted) {
		t.Fatalf("expected not-deleted predicate in query, got %s", captured)
	}
	if campaign.Status != entity.CampaignActive || campaign.Name != "Q3 founders" {
		t.Fatalf("unexpected campaign: %+v", campaign)
	}
	if campaign.AccountIDs == nil {
		t.Fatalf("expected account ids normalised to empty slice")
	}

	if _, err := repo.FindByID(context.Background(), campaignID, ReadOptions{IncludeDeleted: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(captured, notDeleted) {
		t.Fatalf("expected predicate dropped when including deleted, got %s", captured)
	}

	repo.pool = &stubPool{queryRowFunc: noRows}
	if _, err := repo.FindByID(context.Background(), campaignID, ReadOptions{}); !errors.Is(err, ErrCampaignNotFound) {
		t.Fatalf("expected ErrCampaignNotFound, got %v", err)
	}
}

func TestPGXCampaignsRepository_Create(t *testing.T) {
	var args []any
	repo := &PGXCampaignsRepository{pool: &stubPool{
		queryRowFunc: func(ctx context.Context, query string, a ...any) pgx.Row {
			args = a
			return &stubRow{scan: fillCampaign("Active")}
		},
	}}

	_, err := repo.Create(context.Background(), &entity.Campaign{Name: "Q3 founders", Description: "d", Status: entity.CampaignActive})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if leads, ok := args[3].([]string); !ok || leads == nil {
		t.Fatalf("expected non-nil leads slice, got %#v", args[3])
	}
	if ids, ok := args[4].([]uuid.UUID); !ok || ids == nil {
		t.Fatalf("expected non-nil account ids slice, got %#v", args[4])
	}

	if _, err := repo.Create(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil campaign")
	}
}

func TestPGXCampaignsRepository_List(t *testing.T) {
	var captured string
	repo := &PGXCampaignsRepository{pool: &stubPool{
		queryFunc: func(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
			captured = query
			return &stubRows{scans: []func(dest ...any) error{fillCampaign("Active"), fillCampaign("Inactive")}}, nil
		},
	}}

	campaigns, err := repo.List(context.Background(), ReadOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(campaigns) != 2 || campaigns[1].Status != entity.CampaignInactive {
		t.Fatalf("unexpected campaigns: %+v", campaigns)
	}
	if !strings.Contains(captured, notDeleted) || !strings.Contains(captured, "ORDER BY created_at DESC") {
		t.Fatalf("unexpected list query: %s", captured)
	}

	repo.pool = &stubPool{
		queryFunc: func(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
			return &stubRows{err: errors.New("conn reset")}, nil
		},
	}
	if _, err := repo.List(context.Background(), ReadOptions{}); err == nil {
		t.Fatalf("expected iteration error")
	}
}

func TestPGXCampaignsRepository_UpdateAndSoftDelete_SkipDeletedRows(t *testing.T) {
	var queries []string
	repo := &PGXCampaignsRepository{pool: &stubPool{
		queryRowFunc: func(ctx context.Context, query string, args ...any) pgx.Row {
			queries = append(queries, query)
			return &stubRow{scan: func(dest ...any) error { return pgx.ErrNoRows }}
		},
	}}

	_, err := repo.Update(context.Background(), &entity.Campaign{ID: campaignID, Name: "n", Description: "d", Status: entity.CampaignActive})
	if !errors.Is(err, ErrCampaignNotFound) {
		t.Fatalf("expected ErrCampaignNotFound from update, got %v", err)
	}
	_, err = repo.SoftDelete(context.Background(), campaignID)
	if !errors.Is(err, ErrCampaignNotFound) {
		t.Fatalf("expected ErrCampaignNotFound from soft delete, got %v", err)
	}

	for _, q := range queries {
		if !strings.Contains(q, notDeleted) {
			t.Fatalf("expected mutation guarded by not-deleted predicate, got %s", q)
		}
		if strings.Contains(strings.ToUpper(q), "DELETE FROM") {
			t.Fatalf("soft delete must not remove rows: %s", q)
		}
	}
}

func TestPGXCampaignsRepository_SoftDelete(t *testing.T) {
	var status any
	repo := &PGXCampaignsRepository{pool: &stubPool{
		queryRowFunc: func(ctx context.Context, query string, args ...any) pgx.Row {
			status = args[0]
			return &stubRow{scan: fillCampaign("Deleted")}
		},
	}}

	campaign, err := repo.SoftDelete(context.Background(), campaignID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != "Deleted" || campaign.Status != entity.CampaignDeleted {
		t.Fatalf("expected Deleted status, got arg %v and campaign %+v", status, campaign)
	}
}

func TestCampaignVisibility(t *testing.T) {
	if got := campaignVisibility(ReadOptions{}); got != "status <> 'Deleted'" {
		t.Fatalf("unexpected default predicate: %s", got)
	}
	if got := campaignVisibility(ReadOptions{IncludeDeleted: true}); got != "1 = 1" {
		t.Fatalf("unexpected include-deleted predicate: %s", got)
	}
}
