package entity

import (
	"time"

	"github.com/google/uuid"
)

// CampaignStatus enumerates the lifecycle states of a campaign.
type CampaignStatus string

const (
	CampaignActive   CampaignStatus = "Active"
	CampaignInactive CampaignStatus = "Inactive"
	CampaignDeleted  CampaignStatus = "Deleted"
)

// Valid reports whether the status is one of the known values.
func (s CampaignStatus) Valid() bool {
	switch s {
	case CampaignActive, CampaignInactive, CampaignDeleted:
		return true
	}
	return false
}

// Campaign is an outreach campaign targeting LinkedIn leads.
type Campaign struct {
	ID          uuid.UUID      `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Status      CampaignStatus `json:"status"`
	Leads       []string       `json:"leads"`
	AccountIDs  []uuid.UUID    `json:"accountIds"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// CampaignDetails is a campaign with its account references resolved.
type CampaignDetails struct {
	Campaign
	Accounts []Account `json:"accounts"`
}
