package dto

// CreateCampaignRequest is the payload accepted by POST /campaigns.
type CreateCampaignRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Status      string   `json:"status,omitempty"`
	Leads       []string `json:"leads,omitempty"`
	AccountIDs  []string `json:"accountIds,omitempty"`
}

// UpdateCampaignRequest is a partial update; nil fields are left untouched.
type UpdateCampaignRequest struct {
	Name        *string   `json:"name,omitempty"`
	Description *string   `json:"description,omitempty"`
	Status      *string   `json:"status,omitempty"`
	Leads       *[]string `json:"leads,omitempty"`
	AccountIDs  *[]string `json:"accountIds,omitempty"`
}

// Empty reports whether the patch carries no fields.
func (r UpdateCampaignRequest) Empty() bool {
	return r.Name == nil && r.Description == nil && r.Status == nil && r.Leads == nil && r.AccountIDs == nil
}
