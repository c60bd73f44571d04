package dto

// CreateAccountRequest is the payload accepted by POST /accounts.
type CreateAccountRequest struct {
	FirstName       string  `json:"firstName"`
	LastName        string  `json:"lastName"`
	LinkedInURL     string  `json:"linkedinUrl"`
	CurrentJobTitle string  `json:"currentJobTitle"`
	CurrentCompany  string  `json:"currentCompany"`
	Location        *string `json:"location,omitempty"`
	Summary         *string `json:"summary,omitempty"`
}

// ImportSummary reports how many CSV rows were inserted, updated or skipped.
type ImportSummary struct {
	Inserted int `json:"inserted"`
	Updated  int `json:"updated"`
	Skipped  int `json:"skipped"`
	Total    int `json:"total"`
}
