package entity

import (
	"time"

	"github.com/google/uuid"
)

// Account is a LinkedIn profile that campaigns can reference.
type Account struct {
	ID              uuid.UUID `json:"id"`
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	LinkedInURL     string    `json:"linkedinUrl"`
	CurrentJobTitle string    `json:"currentJobTitle"`
	CurrentCompany  string    `json:"currentCompany"`
	Location        *string   `json:"location,omitempty"`
	Summary         *string   `json:"summary,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// FullName joins first and last name.
func (a Account) FullName() string {
	switch {
	case a.FirstName == "":
		return a.LastName
	case a.LastName == "":
		return a.FirstName
	}
	return a.FirstName + " " + a.LastName
}
