package service

// ValidationError indicates that caller supplied input is missing or malformed.
type ValidationError struct {
	Message string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return e.Message
}

// CSVValidationError indicates that the provided CSV payload is invalid.
type CSVValidationError struct {
	Message string
}

// Error implements the error interface.
func (e CSVValidationError) Error() string {
	return e.Message
}

const (
	msgNameDescriptionRequired = "Name and description are required"
	msgInvalidAccountIDs       = "Invalid account IDs provided"
	msgInvalidCampaignID       = "Invalid campaign ID"
	msgInvalidAccountID        = "Invalid account ID"
)
