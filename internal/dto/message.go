package dto

// PersonalizedMessageRequest carries the LinkedIn profile used to personalise a message.
type PersonalizedMessageRequest struct {
	Name     string `json:"name"`
	JobTitle string `json:"job_title"`
	Company  string `json:"company"`
	Location string `json:"location"`
	Summary  string `json:"summary"`
}

// PersonalizedMessageResponse wraps the generated outreach message.
type PersonalizedMessageResponse struct {
	Message string `json:"message"`
}
