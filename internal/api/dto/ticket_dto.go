package dto

// TicketSubmission is the inbound payload. Form and voicemail channels share
// subject/department; the remaining fields are channel-specific and optional.
type TicketSubmission struct {
	Subject      string `json:"subject"`
	DepartmentID string `json:"departmentId"`
	ContactID    string `json:"contactId"`

	// Form channel fields.
	Name        string `json:"name"`
	Email       string `json:"email"`
	Store       string `json:"store"`
	OrderNumber string `json:"orderNumber"`
	Details     string `json:"details"`

	// Voicemail channel fields.
	Phone         string `json:"phone"`
	RecordingURL  string `json:"recordingUrl"`
	Transcription string `json:"transcription"`
}

// AcceptedResponse is the fixed acknowledgement body for fire-and-forget mode.
type AcceptedResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// NewAcceptedResponse returns the acknowledgement sent before background
// submission starts.
func NewAcceptedResponse() AcceptedResponse {
	return AcceptedResponse{Status: "processing", Message: "Request received"}
}
