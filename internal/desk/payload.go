package desk

// TicketPayload is the exact JSON body sent to the helpdesk create-ticket
// endpoint. Exactly one contact shape is populated per channel: the nested
// contact object (form with email), a flat contactId (form without email), or
// phone plus contactId (voicemail).
type TicketPayload struct {
	Subject      string   `json:"subject"`
	DepartmentID string   `json:"departmentId"`
	Description  string   `json:"description"`
	ContactID    string   `json:"contactId,omitempty"`
	Contact      *Contact `json:"contact,omitempty"`
	Phone        string   `json:"phone,omitempty"`
}

// Contact is the nested contact shape for form submissions with an email.
type Contact struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// CreateResult relays the downstream response to the caller verbatim.
type CreateResult struct {
	Status int
	Body   []byte
}

// errorResponse is the failure shape the helpdesk API returns.
type errorResponse struct {
	Message string `json:"message"`
}
