package lead

import "time"

// StatusNew is the status assigned to every freshly captured lead. Status is
// a free-form tag operationally; "new", "contacted" and "closed" are the
// values the admin UI uses.
const StatusNew = "new"

// Lead is a contact-form submission.
type Lead struct {
	ID           int64     `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	Name         *string   `json:"name"`
	Phone        string    `json:"phone"`
	Car          *string   `json:"car"`
	Message      *string   `json:"message"`
	Page         *string   `json:"page"`
	UA           *string   `json:"ua"`
	Status       string    `json:"status"`
	InternalNote *string   `json:"internal_note"`
}

// LeadRef is the reduced projection returned by the admin listing.
type LeadRef struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Phone     string    `json:"phone"`
	Status    string    `json:"status"`
}

// CreateRequest carries a raw public submission before sanitization.
type CreateRequest struct {
	Name    string
	Phone   string
	Car     string
	Message string
	Page    string
	UA      string
}

// UpdateRequest describes a partial admin update. Nil fields keep the
// currently stored value.
type UpdateRequest struct {
	Status       *string
	InternalNote *string
}

// ListOptions filters the admin listing.
type ListOptions struct {
	Status string
	Query  string
	Limit  int
}
