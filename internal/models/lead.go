package models

import "time"

// Lead is a completed funnel submission. Reference is the public ID
// handed back to the visitor; Status tracks webhook delivery.
type Lead struct {
	ID            int       `json:"id"`
	Reference     string    `json:"reference"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	InsuranceType string    `json:"insurance_type"`
	Message       string    `json:"message"`
	Language      string    `json:"language"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

const (
	LeadStatusNew       = "new"
	LeadStatusForwarded = "forwarded"
	LeadStatusFailed    = "delivery_failed"
)
