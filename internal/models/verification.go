package models

import "time"

// PhoneVerification is one row per normalized phone number.
// Reissuing a code overwrites code/expiry/attempts in place; once
// Verified is set it is never cleared by this subsystem.
type PhoneVerification struct {
	PhoneNumber string    `json:"phone_number"`
	Code        string    `json:"-"`
	ExpiresAt   time.Time `json:"expires_at"`
	Attempts    int       `json:"attempts"`
	Verified    bool      `json:"verified"`
	VerifiedAt  time.Time `json:"verified_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
