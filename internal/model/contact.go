package model

import "time"

// ContactRequest is the contact form payload. Length rules apply to the
// trimmed values.
type ContactRequest struct {
	Name    string `json:"name" binding:"trimmed_min=2,max=100"`
	Email   string `json:"email" binding:"loose_email,max=254"`
	Subject string `json:"subject" binding:"trimmed_min=5,max=200"`
	Message string `json:"message" binding:"trimmed_min=10,max=5000"`
}

// ContactMessage is a stored contact form submission.
type ContactMessage struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Subject     string    `json:"subject"`
	Message     string    `json:"message"`
	Fingerprint string    `json:"fingerprint"`
	ClientIP    string    `json:"client_ip,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
