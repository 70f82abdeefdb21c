package model

import "time"

// StatusReceived is the status assigned to every submission at creation.
// There are no further lifecycle transitions.
const StatusReceived = "received"

// ClientID identifies the source of a submission for rate limiting.
// It is derived from the request's source address by the transport layer;
// submissions whose source cannot be determined share ClientUnknown.
type ClientID string

// ClientUnknown is the sentinel bucket for requests without a resolvable
// source address. All such requests share a single rate-limit window.
const ClientUnknown ClientID = "unknown"

// ContactRequest is the raw contact form input before validation.
// It is never persisted; only sanitized fields are retained.
type ContactRequest struct {
	Email   string `json:"email"`
	Topic   string `json:"topic"`
	Message string `json:"message"`
}

// Submission is an accepted contact form submission.
type Submission struct {
	ID        int       `json:"id"`
	Email     string    `json:"email"`
	Topic     string    `json:"topic"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Status    string    `json:"status"`
	ClientID  ClientID  `json:"client_id"`
}
