package model

import "time"

// Campaign statuses. The lifecycle only moves forward, from draft through
// sending to sent.
// There is no partial-failure status; a campaign with per-subscriber failures
// still ends as sent.
const (
	CampaignStatusDraft   = "draft"
	CampaignStatusSending = "sending"
	CampaignStatusSent    = "sent"
)

// Campaign represents a single newsletter broadcast.
type Campaign struct {
	ID        string     `json:"id"`
	Slug      string     `json:"slug"`
	Subject   string     `json:"subject"`
	HTML      string     `json:"html"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	SentAt    *time.Time `json:"sent_at,omitempty"`
}

// SendResult is the tally of one campaign send run.
// SentCount + FailCount == Total always holds.
type SendResult struct {
	SentCount int `json:"sentCount"`
	FailCount int `json:"failCount"`
	Total     int `json:"total"`
}
