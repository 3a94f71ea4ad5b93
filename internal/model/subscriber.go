package model

import "time"

// Subscriber is a newsletter recipient. UnsubscribeToken is an opaque token
// used to build the per-subscriber unsubscribe URL appended to every campaign.
type Subscriber struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	UnsubscribeToken string    `json:"unsubscribe_token"`
	IsSubscribed     bool      `json:"is_subscribed"`
	CreatedAt        time.Time `json:"created_at"`
}
