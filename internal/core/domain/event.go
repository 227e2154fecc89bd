package domain

import "time"

// Event is a site announcement with optional media galleries.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"event_title"`
	Date        string    `json:"event_date"`
	Time        string    `json:"time,omitempty"`
	Description string    `json:"description,omitempty"`
	Images      []string  `json:"images"`
	Videos      []string  `json:"videos"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
