package domain

import "time"

// CareerApplication is a job application submitted through the public site.
// Resume holds the object-storage URL of the uploaded file.
type CareerApplication struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Resume      string    `json:"resume"`
	CoverLetter string    `json:"cover_letter,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
