package models

import "time"

type BlogPost struct {
	ID        int       `json:"id"`
	Category  string    `json:"category"`
	CoverURL  string    `json:"cover_url"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"created_at"`

	// Joined translation for the requested language. Posts without a
	// translation in that language are never returned.
	Language string `json:"language"`
	Slug     string `json:"slug"`
	Title    string `json:"title"`
	Excerpt  string `json:"excerpt"`
	Body     string `json:"body,omitempty"`
}

type PostTranslation struct {
	PostID   int    `json:"post_id"`
	Language string `json:"language"`
	Slug     string `json:"slug"`
	Title    string `json:"title"`
	Excerpt  string `json:"excerpt"`
	Body     string `json:"body"`
}
