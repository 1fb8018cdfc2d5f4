package models

import "time"

// BlogPost represents an article stored in the blog_posts table.
type BlogPost struct {
	ID        string     `db:"id" json:"id"`
	AuthorID  string     `db:"author_id" json:"author_id"`
	Title     string     `db:"title" json:"title"`
	Slug      string     `db:"slug" json:"slug"`
	Published bool       `db:"published" json:"published"`
	PostedAt  *time.Time `db:"posted_at" json:"posted_at,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
}
