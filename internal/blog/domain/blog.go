package domain

import "time"

type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

func (s Status) IsValid() bool {
	return s == StatusDraft || s == StatusPublished
}

// Blog is a single post. UserID is fixed at creation and never changes;
// UpdatedAt moves on every mutation and is never before CreatedAt.
type Blog struct {
	ID        string
	Title     string
	Content   string
	Tags      string
	Status    Status
	UserID    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BlogWithAuthor carries the owner's username for read endpoints.
type BlogWithAuthor struct {
	Blog
	Author string
}
