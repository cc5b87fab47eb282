package domain

import "time"

// PostAction names a mutation recorded in the audit trail.
type PostAction string

const (
	PostCreated PostAction = "created"
	PostUpdated PostAction = "updated"
	PostDeleted PostAction = "deleted"
)

// PostEvent records a single post mutation.
type PostEvent struct {
	PostID   string
	AuthorID string
	Action   PostAction
	At       time.Time
}
