package ports

import (
	"context"

	"github.com/stefanramac/online-cv-verison2/internal/core/domain"
)

// PostFilter narrows a post listing. The zero value lists every post.
type PostFilter struct {
	AuthorID string
}

// PostRepository defines persistence operations for blog posts. Listings are
// ordered by publish date, newest first.
type PostRepository interface {
	List(ctx context.Context, filter PostFilter) ([]*domain.Post, error)
	FindByID(ctx context.Context, id string) (*domain.Post, error)
	// Create inserts the post and returns its store-assigned ID.
	Create(ctx context.Context, post *domain.Post) (string, error)
	// Update replaces the mutable fields of the post matching both id and
	// authorID. Returns domain.ErrPostNotFound when nothing matched.
	Update(ctx context.Context, id, authorID string, content domain.PostContent) error
	// Delete removes the post matching both id and authorID. Returns
	// domain.ErrPostNotFound when nothing matched.
	Delete(ctx context.Context, id, authorID string) error
	// Categories returns the distinct set of categories across all posts.
	Categories(ctx context.Context) ([]string, error)
}

// AuditRepository persists post mutation events.
type AuditRepository interface {
	InsertEvent(ctx context.Context, event *domain.PostEvent) error
}

// AuditRecorder accepts post events for asynchronous persistence. Record must
// not block the caller.
type AuditRecorder interface {
	Record(event domain.PostEvent)
}

// IdempotencyStore remembers the result of a create request under a
// client-supplied key.
type IdempotencyStore interface {
	Lookup(ctx context.Context, scope, key string) (string, bool, error)
	Remember(ctx context.Context, scope, key, value string) error
}
