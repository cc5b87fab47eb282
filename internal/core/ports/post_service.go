package ports

import (
	"context"

	"github.com/stefanramac/online-cv-verison2/internal/core/domain"
)

// PostInput is the client-editable part of a post as submitted by a form.
// Categories is a comma-separated list.
type PostInput struct {
	Title        string
	Summary      string
	ImageURL     string
	MainCategory string
	Categories   string
	ReadingTime  int
	Link         string
}

// CreatePostInput carries a new post and the verified author.
type CreatePostInput struct {
	PostInput
	AuthorID       string
	IdempotencyKey string
}

// CreatePostResult is returned after creating a post.
type CreatePostResult struct {
	ID string
	// Replayed is true when the idempotency key matched an earlier creation.
	Replayed bool
}

// UpdatePostInput carries replacement content and the verified caller.
type UpdatePostInput struct {
	PostInput
	PostID   string
	CallerID string
}

// PostService defines the blog post use cases.
type PostService interface {
	ListPosts(ctx context.Context) ([]*domain.Post, error)
	ListByAuthor(ctx context.Context, authorID string) ([]*domain.Post, error)
	GetPost(ctx context.Context, id string) (*domain.Post, error)
	Categories(ctx context.Context) ([]string, error)
	CreatePost(ctx context.Context, input CreatePostInput) (*CreatePostResult, error)
	// CheckOwnership resolves the post and its author before any request body
	// is read. Returns domain.ErrPostNotFound or domain.ErrForbidden.
	CheckOwnership(ctx context.Context, postID, callerID string) error
	UpdatePost(ctx context.Context, input UpdatePostInput) error
	DeletePost(ctx context.Context, postID, callerID string) error
}
