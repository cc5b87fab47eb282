package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/stefanramac/online-cv-verison2/internal/core/domain"
	"github.com/stefanramac/online-cv-verison2/internal/core/ports"
	"github.com/stefanramac/online-cv-verison2/internal/pkg/metrics"
)

const idempotencyScope = "posts"

type PostService struct {
	posts ports.PostRepository
	users ports.UserRepository
	audit ports.AuditRecorder
	idem  ports.IdempotencyStore
	log   zerolog.Logger
	now   func() time.Time
}

// NewPostService wires the post use cases. audit and idem may be nil, which
// disables the audit trail and idempotent creation respectively.
func NewPostService(
	posts ports.PostRepository,
	users ports.UserRepository,
	audit ports.AuditRecorder,
	idem ports.IdempotencyStore,
	log zerolog.Logger,
) *PostService {
	return &PostService{
		posts: posts,
		users: users,
		audit: audit,
		idem:  idem,
		log:   log,
		now:   time.Now,
	}
}

func (s *PostService) ListPosts(ctx context.Context) ([]*domain.Post, error) {
	return s.posts.List(ctx, ports.PostFilter{})
}

func (s *PostService) ListByAuthor(ctx context.Context, authorID string) ([]*domain.Post, error) {
	return s.posts.List(ctx, ports.PostFilter{AuthorID: authorID})
}

func (s *PostService) GetPost(ctx context.Context, id string) (*domain.Post, error) {
	return s.posts.FindByID(ctx, id)
}

func (s *PostService) Categories(ctx context.Context) ([]string, error) {
	return s.posts.Categories(ctx)
}

// CreatePost stores a new post. The publish date and author come from the
// server, never from the client. When an idempotency key was already used by
// the same author, the original post ID is returned and nothing is written.
func (s *PostService) CreatePost(ctx context.Context, in ports.CreatePostInput) (*ports.CreatePostResult, error) {
	content, err := toContent(in.PostInput)
	if err != nil {
		return nil, err
	}

	scope := idempotencyScope + ":" + in.AuthorID
	if in.IdempotencyKey != "" && s.idem != nil {
		id, found, err := s.idem.Lookup(ctx, scope, in.IdempotencyKey)
		if err != nil {
			s.log.Warn().Err(err).Str("idempotency_key", in.IdempotencyKey).Msg("idempotency lookup failed, creating anyway")
		} else if found {
			metrics.IdempotentReplaysTotal.Inc()
			s.log.Info().Str("idempotency_key", in.IdempotencyKey).Str("post_id", id).Msg("idempotent replay")
			return &ports.CreatePostResult{ID: id, Replayed: true}, nil
		}
	}

	if _, err := s.users.FindByID(ctx, in.AuthorID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrForbidden
		}
		return nil, err
	}

	post := &domain.Post{
		PostContent: content,
		PublishDate: s.now().UTC(),
		AuthorID:    in.AuthorID,
	}
	id, err := s.posts.Create(ctx, post)
	if err != nil {
		return nil, err
	}

	if in.IdempotencyKey != "" && s.idem != nil {
		if err := s.idem.Remember(ctx, scope, in.IdempotencyKey, id); err != nil {
			s.log.Warn().Err(err).Str("idempotency_key", in.IdempotencyKey).Msg("failed to store idempotency key")
		}
	}

	s.recorded(id, in.AuthorID, domain.PostCreated)
	return &ports.CreatePostResult{ID: id}, nil
}

// CheckOwnership reports whether callerID is the author of postID.
func (s *PostService) CheckOwnership(ctx context.Context, postID, callerID string) error {
	_, err := s.ownedPost(ctx, postID, callerID)
	return err
}

// UpdatePost replaces the mutable fields of a post owned by the caller.
func (s *PostService) UpdatePost(ctx context.Context, in ports.UpdatePostInput) error {
	post, err := s.ownedPost(ctx, in.PostID, in.CallerID)
	if err != nil {
		return err
	}

	content, err := toContent(in.PostInput)
	if err != nil {
		return err
	}

	// The write is conditional on the author as well, so a post deleted or
	// reassigned since the read above is never touched.
	if err := s.posts.Update(ctx, post.ID, in.CallerID, content); err != nil {
		return err
	}

	s.recorded(post.ID, in.CallerID, domain.PostUpdated)
	return nil
}

// DeletePost removes a post owned by the caller.
func (s *PostService) DeletePost(ctx context.Context, postID, callerID string) error {
	post, err := s.ownedPost(ctx, postID, callerID)
	if err != nil {
		return err
	}

	if err := s.posts.Delete(ctx, post.ID, callerID); err != nil {
		return err
	}

	s.recorded(post.ID, callerID, domain.PostDeleted)
	return nil
}

// ownedPost loads the authoritative post and checks the caller is its author.
func (s *PostService) ownedPost(ctx context.Context, postID, callerID string) (*domain.Post, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !post.OwnedBy(callerID) {
		metrics.OwnershipDeniedTotal.Inc()
		s.log.Warn().Str("post_id", postID).Str("caller_id", callerID).Msg("post mutation by non-author rejected")
		return nil, domain.ErrForbidden
	}
	return post, nil
}

func (s *PostService) recorded(postID, authorID string, action domain.PostAction) {
	metrics.PostMutationsTotal.WithLabelValues(string(action)).Inc()
	s.log.Info().Str("post_id", postID).Str("author_id", authorID).Str("action", string(action)).Msg("post mutated")

	if s.audit != nil {
		s.audit.Record(domain.PostEvent{
			PostID:   postID,
			AuthorID: authorID,
			Action:   action,
			At:       s.now().UTC(),
		})
	}
}

func toContent(in ports.PostInput) (domain.PostContent, error) {
	if strings.TrimSpace(in.Title) == "" {
		return domain.PostContent{}, domain.NewValidationError("title is required")
	}
	if in.ReadingTime < 1 {
		return domain.PostContent{}, domain.NewValidationError("readingTime must be a positive integer")
	}
	return domain.PostContent{
		Title:        in.Title,
		Summary:      in.Summary,
		ImageURL:     in.ImageURL,
		MainCategory: in.MainCategory,
		Categories:   domain.ParseCategories(in.Categories),
		ReadingTime:  in.ReadingTime,
		Link:         in.Link,
	}, nil
}
