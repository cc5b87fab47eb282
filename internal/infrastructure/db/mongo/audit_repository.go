package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/stefanramac/online-cv-verison2/internal/core/domain"
)

// AuditRepository implements ports.AuditRepository on the post_events collection.
type AuditRepository struct {
	col *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{col: db.Collection(collectionPostEvents)}
}

// InsertEvent appends a post mutation to the audit trail.
func (r *AuditRepository) InsertEvent(ctx context.Context, event *domain.PostEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, bson.M{
		"postId":      event.PostID,
		"authorId":    event.AuthorID,
		"action":      string(event.Action),
		"at":          event.At.UTC(),
		"processedAt": time.Now().UTC(),
	})
	return err
}
