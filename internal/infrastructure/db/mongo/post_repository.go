package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/stefanramac/online-cv-verison2/internal/core/domain"
	"github.com/stefanramac/online-cv-verison2/internal/core/ports"
)

// PostRepository implements ports.PostRepository on the posts collection.
type PostRepository struct {
	col *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{col: db.Collection(collectionPosts)}
}

type mongoPost struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Title        string             `bson:"title"`
	Summary      string             `bson:"summary"`
	ImageURL     string             `bson:"imageUrl"`
	MainCategory string             `bson:"mainCategory"`
	Categories   []string           `bson:"categories"`
	ReadingTime  int                `bson:"readingTime"`
	Link         string             `bson:"link"`
	PublishDate  time.Time          `bson:"publishDate"`
	AuthorID     primitive.ObjectID `bson:"authorId"`
}

func (mp *mongoPost) toDomain() *domain.Post {
	categories := mp.Categories
	if categories == nil {
		categories = []string{}
	}
	return &domain.Post{
		ID: mp.ID.Hex(),
		PostContent: domain.PostContent{
			Title:        mp.Title,
			Summary:      mp.Summary,
			ImageURL:     mp.ImageURL,
			MainCategory: mp.MainCategory,
			Categories:   categories,
			ReadingTime:  mp.ReadingTime,
			Link:         mp.Link,
		},
		PublishDate: mp.PublishDate.UTC(),
		AuthorID:    mp.AuthorID.Hex(),
	}
}

// contentSet is the $set document for the author-editable fields.
func contentSet(c domain.PostContent) bson.M {
	return bson.M{
		"title":        c.Title,
		"summary":      c.Summary,
		"imageUrl":     c.ImageURL,
		"mainCategory": c.MainCategory,
		"categories":   c.Categories,
		"readingTime":  c.ReadingTime,
		"link":         c.Link,
	}
}

// List returns posts newest first, optionally restricted to one author.
func (r *PostRepository) List(ctx context.Context, f ports.PostFilter) ([]*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if f.AuthorID != "" {
		oid, ok := objectID(f.AuthorID)
		if !ok {
			return []*domain.Post{}, nil
		}
		filter["authorId"] = oid
	}

	opts := options.Find().SetSort(bson.D{{Key: "publishDate", Value: -1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find posts: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoPost
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode posts: %w", err)
	}

	posts := make([]*domain.Post, 0, len(docs))
	for i := range docs {
		posts = append(posts, docs[i].toDomain())
	}
	return posts, nil
}

func (r *PostRepository) FindByID(ctx context.Context, id string) (*domain.Post, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrPostNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mp mongoPost
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	return mp.toDomain(), nil
}

func (r *PostRepository) Create(ctx context.Context, p *domain.Post) (string, error) {
	authorID, ok := objectID(p.AuthorID)
	if !ok {
		return "", fmt.Errorf("insert post: invalid author id %q", p.AuthorID)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, mongoPost{
		Title:        p.Title,
		Summary:      p.Summary,
		ImageURL:     p.ImageURL,
		MainCategory: p.MainCategory,
		Categories:   p.Categories,
		ReadingTime:  p.ReadingTime,
		Link:         p.Link,
		PublishDate:  p.PublishDate,
		AuthorID:     authorID,
	})
	if err != nil {
		return "", fmt.Errorf("insert post: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("insert post: unexpected id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

// Update sets the editable fields only where both the id and the author match,
// so ownership and mutation are a single atomic step.
func (r *PostRepository) Update(ctx context.Context, id, authorID string, c domain.PostContent) error {
	filter, ok := ownedFilter(id, authorID)
	if !ok {
		return domain.ErrPostNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, filter, bson.M{"$set": contentSet(c)})
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

func (r *PostRepository) Delete(ctx context.Context, id, authorID string) error {
	filter, ok := ownedFilter(id, authorID)
	if !ok {
		return domain.ErrPostNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

func (r *PostRepository) Categories(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	values, err := r.col.Distinct(ctx, "categories", bson.M{})
	if err != nil {
		return nil, fmt.Errorf("distinct categories: %w", err)
	}

	out := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func ownedFilter(id, authorID string) (bson.M, bool) {
	oid, ok := objectID(id)
	if !ok {
		return nil, false
	}
	author, ok := objectID(authorID)
	if !ok {
		return nil, false
	}
	return bson.M{"_id": oid, "authorId": author}, true
}
