package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tracknest/issuetracker/internal/core/domain"
)

const collectionComments = "comments"

type commentDoc struct {
	ID        string    `bson:"_id"`
	Content   string    `bson:"content"`
	AuthorID  string    `bson:"author_id"`
	IssueID   string    `bson:"issue_id"`
	CreatedAt time.Time `bson:"created_at"`
}

func toCommentDoc(c *domain.Comment) commentDoc {
	return commentDoc{
		ID:        c.ID.String(),
		Content:   c.Content,
		AuthorID:  c.AuthorID.String(),
		IssueID:   c.IssueID.String(),
		CreatedAt: c.CreatedAt,
	}
}

func (d commentDoc) toDomain() (domain.Comment, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return domain.Comment{}, fmt.Errorf("comment doc %q: %w", d.ID, err)
	}
	authorID, err := uuid.Parse(d.AuthorID)
	if err != nil {
		return domain.Comment{}, fmt.Errorf("comment doc %q author: %w", d.ID, err)
	}
	issueID, err := uuid.Parse(d.IssueID)
	if err != nil {
		return domain.Comment{}, fmt.Errorf("comment doc %q issue: %w", d.ID, err)
	}
	return domain.Comment{
		ID:        id,
		Content:   d.Content,
		AuthorID:  authorID,
		IssueID:   issueID,
		CreatedAt: d.CreatedAt,
	}, nil
}

type CommentRepository struct {
	col *mongo.Collection
}

func NewCommentRepository(db *mongo.Database) *CommentRepository {
	return &CommentRepository{col: db.Collection(collectionComments)}
}

func (r *CommentRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d commentDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	c, err := d.toDomain()
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CommentRepository) FindAllByIssueID(ctx context.Context, issueID uuid.UUID) ([]domain.Comment, error) {
	return r.findMany(ctx, bson.M{"issue_id": issueID.String()})
}

func (r *CommentRepository) FindAllByUserID(ctx context.Context, userID uuid.UUID) ([]domain.Comment, error) {
	return r.findMany(ctx, bson.M{"author_id": userID.String()})
}

func (r *CommentRepository) FindAll(ctx context.Context) ([]domain.Comment, error) {
	return r.findMany(ctx, bson.M{})
}

func (r *CommentRepository) findMany(ctx context.Context, filter bson.M) ([]domain.Comment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var comments []domain.Comment
	for cur.Next(ctx) {
		var d commentDoc
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		c, err := d.toDomain()
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, cur.Err()
}

// Save upserts the comment keyed on its id.
func (r *CommentRepository) Save(ctx context.Context, comment *domain.Comment) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toCommentDoc(comment)
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 && res.UpsertedCount == 0 {
		return domain.ErrNotModified
	}
	return nil
}

func (r *CommentRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// EnsureIndexes creates the issue and author lookup indexes.
func (r *CommentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "issue_id", Value: 1}}},
		{Keys: bson.D{{Key: "author_id", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
