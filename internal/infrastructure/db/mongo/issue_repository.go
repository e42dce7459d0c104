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

const collectionIssues = "issues"

type issueDoc struct {
	ID       string `bson:"_id"`
	Title    string `bson:"title"`
	OwnerID  string `bson:"owner_id"`
	Deadline string `bson:"deadline"`
}

func toIssueDoc(i *domain.Issue) issueDoc {
	return issueDoc{
		ID:       i.ID.String(),
		Title:    i.Title,
		OwnerID:  i.OwnerID.String(),
		Deadline: i.Deadline,
	}
}

func (d issueDoc) toDomain() (domain.Issue, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return domain.Issue{}, fmt.Errorf("issue doc %q: %w", d.ID, err)
	}
	ownerID, err := uuid.Parse(d.OwnerID)
	if err != nil {
		return domain.Issue{}, fmt.Errorf("issue doc %q owner: %w", d.ID, err)
	}
	return domain.Issue{
		ID:       id,
		Title:    d.Title,
		OwnerID:  ownerID,
		Deadline: d.Deadline,
	}, nil
}

type IssueRepository struct {
	col *mongo.Collection
}

func NewIssueRepository(db *mongo.Database) *IssueRepository {
	return &IssueRepository{col: db.Collection(collectionIssues)}
}

func (r *IssueRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Issue, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d issueDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	issue, err := d.toDomain()
	if err != nil {
		return nil, err
	}
	return &issue, nil
}

func (r *IssueRepository) FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]domain.Issue, error) {
	return r.findMany(ctx, bson.M{"owner_id": ownerID.String()})
}

func (r *IssueRepository) FindAll(ctx context.Context) ([]domain.Issue, error) {
	return r.findMany(ctx, bson.M{})
}

func (r *IssueRepository) findMany(ctx context.Context, filter bson.M) ([]domain.Issue, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var issues []domain.Issue
	for cur.Next(ctx) {
		var d issueDoc
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		issue, err := d.toDomain()
		if err != nil {
			return nil, err
		}
		issues = append(issues, issue)
	}
	return issues, cur.Err()
}

// Save upserts the issue keyed on its id.
func (r *IssueRepository) Save(ctx context.Context, issue *domain.Issue) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toIssueDoc(issue)
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 && res.UpsertedCount == 0 {
		return domain.ErrNotModified
	}
	return nil
}

func (r *IssueRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
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

func (r *IssueRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{"_id": id.String()}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// EnsureIndexes creates the owner lookup index.
func (r *IssueRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "owner_id", Value: 1}},
	})
	return err
}
