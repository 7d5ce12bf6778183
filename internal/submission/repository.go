package submission

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// collectionName is the MongoDB collection submissions live in.
const collectionName = "submissions"

// ErrNotFound is returned when a lookup by id resolves to nothing.
var ErrNotFound = errors.New("submission not found")

// Repository persists and reads submissions. The mongo-backed
// implementation is the production one; tests substitute fakes.
type Repository interface {
	Create(ctx context.Context, sub Submission) (Submission, error)
	Find(ctx context.Context, q ListQuery) ([]Submission, error)
	FindByID(ctx context.Context, id bson.ObjectID) (Submission, error)
	Count(ctx context.Context, f Filter) (int64, error)
}

type mongoRepository struct {
	col *mongo.Collection
}

// NewRepository creates a MongoDB-backed repository on the given database.
func NewRepository(db *mongo.Database) Repository {
	return &mongoRepository{col: db.Collection(collectionName)}
}

// Create inserts the submission, stamping createdAt/updatedAt. The store
// assigns the identifier.
func (r *mongoRepository) Create(ctx context.Context, sub Submission) (Submission, error) {
	now := time.Now().UTC()
	sub.ID = bson.ObjectID{}
	sub.CreatedAt = now
	sub.UpdatedAt = now

	res, err := r.col.InsertOne(ctx, sub)
	if err != nil {
		return Submission{}, err
	}

	id, ok := res.InsertedID.(bson.ObjectID)
	if !ok {
		return Submission{}, errors.New("unexpected inserted id type")
	}
	sub.ID = id

	return sub, nil
}

// Find returns the page of submissions selected by the query.
func (r *mongoRepository) Find(ctx context.Context, q ListQuery) ([]Submission, error) {
	direction := 1
	if q.SortDesc {
		direction = -1
	}

	filter := bson.M{}
	if q.Filter != nil {
		filter = q.Filter.toBSON()
	}

	cursor, err := r.col.Find(ctx, filter, options.Find().
		SetSort(bson.D{{Key: q.SortField, Value: direction}}).
		SetSkip(q.Skip).
		SetLimit(q.Limit),
	)
	if err != nil {
		return nil, err
	}

	var subs []Submission
	if err := cursor.All(ctx, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

// FindByID returns the submission with the given id, or ErrNotFound.
func (r *mongoRepository) FindByID(ctx context.Context, id bson.ObjectID) (Submission, error) {
	var sub Submission
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&sub)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Submission{}, ErrNotFound
	}
	if err != nil {
		return Submission{}, err
	}
	return sub, nil
}

// Count returns how many submissions match the filter.
func (r *mongoRepository) Count(ctx context.Context, f Filter) (int64, error) {
	filter := bson.M{}
	if f != nil {
		filter = f.toBSON()
	}
	return r.col.CountDocuments(ctx, filter)
}
