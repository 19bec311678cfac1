package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hiptrack/shipment-tracker/internal/core/domain"
)

const collectionFeedback = "feedback"

type FeedbackRepository struct {
	col *mongo.Collection
}

func NewFeedbackRepository(db *mongo.Database) *FeedbackRepository {
	return &FeedbackRepository{col: db.Collection(collectionFeedback)}
}

type feedbackDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Message   string             `bson:"message"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (d *feedbackDoc) toDomain() *domain.Feedback {
	return &domain.Feedback{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Email:     d.Email,
		Message:   d.Message,
		CreatedAt: d.CreatedAt.UTC(),
	}
}

// Insert stores the submission and returns it with the generated id.
func (r *FeedbackRepository) Insert(ctx context.Context, f *domain.Feedback) (*domain.Feedback, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := feedbackDoc{
		Name:      f.Name,
		Email:     f.Email,
		Message:   f.Message,
		CreatedAt: f.CreatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, err
	}
	stored := *f
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		stored.ID = oid.Hex()
	}
	return &stored, nil
}

// ListAll returns every submission, newest first.
func (r *FeedbackRepository) ListAll(ctx context.Context) ([]*domain.Feedback, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	feedbacks := make([]*domain.Feedback, 0)
	for cur.Next(ctx) {
		var doc feedbackDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		feedbacks = append(feedbacks, doc.toDomain())
	}
	return feedbacks, cur.Err()
}

// EnsureIndexes creates the listing index.
func (r *FeedbackRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
