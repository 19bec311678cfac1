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

const collectionMessages = "messages"

type MessageRepository struct {
	col *mongo.Collection
}

func NewMessageRepository(db *mongo.Database) *MessageRepository {
	return &MessageRepository{col: db.Collection(collectionMessages)}
}

type messageDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	ConversationID string             `bson:"conversation_id"`
	SenderName     string             `bson:"sender_name,omitempty"`
	Text           string             `bson:"text,omitempty"`
	Sticker        string             `bson:"sticker,omitempty"`
	FileURL        string             `bson:"file_url,omitempty"`
	FromAdmin      bool               `bson:"from_admin"`
	Read           bool               `bson:"read"`
	CreatedAt      time.Time          `bson:"created_at"`
}

func (d *messageDoc) toDomain() *domain.Message {
	return &domain.Message{
		ID:             d.ID.Hex(),
		ConversationID: d.ConversationID,
		SenderName:     d.SenderName,
		Text:           d.Text,
		Sticker:        d.Sticker,
		FileURL:        d.FileURL,
		FromAdmin:      d.FromAdmin,
		Read:           d.Read,
		CreatedAt:      d.CreatedAt.UTC(),
	}
}

// Insert stores the message and returns it with the generated id.
func (r *MessageRepository) Insert(ctx context.Context, m *domain.Message) (*domain.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := messageDoc{
		ConversationID: m.ConversationID,
		SenderName:     m.SenderName,
		Text:           m.Text,
		Sticker:        m.Sticker,
		FileURL:        m.FileURL,
		FromAdmin:      m.FromAdmin,
		Read:           m.Read,
		CreatedAt:      m.CreatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, err
	}
	stored := *m
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		stored.ID = oid.Hex()
	}
	return &stored, nil
}

// ListByConversation returns a conversation's messages oldest first.
func (r *MessageRepository) ListByConversation(ctx context.Context, conversationID string) ([]*domain.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"conversation_id": conversationID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	messages := make([]*domain.Message, 0)
	for cur.Next(ctx) {
		var doc messageDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		messages = append(messages, doc.toDomain())
	}
	return messages, cur.Err()
}

// MarkRead flags the unread messages one side has now seen. fromAdmin selects
// whose messages are being read, not who is reading.
func (r *MessageRepository) MarkRead(ctx context.Context, conversationID string, fromAdmin bool) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"conversation_id": conversationID,
		"from_admin":      fromAdmin,
		"read":            false,
	}
	_, err := r.col.UpdateMany(ctx, filter, bson.M{"$set": bson.M{"read": true}})
	return err
}

// Summaries aggregates one inbox row per conversation: the latest message,
// the customer's display name, and how many customer messages are unread.
func (r *MessageRepository) Summaries(ctx context.Context) ([]*domain.ConversationSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$conversation_id"},
			{Key: "last_text", Value: bson.D{{Key: "$first", Value: "$text"}}},
			{Key: "last_sticker", Value: bson.D{{Key: "$first", Value: "$sticker"}}},
			{Key: "last_file_url", Value: bson.D{{Key: "$first", Value: "$file_url"}}},
			{Key: "last_at", Value: bson.D{{Key: "$first", Value: "$created_at"}}},
			{Key: "sender_name", Value: bson.D{{Key: "$last", Value: "$sender_name"}}},
			{Key: "unread", Value: bson.D{{Key: "$sum", Value: bson.D{
				{Key: "$cond", Value: bson.A{
					bson.D{{Key: "$and", Value: bson.A{
						bson.D{{Key: "$eq", Value: bson.A{"$from_admin", false}}},
						bson.D{{Key: "$eq", Value: bson.A{"$read", false}}},
					}}},
					1, 0,
				}},
			}}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "last_at", Value: -1}}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	type summaryRow struct {
		ConversationID string    `bson:"_id"`
		LastText       string    `bson:"last_text"`
		LastSticker    string    `bson:"last_sticker"`
		LastFileURL    string    `bson:"last_file_url"`
		LastAt         time.Time `bson:"last_at"`
		SenderName     string    `bson:"sender_name"`
		Unread         int       `bson:"unread"`
	}

	summaries := make([]*domain.ConversationSummary, 0)
	for cur.Next(ctx) {
		var row summaryRow
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		preview := domain.Message{Text: row.LastText, Sticker: row.LastSticker, FileURL: row.LastFileURL}
		summaries = append(summaries, &domain.ConversationSummary{
			ConversationID: row.ConversationID,
			SenderName:     row.SenderName,
			LastMessage:    preview.Preview(),
			LastAt:         row.LastAt.UTC(),
			UnreadCount:    row.Unread,
		})
	}
	return summaries, cur.Err()
}

// EnsureIndexes creates the conversation lookup index.
func (r *MessageRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "conversation_id", Value: 1}, {Key: "created_at", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
