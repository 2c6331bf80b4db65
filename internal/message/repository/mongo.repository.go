package repository

import (
	"context"
	"fmt"
	"time"

	"messageboard/internal/message/model"
	"messageboard/pkg/logger"
	"messageboard/store"

	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const MessagesCollection = "messages"

type messageDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Message   string             `bson:"message"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (d messageDocument) toModel() model.Message {
	return model.Message{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Message:   d.Message,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}

type MongoMessageRepository struct {
	Coll *mongo.Collection
}

// NewMongoMessageRepository returns an adapter over coll. A nil collection
// means the connection was never established and every call fails as
// unavailable.
func NewMongoMessageRepository(coll *mongo.Collection) *MongoMessageRepository {
	return &MongoMessageRepository{Coll: coll}
}

func (r *MongoMessageRepository) Find(ctx context.Context, filter model.Filter) ([]model.Message, error) {
	const op = "find messages"
	if r.Coll == nil {
		return nil, store.Classify(op, store.ErrNotConnected)
	}

	query := bson.M{}
	if !filter.IsEmpty() {
		oid, err := primitive.ObjectIDFromHex(filter.ID)
		if err != nil {
			logger.Sugar.Errorf("Failed to parse message id %q: %v", filter.ID, err)
			return nil, store.Classify(op, fmt.Errorf("%w %q: %w", store.ErrInvalidID, filter.ID, err))
		}
		query["_id"] = oid
	}

	cursor, err := r.Coll.Find(ctx, query)
	if err != nil {
		logger.Sugar.Errorf("Failed to find messages: %v", err)
		return nil, store.Classify(op, err)
	}
	defer cursor.Close(ctx)

	var docs []messageDocument
	if err := cursor.All(ctx, &docs); err != nil {
		logger.Sugar.Errorf("Failed to decode messages: %v", err)
		return nil, store.Classify(op, err)
	}

	return lo.Map(docs, func(d messageDocument, _ int) model.Message {
		return d.toModel()
	}), nil
}

func (r *MongoMessageRepository) Create(ctx context.Context, name, body string) (*model.Message, error) {
	const op = "create message"
	if r.Coll == nil {
		return nil, store.Classify(op, store.ErrNotConnected)
	}

	// Mongo keeps millisecond precision.
	now := time.Now().UTC().Truncate(time.Millisecond)
	doc := messageDocument{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Message:   body,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := r.Coll.InsertOne(ctx, doc); err != nil {
		logger.Sugar.Errorf("Failed to create message: %v", err)
		return nil, store.Classify(op, err)
	}

	msg := doc.toModel()
	return &msg, nil
}
