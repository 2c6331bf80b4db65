package repository

import (
	"context"
	"fmt"
	"time"

	"messageboard/internal/user/model"
	"messageboard/pkg/logger"
	"messageboard/store"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const UsersCollection = "users"

type userDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Username  string             `bson:"username"`
	Email     string             `bson:"email"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (d userDocument) toModel() model.User {
	return model.User{
		ID:        d.ID.Hex(),
		Username:  d.Username,
		Email:     d.Email,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}

type UserRepository struct {
	Coll *mongo.Collection
}

func NewUserRepository(coll *mongo.Collection) *UserRepository {
	return &UserRepository{Coll: coll}
}

// FindByID returns nil without error when no user has the id.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	const op = "find user"
	if r.Coll == nil {
		return nil, store.Classify(op, store.ErrNotConnected)
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, store.Classify(op, fmt.Errorf("%w %q: %w", store.ErrInvalidID, id, err))
	}

	var doc userDocument
	err = r.Coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		logger.Sugar.Errorf("Failed to find user %s: %v", id, err)
		return nil, store.Classify(op, err)
	}

	user := doc.toModel()
	return &user, nil
}

func (r *UserRepository) Create(ctx context.Context, username, email string) (*model.User, error) {
	const op = "create user"
	if r.Coll == nil {
		return nil, store.Classify(op, store.ErrNotConnected)
	}

	now := time.Now().UTC().Truncate(time.Millisecond)
	doc := userDocument{
		ID:        primitive.NewObjectID(),
		Username:  username,
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := r.Coll.InsertOne(ctx, doc); err != nil {
		logger.Sugar.Errorf("Failed to create user %s: %v", username, err)
		return nil, store.Classify(op, err)
	}

	user := doc.toModel()
	return &user, nil
}
