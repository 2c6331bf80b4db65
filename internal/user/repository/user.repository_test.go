package repository

import (
	"context"
	"testing"
	"time"

	"messageboard/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestUserRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("finds a user by id", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		at := time.Date(2024, 9, 1, 12, 0, 0, 0, time.UTC)
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "username", Value: "ann"},
			{Key: "email", Value: "ann@example.com"},
			{Key: "createdAt", Value: at},
			{Key: "updatedAt", Value: at},
		}))

		got, err := NewUserRepository(mt.Coll).FindByID(context.Background(), id.Hex())

		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, id.Hex(), got.ID)
		assert.Equal(t, "ann", got.Username)
		assert.Equal(t, "ann@example.com", got.Email)
	})

	mt.Run("returns nil for an unknown id", func(mt *mtest.T) {
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		got, err := NewUserRepository(mt.Coll).FindByID(context.Background(), primitive.NewObjectID().Hex())

		require.NoError(t, err)
		assert.Nil(t, got)
	})

	mt.Run("rejects a malformed id", func(mt *mtest.T) {
		_, err := NewUserRepository(mt.Coll).FindByID(context.Background(), "nope")

		assert.Equal(t, store.KindInvalidInput, store.KindOf(err))
	})

	mt.Run("creates a user", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		got, err := NewUserRepository(mt.Coll).Create(context.Background(), "ann", "ann@example.com")

		require.NoError(t, err)
		assert.Len(t, got.ID, 24)
		assert.Equal(t, "ann", got.Username)
		assert.False(t, got.CreatedAt.IsZero())
	})
}

func TestUserRepository_NotConnected(t *testing.T) {
	repo := NewUserRepository(nil)

	_, err := repo.FindByID(context.Background(), primitive.NewObjectID().Hex())
	assert.Equal(t, store.KindUnavailable, store.KindOf(err))

	_, err = repo.Create(context.Background(), "ann", "ann@example.com")
	assert.Equal(t, store.KindUnavailable, store.KindOf(err))
}
