//go:generate go run go.uber.org/mock/mockgen -source=repository.go -destination=../mocks/mock_repository.go -package=mocks
package repository

import (
	"context"

	"messageboard/internal/message/model"
)

// MessageRepository is the message store adapter. Failures are returned as
// *store.Error.
type MessageRepository interface {
	Find(ctx context.Context, filter model.Filter) ([]model.Message, error)
	Create(ctx context.Context, name, body string) (*model.Message, error)
}
