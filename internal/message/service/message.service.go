package service

import (
	"context"

	"messageboard/internal/message/model"
	"messageboard/internal/message/repository"
	"messageboard/internal/metrics"
)

// Publisher receives every message once it has been stored.
type Publisher interface {
	Publish(msg model.Message)
}

type MessageService struct {
	Repo      repository.MessageRepository
	Publisher Publisher
}

// NewMessageService wires the store adapter. publisher may be nil.
func NewMessageService(repo repository.MessageRepository, publisher Publisher) *MessageService {
	return &MessageService{Repo: repo, Publisher: publisher}
}

func (s *MessageService) ListMessages(ctx context.Context) ([]model.Message, error) {
	messages, err := s.Repo.Find(ctx, model.Filter{})
	metrics.RecordStoreOperation("find", err)
	if err != nil {
		return nil, err
	}
	return nonNil(messages), nil
}

// GetMessage returns the messages matching id: one record, or none when the
// id is unknown.
func (s *MessageService) GetMessage(ctx context.Context, id string) ([]model.Message, error) {
	messages, err := s.Repo.Find(ctx, model.Filter{ID: id})
	metrics.RecordStoreOperation("find", err)
	if err != nil {
		return nil, err
	}
	return nonNil(messages), nil
}

func (s *MessageService) SaveMessage(ctx context.Context, req model.SaveMessageRequest) (*model.Message, error) {
	msg, err := s.Repo.Create(ctx, req.Name, req.Message)
	metrics.RecordStoreOperation("create", err)
	if err != nil {
		return nil, err
	}

	if s.Publisher != nil {
		s.Publisher.Publish(*msg)
	}
	return msg, nil
}

func nonNil(messages []model.Message) []model.Message {
	if messages == nil {
		return []model.Message{}
	}
	return messages
}
