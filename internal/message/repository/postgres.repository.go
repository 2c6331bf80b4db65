package repository

import (
	"context"
	"database/sql"
	"fmt"

	"messageboard/internal/message/model"
	"messageboard/pkg/logger"
	"messageboard/store"

	"github.com/google/uuid"
)

const messagesSchema = `
CREATE TABLE IF NOT EXISTS messages (
	id         UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	name       TEXT NOT NULL DEFAULT '',
	message    TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

type PostgresMessageRepository struct {
	DB *sql.DB
}

func NewPostgresMessageRepository(db *sql.DB) *PostgresMessageRepository {
	return &PostgresMessageRepository{DB: db}
}

// EnsureSchema creates the messages table when it does not exist yet.
func (r *PostgresMessageRepository) EnsureSchema(ctx context.Context) error {
	if r.DB == nil {
		return store.Classify("ensure schema", store.ErrNotConnected)
	}
	if _, err := r.DB.ExecContext(ctx, messagesSchema); err != nil {
		logger.Sugar.Errorf("Failed to create messages table: %v", err)
		return store.Classify("ensure schema", err)
	}
	return nil
}

func (r *PostgresMessageRepository) Find(ctx context.Context, filter model.Filter) ([]model.Message, error) {
	const op = "find messages"
	if r.DB == nil {
		return nil, store.Classify(op, store.ErrNotConnected)
	}

	var (
		rows *sql.Rows
		err  error
	)
	if filter.IsEmpty() {
		rows, err = r.DB.QueryContext(ctx, "SELECT id, name, message, created_at, updated_at FROM messages")
	} else {
		if _, perr := uuid.Parse(filter.ID); perr != nil {
			logger.Sugar.Errorf("Failed to parse message id %q: %v", filter.ID, perr)
			return nil, store.Classify(op, fmt.Errorf("%w %q: %w", store.ErrInvalidID, filter.ID, perr))
		}
		rows, err = r.DB.QueryContext(ctx, "SELECT id, name, message, created_at, updated_at FROM messages WHERE id = $1", filter.ID)
	}
	if err != nil {
		logger.Sugar.Errorf("Failed to find messages: %v", err)
		return nil, store.Classify(op, err)
	}
	defer rows.Close()

	messages := []model.Message{}
	for rows.Next() {
		var m model.Message
		if err := rows.Scan(&m.ID, &m.Name, &m.Message, &m.CreatedAt, &m.UpdatedAt); err != nil {
			logger.Sugar.Errorf("Failed to scan message: %v", err)
			return nil, store.Classify(op, err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		logger.Sugar.Errorf("Failed to iterate messages: %v", err)
		return nil, store.Classify(op, err)
	}
	return messages, nil
}

func (r *PostgresMessageRepository) Create(ctx context.Context, name, body string) (*model.Message, error) {
	const op = "create message"
	if r.DB == nil {
		return nil, store.Classify(op, store.ErrNotConnected)
	}

	m := model.Message{Name: name, Message: body}
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO messages (name, message) VALUES ($1, $2)
		RETURNING id, created_at, updated_at`,
		name, body,
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		logger.Sugar.Errorf("Failed to create message: %v", err)
		return nil, store.Classify(op, err)
	}
	return &m, nil
}
