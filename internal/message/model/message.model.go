package model

import "time"

const (
	StatusOK          = "all good"
	StatusListFailed  = "failed to retrieve messages from the database"
	StatusSaveFailed  = "failed to save the message to the database"
	StatusParseFailed = "failed to parse request body"
)

// Message is a persisted message board entry. ID, CreatedAt and UpdatedAt
// are assigned by the store on insert.
type Message struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Filter selects messages. The zero value matches every message.
type Filter struct {
	ID string
}

func (f Filter) IsEmpty() bool {
	return f.ID == ""
}

type SaveMessageRequest struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

type ListMessagesResponse struct {
	Messages []Message `json:"messages"`
	Status   string    `json:"status"`
}

type SaveMessageResponse struct {
	Message *Message `json:"message"`
	Status  string   `json:"status"`
}

type ErrorResponse struct {
	Error  string `json:"error"`
	Status string `json:"status"`
}
