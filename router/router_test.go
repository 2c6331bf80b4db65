package router

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"messageboard/internal/about"
	messageHandler "messageboard/internal/message"
	"messageboard/internal/message/model"
	"messageboard/internal/message/repository"
	"messageboard/internal/message/service"
	"messageboard/socket"
	"messageboard/store"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryRepository keeps messages in insertion order.
type memoryRepository struct {
	mu       sync.Mutex
	messages []model.Message
	seq      int
}

func (m *memoryRepository) Find(_ context.Context, filter model.Filter) ([]model.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []model.Message{}
	for _, msg := range m.messages {
		if filter.IsEmpty() || msg.ID == filter.ID {
			out = append(out, msg)
		}
	}
	return out, nil
}

func (m *memoryRepository) Create(_ context.Context, name, body string) (*model.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	now := time.Now().UTC()
	msg := model.Message{ID: fmt.Sprintf("%024x", m.seq), Name: name, Message: body, CreatedAt: now, UpdatedAt: now}
	m.messages = append(m.messages, msg)
	return &msg, nil
}

func newServer(t *testing.T, repo repository.MessageRepository) (*httptest.Server, *socket.Hub) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	hub := socket.NewHub()
	go hub.Run(ctx)

	handler := Setup(Options{
		Messages:       messageHandler.NewMessageHandler(service.NewMessageService(repo, hub)),
		Hub:            hub,
		AllowedOrigins: []string{"*"},
	})
	server := httptest.NewServer(handler)
	t.Cleanup(func() {
		server.Close()
		cancel()
	})
	return server, hub
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestEmptyStoreListsNothing(t *testing.T) {
	server, _ := newServer(t, &memoryRepository{})

	resp, err := http.Get(server.URL + "/messages")
	require.NoError(t, err)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode[map[string]any](t, resp)
	assert.Equal(t, []any{}, body["messages"])
	assert.Equal(t, "all good", body["status"])
}

func TestSaveThenList(t *testing.T) {
	server, _ := newServer(t, &memoryRepository{})

	resp, err := http.Post(server.URL+"/messages/save", "application/json",
		strings.NewReader(`{"name":"Ann","message":"hi"}`))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	saved := decode[model.SaveMessageResponse](t, resp)
	require.NotNil(t, saved.Message)
	assert.Equal(t, "Ann", saved.Message.Name)
	assert.Equal(t, "hi", saved.Message.Message)
	assert.NotEmpty(t, saved.Message.ID)
	assert.Equal(t, "all good", saved.Status)

	resp, err = http.PostForm(server.URL+"/messages/save", url.Values{"name": {"Bob"}, "message": {"hello"}})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp, err = http.Get(server.URL + "/messages")
	require.NoError(t, err)
	list := decode[model.ListMessagesResponse](t, resp)
	require.Len(t, list.Messages, 2)
	assert.Contains(t, list.Messages, *saved.Message)

	resp, err = http.Get(server.URL + "/messages/" + saved.Message.ID)
	require.NoError(t, err)
	one := decode[model.ListMessagesResponse](t, resp)
	require.Len(t, one.Messages, 1)
	assert.Equal(t, saved.Message.ID, one.Messages[0].ID)

	resp, err = http.Get(server.URL + "/messages/ffffffffffffffffffffffff")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	none := decode[model.ListMessagesResponse](t, resp)
	assert.NotNil(t, none.Messages)
	assert.Empty(t, none.Messages)
}

func TestStoreUnavailable(t *testing.T) {
	server, _ := newServer(t, repository.NewMongoMessageRepository(nil))

	cases := []struct {
		method, path, body, status string
	}{
		{http.MethodGet, "/messages", "", model.StatusListFailed},
		{http.MethodGet, "/messages/66d4a1f0c2b9e81a2f3c4d5e", "", model.StatusListFailed},
		{http.MethodPost, "/messages/save", `{"name":"Ann","message":"hi"}`, model.StatusSaveFailed},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req, err := http.NewRequest(tc.method, server.URL+tc.path, strings.NewReader(tc.body))
			require.NoError(t, err)
			req.Header.Set("Content-Type", "application/json")

			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)

			require.Equal(t, http.StatusBadRequest, resp.StatusCode)
			body := decode[model.ErrorResponse](t, resp)
			assert.Equal(t, store.PublicMessage(store.KindUnavailable), body.Error)
			assert.Equal(t, tc.status, body.Status)
		})
	}

	// GET /about does not depend on the store.
	resp, err := http.Get(server.URL + "/about")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, about.Profile, decode[about.Author](t, resp))
}

func TestCrossCuttingRoutes(t *testing.T) {
	server, _ := newServer(t, &memoryRepository{})

	req, err := http.NewRequest(http.MethodOptions, server.URL+"/messages/save", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

	resp, err = http.Get(server.URL + "/metrics")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Post(server.URL+"/messages", "application/json", strings.NewReader(`{}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestLiveFeedReceivesSavedMessages(t *testing.T) {
	server, _ := newServer(t, &memoryRepository{})

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	resp, err := http.Post(server.URL+"/messages/save", "application/json",
		strings.NewReader(`{"name":"Ann","message":"hi"}`))
	require.NoError(t, err)
	saved := decode[model.SaveMessageResponse](t, resp)

	conn.SetReadDeadline(time.Now().Add(time.Second))
	var event socket.WSMessage
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, socket.MessageCreatedType, event.Type)

	var got model.Message
	require.NoError(t, json.Unmarshal(event.Payload, &got))
	assert.Equal(t, saved.Message.ID, got.ID)
}
