package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thereayou/geoguess/internal/models"
)

func newFeedServer(t *testing.T, hub *Hub) string {
	t.Helper()
	upgrader := websocket.Upgrader{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		client := NewClient(hub, conn, "root")
		if err := hub.Register(client); err != nil {
			conn.Close()
			return
		}
		go client.WritePump()
		go client.ReadPump()
	}))
	t.Cleanup(srv.Close)

	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestHub_PublishActionReachesEveryClient(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	url := newFeedServer(t, hub)
	first := dial(t, url)
	second := dial(t, url)

	require.Eventually(t, func() bool { return hub.ClientCount() == 2 }, time.Second, 10*time.Millisecond)

	action := &models.Action{
		ID:          uuid.New(),
		Type:        models.ActionClick,
		Component:   "guess-button",
		URL:         "/play",
		PerformedAt: time.Now().UTC(),
		User:        models.User{Username: "alice"},
	}
	require.NoError(t, hub.PublishAction(context.Background(), action))

	for _, conn := range []*websocket.Conn{first, second} {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		_, raw, err := conn.ReadMessage()
		require.NoError(t, err)

		var msg Message
		require.NoError(t, json.Unmarshal(raw, &msg))
		assert.Equal(t, TypeAction, msg.Type)

		var got models.Action
		require.NoError(t, json.Unmarshal(msg.Data, &got))
		assert.Equal(t, action.ID, got.ID)
		assert.Equal(t, "alice", got.User.Username)
	}
}

func TestHub_ClientDisconnectUnregisters(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	conn := dial(t, newFeedServer(t, hub))
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	conn.Close()
	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHub_StoppedRejectsWork(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	hub.Stop()

	assert.ErrorIs(t, hub.Broadcast([]byte("x")), ErrHubStopped)
	assert.ErrorIs(t, hub.Register(&Client{}), ErrHubStopped)
}

func TestEncodeAction(t *testing.T) {
	value := "Paris"
	raw, err := EncodeAction(&models.Action{ID: uuid.New(), Type: models.ActionInput, Value: &value})
	require.NoError(t, err)

	var msg Message
	require.NoError(t, json.Unmarshal(raw, &msg))
	assert.Equal(t, TypeAction, msg.Type)
	assert.Contains(t, string(msg.Data), `"value":"Paris"`)
}
