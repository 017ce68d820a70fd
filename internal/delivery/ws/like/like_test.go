package ws_like

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/humanbelnik/moviematch/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	hub        *Hub
	url        string
	registered chan string
	cancel     context.CancelFunc
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := &harness{hub: NewHub(), registered: make(chan string, 8)}
	h.hub.onRegister = func(username string) { h.registered <- username }

	ctx, cancel := context.WithCancel(context.Background())
	h.cancel = cancel
	go h.hub.Run(ctx)

	engine := gin.New()
	NewController(h.hub).RegisterRoutes(engine.Group("/api"))
	srv := httptest.NewServer(engine)
	t.Cleanup(func() {
		cancel()
		srv.Close()
	})

	h.url = "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/ws/likes/"
	return h
}

func (h *harness) dial(t *testing.T, username string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(h.url+username, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	select {
	case got := <-h.registered:
		require.Equal(t, username, got)
	case <-time.After(2 * time.Second):
		t.Fatal("client was not registered")
	}
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) (Event, LikePayload) {
	t.Helper()
	var raw struct {
		Type    string      `json:"type"`
		Payload LikePayload `json:"payload"`
	}
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, conn.ReadJSON(&raw))
	return Event{Type: raw.Type}, raw.Payload
}

func TestLikeSavedReachesOwnSockets(t *testing.T) {
	h := newHarness(t)
	alice := h.dial(t, "alice")
	bob := h.dial(t, "bob")

	h.hub.LikeSaved(context.Background(), model.Like{ID: 1, TmdbID: 550, Username: "alice", Liked: true})
	h.hub.LikeSaved(context.Background(), model.Like{ID: 2, TmdbID: 13, Username: "bob", Liked: false})

	ev, payload := readEvent(t, alice)
	assert.Equal(t, EventLikeSaved, ev.Type)
	assert.Equal(t, LikePayload{ID: 1, TmdbID: 550, Username: "alice", Liked: true}, payload)

	_, payload = readEvent(t, bob)
	assert.Equal(t, "bob", payload.Username)
	assert.Equal(t, int64(13), payload.TmdbID)
}

func TestHubStopClosesSockets(t *testing.T) {
	h := newHarness(t)
	conn := h.dial(t, "alice")

	h.cancel()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)

	done := make(chan struct{})
	go func() {
		h.hub.LikeSaved(context.Background(), model.Like{Username: "alice"})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("LikeSaved blocked after hub stopped")
	}
}
