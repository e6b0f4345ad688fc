package websocket

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// dialTestClient spins up a router that authenticates every request as
// userID and returns an open client connection to it.
func dialTestClient(t *testing.T, hub *Hub, userID int64) *websocket.Conn {
	t.Helper()

	handler := NewHandler(hub, zerolog.Nop())

	router := gin.New()
	router.GET("/ws", func(c *gin.Context) {
		c.Set("userID", userID)
		handler.HandleConnection(c)
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return conn
}

func waitForConnections(t *testing.T, hub *Hub, userID int64, want int) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if hub.GetConnectionCount(userID) == want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("expected %d connections for user %d, got %d", want, userID, hub.GetConnectionCount(userID))
}

func TestHubDeliversEventToConnectedUser(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	go hub.Run()

	conn := dialTestClient(t, hub, 7)
	waitForConnections(t, hub, 7, 1)

	hub.PushToUser(7, "notification", map[string]interface{}{"title": "Registration approved"})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var event Event
	require.NoError(t, json.Unmarshal(data, &event))
	assert.Equal(t, "notification", event.Type)

	payload, ok := event.Payload.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Registration approved", payload["title"])
}

func TestHubDoesNotDeliverToOtherUsers(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	go hub.Run()

	conn := dialTestClient(t, hub, 8)
	waitForConnections(t, hub, 8, 1)

	// Addressed to a different user; nothing should arrive
	hub.PushToUser(9, "notification", map[string]interface{}{"title": "Not yours"})

	conn.SetReadDeadline(time.Now().Add(300 * time.Millisecond))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
}

func TestHubTracksMultipleConnectionsPerUser(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	go hub.Run()

	first := dialTestClient(t, hub, 11)
	second := dialTestClient(t, hub, 11)
	waitForConnections(t, hub, 11, 2)

	hub.PushToUser(11, "notification", map[string]interface{}{"title": "Fan out"})

	for _, conn := range []*websocket.Conn{first, second} {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, data, err := conn.ReadMessage()
		require.NoError(t, err)
		assert.Contains(t, string(data), "Fan out")
	}

	first.Close()
	waitForConnections(t, hub, 11, 1)
}

func TestHubConnectionCountForUnknownUser(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	assert.Equal(t, 0, hub.GetConnectionCount(12345))
}
