package live

import (
	"bufio"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func TestHubBroadcastReachesClient(t *testing.T) {
	gin.SetMode(gin.TestMode)

	hub := NewHub()
	router := gin.New()
	router.GET("/ws", WSHandler(hub))

	srv := httptest.NewServer(router)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	// welcome frame first
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	require.Contains(t, string(msg), "welcome")

	// wait for the hub to register the connection
	require.Eventually(t, func() bool {
		return hub.Stats().Clients == 1
	}, time.Second, 10*time.Millisecond)

	hub.BroadcastJSON(Event{Type: TypeModalLoaded, MovieID: 603, At: time.Now().UTC()})

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, msg, err = conn.ReadMessage()
	require.NoError(t, err)

	var got Event
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(string(msg))), &got))
	require.Equal(t, TypeModalLoaded, got.Type)
	require.Equal(t, int64(603), got.MovieID)
}

func TestHubRemoveClosesAndForgets(t *testing.T) {
	gin.SetMode(gin.TestMode)

	hub := NewHub()
	router := gin.New()
	router.GET("/ws", WSHandler(hub))

	srv := httptest.NewServer(router)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return hub.Stats().Clients == 1
	}, time.Second, 10*time.Millisecond)

	conn.Close()

	require.Eventually(t, func() bool {
		return hub.Stats().Clients == 0
	}, time.Second, 10*time.Millisecond)
}

func TestBroadcastJSONSkipsUnmarshalable(t *testing.T) {
	hub := NewHub()
	// must not panic with no clients and a value json cannot encode
	hub.BroadcastJSON(make(chan int))
	hub.BroadcastJSON(Event{Type: TypeSearch, Query: "matrix", At: time.Now()})
}

// reader side of the event stream: one JSON object per line
func TestEventWireFormat(t *testing.T) {
	raw := `{"type":"search.performed","query":"alien","at":"2025-01-01T00:00:00Z"}` + "\n"

	scanner := bufio.NewScanner(strings.NewReader(raw))
	require.True(t, scanner.Scan())

	var ev Event
	require.NoError(t, json.Unmarshal(scanner.Bytes(), &ev))
	require.Equal(t, TypeSearch, ev.Type)
	require.Equal(t, "alien", ev.Query)
	require.Zero(t, ev.MovieID)
}
