package websocket

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestWriteReadRoundTrip runs a real upgrade and exercises the typed write
// helpers end to end: the server answers a ping with a pong, then closes the
// stream with an error event.
func TestWriteReadRoundTrip(t *testing.T) {
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()

		var env RequestEnvelope
		require.NoError(t, ReadJSON(conn, &env))
		assert.Equal(t, ActionPing, env.Action)

		require.NoError(t, WriteTyped(conn, PongResponse{Event: EventPong}))
		require.NoError(t, WriteError(conn, "stream closed"))
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(RequestEnvelope{Action: ActionPing}))

	var pong PongResponse
	require.NoError(t, conn.ReadJSON(&pong))
	assert.Equal(t, EventPong, pong.Event)

	var errEvt ErrorResponse
	require.NoError(t, conn.ReadJSON(&errEvt))
	assert.Equal(t, EventError, errEvt.Event)
	assert.Equal(t, "stream closed", errEvt.Error)
}
