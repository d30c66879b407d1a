package server

import (
	"context"
	"ctchen222/tictactoe-term/internal/api/controller"
	"ctchen222/tictactoe-term/internal/events"
	"ctchen222/tictactoe-term/internal/hub"
	"ctchen222/tictactoe-term/pkg/proto"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Code    int             `json:"code"`
	Extras  json.RawMessage `json:"extras"`
}

func setup(t *testing.T) (*hub.Hub, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := hub.NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	go h.Run(ctx)

	srv := NewServer(h, controller.NewStateController(h))
	ts := httptest.NewServer(srv.Engine())
	t.Cleanup(func() {
		cancel()
		<-h.Done()
		ts.Close()
	})
	return h, ts
}

func getJSON(t *testing.T, url string) (int, envelope) {
	t.Helper()
	res, err := http.Get(url)
	require.NoError(t, err)
	defer res.Body.Close()

	var body envelope
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	return res.StatusCode, body
}

func newSnapshot() proto.Snapshot {
	return proto.Snapshot{
		Type:     proto.TypeSnapshot,
		GameID:   uuid.NewString(),
		Opponent: "random",
		Board:    [3][3]string{{"X", "O", " "}, {" ", " ", " "}, {" ", " ", " "}},
		Current:  "Player 1 (X)",
		Cursor:   [2]int{0, 1},
	}
}

func TestHealth(t *testing.T) {
	_, ts := setup(t)

	code, body := getJSON(t, ts.URL+"/healthz")
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, body.Success)
	assert.Equal(t, http.StatusOK, body.Code)
	assert.JSONEq(t, `{"status":"ok"}`, string(body.Extras))
}

func TestGetState(t *testing.T) {
	h, ts := setup(t)

	code, body := getJSON(t, ts.URL+"/api/state")
	assert.Equal(t, http.StatusNotFound, code)
	assert.False(t, body.Success)
	assert.JSONEq(t, `{"message":"no game state published yet"}`, string(body.Extras))

	s := newSnapshot()
	h.Publish(s)

	code, body = getJSON(t, ts.URL+"/api/state")
	require.Equal(t, http.StatusOK, code)
	var got proto.Snapshot
	require.NoError(t, json.Unmarshal(body.Extras, &got))
	assert.Equal(t, s, got)
}

func TestWebSocket_ReceivesSnapshots(t *testing.T) {
	h, ts := setup(t)
	first := newSnapshot()
	h.Publish(first)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws?spectatorId=watcher"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	read := func() events.Event {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		var ev events.Event
		require.NoError(t, conn.ReadJSON(&ev))
		return ev
	}

	ev := read()
	assert.Equal(t, events.TypeSnapshot, ev.Type)
	var got proto.Snapshot
	require.NoError(t, json.Unmarshal(ev.Payload, &got))
	assert.Equal(t, first.GameID, got.GameID)

	// Client messages are ignored.
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("hello")))

	next := newSnapshot()
	next.Over = true
	next.Current = ""
	next.Draw = true
	h.Publish(next)

	// The initial snapshot may be delivered twice when its broadcast races
	// the registration.
	for {
		ev := read()
		require.Equal(t, events.TypeSnapshot, ev.Type)
		require.NoError(t, json.Unmarshal(ev.Payload, &got))
		if got.GameID == next.GameID {
			break
		}
	}
	over := read()
	assert.Equal(t, events.TypeGameOver, over.Type)
	var payload events.GameOverPayload
	require.NoError(t, json.Unmarshal(over.Payload, &payload))
	assert.True(t, payload.Draw)
	assert.Equal(t, next.GameID, payload.GameID)
}
