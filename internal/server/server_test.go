package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/lox/blackjack-survival/internal/game"
	"github.com/lox/blackjack-survival/internal/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startTestServer(t *testing.T, opts ...Option) (*Server, *httptest.Server) {
	t.Helper()
	srv := NewServer("127.0.0.1:0", testLogger(), opts...)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		srv.Stop()
		ts.Close()
	})
	return srv, ts
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

// readRaw reads one message and returns its type and raw body.
func readRaw(t *testing.T, conn *websocket.Conn) (protocol.MessageType, []byte) {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var head struct {
		Type protocol.MessageType `json:"type"`
	}
	require.NoError(t, json.Unmarshal(data, &head))
	return head.Type, data
}

func readSnapshot(t *testing.T, conn *websocket.Conn) protocol.Snapshot {
	t.Helper()
	typ, data := readRaw(t, conn)
	require.Equal(t, protocol.TypeSnapshot, typ, "%s", data)

	var msg protocol.Snapshot
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}

func send(t *testing.T, conn *websocket.Conn, body string) {
	t.Helper()
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(body)))
}

func TestServerHealth(t *testing.T) {
	t.Parallel()
	srv := NewServer("", testLogger())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestSessionFlow(t *testing.T) {
	t.Parallel()
	_, ts := startTestServer(t, WithSeed(42))
	conn := dial(t, ts)

	opening := readSnapshot(t, conn)
	_, err := uuid.Parse(opening.Session)
	require.NoError(t, err)
	assert.Equal(t, game.Playing, opening.Snapshot.Phase)
	assert.Equal(t, 100, opening.Snapshot.Health)
	assert.Len(t, opening.Snapshot.Hand, 2)

	send(t, conn, `{"type":"stand","requestId":"r-1"}`)
	next := readSnapshot(t, conn)
	assert.Equal(t, opening.Session, next.Session)
	assert.Equal(t, "r-1", next.RequestID)
	assert.Empty(t, next.Error)
	assert.Equal(t, 1, next.Snapshot.HandsCompleted)
	require.NotNil(t, next.Snapshot.LastSettlement)
}

func TestRejectedIntentStillSendsSnapshot(t *testing.T) {
	t.Parallel()
	_, ts := startTestServer(t, WithSeed(7))
	conn := dial(t, ts)
	opening := readSnapshot(t, conn)

	send(t, conn, `{"type":"close_shop"}`)
	msg := readSnapshot(t, conn)
	assert.Contains(t, msg.Error, game.ErrWrongPhase.Error())
	assert.NotEmpty(t, msg.Snapshot.Message)
	assert.Equal(t, opening.Snapshot.Hand, msg.Snapshot.Hand)
}

func TestBadMessages(t *testing.T) {
	t.Parallel()
	_, ts := startTestServer(t)
	conn := dial(t, ts)
	readSnapshot(t, conn)

	tests := []struct {
		body string
		code string
	}{
		{`not json`, protocol.CodeInvalidMessage},
		{`{"type":"remove_card"}`, protocol.CodeInvalidMessage},
		{`{"type":"split","requestId":"r-9"}`, protocol.CodeUnknownType},
	}

	for _, tt := range tests {
		send(t, conn, tt.body)
		typ, data := readRaw(t, conn)
		require.Equal(t, protocol.TypeError, typ, "%s", data)

		var msg protocol.Error
		require.NoError(t, json.Unmarshal(data, &msg))
		assert.Equal(t, tt.code, msg.Code, tt.body)
		assert.NotEmpty(t, msg.Error)
	}

	// The session survives bad input
	send(t, conn, `{"type":"hit"}`)
	readSnapshot(t, conn)
}

func TestEachConnectionGetsItsOwnSession(t *testing.T) {
	t.Parallel()
	srv, ts := startTestServer(t)

	a := readSnapshot(t, dial(t, ts))
	b := readSnapshot(t, dial(t, ts))
	assert.NotEqual(t, a.Session, b.Session)
	assert.Eventually(t, func() bool { return srv.ConnectionCount() == 2 }, time.Second, 10*time.Millisecond)
}

func TestSeededServersDealTheSameCards(t *testing.T) {
	t.Parallel()
	_, ts1 := startTestServer(t, WithSeed(1234))
	_, ts2 := startTestServer(t, WithSeed(1234))

	a := readSnapshot(t, dial(t, ts1))
	b := readSnapshot(t, dial(t, ts2))
	assert.Equal(t, a.Snapshot.Hand, b.Snapshot.Hand)
}

func TestIdleConnectionsAreClosed(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	mockClock := quartz.NewMock(t)
	srv, ts := startTestServer(t, WithClock(mockClock), WithIdleTimeout(30*time.Second))
	conn := dial(t, ts)
	readSnapshot(t, conn)

	mockClock.Advance(30 * time.Second).MustWait(ctx)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, _, err := conn.ReadMessage()
	require.Error(t, err)
	assert.Eventually(t, func() bool { return srv.ConnectionCount() == 0 }, time.Second, 10*time.Millisecond)
}

func TestStatsEndpointCountsFinishedRuns(t *testing.T) {
	t.Parallel()
	srv, ts := startTestServer(t, WithSeed(99))
	conn := dial(t, ts)
	snap := readSnapshot(t, conn).Snapshot

	for i := 0; snap.Phase != game.Lost; i++ {
		require.Less(t, i, 2000, "run never ended")
		cmd := `{"type":"stand"}`
		if snap.Phase == game.Shop {
			cmd = `{"type":"close_shop"}`
		}
		send(t, conn, cmd)
		snap = readSnapshot(t, conn).Snapshot
	}
	assert.Equal(t, 1, snap.Stats.GamesPlayed)

	resp, err := http.Get(ts.URL + "/stats")
	require.NoError(t, err)
	defer resp.Body.Close()

	var body statsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 1, body.Connections)
	assert.EqualValues(t, 1, body.Sessions)
	assert.Equal(t, 1, body.Stats.GamesPlayed)
	assert.Equal(t, snap.HandsCompleted, body.Stats.TotalHands)

	_ = conn.Close()
	assert.Eventually(t, func() bool { return srv.ConnectionCount() == 0 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, 1, srv.Stats().GamesPlayed, "closed sessions keep counting")
}
