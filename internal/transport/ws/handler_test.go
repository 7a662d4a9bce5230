package ws

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"partyhub/internal/app"
	"partyhub/internal/content"
	"partyhub/internal/domain"
	"partyhub/internal/game"
	"partyhub/internal/timer"
)

type wireMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

func newTestServer(t *testing.T, limit RateLimit) (*httptest.Server, *app.Hub) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	clock := timer.Real()
	registry := game.NewRegistry(game.Deps{
		Clock:   clock,
		Logger:  logger,
		Content: &content.Fixed{},
		Timing:  game.DefaultTiming(),
	}, game.BuiltinFactories())

	hub := app.NewHub(registry, clock, app.HubOptions{
		Room: app.RoomSettings{
			MinPlayers:          2,
			MaxPlayers:          4,
			IntermissionSeconds: 10,
			DefaultSettings:     domain.Settings{RoundCount: 2, TimePerRound: 30},
		},
	}, logger)
	srv := httptest.NewServer(NewHandler(hub, limit, logger))

	t.Cleanup(func() {
		srv.Close()
		hub.Close()
	})
	return srv, hub
}

func dial(t *testing.T, srv *httptest.Server, roomCode string) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "?roomCode=" + roomCode
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, msgType MessageType, payload interface{}) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(map[string]interface{}{"type": msgType, "payload": payload}))
}

// readUntil reads frames until a message of the wanted type arrives. Queued
// messages may share one frame, separated by newlines.
func readUntil(t *testing.T, conn *websocket.Conn, want string) wireMessage {
	t.Helper()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		_, data, err := conn.ReadMessage()
		require.NoError(t, err, "waiting for %s", want)

		for _, line := range strings.Split(string(data), "\n") {
			var msg wireMessage
			require.NoError(t, json.Unmarshal([]byte(line), &msg))
			if msg.Type == want {
				return msg
			}
		}
	}
}

func TestHandler_RejectsBadRequests(t *testing.T) {
	srv, _ := newTestServer(t, RateLimit{PerSecond: 5, Burst: 10})

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = http.Get(srv.URL + "?roomCode=NOPE00")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHandler_JoinAndPing(t *testing.T) {
	srv, hub := newTestServer(t, RateLimit{PerSecond: 5, Burst: 10})
	room, err := hub.CreateRoom()
	require.NoError(t, err)

	conn := dial(t, srv, strings.ToLower(room.GetRoomCode()))
	send(t, conn, MsgJoinLobby, JoinLobbyPayload{Nickname: "Alice"})

	msg := readUntil(t, conn, string(MsgConnected))
	var connected ConnectedPayload
	require.NoError(t, json.Unmarshal(msg.Payload, &connected))
	assert.Equal(t, room.GetRoomCode(), connected.RoomCode)
	assert.NotEmpty(t, connected.PlayerID)
	assert.Contains(t, connected.GameState, "lobby")
	assert.Equal(t, 1, room.GetPlayerCount())

	send(t, conn, MsgPing, nil)
	readUntil(t, conn, string(MsgPong))
}

func TestHandler_Errors(t *testing.T) {
	srv, hub := newTestServer(t, RateLimit{PerSecond: 0.001, Burst: 1})
	room, err := hub.CreateRoom()
	require.NoError(t, err)

	conn := dial(t, srv, room.GetRoomCode())
	send(t, conn, MsgJoinLobby, JoinLobbyPayload{Nickname: "Alice"})
	readUntil(t, conn, string(MsgConnected))

	tests := []struct {
		desc    string
		msgType MessageType
		payload interface{}
		code    string
	}{
		{
			desc:    "unknown type",
			msgType: "dance",
			code:    ErrCodeInvalidMessage,
		},
		{
			desc:    "start without players",
			msgType: MsgStartGame,
			code:    ErrCodeInvalidAction,
		},
		{
			desc:    "unsupported game",
			msgType: MsgSetPlaylist,
			payload: SetPlaylistPayload{Items: []domain.PlaylistItem{{GameType: "charades"}}},
			code:    ErrCodeInvalidMessage,
		},
		{
			desc:    "action without a game",
			msgType: MsgAction,
			payload: ActionPayload{Name: game.ActionVote},
			code:    ErrCodeInvalidAction,
		},
		{
			desc:    "second action within the budget",
			msgType: MsgAction,
			payload: ActionPayload{Name: game.ActionVote},
			code:    ErrCodeRateLimited,
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			send(t, conn, tt.msgType, tt.payload)

			msg := readUntil(t, conn, string(MsgError))
			var payload ErrorPayload
			require.NoError(t, json.Unmarshal(msg.Payload, &payload))
			assert.Equal(t, tt.code, payload.Code)
		})
	}
}

func TestHandler_ResumeSeat(t *testing.T) {
	srv, hub := newTestServer(t, RateLimit{PerSecond: 5, Burst: 10})
	room, err := hub.CreateRoom()
	require.NoError(t, err)

	first := dial(t, srv, room.GetRoomCode())
	send(t, first, MsgJoinLobby, JoinLobbyPayload{Nickname: "Alice"})
	var joined ConnectedPayload
	require.NoError(t, json.Unmarshal(readUntil(t, first, string(MsgConnected)).Payload, &joined))
	first.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "?roomCode=" + room.GetRoomCode() + "&playerId=" + joined.PlayerID
	second, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { second.Close() })

	var resumed ConnectedPayload
	require.NoError(t, json.Unmarshal(readUntil(t, second, string(MsgConnected)).Payload, &resumed))
	assert.Equal(t, joined.PlayerID, resumed.PlayerID)
	assert.Equal(t, 1, room.GetPlayerCount())
}
