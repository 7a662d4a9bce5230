package app

import (
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"partyhub/internal/content"
	"partyhub/internal/domain"
	"partyhub/internal/game"
	"partyhub/internal/timer"
)

var epoch = time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

var testRoomSettings = RoomSettings{
	MinPlayers:          2,
	MaxPlayers:          3,
	IntermissionSeconds: 10,
	DefaultSettings:     domain.Settings{RoundCount: 2, TimePerRound: 30},
}

// fakeClient records everything the room sends
type fakeClient struct {
	playerID string

	mu       sync.Mutex
	messages []interface{}
	closed   bool
}

func (c *fakeClient) Send(message interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, message)
	return nil
}

func (c *fakeClient) GetPlayerID() string {
	return c.playerID
}

func (c *fakeClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeClient) events(eventType domain.EventType) []*domain.GameEvent {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []*domain.GameEvent
	for _, m := range c.messages {
		if e, ok := m.(*domain.GameEvent); ok && e.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}

func (c *fakeClient) lastLobby(t *testing.T) *domain.LobbyUpdatePayload {
	t.Helper()
	events := c.events(domain.EventLobbyUpdate)
	require.NotEmpty(t, events)
	return events[len(events)-1].Payload.(*domain.LobbyUpdatePayload)
}

func (c *fakeClient) lastState(t *testing.T) *domain.GameState {
	t.Helper()
	events := c.events(domain.EventGameState)
	require.NotEmpty(t, events)
	return events[len(events)-1].Payload.(*domain.GameState)
}

func newTestRegistry(clock timer.Clock) *game.Registry {
	return game.NewRegistry(game.Deps{
		Clock:   clock,
		Logger:  testLogger,
		Content: &content.Fixed{Words: []string{"apple"}},
		Timing:  game.DefaultTiming(),
	}, game.BuiltinFactories())
}

type roomFixture struct {
	clock    *timer.Fake
	registry *game.Registry
	room     *Room
	clients  map[string]*fakeClient
}

func newRoomFixture(t *testing.T) *roomFixture {
	t.Helper()

	clock := timer.NewFake(epoch)
	registry := newTestRegistry(clock)
	f := &roomFixture{
		clock:    clock,
		registry: registry,
		room:     NewRoom("ROOM01", testRoomSettings, registry, clock, testLogger),
		clients:  make(map[string]*fakeClient),
	}
	t.Cleanup(f.room.Close)
	return f
}

// join connects a client and adds the player to the lobby
func (f *roomFixture) join(t *testing.T, playerID, nickname string) *fakeClient {
	t.Helper()

	client := &fakeClient{playerID: playerID}
	f.room.RegisterClient(playerID, client)
	f.clients[playerID] = client

	_, err := f.room.AddPlayer(playerID, nickname)
	require.NoError(t, err)
	return client
}
