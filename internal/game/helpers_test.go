package game

import (
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"partyhub/internal/content"
	"partyhub/internal/domain"
	"partyhub/internal/timer"
)

var epoch = time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC)

func testDeps(clock timer.Clock, lib content.Library) Deps {
	if lib == nil {
		lib = &content.Fixed{}
	}
	return Deps{
		Clock:   clock,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Content: lib,
		Timing:  DefaultTiming(),
	}
}

type recorder struct {
	mu     sync.Mutex
	events []*domain.GameEvent
}

func (r *recorder) sink(event *domain.GameEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recorder) ofType(eventType domain.EventType) []*domain.GameEvent {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*domain.GameEvent
	for _, e := range r.events {
		if e.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}

func (r *recorder) states() []*domain.GameState {
	var out []*domain.GameState
	for _, e := range r.ofType(domain.EventGameState) {
		out = append(out, e.Payload.(*domain.GameState))
	}
	return out
}

func (r *recorder) lastState(t *testing.T) *domain.GameState {
	t.Helper()
	states := r.states()
	require.NotEmpty(t, states)
	return states[len(states)-1]
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

type fixture struct {
	clock   *timer.Fake
	rec     *recorder
	session Session
}

func newFixture(t *testing.T, gameType domain.GameType, players []string, settings domain.Settings, lib content.Library) *fixture {
	t.Helper()

	clock := timer.NewFake(epoch)
	rec := &recorder{}
	factory, ok := BuiltinFactories()[gameType]
	require.True(t, ok, "no factory for %s", gameType)

	cfg := domain.NewSessionConfig(domain.RoomDescriptor{
		ID:       "room-1",
		GameType: gameType,
		Players:  players,
		Settings: settings,
	})

	return &fixture{
		clock:   clock,
		rec:     rec,
		session: factory(cfg, rec.sink, testDeps(clock, lib)),
	}
}

func (f *fixture) act(playerID, action string, payload Payload) {
	f.session.HandleAction(playerID, action, payload)
}
