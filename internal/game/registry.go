package game

import (
	"log/slog"
	"sort"
	"sync"

	"partyhub/internal/domain"
)

// Factory builds a session for one rule-set
type Factory func(cfg domain.SessionConfig, sink domain.EventSink, deps Deps) Session

func factoryFor(newRules func() rules) Factory {
	return func(cfg domain.SessionConfig, sink domain.EventSink, deps Deps) Session {
		return newEngine(cfg, sink, deps, newRules())
	}
}

// BuiltinFactories returns the constructor table of every bundled rule-set
func BuiltinFactories() map[domain.GameType]Factory {
	return map[domain.GameType]Factory{
		domain.GameWouldYouRather: factoryFor(func() rules { return newWouldYouRather() }),
		domain.GameHotTakes:       factoryFor(func() rules { return newHotTakes() }),
		domain.GameMostLikely:     factoryFor(func() rules { return newMostLikely() }),
		domain.GameWordExplain:    factoryFor(func() rules { return newWordExplain() }),
		domain.GameTrivia:         factoryFor(func() rules { return newTrivia() }),
	}
}

// Registry holds at most one live session per room and routes calls to it.
// Every dispatcher tolerates unknown rooms.
type Registry struct {
	sessions  map[string]Session
	factories map[domain.GameType]Factory
	mu        sync.RWMutex
	deps      Deps
	logger    *slog.Logger
}

// NewRegistry creates a registry with the given constructor table
func NewRegistry(deps Deps, factories map[domain.GameType]Factory) *Registry {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	table := make(map[domain.GameType]Factory, len(factories))
	for gameType, factory := range factories {
		table[gameType] = factory
	}

	return &Registry{
		sessions:  make(map[string]Session),
		factories: table,
		deps:      deps,
		logger:    deps.Logger,
	}
}

// CreateGame builds a session for the room's game type and registers it,
// replacing any previous session of that room. It returns false when the
// game type is unsupported or the settings are not positive.
func (r *Registry) CreateGame(room domain.RoomDescriptor, sink domain.EventSink) (Session, bool) {
	factory, ok := r.factories[room.GameType]
	if !ok {
		r.logger.Warn("unsupported game type", "roomId", room.ID, "gameType", room.GameType)
		return nil, false
	}
	if !room.Settings.Valid() {
		r.logger.Warn("invalid game settings", "roomId", room.ID, "settings", room.Settings)
		return nil, false
	}

	session := factory(domain.NewSessionConfig(room), sink, r.deps)

	r.mu.Lock()
	previous := r.sessions[room.ID]
	r.sessions[room.ID] = session
	r.mu.Unlock()

	if previous != nil {
		previous.Destroy()
		r.logger.Info("game replaced", "roomId", room.ID, "previousSessionId", previous.ID())
	}

	r.logger.Info("game created",
		"roomId", room.ID,
		"sessionId", session.ID(),
		"gameType", room.GameType,
	)

	return session, true
}

// StartGame starts the room's session
func (r *Registry) StartGame(roomID string) bool {
	session := r.get(roomID)
	if session == nil {
		return false
	}
	session.Start()
	return true
}

// HandleAction forwards a player action to the room's session
func (r *Registry) HandleAction(roomID, playerID, action string, payload Payload) bool {
	session := r.get(roomID)
	if session == nil {
		return false
	}
	session.HandleAction(playerID, action, payload)
	return true
}

// GetGameState returns a snapshot of the room's session, or nil
func (r *Registry) GetGameState(roomID string) *domain.GameState {
	session := r.get(roomID)
	if session == nil {
		return nil
	}
	return session.State()
}

// EndGame destroys and unregisters the room's session
func (r *Registry) EndGame(roomID string) bool {
	r.mu.Lock()
	session, ok := r.sessions[roomID]
	delete(r.sessions, roomID)
	r.mu.Unlock()

	if !ok {
		return false
	}

	session.Destroy()
	r.logger.Info("game ended", "roomId", roomID, "sessionId", session.ID())
	return true
}

// IsGameTypeSupported checks the constructor table
func (r *Registry) IsGameTypeSupported(gameType domain.GameType) bool {
	_, ok := r.factories[gameType]
	return ok
}

// ListSupportedTypes returns every registered game type, sorted
func (r *Registry) ListSupportedTypes() []domain.GameType {
	types := make([]domain.GameType, 0, len(r.factories))
	for gameType := range r.factories {
		types = append(types, gameType)
	}
	sort.Slice(types, func(i, j int) bool {
		return types[i] < types[j]
	})
	return types
}

// SessionCount returns the number of registered sessions
func (r *Registry) SessionCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Close destroys every session
func (r *Registry) Close() {
	r.mu.Lock()
	sessions := r.sessions
	r.sessions = make(map[string]Session)
	r.mu.Unlock()

	for _, session := range sessions {
		session.Destroy()
	}
}

func (r *Registry) get(roomID string) Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sessions[roomID]
}
