package app

import (
	"log/slog"
	"sync"
	"time"

	"partyhub/internal/domain"
	"partyhub/internal/game"
	"partyhub/internal/playlist"
	"partyhub/internal/timer"
)

// ClientConnection represents a connected client
type ClientConnection interface {
	Send(message interface{}) error
	GetPlayerID() string
	Close() error
}

// RoomSettings are the lobby rules shared by all rooms of a hub
type RoomSettings struct {
	MinPlayers          int
	MaxPlayers          int
	IntermissionSeconds int
	DefaultSettings     domain.Settings // fills zero round count or round time in playlist items

	// ReconnectGrace is how long a disconnected player keeps their lobby
	// seat. Zero keeps it forever.
	ReconnectGrace time.Duration
}

// Room is a lobby of players that plays a playlist of games. It owns the
// playlist run and forwards player actions to the game registry.
type Room struct {
	code      string
	createdAt time.Time
	settings  RoomSettings
	registry  *game.Registry
	clock     timer.Clock
	logger    *slog.Logger

	mu        sync.RWMutex
	players   map[string]*domain.Player
	order     []string // join order
	hostID    string
	playlist  []domain.PlaylistItem
	sequencer *playlist.Sequencer
	sessionID string // the session whose end advances the playlist
	evictions map[string]timer.Stopper

	intermission *timer.Slot

	clients   map[string]ClientConnection // playerID -> client
	clientsMu sync.RWMutex
}

// NewRoom creates an empty room
func NewRoom(code string, settings RoomSettings, registry *game.Registry, clock timer.Clock, logger *slog.Logger) *Room {
	return &Room{
		code:         code,
		createdAt:    clock.Now(),
		settings:     settings,
		registry:     registry,
		clock:        clock,
		logger:       logger.With("roomId", code),
		players:      make(map[string]*domain.Player),
		evictions:    make(map[string]timer.Stopper),
		intermission: timer.NewSlot(clock),
		clients:      make(map[string]ClientConnection),
	}
}

// GetRoomCode returns the room code
func (r *Room) GetRoomCode() string {
	return r.code
}

// GetCreatedAt returns when the room was created
func (r *Room) GetCreatedAt() time.Time {
	return r.createdAt
}

// GetPlayerCount returns the number of players
func (r *Room) GetPlayerCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.players)
}

// IsPlaying reports whether a playlist is running
func (r *Room) IsPlaying() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sequencer != nil
}

// CanJoin checks if a new player can join the room
func (r *Room) CanJoin() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sequencer == nil && len(r.players) < r.settings.MaxPlayers
}

// RegisterClient registers a client connection for a player
func (r *Room) RegisterClient(playerID string, client ClientConnection) {
	r.clientsMu.Lock()
	defer r.clientsMu.Unlock()
	r.clients[playerID] = client
}

// UnregisterClient removes a player's client connection if it is still the
// registered one. It reports false when a newer connection replaced it.
func (r *Room) UnregisterClient(playerID string, client ClientConnection) bool {
	r.clientsMu.Lock()
	defer r.clientsMu.Unlock()

	if r.clients[playerID] != client {
		return false
	}
	delete(r.clients, playerID)
	return true
}

// AddPlayer adds a player to the lobby. The first player becomes the host.
func (r *Room) AddPlayer(playerID, nickname string) (*domain.Player, error) {
	if nickname == "" {
		return nil, domain.ErrEmptyNickname
	}

	r.mu.Lock()
	if existing, ok := r.players[playerID]; ok {
		existing.Nickname = nickname
		existing.Reconnect()
		r.cancelEvictionLocked(playerID)
		r.mu.Unlock()
		r.broadcastLobby()
		return existing, nil
	}
	if r.sequencer != nil {
		r.mu.Unlock()
		return nil, domain.ErrGameAlreadyStarted
	}
	if len(r.players) >= r.settings.MaxPlayers {
		r.mu.Unlock()
		return nil, domain.ErrRoomFull
	}

	player := domain.NewPlayer(playerID, nickname)
	r.players[playerID] = player
	r.order = append(r.order, playerID)
	if r.hostID == "" {
		r.hostID = playerID
	}
	r.mu.Unlock()

	r.logger.Info("player joined", "playerId", playerID, "nickname", nickname)
	r.broadcastLobby()
	return player, nil
}

// RemovePlayer removes a player from the lobby
func (r *Room) RemovePlayer(playerID string) error {
	r.mu.Lock()
	if _, ok := r.players[playerID]; !ok {
		r.mu.Unlock()
		return domain.ErrPlayerNotFound
	}

	delete(r.players, playerID)
	r.cancelEvictionLocked(playerID)
	for i, id := range r.order {
		if id == playerID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	// If host left, the longest-standing player takes over
	if r.hostID == playerID {
		r.hostID = ""
		if len(r.order) > 0 {
			r.hostID = r.order[0]
		}
	}
	r.mu.Unlock()

	r.broadcastLobby()
	return nil
}

// DisconnectPlayer marks a player as disconnected. A running game simply
// receives no more input from them; in the lobby they lose their seat once
// the reconnect grace period ran out.
func (r *Room) DisconnectPlayer(playerID string) {
	r.mu.Lock()
	player, ok := r.players[playerID]
	if ok {
		player.Disconnect()
		if r.settings.ReconnectGrace > 0 {
			r.cancelEvictionLocked(playerID)
			r.evictions[playerID] = r.clock.AfterFunc(r.settings.ReconnectGrace, func() {
				r.evict(playerID)
			})
		}
	}
	r.mu.Unlock()

	if ok {
		r.broadcastLobby()
	}
}

// ReconnectPlayer marks a player as reconnected
func (r *Room) ReconnectPlayer(playerID string) (*domain.Player, error) {
	r.mu.Lock()
	player, ok := r.players[playerID]
	if ok {
		player.Reconnect()
		r.cancelEvictionLocked(playerID)
	}
	r.mu.Unlock()

	if !ok {
		return nil, domain.ErrPlayerNotFound
	}
	r.broadcastLobby()
	return player, nil
}

// evict removes a player still disconnected after the grace period. Players
// of a running playlist keep their seat.
func (r *Room) evict(playerID string) {
	r.mu.Lock()
	delete(r.evictions, playerID)
	player, ok := r.players[playerID]
	stale := ok && !player.IsConnected() && r.sequencer == nil
	r.mu.Unlock()

	if stale {
		r.logger.Info("player evicted after reconnect grace", "playerId", playerID)
		r.RemovePlayer(playerID)
	}
}

func (r *Room) cancelEvictionLocked(playerID string) {
	if stop, ok := r.evictions[playerID]; ok {
		stop.Stop()
		delete(r.evictions, playerID)
	}
}

// SetPlaylist replaces the playlist before the run starts (host only)
func (r *Room) SetPlaylist(playerID string, items []domain.PlaylistItem) error {
	normalized := make([]domain.PlaylistItem, 0, len(items))
	for _, item := range items {
		item, err := r.normalizeItem(item)
		if err != nil {
			return err
		}
		normalized = append(normalized, item)
	}

	r.mu.Lock()
	if r.hostID != playerID {
		r.mu.Unlock()
		return domain.ErrNotHost
	}
	if r.sequencer != nil {
		r.mu.Unlock()
		return domain.ErrGameAlreadyStarted
	}
	r.playlist = normalized
	r.mu.Unlock()

	r.broadcastLobby()
	return nil
}

// AddGame appends a game to the playlist, also while it is running (host only)
func (r *Room) AddGame(playerID string, item domain.PlaylistItem) error {
	item, err := r.normalizeItem(item)
	if err != nil {
		return err
	}

	r.mu.Lock()
	if r.hostID != playerID {
		r.mu.Unlock()
		return domain.ErrNotHost
	}
	if r.sequencer != nil {
		r.sequencer.AddGame(item)
	} else {
		r.playlist = append(r.playlist, item)
	}
	r.mu.Unlock()

	r.broadcastLobby()
	return nil
}

// RemoveGame removes an upcoming game (host only). Played games and the one
// being played are kept; the returned bool reports whether anything changed.
func (r *Room) RemoveGame(playerID string, index int) (bool, error) {
	r.mu.Lock()
	if r.hostID != playerID {
		r.mu.Unlock()
		return false, domain.ErrNotHost
	}

	removed := false
	if r.sequencer != nil {
		removed = r.sequencer.RemoveGame(index)
	} else if index >= 0 && index < len(r.playlist) {
		r.playlist = append(r.playlist[:index], r.playlist[index+1:]...)
		removed = true
	}
	r.mu.Unlock()

	if removed {
		r.broadcastLobby()
	}
	return removed, nil
}

// ReorderGames moves an upcoming game (host only)
func (r *Room) ReorderGames(playerID string, from, to int) (bool, error) {
	r.mu.Lock()
	if r.hostID != playerID {
		r.mu.Unlock()
		return false, domain.ErrNotHost
	}

	moved := false
	if r.sequencer != nil {
		moved = r.sequencer.ReorderGames(from, to)
	} else if from >= 0 && to >= 0 && from < len(r.playlist) && to < len(r.playlist) {
		item := r.playlist[from]
		r.playlist = append(r.playlist[:from], r.playlist[from+1:]...)
		r.playlist = append(r.playlist[:to], append([]domain.PlaylistItem{item}, r.playlist[to:]...)...)
		moved = true
	}
	r.mu.Unlock()

	if moved {
		r.broadcastLobby()
	}
	return moved, nil
}

// Start begins the playlist run (host only)
func (r *Room) Start(playerID string) error {
	r.mu.Lock()
	if r.hostID != playerID {
		r.mu.Unlock()
		return domain.ErrNotHost
	}
	if r.sequencer != nil {
		r.mu.Unlock()
		return domain.ErrGameAlreadyStarted
	}
	if len(r.players) < r.settings.MinPlayers {
		r.mu.Unlock()
		return domain.ErrNotEnoughPlayers
	}
	if len(r.playlist) == 0 {
		r.mu.Unlock()
		return domain.ErrEmptyPlaylist
	}

	players := append([]string(nil), r.order...)
	r.sequencer = playlist.NewSequencer(r.code, r.playlist, players, r.broadcast, r.logger)
	r.mu.Unlock()

	r.logger.Info("playlist started", "games", len(r.playlist), "players", len(players))
	r.broadcastLobby()
	r.startCurrentGame()
	return nil
}

// HandleAction forwards a player action to the running game
func (r *Room) HandleAction(playerID, action string, payload game.Payload) bool {
	return r.registry.HandleAction(r.code, playerID, action, payload)
}

// GetGameState returns the state a (re)connecting client needs
func (r *Room) GetGameState(playerID string) map[string]interface{} {
	state := map[string]interface{}{
		"lobby": r.lobbyState(),
	}

	if gameState := r.registry.GetGameState(r.code); gameState != nil {
		state["game"] = viewFor(domain.NewEvent(domain.EventGameState, r.code, gameState), playerID).Payload
	}

	r.mu.RLock()
	if r.sequencer != nil {
		state["rankings"] = r.sequencer.Rankings()
		state["playlistIndex"] = r.sequencer.Index()
	}
	r.mu.RUnlock()

	return state
}

// startCurrentGame creates and starts the session for the item under the
// playlist cursor, skipping items the registry rejects
func (r *Room) startCurrentGame() {
	for {
		r.mu.Lock()
		seq := r.sequencer
		players := append([]string(nil), r.order...)
		r.mu.Unlock()

		if seq == nil {
			return
		}

		item, ok := seq.Current()
		if !ok {
			r.finishPlaylist()
			return
		}

		session, ok := r.registry.CreateGame(domain.RoomDescriptor{
			ID:       r.code,
			GameType: item.GameType,
			Players:  players,
			Settings: item.Settings(),
		}, r.onGameEvent)
		if !ok {
			r.logger.Warn("skipping playlist item", "index", seq.Index(), "gameType", item.GameType)
			seq.Advance()
			continue
		}

		r.mu.Lock()
		r.sessionID = session.ID()
		r.mu.Unlock()

		r.registry.StartGame(r.code)
		return
	}
}

// onGameEvent is the event sink of every session this room runs
func (r *Room) onGameEvent(event *domain.GameEvent) {
	r.broadcast(event)

	if event.Type != domain.EventGameState {
		return
	}
	state, ok := event.Payload.(*domain.GameState)
	if !ok || state.Phase != domain.PhaseEnd {
		return
	}

	r.mu.Lock()
	if state.SessionID != r.sessionID || r.sequencer == nil {
		r.mu.Unlock()
		return
	}
	r.sessionID = ""
	seq := r.sequencer
	r.mu.Unlock()

	r.registry.EndGame(r.code)
	seq.AddGameScores(state.Scores)

	if !seq.Advance() {
		r.finishPlaylist()
		return
	}

	countdown := r.settings.IntermissionSeconds
	seq.StartIntermission(countdown)
	r.intermission.Arm(time.Duration(countdown)*time.Second, r.startCurrentGame)
}

func (r *Room) finishPlaylist() {
	r.mu.Lock()
	seq := r.sequencer
	if seq != nil {
		// Keep games the host added during the run
		r.playlist = seq.Items()
	}
	r.sequencer = nil
	r.mu.Unlock()

	if seq == nil {
		return
	}
	seq.EndPlaylist()
	r.broadcastLobby()
}

// Close shuts down the room
func (r *Room) Close() {
	r.mu.Lock()
	r.sequencer = nil
	r.sessionID = ""
	for playerID := range r.evictions {
		r.cancelEvictionLocked(playerID)
	}
	r.mu.Unlock()

	r.intermission.Cancel()
	r.registry.EndGame(r.code)

	r.clientsMu.Lock()
	for _, client := range r.clients {
		client.Close()
	}
	r.clients = make(map[string]ClientConnection)
	r.clientsMu.Unlock()
}

func (r *Room) normalizeItem(item domain.PlaylistItem) (domain.PlaylistItem, error) {
	if !r.registry.IsGameTypeSupported(item.GameType) {
		return item, domain.ErrUnsupportedGameType
	}
	if item.RoundCount == 0 {
		item.RoundCount = r.settings.DefaultSettings.RoundCount
	}
	if item.TimePerRound == 0 {
		item.TimePerRound = r.settings.DefaultSettings.TimePerRound
	}
	if !item.Settings().Valid() {
		return item, domain.ErrInvalidSettings
	}
	return item, nil
}

func (r *Room) lobbyState() *domain.LobbyUpdatePayload {
	r.mu.RLock()
	defer r.mu.RUnlock()

	players := make([]domain.PlayerInfo, 0, len(r.order))
	for _, id := range r.order {
		players = append(players, r.players[id].ToInfo(r.hostID))
	}

	items := r.playlist
	if r.sequencer != nil {
		items = r.sequencer.Items()
	}

	return &domain.LobbyUpdatePayload{
		Players:  players,
		HostID:   r.hostID,
		Playlist: append([]domain.PlaylistItem(nil), items...),
		CanStart: r.sequencer == nil && len(r.players) >= r.settings.MinPlayers && len(r.playlist) > 0,
		Playing:  r.sequencer != nil,
	}
}

func (r *Room) broadcastLobby() {
	r.broadcast(domain.NewEvent(domain.EventLobbyUpdate, r.code, r.lobbyState()))
}

// broadcast sends an event to every connected client
func (r *Room) broadcast(event *domain.GameEvent) {
	r.clientsMu.RLock()
	defer r.clientsMu.RUnlock()

	for playerID, client := range r.clients {
		if err := client.Send(viewFor(event, playerID)); err != nil {
			r.logger.Debug("failed to send to client", "playerId", playerID, "error", err)
		}
	}
}

// viewFor hides the word of an open guessing round from everyone but the
// explainer
func viewFor(event *domain.GameEvent, playerID string) *domain.GameEvent {
	if event.Type != domain.EventGameState {
		return event
	}
	state, ok := event.Payload.(*domain.GameState)
	if !ok || state.Phase != domain.PhaseActive {
		return event
	}
	round, ok := state.Round.(*domain.GuessRoundState)
	if !ok || round.Solved || round.Skipped || round.ExplainerID == playerID {
		return event
	}

	masked := *round
	masked.Word = ""
	view := *state
	view.Round = &masked
	filtered := *event
	filtered.Payload = &view
	return &filtered
}
