package domain

import "time"

// Settings are the per-session game parameters
type Settings struct {
	RoundCount   int `json:"roundCount"`
	TimePerRound int `json:"timePerRound"` // seconds
}

// RoundDuration returns TimePerRound as a duration
func (s Settings) RoundDuration() time.Duration {
	return time.Duration(s.TimePerRound) * time.Second
}

// Valid reports whether both values are positive
func (s Settings) Valid() bool {
	return s.RoundCount > 0 && s.TimePerRound > 0
}

// RoomDescriptor is what the room layer hands to the registry when a room
// starts playing one playlist entry
type RoomDescriptor struct {
	ID       string
	GameType GameType
	Players  []string // ordered; fixed for the session's lifetime
	Settings Settings
}

// SessionConfig is the immutable configuration of one game session
type SessionConfig struct {
	RoomID   string
	Players  []string
	Settings Settings
}

// NewSessionConfig copies the descriptor's player list and drops duplicates,
// keeping the first occurrence
func NewSessionConfig(room RoomDescriptor) SessionConfig {
	seen := make(map[string]bool, len(room.Players))
	players := make([]string, 0, len(room.Players))
	for _, id := range room.Players {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		players = append(players, id)
	}

	return SessionConfig{
		RoomID:   room.ID,
		Players:  players,
		Settings: room.Settings,
	}
}

// HasPlayer checks if the player is part of the configured player set
func (c SessionConfig) HasPlayer(playerID string) bool {
	for _, id := range c.Players {
		if id == playerID {
			return true
		}
	}
	return false
}

// GameState is the snapshot of a session sent with game_state events. It is
// rebuilt on every call and shares no memory with the session.
type GameState struct {
	SessionID        string         `json:"sessionId"`
	RoomID           string         `json:"roomId"`
	GameType         GameType       `json:"gameType"`
	Phase            Phase          `json:"phase"`
	CurrentRound     int            `json:"currentRound"`
	TotalRounds      int            `json:"totalRounds"`
	TimePerRound     int            `json:"timePerRound"`
	RemainingSeconds int            `json:"remainingSeconds"`
	Players          []string       `json:"players"`
	Scores           map[string]int `json:"scores"`
	Round            interface{}    `json:"round,omitempty"` // one of the *RoundState types; nil before round 1 and once ended
}
