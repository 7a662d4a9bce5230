package domain

import "time"

// EventType represents the type of game event
type EventType string

const (
	EventGameState     EventType = "game_state"
	EventVoteReceived  EventType = "vote_received"
	EventIntermission  EventType = "intermission"
	EventPlaylistEnded EventType = "playlist_ended"

	// Room-level events, produced outside the game core
	EventLobbyUpdate EventType = "lobby_update"
)

// GameEvent represents an event that occurred in a room
type GameEvent struct {
	Type      EventType   `json:"type"`
	RoomID    string      `json:"roomId"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewEvent creates a new game event
func NewEvent(eventType EventType, roomID string, payload interface{}) *GameEvent {
	return &GameEvent{
		Type:      eventType,
		RoomID:    roomID,
		Payload:   payload,
		Timestamp: time.Now(),
	}
}

// EventSink receives every event produced for one room. It is responsible
// for serialization, delivery and audience filtering.
type EventSink func(event *GameEvent)

// Payload types for different events

// VoteReceivedPayload is sent when a vote or answer is accepted
type VoteReceivedPayload struct {
	VoterID     string `json:"voterId"`
	VotedCount  int    `json:"votedCount"`
	TotalVoters int    `json:"totalVoters"`
}

// NextGameInfo describes the upcoming playlist item during an intermission
type NextGameInfo struct {
	GameType     GameType `json:"gameType"`
	Name         string   `json:"name"`
	Icon         string   `json:"icon"`
	RoundCount   int      `json:"roundCount"`
	TimePerRound int      `json:"timePerRound"`
}

// IntermissionPayload is sent between two playlist items
type IntermissionPayload struct {
	Rankings         []Ranking     `json:"rankings"`
	NextGame         *NextGameInfo `json:"nextGame,omitempty"`
	CurrentIndex     int           `json:"currentIndex"`
	TotalGames       int           `json:"totalGames"`
	CountdownSeconds int           `json:"countdownSeconds"`
}

// PlaylistEndedPayload is sent once the last playlist item finished
type PlaylistEndedPayload struct {
	Rankings []Ranking `json:"rankings"`
}
