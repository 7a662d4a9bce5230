package ws

import (
	"encoding/json"
	"time"

	"partyhub/internal/domain"
)

// MessageType represents the type of WebSocket message
type MessageType string

// Client → Server message types
const (
	MsgJoinLobby    MessageType = "join_lobby"
	MsgSetPlaylist  MessageType = "set_playlist"
	MsgAddGame      MessageType = "add_game"
	MsgRemoveGame   MessageType = "remove_game"
	MsgReorderGames MessageType = "reorder_games"
	MsgStartGame    MessageType = "start_game"
	MsgAction       MessageType = "action"
	MsgPing         MessageType = "ping"
)

// Server → Client message types. Game events are sent as they come from the
// room, with their own type.
const (
	MsgConnected MessageType = "connected"
	MsgError     MessageType = "error"
	MsgPong      MessageType = "pong"
)

// ClientMessage represents a message from client to server. Payload is
// decoded once the type is known.
type ClientMessage struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// ServerMessage represents a message from server to client
type ServerMessage struct {
	Type      MessageType `json:"type"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp string      `json:"timestamp"`
}

// NewServerMessage creates a new server message with current timestamp
func NewServerMessage(msgType MessageType, payload interface{}) *ServerMessage {
	return &ServerMessage{
		Type:      msgType,
		Payload:   payload,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// Client message payloads

// JoinLobbyPayload is the payload for join_lobby message
type JoinLobbyPayload struct {
	Nickname string `json:"nickname"`
}

// SetPlaylistPayload is the payload for set_playlist message
type SetPlaylistPayload struct {
	Items []domain.PlaylistItem `json:"items"`
}

// AddGamePayload is the payload for add_game message
type AddGamePayload struct {
	Item domain.PlaylistItem `json:"item"`
}

// RemoveGamePayload is the payload for remove_game message
type RemoveGamePayload struct {
	Index int `json:"index"`
}

// ReorderGamesPayload is the payload for reorder_games message
type ReorderGamesPayload struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// ActionPayload is the payload for action message. Name and Payload are
// handed to the running game unchanged.
type ActionPayload struct {
	Name    string                 `json:"name"`
	Payload map[string]interface{} `json:"payload"`
}

// Server message payloads

// ConnectedPayload is the payload for connected message
type ConnectedPayload struct {
	PlayerID  string                 `json:"playerId"`
	RoomCode  string                 `json:"roomCode"`
	GameState map[string]interface{} `json:"gameState"`
}

// ErrorPayload is the payload for error message
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes
const (
	ErrCodeInvalidMessage = "INVALID_MESSAGE"
	ErrCodeRoomNotFound   = "ROOM_NOT_FOUND"
	ErrCodeRoomFull       = "ROOM_FULL"
	ErrCodeInvalidAction  = "INVALID_ACTION"
	ErrCodeNotHost        = "NOT_HOST"
	ErrCodeRateLimited    = "RATE_LIMITED"
	ErrCodeInternalError  = "INTERNAL_ERROR"
)

// errorFor maps a room error to an error payload
func errorFor(err error) *ErrorPayload {
	switch err {
	case domain.ErrRoomFull:
		return &ErrorPayload{Code: ErrCodeRoomFull, Message: "Room is full"}
	case domain.ErrNotHost:
		return &ErrorPayload{Code: ErrCodeNotHost, Message: "Only the host can do that"}
	case domain.ErrGameAlreadyStarted:
		return &ErrorPayload{Code: ErrCodeInvalidAction, Message: "Game has already started"}
	case domain.ErrNotEnoughPlayers:
		return &ErrorPayload{Code: ErrCodeInvalidAction, Message: "Not enough players to start"}
	case domain.ErrEmptyPlaylist:
		return &ErrorPayload{Code: ErrCodeInvalidAction, Message: "The playlist is empty"}
	case domain.ErrUnsupportedGameType:
		return &ErrorPayload{Code: ErrCodeInvalidMessage, Message: "Unsupported game type"}
	case domain.ErrInvalidSettings:
		return &ErrorPayload{Code: ErrCodeInvalidMessage, Message: "Round count and time per round must be positive"}
	case domain.ErrEmptyNickname:
		return &ErrorPayload{Code: ErrCodeInvalidMessage, Message: "Nickname is required"}
	case domain.ErrPlayerNotFound:
		return &ErrorPayload{Code: ErrCodeInvalidAction, Message: "Join the lobby first"}
	default:
		return &ErrorPayload{Code: ErrCodeInternalError, Message: err.Error()}
	}
}
