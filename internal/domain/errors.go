package domain

import "errors"

// Domain errors
var (
	ErrRoomNotFound        = errors.New("room not found")
	ErrRoomFull            = errors.New("room is full")
	ErrGameAlreadyStarted  = errors.New("game already started")
	ErrNotEnoughPlayers    = errors.New("not enough players to start")
	ErrPlayerNotFound      = errors.New("player not found")
	ErrNotHost             = errors.New("only host can perform this action")
	ErrEmptyNickname       = errors.New("nickname cannot be empty")
	ErrUnsupportedGameType = errors.New("unsupported game type")
	ErrEmptyPlaylist       = errors.New("playlist is empty")
	ErrInvalidSettings     = errors.New("round count and time per round must be positive")
)
