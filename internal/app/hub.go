package app

import (
	"crypto/rand"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"partyhub/internal/domain"
	"partyhub/internal/game"
	"partyhub/internal/timer"
)

const (
	// DefaultRoomCodeLength is the default length for room codes
	DefaultRoomCodeLength = 6

	// StaleRoomTimeout is how long before an empty room is cleaned up
	StaleRoomTimeout = 2 * time.Hour

	cleanupInterval = 10 * time.Minute
)

// RoomCodeChars are characters used for room codes (no ambiguous chars)
const RoomCodeChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// HubOptions configure a Hub
type HubOptions struct {
	RoomCodeLength int
	Room           RoomSettings
}

// Hub manages all active rooms. Rooms share one game registry keyed by
// room code.
type Hub struct {
	rooms    map[string]*Room
	mu       sync.RWMutex
	opts     HubOptions
	registry *game.Registry
	clock    timer.Clock
	logger   *slog.Logger
	done     chan struct{}
	stopOnce sync.Once
}

// NewHub creates a new hub and starts its cleanup loop
func NewHub(registry *game.Registry, clock timer.Clock, opts HubOptions, logger *slog.Logger) *Hub {
	if opts.RoomCodeLength <= 0 {
		opts.RoomCodeLength = DefaultRoomCodeLength
	}

	hub := &Hub{
		rooms:    make(map[string]*Room),
		opts:     opts,
		registry: registry,
		clock:    clock,
		logger:   logger,
		done:     make(chan struct{}),
	}

	go hub.cleanupLoop()

	return hub
}

// Registry returns the game registry shared by the hub's rooms
func (h *Hub) Registry() *game.Registry {
	return h.registry
}

// CreateRoom creates a new room with a unique code
func (h *Hub) CreateRoom() (*Room, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	var roomCode string
	for attempts := 0; attempts < 10; attempts++ {
		roomCode = h.generateRoomCode()
		if _, exists := h.rooms[roomCode]; !exists {
			break
		}
	}

	if _, exists := h.rooms[roomCode]; exists {
		return nil, fmt.Errorf("failed to generate unique room code")
	}

	room := NewRoom(roomCode, h.opts.Room, h.registry, h.clock, h.logger)
	h.rooms[roomCode] = room

	h.logger.Info("room created", "roomCode", roomCode)

	return room, nil
}

// GetRoom returns a room by code
func (h *Hub) GetRoom(roomCode string) (*Room, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	room, ok := h.rooms[roomCode]
	if !ok {
		return nil, domain.ErrRoomNotFound
	}

	return room, nil
}

// DeleteRoom closes and removes a room
func (h *Hub) DeleteRoom(roomCode string) {
	h.mu.Lock()
	room, ok := h.rooms[roomCode]
	delete(h.rooms, roomCode)
	h.mu.Unlock()

	if ok {
		room.Close()
		h.logger.Info("room deleted", "roomCode", roomCode)
	}
}

// GetRoomCount returns the number of active rooms
func (h *Hub) GetRoomCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms)
}

// GetTotalPlayerCount returns the total number of players across all rooms
func (h *Hub) GetTotalPlayerCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, room := range h.rooms {
		total += room.GetPlayerCount()
	}
	return total
}

// Close shuts down the hub and all rooms
func (h *Hub) Close() {
	h.stopOnce.Do(func() { close(h.done) })

	h.mu.Lock()
	rooms := h.rooms
	h.rooms = make(map[string]*Room)
	h.mu.Unlock()

	for _, room := range rooms {
		room.Close()
	}
	h.registry.Close()
}

// generateRoomCode generates a random room code
func (h *Hub) generateRoomCode() string {
	b := make([]byte, h.opts.RoomCodeLength)
	rand.Read(b)

	code := make([]byte, h.opts.RoomCodeLength)
	for i := range code {
		code[i] = RoomCodeChars[int(b[i])%len(RoomCodeChars)]
	}

	return string(code)
}

// cleanupLoop periodically cleans up stale rooms
func (h *Hub) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-h.done:
			return
		case <-ticker.C:
			h.cleanupStaleRooms()
		}
	}
}

// cleanupStaleRooms removes rooms that have no players and are old
func (h *Hub) cleanupStaleRooms() {
	now := h.clock.Now()

	h.mu.Lock()
	stale := make([]*Room, 0)
	for roomCode, room := range h.rooms {
		if room.GetPlayerCount() == 0 && now.Sub(room.GetCreatedAt()) > StaleRoomTimeout {
			stale = append(stale, room)
			delete(h.rooms, roomCode)
		}
	}
	h.mu.Unlock()

	for _, room := range stale {
		room.Close()
		h.logger.Info("stale room cleaned up", "roomCode", room.GetRoomCode())
	}
}
