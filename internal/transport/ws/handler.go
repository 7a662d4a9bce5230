package ws

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"partyhub/internal/app"
)

// RateLimit is the per-client budget for game actions
type RateLimit struct {
	PerSecond float64
	Burst     int
}

// Handler handles WebSocket connections
type Handler struct {
	hub      *app.Hub
	limit    RateLimit
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *app.Hub, limit RateLimit, logger *slog.Logger) *Handler {
	return &Handler{
		hub:   hub,
		limit: limit,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// Allow all origins for development
				// In production, you should validate the origin
				return true
			},
		},
		logger: logger,
	}
}

// ServeHTTP upgrades a connection for a room. Without a playerId query
// parameter the client gets a fresh ID and must have a free seat; with one,
// it resumes that player's seat if the room still knows them.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	roomCode := strings.ToUpper(query.Get("roomCode"))
	if roomCode == "" {
		http.Error(w, "roomCode is required", http.StatusBadRequest)
		return
	}

	room, err := h.hub.GetRoom(roomCode)
	if err != nil {
		http.Error(w, "Room not found", http.StatusNotFound)
		return
	}

	playerID := query.Get("playerId")
	resuming := playerID != ""
	if !resuming {
		if !room.CanJoin() {
			http.Error(w, "Cannot join this room", http.StatusForbidden)
			return
		}
		playerID = uuid.New().String()
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error
		h.logger.Warn("websocket upgrade failed", "roomCode", roomCode, "error", err)
		return
	}

	limiter := rate.NewLimiter(rate.Limit(h.limit.PerSecond), h.limit.Burst)
	client := NewClient(conn, room, playerID, limiter, h.logger)
	room.RegisterClient(playerID, client)

	log := h.logger.With("roomCode", roomCode, "playerId", playerID)
	if resuming {
		if _, err := room.ReconnectPlayer(playerID); err != nil {
			// Unknown to the room: the client has to join_lobby like a new one
			log.Debug("resume failed, waiting for join", "error", err)
		} else {
			log.Info("player resumed")
			client.sendConnected()
		}
	} else {
		log.Info("websocket connected")
	}

	client.Run()
	log.Debug("websocket closed")
}
