package ws

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"partyhub/internal/app"
	"partyhub/internal/game"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 4096

	// Size of the send channel buffer
	sendBufferSize = 256
)

// Client represents a WebSocket client connection
type Client struct {
	conn     *websocket.Conn
	room     *app.Room
	playerID string
	limiter  *rate.Limiter
	send     chan []byte
	done     chan struct{}
	logger   *slog.Logger
	mu       sync.Mutex
	closed   bool
}

// NewClient creates a new WebSocket client. Game actions beyond limiter's
// rate are dropped.
func NewClient(conn *websocket.Conn, room *app.Room, playerID string, limiter *rate.Limiter, logger *slog.Logger) *Client {
	return &Client{
		conn:     conn,
		room:     room,
		playerID: playerID,
		limiter:  limiter,
		send:     make(chan []byte, sendBufferSize),
		done:     make(chan struct{}),
		logger:   logger.With("roomCode", room.GetRoomCode(), "playerId", playerID),
	}
}

// GetPlayerID returns the player ID for this client
func (c *Client) GetPlayerID() string {
	return c.playerID
}

// Send implements app.ClientConnection interface
func (c *Client) Send(message interface{}) error {
	data, err := json.Marshal(message)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}

	select {
	case c.send <- data:
		return nil
	default:
		// Buffer full, message dropped
		c.logger.Warn("send buffer full, message dropped")
		return nil
	}
}

// Close implements app.ClientConnection interface
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}

	c.closed = true
	close(c.done)
	return c.conn.Close()
}

// Run starts the client's read and write pumps
func (c *Client) Run() {
	go c.writePump()
	c.readPump()
}

// readPump pumps messages from the WebSocket connection
func (c *Client) readPump() {
	defer func() {
		// A resumed seat belongs to the newer connection
		if c.room.UnregisterClient(c.playerID, c) {
			c.room.DisconnectPlayer(c.playerID)
		}
		c.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Debug("websocket read error", "error", err)
			}
			break
		}

		c.handleMessage(message)
	}
}

// writePump pumps messages from the send channel to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			return
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Add queued messages to the current websocket message
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleMessage processes an incoming message from the client
func (c *Client) handleMessage(data []byte) {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		c.sendError(&ErrorPayload{Code: ErrCodeInvalidMessage, Message: "Invalid message format"})
		return
	}

	var err error
	switch msg.Type {
	case MsgJoinLobby:
		err = c.handleJoinLobby(msg.Payload)
	case MsgSetPlaylist:
		err = c.handleSetPlaylist(msg.Payload)
	case MsgAddGame:
		err = c.handleAddGame(msg.Payload)
	case MsgRemoveGame:
		err = c.handleRemoveGame(msg.Payload)
	case MsgReorderGames:
		err = c.handleReorderGames(msg.Payload)
	case MsgStartGame:
		err = c.room.Start(c.playerID)
	case MsgAction:
		err = c.handleAction(msg.Payload)
	case MsgPing:
		c.Send(NewServerMessage(MsgPong, nil))
	default:
		c.sendError(&ErrorPayload{Code: ErrCodeInvalidMessage, Message: "Unknown message type"})
	}

	if err != nil {
		c.sendError(errorFor(err))
	}
}

// decode unmarshals a payload, reporting malformed input to the client
func (c *Client) decode(raw json.RawMessage, v interface{}) bool {
	if len(raw) == 0 || json.Unmarshal(raw, v) != nil {
		c.sendError(&ErrorPayload{Code: ErrCodeInvalidMessage, Message: "Invalid payload"})
		return false
	}
	return true
}

// handleJoinLobby handles a join_lobby message
func (c *Client) handleJoinLobby(raw json.RawMessage) error {
	var payload JoinLobbyPayload
	if !c.decode(raw, &payload) {
		return nil
	}

	if _, err := c.room.AddPlayer(c.playerID, payload.Nickname); err != nil {
		return err
	}

	c.sendConnected()
	return nil
}

// handleSetPlaylist handles a set_playlist message
func (c *Client) handleSetPlaylist(raw json.RawMessage) error {
	var payload SetPlaylistPayload
	if !c.decode(raw, &payload) {
		return nil
	}
	return c.room.SetPlaylist(c.playerID, payload.Items)
}

// handleAddGame handles an add_game message
func (c *Client) handleAddGame(raw json.RawMessage) error {
	var payload AddGamePayload
	if !c.decode(raw, &payload) {
		return nil
	}
	return c.room.AddGame(c.playerID, payload.Item)
}

// handleRemoveGame handles a remove_game message
func (c *Client) handleRemoveGame(raw json.RawMessage) error {
	var payload RemoveGamePayload
	if !c.decode(raw, &payload) {
		return nil
	}

	removed, err := c.room.RemoveGame(c.playerID, payload.Index)
	if err == nil && !removed {
		c.sendError(&ErrorPayload{Code: ErrCodeInvalidAction, Message: "That game cannot be removed"})
	}
	return err
}

// handleReorderGames handles a reorder_games message
func (c *Client) handleReorderGames(raw json.RawMessage) error {
	var payload ReorderGamesPayload
	if !c.decode(raw, &payload) {
		return nil
	}

	moved, err := c.room.ReorderGames(c.playerID, payload.From, payload.To)
	if err == nil && !moved {
		c.sendError(&ErrorPayload{Code: ErrCodeInvalidAction, Message: "That game cannot be moved"})
	}
	return err
}

// handleAction forwards a game action. Invalid or late actions are dropped by
// the game itself without a reply.
func (c *Client) handleAction(raw json.RawMessage) error {
	if !c.limiter.Allow() {
		c.sendError(&ErrorPayload{Code: ErrCodeRateLimited, Message: "Too many actions"})
		return nil
	}

	var payload ActionPayload
	if !c.decode(raw, &payload) {
		return nil
	}
	if payload.Name == "" {
		c.sendError(&ErrorPayload{Code: ErrCodeInvalidMessage, Message: "Action name is required"})
		return nil
	}

	if !c.room.HandleAction(c.playerID, payload.Name, game.Payload(payload.Payload)) {
		c.sendError(&ErrorPayload{Code: ErrCodeInvalidAction, Message: "No game is running"})
	}
	return nil
}

// sendConnected sends the connected message to the client
func (c *Client) sendConnected() {
	payload := &ConnectedPayload{
		PlayerID:  c.playerID,
		RoomCode:  c.room.GetRoomCode(),
		GameState: c.room.GetGameState(c.playerID),
	}

	c.Send(NewServerMessage(MsgConnected, payload))
}

// sendError sends an error message to the client
func (c *Client) sendError(payload *ErrorPayload) {
	c.Send(NewServerMessage(MsgError, payload))
}
