package domain

import "time"

// ConnectionStatus represents a player's connection state
type ConnectionStatus string

const (
	StatusConnected    ConnectionStatus = "CONNECTED"
	StatusDisconnected ConnectionStatus = "DISCONNECTED"
)

// Player represents a lobby member of a room
type Player struct {
	ID       string           `json:"id"`
	Nickname string           `json:"nickname"`
	Status   ConnectionStatus `json:"status"`
	JoinedAt time.Time        `json:"joinedAt"`
}

// NewPlayer creates a new player with the given ID and nickname
func NewPlayer(id, nickname string) *Player {
	return &Player{
		ID:       id,
		Nickname: nickname,
		Status:   StatusConnected,
		JoinedAt: time.Now(),
	}
}

// IsConnected returns true if the player is currently connected
func (p *Player) IsConnected() bool {
	return p.Status == StatusConnected
}

// Disconnect marks the player as disconnected
func (p *Player) Disconnect() {
	p.Status = StatusDisconnected
}

// Reconnect marks the player as connected
func (p *Player) Reconnect() {
	p.Status = StatusConnected
}

// PlayerInfo is the public view of a player
type PlayerInfo struct {
	ID       string           `json:"id"`
	Nickname string           `json:"nickname"`
	Status   ConnectionStatus `json:"status"`
	IsHost   bool             `json:"isHost"`
}

// ToInfo converts a Player to PlayerInfo
func (p *Player) ToInfo(hostID string) PlayerInfo {
	return PlayerInfo{
		ID:       p.ID,
		Nickname: p.Nickname,
		Status:   p.Status,
		IsHost:   p.ID == hostID,
	}
}

// LobbyUpdatePayload is sent when lobby membership or the playlist changes
type LobbyUpdatePayload struct {
	Players  []PlayerInfo   `json:"players"`
	HostID   string         `json:"hostId"`
	Playlist []PlaylistItem `json:"playlist"`
	CanStart bool           `json:"canStart"`
	Playing  bool           `json:"playing"`
}
