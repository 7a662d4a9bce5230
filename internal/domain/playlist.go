package domain

// PlaylistItem is one game configuration in a playlist
type PlaylistItem struct {
	GameType     GameType `json:"gameType"`
	RoundCount   int      `json:"roundCount"`
	TimePerRound int      `json:"timePerRound"`
}

// Settings returns the session settings for this item
func (i PlaylistItem) Settings() Settings {
	return Settings{RoundCount: i.RoundCount, TimePerRound: i.TimePerRound}
}

// Ranking is one line of a leaderboard
type Ranking struct {
	PlayerID string `json:"playerId"`
	Score    int    `json:"score"`
	Rank     int    `json:"rank"` // 1-based position
}
