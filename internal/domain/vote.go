package domain

// VoteTally is the outcome of a closed voting round
type VoteTally struct {
	Counts  map[string]int `json:"counts"`           // choice or candidate -> votes
	Winner  string         `json:"winner,omitempty"` // empty on a tie
	Tie     bool           `json:"tie"`
	Awarded map[string]int `json:"awarded"` // player -> points gained this round
}

// Guess is one free-text guess
type Guess struct {
	PlayerID  string `json:"playerId"`
	Text      string `json:"text"`
	ElapsedMs int64  `json:"elapsedMs"`
	Correct   bool   `json:"correct"`
	Close     bool   `json:"close"`
}
