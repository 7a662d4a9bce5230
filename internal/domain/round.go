package domain

// Round-local snapshots, one per rule-set family. Maps are keyed by player ID.
// An empty string in a vote or answer map means the player has not submitted.

// ChoiceOption is one selectable answer
type ChoiceOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// ChoiceRoundState is the round snapshot of the binary-choice rule-sets
type ChoiceRoundState struct {
	Prompt         string            `json:"prompt"`
	Options        []ChoiceOption    `json:"options"`
	Votes          map[string]string `json:"votes"`
	VotedCount     int               `json:"votedCount"`
	VotingComplete bool              `json:"votingComplete"`
	Results        *VoteTally        `json:"results,omitempty"`
}

// TargetRoundState is the round snapshot of the vote-for-a-player rule-set
type TargetRoundState struct {
	Prompt         string            `json:"prompt"`
	Candidates     []string          `json:"candidates"`
	Votes          map[string]string `json:"votes"`
	VotedCount     int               `json:"votedCount"`
	VotingComplete bool              `json:"votingComplete"`
	Results        *VoteTally        `json:"results,omitempty"`
}

// GuessRoundState is the round snapshot of the free-text guessing rule-set.
// Word is present for every audience; hiding it is the sink's job.
type GuessRoundState struct {
	ExplainerID string         `json:"explainerId"`
	Word        string         `json:"word"`
	Guesses     []Guess        `json:"guesses"`
	Solved      bool           `json:"solved"`
	SolvedBy    string         `json:"solvedBy,omitempty"`
	Skipped     bool           `json:"skipped"`
	Awarded     map[string]int `json:"awarded,omitempty"`
}

// TriviaRoundState is the round snapshot of the trivia rule-set. The correct
// choice is only filled in once the round closed.
type TriviaRoundState struct {
	Question      string            `json:"question"`
	Choices       []ChoiceOption    `json:"choices"`
	Answers       map[string]string `json:"answers"`
	AnsweredCount int               `json:"answeredCount"`
	Complete      bool              `json:"complete"`
	CorrectChoice string            `json:"correctChoice,omitempty"`
	Awarded       map[string]int    `json:"awarded,omitempty"`
}
