package game

import (
	"strings"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/cases"

	"partyhub/internal/domain"
)

// Points awarded by the guessing rule-set
const (
	GuessBasePoints = 100 // plus a speed bonus of up to the same amount
	ExplainerPoints = 50
)

// Guessing action names
const (
	ActionGuess = "guess"
	ActionSkip  = "skip"
)

// closeGuessDistance is the largest edit distance still flagged as close
const closeGuessDistance = 2

// guessRules is the free-text guessing rule-set. Explainers rotate through
// the configured players; the first correct guess solves the round.
type guessRules struct {
	used    []string
	current *guessRound
}

type guessRound struct {
	explainerID string
	word        string
	folded      string
	guesses     []domain.Guess
	closed      bool
	solvedBy    string
	skipped     bool
	awarded     map[string]int
}

func newWordExplain() *guessRules {
	return &guessRules{}
}

// explainerFor returns the explainer of round n (1-indexed)
func explainerFor(players []string, n int) string {
	if len(players) == 0 || n < 1 {
		return ""
	}
	return players[(n-1)%len(players)]
}

// normalize trims surrounding space and case-folds s
func normalize(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

func (r *guessRules) gameType() domain.GameType {
	return domain.GameWordExplain
}

func (r *guessRules) beginRound(e *engine, n int) {
	word := e.deps.Content.Word(r.used)
	r.used = append(r.used, word)
	r.current = &guessRound{
		explainerID: explainerFor(e.cfg.Players, n),
		word:        word,
		folded:      normalize(word),
		guesses:     make([]domain.Guess, 0),
	}
}

func (r *guessRules) handle(e *engine, playerID, action string, payload Payload) {
	round := r.current
	if round == nil || round.closed {
		return
	}

	switch action {
	case ActionGuess:
		if playerID == round.explainerID {
			e.logger.Debug("guess ignored: explainer", "playerId", playerID)
			return
		}
		text, _ := payload.String("text")
		r.guess(e, playerID, text)
	case ActionSkip:
		if playerID != round.explainerID {
			return
		}
		round.skipped = true
		r.close(e)
	}
}

func (r *guessRules) guess(e *engine, playerID, text string) {
	round := r.current

	folded := normalize(text)
	if folded == "" {
		return
	}

	elapsed := e.elapsed()
	g := domain.Guess{
		PlayerID:  playerID,
		Text:      strings.TrimSpace(text),
		ElapsedMs: elapsed.Milliseconds(),
		Correct:   folded == round.folded,
	}
	if !g.Correct {
		g.Close = levenshtein.ComputeDistance(folded, round.folded) <= closeGuessDistance
	}
	round.guesses = append(round.guesses, g)

	if !g.Correct {
		e.emitState()
		return
	}

	round.solvedBy = playerID
	round.awarded = map[string]int{
		playerID: GuessBasePoints + e.speedBonus(GuessBasePoints, elapsed),
	}
	if round.explainerID != "" {
		round.awarded[round.explainerID] += ExplainerPoints
	}
	for id, points := range round.awarded {
		e.addScore(id, points)
	}

	r.close(e)
}

func (r *guessRules) timeout(e *engine) {
	r.close(e)
}

func (r *guessRules) close(e *engine) {
	if r.current == nil || r.current.closed {
		return
	}
	r.current.closed = true
	e.closeRound(e.deps.Timing.RevealPause)
}

func (r *guessRules) snapshot() interface{} {
	round := r.current
	if round == nil {
		return nil
	}

	guesses := make([]domain.Guess, len(round.guesses))
	copy(guesses, round.guesses)

	return &domain.GuessRoundState{
		ExplainerID: round.explainerID,
		Word:        round.word,
		Guesses:     guesses,
		Solved:      round.solvedBy != "",
		SolvedBy:    round.solvedBy,
		Skipped:     round.skipped,
		Awarded:     copyPoints(round.awarded),
	}
}
