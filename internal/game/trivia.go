package game

import (
	"strconv"
	"time"

	"partyhub/internal/domain"
)

// Points awarded by the trivia rule-set
const TriviaBasePoints = 100 // plus a speed bonus of up to the same amount

// ActionAnswer is the trivia action name
const ActionAnswer = "answer"

// triviaRules is the multiple-choice rule-set. A player's first answer is
// final; every correct answer scores, faster answers score more.
type triviaRules struct {
	used    []string
	current *triviaRound
}

type triviaRound struct {
	question   string
	choices    []domain.ChoiceOption
	correct    string
	answers    map[string]string
	answeredAt map[string]time.Duration
	closed     bool
	awarded    map[string]int
}

func newTrivia() *triviaRules {
	return &triviaRules{}
}

// choiceID returns the option ID for choice index i: "A", "B", ...
func choiceID(i int) string {
	if i < 26 {
		return string(rune('A' + i))
	}
	return strconv.Itoa(i)
}

func (r *triviaRules) gameType() domain.GameType {
	return domain.GameTrivia
}

func (r *triviaRules) beginRound(e *engine, n int) {
	q := e.deps.Content.Question(r.used)
	r.used = append(r.used, q.Text)

	choices := make([]domain.ChoiceOption, len(q.Choices))
	for i, label := range q.Choices {
		choices[i] = domain.ChoiceOption{ID: choiceID(i), Label: label}
	}

	answers := make(map[string]string, len(e.cfg.Players))
	for _, id := range e.cfg.Players {
		answers[id] = ""
	}

	r.current = &triviaRound{
		question:   q.Text,
		choices:    choices,
		correct:    choiceID(q.Answer),
		answers:    answers,
		answeredAt: make(map[string]time.Duration),
	}
}

func (r *triviaRules) handle(e *engine, playerID, action string, payload Payload) {
	round := r.current
	if action != ActionAnswer || round == nil || round.closed {
		return
	}
	if round.answers[playerID] != "" {
		e.logger.Debug("answer ignored: already answered", "playerId", playerID)
		return
	}

	choice, _ := payload.String("choice")
	if !round.hasChoice(choice) {
		return
	}

	round.answers[playerID] = choice
	round.answeredAt[playerID] = e.elapsed()

	answered := round.answeredCount()
	e.emitVoteReceived(playerID, answered)

	if answered == len(round.answers) {
		r.close(e)
	}
}

func (r *triviaRules) timeout(e *engine) {
	r.close(e)
}

func (r *triviaRules) close(e *engine) {
	round := r.current
	if round == nil || round.closed {
		return
	}
	round.closed = true

	round.awarded = make(map[string]int)
	for _, playerID := range e.cfg.Players {
		if round.answers[playerID] != round.correct {
			continue
		}
		points := TriviaBasePoints + e.speedBonus(TriviaBasePoints, round.answeredAt[playerID])
		round.awarded[playerID] = points
		e.addScore(playerID, points)
	}

	e.closeRound(e.deps.Timing.RevealPause)
}

func (r *triviaRules) snapshot() interface{} {
	round := r.current
	if round == nil {
		return nil
	}

	choices := make([]domain.ChoiceOption, len(round.choices))
	copy(choices, round.choices)

	state := &domain.TriviaRoundState{
		Question:      round.question,
		Choices:       choices,
		Answers:       copyVotes(round.answers),
		AnsweredCount: round.answeredCount(),
		Complete:      round.closed,
	}
	if round.closed {
		state.CorrectChoice = round.correct
		state.Awarded = copyPoints(round.awarded)
	}
	return state
}

func (r *triviaRound) hasChoice(id string) bool {
	for _, c := range r.choices {
		if c.ID == id {
			return true
		}
	}
	return false
}

func (r *triviaRound) answeredCount() int {
	n := 0
	for _, choice := range r.answers {
		if choice != "" {
			n++
		}
	}
	return n
}
