// Package game runs game sessions: one state machine per room that advances
// through timed rounds, collects player input and keeps scores.
package game

import (
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"partyhub/internal/content"
	"partyhub/internal/domain"
	"partyhub/internal/timer"
)

// Session is one running game for one room's fixed player set
type Session interface {
	ID() string
	Start()
	HandleAction(playerID, action string, payload Payload)
	State() *domain.GameState
	GameType() domain.GameType
	Destroy()
}

// Payload is the decoded body of a player action
type Payload map[string]interface{}

// String returns the string value stored under key
func (p Payload) String(key string) (string, bool) {
	if p == nil {
		return "", false
	}
	s, ok := p[key].(string)
	return s, ok
}

// Timing holds the fixed pauses between rounds
type Timing struct {
	VoteGrace   time.Duration // after a voting round closed
	RevealPause time.Duration // after a guessing or trivia round closed
	ScoresPause time.Duration // after the final round closed
}

// DefaultTiming returns the default pauses
func DefaultTiming() Timing {
	return Timing{
		VoteGrace:   5 * time.Second,
		RevealPause: 3 * time.Second,
		ScoresPause: 5 * time.Second,
	}
}

// Deps are the collaborators every session is built with
type Deps struct {
	Clock   timer.Clock
	Logger  *slog.Logger
	Content content.Library
	Timing  Timing
}

// rules is the rule-set specific part of a session. Every method is called
// with the engine lock held.
type rules interface {
	gameType() domain.GameType
	// beginRound replaces the round-local state with a fresh one for round n
	beginRound(e *engine, n int)
	handle(e *engine, playerID, action string, payload Payload)
	// timeout closes the open round as if every missing input was withheld
	timeout(e *engine)
	// snapshot returns a copy of the round-local state
	snapshot() interface{}
}

// engine is the state machine shared by all rule-sets
type engine struct {
	id     string
	cfg    domain.SessionConfig
	deps   Deps
	rules  rules
	logger *slog.Logger

	mu          sync.Mutex
	phase       domain.Phase
	round       int
	scores      map[string]int
	roundStart  time.Time
	roundEndsAt time.Time
	slot        *timer.Slot
	destroyed   bool

	sink     domain.EventSink
	outbox   []*domain.GameEvent
	draining bool
}

func newEngine(cfg domain.SessionConfig, sink domain.EventSink, deps Deps, r rules) *engine {
	id := uuid.New().String()

	scores := make(map[string]int, len(cfg.Players))
	for _, playerID := range cfg.Players {
		scores[playerID] = 0
	}

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &engine{
		id:    id,
		cfg:   cfg,
		deps:  deps,
		rules: r,
		logger: logger.With(
			"roomId", cfg.RoomID,
			"sessionId", id,
			"gameType", r.gameType(),
		),
		phase:  domain.PhasePreparation,
		scores: scores,
		slot:   timer.NewSlot(deps.Clock),
		sink:   sink,
	}
}

// ID returns the unique session identifier
func (e *engine) ID() string {
	return e.id
}

// GameType returns the rule-set identity
func (e *engine) GameType() domain.GameType {
	return e.rules.gameType()
}

// Start opens round 1. Only the first call has an effect.
func (e *engine) Start() {
	e.run(func() {
		if e.destroyed || e.phase != domain.PhasePreparation {
			e.logger.Debug("start ignored", "phase", e.phase)
			return
		}

		e.logger.Info("session started",
			"players", len(e.cfg.Players),
			"rounds", e.cfg.Settings.RoundCount,
			"timePerRound", e.cfg.Settings.TimePerRound,
		)

		e.round = 0
		e.setPhase(domain.PhaseActive)
		e.nextRound()
	})
}

// HandleAction forwards a player action to the rule-set. Input outside the
// active phase or from a non-participant is dropped.
func (e *engine) HandleAction(playerID, action string, payload Payload) {
	e.run(func() {
		if e.destroyed || !e.phase.AcceptsInput() {
			e.logger.Debug("action ignored: not accepting input", "playerId", playerID, "action", action, "phase", e.phase)
			return
		}
		if !e.cfg.HasPlayer(playerID) {
			e.logger.Debug("action ignored: not a participant", "playerId", playerID, "action", action)
			return
		}
		e.rules.handle(e, playerID, action, payload)
	})
}

// State returns a fresh snapshot of the session
func (e *engine) State() *domain.GameState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stateLocked()
}

// Destroy cancels every pending timer. Safe to call more than once.
func (e *engine) Destroy() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.slot.Cancel() {
		e.logger.Debug("pending timer cancelled")
	}
	if !e.destroyed {
		e.destroyed = true
		e.logger.Info("session destroyed", "round", e.round, "phase", e.phase)
	}
}

// run executes fn under the lock and delivers the events it produced
func (e *engine) run(fn func()) {
	e.mu.Lock()
	fn()
	e.mu.Unlock()

	e.flush()
}

// flush delivers queued events in order. Only one goroutine drains at a time;
// events queued by a sink that calls back into the session are delivered by
// the drainer already running.
func (e *engine) flush() {
	e.mu.Lock()
	if e.draining {
		e.mu.Unlock()
		return
	}
	e.draining = true

	for len(e.outbox) > 0 {
		event := e.outbox[0]
		e.outbox = e.outbox[1:]
		e.mu.Unlock()

		if e.sink != nil {
			e.sink(event)
		}

		e.mu.Lock()
	}

	e.draining = false
	e.outbox = nil
	e.mu.Unlock()
}

// nextRound advances to the next round or ends the session
func (e *engine) nextRound() {
	next := e.round + 1
	if next > e.cfg.Settings.RoundCount {
		e.slot.Cancel()
		e.setPhase(domain.PhaseEnd)
		e.logger.Info("session ended", "scores", e.scores)
		e.emitState()
		return
	}

	e.round = next
	e.setPhase(domain.PhaseActive)
	e.roundStart = e.deps.Clock.Now()
	e.roundEndsAt = e.roundStart.Add(e.cfg.Settings.RoundDuration())
	e.rules.beginRound(e, next)

	round := next
	e.slot.Arm(e.cfg.Settings.RoundDuration(), func() {
		e.run(func() {
			if e.destroyed || e.round != round || e.phase != domain.PhaseActive {
				return
			}
			e.logger.Debug("round timer expired", "round", round)
			e.rules.timeout(e)
		})
	})

	e.logger.Debug("round started", "round", round)
	e.emitState()
}

// closeRound cancels the round timer, publishes the closed round and
// schedules the next one after pause. The final round is followed by the
// scores phase instead of a reveal.
func (e *engine) closeRound(pause time.Duration) {
	e.slot.Cancel()

	if e.round >= e.cfg.Settings.RoundCount {
		e.setPhase(domain.PhaseScores)
		pause = e.deps.Timing.ScoresPause
	} else {
		e.setPhase(domain.PhaseReveal)
	}

	e.logger.Info("round closed", "round", e.round)
	e.emitState()

	round := e.round
	e.slot.Arm(pause, func() {
		e.run(func() {
			if e.destroyed || e.round != round {
				return
			}
			if e.phase != domain.PhaseReveal && e.phase != domain.PhaseScores {
				return
			}
			e.nextRound()
		})
	})
}

func (e *engine) setPhase(phase domain.Phase) {
	if e.phase == phase {
		return
	}
	if !e.phase.CanTransitionTo(phase) {
		e.logger.Warn("unexpected phase transition", "from", e.phase, "to", phase)
	}
	e.phase = phase
}

// addScore credits points to a configured player. Scores never decrease.
func (e *engine) addScore(playerID string, points int) {
	if points <= 0 {
		return
	}
	if _, ok := e.scores[playerID]; !ok {
		return
	}
	e.scores[playerID] += points
}

// elapsed returns how long the current round has been open, capped at the round length
func (e *engine) elapsed() time.Duration {
	d := e.deps.Clock.Now().Sub(e.roundStart)
	if d < 0 {
		return 0
	}
	if total := e.cfg.Settings.RoundDuration(); d > total {
		return total
	}
	return d
}

// speedBonus scales limit linearly with the fraction of the round still left
// after elapsed: limit when answered instantly, zero at the buzzer.
func (e *engine) speedBonus(limit int, elapsed time.Duration) int {
	total := e.cfg.Settings.RoundDuration()
	if total <= 0 {
		return 0
	}
	remaining := total - elapsed
	if remaining < 0 {
		remaining = 0
	}
	if remaining > total {
		remaining = total
	}
	return int(math.Round(float64(limit) * float64(remaining) / float64(total)))
}

func (e *engine) emit(eventType domain.EventType, payload interface{}) {
	e.outbox = append(e.outbox, domain.NewEvent(eventType, e.cfg.RoomID, payload))
}

func (e *engine) emitState() {
	e.emit(domain.EventGameState, e.stateLocked())
}

func (e *engine) emitVoteReceived(voterID string, voted int) {
	e.emit(domain.EventVoteReceived, &domain.VoteReceivedPayload{
		VoterID:     voterID,
		VotedCount:  voted,
		TotalVoters: len(e.cfg.Players),
	})
}

func (e *engine) stateLocked() *domain.GameState {
	players := make([]string, len(e.cfg.Players))
	copy(players, e.cfg.Players)

	scores := make(map[string]int, len(e.scores))
	for id, score := range e.scores {
		scores[id] = score
	}

	state := &domain.GameState{
		SessionID:    e.id,
		RoomID:       e.cfg.RoomID,
		GameType:     e.rules.gameType(),
		Phase:        e.phase,
		CurrentRound: e.round,
		TotalRounds:  e.cfg.Settings.RoundCount,
		TimePerRound: e.cfg.Settings.TimePerRound,
		Players:      players,
		Scores:       scores,
	}

	if e.phase == domain.PhaseActive {
		remaining := e.roundEndsAt.Sub(e.deps.Clock.Now())
		if remaining > 0 {
			state.RemainingSeconds = int(math.Ceil(remaining.Seconds()))
		}
	}

	// The closed final round was already published in the scores phase
	if e.round > 0 && e.phase != domain.PhaseEnd {
		state.Round = e.rules.snapshot()
	}

	return state
}

func copyVotes(votes map[string]string) map[string]string {
	out := make(map[string]string, len(votes))
	for k, v := range votes {
		out[k] = v
	}
	return out
}

func copyPoints(points map[string]int) map[string]int {
	if points == nil {
		return nil
	}
	out := make(map[string]int, len(points))
	for k, v := range points {
		out[k] = v
	}
	return out
}
