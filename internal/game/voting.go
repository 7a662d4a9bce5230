package game

import (
	"partyhub/internal/content"
	"partyhub/internal/domain"
)

// Points awarded by the voting rule-sets
const (
	MajorityPoints   = 100 // binary: each voter on the winning side
	TiePoints        = 50  // binary: every player when both sides are even
	MostVotedPoints  = 100 // target: the player with the most votes
	MatchVoterPoints = 50  // target: each voter who picked that player
)

// ActionVote is the action name of every voting rule-set
const ActionVote = "vote"

// ballot holds one vote slot per configured player. An empty choice is unset.
type ballot struct {
	order []string
	votes map[string]string
}

func newBallot(players []string) *ballot {
	votes := make(map[string]string, len(players))
	for _, id := range players {
		votes[id] = ""
	}
	return &ballot{order: players, votes: votes}
}

// cast records or replaces the voter's choice
func (b *ballot) cast(voterID, choice string) {
	b.votes[voterID] = choice
}

func (b *ballot) votedCount() int {
	n := 0
	for _, choice := range b.votes {
		if choice != "" {
			n++
		}
	}
	return n
}

func (b *ballot) complete() bool {
	return b.votedCount() == len(b.votes)
}

func (b *ballot) counts() map[string]int {
	counts := make(map[string]int)
	for _, choice := range b.votes {
		if choice != "" {
			counts[choice]++
		}
	}
	return counts
}

// Binary-choice option IDs
const (
	OptionA = "A"
	OptionB = "B"
)

type choicePrompt struct {
	key    string // identifies the prompt so it is not repeated
	prompt string
	labelA string
	labelB string
}

// choiceRules is the binary-choice rule-set: every player picks A or B,
// the majority side scores.
type choiceRules struct {
	kind domain.GameType
	draw func(lib content.Library, used []string) choicePrompt
	used []string

	current *choiceRound
}

type choiceRound struct {
	prompt  choicePrompt
	ballot  *ballot
	closed  bool
	results *domain.VoteTally
}

func newWouldYouRather() *choiceRules {
	return &choiceRules{
		kind: domain.GameWouldYouRather,
		draw: func(lib content.Library, used []string) choicePrompt {
			d := lib.Dilemma(used)
			return choicePrompt{key: d.OptionA, prompt: d.Prompt, labelA: d.OptionA, labelB: d.OptionB}
		},
	}
}

func newHotTakes() *choiceRules {
	return &choiceRules{
		kind: domain.GameHotTakes,
		draw: func(lib content.Library, used []string) choicePrompt {
			s := lib.HotTake(used)
			return choicePrompt{key: s, prompt: s, labelA: "Agree", labelB: "Disagree"}
		},
	}
}

func (r *choiceRules) gameType() domain.GameType {
	return r.kind
}

func (r *choiceRules) beginRound(e *engine, n int) {
	p := r.draw(e.deps.Content, r.used)
	r.used = append(r.used, p.key)
	r.current = &choiceRound{
		prompt: p,
		ballot: newBallot(e.cfg.Players),
	}
}

func (r *choiceRules) handle(e *engine, playerID, action string, payload Payload) {
	if action != ActionVote || r.current == nil || r.current.closed {
		return
	}

	choice, _ := payload.String("choice")
	if choice != OptionA && choice != OptionB {
		e.logger.Debug("vote ignored: unknown choice", "playerId", playerID, "choice", choice)
		return
	}

	r.current.ballot.cast(playerID, choice)
	e.emitVoteReceived(playerID, r.current.ballot.votedCount())

	if r.current.ballot.complete() {
		r.close(e)
	}
}

func (r *choiceRules) timeout(e *engine) {
	r.close(e)
}

func (r *choiceRules) close(e *engine) {
	round := r.current
	if round == nil || round.closed {
		return
	}
	round.closed = true

	counts := round.ballot.counts()
	tally := &domain.VoteTally{
		Counts:  map[string]int{OptionA: counts[OptionA], OptionB: counts[OptionB]},
		Awarded: make(map[string]int),
	}

	switch {
	case counts[OptionA] > counts[OptionB]:
		tally.Winner = OptionA
	case counts[OptionB] > counts[OptionA]:
		tally.Winner = OptionB
	default:
		tally.Tie = true
	}

	// A tie pays every configured player, abstainers included
	for _, playerID := range round.ballot.order {
		switch {
		case tally.Tie:
			tally.Awarded[playerID] = TiePoints
		case round.ballot.votes[playerID] == tally.Winner:
			tally.Awarded[playerID] = MajorityPoints
		}
	}
	for voterID, points := range tally.Awarded {
		e.addScore(voterID, points)
	}

	round.results = tally
	e.closeRound(e.deps.Timing.VoteGrace)
}

func (r *choiceRules) snapshot() interface{} {
	round := r.current
	if round == nil {
		return nil
	}

	return &domain.ChoiceRoundState{
		Prompt: round.prompt.prompt,
		Options: []domain.ChoiceOption{
			{ID: OptionA, Label: round.prompt.labelA},
			{ID: OptionB, Label: round.prompt.labelB},
		},
		Votes:          copyVotes(round.ballot.votes),
		VotedCount:     round.ballot.votedCount(),
		VotingComplete: round.closed,
		Results:        copyTally(round.results),
	}
}

// targetRules is the vote-for-a-player rule-set: the most voted player
// scores, and so does everyone who voted for them.
type targetRules struct {
	used    []string
	current *targetRound
}

type targetRound struct {
	prompt  string
	ballot  *ballot
	closed  bool
	results *domain.VoteTally
}

func newMostLikely() *targetRules {
	return &targetRules{}
}

func (r *targetRules) gameType() domain.GameType {
	return domain.GameMostLikely
}

func (r *targetRules) beginRound(e *engine, n int) {
	prompt := e.deps.Content.MostLikely(r.used)
	r.used = append(r.used, prompt)
	r.current = &targetRound{
		prompt: prompt,
		ballot: newBallot(e.cfg.Players),
	}
}

func (r *targetRules) handle(e *engine, playerID, action string, payload Payload) {
	if action != ActionVote || r.current == nil || r.current.closed {
		return
	}

	target, _ := payload.String("target")
	if !e.cfg.HasPlayer(target) {
		e.logger.Debug("vote ignored: unknown target", "playerId", playerID, "target", target)
		return
	}

	r.current.ballot.cast(playerID, target)
	e.emitVoteReceived(playerID, r.current.ballot.votedCount())

	if r.current.ballot.complete() {
		r.close(e)
	}
}

func (r *targetRules) timeout(e *engine) {
	r.close(e)
}

func (r *targetRules) close(e *engine) {
	round := r.current
	if round == nil || round.closed {
		return
	}
	round.closed = true

	counts := round.ballot.counts()
	tally := &domain.VoteTally{
		Counts:  make(map[string]int, len(round.ballot.order)),
		Awarded: make(map[string]int),
	}

	// First candidate in player order to reach the maximum wins
	best := 0
	for _, candidate := range round.ballot.order {
		n := counts[candidate]
		tally.Counts[candidate] = n
		if n > best {
			best = n
			tally.Winner = candidate
		}
	}
	if best > 0 {
		for _, candidate := range round.ballot.order {
			if candidate != tally.Winner && counts[candidate] == best {
				tally.Tie = true
			}
		}
	}

	if tally.Winner != "" {
		tally.Awarded[tally.Winner] += MostVotedPoints
		for _, voterID := range round.ballot.order {
			if round.ballot.votes[voterID] == tally.Winner {
				tally.Awarded[voterID] += MatchVoterPoints
			}
		}
	}
	for playerID, points := range tally.Awarded {
		e.addScore(playerID, points)
	}

	round.results = tally
	e.closeRound(e.deps.Timing.VoteGrace)
}

func (r *targetRules) snapshot() interface{} {
	round := r.current
	if round == nil {
		return nil
	}

	candidates := make([]string, len(round.ballot.order))
	copy(candidates, round.ballot.order)

	return &domain.TargetRoundState{
		Prompt:         round.prompt,
		Candidates:     candidates,
		Votes:          copyVotes(round.ballot.votes),
		VotedCount:     round.ballot.votedCount(),
		VotingComplete: round.closed,
		Results:        copyTally(round.results),
	}
}

func copyTally(t *domain.VoteTally) *domain.VoteTally {
	if t == nil {
		return nil
	}
	return &domain.VoteTally{
		Counts:  copyPoints(t.Counts),
		Winner:  t.Winner,
		Tie:     t.Tie,
		Awarded: copyPoints(t.Awarded),
	}
}
