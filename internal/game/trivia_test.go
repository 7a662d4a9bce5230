package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"partyhub/internal/content"
	"partyhub/internal/domain"
)

var capitalQuestion = content.Question{
	Text:    "What is the capital of France?",
	Choices: []string{"Lyon", "Paris", "Nice"},
	Answer:  1,
}

func TestTrivia_ScoresCorrectAnswersBySpeed(t *testing.T) {
	lib := &content.Fixed{Questions: []content.Question{capitalQuestion}}
	f := newFixture(t, domain.GameTrivia, []string{"alice", "bob", "carol"}, domain.Settings{RoundCount: 1, TimePerRound: 20}, lib)
	f.session.Start()

	round := f.session.State().Round.(*domain.TriviaRoundState)
	assert.Equal(t, []domain.ChoiceOption{{ID: "A", Label: "Lyon"}, {ID: "B", Label: "Paris"}, {ID: "C", Label: "Nice"}}, round.Choices)
	assert.Empty(t, round.CorrectChoice, "answer hidden while the round is open")

	f.act("alice", ActionAnswer, Payload{"choice": "B"})
	f.clock.Advance(10 * time.Second)
	f.act("bob", ActionAnswer, Payload{"choice": "B"})
	f.act("carol", ActionAnswer, Payload{"choice": "A"})

	state := f.session.State()
	assert.Equal(t, domain.PhaseScores, state.Phase)
	assert.Equal(t, map[string]int{"alice": 200, "bob": 150, "carol": 0}, state.Scores)

	round = state.Round.(*domain.TriviaRoundState)
	assert.True(t, round.Complete)
	assert.Equal(t, "B", round.CorrectChoice)
	assert.Equal(t, map[string]int{"alice": 200, "bob": 150}, round.Awarded)

	received := f.rec.ofType(domain.EventVoteReceived)
	require.Len(t, received, 3)
	assert.Equal(t, 3, received[2].Payload.(*domain.VoteReceivedPayload).VotedCount)
}

func TestTrivia_FirstAnswerIsFinal(t *testing.T) {
	lib := &content.Fixed{Questions: []content.Question{capitalQuestion}}
	f := newFixture(t, domain.GameTrivia, []string{"alice", "bob"}, domain.Settings{RoundCount: 1, TimePerRound: 20}, lib)
	f.session.Start()

	f.act("alice", ActionAnswer, Payload{"choice": "A"})
	f.act("alice", ActionAnswer, Payload{"choice": "B"})
	f.act("bob", ActionAnswer, Payload{"choice": "Z"})

	assert.Len(t, f.rec.ofType(domain.EventVoteReceived), 1)
	assert.Equal(t, "A", f.session.State().Round.(*domain.TriviaRoundState).Answers["alice"])

	f.clock.Advance(20 * time.Second)
	assert.Equal(t, map[string]int{"alice": 0, "bob": 0}, f.session.State().Scores)
	assert.Equal(t, domain.PhaseScores, f.session.State().Phase)
}
