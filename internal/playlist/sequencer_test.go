package playlist

import (
	"io"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"partyhub/internal/domain"
)

var twoGames = []domain.PlaylistItem{
	{GameType: domain.GameWouldYouRather, RoundCount: 3, TimePerRound: 20},
	{GameType: domain.GameWordExplain, RoundCount: 4, TimePerRound: 60},
}

func newTestSequencer(items []domain.PlaylistItem, players []string) (*Sequencer, *[]*domain.GameEvent) {
	events := &[]*domain.GameEvent{}
	sink := func(e *domain.GameEvent) { *events = append(*events, e) }
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewSequencer("room-1", items, players, sink, logger), events
}

func TestSequencer_RankingAndCarryOver(t *testing.T) {
	seq, _ := newTestSequencer(twoGames, []string{"p1", "p2"})

	seq.AddGameScores(map[string]int{"p1": 100, "p2": 50})
	require.True(t, seq.Advance())
	seq.AddGameScores(map[string]int{"p1": 20, "p2": 80})
	assert.False(t, seq.Advance())

	assert.Equal(t, map[string]int{"p1": 120, "p2": 130}, seq.Scores())

	want := []domain.Ranking{
		{PlayerID: "p2", Score: 130, Rank: 1},
		{PlayerID: "p1", Score: 120, Rank: 2},
	}
	if diff := cmp.Diff(want, seq.Rankings()); diff != "" {
		t.Errorf("rankings mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, seq.IsComplete())
}

func TestSequencer_TiesKeepInsertionOrder(t *testing.T) {
	seq, _ := newTestSequencer(twoGames, []string{"zoe", "adam", "mia"})

	// New players join the table after the seeded ones, sorted by ID
	seq.AddGameScores(map[string]int{"mia": 10, "zoe": 10, "kim": 10, "bea": 10})

	want := []domain.Ranking{
		{PlayerID: "zoe", Score: 10, Rank: 1},
		{PlayerID: "mia", Score: 10, Rank: 2},
		{PlayerID: "bea", Score: 10, Rank: 3},
		{PlayerID: "kim", Score: 10, Rank: 4},
		{PlayerID: "adam", Score: 0, Rank: 5},
	}
	if diff := cmp.Diff(want, seq.Rankings()); diff != "" {
		t.Errorf("rankings mismatch (-want +got):\n%s", diff)
	}
}

func TestSequencer_Advance(t *testing.T) {
	seq, _ := newTestSequencer(twoGames, nil)

	item, ok := seq.Current()
	require.True(t, ok)
	assert.Equal(t, domain.GameWouldYouRather, item.GameType)
	assert.Equal(t, 0, seq.Index())

	assert.True(t, seq.Advance())
	assert.Equal(t, 1, seq.Index())
	assert.False(t, seq.Advance())
	assert.Equal(t, 2, seq.Index())
	assert.False(t, seq.Advance())
	assert.Equal(t, 2, seq.Index(), "cursor stops at the end")

	_, ok = seq.Current()
	assert.False(t, ok)
}

func TestSequencer_Intermission(t *testing.T) {
	seq, events := newTestSequencer(twoGames, []string{"p1", "p2"})
	seq.AddGameScores(map[string]int{"p1": 40, "p2": 90})
	seq.Advance()

	seq.StartIntermission(10)

	require.Len(t, *events, 1)
	event := (*events)[0]
	assert.Equal(t, domain.EventIntermission, event.Type)
	assert.Equal(t, "room-1", event.RoomID)

	payload := event.Payload.(*domain.IntermissionPayload)
	assert.Equal(t, 1, payload.CurrentIndex)
	assert.Equal(t, 2, payload.TotalGames)
	assert.Equal(t, 10, payload.CountdownSeconds)
	assert.Equal(t, "p2", payload.Rankings[0].PlayerID)
	require.NotNil(t, payload.NextGame)
	assert.Equal(t, domain.NextGameInfo{
		GameType:     domain.GameWordExplain,
		Name:         "Explain It",
		Icon:         domain.LookupGameInfo(domain.GameWordExplain).Icon,
		RoundCount:   4,
		TimePerRound: 60,
	}, *payload.NextGame)
}

func TestSequencer_EndPlaylist(t *testing.T) {
	seq, events := newTestSequencer(twoGames, []string{"p1", "p2"})
	seq.AddGameScores(map[string]int{"p1": 5})

	seq.EndPlaylist()

	require.Len(t, *events, 1)
	assert.Equal(t, domain.EventPlaylistEnded, (*events)[0].Type)
	payload := (*events)[0].Payload.(*domain.PlaylistEndedPayload)
	assert.Equal(t, []domain.Ranking{
		{PlayerID: "p1", Score: 5, Rank: 1},
		{PlayerID: "p2", Score: 0, Rank: 2},
	}, payload.Rankings)
}

func TestSequencer_EditRemainingOnly(t *testing.T) {
	items := []domain.PlaylistItem{
		{GameType: domain.GameTrivia, RoundCount: 1, TimePerRound: 10},
		{GameType: domain.GameHotTakes, RoundCount: 2, TimePerRound: 10},
		{GameType: domain.GameMostLikely, RoundCount: 3, TimePerRound: 10},
	}
	types := func(seq *Sequencer) []domain.GameType {
		var out []domain.GameType
		for _, item := range seq.Items() {
			out = append(out, item.GameType)
		}
		return out
	}

	testCases := []struct {
		desc   string
		edit   func(seq *Sequencer) bool
		ok     bool
		expect []domain.GameType
	}{
		{
			desc: "add appends",
			edit: func(seq *Sequencer) bool {
				seq.AddGame(domain.PlaylistItem{GameType: domain.GameWordExplain, RoundCount: 1, TimePerRound: 5})
				return true
			},
			ok:     true,
			expect: []domain.GameType{domain.GameTrivia, domain.GameHotTakes, domain.GameMostLikely, domain.GameWordExplain},
		},
		{
			desc:   "remove the current item is rejected",
			edit:   func(seq *Sequencer) bool { return seq.RemoveGame(1) },
			expect: []domain.GameType{domain.GameTrivia, domain.GameHotTakes, domain.GameMostLikely},
		},
		{
			desc:   "remove a played item is rejected",
			edit:   func(seq *Sequencer) bool { return seq.RemoveGame(0) },
			expect: []domain.GameType{domain.GameTrivia, domain.GameHotTakes, domain.GameMostLikely},
		},
		{
			desc:   "remove out of range is rejected",
			edit:   func(seq *Sequencer) bool { return seq.RemoveGame(3) },
			expect: []domain.GameType{domain.GameTrivia, domain.GameHotTakes, domain.GameMostLikely},
		},
		{
			desc:   "remove an upcoming item",
			edit:   func(seq *Sequencer) bool { return seq.RemoveGame(2) },
			ok:     true,
			expect: []domain.GameType{domain.GameTrivia, domain.GameHotTakes},
		},
		{
			desc:   "reorder into history is rejected",
			edit:   func(seq *Sequencer) bool { return seq.ReorderGames(2, 0) },
			expect: []domain.GameType{domain.GameTrivia, domain.GameHotTakes, domain.GameMostLikely},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			seq, _ := newTestSequencer(items, nil)
			seq.Advance()

			assert.Equal(t, tc.ok, tc.edit(seq))
			assert.Equal(t, tc.expect, types(seq))
		})
	}
}

func TestSequencer_ReorderUpcoming(t *testing.T) {
	items := []domain.PlaylistItem{
		{GameType: domain.GameTrivia, RoundCount: 1, TimePerRound: 10},
		{GameType: domain.GameHotTakes, RoundCount: 1, TimePerRound: 10},
		{GameType: domain.GameMostLikely, RoundCount: 1, TimePerRound: 10},
		{GameType: domain.GameWordExplain, RoundCount: 1, TimePerRound: 10},
	}
	seq, _ := newTestSequencer(items, nil)

	require.True(t, seq.ReorderGames(3, 1))
	var got []domain.GameType
	for _, item := range seq.Items() {
		got = append(got, item.GameType)
	}
	assert.Equal(t, []domain.GameType{domain.GameTrivia, domain.GameWordExplain, domain.GameHotTakes, domain.GameMostLikely}, got)

	// Mutating the returned copy leaves the playlist alone
	seq.Items()[1].RoundCount = 99
	assert.Equal(t, 1, seq.Items()[1].RoundCount)
}
