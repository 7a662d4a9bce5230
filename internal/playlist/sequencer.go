// Package playlist chains game sessions for one room and carries scores
// across them.
package playlist

import (
	"log/slog"
	"sort"
	"sync"

	"partyhub/internal/domain"
)

// Sequencer holds an ordered playlist, a cursor on the item being played and
// the cumulative scores of every game finished so far.
type Sequencer struct {
	roomID string
	sink   domain.EventSink
	logger *slog.Logger

	mu     sync.Mutex
	items  []domain.PlaylistItem
	cursor int
	scores map[string]int
	order  []string // insertion order of scores, the ranking tie-break
}

// NewSequencer creates a sequencer with every player seeded at zero
func NewSequencer(roomID string, items []domain.PlaylistItem, players []string, sink domain.EventSink, logger *slog.Logger) *Sequencer {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Sequencer{
		roomID: roomID,
		sink:   sink,
		logger: logger.With("roomId", roomID),
		items:  append([]domain.PlaylistItem(nil), items...),
		scores: make(map[string]int, len(players)),
	}
	for _, id := range players {
		s.seedLocked(id)
	}
	return s
}

// Current returns the item under the cursor
func (s *Sequencer) Current() (domain.PlaylistItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cursor >= len(s.items) {
		return domain.PlaylistItem{}, false
	}
	return s.items[s.cursor], true
}

// Index returns the cursor position
func (s *Sequencer) Index() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor
}

// Len returns the number of playlist items
func (s *Sequencer) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Items returns a copy of the playlist
func (s *Sequencer) Items() []domain.PlaylistItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.PlaylistItem(nil), s.items...)
}

// IsComplete reports whether the cursor moved past the last item
func (s *Sequencer) IsComplete() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor >= len(s.items)
}

// AddGameScores merges a finished game's scores into the cumulative table.
// Players not seen before are added in sorted-ID order.
func (s *Sequencer) AddGameScores(delta map[string]int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(delta))
	for id := range delta {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		s.seedLocked(id)
		s.scores[id] += delta[id]
	}
}

// Scores returns a copy of the cumulative scores
func (s *Sequencer) Scores() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]int, len(s.scores))
	for id, score := range s.scores {
		out[id] = score
	}
	return out
}

// Rankings returns players by descending cumulative score. Equal scores keep
// insertion order.
func (s *Sequencer) Rankings() []domain.Ranking {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rankingsLocked()
}

// Advance moves the cursor to the next item and reports whether one exists
func (s *Sequencer) Advance() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cursor < len(s.items) {
		s.cursor++
	}
	return s.cursor < len(s.items)
}

// StartIntermission emits the intermission event for the item under the
// cursor. Scheduling the next game after countdownSeconds is the caller's job.
func (s *Sequencer) StartIntermission(countdownSeconds int) {
	s.mu.Lock()
	payload := &domain.IntermissionPayload{
		Rankings:         s.rankingsLocked(),
		CurrentIndex:     s.cursor,
		TotalGames:       len(s.items),
		CountdownSeconds: countdownSeconds,
	}
	if s.cursor < len(s.items) {
		item := s.items[s.cursor]
		info := domain.LookupGameInfo(item.GameType)
		payload.NextGame = &domain.NextGameInfo{
			GameType:     item.GameType,
			Name:         info.Name,
			Icon:         info.Icon,
			RoundCount:   item.RoundCount,
			TimePerRound: item.TimePerRound,
		}
	}
	s.mu.Unlock()

	s.logger.Info("intermission", "index", payload.CurrentIndex, "countdown", countdownSeconds)
	s.emit(domain.EventIntermission, payload)
}

// EndPlaylist emits the final rankings
func (s *Sequencer) EndPlaylist() {
	s.mu.Lock()
	payload := &domain.PlaylistEndedPayload{Rankings: s.rankingsLocked()}
	s.mu.Unlock()

	s.logger.Info("playlist ended", "games", len(s.items))
	s.emit(domain.EventPlaylistEnded, payload)
}

// AddGame appends an item to the playlist
func (s *Sequencer) AddGame(item domain.PlaylistItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, item)
}

// RemoveGame removes the item at index. Items at or before the cursor are
// history and cannot be removed.
func (s *Sequencer) RemoveGame(index int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index <= s.cursor || index >= len(s.items) {
		return false
	}
	s.items = append(s.items[:index], s.items[index+1:]...)
	return true
}

// ReorderGames moves the item at from to position to. Both positions must be
// after the cursor.
func (s *Sequencer) ReorderGames(from, to int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if from <= s.cursor || to <= s.cursor || from >= len(s.items) || to >= len(s.items) {
		return false
	}
	if from == to {
		return true
	}

	item := s.items[from]
	s.items = append(s.items[:from], s.items[from+1:]...)
	s.items = append(s.items[:to], append([]domain.PlaylistItem{item}, s.items[to:]...)...)
	return true
}

func (s *Sequencer) seedLocked(playerID string) {
	if _, ok := s.scores[playerID]; ok {
		return
	}
	s.scores[playerID] = 0
	s.order = append(s.order, playerID)
}

func (s *Sequencer) rankingsLocked() []domain.Ranking {
	rankings := make([]domain.Ranking, len(s.order))
	for i, id := range s.order {
		rankings[i] = domain.Ranking{PlayerID: id, Score: s.scores[id]}
	}

	sort.SliceStable(rankings, func(i, j int) bool {
		return rankings[i].Score > rankings[j].Score
	})
	for i := range rankings {
		rankings[i].Rank = i + 1
	}
	return rankings
}

func (s *Sequencer) emit(eventType domain.EventType, payload interface{}) {
	if s.sink != nil {
		s.sink(domain.NewEvent(eventType, s.roomID, payload))
	}
}
