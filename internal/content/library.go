// Package content holds the prompts, words and questions rounds are built from.
package content

import (
	"math/rand"
	"sync"
)

// Library hands out round content. Implementations try not to repeat an item
// listed in exclude, but fall back to any item once everything was used.
type Library interface {
	Word(exclude []string) string
	Dilemma(exclude []string) Dilemma
	HotTake(exclude []string) string
	MostLikely(exclude []string) string
	Question(exclude []string) Question
}

// Random picks uniformly from the built-in lists
type Random struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandom creates a library drawing from rng
func NewRandom(rng *rand.Rand) *Random {
	return &Random{rng: rng}
}

// Word returns a random word not in exclude
func (r *Random) Word(exclude []string) string {
	return pick(r, Words, func(w string) string { return w }, exclude)
}

// Dilemma returns a random would-you-rather pair whose first option is not in exclude
func (r *Random) Dilemma(exclude []string) Dilemma {
	return pick(r, Dilemmas, func(d Dilemma) string { return d.OptionA }, exclude)
}

// HotTake returns a random statement not in exclude
func (r *Random) HotTake(exclude []string) string {
	return pick(r, HotTakes, func(s string) string { return s }, exclude)
}

// MostLikely returns a random prompt not in exclude
func (r *Random) MostLikely(exclude []string) string {
	return pick(r, MostLikelyPrompts, func(s string) string { return s }, exclude)
}

// Question returns a random question whose text is not in exclude
func (r *Random) Question(exclude []string) Question {
	return pick(r, Questions, func(q Question) string { return q.Text }, exclude)
}

func (r *Random) intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(n)
}

func pick[T any](r *Random, items []T, key func(T) string, exclude []string) T {
	excludeMap := make(map[string]bool, len(exclude))
	for _, k := range exclude {
		excludeMap[k] = true
	}

	candidates := make([]T, 0, len(items))
	for _, item := range items {
		if !excludeMap[key(item)] {
			candidates = append(candidates, item)
		}
	}

	// Everything used: start over
	if len(candidates) == 0 {
		candidates = items
	}

	return candidates[r.intn(len(candidates))]
}

// Fixed serves its lists in order, cycling. Empty lists fall back to the
// built-in content.
type Fixed struct {
	Words     []string
	Dilemmas  []Dilemma
	HotTakes  []string
	Prompts   []string // most-likely prompts
	Questions []Question

	mu   sync.Mutex
	next map[string]int
}

// Word returns the next word. Fixed ignores exclude.
func (f *Fixed) Word(_ []string) string {
	return cycle(f, "word", f.Words, Words)
}

// Dilemma returns the next would-you-rather pair
func (f *Fixed) Dilemma(_ []string) Dilemma {
	return cycle(f, "dilemma", f.Dilemmas, Dilemmas)
}

// HotTake returns the next statement
func (f *Fixed) HotTake(_ []string) string {
	return cycle(f, "hotTake", f.HotTakes, HotTakes)
}

// MostLikely returns the next most-likely prompt
func (f *Fixed) MostLikely(_ []string) string {
	return cycle(f, "mostLikely", f.Prompts, MostLikelyPrompts)
}

// Question returns the next trivia question
func (f *Fixed) Question(_ []string) Question {
	return cycle(f, "question", f.Questions, Questions)
}

func cycle[T any](f *Fixed, kind string, items, fallback []T) T {
	if len(items) == 0 {
		items = fallback
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.next == nil {
		f.next = make(map[string]int)
	}
	i := f.next[kind] % len(items)
	f.next[kind]++
	return items[i]
}
