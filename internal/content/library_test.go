package content

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandom_WordExcluding(t *testing.T) {
	lib := NewRandom(rand.New(rand.NewSource(1)))

	exclude := append([]string(nil), Words[1:]...)
	for i := 0; i < 20; i++ {
		assert.Equal(t, Words[0], lib.Word(exclude))
	}
}

func TestRandom_AllExcludedFallsBack(t *testing.T) {
	lib := NewRandom(rand.New(rand.NewSource(1)))

	got := lib.HotTake(HotTakes)
	assert.Contains(t, HotTakes, got)
}

func TestRandom_QuestionAnswerInRange(t *testing.T) {
	for _, q := range Questions {
		assert.GreaterOrEqual(t, q.Answer, 0, q.Text)
		assert.Less(t, q.Answer, len(q.Choices), q.Text)
	}
}

func TestFixed_Cycles(t *testing.T) {
	lib := &Fixed{Words: []string{"Giraffe", "Tiger"}}

	assert.Equal(t, "Giraffe", lib.Word(nil))
	assert.Equal(t, "Tiger", lib.Word(nil))
	assert.Equal(t, "Giraffe", lib.Word(nil))

	// Unset lists use the built-in content
	assert.Equal(t, HotTakes[0], lib.HotTake(nil))
}

func TestFixed_MostLikelyPrompts(t *testing.T) {
	lib := &Fixed{Prompts: []string{"win a staring contest"}}

	assert.Equal(t, "win a staring contest", lib.MostLikely([]string{"win a staring contest"}), "exclude is ignored")
	assert.Equal(t, MostLikelyPrompts[0], (&Fixed{}).MostLikely(nil))
}
