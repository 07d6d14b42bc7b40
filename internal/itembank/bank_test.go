package itembank

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBank(t *testing.T) *Bank {
	t.Helper()
	b, err := NewSeededBank(rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	return b
}

func validItem(id string) Item {
	return Item{
		ID:            id,
		ConceptID:     "1_ARIT_01",
		Question:      "¿Cuánto es 2 + 2?",
		Options:       []string{"4", "3", "5", "6"},
		CorrectAnswer: "4",
		Explanation:   "2 + 2 = 4.",
		Difficulty:    Easy,
	}
}

func TestSeedBankIsValid(t *testing.T) {
	b := testBank(t)
	assert.Greater(t, b.Len(), 0)

	// Every curriculum concept in the seed set has at least one item.
	for _, it := range seedItems() {
		require.NoError(t, it.Validate(), "seed item %s", it.ID)
	}
}

func TestValidateRejectsMalformedItems(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Item)
	}{
		{"missing id", func(it *Item) { it.ID = "" }},
		{"missing concept", func(it *Item) { it.ConceptID = "" }},
		{"missing question", func(it *Item) { it.Question = "" }},
		{"three options", func(it *Item) { it.Options = it.Options[:3] }},
		{"empty option", func(it *Item) { it.Options[2] = "" }},
		{"duplicate option", func(it *Item) { it.Options[1] = it.Options[0] }},
		{"answer not an option", func(it *Item) { it.CorrectAnswer = "42" }},
		{"bad difficulty", func(it *Item) { it.Difficulty = "imposible" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it := validItem("x")
			it.Options = append([]string(nil), it.Options...)
			tt.mutate(&it)
			assert.Error(t, it.Validate())
		})
	}
}

func TestAddRejectsDuplicateID(t *testing.T) {
	b := NewBank(rand.New(rand.NewSource(1)))
	require.NoError(t, b.Add(validItem("dup")))

	err := b.Add(validItem("dup"))
	assert.ErrorIs(t, err, ErrDuplicateItem)
	assert.Equal(t, 1, b.Len())
}

func TestPickRespectsDifficultyAndExclusions(t *testing.T) {
	b := testBank(t)

	it, err := b.Pick("1_ARIT_01", Easy, nil)
	require.NoError(t, err)
	assert.Equal(t, "1_ARIT_01", it.ConceptID)
	assert.Equal(t, Easy, it.Difficulty)

	// Excluding the only easy item leaves nothing at that difficulty.
	_, err = b.Pick("1_ARIT_01", Easy, map[string]bool{it.ID: true})
	assert.ErrorIs(t, err, ErrNoItemAvailable)

	// PickAny relaxes the difficulty constraint.
	any, err := b.PickAny("1_ARIT_01", map[string]bool{it.ID: true})
	require.NoError(t, err)
	assert.NotEqual(t, it.ID, any.ID)
}

func TestPickUnknownConcept(t *testing.T) {
	b := testBank(t)
	_, err := b.Pick("no-such-concept", Easy, nil)
	assert.ErrorIs(t, err, ErrNoItemAvailable)
}

func TestPickDeterministicForFixedSeed(t *testing.T) {
	pick := func() string {
		b, err := NewSeededBank(rand.New(rand.NewSource(7)))
		require.NoError(t, err)
		it, err := b.Pick("1_ARIT_02", Easy, nil)
		require.NoError(t, err)
		return it.ID
	}
	assert.Equal(t, pick(), pick())
}

func TestForMasteryBands(t *testing.T) {
	tests := []struct {
		p    float64
		want Difficulty
	}{
		{0.1, Easy},
		{0.39, Easy},
		{0.4, Medium},
		{0.55, Medium},
		{0.7, Medium},
		{0.71, Hard},
		{0.95, Hard},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ForMastery(tt.p), "p=%v", tt.p)
	}
}

func TestParseDifficulty(t *testing.T) {
	got, err := ParseDifficulty("medium")
	require.NoError(t, err)
	assert.Equal(t, Medium, got)

	_, err = ParseDifficulty("medio")
	assert.Error(t, err)
}
