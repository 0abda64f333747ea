package deck

import (
	"testing"

	"github.com/lox/blackjack-survival/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeckHas52UniqueCards(t *testing.T) {
	t.Parallel()

	for seed := range int64(20) {
		d := New(randutil.New(seed))
		require.Equal(t, Size, d.Len())

		seen := make(map[Card]bool)
		for _, c := range d.Cards() {
			assert.True(t, c.Valid(), "invalid card %v", c)
			assert.False(t, seen[c], "duplicate card %s", c)
			seen[c] = true
		}
		assert.Len(t, seen, Size)
	}
}

func TestNewDeckHonoursExclusions(t *testing.T) {
	t.Parallel()

	removed := []Card{NewCard(Spades, Queen), NewCard(Hearts, Ace)}
	d := New(randutil.New(1), removed...)

	assert.Equal(t, Size-2, d.Len())
	for _, c := range removed {
		assert.False(t, d.Contains(c))
	}
}

func TestShuffleIsSeeded(t *testing.T) {
	t.Parallel()

	a := New(randutil.New(99))
	b := New(randutil.New(99))
	c := New(randutil.New(100))

	assert.Equal(t, a.Cards(), b.Cards())
	assert.NotEqual(t, a.Cards(), c.Cards())
}

func TestDrawTakesFromTop(t *testing.T) {
	t.Parallel()

	d := FromCards(MustParseCards("2♣ 3♣ 4♣")...)

	c, err := d.Draw()
	require.NoError(t, err)
	assert.Equal(t, NewCard(Clubs, Four), c)
	assert.Equal(t, 2, d.Len())
}

func TestDrawEmptyDeck(t *testing.T) {
	t.Parallel()

	var d Deck
	_, err := d.Draw()
	assert.ErrorIs(t, err, ErrEmptyDeck)
}

func TestDrawNNeverPartial(t *testing.T) {
	t.Parallel()

	d := FromCards(MustParseCards("2♣")...)
	cards, err := d.DrawN(2)
	assert.ErrorIs(t, err, ErrEmptyDeck)
	assert.Nil(t, cards)
	assert.Equal(t, 1, d.Len(), "failed draw must not consume cards")

	d = FromCards(MustParseCards("2♣ 3♣ 4♣")...)
	cards, err = d.DrawN(2)
	require.NoError(t, err)
	assert.Equal(t, MustParseCards("4♣ 3♣"), cards)
}

func TestRemoveDeletesAllCopies(t *testing.T) {
	t.Parallel()

	d := FromCards(MustParseCards("Q♠ 2♣ Q♠ 3♦")...)
	assert.Equal(t, 2, d.Remove(NewCard(Spades, Queen)))
	assert.Equal(t, 2, d.Len())
	assert.False(t, d.Contains(NewCard(Spades, Queen)))
	assert.Equal(t, 0, d.Remove(NewCard(Spades, Queen)))
}

func TestSample(t *testing.T) {
	t.Parallel()

	d := New(randutil.New(5))
	rng := randutil.New(6)

	picked := d.Sample(rng, 3)
	require.Len(t, picked, 3)
	assert.NotEqual(t, picked[0], picked[1])
	assert.NotEqual(t, picked[1], picked[2])
	assert.NotEqual(t, picked[0], picked[2])
	assert.Equal(t, Size, d.Len(), "sampling must not consume cards")

	small := FromCards(MustParseCards("A♠ 2♠")...)
	assert.Len(t, small.Sample(rng, 3), 2)
	assert.Equal(t, MustParseCards("2♠"), small.Sample(rng, 3, NewCard(Spades, Ace)))
}

func TestCloneIsIndependent(t *testing.T) {
	t.Parallel()

	d := New(randutil.New(3))
	c := d.Clone()
	_, err := c.Draw()
	require.NoError(t, err)
	assert.Equal(t, Size, d.Len())
	assert.Equal(t, Size-1, c.Len())
}
