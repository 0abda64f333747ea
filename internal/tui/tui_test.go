package tui

import (
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/lox/blackjack-survival/internal/deck"
	"github.com/lox/blackjack-survival/internal/game"
	"github.com/lox/blackjack-survival/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel}) // Quiet logger for tests
}

func logContains(entries []string, text string) bool {
	for _, e := range entries {
		if strings.Contains(e, text) {
			return true
		}
	}
	return false
}

func TestTUITestMode(t *testing.T) {
	logger := quietLogger()

	t.Run("opening log shows the deal", func(t *testing.T) {
		m := NewTUIModelWithOptions(game.NewSession(randutil.New(1)), logger, true)

		assert.True(t, m.IsTestMode())
		captured := m.GetCapturedLog()
		require.NotEmpty(t, captured)
		assert.Equal(t, "Blackjack Survival", captured[0])
		assert.True(t, logContains(captured, "New game!"))
		assert.True(t, logContains(captured, "Dealt"))
	})

	t.Run("production mode does not capture logs", func(t *testing.T) {
		m := NewTUIModel(game.NewSession(randutil.New(1)), logger)
		assert.False(t, m.IsTestMode())
		assert.Nil(t, m.GetCapturedLog())
	})

	t.Run("submitting a command plays it", func(t *testing.T) {
		m := NewTUIModelWithOptions(game.NewSession(randutil.New(2)), logger, true)

		quit := m.Submit("stand")
		assert.False(t, quit)
		assert.Equal(t, 1, m.Snapshot().HandsCompleted)
		assert.True(t, logContains(m.GetCapturedLog(), "You earned"))
	})

	t.Run("rejected commands are logged", func(t *testing.T) {
		m := NewTUIModelWithOptions(game.NewSession(randutil.New(3)), logger, true)
		before := len(m.GetCapturedLog())

		m.Submit("close")
		captured := m.GetCapturedLog()
		require.Len(t, captured, before+1)
		assert.Contains(t, captured[before], "Action not available right now")
	})

	t.Run("parse errors are logged", func(t *testing.T) {
		m := NewTUIModelWithOptions(game.NewSession(randutil.New(3)), logger, true)
		m.Submit("split")
		assert.True(t, logContains(m.GetCapturedLog(), "unknown command"))
	})

	t.Run("help and quit", func(t *testing.T) {
		m := NewTUIModelWithOptions(game.NewSession(randutil.New(4)), logger, true)
		assert.False(t, m.Submit("help"))
		assert.True(t, logContains(m.GetCapturedLog(), "buy health <n>"))
		assert.True(t, m.Submit("quit"))
	})
}

func TestRemoveByNumberUsesShopOffers(t *testing.T) {
	s := game.State{
		Health:         60,
		Chips:          100,
		HandsCompleted: 5,
		Phase:          game.Shop,
		Hand:           deck.MustParseCards("10♠ 9♦"),
		Deck:           deck.FromCards(deck.Standard()...),
		Offers:         deck.MustParseCards("Q♠ 2♥ 7♣"),
	}
	sess := game.NewSession(randutil.New(5), game.WithState(s))
	m := NewTUIModelWithOptions(sess, quietLogger(), true)

	m.Submit("remove 2")

	snap := m.Snapshot()
	assert.Equal(t, 75, snap.Chips)
	require.NotNil(t, snap.Shop)
	assert.NotContains(t, snap.Shop.Offers, deck.NewCard(deck.Hearts, deck.Two))
	assert.True(t, logContains(m.GetCapturedLog(), "Removed 2♥ from the deck!"))
}

func TestViewRendersEachPhase(t *testing.T) {
	m := NewTUIModelWithOptions(game.NewSession(randutil.New(6)), quietLogger(), true)
	assert.Equal(t, "Loading...", m.View())

	_, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	view := m.View()
	assert.Contains(t, view, "Health: 100/100")
	assert.Contains(t, view, "[hit]")

	m.Submit("new")
	for i := 0; m.Snapshot().Phase != game.Lost; i++ {
		require.Less(t, i, 1000)
		if m.Snapshot().Phase == game.Shop {
			assert.Contains(t, m.View(), "Remove (25 chips)")
			m.Submit("close")
			continue
		}
		m.Submit("stand")
	}
	assert.Contains(t, m.View(), "Game over after")
}
