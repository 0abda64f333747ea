package game

import (
	"github.com/charmbracelet/log"
	"github.com/lox/blackjack-survival/internal/statistics"
)

// SessionOption configures a Session during creation.
type SessionOption func(*sessionConfig)

type sessionConfig struct {
	rules       Rules
	logger      *log.Logger
	stats       statistics.Stats
	state       *State
	listeners   []StatsListener
	subscribers []EventSubscriber
}

// WithRules plays by the given rules instead of DefaultRules.
func WithRules(rules Rules) SessionOption {
	return func(c *sessionConfig) { c.rules = rules }
}

// WithLogger sets the logger. Sessions log nothing by default.
func WithLogger(logger *log.Logger) SessionOption {
	return func(c *sessionConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithStats seeds the lifetime statistics, typically from the store.
func WithStats(stats statistics.Stats) SessionOption {
	return func(c *sessionConfig) { c.stats = stats }
}

// WithStatsListener registers a listener for statistics changes.
func WithStatsListener(l StatsListener) SessionOption {
	return func(c *sessionConfig) { c.listeners = append(c.listeners, l) }
}

// WithSubscriber subscribes to game events before the first game starts, so
// the opening deal is observed too.
func WithSubscriber(sub EventSubscriber) SessionOption {
	return func(c *sessionConfig) { c.subscribers = append(c.subscribers, sub) }
}

// WithState resumes from an existing state instead of starting a new game.
// Intended for tests and replays.
func WithState(s State) SessionOption {
	return func(c *sessionConfig) { c.state = &s }
}
