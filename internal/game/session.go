package game

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjack-survival/internal/randutil"
	"github.com/lox/blackjack-survival/internal/statistics"
)

// StatsListener is told about every change to the lifetime statistics.
// Delivery is fire-and-forget: listeners handle their own failures.
type StatsListener interface {
	StatsChanged(stats statistics.Stats)
}

// StatsListenerFunc adapts a function to StatsListener.
type StatsListenerFunc func(stats statistics.Stats)

// StatsChanged calls f.
func (f StatsListenerFunc) StatsChanged(stats statistics.Stats) { f(stats) }

// Session is the host loop around the pure transition function. It owns the
// current state, the lifetime statistics and the random source. A Session is
// not safe for concurrent use; hosts feed it one intent at a time.
type Session struct {
	rules     Rules
	rng       randutil.Source
	logger    *log.Logger
	eventBus  EventBus
	listeners []StatsListener

	state State
	stats statistics.Stats
}

// NewSession creates a session and starts its first game, unless a state to
// resume was supplied with WithState.
func NewSession(rng randutil.Source, opts ...SessionOption) *Session {
	if rng == nil {
		panic("rng is required for a session")
	}

	cfg := &sessionConfig{
		rules:  DefaultRules(),
		logger: log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	s := &Session{
		rules:     cfg.rules,
		rng:       rng,
		logger:    cfg.logger.WithPrefix("session"),
		eventBus:  NewEventBus(),
		listeners: cfg.listeners,
		stats:     cfg.stats,
	}
	for _, sub := range cfg.subscribers {
		s.eventBus.Subscribe(sub)
	}

	if cfg.state != nil {
		s.state = cfg.state.Clone()
	} else {
		s.commit(NewGame(s.rules, s.rng), StartNewGame{})
	}
	return s
}

// Dispatch applies one intent and returns the resulting snapshot. The error
// is non-fatal and already reflected in the snapshot's message.
func (s *Session) Dispatch(intent Intent) (Snapshot, error) {
	res := Apply(s.rules, s.state, intent, s.rng)
	s.commit(res, intent)
	return s.Snapshot(), res.Err
}

func (s *Session) commit(res Result, intent Intent) {
	s.state = res.State

	if res.Err != nil {
		s.logger.Debug("Intent rejected", "intent", intent.Name(), "error", res.Err)
		return
	}
	s.logger.Debug("Intent applied",
		"intent", intent.Name(),
		"phase", s.state.Phase,
		"health", s.state.Health,
		"chips", s.state.Chips,
		"hands", s.state.HandsCompleted)

	changed := s.record(res.Events)
	for _, e := range res.Events {
		s.eventBus.Publish(e)
	}
	if changed {
		for _, l := range s.listeners {
			l.StatsChanged(s.stats)
		}
	}
}

// record folds transition events into the lifetime statistics and reports
// whether anything changed.
func (s *Session) record(events []GameEvent) bool {
	changed := false
	for _, event := range events {
		switch e := event.(type) {
		case HandSettledEvent:
			if e.Settlement.Perfect21 {
				s.stats.AddPerfect21()
				changed = true
			}
			if e.Settlement.ChipsEarned > 0 {
				s.stats.AddEarned(e.Settlement.ChipsEarned)
				changed = true
			}
		case PurchaseEvent:
			s.stats.AddSpent(e.Cost)
			changed = true
		case GameOverEvent:
			s.stats.AddRun(statistics.RunResult{
				HandsCompleted: e.HandsCompleted,
				Chips:          e.Chips,
			})
			changed = true
			s.logger.Info("Run over", "hands", e.HandsCompleted, "chips", e.Chips, "games", s.stats.GamesPlayed)
		}
	}
	return changed
}

// Snapshot returns the current renderer view.
func (s *Session) Snapshot() Snapshot {
	return NewSnapshot(s.rules, s.state, s.stats)
}

// State returns a copy of the current state.
func (s *Session) State() State {
	return s.state.Clone()
}

// Stats returns the lifetime statistics.
func (s *Session) Stats() statistics.Stats {
	return s.stats
}

// Rules returns the rules the session plays by.
func (s *Session) Rules() Rules {
	return s.rules
}

// EventBus returns the event bus for subscribing to game events
func (s *Session) EventBus() EventBus {
	return s.eventBus
}
