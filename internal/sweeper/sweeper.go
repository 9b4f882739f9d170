// Package sweeper runs the lifecycle sweep on a cron schedule.
package sweeper

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/robfig/cron/v3"

	"github.com/MeliodasZHAO/claude-memory/internal/store"
)

// Sweeper periodically recomputes importance tiers. Overlapping runs are
// prevented: a firing is skipped while the previous sweep is still running.
type Sweeper struct {
	store    *store.Store
	params   store.SweepParams
	schedule string

	cron    *cron.Cron
	running chan struct{}
}

// New returns a sweeper that runs st's lifecycle sweep per the cron
// expression (standard five-field syntax).
func New(st *store.Store, schedule string, params store.SweepParams) *Sweeper {
	return &Sweeper{
		store:    st,
		params:   params,
		schedule: schedule,
		running:  make(chan struct{}, 1),
	}
}

// Start validates the schedule and begins firing. Returns an error on an
// invalid cron expression.
func (s *Sweeper) Start() error {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	c := cron.New(cron.WithParser(parser))

	if _, err := c.AddFunc(s.schedule, s.run); err != nil {
		return fmt.Errorf("sweeper: invalid schedule %q: %w", s.schedule, err)
	}

	s.cron = c
	c.Start()
	log.Info("lifecycle sweeper started", "schedule", s.schedule)
	return nil
}

// Stop halts scheduling. A sweep already in flight finishes.
func (s *Sweeper) Stop() {
	if s.cron != nil {
		s.cron.Stop()
		log.Info("lifecycle sweeper stopped")
	}
}

func (s *Sweeper) run() {
	select {
	case s.running <- struct{}{}:
	default:
		log.Warn("sweep still running, skipping this firing")
		return
	}
	defer func() { <-s.running }()

	if _, err := s.store.RunLifecycleSweep(s.params); err != nil {
		log.Error("scheduled sweep failed", "err", err)
	}
}
