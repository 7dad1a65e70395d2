package session

import (
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Sweeper periodically drops idle drafts from a MemoryStore.
// Redis drafts expire on their own and need no sweeping.
type Sweeper struct {
	store *MemoryStore
	cron  *cron.Cron
}

// NewSweeper creates a sweeper running on the given cron spec, e.g. "@every 1m".
func NewSweeper(store *MemoryStore, spec string) (*Sweeper, error) {
	s := &Sweeper{store: store, cron: cron.New()}
	if _, err := s.cron.AddFunc(spec, s.sweep); err != nil {
		return nil, err
	}
	return s, nil
}

// Run starts the sweeper in the background.
func (s *Sweeper) Run() {
	log.Info().Msg("Starting draft sweeper")
	s.cron.Start()
}

// Stop halts the sweeper and waits for a running sweep to finish.
func (s *Sweeper) Stop() {
	<-s.cron.Stop().Done()
	log.Info().Msg("Stopped draft sweeper")
}

func (s *Sweeper) sweep() {
	if n := s.store.Sweep(); n > 0 {
		log.Info().Int("dropped", n).Int("remaining", s.store.Len()).Msg("Swept idle drafts")
	}
}
