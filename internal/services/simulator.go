package services

import (
	"context"
	"math/rand"
	"time"

	"github.com/apex/log"
)

// Simulator periodically raises bin fill levels to mimic live sensor
// reports, delegating status and alert handling to BinService.
type Simulator struct {
	bins     *BinService
	interval time.Duration
	rng      *rand.Rand
}

// NewSimulator creates a new Simulator
func NewSimulator(bins *BinService, interval time.Duration) *Simulator {
	return &Simulator{
		bins:     bins,
		interval: interval,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run ticks until the context is cancelled.
func (s *Simulator) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	log.WithField("interval", s.interval.String()).Info("fill simulator running")
	for {
		select {
		case <-ctx.Done():
			log.Info("fill simulator stopped")
			return
		case <-ticker.C:
			s.Tick()
		}
	}
}

// Tick applies one round of simulated sensor readings: each bin's fill
// level grows by 0-8 percentage points, capped at 100.
func (s *Simulator) Tick() {
	bins, err := s.bins.ListBins()
	if err != nil {
		log.WithError(err).Error("simulator failed to list bins")
		return
	}

	for i := range bins {
		bin := &bins[i]
		fill := bin.FillLevel + s.rng.Intn(9)
		if fill > 100 {
			fill = 100
		}
		if err := s.bins.RecordFill(bin, fill); err != nil {
			log.WithError(err).WithField("bin_id", bin.ID).Error("simulator failed to record fill")
		}
	}
}
