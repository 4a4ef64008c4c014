// Package cron schedules the periodic artifact refresh so a running
// server picks up upstream vocabulary changes even without file
// events.
package cron

import (
	"log"

	"github.com/robfig/cron/v3"
)

// DefaultSpec refreshes daily at 02:00, after the upstream warehouse
// extraction lands.
const DefaultSpec = "0 2 * * *"

// Scheduler runs the refresh job on a cron spec.
type Scheduler struct {
	c *cron.Cron
}

// New schedules job on spec. An empty spec selects DefaultSpec. The
// job does not run until Start.
func New(spec string, job func()) (*Scheduler, error) {
	if spec == "" {
		spec = DefaultSpec
	}
	c := cron.New()
	if _, err := c.AddFunc(spec, job); err != nil {
		return nil, err
	}
	return &Scheduler{c: c}, nil
}

// Start begins running scheduled jobs in their own goroutine.
func (s *Scheduler) Start() {
	s.c.Start()
	log.Printf("[cron] refresh schedule started")
}

// Stop halts scheduling and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.c.Stop()
	<-ctx.Done()
}
