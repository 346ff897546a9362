package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Refresher re-fetches locations on a cron schedule. Each tick is an
// independent fetch that replaces the current data when it succeeds.
type Refresher struct {
	cron    *cron.Cron
	service *MapService
	timeout time.Duration
}

func NewRefresher(service *MapService, schedule string, timeout time.Duration) (*Refresher, error) {
	r := &Refresher{
		cron:    cron.New(),
		service: service,
		timeout: timeout,
	}
	if _, err := r.cron.AddFunc(schedule, r.refresh); err != nil {
		return nil, fmt.Errorf("invalid refresh schedule %q: %w", schedule, err)
	}
	return r, nil
}

func (r *Refresher) Start() {
	r.cron.Start()
	log.Println("Scheduled location refresh started")
}

// Stop halts the schedule and waits for a running refresh to finish.
func (r *Refresher) Stop() {
	<-r.cron.Stop().Done()
}

func (r *Refresher) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()
	if err := r.service.Refresh(ctx); err != nil {
		log.Printf("Scheduled refresh failed: %v", err)
	}
}
