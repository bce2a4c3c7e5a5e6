package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/cloudpulse-dev/cloudpulse/internal/services"
	"golang.org/x/sync/errgroup"
)

// DefaultInterval is how often the full resource fleet is probed.
const DefaultInterval = 5 * time.Minute

// maxConcurrentProbes bounds how many resources are probed in parallel
// within one sweep.
const maxConcurrentProbes = 8

type Scheduler struct {
	resources *services.ResourceService
	checks    *services.HealthCheckService
	interval  time.Duration

	sweepMu sync.Mutex // held for the duration of one sweep
	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewScheduler initializes a new Scheduler instance
func NewScheduler(resources *services.ResourceService, checks *services.HealthCheckService, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		resources: resources,
		checks:    checks,
		interval:  interval,
		ctx:       ctx,
		cancel:    cancel,
		done:      make(chan struct{}),
	}
}

// Start begins the recurring probe sweep.
func (s *Scheduler) Start() {
	log.Printf("Starting scheduler with %v interval", s.interval)

	go func() {
		defer close(s.done)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.RunSweep(s.ctx)
			}
		}
	}()
}

// Stop cancels the scheduling loop and waits for it to exit.
func (s *Scheduler) Stop() {
	log.Println("Stopping scheduler...")
	s.cancel()
	<-s.done
	log.Println("Scheduler stopped")
}

// RunSweep probes every registered resource once. Probes run in parallel
// with bounded concurrency; a failure on one resource is logged and never
// blocks the others. If a previous sweep is still running the call is
// skipped, so ticks never overlap.
func (s *Scheduler) RunSweep(ctx context.Context) {
	if !s.sweepMu.TryLock() {
		log.Println("Previous probe sweep still running, skipping tick")
		return
	}
	defer s.sweepMu.Unlock()

	resources, err := s.resources.All()
	if err != nil {
		log.Printf("Probe sweep aborted, failed to list resources: %v", err)
		return
	}

	if len(resources) == 0 {
		return
	}

	log.Printf("Running scheduled health checks on %d resources...", len(resources))

	var g errgroup.Group
	g.SetLimit(maxConcurrentProbes)

	for i := range resources {
		resource := resources[i]
		g.Go(func() error {
			if _, err := s.checks.PerformHealthCheck(ctx, &resource); err != nil {
				log.Printf("Health check failed for resource %s: %v", resource.Name, err)
			}
			// Per-resource failures are isolated; the sweep itself never fails.
			return nil
		})
	}

	g.Wait()
	log.Println("Scheduled health checks completed")
}

// Global scheduler instance
var globalScheduler *Scheduler

// Initialize creates and starts the global scheduler
func Initialize(resources *services.ResourceService, checks *services.HealthCheckService, interval time.Duration) {
	globalScheduler = NewScheduler(resources, checks, interval)
	globalScheduler.Start()
}

// Shutdown stops the global scheduler
func Shutdown() {
	if globalScheduler != nil {
		globalScheduler.Stop()
	}
}

// TriggerSweep runs one sweep on the global scheduler outside the timer.
func TriggerSweep(ctx context.Context) {
	if globalScheduler != nil {
		globalScheduler.RunSweep(ctx)
	}
}
