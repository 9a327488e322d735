// Package scheduler runs periodic jobs on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mrlokans/readingtracker/internal/logger"
)

// scheduleParser accepts five-field expressions and descriptors such as
// "@daily" or "@every 1h".
var scheduleParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// ValidateSchedule reports whether schedule can be started by ImportScheduler.
func ValidateSchedule(schedule string) error {
	_, err := scheduleParser.Parse(schedule)
	return err
}

// EnqueueFunc schedules the import work and returns the created task ids.
type EnqueueFunc func() ([]string, error)

// ImportScheduler periodically enqueues book imports.
type ImportScheduler struct {
	schedule string
	enqueue  EnqueueFunc
	log      *logger.Logger

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

func NewImportScheduler(schedule string, enqueue EnqueueFunc, log *logger.Logger) *ImportScheduler {
	if log == nil {
		log = logger.Nop()
	}
	return &ImportScheduler{
		schedule: schedule,
		enqueue:  enqueue,
		log:      log.With("component", "import_scheduler"),
		cron:     cron.New(cron.WithParser(scheduleParser)),
	}
}

// Start registers the job and starts the cron loop. An empty schedule
// disables the scheduler. The scheduler stops when ctx is cancelled.
func (s *ImportScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if s.schedule == "" {
		s.log.Info("Import scheduler disabled")
		return nil
	}

	entryID, err := s.cron.AddFunc(s.schedule, s.runImport)
	if err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.schedule, err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	s.log.Info("Import scheduler started", "schedule", s.schedule, "next_run", s.cron.Entry(entryID).Next)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop waits for a running job and stops the cron loop.
func (s *ImportScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	if s.cancelFunc != nil {
		s.cancelFunc()
	}
	s.isRunning = false
	s.cancelFunc = nil

	s.log.Info("Import scheduler stopped")
}

func (s *ImportScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRun returns the next scheduled run, or the zero time when stopped.
func (s *ImportScheduler) NextRun() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.isRunning {
		return time.Time{}
	}
	return s.cron.Entry(s.entryID).Next
}

// RunNow enqueues the imports immediately.
func (s *ImportScheduler) RunNow() ([]string, error) {
	return s.enqueue()
}

func (s *ImportScheduler) runImport() {
	ids, err := s.enqueue()
	if err != nil {
		s.log.Error("Scheduled import failed", "error", err)
		return
	}
	s.log.Info("Scheduled import enqueued", "tasks", len(ids))
}
