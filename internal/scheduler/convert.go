package scheduler

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/mrlokans/tolino-notes/internal/exporters"
	"github.com/mrlokans/tolino-notes/internal/services"
)

var scheduleParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ValidateSchedule checks a five field cron expression.
func ValidateSchedule(schedule string) error {
	_, err := scheduleParser.Parse(schedule)
	return err
}

// RunStatus describes the last conversion attempt.
type RunStatus struct {
	At      time.Time
	Skipped bool // input unchanged since the last successful run
	Result  *services.ConvertResult
	Err     error
}

// ConvertScheduler re-converts a notes export on a cron schedule. Runs are
// skipped while the export's modification time is unchanged.
type ConvertScheduler struct {
	service   *services.ConvertService
	exporter  exporters.BookExporter
	inputFile string
	schedule  string
	logger    logrus.FieldLogger

	// OnRun is called after every run, scheduled or not.
	OnRun func(*RunStatus)

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc

	runMu       sync.Mutex
	lastModTime time.Time
	lastRun     *RunStatus
}

func NewConvertScheduler(service *services.ConvertService, exporter exporters.BookExporter, inputFile, schedule string, logger logrus.FieldLogger) *ConvertScheduler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &ConvertScheduler{
		service:   service,
		exporter:  exporter,
		inputFile: inputFile,
		schedule:  schedule,
		logger:    logger.WithField("component", "convert_scheduler"),
	}
}

// Start schedules the conversion job. The scheduler stops when ctx is done.
func (s *ConvertScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if err := ValidateSchedule(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.schedule, err)
	}

	s.cron = cron.New(cron.WithParser(scheduleParser))
	entryID, err := s.cron.AddFunc(s.schedule, func() {
		s.runConvert()
	})
	if err != nil {
		return fmt.Errorf("failed to schedule convert job: %w", err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	s.logger.WithFields(logrus.Fields{
		"schedule": s.schedule,
		"input":    s.inputFile,
	}).Info("Scheduler started")

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop waits for a running conversion and stops the scheduler.
func (s *ConvertScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	if s.cancelFunc != nil {
		s.cancelFunc()
		s.cancelFunc = nil
	}

	s.logger.Info("Scheduler stopped")
}

// RunNow converts immediately, outside of the schedule.
func (s *ConvertScheduler) RunNow() *RunStatus {
	return s.runConvert()
}

func (s *ConvertScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRunTime returns nil when the scheduler is not running.
func (s *ConvertScheduler) NextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

// LastRun returns the status of the most recent run, or nil.
func (s *ConvertScheduler) LastRun() *RunStatus {
	s.runMu.Lock()
	defer s.runMu.Unlock()
	return s.lastRun
}

func (s *ConvertScheduler) runConvert() *RunStatus {
	status := s.convert()
	if s.OnRun != nil {
		s.OnRun(status)
	}
	return status
}

func (s *ConvertScheduler) convert() *RunStatus {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	status := &RunStatus{At: time.Now()}
	s.lastRun = status

	info, err := os.Stat(s.inputFile)
	if err != nil {
		status.Err = fmt.Errorf("failed to stat notes export: %w", err)
		s.logger.WithError(status.Err).Error("Convert failed")
		return status
	}

	if info.ModTime().Equal(s.lastModTime) {
		status.Skipped = true
		s.logger.Debug("Notes export unchanged, skipping")
		return status
	}

	start := time.Now()
	result, err := s.service.ConvertFile(s.inputFile, s.exporter)
	if err != nil {
		status.Err = err
		s.logger.WithError(err).Error("Convert failed")
		return status
	}

	s.lastModTime = info.ModTime()
	status.Result = result

	s.logger.WithFields(logrus.Fields{
		"books":    result.Export.BooksProcessed,
		"notes":    result.Export.NotesProcessed,
		"failed":   len(result.Parse.Failures),
		"duration": time.Since(start).Round(time.Millisecond),
	}).Info("Converted notes export")

	return status
}
