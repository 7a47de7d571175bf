package cron

import (
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/robfig/cron/v3"
)

// SweepSchedule runs the upload sweep every 10 minutes (seconds precision)
const SweepSchedule = "0 */10 * * * *"

// CronManager manages all scheduled cron jobs
type CronManager struct {
	cron      *cron.Cron
	uploadDir string
	maxAge    time.Duration
}

// NewCronManager creates a new cron manager
func NewCronManager(uploadDir string, maxAge time.Duration) *CronManager {
	// Create cron with seconds precision
	c := cron.New(cron.WithSeconds())

	return &CronManager{
		cron:      c,
		uploadDir: uploadDir,
		maxAge:    maxAge,
	}
}

// Start starts all cron jobs
func (m *CronManager) Start() error {
	log.Info("Starting cron jobs...")

	if err := m.registerJobs(); err != nil {
		return err
	}

	m.cron.Start()

	log.Info("Cron jobs started successfully")
	return nil
}

// Stop stops all cron jobs and waits for running ones
func (m *CronManager) Stop() {
	log.Info("Stopping cron jobs...")
	ctx := m.cron.Stop()
	<-ctx.Done()
	log.Info("Cron jobs stopped")
}

// Entries returns the number of registered jobs
func (m *CronManager) Entries() int {
	return len(m.cron.Entries())
}

func (m *CronManager) registerJobs() error {
	_, err := m.cron.AddFunc(SweepSchedule, func() {
		m.logJobStart("sweep_stale_uploads")
		m.SweepStaleUploads()
	})
	return err
}

func (m *CronManager) logJobStart(jobName string) {
	log.Debugf("[CRON] Starting job: %s", jobName)
}

func (m *CronManager) logJobComplete(jobName string, message string) {
	log.Infof("[CRON] Job %s completed: %s", jobName, message)
}

func (m *CronManager) logJobError(jobName string, err error) {
	log.Errorf("[CRON] Job %s failed: %v", jobName, err)
}
