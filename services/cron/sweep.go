package cron

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
)

// SweepStaleUploads removes uploads left behind by crashed or aborted requests
func (m *CronManager) SweepStaleUploads() {
	jobName := "sweep_stale_uploads"

	removed, err := SweepDir(m.uploadDir, m.maxAge, time.Now())
	if err != nil {
		m.logJobError(jobName, err)
		return
	}

	m.logJobComplete(jobName, fmt.Sprintf("Removed %d stale uploads", removed))
}

// SweepDir deletes *.pdf files in dir last modified before now-maxAge.
// A missing directory is not an error.
func SweepDir(dir string, maxAge time.Duration, now time.Time) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read upload dir: %w", err)
	}

	cutoff := now.Add(-maxAge)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Warnf("[CRON] Failed to remove %s: %v", path, err)
			continue
		}
		removed++
	}

	return removed, nil
}
