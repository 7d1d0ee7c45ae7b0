package transcript

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"widviz/config"
)

// Janitor periodically removes stale audio files left behind by processes
// that died between download and release.
type Janitor struct {
	dir    string
	maxAge time.Duration
	cron   *cron.Cron
	now    func() time.Time
}

// NewJanitor schedules a sweep of dir on schedule (cron spec or @every form).
func NewJanitor(dir, schedule string, maxAge time.Duration) (*Janitor, error) {
	j := &Janitor{
		dir:    dir,
		maxAge: maxAge,
		cron:   cron.New(),
		now:    time.Now,
	}
	if _, err := j.cron.AddFunc(schedule, func() { j.Sweep() }); err != nil {
		return nil, err
	}
	return j, nil
}

func (j *Janitor) Start() {
	slog.Info("audio janitor started", "dir", j.dir, "max_age", j.maxAge)
	j.cron.Start()
}

// Stop halts scheduling and waits for a running sweep to finish.
func (j *Janitor) Stop() {
	<-j.cron.Stop().Done()
}

// Sweep deletes audio files in dir older than maxAge and returns how many
// were removed.
func (j *Janitor) Sweep() int {
	pattern := filepath.Join(j.dir, config.AudioFilePrefix+"*")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		slog.Error("audio sweep glob failed", "pattern", pattern, "error", err)
		return 0
	}

	cutoff := j.now().Add(-j.maxAge)
	removed := 0
	for _, path := range matches {
		name := filepath.Base(path)
		if !strings.HasSuffix(name, "."+config.AudioFormat) && !strings.HasSuffix(name, ".part") {
			continue
		}
		info, err := os.Stat(path)
		if err != nil || info.IsDir() || info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(path); err != nil {
			slog.Warn("failed to remove stale audio", "path", path, "error", err)
			continue
		}
		removed++
	}
	if removed > 0 {
		slog.Info("removed stale audio files", "count", removed, "dir", j.dir)
	}
	return removed
}
