package pipeline

import (
	"path/filepath"
	"time"
)

type Config struct {
	// root of the archive/ and processed/ trees
	OutputDir string

	// monitor tick, jittered per channel
	PollInterval time.Duration

	// rotation bound for one archive file
	SegmentDuration time.Duration

	// a crash loses at most one flush interval of audio
	FlushInterval time.Duration

	// closed segments older than this get swept away
	ArchiveRetention time.Duration

	// how often pending cuts are retried
	SweepInterval time.Duration

	SpliceWorkers int

	// transient-failure budget per cut before it is abandoned
	CutAttempts int

	HistorySize int
	QueueSize   int

	// upstream failure cooldown ladder
	BackoffInitial time.Duration
	BackoffMax     time.Duration
	BackoffBudget  time.Duration

	ShutdownTimeout time.Duration
}

func (c Config) ArchiveDir(channelID string) string {
	return filepath.Join(c.OutputDir, "archive", channelID)
}

func (c Config) ProcessedDir() string {
	return filepath.Join(c.OutputDir, "processed")
}
