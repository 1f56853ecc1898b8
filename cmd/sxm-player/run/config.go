package run

import "time"

type config struct {
	SqlitePath string `env:"SQLITE_PATH" envDefault:"db.sqlite3"`
	OutputDir  string `env:"OUTPUT_DIR" envDefault:"./output"`

	// base url of the sxm proxy
	BaseURL  string   `env:"BASE_URL" envDefault:"http://127.0.0.1:9999"`
	Channels []string `env:"CHANNELS,required" envSeparator:","`

	ListenAddr string `env:"LISTEN_ADDR" envDefault:":8822"`

	PollInterval     time.Duration `env:"POLL_INTERVAL" envDefault:"10s"`
	SegmentDuration  time.Duration `env:"SEGMENT_DURATION" envDefault:"10m"`
	FlushInterval    time.Duration `env:"FLUSH_INTERVAL" envDefault:"5s"`
	ArchiveRetention time.Duration `env:"ARCHIVE_RETENTION" envDefault:"24h"`
	SweepInterval    time.Duration `env:"SWEEP_INTERVAL" envDefault:"2m"`

	SpliceWorkers int `env:"SPLICE_WORKERS" envDefault:"2"`
	CutAttempts   int `env:"CUT_ATTEMPTS" envDefault:"4"`
	HistorySize   int `env:"HISTORY_SIZE" envDefault:"10"`
	QueueSize     int `env:"QUEUE_SIZE" envDefault:"32"`

	BackoffInitial time.Duration `env:"BACKOFF_INITIAL" envDefault:"10s"`
	BackoffMax     time.Duration `env:"BACKOFF_MAX" envDefault:"10m"`
	BackoffBudget  time.Duration `env:"BACKOFF_BUDGET" envDefault:"30m"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}
