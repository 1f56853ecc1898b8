package logutil

import (
	"context"
	"path/filepath"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func NewLogger() zerolog.Logger {
	// zerolog.SetGlobalLevel(zerolog.InfoLevel)
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	zerolog.CallerMarshalFunc = func(file string, line int) string {
		filename := filepath.Base(file)
		return filename + ":" + strconv.Itoa(line)
	}

	logger := log.With().Caller().Logger()

	return logger
}

// CmdWriter is a logger suitable for exec.Cmd stdout/stderr.
// https://github.com/rs/zerolog/issues/398
// a sub logger made with log.Level(...) does not carry a level field,
// so the level has to be injected as a plain field instead
func CmdWriter(ctx context.Context, level string) zerolog.Logger {
	return log.Ctx(ctx).With().Str("level", level).Logger()
}
