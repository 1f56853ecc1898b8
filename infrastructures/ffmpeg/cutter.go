// Package ffmpeg shells out to ffmpeg for the stream-copy cut and concat
// work. Nothing here re-encodes audio.
package ffmpeg

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/AngellusMortis/sxm-player/domain/repository"
	"github.com/AngellusMortis/sxm-player/internal/errutil"
	"github.com/AngellusMortis/sxm-player/internal/fileutil"
	"github.com/AngellusMortis/sxm-player/internal/logutil"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type cutter struct{}

func New() repository.Cutter {
	return &cutter{}
}

func (c *cutter) Extract(ctx context.Context, src string, from time.Duration, to time.Duration, dst string) error {
	err := fileutil.MkdirAllIfNotExist(filepath.Dir(dst))
	if err != nil {
		return errors.Wrap(errutil.ErrInternal, err.Error())
	}

	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-y",
		"-loglevel", "warning", // hardcoded for now
		"-i", src,
		"-acodec", "copy",
		// after -i so the offsets apply to the output side
		"-ss", formatSeconds(from),
		"-to", formatSeconds(to),
		dst,
	)

	cmd.Stdout = logutil.CmdWriter(ctx, zerolog.LevelInfoValue)
	cmd.Stderr = logutil.CmdWriter(ctx, zerolog.LevelWarnValue)

	log.Ctx(ctx).Debug().Msg(cmd.String())
	err = cmd.Start()
	if err != nil {
		return errors.Wrap(errutil.ErrFfmpeg, err.Error())
	}

	err = cmd.Wait()
	if err != nil {
		return errors.Wrap(errutil.ErrFfmpeg, err.Error())
	}

	return nil
}

func (c *cutter) Concat(ctx context.Context, parts []string, dst string) error {
	err := fileutil.MkdirAllIfNotExist(filepath.Dir(dst))
	if err != nil {
		return errors.Wrap(errutil.ErrInternal, err.Error())
	}

	list, err := writeConcatList(parts)
	if err != nil {
		return errors.Wrap(errutil.ErrInternal, err.Error())
	}
	defer os.Remove(list)

	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-y",
		"-loglevel", "warning", // hardcoded for now
		"-f", "concat",
		"-safe", "0",
		"-i", list,
		"-acodec", "copy",
		dst,
	)

	cmd.Stdout = logutil.CmdWriter(ctx, zerolog.LevelInfoValue)
	cmd.Stderr = logutil.CmdWriter(ctx, zerolog.LevelWarnValue)

	log.Ctx(ctx).Debug().Msg(cmd.String())
	err = cmd.Start()
	if err != nil {
		return errors.Wrap(errutil.ErrFfmpeg, err.Error())
	}

	err = cmd.Wait()
	if err != nil {
		return errors.Wrap(errutil.ErrFfmpeg, err.Error())
	}

	return nil
}

func formatSeconds(d time.Duration) string {
	return fmt.Sprintf("%.3f", d.Seconds())
}

// concat demuxer input, one file directive per line
func writeConcatList(parts []string) (string, error) {
	f, err := os.CreateTemp("", "sxm-player-concat-")
	if err != nil {
		return "", err
	}
	defer f.Close()

	for _, part := range parts {
		// a single quote inside a path has to be closed, escaped and reopened
		escaped := strings.ReplaceAll(part, "'", `'\''`)
		_, err := fmt.Fprintf(f, "file '%s'\n", escaped)
		if err != nil {
			os.Remove(f.Name())
			return "", err
		}
	}

	return f.Name(), nil
}
