package usecase

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"github.com/AngellusMortis/sxm-player/domain/model/archive"
	"github.com/AngellusMortis/sxm-player/internal/errutil"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// scanClosedSegments lists the closed archive files of one channel
// directory, oldest first. Files still being written are skipped.
func scanClosedSegments(dir string) ([]archive.Segment, error) {
	dirEntries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(errutil.ErrInternal, err.Error())
	}

	var segments []archive.Segment
	for _, dirEntry := range dirEntries {
		if dirEntry.IsDir() || archive.IsPartFile(dirEntry.Name()) {
			continue
		}
		seg, err := archive.ParseFilename(dirEntry.Name())
		if err != nil {
			// stray file, not one of ours
			continue
		}
		info, err := dirEntry.Info()
		if err != nil {
			continue
		}
		seg.Path = filepath.Join(dir, dirEntry.Name())
		seg.Bytes = info.Size()
		segments = append(segments, seg)
	}

	sort.Slice(segments, func(i, j int) bool { return segments[i].Start.Before(segments[j].Start) })
	return segments, nil
}

// removeStaleParts sweeps away part files a dead process left behind. The
// audio in them has no closed name, so nothing can splice from it anyway.
func removeStaleParts(ctx context.Context, dir string) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, dirEntry := range dirEntries {
		if dirEntry.IsDir() || !archive.IsPartFile(dirEntry.Name()) {
			continue
		}
		path := filepath.Join(dir, dirEntry.Name())
		if err := os.Remove(path); err != nil {
			log.Ctx(ctx).Warn().Msgf("failed to remove stale part file (path = %s)", path)
			continue
		}
		log.Ctx(ctx).Info().Msgf("removed stale part file (path = %s)", path)
	}
}
