package usecase

import (
	"bufio"
	"context"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/AngellusMortis/sxm-player/domain/model/archive"
	"github.com/AngellusMortis/sxm-player/domain/model/channel"
	"github.com/AngellusMortis/sxm-player/domain/model/event"
	"github.com/AngellusMortis/sxm-player/domain/model/pipeline"
	"github.com/AngellusMortis/sxm-player/domain/repository"
	"github.com/AngellusMortis/sxm-player/internal/bus"
	"github.com/AngellusMortis/sxm-player/internal/errutil"
	"github.com/AngellusMortis/sxm-player/internal/fileutil"
	"github.com/AngellusMortis/sxm-player/internal/metrics"
	"github.com/cenkalti/backoff/v4"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

type ucRecorder struct {
	source repository.Source
	bus    *bus.Bus
	health *pipeline.Health
}

func NewRecorder(
	source repository.Source,
	eventBus *bus.Bus,
	health *pipeline.Health,
) *ucRecorder {
	return &ucRecorder{
		source: source,
		bus:    eventBus,
		health: health,
	}
}

// Run records the live stream of one channel into rolling archive segments
// until ctx is canceled. A dropped stream reconnects with backoff, and the
// gap between segments stays visible to the splicer as a recording hole.
func (r *ucRecorder) Run(ctx context.Context, ch channel.Channel, config pipeline.Config) error {
	dir := config.ArchiveDir(ch.ID)
	if err := fileutil.MkdirAllIfNotExist(dir); err != nil {
		return errors.Wrap(errutil.ErrInternal, err.Error())
	}
	removeStaleParts(ctx, dir)

	bo := newSourceBackoff(config)
	for {
		wrote, err := r.record(ctx, ch, config, dir)
		if ctx.Err() != nil {
			return nil
		}
		if wrote {
			bo.Reset()
		}
		if err != nil {
			kind := event.FaultSource
			if stderrors.Is(err, errutil.ErrInternal) {
				kind = event.FaultResource
			}
			recordFault(r.bus, r.health, ch.ID, "recorder", kind, err.Error())
		}

		next := bo.NextBackOff()
		if next == backoff.Stop {
			return errors.Wrap(errutil.ErrSourceUnavailable, "reconnect budget exhausted")
		}
		log.Ctx(ctx).Warn().Msgf("stream closed, reconnecting (sleep = %s)", next)
		if err := sleepCtx(ctx, next); err != nil {
			return nil
		}
	}
}

// record copies stream bytes into segment files until the stream ends. It
// reports whether any audio made it to disk. The first segment opens on the
// first read so a dead connection never produces an empty file, and rotation
// reuses one timestamp for the close and the open, keeping neighbouring
// segments contiguous to the nanosecond.
func (r *ucRecorder) record(ctx context.Context, ch channel.Channel, config pipeline.Config, dir string) (bool, error) {
	stream, err := r.source.OpenStream(ctx, ch.ID)
	if err != nil {
		return false, err
	}
	defer stream.Close()

	log.Ctx(ctx).Info().Msg("recording")

	var (
		seg       *openSegment
		wrote     bool
		lastFlush time.Time
	)
	defer func() {
		if seg != nil {
			r.closeSegment(ctx, ch.ID, seg, time.Now().UTC())
		}
	}()

	buf := make([]byte, 32*1024)
	for {
		n, readErr := stream.Read(buf)
		if n > 0 {
			now := time.Now().UTC()

			if seg != nil && now.Sub(seg.start) >= config.SegmentDuration {
				r.closeSegment(ctx, ch.ID, seg, now)
				seg = nil
			}
			if seg == nil {
				seg, err = openPartSegment(dir, ch.ID, now)
				if err != nil {
					return wrote, err
				}
				lastFlush = now
			}

			if _, err := seg.w.Write(buf[:n]); err != nil {
				return wrote, errors.Wrap(errutil.ErrInternal, err.Error())
			}
			seg.bytes += int64(n)
			wrote = true

			// a crash loses at most one flush interval of audio
			if now.Sub(lastFlush) >= config.FlushInterval {
				if err := seg.w.Flush(); err != nil {
					return wrote, errors.Wrap(errutil.ErrInternal, err.Error())
				}
				lastFlush = now
			}
		}
		if readErr != nil {
			if readErr == io.EOF || ctx.Err() != nil {
				return wrote, nil
			}
			return wrote, errors.Wrap(errutil.ErrStreamClosed, readErr.Error())
		}
	}
}

type openSegment struct {
	path  string
	start time.Time
	f     *os.File
	w     *bufio.Writer
	bytes int64
}

func openPartSegment(dir string, channelID string, start time.Time) (*openSegment, error) {
	path := filepath.Join(dir, archive.PartFilename(channelID, start))
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrap(errutil.ErrInternal, err.Error())
	}
	return &openSegment{
		path:  path,
		start: start,
		f:     f,
		w:     bufio.NewWriter(f),
	}, nil
}

// closeSegment flushes, renames the part file to its closed name and
// announces the segment. The rename is what makes the audio visible to the
// splicer, a crash before it leaves only a part file behind.
func (r *ucRecorder) closeSegment(ctx context.Context, channelID string, seg *openSegment, end time.Time) {
	if err := seg.w.Flush(); err != nil {
		log.Ctx(ctx).Error().Msgf("failed to flush segment (path = %s): %v", seg.path, err)
	}
	if err := seg.f.Sync(); err != nil {
		log.Ctx(ctx).Warn().Msgf("failed to sync segment (path = %s): %v", seg.path, err)
	}
	if err := seg.f.Close(); err != nil {
		log.Ctx(ctx).Error().Msgf("failed to close segment (path = %s): %v", seg.path, err)
	}

	closedPath := filepath.Join(filepath.Dir(seg.path), archive.Filename(channelID, seg.start, end))
	if err := os.Rename(seg.path, closedPath); err != nil {
		log.Ctx(ctx).Error().Msgf("failed to rename segment (path = %s): %v", seg.path, err)
		return
	}

	closed := archive.Segment{
		ChannelID: channelID,
		Path:      closedPath,
		Start:     seg.start,
		End:       end,
		Bytes:     seg.bytes,
	}
	r.bus.Publish(bus.TopicChannel(channelID), event.NewSegmentClosed(closed))
	metrics.IncSegmentClosed(channelID)
	log.Ctx(ctx).Info().Msgf("closed segment (file = %s, bytes = %d)", filepath.Base(closedPath), seg.bytes)
}

// SweepArchive drops closed segments older than the retention window.
// Pending cuts that old have already been abandoned by the splice sweep.
func (r *ucRecorder) SweepArchive(ctx context.Context, channels []channel.Channel, config pipeline.Config) error {
	cutoff := time.Now().UTC().Add(-config.ArchiveRetention)
	for _, ch := range channels {
		segments, err := scanClosedSegments(config.ArchiveDir(ch.ID))
		if err != nil {
			log.Ctx(ctx).Error().Msgf("failed to scan archive (channel = %s): %v", ch.ID, err)
			continue
		}
		for _, seg := range segments {
			if !seg.End.Before(cutoff) {
				continue
			}
			if err := os.Remove(seg.Path); err != nil {
				log.Ctx(ctx).Warn().Msgf("failed to remove old segment (path = %s): %v", seg.Path, err)
				continue
			}
			log.Ctx(ctx).Debug().Msgf("dropped old segment (file = %s)", filepath.Base(seg.Path))
		}
	}
	return nil
}
