package usecase

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/AngellusMortis/sxm-player/domain/model/archive"
	"github.com/AngellusMortis/sxm-player/domain/model/catalog"
	"github.com/AngellusMortis/sxm-player/domain/model/channel"
	"github.com/AngellusMortis/sxm-player/domain/model/event"
	"github.com/AngellusMortis/sxm-player/domain/model/pipeline"
	"github.com/AngellusMortis/sxm-player/domain/model/unit"
	"github.com/AngellusMortis/sxm-player/domain/repository"
	"github.com/AngellusMortis/sxm-player/internal/bus"
	"github.com/AngellusMortis/sxm-player/internal/errutil"
	"github.com/AngellusMortis/sxm-player/internal/fileutil"
	"github.com/AngellusMortis/sxm-player/internal/metrics"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const (
	// anything smaller is a splice glitch, not audio
	minCutBytes = 1000

	// how many copies of one song are worth keeping
	maxSongCopies = 3

	// pending cuts fetched per queue refill
	pendingBatch = 16
)

type ucSplicer struct {
	catalog repository.Catalog
	cutter  repository.Cutter
	bus     *bus.Bus
	health  *pipeline.Health

	mu       sync.Mutex
	inFlight map[string]struct{}
}

func NewSplicer(
	catalog repository.Catalog,
	cutter repository.Cutter,
	eventBus *bus.Bus,
	health *pipeline.Health,
) *ucSplicer {
	return &ucSplicer{
		catalog:  catalog,
		cutter:   cutter,
		bus:      eventBus,
		health:   health,
		inFlight: map[string]struct{}{},
	}
}

// Intake watches one channel's events. A boundary closes the previous unit
// and records it as a pending cut, a closed segment may complete the
// coverage of cuts already waiting.
func (s *ucSplicer) Intake(ctx context.Context, ch channel.Channel, jobs chan<- unit.Unit) error {
	sub := s.bus.Subscribe(bus.TopicChannel(ch.ID))
	defer sub.Close()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-sub.C():
			if !ok {
				return nil
			}
			switch ev.Type {
			case event.TypeBoundary:
				if ev.Boundary.Previous == nil || !ev.Boundary.Previous.Ended() {
					continue
				}
				finished := *ev.Boundary.Previous
				if err := s.catalog.SavePending(ctx, finished); err != nil {
					recordFault(s.bus, s.health, ch.ID, "splicer", event.FaultResource, err.Error())
					continue
				}
				s.enqueue(ctx, jobs, finished)
			case event.TypeSegmentClosed:
				s.enqueuePending(ctx, ch.ID, jobs)
			}
		}
	}
}

// Worker drains the splice queue. Several workers share one queue, the
// in-flight set keeps them off each other's cuts.
func (s *ucSplicer) Worker(ctx context.Context, config pipeline.Config, jobs <-chan unit.Unit) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case u, ok := <-jobs:
			if !ok {
				return nil
			}
			s.cut(ctx, u, config)
		}
	}
}

// Sweep re-queues pending cuts so retries and restarts make progress even
// when no event arrives.
func (s *ucSplicer) Sweep(ctx context.Context, channels []channel.Channel, jobs chan<- unit.Unit) error {
	for _, ch := range channels {
		s.enqueuePending(ctx, ch.ID, jobs)
	}
	return nil
}

func (s *ucSplicer) enqueue(ctx context.Context, jobs chan<- unit.Unit, u unit.Unit) {
	select {
	case jobs <- u:
	default:
		// a full queue is fine, the next sweep picks the cut up again
		log.Ctx(ctx).Debug().Msgf("splice queue full, leaving cut pending (guid = %s)", u.GUID)
	}
}

func (s *ucSplicer) enqueuePending(ctx context.Context, channelID string, jobs chan<- unit.Unit) {
	pending, err := s.catalog.LoadPending(ctx, channelID, pendingBatch)
	if err != nil {
		log.Ctx(ctx).Error().Msgf("failed to load pending cuts (channel = %s): %v", channelID, err)
		return
	}
	for _, u := range pending {
		s.enqueue(ctx, jobs, u)
	}
}

func (s *ucSplicer) begin(guid string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.inFlight[guid]; ok {
		return false
	}
	s.inFlight[guid] = struct{}{}
	return true
}

func (s *ucSplicer) end(guid string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, guid)
}

// cut splices one finished unit out of the archive. Every exit that is not
// a success leaves the cut pending for a later retry or abandons it with a
// recorded reason, so a cut can never get stuck in between.
func (s *ucSplicer) cut(ctx context.Context, u unit.Unit, config pipeline.Config) {
	if !s.begin(u.GUID) {
		return
	}
	defer s.end(u.GUID)

	_, err := s.catalog.Get(ctx, u.GUID)
	if err == nil {
		// stale queue entry, the cut is already in the catalog
		return
	}
	if !stderrors.Is(err, errutil.ErrDatabaseNotFoundUnit) {
		log.Ctx(ctx).Warn().Msgf("failed to check catalog (guid = %s): %v", u.GUID, err)
		return
	}

	if u.Kind == unit.KindSong {
		copies, err := s.catalog.CountSongCopies(ctx, u.Title, u.Artist)
		if err != nil {
			log.Ctx(ctx).Warn().Msgf("failed to count song copies (guid = %s): %v", u.GUID, err)
			return
		}
		if copies >= maxSongCopies {
			s.abandon(ctx, u, "duplicate", "duplicate")
			return
		}
	}

	segments, err := scanClosedSegments(config.ArchiveDir(u.ChannelID))
	if err != nil {
		log.Ctx(ctx).Warn().Msgf("failed to scan archive (channel = %s): %v", u.ChannelID, err)
		return
	}

	switch archive.CoverageOf(segments, u.Start, u.End) {
	case archive.CoverageWaiting:
		if time.Since(u.End) > config.ArchiveRetention {
			// the recorder never archived this stretch and never will
			s.abandon(ctx, u, "never archived", "gone")
		}
		return
	case archive.CoverageGone:
		s.abandon(ctx, u, "archive gone", "gone")
		return
	}

	dst := filepath.Join(config.ProcessedDir(), u.OutputRelPath())
	err = s.extract(ctx, archive.Covering(segments, u.Start, u.End), u, dst)
	if err == nil {
		err = checkCutSize(dst)
	}
	if err != nil {
		if errutil.ClassOf(err) == errutil.ClassPermanent {
			// no retry will bring the audio back
			s.abandon(ctx, u, "archive gone", "gone")
			return
		}
		attempts, attemptErr := s.catalog.RecordAttempt(ctx, u.GUID)
		if attemptErr != nil {
			log.Ctx(ctx).Error().Msgf("failed to record cut attempt (guid = %s): %v", u.GUID, attemptErr)
			return
		}
		if attempts >= config.CutAttempts {
			recordFault(s.bus, s.health, u.ChannelID, "splicer", event.FaultResource, err.Error())
			s.abandon(ctx, u, "attempts exhausted", "failed")
			return
		}
		log.Ctx(ctx).Warn().Msgf("failed to cut %s (attempt = %d): %v", u.PrettyName(), attempts, err)
		return
	}

	entry := catalog.Entry{Unit: u, FilePath: dst, FinishedAt: time.Now().UTC()}
	if err := s.catalog.Insert(ctx, entry); err != nil {
		log.Ctx(ctx).Error().Msgf("failed to catalog cut (guid = %s): %v", u.GUID, err)
		return
	}
	metrics.IncCut(u.ChannelID, "ok")
	log.Ctx(ctx).Info().Msgf("spliced %s", u.PrettyName())
}

func (s *ucSplicer) abandon(ctx context.Context, u unit.Unit, reason string, result string) {
	if err := s.catalog.Abandon(ctx, u.GUID, reason); err != nil {
		log.Ctx(ctx).Error().Msgf("failed to abandon cut (guid = %s): %v", u.GUID, err)
		return
	}
	metrics.IncCut(u.ChannelID, result)
	log.Ctx(ctx).Info().Msgf("abandoned cut of %s (reason = %s)", u.PrettyName(), reason)
}

// extract stream-copies the unit's interval out of its covering run. A run
// of more than one segment goes through per-segment part files and a concat.
func (s *ucSplicer) extract(ctx context.Context, run []archive.Segment, u unit.Unit, dst string) error {
	if len(run) == 0 {
		return errors.Wrap(errutil.ErrArchiveGone, "no segments to cut from")
	}

	if len(run) == 1 {
		from, to := segmentOffsets(run[0], u)
		return s.cutter.Extract(ctx, run[0].Path, from, to, dst)
	}

	tmpDir, err := os.MkdirTemp("", "sxm-player-cut-")
	if err != nil {
		return errors.Wrap(errutil.ErrInternal, err.Error())
	}
	defer os.RemoveAll(tmpDir)

	parts := make([]string, 0, len(run))
	for i, seg := range run {
		// the retention sweep can erase segments while a long cut is running
		if !fileutil.Exists(seg.Path) {
			return errors.Wrapf(errutil.ErrArchiveGone, "segment vanished: %s", filepath.Base(seg.Path))
		}
		part := filepath.Join(tmpDir, fmt.Sprintf("part%02d%s", i, archive.Ext))
		from, to := segmentOffsets(seg, u)
		if err := s.cutter.Extract(ctx, seg.Path, from, to, part); err != nil {
			return err
		}
		parts = append(parts, part)
	}

	return s.cutter.Concat(ctx, parts, dst)
}

// segmentOffsets clamps the unit's interval to one segment and converts it
// to offsets within that segment's file.
func segmentOffsets(seg archive.Segment, u unit.Unit) (time.Duration, time.Duration) {
	from := u.Start
	if from.Before(seg.Start) {
		from = seg.Start
	}
	to := u.End
	if seg.End.Before(to) {
		to = seg.End
	}
	return from.Sub(seg.Start), to.Sub(seg.Start)
}

func checkCutSize(dst string) error {
	info, err := os.Stat(dst)
	if err != nil {
		return errors.Wrap(errutil.ErrInternal, err.Error())
	}
	if info.Size() < minCutBytes {
		os.Remove(dst)
		return errors.Wrapf(errutil.ErrCutTooSmall, "%d bytes", info.Size())
	}
	return nil
}
