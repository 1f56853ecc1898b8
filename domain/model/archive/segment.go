package archive

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/AngellusMortis/sxm-player/internal/errutil"
	"github.com/AngellusMortis/sxm-player/internal/timeutil"
	"github.com/pkg/errors"
)

// Segment is one rolling archive file. A segment is written by exactly one
// recorder goroutine and becomes read-only the moment it is renamed to its
// closed name.
type Segment struct {
	ChannelID string    `json:"channel_id"`
	Path      string    `json:"path"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Bytes     int64     `json:"bytes"`
}

func (s Segment) Closed() bool {
	return !s.End.IsZero()
}

// Overlaps reports whether the segment intersects [from, to).
func (s Segment) Overlaps(from, to time.Time) bool {
	return s.Start.Before(to) && from.Before(s.End)
}

const (
	Ext     = ".mp3"
	PartExt = ".part"
)

// Filename is <channel>.<start>.<end>.mp3 for a closed segment.
func Filename(channelID string, start, end time.Time) string {
	return fmt.Sprintf("%s.%s.%s%s", channelID, timeutil.FormatFS(start), timeutil.FormatFS(end), Ext)
}

// PartFilename names a segment still being written.
func PartFilename(channelID string, start time.Time) string {
	return fmt.Sprintf("%s.%s%s%s", channelID, timeutil.FormatFS(start), Ext, PartExt)
}

func IsPartFile(name string) bool {
	return strings.HasSuffix(name, PartExt)
}

// ParseFilename inverts Filename. It takes a base name, not a path.
func ParseFilename(name string) (Segment, error) {
	base := strings.TrimSuffix(name, Ext)
	if base == name {
		return Segment{}, errors.Wrapf(errutil.ErrInternal, "not an archive file name: %s", name)
	}

	// channel ids may contain dots, the timestamps never do
	parts := strings.Split(base, ".")
	if len(parts) < 3 {
		return Segment{}, errors.Wrapf(errutil.ErrInternal, "not an archive file name: %s", name)
	}

	start, err := timeutil.ParseFS(parts[len(parts)-2])
	if err != nil {
		return Segment{}, err
	}
	end, err := timeutil.ParseFS(parts[len(parts)-1])
	if err != nil {
		return Segment{}, err
	}

	return Segment{
		ChannelID: strings.Join(parts[:len(parts)-2], "."),
		Start:     start,
		End:       end,
	}, nil
}

type Coverage string

const (
	// a contiguous run of closed segments spans the whole interval
	CoverageReady = Coverage("ready")
	// the tail has not been archived yet, try again later
	CoverageWaiting = Coverage("waiting")
	// part of the interval can never show up again
	CoverageGone = Coverage("gone")
)

// CoverageOf reports whether the closed segments segs cover [from, to).
// Contiguous segments share their boundary instant exactly, so any
// positive gap between neighbours is a recording hole.
func CoverageOf(segs []Segment, from, to time.Time) Coverage {
	run := Covering(segs, from, to)

	if len(run) == 0 {
		if anyStartsAtOrAfter(segs, to) {
			return CoverageGone
		}
		return CoverageWaiting
	}

	if run[0].Start.After(from) {
		// the head predates the oldest archive we still have
		return CoverageGone
	}

	last := run[0]
	for _, seg := range run[1:] {
		if seg.Start.After(last.End) {
			return CoverageGone
		}
		last = seg
	}

	if !last.End.Before(to) {
		return CoverageReady
	}
	if anyStartsAtOrAfter(segs, to) {
		// recording moved past the interval without covering its tail
		return CoverageGone
	}
	return CoverageWaiting
}

// Covering returns the segments intersecting [from, to), sorted by start.
func Covering(segs []Segment, from, to time.Time) []Segment {
	var run []Segment
	for _, seg := range segs {
		if seg.Closed() && seg.Overlaps(from, to) {
			run = append(run, seg)
		}
	}
	sort.Slice(run, func(i, j int) bool { return run[i].Start.Before(run[j].Start) })
	return run
}

func anyStartsAtOrAfter(segs []Segment, t time.Time) bool {
	for _, seg := range segs {
		if !seg.Start.Before(t) {
			return true
		}
	}
	return false
}
