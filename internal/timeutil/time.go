package timeutil

import (
	"math/rand"
	"time"

	"github.com/AngellusMortis/sxm-player/internal/errutil"
	"github.com/pkg/errors"
)

// archive file timestamps are UTC, second resolution
const LayoutFS = "20060102-150405"

func FormatFS(t time.Time) string {
	return t.UTC().Format(LayoutFS)
}

func ParseFS(s string) (time.Time, error) {
	t, err := time.ParseInLocation(LayoutFS, s, time.UTC)
	if err != nil {
		return time.Time{}, errors.Wrap(errutil.ErrTimeParse, err.Error())
	}
	return t, nil
}

// Jitter shifts d by up to ±frac of itself so that pollers
// across channels drift apart instead of firing in lockstep.
func Jitter(d time.Duration, frac float64) time.Duration {
	if d <= 0 || frac <= 0 {
		return d
	}
	delta := (rand.Float64()*2 - 1) * frac * float64(d)
	return d + time.Duration(delta)
}
