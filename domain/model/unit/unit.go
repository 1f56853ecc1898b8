package unit

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/AngellusMortis/sxm-player/internal/fileutil"
	"github.com/cespare/xxhash/v2"
)

// Unit is one continuous piece of channel content, a song or a show episode.
type Unit struct {
	// stable id from the source metadata, synthesized when the source has none
	GUID string `json:"guid"`

	Kind      Kind   `json:"kind"`
	ChannelID string `json:"channel_id"`

	Title  string `json:"title"`
	Artist string `json:"artist,omitempty"` // songs
	Show   string `json:"show,omitempty"`   // episodes

	// air interval; End stays zero while the unit is still on air
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (u Unit) Ended() bool {
	return !u.End.IsZero()
}

// SynthesizeGUID builds a deterministic id for metadata without one.
// The same airing always hashes to the same id, a replay of the same
// song at another time does not.
func SynthesizeGUID(channelID string, kind Kind, title, artist, show string, start time.Time) string {
	hashString := fmt.Sprintf("%s-%s-%s-%s-%d",
		title,
		artist,
		show,
		kind,
		start.Unix(),
	)
	return fmt.Sprintf("%s:%s:%d", channelID, kind, xxhash.Sum64String(hashString))
}

func (u Unit) PrettyName() string {
	switch u.Kind {
	case KindSong:
		return fmt.Sprintf("%q by %s", u.Title, u.Artist)
	case KindEpisode:
		if u.Show != "" {
			return fmt.Sprintf("%s (%s)", u.Title, u.Show)
		}
	}
	return u.Title
}

// OutputRelPath is where the finished file lands under the processed tree.
// Songs go under songs/<artist>/, episodes under shows/<show>/ with the
// air time in the name so reruns sort next to each other.
func (u Unit) OutputRelPath() string {
	title := fileutil.SanitizeReplaceName(u.Title)
	guid := fileutil.SanitizeReplaceName(u.GUID)
	switch u.Kind {
	case KindEpisode:
		return filepath.Join(
			u.ChannelID,
			"shows",
			fileutil.SanitizeReplaceName(u.Show),
			fmt.Sprintf("%s.%s.%s.mp3", title, u.Start.UTC().Format("2006-01-02-15.04"), guid),
		)
	default:
		return filepath.Join(
			u.ChannelID,
			"songs",
			fileutil.SanitizeReplaceName(u.Artist),
			fmt.Sprintf("%s.%s.mp3", title, guid),
		)
	}
}
