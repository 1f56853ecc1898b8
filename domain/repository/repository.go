//go:generate mockgen -source=$GOFILE -destination ../../testdata/mock/domain/$GOPACKAGE/$GOFILE
package repository

import (
	"context"
	"io"
	"time"

	"github.com/AngellusMortis/sxm-player/domain/model/catalog"
	"github.com/AngellusMortis/sxm-player/domain/model/channel"
	"github.com/AngellusMortis/sxm-player/domain/model/unit"
)

type Source interface {
	Channels(ctx context.Context) ([]channel.Channel, error)

	// errors returned
	// - errutil.ErrHTTPRequest
	// - errutil.ErrJSONDecode
	// - errutil.ErrSourceUnavailable
	NowPlaying(ctx context.Context, channelID string) (*unit.Unit, error)

	// caller closes the body; canceling ctx unblocks a pending Read
	OpenStream(ctx context.Context, channelID string) (io.ReadCloser, error)
}

type Catalog interface {
	SavePending(ctx context.Context, u unit.Unit) error

	// oldest first; an empty slice when nothing is pending
	LoadPending(ctx context.Context, channelID string, limit int) ([]unit.Unit, error)

	// increments and returns the attempt count for the cut
	RecordAttempt(ctx context.Context, guid string) (int, error)

	Abandon(ctx context.Context, guid string, reason string) error

	// entry plus "cut done" status change commit in one transaction
	Insert(ctx context.Context, entry catalog.Entry) error

	// errors returned
	// - errutil.ErrDatabaseNotFoundUnit
	Get(ctx context.Context, guid string) (*catalog.Entry, error)

	Search(ctx context.Context, kind unit.Kind, text string, limit int) ([]catalog.Entry, error)

	Recent(ctx context.Context, channelID string, limit int) ([]catalog.Entry, error)

	CountSongCopies(ctx context.Context, title string, artist string) (int, error)
}

type Cutter interface {
	// offsets are relative to the start of src
	Extract(ctx context.Context, src string, from time.Duration, to time.Duration, dst string) error

	Concat(ctx context.Context, parts []string, dst string) error
}
