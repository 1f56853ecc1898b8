package sxm

import (
	"context"
	"io"
	"net/http"

	"github.com/AngellusMortis/sxm-player/internal/errutil"
	"github.com/pkg/errors"
)

// OpenStream returns the live mp3 feed for the channel. The caller owns the
// body; canceling ctx aborts a blocked Read.
func (c *client) OpenStream(ctx context.Context, channelID string) (io.ReadCloser, error) {
	streamURL := c.baseURL.JoinPath("streams", channelID+".mp3")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, streamURL.String(), nil)
	if err != nil {
		return nil, errors.Wrap(errutil.ErrInternal, err.Error())
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(errutil.ErrHTTPRequest, err.Error())
	}

	if res.StatusCode != 200 {
		res.Body.Close()
		return nil, errors.Wrapf(errutil.ErrSourceUnavailable, "http status code is %d", res.StatusCode)
	}

	return res.Body, nil
}
