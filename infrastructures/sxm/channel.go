package sxm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/AngellusMortis/sxm-player/domain/model/channel"
	"github.com/AngellusMortis/sxm-player/internal/errutil"
	"github.com/pkg/errors"
)

type sxmChannel struct {
	// octane
	ID string `json:"id"`

	// Octane
	Name string `json:"name"`

	// 37
	Number int `json:"number"`

	// ShortDescription string `json:"short_description"`
	// MediumDescription string `json:"medium_description"`
	// Genre            string `json:"genre"`
}

func (c *client) Channels(ctx context.Context) ([]channel.Channel, error) {
	channelsURL := c.baseURL.JoinPath("api", "channels")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, channelsURL.String(), nil)
	if err != nil {
		return nil, errors.Wrap(errutil.ErrInternal, err.Error())
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(errutil.ErrHTTPRequest, err.Error())
	}
	defer res.Body.Close()

	if res.StatusCode != 200 {
		return nil, errors.Wrapf(errutil.ErrSourceUnavailable, "http status code is %d", res.StatusCode)
	}

	sxmChannels, err := decodeToSxmChannels(res.Body)
	if err != nil {
		return nil, err
	}

	var channels []channel.Channel
	for _, sxmCh := range sxmChannels {
		channels = append(channels, channel.Channel{
			ID:     sxmCh.ID,
			Name:   sxmCh.Name,
			Number: sxmCh.Number,
		})
	}

	return channels, nil
}

func decodeToSxmChannels(input io.Reader) ([]sxmChannel, error) {
	var sxmChannels []sxmChannel
	decoder := json.NewDecoder(input)
	err := decoder.Decode(&sxmChannels)
	if err != nil {
		return nil, errors.Wrap(errutil.ErrJSONDecode, err.Error())
	}
	return sxmChannels, nil
}
