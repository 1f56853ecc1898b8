package sxm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/AngellusMortis/sxm-player/domain/model/unit"
	"github.com/AngellusMortis/sxm-player/internal/errutil"
	"github.com/pkg/errors"
)

type sxmNowPlaying struct {
	// octane:song:8412973441
	// missing on sweepers and station idents
	GUID string `json:"guid"`

	// song or episode
	Type string `json:"type"`

	// Du Hast
	Title string `json:"title"`

	// Rammstein
	// songs only
	Artist string `json:"artist"`

	// Trunk Nation
	// episodes only
	Show string `json:"show"`

	// Album  string `json:"album"`
	// ArtURL string `json:"art_url"`

	// 2023-04-12T10:00:04Z
	StartedAt string `json:"started_at"`
}

func (c *client) NowPlaying(ctx context.Context, channelID string) (*unit.Unit, error) {
	nowPlayingURL := c.baseURL.JoinPath("api", "channels", channelID, "nowplaying")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, nowPlayingURL.String(), nil)
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

	nowPlaying, err := decodeToSxmNowPlaying(res.Body)
	if err != nil {
		return nil, err
	}

	return sxmNowPlayingToModelUnit(nowPlaying, channelID)
}

func decodeToSxmNowPlaying(input io.Reader) (sxmNowPlaying, error) {
	var nowPlaying sxmNowPlaying
	decoder := json.NewDecoder(input)
	err := decoder.Decode(&nowPlaying)
	if err != nil {
		return sxmNowPlaying{}, errors.Wrap(errutil.ErrJSONDecode, err.Error())
	}
	return nowPlaying, nil
}

func sxmNowPlayingToModelUnit(nowPlaying sxmNowPlaying, channelID string) (*unit.Unit, error) {
	// untitled marker, nothing worth cutting is on air
	if nowPlaying.Title == "" {
		return nil, nil
	}

	start, err := time.Parse(time.RFC3339, nowPlaying.StartedAt)
	if err != nil {
		return nil, errors.Wrap(errutil.ErrTimeParse, err.Error())
	}

	kind := unit.KindSong
	if nowPlaying.Type == "episode" {
		kind = unit.KindEpisode
	}

	guid := nowPlaying.GUID
	if guid == "" {
		guid = unit.SynthesizeGUID(channelID, kind, nowPlaying.Title, nowPlaying.Artist, nowPlaying.Show, start)
	}

	return &unit.Unit{
		GUID:      guid,
		Kind:      kind,
		ChannelID: channelID,
		Title:     nowPlaying.Title,
		Artist:    nowPlaying.Artist,
		Show:      nowPlaying.Show,
		Start:     start,
	}, nil
}
