package sxm

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/AngellusMortis/sxm-player/domain/model/unit"
	"github.com/AngellusMortis/sxm-player/internal/errutil"
	"github.com/AngellusMortis/sxm-player/internal/testutil"
	"github.com/google/go-cmp/cmp"
	"gopkg.in/dnaeon/go-vcr.v3/recorder"
)

func Test_sxmNowPlayingToModelUnit(t *testing.T) {
	type args struct {
		nowPlaying sxmNowPlaying
		channelID  string
	}
	tests := []struct {
		name    string
		args    args
		want    *unit.Unit
		wantErr bool
	}{
		{
			name: "song with guid",
			args: args{
				nowPlaying: sxmNowPlaying{
					GUID:      "octane:song:8412973441",
					Type:      "song",
					Title:     "Du Hast",
					Artist:    "Rammstein",
					StartedAt: "2023-04-12T10:00:04Z",
				},
				channelID: "octane",
			},
			want: &unit.Unit{
				GUID:      "octane:song:8412973441",
				Kind:      unit.KindSong,
				ChannelID: "octane",
				Title:     "Du Hast",
				Artist:    "Rammstein",
				Start:     time.Date(2023, 4, 12, 10, 0, 4, 0, time.UTC),
			},
			wantErr: false,
		},
		{
			name: "episode without guid gets a synthesized one",
			args: args{
				nowPlaying: sxmNowPlaying{
					Type:      "episode",
					Title:     "Trunk Nation With Eddie Trunk",
					Show:      "Trunk Nation",
					StartedAt: "2023-04-12T09:00:00Z",
				},
				channelID: "turbo",
			},
			want: &unit.Unit{
				GUID:      unit.SynthesizeGUID("turbo", unit.KindEpisode, "Trunk Nation With Eddie Trunk", "", "Trunk Nation", time.Date(2023, 4, 12, 9, 0, 0, 0, time.UTC)),
				Kind:      unit.KindEpisode,
				ChannelID: "turbo",
				Title:     "Trunk Nation With Eddie Trunk",
				Show:      "Trunk Nation",
				Start:     time.Date(2023, 4, 12, 9, 0, 0, 0, time.UTC),
			},
			wantErr: false,
		},
		{
			name: "untitled marker gives nil",
			args: args{
				nowPlaying: sxmNowPlaying{
					Type:      "song",
					StartedAt: "2023-04-12T10:00:04Z",
				},
				channelID: "octane",
			},
			want:    nil,
			wantErr: false,
		},
		{
			name: "bad timestamp",
			args: args{
				nowPlaying: sxmNowPlaying{
					Type:      "song",
					Title:     "Du Hast",
					Artist:    "Rammstein",
					StartedAt: "yesterday",
				},
				channelID: "octane",
			},
			want:    nil,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := sxmNowPlayingToModelUnit(tt.args.nowPlaying, tt.args.channelID)
			if (err != nil) != tt.wantErr {
				t.Errorf("sxmNowPlayingToModelUnit() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("sxmNowPlayingToModelUnit() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func Test_client_NowPlaying(t *testing.T) {
	tests := []struct {
		name      string
		channelID string
		want      *unit.Unit
		wantErr   error
	}{
		{
			name:      "nowplaying_song",
			channelID: "octane",
			want: &unit.Unit{
				GUID:      "octane:song:8412973441",
				Kind:      unit.KindSong,
				ChannelID: "octane",
				Title:     "Du Hast",
				Artist:    "Rammstein",
				Start:     time.Date(2023, 4, 12, 10, 0, 4, 0, time.UTC),
			},
			wantErr: nil,
		},
		{
			name:      "nowplaying_episode",
			channelID: "turbo",
			want: &unit.Unit{
				GUID:      unit.SynthesizeGUID("turbo", unit.KindEpisode, "Trunk Nation With Eddie Trunk", "", "Trunk Nation", time.Date(2023, 4, 12, 9, 0, 0, 0, time.UTC)),
				Kind:      unit.KindEpisode,
				ChannelID: "turbo",
				Title:     "Trunk Nation With Eddie Trunk",
				Show:      "Trunk Nation",
				Start:     time.Date(2023, 4, 12, 9, 0, 0, 0, time.UTC),
			},
			wantErr: nil,
		},
		{
			name:      "nowplaying_untitled",
			channelID: "siriusxm.chill",
			want:      nil,
			wantErr:   nil,
		},
		{
			name:      "nowplaying_unavailable",
			channelID: "octane",
			want:      nil,
			wantErr:   errutil.ErrSourceUnavailable,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := recorder.New(fmt.Sprintf("../../testdata/infrastructures/sxm/go-vcr/%s", tt.name))
			if err != nil {
				t.Fatal(err)
			}
			defer r.Stop()

			c := &client{
				httpClient: r.GetDefaultClient(),
				baseURL:    testBaseURL(t),
			}
			got, err := c.NowPlaying(context.Background(), tt.channelID)
			if !testutil.ErrorsAs(err, tt.wantErr) {
				t.Errorf("client.NowPlaying() error = %+v, wantErr %v", err, tt.wantErr)
				return
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("client.NowPlaying() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
