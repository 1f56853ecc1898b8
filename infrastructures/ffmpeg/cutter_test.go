package ffmpeg

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func Test_formatSeconds(t *testing.T) {
	tests := []struct {
		name string
		d    time.Duration
		want string
	}{
		{
			name: "zero",
			d:    0,
			want: "0.000",
		},
		{
			name: "keeps milliseconds",
			d:    2*time.Minute + 30*time.Second + 500*time.Millisecond,
			want: "150.500",
		},
		{
			name: "whole minutes",
			d:    7 * time.Minute,
			want: "420.000",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatSeconds(tt.d); got != tt.want {
				t.Errorf("formatSeconds() = %v, want %v", got, tt.want)
			}
		})
	}
}

func Test_writeConcatList(t *testing.T) {
	parts := []string{
		"/tmp/a.mp3",
		"/tmp/What's Up.mp3",
	}
	list, err := writeConcatList(parts)
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(list)

	data, err := os.ReadFile(list)
	if err != nil {
		t.Fatal(err)
	}

	want := "file '/tmp/a.mp3'\nfile '/tmp/What'\\''s Up.mp3'\n"
	if diff := cmp.Diff(want, string(data)); diff != "" {
		t.Errorf("writeConcatList() mismatch (-want +got):\n%s", diff)
	}
}
