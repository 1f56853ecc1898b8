package unit

type Kind string

const (
	KindSong    = Kind("song")
	KindEpisode = Kind("episode")
)

func (k Kind) String() string {
	return string(k)
}
