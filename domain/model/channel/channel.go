package channel

// Channel is one entry of the upstream channel directory. The set is
// loaded once at startup and never changes while the daemon runs.
type Channel struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Number int    `json:"number,omitempty"`
}

func (c Channel) Valid() bool {
	return c.ID != ""
}
