package unit

// cut lifecycle of a finished unit
type Status string

const (
	StatusPending   = Status("pending")
	StatusDone      = Status("done")
	StatusAbandoned = Status("abandoned")
)

func (s Status) String() string {
	return string(s)
}
