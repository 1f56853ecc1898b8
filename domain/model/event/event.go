package event

import (
	"time"

	"github.com/AngellusMortis/sxm-player/domain/model/archive"
	"github.com/AngellusMortis/sxm-player/domain/model/unit"
	"github.com/google/uuid"
)

type Type string

const (
	TypeBoundary      = Type("boundary")
	TypeSegmentClosed = Type("segment_closed")
	TypeFault         = Type("fault")
	TypeShutdown      = Type("shutdown")
)

func (t Type) String() string {
	return string(t)
}

// Event carries exactly one payload, selected by Type.
type Event struct {
	Type     Type
	Boundary *Boundary
	Segment  *archive.Segment
	Fault    *Fault
}

// Boundary marks the moment the monitor saw channel metadata switch units.
// Previous is nil for the first observation after startup. Previous.End
// carries the detection stamp, not the true transition instant.
type Boundary struct {
	ChannelID string     `json:"channel_id"`
	Previous  *unit.Unit `json:"previous,omitempty"`
	Current   unit.Unit  `json:"current"`
	At        time.Time  `json:"at"`
}

type FaultKind string

const (
	FaultSource   = FaultKind("source")
	FaultResource = FaultKind("resource")
	FaultData     = FaultKind("data")
	FaultInternal = FaultKind("internal")
)

func (k FaultKind) String() string {
	return string(k)
}

type Fault struct {
	ID        string    `json:"id"`
	Worker    string    `json:"worker"`
	ChannelID string    `json:"channel_id"`
	Kind      FaultKind `json:"kind"`
	Detail    string    `json:"detail"`
	Fatal     bool      `json:"fatal"`
	At        time.Time `json:"at"`
}

func NewBoundary(channelID string, previous *unit.Unit, current unit.Unit, at time.Time) Event {
	return Event{
		Type: TypeBoundary,
		Boundary: &Boundary{
			ChannelID: channelID,
			Previous:  previous,
			Current:   current,
			At:        at,
		},
	}
}

func NewSegmentClosed(seg archive.Segment) Event {
	s := seg
	return Event{Type: TypeSegmentClosed, Segment: &s}
}

func NewFault(worker, channelID string, kind FaultKind, detail string, fatal bool) Event {
	return Event{
		Type: TypeFault,
		Fault: &Fault{
			ID:        uuid.NewString(),
			Worker:    worker,
			ChannelID: channelID,
			Kind:      kind,
			Detail:    detail,
			Fatal:     fatal,
			At:        time.Now().UTC(),
		},
	}
}

func NewShutdown() Event {
	return Event{Type: TypeShutdown}
}
