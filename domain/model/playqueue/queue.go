package playqueue

import (
	"sync"

	"github.com/AngellusMortis/sxm-player/internal/errutil"
	"github.com/pkg/errors"
)

// Queue holds accepted play requests, catalog guids in arrival order.
// The daemon only brokers the list, external players drain it.
type Queue struct {
	mu    sync.Mutex
	cap   int
	guids []string
}

func New(capacity int) *Queue {
	if capacity <= 0 {
		capacity = 32
	}
	return &Queue{cap: capacity}
}

// Push rejects guids that are already waiting.
func (q *Queue) Push(guid string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.guids) >= q.cap {
		return errors.Wrapf(errutil.ErrQueueFull, "capacity %d", q.cap)
	}
	for _, g := range q.guids {
		if g == guid {
			return errors.Wrap(errutil.ErrAlreadyQueued, guid)
		}
	}
	q.guids = append(q.guids, guid)
	return nil
}

// Next pops the head.
func (q *Queue) Next() (string, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.guids) == 0 {
		return "", false
	}
	head := q.guids[0]
	q.guids = q.guids[1:]
	return head, true
}

func (q *Queue) Items() []string {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]string, len(q.guids))
	copy(out, q.guids)
	return out
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.guids)
}
