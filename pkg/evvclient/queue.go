package evvclient

import (
	"sort"
	"sync"
	"time"
)

// Priority orders queued requests during a drain.
type Priority int

const (
	PriorityMedium Priority = iota
	PriorityHigh
)

type queuedRequest struct {
	method     string
	path       string
	body       []byte
	priority   Priority
	enqueuedAt time.Time
	seq        int

	// done receives the dispatch outcome exactly once.
	done chan queuedResult
}

type queuedResult struct {
	payload []byte
	err     error
}

// offlineQueue buffers requests while the network is unreachable. Drain
// returns them ordered by priority, then by enqueue order within equal
// priority.
type offlineQueue struct {
	mu      sync.Mutex
	entries []*queuedRequest
	seq     int
}

func newOfflineQueue() *offlineQueue {
	return &offlineQueue{}
}

func (q *offlineQueue) Enqueue(req *queuedRequest) {
	q.mu.Lock()
	defer q.mu.Unlock()
	req.seq = q.seq
	q.seq++
	q.entries = append(q.entries, req)
}

func (q *offlineQueue) Drain() []*queuedRequest {
	q.mu.Lock()
	defer q.mu.Unlock()

	drained := q.entries
	q.entries = nil

	// Entries are appended in enqueue order, so a stable sort on priority
	// alone preserves the enqueue-time tiebreak.
	sort.SliceStable(drained, func(i, j int) bool {
		return drained[i].priority > drained[j].priority
	})
	return drained
}

func (q *offlineQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}
