// Package store holds the client's shared state: the authenticated session
// and the report collection. Both stores drive every asynchronous operation
// through the same lifecycle machine (idle -> loading -> idle|failed) so the
// transitions stay identical across operations.
package store

import "sync"

// Status is the lifecycle marker of a store's most recent operation.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusFailed  Status = "failed"
)

// lifecycle is the per-store operation state machine. It is not safe for
// concurrent use on its own; the owning store's mutex guards it.
//
// Every operation gets a sequence number from begin. A completion whose
// sequence is no longer current is dropped without touching state, which
// resolves overlapping calls as "last dispatched wins" and makes completions
// that arrive after the owning screen went away harmless.
type lifecycle struct {
	status Status
	errMsg string
	seq    uint64
}

func newLifecycle() lifecycle {
	return lifecycle{status: StatusIdle}
}

// begin flips to loading, clears the last error, and returns the sequence
// number the operation must present to finish.
func (l *lifecycle) begin() uint64 {
	l.seq++
	l.status = StatusLoading
	l.errMsg = ""
	return l.seq
}

// current reports whether seq belongs to the most recently begun operation.
func (l *lifecycle) current(seq uint64) bool {
	return seq == l.seq
}

// finish records the outcome of the operation identified by seq. An empty
// msg means success. Returns false when the completion was stale and dropped.
func (l *lifecycle) finish(seq uint64, msg string) bool {
	if seq != l.seq {
		return false
	}
	if msg == "" {
		l.status = StatusIdle
	} else {
		l.status = StatusFailed
		l.errMsg = msg
	}
	return true
}

// reset returns to idle and clears the error without invalidating an
// in-flight operation; its completion will still apply.
func (l *lifecycle) reset() {
	l.status = StatusIdle
	l.errMsg = ""
}

// invalidate drops any in-flight operation so its completion is discarded.
func (l *lifecycle) invalidate() {
	l.seq++
	l.status = StatusIdle
	l.errMsg = ""
}

// notifier fans out change notifications to subscribed screens.
type notifier struct {
	mu   sync.Mutex
	subs []func()
}

func (n *notifier) subscribe(fn func()) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.subs = append(n.subs, fn)
}

// notify must be called without holding the owning store's state mutex:
// screens typically re-read store state from inside the callback.
func (n *notifier) notify() {
	n.mu.Lock()
	subs := make([]func(), len(n.subs))
	copy(subs, n.subs)
	n.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
}
