package viewer

import (
	"context"
	"sync"
)

// StatusNotifier keeps the latest provider error for the status line,
// since writing to the terminal would corrupt the screen.
type StatusNotifier struct {
	mu   sync.Mutex
	last string
}

func (n *StatusNotifier) Error(_ context.Context, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.last = message
}

// Take returns the pending message and clears it.
func (n *StatusNotifier) Take() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	msg := n.last
	n.last = ""
	return msg
}
