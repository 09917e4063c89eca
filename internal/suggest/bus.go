package suggest

import "github.com/taskbench/taskbench-go/internal/domain"

// errorBus is a latest-value error channel: it retains at most one pending
// classified error, and a new error overwrites an undelivered old one.
type errorBus struct {
	ch chan domain.ErrorKind
}

func newErrorBus() *errorBus {
	return &errorBus{ch: make(chan domain.ErrorKind, 1)}
}

// publish enqueues kind, dropping the undelivered previous value if present.
func (b *errorBus) publish(kind domain.ErrorKind) {
	for {
		select {
		case b.ch <- kind:
			return
		default:
		}
		select {
		case <-b.ch:
		default:
		}
	}
}

func (b *errorBus) channel() <-chan domain.ErrorKind {
	return b.ch
}
