// Package notify renders digests and pushes them to the configured channels.
package notify

import (
	"context"

	log "github.com/sirupsen/logrus"
)

// Sink is one push channel.
type Sink interface {
	Name() string
	Send(ctx context.Context, msg Message) error
}

// Notifier delivers a message to every sink once. Failures are logged and
// swallowed; nothing is retried.
type Notifier struct {
	sinks []Sink
}

func NewNotifier(sinks ...Sink) *Notifier {
	return &Notifier{sinks: sinks}
}

// Enabled reports whether at least one sink is configured.
func (n *Notifier) Enabled() bool {
	return n != nil && len(n.sinks) > 0
}

// Deliver returns the number of sinks that accepted the message. Failed sinks
// are logged and not counted.
func (n *Notifier) Deliver(ctx context.Context, msg Message) int {
	if n == nil {
		return 0
	}
	delivered := 0
	for _, s := range n.sinks {
		if err := s.Send(ctx, msg); err != nil {
			log.WithFields(log.Fields{
				"sink":  s.Name(),
				"error": err.Error(),
			}).Error("push delivery failed")
			continue
		}
		delivered++
	}
	return delivered
}
