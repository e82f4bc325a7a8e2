package view

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// StatusTTL is how long a transient bid status stays visible.
const StatusTTL = 3 * time.Second

// StatusNotifier shows transient messages near the bid input and clears
// them after StatusTTL. Each message schedules its own clear; a later
// message does not extend an earlier timer.
type StatusNotifier struct {
	surface Surface
	clock   clockwork.Clock
	ttl     time.Duration
}

// NewStatusNotifier creates a notifier over the given surface. A
// non-positive ttl falls back to StatusTTL.
func NewStatusNotifier(surface Surface, clock clockwork.Clock, ttl time.Duration) *StatusNotifier {
	if ttl <= 0 {
		ttl = StatusTTL
	}
	return &StatusNotifier{surface: surface, clock: clock, ttl: ttl}
}

// Show displays a transient status message.
func (n *StatusNotifier) Show(message string, kind StatusKind) {
	n.surface.ShowBidStatus(message, kind)
	n.clock.AfterFunc(n.ttl, n.surface.ClearBidStatus)
}
