package channel

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/Mithesh14/ipl-auction/internal/auction/state"
)

// PollInterval is how often the client pulls a full state refresh while an
// auction is active, covering for any missed pushes.
const PollInterval = time.Second

// Poller layers a periodic get_auction_state pull on top of the push
// channel. Pulls and pushes are not coordinated; the renderers are
// idempotent, so back-to-back refreshes with identical data are harmless.
type Poller struct {
	state    *state.ClientState
	emitter  Emitter
	clock    clockwork.Clock
	interval time.Duration
}

// NewPoller creates a poller. A non-positive interval falls back to
// PollInterval.
func NewPoller(st *state.ClientState, emitter Emitter, clock clockwork.Clock, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = PollInterval
	}
	return &Poller{state: st, emitter: emitter, clock: clock, interval: interval}
}

// Run polls until ctx is cancelled. Ticks while the auction is not active
// are skipped.
func (p *Poller) Run(ctx context.Context) {
	ticker := p.clock.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			if !p.state.AuctionActive() {
				continue
			}
			if err := p.emitter.Emit(EventGetAuctionState, nil); err != nil {
				log.Error().Err(err).Msg("failed to request auction state")
			}
		}
	}
}
