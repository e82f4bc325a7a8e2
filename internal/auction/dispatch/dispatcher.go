// Package dispatch translates user gestures into outbound requests: bids
// and auctioneer controls over the real-time channel, lineup edits and
// logout over REST. It never mutates authoritative auction state locally;
// the server echoes results back through the channel.
package dispatch

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/Mithesh14/ipl-auction/clients/auction_api_client"
	"github.com/Mithesh14/ipl-auction/internal/auction/channel"
	"github.com/Mithesh14/ipl-auction/internal/auction/lineup"
	"github.com/Mithesh14/ipl-auction/internal/auction/state"
	"github.com/Mithesh14/ipl-auction/internal/auction/view"
	"github.com/Mithesh14/ipl-auction/internal/models"
)

// API is the slice of the REST client the dispatcher needs.
type API interface {
	MyTeam(ctx context.Context) (models.TeamSnapshot, error)
	UpdatePlayingXI(ctx context.Context, req auction_api_client.UpdatePlayingXIRequest) error
	Logout(ctx context.Context) error
}

// ConfirmFunc asks the user to confirm a destructive action.
type ConfirmFunc func(prompt string) bool

// Config wires a Dispatcher.
type Config struct {
	State         *state.ClientState
	Emitter       channel.Emitter
	Surface       view.Surface
	Notifier      *view.StatusNotifier
	API           API
	Policy        lineup.Policy
	AdminUsername string
	Confirm       ConfirmFunc
	Quit          func()
}

// Dispatcher sends user actions to the server.
type Dispatcher struct {
	state    *state.ClientState
	emitter  channel.Emitter
	surface  view.Surface
	notifier *view.StatusNotifier
	api      API
	policy   lineup.Policy
	admin    string
	confirm  ConfirmFunc
	quit     func()

	mu       sync.Mutex
	lastTeam *models.TeamSnapshot
}

// New creates a dispatcher.
func New(config Config) *Dispatcher {
	return &Dispatcher{
		state:    config.State,
		emitter:  config.Emitter,
		surface:  config.Surface,
		notifier: config.Notifier,
		api:      config.API,
		policy:   config.Policy,
		admin:    config.AdminUsername,
		confirm:  config.Confirm,
		quit:     config.Quit,
	}
}

// PlaceBid validates the raw input and emits place_bid for the player on
// the block. Invalid input is rejected locally and never reaches the
// server. The input field is cleared optimistically; the bid itself is not.
func (d *Dispatcher) PlaceBid(input string) {
	amount, err := decimal.NewFromString(strings.TrimSpace(input))
	if err != nil || !amount.IsPositive() {
		d.notifier.Show("Please enter a valid bid amount", view.StatusError)
		return
	}

	player := d.state.CurrentPlayer()
	if player == nil {
		d.notifier.Show("No player currently on auction", view.StatusError)
		return
	}

	err = d.emitter.Emit(channel.EventPlaceBid, channel.PlaceBidPayload{
		PlayerName: player.Name,
		Amount:     amount,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to emit bid")
		d.notifier.Show("Connection problem, bid not sent", view.StatusError)
		return
	}

	d.surface.ClearBidInput()
	d.notifier.Show("Bid placed...", view.StatusInfo)
}

// NextPlayer advances the auction to the next lot. Admin affordance only;
// the server enforces the real authorization.
func (d *Dispatcher) NextPlayer() {
	if !d.state.User().IsAdmin(d.admin) {
		return
	}
	if err := d.emitter.Emit(channel.EventNextPlayer, nil); err != nil {
		log.Error().Err(err).Msg("failed to emit next_player")
	}
}

// SellPlayer asks for confirmation naming the current player, then emits
// sell_player.
func (d *Dispatcher) SellPlayer() {
	player := d.state.CurrentPlayer()
	if player == nil {
		return
	}
	if !d.confirm(fmt.Sprintf("Sell %s to highest bidder?", player.Name)) {
		return
	}
	err := d.emitter.Emit(channel.EventSellPlayer, channel.SellPlayerPayload{
		PlayerName: player.Name,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to emit sell_player")
	}
}

// StartPool asks the server to open a (category, set) pool for bidding.
func (d *Dispatcher) StartPool(category string, set int) {
	err := d.emitter.Emit(channel.EventStartAuction, channel.StartAuctionPayload{
		Action:   "start",
		Category: category,
		Set:      set,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to emit start_auction")
	}
}

// RefreshTeam fetches the authoritative team snapshot and re-renders the
// roster panel and purse figure.
func (d *Dispatcher) RefreshTeam(ctx context.Context) error {
	team, err := d.api.MyTeam(ctx)
	if err != nil {
		return fmt.Errorf("failed to refresh team: %w", err)
	}

	d.mu.Lock()
	d.lastTeam = &team
	d.mu.Unlock()

	d.surface.ShowTeamPanel(view.BuildTeamPanel(team))
	d.surface.ShowPurse(team.PurseRemaining)
	return nil
}

// DropPlayer handles a lineup drop: the named player moves to the target
// slot, the full assignment plus inferred captain is recomputed and
// submitted wholesale, and the team panel is refreshed from the server's
// authoritative state.
func (d *Dispatcher) DropPlayer(ctx context.Context, playerName string, slot int) error {
	d.mu.Lock()
	team := d.lastTeam
	d.mu.Unlock()
	if team == nil {
		return fmt.Errorf("no team snapshot loaded yet")
	}

	current := lineup.FromTeam(team.Players)
	next, err := d.policy.Apply(current, playerName, slot)
	if err != nil {
		return err
	}

	req := auction_api_client.UpdatePlayingXIRequest{
		Players: next.Entries(),
		Captain: next.Captain,
	}
	if err := d.api.UpdatePlayingXI(ctx, req); err != nil {
		return err
	}
	return d.RefreshTeam(ctx)
}

// Logout ends the server session and leaves the auction view
// unconditionally, even when the logout call fails.
func (d *Dispatcher) Logout(ctx context.Context) {
	if err := d.api.Logout(ctx); err != nil {
		log.Error().Err(err).Msg("logout request failed")
	}
	d.quit()
}
