package channel

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/Mithesh14/ipl-auction/internal/auction/state"
	"github.com/Mithesh14/ipl-auction/internal/auction/view"
	"github.com/Mithesh14/ipl-auction/internal/models"
)

// CategoryRefreshDebounce is how long the binder waits after pool_started
// before re-fetching category metadata, letting server state settle.
const CategoryRefreshDebounce = 500 * time.Millisecond

const (
	defaultAuctionError = "An error occurred"
	defaultBidError     = "Bid rejected"
)

// TeamAPI is the slice of the REST client the binder needs to refresh
// team and purse views after a sale.
type TeamAPI interface {
	MyTeam(ctx context.Context) (models.TeamSnapshot, error)
}

// Reloader refreshes the category metadata (the grid re-renders through
// its apply callback).
type Reloader interface {
	Reload(ctx context.Context)
}

// BinderConfig wires a Binder.
type BinderConfig struct {
	State         *state.ClientState
	Surface       view.Surface
	Feed          *view.Feed
	Notifier      *view.StatusNotifier
	TeamAPI       TeamAPI
	Reloader      Reloader
	Clock         clockwork.Clock
	AdminUsername string
}

// Binder maps inbound channel events onto view updates. All handlers run
// sequentially on the channel's read pump; the only other entry points are
// the debounced category refresh and the transient status clear, both of
// which stay off the feed and the display surface.
type Binder struct {
	ctx      context.Context
	state    *state.ClientState
	surface  view.Surface
	feed     *view.Feed
	notifier *view.StatusNotifier
	teamAPI  TeamAPI
	reloader Reloader
	clock    clockwork.Clock
	admin    string
	debounce time.Duration
}

// NewBinder creates a binder. ctx bounds the API calls its handlers make.
func NewBinder(ctx context.Context, config BinderConfig) *Binder {
	return &Binder{
		ctx:      ctx,
		state:    config.State,
		surface:  config.Surface,
		feed:     config.Feed,
		notifier: config.Notifier,
		teamAPI:  config.TeamAPI,
		reloader: config.Reloader,
		clock:    config.Clock,
		admin:    config.AdminUsername,
		debounce: CategoryRefreshDebounce,
	}
}

// HandleEvent implements Handler.
func (b *Binder) HandleEvent(env Envelope) {
	payload, err := ParseEventPayload(env)
	if err != nil {
		log.Error().Err(err).Str("event", string(env.Event)).Msg("failed to parse channel event")
		return
	}

	switch p := payload.(type) {
	case *models.AuctionState:
		b.handleAuctionState(p)
	case ErrorPayload:
		switch env.Event {
		case EventAuctionError:
			b.handleAuctionError(p)
		case EventBidError:
			b.handleBidError(p)
		}
	case NewBidPayload:
		b.handleNewBid(p)
	case PlayerSoldPayload:
		b.handlePlayerSold(p)
	case PresencePayload:
		switch env.Event {
		case EventUserConnected:
			b.handleUserConnected(p)
		case EventUserDisconnected:
			b.handleUserDisconnected(p)
		}
	case PoolStartedPayload:
		b.handlePoolStarted(p)
	default:
		log.Debug().Str("event", string(env.Event)).Msg("ignoring unknown channel event")
	}
}

// handleAuctionState replaces the mirror wholesale. A changed player on the
// block triggers a full display refresh (including the feed announcement);
// an unchanged player refreshes only the bid list and highest-bid figure,
// which keeps the 1-second poll from spamming the feed.
func (b *Binder) handleAuctionState(next *models.AuctionState) {
	playerChanged := b.state.ApplyAuctionState(next)

	if playerChanged {
		b.RefreshDisplay()
	} else if player := next.CurrentPlayer; player != nil {
		b.surface.ShowBidList(view.BuildBidList(next.BidsFor(player.Name), b.clock.Now()))
		b.surface.ShowHighestBid(next.HighestBid(player.Name))
	}

	// Admins see pool-in-progress button states, so their grid tracks
	// every push.
	if b.state.User().IsAdmin(b.admin) {
		b.reloader.Reload(b.ctx)
	}
}

// RefreshDisplay projects the whole mirror onto the surface. Called on
// player transitions and once after bootstrap.
func (b *Binder) RefreshDisplay() {
	auction := b.state.Auction()
	if auction == nil || auction.CurrentPlayer == nil {
		b.surface.ShowLotPanel(nil)
		b.RenderCategoryGrid()
		b.state.ResetAnnouncedPlayer()
		return
	}

	panel := view.BuildLotPanel(auction, b.clock.Now())
	b.surface.ShowLotPanel(panel)

	player := auction.CurrentPlayer
	if b.state.MarkPlayerAnnounced(player.Name) {
		b.pushFeed(view.KindInfo, view.LotMessage(panel.LotNumber, *player))
	}
}

// RenderCategoryGrid re-renders the pool-selection grid from current state.
func (b *Binder) RenderCategoryGrid() {
	categories, info := b.state.Categories()
	b.surface.ShowCategoryGrid(view.BuildCategoryGrid(categories, info, b.state.Auction()))
}

func (b *Binder) handleAuctionError(p ErrorPayload) {
	message := p.Message
	if message == "" {
		message = defaultAuctionError
	}
	b.surface.ShowAlert(message)
}

func (b *Binder) handleNewBid(p NewBidPayload) {
	b.pushFeed(view.KindBid, view.BidMessage(p.Bid.TeamName, p.Bid.Amount, p.PlayerName, b.clock.Now()))

	auction := b.state.Auction()
	b.surface.ShowBidList(view.BuildBidList(auction.BidsFor(p.PlayerName), b.clock.Now()))
	if auction != nil && auction.CurrentPlayer != nil && auction.CurrentPlayer.Name == p.PlayerName {
		b.surface.ShowHighestBid(p.HighestBid)
	}
}

// handlePlayerSold refreshes team and purse views for everyone, not just
// the buyer: spectators need the updated global context too.
func (b *Binder) handlePlayerSold(p PlayerSoldPayload) {
	b.pushFeed(view.KindSold, view.SaleMessage(p.PlayerName, p.TeamName, p.Price, b.clock.Now()))
	b.RefreshTeamViews()
}

// RefreshTeamViews fetches the authoritative team snapshot and re-renders
// the roster panel and purse figure. Failures degrade those views only.
func (b *Binder) RefreshTeamViews() {
	team, err := b.teamAPI.MyTeam(b.ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to refresh team")
		return
	}
	b.surface.ShowTeamPanel(view.BuildTeamPanel(team))
	b.surface.ShowPurse(team.PurseRemaining)
}

func (b *Binder) handleBidError(p ErrorPayload) {
	message := p.Message
	if message == "" {
		message = defaultBidError
	}
	b.notifier.Show(message, view.StatusError)
}

func (b *Binder) handleUserConnected(p PresencePayload) {
	if b.state.MarkUserJoined(p.Username) {
		b.pushFeed(view.KindInfo, view.JoinMessage(p.Username))
	}
}

func (b *Binder) handleUserDisconnected(p PresencePayload) {
	if b.state.MarkUserLeft(p.Username) {
		b.pushFeed(view.KindInfo, view.LeaveMessage(p.Username))
	}
}

func (b *Binder) handlePoolStarted(p PoolStartedPayload) {
	b.pushFeed(view.KindInfo, view.PoolStartedMessage(p.Category, p.Set))

	if b.state.User().IsAdmin(b.admin) {
		b.clock.AfterFunc(b.debounce, func() {
			b.reloader.Reload(b.ctx)
		})
	}
}

func (b *Binder) pushFeed(kind view.Kind, message string) {
	b.feed.Push(kind, message, b.clock.Now())
	b.surface.ShowFeed(b.feed.Entries())
}
