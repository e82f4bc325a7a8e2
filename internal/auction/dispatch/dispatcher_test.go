package dispatch

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mithesh14/ipl-auction/clients/auction_api_client"
	"github.com/Mithesh14/ipl-auction/internal/auction/channel"
	"github.com/Mithesh14/ipl-auction/internal/auction/lineup"
	"github.com/Mithesh14/ipl-auction/internal/auction/state"
	"github.com/Mithesh14/ipl-auction/internal/auction/view"
	"github.com/Mithesh14/ipl-auction/internal/models"
)

const testAdmin = "mithesh"

type emittedEvent struct {
	event   channel.EventType
	payload interface{}
}

type fakeEmitter struct {
	mu     sync.Mutex
	events []emittedEvent
	err    error
}

func (f *fakeEmitter) Emit(event channel.EventType, payload interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, emittedEvent{event: event, payload: payload})
	return nil
}

type fakeSurface struct {
	mu          sync.Mutex
	statuses    []string
	kinds       []view.StatusKind
	inputClears int
	teams       []view.TeamPanel
	purses      []decimal.Decimal
}

func (f *fakeSurface) ShowCategoryGrid(view.CategoryGridView) {}
func (f *fakeSurface) ShowLotPanel(*view.LotPanel)            {}
func (f *fakeSurface) ShowHighestBid(decimal.Decimal)         {}
func (f *fakeSurface) ShowBidList(view.BidList)               {}
func (f *fakeSurface) ShowFeed([]view.Entry)                  {}
func (f *fakeSurface) ShowAlert(string)                       {}
func (f *fakeSurface) ClearBidStatus()                        {}

func (f *fakeSurface) ShowTeamPanel(panel view.TeamPanel) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.teams = append(f.teams, panel)
}

func (f *fakeSurface) ShowPurse(remaining decimal.Decimal) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.purses = append(f.purses, remaining)
}

func (f *fakeSurface) ShowBidStatus(message string, kind view.StatusKind) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statuses = append(f.statuses, message)
	f.kinds = append(f.kinds, kind)
}

func (f *fakeSurface) ClearBidInput() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inputClears++
}

type fakeAPI struct {
	team        models.TeamSnapshot
	teamErr     error
	teamCalls   int
	lineupReq   *auction_api_client.UpdatePlayingXIRequest
	lineupErr   error
	logoutErr   error
	logoutCalls int
}

func (f *fakeAPI) MyTeam(context.Context) (models.TeamSnapshot, error) {
	f.teamCalls++
	return f.team, f.teamErr
}

func (f *fakeAPI) UpdatePlayingXI(_ context.Context, req auction_api_client.UpdatePlayingXIRequest) error {
	f.lineupReq = &req
	return f.lineupErr
}

func (f *fakeAPI) Logout(context.Context) error {
	f.logoutCalls++
	return f.logoutErr
}

type dispatcherFixture struct {
	dispatcher *Dispatcher
	emitter    *fakeEmitter
	surface    *fakeSurface
	state      *state.ClientState
	api        *fakeAPI
	prompts    []string
	confirmed  bool
	quits      int
}

func newDispatcherFixture(t *testing.T, user models.User) *dispatcherFixture {
	t.Helper()

	f := &dispatcherFixture{
		emitter:   &fakeEmitter{},
		surface:   &fakeSurface{},
		state:     state.New(user),
		api:       &fakeAPI{},
		confirmed: true,
	}

	f.dispatcher = New(Config{
		State:         f.state,
		Emitter:       f.emitter,
		Surface:       f.surface,
		Notifier:      view.NewStatusNotifier(f.surface, clockwork.NewFakeClock(), view.StatusTTL),
		API:           f.api,
		Policy:        lineup.DefaultPolicy(),
		AdminUsername: testAdmin,
		Confirm: func(prompt string) bool {
			f.prompts = append(f.prompts, prompt)
			return f.confirmed
		},
		Quit: func() { f.quits++ },
	})
	return f
}

func (f *dispatcherFixture) putPlayerOnBlock(name string) {
	f.state.ApplyAuctionState(&models.AuctionState{
		Status:        models.AuctionStatusActive,
		CurrentPlayer: &models.Player{Name: name, BasePrice: decimal.NewFromFloat(2)},
	})
}

func TestPlaceBidRejectsInvalidInput(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "not a number", input: "abc"},
		{name: "zero", input: "0"},
		{name: "negative", input: "-5"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newDispatcherFixture(t, models.User{Username: "viewer"})
			f.putPlayerOnBlock("Kohli")

			f.dispatcher.PlaceBid(tc.input)

			assert.Empty(t, f.emitter.events, "invalid input never reaches the server")
			require.Len(t, f.surface.statuses, 1)
			assert.Equal(t, "Please enter a valid bid amount", f.surface.statuses[0])
			assert.Equal(t, view.StatusError, f.surface.kinds[0])
		})
	}
}

func TestPlaceBidRequiresPlayerOnBlock(t *testing.T) {
	f := newDispatcherFixture(t, models.User{Username: "viewer"})

	f.dispatcher.PlaceBid("4.5")

	assert.Empty(t, f.emitter.events)
	require.Len(t, f.surface.statuses, 1)
	assert.Equal(t, "No player currently on auction", f.surface.statuses[0])
}

func TestPlaceBidEmitsAndClearsInput(t *testing.T) {
	f := newDispatcherFixture(t, models.User{Username: "viewer"})
	f.putPlayerOnBlock("Kohli")

	f.dispatcher.PlaceBid(" 4.5 ")

	require.Len(t, f.emitter.events, 1)
	assert.Equal(t, channel.EventPlaceBid, f.emitter.events[0].event)
	payload, ok := f.emitter.events[0].payload.(channel.PlaceBidPayload)
	require.True(t, ok)
	assert.Equal(t, "Kohli", payload.PlayerName)
	assert.True(t, payload.Amount.Equal(decimal.NewFromFloat(4.5)))

	assert.Equal(t, 1, f.surface.inputClears)
	require.Len(t, f.surface.statuses, 1)
	assert.Equal(t, "Bid placed...", f.surface.statuses[0])
	assert.Equal(t, view.StatusInfo, f.surface.kinds[0])
}

func TestPlaceBidReportsEmitFailure(t *testing.T) {
	f := newDispatcherFixture(t, models.User{Username: "viewer"})
	f.putPlayerOnBlock("Kohli")
	f.emitter.err = errors.New("buffer full")

	f.dispatcher.PlaceBid("4.5")

	assert.Equal(t, 0, f.surface.inputClears)
	require.Len(t, f.surface.statuses, 1)
	assert.Equal(t, "Connection problem, bid not sent", f.surface.statuses[0])
}

func TestNextPlayerIsAdminOnly(t *testing.T) {
	viewer := newDispatcherFixture(t, models.User{Username: "viewer"})
	viewer.dispatcher.NextPlayer()
	assert.Empty(t, viewer.emitter.events)

	admin := newDispatcherFixture(t, models.User{Username: testAdmin})
	admin.dispatcher.NextPlayer()
	require.Len(t, admin.emitter.events, 1)
	assert.Equal(t, channel.EventNextPlayer, admin.emitter.events[0].event)
}

func TestSellPlayerConfirms(t *testing.T) {
	f := newDispatcherFixture(t, models.User{Username: testAdmin})
	f.putPlayerOnBlock("Kohli")

	f.dispatcher.SellPlayer()

	require.Len(t, f.prompts, 1)
	assert.Equal(t, "Sell Kohli to highest bidder?", f.prompts[0])
	require.Len(t, f.emitter.events, 1)
	assert.Equal(t, channel.EventSellPlayer, f.emitter.events[0].event)
	payload, ok := f.emitter.events[0].payload.(channel.SellPlayerPayload)
	require.True(t, ok)
	assert.Equal(t, "Kohli", payload.PlayerName)
}

func TestSellPlayerAbortsOnDecline(t *testing.T) {
	f := newDispatcherFixture(t, models.User{Username: testAdmin})
	f.putPlayerOnBlock("Kohli")
	f.confirmed = false

	f.dispatcher.SellPlayer()

	assert.Len(t, f.prompts, 1)
	assert.Empty(t, f.emitter.events)
}

func TestSellPlayerNoopsWithoutPlayer(t *testing.T) {
	f := newDispatcherFixture(t, models.User{Username: testAdmin})

	f.dispatcher.SellPlayer()

	assert.Empty(t, f.prompts)
	assert.Empty(t, f.emitter.events)
}

func TestStartPool(t *testing.T) {
	f := newDispatcherFixture(t, models.User{Username: testAdmin})

	f.dispatcher.StartPool("Batsmen", 2)

	require.Len(t, f.emitter.events, 1)
	assert.Equal(t, channel.EventStartAuction, f.emitter.events[0].event)
	payload, ok := f.emitter.events[0].payload.(channel.StartAuctionPayload)
	require.True(t, ok)
	assert.Equal(t, "start", payload.Action)
	assert.Equal(t, "Batsmen", payload.Category)
	assert.Equal(t, 2, payload.Set)
}

func TestRefreshTeamRendersAndCaches(t *testing.T) {
	f := newDispatcherFixture(t, models.User{Username: "viewer"})
	f.api.team = models.TeamSnapshot{
		PurseRemaining: decimal.NewFromFloat(80),
		Players:        []models.TeamPlayer{{Name: "Kohli", Position: 1}},
	}

	require.NoError(t, f.dispatcher.RefreshTeam(context.Background()))

	require.Len(t, f.surface.teams, 1)
	require.Len(t, f.surface.purses, 1)
	assert.True(t, f.surface.purses[0].Equal(decimal.NewFromFloat(80)))
}

func TestRefreshTeamPropagatesError(t *testing.T) {
	f := newDispatcherFixture(t, models.User{Username: "viewer"})
	f.api.teamErr = errors.New("boom")

	assert.Error(t, f.dispatcher.RefreshTeam(context.Background()))
	assert.Empty(t, f.surface.teams)
}

func TestDropPlayerRequiresLoadedTeam(t *testing.T) {
	f := newDispatcherFixture(t, models.User{Username: "viewer"})

	err := f.dispatcher.DropPlayer(context.Background(), "Kohli", 3)
	assert.Error(t, err)
	assert.Nil(t, f.api.lineupReq)
}

func TestDropPlayerOntoSlotOneSubmitsAsCaptain(t *testing.T) {
	f := newDispatcherFixture(t, models.User{Username: "viewer"})
	f.api.team = models.TeamSnapshot{
		Players: []models.TeamPlayer{
			{Name: "Rohit", Position: 1},
			{Name: "Bumrah", Position: 3, IsCaptain: true},
			{Name: "Dhoni"},
		},
	}
	require.NoError(t, f.dispatcher.RefreshTeam(context.Background()))

	require.NoError(t, f.dispatcher.DropPlayer(context.Background(), "Dhoni", 1))

	req := f.api.lineupReq
	require.NotNil(t, req)
	assert.Equal(t, "Dhoni", req.Captain,
		"slot 1 takes captaincy regardless of a prior captain marker")
	assert.Contains(t, req.Players, models.LineupEntry{Name: "Dhoni", Position: 1})
	assert.Contains(t, req.Players, models.LineupEntry{Name: "Bumrah", Position: 3})

	// The submission was followed by a fresh authoritative fetch.
	assert.Equal(t, 2, f.api.teamCalls)
}

func TestDropPlayerSubmissionFailureSkipsRefresh(t *testing.T) {
	f := newDispatcherFixture(t, models.User{Username: "viewer"})
	f.api.team = models.TeamSnapshot{
		Players: []models.TeamPlayer{{Name: "Rohit", Position: 1}},
	}
	require.NoError(t, f.dispatcher.RefreshTeam(context.Background()))
	f.api.lineupErr = errors.New("rejected")

	assert.Error(t, f.dispatcher.DropPlayer(context.Background(), "Rohit", 2))
	assert.Equal(t, 1, f.api.teamCalls)
}

func TestLogoutQuitsEvenOnFailure(t *testing.T) {
	f := newDispatcherFixture(t, models.User{Username: "viewer"})
	f.api.logoutErr = errors.New("server unreachable")

	f.dispatcher.Logout(context.Background())

	assert.Equal(t, 1, f.api.logoutCalls)
	assert.Equal(t, 1, f.quits)
}
