package view

import "github.com/shopspring/decimal"

// StatusKind styles the transient bid status line.
type StatusKind string

const (
	StatusInfo    StatusKind = "info"
	StatusError   StatusKind = "error"
	StatusSuccess StatusKind = "success"
)

// Surface is the display sink the renderers project onto. The shipped
// implementation is a terminal; tests use a recording fake. Event handlers,
// the poller and timer callbacks may call a Surface from different
// goroutines, so implementations must be safe for concurrent use.
type Surface interface {
	// ShowCategoryGrid renders the pool-selection grid, including the
	// active-pool banner when one is set.
	ShowCategoryGrid(CategoryGridView)

	// ShowLotPanel renders the current-lot panel; nil hides it and shows
	// the pool selector instead.
	ShowLotPanel(*LotPanel)

	// ShowHighestBid updates just the highest-bid figure for the lot.
	ShowHighestBid(decimal.Decimal)

	// ShowBidList replaces the rendered bid list for the current lot.
	ShowBidList(BidList)

	// ShowFeed replaces the rendered live feed, most recent first.
	ShowFeed([]Entry)

	// ShowTeamPanel renders the roster panel and lineup board.
	ShowTeamPanel(TeamPanel)

	// ShowPurse updates the local user's remaining-purse figure.
	ShowPurse(decimal.Decimal)

	// ShowAlert surfaces a blocking error message.
	ShowAlert(message string)

	// ShowBidStatus shows the transient status near the bid input.
	ShowBidStatus(message string, kind StatusKind)

	// ClearBidStatus removes the transient status.
	ClearBidStatus()

	// ClearBidInput empties the bid input after a bid is dispatched.
	ClearBidInput()
}
