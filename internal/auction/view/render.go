// Package view projects client state onto view models consumed by a
// display Surface. Every builder is a pure function of its inputs and
// idempotent: the poller and the push channel both trigger re-renders, so
// rendering the same snapshot twice must produce the same result.
package view

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Mithesh14/ipl-auction/internal/models"
)

// PoolButton is one start-set affordance on a category card.
type PoolButton struct {
	Set        int
	Label      string
	InProgress bool
	Disabled   bool
}

// CategoryCard is one category in the pool-selection grid.
type CategoryCard struct {
	Category  string
	Set1Count int
	Set2Count int
	Buttons   [2]PoolButton
}

// ActivePoolBanner names the pool currently in progress.
type ActivePoolBanner struct {
	Category string
	Set      int
}

// CategoryGridView is the rendered pool-selection grid.
type CategoryGridView struct {
	Cards  []CategoryCard
	Banner *ActivePoolBanner
}

// BuildCategoryGrid projects category metadata and the auction snapshot
// onto the grid. A button is disabled iff an auction is active on a
// different pool; the active pool's own button shows an in-progress marker
// instead of a start affordance.
func BuildCategoryGrid(categories []string, info models.CategoryInfo, auction *models.AuctionState) CategoryGridView {
	var grid CategoryGridView

	poolActive := auction.PoolActive()
	activePool := ""
	if poolActive {
		activePool = auction.ActivePool
	}

	for _, category := range categories {
		sets, ok := info[category]
		if !ok {
			continue
		}
		card := CategoryCard{
			Category:  category,
			Set1Count: sets.Set1Count,
			Set2Count: sets.Set2Count,
		}
		for i := range card.Buttons {
			set := i + 1
			inProgress := poolActive && activePool == models.PoolKey(category, set)
			button := PoolButton{
				Set:        set,
				InProgress: inProgress,
				Disabled:   poolActive && !inProgress,
			}
			if inProgress {
				button.Label = "In Progress"
			} else {
				button.Label = "Start Set " + strconv.Itoa(set)
			}
			card.Buttons[i] = button
		}
		grid.Cards = append(grid.Cards, card)
	}

	if poolActive && auction.CurrentCategory != "" {
		grid.Banner = &ActivePoolBanner{
			Category: auction.CurrentCategory,
			Set:      auction.CurrentSet,
		}
	}
	return grid
}

// BidEntry is one rendered row of the bid list.
type BidEntry struct {
	// Number counts bids chronologically, so the newest row shows the
	// highest number.
	Number   int
	At       time.Time
	TeamName string
	Amount   decimal.Decimal
	// Leading marks the most recently arrived bid. This is independent of
	// the highest-bid figure and the two can disagree.
	Leading bool
}

// BidList is the full bid list for a lot, newest arrival first.
type BidList []BidEntry

// BuildBidList reverses the chronological bid sequence for display. Bids
// without a timestamp render with now.
func BuildBidList(bids []models.Bid, now time.Time) BidList {
	if len(bids) == 0 {
		return nil
	}
	list := make(BidList, 0, len(bids))
	for i := len(bids) - 1; i >= 0; i-- {
		b := bids[i]
		list = append(list, BidEntry{
			Number:   i + 1,
			At:       b.Time(now),
			TeamName: b.TeamName,
			Amount:   b.Amount,
			Leading:  i == len(bids)-1,
		})
	}
	return list
}

// LotPanel is the current-lot panel: the player on the block plus the
// derived bid figures.
type LotPanel struct {
	LotNumber  int
	PlayerName string
	BasePrice  decimal.Decimal
	Category   string
	HighestBid decimal.Decimal
	Bids       BidList
}

// BuildLotPanel projects the auction snapshot onto the lot panel, or
// returns nil when no player is on the block. The category falls back to
// the active pool's category, then "N/A".
func BuildLotPanel(auction *models.AuctionState, now time.Time) *LotPanel {
	if auction == nil || auction.CurrentPlayer == nil {
		return nil
	}
	player := auction.CurrentPlayer

	category := auction.CurrentCategory
	if category == "" {
		category = "N/A"
	}

	bids := auction.BidsFor(player.Name)
	return &LotPanel{
		LotNumber:  auction.CurrentPlayerIndex + 1,
		PlayerName: player.Name,
		BasePrice:  player.BasePrice,
		Category:   category,
		HighestBid: auction.HighestBid(player.Name),
		Bids:       BuildBidList(bids, now),
	}
}
