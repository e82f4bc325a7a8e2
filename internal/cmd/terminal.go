package main

import (
	"fmt"
	"io"
	"regexp"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/Mithesh14/ipl-auction/internal/auction/view"
)

var emphasisPattern = regexp.MustCompile(`\*\*(.*?)\*\*`)

// terminalSurface renders view models as text. Handlers, timers and the
// command loop all write through it, hence the mutex.
type terminalSurface struct {
	mu  sync.Mutex
	out io.Writer
}

func newTerminalSurface(out io.Writer) *terminalSurface {
	return &terminalSurface{out: out}
}

// emphasize converts **inline emphasis** markup to ANSI bold.
func emphasize(message string) string {
	return emphasisPattern.ReplaceAllString(message, "\x1b[1m$1\x1b[0m")
}

func (t *terminalSurface) printf(format string, args ...interface{}) {
	fmt.Fprintf(t.out, format, args...)
}

func (t *terminalSurface) ShowCategoryGrid(grid view.CategoryGridView) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if grid.Banner != nil {
		t.printf("\n[i] Auction In Progress: %s - Set %d\n", grid.Banner.Category, grid.Banner.Set)
		t.printf("    Complete or pause the current auction before starting a new pool.\n")
	}
	if len(grid.Cards) == 0 {
		return
	}
	t.printf("\n=== Categories ===\n")
	for _, card := range grid.Cards {
		t.printf("%-16s Set 1: %2d players  Set 2: %2d players", card.Category, card.Set1Count, card.Set2Count)
		for _, button := range card.Buttons {
			switch {
			case button.InProgress:
				t.printf("  [Set %d: IN PROGRESS]", button.Set)
			case button.Disabled:
				t.printf("  [Set %d: locked]", button.Set)
			}
		}
		t.printf("\n")
	}
}

func (t *terminalSurface) ShowLotPanel(panel *view.LotPanel) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if panel == nil {
		t.printf("\nNo player on the block.\n")
		return
	}
	t.printf("\n=== LOT #%d: %s ===\n", panel.LotNumber, panel.PlayerName)
	t.printf("Category: %s   Base Price: %s   Highest Bid: %s\n",
		panel.Category, view.FormatMoney(panel.BasePrice), view.FormatMoney(panel.HighestBid))
	t.renderBidList(panel.Bids)
}

func (t *terminalSurface) ShowHighestBid(amount decimal.Decimal) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.printf("Highest Bid: %s\n", view.FormatMoney(amount))
}

func (t *terminalSurface) ShowBidList(bids view.BidList) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.renderBidList(bids)
}

func (t *terminalSurface) renderBidList(bids view.BidList) {
	if len(bids) == 0 {
		t.printf("No bids placed yet. Be the first to bid!\n")
		return
	}
	for _, bid := range bids {
		leading := ""
		if bid.Leading {
			leading = "  << LEADING"
		}
		t.printf("  Bid #%-3d %s  %-20s %s%s\n",
			bid.Number, view.FormatTime(bid.At), bid.TeamName, view.FormatMoney(bid.Amount), leading)
	}
}

// ShowFeed prints only the newest entry; the terminal scrolls, so older
// entries are already on screen.
func (t *terminalSurface) ShowFeed(entries []view.Entry) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(entries) == 0 {
		return
	}
	t.printf("feed> %s\n", emphasize(entries[0].Message))
}

func (t *terminalSurface) ShowTeamPanel(panel view.TeamPanel) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.printf("\n=== My Team ===\n")
	if len(panel.Purchases) == 0 {
		t.printf("No players purchased yet\n")
	}
	for _, purchase := range panel.Purchases {
		t.printf("  %-24s %s\n", purchase.Name, view.FormatMoney(purchase.Price))
	}
	t.printf("Spent: %s   Remaining: %s\n",
		view.FormatMoney(panel.TotalSpent), view.FormatMoney(panel.PurseRemaining))

	t.printf("--- Playing XI ---\n")
	for i, slot := range panel.Lineup {
		if slot == nil {
			t.printf("  %2d. (empty)\n", i+1)
			continue
		}
		markers := ""
		if slot.IsCaptain {
			markers += " (C)"
		}
		if slot.IsForeign {
			markers += " [F]"
		}
		t.printf("  %2d. %s%s\n", i+1, slot.Name, markers)
	}
}

func (t *terminalSurface) ShowPurse(remaining decimal.Decimal) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.printf("Purse remaining: %s\n", view.FormatMoney(remaining))
}

func (t *terminalSurface) ShowAlert(message string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.printf("\n!! %s\n", message)
}

func (t *terminalSurface) ShowBidStatus(message string, kind view.StatusKind) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if kind == view.StatusError {
		t.printf("bid: ERROR: %s\n", message)
		return
	}
	t.printf("bid: %s\n", message)
}

// ClearBidStatus is a no-op: printed lines scroll away on their own.
func (t *terminalSurface) ClearBidStatus() {}

// ClearBidInput is a no-op: terminal input is line-based.
func (t *terminalSurface) ClearBidInput() {}
