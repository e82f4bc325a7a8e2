package view

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/Mithesh14/ipl-auction/internal/models"
)

// LineupSlots is the size of the starting-lineup board.
const LineupSlots = 11

// Purchase is one row of the purchases list.
type Purchase struct {
	Name  string
	Price decimal.Decimal
}

// LineupSlot is an occupied position on the lineup board.
type LineupSlot struct {
	Name      string
	IsForeign bool
	IsCaptain bool
}

// RosterEntry is one row of the full purchased-players list.
type RosterEntry struct {
	Name      string
	IsForeign bool
	IsCaptain bool
}

// TeamPanel is the rendered roster panel: purchases, spend summary, the
// 11-slot lineup board (index 0 is position 1; nil slots are empty) and
// the full player list.
type TeamPanel struct {
	Purchases      []Purchase
	TotalSpent     decimal.Decimal
	PurseRemaining decimal.Decimal
	Lineup         [LineupSlots]*LineupSlot
	AllPlayers     []RosterEntry
}

// BuildTeamPanel projects a team snapshot onto the roster panel. Slot 1
// holds the captain by default unless another player carries an explicit
// captain marker.
func BuildTeamPanel(team models.TeamSnapshot) TeamPanel {
	panel := TeamPanel{
		TotalSpent:     team.TotalSpent,
		PurseRemaining: team.PurseRemaining,
	}

	for _, p := range team.Players {
		panel.Purchases = append(panel.Purchases, Purchase{Name: p.Name, Price: p.Price})
	}

	sorted := make([]models.TeamPlayer, len(team.Players))
	copy(sorted, team.Players)
	sort.SliceStable(sorted, func(i, j int) bool {
		return lineupSortKey(sorted[i].Position) < lineupSortKey(sorted[j].Position)
	})

	captainPosition := 1
	for _, p := range sorted {
		if p.IsCaptain && p.Position > 0 {
			captainPosition = p.Position
			break
		}
	}

	for _, p := range sorted {
		isCaptain := p.IsCaptain || p.Position == captainPosition
		if p.Position >= 1 && p.Position <= LineupSlots {
			panel.Lineup[p.Position-1] = &LineupSlot{
				Name:      p.Name,
				IsForeign: p.IsForeign,
				IsCaptain: isCaptain,
			}
		}
		panel.AllPlayers = append(panel.AllPlayers, RosterEntry{
			Name:      p.Name,
			IsForeign: p.IsForeign,
			IsCaptain: isCaptain,
		})
	}
	return panel
}

// Unplaced players sort after every numbered position.
func lineupSortKey(position int) int {
	if position <= 0 {
		return 999
	}
	return position
}
