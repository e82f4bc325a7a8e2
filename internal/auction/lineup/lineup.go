// Package lineup holds the pure playing-XI assignment logic. The UI layer
// only translates a drop gesture into an Apply call and submits the result
// wholesale; the server remains authoritative for the stored lineup.
package lineup

import (
	"fmt"
	"sort"

	"github.com/Mithesh14/ipl-auction/internal/models"
)

// Slots is the number of positions on the lineup board.
const Slots = 11

// Policy makes the captain inference explicit. The occupant of CaptainSlot
// is captain unless another player carries an explicit marker, and a player
// dropped onto CaptainSlot always takes the captaincy.
type Policy struct {
	CaptainSlot int
}

// DefaultPolicy returns the standard policy: slot 1 is the captain slot.
func DefaultPolicy() Policy {
	return Policy{CaptainSlot: 1}
}

// Assignment is a full lineup: slot (1..Slots) to player name, plus the
// designated captain.
type Assignment struct {
	Slots   map[int]string
	Captain string
}

// FromTeam builds the current assignment from an authoritative team
// snapshot. Unplaced players (position 0) are left out.
func FromTeam(players []models.TeamPlayer) Assignment {
	a := Assignment{Slots: make(map[int]string)}
	for _, p := range players {
		if p.Position < 1 || p.Position > Slots {
			continue
		}
		a.Slots[p.Position] = p.Name
		if p.IsCaptain {
			a.Captain = p.Name
		}
	}
	return a
}

// Apply places playerName on the target slot and returns the new
// assignment. The player leaves any slot they previously occupied; a
// displaced occupant becomes unplaced. The captain is re-inferred under
// policy: dropping onto the captain slot takes the captaincy, otherwise a
// still-placed explicit captain keeps it, otherwise the captain slot's
// occupant gets it.
func (p Policy) Apply(current Assignment, playerName string, slot int) (Assignment, error) {
	if slot < 1 || slot > Slots {
		return Assignment{}, fmt.Errorf("slot %d out of range 1..%d", slot, Slots)
	}
	if playerName == "" {
		return Assignment{}, fmt.Errorf("empty player name")
	}

	next := Assignment{Slots: make(map[int]string, len(current.Slots))}
	for s, name := range current.Slots {
		if name == playerName {
			continue
		}
		next.Slots[s] = name
	}
	next.Slots[slot] = playerName

	switch {
	case slot == p.CaptainSlot:
		next.Captain = playerName
	case current.Captain != "" && placed(next.Slots, current.Captain):
		next.Captain = current.Captain
	default:
		next.Captain = next.Slots[p.CaptainSlot]
	}
	return next, nil
}

// Entries flattens the assignment into the submission shape, ordered by
// position.
func (a Assignment) Entries() []models.LineupEntry {
	entries := make([]models.LineupEntry, 0, len(a.Slots))
	for slot, name := range a.Slots {
		entries = append(entries, models.LineupEntry{Name: name, Position: slot})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Position < entries[j].Position
	})
	return entries
}

func placed(slots map[int]string, name string) bool {
	for _, n := range slots {
		if n == name {
			return true
		}
	}
	return false
}
