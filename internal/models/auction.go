package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AuctionStatusActive is the only status under which bidding is open.
// Any other value renders the pool selector instead of the lot panel.
const AuctionStatusActive = "active"

// AuctionState is the server-owned auction snapshot mirrored by the client.
// It is replaced wholesale on every auction_state push; the client never
// merges partial updates into it.
type AuctionState struct {
	Status             string           `json:"status"`
	CurrentCategory    string           `json:"current_category"`
	CurrentSet         int              `json:"current_set"`
	ActivePool         string           `json:"active_pool"`
	CurrentPlayer      *Player          `json:"current_player"`
	CurrentPlayerIndex int              `json:"current_player_index"`
	Bids               map[string][]Bid `json:"bids"`
}

// Active reports whether the auction is running. The poller only pulls
// state while this holds.
func (s *AuctionState) Active() bool {
	return s != nil && s.Status == AuctionStatusActive
}

// PoolActive reports whether a specific pool is open, which is what gates
// the category grid buttons.
func (s *AuctionState) PoolActive() bool {
	return s.Active() && s.ActivePool != ""
}

// BidsFor returns the chronological bid sequence for a player. The slice is
// append-only from the client's perspective.
func (s *AuctionState) BidsFor(playerName string) []Bid {
	if s == nil || s.Bids == nil {
		return nil
	}
	return s.Bids[playerName]
}

// HighestBid returns the maximum bid amount recorded for a player, or zero
// when no bids exist.
func (s *AuctionState) HighestBid(playerName string) decimal.Decimal {
	highest := decimal.Zero
	for _, b := range s.BidsFor(playerName) {
		if b.Amount.GreaterThan(highest) {
			highest = b.Amount
		}
	}
	return highest
}

// Player is a lot in the auction pool, keyed by name within a pool.
type Player struct {
	Name       string          `json:"name"`
	BasePrice  decimal.Decimal `json:"base_price"`
	IsCritical bool            `json:"is_critical,omitempty"`
}

// Bid is a single bid on a player. Timestamp is the server's ISO-8601
// string; it may be empty, in which case the bid renders as "now".
type Bid struct {
	UserID    int             `json:"user_id,omitempty"`
	Username  string          `json:"username,omitempty"`
	TeamName  string          `json:"team_name"`
	Amount    decimal.Decimal `json:"amount"`
	Timestamp string          `json:"timestamp,omitempty"`
}

// bidTimeLayouts covers RFC 3339 and the server's naive isoformat strings.
var bidTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
}

// Time parses the bid timestamp, falling back to now when it is absent or
// unparseable.
func (b Bid) Time(now time.Time) time.Time {
	if b.Timestamp == "" {
		return now
	}
	for _, layout := range bidTimeLayouts {
		if t, err := time.ParseInLocation(layout, b.Timestamp, time.Local); err == nil {
			return t
		}
	}
	return now
}
