package channel

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Mithesh14/ipl-auction/internal/models"
)

// EventType names an event on the real-time channel.
type EventType string

// Inbound events pushed by the server.
const (
	EventAuctionState     EventType = "auction_state"
	EventAuctionError     EventType = "auction_error"
	EventNewBid           EventType = "new_bid"
	EventPlayerSold       EventType = "player_sold"
	EventBidError         EventType = "bid_error"
	EventUserConnected    EventType = "user_connected"
	EventUserDisconnected EventType = "user_disconnected"
	EventPoolStarted      EventType = "pool_started"
)

// Outbound events emitted by the client.
const (
	EventGetAuctionState EventType = "get_auction_state"
	EventStartAuction    EventType = "start_auction"
	EventNextPlayer      EventType = "next_player"
	EventSellPlayer      EventType = "sell_player"
	EventPlaceBid        EventType = "place_bid"
)

// Envelope is the wire format in both directions.
type Envelope struct {
	Event EventType       `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// ErrorPayload carries auction_error and bid_error messages.
type ErrorPayload struct {
	Message string `json:"message"`
}

// NewBidPayload announces a single genuinely new bid.
type NewBidPayload struct {
	PlayerName string          `json:"player_name"`
	Bid        models.Bid      `json:"bid"`
	HighestBid decimal.Decimal `json:"highest_bid"`
}

// PlayerSoldPayload announces a completed sale. Buyer is the winning
// username; TeamName is that user's team.
type PlayerSoldPayload struct {
	PlayerName     string          `json:"player_name"`
	Buyer          string          `json:"buyer"`
	TeamName       string          `json:"team_name"`
	Price          decimal.Decimal `json:"price"`
	RemainingPurse decimal.Decimal `json:"remaining_purse"`
}

// PresencePayload carries user_connected / user_disconnected.
type PresencePayload struct {
	Username string `json:"username"`
}

// PoolStartedPayload announces a pool opening for bidding.
type PoolStartedPayload struct {
	Category string `json:"category"`
	Set      int    `json:"set"`
	Message  string `json:"message,omitempty"`
}

// StartAuctionPayload asks the server to open a pool.
type StartAuctionPayload struct {
	Action   string `json:"action"`
	Category string `json:"category"`
	Set      int    `json:"set"`
}

// SellPlayerPayload asks the server to sell the named player to the
// highest bidder.
type SellPlayerPayload struct {
	PlayerName string `json:"player_name"`
}

// PlaceBidPayload submits a bid on the named player.
type PlaceBidPayload struct {
	PlayerName string          `json:"player_name"`
	Amount     decimal.Decimal `json:"amount"`
}

// ParseEventPayload parses an envelope's data into the matching payload
// struct. Unknown event types return nil without error.
func ParseEventPayload(env Envelope) (interface{}, error) {
	switch env.Event {
	case EventAuctionState:
		var payload models.AuctionState
		if err := json.Unmarshal(env.Data, &payload); err != nil {
			return nil, fmt.Errorf("parse %s payload: %w", env.Event, err)
		}
		return &payload, nil

	case EventAuctionError, EventBidError:
		var payload ErrorPayload
		if err := json.Unmarshal(env.Data, &payload); err != nil {
			return nil, fmt.Errorf("parse %s payload: %w", env.Event, err)
		}
		return payload, nil

	case EventNewBid:
		var payload NewBidPayload
		if err := json.Unmarshal(env.Data, &payload); err != nil {
			return nil, fmt.Errorf("parse %s payload: %w", env.Event, err)
		}
		return payload, nil

	case EventPlayerSold:
		var payload PlayerSoldPayload
		if err := json.Unmarshal(env.Data, &payload); err != nil {
			return nil, fmt.Errorf("parse %s payload: %w", env.Event, err)
		}
		return payload, nil

	case EventUserConnected, EventUserDisconnected:
		var payload PresencePayload
		if err := json.Unmarshal(env.Data, &payload); err != nil {
			return nil, fmt.Errorf("parse %s payload: %w", env.Event, err)
		}
		return payload, nil

	case EventPoolStarted:
		var payload PoolStartedPayload
		if err := json.Unmarshal(env.Data, &payload); err != nil {
			return nil, fmt.Errorf("parse %s payload: %w", env.Event, err)
		}
		return payload, nil

	default:
		return nil, nil
	}
}
