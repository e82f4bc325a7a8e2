package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHighestBid(t *testing.T) {
	s := &AuctionState{
		Bids: map[string][]Bid{
			"Kohli": {
				{Amount: decimal.NewFromFloat(10)},
				{Amount: decimal.NewFromFloat(25)},
				{Amount: decimal.NewFromFloat(15)},
			},
		},
	}

	assert.True(t, s.HighestBid("Kohli").Equal(decimal.NewFromFloat(25)))
	assert.True(t, s.HighestBid("nobody").IsZero())

	var nilState *AuctionState
	assert.True(t, nilState.HighestBid("Kohli").IsZero())
}

func TestBidTimeFallsBackToNow(t *testing.T) {
	now := time.Date(2024, 3, 1, 19, 30, 0, 0, time.Local)

	cases := []struct {
		name      string
		timestamp string
		want      time.Time
	}{
		{name: "empty renders as now", timestamp: "", want: now},
		{name: "garbage renders as now", timestamp: "not-a-time", want: now},
		{
			name:      "server isoformat without zone",
			timestamp: "2024-03-01T18:45:12.123456",
			want:      time.Date(2024, 3, 1, 18, 45, 12, 123456000, time.Local),
		},
		{
			name:      "rfc3339",
			timestamp: "2024-03-01T18:45:12Z",
			want:      time.Date(2024, 3, 1, 18, 45, 12, 0, time.UTC),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := Bid{Timestamp: tc.timestamp}
			assert.True(t, tc.want.Equal(b.Time(now)))
		})
	}
}

func TestAuctionStateDecodesServerPush(t *testing.T) {
	raw := `{
		"status": "active",
		"current_category": "Batsmen",
		"current_set": 1,
		"active_pool": "Batsmen_1",
		"current_player": {"name": "Kohli", "base_price": "2.00"},
		"current_player_index": 3,
		"bids": {"Kohli": [{"team_name": "CSK", "amount": 4.5, "timestamp": "2024-03-01T18:45:12"}]}
	}`

	var s AuctionState
	require.NoError(t, json.Unmarshal([]byte(raw), &s))

	assert.True(t, s.Active())
	assert.True(t, s.PoolActive())
	require.NotNil(t, s.CurrentPlayer)
	assert.Equal(t, "Kohli", s.CurrentPlayer.Name)
	assert.True(t, s.CurrentPlayer.BasePrice.Equal(decimal.NewFromFloat(2)))
	require.Len(t, s.BidsFor("Kohli"), 1)
	assert.True(t, s.HighestBid("Kohli").Equal(decimal.NewFromFloat(4.5)))
}

func TestPoolKey(t *testing.T) {
	assert.Equal(t, "Batsmen_1", PoolKey("Batsmen", 1))
	assert.Equal(t, "Foreign AR_2", PoolKey("Foreign AR", 2))
}
