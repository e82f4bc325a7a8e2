package view

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Mithesh14/ipl-auction/internal/models"
)

// feedTimeLayout renders time-of-day the way the feed and bid list show it.
const feedTimeLayout = "03:04:05 PM"

// FormatMoney renders an amount in crores with two decimal places.
func FormatMoney(amount decimal.Decimal) string {
	return "₹" + amount.StringFixed(2) + " Cr"
}

// FormatTime renders a time-of-day stamp for feed and bid rows.
func FormatTime(t time.Time) string {
	return t.Format(feedTimeLayout)
}

// LotMessage announces a new lot on the block.
func LotMessage(lotNumber int, player models.Player) string {
	return fmt.Sprintf("**LOT #%d** - **%s** is now on the block! Base Price: %s",
		lotNumber, player.Name, FormatMoney(player.BasePrice))
}

// BidMessage announces a placed bid.
func BidMessage(teamName string, amount decimal.Decimal, playerName string, at time.Time) string {
	return fmt.Sprintf("**%s** placed a bid of **%s** for **%s** [%s]",
		teamName, FormatMoney(amount), playerName, FormatTime(at))
}

// SaleMessage announces a completed sale.
func SaleMessage(playerName, teamName string, price decimal.Decimal, at time.Time) string {
	return fmt.Sprintf("**SOLD!** %s → **%s** for **%s** [%s]",
		playerName, teamName, FormatMoney(price), FormatTime(at))
}

// JoinMessage announces a user joining the auction.
func JoinMessage(username string) string {
	return username + " joined the auction"
}

// LeaveMessage announces a user leaving the auction.
func LeaveMessage(username string) string {
	return username + " left the auction"
}

// PoolStartedMessage announces a pool opening for bidding.
func PoolStartedMessage(category string, set int) string {
	return fmt.Sprintf("**AUCTION STARTED!** %s - Set %d is now active. Get ready to bid!", category, set)
}
