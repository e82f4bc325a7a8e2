package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// User is the authenticated auction participant as reported by
// /api/user-info.
type User struct {
	ID       int             `json:"id"`
	Username string          `json:"username"`
	TeamName string          `json:"team_name"`
	Purse    decimal.Decimal `json:"purse"`
}

// IsAdmin reports whether this user gets the auctioneer controls. This is a
// UI affordance only; the server enforces the real authorization.
func (u User) IsAdmin(adminUsername string) bool {
	return adminUsername != "" && strings.EqualFold(u.Username, adminUsername)
}
