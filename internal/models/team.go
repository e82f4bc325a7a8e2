package models

import "github.com/shopspring/decimal"

// TeamSnapshot is the authoritative roster and purse state returned by
// /api/my-team. The client re-fetches it rather than updating it locally.
type TeamSnapshot struct {
	Players        []TeamPlayer    `json:"players"`
	TotalSpent     decimal.Decimal `json:"total_spent"`
	PurseRemaining decimal.Decimal `json:"purse_remaining"`
}

// TeamPlayer is a purchased player on the local user's roster. Position 0
// means the player has not been placed in the playing XI.
type TeamPlayer struct {
	Name      string          `json:"name"`
	Category  string          `json:"category,omitempty"`
	Price     decimal.Decimal `json:"price"`
	Position  int             `json:"position"`
	IsCaptain bool            `json:"is_captain"`
	IsForeign bool            `json:"is_foreign"`
}

// LineupEntry is one slot assignment in an update-playing-11 submission.
type LineupEntry struct {
	Name     string `json:"name"`
	Position int    `json:"position"`
}

// PlayerInfo is the detail blob served by /api/player-info, assembled by
// the server from its database and public sources.
type PlayerInfo struct {
	Category      string        `json:"category,omitempty"`
	Source        string        `json:"source,omitempty"`
	Description   string        `json:"description,omitempty"`
	BirthInfo     string        `json:"birth_info,omitempty"`
	Nationality   string        `json:"nationality,omitempty"`
	ImageURL      string        `json:"image_url,omitempty"`
	ExternalLinks ExternalLinks `json:"external_links,omitempty"`
}

// ExternalLinks holds outbound reference links for a player.
type ExternalLinks struct {
	Cricinfo string `json:"cricinfo,omitempty"`
}
