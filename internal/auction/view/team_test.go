package view

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mithesh14/ipl-auction/internal/models"
)

func TestBuildTeamPanelDefaultsCaptainToSlotOne(t *testing.T) {
	panel := BuildTeamPanel(models.TeamSnapshot{
		Players: []models.TeamPlayer{
			{Name: "Jadeja", Position: 5},
			{Name: "Dhoni", Position: 1},
		},
	})

	require.NotNil(t, panel.Lineup[0])
	assert.Equal(t, "Dhoni", panel.Lineup[0].Name)
	assert.True(t, panel.Lineup[0].IsCaptain)
	require.NotNil(t, panel.Lineup[4])
	assert.False(t, panel.Lineup[4].IsCaptain)
}

func TestBuildTeamPanelExplicitCaptainWins(t *testing.T) {
	panel := BuildTeamPanel(models.TeamSnapshot{
		Players: []models.TeamPlayer{
			{Name: "Dhoni", Position: 1},
			{Name: "Bumrah", Position: 7, IsCaptain: true},
		},
	})

	require.NotNil(t, panel.Lineup[0])
	assert.False(t, panel.Lineup[0].IsCaptain)
	require.NotNil(t, panel.Lineup[6])
	assert.True(t, panel.Lineup[6].IsCaptain)
}

func TestBuildTeamPanelUnplacedPlayersSortLast(t *testing.T) {
	panel := BuildTeamPanel(models.TeamSnapshot{
		Players: []models.TeamPlayer{
			{Name: "Bench", Position: 0},
			{Name: "Opener", Position: 1},
			{Name: "Keeper", Position: 6, IsForeign: true},
		},
	})

	require.Len(t, panel.AllPlayers, 3)
	assert.Equal(t, "Opener", panel.AllPlayers[0].Name)
	assert.Equal(t, "Keeper", panel.AllPlayers[1].Name)
	assert.True(t, panel.AllPlayers[1].IsForeign)
	assert.Equal(t, "Bench", panel.AllPlayers[2].Name)

	// The benched player occupies no lineup slot.
	occupied := 0
	for _, slot := range panel.Lineup {
		if slot != nil {
			occupied++
		}
	}
	assert.Equal(t, 2, occupied)
}

func TestBuildTeamPanelSpendFigures(t *testing.T) {
	panel := BuildTeamPanel(models.TeamSnapshot{
		TotalSpent:     decimal.NewFromFloat(35.5),
		PurseRemaining: decimal.NewFromFloat(84.5),
		Players: []models.TeamPlayer{
			{Name: "Kohli", Price: decimal.NewFromFloat(20)},
			{Name: "Bumrah", Price: decimal.NewFromFloat(15.5)},
		},
	})

	assert.True(t, panel.TotalSpent.Equal(decimal.NewFromFloat(35.5)))
	assert.True(t, panel.PurseRemaining.Equal(decimal.NewFromFloat(84.5)))
	require.Len(t, panel.Purchases, 2)
	assert.Equal(t, "Kohli", panel.Purchases[0].Name)
}
