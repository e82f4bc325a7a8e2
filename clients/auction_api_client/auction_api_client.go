// Package auction_api_client is the REST client for the auction server's
// HTTP API. The websocket channel carries the live auction; this client
// covers session bootstrap, category metadata, player detail and team
// management.
package auction_api_client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/Mithesh14/ipl-auction/clients"
	"github.com/Mithesh14/ipl-auction/internal/models"
)

type AuctionAPIClient struct {
	*clients.BaseClient
}

// New creates a client for the auction server at baseURL. The client keeps
// an in-memory cookie jar for the session cookie.
func New(baseURL string) (*AuctionAPIClient, error) {
	client := &AuctionAPIClient{
		BaseClient: clients.NewBaseClient(baseURL),
	}
	client.SetHeader(contentTypeHeader, jsonContentType)
	if err := client.EnableCookies(); err != nil {
		return nil, err
	}
	return client, nil
}

// UserInfo fetches the authenticated user. A non-success status means the
// session is missing or expired.
func (c *AuctionAPIClient) UserInfo(ctx context.Context) (models.User, error) {
	body, err := c.Get(ctx, userInfoPath)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to get user info: %w", err)
	}

	var user models.User
	if err := json.Unmarshal(body, &user); err != nil {
		return models.User{}, fmt.Errorf("failed to unmarshal user info: %w", err)
	}
	return user, nil
}

// InitResponse is the category metadata returned by /api/init.
type InitResponse struct {
	Success      bool                `json:"success"`
	Categories   []string            `json:"categories"`
	CategoryInfo models.CategoryInfo `json:"category_info"`
	Error        string              `json:"error,omitempty"`
}

// Init initializes the auction metadata and returns the category list with
// per-category set counts.
func (c *AuctionAPIClient) Init(ctx context.Context) ([]string, models.CategoryInfo, error) {
	body, err := c.Post(ctx, initPath, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to init auction: %w", err)
	}

	var resp InitResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, nil, fmt.Errorf("failed to unmarshal init response: %w", err)
	}
	if !resp.Success {
		return nil, nil, fmt.Errorf("init rejected by server: %s", resp.Error)
	}
	return resp.Categories, resp.CategoryInfo, nil
}

// PlayerInfoResponse wraps the detail blob for a single player.
type PlayerInfoResponse struct {
	Success bool              `json:"success"`
	Name    string            `json:"name"`
	Info    models.PlayerInfo `json:"info"`
}

// PlayerInfo fetches detail for a player by name. The name is path-escaped.
func (c *AuctionAPIClient) PlayerInfo(ctx context.Context, playerName string) (models.PlayerInfo, error) {
	body, err := c.Get(ctx, playerInfoPath+url.PathEscape(playerName))
	if err != nil {
		return models.PlayerInfo{}, fmt.Errorf("failed to get player info: %w", err)
	}

	var resp PlayerInfoResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return models.PlayerInfo{}, fmt.Errorf("failed to unmarshal player info: %w", err)
	}
	if !resp.Success {
		return models.PlayerInfo{}, fmt.Errorf("player info rejected by server for %q", playerName)
	}
	return resp.Info, nil
}

// CategorySetResponse is the shuffled pool for one (category, set).
type CategorySetResponse struct {
	Success  bool            `json:"success"`
	Category string          `json:"category"`
	Set      int             `json:"set"`
	Players  []models.Player `json:"players"`
	Count    int             `json:"count"`
	Error    string          `json:"error,omitempty"`
}

// CategorySet fetches the player pool for a category set, in auction order.
func (c *AuctionAPIClient) CategorySet(ctx context.Context, category string, set int) (*CategorySetResponse, error) {
	endpoint := fmt.Sprintf("%s%s/%d", categorySetPath, url.PathEscape(category), set)
	body, err := c.Get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to get category set: %w", err)
	}

	var resp CategorySetResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal category set: %w", err)
	}
	if !resp.Success {
		return nil, fmt.Errorf("category set rejected by server: %s", resp.Error)
	}
	return &resp, nil
}

// MyTeam fetches the local user's authoritative roster and purse state.
func (c *AuctionAPIClient) MyTeam(ctx context.Context) (models.TeamSnapshot, error) {
	body, err := c.Get(ctx, myTeamPath)
	if err != nil {
		return models.TeamSnapshot{}, fmt.Errorf("failed to get team: %w", err)
	}

	var team models.TeamSnapshot
	if err := json.Unmarshal(body, &team); err != nil {
		return models.TeamSnapshot{}, fmt.Errorf("failed to unmarshal team: %w", err)
	}
	return team, nil
}

// UpdatePlayingXIRequest is the wholesale lineup submission: every placed
// slot plus the inferred captain.
type UpdatePlayingXIRequest struct {
	Players []models.LineupEntry `json:"players"`
	Captain string               `json:"captain"`
}

// UpdatePlayingXI submits the full lineup assignment. Callers re-fetch the
// team afterwards; the server response carries no roster payload.
func (c *AuctionAPIClient) UpdatePlayingXI(ctx context.Context, req UpdatePlayingXIRequest) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal lineup update: %w", err)
	}

	if _, err := c.Post(ctx, updatePlayingXIPath, bytes.NewReader(payload)); err != nil {
		return fmt.Errorf("failed to update playing XI: %w", err)
	}
	return nil
}

// Logout ends the server session.
func (c *AuctionAPIClient) Logout(ctx context.Context) error {
	if _, err := c.Get(ctx, logoutPath); err != nil {
		return fmt.Errorf("failed to log out: %w", err)
	}
	return nil
}
