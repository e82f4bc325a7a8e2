// Package state owns the client-held mirror of the server's auction state
// plus the small local bookkeeping that keeps the live feed from repeating
// itself across redundant state pushes. Nothing in here is authoritative:
// the mirror is replaced wholesale on every push and discarded on exit.
package state

import (
	"sync"

	"github.com/Mithesh14/ipl-auction/internal/models"
)

const (
	joinedPrefix = "joined_"
	leftPrefix   = "left_"
)

// ClientState is the single state-owning object for the client. Renderers
// take its snapshots as explicit parameters; event handlers, the poller and
// timer callbacks all touch it, so access is synchronized internally.
type ClientState struct {
	mu sync.RWMutex

	user         models.User
	auction      *models.AuctionState
	categories   []string
	categoryInfo models.CategoryInfo

	// Feed dedup: the player currently announced on the block, and the
	// joined_/left_ transition tags already announced per user.
	lastAnnouncedPlayer string
	announcedUsers      map[string]struct{}
}

// New creates an empty client state for the given local user.
func New(user models.User) *ClientState {
	return &ClientState{
		user:           user,
		announcedUsers: make(map[string]struct{}),
	}
}

// User returns the local user.
func (c *ClientState) User() models.User {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.user
}

// Auction returns the current mirror snapshot. Callers must treat it as
// read-only; it may be replaced by a newer push at any time.
func (c *ClientState) Auction() *models.AuctionState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.auction
}

// AuctionActive reports whether the mirrored auction status is active.
func (c *ClientState) AuctionActive() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.auction.Active()
}

// CurrentPlayer returns the player on the block, or nil.
func (c *ClientState) CurrentPlayer() *models.Player {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.auction == nil {
		return nil
	}
	return c.auction.CurrentPlayer
}

// ApplyAuctionState replaces the mirror with the pushed snapshot and
// reports whether the player on the block changed, which decides between a
// full display refresh and a bids-only refresh.
func (c *ClientState) ApplyAuctionState(next *models.AuctionState) (playerChanged bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	prev := playerName(c.auction)
	c.auction = next
	return prev != playerName(next)
}

func playerName(s *models.AuctionState) string {
	if s == nil || s.CurrentPlayer == nil {
		return ""
	}
	return s.CurrentPlayer.Name
}

// SetCategories stores the category metadata from /api/init.
func (c *ClientState) SetCategories(categories []string, info models.CategoryInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.categories = categories
	c.categoryInfo = info
}

// Categories returns the known category list and per-category set counts.
func (c *ClientState) Categories() ([]string, models.CategoryInfo) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.categories, c.categoryInfo
}

// MarkPlayerAnnounced records that the named player has been announced to
// the feed. It returns true only the first time per occupancy of the block,
// so repeated pushes of the same lot stay silent.
func (c *ClientState) MarkPlayerAnnounced(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lastAnnouncedPlayer == name {
		return false
	}
	c.lastAnnouncedPlayer = name
	return true
}

// ResetAnnouncedPlayer clears the announcement mark. Called whenever the
// block empties so the next lot (even the same player) re-announces.
func (c *ClientState) ResetAnnouncedPlayer() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastAnnouncedPlayer = ""
}

// MarkUserJoined records a join transition for a user. It returns true when
// the join should be announced, and clears any prior "left" mark so a later
// disconnect announces again.
func (c *ClientState) MarkUserJoined(username string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := joinedPrefix + username
	if _, seen := c.announcedUsers[key]; seen {
		return false
	}
	c.announcedUsers[key] = struct{}{}
	delete(c.announcedUsers, leftPrefix+username)
	return true
}

// MarkUserLeft is the leave-side counterpart of MarkUserJoined.
func (c *ClientState) MarkUserLeft(username string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := leftPrefix + username
	if _, seen := c.announcedUsers[key]; seen {
		return false
	}
	c.announcedUsers[key] = struct{}{}
	delete(c.announcedUsers, joinedPrefix+username)
	return true
}
