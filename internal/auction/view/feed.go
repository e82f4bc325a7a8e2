package view

import "time"

// FeedLimit is the hard cap on retained live-feed entries; the oldest entry
// is evicted once the cap is reached.
const FeedLimit = 100

// Kind classifies a feed entry for styling.
type Kind string

const (
	KindInfo Kind = "info"
	KindBid  Kind = "bid"
	KindSold Kind = "sold"
)

// Entry is one human-readable feed announcement. Message may contain
// **inline emphasis** markup; surfaces decide how to display it.
type Entry struct {
	Kind    Kind
	Message string
	At      time.Time
}

// Feed is the reverse-chronological live log shown to all viewers.
type Feed struct {
	limit   int
	entries []Entry
}

// NewFeed creates a feed retaining at most limit entries. A non-positive
// limit falls back to FeedLimit.
func NewFeed(limit int) *Feed {
	if limit <= 0 {
		limit = FeedLimit
	}
	return &Feed{limit: limit}
}

// Push prepends an entry, evicting the oldest once the cap is exceeded.
func (f *Feed) Push(kind Kind, message string, at time.Time) {
	f.entries = append([]Entry{{Kind: kind, Message: message, At: at}}, f.entries...)
	if len(f.entries) > f.limit {
		f.entries = f.entries[:f.limit]
	}
}

// Entries returns the retained entries, most recent first.
func (f *Feed) Entries() []Entry {
	out := make([]Entry, len(f.entries))
	copy(out, f.entries)
	return out
}

// Len returns the number of retained entries.
func (f *Feed) Len() int {
	return len(f.entries)
}
