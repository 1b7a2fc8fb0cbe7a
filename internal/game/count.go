package game

import "math"

// CountStatus is an advisory classification of the true count.
type CountStatus string

const (
	CountFavorable   CountStatus = "favorable"
	CountNeutral     CountStatus = "neutral"
	CountUnfavorable CountStatus = "unfavorable"
)

// CountTracker maintains a running Hi-Lo count over the cards drawn from the
// shoe. It is purely observational: it never blocks or alters play.
type CountTracker struct {
	running  int
	seen     int
	shoeSize int
}

// NewCountTracker creates a tracker for a shoe of deckCount decks.
func NewCountTracker(deckCount int) *CountTracker {
	if deckCount < 1 {
		deckCount = 1
	}
	return &CountTracker{shoeSize: deckCount * 52}
}

// Observe feeds one revealed card into the count. Hi-Lo weights: 2-6 count
// +1, ten-value cards and aces count -1, 7-9 are neutral.
func (t *CountTracker) Observe(c Card) {
	switch c.Rank {
	case Two, Three, Four, Five, Six:
		t.running++
	case Ten, Jack, Queen, King, Ace:
		t.running--
	}
	t.seen++
}

// Reset clears the count for a freshly built shoe of deckCount decks.
func (t *CountTracker) Reset(deckCount int) {
	if deckCount < 1 {
		deckCount = 1
	}
	t.running = 0
	t.seen = 0
	t.shoeSize = deckCount * 52
}

// Running returns the raw Hi-Lo running count.
func (t *CountTracker) Running() int {
	return t.running
}

// CardsSeen returns how many cards have been observed since the last reset.
func (t *CountTracker) CardsSeen() int {
	return t.seen
}

// DecksRemaining estimates the decks left in the shoe, floored at half a
// deck so the true count cannot blow up near the cut card.
func (t *CountTracker) DecksRemaining() float64 {
	return math.Max(0.5, float64(t.shoeSize-t.seen)/52)
}

// TrueCount is the running count normalized by estimated decks remaining,
// rounded to two decimals.
func (t *CountTracker) TrueCount() float64 {
	return math.Round(float64(t.running)/t.DecksRemaining()*100) / 100
}

// Status classifies the current true count for advisory display.
func (t *CountTracker) Status() CountStatus {
	tc := t.TrueCount()
	switch {
	case tc >= 2:
		return CountFavorable
	case tc <= -2:
		return CountUnfavorable
	default:
		return CountNeutral
	}
}

// CountSnapshot is a read-only view of the tracker for the UI.
type CountSnapshot struct {
	Running        int         `json:"running"`
	CardsSeen      int         `json:"cardsSeen"`
	DecksRemaining float64     `json:"decksRemaining"`
	TrueCount      float64     `json:"trueCount"`
	Status         CountStatus `json:"status"`
}

// Snapshot returns the current count state.
func (t *CountTracker) Snapshot() CountSnapshot {
	return CountSnapshot{
		Running:        t.running,
		CardsSeen:      t.seen,
		DecksRemaining: t.DecksRemaining(),
		TrueCount:      t.TrueCount(),
		Status:         t.Status(),
	}
}
