package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountWeights(t *testing.T) {
	tracker := NewCountTracker(6)
	for _, rank := range []Rank{Two, Three, Four, Five, Six} {
		tracker.Observe(c(rank, Clubs))
	}
	assert.Equal(t, 5, tracker.Running())

	for _, rank := range []Rank{Seven, Eight, Nine} {
		tracker.Observe(c(rank, Clubs))
	}
	assert.Equal(t, 5, tracker.Running(), "7-9 are neutral")

	for _, rank := range []Rank{Ten, Jack, Queen, King, Ace} {
		tracker.Observe(c(rank, Clubs))
	}
	assert.Equal(t, 0, tracker.Running())
	assert.Equal(t, 13, tracker.CardsSeen())
}

func TestTrueCountNormalizesByDecksRemaining(t *testing.T) {
	tracker := NewCountTracker(6)
	for i := 0; i < 10; i++ {
		tracker.Observe(c(Two, Clubs))
	}

	// 302 cards remain: 10 / (302/52) rounded to two decimals.
	assert.InDelta(t, 5.81, tracker.DecksRemaining(), 0.01)
	assert.Equal(t, 1.72, tracker.TrueCount())
}

func TestTrueCountFloorsAtHalfDeck(t *testing.T) {
	tracker := NewCountTracker(1)
	for i := 0; i < 30; i++ {
		tracker.Observe(c(Seven, Clubs))
	}
	for i := 0; i < 10; i++ {
		tracker.Observe(c(Two, Clubs))
	}

	// 12 cards remain, under half a deck; the divisor is clamped.
	assert.Equal(t, 0.5, tracker.DecksRemaining())
	assert.Equal(t, 20.0, tracker.TrueCount())
}

func TestCountStatus(t *testing.T) {
	tracker := NewCountTracker(1)
	assert.Equal(t, CountNeutral, tracker.Status())

	for i := 0; i < 3; i++ {
		tracker.Observe(c(Two, Clubs))
	}
	assert.Equal(t, CountFavorable, tracker.Status())

	tracker.Reset(1)
	for i := 0; i < 3; i++ {
		tracker.Observe(c(King, Clubs))
	}
	assert.Equal(t, CountUnfavorable, tracker.Status())
}

func TestCountReset(t *testing.T) {
	tracker := NewCountTracker(6)
	tracker.Observe(c(Two, Clubs))
	tracker.Observe(c(King, Hearts))

	tracker.Reset(8)

	snap := tracker.Snapshot()
	assert.Equal(t, 0, snap.Running)
	assert.Equal(t, 0, snap.CardsSeen)
	assert.Equal(t, 8.0, snap.DecksRemaining)
	assert.Equal(t, 0.0, snap.TrueCount)
	assert.Equal(t, CountNeutral, snap.Status)
}
