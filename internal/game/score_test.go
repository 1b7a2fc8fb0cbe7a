package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func c(rank Rank, suit Suit) Card {
	return Card{Suit: suit, Rank: rank}
}

func TestScoreHand(t *testing.T) {
	tests := []struct {
		name  string
		cards []Card
		want  Score
	}{
		{
			name:  "blackjack",
			cards: []Card{c(Ace, Spades), c(King, Hearts)},
			want:  Score{Total: 21, Soft: true, Blackjack: true, Hard: 11},
		},
		{
			name:  "hard fifteen",
			cards: []Card{c(Seven, Clubs), c(Eight, Diamonds)},
			want:  Score{Total: 15, Hard: 15},
		},
		{
			name:  "soft seventeen",
			cards: []Card{c(Ace, Hearts), c(Six, Spades)},
			want:  Score{Total: 17, Soft: true, Hard: 7},
		},
		{
			name:  "ace demoted after draw",
			cards: []Card{c(Ace, Hearts), c(Six, Spades), c(Ten, Clubs)},
			want:  Score{Total: 17, Hard: 17},
		},
		{
			name:  "two aces demote one at a time",
			cards: []Card{c(Ace, Hearts), c(Ace, Spades), c(Nine, Clubs)},
			want:  Score{Total: 21, Soft: true, Hard: 11},
		},
		{
			name:  "bust",
			cards: []Card{c(King, Hearts), c(Queen, Spades), c(Five, Clubs)},
			want:  Score{Total: 25, Bust: true, Hard: 25},
		},
		{
			name:  "twenty-one on three cards is not blackjack",
			cards: []Card{c(Ace, Hearts), c(Five, Spades), c(Five, Clubs)},
			want:  Score{Total: 21, Soft: true, Hard: 11},
		},
		{
			name:  "all aces never bust below five",
			cards: []Card{c(Ace, Hearts), c(Ace, Spades), c(Ace, Clubs), c(Ace, Diamonds)},
			want:  Score{Total: 14, Soft: true, Hard: 4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ScoreHand(tt.cards))
		})
	}
}

func TestCardValues(t *testing.T) {
	assert.Equal(t, 11, c(Ace, Spades).Value())
	assert.Equal(t, 10, c(Ten, Spades).Value())
	assert.Equal(t, 10, c(Jack, Spades).Value())
	assert.Equal(t, 10, c(Queen, Spades).Value())
	assert.Equal(t, 10, c(King, Spades).Value())
	assert.Equal(t, 2, c(Two, Spades).Value())
	assert.Equal(t, 9, c(Nine, Spades).Value())
}

func TestCardOrder(t *testing.T) {
	assert.Equal(t, 1, c(Ace, Spades).Order())
	assert.Equal(t, 10, c(Ten, Spades).Order())
	assert.Equal(t, 11, c(Jack, Spades).Order())
	assert.Equal(t, 12, c(Queen, Spades).Order())
	assert.Equal(t, 13, c(King, Spades).Order())
	assert.Equal(t, 7, c(Seven, Spades).Order())
}

func TestCardString(t *testing.T) {
	assert.Equal(t, "Q♥", c(Queen, Hearts).String())
	assert.Equal(t, "7♠", c(Seven, Spades).String())
	assert.Equal(t, "T♦", c(Ten, Diamonds).String())
	assert.Equal(t, "A♣", c(Ace, Clubs).String())
}
