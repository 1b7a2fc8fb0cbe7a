package game

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"
	"time"
)

// DefaultReshuffleDepth is the shoe depth below which a fresh shoe must be
// built before the next round may start.
const DefaultReshuffleDepth = 20

// Shoe is the working set of shuffled cards for a series of rounds, built
// from one or more 52-card decks and consumed from the front.
type Shoe struct {
	Cards []Card `json:"-"`
	decks int
}

// NewShoe builds a shoe of deckCount standard decks and shuffles it.
func NewShoe(deckCount int) *Shoe {
	if deckCount < 1 {
		deckCount = 1
	}
	s := &Shoe{Cards: buildDecks(deckCount), decks: deckCount}
	s.Shuffle()
	return s
}

func buildDecks(deckCount int) []Card {
	cards := make([]Card, 0, deckCount*52)
	for k := 0; k < deckCount; k++ {
		for _, suit := range allSuits {
			for _, rank := range allRanks {
				cards = append(cards, Card{Suit: suit, Rank: rank})
			}
		}
	}
	return cards
}

// newRand returns a rand.Rand seeded from the OS entropy source, falling
// back to the wall clock when no entropy is available.
func newRand() *rand.Rand {
	var seed [8]byte
	if _, err := crand.Read(seed[:]); err == nil {
		return rand.New(rand.NewSource(int64(binary.LittleEndian.Uint64(seed[:]))))
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// Shuffle randomizes the order of the remaining cards in place using the
// Fisher-Yates algorithm. The result is a permutation of the input: no card
// is created, lost, or duplicated.
func (s *Shoe) Shuffle() {
	r := newRand()
	for i := len(s.Cards) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		s.Cards[i], s.Cards[j] = s.Cards[j], s.Cards[i]
	}
}

// Extend appends deckCount freshly built and shuffled decks to the shoe.
func (s *Shoe) Extend(deckCount int) {
	if deckCount < 1 {
		deckCount = 1
	}
	fresh := &Shoe{Cards: buildDecks(deckCount)}
	fresh.Shuffle()
	s.Cards = append(s.Cards, fresh.Cards...)
	s.decks += deckCount
}

// Draw removes and returns the front card of the shoe.
func (s *Shoe) Draw() (Card, bool) {
	if len(s.Cards) == 0 {
		return Card{}, false
	}
	card := s.Cards[0]
	s.Cards = s.Cards[1:]
	return card, true
}

// Remaining returns the number of cards left in the shoe.
func (s *Shoe) Remaining() int {
	return len(s.Cards)
}

// Size returns the total number of cards the shoe was built with.
func (s *Shoe) Size() int {
	return s.decks * 52
}

// Decks returns the number of decks the shoe was built from.
func (s *Shoe) Decks() int {
	return s.decks
}

// NeedsReshuffle reports whether the shoe has fallen below the given depth.
// A zero or negative depth means the default.
func (s *Shoe) NeedsReshuffle(depth int) bool {
	if depth <= 0 {
		depth = DefaultReshuffleDepth
	}
	return len(s.Cards) < depth
}
