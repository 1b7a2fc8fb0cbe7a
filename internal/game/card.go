package game

type Suit string
type Rank string

const (
	Hearts   Suit = "Hearts"
	Diamonds Suit = "Diamonds"
	Clubs    Suit = "Clubs"
	Spades   Suit = "Spades"
)

const (
	Ace   Rank = "Ace"
	Two   Rank = "2"
	Three Rank = "3"
	Four  Rank = "4"
	Five  Rank = "5"
	Six   Rank = "6"
	Seven Rank = "7"
	Eight Rank = "8"
	Nine  Rank = "9"
	Ten   Rank = "10"
	Jack  Rank = "Jack"
	Queen Rank = "Queen"
	King  Rank = "King"
)

var allSuits = []Suit{Hearts, Diamonds, Clubs, Spades}
var allRanks = []Rank{Ace, Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King}

type Card struct {
	Suit Suit `json:"suit"`
	Rank Rank `json:"rank"`
}

// Value returns the blackjack value of the card. Aces count 11 here;
// demotion to 1 happens during hand scoring.
func (c Card) Value() int {
	switch c.Rank {
	case Ace:
		return 11
	case Ten, Jack, Queen, King:
		return 10
	case Two:
		return 2
	case Three:
		return 3
	case Four:
		return 4
	case Five:
		return 5
	case Six:
		return 6
	case Seven:
		return 7
	case Eight:
		return 8
	case Nine:
		return 9
	default:
		return 0
	}
}

// Order returns the card's position in rank order, Ace low: A=1 .. K=13.
// Used for straight detection in side bets, never for blackjack totals.
func (c Card) Order() int {
	switch c.Rank {
	case Ace:
		return 1
	case Ten:
		return 10
	case Jack:
		return 11
	case Queen:
		return 12
	case King:
		return 13
	default:
		return int(c.Rank[0] - '0')
	}
}

// IsRed reports whether the card is a red suit (hearts or diamonds).
func (c Card) IsRed() bool {
	return c.Suit == Hearts || c.Suit == Diamonds
}

var suitSymbols = map[Suit]string{
	Hearts:   "♥",
	Diamonds: "♦",
	Clubs:    "♣",
	Spades:   "♠",
}

var rankSymbols = map[Rank]string{
	Ace: "A", Ten: "T", Jack: "J", Queen: "Q", King: "K",
}

// String renders the card in compact form, e.g. "Q♥" or "7♠".
func (c Card) String() string {
	r, ok := rankSymbols[c.Rank]
	if !ok {
		r = string(c.Rank)
	}
	return r + suitSymbols[c.Suit]
}
