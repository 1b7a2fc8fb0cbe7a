package game

// DealerSoft17 selects how the dealer plays a soft 17.
type DealerSoft17 string

const (
	Soft17Stand DealerSoft17 = "STAND"
	Soft17Hit   DealerSoft17 = "HIT"
)

// StraightRule selects how aces rank in side-bet straights.
type StraightRule string

const (
	StraightAceLowOnly   StraightRule = "A_low_only"
	StraightAceHighOrLow StraightRule = "A_high_or_low"
	StraightWrapAllowed  StraightRule = "wrap_allowed"
)

// SettlePhase declares when a side bet can be judged.
type SettlePhase string

const (
	// SettleOnDeal bets are decided by the initial cards.
	SettleOnDeal SettlePhase = "DEALT"
	// SettleOnDealerTurn bets need the dealer's finished hand.
	SettleOnDealerTurn SettlePhase = "DEALER_TURN"
	// SettleImmediate bets resolve at the insurance offer. Only the
	// insurance rule uses this; the round engine settles it directly.
	SettleImmediate SettlePhase = "IMMEDIATE"
)

// AvailabilityType gates when a side bet may be placed at all.
type AvailabilityType string

const (
	AvailableAlways        AvailabilityType = "ALWAYS"
	AvailableDealerUpcard  AvailabilityType = "DEALER_UPCARD_IN"
	AvailableInsuranceOnly AvailabilityType = "INSURANCE_ONLY"
)

// Availability is a side bet's placement predicate.
type Availability struct {
	Type AvailabilityType `json:"type"`
	// Ranks applies when Type is AvailableDealerUpcard.
	Ranks []Rank `json:"ranks,omitempty"`
}

// Matches reports whether a bet with this availability is open given the
// dealer's upcard (nil before any deal).
func (a Availability) Matches(dealerUp *Card) bool {
	switch a.Type {
	case AvailableAlways:
		return true
	case AvailableDealerUpcard:
		if dealerUp == nil {
			return false
		}
		for _, r := range a.Ranks {
			if dealerUp.Rank == r {
				return true
			}
		}
		return false
	case AvailableInsuranceOnly:
		return dealerUp != nil && dealerUp.Rank == Ace
	default:
		return false
	}
}

// Payout tables per bet family. Exactly one of the pointers on SideBetRule
// is set; the evaluator branches on which, so each family keeps its own
// typed multipliers instead of a generic key/value bag.

// PairPayouts covers pair-matching bets on the player's first two cards.
type PairPayouts struct {
	Perfect int `json:"perfect"` // same rank, same suit
	Colored int `json:"colored"` // same rank, same color, different suit
	Mixed   int `json:"mixed"`   // same rank, different color
}

// PokerPayouts covers three-card poker hands over the player's two cards
// plus the dealer's upcard.
type PokerPayouts struct {
	SuitedTrips   int `json:"suitedTrips"`
	StraightFlush int `json:"straightFlush"`
	Trips         int `json:"trips"`
	Straight      int `json:"straight"`
	Flush         int `json:"flush"`
}

// TotalPayouts covers the two-card-total-of-20 bonus tiers.
type TotalPayouts struct {
	QueensOfHearts int `json:"queensOfHearts"` // Q♥ + Q♥
	Matched        int `json:"matched"`        // same rank and suit
	Suited         int `json:"suited"`         // same color
	Any            int `json:"any"`
	// DealerBlackjackBonus, when non-zero, replaces the QueensOfHearts
	// multiplier if the dealer also has blackjack.
	DealerBlackjackBonus int `json:"dealerBlackjackBonus,omitempty"`
}

// BustPayouts pays when the dealer busts, indexed by the exact number of
// cards in the busted hand.
type BustPayouts struct {
	ByCardCount map[int]int `json:"byCardCount"`
}

// InsurancePayout carries the 2:1 insurance multiplier for display. The
// round engine settles insurance itself via the hand's insured flag.
type InsurancePayout struct {
	Multiplier int `json:"multiplier"`
}

// SideBetRule describes one side wager offered at the table.
type SideBetRule struct {
	Code         string       `json:"code"`
	Name         string       `json:"name"`
	Min          int          `json:"min"`
	Max          int          `json:"max"`
	Step         int          `json:"step"`
	Availability Availability `json:"availability"`
	SettlePhase  SettlePhase  `json:"settlePhase"`

	// Exactly one of the following is non-nil.
	Pairs     *PairPayouts     `json:"pairs,omitempty"`
	Poker     *PokerPayouts    `json:"poker,omitempty"`
	Totals    *TotalPayouts    `json:"totals,omitempty"`
	Bust      *BustPayouts     `json:"bust,omitempty"`
	Insurance *InsurancePayout `json:"insurance,omitempty"`
}

// TableRules is the immutable configuration of a table. It may only be
// swapped between rounds, never mid-round.
type TableRules struct {
	Name         string        `json:"name"`
	Decks        int           `json:"decks"`
	DealerSoft17 DealerSoft17  `json:"dealerSoft17"`
	StraightRule StraightRule  `json:"straightRule"`
	ReshuffleAt  int           `json:"reshuffleAt"`
	MinBet       int           `json:"minBet"`
	MaxBet       int           `json:"maxBet"`
	SideBets     []SideBetRule `json:"sideBets"`
}

// ClassicRules is the standard 6-deck table with conventional payouts.
func ClassicRules() TableRules {
	return TableRules{
		Name:         "Classic 6-Deck",
		Decks:        6,
		DealerSoft17: Soft17Stand,
		StraightRule: StraightAceHighOrLow,
		ReshuffleAt:  DefaultReshuffleDepth,
		MinBet:       1,
		MaxBet:       999999,
		SideBets: []SideBetRule{
			{
				Code: "PERFECT_PAIRS", Name: "Perfect Pairs",
				Min: 1, Max: 100, Step: 1,
				Availability: Availability{Type: AvailableAlways},
				SettlePhase:  SettleOnDeal,
				Pairs:        &PairPayouts{Perfect: 25, Colored: 12, Mixed: 6},
			},
			{
				Code: "TWENTY_ONE_PLUS_THREE", Name: "21+3",
				Min: 1, Max: 100, Step: 1,
				Availability: Availability{Type: AvailableAlways},
				SettlePhase:  SettleOnDeal,
				Poker:        &PokerPayouts{SuitedTrips: 40, StraightFlush: 30, Trips: 20, Straight: 10, Flush: 5},
			},
			{
				Code: "LUCKY_LADIES", Name: "Lucky Ladies",
				Min: 1, Max: 100, Step: 1,
				Availability: Availability{Type: AvailableAlways},
				SettlePhase:  SettleOnDeal,
				Totals:       &TotalPayouts{QueensOfHearts: 200, Matched: 25, Suited: 10, Any: 4},
			},
			{
				Code: "BUST_IT", Name: "Bust It",
				Min: 1, Max: 100, Step: 1,
				Availability: Availability{Type: AvailableDealerUpcard, Ranks: []Rank{Two, Three, Four, Five, Six}},
				SettlePhase:  SettleOnDealerTurn,
				Bust:         &BustPayouts{ByCardCount: map[int]int{3: 3, 4: 6, 5: 10, 6: 15, 7: 25}},
			},
			{
				Code: "INSURANCE", Name: "Insurance",
				Min: 1, Max: 99999, Step: 1,
				Availability: Availability{Type: AvailableInsuranceOnly},
				SettlePhase:  SettleImmediate,
				Insurance:    &InsurancePayout{Multiplier: 2},
			},
		},
	}
}

// PremiumRules is the 8-deck table with richer payouts, no upcard
// restriction on Bust It, and the 1000x Lucky Ladies top tier.
func PremiumRules() TableRules {
	return TableRules{
		Name:         "Premium 8-Deck",
		Decks:        8,
		DealerSoft17: Soft17Stand,
		StraightRule: StraightAceHighOrLow,
		ReshuffleAt:  DefaultReshuffleDepth,
		MinBet:       1,
		MaxBet:       999999,
		SideBets: []SideBetRule{
			{
				Code: "PERFECT_PAIRS", Name: "Perfect Pairs",
				Min: 1, Max: 200, Step: 1,
				Availability: Availability{Type: AvailableAlways},
				SettlePhase:  SettleOnDeal,
				Pairs:        &PairPayouts{Perfect: 30, Colored: 15, Mixed: 8},
			},
			{
				Code: "TWENTY_ONE_PLUS_THREE", Name: "21+3",
				Min: 1, Max: 200, Step: 1,
				Availability: Availability{Type: AvailableAlways},
				SettlePhase:  SettleOnDeal,
				Poker:        &PokerPayouts{SuitedTrips: 100, StraightFlush: 40, Trips: 25, Straight: 15, Flush: 8},
			},
			{
				Code: "LUCKY_LADIES", Name: "Lucky Ladies",
				Min: 1, Max: 200, Step: 1,
				Availability: Availability{Type: AvailableAlways},
				SettlePhase:  SettleOnDeal,
				// The 1000x tier is advertised alongside a dealer blackjack
				// but pays on any pair of heart queens; the bonus override
				// matches it so the top payout holds either way.
				Totals: &TotalPayouts{QueensOfHearts: 1000, Matched: 30, Suited: 15, Any: 6, DealerBlackjackBonus: 1000},
			},
			{
				Code: "BUST_IT", Name: "Bust It",
				Min: 1, Max: 200, Step: 1,
				Availability: Availability{Type: AvailableAlways},
				SettlePhase:  SettleOnDealerTurn,
				Bust:         &BustPayouts{ByCardCount: map[int]int{3: 5, 4: 10, 5: 15, 6: 25, 7: 50}},
			},
			{
				Code: "INSURANCE", Name: "Insurance",
				Min: 1, Max: 99999, Step: 1,
				Availability: Availability{Type: AvailableInsuranceOnly},
				SettlePhase:  SettleImmediate,
				Insurance:    &InsurancePayout{Multiplier: 2},
			},
		},
	}
}

// RulesByName resolves a rules preset by its short name.
func RulesByName(name string) (TableRules, bool) {
	switch name {
	case "classic", "":
		return ClassicRules(), true
	case "premium":
		return PremiumRules(), true
	default:
		return TableRules{}, false
	}
}
