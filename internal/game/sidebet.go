package game

import (
	"fmt"
	"sort"
)

// SideBetResult is one winning side bet: the multiplier that matched and the
// payout it earns on the pooled side wager.
type SideBetResult struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Tier        string `json:"tier"`
	Multiplier  int    `json:"multiplier"`
	Amount      int    `json:"amount"`
	Payout      int    `json:"payout"`
	Combination string `json:"combination"`
}

// settleWindowOpen reports whether a bet with the given settle phase can be
// judged in the given round phase. Deal-time bets are decided as soon as the
// initial cards are out; dealer-turn bets need the finished dealer hand.
func settleWindowOpen(sp SettlePhase, phase Phase) bool {
	switch sp {
	case SettleOnDeal:
		return phase == PhasePlayer || phase == PhaseDealer
	case SettleOnDealerTurn:
		return phase == PhaseDealer || phase == PhasePayout
	default:
		// SettleImmediate is the insurance rule; the round engine settles
		// insurance through the hand's insured flag, never here.
		return false
	}
}

// EvaluateSideBets judges every eligible side bet for the current phase and
// returns the winners. Pure function of its inputs: the same cards, rules,
// and phase always produce the same results. Several bets may win from the
// same wager; each pays independently of the main hand outcome.
func EvaluateSideBets(amount int, rules TableRules, playerCards, dealerCards []Card, phase Phase) []SideBetResult {
	if amount <= 0 {
		return nil
	}

	var dealerUp *Card
	if len(dealerCards) > 0 {
		up := dealerCards[0]
		dealerUp = &up
	}

	var results []SideBetResult
	for _, rule := range rules.SideBets {
		if !settleWindowOpen(rule.SettlePhase, phase) {
			continue
		}
		if !rule.Availability.Matches(dealerUp) {
			continue
		}

		var (
			tier        string
			multiplier  int
			combination string
			won         bool
		)
		switch {
		case rule.Pairs != nil:
			tier, multiplier, combination, won = evalPairs(playerCards, rule.Pairs)
		case rule.Poker != nil:
			tier, multiplier, combination, won = evalPoker(playerCards, dealerUp, rule.Poker, rules.StraightRule)
		case rule.Totals != nil:
			tier, multiplier, combination, won = evalTotals(playerCards, dealerCards, rule.Totals)
		case rule.Bust != nil:
			tier, multiplier, combination, won = evalBust(dealerCards, rule.Bust)
		}
		if !won || multiplier <= 0 {
			continue
		}

		results = append(results, SideBetResult{
			Code:        rule.Code,
			Name:        rule.Name,
			Tier:        tier,
			Multiplier:  multiplier,
			Amount:      amount,
			Payout:      amount * multiplier,
			Combination: combination,
		})
	}
	return results
}

// evalPairs matches the player's first two cards: perfect pair (rank and
// suit), colored pair (rank and color), mixed pair (rank only).
func evalPairs(playerCards []Card, p *PairPayouts) (string, int, string, bool) {
	if len(playerCards) < 2 {
		return "", 0, "", false
	}
	a, b := playerCards[0], playerCards[1]
	if a.Rank != b.Rank {
		return "", 0, "", false
	}
	combo := fmt.Sprintf("%s + %s", a, b)
	switch {
	case a.Suit == b.Suit:
		return "perfect", p.Perfect, combo, true
	case a.IsRed() == b.IsRed():
		return "colored", p.Colored, combo, true
	default:
		return "mixed", p.Mixed, combo, true
	}
}

// evalPoker matches the three-card poker hand formed by the player's two
// cards and the dealer's upcard, best tier first.
func evalPoker(playerCards []Card, dealerUp *Card, p *PokerPayouts, sr StraightRule) (string, int, string, bool) {
	if len(playerCards) < 2 || dealerUp == nil {
		return "", 0, "", false
	}
	cards := []Card{playerCards[0], playerCards[1], *dealerUp}
	combo := fmt.Sprintf("%s + %s + %s", cards[0], cards[1], cards[2])

	trips := cards[0].Rank == cards[1].Rank && cards[1].Rank == cards[2].Rank
	flush := isFlush(cards)
	straight := isStraight(cards, sr)

	switch {
	case trips && flush:
		return "suited_trips", p.SuitedTrips, combo, true
	case straight && flush:
		return "straight_flush", p.StraightFlush, combo, true
	case trips:
		return "trips", p.Trips, combo, true
	case straight:
		return "straight", p.Straight, combo, true
	case flush:
		return "flush", p.Flush, combo, true
	default:
		return "", 0, "", false
	}
}

// evalTotals matches the two-card-total-of-20 tiers, best first: both queens
// of hearts, matched (rank and suit), suited (color), any 20. The queens
// tier upgrades to the dealer-blackjack bonus when configured.
func evalTotals(playerCards, dealerCards []Card, p *TotalPayouts) (string, int, string, bool) {
	if len(playerCards) < 2 {
		return "", 0, "", false
	}
	a, b := playerCards[0], playerCards[1]
	if a.Value()+b.Value() != 20 {
		return "", 0, "", false
	}
	combo := fmt.Sprintf("%s + %s", a, b)

	if a.Rank == Queen && b.Rank == Queen && a.Suit == Hearts && b.Suit == Hearts {
		multiplier := p.QueensOfHearts
		if p.DealerBlackjackBonus > 0 && ScoreHand(dealerCards).Blackjack {
			multiplier = p.DealerBlackjackBonus
		}
		return "qq_hearts", multiplier, combo, true
	}
	if a.Rank == b.Rank && a.Suit == b.Suit {
		return "matched_20", p.Matched, combo, true
	}
	if a.IsRed() == b.IsRed() {
		return "suited_20", p.Suited, combo, true
	}
	return "any_20", p.Any, combo, true
}

// evalBust pays when the dealer busted, with the multiplier indexed by the
// exact card count of the busted hand.
func evalBust(dealerCards []Card, p *BustPayouts) (string, int, string, bool) {
	if !ScoreHand(dealerCards).Bust {
		return "", 0, "", false
	}
	n := len(dealerCards)
	multiplier, ok := p.ByCardCount[n]
	if !ok {
		return "", 0, "", false
	}
	return fmt.Sprintf("bust_%d", n), multiplier, fmt.Sprintf("bust with %d cards", n), true
}

func isFlush(cards []Card) bool {
	for _, c := range cards[1:] {
		if c.Suit != cards[0].Suit {
			return false
		}
	}
	return true
}

// isStraight checks three-card straights over rank order 1..13. The table's
// straight rule decides whether the ace may also play high (Q-K-A) or wrap
// (K-A-2).
func isStraight(cards []Card, sr StraightRule) bool {
	orders := make([]int, len(cards))
	for i, c := range cards {
		orders[i] = c.Order()
	}
	if consecutive(orders) {
		return true
	}
	if sr == StraightAceLowOnly {
		return false
	}
	// Retry with aces high.
	high := make([]int, len(orders))
	hasAce := false
	for i, o := range orders {
		if o == 1 {
			high[i] = 14
			hasAce = true
		} else {
			high[i] = o
		}
	}
	if hasAce && consecutive(high) {
		return true
	}
	if sr != StraightWrapAllowed {
		return false
	}
	// Wraparound: any rotation of the 13-rank cycle.
	for shift := 1; shift < 13; shift++ {
		rotated := make([]int, len(orders))
		for i, o := range orders {
			rotated[i] = (o-1+shift)%13 + 1
		}
		if consecutive(rotated) {
			return true
		}
	}
	return false
}

func consecutive(values []int) bool {
	sorted := append([]int(nil), values...)
	sort.Ints(sorted)
	for i := 1; i < len(sorted); i++ {
		if sorted[i] != sorted[i-1]+1 {
			return false
		}
	}
	return true
}
