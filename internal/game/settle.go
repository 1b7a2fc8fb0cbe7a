package game

import (
	"fmt"
	"time"
)

// Outcome labels how a single hand resolved against the dealer.
type Outcome string

const (
	OutcomeBlackjack Outcome = "blackjack"
	OutcomeWin       Outcome = "win"
	OutcomeLose      Outcome = "lose"
	OutcomePush      Outcome = "push"
	OutcomeSurrender Outcome = "surrender"
	OutcomeBust      Outcome = "bust"
)

// HandResult is the settlement of one hand. Delta is the net gain or loss;
// Credited is what actually flows back to the bankroll (stake refund plus
// winnings), so Credited == Bet + Delta always holds.
type HandResult struct {
	HandID   string  `json:"handId"`
	Bet      int     `json:"bet"`
	Outcome  Outcome `json:"outcome"`
	Delta    int     `json:"delta"`
	Credited int     `json:"credited"`
}

// RoundResult is everything settlement produced for one round.
type RoundResult struct {
	Hands          []HandResult    `json:"hands"`
	InsuranceDelta int             `json:"insuranceDelta"`
	SideBets       []SideBetResult `json:"sideBets"`
	SideBetAmount  int             `json:"sideBetAmount"`
	// Delta is the round's net effect on the bankroll.
	Delta int `json:"delta"`
	// Staked and Credited book both directions of every chip that moved:
	// Credited - Staked == Delta, with no currency created or destroyed
	// outside the payout multipliers.
	Staked   int    `json:"staked"`
	Credited int    `json:"credited"`
	Bankroll int    `json:"bankroll"`
	Message  string `json:"message"`
}

// settleHand resolves one finished hand against the final dealer hand,
// in strict priority order.
func settleHand(h *Hand, dealerScore Score) (Outcome, int) {
	ps := h.Score()

	switch {
	case h.Surrendered:
		return OutcomeSurrender, -(h.Bet / 2)
	case ps.Bust:
		return OutcomeBust, -h.Bet
	case ps.Blackjack && !dealerScore.Blackjack:
		return OutcomeBlackjack, h.Bet * 3 / 2
	case dealerScore.Blackjack && !ps.Blackjack:
		return OutcomeLose, -h.Bet
	case dealerScore.Bust:
		return OutcomeWin, h.Bet
	case ps.Total > dealerScore.Total:
		return OutcomeWin, h.Bet
	case ps.Total < dealerScore.Total:
		return OutcomeLose, -h.Bet
	default:
		return OutcomePush, 0
	}
}

// Settle runs settlement exactly once per round: every finished hand against
// the dealer, insurance stakes, and the side-bet wager. The bankroll is
// credited, the round state cleared, and the table returned to betting. If
// the shoe has run low the next betting cycle starts from a fresh shoe.
func (t *Table) Settle() (*RoundResult, bool) {
	if t.Phase != PhasePayout {
		return nil, false
	}

	dealerScore := ScoreHand(t.Dealer)
	result := &RoundResult{
		Staked:        t.staked,
		SideBetAmount: t.SideBet,
	}

	for _, h := range t.Hands {
		outcome, delta := settleHand(h, dealerScore)
		credited := h.Bet + delta
		result.Hands = append(result.Hands, HandResult{
			HandID:   h.ID,
			Bet:      h.Bet,
			Outcome:  outcome,
			Delta:    delta,
			Credited: credited,
		})
		result.Delta += delta
		result.Credited += credited
	}

	// Insurance settles independently of the main hands: 2:1 on the stake
	// when the dealer has blackjack, forfeited otherwise.
	for _, h := range t.Hands {
		if !h.Insured {
			continue
		}
		if dealerScore.Blackjack {
			result.InsuranceDelta += 2 * h.InsuranceStake
			result.Credited += 3 * h.InsuranceStake
		} else {
			result.InsuranceDelta -= h.InsuranceStake
		}
	}
	result.Delta += result.InsuranceDelta

	// Side bets: deal-time wins were recorded when the cards went out;
	// dealer-turn bets are judged now against the finished dealer hand.
	// The pooled wager is forfeited and each winning rule pays on its own.
	if t.SideBet > 0 {
		var playerCards []Card
		if len(t.Hands) > 0 {
			playerCards = t.Hands[0].Cards
		}
		result.SideBets = append(result.SideBets, t.dealtSideBets...)
		result.SideBets = append(result.SideBets,
			EvaluateSideBets(t.SideBet, t.Rules, playerCards, t.Dealer, PhasePayout)...)

		sideCredit := 0
		for _, sb := range result.SideBets {
			sideCredit += sb.Payout
		}
		result.Delta += sideCredit - t.SideBet
		result.Credited += sideCredit
	}

	t.Bankroll += result.Credited
	result.Bankroll = t.Bankroll

	switch {
	case result.Delta > 0:
		result.Message = fmt.Sprintf("Won %d", result.Delta)
	case result.Delta < 0:
		result.Message = fmt.Sprintf("Lost %d", -result.Delta)
	default:
		result.Message = "Push"
	}

	// Round teardown: everything but the bankroll and the shoe is
	// ephemeral.
	t.Hands = nil
	t.Dealer = nil
	t.Active = 0
	t.BetAmount = 0
	t.SideBet = 0
	t.staked = 0
	t.dealtSideBets = nil
	t.Phase = PhaseBetting

	if t.shoe.NeedsReshuffle(t.Rules.ReshuffleAt) {
		t.rebuildShoe()
	}
	t.UpdatedAt = time.Now()

	return result, true
}
