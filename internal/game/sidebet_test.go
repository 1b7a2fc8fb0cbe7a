package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// evalOne runs the evaluator and returns the single result matching code, if
// any bet with that code won.
func evalOne(t *testing.T, code string, amount int, rules TableRules, player, dealer []Card, phase Phase) *SideBetResult {
	t.Helper()
	for _, sb := range EvaluateSideBets(amount, rules, player, dealer, phase) {
		if sb.Code == code {
			return &sb
		}
	}
	return nil
}

func TestPairTiers(t *testing.T) {
	rules := ClassicRules()
	dealer := []Card{c(Five, Clubs), c(Nine, Hearts)}

	tests := []struct {
		name       string
		player     []Card
		tier       string
		multiplier int
	}{
		{"perfect pair", []Card{c(King, Hearts), c(King, Hearts)}, "perfect", 25},
		{"colored pair", []Card{c(King, Hearts), c(King, Diamonds)}, "colored", 12},
		{"mixed pair", []Card{c(King, Hearts), c(King, Spades)}, "mixed", 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sb := evalOne(t, "PERFECT_PAIRS", 10, rules, tt.player, dealer, PhasePlayer)
			require.NotNil(t, sb)
			assert.Equal(t, tt.tier, sb.Tier)
			assert.Equal(t, tt.multiplier, sb.Multiplier)
			assert.Equal(t, 10*tt.multiplier, sb.Payout)
		})
	}

	assert.Nil(t, evalOne(t, "PERFECT_PAIRS", 10, rules,
		[]Card{c(King, Hearts), c(Queen, Hearts)}, dealer, PhasePlayer))
}

func TestPokerTiers(t *testing.T) {
	rules := ClassicRules()

	tests := []struct {
		name       string
		player     []Card
		up         Card
		tier       string
		multiplier int
	}{
		{"suited trips", []Card{c(King, Hearts), c(King, Hearts)}, c(King, Hearts), "suited_trips", 40},
		{"straight flush", []Card{c(Five, Hearts), c(Six, Hearts)}, c(Seven, Hearts), "straight_flush", 30},
		{"trips", []Card{c(King, Hearts), c(King, Spades)}, c(King, Clubs), "trips", 20},
		{"straight", []Card{c(Five, Hearts), c(Six, Spades)}, c(Seven, Clubs), "straight", 10},
		{"flush", []Card{c(Two, Hearts), c(Nine, Hearts)}, c(King, Hearts), "flush", 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dealer := []Card{tt.up, c(Nine, Diamonds)}
			sb := evalOne(t, "TWENTY_ONE_PLUS_THREE", 10, rules, tt.player, dealer, PhasePlayer)
			require.NotNil(t, sb)
			assert.Equal(t, tt.tier, sb.Tier)
			assert.Equal(t, tt.multiplier, sb.Multiplier)
		})
	}

	assert.Nil(t, evalOne(t, "TWENTY_ONE_PLUS_THREE", 10, rules,
		[]Card{c(Two, Hearts), c(Nine, Spades)}, []Card{c(King, Clubs), c(Nine, Diamonds)}, PhasePlayer))
}

func TestStraightRules(t *testing.T) {
	queenHighAce := []Card{c(Queen, Spades), c(King, Diamonds)}
	aceUp := []Card{c(Ace, Clubs), c(Nine, Diamonds)}

	// Q-K-A only plays when the ace may rank high.
	classic := ClassicRules()
	sb := evalOne(t, "TWENTY_ONE_PLUS_THREE", 10, classic, queenHighAce, aceUp, PhasePlayer)
	require.NotNil(t, sb)
	assert.Equal(t, "straight", sb.Tier)

	lowOnly := ClassicRules()
	lowOnly.StraightRule = StraightAceLowOnly
	assert.Nil(t, evalOne(t, "TWENTY_ONE_PLUS_THREE", 10, lowOnly, queenHighAce, aceUp, PhasePlayer))

	// A-2-3 works under every rule.
	aceLow := []Card{c(Two, Spades), c(Three, Diamonds)}
	sb = evalOne(t, "TWENTY_ONE_PLUS_THREE", 10, lowOnly, aceLow, aceUp, PhasePlayer)
	require.NotNil(t, sb)
	assert.Equal(t, "straight", sb.Tier)

	// K-A-2 wraps around the rank cycle.
	wrapHand := []Card{c(King, Spades), c(Two, Diamonds)}
	assert.Nil(t, evalOne(t, "TWENTY_ONE_PLUS_THREE", 10, classic, wrapHand, aceUp, PhasePlayer))

	wrap := ClassicRules()
	wrap.StraightRule = StraightWrapAllowed
	sb = evalOne(t, "TWENTY_ONE_PLUS_THREE", 10, wrap, wrapHand, aceUp, PhasePlayer)
	require.NotNil(t, sb)
	assert.Equal(t, "straight", sb.Tier)
}

func TestLuckyLadiesTiers(t *testing.T) {
	rules := ClassicRules()
	dealer := []Card{c(Five, Clubs), c(Nine, Hearts)}

	tests := []struct {
		name       string
		player     []Card
		tier       string
		multiplier int
	}{
		{"queens of hearts", []Card{c(Queen, Hearts), c(Queen, Hearts)}, "qq_hearts", 200},
		{"matched twenty", []Card{c(King, Clubs), c(King, Clubs)}, "matched_20", 25},
		{"suited twenty", []Card{c(King, Hearts), c(Queen, Diamonds)}, "suited_20", 10},
		{"any twenty", []Card{c(King, Spades), c(Queen, Diamonds)}, "any_20", 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sb := evalOne(t, "LUCKY_LADIES", 10, rules, tt.player, dealer, PhasePlayer)
			require.NotNil(t, sb)
			assert.Equal(t, tt.tier, sb.Tier)
			assert.Equal(t, tt.multiplier, sb.Multiplier)
		})
	}

	assert.Nil(t, evalOne(t, "LUCKY_LADIES", 10, rules,
		[]Card{c(King, Spades), c(Nine, Diamonds)}, dealer, PhasePlayer), "nineteen is not twenty")
}

func TestLuckyLadiesQueensOfHeartsByTable(t *testing.T) {
	ladies := []Card{c(Queen, Hearts), c(Queen, Hearts)}
	dealerBlackjack := []Card{c(Ace, Spades), c(King, Spades)}
	dealerPlain := []Card{c(Nine, Spades), c(King, Spades)}

	// The premium top tier pays 1000x on heart queens with or without a
	// dealer blackjack.
	premium := PremiumRules()
	for _, dealer := range [][]Card{dealerBlackjack, dealerPlain} {
		sb := evalOne(t, "LUCKY_LADIES", 10, premium, ladies, dealer, PhasePlayer)
		require.NotNil(t, sb)
		assert.Equal(t, 1000, sb.Multiplier)
	}

	// The classic table pays its flat 200x and has no bonus.
	sb := evalOne(t, "LUCKY_LADIES", 10, ClassicRules(), ladies, dealerBlackjack, PhasePlayer)
	require.NotNil(t, sb)
	assert.Equal(t, 200, sb.Multiplier)
}

func TestLuckyLadiesDealerBlackjackOverride(t *testing.T) {
	// A table may configure a lower base that upgrades only when the dealer
	// draws blackjack.
	rules := ClassicRules()
	rules.SideBets = []SideBetRule{{
		Code: "LUCKY_LADIES", Name: "Lucky Ladies",
		Availability: Availability{Type: AvailableAlways},
		SettlePhase:  SettleOnDeal,
		Totals:       &TotalPayouts{QueensOfHearts: 125, Matched: 25, Suited: 10, Any: 4, DealerBlackjackBonus: 1000},
	}}
	ladies := []Card{c(Queen, Hearts), c(Queen, Hearts)}

	sb := evalOne(t, "LUCKY_LADIES", 10, rules, ladies, []Card{c(Ace, Spades), c(King, Spades)}, PhasePlayer)
	require.NotNil(t, sb)
	assert.Equal(t, 1000, sb.Multiplier)

	sb = evalOne(t, "LUCKY_LADIES", 10, rules, ladies, []Card{c(Nine, Spades), c(King, Spades)}, PhasePlayer)
	require.NotNil(t, sb)
	assert.Equal(t, 125, sb.Multiplier)
}

func TestBustItPaysByCardCount(t *testing.T) {
	rules := ClassicRules()
	player := []Card{c(Nine, Clubs), c(Seven, Diamonds)}

	bustThree := []Card{c(Five, Clubs), c(Nine, Diamonds), c(King, Spades)}
	sb := evalOne(t, "BUST_IT", 10, rules, player, bustThree, PhasePayout)
	require.NotNil(t, sb)
	assert.Equal(t, "bust_3", sb.Tier)
	assert.Equal(t, 30, sb.Payout)

	bustFive := []Card{c(Two, Clubs), c(Three, Diamonds), c(Four, Spades), c(Five, Hearts), c(King, Spades)}
	sb = evalOne(t, "BUST_IT", 10, rules, player, bustFive, PhasePayout)
	require.NotNil(t, sb)
	assert.Equal(t, "bust_5", sb.Tier)
	assert.Equal(t, 100, sb.Payout)

	noBust := []Card{c(Five, Clubs), c(Nine, Diamonds), c(Three, Spades)}
	assert.Nil(t, evalOne(t, "BUST_IT", 10, rules, player, noBust, PhasePayout))
}

func TestBustItUpcardAvailability(t *testing.T) {
	player := []Card{c(Nine, Clubs), c(Seven, Diamonds)}
	bust := []Card{c(Ten, Clubs), c(Six, Diamonds), c(King, Spades)}

	// The classic table only offers Bust It against a weak upcard; the
	// premium table always does.
	assert.Nil(t, evalOne(t, "BUST_IT", 10, ClassicRules(), player, bust, PhasePayout))

	sb := evalOne(t, "BUST_IT", 10, PremiumRules(), player, bust, PhasePayout)
	require.NotNil(t, sb)
	assert.Equal(t, 50, sb.Payout, "premium pays 5x on a three-card bust")
}

func TestSettleWindows(t *testing.T) {
	rules := ClassicRules()
	pair := []Card{c(King, Hearts), c(King, Hearts)}
	bust := []Card{c(Five, Clubs), c(Nine, Diamonds), c(King, Spades)}

	// Deal-time bets are closed by payout, dealer-turn bets before the
	// dealer acts.
	assert.Nil(t, evalOne(t, "PERFECT_PAIRS", 10, rules, pair, bust, PhasePayout))
	assert.Nil(t, evalOne(t, "BUST_IT", 10, rules, pair, bust, PhasePlayer))

	// Nothing is judged while betting.
	assert.Empty(t, EvaluateSideBets(10, rules, pair, bust, PhaseBetting))
}

func TestNoWagerNoResults(t *testing.T) {
	pair := []Card{c(King, Hearts), c(King, Hearts)}
	dealer := []Card{c(Five, Clubs), c(Nine, Hearts)}
	assert.Empty(t, EvaluateSideBets(0, ClassicRules(), pair, dealer, PhasePlayer))
}
