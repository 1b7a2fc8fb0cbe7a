package game

import (
	"time"

	"github.com/google/uuid"
)

type Phase string

const (
	PhaseBetting Phase = "betting" // placing bets, no cards out
	PhasePlayer  Phase = "player"  // player decisions on the active hand
	PhaseDealer  Phase = "dealer"  // dealer auto-play pending
	PhasePayout  Phase = "payout"  // settlement pending
)

// Hand is one player hand: two cards at deal time, or one inherited plus one
// drawn card after a split. It stops mutating once Done.
type Hand struct {
	ID             string `json:"id"`
	Cards          []Card `json:"cards"`
	Bet            int    `json:"bet"`
	Doubled        bool   `json:"doubled"`
	Surrendered    bool   `json:"surrendered"`
	Insured        bool   `json:"insured"`
	InsuranceStake int    `json:"insuranceStake,omitempty"`
	Done           bool   `json:"done"`
}

// Score evaluates the hand.
func (h *Hand) Score() Score {
	return ScoreHand(h.Cards)
}

// Table is a single-seat blackjack table: one shoe, one bankroll, at most
// one round in flight. All mutation happens through its action methods, one
// at a time; every action validates the current phase and leaves the state
// untouched when its preconditions fail.
type Table struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Rules    TableRules `json:"rules"`
	Bankroll int        `json:"bankroll"`

	Phase     Phase   `json:"phase"`
	Hands     []*Hand `json:"hands"`
	Active    int     `json:"active"`
	Dealer    []Card  `json:"dealer"`
	BetAmount int     `json:"betAmount"`
	SideBet   int     `json:"sideBet"`
	LastBet   int     `json:"lastBet"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	shoe    *Shoe
	counter *CountTracker

	// staked accumulates every chip withdrawn for the round in flight so
	// settlement can be checked for conservation.
	staked int
	// dealtSideBets holds side-bet wins judged at deal time; they are paid
	// during settlement together with the dealer-turn bets.
	dealtSideBets []SideBetResult
}

// NewTable creates a table with a fresh shoe and count tracker.
func NewTable(name string, rules TableRules, bankroll int) *Table {
	now := time.Now()
	return &Table{
		ID:        uuid.New().String(),
		Name:      name,
		Rules:     rules,
		Bankroll:  bankroll,
		Phase:     PhaseBetting,
		CreatedAt: now,
		UpdatedAt: now,
		shoe:      NewShoe(rules.Decks),
		counter:   NewCountTracker(rules.Decks),
	}
}

// SetRules swaps the table rules. Only legal between rounds; the shoe is
// rebuilt and the count reset because the deck count may change.
func (t *Table) SetRules(rules TableRules) bool {
	if t.Phase != PhaseBetting {
		return false
	}
	t.Rules = rules
	t.rebuildShoe()
	t.UpdatedAt = time.Now()
	return true
}

func (t *Table) rebuildShoe() {
	t.shoe = NewShoe(t.Rules.Decks)
	t.counter.Reset(t.Rules.Decks)
}

// draw takes the next card from the shoe and feeds it to the count tracker.
// The reshuffle floor makes exhaustion rare, but a long round (splits, runs
// of small cards) can outdraw it; the shoe then behaves as a continuous one,
// extended with a fresh shuffled deck so the round always finishes. The
// depleted shoe is rebuilt at settlement as usual.
func (t *Table) draw() Card {
	card, ok := t.shoe.Draw()
	if !ok {
		t.shoe.Extend(1)
		card, _ = t.shoe.Draw()
	}
	t.counter.Observe(card)
	return card
}

// PlaceSideBet adds to the pending side wager, withdrawing the chips
// immediately. One pooled amount rides on every eligible side bet.
func (t *Table) PlaceSideBet(amount int) bool {
	if t.Phase != PhaseBetting || amount <= 0 || amount > t.Bankroll {
		return false
	}
	t.Bankroll -= amount
	t.SideBet += amount
	t.UpdatedAt = time.Now()
	return true
}

// ClearSideBet refunds the pending side wager.
func (t *Table) ClearSideBet() bool {
	if t.Phase != PhaseBetting || t.SideBet == 0 {
		return false
	}
	t.Bankroll += t.SideBet
	t.SideBet = 0
	t.UpdatedAt = time.Now()
	return true
}

// Deal starts a round. The draw order is a contract: player card, dealer
// upcard, player card, dealer hole card. The hole card is the fourth card
// out of the shoe, and all four feed the count.
//
// If the shoe is below the reshuffle depth, no round starts: the shoe is
// rebuilt, the count reset, and the caller must deal again.
func (t *Table) Deal(bet int) bool {
	if t.Phase != PhaseBetting || bet <= 0 || bet > t.Bankroll {
		return false
	}
	if t.Rules.MaxBet > 0 && bet > t.Rules.MaxBet {
		return false
	}
	// Below the table minimum is only allowed as an all-in.
	if t.Rules.MinBet > 0 && bet < t.Rules.MinBet && bet != t.Bankroll {
		return false
	}
	if t.shoe.NeedsReshuffle(t.Rules.ReshuffleAt) {
		t.rebuildShoe()
		t.UpdatedAt = time.Now()
		return false
	}

	t.Bankroll -= bet
	t.BetAmount = bet
	t.LastBet = bet
	t.staked = bet + t.SideBet

	p1 := t.draw()
	up := t.draw()
	p2 := t.draw()
	hole := t.draw()

	hand := &Hand{ID: uuid.New().String(), Cards: []Card{p1, p2}, Bet: bet}
	t.Hands = []*Hand{hand}
	t.Active = 0
	t.Dealer = []Card{up, hole}

	if hand.Score().Blackjack {
		// Skip player decisions entirely; the dealer still resolves so a
		// dealer blackjack can push.
		t.Phase = PhaseDealer
	} else {
		t.Phase = PhasePlayer
	}

	// Deal-time side bets are judged now, against the initial cards, and
	// paid at settlement.
	t.dealtSideBets = EvaluateSideBets(t.SideBet, t.Rules, hand.Cards, t.Dealer, t.Phase)

	t.UpdatedAt = time.Now()
	return true
}

// activeHand returns the hand under the cursor, or nil outside player phase.
func (t *Table) activeHand() *Hand {
	if t.Phase != PhasePlayer || t.Active < 0 || t.Active >= len(t.Hands) {
		return nil
	}
	return t.Hands[t.Active]
}

// advance moves the cursor to the next unfinished hand, or hands control to
// the dealer when none remain.
func (t *Table) advance() {
	for i := t.Active + 1; i < len(t.Hands); i++ {
		if !t.Hands[i].Done {
			t.Active = i
			return
		}
	}
	t.Phase = PhaseDealer
}

// Hit draws one card into the active hand. A bust finishes the hand and
// advances play.
func (t *Table) Hit() bool {
	h := t.activeHand()
	if h == nil {
		return false
	}
	h.Cards = append(h.Cards, t.draw())
	if h.Score().Bust {
		h.Done = true
		t.advance()
	}
	t.UpdatedAt = time.Now()
	return true
}

// Stand finishes the active hand and advances play.
func (t *Table) Stand() bool {
	h := t.activeHand()
	if h == nil {
		return false
	}
	h.Done = true
	t.advance()
	t.UpdatedAt = time.Now()
	return true
}

// DoubleDown doubles the active hand's bet, draws exactly one card, and
// stands. Only legal on an untouched two-card hand with funds to match.
func (t *Table) DoubleDown() bool {
	h := t.activeHand()
	if h == nil || len(h.Cards) != 2 || h.Doubled || t.Bankroll < h.Bet {
		return false
	}
	t.Bankroll -= h.Bet
	t.staked += h.Bet
	h.Bet *= 2
	h.Doubled = true
	h.Cards = append(h.Cards, t.draw())
	h.Done = true
	t.advance()
	t.UpdatedAt = time.Now()
	return true
}

// Split replaces a two-card pair with two hands, each keeping one of the
// original cards plus a fresh card, at the same bet. The first new hand
// stays active; play does not auto-advance.
func (t *Table) Split() bool {
	h := t.activeHand()
	if h == nil || len(h.Cards) != 2 || h.Cards[0].Rank != h.Cards[1].Rank || t.Bankroll < h.Bet {
		return false
	}
	t.Bankroll -= h.Bet
	t.staked += h.Bet

	first := &Hand{ID: uuid.New().String(), Cards: []Card{h.Cards[0], t.draw()}, Bet: h.Bet}
	second := &Hand{ID: uuid.New().String(), Cards: []Card{h.Cards[1], t.draw()}, Bet: h.Bet}

	hands := make([]*Hand, 0, len(t.Hands)+1)
	hands = append(hands, t.Hands[:t.Active]...)
	hands = append(hands, first, second)
	hands = append(hands, t.Hands[t.Active+1:]...)
	t.Hands = hands

	t.UpdatedAt = time.Now()
	return true
}

// Surrender gives up the active two-card hand; half the bet is forfeited at
// settlement.
func (t *Table) Surrender() bool {
	h := t.activeHand()
	if h == nil || len(h.Cards) != 2 {
		return false
	}
	h.Surrendered = true
	h.Done = true
	t.advance()
	t.UpdatedAt = time.Now()
	return true
}

// Insurance places an insurance stake of half the active hand's bet. Only
// offered while the dealer shows an ace. The hand stays live; callers
// conventionally stand right after, since insurance is offered once.
func (t *Table) Insurance() bool {
	h := t.activeHand()
	if h == nil || h.Insured {
		return false
	}
	if len(t.Dealer) == 0 || t.Dealer[0].Rank != Ace {
		return false
	}
	stake := h.Bet / 2
	if stake <= 0 || t.Bankroll < stake {
		return false
	}
	t.Bankroll -= stake
	t.staked += stake
	h.Insured = true
	h.InsuranceStake = stake
	t.UpdatedAt = time.Now()
	return true
}

// ResolveDealer plays out the dealer hand: draw below 17, stand on every 17
// or better, unless the table rules say the dealer hits soft 17. The host
// calls this whenever it is ready to advance; there are no internal timers,
// and the outcome is identical however long the host waits.
func (t *Table) ResolveDealer() bool {
	if t.Phase != PhaseDealer {
		return false
	}
	for {
		s := ScoreHand(t.Dealer)
		if s.Total < 17 {
			t.Dealer = append(t.Dealer, t.draw())
			continue
		}
		if s.Total == 17 && s.Soft && t.Rules.DealerSoft17 == Soft17Hit {
			t.Dealer = append(t.Dealer, t.draw())
			continue
		}
		break
	}
	t.Phase = PhasePayout
	t.UpdatedAt = time.Now()
	return true
}

// DealerUpcard returns the dealer's visible card, if a round is in flight.
func (t *Table) DealerUpcard() *Card {
	if len(t.Dealer) == 0 {
		return nil
	}
	up := t.Dealer[0]
	return &up
}

// HoleCardRevealed reports whether snapshots may show the dealer's second
// card.
func (t *Table) HoleCardRevealed() bool {
	return t.Phase == PhaseDealer || t.Phase == PhasePayout
}

// Staked returns the total withdrawn for the round in flight.
func (t *Table) Staked() int {
	return t.staked
}

// ShoeRemaining returns the number of cards left in the shoe.
func (t *Table) ShoeRemaining() int {
	return t.shoe.Remaining()
}

// Count returns the current card-count snapshot.
func (t *Table) Count() CountSnapshot {
	return t.counter.Snapshot()
}

// StackShoe replaces the shoe contents with a fixed card order. Test hook:
// rounds dealt from a stacked shoe are fully reproducible.
func (t *Table) StackShoe(cards []Card) {
	t.shoe = &Shoe{Cards: append([]Card(nil), cards...), decks: t.Rules.Decks}
	t.counter.Reset(t.Rules.Decks)
}
