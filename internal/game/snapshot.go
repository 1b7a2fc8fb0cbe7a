package game

// Snapshot returns the table state as rendered for clients. The dealer's
// hole card stays face down until the dealer phase begins; only the upcard
// and its value are visible before that.
func (t *Table) Snapshot() map[string]interface{} {
	snapshot := map[string]interface{}{
		"id":        t.ID,
		"name":      t.Name,
		"rules":     t.Rules.Name,
		"phase":     t.Phase,
		"bankroll":  t.Bankroll,
		"betAmount": t.BetAmount,
		"sideBet":   t.SideBet,
		"lastBet":   t.LastBet,
		"active":    t.Active,
		"shoe":      t.ShoeRemaining(),
		"count":     t.Count(),
	}

	hands := make([]map[string]interface{}, len(t.Hands))
	for i, h := range t.Hands {
		hands[i] = map[string]interface{}{
			"id":          h.ID,
			"cards":       h.Cards,
			"bet":         h.Bet,
			"score":       h.Score(),
			"doubled":     h.Doubled,
			"surrendered": h.Surrendered,
			"insured":     h.Insured,
			"done":        h.Done,
		}
	}
	snapshot["hands"] = hands

	dealer := map[string]interface{}{}
	if len(t.Dealer) > 0 {
		if t.HoleCardRevealed() {
			dealer["cards"] = t.Dealer
			dealer["score"] = ScoreHand(t.Dealer)
		} else {
			up := t.Dealer[0]
			dealer["cards"] = []Card{up}
			dealer["holeCardHidden"] = true
			dealer["upcardValue"] = up.Value()
		}
	}
	snapshot["dealer"] = dealer

	return snapshot
}
