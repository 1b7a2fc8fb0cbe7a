package game

// Score is the evaluation of a hand under ace-flexible blackjack rules.
type Score struct {
	// Total is the best total: aces start at 11 and are demoted to 1 one at
	// a time while the total exceeds 21.
	Total int `json:"total"`
	// Soft is true while at least one ace is still counted as 11.
	Soft bool `json:"soft"`
	// Blackjack is a two-card 21.
	Blackjack bool `json:"blackjack"`
	// Bust means the total exceeds 21 after every possible ace demotion.
	Bust bool `json:"bust"`
	// Hard is the total with every ace counted as 1. Informational only; it
	// never changes settlement.
	Hard int `json:"hard"`
}

// ScoreHand computes the score of a hand, accounting for aces.
func ScoreHand(cards []Card) Score {
	total := 0
	aces := 0
	for _, c := range cards {
		if c.Rank == Ace {
			aces++
		}
		total += c.Value()
	}

	hard := total - 10*aces

	// Demote aces from 11 to 1 until the hand is no longer over 21.
	for aces > 0 && total > 21 {
		total -= 10
		aces--
	}

	return Score{
		Total:     total,
		Soft:      aces > 0,
		Blackjack: len(cards) == 2 && total == 21,
		Bust:      total > 21,
		Hard:      hard,
	}
}
