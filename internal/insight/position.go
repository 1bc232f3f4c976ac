package insight

import (
	"math"

	"github.com/nhle/dayboard/internal/model"
)

// Tier is the badge awarded for a position score.
type Tier string

// Tiers, lowest first. TierNone shows the numeric score only.
const (
	TierNone   Tier = ""
	TierBronze Tier = "Bronze"
	TierSilver Tier = "Silver"
	TierGold   Tier = "Gold"
)

// Position is the user's standing over the lookback window.
type Position struct {
	Score int
	Tier  Tier
}

// Score is the rounded average of completions per day across days days.
// todos should already be limited to that window.
func Score(todos []model.Todo, days int) int {
	days = max(1, days)
	done := 0
	for _, t := range todos {
		if t.Done() {
			done++
		}
	}
	return int(math.Round(float64(done) / float64(days)))
}

// TierFor maps a score to its tier.
func TierFor(score int) Tier {
	switch {
	case score >= 20:
		return TierGold
	case score >= 10:
		return TierSilver
	case score >= 5:
		return TierBronze
	default:
		return TierNone
	}
}

// PositionFor combines Score and TierFor.
func PositionFor(todos []model.Todo, days int) Position {
	score := Score(todos, days)
	return Position{Score: score, Tier: TierFor(score)}
}
