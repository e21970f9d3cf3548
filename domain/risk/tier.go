// Package risk converts a positive-class probability into the displayed
// score and discrete risk tier.
package risk

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Tier is the discrete risk bucket shown to the user.
type Tier string

const (
	TierLow      Tier = "LOW"
	TierModerate Tier = "MODERATE"
	TierHigh     Tier = "HIGH"
)

// Fixed, non-configurable tier boundaries (percent, closed lower bound).
const (
	HighThreshold     = 70.0
	ModerateThreshold = 40.0
)

// Assessment is the result of scoring one incident. Derived per request,
// rendered, then discarded; never persisted.
type Assessment struct {
	ID           uuid.UUID `json:"id"`
	Score        float64   `json:"probability_percent"` // 0–100, 2 decimals
	Tier         Tier      `json:"tier"`
	PositiveProb float64   `json:"positive_prob"`
	NegativeProb float64   `json:"negative_prob"`
	EvaluatedAt  time.Time `json:"evaluated_at"`
}

// ScoreFromProbability converts a positive-class probability in [0,1]
// to a percentage rounded to two decimal places.
func ScoreFromProbability(pPos float64) float64 {
	return math.Round(pPos*10000) / 100
}

// TierFor buckets a percentage score. Exhaustive over [0,100]:
// >=70 HIGH, >=40 MODERATE, otherwise LOW.
func TierFor(score float64) Tier {
	switch {
	case score >= HighThreshold:
		return TierHigh
	case score >= ModerateThreshold:
		return TierModerate
	default:
		return TierLow
	}
}

// NewAssessment assembles an assessment from a classifier probability pair.
func NewAssessment(pNeg, pPos float64) Assessment {
	score := ScoreFromProbability(pPos)
	return Assessment{
		ID:           uuid.New(),
		Score:        score,
		Tier:         TierFor(score),
		PositiveProb: pPos,
		NegativeProb: pNeg,
		EvaluatedAt:  time.Now().UTC(),
	}
}
