package domain

import (
	"fmt"

	apperrors "studylog/internal/platform/errors"
)

// TierCount is the number of heatmap tiers, tier 0 meaning no activity.
const TierCount = 10

// Tiers maps seconds studied to a heatmap tier through fixed thresholds:
// tier n (n >= 1) starts at thresholds[n-1] seconds.
type Tiers struct {
	thresholds [TierCount - 1]int64
}

func NewTiers(thresholds []int64) (Tiers, error) {
	if len(thresholds) != TierCount-1 {
		return Tiers{}, fmt.Errorf("%w: need %d tier thresholds, got %d", apperrors.ErrInvalidInput, TierCount-1, len(thresholds))
	}
	t := Tiers{}
	for i, threshold := range thresholds {
		if threshold <= 0 || (i > 0 && threshold <= thresholds[i-1]) {
			return Tiers{}, fmt.Errorf("%w: tier thresholds must be positive and strictly ascending", apperrors.ErrInvalidInput)
		}
		t.thresholds[i] = threshold
	}
	return t, nil
}

// Tier is monotonic in seconds and 0 for anything not positive.
func (t Tiers) Tier(seconds int64) int {
	if seconds <= 0 {
		return 0
	}
	tier := 0
	for i, threshold := range t.thresholds {
		if seconds >= threshold {
			tier = i + 1
		}
	}
	return tier
}
