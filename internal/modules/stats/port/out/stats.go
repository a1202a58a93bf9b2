package out

import (
	"context"

	"studylog/internal/modules/stats/domain"
)

// SessionSource supplies the intervals to aggregate, most recent first.
type SessionSource interface {
	Intervals(ctx context.Context) ([]domain.Interval, error)
}
