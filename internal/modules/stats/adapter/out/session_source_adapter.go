package out

import (
	"context"

	sessionin "studylog/internal/modules/session/port/in"
	"studylog/internal/modules/stats/domain"
	statsout "studylog/internal/modules/stats/port/out"
)

type SessionSourceAdapter struct {
	sessions sessionin.Usecase
}

func NewSessionSourceAdapter(sessions sessionin.Usecase) statsout.SessionSource {
	return &SessionSourceAdapter{sessions: sessions}
}

func (a *SessionSourceAdapter) Intervals(ctx context.Context) ([]domain.Interval, error) {
	sessions, err := a.sessions.List(ctx)
	if err != nil {
		return nil, err
	}
	intervals := make([]domain.Interval, 0, len(sessions))
	for _, session := range sessions {
		intervals = append(intervals, domain.Interval{
			ID:      session.ID,
			StartAt: session.StartAt,
			EndAt:   session.EndAt,
			Tags:    session.Tags,
		})
	}
	return intervals, nil
}
