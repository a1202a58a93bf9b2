package out

import (
	"context"

	sessiondto "studylog/internal/modules/session/dto"
	sessionin "studylog/internal/modules/session/port/in"
	"studylog/internal/modules/timer/domain"
	timerout "studylog/internal/modules/timer/port/out"
)

type SessionRecorderAdapter struct {
	sessions sessionin.Usecase
}

func NewSessionRecorderAdapter(sessions sessionin.Usecase) timerout.SessionRecorder {
	return &SessionRecorderAdapter{sessions: sessions}
}

func (a *SessionRecorderAdapter) Record(ctx context.Context, draft domain.Draft, topic, notes string, tags []string) (sessiondto.SessionOutput, error) {
	return a.sessions.Create(ctx, sessiondto.CreateInput{
		StartAt: draft.StartAt,
		EndAt:   draft.EndAt,
		Topic:   topic,
		Notes:   notes,
		Tags:    tags,
	})
}
