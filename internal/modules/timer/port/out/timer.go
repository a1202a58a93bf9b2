package out

import (
	"context"

	sessiondto "studylog/internal/modules/session/dto"
	"studylog/internal/modules/timer/domain"
)

type StopwatchStore interface {
	Load(ctx context.Context) (domain.Stopwatch, error)
	Save(ctx context.Context, stopwatch domain.Stopwatch) error
}

// SessionRecorder turns a stopped interval into a persisted session.
type SessionRecorder interface {
	Record(ctx context.Context, draft domain.Draft, topic, notes string, tags []string) (sessiondto.SessionOutput, error)
}

type Notifier interface {
	Notify(title, message string) error
}
