package dto

import sessiondto "studylog/internal/modules/session/dto"

type StatusOutput struct {
	Status    string
	ElapsedMs int64
}

type StopInput struct {
	Topic string
	Notes string
	Tags  []string
}

// StopOutput reports the session a stop created. Recorded is false when the
// stopwatch had no elapsed time.
type StopOutput struct {
	Recorded bool
	Session  sessiondto.SessionOutput
}
