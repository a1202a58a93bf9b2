package domain

type Status string

const (
	StatusIdle    Status = "idle"
	StatusRunning Status = "running"
	StatusPaused  Status = "paused"
)

// Stopwatch is the persisted stopwatch value. StartAt is zero unless running.
type Stopwatch struct {
	Status        Status `json:"status"`
	StartAt       int64  `json:"startAt"`
	ElapsedOffset int64  `json:"elapsedOffset"`
}

// Draft is the interval a stop produced, before topic and tags are attached.
type Draft struct {
	StartAt    int64
	EndAt      int64
	DurationMs int64
}

func Idle() Stopwatch {
	return Stopwatch{Status: StatusIdle}
}

func (s Stopwatch) Start(now int64) Stopwatch {
	if s.status() != StatusIdle {
		return s
	}
	return Stopwatch{Status: StatusRunning, StartAt: now}
}

func (s Stopwatch) Pause(now int64) Stopwatch {
	if s.status() != StatusRunning {
		return s
	}
	return Stopwatch{Status: StatusPaused, ElapsedOffset: s.Elapsed(now)}
}

func (s Stopwatch) Resume(now int64) Stopwatch {
	if s.status() != StatusPaused {
		return s
	}
	return Stopwatch{Status: StatusRunning, StartAt: now, ElapsedOffset: s.ElapsedOffset}
}

// Stop always resets to idle. A stopwatch with nothing on it yields no draft.
func (s Stopwatch) Stop(now int64) (Stopwatch, *Draft) {
	elapsed := s.Elapsed(now)
	if elapsed <= 0 {
		return Idle(), nil
	}
	return Idle(), &Draft{StartAt: now - elapsed, EndAt: now, DurationMs: elapsed}
}

// Elapsed is the accumulated active time at now, never negative.
func (s Stopwatch) Elapsed(now int64) int64 {
	elapsed := s.ElapsedOffset
	if s.status() == StatusRunning {
		elapsed += now - s.StartAt
	}
	return max(elapsed, 0)
}

func (s Stopwatch) status() Status {
	if s.Status == "" {
		return StatusIdle
	}
	return s.Status
}
