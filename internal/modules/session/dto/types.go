package dto

type SessionOutput struct {
	ID         string
	StartAt    int64
	EndAt      int64
	DurationMs int64
	Topic      string
	Notes      string
	Tags       []string
}

// CreateInput carries a finished stopwatch interval.
type CreateInput struct {
	StartAt int64
	EndAt   int64
	Topic   string
	Notes   string
	Tags    []string
}

// AddInput and EditInput take start and end as local "YYYY-MM-DDTHH:mm" strings,
// exactly as the user typed them. An edit that leaves Start or End empty keeps
// StartAt or EndAt, in epoch milliseconds, instead.
type AddInput struct {
	Start string
	End   string
	Topic string
	Notes string
	Tags  []string
}

type EditInput struct {
	ID      string
	Start   string
	End     string
	StartAt int64
	EndAt   int64
	Topic   string
	Notes   string
	Tags    []string
}

type LoadOutput struct {
	Loaded   int
	Migrated int
}

type ExportOutput struct {
	FileName string
	Data     []byte
	Count    int
}
