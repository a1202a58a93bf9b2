package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"studylog/internal/modules/timer/domain"
	timerout "studylog/internal/modules/timer/port/out"
)

// FileStopwatchStore keeps the stopwatch in a small JSON file. An idle
// stopwatch is stored by removing the file.
type FileStopwatchStore struct {
	path string
}

func NewFileStopwatchStore(path string) timerout.StopwatchStore {
	return &FileStopwatchStore{path: path}
}

func (s *FileStopwatchStore) Save(_ context.Context, stopwatch domain.Stopwatch) error {
	if stopwatch.Status == domain.StatusIdle || stopwatch.Status == "" {
		if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("clear stopwatch: %w", err)
		}
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create stopwatch dir: %w", err)
	}
	payload, err := json.MarshalIndent(stopwatch, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal stopwatch: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return fmt.Errorf("write stopwatch: %w", err)
	}
	return os.Rename(tmp, s.path)
}

func (s *FileStopwatchStore) Load(_ context.Context) (domain.Stopwatch, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Idle(), nil
		}
		return domain.Stopwatch{}, fmt.Errorf("read stopwatch: %w", err)
	}
	stopwatch := domain.Stopwatch{}
	if err := json.Unmarshal(payload, &stopwatch); err != nil {
		return domain.Stopwatch{}, fmt.Errorf("decode stopwatch: %w", err)
	}
	switch stopwatch.Status {
	case domain.StatusRunning, domain.StatusPaused:
		return stopwatch, nil
	default:
		return domain.Idle(), nil
	}
}

// MemoryStopwatchStore holds the stopwatch for a single process.
type MemoryStopwatchStore struct {
	stopwatch domain.Stopwatch
}

func NewMemoryStopwatchStore() *MemoryStopwatchStore {
	return &MemoryStopwatchStore{stopwatch: domain.Idle()}
}

func (s *MemoryStopwatchStore) Save(_ context.Context, stopwatch domain.Stopwatch) error {
	s.stopwatch = stopwatch
	return nil
}

func (s *MemoryStopwatchStore) Load(_ context.Context) (domain.Stopwatch, error) {
	return s.stopwatch, nil
}
