package out

import (
	"context"

	"studylog/internal/modules/session/domain"
)

// RecordStore persists the full session collection. SaveAll replaces whatever
// was stored before.
type RecordStore interface {
	LoadAll(ctx context.Context) ([]domain.RawRecord, error)
	SaveAll(ctx context.Context, records []domain.RawRecord) error
}

// LegacyStore reads the flat key-value store written by older versions.
type LegacyStore interface {
	Read(ctx context.Context) ([]domain.RawRecord, bool, error)
	Remove(ctx context.Context) error
}
