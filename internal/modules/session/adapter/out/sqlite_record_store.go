package out

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"

	"studylog/internal/modules/session/domain"
	sessionout "studylog/internal/modules/session/port/out"

	_ "modernc.org/sqlite"
)

type SQLiteRecordStore struct {
	db  *sql.DB
	log hclog.Logger
}

func NewSQLiteRecordStore(dbPath string, log hclog.Logger) (*SQLiteRecordStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	store := &SQLiteRecordStore{db: db, log: log.Named("sqlite")}
	if err := store.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

var _ sessionout.RecordStore = (*SQLiteRecordStore)(nil)

func (s *SQLiteRecordStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS session_records (
  position INTEGER PRIMARY KEY,
  payload TEXT NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create session_records table: %w", err)
	}
	return nil
}

// LoadAll returns the stored records in write order. Numbers are decoded as
// json.Number so epoch milliseconds keep full precision. Rows whose payload is
// not a JSON object are logged and skipped; only query and scan failures are
// returned.
func (s *SQLiteRecordStore) LoadAll(ctx context.Context) ([]domain.RawRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT position, payload FROM session_records ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query session records: %w", err)
	}
	defer rows.Close()

	var records []domain.RawRecord
	for rows.Next() {
		var position int64
		var payload string
		if err := rows.Scan(&position, &payload); err != nil {
			return nil, fmt.Errorf("scan session record: %w", err)
		}
		record, err := decodeRecord(payload)
		if err != nil {
			s.log.Warn("skipping unreadable session record", "position", position, "error", err)
			continue
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate session records: %w", err)
	}
	return records, nil
}

func decodeRecord(payload string) (domain.RawRecord, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(payload)))
	dec.UseNumber()
	var record domain.RawRecord
	if err := dec.Decode(&record); err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("payload is null")
	}
	return record, nil
}

// SaveAll clears the table and writes records in one transaction.
func (s *SQLiteRecordStore) SaveAll(ctx context.Context, records []domain.RawRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM session_records`); err != nil {
		return fmt.Errorf("clear session records: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO session_records (position, payload) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()
	for i, record := range records {
		payload, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("encode session record %d: %w", i, err)
		}
		if _, err := stmt.ExecContext(ctx, i, string(payload)); err != nil {
			return fmt.Errorf("insert session record %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

func (s *SQLiteRecordStore) Close() error {
	return s.db.Close()
}
