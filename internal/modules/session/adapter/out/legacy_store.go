package out

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"studylog/internal/modules/session/domain"
	sessionout "studylog/internal/modules/session/port/out"
)

// FileLegacyStore reads a flat key-value JSON file, the layout older versions
// kept their sessions in. The value under key is a JSON-encoded array, either
// embedded directly or as a string.
type FileLegacyStore struct {
	path string
	key  string
}

func NewFileLegacyStore(path, key string) sessionout.LegacyStore {
	return &FileLegacyStore{path: path, key: key}
}

func (s *FileLegacyStore) Read(_ context.Context) ([]domain.RawRecord, bool, error) {
	entries, err := s.readEntries()
	if err != nil || entries == nil {
		return nil, false, err
	}
	raw, ok := entries[s.key]
	if !ok {
		return nil, false, nil
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '"' {
		var encoded string
		if err := json.Unmarshal(raw, &encoded); err != nil {
			return nil, false, fmt.Errorf("decode legacy key %q: %w", s.key, err)
		}
		raw = []byte(encoded)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var records []domain.RawRecord
	if err := dec.Decode(&records); err != nil {
		return nil, false, fmt.Errorf("decode legacy sessions: %w", err)
	}
	return records, true, nil
}

// Remove drops the sessions key, deleting the file once nothing else is left.
func (s *FileLegacyStore) Remove(_ context.Context) error {
	entries, err := s.readEntries()
	if err != nil || entries == nil {
		return err
	}
	delete(entries, s.key)
	if len(entries) == 0 {
		if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove legacy store: %w", err)
		}
		return nil
	}
	payload, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal legacy store: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return fmt.Errorf("write legacy store: %w", err)
	}
	return os.Rename(tmp, s.path)
}

func (s *FileLegacyStore) readEntries() (map[string]json.RawMessage, error) {
	payload, err := os.ReadFile(filepath.Clean(s.path))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read legacy store: %w", err)
	}
	entries := map[string]json.RawMessage{}
	if err := json.Unmarshal(payload, &entries); err != nil {
		return nil, fmt.Errorf("decode legacy store: %w", err)
	}
	return entries, nil
}
