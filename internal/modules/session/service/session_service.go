package service

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"

	"studylog/internal/modules/session/domain"
	sessionout "studylog/internal/modules/session/port/out"
	"studylog/internal/platform/clock"
	apperrors "studylog/internal/platform/errors"
	"studylog/internal/platform/id"
	"studylog/internal/platform/timefmt"
)

// SessionService owns the in-memory session collection. The collection is the
// source of truth; the record store mirrors it after every mutation.
type SessionService struct {
	clock  clock.Clock
	idGen  id.Generator
	loc    *time.Location
	store  sessionout.RecordStore
	legacy sessionout.LegacyStore
	log    hclog.Logger

	mu       sync.Mutex
	sessions []domain.Session
	dirty    bool
}

func NewSessionService(clock clock.Clock, idGen id.Generator, loc *time.Location, store sessionout.RecordStore, legacy sessionout.LegacyStore, log hclog.Logger) *SessionService {
	if loc == nil {
		loc = time.Local
	}
	return &SessionService{
		clock:  clock,
		idGen:  idGen,
		loc:    loc,
		store:  store,
		legacy: legacy,
		log:    log.Named("sessions"),
	}
}

// Load reads and normalizes the stored collection, migrating the legacy store
// when the primary one is empty. Storage failures are logged and leave the
// collection empty.
func (s *SessionService) Load(ctx context.Context) (loaded, migrated int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := clock.Millis(s.clock)
	raws, err := s.store.LoadAll(ctx)
	if err != nil {
		s.log.Error("load sessions failed, starting empty", "error", err)
		s.sessions = nil
		return 0, 0
	}
	if len(raws) == 0 {
		migrated = s.migrateLegacy(ctx, now)
		return migrated, migrated
	}
	s.sessions = domain.NormalizeAll(raws, now, s.loc, s.idGen)
	s.log.Debug("sessions loaded", "count", len(s.sessions))
	return len(s.sessions), 0
}

func (s *SessionService) migrateLegacy(ctx context.Context, now int64) int {
	s.sessions = nil
	if s.legacy == nil {
		return 0
	}
	raws, ok, err := s.legacy.Read(ctx)
	if err != nil {
		s.log.Warn("read legacy sessions failed", "error", err)
		return 0
	}
	if !ok || len(raws) == 0 {
		return 0
	}
	shapes := map[domain.Shape]int{}
	for _, raw := range raws {
		shapes[raw.Shape()]++
	}
	s.sessions = domain.NormalizeAll(raws, now, s.loc, s.idGen)
	if err := s.store.SaveAll(ctx, records(s.sessions)); err != nil {
		s.dirty = true
		s.log.Error("write migrated sessions failed, legacy store kept", "error", err)
		return len(s.sessions)
	}
	if err := s.legacy.Remove(ctx); err != nil {
		s.log.Warn("remove legacy sessions failed", "error", err)
	}
	s.log.Info("migrated legacy sessions", "count", len(s.sessions), "shapes", fmt.Sprint(shapes))
	return len(s.sessions)
}

// Create records a finished interval as a new session.
func (s *SessionService) Create(ctx context.Context, startAt, endAt int64, topic, notes string, tags []string) (domain.Session, error) {
	session, err := domain.New(s.idGen.New(), startAt, endAt, topic, notes, tags)
	if err != nil {
		return domain.Session{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.insert(session)
	s.persist(ctx)
	return session, nil
}

// Endpoints names each bound of an interval either as local "YYYY-MM-DDTHH:mm"
// text or as epoch milliseconds. Text wins when both are set.
type Endpoints struct {
	Start   string
	End     string
	StartAt int64
	EndAt   int64
}

// Add records a manually entered session. It is validated like an edit.
func (s *SessionService) Add(ctx context.Context, bounds Endpoints, topic, notes string, tags []string) (domain.Session, error) {
	startAt, endAt, err := s.resolve(bounds)
	if err != nil {
		return domain.Session{}, err
	}
	draft := domain.Session{ID: s.idGen.New()}
	session, err := draft.Revise(domain.Revision{Topic: topic, Notes: notes, Tags: tags, StartAt: startAt, EndAt: endAt}, clock.Millis(s.clock))
	if err != nil {
		return domain.Session{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.insert(session)
	s.persist(ctx)
	return session, nil
}

// Edit replaces the editable fields of a session. Nothing changes on error.
func (s *SessionService) Edit(ctx context.Context, id string, bounds Endpoints, topic, notes string, tags []string) (domain.Session, error) {
	startAt, endAt, err := s.resolve(bounds)
	if err != nil {
		return domain.Session{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(id)
	if idx < 0 {
		return domain.Session{}, fmt.Errorf("session %q: %w", id, apperrors.ErrNotFound)
	}
	revised, err := s.sessions[idx].Revise(domain.Revision{Topic: topic, Notes: notes, Tags: tags, StartAt: startAt, EndAt: endAt}, clock.Millis(s.clock))
	if err != nil {
		return domain.Session{}, err
	}
	s.sessions[idx] = revised
	domain.SortRecentFirst(s.sessions)
	s.persist(ctx)
	return revised, nil
}

func (s *SessionService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("session %q: %w", id, apperrors.ErrNotFound)
	}
	s.sessions = slices.Delete(s.sessions, idx, idx+1)
	s.persist(ctx)
	return nil
}

func (s *SessionService) Get(id string) (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(id)
	if idx < 0 {
		return domain.Session{}, fmt.Errorf("session %q: %w", id, apperrors.ErrNotFound)
	}
	return s.sessions[idx], nil
}

// List returns a copy of the collection, most recent first.
func (s *SessionService) List() []domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.sessions)
}

func (s *SessionService) Tags() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.DistinctTags(s.sessions)
}

// Export renders the collection as indented JSON named after today's date.
func (s *SessionService) Export() (string, []byte, int, error) {
	s.mu.Lock()
	sessions := slices.Clone(s.sessions)
	s.mu.Unlock()
	if sessions == nil {
		sessions = []domain.Session{}
	}
	payload, err := json.MarshalIndent(sessions, "", "  ")
	if err != nil {
		return "", nil, 0, fmt.Errorf("marshal export: %w", err)
	}
	name := fmt.Sprintf("study-sessions-%s.json", timefmt.DayKey(clock.Millis(s.clock), s.loc))
	return name, payload, len(sessions), nil
}

// Sync writes the current collection again, reconciling an earlier failed save.
func (s *SessionService) Sync(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.SaveAll(ctx, records(s.sessions)); err != nil {
		s.dirty = true
		return fmt.Errorf("save sessions: %w", err)
	}
	s.dirty = false
	return nil
}

// Dirty reports whether the last save failed.
func (s *SessionService) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

func (s *SessionService) resolve(b Endpoints) (int64, int64, error) {
	startAt, err := s.bound("start", b.Start, b.StartAt)
	if err != nil {
		return 0, 0, err
	}
	endAt, err := s.bound("end", b.End, b.EndAt)
	if err != nil {
		return 0, 0, err
	}
	return startAt, endAt, nil
}

// bound parses typed text at minute precision; untouched bounds keep their
// exact milliseconds.
func (s *SessionService) bound(name, text string, ms int64) (int64, error) {
	if text == "" {
		if ms > 0 {
			return ms, nil
		}
		return 0, fmt.Errorf("%w: %s is required", apperrors.ErrInvalidEdit, name)
	}
	v, err := timefmt.ParseLocalDatetime(text, s.loc)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", apperrors.ErrInvalidEdit, name, err)
	}
	return v, nil
}

// insert and persist expect s.mu to be held.
func (s *SessionService) insert(session domain.Session) {
	s.sessions = append(s.sessions, session)
	domain.SortRecentFirst(s.sessions)
}

// persist mirrors the collection to the store. A failed save is logged and
// the in-memory collection stays authoritative until the next good save.
func (s *SessionService) persist(ctx context.Context) {
	if err := s.store.SaveAll(ctx, records(s.sessions)); err != nil {
		s.dirty = true
		s.log.Error("save sessions failed", "error", err, "count", len(s.sessions))
		return
	}
	s.dirty = false
}

func (s *SessionService) indexOf(id string) int {
	return slices.IndexFunc(s.sessions, func(session domain.Session) bool { return session.ID == id })
}

func records(sessions []domain.Session) []domain.RawRecord {
	out := make([]domain.RawRecord, 0, len(sessions))
	for _, session := range sessions {
		out = append(out, session.Record())
	}
	return out
}
