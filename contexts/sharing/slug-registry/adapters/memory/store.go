package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"beastypage/contexts/sharing/slug-registry/domain/entities"
	domainerrors "beastypage/contexts/sharing/slug-registry/domain/errors"
	"beastypage/contexts/sharing/slug-registry/ports"

	"github.com/google/uuid"
)

// Store is the in-memory share store used by tests and local development.
// The slug index is checked and written under one lock, which gives it the
// same guarantee as a unique index.
type Store struct {
	mu sync.RWMutex

	records   map[string]entities.ShareRecord
	idBySlug  map[string]string
	nowFunc   func() time.Time
	lookups   int
	insertion []string
}

func NewStore() *Store {
	return &Store{
		records:  make(map[string]entities.ShareRecord),
		idBySlug: make(map[string]string),
		nowFunc:  func() time.Time { return time.Now().UTC() },
	}
}

// SetNow pins the store clock.
func (s *Store) SetNow(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nowFunc = func() time.Time { return now.UTC() }
}

func (s *Store) Now() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nowFunc()
}

func (s *Store) InsertShare(_ context.Context, record entities.ShareRecord) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	slug := record.Slug
	if _, exists := s.idBySlug[slug]; exists {
		return "", domainerrors.ErrSlugTaken
	}
	id := uuid.NewString()
	record.ID = id
	record.Slug = slug
	record.Payload = append([]byte(nil), record.Payload...)
	s.records[id] = record
	s.idBySlug[slug] = id
	s.insertion = append(s.insertion, id)
	return id, nil
}

func (s *Store) GetShareBySlug(_ context.Context, slug string) (entities.ShareRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lookups++
	id, ok := s.idBySlug[slug]
	if !ok {
		return entities.ShareRecord{}, false, nil
	}
	return cloneRecord(s.records[id]), true, nil
}

func (s *Store) GetShareByID(_ context.Context, id string) (entities.ShareRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[strings.TrimSpace(id)]
	if !ok {
		return entities.ShareRecord{}, false, nil
	}
	return cloneRecord(record), true, nil
}

// Slugs returns every stored slug in insertion order.
func (s *Store) Slugs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]string, 0, len(s.insertion))
	for _, id := range s.insertion {
		items = append(items, s.records[id].Slug)
	}
	return items
}

// Lookups counts GetShareBySlug calls.
func (s *Store) Lookups() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lookups
}

func cloneRecord(record entities.ShareRecord) entities.ShareRecord {
	record.Payload = append([]byte(nil), record.Payload...)
	return record
}

var _ ports.ShareRepository = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
