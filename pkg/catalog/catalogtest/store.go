// Package catalogtest provides an in-memory catalog.Store for tests.
package catalogtest

import (
	"context"
	"sync"
	"time"

	"tobacco-catalog-be/internal/entity"
	"tobacco-catalog-be/internal/pkg/apperror"
)

type Store struct {
	mu      sync.Mutex
	nextID  int64
	entries []*entity.Tobacco

	// Err, when set, is returned by every call.
	Err error

	Creates int
	Updates int
	Deletes int
}

func NewStore(names ...string) *Store {
	s := &Store{}
	for _, name := range names {
		_ = s.Create(context.Background(), &entity.Tobacco{Name: name})
	}
	s.Creates = 0
	return s
}

func (s *Store) Create(_ context.Context, tobacco *entity.Tobacco) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if s.find(tobacco.Name) >= 0 {
		return apperror.DuplicateName(tobacco.Name)
	}
	s.nextID++
	stored := *tobacco
	stored.Id = s.nextID
	stored.CreatedAt = time.Now()
	s.entries = append(s.entries, &stored)
	*tobacco = stored
	s.Creates++
	return nil
}

func (s *Store) GetByName(_ context.Context, name string) (*entity.Tobacco, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	i := s.find(name)
	if i < 0 {
		return nil, apperror.NotFound(name)
	}
	copied := *s.entries[i]
	return &copied, nil
}

func (s *Store) ListNames(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	names := make([]string, 0, len(s.entries))
	for _, e := range s.entries {
		names = append(names, e.Name)
	}
	return names, nil
}

func (s *Store) Update(_ context.Context, name string, patch entity.TobaccoPatch) (*entity.Tobacco, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	i := s.find(name)
	if i < 0 {
		return nil, apperror.NotFound(name)
	}
	if patch.Name != nil && *patch.Name != name && s.find(*patch.Name) >= 0 {
		return nil, apperror.DuplicateName(*patch.Name)
	}

	e := s.entries[i]
	if patch.Name != nil {
		e.Name = *patch.Name
	}
	if patch.Taste != nil {
		e.Taste = *patch.Taste
	}
	if patch.Molasses != nil {
		e.Molasses = *patch.Molasses
	}
	if patch.SmokeTime != nil {
		e.SmokeTime = *patch.SmokeTime
	}
	if patch.HeatResistance != nil {
		e.HeatResistance = *patch.HeatResistance
	}
	if patch.Comment != nil {
		e.Comment = *patch.Comment
	}
	now := time.Now()
	e.UpdatedAt = &now
	s.Updates++

	copied := *e
	return &copied, nil
}

func (s *Store) Delete(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	i := s.find(name)
	if i < 0 {
		return apperror.NotFound(name)
	}
	s.entries = append(s.entries[:i], s.entries[i+1:]...)
	s.Deletes++
	return nil
}

// Len reports how many entries are stored.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *Store) find(name string) int {
	for i, e := range s.entries {
		if e.Name == name {
			return i
		}
	}
	return -1
}
