package app

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"studyprep-api/internal/model"
)

type memoryNoteStore struct {
	mu     sync.Mutex
	nextID uint
	notes  []model.Note
	err    error
}

func (s *memoryNoteStore) Create(_ context.Context, note *model.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.nextID++
	note.ID = s.nextID
	s.notes = append(s.notes, *note)
	return nil
}

func (s *memoryNoteStore) ListByOwner(_ context.Context, owner string) ([]model.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Note
	for _, n := range s.notes {
		if n.Owner == owner {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

type memoryCareerStore struct {
	mu      sync.Mutex
	nextID  uint
	reports []model.CareerReport
}

func (s *memoryCareerStore) Create(_ context.Context, report *model.CareerReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	report.ID = s.nextID
	s.reports = append(s.reports, *report)
	return nil
}

func (s *memoryCareerStore) ListByOwner(_ context.Context, owner string) ([]model.CareerReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.CareerReport
	for _, r := range s.reports {
		if r.Owner == owner {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []model.RecordEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event model.RecordEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

var errStoreDown = errors.New("store down")

// steppingClock returns a clock that advances one second per call.
func steppingClock() func() time.Time {
	t := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}
