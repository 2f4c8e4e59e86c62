// Package session tracks one upload batch: every file's status, the case read
// from it and the affidavits generated for it.
package session

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"gpcaffidavit/internal/domain"
)

// Item is the state of one uploaded file.
type Item struct {
	Index      int                         `json:"index"`
	FileName   string                      `json:"fileName"`
	Status     domain.FileStatus           `json:"status"`
	Error      string                      `json:"error,omitempty"`
	Case       *domain.ExtractedCase       `json:"case,omitempty"`
	Affidavits []domain.GeneratedAffidavit `json:"affidavits,omitempty"`
}

// Counts summarises a session.
type Counts struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Failed    int `json:"failed"`
	Pending   int `json:"pending"`
}

// Session holds the items of one batch in upload order.
type Session struct {
	ID uuid.UUID

	mu    sync.Mutex
	items []*Item
}

// New creates an empty session.
func New() *Session {
	return &Session{ID: uuid.New()}
}

// Add queues a file and returns its index.
func (s *Session) Add(fileName string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := len(s.items)
	s.items = append(s.items, &Item{Index: idx, FileName: fileName, Status: domain.FileStatusQueued})
	return idx
}

// Transition moves item i to next, rejecting moves the state machine forbids.
func (s *Session) Transition(i int, next domain.FileStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, err := s.item(i)
	if err != nil {
		return err
	}
	return transition(item, next)
}

// SetCase records the case extracted for item i.
func (s *Session) SetCase(i int, c *domain.ExtractedCase) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, err := s.item(i)
	if err != nil {
		return err
	}
	if c == nil {
		return fmt.Errorf("session: no case extracted for %s", item.FileName)
	}
	item.Case = c
	return nil
}

// Complete marks item i completed with its affidavits.
func (s *Session) Complete(i int, affidavits []domain.GeneratedAffidavit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, err := s.item(i)
	if err != nil {
		return err
	}
	if err := transition(item, domain.FileStatusCompleted); err != nil {
		return err
	}
	item.Affidavits = affidavits
	return nil
}

// Fail marks item i as errored. A failed item never carries affidavits.
func (s *Session) Fail(i int, cause error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, err := s.item(i)
	if err != nil {
		return err
	}
	if err := transition(item, domain.FileStatusError); err != nil {
		return err
	}
	if cause != nil {
		item.Error = cause.Error()
	}
	item.Affidavits = nil
	return nil
}

// Items returns a snapshot of every item in upload order.
func (s *Session) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Item, len(s.items))
	for i, item := range s.items {
		out[i] = *item
	}
	return out
}

// Affidavits returns every generated affidavit in upload order.
func (s *Session) Affidavits() []domain.GeneratedAffidavit {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.GeneratedAffidavit
	for _, item := range s.items {
		out = append(out, item.Affidavits...)
	}
	return out
}

// Counts returns the per-status totals.
func (s *Session) Counts() Counts {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := Counts{Total: len(s.items)}
	for _, item := range s.items {
		switch item.Status {
		case domain.FileStatusCompleted:
			c.Completed++
		case domain.FileStatusError:
			c.Failed++
		default:
			c.Pending++
		}
	}
	return c
}

// Progress is the fraction of items in a terminal state.
func (s *Session) Progress() float64 {
	c := s.Counts()
	if c.Total == 0 {
		return 0
	}
	return float64(c.Completed+c.Failed) / float64(c.Total)
}

// Reset drops every item and the generated documents they hold. A batch
// calls it once its result has been snapshotted.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.items {
		item.Affidavits = nil
		item.Case = nil
	}
	s.items = nil
	s.ID = uuid.New()
}

func (s *Session) item(i int) (*Item, error) {
	if i < 0 || i >= len(s.items) {
		return nil, fmt.Errorf("session: no item %d", i)
	}
	return s.items[i], nil
}

func transition(item *Item, next domain.FileStatus) error {
	if !item.Status.CanTransition(next) {
		return fmt.Errorf("%w: %s -> %s for %s", domain.ErrInvalidTransition, item.Status, next, item.FileName)
	}
	item.Status = next
	return nil
}
