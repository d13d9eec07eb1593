package memory

import (
	"context"
	"sync"
	"time"

	appoutbox "shortlet/internal/app/outbox"
)

type outboxEntry struct {
	record    appoutbox.EventRecord
	attempts  int
	notBefore time.Time
	claimed   bool
}

// OutboxStore queues event records until the worker drains them. Claimed
// entries stay invisible until marked sent or failed, so a crashed publish
// attempt is retried rather than lost.
type OutboxStore struct {
	mu      sync.Mutex
	entries []*outboxEntry
}

func NewOutboxStore() *OutboxStore {
	return &OutboxStore{}
}

func (s *OutboxStore) Add(ctx context.Context, record appoutbox.EventRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, &outboxEntry{record: record})
	return nil
}

// Claim hands out the oldest publishable record along with its attempt
// count, or nil when nothing is due.
func (s *OutboxStore) Claim(ctx context.Context, now time.Time) (*appoutbox.EventRecord, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.entries {
		if e.claimed || now.Before(e.notBefore) {
			continue
		}
		e.claimed = true
		rec := e.record
		return &rec, e.attempts, nil
	}
	return nil, 0, nil
}

func (s *OutboxStore) MarkSent(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.entries {
		if e.record.ID == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *OutboxStore) MarkFailed(ctx context.Context, id string, retryAt time.Time, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.entries {
		if e.record.ID == id {
			e.claimed = false
			e.attempts++
			e.notBefore = retryAt
			if e.record.Headers == nil {
				e.record.Headers = map[string]string{}
			}
			e.record.Headers["last-error"] = reason
			return nil
		}
	}
	return nil
}

// Pending reports how many records await publication.
func (s *OutboxStore) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

var _ appoutbox.Outbox = (*OutboxStore)(nil)
