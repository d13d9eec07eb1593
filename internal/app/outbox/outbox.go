package outbox

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"shortlet/internal/domain/shared/events"
)

// EventRecord is the persisted form of a domain event awaiting publication.
type EventRecord struct {
	ID         string
	Name       string
	Aggregate  string
	Payload    []byte
	OccurredAt time.Time
	Headers    map[string]string
}

// Outbox accepts records inside the same operation that mutated state;
// a worker drains it asynchronously.
type Outbox interface {
	Add(ctx context.Context, record EventRecord) error
}

type EventEncoder interface {
	Encode(ev events.DomainEvent) (EventRecord, error)
}

type JSONEventEncoder struct {
	IDGenerator func() string
}

func (e JSONEventEncoder) Encode(ev events.DomainEvent) (EventRecord, error) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return EventRecord{}, err
	}
	idGen := e.IDGenerator
	if idGen == nil {
		idGen = uuid.NewString
	}
	return EventRecord{
		ID:         idGen(),
		Name:       ev.EventName(),
		Aggregate:  ev.AggregateID(),
		Payload:    payload,
		OccurredAt: ev.OccurredAt(),
		Headers:    map[string]string{},
	}, nil
}

// RecordDomainEvents encodes and stores every pending event; callers clear
// the aggregate's recorder afterwards.
func RecordDomainEvents(ctx context.Context, box Outbox, encoder EventEncoder, evs []events.DomainEvent) error {
	if box == nil || len(evs) == 0 {
		return nil
	}
	if encoder == nil {
		encoder = JSONEventEncoder{}
	}
	for _, ev := range evs {
		rec, err := encoder.Encode(ev)
		if err != nil {
			return err
		}
		if err := box.Add(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}
