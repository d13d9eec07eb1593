package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	appoutbox "shortlet/internal/app/outbox"
)

var ErrWorkerNotConfigured = errors.New("outbox: worker missing dependencies")

// Producer is the publishing side of the worker; Kafka in deployments,
// a log-only publisher when no brokers are configured.
type Producer interface {
	Publish(ctx context.Context, topic string, key string, payload []byte, headers map[string]string) error
}

// Store is what the worker drains. The memory store implements it; a durable
// store only needs the same claim/ack protocol.
type Store interface {
	Claim(ctx context.Context, now time.Time) (*appoutbox.EventRecord, int, error)
	MarkSent(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string, retryAt time.Time, reason string) error
}

// Worker polls the outbox and publishes each record as a CloudEvents-style
// JSON envelope, retrying failures with the configured backoff.
type Worker struct {
	Store       Store
	Producer    Producer
	Interval    time.Duration
	TopicPrefix string
	Source      string
	Backoff     []time.Duration
	Logger      *slog.Logger
}

func (w *Worker) Run(ctx context.Context) error {
	if w.Store == nil || w.Producer == nil {
		return ErrWorkerNotConfigured
	}
	ticker := time.NewTicker(w.interval())
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.drain(ctx)
		}
	}
}

func (w *Worker) drain(ctx context.Context) {
	for {
		processed, err := w.processOnce(ctx)
		if err != nil {
			if w.Logger != nil {
				w.Logger.Error("outbox drain failed", "error", err)
			}
			return
		}
		if !processed {
			return
		}
	}
}

func (w *Worker) processOnce(ctx context.Context) (bool, error) {
	rec, attempts, err := w.Store.Claim(ctx, time.Now())
	if err != nil || rec == nil {
		return false, err
	}
	payload, headers, err := w.envelope(rec)
	if err != nil {
		_ = w.Store.MarkFailed(ctx, rec.ID, w.nextRetry(attempts), err.Error())
		return true, nil
	}
	if err := w.Producer.Publish(ctx, w.topicFor(rec.Name), rec.Aggregate, payload, headers); err != nil {
		_ = w.Store.MarkFailed(ctx, rec.ID, w.nextRetry(attempts), err.Error())
		return true, nil
	}
	return true, w.Store.MarkSent(ctx, rec.ID)
}

func (w *Worker) envelope(rec *appoutbox.EventRecord) ([]byte, map[string]string, error) {
	data := map[string]any{}
	if err := json.Unmarshal(rec.Payload, &data); err != nil {
		return nil, nil, err
	}
	evt := map[string]any{
		"specversion":     "1.0",
		"id":              uuid.NewString(),
		"type":            rec.Name + ".v1",
		"source":          w.source(),
		"time":            rec.OccurredAt,
		"datacontenttype": "application/json",
		"data":            data,
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		return nil, nil, err
	}
	headers := map[string]string{
		"content-type": "application/cloudevents+json",
	}
	for k, v := range rec.Headers {
		headers[k] = v
	}
	return payload, headers, nil
}

func (w *Worker) topicFor(name string) string {
	base := name
	if idx := strings.IndexRune(name, '.'); idx > 0 {
		base = name[:idx]
	}
	topic := base + ".events.v1"
	if w.TopicPrefix != "" {
		topic = w.TopicPrefix + topic
	}
	return topic
}

func (w *Worker) interval() time.Duration {
	if w.Interval <= 0 {
		return 500 * time.Millisecond
	}
	return w.Interval
}

func (w *Worker) nextRetry(attempts int) time.Time {
	if attempts < len(w.Backoff) {
		return time.Now().Add(w.Backoff[attempts])
	}
	if len(w.Backoff) > 0 {
		return time.Now().Add(w.Backoff[len(w.Backoff)-1])
	}
	return time.Now().Add(5 * time.Second)
}

func (w *Worker) source() string {
	if w.Source != "" {
		return w.Source
	}
	return "app://shortlet"
}

// LogProducer publishes to the log only; the fallback when Kafka is not
// configured so local runs still show the event flow.
type LogProducer struct {
	Logger *slog.Logger
}

func (p LogProducer) Publish(ctx context.Context, topic string, key string, payload []byte, headers map[string]string) error {
	if p.Logger != nil {
		p.Logger.Info("event published", "topic", topic, "key", key, "payload", string(payload))
	}
	return nil
}
