package fx

import (
	"context"
	"log/slog"
	"time"

	"shortlet/internal/domain/currency"
)

// Refresher periodically fetches a fresh table and swaps it into the
// converter in one atomic publish. A failed fetch logs and keeps the
// previous snapshot; in-flight conversions are never exposed to a partial
// table.
type Refresher struct {
	Client    *Client
	Converter *currency.Converter
	Interval  time.Duration
	Logger    *slog.Logger
}

func (r *Refresher) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval())
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			r.refreshOnce(ctx)
		}
	}
}

func (r *Refresher) refreshOnce(ctx context.Context) {
	table, err := r.Client.Fetch(ctx)
	if err != nil {
		if r.Logger != nil {
			r.Logger.Warn("fx refresh failed, keeping previous snapshot", "error", err)
		}
		return
	}
	r.Converter.Swap(table)
	if r.Logger != nil {
		r.Logger.Info("fx snapshot refreshed", "base", table.Base(), "currencies", len(table.Codes()), "fetched_at", table.FetchedAt())
	}
}

func (r *Refresher) interval() time.Duration {
	if r.Interval <= 0 {
		return 15 * time.Minute
	}
	return r.Interval
}
