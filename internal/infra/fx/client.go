package fx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"shortlet/internal/domain/currency"
)

// Client fetches rate snapshots from an HTTP JSON feed shaped like the
// common exchange-rate APIs: {"base": "NGN", "rates": {"USD": 0.00067},
// "timestamp": 1725000000}. It is only ever called by the refresher, never
// from inside a conversion.
type Client struct {
	HTTP     *http.Client
	Endpoint string
	Infos    map[string]currency.Info
}

type feedResponse struct {
	Base      string             `json:"base"`
	Rates     map[string]float64 `json:"rates"`
	Timestamp int64              `json:"timestamp"`
}

// Fetch pulls the feed and freezes it into an immutable table.
func (c *Client) Fetch(ctx context.Context) (*currency.Table, error) {
	if c == nil || c.HTTP == nil {
		return nil, errors.New("fx: http client not configured")
	}
	if c.Endpoint == "" {
		return nil, errors.New("fx: feed endpoint not configured")
	}
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Endpoint, nil)
	if err != nil {
		return nil, err
	}
	request.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(request)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("fx: feed returned status %d: %s", resp.StatusCode, string(snippet))
	}

	var feed feedResponse
	if err := json.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, err
	}
	if len(feed.Rates) == 0 {
		return nil, errors.New("fx: feed returned no rates")
	}

	fetchedAt := time.Now().UTC()
	if feed.Timestamp > 0 {
		fetchedAt = time.Unix(feed.Timestamp, 0).UTC()
	}
	infos := c.Infos
	if infos == nil {
		infos = currency.DefaultInfos()
	}
	return currency.NewTable(feed.Base, feed.Rates, infos, fetchedAt)
}
