package fx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"shortlet/internal/domain/currency"
	"shortlet/internal/domain/shared/money"
)

const feedBody = `{"base":"NGN","rates":{"USD":0.0005,"GBP":0.0004,"EUR":0.00045},"timestamp":1725100000}`

func TestFetchBuildsTable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(feedBody))
	}))
	defer srv.Close()

	client := &Client{HTTP: srv.Client(), Endpoint: srv.URL}
	table, err := client.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if table.Base() != "NGN" {
		t.Fatalf("base = %q, want NGN", table.Base())
	}
	rate, err := table.Rate("NGN", "USD")
	if err != nil {
		t.Fatalf("Rate: %v", err)
	}
	if rate != 0.0005 {
		t.Fatalf("NGN->USD rate = %v, want 0.0005", rate)
	}
	if !table.FetchedAt().Equal(time.Unix(1725100000, 0).UTC()) {
		t.Fatalf("fetched_at = %v", table.FetchedAt())
	}
}

func TestFetchRejectsErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := &Client{HTTP: srv.Client(), Endpoint: srv.URL}
	if _, err := client.Fetch(context.Background()); err == nil {
		t.Fatal("a 502 feed response must fail the fetch")
	}
}

func TestFetchRejectsEmptyRates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"base":"NGN","rates":{}}`))
	}))
	defer srv.Close()

	client := &Client{HTTP: srv.Client(), Endpoint: srv.URL}
	if _, err := client.Fetch(context.Background()); err == nil {
		t.Fatal("an empty rates map must fail the fetch")
	}
}

func TestRefreshOnceSwapsSnapshot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(feedBody))
	}))
	defer srv.Close()

	conv := currency.NewConverter(currency.DefaultTable(time.Unix(1725000000, 0)))
	r := &Refresher{
		Client:    &Client{HTTP: srv.Client(), Endpoint: srv.URL},
		Converter: conv,
	}
	r.refreshOnce(context.Background())

	out, err := conv.Convert(money.Must(100000, "NGN"), "USD")
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if out.Amount != 5000 {
		t.Fatalf("post-refresh conversion = %d, want 5000", out.Amount)
	}
}

func TestRefreshOnceKeepsSnapshotOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	seed := currency.DefaultTable(time.Unix(1725000000, 0))
	conv := currency.NewConverter(seed)
	r := &Refresher{
		Client:    &Client{HTTP: srv.Client(), Endpoint: srv.URL},
		Converter: conv,
	}
	r.refreshOnce(context.Background())

	if conv.Table() != seed {
		t.Fatal("failed refresh must keep the previous snapshot")
	}
}
