package currency

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"shortlet/internal/domain/shared/money"
)

var (
	ErrInvalidRate = errors.New("currency: rates must be positive")
	ErrNoBase      = errors.New("currency: base currency missing from table")
)

// UnknownCurrencyError names the code that has no rate or formatting rule.
// It is always surfaced; there is no silent fallback symbol.
type UnknownCurrencyError struct {
	Code string
}

func (e *UnknownCurrencyError) Error() string {
	return fmt.Sprintf("currency: unknown currency code %q", e.Code)
}

// Info carries the per-currency rendering and scale rules. Exponent is the
// number of minor-unit digits the currency is quoted with (NGN 0, USD 2).
type Info struct {
	Symbol   string
	Exponent int
}

// Table is an immutable exchange-rate snapshot. Rates are expressed as units
// of the quoted currency per one unit of the base, the convention of the
// common HTTP rate feeds, so rate(from, to) = rates[to] / rates[from].
// A Table is never mutated after construction; refreshing rates means
// building a whole new Table and swapping it into the Converter.
type Table struct {
	base      string
	rates     map[string]float64
	infos     map[string]Info
	fetchedAt time.Time
}

// NewTable validates and freezes a snapshot. Codes are normalized, the base
// rate is forced to 1 and every listed currency must have a formatting rule.
func NewTable(base string, rates map[string]float64, infos map[string]Info, fetchedAt time.Time) (*Table, error) {
	baseCode := money.NormalizeCode(base)
	if baseCode == "" {
		return nil, ErrNoBase
	}
	frozen := make(map[string]float64, len(rates)+1)
	for code, rate := range rates {
		normalized := money.NormalizeCode(code)
		if normalized == "" {
			return nil, fmt.Errorf("currency: malformed code %q in rate table", code)
		}
		if rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
			return nil, fmt.Errorf("%w: %s=%v", ErrInvalidRate, normalized, rate)
		}
		frozen[normalized] = rate
	}
	frozen[baseCode] = 1
	frozenInfos := make(map[string]Info, len(infos))
	for code, info := range infos {
		normalized := money.NormalizeCode(code)
		if normalized == "" {
			return nil, fmt.Errorf("currency: malformed code %q in info table", code)
		}
		frozenInfos[normalized] = info
	}
	for code := range frozen {
		if _, ok := frozenInfos[code]; !ok {
			return nil, fmt.Errorf("currency: no formatting rule for %s", code)
		}
	}
	return &Table{base: baseCode, rates: frozen, infos: frozenInfos, fetchedAt: fetchedAt.UTC()}, nil
}

func (t *Table) Base() string { return t.base }

func (t *Table) FetchedAt() time.Time { return t.fetchedAt }

// Rate returns the multiplier mapping major units of from to major units of to.
func (t *Table) Rate(from, to string) (float64, error) {
	fromRate, ok := t.rates[money.NormalizeCode(from)]
	if !ok {
		return 0, &UnknownCurrencyError{Code: from}
	}
	toRate, ok := t.rates[money.NormalizeCode(to)]
	if !ok {
		return 0, &UnknownCurrencyError{Code: to}
	}
	return toRate / fromRate, nil
}

// Info returns the formatting rule for a code.
func (t *Table) Info(code string) (Info, error) {
	info, ok := t.infos[money.NormalizeCode(code)]
	if !ok {
		return Info{}, &UnknownCurrencyError{Code: code}
	}
	return info, nil
}

// Codes lists the currencies present in the snapshot, sorted.
func (t *Table) Codes() []string {
	out := make([]string, 0, len(t.rates))
	for code := range t.rates {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

// RatesCopy exposes a defensive copy for read-side endpoints.
func (t *Table) RatesCopy() map[string]float64 {
	out := make(map[string]float64, len(t.rates))
	for code, rate := range t.rates {
		out[code] = rate
	}
	return out
}

// DefaultInfos covers the currencies the marketplace quotes in.
func DefaultInfos() map[string]Info {
	return map[string]Info{
		"NGN": {Symbol: "₦", Exponent: 0},
		"USD": {Symbol: "$", Exponent: 2},
		"GBP": {Symbol: "£", Exponent: 2},
		"EUR": {Symbol: "€", Exponent: 2},
	}
}

// DefaultTable is the static seed used until (or instead of) a live feed.
func DefaultTable(now time.Time) *Table {
	t, err := NewTable("NGN", map[string]float64{
		"NGN": 1,
		"USD": 0.00067,
		"GBP": 0.00053,
		"EUR": 0.00062,
	}, DefaultInfos(), now)
	if err != nil {
		panic(err)
	}
	return t
}
