package currency

import (
	"math"
	"sync/atomic"

	"shortlet/internal/domain/shared/money"
)

// Converter resolves conversions against the current rate snapshot. The
// snapshot sits behind a single atomic pointer: readers take whatever table
// is current without locking, and a refresh is one full-table swap, so an
// in-flight conversion sees either the old table or the new one, never a mix.
type Converter struct {
	table atomic.Pointer[Table]
}

func NewConverter(t *Table) *Converter {
	c := &Converter{}
	c.table.Store(t)
	return c
}

// Swap publishes a new snapshot. Safe to call concurrently with readers.
func (c *Converter) Swap(t *Table) {
	if t == nil {
		return
	}
	c.table.Store(t)
}

// Table returns the current snapshot.
func (c *Converter) Table() *Table {
	return c.table.Load()
}

// Convert maps a minor-unit amount into the target currency, rounding half
// away from zero at the target's minor-unit precision. Same-currency
// conversion is an identity and never touches the rate table.
func (c *Converter) Convert(m money.Money, to string) (money.Money, error) {
	target := money.NormalizeCode(to)
	if target == "" {
		return money.Money{}, &UnknownCurrencyError{Code: to}
	}
	if m.Currency == target {
		return m, nil
	}
	t := c.Table()
	fromInfo, err := t.Info(m.Currency)
	if err != nil {
		return money.Money{}, err
	}
	toInfo, err := t.Info(target)
	if err != nil {
		return money.Money{}, err
	}
	rate, err := t.Rate(m.Currency, target)
	if err != nil {
		return money.Money{}, err
	}
	major := float64(m.Amount) / pow10(fromInfo.Exponent)
	converted := major * rate
	return money.Money{Amount: Round(converted * pow10(toInfo.Exponent)), Currency: target}, nil
}

// ConvertMajor is the decimal form of Convert for callers working in major
// units; it carries no rounding so that A→B→A round-trips within float error.
func (c *Converter) ConvertMajor(amount float64, from, to string) (float64, error) {
	if money.NormalizeCode(from) == money.NormalizeCode(to) {
		return amount, nil
	}
	rate, err := c.Table().Rate(from, to)
	if err != nil {
		return 0, err
	}
	return amount * rate, nil
}

// Round rounds half away from zero, the documented rounding mode for both
// conversion and formatting.
func Round(v float64) int64 {
	if v >= 0 {
		return int64(math.Floor(v + 0.5))
	}
	return int64(math.Ceil(v - 0.5))
}

func pow10(exp int) float64 {
	out := 1.0
	for i := 0; i < exp; i++ {
		out *= 10
	}
	return out
}
