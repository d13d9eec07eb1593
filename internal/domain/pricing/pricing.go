package pricing

import (
	"errors"

	"shortlet/internal/domain/shared/money"
)

var (
	ErrCurrencyUnset = errors.New("pricing: currency must be defined")
	ErrNegativeRate  = errors.New("pricing: nightly rate cannot be negative")
)

// Raw fee constants inherited from the marketplace. They carry no currency
// tag of their own: for currencies without an explicit FeeSchedule entry they
// are read in the listing's currency, which is the historical behavior.
// Whether fees should instead always be NGN-denominated is an open product
// question; the schedule exists so the answer is one config entry away.
const (
	DefaultCleaningFee = 5000
	DefaultServiceFee  = 15000
	DefaultTaxes       = 210
)

// FeeLines are the fixed per-booking fee amounts in one currency.
type FeeLines struct {
	Cleaning money.Money
	Service  money.Money
	Taxes    money.Money
}

// FeeSchedule is the named per-currency fee table.
type FeeSchedule struct {
	entries map[string]FeeLines
}

// NewFeeSchedule builds a schedule from explicit per-currency entries.
func NewFeeSchedule(entries map[string]FeeLines) FeeSchedule {
	frozen := make(map[string]FeeLines, len(entries))
	for code, lines := range entries {
		if normalized := money.NormalizeCode(code); normalized != "" {
			frozen[normalized] = lines
		}
	}
	return FeeSchedule{entries: frozen}
}

// DefaultFeeSchedule carries the one entry the marketplace has always used.
func DefaultFeeSchedule() FeeSchedule {
	return NewFeeSchedule(map[string]FeeLines{
		"NGN": {
			Cleaning: money.Must(DefaultCleaningFee, "NGN"),
			Service:  money.Must(DefaultServiceFee, "NGN"),
			Taxes:    money.Must(DefaultTaxes, "NGN"),
		},
	})
}

// For returns the fee lines for a currency, falling back to the raw
// constants denominated in that currency when no explicit entry exists.
func (s FeeSchedule) For(currency string) FeeLines {
	if lines, ok := s.entries[money.NormalizeCode(currency)]; ok {
		return lines
	}
	return FeeLines{
		Cleaning: money.Money{Amount: DefaultCleaningFee, Currency: currency},
		Service:  money.Money{Amount: DefaultServiceFee, Currency: currency},
		Taxes:    money.Money{Amount: DefaultTaxes, Currency: currency},
	}
}

// PriceBreakdown is the itemized decomposition of a stay's cost. A zero
// Nights value marks the defined unpriced state: every component is zero and
// Priced reports false.
type PriceBreakdown struct {
	Nights   int
	Nightly  money.Money
	Base     money.Money
	Cleaning money.Money
	Service  money.Money
	Taxes    money.Money
	Total    money.Money
}

// Priced reports whether the breakdown describes a payable stay.
func (p PriceBreakdown) Priced() bool {
	return p.Nights > 0
}

// Calculator composes nightly rate × nights with the fee schedule. It holds
// no mutable state; identical inputs always yield identical breakdowns.
type Calculator struct {
	Schedule FeeSchedule
}

func NewCalculator(schedule FeeSchedule) *Calculator {
	return &Calculator{Schedule: schedule}
}

// Breakdown prices a stay. nights <= 0 is not an error: it returns the
// all-zero breakdown callers render as "select dates to see pricing".
func (c *Calculator) Breakdown(rate money.Money, nights int) (PriceBreakdown, error) {
	currency := money.NormalizeCode(rate.Currency)
	if currency == "" {
		return PriceBreakdown{}, ErrCurrencyUnset
	}
	if rate.Amount < 0 {
		return PriceBreakdown{}, ErrNegativeRate
	}
	if nights <= 0 {
		zero := money.Zero(currency)
		return PriceBreakdown{
			Nightly:  zero,
			Base:     zero,
			Cleaning: zero,
			Service:  zero,
			Taxes:    zero,
			Total:    zero,
		}, nil
	}
	fees := c.Schedule.For(currency)
	base := rate.Multiply(int64(nights))
	total := base
	for _, line := range []money.Money{fees.Cleaning, fees.Service, fees.Taxes} {
		sum, err := total.Add(line)
		if err != nil {
			return PriceBreakdown{}, err
		}
		total = sum
	}
	return PriceBreakdown{
		Nights:   nights,
		Nightly:  rate,
		Base:     base,
		Cleaning: fees.Cleaning,
		Service:  fees.Service,
		Taxes:    fees.Taxes,
		Total:    total,
	}, nil
}
