package pricing

import (
	"testing"

	"shortlet/internal/domain/shared/money"
)

func TestBreakdownComposesFeesOverBase(t *testing.T) {
	calc := NewCalculator(DefaultFeeSchedule())
	got, err := calc.Breakdown(money.Must(20000, "NGN"), 4)
	if err != nil {
		t.Fatalf("Breakdown: %v", err)
	}
	if got.Base.Amount != 80000 {
		t.Fatalf("base = %d, want 80000", got.Base.Amount)
	}
	if got.Cleaning.Amount != 5000 || got.Service.Amount != 15000 || got.Taxes.Amount != 210 {
		t.Fatalf("fees = %d/%d/%d, want 5000/15000/210", got.Cleaning.Amount, got.Service.Amount, got.Taxes.Amount)
	}
	if got.Total.Amount != 100210 {
		t.Fatalf("total = %d, want 100210", got.Total.Amount)
	}
	if got.Total.Currency != "NGN" {
		t.Fatalf("total currency = %q, want NGN", got.Total.Currency)
	}
	if !got.Priced() {
		t.Fatal("a 4-night stay must report as priced")
	}
}

func TestBreakdownZeroNightsIsUnpriced(t *testing.T) {
	calc := NewCalculator(DefaultFeeSchedule())
	for _, nights := range []int{0, -1} {
		got, err := calc.Breakdown(money.Must(20000, "NGN"), nights)
		if err != nil {
			t.Fatalf("Breakdown(%d): %v", nights, err)
		}
		if got.Priced() {
			t.Fatalf("nights=%d must be unpriced", nights)
		}
		for name, m := range map[string]money.Money{
			"base": got.Base, "cleaning": got.Cleaning, "service": got.Service,
			"taxes": got.Taxes, "total": got.Total,
		} {
			if !m.IsZero() {
				t.Fatalf("nights=%d: %s = %d, want 0", nights, name, m.Amount)
			}
			if m.Currency != "NGN" {
				t.Fatalf("nights=%d: %s currency = %q, want NGN", nights, name, m.Currency)
			}
		}
	}
}

func TestBreakdownIdempotent(t *testing.T) {
	calc := NewCalculator(DefaultFeeSchedule())
	first, err := calc.Breakdown(money.Must(12345, "NGN"), 3)
	if err != nil {
		t.Fatalf("Breakdown: %v", err)
	}
	second, err := calc.Breakdown(money.Must(12345, "NGN"), 3)
	if err != nil {
		t.Fatalf("Breakdown: %v", err)
	}
	if first != second {
		t.Fatalf("identical inputs diverged: %+v vs %+v", first, second)
	}
}

func TestBreakdownMonotonicInNights(t *testing.T) {
	calc := NewCalculator(DefaultFeeSchedule())
	prev := int64(-1)
	for nights := 0; nights <= 30; nights++ {
		got, err := calc.Breakdown(money.Must(7000, "NGN"), nights)
		if err != nil {
			t.Fatalf("Breakdown(%d): %v", nights, err)
		}
		if got.Total.Amount < prev {
			t.Fatalf("total decreased at %d nights: %d < %d", nights, got.Total.Amount, prev)
		}
		prev = got.Total.Amount
	}
}

func TestBreakdownRejectsNegativeRate(t *testing.T) {
	calc := NewCalculator(DefaultFeeSchedule())
	if _, err := calc.Breakdown(money.Money{Amount: -1, Currency: "NGN"}, 2); err != ErrNegativeRate {
		t.Fatalf("err = %v, want ErrNegativeRate", err)
	}
	if _, err := calc.Breakdown(money.Money{Amount: 100}, 2); err != ErrCurrencyUnset {
		t.Fatalf("err = %v, want ErrCurrencyUnset", err)
	}
}

func TestFeeScheduleFallbackKeepsRawConstants(t *testing.T) {
	schedule := DefaultFeeSchedule()
	usd := schedule.For("USD")
	if usd.Cleaning.Amount != DefaultCleaningFee || usd.Cleaning.Currency != "USD" {
		t.Fatalf("fallback cleaning = %+v", usd.Cleaning)
	}

	override := NewFeeSchedule(map[string]FeeLines{
		"USD": {
			Cleaning: money.Must(700, "USD"),
			Service:  money.Must(1500, "USD"),
			Taxes:    money.Must(99, "USD"),
		},
	})
	calc := NewCalculator(override)
	got, err := calc.Breakdown(money.Must(10000, "USD"), 2)
	if err != nil {
		t.Fatalf("Breakdown: %v", err)
	}
	if got.Total.Amount != 20000+700+1500+99 {
		t.Fatalf("total with override = %d, want %d", got.Total.Amount, 20000+700+1500+99)
	}
}
