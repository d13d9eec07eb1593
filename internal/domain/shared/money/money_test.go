package money

import "testing"

func TestNewNormalizesCurrency(t *testing.T) {
	m, err := New(100, " ngn ")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if m.Currency != "NGN" {
		t.Fatalf("Currency = %q, want NGN", m.Currency)
	}
}

func TestNewRejectsBadCodes(t *testing.T) {
	for _, code := range []string{"", "NG", "NGNX", "N1N", "€£$"} {
		if _, err := New(1, code); err != ErrInvalidCurrency {
			t.Fatalf("New(1, %q): err = %v, want ErrInvalidCurrency", code, err)
		}
	}
}

func TestArithmeticGuardsCurrency(t *testing.T) {
	ngn := Must(100, "NGN")
	usd := Must(100, "USD")
	if _, err := ngn.Add(usd); err != ErrCurrencyMismatch {
		t.Fatalf("Add across currencies: err = %v, want ErrCurrencyMismatch", err)
	}
	sum, err := ngn.Add(Must(50, "NGN"))
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if sum.Amount != 150 {
		t.Fatalf("Add = %d, want 150", sum.Amount)
	}
	diff, err := sum.Sub(Must(150, "NGN"))
	if err != nil {
		t.Fatalf("Sub: %v", err)
	}
	if !diff.IsZero() {
		t.Fatalf("Sub to zero failed: %+v", diff)
	}
	if got := ngn.Multiply(4); got.Amount != 400 || got.Currency != "NGN" {
		t.Fatalf("Multiply = %+v", got)
	}
	if got := ngn.Neg(); got.Amount != -100 {
		t.Fatalf("Neg = %+v", got)
	}
}
