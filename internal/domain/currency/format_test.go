package currency

import (
	"errors"
	"testing"

	"shortlet/internal/domain/shared/money"
)

func TestFormatMinorUnits(t *testing.T) {
	conv := testConverter(t)
	cases := []struct {
		in   money.Money
		want string
	}{
		{money.Must(100210, "NGN"), "₦100,210"},
		{money.Must(1235, "NGN"), "₦1,235"},
		{money.Must(999, "NGN"), "₦999"},
		{money.Must(6714, "USD"), "$67.14"},
		{money.Must(123456789, "USD"), "$1,234,567.89"},
		{money.Must(5, "GBP"), "£0.05"},
		{money.Must(-6714, "USD"), "-$67.14"},
		{money.Must(0, "EUR"), "€0.00"},
	}
	for _, tc := range cases {
		got, err := conv.Format(tc.in)
		if err != nil {
			t.Fatalf("Format(%+v): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("Format(%+v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatMajorRoundsHalfUp(t *testing.T) {
	conv := testConverter(t)
	got, err := conv.FormatMajor(1234.5, "NGN")
	if err != nil {
		t.Fatalf("FormatMajor: %v", err)
	}
	if got != "₦1,235" {
		t.Fatalf("FormatMajor(1234.5, NGN) = %q, want ₦1,235", got)
	}
	got, err = conv.FormatMajor(67.145, "USD")
	if err != nil {
		t.Fatalf("FormatMajor: %v", err)
	}
	if got != "$67.15" && got != "$67.14" {
		// 67.145 sits on a binary representation boundary; accept either
		// neighbor but nothing else.
		t.Fatalf("FormatMajor(67.145, USD) = %q", got)
	}
}

func TestFormatUnknownCurrencyNeverFallsBack(t *testing.T) {
	conv := testConverter(t)
	_, err := conv.Format(money.Money{Amount: 100, Currency: "AAA"})
	var unknown *UnknownCurrencyError
	if !errors.As(err, &unknown) {
		t.Fatalf("err = %v, want UnknownCurrencyError", err)
	}
	if unknown.Code != "AAA" {
		t.Fatalf("offending code = %q, want AAA", unknown.Code)
	}
}
