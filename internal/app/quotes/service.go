package quotes

import (
	"context"
	"time"

	"shortlet/internal/domain/booking"
	"shortlet/internal/domain/currency"
	"shortlet/internal/domain/listings"
	"shortlet/internal/domain/pricing"
	"shortlet/internal/domain/shared/daterange"
	"shortlet/internal/domain/shared/money"
)

// Request is the stay request as it arrives from the booking form.
type Request struct {
	ListingID       string
	CheckIn         time.Time
	CheckOut        time.Time
	Guests          int
	DisplayCurrency string
}

// Quote carries the breakdown in the listing's native currency plus the
// total mapped into the guest's display currency. Priced is false for an
// empty or inverted range; everything else is zero then and the UI renders
// "select dates to see pricing".
type Quote struct {
	ListingID        string
	Nights           int
	Priced           bool
	Breakdown        pricing.PriceBreakdown
	DisplayTotal     money.Money
	DisplayFormatted string
}

// Service composes the stay-duration, breakdown and conversion steps in
// their required order: nights first, then the breakdown, then the display
// conversion.
type Service struct {
	Listings   listings.Repository
	Calculator *pricing.Calculator
	Converter  *currency.Converter
}

// Quote prices a stay. Zero nights is a valid, unpriced outcome, not an
// error; unknown currencies and out-of-range guest counts fail fast.
func (s *Service) Quote(ctx context.Context, req Request) (Quote, error) {
	if req.Guests < 1 || req.Guests > booking.MaxGuests {
		return Quote{}, booking.ErrInvalidGuests
	}
	listing, err := s.Listings.ByID(ctx, listings.ListingID(req.ListingID))
	if err != nil {
		return Quote{}, err
	}

	nights := daterange.Nights(req.CheckIn, req.CheckOut)
	breakdown, err := s.Calculator.Breakdown(listing.NightlyRate, nights)
	if err != nil {
		return Quote{}, err
	}

	display := money.NormalizeCode(req.DisplayCurrency)
	if display == "" {
		display = listing.NightlyRate.Currency
	}
	displayTotal, err := s.Converter.Convert(breakdown.Total, display)
	if err != nil {
		return Quote{}, err
	}
	formatted, err := s.Converter.Format(displayTotal)
	if err != nil {
		return Quote{}, err
	}

	return Quote{
		ListingID:        string(listing.ID),
		Nights:           nights,
		Priced:           breakdown.Priced(),
		Breakdown:        breakdown,
		DisplayTotal:     displayTotal,
		DisplayFormatted: formatted,
	}, nil
}
