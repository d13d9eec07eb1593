package booking

import (
	"context"
	"errors"
	"time"

	"shortlet/internal/domain/listings"
	"shortlet/internal/domain/pricing"
	"shortlet/internal/domain/shared/daterange"
	"shortlet/internal/domain/shared/events"
	"shortlet/internal/domain/shared/money"
)

var (
	ErrInvalidGuests     = errors.New("booking: guests count must be between 1 and 10")
	ErrInvalidTransition = errors.New("booking: invalid state transition")
	ErrBookingNotFound   = errors.New("booking: not found")
	ErrConcurrentUpdate  = errors.New("booking: concurrent update detected")
	ErrCheckInInPast     = errors.New("booking: check-in date is in the past")
	ErrUnpriceableStay   = errors.New("booking: stay has no nights to price")
)

// MaxGuests mirrors the guest-count bound enforced by the booking form.
const MaxGuests = 10

type BookingID string

// Booking ties a stay request to a listing, its quoted price and a lifecycle
// status. Bookings are never hard-deleted; cancellation is a status change.
// Version backs the optimistic compare-and-swap in the repositories.
type Booking struct {
	ID           BookingID
	ListingID    listings.ListingID
	GuestID      string
	Range        daterange.DateRange
	Guests       int
	Price        pricing.PriceBreakdown
	DisplayTotal money.Money
	Status       Status
	CancelReason string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Version      int64
	events.EventRecorder
}

type Repository interface {
	ByID(ctx context.Context, id BookingID) (*Booking, error)
	Save(ctx context.Context, booking *Booking) error
	ListByGuest(ctx context.Context, guestID string) ([]*Booking, error)
}

type CreateParams struct {
	ID           BookingID
	ListingID    listings.ListingID
	GuestID      string
	Range        daterange.DateRange
	Guests       int
	Price        pricing.PriceBreakdown
	DisplayTotal money.Money
	CreatedAt    time.Time
}

// ValidateCheckIn rejects stays starting before today (UTC calendar days).
func ValidateCheckIn(dr daterange.DateRange, now time.Time) error {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if dr.CheckIn.Before(today) {
		return ErrCheckInInPast
	}
	return nil
}

// NewBooking validates the stay request boundary and opens the lifecycle at
// pending, recording BookingRequested.
func NewBooking(params CreateParams) (*Booking, error) {
	if params.Guests < 1 || params.Guests > MaxGuests {
		return nil, ErrInvalidGuests
	}
	if params.GuestID == "" {
		return nil, errors.New("booking: guest id required")
	}
	if !params.Price.Priced() {
		return nil, ErrUnpriceableStay
	}
	now := params.CreatedAt.UTC()
	b := &Booking{
		ID:           params.ID,
		ListingID:    params.ListingID,
		GuestID:      params.GuestID,
		Range:        params.Range,
		Guests:       params.Guests,
		Price:        params.Price,
		DisplayTotal: params.DisplayTotal,
		Status:       StatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	b.Record(BookingRequested{
		BookingID:   b.ID,
		ListingID:   b.ListingID,
		GuestID:     b.GuestID,
		Range:       b.Range,
		GuestsCount: b.Guests,
		QuotedTotal: b.Price.Total,
		At:          now,
	})
	return b, nil
}

// Confirm moves pending to confirmed (host action).
func (b *Booking) Confirm(now time.Time) error {
	if !CanApply(b.Status, ActionConfirm) {
		return ErrInvalidTransition
	}
	b.Status = StatusConfirmed
	b.UpdatedAt = now.UTC()
	b.Record(BookingConfirmed{BookingID: b.ID, ListingID: b.ListingID, Total: b.Price.Total, At: b.UpdatedAt})
	return nil
}

// Cancel moves pending or confirmed to the terminal cancelled state.
func (b *Booking) Cancel(reason string, now time.Time) error {
	if !CanApply(b.Status, ActionCancel) {
		return ErrInvalidTransition
	}
	b.Status = StatusCancelled
	b.CancelReason = reason
	b.UpdatedAt = now.UTC()
	b.Record(BookingCancelled{BookingID: b.ID, ListingID: b.ListingID, Reason: reason, At: b.UpdatedAt})
	return nil
}

// Apply dispatches a named action, keeping the HTTP layer free of
// transition logic.
func (b *Booking) Apply(action Action, reason string, now time.Time) error {
	switch action {
	case ActionConfirm:
		return b.Confirm(now)
	case ActionCancel:
		return b.Cancel(reason, now)
	default:
		return ErrInvalidTransition
	}
}
