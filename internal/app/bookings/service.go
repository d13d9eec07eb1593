package bookings

import (
	"context"
	"time"

	"github.com/google/uuid"

	"shortlet/internal/app/outbox"
	"shortlet/internal/app/quotes"
	"shortlet/internal/domain/booking"
	"shortlet/internal/domain/listings"
	"shortlet/internal/domain/shared/daterange"
)

// CreateRequest is a stay request bound to the guest making it.
type CreateRequest struct {
	quotes.Request
	GuestID string
}

// Service owns the booking lifecycle: create from a quoted stay, apply
// confirm/cancel transitions, read back with the allowed-action gate.
// Status mutation goes through the aggregate; the repository enforces the
// version compare-and-swap.
type Service struct {
	Bookings booking.Repository
	Quotes   *quotes.Service
	Outbox   outbox.Outbox
	Encoder  outbox.EventEncoder
	NewID    func() string
	Now      func() time.Time
}

// Request creates a pending booking from a stay request. Unlike quoting,
// booking is strict: the range must be valid, in the future and priceable.
func (s *Service) Request(ctx context.Context, req CreateRequest) (*booking.Booking, error) {
	dr, err := daterange.New(req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if err := booking.ValidateCheckIn(dr, now); err != nil {
		return nil, err
	}

	quote, err := s.Quotes.Quote(ctx, req.Request)
	if err != nil {
		return nil, err
	}
	if !quote.Priced {
		return nil, booking.ErrUnpriceableStay
	}

	b, err := booking.NewBooking(booking.CreateParams{
		ID:           booking.BookingID(s.newID()),
		ListingID:    listings.ListingID(req.ListingID),
		GuestID:      req.GuestID,
		Range:        dr,
		Guests:       req.Guests,
		Price:        quote.Breakdown,
		DisplayTotal: quote.DisplayTotal,
		CreatedAt:    now,
	})
	if err != nil {
		return nil, err
	}
	return b, s.persist(ctx, b)
}

// ApplyAction loads a booking and applies a named transition, persisting
// with the optimistic version check.
func (s *Service) ApplyAction(ctx context.Context, id string, action booking.Action, reason string) (*booking.Booking, error) {
	b, err := s.Bookings.ByID(ctx, booking.BookingID(id))
	if err != nil {
		return nil, err
	}
	if err := b.Apply(action, reason, s.now()); err != nil {
		return nil, err
	}
	return b, s.persist(ctx, b)
}

// Get returns a booking together with the actions its status permits.
func (s *Service) Get(ctx context.Context, id string) (*booking.Booking, []booking.Action, error) {
	b, err := s.Bookings.ByID(ctx, booking.BookingID(id))
	if err != nil {
		return nil, nil, err
	}
	return b, booking.AllowedActions(b.Status), nil
}

// ListByGuest returns all bookings a guest has made.
func (s *Service) ListByGuest(ctx context.Context, guestID string) ([]*booking.Booking, error) {
	return s.Bookings.ListByGuest(ctx, guestID)
}

func (s *Service) persist(ctx context.Context, b *booking.Booking) error {
	if err := s.Bookings.Save(ctx, b); err != nil {
		return err
	}
	pending := b.PendingEvents()
	b.ClearEvents()
	return outbox.RecordDomainEvents(ctx, s.Outbox, s.Encoder, pending)
}

func (s *Service) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}
