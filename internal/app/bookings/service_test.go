package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"shortlet/internal/app/quotes"
	"shortlet/internal/domain/booking"
	"shortlet/internal/domain/currency"
	"shortlet/internal/domain/listings"
	"shortlet/internal/domain/pricing"
	"shortlet/internal/domain/shared/daterange"
	"shortlet/internal/domain/shared/money"
	"shortlet/internal/infra/storage/memory"
)

var fixedNow = time.Date(2024, 8, 20, 10, 0, 0, 0, time.UTC)

func testService(t *testing.T) (*Service, *memory.OutboxStore) {
	t.Helper()
	listingRepo := memory.NewListingRepository()
	err := listingRepo.Save(context.Background(), &listings.Listing{
		ID:          "lst-lekki-2br",
		HostID:      "host-ada",
		NightlyRate: money.Must(20000, "NGN"),
		MaxGuests:   4,
		Active:      true,
	})
	if err != nil {
		t.Fatalf("seed listing: %v", err)
	}
	outboxStore := memory.NewOutboxStore()
	svc := &Service{
		Bookings: memory.NewBookingRepository(),
		Quotes: &quotes.Service{
			Listings:   listingRepo,
			Calculator: pricing.NewCalculator(pricing.DefaultFeeSchedule()),
			Converter:  currency.NewConverter(currency.DefaultTable(fixedNow)),
		},
		Outbox: outboxStore,
		Now:    func() time.Time { return fixedNow },
	}
	return svc, outboxStore
}

func validRequest() CreateRequest {
	return CreateRequest{
		Request: quotes.Request{
			ListingID:       "lst-lekki-2br",
			CheckIn:         time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC),
			CheckOut:        time.Date(2024, 9, 5, 0, 0, 0, 0, time.UTC),
			Guests:          2,
			DisplayCurrency: "USD",
		},
		GuestID: "guest-1",
	}
}

func TestRequestCreatesPendingBooking(t *testing.T) {
	svc, outboxStore := testService(t)
	b, err := svc.Request(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("Request: %v", err)
	}
	if b.Status != booking.StatusPending {
		t.Fatalf("status = %s, want pending", b.Status)
	}
	if b.Price.Total.Amount != 100210 {
		t.Fatalf("total = %d, want 100210", b.Price.Total.Amount)
	}
	if b.DisplayTotal.Amount != 6714 || b.DisplayTotal.Currency != "USD" {
		t.Fatalf("display total = %+v", b.DisplayTotal)
	}
	if outboxStore.Pending() != 1 {
		t.Fatalf("outbox pending = %d, want 1 (booking.requested)", outboxStore.Pending())
	}

	loaded, actions, err := svc.Get(context.Background(), string(b.ID))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if loaded.GuestID != "guest-1" {
		t.Fatalf("guest = %q", loaded.GuestID)
	}
	if len(actions) != 2 {
		t.Fatalf("allowed actions = %v, want confirm+cancel", actions)
	}
}

func TestRequestRejectsInvalidStays(t *testing.T) {
	svc, _ := testService(t)

	inverted := validRequest()
	inverted.CheckIn, inverted.CheckOut = inverted.CheckOut, inverted.CheckIn
	if _, err := svc.Request(context.Background(), inverted); !errors.Is(err, daterange.ErrInvalidRange) {
		t.Fatalf("inverted range: err = %v, want ErrInvalidRange", err)
	}

	past := validRequest()
	past.CheckIn = time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC)
	past.CheckOut = time.Date(2024, 8, 5, 0, 0, 0, 0, time.UTC)
	if _, err := svc.Request(context.Background(), past); !errors.Is(err, booking.ErrCheckInInPast) {
		t.Fatalf("past check-in: err = %v, want ErrCheckInInPast", err)
	}
}

func TestConfirmThenCancelFlow(t *testing.T) {
	svc, outboxStore := testService(t)
	b, err := svc.Request(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("Request: %v", err)
	}

	confirmed, err := svc.ApplyAction(context.Background(), string(b.ID), booking.ActionConfirm, "")
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if confirmed.Status != booking.StatusConfirmed {
		t.Fatalf("status = %s, want confirmed", confirmed.Status)
	}

	cancelled, err := svc.ApplyAction(context.Background(), string(b.ID), booking.ActionCancel, "guest cancelled")
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.Status != booking.StatusCancelled || cancelled.CancelReason != "guest cancelled" {
		t.Fatalf("cancel state = %s/%q", cancelled.Status, cancelled.CancelReason)
	}

	if _, err := svc.ApplyAction(context.Background(), string(b.ID), booking.ActionConfirm, ""); !errors.Is(err, booking.ErrInvalidTransition) {
		t.Fatalf("confirm after cancel: err = %v, want ErrInvalidTransition", err)
	}

	// requested + confirmed + cancelled
	if outboxStore.Pending() != 3 {
		t.Fatalf("outbox pending = %d, want 3", outboxStore.Pending())
	}
}

func TestApplyActionUnknownBooking(t *testing.T) {
	svc, _ := testService(t)
	if _, err := svc.ApplyAction(context.Background(), "bkg-missing", booking.ActionConfirm, ""); !errors.Is(err, booking.ErrBookingNotFound) {
		t.Fatalf("err = %v, want ErrBookingNotFound", err)
	}
}

func TestListByGuest(t *testing.T) {
	svc, _ := testService(t)
	if _, err := svc.Request(context.Background(), validRequest()); err != nil {
		t.Fatalf("Request: %v", err)
	}
	other := validRequest()
	other.GuestID = "guest-2"
	if _, err := svc.Request(context.Background(), other); err != nil {
		t.Fatalf("Request: %v", err)
	}
	mine, err := svc.ListByGuest(context.Background(), "guest-1")
	if err != nil {
		t.Fatalf("ListByGuest: %v", err)
	}
	if len(mine) != 1 || mine[0].GuestID != "guest-1" {
		t.Fatalf("ListByGuest = %v", mine)
	}
}
