package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	domainbooking "shortlet/internal/domain/booking"
	"shortlet/internal/domain/pricing"
	"shortlet/internal/domain/shared/daterange"
	"shortlet/internal/domain/shared/money"
)

func seedBooking(t *testing.T, id string, guestID string, createdAt time.Time) *domainbooking.Booking {
	t.Helper()
	dr, err := daterange.New(
		time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 9, 5, 0, 0, 0, 0, time.UTC),
	)
	if err != nil {
		t.Fatalf("daterange.New: %v", err)
	}
	calc := pricing.NewCalculator(pricing.DefaultFeeSchedule())
	breakdown, err := calc.Breakdown(money.Must(20000, "NGN"), dr.Nights())
	if err != nil {
		t.Fatalf("Breakdown: %v", err)
	}
	b, err := domainbooking.NewBooking(domainbooking.CreateParams{
		ID:           domainbooking.BookingID(id),
		ListingID:    "lst-1",
		GuestID:      guestID,
		Range:        dr,
		Guests:       2,
		Price:        breakdown,
		DisplayTotal: breakdown.Total,
		CreatedAt:    createdAt,
	})
	if err != nil {
		t.Fatalf("NewBooking: %v", err)
	}
	b.ClearEvents()
	return b
}

func TestBookingSaveBumpsVersion(t *testing.T) {
	repo := NewBookingRepository()
	b := seedBooking(t, "bkg-1", "guest-1", time.Now())
	if err := repo.Save(context.Background(), b); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if b.Version != 1 {
		t.Fatalf("version after first save = %d, want 1", b.Version)
	}
	if err := repo.Save(context.Background(), b); err != nil {
		t.Fatalf("second Save: %v", err)
	}
	if b.Version != 2 {
		t.Fatalf("version after second save = %d, want 2", b.Version)
	}
}

func TestBookingSaveDetectsStaleVersion(t *testing.T) {
	repo := NewBookingRepository()
	b := seedBooking(t, "bkg-1", "guest-1", time.Now())
	if err := repo.Save(context.Background(), b); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// Two actors load the same version; the second save must lose.
	first, err := repo.ByID(context.Background(), b.ID)
	if err != nil {
		t.Fatalf("ByID: %v", err)
	}
	second, err := repo.ByID(context.Background(), b.ID)
	if err != nil {
		t.Fatalf("ByID: %v", err)
	}
	now := time.Now()
	if err := first.Confirm(now); err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if err := repo.Save(context.Background(), first); err != nil {
		t.Fatalf("save first actor: %v", err)
	}
	if err := second.Cancel("raced", now); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if err := repo.Save(context.Background(), second); !errors.Is(err, domainbooking.ErrConcurrentUpdate) {
		t.Fatalf("stale save: err = %v, want ErrConcurrentUpdate", err)
	}

	stored, err := repo.ByID(context.Background(), b.ID)
	if err != nil {
		t.Fatalf("ByID: %v", err)
	}
	if stored.Status != domainbooking.StatusConfirmed {
		t.Fatalf("winner's status = %s, want confirmed", stored.Status)
	}
}

func TestByIDNotFound(t *testing.T) {
	repo := NewBookingRepository()
	if _, err := repo.ByID(context.Background(), "bkg-none"); !errors.Is(err, domainbooking.ErrBookingNotFound) {
		t.Fatalf("err = %v, want ErrBookingNotFound", err)
	}
}

func TestListByGuestSortsByCreation(t *testing.T) {
	repo := NewBookingRepository()
	base := time.Date(2024, 8, 20, 10, 0, 0, 0, time.UTC)
	newer := seedBooking(t, "bkg-2", "guest-1", base.Add(time.Hour))
	older := seedBooking(t, "bkg-1", "guest-1", base)
	other := seedBooking(t, "bkg-3", "guest-2", base)
	for _, b := range []*domainbooking.Booking{newer, older, other} {
		if err := repo.Save(context.Background(), b); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}
	got, err := repo.ListByGuest(context.Background(), "guest-1")
	if err != nil {
		t.Fatalf("ListByGuest: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].ID != "bkg-1" || got[1].ID != "bkg-2" {
		t.Fatalf("order = %s, %s; want bkg-1, bkg-2", got[0].ID, got[1].ID)
	}
}
