package memory

import (
	"context"
	"sort"
	"sync"

	domainbooking "shortlet/internal/domain/booking"
	domainlistings "shortlet/internal/domain/listings"
)

// ListingRepository is an in-memory implementation for demos and tests.
type ListingRepository struct {
	mu    sync.RWMutex
	items map[domainlistings.ListingID]*domainlistings.Listing
}

func NewListingRepository() *ListingRepository {
	return &ListingRepository{
		items: make(map[domainlistings.ListingID]*domainlistings.Listing),
	}
}

// ByID returns a listing or listings.ErrListingNotFound.
func (r *ListingRepository) ByID(ctx context.Context, id domainlistings.ListingID) (*domainlistings.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	listing, ok := r.items[id]
	if !ok {
		return nil, domainlistings.ErrListingNotFound
	}
	copied := *listing
	return &copied, nil
}

// Save stores or updates a listing entry.
func (r *ListingRepository) Save(ctx context.Context, listing *domainlistings.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *listing
	r.items[listing.ID] = &copied
	return nil
}

var _ domainlistings.Repository = (*ListingRepository)(nil)

// BookingRepository keeps bookings in memory with the same version
// compare-and-swap discipline the mongo repository enforces.
type BookingRepository struct {
	mu    sync.RWMutex
	items map[domainbooking.BookingID]*domainbooking.Booking
}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{
		items: make(map[domainbooking.BookingID]*domainbooking.Booking),
	}
}

func (r *BookingRepository) ByID(ctx context.Context, id domainbooking.BookingID) (*domainbooking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.items[id]
	if !ok {
		return nil, domainbooking.ErrBookingNotFound
	}
	copied := *b
	copied.ClearEvents()
	return &copied, nil
}

// Save persists a booking, failing with ErrConcurrentUpdate when the stored
// version no longer matches the one the caller loaded.
func (r *BookingRepository) Save(ctx context.Context, b *domainbooking.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if current, ok := r.items[b.ID]; ok && current.Version != b.Version {
		return domainbooking.ErrConcurrentUpdate
	}
	copied := *b
	copied.Version = b.Version + 1
	copied.ClearEvents()
	r.items[b.ID] = &copied
	b.Version = copied.Version
	return nil
}

func (r *BookingRepository) ListByGuest(ctx context.Context, guestID string) ([]*domainbooking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domainbooking.Booking, 0)
	for _, b := range r.items {
		if b.GuestID != guestID {
			continue
		}
		copied := *b
		copied.ClearEvents()
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

var _ domainbooking.Repository = (*BookingRepository)(nil)
