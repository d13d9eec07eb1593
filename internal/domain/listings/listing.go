package listings

import (
	"context"
	"errors"

	"shortlet/internal/domain/shared/money"
)

var ErrListingNotFound = errors.New("listings: not found")

type ListingID string

// Listing is the read-only slice of a property this service needs: the
// nightly rate with its native currency and a guest capacity. Host-side CRUD
// lives elsewhere.
type Listing struct {
	ID          ListingID
	HostID      string
	Title       string
	City        string
	NightlyRate money.Money
	MaxGuests   int
	Active      bool
}

type Repository interface {
	ByID(ctx context.Context, id ListingID) (*Listing, error)
	Save(ctx context.Context, listing *Listing) error
}
