package ginserver

import (
	"errors"
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"

	"shortlet/internal/domain/booking"
	"shortlet/internal/domain/currency"
	"shortlet/internal/domain/listings"
	"shortlet/internal/domain/pricing"
	"shortlet/internal/domain/shared/daterange"
	"shortlet/internal/domain/shared/money"
)

const dateLayout = "2006-01-02"

// parseDate accepts the booking form's plain calendar date or a full
// RFC 3339 timestamp; the time-of-day is discarded downstream either way.
func parseDate(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(dateLayout, raw); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	return time.Time{}, false
}

type moneyJSON struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

func newMoneyJSON(m money.Money) moneyJSON {
	return moneyJSON{Amount: m.Amount, Currency: m.Currency}
}

type breakdownJSON struct {
	Nights   int       `json:"nights"`
	Nightly  moneyJSON `json:"nightly"`
	Base     moneyJSON `json:"base"`
	Cleaning moneyJSON `json:"cleaning_fee"`
	Service  moneyJSON `json:"service_fee"`
	Taxes    moneyJSON `json:"taxes"`
	Total    moneyJSON `json:"total"`
}

func newBreakdownJSON(p pricing.PriceBreakdown) breakdownJSON {
	return breakdownJSON{
		Nights:   p.Nights,
		Nightly:  newMoneyJSON(p.Nightly),
		Base:     newMoneyJSON(p.Base),
		Cleaning: newMoneyJSON(p.Cleaning),
		Service:  newMoneyJSON(p.Service),
		Taxes:    newMoneyJSON(p.Taxes),
		Total:    newMoneyJSON(p.Total),
	}
}

type bookingJSON struct {
	ID             string        `json:"id"`
	ListingID      string        `json:"listing_id"`
	GuestID        string        `json:"guest_id"`
	CheckIn        string        `json:"check_in"`
	CheckOut       string        `json:"check_out"`
	Guests         int           `json:"guests"`
	Status         string        `json:"status"`
	AllowedActions []string      `json:"allowed_actions"`
	Price          breakdownJSON `json:"price"`
	DisplayTotal   moneyJSON     `json:"display_total"`
	CancelReason   string        `json:"cancel_reason,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
	Version        int64         `json:"version"`
}

func newBookingJSON(b *booking.Booking) bookingJSON {
	actions := booking.AllowedActions(b.Status)
	names := make([]string, 0, len(actions))
	for _, a := range actions {
		names = append(names, string(a))
	}
	return bookingJSON{
		ID:             string(b.ID),
		ListingID:      string(b.ListingID),
		GuestID:        b.GuestID,
		CheckIn:        b.Range.CheckIn.Format(dateLayout),
		CheckOut:       b.Range.CheckOut.Format(dateLayout),
		Guests:         b.Guests,
		Status:         string(b.Status),
		AllowedActions: names,
		Price:          newBreakdownJSON(b.Price),
		DisplayTotal:   newMoneyJSON(b.DisplayTotal),
		CancelReason:   b.CancelReason,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
		Version:        b.Version,
	}
}

// writeError maps domain failures to HTTP statuses. Unknown currencies and
// malformed requests are the caller's fault; transition and version races
// are conflicts; everything unrecognized stays a 500.
func writeError(c *gin.Context, err error) {
	var unknownCurrency *currency.UnknownCurrencyError
	switch {
	case errors.Is(err, booking.ErrBookingNotFound), errors.Is(err, listings.ErrListingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, booking.ErrInvalidTransition), errors.Is(err, booking.ErrConcurrentUpdate):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &unknownCurrency):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "currency": unknownCurrency.Code})
	case errors.Is(err, booking.ErrInvalidGuests),
		errors.Is(err, booking.ErrCheckInInPast),
		errors.Is(err, booking.ErrUnpriceableStay),
		errors.Is(err, daterange.ErrInvalidRange),
		errors.Is(err, pricing.ErrNegativeRate),
		errors.Is(err, pricing.ErrCurrencyUnset):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
