package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	"shortlet/internal/app/bookings"
	"shortlet/internal/app/quotes"
	"shortlet/internal/domain/booking"
)

type BookingHandler struct {
	Bookings *bookings.Service
}

type createBookingRequest struct {
	ListingID       string `json:"listing_id"`
	GuestID         string `json:"guest_id"`
	CheckIn         string `json:"check_in"`
	CheckOut        string `json:"check_out"`
	Guests          int    `json:"guests"`
	DisplayCurrency string `json:"display_currency"`
}

// Create books a stay. Unlike quoting, dates must parse here: a booking
// without a valid range is a request error, not an unpriced preview.
func (h BookingHandler) Create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	checkIn, okIn := parseDate(req.CheckIn)
	checkOut, okOut := parseDate(req.CheckOut)
	if !okIn || !okOut {
		c.JSON(http.StatusBadRequest, gin.H{"error": "check_in and check_out must be YYYY-MM-DD dates"})
		return
	}
	b, err := h.Bookings.Request(c.Request.Context(), bookings.CreateRequest{
		Request: quotes.Request{
			ListingID:       req.ListingID,
			CheckIn:         checkIn,
			CheckOut:        checkOut,
			Guests:          req.Guests,
			DisplayCurrency: req.DisplayCurrency,
		},
		GuestID: req.GuestID,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newBookingJSON(b))
}

func (h BookingHandler) Get(c *gin.Context) {
	b, _, err := h.Bookings.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newBookingJSON(b))
}

type transitionRequest struct {
	Reason string `json:"reason"`
}

func (h BookingHandler) Confirm(c *gin.Context) {
	h.apply(c, booking.ActionConfirm)
}

func (h BookingHandler) Cancel(c *gin.Context) {
	h.apply(c, booking.ActionCancel)
}

func (h BookingHandler) apply(c *gin.Context, action booking.Action) {
	var req transitionRequest
	if c.Request.Body != nil && c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	b, err := h.Bookings.ApplyAction(c.Request.Context(), c.Param("id"), action, req.Reason)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newBookingJSON(b))
}

var _ BookingHTTP = BookingHandler{}

type MeHandler struct {
	Bookings *bookings.Service
}

// ListBookings returns the guest's bookings; guest identity arrives as a
// query parameter because authentication lives outside this service.
func (h MeHandler) ListBookings(c *gin.Context) {
	guestID := c.Query("guest_id")
	if guestID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "guest_id is required"})
		return
	}
	list, err := h.Bookings.ListByGuest(c.Request.Context(), guestID)
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]bookingJSON, 0, len(list))
	for _, b := range list {
		out = append(out, newBookingJSON(b))
	}
	c.JSON(http.StatusOK, gin.H{"bookings": out})
}

var _ MeHTTP = MeHandler{}
