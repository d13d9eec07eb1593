package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	"shortlet/internal/app/quotes"
)

type QuoteHandler struct {
	Quotes *quotes.Service
}

type quoteRequest struct {
	ListingID       string `json:"listing_id"`
	CheckIn         string `json:"check_in"`
	CheckOut        string `json:"check_out"`
	Guests          int    `json:"guests"`
	DisplayCurrency string `json:"display_currency"`
}

type quoteResponse struct {
	ListingID        string        `json:"listing_id"`
	Nights           int           `json:"nights"`
	Priced           bool          `json:"priced"`
	Breakdown        breakdownJSON `json:"breakdown"`
	DisplayTotal     moneyJSON     `json:"display_total"`
	DisplayFormatted string        `json:"display_formatted"`
}

// Quote prices a stay. Missing or unparseable dates quote as zero nights,
// the "select dates to see pricing" state, rather than failing.
func (h QuoteHandler) Quote(c *gin.Context) {
	var req quoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	checkIn, _ := parseDate(req.CheckIn)
	checkOut, _ := parseDate(req.CheckOut)
	quote, err := h.Quotes.Quote(c.Request.Context(), quotes.Request{
		ListingID:       req.ListingID,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		Guests:          req.Guests,
		DisplayCurrency: req.DisplayCurrency,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, quoteResponse{
		ListingID:        quote.ListingID,
		Nights:           quote.Nights,
		Priced:           quote.Priced,
		Breakdown:        newBreakdownJSON(quote.Breakdown),
		DisplayTotal:     newMoneyJSON(quote.DisplayTotal),
		DisplayFormatted: quote.DisplayFormatted,
	})
}

var _ QuoteHTTP = QuoteHandler{}
