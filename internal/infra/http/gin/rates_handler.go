package ginserver

import (
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"

	"shortlet/internal/domain/currency"
)

type RatesHandler struct {
	Converter *currency.Converter
}

type ratesResponse struct {
	Base      string             `json:"base"`
	FetchedAt time.Time          `json:"fetched_at"`
	Rates     map[string]float64 `json:"rates"`
}

// Current exposes the active snapshot for debugging and UI currency pickers.
func (h RatesHandler) Current(c *gin.Context) {
	table := h.Converter.Table()
	c.JSON(http.StatusOK, ratesResponse{
		Base:      table.Base(),
		FetchedAt: table.FetchedAt(),
		Rates:     table.RatesCopy(),
	})
}

var _ RatesHTTP = RatesHandler{}
