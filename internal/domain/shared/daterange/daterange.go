package daterange

import (
	"errors"
	"time"
)

var ErrInvalidRange = errors.New("daterange: checkout must be after checkin")

const nightSpan = 24 * time.Hour

// DateRange represents a stay as a half-open interval [checkIn, checkOut).
// Only the calendar day matters; any time-of-day carried by the inputs is
// dropped on construction.
type DateRange struct {
	CheckIn  time.Time
	CheckOut time.Time
}

// New builds a validated range. Both endpoints are reduced to whole UTC days.
func New(checkIn, checkOut time.Time) (DateRange, error) {
	dr := DateRange{CheckIn: dayFloor(checkIn), CheckOut: dayFloor(checkOut)}
	if err := dr.Validate(); err != nil {
		return DateRange{}, err
	}
	return dr, nil
}

func (dr DateRange) Validate() error {
	if dr.CheckIn.IsZero() || dr.CheckOut.IsZero() {
		return ErrInvalidRange
	}
	if !dr.CheckOut.After(dr.CheckIn) {
		return ErrInvalidRange
	}
	return nil
}

// Nights counts whole nights between check-in and check-out, rounding any
// residual sub-day offset up so that DST or timezone artifacts in the inputs
// never shave a night off. An empty or inverted range yields 0, which callers
// read as "no valid stay", not as a failure.
func (dr DateRange) Nights() int {
	return Nights(dr.CheckIn, dr.CheckOut)
}

// Nights is the free-function form used by callers that never build a range.
func Nights(checkIn, checkOut time.Time) int {
	if checkIn.IsZero() || checkOut.IsZero() {
		return 0
	}
	elapsed := dayFloor(checkOut).Sub(dayFloor(checkIn))
	if elapsed <= 0 {
		return 0
	}
	return int((elapsed + nightSpan - 1) / nightSpan)
}

func (dr DateRange) Overlaps(other DateRange) bool {
	return dr.CheckIn.Before(other.CheckOut) && other.CheckIn.Before(dr.CheckOut)
}

func (dr DateRange) ContainsDate(t time.Time) bool {
	t = dayFloor(t)
	return !t.Before(dr.CheckIn) && t.Before(dr.CheckOut)
}

func dayFloor(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
