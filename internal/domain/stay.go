package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidStay marks a stay query that fails validation. Nothing is
// fetched for an invalid query.
var ErrInvalidStay = errors.New("invalid stay query")

const DateLayout = "2006-01-02"

// DefaultGuests is applied when a request omits the guest count.
const DefaultGuests = 2

// StayQuery is the immutable input of one price aggregation: a check-in /
// check-out window and a guest count.
type StayQuery struct {
	CheckIn  time.Time
	CheckOut time.Time
	Guests   int
}

// NewStayQuery parses YYYY-MM-DD dates and validates the resulting query.
func NewStayQuery(checkIn, checkOut string, guests int) (StayQuery, error) {
	in, err := time.Parse(DateLayout, checkIn)
	if err != nil {
		return StayQuery{}, fmt.Errorf("%w: check_in: %v", ErrInvalidStay, err)
	}
	out, err := time.Parse(DateLayout, checkOut)
	if err != nil {
		return StayQuery{}, fmt.Errorf("%w: check_out: %v", ErrInvalidStay, err)
	}
	q := StayQuery{CheckIn: in, CheckOut: out, Guests: guests}
	if err := q.Validate(); err != nil {
		return StayQuery{}, err
	}
	return q, nil
}

// Validate rejects queries with a non-positive night count or guest count.
func (q StayQuery) Validate() error {
	if q.Guests < 1 {
		return fmt.Errorf("%w: guests must be positive", ErrInvalidStay)
	}
	if q.Nights() < 1 {
		return fmt.Errorf("%w: check_out must be after check_in", ErrInvalidStay)
	}
	return nil
}

// Nights is the stay length in days. Dates parse to midnight, so the
// division is exact.
func (q StayQuery) Nights() int {
	return int(q.CheckOut.Sub(q.CheckIn).Hours() / 24)
}
