// lending/window.go
package lending

import "time"

// DateWindow validates that a proposed date falls within
// [today, today + MaxWeeks]. Pure, the caller supplies today.
type DateWindow struct {
	Field     string
	MaxWeeks  int
	PastMsg   string
	FutureMsg string
}

// RenewalWindow bounds librarian renewals, BorrowWindow bounds user borrow
// requests. The messages match what the library staff already knows from
// the old site.
var (
	RenewalWindow = DateWindow{
		Field:     "due_back",
		MaxWeeks:  2,
		PastMsg:   "Invalid date - renewal in past",
		FutureMsg: "Invalid date - renewal more than 2 weeks ahead",
	}
	BorrowWindow = DateWindow{
		Field:     "due_back",
		MaxWeeks:  3,
		PastMsg:   "Invalid date - return date in the past",
		FutureMsg: "Invalid date - return date more than 3 weeks ahead",
	}
)

// Validate returns nil when proposed is inside the window.
// Dates are compared at day granularity; time-of-day is ignored.
func (w DateWindow) Validate(proposed, today time.Time) *FieldError {
	p := truncateToDay(proposed)
	t := truncateToDay(today)

	if p.Before(t) {
		return &FieldError{Field: w.Field, Kind: KindDateInPast, Message: w.PastMsg}
	}
	if p.After(t.AddDate(0, 0, 7*w.MaxWeeks)) {
		return &FieldError{Field: w.Field, Kind: KindDateTooFarAhead, Message: w.FutureMsg}
	}
	return nil
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
