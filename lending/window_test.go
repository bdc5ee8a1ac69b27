package lending

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testToday = time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)

func TestRenewalWindowRejectsPastDate(t *testing.T) {
	fe := RenewalWindow.Validate(testToday.AddDate(0, 0, -1), testToday)
	require.NotNil(t, fe)
	assert.Equal(t, KindDateInPast, fe.Kind)
	assert.Equal(t, "due_back", fe.Field)
	assert.Equal(t, "Invalid date - renewal in past", fe.Message)
}

func TestRenewalWindowRejectsMoreThanTwoWeeksAhead(t *testing.T) {
	fe := RenewalWindow.Validate(testToday.AddDate(0, 0, 15), testToday)
	require.NotNil(t, fe)
	assert.Equal(t, KindDateTooFarAhead, fe.Kind)
	assert.Equal(t, "Invalid date - renewal more than 2 weeks ahead", fe.Message)
}

func TestRenewalWindowAcceptsToday(t *testing.T) {
	assert.Nil(t, RenewalWindow.Validate(testToday, testToday))
}

func TestRenewalWindowAcceptsExactlyTwoWeeksAhead(t *testing.T) {
	assert.Nil(t, RenewalWindow.Validate(testToday.AddDate(0, 0, 14), testToday))
}

// Every day offset in [0, 14] passes, everything outside fails.
func TestRenewalWindowBoundarySweep(t *testing.T) {
	for offset := -3; offset <= 17; offset++ {
		t.Run(fmt.Sprintf("offset_%d", offset), func(t *testing.T) {
			fe := RenewalWindow.Validate(testToday.AddDate(0, 0, offset), testToday)
			if offset >= 0 && offset <= 14 {
				assert.Nil(t, fe)
			} else {
				assert.NotNil(t, fe)
			}
		})
	}
}

func TestRenewalWindowIgnoresTimeOfDay(t *testing.T) {
	// Proposed at 00:00, today at 23:59 of the same day: still valid.
	morning := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	night := time.Date(2025, 3, 10, 23, 59, 59, 0, time.UTC)
	assert.Nil(t, RenewalWindow.Validate(morning, night))

	// Proposed late on the boundary day is still inside the window.
	boundary := time.Date(2025, 3, 24, 23, 0, 0, 0, time.UTC)
	assert.Nil(t, RenewalWindow.Validate(boundary, testToday))
}

func TestBorrowWindowAllowsThreeWeeks(t *testing.T) {
	assert.Nil(t, BorrowWindow.Validate(testToday.AddDate(0, 0, 21), testToday))

	fe := BorrowWindow.Validate(testToday.AddDate(0, 0, 22), testToday)
	require.NotNil(t, fe)
	assert.Equal(t, KindDateTooFarAhead, fe.Kind)
	assert.Equal(t, "Invalid date - return date more than 3 weeks ahead", fe.Message)
}

func TestBorrowWindowRejectsPastDate(t *testing.T) {
	fe := BorrowWindow.Validate(testToday.AddDate(0, 0, -1), testToday)
	require.NotNil(t, fe)
	assert.Equal(t, KindDateInPast, fe.Kind)
	assert.Equal(t, "Invalid date - return date in the past", fe.Message)
}
