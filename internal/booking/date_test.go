package booking_test

import (
    "testing"
    "time"

    "github.com/stretchr/testify/assert"

    "github.com/cinereserva/booking-gateway/internal/booking"
)

func TestIsValidDate_Window(t *testing.T) {
    today := time.Date(2025, 9, 10, 15, 30, 0, 0, time.UTC)

    cases := []struct {
        name      string
        candidate time.Time
        want      bool
    }{
        {"today", time.Date(2025, 9, 10, 0, 0, 0, 0, time.UTC), true},
        {"last day of window", time.Date(2025, 9, 18, 0, 0, 0, 0, time.UTC), true},
        {"middle of window", time.Date(2025, 9, 14, 0, 0, 0, 0, time.UTC), true},
        {"yesterday", time.Date(2025, 9, 9, 0, 0, 0, 0, time.UTC), false},
        {"one day past window", time.Date(2025, 9, 19, 0, 0, 0, 0, time.UTC), false},
        {"ten days out", time.Date(2025, 9, 20, 0, 0, 0, 0, time.UTC), false},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            assert.Equal(t, tc.want, booking.IsValidDate(tc.candidate, today, 8))
        })
    }
}

func TestIsValidDate_IgnoresTimeOfDay(t *testing.T) {
    // 23:59 today must still count as today: the original client-side
    // check compared full timestamps and rejected same-day bookings for
    // most of the day.
    today := time.Date(2025, 9, 10, 23, 59, 0, 0, time.UTC)
    candidate := time.Date(2025, 9, 10, 0, 0, 0, 0, time.UTC)
    assert.True(t, booking.IsValidDate(candidate, today, 8))

    // Late on the last window day is still inside the window.
    edge := time.Date(2025, 9, 18, 23, 0, 0, 0, time.UTC)
    assert.True(t, booking.IsValidDate(edge, today, 8))
}

func TestParseDate(t *testing.T) {
    d, err := booking.ParseDate("2025-09-10")
    assert.NoError(t, err)
    assert.Equal(t, 2025, d.Year())

    _, err = booking.ParseDate("10/09/2025")
    assert.Error(t, err)

    _, err = booking.ParseDate("")
    assert.Error(t, err)
}
