// Package clock resolves all calendar questions in the hotel's time zone.
// Date reasoning anywhere else in the codebase must go through this package,
// otherwise a server relocated to another region skews "today".
package clock

import (
	"time"
)

const DateLayout = "2006-01-02"

type HotelClock struct {
	loc        *time.Location
	windowDays int
}

func New(timezone string, windowDays int) (*HotelClock, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, err
	}
	return &HotelClock{loc: loc, windowDays: windowDays}, nil
}

// Today returns the current calendar date in the hotel time zone,
// truncated to midnight.
func (c *HotelClock) Today() time.Time {
	t := time.Now().In(c.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, c.loc)
}

// BookingWindow enumerates the bookable dates [today, today+W-1] in
// ascending order. It is recomputed on every call so it always tracks
// the hotel's current day.
func (c *HotelClock) BookingWindow() []time.Time {
	today := c.Today()
	dates := make([]time.Time, c.windowDays)
	for i := range dates {
		dates[i] = today.AddDate(0, 0, i)
	}
	return dates
}

// WithinWindow reports whether date falls inside the booking window,
// bounds inclusive.
func (c *HotelClock) WithinWindow(date time.Time) bool {
	today := c.Today()
	last := today.AddDate(0, 0, c.windowDays-1)
	return !date.Before(today) && !date.After(last)
}

// ParseDate parses an ISO stay date in the hotel time zone.
func (c *HotelClock) ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, c.loc)
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
