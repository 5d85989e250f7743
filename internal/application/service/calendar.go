package service

import "time"

// Calendar answers "what day is it" in the business time zone.
type Calendar struct {
	now func() time.Time
	loc *time.Location
}

func NewCalendar(loc *time.Location, now func() time.Time) *Calendar {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &Calendar{now: now, loc: loc}
}

func (c *Calendar) Now() time.Time {
	return c.now().In(c.loc)
}

// Today is the local calendar date, stored as midnight UTC like every date column.
func (c *Calendar) Today() time.Time {
	return DateOnly(c.Now())
}

func (c *Calendar) Year() int {
	return c.Now().Year()
}

// DateOnly keeps the calendar date of t and drops the clock and zone.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
