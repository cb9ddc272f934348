package clock

import "time"

// Clock supplies the calendar date used for due-date and fine arithmetic.
// Services never read the system clock directly, so tests can pin a date.
type Clock interface {
	Today() time.Time
}

type systemClock struct{}

func System() Clock {
	return systemClock{}
}

func (systemClock) Today() time.Time {
	return Truncate(time.Now())
}

// Fixed is a clock pinned to a single date.
type Fixed struct {
	Date time.Time
}

func (f Fixed) Today() time.Time {
	return Truncate(f.Date)
}

// Truncate drops the time-of-day component, keeping UTC midnight.
func Truncate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns whole calendar days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(Truncate(b).Sub(Truncate(a)).Hours() / 24)
}
