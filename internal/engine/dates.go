package engine

import "time"

// BusinessDaysUntil counts weekdays strictly after from, up to and including
// to. The count is negative when to is earlier than from, and 0 when both
// fall on the same day or only weekend days separate them.
func BusinessDaysUntil(from, to time.Time) int {
	f := dateOnly(from)
	t := dateOnly(to)
	if f.Equal(t) {
		return 0
	}

	sign := 1
	if t.Before(f) {
		f, t = t, f
		sign = -1
	}

	count := 0
	for d := f.AddDate(0, 0, 1); !d.After(t); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			count++
		}
	}
	return sign * count
}
