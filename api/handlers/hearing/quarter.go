package hearing

import "time"

// Window bounds the dates currently open for booking, inclusive on both ends
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// CurrentQuarter returns the calendar quarter containing today: Q1 Jan-Mar,
// Q2 Apr-Jun, Q3 Jul-Sep, Q4 Oct-Dec. Start is the first day of the quarter,
// End the last day. Callers pass today in so the window is re-derived on
// every evaluation and crossing a quarter boundary mid-session takes effect
// on the next call.
func CurrentQuarter(today time.Time) Window {
	q := (int(today.Month()) - 1) / 3
	start := time.Date(today.Year(), time.Month(q*3+1), 1, 0, 0, 0, 0, today.Location())
	return Window{
		Start: start,
		End:   start.AddDate(0, 3, -1),
	}
}

// Contains reports whether the calendar day of d falls inside the window
func (w Window) Contains(d time.Time) bool {
	day := dateOnly(d)
	return !day.Before(dateOnly(w.Start)) && !day.After(dateOnly(w.End))
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
