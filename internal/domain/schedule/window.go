package schedule

import "time"

// The admission window opens Friday 12:00 and closes the following Thursday at
// 23:59:59.999 local time. Every calendar date belongs to exactly one window,
// addressed by the date of its opening Friday. All functions here are pure;
// "now" is always an explicit parameter.

const DateLayout = "2006-01-02"

// DisplayDateLayout is the human-facing rendering used by the report exporter.
const DisplayDateLayout = "02/01/2006"

// Window is the derived admission period; never persisted.
type Window struct {
	start time.Time // Friday 12:00:00.000
}

func (w Window) Start() time.Time { return w.start }

func (w Window) End() time.Time {
	y, m, d := w.start.Date()
	return time.Date(y, m, d+6, 23, 59, 59, int(999*time.Millisecond), w.start.Location())
}

// Key is the canonical address of the window: the calendar date of its
// opening Friday.
func (w Window) Key() string {
	return w.start.Format(DateLayout)
}

// KeyDate is the opening Friday at local midnight, used as the lower bound
// for date-only containment checks.
func (w Window) KeyDate() time.Time {
	y, m, d := w.start.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, w.start.Location())
}

// ContainsDate reports whether a plain calendar date falls inside the window,
// comparing dates only (the opening Friday itself counts). The comparison is
// by calendar day, not instant: dates scanned from a DATE column carry UTC
// midnight while the window is anchored in the booking zone.
func (w Window) ContainsDate(date time.Time) bool {
	o := dayOrdinal(date)
	k := dayOrdinal(w.start)
	return o >= k && o <= k+6
}

// WindowStart returns the Friday 12:00 that opens the window containing the
// given instant. Sunday through Thursday belong to the window opened the
// previous Friday; Friday and Saturday to the one opened that same Friday.
func WindowStart(now time.Time) time.Time {
	dow := int(now.Weekday()) // 0=Sunday .. 6=Saturday
	var back int
	if dow >= 5 {
		back = dow - 5
	} else {
		back = dow + 2
	}
	y, m, d := now.Date()
	return time.Date(y, m, d-back, 12, 0, 0, 0, now.Location())
}

// WindowEnd returns the closing instant for a window opened at start:
// the following Thursday at 23:59:59.999.
func WindowEnd(start time.Time) time.Time {
	return Window{start: start}.End()
}

// CurrentWindow is the window containing the given instant.
func CurrentWindow(now time.Time) Window {
	return Window{start: WindowStart(now)}
}

// WindowFor maps any calendar date to the window that contains it.
func WindowFor(date time.Time) Window {
	return Window{start: WindowStart(Midnight(date))}
}

// IsWithinWindow reports whether the candidate date lies within the currently
// active window. Note that the interval is anchored at Friday 12:00, so the
// opening Friday itself is excluded, matching the original admission rule.
func IsWithinWindow(date, now time.Time) bool {
	o := dayOrdinal(date)
	k := dayOrdinal(WindowStart(now))
	return o > k && o <= k+6
}

// IsSystemOpen reports whether the admission gate is open. The gate is closed
// only during the dead interval Friday 00:00-11:59:59.999; it is open all of
// Saturday through Thursday and from Friday 12:00 onward.
func IsSystemOpen(now time.Time) bool {
	if now.Weekday() == time.Friday {
		return now.Hour() >= 12
	}
	return true
}

// Midnight truncates an instant to its calendar date at 00:00 local time.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// dayOrdinal collapses an instant to its calendar date as a single
// comparable integer, independent of the instant's location.
func dayOrdinal(t time.Time) int {
	y, m, d := t.Date()
	return int(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400)
}

// SameDate reports whether two instants fall on the same calendar date, each
// read in its own location. DATE columns scan as UTC midnight while request
// dates are parsed in the booking zone, so instant equality is never the
// right comparison.
func SameDate(a, b time.Time) bool {
	return dayOrdinal(a) == dayOrdinal(b)
}

// DateBefore reports whether a's calendar date precedes b's.
func DateBefore(a, b time.Time) bool {
	return dayOrdinal(a) < dayOrdinal(b)
}

// ParseDate parses a plain YYYY-MM-DD date into local midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, loc)
}

// FormatDate renders a date as YYYY-MM-DD.
func FormatDate(d time.Time) string {
	return d.Format(DateLayout)
}

// DisplayDate renders a date as DD/MM/YYYY for reports.
func DisplayDate(d time.Time) string {
	return d.Format(DisplayDateLayout)
}

// DefaultReservationDate suggests the date a new booking form should offer:
// today while the window is open on a weekday, the window's Friday on
// weekends, and the next window's Friday once the current one has closed.
// On Friday before noon the suggestion stays on that same Friday.
func DefaultReservationDate(now time.Time) time.Time {
	start := WindowStart(now)
	fridayDate := Midnight(start)

	if IsSystemOpen(now) {
		dow := now.Weekday()
		if dow >= time.Monday && dow <= time.Friday {
			return Midnight(now)
		}
		return fridayDate
	}

	// Closed means Friday before noon: the window opening today at 12:00.
	return fridayDate
}

// GateStatus describes the admission gate for the status panel.
type GateStatus struct {
	Open    bool
	Message string
}

// StatusMessage mirrors the banner the booking page shows: when the gate is
// closed it announces the Friday-noon opening, otherwise the Thursday-night
// closing (phrased as "today" on Thursdays).
func StatusMessage(now time.Time) GateStatus {
	if !IsSystemOpen(now) {
		return GateStatus{Open: false, Message: "Reservations closed - opens Friday at 12:00"}
	}
	if now.Weekday() == time.Thursday {
		return GateStatus{Open: true, Message: "Reservations open - closes today at 23:59"}
	}
	return GateStatus{Open: true, Message: "Reservations open - closes Thursday at 23:59"}
}
