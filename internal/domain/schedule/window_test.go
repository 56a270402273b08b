//go:build unit

package schedule_test

import (
	"testing"
	"time"

	"lodging-reservations/internal/domain/schedule"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var saoPaulo = mustLoadLocation()

func mustLoadLocation() *time.Location {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		panic(err)
	}
	return loc
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, saoPaulo)
}

func at(y int, m time.Month, d, hour, min int) time.Time {
	return time.Date(y, m, d, hour, min, 0, 0, saoPaulo)
}

// Reference week: Friday 2026-08-28 opens the window that runs through
// Thursday 2026-09-03.

func TestWindowStart(t *testing.T) {
	friday := at(2026, time.August, 28, 12, 0)

	cases := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{"friday morning anchors to same friday", at(2026, time.August, 28, 8, 0), friday},
		{"friday afternoon", at(2026, time.August, 28, 15, 30), friday},
		{"saturday", at(2026, time.August, 29, 10, 0), friday},
		{"sunday", at(2026, time.August, 30, 23, 59), friday},
		{"monday", at(2026, time.August, 31, 0, 0), friday},
		{"wednesday", at(2026, time.September, 2, 12, 0), friday},
		{"thursday night", at(2026, time.September, 3, 23, 59), friday},
		{"next friday rolls over", at(2026, time.September, 4, 13, 0), at(2026, time.September, 4, 12, 0)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.True(t, schedule.WindowStart(tc.now).Equal(tc.want))
		})
	}
}

func TestWindowEnd(t *testing.T) {
	start := at(2026, time.August, 28, 12, 0)
	end := schedule.WindowEnd(start)

	want := time.Date(2026, time.September, 3, 23, 59, 59, int(999*time.Millisecond), saoPaulo)
	assert.True(t, end.Equal(want))
	assert.Equal(t, time.Thursday, end.Weekday())
}

func TestWindowKey(t *testing.T) {
	w := schedule.WindowFor(date(2026, time.September, 1))
	assert.Equal(t, "2026-08-28", w.Key())
	assert.True(t, w.KeyDate().Equal(date(2026, time.August, 28)))
}

func TestWindowFor_EveryDateMapsToItsFriday(t *testing.T) {
	// Walk a full window plus the surrounding edges.
	for d := 28; d <= 31; d++ {
		w := schedule.WindowFor(date(2026, time.August, d))
		require.Equal(t, "2026-08-28", w.Key(), "august %d", d)
	}
	for d := 1; d <= 3; d++ {
		w := schedule.WindowFor(date(2026, time.September, d))
		require.Equal(t, "2026-08-28", w.Key(), "september %d", d)
	}
	assert.Equal(t, "2026-09-04", schedule.WindowFor(date(2026, time.September, 4)).Key())
}

func TestIsSystemOpen(t *testing.T) {
	cases := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"friday before noon", at(2026, time.August, 28, 11, 59), false},
		{"friday midnight", at(2026, time.August, 28, 0, 0), false},
		{"friday at noon", at(2026, time.August, 28, 12, 0), true},
		{"friday evening", at(2026, time.August, 28, 20, 0), true},
		{"saturday", at(2026, time.August, 29, 3, 0), true},
		{"monday", at(2026, time.August, 31, 9, 0), true},
		{"thursday late", at(2026, time.September, 3, 23, 59), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, schedule.IsSystemOpen(tc.now))
		})
	}
}

func TestIsWithinWindow(t *testing.T) {
	now := at(2026, time.August, 31, 10, 0) // Monday inside the window

	cases := []struct {
		name      string
		candidate time.Time
		want      bool
	}{
		{"saturday of window", date(2026, time.August, 29), true},
		{"monday of window", date(2026, time.August, 31), true},
		{"closing thursday", date(2026, time.September, 3), true},
		{"next friday", date(2026, time.September, 4), false},
		{"previous thursday", date(2026, time.August, 27), false},
		// The opening Friday at midnight sits before the 12:00 anchor.
		{"opening friday itself", date(2026, time.August, 28), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, schedule.IsWithinWindow(tc.candidate, now))
		})
	}
}

func TestWindowComparisonsIgnoreStorageZone(t *testing.T) {
	// DATE columns scan back as UTC midnight. In Sao Paulo that instant is
	// 21:00 the previous evening, so instant comparisons would shift every
	// stored date one day back. Membership checks go by calendar day instead.
	now := at(2026, time.August, 31, 10, 0) // Monday
	utcDate := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	t.Run("IsWithinWindow", func(t *testing.T) {
		assert.True(t, schedule.IsWithinWindow(utcDate(2026, time.August, 29), now))
		assert.True(t, schedule.IsWithinWindow(utcDate(2026, time.September, 3), now))
		assert.False(t, schedule.IsWithinWindow(utcDate(2026, time.August, 28), now))
		assert.False(t, schedule.IsWithinWindow(utcDate(2026, time.September, 4), now))
	})

	t.Run("ContainsDate", func(t *testing.T) {
		w := schedule.CurrentWindow(now)
		assert.True(t, w.ContainsDate(utcDate(2026, time.August, 28)))
		assert.True(t, w.ContainsDate(utcDate(2026, time.September, 3)))
		assert.False(t, w.ContainsDate(utcDate(2026, time.August, 27)))
		assert.False(t, w.ContainsDate(utcDate(2026, time.September, 4)))
	})
}

func TestSameDateAndDateBefore(t *testing.T) {
	spTuesday := date(2026, time.September, 1)
	utcTuesday := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)

	assert.True(t, schedule.SameDate(spTuesday, utcTuesday))
	assert.False(t, schedule.SameDate(spTuesday, utcTuesday.AddDate(0, 0, 1)))

	assert.True(t, schedule.DateBefore(utcTuesday, date(2026, time.September, 2)))
	assert.False(t, schedule.DateBefore(utcTuesday, spTuesday))
}

func TestIsWithinWindow_MatchesWindowMembership(t *testing.T) {
	// Saturday through Thursday a date is inside the window iff it maps to
	// the same opening Friday as now.
	now := at(2026, time.September, 2, 15, 0) // Wednesday
	cur := schedule.CurrentWindow(now)

	for off := -10; off <= 10; off++ {
		d := date(2026, time.September, 2).AddDate(0, 0, off)
		if d.Weekday() == time.Friday {
			continue
		}
		sameWindow := schedule.WindowFor(d).Key() == cur.Key()
		assert.Equal(t, sameWindow, schedule.IsWithinWindow(d, now), "offset %d (%s)", off, d.Weekday())
	}
}

func TestTodayIsBookableWheneverOpen(t *testing.T) {
	// Walk every afternoon of the reference week. Saturday through Thursday
	// the current day itself is admissible; on the opening Friday the first
	// bookable date is the next day.
	for off := 0; off < 7; off++ {
		now := at(2026, time.August, 28, 15, 0).AddDate(0, 0, off)
		require.True(t, schedule.IsSystemOpen(now), now.Weekday())

		d := schedule.Midnight(now)
		if now.Weekday() == time.Friday {
			assert.False(t, schedule.IsWithinWindow(d, now))
			d = d.AddDate(0, 0, 1)
		}
		assert.True(t, schedule.IsWithinWindow(d, now), now.Weekday())
	}
}

func TestDefaultReservationDate(t *testing.T) {
	cases := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{"weekday suggests today", at(2026, time.August, 31, 9, 0), date(2026, time.August, 31)},
		{"thursday suggests today", at(2026, time.September, 3, 18, 0), date(2026, time.September, 3)},
		{"saturday falls back to the window friday", at(2026, time.August, 29, 10, 0), date(2026, time.August, 28)},
		{"sunday falls back to the window friday", at(2026, time.August, 30, 10, 0), date(2026, time.August, 28)},
		{"friday after noon suggests today", at(2026, time.August, 28, 14, 0), date(2026, time.August, 28)},
		{"friday before noon points at today's opening", at(2026, time.August, 28, 9, 0), date(2026, time.August, 28)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.True(t, schedule.DefaultReservationDate(tc.now).Equal(tc.want),
				"got %s", schedule.DefaultReservationDate(tc.now))
		})
	}
}

func TestStatusMessage(t *testing.T) {
	closed := schedule.StatusMessage(at(2026, time.August, 28, 8, 0))
	assert.False(t, closed.Open)
	assert.Contains(t, closed.Message, "opens Friday")

	thursday := schedule.StatusMessage(at(2026, time.September, 3, 10, 0))
	assert.True(t, thursday.Open)
	assert.Contains(t, thursday.Message, "today")

	monday := schedule.StatusMessage(at(2026, time.August, 31, 10, 0))
	assert.True(t, monday.Open)
	assert.Contains(t, monday.Message, "Thursday")
}

func TestParseAndFormatDate(t *testing.T) {
	d, err := schedule.ParseDate("2026-08-28", saoPaulo)
	require.NoError(t, err)
	assert.True(t, d.Equal(date(2026, time.August, 28)))
	assert.Equal(t, "2026-08-28", schedule.FormatDate(d))
	assert.Equal(t, "28/08/2026", schedule.DisplayDate(d))

	_, err = schedule.ParseDate("28/08/2026", saoPaulo)
	require.Error(t, err)
}
