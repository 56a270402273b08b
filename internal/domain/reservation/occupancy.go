package reservation

import (
	"time"

	"lodging-reservations/internal/domain/schedule"
)

// Capacity is counted in distinct guests, not rows: one guest holding
// several nights in the same window occupies a single slot.
const (
	CategoryCapacity = 4
	TotalCapacity    = 8
)

// Occupancy is the per-window head count of distinct guests per category.
type Occupancy struct {
	Male   int
	Female int
}

func (o Occupancy) Total() int {
	return o.Male + o.Female
}

func (o Occupancy) Of(c Category) int {
	switch c {
	case CategoryMale:
		return o.Male
	case CategoryFemale:
		return o.Female
	default:
		return 0
	}
}

func (o Occupancy) VacanciesFor(c Category) int {
	v := CategoryCapacity - o.Of(c)
	if v < 0 {
		return 0
	}
	return v
}

func (o Occupancy) TotalVacancies() int {
	v := TotalCapacity - o.Total()
	if v < 0 {
		return 0
	}
	return v
}

func (o Occupancy) IsCategoryFull(c Category) bool {
	return o.Of(c) >= CategoryCapacity
}

func (o Occupancy) IsTotalFull() bool {
	return o.Total() >= TotalCapacity
}

// CountOccupancy aggregates active reservations whose target date falls in
// the window containing windowDate, deduplicating by guest identity.
func CountOccupancy(windowDate time.Time, all []*Reservation) Occupancy {
	w := schedule.WindowFor(windowDate)

	male := make(map[string]struct{})
	female := make(map[string]struct{})
	for _, r := range all {
		if !r.IsActive() || !w.ContainsDate(r.TargetDate()) {
			continue
		}
		id := r.Identity()
		if id == "" {
			continue
		}
		switch r.Category() {
		case CategoryMale:
			male[id] = struct{}{}
		case CategoryFemale:
			female[id] = struct{}{}
		}
	}
	return Occupancy{Male: len(male), Female: len(female)}
}
