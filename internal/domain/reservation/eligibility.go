package reservation

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"lodging-reservations/internal/domain/schedule"
)

// Reason explains why a booking request was turned away. Checks run in a
// fixed order, so a request failing several rules always reports the same
// one.
type Reason string

const (
	ReasonSystemClosed  Reason = "system_closed"
	ReasonInThePast     Reason = "date_in_past"
	ReasonOutsideWindow Reason = "outside_window"
	ReasonTotalFull     Reason = "total_full"
	ReasonCategoryFull  Reason = "category_full"
	ReasonDuplicate     Reason = "duplicate_for_guest"
)

// Decision is the outcome of an eligibility evaluation.
type Decision struct {
	Admitted bool
	Reason   Reason
}

func admit() Decision {
	return Decision{Admitted: true}
}

func reject(r Reason) Decision {
	return Decision{Reason: r}
}

// ClearsForm reports whether the booking form should be reset after this
// rejection. Every refusal clears it except the closed gate, where the
// guest's input is still worth keeping for Friday noon.
func (d Decision) ClearsForm() bool {
	return !d.Admitted && d.Reason != ReasonSystemClosed
}

// Evaluate runs the admission rules for a booking request against the full
// set of existing reservations. excludeID skips the guest's own row when
// re-evaluating an edit; pass uuid.Nil for a new booking. The caller decides
// which instant "now" is, which keeps the whole chain deterministic.
func Evaluate(
	candidate time.Time,
	category Category,
	guestIdentity string,
	excludeID uuid.UUID,
	existing []*Reservation,
	now time.Time,
) Decision {
	if !schedule.IsSystemOpen(now) {
		return reject(ReasonSystemClosed)
	}

	candidate = schedule.Midnight(candidate)
	if schedule.DateBefore(candidate, now) {
		return reject(ReasonInThePast)
	}
	if !schedule.IsWithinWindow(candidate, now) {
		return reject(ReasonOutsideWindow)
	}

	occ := CountOccupancy(candidate, existing)
	if occ.IsTotalFull() {
		return reject(ReasonTotalFull)
	}
	if occ.IsCategoryFull(category) {
		return reject(ReasonCategoryFull)
	}

	if hasDuplicate(candidate, guestIdentity, excludeID, existing) {
		return reject(ReasonDuplicate)
	}

	return admit()
}

// hasDuplicate looks for another active reservation by the same guest on the
// same calendar date, regardless of category.
func hasDuplicate(date time.Time, guestIdentity string, excludeID uuid.UUID, existing []*Reservation) bool {
	guestIdentity = strings.ToLower(guestIdentity)
	if guestIdentity == "" {
		return false
	}
	for _, r := range existing {
		if r.ID() == excludeID {
			continue
		}
		if !r.IsActive() {
			continue
		}
		if r.Identity() != guestIdentity {
			continue
		}
		if schedule.SameDate(r.TargetDate(), date) {
			return true
		}
	}
	return false
}
