package queries

import (
	"context"
	"strings"
	"time"

	"lodging-reservations/internal/domain/reservation"
	"lodging-reservations/internal/domain/schedule"
	"lodging-reservations/internal/pkg/clock"
	"lodging-reservations/internal/pkg/errs"
)

// ReservationEntityReader supplies the full reservation set as domain
// entities so the occupancy aggregate runs on the same code path the
// admission check uses.
type ReservationEntityReader interface {
	ListAll(ctx context.Context) ([]*reservation.Reservation, error)
}

type OccupancyQueries interface {
	// VacancyStatus computes the live panel for the window containing now.
	VacancyStatus(ctx context.Context) (*VacancyView, error)
	// Report renders every reservation matching the filter for the admin
	// export, newest first, same shape as the admin listing.
	Report(ctx context.Context, filter ListFilter) ([]ReportRow, error)
}

type occupancyQueriesImpl struct {
	reader ReservationEntityReader
	views  ReservationViewRepo
	clock  clock.Clock
	loc    *time.Location
}

func NewOccupancyQueries(reader ReservationEntityReader, views ReservationViewRepo, clk clock.Clock, loc *time.Location) OccupancyQueries {
	return &occupancyQueriesImpl{reader: reader, views: views, clock: clk, loc: loc}
}

func (q *occupancyQueriesImpl) VacancyStatus(ctx context.Context) (*VacancyView, error) {
	now := q.clock.Now().In(q.loc)

	all, err := q.reader.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	w := schedule.CurrentWindow(now)
	occ := reservation.CountOccupancy(w.KeyDate(), all)
	gate := schedule.StatusMessage(now)

	categories := make([]CategoryVacancy, 0, 2)
	for _, cat := range []reservation.Category{reservation.CategoryMale, reservation.CategoryFemale} {
		categories = append(categories, CategoryVacancy{
			Category:  cat.String(),
			Label:     cat.DisplayLabel(),
			Occupied:  occ.Of(cat),
			Capacity:  reservation.CategoryCapacity,
			Vacancies: occ.VacanciesFor(cat),
		})
	}

	return &VacancyView{
		WindowKey:      w.Key(),
		WindowStart:    w.Start(),
		WindowEnd:      w.End(),
		Open:           gate.Open,
		StatusMessage:  gate.Message,
		DefaultDate:    schedule.FormatDate(schedule.DefaultReservationDate(now)),
		Categories:     categories,
		TotalOccupied:  occ.Total(),
		TotalCapacity:  reservation.TotalCapacity,
		TotalVacancies: occ.TotalVacancies(),
	}, nil
}

func (q *occupancyQueriesImpl) Report(ctx context.Context, filter ListFilter) ([]ReportRow, error) {
	if filter.Category != "" {
		cat, err := reservation.NewCategory(filter.Category)
		if err != nil {
			return nil, errs.Mark(err, ErrInvalidFilter)
		}
		filter.Category = cat.String()
	}

	views, err := q.views.FindFiltered(ctx, filter)
	if err != nil {
		return nil, err
	}

	rows := make([]ReportRow, 0, len(views))
	for _, v := range views {
		email := v.OwnerEmail
		if email == "" {
			email = v.ContactEmail
		}
		rows = append(rows, ReportRow{
			GuestName: v.GuestName,
			Category:  v.CategoryLabel,
			Date:      v.DateDisplay,
			Status:    v.Status,
			Email:     strings.ToLower(email),
		})
	}
	return rows, nil
}
