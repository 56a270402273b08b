//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"lodging-reservations/internal/domain/reservation"
	"lodging-reservations/internal/pkg/clock"
	"lodging-reservations/internal/usecase/queries"
	"lodging-reservations/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type stubEntityReader struct {
	all []*reservation.Reservation
	err error
}

func (s *stubEntityReader) ListAll(context.Context) ([]*reservation.Reservation, error) {
	return s.all, s.err
}

type stubViewRepo struct {
	views      []*queries.ReservationView
	err        error
	lastFilter queries.ListFilter
}

func (s *stubViewRepo) FindByID(context.Context, uuid.UUID) (*queries.ReservationView, error) {
	return nil, s.err
}

func (s *stubViewRepo) FindFiltered(_ context.Context, filter queries.ListFilter) ([]*queries.ReservationView, error) {
	s.lastFilter = filter
	return s.views, s.err
}

func (s *stubViewRepo) FindByIdentity(context.Context, string) ([]*queries.ReservationView, error) {
	return s.views, s.err
}

func saoPaulo(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)
	return loc
}

func TestVacancyStatus(t *testing.T) {
	loc := saoPaulo(t)
	// Saturday afternoon, window opened Friday 2026-08-28.
	now := time.Date(2026, 8, 29, 15, 0, 0, 0, loc)
	clk := clock.NewMockClock(now)

	reader := &stubEntityReader{all: []*reservation.Reservation{
		builder.NewReservationBuilder().
			WithOwnerEmail("ana@example.com").WithCategory("feminino").WithDate("2026-08-29").
			BuildEntity(loc),
		builder.NewReservationBuilder().
			WithOwnerEmail("bia@example.com").WithCategory("feminino").WithDate("2026-08-30").
			BuildEntity(loc),
		// Same guest twice in the window still occupies one slot.
		builder.NewReservationBuilder().
			WithOwnerEmail("ana@example.com").WithCategory("feminino").WithDate("2026-08-31").
			BuildEntity(loc),
		builder.NewReservationBuilder().
			WithOwnerEmail("caio@example.com").WithCategory("masculino").WithDate("2026-08-29").
			BuildEntity(loc),
		// Cancelled rows never count.
		builder.NewReservationBuilder().
			WithOwnerEmail("dora@example.com").WithCategory("feminino").WithDate("2026-08-29").
			AsCancelled().BuildEntity(loc),
		// Outside the window.
		builder.NewReservationBuilder().
			WithOwnerEmail("eva@example.com").WithCategory("feminino").WithDate("2026-09-05").
			BuildEntity(loc),
	}}

	q := queries.NewOccupancyQueries(reader, &stubViewRepo{}, clk, loc)

	view, err := q.VacancyStatus(context.Background())
	require.NoError(t, err)

	require.Equal(t, "2026-08-28", view.WindowKey)
	require.True(t, view.Open)
	require.NotEmpty(t, view.StatusMessage)
	require.Equal(t, "2026-08-28", view.DefaultDate)

	require.Len(t, view.Categories, 2)
	byCat := map[string]queries.CategoryVacancy{}
	for _, c := range view.Categories {
		byCat[c.Category] = c
	}
	require.Equal(t, 2, byCat["feminino"].Occupied)
	require.Equal(t, 2, byCat["feminino"].Vacancies)
	require.Equal(t, 1, byCat["masculino"].Occupied)
	require.Equal(t, 3, byCat["masculino"].Vacancies)

	require.Equal(t, 3, view.TotalOccupied)
	require.Equal(t, 8, view.TotalCapacity)
	require.Equal(t, 5, view.TotalVacancies)
}

func TestVacancyStatus_GateClosedFridayMorning(t *testing.T) {
	loc := saoPaulo(t)
	now := time.Date(2026, 8, 28, 9, 0, 0, 0, loc)
	clk := clock.NewMockClock(now)

	q := queries.NewOccupancyQueries(&stubEntityReader{}, &stubViewRepo{}, clk, loc)

	view, err := q.VacancyStatus(context.Background())
	require.NoError(t, err)
	require.False(t, view.Open)

	clk.Add(3 * time.Hour) // Friday 12:00
	view, err = q.VacancyStatus(context.Background())
	require.NoError(t, err)
	require.True(t, view.Open)
}

func TestReport(t *testing.T) {
	loc := saoPaulo(t)
	now := time.Date(2026, 8, 29, 15, 0, 0, 0, loc)
	clk := clock.NewMockClock(now)

	// The export mirrors the admin listing: the view repo's order (newest
	// first) is kept as-is, and cancelled rows and other windows stay in.
	views := &stubViewRepo{views: []*queries.ReservationView{
		builder.NewReservationBuilder().
			WithGuestName("Fora").WithOwnerEmail("fora@example.com").
			WithCategory("masculino").WithDate("2026-09-05").
			BuildView(),
		builder.NewReservationBuilder().
			WithGuestName("Alice").WithOwnerEmail("alice@example.com").
			WithCategory("feminino").WithDate("2026-08-29").
			AsCancelled().BuildView(),
		builder.NewReservationBuilder().
			WithGuestName("Bruno").WithOwnerEmail("").WithContactEmail("Bruno@Example.com").
			WithCategory("masculino").WithDate("2026-08-29").
			BuildView(),
	}}

	q := queries.NewOccupancyQueries(&stubEntityReader{}, views, clk, loc)

	rows, err := q.Report(context.Background(), queries.ListFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 3)

	require.Equal(t, "Fora", rows[0].GuestName)
	require.Equal(t, "Alice", rows[1].GuestName)
	require.Equal(t, "Bruno", rows[2].GuestName)

	require.Equal(t, "Masculino", rows[0].Category)
	require.Equal(t, "05/09/2026", rows[0].Date)
	require.Equal(t, "active", rows[0].Status)
	require.Equal(t, "cancelled", rows[1].Status)
	require.Equal(t, "bruno@example.com", rows[2].Email)
}

func TestReport_Filter(t *testing.T) {
	loc := saoPaulo(t)
	clk := clock.NewMockClock(time.Date(2026, 8, 29, 15, 0, 0, 0, loc))
	views := &stubViewRepo{}

	q := queries.NewOccupancyQueries(&stubEntityReader{}, views, clk, loc)

	// The legacy category spelling normalizes before hitting the repo.
	_, err := q.Report(context.Background(), queries.ListFilter{
		Date:     "2026-08-31",
		Category: "Homem",
		Name:     "ana",
	})
	require.NoError(t, err)
	require.Equal(t, queries.ListFilter{
		Date:     "2026-08-31",
		Category: "masculino",
		Name:     "ana",
	}, views.lastFilter)

	_, err = q.Report(context.Background(), queries.ListFilter{Category: "bogus"})
	require.ErrorIs(t, err, queries.ErrInvalidFilter)
}
