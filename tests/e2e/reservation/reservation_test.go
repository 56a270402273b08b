//go:build e2e

package reservation_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"lodging-reservations/internal/domain/schedule"
	"lodging-reservations/tests/common/builder"
	"lodging-reservations/tests/common/httptest"
	"lodging-reservations/tests/e2e"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	registerURL     = "/api/auth/register"
	loginURL        = "/api/auth/login"
	reservationsURL = "/api/reservations"
	statusURL       = "/api/schedule/status"
)

type reservationSuite struct {
	e2e.SharedSuite
	loc *time.Location
}

func TestReservationSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(reservationSuite))
}

func (s *reservationSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()

	loc, err := time.LoadLocation(s.Config.Booking.TimeZone)
	require.NoError(s.T(), err)
	s.loc = loc
}

// bookableDate returns a date inside the currently admitting window, or skips
// the test during the Friday-morning gap when nothing is bookable. Saturday
// through Thursday today is admissible; on a Friday afternoon the opening day
// itself sits before the 12:00 anchor, so the next day is used instead.
func (s *reservationSuite) bookableDate() string {
	now := time.Now().In(s.loc)
	if !schedule.IsSystemOpen(now) {
		s.T().Skip("reservations are gated until Friday 12:00")
	}
	d := schedule.Midnight(now)
	if now.Weekday() == time.Friday {
		d = d.AddDate(0, 0, 1)
	}
	return schedule.FormatDate(d)
}

// signUp registers a fresh account and returns its session cookies.
func (s *reservationSuite) signUp(email string) []*http.Cookie {
	reg := builder.NewAuthBuilder().WithEmail(email).BuildRegisterDTO()
	rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, registerURL, reg, "")
	require.Equal(s.T(), http.StatusCreated, rec.Code, rec.Body.String())

	login := builder.NewAuthBuilder().WithEmail(email).BuildLoginDTO()
	rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, loginURL, login, "")
	require.Equal(s.T(), http.StatusOK, rec.Code, rec.Body.String())

	cookies := rec.Result().Cookies()
	require.NotEmpty(s.T(), cookies, "login must set session cookies")
	return cookies
}

func (s *reservationSuite) TestReservationLifecycle() {
	s.Run("guest books, duplicates are refused, cancel frees the slot", func() {
		cookies := s.signUp("lifecycle@example.com")
		date := s.bookableDate()

		reqBody := builder.NewReservationBuilder().
			WithContactEmail("lifecycle@example.com").
			WithDate(date).
			BuildCreateRequestDTO()

		rec := httptest.PerformRequestWithCookies(s.T(), s.Router, http.MethodPost, reservationsURL, reqBody, cookies)
		require.Equal(s.T(), http.StatusCreated, rec.Code, rec.Body.String())

		var created struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		}
		require.NoError(s.T(), json.Unmarshal(rec.Body.Bytes(), &created))
		require.Equal(s.T(), "active", created.Status)

		// Same guest, same night.
		rec = httptest.PerformRequestWithCookies(s.T(), s.Router, http.MethodPost, reservationsURL, reqBody, cookies)
		httptest.AssertRejection(s.T(), rec, "duplicate_for_guest", true)

		rec = httptest.PerformRequestWithCookies(s.T(), s.Router, http.MethodGet, reservationsURL+"/mine", nil, cookies)
		require.Equal(s.T(), http.StatusOK, rec.Code)
		var mine []map[string]any
		require.NoError(s.T(), json.Unmarshal(rec.Body.Bytes(), &mine))
		require.Len(s.T(), mine, 1)

		cancelURL := fmt.Sprintf("%s/%s/cancel", reservationsURL, created.ID)
		rec = httptest.PerformRequestWithCookies(s.T(), s.Router, http.MethodPost, cancelURL, nil, cookies)
		require.Equal(s.T(), http.StatusNoContent, rec.Code)

		// The night is free again for the same guest.
		rec = httptest.PerformRequestWithCookies(s.T(), s.Router, http.MethodPost, reservationsURL, reqBody, cookies)
		require.Equal(s.T(), http.StatusCreated, rec.Code, rec.Body.String())
	})

	s.Run("category fills at four distinct guests", func() {
		date := s.bookableDate()

		for i := range 4 {
			cookies := s.signUp(fmt.Sprintf("guest%d@example.com", i))
			reqBody := builder.NewReservationBuilder().
				WithGuestName(fmt.Sprintf("Guest %d", i)).
				WithContactEmail(fmt.Sprintf("guest%d@example.com", i)).
				WithCategory("feminino").
				WithDate(date).
				BuildCreateRequestDTO()

			rec := httptest.PerformRequestWithCookies(s.T(), s.Router, http.MethodPost, reservationsURL, reqBody, cookies)
			require.Equal(s.T(), http.StatusCreated, rec.Code, rec.Body.String())
		}

		cookies := s.signUp("latecomer@example.com")
		reqBody := builder.NewReservationBuilder().
			WithGuestName("Late Comer").
			WithContactEmail("latecomer@example.com").
			WithCategory("feminino").
			WithDate(date).
			BuildCreateRequestDTO()

		rec := httptest.PerformRequestWithCookies(s.T(), s.Router, http.MethodPost, reservationsURL, reqBody, cookies)
		httptest.AssertRejection(s.T(), rec, "category_full", true)

		// The other category still admits.
		reqBody.Category = "masculino"
		rec = httptest.PerformRequestWithCookies(s.T(), s.Router, http.MethodPost, reservationsURL, reqBody, cookies)
		require.Equal(s.T(), http.StatusCreated, rec.Code, rec.Body.String())
	})

	s.Run("only the owner may change a reservation", func() {
		owner := s.signUp("owner@example.com")
		date := s.bookableDate()

		reqBody := builder.NewReservationBuilder().
			WithContactEmail("owner@example.com").
			WithDate(date).
			BuildCreateRequestDTO()

		rec := httptest.PerformRequestWithCookies(s.T(), s.Router, http.MethodPost, reservationsURL, reqBody, owner)
		require.Equal(s.T(), http.StatusCreated, rec.Code, rec.Body.String())

		var created struct {
			ID string `json:"id"`
		}
		require.NoError(s.T(), json.Unmarshal(rec.Body.Bytes(), &created))

		intruder := s.signUp("intruder@example.com")
		update := builder.NewReservationBuilder().
			WithGuestName("Hijacked").
			WithDate(date).
			BuildUpdateRequestDTO()

		rec = httptest.PerformRequestWithCookies(s.T(), s.Router, http.MethodPut, reservationsURL+"/"+created.ID, update, intruder)
		require.Equal(s.T(), http.StatusForbidden, rec.Code, rec.Body.String())
	})

	s.Run("admin can export the report", func() {
		// admin@example.com is on the allow-list in the test config
		admin := s.signUp("admin@example.com")

		rec := httptest.PerformRequestWithCookies(s.T(), s.Router, http.MethodGet, reservationsURL+"/report", nil, admin)
		require.Equal(s.T(), http.StatusOK, rec.Code, rec.Body.String())
		require.Contains(s.T(), rec.Header().Get("Content-Disposition"), "reservations.csv")

		guest := s.signUp("plain@example.com")
		rec = httptest.PerformRequestWithCookies(s.T(), s.Router, http.MethodGet, reservationsURL+"/report", nil, guest)
		require.Equal(s.T(), http.StatusForbidden, rec.Code)
	})
}

func (s *reservationSuite) TestScheduleStatus() {
	s.Run("status panel reports the gate and vacancies", func() {
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, statusURL, nil, "")
		require.Equal(s.T(), http.StatusOK, rec.Code, rec.Body.String())

		var status struct {
			WindowKey     string `json:"window_key"`
			Open          bool   `json:"open"`
			StatusMessage string `json:"status_message"`
			Categories    []struct {
				Category  string `json:"category"`
				Vacancies int    `json:"vacancies"`
			} `json:"categories"`
		}
		require.NoError(s.T(), json.Unmarshal(rec.Body.Bytes(), &status))
		require.NotEmpty(s.T(), status.WindowKey)
		require.NotEmpty(s.T(), status.StatusMessage)
		require.Len(s.T(), status.Categories, 2)
	})
}
