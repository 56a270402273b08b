//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"lodging-reservations/internal/domain/user"
	"lodging-reservations/internal/handler/api"
	resdto "lodging-reservations/internal/handler/dto/response"
	"lodging-reservations/internal/usecase/commands"
	"lodging-reservations/internal/usecase/queries"
	"lodging-reservations/tests/common/builder"
	"lodging-reservations/tests/common/httptest"
	"lodging-reservations/tests/common/testutil"
	commandsmock "lodging-reservations/tests/mock/commands"
	queriesmock "lodging-reservations/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ReservationHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockCtrl        *gomock.Controller
	mockCommands    *commandsmock.MockReservationCommands
	mockQueries     *queriesmock.MockReservationQueries
	mockOccupancy   *queriesmock.MockOccupancyQueries
	handler         *api.ReservationHandler
	actorID         uuid.UUID
	actorEmail      string
	actorRole       user.Role
}

func (s *ReservationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockReservationCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockReservationQueries(s.mockCtrl)
	s.mockOccupancy = queriesmock.NewMockOccupancyQueries(s.mockCtrl)
	s.handler = api.NewReservationHandler(s.mockCommands, s.mockQueries, s.mockOccupancy)

	s.actorID = uuid.New()
	s.actorEmail = "guest@example.com"
	s.actorRole = user.RoleGuest

	// stands in for RequireAuth so each test controls the actor
	s.router.Use(func(c *gin.Context) {
		c.Set("user_id", s.actorID)
		c.Set("user_email", s.actorEmail)
		c.Set("user_role", s.actorRole)
	})

	s.router.POST("/reservations", s.handler.CreateReservation)
	s.router.GET("/reservations", s.handler.ListReservations)
	s.router.GET("/reservations/mine", s.handler.ListOwnReservations)
	s.router.GET("/reservations/report", s.handler.ExportReport)
	s.router.GET("/reservations/:id", s.handler.GetReservation)
	s.router.PUT("/reservations/:id", s.handler.UpdateReservation)
	s.router.POST("/reservations/:id/cancel", s.handler.CancelReservation)
	s.router.DELETE("/reservations/:id", s.handler.DeleteReservation)
}

func (s *ReservationHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestReservationHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReservationHandlerTestSuite))
}

func (s *ReservationHandlerTestSuite) actor() commands.Actor {
	return commands.Actor{ID: s.actorID, Email: s.actorEmail, Role: s.actorRole}
}

type testCaseReservation struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

func (s *ReservationHandlerTestSuite) TestCreateReservation() {
	url := "/reservations"

	reqBody := builder.NewReservationBuilder().BuildCreateRequestDTO()

	s.Run("success: returns 201 Created with the stored row", func() {
		createdID := uuid.New()
		view := builder.NewReservationBuilder().BuildView()
		view.ID = createdID

		s.mockCommands.EXPECT().Create(gomock.Any(), reqBody, s.actor()).
			Return(createdID, nil).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), createdID).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var response resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(createdID, response.ID)
		s.Equal(view.GuestName, response.GuestName)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		cases := []testCaseReservation{
			{name: "missing field: guest_name", mutate: testutil.Field("guest_name", nil), expectCode: http.StatusBadRequest},
			{name: "missing field: category", mutate: testutil.Field("category", nil), expectCode: http.StatusBadRequest},
			{name: "missing field: date", mutate: testutil.Field("date", nil), expectCode: http.StatusBadRequest},
			{name: "empty guest_name", mutate: testutil.Field("guest_name", ""), expectCode: http.StatusBadRequest},
			{name: "guest_name too long", mutate: testutil.Field("guest_name", strings.Repeat("a", 121)), expectCode: http.StatusBadRequest},
			{name: "invalid contact_email", mutate: testutil.Field("contact_email", "not-an-email"), expectCode: http.StatusBadRequest},
		}

		for _, tc := range cases {
			s.Run(tc.name, func() {
				body := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")
				s.Equal(tc.expectCode, rec.Code, rec.Body.String())
			})
		}
	})

	s.Run("error: 409 Conflict for each refusal with reason and clear_form", func() {
		rejections := []struct {
			name      string
			err       error
			reason    string
			clearForm bool
		}{
			{name: "system closed", err: commands.ErrSystemClosed, reason: "system_closed", clearForm: false},
			{name: "date in past", err: commands.ErrDateInPast, reason: "date_in_past", clearForm: true},
			{name: "outside window", err: commands.ErrOutsideWindow, reason: "outside_window", clearForm: true},
			{name: "total full", err: commands.ErrTotalFull, reason: "total_full", clearForm: true},
			{name: "category full", err: commands.ErrCategoryFull, reason: "category_full", clearForm: true},
			{name: "duplicate for guest", err: commands.ErrDuplicateReservation, reason: "duplicate_for_guest", clearForm: true},
		}

		for _, tc := range rejections {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Create(gomock.Any(), reqBody, s.actor()).
					Return(uuid.Nil, tc.err).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
				httptest.AssertRejection(s.T(), rec, tc.reason, tc.clearForm)
			})
		}
	})

	s.Run("error: 422 Unprocessable Entity on domain validation failure", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), reqBody, s.actor()).
			Return(uuid.Nil, commands.ErrDomainValidation).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "Invalid reservation data")
	})
}

func (s *ReservationHandlerTestSuite) TestListReservations() {
	url := "/reservations"

	s.Run("success: returns 200 OK with all rows", func() {
		views := []*queries.ReservationView{
			builder.NewReservationBuilder().BuildView(),
			builder.NewReservationBuilder().WithCategory("masculino").WithGuestName("Pedro Lima").BuildView(),
		}
		s.mockQueries.EXPECT().List(gomock.Any(), queries.ListFilter{}).
			Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var response []*resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 2)
	})

	s.Run("success: forwards date, category and name filters", func() {
		filter := queries.ListFilter{Date: "2026-08-29", Category: "feminino", Name: "Maria"}
		s.mockQueries.EXPECT().List(gomock.Any(), filter).
			Return([]*queries.ReservationView{}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			url+"?date=2026-08-29&category=feminino&name=Maria", nil, "")
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("error: 400 Bad Request on invalid filter", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), gomock.Any()).
			Return(nil, queries.ErrInvalidFilter).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?category=unknown", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid filter")
	})
}

func (s *ReservationHandlerTestSuite) TestListOwnReservations() {
	s.Run("success: queries by the authenticated identity", func() {
		views := []*queries.ReservationView{builder.NewReservationBuilder().BuildView()}
		s.mockQueries.EXPECT().ListByGuest(gomock.Any(), s.actorEmail).
			Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/mine", nil, "")

		var response []*resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 1)
	})
}

func (s *ReservationHandlerTestSuite) TestGetReservation() {
	s.Run("success: returns 200 OK for an existing row", func() {
		view := builder.NewReservationBuilder().BuildView()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/"+view.ID.String(), nil, "")

		var response resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(view.ID, response.ID)
	})

	s.Run("error: 400 Bad Request on malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/not-a-uuid", nil, "")
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *ReservationHandlerTestSuite) TestUpdateReservation() {
	id := uuid.New()
	url := "/reservations/" + id.String()
	reqBody := builder.NewReservationBuilder().BuildUpdateRequestDTO()

	s.Run("success: returns 200 OK with the revised row", func() {
		view := builder.NewReservationBuilder().BuildView()
		view.ID = id

		s.mockCommands.EXPECT().Update(gomock.Any(), id, reqBody, s.actor()).
			Return(nil).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), id).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, reqBody, "")

		var response resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(id, response.ID)
	})

	s.Run("error: 404 Not Found for a missing row", func() {
		s.mockCommands.EXPECT().Update(gomock.Any(), id, reqBody, s.actor()).
			Return(commands.ErrReservationNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Reservation not found")
	})

	s.Run("error: 403 Forbidden for someone else's row", func() {
		s.mockCommands.EXPECT().Update(gomock.Any(), id, reqBody, s.actor()).
			Return(commands.ErrNotReservationOwner).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "do not own")
	})

	s.Run("error: 409 Conflict when the revised slot is taken", func() {
		s.mockCommands.EXPECT().Update(gomock.Any(), id, reqBody, s.actor()).
			Return(commands.ErrCategoryFull).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, reqBody, "")
		httptest.AssertRejection(s.T(), rec, "category_full", true)
	})

	s.Run("error: 409 Conflict when the row is cancelled", func() {
		s.mockCommands.EXPECT().Update(gomock.Any(), id, reqBody, s.actor()).
			Return(commands.ErrReservationCancelled).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "already cancelled")
	})
}

func (s *ReservationHandlerTestSuite) TestCancelReservation() {
	id := uuid.New()
	url := "/reservations/" + id.String() + "/cancel"

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), id, s.actor()).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 409 Conflict when already cancelled", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), id, s.actor()).
			Return(commands.ErrReservationCancelled).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "already cancelled")
	})

	s.Run("error: 403 Forbidden for someone else's row", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), id, s.actor()).
			Return(commands.ErrNotReservationOwner).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "do not own")
	})
}

func (s *ReservationHandlerTestSuite) TestDeleteReservation() {
	id := uuid.New()
	url := "/reservations/" + id.String()

	s.Run("success: admin delete returns 204 No Content", func() {
		s.actorRole = user.RoleAdmin

		s.mockCommands.EXPECT().Delete(gomock.Any(), id, s.actor()).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 403 Forbidden for a guest", func() {
		s.actorRole = user.RoleGuest

		s.mockCommands.EXPECT().Delete(gomock.Any(), id, s.actor()).
			Return(commands.ErrNotReservationOwner).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "")
		s.Equal(http.StatusForbidden, rec.Code)
	})
}

func (s *ReservationHandlerTestSuite) TestExportReport() {
	url := "/reservations/report"

	s.Run("success: streams the CSV attachment", func() {
		rows := []queries.ReportRow{
			{GuestName: "Maria Souza", Category: "Feminino", Date: "29/08/2026", Status: "active", Email: "guest@example.com"},
			{GuestName: "Pedro Lima", Category: "Masculino", Date: "30/08/2026", Status: "cancelled", Email: "pedro@example.com"},
		}
		s.mockOccupancy.EXPECT().Report(gomock.Any(), queries.ListFilter{}).
			Return(rows, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		s.Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Header().Get("Content-Disposition"), "reservations.csv")
		body := rec.Body.String()
		s.Contains(body, "Nome,Categoria,Data,Status,Email")
		s.Contains(body, "Maria Souza,Feminino,29/08/2026,active,guest@example.com")
	})

	s.Run("success: forwards the listing filters", func() {
		filter := queries.ListFilter{Date: "2026-08-29", Category: "feminino", Name: "Maria"}
		s.mockOccupancy.EXPECT().Report(gomock.Any(), filter).
			Return([]queries.ReportRow{}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			url+"?date=2026-08-29&category=feminino&name=Maria", nil, "")
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("error: 400 Bad Request on invalid filter", func() {
		s.mockOccupancy.EXPECT().Report(gomock.Any(), gomock.Any()).
			Return(nil, queries.ErrInvalidFilter).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?category=unknown", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid filter")
	})
}

func (s *ReservationHandlerTestSuite) TestInternalErrorsCarryCause() {
	s.Run("list failure surfaces the store error", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), queries.ListFilter{}).
			Return(nil, errors.New("failed to query reservations: connection refused")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError,
			"Internal server error: failed to query reservations: connection refused")
	})

	s.Run("unmapped command failure surfaces the store error", func() {
		reqBody := builder.NewReservationBuilder().BuildCreateRequestDTO()
		s.mockCommands.EXPECT().Create(gomock.Any(), reqBody, s.actor()).
			Return(uuid.Nil, errors.New("failed to save reservation: timeout")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/reservations", reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError,
			"failed to save reservation: timeout")
	})
}
