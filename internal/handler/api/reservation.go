package api

import (
	"encoding/csv"
	"errors"
	"net/http"

	reqdto "lodging-reservations/internal/handler/dto/request"
	resdto "lodging-reservations/internal/handler/dto/response"
	"lodging-reservations/internal/handler/middleware"
	"lodging-reservations/internal/usecase/commands"
	"lodging-reservations/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReservationHandler struct {
	reservationCommands commands.ReservationCommands
	reservationQueries  queries.ReservationQueries
	occupancyQueries    queries.OccupancyQueries
}

func NewReservationHandler(
	reservationCommands commands.ReservationCommands,
	reservationQueries queries.ReservationQueries,
	occupancyQueries queries.OccupancyQueries,
) *ReservationHandler {
	return &ReservationHandler{
		reservationCommands: reservationCommands,
		reservationQueries:  reservationQueries,
		occupancyQueries:    occupancyQueries,
	}
}

// @Summary Create reservation
// @Description Book a night; the admission rules run atomically against live occupancy
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateReservationRequest true "Reservation request"
// @Success 201 {object} resdto.ReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /reservations [post]
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.CreateReservationRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	id, err := h.reservationCommands.Create(c.Request.Context(), req, actor)
	if err != nil {
		h.respondCommandError(c, err)
		return
	}

	view, err := h.reservationQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		h.respondInternal(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromReservationView(view))
}

// @Summary List reservations
// @Description List all reservations, newest first, with optional date/category/name filters
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param date query string false "Filter by date (YYYY-MM-DD)"
// @Param category query string false "Filter by category"
// @Param name query string false "Filter by guest name substring"
// @Success 200 {array} resdto.ReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /reservations [get]
func (h *ReservationHandler) ListReservations(c *gin.Context) {
	filter := queries.ListFilter{
		Date:     c.Query("date"),
		Category: c.Query("category"),
		Name:     c.Query("name"),
	}

	views, err := h.reservationQueries.List(c.Request.Context(), filter)
	if err != nil {
		if errors.Is(err, queries.ErrInvalidFilter) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid filter",
			})
			return
		}
		h.respondInternal(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationViews(views))
}

// @Summary List own reservations
// @Description List the authenticated guest's reservations, newest date first
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.ReservationResponse
// @Failure 401 {object} map[string]string
// @Router /reservations/mine [get]
func (h *ReservationHandler) ListOwnReservations(c *gin.Context) {
	email, ok := middleware.GetUserEmail(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	views, err := h.reservationQueries.ListByGuest(c.Request.Context(), email)
	if err != nil {
		h.respondInternal(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationViews(views))
}

// @Summary Get reservation
// @Description Get reservation by ID
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /reservations/{id} [get]
func (h *ReservationHandler) GetReservation(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	view, err := h.reservationQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Reservation not found",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary Update reservation
// @Description Edit name, category or date; the admission rules re-run, skipping this row
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Param request body reqdto.UpdateReservationRequest true "Update request"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /reservations/{id} [put]
func (h *ReservationHandler) UpdateReservation(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req reqdto.UpdateReservationRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	if err := h.reservationCommands.Update(c.Request.Context(), id, req, actor); err != nil {
		h.respondCommandError(c, err)
		return
	}

	view, err := h.reservationQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		h.respondInternal(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary Cancel reservation
// @Description Release the slot; the row stays in history
// @Tags reservations
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /reservations/{id}/cancel [post]
func (h *ReservationHandler) CancelReservation(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.reservationCommands.Cancel(c.Request.Context(), id, actor); err != nil {
		h.respondCommandError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Delete reservation
// @Description Remove the row entirely (administrators only)
// @Tags reservations
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /reservations/{id} [delete]
func (h *ReservationHandler) DeleteReservation(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.reservationCommands.Delete(c.Request.Context(), id, actor); err != nil {
		h.respondCommandError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Export report
// @Description Download the reservations matching the listing filters as CSV (administrators only)
// @Tags reservations
// @Produce text/csv
// @Security BearerAuth
// @Param date query string false "Filter by date (YYYY-MM-DD)"
// @Param category query string false "Filter by category"
// @Param name query string false "Filter by guest name substring"
// @Success 200 {string} string
// @Router /reservations/report [get]
func (h *ReservationHandler) ExportReport(c *gin.Context) {
	filter := queries.ListFilter{
		Date:     c.Query("date"),
		Category: c.Query("category"),
		Name:     c.Query("name"),
	}

	rows, err := h.occupancyQueries.Report(c.Request.Context(), filter)
	if err != nil {
		if errors.Is(err, queries.ErrInvalidFilter) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid filter",
			})
			return
		}
		h.respondInternal(c, err)
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="reservations.csv"`)

	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{"Nome", "Categoria", "Data", "Status", "Email"})
	for _, row := range rows {
		_ = w.Write([]string{row.GuestName, row.Category, row.Date, row.Status, row.Email})
	}
	w.Flush()
}

func (h *ReservationHandler) parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid reservation ID format",
		})
		return uuid.Nil, false
	}
	return id, true
}

func (h *ReservationHandler) respondCommandError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrReservationNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Reservation not found",
		})
	case errors.Is(err, commands.ErrNotReservationOwner):
		c.JSON(http.StatusForbidden, gin.H{
			"error": "You do not own this reservation",
		})
	case errors.Is(err, commands.ErrSystemClosed):
		c.JSON(http.StatusConflict, gin.H{
			"error":      "Reservations are closed until Friday 12:00",
			"reason":     "system_closed",
			"clear_form": false,
		})
	case errors.Is(err, commands.ErrDateInPast):
		h.respondRejection(c, "Reservation date is in the past", "date_in_past")
	case errors.Is(err, commands.ErrOutsideWindow):
		h.respondRejection(c, "Reservation date is outside the current week", "outside_window")
	case errors.Is(err, commands.ErrTotalFull):
		h.respondRejection(c, "No vacancies left this week", "total_full")
	case errors.Is(err, commands.ErrCategoryFull):
		h.respondRejection(c, "No vacancies left in this category", "category_full")
	case errors.Is(err, commands.ErrDuplicateReservation):
		h.respondRejection(c, "You already have a reservation for this date", "duplicate_for_guest")
	case errors.Is(err, commands.ErrReservationCancelled):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Reservation is already cancelled",
		})
	case errors.Is(err, commands.ErrDomainValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Invalid reservation data",
		})
	default:
		h.respondInternal(c, err)
	}
}

// respondInternal surfaces the underlying store failure in the payload so the
// client can show what actually went wrong.
func (h *ReservationHandler) respondInternal(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": "Internal server error: " + err.Error(),
	})
}

// respondRejection carries the machine-readable reason and the form-clearing
// hint every refusal except the closed gate implies.
func (h *ReservationHandler) respondRejection(c *gin.Context, msg, reason string) {
	c.JSON(http.StatusConflict, gin.H{
		"error":      msg,
		"reason":     reason,
		"clear_form": true,
	})
}
