package api

import (
	"net/http"

	"lodging-reservations/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type ScheduleHandler struct {
	occupancyQueries queries.OccupancyQueries
}

func NewScheduleHandler(occupancyQueries queries.OccupancyQueries) *ScheduleHandler {
	return &ScheduleHandler{
		occupancyQueries: occupancyQueries,
	}
}

// @Summary Booking window status
// @Description Current window, gate state, suggested date and live vacancies
// @Tags schedule
// @Produce json
// @Success 200 {object} queries.VacancyView
// @Router /schedule/status [get]
func (h *ScheduleHandler) Status(c *gin.Context) {
	view, err := h.occupancyQueries.VacancyStatus(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, view)
}
