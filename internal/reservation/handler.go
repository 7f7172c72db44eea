package reservation

import (
	"net/http"

	"fitnessmanager/internal/access"
	"fitnessmanager/internal/api"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
	}
}

// @Summary      Reserve a course occurrence
// @Description  Books the caller, or with staff rights another customer, onto a schedule on a given date
// @Tags         reservations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body reservation.CreateReservationRequest true "Reservation payload"
// @Success      201 {object} reservation.Reservation
// @Failure      400 {object} api.ErrorResponse "Past date or not an occurrence of the schedule"
// @Failure      403 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse "Course full or duplicate reservation"
// @Router       /reservations [post]
func (h *Handler) Reserve(c *gin.Context) {
	caller, ok := access.MustCaller(c)
	if !ok {
		return
	}

	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.RespondBindError(c, err)
		return
	}

	res, err := h.service.Reserve(c.Request.Context(), caller, req)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

// @Summary      List my reservations
// @Tags         reservations
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} reservation.ReservationWithDetails
// @Router       /reservations [get]
func (h *Handler) ListMine(c *gin.Context) {
	caller, ok := access.MustCaller(c)
	if !ok {
		return
	}

	reservations, err := h.service.ListMine(c.Request.Context(), caller)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, reservations)
}

// @Summary      Get a reservation
// @Tags         reservations
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Reservation ID"
// @Success      200 {object} reservation.ReservationWithDetails
// @Failure      404 {object} api.ErrorResponse
// @Router       /reservations/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	caller, ok := access.MustCaller(c)
	if !ok {
		return
	}
	id, ok := api.UUIDParam(c, "id")
	if !ok {
		return
	}

	res, err := h.service.Get(c.Request.Context(), caller, id)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// @Summary      Cancel a reservation
// @Tags         reservations
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Reservation ID"
// @Success      200 {object} api.MessageResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /reservations/{id} [delete]
func (h *Handler) Cancel(c *gin.Context) {
	caller, ok := access.MustCaller(c)
	if !ok {
		return
	}
	id, ok := api.UUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Cancel(c.Request.Context(), caller, id); err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Reservation cancelled successfully"})
}

// @Summary      List reservations of a schedule
// @Description  Staff only
// @Tags         reservations,schedules
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string true  "Schedule ID"
// @Param        date query string false "Occurrence date, YYYY-MM-DD"
// @Success      200 {array} reservation.ReservationWithDetails
// @Failure      403 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /schedules/{id}/reservations [get]
func (h *Handler) ListForSchedule(c *gin.Context) {
	caller, ok := access.MustCaller(c)
	if !ok {
		return
	}
	id, ok := api.UUIDParam(c, "id")
	if !ok {
		return
	}
	date, ok := api.DateQuery(c, "date")
	if !ok {
		return
	}

	reservations, err := h.service.ListForSchedule(c.Request.Context(), caller, id, date)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, reservations)
}
