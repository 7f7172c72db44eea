package course

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
	return &Handler{service: service}
}

// @Summary      Create a course
// @Description  The gym, and the room when given, must belong to one of the caller's groups
// @Tags         courses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body course.CreateCourseRequest true "Course payload"
// @Success      201 {object} course.Course
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /courses [post]
func (h *Handler) CreateCourse(c *gin.Context) {
	caller, ok := access.MustCaller(c)
	if !ok {
		return
	}

	var req CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.RespondBindError(c, err)
		return
	}

	course, err := h.service.CreateCourse(c.Request.Context(), caller, req)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, course)
}

// @Summary      List courses
// @Tags         courses
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} course.Course
// @Router       /courses [get]
func (h *Handler) ListCourses(c *gin.Context) {
	caller, ok := access.MustCaller(c)
	if !ok {
		return
	}

	courses, err := h.service.ListCourses(c.Request.Context(), caller)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, courses)
}

// @Summary      Get a course
// @Tags         courses
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Course ID"
// @Success      200 {object} course.Course
// @Failure      404 {object} api.ErrorResponse
// @Router       /courses/{id} [get]
func (h *Handler) GetCourse(c *gin.Context) {
	caller, ok := access.MustCaller(c)
	if !ok {
		return
	}
	id, ok := api.UUIDParam(c, "id")
	if !ok {
		return
	}

	course, err := h.service.GetCourse(c.Request.Context(), caller, id)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, course)
}

// @Summary      Update a course
// @Description  Partial update; omitted fields keep their values
// @Tags         courses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Course ID"
// @Param        request body course.UpdateCourseRequest true "Fields to change"
// @Success      200 {object} course.Course
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /courses/{id} [put]
func (h *Handler) UpdateCourse(c *gin.Context) {
	caller, ok := access.MustCaller(c)
	if !ok {
		return
	}
	id, ok := api.UUIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.RespondBindError(c, err)
		return
	}

	course, err := h.service.UpdateCourse(c.Request.Context(), caller, id, req)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, course)
}

// @Summary      Delete a course
// @Tags         courses
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Course ID"
// @Success      200 {object} api.MessageResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /courses/{id} [delete]
func (h *Handler) DeleteCourse(c *gin.Context) {
	caller, ok := access.MustCaller(c)
	if !ok {
		return
	}
	id, ok := api.UUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteCourse(c.Request.Context(), caller, id); err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Course has been deleted."})
}

// @Summary      List schedules of a course
// @Tags         schedules
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Course ID"
// @Success      200 {array} course.Schedule
// @Failure      404 {object} api.ErrorResponse
// @Router       /courses/{id}/schedules [get]
func (h *Handler) ListSchedules(c *gin.Context) {
	caller, ok := access.MustCaller(c)
	if !ok {
		return
	}
	id, ok := api.UUIDParam(c, "id")
	if !ok {
		return
	}

	schedules, err := h.service.ListSchedules(c.Request.Context(), caller, id)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, schedules)
}

// @Summary      Create a weekly schedule
// @Description  day_of_week runs from 0 (Monday) to 6 (Sunday); times are HH:MM
// @Tags         schedules
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body course.CreateScheduleRequest true "Schedule payload"
// @Success      201 {object} course.Schedule
// @Failure      400 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /schedules [post]
func (h *Handler) CreateSchedule(c *gin.Context) {
	caller, ok := access.MustCaller(c)
	if !ok {
		return
	}

	var req CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.RespondBindError(c, err)
		return
	}

	sched, err := h.service.CreateSchedule(c.Request.Context(), caller, req)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, sched)
}

// @Summary      Get a schedule
// @Tags         schedules
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Schedule ID"
// @Success      200 {object} course.Schedule
// @Failure      404 {object} api.ErrorResponse
// @Router       /schedules/{id} [get]
func (h *Handler) GetSchedule(c *gin.Context) {
	caller, ok := access.MustCaller(c)
	if !ok {
		return
	}
	id, ok := api.UUIDParam(c, "id")
	if !ok {
		return
	}

	sched, err := h.service.GetSchedule(c.Request.Context(), caller, id)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, sched)
}

// @Summary      Delete a schedule
// @Description  Also removes its instances and reservations
// @Tags         schedules
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Schedule ID"
// @Success      200 {object} api.MessageResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /schedules/{id} [delete]
func (h *Handler) DeleteSchedule(c *gin.Context) {
	caller, ok := access.MustCaller(c)
	if !ok {
		return
	}
	id, ok := api.UUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteSchedule(c.Request.Context(), caller, id); err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Course schedule has been deleted."})
}

// @Summary      List occurrences of a schedule
// @Tags         schedules
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string true  "Schedule ID"
// @Param        from query string false "First day, YYYY-MM-DD (default today)"
// @Param        to   query string false "Last day, YYYY-MM-DD (default from + 27 days)"
// @Success      200 {array} course.Occurrence
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /schedules/{id}/occurrences [get]
func (h *Handler) Occurrences(c *gin.Context) {
	caller, ok := access.MustCaller(c)
	if !ok {
		return
	}
	id, ok := api.UUIDParam(c, "id")
	if !ok {
		return
	}
	from, ok := api.DateQuery(c, "from")
	if !ok {
		return
	}
	to, ok := api.DateQuery(c, "to")
	if !ok {
		return
	}

	occurrences, err := h.service.Occurrences(c.Request.Context(), caller, id, from, to)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, occurrences)
}

// @Summary      Materialize a course instance
// @Description  Idempotent per (schedule, date)
// @Tags         schedules
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Schedule ID"
// @Param        request body course.CreateInstanceRequest true "Occurrence date"
// @Success      201 {object} course.Instance
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /schedules/{id}/instances [post]
func (h *Handler) MaterializeInstance(c *gin.Context) {
	caller, ok := access.MustCaller(c)
	if !ok {
		return
	}
	id, ok := api.UUIDParam(c, "id")
	if !ok {
		return
	}

	var req CreateInstanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.RespondBindError(c, err)
		return
	}

	inst, err := h.service.MaterializeInstance(c.Request.Context(), caller, id, *req.Date)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, inst)
}

// @Summary      List materialized instances of a schedule
// @Tags         schedules
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Schedule ID"
// @Success      200 {array} course.Instance
// @Failure      404 {object} api.ErrorResponse
// @Router       /schedules/{id}/instances [get]
func (h *Handler) ListInstances(c *gin.Context) {
	caller, ok := access.MustCaller(c)
	if !ok {
		return
	}
	id, ok := api.UUIDParam(c, "id")
	if !ok {
		return
	}

	instances, err := h.service.ListInstances(c.Request.Context(), caller, id)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, instances)
}
