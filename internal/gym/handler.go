package gym

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

// @Summary      Create a gym
// @Description  Admin-only: create a new gym bound to an access group
// @Tags         admin,gyms
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body gym.CreateGymRequest true "Gym payload"
// @Success      201 {object} gym.Gym
// @Failure      400 {object} api.ErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/gyms [post]
func (h *Handler) CreateGym(c *gin.Context) {
	var req CreateGymRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.RespondBindError(c, err)
		return
	}

	gym, err := h.service.CreateGym(c.Request.Context(), req)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gym)
}

// @Summary      Update a gym
// @Tags         admin,gyms
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Gym ID"
// @Param        request body gym.UpdateGymRequest true "Fields to change"
// @Success      200 {object} gym.Gym
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /admin/gyms/{id} [put]
func (h *Handler) UpdateGym(c *gin.Context) {
	id, ok := api.UUIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateGymRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.RespondBindError(c, err)
		return
	}

	gym, err := h.service.UpdateGym(c.Request.Context(), id, req)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gym)
}

// @Summary      Delete a gym
// @Description  Removes the gym with its rooms, courses, schedules and reservations
// @Tags         admin,gyms
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Gym ID"
// @Success      200 {object} api.MessageResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /admin/gyms/{id} [delete]
func (h *Handler) DeleteGym(c *gin.Context) {
	id, ok := api.UUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteGym(c.Request.Context(), id); err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Gym has been deleted."})
}

// @Summary      List all gyms
// @Tags         admin,gyms
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} gym.Gym
// @Router       /admin/gyms [get]
func (h *Handler) ListAllGyms(c *gin.Context) {
	gyms, err := h.service.ListAllGyms(c.Request.Context())
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gyms)
}

// @Summary      List gyms in the caller's groups
// @Tags         gyms
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} gym.Gym
// @Failure      401 {object} api.ErrorResponse
// @Router       /gyms [get]
func (h *Handler) ListGyms(c *gin.Context) {
	caller, ok := access.MustCaller(c)
	if !ok {
		return
	}

	gyms, err := h.service.ListGyms(c.Request.Context(), caller)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gyms)
}

// @Summary      Get a gym
// @Tags         gyms
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Gym ID"
// @Success      200 {object} gym.Gym
// @Failure      404 {object} api.ErrorResponse
// @Router       /gyms/{id} [get]
func (h *Handler) GetGym(c *gin.Context) {
	caller, ok := access.MustCaller(c)
	if !ok {
		return
	}
	id, ok := api.UUIDParam(c, "id")
	if !ok {
		return
	}

	gym, err := h.service.GetGym(c.Request.Context(), caller, id)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gym)
}

// @Summary      Create a room
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body gym.CreateRoomRequest true "Room payload"
// @Success      201 {object} gym.Room
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /rooms [post]
func (h *Handler) CreateRoom(c *gin.Context) {
	caller, ok := access.MustCaller(c)
	if !ok {
		return
	}

	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.RespondBindError(c, err)
		return
	}

	room, err := h.service.CreateRoom(c.Request.Context(), caller, req)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, room)
}

// @Summary      List rooms
// @Tags         rooms
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} gym.Room
// @Router       /rooms [get]
func (h *Handler) ListRooms(c *gin.Context) {
	caller, ok := access.MustCaller(c)
	if !ok {
		return
	}

	rooms, err := h.service.ListRooms(c.Request.Context(), caller)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, rooms)
}

// @Summary      Get a room
// @Tags         rooms
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Room ID"
// @Success      200 {object} gym.Room
// @Failure      404 {object} api.ErrorResponse
// @Router       /rooms/{id} [get]
func (h *Handler) GetRoom(c *gin.Context) {
	caller, ok := access.MustCaller(c)
	if !ok {
		return
	}
	id, ok := api.UUIDParam(c, "id")
	if !ok {
		return
	}

	room, err := h.service.GetRoom(c.Request.Context(), caller, id)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, room)
}

// @Summary      Update a room
// @Description  Partial update; omitted fields keep their values
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Room ID"
// @Param        request body gym.UpdateRoomRequest true "Fields to change"
// @Success      200 {object} gym.Room
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /rooms/{id} [put]
func (h *Handler) UpdateRoom(c *gin.Context) {
	caller, ok := access.MustCaller(c)
	if !ok {
		return
	}
	id, ok := api.UUIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.RespondBindError(c, err)
		return
	}

	room, err := h.service.UpdateRoom(c.Request.Context(), caller, id, req)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, room)
}

// @Summary      Delete a room
// @Tags         rooms
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Room ID"
// @Success      200 {object} api.MessageResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /rooms/{id} [delete]
func (h *Handler) DeleteRoom(c *gin.Context) {
	caller, ok := access.MustCaller(c)
	if !ok {
		return
	}
	id, ok := api.UUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteRoom(c.Request.Context(), caller, id); err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Room has been deleted."})
}

// @Summary      Create a gym membership
// @Tags         admin,memberships
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body gym.CreateMembershipRequest true "Membership payload"
// @Success      201 {object} gym.Membership
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /admin/memberships [post]
func (h *Handler) CreateMembership(c *gin.Context) {
	var req CreateMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.RespondBindError(c, err)
		return
	}

	m, err := h.service.CreateMembership(c.Request.Context(), req)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, m)
}

// @Summary      List my memberships
// @Tags         memberships
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} gym.Membership
// @Router       /memberships [get]
func (h *Handler) ListMyMemberships(c *gin.Context) {
	caller, ok := access.MustCaller(c)
	if !ok {
		return
	}

	ms, err := h.service.ListMyMemberships(c.Request.Context(), caller)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ms)
}

// @Summary      List memberships of a gym
// @Tags         memberships
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Gym ID"
// @Success      200 {array} gym.Membership
// @Failure      404 {object} api.ErrorResponse
// @Router       /gyms/{id}/memberships [get]
func (h *Handler) ListGymMemberships(c *gin.Context) {
	caller, ok := access.MustCaller(c)
	if !ok {
		return
	}
	id, ok := api.UUIDParam(c, "id")
	if !ok {
		return
	}

	ms, err := h.service.ListGymMemberships(c.Request.Context(), caller, id)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ms)
}
