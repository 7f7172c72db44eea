package message

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

// @Summary      Create a message
// @Description  Saves a draft, or sends immediately when "send" is true
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body message.CreateMessageRequest true "Message payload"
// @Success      201 {object} message.Message
// @Failure      400 {object} api.ErrorResponse
// @Router       /messages [post]
func (h *Handler) Create(c *gin.Context) {
	caller, ok := access.MustCaller(c)
	if !ok {
		return
	}

	var req CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.RespondBindError(c, err)
		return
	}

	m, err := h.service.Create(c.Request.Context(), caller, req)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, m)
}

// @Summary      Send a draft
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Message ID"
// @Success      200 {object} message.Message
// @Failure      403 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse "Already sent"
// @Router       /messages/{id}/send [post]
func (h *Handler) Send(c *gin.Context) {
	caller, ok := access.MustCaller(c)
	if !ok {
		return
	}
	id, ok := api.IntParam(c, "id")
	if !ok {
		return
	}

	m, err := h.service.Send(c.Request.Context(), caller, id)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, m)
}

// @Summary      Get a message
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Message ID"
// @Success      200 {object} message.Message
// @Failure      404 {object} api.ErrorResponse
// @Router       /messages/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	caller, ok := access.MustCaller(c)
	if !ok {
		return
	}
	id, ok := api.IntParam(c, "id")
	if !ok {
		return
	}

	m, err := h.service.Get(c.Request.Context(), caller, id)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, m)
}

// @Summary      Update a message
// @Description  Receivers may set is_read; senders may edit subject, receiver and body while the message is a draft
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int                          true "Message ID"
// @Param        request body message.UpdateMessageRequest true "Fields to change"
// @Success      200 {object} message.Message
// @Failure      403 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /messages/{id} [patch]
func (h *Handler) Update(c *gin.Context) {
	caller, ok := access.MustCaller(c)
	if !ok {
		return
	}
	id, ok := api.IntParam(c, "id")
	if !ok {
		return
	}

	var req UpdateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.RespondBindError(c, err)
		return
	}

	m, err := h.service.Update(c.Request.Context(), caller, id, req)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, m)
}

// @Summary      Delete a message for the caller
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Message ID"
// @Success      200 {object} api.MessageResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /messages/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	caller, ok := access.MustCaller(c)
	if !ok {
		return
	}
	id, ok := api.IntParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), caller, id); err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Message deleted successfully"})
}

// @Summary      Inbox
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        page      query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} api.Page[message.Message]
// @Router       /messages/inbox [get]
func (h *Handler) Inbox(c *gin.Context) {
	caller, ok := access.MustCaller(c)
	if !ok {
		return
	}
	page, pageSize := api.Pagination(c, defaultPageSize, maxPageSize)

	result, err := h.service.Inbox(c.Request.Context(), caller, page, pageSize)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// @Summary      Sent messages and drafts
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        page      query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} api.Page[message.Message]
// @Router       /messages/sent [get]
func (h *Handler) Sent(c *gin.Context) {
	caller, ok := access.MustCaller(c)
	if !ok {
		return
	}
	page, pageSize := api.Pagination(c, defaultPageSize, maxPageSize)

	result, err := h.service.Sent(c.Request.Context(), caller, page, pageSize)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// @Summary      Unread message count
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} message.UnreadCountResponse
// @Router       /messages/unread-count [get]
func (h *Handler) UnreadCount(c *gin.Context) {
	caller, ok := access.MustCaller(c)
	if !ok {
		return
	}

	n, err := h.service.UnreadCount(c.Request.Context(), caller)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, UnreadCountResponse{UnreadMessages: n})
}
