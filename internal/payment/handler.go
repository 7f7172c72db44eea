package payment

import (
	"net/http"
	"strconv"

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

// @Summary      Record a payment
// @Description  Admin only
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body payment.CreatePaymentRequest true "Payment payload"
// @Success      201 {object} payment.Payment
// @Failure      400 {object} api.ValidationErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /admin/payments [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.RespondBindError(c, err)
		return
	}

	p, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, p)
}

// @Summary      List payments of a customer
// @Description  Admin only
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        customerID path int true "Customer ID"
// @Param        limit  query int false "Max results (default 50)"
// @Param        offset query int false "Offset"
// @Success      200 {array} payment.Payment
// @Failure      404 {object} api.ErrorResponse
// @Router       /admin/customers/{customerID}/payments [get]
func (h *Handler) ListByCustomer(c *gin.Context) {
	customerID, ok := api.IntParam(c, "customerID")
	if !ok {
		return
	}
	h.list(c, customerID)
}

// @Summary      List my payments
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query int false "Max results (default 50)"
// @Param        offset query int false "Offset"
// @Success      200 {array} payment.Payment
// @Router       /payments [get]
func (h *Handler) ListMine(c *gin.Context) {
	caller, ok := access.MustCaller(c)
	if !ok {
		return
	}
	h.list(c, caller.CustomerID)
}

func (h *Handler) list(c *gin.Context, customerID int) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if offset < 0 {
		offset = 0
	}

	payments, err := h.service.ListByCustomer(c.Request.Context(), customerID, limit, offset)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, payments)
}
