package customer

import (
	"net/http"
	"strconv"

	"fitnessmanager/internal/api"
	"fitnessmanager/internal/auth"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Register godoc
// @Summary      Register new customer
// @Description  Creates a member account and returns access & refresh tokens.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      RegisterRequest  true  "Registration data"
// @Success      201      {object}  LoginResponse
// @Failure      400      {object}  api.ValidationErrorResponse
// @Failure      409      {object}  api.ErrorResponse
// @Router       /auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.RespondBindError(c, err)
		return
	}

	resp, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Login godoc
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      LoginRequest  true  "Credentials"
// @Success      200      {object}  LoginResponse
// @Failure      400      {object}  api.ValidationErrorResponse
// @Failure      401      {object}  api.ErrorResponse
// @Router       /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.RespondBindError(c, err)
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Refresh godoc
// @Summary      Refresh access token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      RefreshRequest  true  "Refresh token"
// @Success      200      {object}  LoginResponse
// @Failure      401      {object}  api.ErrorResponse
// @Router       /auth/refresh [post]
func (h *Handler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.RespondBindError(c, err)
		return
	}

	resp, err := h.service.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetMe godoc
// @Summary      Current customer
// @Tags         customers
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  Customer
// @Failure      401  {object}  api.ErrorResponse
// @Router       /me [get]
func (h *Handler) GetMe(c *gin.Context) {
	id, ok := auth.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	customer, err := h.service.GetByID(c.Request.Context(), id.CustomerID)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, customer)
}

// CustomerData godoc
// @Summary      Customer data export
// @Description  Staff only. Keys are field names for lang=en and Spanish labels for lang=es.
// @Tags         customers
// @Security     BearerAuth
// @Produce      json
// @Param        lang  query     string  false  "en or es"  default(en)
// @Param        all   query     bool    false  "Include every field"
// @Success      200   {object}  CustomerDataResponse
// @Failure      400   {object}  api.ErrorResponse
// @Failure      403   {object}  api.ErrorResponse
// @Router       /customer-data [get]
func (h *Handler) CustomerData(c *gin.Context) {
	lang := c.DefaultQuery("lang", LangEN)
	all, _ := strconv.ParseBool(c.DefaultQuery("all", "false"))

	data, err := h.service.CustomerData(c.Request.Context(), lang, all)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, CustomerDataResponse{CustomerData: data})
}

// CustomerFields godoc
// @Summary      Customer data field metadata
// @Description  Staff only. Lists the fields of the customer-data export with their label in lang and whether members may edit them.
// @Tags         customers
// @Security     BearerAuth
// @Produce      json
// @Param        lang  query     string  false  "en or es"  default(en)
// @Param        all   query     bool    false  "Include every field"
// @Success      200   {object}  CustomerFieldsResponse
// @Failure      400   {object}  api.ErrorResponse
// @Failure      403   {object}  api.ErrorResponse
// @Router       /customer-data/fields [get]
func (h *Handler) CustomerFields(c *gin.Context) {
	all, _ := strconv.ParseBool(c.DefaultQuery("all", "false"))

	info, err := Describe(c.DefaultQuery("lang", LangEN), all)
	if err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, CustomerFieldsResponse{Fields: info})
}

// AddToGroup godoc
// @Summary      Add customer to access group
// @Tags         admin,customers
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        customerID  path      int                 true  "Customer ID"
// @Param        request     body      AddToGroupRequest   true  "Group"
// @Success      200         {object}  api.MessageResponse
// @Failure      404         {object}  api.ErrorResponse
// @Router       /admin/customers/{customerID}/groups [post]
func (h *Handler) AddToGroup(c *gin.Context) {
	customerID, err := strconv.Atoi(c.Param("customerID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid customer ID"})
		return
	}

	var req AddToGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.RespondBindError(c, err)
		return
	}

	if err := h.service.AddToGroup(c.Request.Context(), customerID, req.GroupID); err != nil {
		api.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Customer added to group"})
}
