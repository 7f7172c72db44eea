package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UUIDParam parses the named path parameter. On failure it writes a 400
// response and returns false.
func UUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}

// IntParam is UUIDParam for legacy integer identifiers.
func IntParam(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid " + name})
		return 0, false
	}
	return id, true
}

// Pagination reads page and page_size query values, clamping page_size to
// [1, maxPageSize].
func Pagination(c *gin.Context, defaultPageSize, maxPageSize int) (page, pageSize int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	pageSize, err = strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultPageSize)))
	if err != nil || pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

// DateQuery parses an optional YYYY-MM-DD query value. A missing value
// yields nil; a malformed one writes a 400 response and returns false.
func DateQuery(c *gin.Context, name string) (*Date, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	d, err := ParseDate(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid " + name, Detail: "expected YYYY-MM-DD"})
		return nil, false
	}
	return &d, true
}
