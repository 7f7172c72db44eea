package message

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"fitnessmanager/internal/access"
	"fitnessmanager/internal/api"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupRouter(repo *MockRepository, caller access.Caller) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(newTestService(repo))

	r := gin.New()
	r.Use(func(c *gin.Context) {
		access.WithCaller(c, caller)
	})
	r.POST("/messages", h.Create)
	r.GET("/messages/inbox", h.Inbox)
	r.GET("/messages/unread-count", h.UnreadCount)
	r.GET("/messages/:id", h.Get)
	r.PATCH("/messages/:id", h.Update)
	r.POST("/messages/:id/send", h.Send)
	return r
}

func TestCreate_Handler(t *testing.T) {
	repo := new(MockRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(draft(), nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/messages", bytes.NewBufferString(`{"receiver":2,"subject":"Hi","body":"hello"}`))
	req.Header.Set("Content-Type", "application/json")
	setupRouter(repo, alice).ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/messages", bytes.NewBufferString(`{"subject":"Hi"}`))
	req.Header.Set("Content-Type", "application/json")
	setupRouter(new(MockRepository), alice).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInbox_Handler(t *testing.T) {
	repo := new(MockRepository)
	repo.On("Inbox", mock.Anything, 2, 5, 5).Return([]Message{*delivered()}, int64(6), nil)

	w := httptest.NewRecorder()
	setupRouter(repo, bob).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/messages/inbox?page=2&page_size=5", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var page api.Page[Message]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, int64(6), page.Total)
	assert.Equal(t, 5, page.PageSize)
}

func TestUnreadCount_Handler(t *testing.T) {
	repo := new(MockRepository)
	repo.On("UnreadCount", mock.Anything, 2).Return(4, nil)

	w := httptest.NewRecorder()
	setupRouter(repo, bob).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/messages/unread-count", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"unread_messages":4}`, w.Body.String())
}

func TestGetAndSend_Handler(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetByID", mock.Anything, 10).Return(draft(), nil)

	w := httptest.NewRecorder()
	setupRouter(repo, bob).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/messages/10", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	setupRouter(repo, alice).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/messages/abc", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	sentRepo := new(MockRepository)
	sentRepo.On("GetByID", mock.Anything, 10).Return(delivered(), nil)
	w = httptest.NewRecorder()
	setupRouter(sentRepo, alice).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/messages/10/send", nil))
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUpdate_Handler(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetByID", mock.Anything, 10).Return(delivered(), nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/messages/10", bytes.NewBufferString(`{"subject":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	setupRouter(repo, bob).ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
