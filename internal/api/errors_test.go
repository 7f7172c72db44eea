package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errSlotFull = NewError(KindCapacityExceeded, "reservation slot is full")

func TestWithDetailMatchesSentinel(t *testing.T) {
	err := errSlotFull.WithDetail("2 of 2 places taken")

	assert.ErrorIs(t, err, errSlotFull)
	assert.True(t, IsKind(err, KindCapacityExceeded))
	assert.Equal(t, "reservation slot is full: 2 of 2 places taken", err.Error())
	assert.NotErrorIs(t, NotFound("x"), errSlotFull)
}

func TestKindStatus(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{KindNotFound, http.StatusNotFound},
		{KindValidation, http.StatusBadRequest},
		{KindInvalidDate, http.StatusBadRequest},
		{KindInvalidSchedule, http.StatusBadRequest},
		{KindForbidden, http.StatusForbidden},
		{KindUnauthorized, http.StatusUnauthorized},
		{KindCapacityExceeded, http.StatusConflict},
		{KindConflict, http.StatusConflict},
		{Kind("mystery"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.Status())
		})
	}
}

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   ErrorResponse
	}{
		{
			name:       "app error",
			err:        NotFound("Room not found").WithDetail("gym does not exist within your group"),
			wantStatus: http.StatusNotFound,
			wantBody:   ErrorResponse{Error: "Room not found", Detail: "gym does not exist within your group"},
		},
		{
			name:       "wrapped app error",
			err:        fmt.Errorf("reserve: %w", errSlotFull),
			wantStatus: http.StatusConflict,
			wantBody:   ErrorResponse{Error: "reservation slot is full"},
		},
		{
			name:       "unexpected error",
			err:        errors.New("connection reset"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   ErrorResponse{Error: "internal server error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			RespondError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			var body ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantBody, body)
		})
	}
}
