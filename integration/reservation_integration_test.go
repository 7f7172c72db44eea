package integration_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"fitnessmanager/internal/access"
	"fitnessmanager/internal/api"
	"fitnessmanager/internal/auth"
	"fitnessmanager/internal/course"
	"fitnessmanager/internal/customer"
	"fitnessmanager/internal/gym"
	"fitnessmanager/internal/reservation"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func do(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestReservationFlow_Integration(t *testing.T) {
	database := setupTestDB(t)
	router := newTestServer(database).Router()

	group := createGroup(t, database, "north")
	gymID := createGym(t, database, "North Gym", group)
	scheduleID := createWeeklyCourse(t, database, gymID, 2)

	_, tokenA := createCustomer(t, database, "a@example.com", false, group)
	_, tokenB := createCustomer(t, database, "b@example.com", false, group)
	_, tokenD := createCustomer(t, database, "d@example.com", false, group)
	_, outsider := createCustomer(t, database, "x@example.com", false)

	next := api.DateOf(time.Now()).AddDays(7)
	body := map[string]string{"schedule": scheduleID.String(), "date": next.String()}

	w := do(t, router, http.MethodPost, "/reservations", tokenA, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var first reservation.Reservation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &first))

	w = do(t, router, http.MethodPost, "/reservations", tokenA, body)
	assert.Equal(t, http.StatusConflict, w.Code, "duplicate")

	w = do(t, router, http.MethodPost, "/reservations", tokenB, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = do(t, router, http.MethodPost, "/reservations", tokenD, body)
	assert.Equal(t, http.StatusConflict, w.Code, "course full")
	assert.Contains(t, w.Body.String(), "maximum number of participants")

	w = do(t, router, http.MethodPost, "/reservations", tokenA,
		map[string]string{"schedule": scheduleID.String(), "date": next.AddDays(1).String()})
	assert.Equal(t, http.StatusBadRequest, w.Code, "not an occurrence")

	w = do(t, router, http.MethodPost, "/reservations", tokenA,
		map[string]string{"schedule": scheduleID.String(), "date": next.AddDays(-14).String()})
	assert.Equal(t, http.StatusBadRequest, w.Code, "past date")

	w = do(t, router, http.MethodPost, "/reservations", outsider, body)
	assert.Equal(t, http.StatusNotFound, w.Code, "schedule outside caller's groups")

	w = do(t, router, http.MethodDelete, "/reservations/"+first.ID.String(), tokenA, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, router, http.MethodPost, "/reservations", tokenD, body)
	assert.Equal(t, http.StatusCreated, w.Code, "cancelled place is free again")

	w = do(t, router, http.MethodGet, fmt.Sprintf("/schedules/%s/occurrences?from=%s&to=%s", scheduleID, next, next), tokenA, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var occurrences []course.Occurrence
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &occurrences))
	require.Len(t, occurrences, 1)
	assert.Equal(t, 2, occurrences[0].Booked)
	assert.True(t, occurrences[0].IsFull)
}

func TestConcurrentReservations_Integration(t *testing.T) {
	database := setupTestDB(t)

	const max = 5
	group := createGroup(t, database, "south")
	gymID := createGym(t, database, "South Gym", group)
	scheduleID := createWeeklyCourse(t, database, gymID, max)

	customers := customer.NewRepository(database)
	svc := reservation.NewService(
		reservation.NewRepository(database),
		access.NewScope(access.NewRepository(database)),
		course.NewRepository(database),
		customers,
	)

	callers := make([]access.Caller, 2*max)
	for i := range callers {
		id, _ := createCustomer(t, database, fmt.Sprintf("c%d@example.com", i), false, group)
		callers[i] = access.Caller{CustomerID: id, Role: auth.RoleMember, Groups: []int{group}}
	}

	date := api.DateOf(time.Now()).AddDays(7)
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		full      int
	)
	start := make(chan struct{})
	for _, caller := range callers {
		wg.Add(1)
		go func(caller access.Caller) {
			defer wg.Done()
			<-start
			_, err := svc.Reserve(context.Background(), caller, reservation.CreateReservationRequest{ScheduleID: scheduleID, Date: &date})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case api.IsKind(err, api.KindCapacityExceeded):
				full++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(caller)
	}
	close(start)
	wg.Wait()

	assert.Equal(t, max, succeeded)
	assert.Equal(t, max, full)

	var booked int
	require.NoError(t, database.Get(&booked, `SELECT COUNT(*) FROM reservations WHERE schedule_id = $1 AND status = 'booked'`, scheduleID))
	assert.Equal(t, max, booked)
}

func TestScopingAndCascade_Integration(t *testing.T) {
	database := setupTestDB(t)
	router := newTestServer(database).Router()

	north := createGroup(t, database, "north")
	south := createGroup(t, database, "south")
	northGym := createGym(t, database, "North Gym", north)
	southGym := createGym(t, database, "South Gym", south)
	scheduleID := createWeeklyCourse(t, database, northGym, 3)

	_, member := createCustomer(t, database, "m@example.com", false, north)

	w := do(t, router, http.MethodGet, "/gyms", member, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var gyms []gym.Gym
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &gyms))
	require.Len(t, gyms, 1)
	assert.Equal(t, northGym, gyms[0].ID)

	w = do(t, router, http.MethodGet, "/gyms/"+southGym.String(), member, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, router, http.MethodPost, "/rooms", member, map[string]string{"name": "Studio", "gym": southGym.String()})
	assert.Equal(t, http.StatusNotFound, w.Code)

	date := api.DateOf(time.Now()).AddDays(7)
	w = do(t, router, http.MethodPost, "/reservations", member, map[string]string{"schedule": scheduleID.String(), "date": date.String()})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	_, err := database.Exec(`DELETE FROM gyms WHERE id = $1`, northGym)
	require.NoError(t, err)

	for _, table := range []string{"courses", "course_schedules", "reservations"} {
		var n int
		require.NoError(t, database.Get(&n, fmt.Sprintf("SELECT COUNT(*) FROM %s", table)))
		assert.Zero(t, n, table)
	}

	w = do(t, router, http.MethodGet, "/schedules/"+uuid.New().String(), member, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRoomAndTrainerRules_Integration(t *testing.T) {
	database := setupTestDB(t)
	router := newTestServer(database).Router()

	group := createGroup(t, database, "east")
	gymA := createGym(t, database, "East A", group)
	gymB := createGym(t, database, "East B", group)
	_, staffToken := createCustomer(t, database, "coach@example.com", true, group)

	var superuser int
	err := database.QueryRow(`
		INSERT INTO customers (email, first_name, last_name, password_hash, is_superuser, passport_number)
		VALUES ('root@example.com', 'Root', 'User', 'x', TRUE, $1)
		RETURNING id
	`, strings.Repeat("P", 64)).Scan(&superuser)
	require.NoError(t, err)

	var used, spare gym.Room
	w := do(t, router, http.MethodPost, "/rooms", staffToken, map[string]any{"name": "Studio", "gym": gymA})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &used))
	w = do(t, router, http.MethodPost, "/rooms", staffToken, map[string]any{"name": "Annex", "gym": gymA})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &spare))

	w = do(t, router, http.MethodPost, "/courses", staffToken, map[string]any{
		"name": "Spin", "duration": 45, "max_participants": 10, "gym": gymA, "room": used.ID, "trainer": superuser,
	})
	require.Equal(t, http.StatusCreated, w.Code, "superuser can train: %s", w.Body.String())

	w = do(t, router, http.MethodPut, "/rooms/"+used.ID.String(), staffToken, map[string]any{"gym": gymB})
	assert.Equal(t, http.StatusBadRequest, w.Code, "room referenced by a course")

	w = do(t, router, http.MethodPut, "/rooms/"+spare.ID.String(), staffToken, map[string]any{"gym": gymB})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var moved gym.Room
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &moved))
	assert.Equal(t, gymB, moved.GymID)
}
