package reservation

import (
	"context"
	"sync"
	"testing"
	"time"

	"fitnessmanager/internal/access"
	"fitnessmanager/internal/api"
	"fitnessmanager/internal/auth"
	"fitnessmanager/internal/course"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	gymG      = uuid.MustParse("9d3e0f52-0000-4000-8000-000000000001")
	hiddenGym = uuid.MustParse("9d3e0f52-0000-4000-8000-000000000002")
)

// mondayYoga is course C (max 2 participants) scheduled on Mondays of 2024.
func mondayYoga(gymID uuid.UUID, max int) course.Schedule {
	return course.Schedule{
		ID:              uuid.New(),
		CourseID:        uuid.New(),
		DayOfWeek:       0,
		StartTime:       course.NewClock(18, 0),
		EndTime:         course.NewClock(19, 0),
		StartDate:       api.NewDate(2024, time.January, 1),
		EndDate:         api.NewDate(2024, time.December, 31),
		GymID:           gymID,
		MaxParticipants: max,
	}
}

func member(id int) access.Caller {
	return access.Caller{CustomerID: id, Role: auth.RoleMember, Groups: []int{1}}
}

func newTestService(repo *fakeRepo) *service {
	svc := NewService(repo, access.Fixed(access.NewGymSet(gymG)), repo, customersStub{1: true, 2: true, 4: true}).(*service)
	svc.now = func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

func reserveReq(scheduleID uuid.UUID, d api.Date) CreateReservationRequest {
	return CreateReservationRequest{ScheduleID: scheduleID, Date: &d}
}

func TestReserveScenario(t *testing.T) {
	sched := mondayYoga(gymG, 2)
	repo := newFakeRepo(sched)
	svc := newTestService(repo)
	ctx := context.Background()
	monday := api.NewDate(2024, time.March, 4)

	a, err := svc.Reserve(ctx, member(1), reserveReq(sched.ID, monday))
	require.NoError(t, err)
	assert.Equal(t, StatusBooked, a.Status)

	_, err = svc.Reserve(ctx, member(2), reserveReq(sched.ID, monday))
	require.NoError(t, err)

	_, err = svc.Reserve(ctx, member(4), reserveReq(sched.ID, monday))
	assert.ErrorIs(t, err, ErrCapacityExceeded)
	assert.True(t, api.IsKind(err, api.KindCapacityExceeded))

	_, err = svc.Reserve(ctx, member(1), reserveReq(sched.ID, api.NewDate(2024, time.March, 5)))
	assert.ErrorIs(t, err, course.ErrNotAnOccurrence)

	assert.Equal(t, 2, repo.booked())
}

func TestReservePastDateAlwaysInvalid(t *testing.T) {
	sched := mondayYoga(gymG, 2)
	svc := newTestService(newFakeRepo(sched))
	yesterday := api.NewDate(2024, time.February, 29)

	_, err := svc.Reserve(context.Background(), member(1), reserveReq(sched.ID, yesterday))
	assert.ErrorIs(t, err, ErrPastDate)

	// wrong weekday, unknown schedule: still InvalidDate
	_, err = svc.Reserve(context.Background(), member(1), reserveReq(uuid.New(), api.NewDate(2024, time.February, 26)))
	assert.ErrorIs(t, err, ErrPastDate)
	assert.True(t, api.IsKind(err, api.KindInvalidDate))
}

func TestReserveToday(t *testing.T) {
	sched := mondayYoga(gymG, 2)
	sched.DayOfWeek = 4 // 2024-03-01 is a Friday
	svc := newTestService(newFakeRepo(sched))

	_, err := svc.Reserve(context.Background(), member(1), reserveReq(sched.ID, api.NewDate(2024, time.March, 1)))
	assert.NoError(t, err)
}

func TestReserveScheduleNotVisible(t *testing.T) {
	sched := mondayYoga(hiddenGym, 2)
	svc := newTestService(newFakeRepo(sched))

	_, err := svc.Reserve(context.Background(), member(1), reserveReq(sched.ID, api.NewDate(2024, time.March, 4)))
	assert.ErrorIs(t, err, course.ErrScheduleNotFound)

	_, err = svc.Reserve(context.Background(), member(1), reserveReq(uuid.New(), api.NewDate(2024, time.March, 4)))
	assert.ErrorIs(t, err, course.ErrScheduleNotFound)
}

func TestReserveDuplicate(t *testing.T) {
	sched := mondayYoga(gymG, 5)
	svc := newTestService(newFakeRepo(sched))
	monday := api.NewDate(2024, time.March, 4)

	_, err := svc.Reserve(context.Background(), member(1), reserveReq(sched.ID, monday))
	require.NoError(t, err)

	_, err = svc.Reserve(context.Background(), member(1), reserveReq(sched.ID, monday))
	assert.ErrorIs(t, err, ErrDuplicateReservation)
	assert.True(t, api.IsKind(err, api.KindConflict))
}

func TestReserveFullTakesPrecedenceOverDuplicate(t *testing.T) {
	sched := mondayYoga(gymG, 1)
	svc := newTestService(newFakeRepo(sched))
	monday := api.NewDate(2024, time.March, 4)

	_, err := svc.Reserve(context.Background(), member(1), reserveReq(sched.ID, monday))
	require.NoError(t, err)

	_, err = svc.Reserve(context.Background(), member(1), reserveReq(sched.ID, monday))
	assert.ErrorIs(t, err, ErrCapacityExceeded)
}

func TestReserveConcurrentCapacity(t *testing.T) {
	const max = 5
	sched := mondayYoga(gymG, max)
	repo := newFakeRepo(sched)
	svc := newTestService(repo)
	monday := api.NewDate(2024, time.March, 4)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		full      int
	)
	start := make(chan struct{})
	for i := 1; i <= max+1; i++ {
		wg.Add(1)
		go func(customerID int) {
			defer wg.Done()
			<-start
			_, err := svc.Reserve(context.Background(), member(customerID), reserveReq(sched.ID, monday))
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				succeeded++
			} else if api.IsKind(err, api.KindCapacityExceeded) {
				full++
			}
		}(i)
	}
	close(start)
	wg.Wait()

	assert.Equal(t, max, succeeded)
	assert.Equal(t, 1, full)
	assert.Equal(t, max, repo.booked())
}

func TestReserveOnBehalf(t *testing.T) {
	sched := mondayYoga(gymG, 5)
	svc := newTestService(newFakeRepo(sched))
	monday := api.NewDate(2024, time.March, 4)

	req := reserveReq(sched.ID, monday)
	other := 2
	req.CustomerID = &other

	_, err := svc.Reserve(context.Background(), member(1), req)
	assert.ErrorIs(t, err, ErrOnBehalfForbidden)

	staff := access.Caller{CustomerID: 9, Role: auth.RoleStaff, Groups: []int{1}}
	res, err := svc.Reserve(context.Background(), staff, req)
	require.NoError(t, err)
	assert.Equal(t, 2, res.CustomerID)

	missing := 77
	req.CustomerID = &missing
	_, err = svc.Reserve(context.Background(), staff, req)
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestCancelFreesPlace(t *testing.T) {
	sched := mondayYoga(gymG, 1)
	repo := newFakeRepo(sched)
	svc := newTestService(repo)
	monday := api.NewDate(2024, time.March, 4)
	ctx := context.Background()

	res, err := svc.Reserve(ctx, member(1), reserveReq(sched.ID, monday))
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Cancel(ctx, member(2), res.ID), ErrReservationNotFound)

	require.NoError(t, svc.Cancel(ctx, member(1), res.ID))
	assert.ErrorIs(t, svc.Cancel(ctx, member(1), res.ID), ErrReservationNotFound)

	_, err = svc.Reserve(ctx, member(2), reserveReq(sched.ID, monday))
	assert.NoError(t, err)

	_, err = svc.Reserve(ctx, member(1), reserveReq(sched.ID, monday))
	assert.ErrorIs(t, err, ErrCapacityExceeded)
}

func TestStaffCancelsWithinGroup(t *testing.T) {
	sched := mondayYoga(gymG, 3)
	repo := newFakeRepo(sched)
	svc := newTestService(repo)
	ctx := context.Background()

	res, err := svc.Reserve(ctx, member(1), reserveReq(sched.ID, api.NewDate(2024, time.March, 4)))
	require.NoError(t, err)

	staff := access.Caller{CustomerID: 9, Role: auth.RoleStaff, Groups: []int{1}}
	got, err := svc.Get(ctx, staff, res.ID)
	require.NoError(t, err)
	assert.Equal(t, gymG, got.GymID)

	require.NoError(t, svc.Cancel(ctx, staff, res.ID))
}

func TestListForSchedule(t *testing.T) {
	sched := mondayYoga(gymG, 3)
	hidden := mondayYoga(hiddenGym, 3)
	repo := newFakeRepo(sched, hidden)
	svc := newTestService(repo)
	ctx := context.Background()
	monday := api.NewDate(2024, time.March, 4)

	_, err := svc.Reserve(ctx, member(1), reserveReq(sched.ID, monday))
	require.NoError(t, err)
	_, err = svc.Reserve(ctx, member(2), reserveReq(sched.ID, monday.AddDays(7)))
	require.NoError(t, err)

	_, err = svc.ListForSchedule(ctx, member(1), sched.ID, nil)
	assert.ErrorIs(t, err, ErrStaffOnly)

	staff := access.Caller{CustomerID: 9, Role: auth.RoleStaff, Groups: []int{1}}
	all, err := svc.ListForSchedule(ctx, staff, sched.ID, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	onDay, err := svc.ListForSchedule(ctx, staff, sched.ID, &monday)
	require.NoError(t, err)
	assert.Len(t, onDay, 1)

	_, err = svc.ListForSchedule(ctx, staff, hidden.ID, nil)
	assert.ErrorIs(t, err, course.ErrScheduleNotFound)

	mine, err := svc.ListMine(ctx, member(1))
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, "created", outcome(nil))
	assert.Equal(t, "invalid_date", outcome(ErrPastDate))
	assert.Equal(t, "invalid_schedule", outcome(course.ErrNotAnOccurrence))
	assert.Equal(t, "capacity_exceeded", outcome(ErrCapacityExceeded))
	assert.Equal(t, "duplicate", outcome(ErrDuplicateReservation))
	assert.Equal(t, "not_found", outcome(course.ErrScheduleNotFound))
	assert.Equal(t, "error", outcome(context.Canceled))
}
