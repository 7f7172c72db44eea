package course

import (
	"time"

	"fitnessmanager/internal/api"
)

// Weekday numbers days Monday=0 through Sunday=6.
func Weekday(d api.Date) int {
	return (int(d.Weekday()) + 6) % 7
}

// OccursOn reports whether d is an occurrence of the schedule: it falls on
// DayOfWeek and lies within [StartDate, EndDate].
func (s *Schedule) OccursOn(d api.Date) bool {
	if Weekday(d) != s.DayOfWeek {
		return false
	}
	return !d.Before(s.StartDate) && !d.After(s.EndDate)
}

// Occurrences lists every occurrence in [from, to], clipped to the
// schedule's validity window.
func (s *Schedule) Occurrences(from, to api.Date) []api.Date {
	if from.Before(s.StartDate) {
		from = s.StartDate
	}
	if to.After(s.EndDate) {
		to = s.EndDate
	}
	if to.Before(from) {
		return nil
	}

	first := from.AddDays((s.DayOfWeek - Weekday(from) + 7) % 7)
	var dates []api.Date
	for d := first; !d.After(to); d = d.AddDays(7) {
		dates = append(dates, d)
	}
	return dates
}

// validateRule checks the fields of a new schedule.
func validateRule(day int, start, end Clock, startDate, endDate api.Date) error {
	switch {
	case day < 0 || day > 6:
		return ErrInvalidRule.WithDetail("day_of_week must be between 0 (Monday) and 6 (Sunday)")
	case start >= end:
		return ErrInvalidRule.WithDetail("end_time must be after start_time")
	case endDate.Before(startDate):
		return ErrInvalidRule.WithDetail("end_date must not be before start_date")
	}
	return nil
}

// maxWindow bounds the occurrence listing range in calendar days.
const maxWindow = 366

// windowDays counts the days in [from, to], both ends included.
func windowDays(from, to api.Date) int {
	return int(to.Sub(from.Time)/(24*time.Hour)) + 1
}
