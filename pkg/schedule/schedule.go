// Package schedule answers questions about an institution's weekly
// working hours: whether it is open at an instant, which delivery slots a
// day offers and which upcoming days are open at all.
package schedule

import (
	"errors"
	"fmt"
	"time"

	"benigna-backend/entities"

	"github.com/teambition/rrule-go"
)

const (
	clockLayout  = "15:04"
	SlotInterval = 30 * time.Minute
)

var (
	ErrInvalidDay       = errors.New("day of week must be between 0 and 6")
	ErrDuplicateDay     = errors.New("duplicate day of week")
	ErrInvalidClockTime = errors.New("time must be in HH:MM format")
	ErrCloseBeforeOpen  = errors.New("closing time must be after opening time")
)

var weekdays = map[time.Weekday]rrule.Weekday{
	time.Sunday:    rrule.SU,
	time.Monday:    rrule.MO,
	time.Tuesday:   rrule.TU,
	time.Wednesday: rrule.WE,
	time.Thursday:  rrule.TH,
	time.Friday:    rrule.FR,
	time.Saturday:  rrule.SA,
}

// ParseClock converts "HH:MM" into minutes since midnight.
func ParseClock(value string) (int, error) {
	t, err := time.Parse(clockLayout, value)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClockTime, value)
	}
	return t.Hour()*60 + t.Minute(), nil
}

func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Day returns the first entry for weekday, if any.
func Day(hours []entities.WorkingHours, weekday time.Weekday) (entities.WorkingHours, bool) {
	for _, h := range hours {
		if h.DayOfWeek == int(weekday) {
			return h, true
		}
	}
	return entities.WorkingHours{}, false
}

// IsOpenAt reports whether the schedule is open at the wall-clock time of
// at. Both boundaries are inclusive and hours never span midnight, so an
// entry whose close precedes its open is never open. Seconds are ignored.
func IsOpenAt(hours []entities.WorkingHours, at time.Time) bool {
	today, ok := Day(hours, at.Weekday())
	if !ok || !today.IsOpen {
		return false
	}

	open, err := ParseClock(today.OpenTime)
	if err != nil {
		return false
	}
	closing, err := ParseClock(today.CloseTime)
	if err != nil {
		return false
	}

	now := at.Hour()*60 + at.Minute()
	return now >= open && now <= closing
}

// TimeSlots lists delivery slots every 30 minutes from open, stopping
// before close.
func TimeSlots(open, close string) []string {
	start, err := ParseClock(open)
	if err != nil {
		return []string{}
	}
	end, err := ParseClock(close)
	if err != nil {
		return []string{}
	}

	step := int(SlotInterval / time.Minute)
	slots := []string{}
	for cur := start; cur < end; cur += step {
		slots = append(slots, formatClock(cur))
	}
	return slots
}

// SlotsOn returns the slots offered on the weekday of date.
func SlotsOn(hours []entities.WorkingHours, date time.Time) []string {
	day, ok := Day(hours, date.Weekday())
	if !ok || !day.IsOpen {
		return []string{}
	}
	return TimeSlots(day.OpenTime, day.CloseTime)
}

// HasSlot reports whether slot is one of the slots offered on date.
func HasSlot(hours []entities.WorkingHours, date time.Time, slot string) bool {
	for _, s := range SlotsOn(hours, date) {
		if s == slot {
			return true
		}
	}
	return false
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EarliestDeliveryDate is the first day a delivery can be booked for,
// which is the day after from.
func EarliestDeliveryDate(from time.Time) time.Time {
	return StartOfDay(from).AddDate(0, 0, 1)
}

// UpcomingOpenDays returns the next count days, starting the day after
// from, on which the schedule has an open entry with at least one slot.
func UpcomingOpenDays(hours []entities.WorkingHours, from time.Time, count int) ([]time.Time, error) {
	if count <= 0 {
		return []time.Time{}, nil
	}

	var byWeekday []rrule.Weekday
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		day, ok := Day(hours, wd)
		if !ok || !day.IsOpen || len(TimeSlots(day.OpenTime, day.CloseTime)) == 0 {
			continue
		}
		byWeekday = append(byWeekday, weekdays[wd])
	}
	if len(byWeekday) == 0 {
		return []time.Time{}, nil
	}

	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.DAILY,
		Dtstart:   EarliestDeliveryDate(from),
		Byweekday: byWeekday,
		Count:     count,
	})
	if err != nil {
		return nil, fmt.Errorf("build open days rule: %w", err)
	}
	return rule.All(), nil
}

// ValidateWeek checks a submitted weekly schedule.
func ValidateWeek(hours []entities.WorkingHours) error {
	seen := make(map[int]bool, len(hours))
	for _, h := range hours {
		if h.DayOfWeek < 0 || h.DayOfWeek > 6 {
			return fmt.Errorf("%w: %d", ErrInvalidDay, h.DayOfWeek)
		}
		if seen[h.DayOfWeek] {
			return fmt.Errorf("%w: %d", ErrDuplicateDay, h.DayOfWeek)
		}
		seen[h.DayOfWeek] = true

		if !h.IsOpen {
			continue
		}
		open, err := ParseClock(h.OpenTime)
		if err != nil {
			return err
		}
		closing, err := ParseClock(h.CloseTime)
		if err != nil {
			return err
		}
		if closing <= open {
			return fmt.Errorf("%w: %s-%s", ErrCloseBeforeOpen, h.OpenTime, h.CloseTime)
		}
	}
	return nil
}

// DefaultWeek is the schedule offered to new institutions: weekdays
// 08:00-17:00, weekends closed.
func DefaultWeek() []entities.WorkingHours {
	week := make([]entities.WorkingHours, 0, 7)
	for d := 0; d < 7; d++ {
		week = append(week, entities.WorkingHours{
			DayOfWeek: d,
			IsOpen:    d >= 1 && d <= 5,
			OpenTime:  "08:00",
			CloseTime: "17:00",
		})
	}
	return week
}
