package schedule

import (
	"testing"
	"time"

	"benigna-backend/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2024-01-01 is a Monday.
func at(day, hour, minute int) time.Time {
	return time.Date(2024, time.January, day, hour, minute, 0, 0, time.UTC)
}

func mondayHours(open, close string) []entities.WorkingHours {
	return []entities.WorkingHours{
		{DayOfWeek: 1, IsOpen: true, OpenTime: open, CloseTime: close},
	}
}

func TestIsOpenAt(t *testing.T) {
	hours := mondayHours("08:00", "17:00")

	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"before opening", at(1, 7, 59), false},
		{"at opening", at(1, 8, 0), true},
		{"midday", at(1, 12, 30), true},
		{"at closing", at(1, 17, 0), true},
		{"closing minute ignores seconds", at(1, 17, 0).Add(59 * time.Second), true},
		{"after closing", at(1, 17, 1), false},
		{"day without entry", at(2, 12, 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsOpenAt(hours, tt.at))
		})
	}
}

func TestIsOpenAt_ClosedDay(t *testing.T) {
	hours := []entities.WorkingHours{
		{DayOfWeek: 1, IsOpen: false, OpenTime: "00:00", CloseTime: "23:59"},
	}
	assert.False(t, IsOpenAt(hours, at(1, 12, 0)))
}

func TestIsOpenAt_NoOvernightWraparound(t *testing.T) {
	hours := mondayHours("22:00", "02:00")

	assert.False(t, IsOpenAt(hours, at(1, 23, 0)))
	assert.False(t, IsOpenAt(hours, at(1, 1, 0)))
	assert.False(t, IsOpenAt(hours, at(2, 1, 0)))
}

func TestIsOpenAt_MalformedTimes(t *testing.T) {
	assert.False(t, IsOpenAt(mondayHours("8h", "17:00"), at(1, 12, 0)))
	assert.False(t, IsOpenAt(mondayHours("08:00", ""), at(1, 12, 0)))
}

func TestIsOpenAt_EmptySchedule(t *testing.T) {
	assert.False(t, IsOpenAt(nil, at(1, 12, 0)))
}

func TestTimeSlots(t *testing.T) {
	assert.Equal(t, []string{"08:00", "08:30", "09:00", "09:30"}, TimeSlots("08:00", "10:00"))
	assert.Equal(t, []string{"08:15", "08:45"}, TimeSlots("08:15", "09:00"))
	assert.Empty(t, TimeSlots("10:00", "10:00"))
	assert.Empty(t, TimeSlots("12:00", "08:00"))
	assert.Empty(t, TimeSlots("bad", "08:00"))
}

func TestSlotsOn(t *testing.T) {
	hours := mondayHours("08:00", "09:00")

	assert.Equal(t, []string{"08:00", "08:30"}, SlotsOn(hours, at(1, 0, 0)))
	assert.Empty(t, SlotsOn(hours, at(2, 0, 0)))
	assert.True(t, HasSlot(hours, at(8, 0, 0), "08:30"))
	assert.False(t, HasSlot(hours, at(8, 0, 0), "09:00"))
}

func TestEarliestDeliveryDate(t *testing.T) {
	assert.Equal(t, at(2, 0, 0), EarliestDeliveryDate(at(1, 23, 59)))
	assert.Equal(t, at(2, 0, 0), EarliestDeliveryDate(at(1, 0, 0)))
}

func TestUpcomingOpenDays(t *testing.T) {
	hours := []entities.WorkingHours{
		{DayOfWeek: 1, IsOpen: true, OpenTime: "08:00", CloseTime: "17:00"},
		{DayOfWeek: 3, IsOpen: true, OpenTime: "08:00", CloseTime: "17:00"},
		{DayOfWeek: 5, IsOpen: false, OpenTime: "08:00", CloseTime: "17:00"},
	}

	days, err := UpcomingOpenDays(hours, at(1, 10, 0), 3)
	require.NoError(t, err)

	require.Len(t, days, 3)
	assert.Equal(t, time.Wednesday, days[0].Weekday())
	assert.Equal(t, 3, days[0].Day())
	assert.Equal(t, 8, days[1].Day())
	assert.Equal(t, 10, days[2].Day())
}

func TestUpcomingOpenDays_NeverOpen(t *testing.T) {
	days, err := UpcomingOpenDays(mondayHours("17:00", "08:00"), at(1, 10, 0), 5)
	require.NoError(t, err)
	assert.Empty(t, days)

	days, err = UpcomingOpenDays(DefaultWeek(), at(1, 10, 0), 0)
	require.NoError(t, err)
	assert.Empty(t, days)
}

func TestValidateWeek(t *testing.T) {
	require.NoError(t, ValidateWeek(DefaultWeek()))

	err := ValidateWeek([]entities.WorkingHours{{DayOfWeek: 7}})
	assert.ErrorIs(t, err, ErrInvalidDay)

	err = ValidateWeek([]entities.WorkingHours{{DayOfWeek: 1}, {DayOfWeek: 1}})
	assert.ErrorIs(t, err, ErrDuplicateDay)

	err = ValidateWeek(mondayHours("8:00am", "17:00"))
	assert.ErrorIs(t, err, ErrInvalidClockTime)

	err = ValidateWeek(mondayHours("17:00", "08:00"))
	assert.ErrorIs(t, err, ErrCloseBeforeOpen)

	// closed days are not checked for times
	require.NoError(t, ValidateWeek([]entities.WorkingHours{{DayOfWeek: 0, IsOpen: false}}))
}
