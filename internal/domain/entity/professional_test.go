package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkScheduleValidate(t *testing.T) {
	tests := []struct {
		name     string
		schedule WorkSchedule
		wantErr  bool
	}{
		{
			name:     "valid without break",
			schedule: WorkSchedule{Weekday: 1, Start: "09:00", End: "18:00"},
		},
		{
			name:     "valid with break",
			schedule: WorkSchedule{Weekday: 1, Start: "09:00", End: "18:00", BreakStart: "12:00", BreakEnd: "13:00"},
		},
		{
			name:     "weekday out of range",
			schedule: WorkSchedule{Weekday: 7, Start: "09:00", End: "18:00"},
			wantErr:  true,
		},
		{
			name:     "start after end",
			schedule: WorkSchedule{Weekday: 1, Start: "18:00", End: "09:00"},
			wantErr:  true,
		},
		{
			name:     "start equals end",
			schedule: WorkSchedule{Weekday: 1, Start: "09:00", End: "09:00"},
			wantErr:  true,
		},
		{
			name:     "malformed start",
			schedule: WorkSchedule{Weekday: 1, Start: "9am", End: "18:00"},
			wantErr:  true,
		},
		{
			name:     "break start without break end",
			schedule: WorkSchedule{Weekday: 1, Start: "09:00", End: "18:00", BreakStart: "12:00"},
			wantErr:  true,
		},
		{
			name:     "break outside working hours",
			schedule: WorkSchedule{Weekday: 1, Start: "09:00", End: "18:00", BreakStart: "08:00", BreakEnd: "10:00"},
			wantErr:  true,
		},
		{
			name:     "inverted break",
			schedule: WorkSchedule{Weekday: 1, Start: "09:00", End: "18:00", BreakStart: "14:00", BreakEnd: "13:00"},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.schedule.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWorkScheduleListValidate_DuplicateWeekday(t *testing.T) {
	list := WorkScheduleList{
		{Weekday: 1, Start: "09:00", End: "12:00"},
		{Weekday: 1, Start: "13:00", End: "18:00"},
	}
	assert.ErrorContains(t, list.Validate(), "duplicate")
}

func TestDaysOffListValidate(t *testing.T) {
	assert.NoError(t, DaysOffList{0, 6}.Validate())
	assert.Error(t, DaysOffList{-1}.Validate())
	assert.Error(t, DaysOffList{7}.Validate())
}

func TestManualLeaveValidate(t *testing.T) {
	assert.NoError(t, ManualLeave{Date: "2025-06-02", AllDay: true}.Validate())
	assert.NoError(t, ManualLeave{Date: "2025-06-02", StartTime: "14:00", EndTime: "16:00"}.Validate())
	assert.Error(t, ManualLeave{Date: "02/06/2025", AllDay: true}.Validate())
	assert.Error(t, ManualLeave{Date: "2025-06-02", StartTime: "16:00", EndTime: "14:00"}.Validate())
	assert.Error(t, ManualLeave{Date: "2025-06-02"}.Validate())
}

func TestWorkScheduleListScanRoundTrip(t *testing.T) {
	list := WorkScheduleList{
		{Weekday: 1, Start: "09:00", End: "18:00", BreakStart: "12:00", BreakEnd: "13:00"},
		{Weekday: 3, Start: "10:00", End: "16:00"},
	}

	value, err := list.Value()
	require.NoError(t, err)

	var scanned WorkScheduleList
	require.NoError(t, scanned.Scan(value))
	assert.Equal(t, list, scanned)
}

func TestWorkScheduleListValueEmpty(t *testing.T) {
	var list WorkScheduleList
	value, err := list.Value()
	require.NoError(t, err)
	assert.Nil(t, value)
}

func TestManualLeaveListScanString(t *testing.T) {
	raw := `[{"date":"2025-06-02","all_day":false,"start_time":"14:00","end_time":"16:00"}]`

	var scanned ManualLeaveList
	require.NoError(t, scanned.Scan(raw))
	require.Len(t, scanned, 1)
	assert.Equal(t, "2025-06-02", scanned[0].Date)
	assert.False(t, scanned[0].AllDay)
}

func TestProfessionalValidateSchedule(t *testing.T) {
	p := &Professional{
		WorkSchedules: WorkScheduleList{{Weekday: 1, Start: "09:00", End: "18:00"}},
		DaysOff:       DaysOffList{0},
		ManualLeaves:  ManualLeaveList{{Date: "2025-06-02", AllDay: true}},
	}
	assert.NoError(t, p.ValidateSchedule())

	p.DaysOff = DaysOffList{9}
	assert.Error(t, p.ValidateSchedule())
}
