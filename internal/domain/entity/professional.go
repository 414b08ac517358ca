package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Professional represents a service provider with a weekly work schedule,
// recurring days off and ad hoc manual leaves. The schedule columns are
// stored as JSONB and validated at the read/write boundary so malformed
// records are rejected before any slot arithmetic sees them.
type Professional struct {
	ID            uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID        *uuid.UUID       `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Name          string           `gorm:"type:varchar(255);not null;index" json:"name"`
	Email         string           `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Phone         string           `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Specialty     string           `gorm:"type:varchar(100);index" json:"specialty,omitempty"`
	AvatarURL     string           `gorm:"type:text" json:"avatar_url,omitempty"`
	WorkSchedules WorkScheduleList `gorm:"type:jsonb" json:"work_schedules,omitempty"`
	DaysOff       DaysOffList      `gorm:"type:jsonb" json:"days_off,omitempty"`
	ManualLeaves  ManualLeaveList  `gorm:"type:jsonb" json:"manual_leaves,omitempty"`
	CreatedAt     time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time        `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User         *User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Appointments []Appointment `gorm:"foreignKey:ProfessionalID" json:"appointments,omitempty"`
}

func (Professional) TableName() string {
	return "professionals"
}

// WorkSchedule is one weekday's working hours. Weekday follows time.Weekday
// numbering: 0=Sunday through 6=Saturday.
type WorkSchedule struct {
	Weekday    int    `json:"weekday"`
	Start      string `json:"start"`                 // HH:MM
	End        string `json:"end"`                   // HH:MM
	BreakStart string `json:"break_start,omitempty"` // HH:MM
	BreakEnd   string `json:"break_end,omitempty"`   // HH:MM
}

// Validate enforces start < end and, when a break is present,
// start <= breakStart < breakEnd <= end.
func (w WorkSchedule) Validate() error {
	if w.Weekday < 0 || w.Weekday > 6 {
		return fmt.Errorf("work schedule weekday %d out of range 0-6", w.Weekday)
	}
	start, err := parseClockString(w.Start)
	if err != nil {
		return fmt.Errorf("work schedule start: %w", err)
	}
	end, err := parseClockString(w.End)
	if err != nil {
		return fmt.Errorf("work schedule end: %w", err)
	}
	if start >= end {
		return fmt.Errorf("work schedule start %s must be before end %s", w.Start, w.End)
	}
	if (w.BreakStart == "") != (w.BreakEnd == "") {
		return errors.New("work schedule break requires both break_start and break_end")
	}
	if w.BreakStart != "" {
		breakStart, err := parseClockString(w.BreakStart)
		if err != nil {
			return fmt.Errorf("work schedule break_start: %w", err)
		}
		breakEnd, err := parseClockString(w.BreakEnd)
		if err != nil {
			return fmt.Errorf("work schedule break_end: %w", err)
		}
		if breakStart >= breakEnd {
			return fmt.Errorf("work schedule break_start %s must be before break_end %s", w.BreakStart, w.BreakEnd)
		}
		if breakStart < start || breakEnd > end {
			return errors.New("work schedule break must lie within working hours")
		}
	}
	return nil
}

// WorkScheduleList is the JSONB column holding the weekly schedule.
type WorkScheduleList []WorkSchedule

// Validate checks each entry and rejects duplicate weekdays.
func (l WorkScheduleList) Validate() error {
	seen := map[int]bool{}
	for _, w := range l {
		if err := w.Validate(); err != nil {
			return err
		}
		if seen[w.Weekday] {
			return fmt.Errorf("duplicate work schedule for weekday %d", w.Weekday)
		}
		seen[w.Weekday] = true
	}
	return nil
}

func (l WorkScheduleList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return nil, nil
	}
	return json.Marshal(l)
}

func (l *WorkScheduleList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

// DaysOffList holds the recurring weekday indices the professional never
// works (0=Sunday through 6=Saturday).
type DaysOffList []int

func (l DaysOffList) Validate() error {
	for _, d := range l {
		if d < 0 || d > 6 {
			return fmt.Errorf("day off %d out of range 0-6", d)
		}
	}
	return nil
}

func (l DaysOffList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return nil, nil
	}
	return json.Marshal(l)
}

func (l *DaysOffList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

// ManualLeave is a date-specific unavailability override (holiday, personal
// commitment). When AllDay is false, StartTime and EndTime bound a
// partial-day blackout window.
type ManualLeave struct {
	Date        string `json:"date"` // YYYY-MM-DD
	Description string `json:"description,omitempty"`
	AllDay      bool   `json:"all_day"`
	StartTime   string `json:"start_time,omitempty"` // HH:MM
	EndTime     string `json:"end_time,omitempty"`   // HH:MM
}

func (m ManualLeave) Validate() error {
	if _, err := time.Parse("2006-01-02", m.Date); err != nil {
		return fmt.Errorf("manual leave date %q must be YYYY-MM-DD", m.Date)
	}
	if m.AllDay {
		return nil
	}
	start, err := parseClockString(m.StartTime)
	if err != nil {
		return fmt.Errorf("manual leave start_time: %w", err)
	}
	end, err := parseClockString(m.EndTime)
	if err != nil {
		return fmt.Errorf("manual leave end_time: %w", err)
	}
	if start >= end {
		return fmt.Errorf("manual leave start_time %s must be before end_time %s", m.StartTime, m.EndTime)
	}
	return nil
}

// ManualLeaveList is the JSONB column holding manual leaves. Overlapping
// leaves are allowed; they union as blackout.
type ManualLeaveList []ManualLeave

func (l ManualLeaveList) Validate() error {
	for _, m := range l {
		if err := m.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (l ManualLeaveList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return nil, nil
	}
	return json.Marshal(l)
}

func (l *ManualLeaveList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

// ValidateSchedule validates every schedule-related column at once.
func (p *Professional) ValidateSchedule() error {
	if err := p.WorkSchedules.Validate(); err != nil {
		return err
	}
	if err := p.DaysOff.Validate(); err != nil {
		return err
	}
	return p.ManualLeaves.Validate()
}

func parseClockString(value string) (int, error) {
	t, err := time.Parse("15:04", value)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q, use HH:MM", value)
	}
	return t.Hour()*60 + t.Minute(), nil
}

func scanJSON(value interface{}, dest interface{}) error {
	if value == nil {
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("Failed to unmarshal JSONB value:", value))
	}
	return json.Unmarshal(bytes, dest)
}
