package attendance

import (
	"strings"

	"github.com/trezcool/edutrack/core/student"
)

type Status string

// Statuses
const (
	Present Status = "Present"
	Absent  Status = "Absent"
)

func (s Status) Valid() bool {
	return s == Present || s == Absent
}

// ParseStatus accepts a status name in any case, e.g. "present".
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "present":
		return Present, nil
	case "absent":
		return Absent, nil
	}
	return "", ErrInvalidStatus
}

type (
	// DayStatuses maps a Student.ID to its status on one date. Students without an entry are unmarked.
	DayStatuses map[string]Status

	// Record maps an ISO date (YYYY-MM-DD) to the statuses marked on that date.
	Record map[string]DayStatuses
)

func (ds DayStatuses) Copy() DayStatuses {
	cp := make(DayStatuses, len(ds))
	for id, st := range ds {
		cp[id] = st
	}
	return cp
}

// Stats are the lifetime attendance figures of one student.
type Stats struct {
	Present    int `json:"present"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

// DaySummary are the figures of one date. Rate is the percentage of marked students who were present.
type DaySummary struct {
	Date    string `json:"date"`
	Present int    `json:"present"`
	Absent  int    `json:"absent"`
	Marked  int    `json:"marked"`
	Rate    int    `json:"rate"`
}

// Performance tiers
const (
	TierExcellent = "Excellent"
	TierGood      = "Good"
	TierAverage   = "Average"
	TierPoor      = "Poor"

	LevelSuccess     = "success"
	LevelWarning     = "warning"
	LevelDestructive = "destructive"
)

type Performance struct {
	Tier  string `json:"tier"`
	Level string `json:"level"`
}

// PerformanceFor classifies an attendance percentage.
func PerformanceFor(percentage int) Performance {
	switch {
	case percentage >= 90:
		return Performance{Tier: TierExcellent, Level: LevelSuccess}
	case percentage >= 75:
		return Performance{Tier: TierGood, Level: LevelWarning}
	case percentage >= 60:
		return Performance{Tier: TierAverage, Level: LevelDestructive}
	default:
		return Performance{Tier: TierPoor, Level: LevelDestructive}
	}
}

type (
	// Dashboard is the roster of one date with its marks.
	Dashboard struct {
		Date        string           `json:"date"`
		DisplayDate string           `json:"displayDate"`
		IsToday     bool             `json:"isToday"`
		IsPast      bool             `json:"isPast"`
		CanSubmit   bool             `json:"canSubmit"`
		Counts      DashboardCounts  `json:"counts"`
		Students    []DashboardEntry `json:"students"`
	}

	DashboardCounts struct {
		TotalStudents int `json:"totalStudents"`
		Present       int `json:"present"`
		Absent        int `json:"absent"`
		Marked        int `json:"marked"`
		Unmarked      int `json:"unmarked"`
		Rate          int `json:"rate"`
	}

	// DashboardEntry has an empty Status when the student is unmarked.
	DashboardEntry struct {
		student.Student
		Status Status `json:"status,omitempty"`
	}
)

type (
	Report struct {
		TotalStudents     int             `json:"totalStudents"`
		TotalDays         int             `json:"totalDays"`
		AverageAttendance int             `json:"averageAttendance"`
		Students          []StudentReport `json:"students"`
		Trend             []DaySummary    `json:"trend"`
	}

	StudentReport struct {
		student.Student
		Stats
		Performance Performance `json:"performance"`
	}

	// DayDetail lists every status recorded on one date.
	DayDetail struct {
		Date        string     `json:"date"`
		DisplayDate string     `json:"displayDate"`
		Summary     DaySummary `json:"summary"`
		Entries     []DayEntry `json:"entries"`
	}

	// DayEntry shows the raw student id as Name when the student is not in the roster.
	DayEntry struct {
		StudentID string `json:"studentId"`
		RollNo    string `json:"rollNo"`
		Name      string `json:"name"`
		Known     bool   `json:"known"`
		Status    Status `json:"status"`
	}
)
