package attendance

import (
	"context"
	"sort"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/edutrack/core"
	"github.com/trezcool/edutrack/core/student"
)

var (
	// errors
	ErrInvalidStatus    = errors.New("status must be one of Present or Absent")
	ErrStudentRequired  = errors.New("student id is required")
	ErrPastDate         = errors.New("attendance cannot be submitted for a past date")
	ErrAlreadySubmitted = errors.New("attendance has already been submitted for today")

	nowFunc = time.Now // mockable
)

type (
	// Repository persists the attendance record. It is a best-effort store: reads fall back to an
	// empty record and write failures are logged by the implementation, never returned.
	Repository interface {
		QueryAttendance(ctx context.Context) Record
		SaveAttendance(ctx context.Context, record Record)
	}

	// Roster provides the known students.
	Roster interface {
		List(ctx context.Context, orderings ...core.Ordering) []student.Student
	}

	Service struct {
		repo   Repository
		roster Roster
		loc    *time.Location
	}
)

// NewService returns the attendance Service; "today" is computed in `loc` (time.Local when nil).
func NewService(repo Repository, roster Roster, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{repo: repo, roster: roster, loc: loc}
}

// Today returns the current date in the service location.
func (svc *Service) Today() string {
	return core.Today(nowFunc(), svc.loc)
}

func (svc *Service) students(ctx context.Context) []student.Student {
	students := svc.roster.List(ctx)
	student.ByRoll(students)
	return students
}

func cleanDate(date string) (string, error) {
	d, err := core.CleanDate(date)
	if err != nil {
		return "", core.NewFieldValidationError("date", err)
	}
	return d, nil
}

// StatusesForDate returns the statuses stored for `date`, empty if none.
func (svc *Service) StatusesForDate(ctx context.Context, date string) (DayStatuses, error) {
	date, err := cleanDate(date)
	if err != nil {
		return nil, err
	}
	return svc.repo.QueryAttendance(ctx)[date].Copy(), nil
}

// SetStatus upserts the status of one student on `date`.
func (svc *Service) SetStatus(ctx context.Context, studentID, date string, status Status) error {
	studentID = core.CleanString(studentID)
	if studentID == "" {
		return core.NewFieldValidationError("studentId", ErrStudentRequired)
	}
	date, err := cleanDate(date)
	if err != nil {
		return err
	}
	if !status.Valid() {
		return core.NewFieldValidationError("status", ErrInvalidStatus)
	}

	record := svc.repo.QueryAttendance(ctx)
	if record == nil {
		record = make(Record)
	}
	if record[date] == nil {
		record[date] = make(DayStatuses)
	}
	record[date][studentID] = status
	svc.repo.SaveAttendance(ctx, record)
	return nil
}

// StatsForAllStudents returns the lifetime stats of every roster student.
func (svc *Service) StatsForAllStudents(ctx context.Context) map[string]Stats {
	return ComputeStats(svc.repo.QueryAttendance(ctx), svc.roster.List(ctx))
}

func (svc *Service) DaySummary(ctx context.Context, date string) (DaySummary, error) {
	date, err := cleanDate(date)
	if err != nil {
		return DaySummary{}, err
	}
	return Summarize(date, svc.repo.QueryAttendance(ctx)[date]), nil
}

// Dashboard returns the roster of `date`, in roll order, with the live counts.
func (svc *Service) Dashboard(ctx context.Context, date string) (Dashboard, error) {
	date, err := cleanDate(date)
	if err != nil {
		return Dashboard{}, err
	}
	today := svc.Today()
	day := svc.repo.QueryAttendance(ctx)[date]
	students := svc.students(ctx)

	dash := Dashboard{
		Date:        date,
		DisplayDate: core.FormatDisplayDate(date),
		IsToday:     date == today,
		IsPast:      date < today,
		Students:    make([]DashboardEntry, 0, len(students)),
	}
	for _, s := range students {
		dash.Students = append(dash.Students, DashboardEntry{Student: s, Status: day[s.ID]})
	}

	sum := Summarize(date, day)
	dash.Counts = DashboardCounts{
		TotalStudents: len(students),
		Present:       sum.Present,
		Absent:        sum.Absent,
		Marked:        sum.Marked,
		Rate:          sum.Rate,
	}
	for _, s := range students {
		if _, ok := day[s.ID]; !ok {
			dash.Counts.Unmarked++
		}
	}
	dash.CanSubmit = checkSubmittable(date, today, day) == nil
	return dash, nil
}

// checkSubmittable rejects dates before today, and today once it holds any mark.
func checkSubmittable(date, today string, day DayStatuses) error {
	if date < today {
		return core.NewFieldValidationError("date", ErrPastDate)
	}
	if date == today && len(day) > 0 {
		return core.NewFieldValidationError("date", ErrAlreadySubmitted)
	}
	return nil
}

// Submit finalizes `date`: every roster student still unmarked is set Absent, in a single save.
// Dates before today are rejected, and so is today once it holds any mark, submitted or toggled.
func (svc *Service) Submit(ctx context.Context, date string) (DayStatuses, error) {
	date, err := cleanDate(date)
	if err != nil {
		return nil, err
	}
	record := svc.repo.QueryAttendance(ctx)
	students := svc.students(ctx)
	if err := checkSubmittable(date, svc.Today(), record[date]); err != nil {
		return nil, err
	}

	day := record[date]
	if day == nil {
		day = make(DayStatuses)
	}
	var changed bool
	for _, s := range students {
		if _, ok := day[s.ID]; !ok {
			day[s.ID] = Absent
			changed = true
		}
	}
	if changed {
		if record == nil {
			record = make(Record)
		}
		record[date] = day
		svc.repo.SaveAttendance(ctx, record)
	}
	return day.Copy(), nil
}

// Trend returns the daily summaries, oldest first.
func (svc *Service) Trend(ctx context.Context) []DaySummary {
	return Trend(svc.repo.QueryAttendance(ctx))
}

// Report aggregates the whole record.
func (svc *Service) Report(ctx context.Context) Report {
	record := svc.repo.QueryAttendance(ctx)
	students := svc.students(ctx)
	stats := ComputeStats(record, students)

	rep := Report{
		TotalStudents:     len(students),
		TotalDays:         len(TrackedDates(record)),
		AverageAttendance: AverageAttendance(stats, students),
		Students:          make([]StudentReport, 0, len(students)),
		Trend:             Trend(record),
	}
	for _, s := range students {
		st := stats[s.ID]
		rep.Students = append(rep.Students, StudentReport{Student: s, Stats: st, Performance: PerformanceFor(st.Percentage)})
	}
	return rep
}

// DayDetail lists every status recorded on `date`, in roll order; unknown students come last, by id.
func (svc *Service) DayDetail(ctx context.Context, date string) (DayDetail, error) {
	date, err := cleanDate(date)
	if err != nil {
		return DayDetail{}, err
	}
	day := svc.repo.QueryAttendance(ctx)[date]
	students := svc.students(ctx)

	detail := DayDetail{
		Date:        date,
		DisplayDate: core.FormatDisplayDate(date),
		Summary:     Summarize(date, day),
		Entries:     make([]DayEntry, 0, len(day)),
	}
	seen := make(map[string]bool, len(day))
	for _, s := range students {
		if status, ok := day[s.ID]; ok {
			detail.Entries = append(detail.Entries, DayEntry{StudentID: s.ID, RollNo: s.RollNo, Name: s.Name, Known: true, Status: status})
			seen[s.ID] = true
		}
	}
	unknown := make([]string, 0)
	for id := range day {
		if !seen[id] {
			unknown = append(unknown, id)
		}
	}
	sort.Strings(unknown)
	for _, id := range unknown {
		detail.Entries = append(detail.Entries, DayEntry{StudentID: id, Name: id, Status: day[id]})
	}
	return detail, nil
}
