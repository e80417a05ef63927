package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/trezcool/edutrack/core"
	"github.com/trezcool/edutrack/core/student"
)

const (
	yesterday = "2024-03-14"
	today     = "2024-03-15"
	tomorrow  = "2024-03-16"
)

type memRepo struct {
	record Record
	saves  int
}

func (r *memRepo) QueryAttendance(_ context.Context) Record {
	record := make(Record, len(r.record))
	for date, day := range r.record {
		record[date] = day.Copy()
	}
	return record
}

func (r *memRepo) SaveAttendance(_ context.Context, record Record) {
	r.record = record
	r.saves++
}

type roster struct {
	students []student.Student
}

func (r *roster) List(_ context.Context, orderings ...core.Ordering) []student.Student {
	students := make([]student.Student, len(r.students))
	copy(students, r.students)
	student.Sort(students, orderings...)
	return students
}

func newTestService(t *testing.T, record Record, students ...student.Student) (*Service, *memRepo) {
	t.Helper()
	nowFunc = func() time.Time { return time.Date(2024, 3, 15, 23, 30, 0, 0, time.UTC) }
	t.Cleanup(func() { nowFunc = time.Now })

	if record == nil {
		record = make(Record)
	}
	repo := &memRepo{record: record}
	return NewService(repo, &roster{students: students}, time.UTC), repo
}

// checkFieldError fails unless err is a *core.ValidationError of `want` on `field`.
func checkFieldError(t *testing.T, err error, field string, want error) {
	t.Helper()
	var vErr *core.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("error = %v, want a *core.ValidationError", err)
	}
	assert.Equal(t, want, vErr.Err)
	if assert.Len(t, vErr.Fields, 1) {
		assert.Equal(t, field, vErr.Fields[0].Field)
	}
}

func TestService_Today(t *testing.T) {
	svc, _ := newTestService(t, nil)
	assert.Equal(t, today, svc.Today())

	// 23:30 UTC is already the next day east of UTC
	svc.loc = time.FixedZone("UTC+2", 2*60*60)
	assert.Equal(t, tomorrow, svc.Today())
}

func TestService_SetStatus(t *testing.T) {
	svc, repo := newTestService(t, nil, makeStudents(3)...)
	ctx := context.Background()

	assert.NoError(t, svc.SetStatus(ctx, "1", today, Present))
	assert.NoError(t, svc.SetStatus(ctx, "2", today, Absent))
	assert.NoError(t, svc.SetStatus(ctx, "1", today, Absent)) // toggle
	assert.NoError(t, svc.SetStatus(ctx, "1", yesterday, Present))
	assert.Equal(t, 4, repo.saves)
	assert.Equal(t, Record{
		today:     {"1": Absent, "2": Absent},
		yesterday: {"1": Present},
	}, repo.record)

	got, err := svc.StatusesForDate(ctx, today)
	assert.NoError(t, err)
	assert.Equal(t, DayStatuses{"1": Absent, "2": Absent}, got)

	got, err = svc.StatusesForDate(ctx, tomorrow)
	assert.NoError(t, err)
	assert.Equal(t, DayStatuses{}, got)

	checkFieldError(t, svc.SetStatus(ctx, " ", today, Present), "studentId", ErrStudentRequired)
	checkFieldError(t, svc.SetStatus(ctx, "1", "2024-3-15", Present), "date", core.ErrInvalidDate)
	checkFieldError(t, svc.SetStatus(ctx, "1", today, Status("Late")), "status", ErrInvalidStatus)
	assert.Equal(t, 4, repo.saves, "rejected marks must not be saved")
}

func TestService_Submit(t *testing.T) {
	ctx := context.Background()
	students := makeStudents(5)

	t.Run("past date", func(t *testing.T) {
		for _, day := range []DayStatuses{nil, {"1": Present}, {"1": Present, "2": Present, "3": Present, "4": Present, "5": Present}} {
			svc, repo := newTestService(t, Record{yesterday: day}, students...)
			_, err := svc.Submit(ctx, yesterday)
			checkFieldError(t, err, "date", ErrPastDate)
			assert.Zero(t, repo.saves)
		}
	})

	t.Run("today with nothing marked", func(t *testing.T) {
		svc, repo := newTestService(t, nil, students...)
		got, err := svc.Submit(ctx, today)
		if assert.NoError(t, err) {
			assert.Equal(t, DayStatuses{"1": Absent, "2": Absent, "3": Absent, "4": Absent, "5": Absent}, got)
			assert.Equal(t, got, repo.record[today])
			assert.Equal(t, Summarize(today, got), DaySummary{Date: today, Absent: 5, Marked: 5})
			assert.Equal(t, 1, repo.saves, "submit must save once")
		}

		// already submitted
		_, err = svc.Submit(ctx, today)
		checkFieldError(t, err, "date", ErrAlreadySubmitted)
		assert.Equal(t, 1, repo.saves)
	})

	t.Run("today with any mark is locked", func(t *testing.T) {
		for _, day := range []DayStatuses{{"1": Present}, {"ghost": Absent}, {"1": Present, "3": Absent}} {
			svc, repo := newTestService(t, Record{today: day}, students...)
			_, err := svc.Submit(ctx, today)
			checkFieldError(t, err, "date", ErrAlreadySubmitted)
			assert.Zero(t, repo.saves)
			assert.Equal(t, day, repo.record[today], "marks must be left untouched")
		}
	})

	t.Run("today stays locked when the roster grows", func(t *testing.T) {
		svc, repo := newTestService(t, nil, students...)
		if _, err := svc.Submit(ctx, today); err != nil {
			t.Fatalf("Submit() failed: %v", err)
		}
		svc.roster.(*roster).students = makeStudents(6)

		_, err := svc.Submit(ctx, today)
		checkFieldError(t, err, "date", ErrAlreadySubmitted)
		assert.Equal(t, 1, repo.saves)
		assert.NotContains(t, repo.record[today], "6")

		dash, err := svc.Dashboard(ctx, today)
		if assert.NoError(t, err) {
			assert.False(t, dash.CanSubmit)
			assert.Equal(t, 1, dash.Counts.Unmarked)
		}
	})

	t.Run("future date is idempotent", func(t *testing.T) {
		svc, repo := newTestService(t, Record{tomorrow: {"2": Present}}, students...)
		first, err := svc.Submit(ctx, tomorrow)
		assert.NoError(t, err)
		second, err := svc.Submit(ctx, tomorrow)
		assert.NoError(t, err)
		assert.Equal(t, first, second)
		assert.Equal(t, 1, repo.saves, "nothing left to mark on the second submit")
	})

	t.Run("invalid date", func(t *testing.T) {
		svc, _ := newTestService(t, nil, students...)
		_, err := svc.Submit(ctx, "soon")
		checkFieldError(t, err, "date", core.ErrInvalidDate)
	})
}

func TestService_StatsForAllStudents(t *testing.T) {
	svc, _ := newTestService(t, nil, makeStudents(5)...)
	stats := svc.StatsForAllStudents(context.Background())
	assert.Len(t, stats, 5)
	for _, st := range stats {
		assert.Equal(t, 0, st.Percentage)
	}
}

func TestService_DaySummary(t *testing.T) {
	svc, _ := newTestService(t, Record{today: {"1": Present, "2": Present, "3": Present, "4": Absent, "5": Absent}}, makeStudents(5)...)
	got, err := svc.DaySummary(context.Background(), today)
	assert.NoError(t, err)
	assert.Equal(t, 60, got.Rate)
}

func TestService_Dashboard(t *testing.T) {
	students := []student.Student{
		{ID: "b", RollNo: "10", Name: "Bob"},
		{ID: "a", RollNo: "2", Name: "Ann"},
		{ID: "c", RollNo: "3", Name: "Cid"},
	}
	svc, _ := newTestService(t, Record{today: {"b": Present, "c": Absent}, tomorrow: {"a": Present, "b": Present, "c": Present}}, students...)
	ctx := context.Background()

	got, err := svc.Dashboard(ctx, today)
	if assert.NoError(t, err) {
		assert.Equal(t, Dashboard{
			Date:        today,
			DisplayDate: "Friday, March 15, 2024",
			IsToday:     true,
			CanSubmit:   false, // already marked
			Counts:      DashboardCounts{TotalStudents: 3, Present: 1, Absent: 1, Marked: 2, Unmarked: 1, Rate: 50},
			Students: []DashboardEntry{
				{Student: students[1]},
				{Student: students[2], Status: Absent},
				{Student: students[0], Status: Present},
			},
		}, got)
	}

	got, err = svc.Dashboard(ctx, yesterday)
	if assert.NoError(t, err) {
		assert.True(t, got.IsPast)
		assert.False(t, got.CanSubmit)
		assert.Equal(t, 3, got.Counts.Unmarked)
	}

	got, err = svc.Dashboard(ctx, tomorrow)
	if assert.NoError(t, err) {
		assert.False(t, got.IsToday)
		assert.True(t, got.CanSubmit, "future dates can always be submitted")
		assert.Equal(t, 100, got.Counts.Rate)
	}

	empty, _ := newTestService(t, nil, students...)
	got, err = empty.Dashboard(ctx, today)
	if assert.NoError(t, err) {
		assert.True(t, got.CanSubmit)
	}

	_, err = svc.Dashboard(ctx, "")
	checkFieldError(t, err, "date", core.ErrInvalidDate)
}

func TestService_Report(t *testing.T) {
	students := makeStudents(3)
	svc, _ := newTestService(t, Record{
		"2024-03-11": {"1": Present, "2": Present, "3": Absent},
		"2024-03-12": {"1": Present, "2": Absent, "old": Absent},
		"2024-03-13": {},
	}, students...)

	assert.Equal(t, Report{
		TotalStudents:     3,
		TotalDays:         2,
		AverageAttendance: 50, // (100 + 50 + 0) / 3
		Students: []StudentReport{
			{Student: students[0], Stats: Stats{Present: 2, Total: 2, Percentage: 100}, Performance: Performance{TierExcellent, LevelSuccess}},
			{Student: students[1], Stats: Stats{Present: 1, Total: 2, Percentage: 50}, Performance: Performance{TierPoor, LevelDestructive}},
			{Student: students[2], Stats: Stats{Present: 0, Total: 1, Percentage: 0}, Performance: Performance{TierPoor, LevelDestructive}},
		},
		Trend: []DaySummary{
			{Date: "2024-03-11", Present: 2, Absent: 1, Marked: 3, Rate: 67},
			{Date: "2024-03-12", Present: 1, Absent: 2, Marked: 3, Rate: 33},
		},
	}, svc.Report(context.Background()))

	empty, _ := newTestService(t, nil)
	assert.Equal(t, Report{Students: []StudentReport{}, Trend: []DaySummary{}}, empty.Report(context.Background()))
}

func TestService_DayDetail(t *testing.T) {
	students := makeStudents(3)
	svc, _ := newTestService(t, Record{today: {"zed": Absent, "3": Present, "abe": Present, "1": Absent}}, students...)

	got, err := svc.DayDetail(context.Background(), today)
	if assert.NoError(t, err) {
		assert.Equal(t, DayDetail{
			Date:        today,
			DisplayDate: "Friday, March 15, 2024",
			Summary:     DaySummary{Date: today, Present: 2, Absent: 2, Marked: 4, Rate: 50},
			Entries: []DayEntry{
				{StudentID: "1", RollNo: "001", Name: "Student 1", Known: true, Status: Absent},
				{StudentID: "3", RollNo: "003", Name: "Student 3", Known: true, Status: Present},
				{StudentID: "abe", Name: "abe", Status: Present},
				{StudentID: "zed", Name: "zed", Status: Absent},
			},
		}, got)
	}
}
