package records

import (
	"context"

	"github.com/trezcool/edutrack/core/attendance"
)

type attendanceRepository struct {
	shim *Shim
}

func NewAttendanceRepository(shim *Shim) attendance.Repository {
	return &attendanceRepository{shim: shim}
}

// QueryAttendance returns the stored record, or an empty one when none is stored (or it is unreadable).
// Entries holding an unknown status are dropped.
func (repo *attendanceRepository) QueryAttendance(ctx context.Context) attendance.Record {
	var record attendance.Record
	if !repo.shim.Load(ctx, AttendanceKey, &record) || record == nil {
		return make(attendance.Record)
	}
	for date, day := range record {
		if day == nil {
			delete(record, date)
			continue
		}
		for id, status := range day {
			if !status.Valid() {
				delete(day, id)
			}
		}
	}
	return record
}

func (repo *attendanceRepository) SaveAttendance(ctx context.Context, record attendance.Record) {
	if record == nil {
		record = make(attendance.Record)
	}
	repo.shim.Save(ctx, AttendanceKey, record)
}
