package attendance

import (
	"math"
	"sort"

	"github.com/trezcool/edutrack/core/student"
)

// Percent returns round(part/whole*100), 0 when whole is 0.
func Percent(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(whole) * 100))
}

// ComputeStats sums the record per roster student. Statuses of students not in the roster are ignored.
// The result does not depend on the iteration order of the record.
func ComputeStats(record Record, students []student.Student) map[string]Stats {
	stats := make(map[string]Stats, len(students))
	for _, s := range students {
		stats[s.ID] = Stats{}
	}

	for _, day := range record {
		for id, status := range day {
			st, ok := stats[id]
			if !ok {
				continue
			}
			st.Total++
			if status == Present {
				st.Present++
			}
			stats[id] = st
		}
	}

	for id, st := range stats {
		st.Percentage = Percent(st.Present, st.Total)
		stats[id] = st
	}
	return stats
}

// Summarize counts the statuses of one date.
func Summarize(date string, day DayStatuses) DaySummary {
	sum := DaySummary{Date: date, Marked: len(day)}
	for _, status := range day {
		if status == Present {
			sum.Present++
		}
	}
	sum.Absent = sum.Marked - sum.Present
	sum.Rate = Percent(sum.Present, sum.Marked)
	return sum
}

// Trend returns the summary of every date with at least one entry, oldest first.
func Trend(record Record) []DaySummary {
	dates := TrackedDates(record)
	trend := make([]DaySummary, 0, len(dates))
	for _, date := range dates {
		trend = append(trend, Summarize(date, record[date]))
	}
	return trend
}

// TrackedDates returns the dates holding at least one entry, sorted ascending.
func TrackedDates(record Record) []string {
	dates := make([]string, 0, len(record))
	for date, day := range record {
		if len(day) > 0 {
			dates = append(dates, date)
		}
	}
	sort.Strings(dates)
	return dates
}

// AverageAttendance is the rounded mean of the roster percentages, 0 for an empty roster.
func AverageAttendance(stats map[string]Stats, students []student.Student) int {
	if len(students) == 0 {
		return 0
	}
	var sum int
	for _, s := range students {
		sum += stats[s.ID].Percentage
	}
	return int(math.Round(float64(sum) / float64(len(students))))
}
