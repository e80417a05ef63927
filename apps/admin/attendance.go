package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/trezcool/edutrack/core"
	"github.com/trezcool/edutrack/core/attendance"
)

const barWidth = 20

func (cli *commandLine) dateOrToday(date string) string {
	if date = core.CleanString(date); date == "" {
		return cli.attendanceSvc.Today()
	}
	return date
}

func formatSummary(sum attendance.DaySummary) string {
	return fmt.Sprintf("%s: %d present, %d absent, %d%% attendance", sum.Date, sum.Present, sum.Absent, sum.Rate)
}

func (cli *commandLine) mark(date, studentID, status string) error {
	if err := cli.services(); err != nil {
		return err
	}
	ctx := context.Background()
	date = cli.dateOrToday(date)

	st, err := attendance.ParseStatus(status)
	if err != nil {
		return core.NewFieldValidationError("status", err)
	}
	if err = cli.attendanceSvc.SetStatus(ctx, studentID, date, st); err != nil {
		return err
	}
	sum, err := cli.attendanceSvc.DaySummary(ctx, date)
	if err != nil {
		return err
	}
	fmt.Fprintln(cli.out, formatSummary(sum))
	return nil
}

func (cli *commandLine) submit(date string) error {
	if err := cli.services(); err != nil {
		return err
	}
	date = cli.dateOrToday(date)

	statuses, err := cli.attendanceSvc.Submit(context.Background(), date)
	if err != nil {
		return err
	}
	date, _ = core.CleanDate(date)
	fmt.Fprintln(cli.out, "submitted "+formatSummary(attendance.Summarize(date, statuses)))
	return nil
}

// bar draws `pct` as a gauge, only when writing to a terminal.
func (cli *commandLine) bar(pct int) string {
	if cli.out != os.Stdout || !isTerminalFunc(int(os.Stdout.Fd())) {
		return ""
	}
	filled := pct * barWidth / 100
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", barWidth-filled) + "]"
}

func (cli *commandLine) report() error {
	if err := cli.services(); err != nil {
		return err
	}
	rep := cli.attendanceSvc.Report(context.Background())

	fmt.Fprintf(cli.out, "Total students: %d\n", rep.TotalStudents)
	fmt.Fprintf(cli.out, "Days tracked: %d\n", rep.TotalDays)
	fmt.Fprintf(cli.out, "Average attendance: %d%%\n\n", rep.AverageAttendance)

	w := tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ROLL\tNAME\tPRESENT\tTOTAL\tRATE\tPERFORMANCE\t")
	for _, s := range rep.Students {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d%%\t%s\t%s\n",
			s.RollNo, s.Name, s.Present, s.Total, s.Percentage, s.Performance.Tier, cli.bar(s.Percentage))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(rep.Trend) == 0 {
		fmt.Fprintln(cli.out, "\nNo attendance data available yet.")
		return nil
	}
	fmt.Fprintln(cli.out, "\nDaily attendance:")
	for _, sum := range rep.Trend {
		fmt.Fprintln(cli.out, "  "+formatSummary(sum))
	}
	return nil
}

func (cli *commandLine) day(date string) error {
	if err := cli.services(); err != nil {
		return err
	}
	detail, err := cli.attendanceSvc.DayDetail(context.Background(), date)
	if err != nil {
		return err
	}

	fmt.Fprintln(cli.out, detail.DisplayDate)
	fmt.Fprintln(cli.out, formatSummary(detail.Summary))
	if len(detail.Entries) == 0 {
		return nil
	}
	w := tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ROLL\tNAME\tSTATUS")
	for _, e := range detail.Entries {
		roll := e.RollNo
		if !e.Known {
			roll = "?"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", roll, e.Name, e.Status)
	}
	return w.Flush()
}
