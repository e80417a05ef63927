package main

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/edutrack/core"
	"github.com/trezcool/edutrack/core/student"
)

func (cli *commandLine) addStudent(name, rollNo string) error {
	if err := cli.services(); err != nil {
		return err
	}
	ns := student.NewStudent{Name: name, RollNo: rollNo}
	if err := ns.Validate(cli.validate); err != nil {
		return cli.translateErrors(err)
	}
	stu, err := cli.studentSvc.Add(context.Background(), ns)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "added %s %s (%s)\n", stu.RollNo, stu.Name, stu.ID)
	return nil
}

// translateErrors renders validation errors as a single sorted line.
func (cli *commandLine) translateErrors(err error) error {
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return err
	}
	fldErrs := core.TranslateErrors(vErrs, cli.translator)
	msgs := make([]string, 0, len(fldErrs))
	for _, msg := range fldErrs {
		msgs = append(msgs, msg)
	}
	sort.Strings(msgs)
	return errors.New(strings.Join(msgs, "; "))
}

// listStudents prints the roster in roll order unless `ordering` says otherwise.
func (cli *commandLine) listStudents(ordering string) error {
	if err := cli.services(); err != nil {
		return err
	}
	ctx := context.Background()

	var students []student.Student
	if orderings := core.ParseOrderings(ordering); len(orderings) > 0 {
		students = cli.studentSvc.List(ctx, orderings...)
	} else {
		students = cli.studentSvc.List(ctx)
		student.ByRoll(students)
	}

	w := tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ROLL\tNAME\tID")
	for _, s := range students {
		fmt.Fprintf(w, "%s\t%s\t%s\n", s.RollNo, s.Name, s.ID)
	}
	return w.Flush()
}
