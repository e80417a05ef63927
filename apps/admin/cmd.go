package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"golang.org/x/term"

	"github.com/trezcool/edutrack/core"
	"github.com/trezcool/edutrack/core/attendance"
	"github.com/trezcool/edutrack/core/student"
	"github.com/trezcool/edutrack/storage/kv"
	"github.com/trezcool/edutrack/storage/records"
)

var (
	readPasswordFunc = term.ReadPassword // mockable
	isTerminalFunc   = term.IsTerminal   // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	conf      *core.Config
	logger    core.Logger
	out       io.Writer
	openStore func() (kv.Store, error)
	openDB    func() (*sql.DB, error)

	validate   *validator.Validate
	translator ut.Translator

	store         kv.Store
	studentSvc    *student.Service
	attendanceSvc *attendance.Service
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  addstudent -name NAME [-roll ROLL]                     - add a student to the roster")
	fmt.Fprintln(cli.out, "  students [-ordering roll|name]                         - list the roster")
	fmt.Fprintln(cli.out, "  mark -date DATE -student ID -status Present|Absent     - mark one student")
	fmt.Fprintln(cli.out, "  submit [-date DATE]                                    - mark every unmarked student absent")
	fmt.Fprintln(cli.out, "  report                                                 - print the attendance report")
	fmt.Fprintln(cli.out, "  day -date DATE                                         - print the marks of one date")
	fmt.Fprintln(cli.out, "  login -email EMAIL                                     - check the operator credentials")
	fmt.Fprintln(cli.out, "  migrate COMMAND [ARGS...]                              - run a database migration (postgres only)")
}

// services opens the store on first use, so that `migrate` never touches it.
func (cli *commandLine) services() error {
	if cli.studentSvc != nil {
		return nil
	}
	store, err := cli.openStore()
	if err != nil {
		return err
	}
	cli.store = store

	shim := records.NewShim(store, cli.logger)
	cli.studentSvc, err = student.NewService(records.NewStudentRepository(shim), cli.conf.Attendance.DuplicatePolicy)
	if err != nil {
		return err
	}
	cli.attendanceSvc = attendance.NewService(records.NewAttendanceRepository(shim), cli.studentSvc, cli.conf.Attendance.Location())
	return nil
}

func (cli *commandLine) close() error {
	if cli.store == nil {
		return nil
	}
	return cli.store.Close()
}

func newFlagSet(name string) *flag.FlagSet {
	return flag.NewFlagSet(name, flag.ContinueOnError)
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addStudentCmd := newFlagSet("addstudent")
	addStudentName := addStudentCmd.String("name", "", "The student's name.")
	addStudentRoll := addStudentCmd.String("roll", "", "The roll number. The next free number is assigned when empty.")

	studentsCmd := newFlagSet("students")
	studentsOrdering := studentsCmd.String("ordering", "", "Comma separated fields to sort by (roll, name); prefix with '-' for descending.")

	markCmd := newFlagSet("mark")
	markDate := markCmd.String("date", "", "The date, as YYYY-MM-DD. Defaults to today.")
	markStudent := markCmd.String("student", "", "The student's id.")
	markStatus := markCmd.String("status", "", "Present or Absent.")

	submitCmd := newFlagSet("submit")
	submitDate := submitCmd.String("date", "", "The date, as YYYY-MM-DD. Defaults to today.")

	reportCmd := newFlagSet("report")

	dayCmd := newFlagSet("day")
	dayDate := dayCmd.String("date", "", "The date, as YYYY-MM-DD.")

	loginCmd := newFlagSet("login")
	loginEmail := loginCmd.String("email", "", "The operator's email. The password will be prompted next.")

	switch args[1] {
	case "addstudent":
		if err := addStudentCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if core.CleanString(*addStudentName) == "" {
			addStudentCmd.Usage()
			return errHelp
		}
		return cli.addStudent(*addStudentName, *addStudentRoll)
	case "students":
		if err := studentsCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		return cli.listStudents(*studentsOrdering)
	case "mark":
		if err := markCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *markStudent == "" || *markStatus == "" {
			markCmd.Usage()
			return errHelp
		}
		return cli.mark(*markDate, *markStudent, *markStatus)
	case "submit":
		if err := submitCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		return cli.submit(*submitDate)
	case "report":
		if err := reportCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		return cli.report()
	case "day":
		if err := dayCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *dayDate == "" {
			dayCmd.Usage()
			return errHelp
		}
		return cli.day(*dayDate)
	case "login":
		if err := loginCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *loginEmail == "" {
			loginCmd.Usage()
			return errHelp
		}
		fmt.Fprint(cli.out, "Enter password:")
		pwd, err := readPasswordFunc(int(syscall.Stdin))
		fmt.Fprintln(cli.out)
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			loginCmd.Usage()
			return errHelp
		}
		return cli.checkLogin(*loginEmail, string(pwd))
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	default:
		cli.printUsage()
		return errHelp
	}
}
