package student

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/edutrack/core"
)

var (
	// errors
	ErrNotFound       = errors.New("student not found")
	ErrNameRequired   = errors.New("this field is required")
	ErrNameExists     = errors.New("a student with this name already exists")
	ErrRollNoExists   = errors.New("a student with this roll number already exists")
	errInvalidPolicy  = "unknown duplicate policy %q"
	newIDFunc         = newID // mockable
	rollNoPadding     = 3
	rollNoFormatWidth = "%0" + strconv.Itoa(rollNoPadding) + "d"
)

type (
	// Repository persists the roster. It is a best-effort store: reads fall back to the
	// default roster and write failures are logged by the implementation, never returned.
	Repository interface {
		QueryAllStudents(ctx context.Context) []Student
		SaveStudents(ctx context.Context, students []Student)
	}

	Service struct {
		repo            Repository
		duplicatePolicy string
	}
)

func NewService(repo Repository, duplicatePolicy string) (*Service, error) {
	if duplicatePolicy == "" {
		duplicatePolicy = DuplicateByBoth
	}
	if !ValidDuplicatePolicy(duplicatePolicy) {
		return nil, errors.Errorf(errInvalidPolicy, duplicatePolicy)
	}
	return &Service{repo: repo, duplicatePolicy: duplicatePolicy}, nil
}

func (svc *Service) DuplicatePolicy() string { return svc.duplicatePolicy }

// List returns the roster in storage order, or sorted by `orderings` when given.
func (svc *Service) List(ctx context.Context, orderings ...core.Ordering) []Student {
	students := svc.repo.QueryAllStudents(ctx)
	if len(orderings) > 0 {
		Sort(students, orderings...)
	}
	return students
}

// Index returns the roster keyed by Student.ID.
func (svc *Service) Index(ctx context.Context) map[string]Student {
	students := svc.repo.QueryAllStudents(ctx)
	idx := make(map[string]Student, len(students))
	for _, s := range students {
		idx[s.ID] = s
	}
	return idx
}

func (svc *Service) GetByID(ctx context.Context, id string) (Student, error) {
	id = core.CleanString(id)
	for _, s := range svc.repo.QueryAllStudents(ctx) {
		if s.ID == id {
			return s, nil
		}
	}
	return Student{}, ErrNotFound
}

// Add appends a new Student to the roster.
// The roster is left unchanged and a *core.ValidationError is returned when the name is blank
// or when the student is a duplicate according to the duplicate policy.
func (svc *Service) Add(ctx context.Context, ns NewStudent) (Student, error) {
	name := core.CleanString(ns.Name)
	rollNo := core.CleanString(ns.RollNo)
	if name == "" {
		return Student{}, core.NewFieldValidationError("name", ErrNameRequired)
	}

	students := svc.repo.QueryAllStudents(ctx)
	if err := svc.checkUniqueness(students, name, rollNo); err != nil {
		return Student{}, err
	}
	if rollNo == "" {
		rollNo = NextRollNo(students)
	}

	id, err := newIDFunc()
	if err != nil {
		return Student{}, errors.Wrap(err, "generating student id")
	}
	stu := Student{ID: id, RollNo: rollNo, Name: name}
	svc.repo.SaveStudents(ctx, append(students, stu))
	return stu, nil
}

func (svc *Service) checkUniqueness(students []Student, name, rollNo string) error {
	checkName := svc.duplicatePolicy == DuplicateByName || svc.duplicatePolicy == DuplicateByBoth
	checkRoll := svc.duplicatePolicy == DuplicateByRoll || svc.duplicatePolicy == DuplicateByBoth
	for _, s := range students {
		if checkName && strings.EqualFold(core.CleanString(s.Name), name) {
			return core.NewFieldValidationError("name", ErrNameExists)
		}
		if checkRoll && rollNo != "" && core.CleanString(s.RollNo) == rollNo {
			return core.NewFieldValidationError("rollNo", ErrRollNoExists)
		}
	}
	return nil
}

// NextRollNo returns the roll number following the highest numeric one of the roster, zero padded.
func NextRollNo(students []Student) string {
	var max int
	for _, s := range students {
		if n, err := strconv.Atoi(core.CleanString(s.RollNo)); err == nil && n > max {
			max = n
		}
	}
	return fmt.Sprintf(rollNoFormatWidth, max+1)
}

func newID() (string, error) {
	id, err := uuid.NewUUID() // time-based
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
