package student

import (
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/edutrack/core"
)

// Duplicate policies: which fields identify a student when adding a new one.
const (
	DuplicateByName = "name"
	DuplicateByRoll = "roll"
	DuplicateByBoth = "both"
)

// Orderable fields
const (
	OrderByRoll = "roll"
	OrderByName = "name"
)

// DefaultStudents is the roster used until one has been saved.
var DefaultStudents = []Student{
	{ID: "1", RollNo: "001", Name: "Alice Johnson"},
	{ID: "2", RollNo: "002", Name: "Bob Smith"},
	{ID: "3", RollNo: "003", Name: "Charlie Brown"},
	{ID: "4", RollNo: "004", Name: "Diana Ross"},
	{ID: "5", RollNo: "005", Name: "Edward Wilson"},
}

// Defaults returns a copy of DefaultStudents.
func Defaults() []Student {
	students := make([]Student, len(DefaultStudents))
	copy(students, DefaultStudents)
	return students
}

type Student struct {
	ID     string `json:"id"`
	RollNo string `json:"rollNo"`
	Name   string `json:"name"`
}

// NewStudent contains information needed to add a Student to the roster.
// An empty RollNo is auto-assigned.
type NewStudent struct {
	Name   string `json:"name" validate:"required,notblank,max=100"`
	RollNo string `json:"rollNo" validate:"omitempty,max=20"`
}

func (ns *NewStudent) Validate(validate *validator.Validate) error {
	ns.Name = core.CleanString(ns.Name)
	ns.RollNo = core.CleanString(ns.RollNo)
	return validate.Struct(ns)
}

// ValidDuplicatePolicy reports whether `policy` is one of the known duplicate policies.
func ValidDuplicatePolicy(policy string) bool {
	switch policy {
	case DuplicateByName, DuplicateByRoll, DuplicateByBoth:
		return true
	}
	return false
}
