package records

import (
	"context"

	"github.com/trezcool/edutrack/core/student"
)

type studentRepository struct {
	shim *Shim
}

func NewStudentRepository(shim *Shim) student.Repository {
	return &studentRepository{shim: shim}
}

// QueryAllStudents returns the stored roster, or the default one when none is stored (or it is unreadable).
func (repo *studentRepository) QueryAllStudents(ctx context.Context) []student.Student {
	var students []student.Student
	if !repo.shim.Load(ctx, StudentsKey, &students) || students == nil {
		return student.Defaults()
	}
	return students
}

func (repo *studentRepository) SaveStudents(ctx context.Context, students []student.Student) {
	if students == nil {
		students = []student.Student{}
	}
	repo.shim.Save(ctx, StudentsKey, students)
}
