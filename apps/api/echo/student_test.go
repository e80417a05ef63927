package echoapi_test

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/edutrack/core/student"
)

func Test_studentApi_query(t *testing.T) {
	app := setup(t)
	token := app.login(t)

	alice, bob, charlie, diana, edward := student.DefaultStudents[0], student.DefaultStudents[1],
		student.DefaultStudents[2], student.DefaultStudents[3], student.DefaultStudents[4]

	tests := []httpTest{
		{name: "Default roster", path: "/v1/students", wantData: marchallObj(t, student.DefaultStudents)},
		{name: "ordering=-name", path: "/v1/students?ordering=-name", wantData: marchallObj(t, []student.Student{edward, diana, charlie, bob, alice})},
		{name: "ordering=-roll", path: "/v1/students?ordering=-roll", wantData: marchallObj(t, []student.Student{edward, diana, charlie, bob, alice})},
		{name: "ordering (unknown)", path: "/v1/students?ordering=lol", wantData: marchallObj(t, student.DefaultStudents)},
		{name: "Retrieve", path: "/v1/students/3", wantData: marchallObj(t, charlie)},
		{name: "Retrieve (unknown)", path: "/v1/students/42", wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "student not found"})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.token = token
			if tt.wantCode == 0 {
				tt.wantCode = http.StatusOK
			}
			checkCodeAndData(t, tt, app.do(t, tt))
		})
	}
}

func Test_studentApi_create(t *testing.T) {
	app := setup(t)
	token := app.login(t)

	tests := []httpTest{
		{
			name: "Blank name", body: []byte(`{"name": "   "}`), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, echoMap{"name": "this field is required"}),
		},
		{
			name: "Name too long", body: marchallObj(t, echoMap{"name": strings.Repeat("a", 101)}), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, echoMap{"name": "name must be a maximum of 100 characters in length"}),
		},
		{
			name: "Duplicate name", body: []byte(`{"name": " alice JOHNSON "}`), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, echoMap{"name": "a student with this name already exists"}),
		},
		{
			name: "Duplicate roll", body: []byte(`{"name": "Frank Ocean", "rollNo": "003"}`), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, echoMap{"rollNo": "a student with this roll number already exists"}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.method = http.MethodPost
			tt.path = "/v1/students"
			tt.token = token
			checkCodeAndData(t, tt, app.do(t, tt))
		})
	}
	// rejected students leave the roster unchanged
	assert.Len(t, app.studentSvc.List(context.Background()), len(student.DefaultStudents))

	t.Run("Auto roll number", func(t *testing.T) {
		rec := app.do(t, httpTest{method: http.MethodPost, path: "/v1/students", token: token, body: []byte(`{"name": " Frank Ocean "}`)})
		if !assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String()) {
			return
		}
		var stu student.Student
		if err := json.Unmarshal(rec.Body.Bytes(), &stu); err != nil {
			t.Fatalf("json.Unmarshal() failed: %v", err)
		}
		assert.NotEmpty(t, stu.ID)
		assert.Equal(t, "006", stu.RollNo)
		assert.Equal(t, "Frank Ocean", stu.Name)

		got, err := app.studentSvc.GetByID(context.Background(), stu.ID)
		assert.NoError(t, err)
		assert.Equal(t, stu, got)
	})

	t.Run("Custom roll number", func(t *testing.T) {
		rec := app.do(t, httpTest{method: http.MethodPost, path: "/v1/students", token: token, body: []byte(`{"name": "Grace Hopper", "rollNo": "A-12"}`)})
		if !assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String()) {
			return
		}
		var stu student.Student
		if err := json.Unmarshal(rec.Body.Bytes(), &stu); err != nil {
			t.Fatalf("json.Unmarshal() failed: %v", err)
		}
		assert.Equal(t, "A-12", stu.RollNo)
		assert.Len(t, app.studentSvc.List(context.Background()), len(student.DefaultStudents)+2)
	})
}
