package echoapi_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	. "github.com/trezcool/edutrack/apps/api/echo"
	"github.com/trezcool/edutrack/core"
	"github.com/trezcool/edutrack/core/attendance"
	"github.com/trezcool/edutrack/core/session"
	"github.com/trezcool/edutrack/core/student"
	"github.com/trezcool/edutrack/storage/kv/inmemkv"
	"github.com/trezcool/edutrack/storage/records"
	"github.com/trezcool/edutrack/tests"
)

var errMissingToken = httpErr{Error: "missing or malformed jwt"}

type testApp struct {
	Server
	conf          *core.Config
	logger        *testutil.Logger
	studentSvc    *student.Service
	attendanceSvc *attendance.Service
	nav           *session.Navigator
}

func setup(t *testing.T) testApp {
	conf := testutil.NewConfig()
	logger := new(testutil.Logger)

	// set up storage & services
	shim := records.NewShim(inmemkv.Open(), logger)
	stuSvc, err := student.NewService(records.NewStudentRepository(shim), conf.Attendance.DuplicatePolicy)
	testutil.Fatal(t, err, "student.NewService()")
	attSvc := attendance.NewService(records.NewAttendanceRepository(shim), stuSvc, conf.Attendance.Location())

	op, err := session.NewOperator(conf.Login.Email, conf.Login.Password)
	testutil.Fatal(t, err, "session.NewOperator()")
	nav := session.NewNavigator(op, 0 /* no delay */, conf.Attendance.Location())

	validate, translator := core.NewValidator()

	// set up server
	srv := NewServer(ServerDeps{
		Conf:           conf,
		Logger:         logger,
		StudentSvc:     stuSvc,
		AttendanceSvc:  attSvc,
		Navigator:      nav,
		Validate:       validate,
		Translator:     translator,
		DisableReqLogs: true,
	})
	return testApp{
		Server:        srv,
		conf:          conf,
		logger:        logger,
		studentSvc:    stuSvc,
		attendanceSvc: attSvc,
		nav:           nav,
	}
}

// login logs the demo operator in and returns their token.
func (app testApp) login(t *testing.T) string {
	body := marchallObj(t, echoMap{"email": app.conf.Login.Email, "password": app.conf.Login.Password})
	req, rec := newRequest(http.MethodPost, "/v1/login", body)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("login() failed: code = %v; body %v", rec.Code, rec.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("login() failed: %v", err)
	}
	return resp.Token
}

// do runs tt against the app.
func (app testApp) do(t *testing.T, tt httpTest) *httptest.ResponseRecorder {
	method := tt.method
	if method == "" {
		method = http.MethodGet
	}
	req, rec := newAuthRequest(method, tt.path, tt.token, tt.body)
	app.ServeHTTP(rec, req)
	return rec
}

type echoMap map[string]interface{}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
