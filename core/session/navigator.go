package session

import (
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/edutrack/core"
)

type View string

// Views
const (
	ViewLogin     View = "login"
	ViewDashboard View = "dashboard"
	ViewReports   View = "reports"
)

var (
	// errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotLoggedIn        = errors.New("operator not logged in")

	sleepFunc = time.Sleep // mockable
	nowFunc   = time.Now   // mockable
)

// State is what the operator currently sees.
type State struct {
	View         View   `json:"view"`
	SelectedDate string `json:"selectedDate"`
	Operator     string `json:"operator,omitempty"`
}

// Navigator switches the operator between the login, dashboard and reports views
// and holds the date selected on the dashboard.
type Navigator struct {
	mu       sync.RWMutex
	operator Operator
	delay    time.Duration
	loc      *time.Location
	state    State
}

// NewNavigator starts on the login view with today selected.
// `delay` is the simulated authentication delay of Login.
func NewNavigator(op Operator, delay time.Duration, loc *time.Location) *Navigator {
	if loc == nil {
		loc = time.Local
	}
	return &Navigator{
		operator: op,
		delay:    delay,
		loc:      loc,
		state:    State{View: ViewLogin, SelectedDate: core.Today(nowFunc(), loc)},
	}
}

func (nav *Navigator) State() State {
	nav.mu.RLock()
	defer nav.mu.RUnlock()
	return nav.state
}

// Login waits for the simulated delay, which cannot be cancelled, then checks the demo credentials
// and moves to the dashboard.
func (nav *Navigator) Login(email, pwd string) (State, error) {
	if nav.delay > 0 {
		sleepFunc(nav.delay)
	}
	email = core.CleanString(email, true /* lower */)
	if email != nav.operator.Email || nav.operator.CheckPassword(pwd) != nil {
		return nav.State(), core.NewValidationError(ErrInvalidCredentials)
	}

	nav.mu.Lock()
	defer nav.mu.Unlock()
	nav.state.View = ViewDashboard
	nav.state.Operator = email
	return nav.state, nil
}

// Logout returns to the login view from anywhere. The selected date is kept.
func (nav *Navigator) Logout() State {
	nav.mu.Lock()
	defer nav.mu.Unlock()
	nav.state.View = ViewLogin
	nav.state.Operator = ""
	return nav.state
}

func (nav *Navigator) ViewReports() (State, error) {
	return nav.goTo(ViewReports)
}

func (nav *Navigator) BackToDashboard() (State, error) {
	return nav.goTo(ViewDashboard)
}

func (nav *Navigator) goTo(view View) (State, error) {
	nav.mu.Lock()
	defer nav.mu.Unlock()
	if nav.state.View == ViewLogin {
		return nav.state, ErrNotLoggedIn
	}
	nav.state.View = view
	return nav.state, nil
}

// SetDate changes the date shown on the dashboard.
func (nav *Navigator) SetDate(date string) (State, error) {
	date, err := core.CleanDate(date)
	if err != nil {
		return nav.State(), core.NewFieldValidationError("date", err)
	}

	nav.mu.Lock()
	defer nav.mu.Unlock()
	if nav.state.View == ViewLogin {
		return nav.state, ErrNotLoggedIn
	}
	nav.state.SelectedDate = date
	return nav.state, nil
}

// LoggedIn reports whether the operator went past the login view.
func (nav *Navigator) LoggedIn() bool {
	return nav.State().View != ViewLogin
}
