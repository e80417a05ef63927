package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/edutrack/core"
	"github.com/trezcool/edutrack/core/session"
)

type sessionApi struct {
	conf     *core.Config
	nav      *session.Navigator
	validate *validator.Validate
}

func registerSessionAPI(
	g *echo.Group,
	authed *echo.Group,
	conf *core.Config,
	nav *session.Navigator,
	validate *validator.Validate,
) {
	api := sessionApi{
		conf:     conf,
		nav:      nav,
		validate: validate,
	}

	// un-authed endpoints
	g.POST("/login", api.login)

	// authed endpoints
	authed.POST("/logout", api.logout)
	sg := authed.Group("/session")
	sg.GET("", api.retrieve)
	sg.PUT("/date", api.setDate)
	sg.POST("/reports", api.viewReports)
	sg.POST("/dashboard", api.backToDashboard)
}

type (
	loginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	loginResponse struct {
		Token string        `json:"token"`
		State session.State `json:"state"`
	}

	dateRequest struct {
		Date string `json:"date" validate:"required,isodate"`
	}
)

// Handlers

func (api *sessionApi) login(ctx echo.Context) error {
	var data loginRequest
	if err := bindAndValidate(ctx, &data, api.validate); err != nil {
		return err
	}

	st, err := api.nav.Login(data.Email, data.Password)
	if err != nil {
		return errors.Wrap(err, "logging in")
	}
	token, err := GenerateToken(api.conf.SecretKey, GetOperatorClaims(api.conf, st.Operator))
	if err != nil {
		return errors.Wrap(err, "generating token")
	}
	return ctx.JSON(http.StatusOK, loginResponse{Token: token, State: st})
}

func (api *sessionApi) logout(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.nav.Logout())
}

func (api *sessionApi) retrieve(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.nav.State())
}

func (api *sessionApi) setDate(ctx echo.Context) error {
	var data dateRequest
	if err := bindAndValidate(ctx, &data, api.validate); err != nil {
		return err
	}
	st, err := api.nav.SetDate(data.Date)
	if err != nil {
		return errors.Wrap(err, "setting session date")
	}
	return ctx.JSON(http.StatusOK, st)
}

func (api *sessionApi) viewReports(ctx echo.Context) error {
	st, err := api.nav.ViewReports()
	if err != nil {
		return errors.Wrap(err, "switching to reports")
	}
	return ctx.JSON(http.StatusOK, st)
}

func (api *sessionApi) backToDashboard(ctx echo.Context) error {
	st, err := api.nav.BackToDashboard()
	if err != nil {
		return errors.Wrap(err, "switching to dashboard")
	}
	return ctx.JSON(http.StatusOK, st)
}
