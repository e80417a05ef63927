package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/edutrack/core"
	"github.com/trezcool/edutrack/core/attendance"
	"github.com/trezcool/edutrack/core/session"
)

type attendanceApi struct {
	svc      *attendance.Service
	nav      *session.Navigator
	validate *validator.Validate
}

func registerAttendanceAPI(
	g *echo.Group,
	svc *attendance.Service,
	nav *session.Navigator,
	validate *validator.Validate,
) {
	api := attendanceApi{
		svc:      svc,
		nav:      nav,
		validate: validate,
	}

	g.GET("/dashboard", api.dashboard)

	ag := g.Group("/attendance/:date")
	ag.GET("", api.retrieve)
	ag.PUT("/:studentId", api.mark)
	ag.POST("/submit", api.submit)
}

type (
	statusRequest struct {
		Status string `json:"status" validate:"required"`
	}

	submitResponse struct {
		Date     string                 `json:"date"`
		Statuses attendance.DayStatuses `json:"statuses"`
		Summary  attendance.DaySummary  `json:"summary"`
	}
)

// Handlers

// dashboard shows the date given in the query, or the date selected in the session.
func (api *attendanceApi) dashboard(ctx echo.Context) error {
	date := core.CleanString(ctx.QueryParam("date"))
	if date == "" {
		date = api.nav.State().SelectedDate
	}
	dash, err := api.svc.Dashboard(ctx.Request().Context(), date)
	if err != nil {
		return errors.Wrap(err, "building dashboard")
	}
	return ctx.JSON(http.StatusOK, dash)
}

func (api *attendanceApi) retrieve(ctx echo.Context) error {
	statuses, err := api.svc.StatusesForDate(ctx.Request().Context(), ctx.Param("date"))
	if err != nil {
		return errors.Wrap(err, "getting statuses")
	}
	return ctx.JSON(http.StatusOK, statuses)
}

func (api *attendanceApi) mark(ctx echo.Context) error {
	var data statusRequest
	if err := bindAndValidate(ctx, &data, api.validate); err != nil {
		return err
	}
	status, err := attendance.ParseStatus(data.Status)
	if err != nil {
		return core.NewFieldValidationError("status", err)
	}

	reqCtx := ctx.Request().Context()
	date := ctx.Param("date")
	if err = api.svc.SetStatus(reqCtx, ctx.Param("studentId"), date, status); err != nil {
		return errors.Wrap(err, "setting status")
	}
	summary, err := api.svc.DaySummary(reqCtx, date)
	if err != nil {
		return errors.Wrap(err, "summarizing day")
	}
	return ctx.JSON(http.StatusOK, summary)
}

func (api *attendanceApi) submit(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	statuses, err := api.svc.Submit(reqCtx, ctx.Param("date"))
	if err != nil {
		return errors.Wrap(err, "submitting attendance")
	}
	date, _ := core.CleanDate(ctx.Param("date"))
	return ctx.JSON(http.StatusOK, submitResponse{
		Date:     date,
		Statuses: statuses,
		Summary:  attendance.Summarize(date, statuses),
	})
}
