package echoapi

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/edutrack/core/attendance"
	chartsvc "github.com/trezcool/edutrack/services/chart"
)

type reportApi struct {
	svc *attendance.Service
}

func registerReportAPI(g *echo.Group, svc *attendance.Service) {
	api := reportApi{svc: svc}

	rg := g.Group("/reports")
	rg.GET("", api.overview)
	rg.GET("/trend.png", api.trendChart)
	rg.GET("/days/:date", api.day)
}

// Handlers

func (api *reportApi) overview(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.svc.Report(ctx.Request().Context()))
}

// trendChart renders the daily rate as a PNG; `width` and `height` are optional.
func (api *reportApi) trendChart(ctx echo.Context) error {
	width, _ := strconv.Atoi(ctx.QueryParam("width"))
	height, _ := strconv.Atoi(ctx.QueryParam("height"))

	var buf bytes.Buffer
	if err := chartsvc.RenderTrend(&buf, api.svc.Trend(ctx.Request().Context()), width, height); err != nil {
		return errors.Wrap(err, "rendering trend")
	}
	return ctx.Blob(http.StatusOK, "image/png", buf.Bytes())
}

func (api *reportApi) day(ctx echo.Context) error {
	detail, err := api.svc.DayDetail(ctx.Request().Context(), ctx.Param("date"))
	if err != nil {
		return errors.Wrap(err, "getting day detail")
	}
	return ctx.JSON(http.StatusOK, detail)
}
