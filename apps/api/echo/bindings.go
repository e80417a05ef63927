package echoapi

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/edutrack/core"
)

var orderingParam = "ordering"

type Ordering struct {
	Orderings []core.Ordering
}

func (ord *Ordering) Bind(ctx echo.Context) {
	ord.Orderings = core.ParseOrderings(ctx.QueryParam(orderingParam))
}

// bindAndValidate decodes the request body into `data` then runs the struct validations on it.
func bindAndValidate(ctx echo.Context, data interface{}, validate *validator.Validate) error {
	if err := ctx.Bind(data); err != nil {
		return errors.Wrap(err, "binding request data")
	}
	if err := validate.Struct(data); err != nil {
		return errors.Wrap(err, "validating request data")
	}
	return nil
}
