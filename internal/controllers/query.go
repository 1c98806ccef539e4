package controllers

import (
	"strconv"
	"strings"

	apperrors "gearguard/pkg/errors"

	"github.com/labstack/echo/v4"
)

func optionalStringQuery(ctx echo.Context, name string) *string {
	v := strings.TrimSpace(ctx.QueryParam(name))
	if v == "" {
		return nil
	}
	return &v
}

func optionalBoolQuery(ctx echo.Context, name string) (*bool, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, apperrors.NewInvalidInputError("Invalid %s", name)
	}
	return &v, nil
}
