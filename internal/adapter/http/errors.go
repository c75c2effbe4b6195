package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"charity-fund-backend/internal/domain/donation"
	"charity-fund-backend/internal/domain/lock"
	"charity-fund-backend/internal/domain/project"
	donationuc "charity-fund-backend/internal/usecase/donation"
	projectuc "charity-fund-backend/internal/usecase/project"
)

const headerUserID = "X-User-Id"

func invalidBody(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
}

func validationFailed(c echo.Context, details []FieldError) error {
	return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Details: details})
}

// respondError maps usecase and domain errors to a status code.
func respondError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, projectuc.ErrInvalidInput), errors.Is(err, donationuc.ErrInvalidInput):
		return validationFailed(c, []FieldError{{Field: "_", Message: err.Error()}})
	case errors.Is(err, project.ErrNotFound), errors.Is(err, donation.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, project.ErrDuplicateName),
		errors.Is(err, project.ErrHasInvestments),
		errors.Is(err, project.ErrClosed),
		errors.Is(err, project.ErrAmountBelowInvested):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, lock.ErrNotAcquired), errors.Is(err, context.DeadlineExceeded):
		return c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "allocation is busy, retry later"})
	}
	zerolog.Ctx(c.Request().Context()).Error().Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("request failed")
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}
