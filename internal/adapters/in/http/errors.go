package http

import (
	"errors"
	"log/slog"
	"net/http"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/pkg/errs"

	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// statusOf maps an application error onto a response status. A cascade
// failure is checked first because it wraps the cause of the follow-up write.
func statusOf(err error) (int, bool) {
	var validationErrs validatorv10.ValidationErrors
	var httpErr *echo.HTTPError

	switch {
	case errors.Is(err, errs.ErrCascade):
		return http.StatusInternalServerError, true
	case errors.As(err, &httpErr):
		return httpErr.Code, false
	case errors.As(err, &validationErrs):
		return http.StatusBadRequest, false
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, false
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, kernel.ErrUUIDIsNotConstructed):
		return http.StatusBadRequest, false
	case errors.Is(err, errs.ErrInvalidState),
		errors.Is(err, errs.ErrReferentialConflict):
		return http.StatusConflict, false
	case errors.Is(err, errs.ErrStoreUnavailable):
		return http.StatusServiceUnavailable, false
	default:
		return http.StatusInternalServerError, false
	}
}

// NewErrorHandler renders every handler error as the Error JSON body.
// Internal failures are logged and their details are not echoed back.
func NewErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	logger = logger.With("component", "HTTP")

	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, partial := statusOf(err)
		message := err.Error()

		var httpErr *echo.HTTPError
		var validationErrs validatorv10.ValidationErrors
		switch {
		case errors.As(err, &httpErr):
			if m, ok := httpErr.Message.(string); ok {
				message = m
			} else {
				message = http.StatusText(code)
			}
		case errors.As(err, &validationErrs):
			message = validationMessage(validationErrs)
		}

		if code >= http.StatusInternalServerError {
			logger.ErrorContext(c.Request().Context(), "request failed",
				"method", c.Request().Method,
				"path", c.Path(),
				"status", code,
				"partial", partial,
				"error", err,
			)
			if !partial {
				message = http.StatusText(code)
			}
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(code)
		} else {
			writeErr = c.JSON(code, Error{Code: code, Message: message, Partial: partial})
		}
		if writeErr != nil {
			logger.ErrorContext(c.Request().Context(), "failed to write error response", "error", writeErr)
		}
	}
}
