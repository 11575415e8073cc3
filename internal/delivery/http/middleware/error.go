package middleware

import (
	"errors"
	"log"

	"devconnector/internal/pkg/response"
	"devconnector/internal/pkg/validation"

	"github.com/gofiber/fiber/v3"
)

// AppError is what handlers return to produce an error response. Errors,
// when set, is written as a field error list; otherwise Message is.
type AppError struct {
	StatusCode int
	Message    string
	Errors     []validation.FieldError
	Cause      error
}

func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func NewAppError(statusCode int, message string, errs []validation.FieldError, cause error) *AppError {
	return &AppError{StatusCode: statusCode, Message: message, Errors: errs, Cause: cause}
}

func NewValidationError(errs []validation.FieldError) *AppError {
	return &AppError{StatusCode: fiber.StatusBadRequest, Errors: errs}
}

type ErrorMiddleware struct {
	logger *log.Logger
}

func NewErrorMiddleware(logger *log.Logger) *ErrorMiddleware {
	if logger == nil {
		logger = log.Default()
	}
	return &ErrorMiddleware{logger: logger}
}

func (m *ErrorMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				m.logger.Printf("[HTTP] panic recovered | method=%s path=%s panic=%v", c.Method(), c.Path(), r)
				err = response.InternalError(c)
			}
		}()

		err = c.Next()
		if err == nil {
			return nil
		}

		return m.write(c, err)
	}
}

func (m *ErrorMiddleware) write(c fiber.Ctx, err error) error {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.StatusCode > 0 {
		status := appErr.StatusCode
		switch {
		case len(appErr.Errors) > 0 && status < 500:
			return response.Errors(c, status, appErr.Errors)
		case status < 500 || status == fiber.StatusBadGateway:
			if appErr.Cause != nil && status == fiber.StatusBadGateway {
				m.logger.Printf("[HTTP] upstream error | method=%s path=%s err=%v", c.Method(), c.Path(), appErr.Cause)
			}
			return response.Message(c, status, appErr.Message)
		}
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) && fiberErr.Code > 0 && fiberErr.Code < 500 {
		return response.Message(c, fiberErr.Code, fiberErr.Message)
	}

	m.logger.Printf("[HTTP] unhandled error | method=%s path=%s err=%v", c.Method(), c.Path(), err)
	return response.InternalError(c)
}
