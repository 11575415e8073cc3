package response

import (
	"devconnector/internal/pkg/validation"

	"github.com/gofiber/fiber/v3"
)

type MessageResponse struct {
	Msg string `json:"msg"`
}

type ErrorsResponse struct {
	Errors []validation.FieldError `json:"errors"`
}

const (
	MessageOK                  = "ok"
	MessageBadRequest          = "Bad request"
	MessageUnauthorized        = "Unauthorized"
	MessageForbidden           = "Forbidden"
	MessageNotFound            = "Not found"
	MessageConflict            = "Conflict"
	MessageBadGateway          = "Bad gateway"
	MessageInternalServerError = "Server Error"
	MessageError               = "Error"
)

func Success(c fiber.Ctx, status int, data any) error {
	return c.Status(normalizeStatus(status)).JSON(data)
}

func Message(c fiber.Ctx, status int, message string) error {
	st := normalizeStatus(status)
	return c.Status(st).JSON(MessageResponse{Msg: normalizeMessage(message, st)})
}

func Errors(c fiber.Ctx, status int, errs []validation.FieldError) error {
	if errs == nil {
		errs = []validation.FieldError{}
	}
	return c.Status(normalizeStatus(status)).JSON(ErrorsResponse{Errors: errs})
}

// InternalError writes the opaque plain-text 500 body.
func InternalError(c fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).SendString(MessageInternalServerError)
}

func normalizeStatus(status int) int {
	if status < 100 || status > 599 {
		return fiber.StatusInternalServerError
	}
	return status
}

func normalizeMessage(message string, status int) string {
	if message != "" {
		return message
	}
	return DefaultMessageForStatus(status)
}

func DefaultMessageForStatus(status int) string {
	switch status {
	case fiber.StatusOK:
		return MessageOK
	case fiber.StatusBadRequest:
		return MessageBadRequest
	case fiber.StatusUnauthorized:
		return MessageUnauthorized
	case fiber.StatusForbidden:
		return MessageForbidden
	case fiber.StatusNotFound:
		return MessageNotFound
	case fiber.StatusConflict:
		return MessageConflict
	case fiber.StatusBadGateway:
		return MessageBadGateway
	default:
		if status >= 500 {
			return MessageInternalServerError
		}
		return MessageError
	}
}
