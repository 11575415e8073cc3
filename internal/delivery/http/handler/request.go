package handler

import (
	"strings"

	"devconnector/internal/delivery/http/middleware"
	"devconnector/internal/pkg/validation"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const msgInvalidPayload = "Invalid request payload"

// bindBody decodes the JSON body into req and runs its validate tags.
func bindBody(c fiber.Ctx, req any) error {
	if err := c.Bind().Body(req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, msgInvalidPayload, nil, err)
	}
	if errs := validation.Struct(req); len(errs) > 0 {
		return middleware.NewValidationError(errs)
	}
	return nil
}

func currentUser(c fiber.Ctx) (uuid.UUID, error) {
	id, ok := middleware.UserID(c)
	if !ok {
		return uuid.Nil, middleware.NewAppError(fiber.StatusUnauthorized, "No token, authorization denied", nil, nil)
	}
	return id, nil
}

// pathID parses the named path parameter. A malformed id is reported as
// notFound, the same as an unknown one.
func pathID(c fiber.Ctx, name, notFound string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params(name)))
	if err != nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusNotFound, notFound, nil, err)
	}
	return id, nil
}

// present returns the trimmed value of s, or nil when s is absent or blank.
func present(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
