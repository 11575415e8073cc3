package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http/httptest"
	"testing"
	"time"

	"devconnector/internal/pkg/jwt"
	"devconnector/internal/pkg/validation"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

func newTestApp(handler fiber.Handler, extra ...fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Use(NewErrorMiddleware(log.New(io.Discard, "", 0)).Middleware())
	for _, h := range extra {
		app.Use(h)
	}
	app.Get("/", handler)
	return app
}

func doGet(t *testing.T, app *fiber.App, header map[string]string) (int, string) {
	t.Helper()
	req := httptest.NewRequest("GET", "/", nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(b)
}

func TestErrorMiddleware_FieldErrors(t *testing.T) {
	app := newTestApp(func(c fiber.Ctx) error {
		return NewValidationError([]validation.FieldError{validation.Required("status", "Status is required")})
	})

	status, body := doGet(t, app, nil)
	if status != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
	var out struct {
		Errors []validation.FieldError `json:"errors"`
	}
	if err := json.Unmarshal([]byte(body), &out); err != nil {
		t.Fatalf("decode: %v body=%s", err, body)
	}
	if len(out.Errors) != 1 || out.Errors[0].Param != "status" || out.Errors[0].Location != "body" {
		t.Fatalf("unexpected errors %+v", out.Errors)
	}
}

func TestErrorMiddleware_MessageAndBadGateway(t *testing.T) {
	for _, status := range []int{fiber.StatusNotFound, fiber.StatusBadGateway} {
		app := newTestApp(func(c fiber.Ctx) error {
			return NewAppError(status, "nope", nil, errors.New("cause"))
		})
		got, body := doGet(t, app, nil)
		if got != status || body != `{"msg":"nope"}` {
			t.Fatalf("status %d: unexpected response %d %s", status, got, body)
		}
	}
}

func TestErrorMiddleware_InternalIsOpaque(t *testing.T) {
	app := newTestApp(func(c fiber.Ctx) error {
		return errors.New("pq: connection refused")
	})
	status, body := doGet(t, app, nil)
	if status != fiber.StatusInternalServerError || body != "Server Error" {
		t.Fatalf("unexpected response %d %q", status, body)
	}
}

func TestErrorMiddleware_RecoversPanic(t *testing.T) {
	app := newTestApp(func(c fiber.Ctx) error {
		panic("boom")
	})
	status, body := doGet(t, app, nil)
	if status != fiber.StatusInternalServerError || body != "Server Error" {
		t.Fatalf("unexpected response %d %q", status, body)
	}
}

func TestAuthMiddleware(t *testing.T) {
	jwtSvc := jwt.NewHMACService("secret", time.Hour)
	auth := NewAuthMiddleware(jwtSvc).Middleware()
	app := newTestApp(func(c fiber.Ctx) error {
		id, ok := UserID(c)
		if !ok {
			return errors.New("no user in context")
		}
		return c.SendString(id.String())
	}, auth)

	status, body := doGet(t, app, nil)
	if status != fiber.StatusUnauthorized || body != `{"msg":"No token, authorization denied"}` {
		t.Fatalf("missing token: unexpected response %d %s", status, body)
	}

	status, body = doGet(t, app, map[string]string{HeaderAuthToken: "garbage"})
	if status != fiber.StatusUnauthorized || body != `{"msg":"Token is not valid"}` {
		t.Fatalf("bad token: unexpected response %d %s", status, body)
	}

	uid := uuid.New()
	token, err := jwtSvc.Issue(uid)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	status, body = doGet(t, app, map[string]string{HeaderAuthToken: token})
	if status != fiber.StatusOK || body != uid.String() {
		t.Fatalf("valid token: unexpected response %d %s", status, body)
	}
}
