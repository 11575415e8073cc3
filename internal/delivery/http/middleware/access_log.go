package middleware

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const HeaderRequestID = "X-Request-ID"

type AccessLogMiddleware struct {
	logger *log.Logger
}

func NewAccessLogMiddleware(logger *log.Logger) *AccessLogMiddleware {
	if logger == nil {
		logger = log.Default()
	}
	return &AccessLogMiddleware{logger: logger}
}

// Middleware logs one line per request. It must run outside the error
// middleware so the logged status is the one written to the client.
func (m *AccessLogMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		rid := c.Get(HeaderRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(HeaderRequestID, rid)

		err := c.Next()

		user := "-"
		if id, ok := UserID(c); ok {
			user = id.String()
		}

		m.logger.Printf(
			"[HTTP] access | rid=%s ip=%s method=%s path=%s status=%d latency=%s user=%s resp_bytes=%d ua=%q",
			rid, c.IP(), c.Method(), c.OriginalURL(), c.Response().StatusCode(),
			time.Since(start), user, len(c.Response().Body()), c.Get(fiber.HeaderUserAgent),
		)

		return err
	}
}
