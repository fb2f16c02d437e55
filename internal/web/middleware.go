package web

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const requestIDKey = "requestID"

func requestID() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		id := ctx.Get(fiber.HeaderXRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		ctx.Set(fiber.HeaderXRequestID, id)
		ctx.Locals(requestIDKey, id)
		return ctx.Next()
	}
}

func requestIDFromCtx(ctx *fiber.Ctx) string {
	id, _ := ctx.Locals(requestIDKey).(string)
	return id
}

// logRequests writes one line per request. Handler errors are rendered here
// so the logged status is the one the client gets.
func (s *Server) logRequests() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		start := time.Now()
		if err := ctx.Next(); err != nil {
			if err := s.handleError(ctx, err); err != nil {
				return err
			}
		}
		status := ctx.Response().StatusCode()
		entry := s.log.WithFields(logrus.Fields{
			"method":     ctx.Method(),
			"path":       ctx.Path(),
			"status":     status,
			"duration":   time.Since(start),
			"request_id": requestIDFromCtx(ctx),
		})
		if status >= fiber.StatusInternalServerError {
			entry.Warn("request")
			return nil
		}
		entry.Debug("request")
		return nil
	}
}
