package web

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/goserg/rosterserver/internal/domain"
)

const (
	codeDuplicateName = "duplicateName"
	codeNotFound      = "notFound"
	codeInternal      = "internal"
)

func (s *Server) handleError(ctx *fiber.Ctx, err error) error {
	status, body := convertError(err)
	body.RequestID = requestIDFromCtx(ctx)
	if status >= fiber.StatusInternalServerError {
		s.log.WithError(err).WithField("path", ctx.Path()).Error("request failed")
	}
	return ctx.Status(status).JSON(body)
}

func convertError(err error) (int, errorResponse) {
	var (
		validationErr *domain.ValidationError
		conflictErr   *domain.ConflictError
		fiberErr      *fiber.Error
	)
	switch {
	case errors.As(err, &validationErr):
		return fiber.StatusBadRequest, errorResponse{
			Error:  validationErr.Error(),
			Code:   string(validationErr.Code),
			Fields: validationErr.Fields,
		}
	case errors.As(err, &conflictErr), errors.Is(err, domain.ErrDuplicateName):
		return fiber.StatusConflict, errorResponse{
			Error: domain.ErrDuplicateName.Error(),
			Code:  codeDuplicateName,
		}
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, errorResponse{
			Error: domain.ErrNotFound.Error(),
			Code:  codeNotFound,
		}
	case errors.As(err, &fiberErr):
		resp := errorResponse{Error: fiberErr.Message}
		if fiberErr.Code == fiber.StatusNotFound {
			resp.Code = codeNotFound
		}
		return fiberErr.Code, resp
	default:
		return fiber.StatusInternalServerError, errorResponse{
			Error: "internal server error",
			Code:  codeInternal,
		}
	}
}
