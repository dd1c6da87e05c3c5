package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"rf-loans/internal/core/domain"
	"rf-loans/internal/pkg/response"
)

// statusFor maps a domain error kind onto an HTTP status
func statusFor(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindNotFound:
		return fiber.StatusNotFound
	case domain.KindAlreadyExists, domain.KindInactive, domain.KindConflict:
		return fiber.StatusConflict
	case domain.KindBusinessRule, domain.KindInvalidInput:
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// writeError is the single place where core errors become HTTP responses
func writeError(c *fiber.Ctx, logger *slog.Logger, err error) error {
	kind := domain.KindOf(err)
	status := statusFor(kind)
	if status == fiber.StatusInternalServerError {
		logger.Error("request failed", "method", c.Method(), "path", c.Path(), "error", err)
		return response.ErrorWithKind(c, status, string(kind), "Internal server error")
	}
	return response.ErrorWithKind(c, status, string(kind), err.Error())
}
