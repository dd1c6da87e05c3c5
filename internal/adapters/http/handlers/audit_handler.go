package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"rf-loans/internal/core/domain"
	"rf-loans/internal/core/ports"
	"rf-loans/internal/core/services"
	"rf-loans/internal/pkg/pagination"
	"rf-loans/internal/pkg/response"
)

// AuditHandler handles the admin audit log endpoint
type AuditHandler struct {
	queries *services.QueryService
	logger  *slog.Logger
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(queries *services.QueryService, logger *slog.Logger) *AuditHandler {
	return &AuditHandler{queries: queries, logger: logger}
}

// ListAudit lists catalog change events
// @Summary List audit log
// @Description List catalog change events newest first (Admin only)
// @Tags Audit
// @Produce json
// @Security BearerAuth
// @Param aggregate query string false "Employee, RadioUnit or OperatorAccount"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page (max 200)"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /audit-log [get]
func (h *AuditHandler) ListAudit(c *fiber.Ctx) error {
	var query ports.AuditQuery
	if raw := c.Query("aggregate"); raw != "" {
		aggregate, err := domain.ParseAggregate(raw)
		if err != nil {
			return writeError(c, h.logger, err)
		}
		query.Aggregate = aggregate
	}

	params := pagination.GetParamsWithMax(c, pagination.MaxAuditLimit)
	query.Offset = params.Offset
	query.Limit = params.Limit

	events, total, err := h.queries.ListAudit(c.UserContext(), query)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return response.Paginated(c, "Audit log retrieved successfully", mapSlice(events, toAuditEventResponse), params, total)
}
