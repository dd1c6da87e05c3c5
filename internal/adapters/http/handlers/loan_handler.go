package handlers

import (
	"context"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"rf-loans/internal/adapters/http/middleware"
	"rf-loans/internal/core/domain"
	"rf-loans/internal/core/ports"
	"rf-loans/internal/core/services"
	"rf-loans/internal/core/usecases"
	"rf-loans/internal/pkg/pagination"
	"rf-loans/internal/pkg/response"
	"rf-loans/internal/pkg/retry"
)

// AssignLoanRequest DTO. A missing at means now.
type AssignLoanRequest struct {
	Employee        string     `json:"employee"`
	RadioUnit       string     `json:"radio_unit"`
	OperatorAccount string     `json:"operator_account"`
	At              *time.Time `json:"at"`
}

// ReturnLoanRequest DTO. Exactly one key must be given.
type ReturnLoanRequest struct {
	Employee        string     `json:"employee"`
	OperatorAccount string     `json:"operator_account"`
	RadioUnit       string     `json:"radio_unit"`
	At              *time.Time `json:"at"`
}

// LoanHandler handles loan endpoints
type LoanHandler struct {
	loans   *usecases.Loans
	queries *services.QueryService
	logger  *slog.Logger
	now     func() time.Time
	retries []retry.Option
}

// NewLoanHandler creates a new loan handler
func NewLoanHandler(loans *usecases.Loans, queries *services.QueryService, logger *slog.Logger, retries ...retry.Option) *LoanHandler {
	return &LoanHandler{
		loans:   loans,
		queries: queries,
		logger:  logger,
		now:     time.Now,
		retries: retries,
	}
}

func (h *LoanHandler) timestamp(at *time.Time) time.Time {
	if at == nil || at.IsZero() {
		return h.now()
	}
	return at.Local()
}

// ListLoans lists loans newest first
// @Summary List loans
// @Description List loans filtered by employee and radio unit, newest first
// @Tags Loans
// @Produce json
// @Security BearerAuth
// @Param employee query string false "Employee document number"
// @Param radio_unit query string false "Radio unit code"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /loans [get]
func (h *LoanHandler) ListLoans(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	loans, total, err := h.queries.ListLoans(c.UserContext(), ports.LoanQuery{
		EmployeeKey:   domain.NormalizeDocumentNumber(c.Query("employee")),
		RadioUnitCode: domain.NormalizeRadioCode(c.Query("radio_unit")),
		Offset:        params.Offset,
		Limit:         params.Limit,
	})
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return response.Paginated(c, "Loans retrieved successfully", mapSlice(loans, toLoanResponse), params, total)
}

// AssignLoan assigns a radio unit
// @Summary Assign radio unit
// @Description Loan a radio unit to an employee through an operator account
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AssignLoanRequest true "Assignment"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /loans [post]
func (h *LoanHandler) AssignLoan(c *fiber.Ctx) error {
	var req AssignLoanRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	cmd := usecases.AssignRadio{
		EmployeeKey:      domain.NormalizeDocumentNumber(req.Employee),
		RadioUnitCode:    domain.NormalizeRadioCode(req.RadioUnit),
		OperatorUsername: domain.NormalizeUsername(req.OperatorAccount),
		RegisteredBy:     middleware.UserID(c),
		At:               h.timestamp(req.At),
	}
	if cmd.EmployeeKey == "" || cmd.RadioUnitCode == "" || cmd.OperatorUsername == "" {
		return response.BadRequest(c, "employee, radio_unit and operator_account are required")
	}

	var loan domain.Loan
	err := retry.Do(c.UserContext(), func(ctx context.Context) (err error) {
		loan, err = h.loans.Assign(ctx, cmd)
		return err
	}, h.retries...)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return response.Created(c, "Radio unit assigned successfully", toLoanResponse(loan))
}

// ReturnLoan returns an open loan
// @Summary Return radio unit
// @Description Return the open loan found by exactly one of employee, operator_account or radio_unit
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ReturnLoanRequest true "Return"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /loans/return [post]
func (h *LoanHandler) ReturnLoan(c *fiber.Ctx) error {
	var req ReturnLoanRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	cmd := usecases.ReturnLoan{
		EmployeeKey:      domain.NormalizeDocumentNumber(req.Employee),
		OperatorUsername: domain.NormalizeUsername(req.OperatorAccount),
		RadioUnitCode:    domain.NormalizeRadioCode(req.RadioUnit),
		At:               h.timestamp(req.At),
	}

	var loan domain.Loan
	err := retry.Do(c.UserContext(), func(ctx context.Context) (err error) {
		loan, err = h.loans.Return(ctx, cmd)
		return err
	}, h.retries...)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return response.Success(c, "Radio unit returned successfully", toLoanResponse(loan))
}
