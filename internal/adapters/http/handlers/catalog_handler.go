package handlers

import (
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"

	"rf-loans/internal/adapters/http/middleware"
	"rf-loans/internal/core/domain"
	"rf-loans/internal/core/services"
	"rf-loans/internal/core/usecases"
	"rf-loans/internal/pkg/response"
)

// CreateEmployeeRequest DTO
type CreateEmployeeRequest struct {
	DocumentNumber string `json:"document_number"`
	FullName       string `json:"full_name"`
	Active         *bool  `json:"active"`
	Reason         string `json:"reason"`
}

// UpdateEmployeeRequest DTO. Omitted fields are left untouched.
type UpdateEmployeeRequest struct {
	FullName *string `json:"full_name"`
	Active   *bool   `json:"active"`
	Reason   string  `json:"reason"`
}

// CreateRadioUnitRequest DTO
type CreateRadioUnitRequest struct {
	Code        string  `json:"code"`
	Description *string `json:"description"`
	Active      *bool   `json:"active"`
	Reason      string  `json:"reason"`
}

// UpdateRadioUnitRequest DTO. An empty description clears it.
type UpdateRadioUnitRequest struct {
	Description *string `json:"description"`
	Active      *bool   `json:"active"`
	Reason      string  `json:"reason"`
}

// CreateOperatorAccountRequest DTO
type CreateOperatorAccountRequest struct {
	Username    string  `json:"username"`
	EmployeeKey *string `json:"employee_key"`
	Active      *bool   `json:"active"`
	Reason      string  `json:"reason"`
}

// UpdateOperatorAccountRequest DTO. An empty employee_key unlinks the employee.
type UpdateOperatorAccountRequest struct {
	EmployeeKey *string `json:"employee_key"`
	Active      *bool   `json:"active"`
	Reason      string  `json:"reason"`
}

// CatalogHandler handles employee, radio unit and operator account endpoints
type CatalogHandler struct {
	catalog *usecases.Catalog
	queries *services.QueryService
	logger  *slog.Logger
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalog *usecases.Catalog, queries *services.QueryService, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, queries: queries, logger: logger}
}

func activeOrDefault(v *bool) bool {
	if v == nil {
		return true
	}
	return *v
}

// optionalKey normalizes a nullable reference, keeping "" as the unlink marker
func optionalKey(v *string, normalize func(string) string) *string {
	if v == nil {
		return nil
	}
	k := normalize(*v)
	return &k
}

// ============================================================
// Employees
// ============================================================

// ListEmployees lists employees
// @Summary List employees
// @Description List employees filtered by document number or name
// @Tags Employees
// @Produce json
// @Security BearerAuth
// @Param q query string false "Search text"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /employees [get]
func (h *CatalogHandler) ListEmployees(c *fiber.Ctx) error {
	employees, err := h.queries.ListEmployees(c.UserContext(), strings.TrimSpace(c.Query("q")))
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return response.Success(c, "Employees retrieved successfully", fiber.Map{
		"employees": mapSlice(employees, toEmployeeResponse),
	})
}

// GetEmployee gets an employee by document number
// @Summary Get employee
// @Tags Employees
// @Produce json
// @Security BearerAuth
// @Param document path string true "Document number"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /employees/{document} [get]
func (h *CatalogHandler) GetEmployee(c *fiber.Ctx) error {
	key := domain.NormalizeDocumentNumber(c.Params("document"))
	if key == "" {
		return response.BadRequest(c, "Invalid document number")
	}
	employee, err := h.queries.GetEmployee(c.UserContext(), key)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return response.Success(c, "Employee retrieved successfully", toEmployeeResponse(employee))
}

// CreateEmployee creates an employee
// @Summary Create employee
// @Description Create an employee (Admin only)
// @Tags Employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateEmployeeRequest true "Employee"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /employees [post]
func (h *CatalogHandler) CreateEmployee(c *fiber.Ctx) error {
	var req CreateEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	key := domain.NormalizeDocumentNumber(req.DocumentNumber)
	name := strings.TrimSpace(req.FullName)
	if key == "" || name == "" {
		return response.BadRequest(c, "document_number and full_name are required")
	}

	employee, err := h.catalog.CreateEmployee(c.UserContext(), usecases.CreateEmployee{
		DocumentNumber: key,
		FullName:       name,
		Active:         activeOrDefault(req.Active),
		ActorID:        middleware.UserID(c),
		Reason:         req.Reason,
	})
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return response.Created(c, "Employee created successfully", toEmployeeResponse(employee))
}

// UpdateEmployee partially updates an employee
// @Summary Update employee
// @Description Partially update an employee (Admin only)
// @Tags Employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param document path string true "Document number"
// @Param request body UpdateEmployeeRequest true "Changes"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /employees/{document} [patch]
func (h *CatalogHandler) UpdateEmployee(c *fiber.Ctx) error {
	key := domain.NormalizeDocumentNumber(c.Params("document"))
	if key == "" {
		return response.BadRequest(c, "Invalid document number")
	}
	var req UpdateEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.FullName != nil {
		name := strings.TrimSpace(*req.FullName)
		if name == "" {
			return response.BadRequest(c, "full_name cannot be empty")
		}
		req.FullName = &name
	}

	employee, err := h.catalog.UpdateEmployee(c.UserContext(), usecases.UpdateEmployee{
		DocumentNumber: key,
		Changes:        domain.EmployeeChanges{FullName: req.FullName, Active: req.Active},
		ActorID:        middleware.UserID(c),
		Reason:         req.Reason,
	})
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return response.Success(c, "Employee updated successfully", toEmployeeResponse(employee))
}

// DeleteEmployee deletes an employee
// @Summary Delete employee
// @Description Delete an employee (Admin only)
// @Tags Employees
// @Produce json
// @Security BearerAuth
// @Param document path string true "Document number"
// @Param reason query string false "Reason"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /employees/{document} [delete]
func (h *CatalogHandler) DeleteEmployee(c *fiber.Ctx) error {
	key := domain.NormalizeDocumentNumber(c.Params("document"))
	if key == "" {
		return response.BadRequest(c, "Invalid document number")
	}
	err := h.catalog.DeleteEmployee(c.UserContext(), usecases.DeleteEmployee{
		DocumentNumber: key,
		ActorID:        middleware.UserID(c),
		Reason:         c.Query("reason"),
	})
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return response.Success(c, "Employee deleted successfully", nil)
}

// ============================================================
// Radio units
// ============================================================

// ListRadioUnits lists radio units
// @Summary List radio units
// @Tags RadioUnits
// @Produce json
// @Security BearerAuth
// @Param q query string false "Search text"
// @Success 200 {object} response.Response
// @Router /radio-units [get]
func (h *CatalogHandler) ListRadioUnits(c *fiber.Ctx) error {
	units, err := h.queries.ListRadioUnits(c.UserContext(), strings.TrimSpace(c.Query("q")))
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return response.Success(c, "Radio units retrieved successfully", fiber.Map{
		"radio_units": mapSlice(units, toRadioUnitResponse),
	})
}

// GetRadioUnit gets a radio unit by code
// @Summary Get radio unit
// @Tags RadioUnits
// @Produce json
// @Security BearerAuth
// @Param code path string true "Radio unit code"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /radio-units/{code} [get]
func (h *CatalogHandler) GetRadioUnit(c *fiber.Ctx) error {
	code := domain.NormalizeRadioCode(c.Params("code"))
	if code == "" {
		return response.BadRequest(c, "Invalid radio unit code")
	}
	unit, err := h.queries.GetRadioUnit(c.UserContext(), code)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return response.Success(c, "Radio unit retrieved successfully", toRadioUnitResponse(unit))
}

// CreateRadioUnit creates a radio unit
// @Summary Create radio unit
// @Description Create a radio unit (Admin only)
// @Tags RadioUnits
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateRadioUnitRequest true "Radio unit"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /radio-units [post]
func (h *CatalogHandler) CreateRadioUnit(c *fiber.Ctx) error {
	var req CreateRadioUnitRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	code := domain.NormalizeRadioCode(req.Code)
	if code == "" {
		return response.BadRequest(c, "code is required")
	}
	if req.Description != nil {
		desc := strings.TrimSpace(*req.Description)
		req.Description = &desc
		if desc == "" {
			req.Description = nil
		}
	}

	unit, err := h.catalog.CreateRadioUnit(c.UserContext(), usecases.CreateRadioUnit{
		Code:        code,
		Description: req.Description,
		Active:      activeOrDefault(req.Active),
		ActorID:     middleware.UserID(c),
		Reason:      req.Reason,
	})
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return response.Created(c, "Radio unit created successfully", toRadioUnitResponse(unit))
}

// UpdateRadioUnit partially updates a radio unit
// @Summary Update radio unit
// @Description Partially update a radio unit (Admin only)
// @Tags RadioUnits
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param code path string true "Radio unit code"
// @Param request body UpdateRadioUnitRequest true "Changes"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /radio-units/{code} [patch]
func (h *CatalogHandler) UpdateRadioUnit(c *fiber.Ctx) error {
	code := domain.NormalizeRadioCode(c.Params("code"))
	if code == "" {
		return response.BadRequest(c, "Invalid radio unit code")
	}
	var req UpdateRadioUnitRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Description != nil {
		desc := strings.TrimSpace(*req.Description)
		req.Description = &desc
	}

	unit, err := h.catalog.UpdateRadioUnit(c.UserContext(), usecases.UpdateRadioUnit{
		Code:    code,
		Changes: domain.RadioUnitChanges{Description: req.Description, Active: req.Active},
		ActorID: middleware.UserID(c),
		Reason:  req.Reason,
	})
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return response.Success(c, "Radio unit updated successfully", toRadioUnitResponse(unit))
}

// DeleteRadioUnit deletes a radio unit
// @Summary Delete radio unit
// @Description Delete a radio unit (Admin only)
// @Tags RadioUnits
// @Produce json
// @Security BearerAuth
// @Param code path string true "Radio unit code"
// @Param reason query string false "Reason"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /radio-units/{code} [delete]
func (h *CatalogHandler) DeleteRadioUnit(c *fiber.Ctx) error {
	code := domain.NormalizeRadioCode(c.Params("code"))
	if code == "" {
		return response.BadRequest(c, "Invalid radio unit code")
	}
	err := h.catalog.DeleteRadioUnit(c.UserContext(), usecases.DeleteRadioUnit{
		Code:    code,
		ActorID: middleware.UserID(c),
		Reason:  c.Query("reason"),
	})
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return response.Success(c, "Radio unit deleted successfully", nil)
}

// ============================================================
// Operator accounts
// ============================================================

// ListOperatorAccounts lists operator accounts
// @Summary List operator accounts
// @Tags OperatorAccounts
// @Produce json
// @Security BearerAuth
// @Param q query string false "Search text"
// @Success 200 {object} response.Response
// @Router /operator-accounts [get]
func (h *CatalogHandler) ListOperatorAccounts(c *fiber.Ctx) error {
	accounts, err := h.queries.ListOperatorAccounts(c.UserContext(), strings.TrimSpace(c.Query("q")))
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return response.Success(c, "Operator accounts retrieved successfully", fiber.Map{
		"operator_accounts": mapSlice(accounts, toOperatorAccountResponse),
	})
}

// GetOperatorAccount gets an operator account by username
// @Summary Get operator account
// @Tags OperatorAccounts
// @Produce json
// @Security BearerAuth
// @Param username path string true "Username"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /operator-accounts/{username} [get]
func (h *CatalogHandler) GetOperatorAccount(c *fiber.Ctx) error {
	username := domain.NormalizeUsername(c.Params("username"))
	if username == "" {
		return response.BadRequest(c, "Invalid username")
	}
	account, err := h.queries.GetOperatorAccount(c.UserContext(), username)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return response.Success(c, "Operator account retrieved successfully", toOperatorAccountResponse(account))
}

// CreateOperatorAccount creates an operator account
// @Summary Create operator account
// @Description Create an operator account (Admin only)
// @Tags OperatorAccounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateOperatorAccountRequest true "Operator account"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /operator-accounts [post]
func (h *CatalogHandler) CreateOperatorAccount(c *fiber.Ctx) error {
	var req CreateOperatorAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	username := domain.NormalizeUsername(req.Username)
	if username == "" {
		return response.BadRequest(c, "username is required")
	}
	employeeKey := optionalKey(req.EmployeeKey, domain.NormalizeDocumentNumber)
	if employeeKey != nil && *employeeKey == "" {
		employeeKey = nil
	}

	account, err := h.catalog.CreateOperatorAccount(c.UserContext(), usecases.CreateOperatorAccount{
		Username:    username,
		EmployeeKey: employeeKey,
		Active:      activeOrDefault(req.Active),
		ActorID:     middleware.UserID(c),
		Reason:      req.Reason,
	})
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return response.Created(c, "Operator account created successfully", toOperatorAccountResponse(account))
}

// UpdateOperatorAccount partially updates an operator account
// @Summary Update operator account
// @Description Partially update an operator account (Admin only)
// @Tags OperatorAccounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param username path string true "Username"
// @Param request body UpdateOperatorAccountRequest true "Changes"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /operator-accounts/{username} [patch]
func (h *CatalogHandler) UpdateOperatorAccount(c *fiber.Ctx) error {
	username := domain.NormalizeUsername(c.Params("username"))
	if username == "" {
		return response.BadRequest(c, "Invalid username")
	}
	var req UpdateOperatorAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	account, err := h.catalog.UpdateOperatorAccount(c.UserContext(), usecases.UpdateOperatorAccount{
		Username: username,
		Changes: domain.OperatorAccountChanges{
			EmployeeKey: optionalKey(req.EmployeeKey, domain.NormalizeDocumentNumber),
			Active:      req.Active,
		},
		ActorID: middleware.UserID(c),
		Reason:  req.Reason,
	})
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return response.Success(c, "Operator account updated successfully", toOperatorAccountResponse(account))
}

// DeleteOperatorAccount deletes an operator account
// @Summary Delete operator account
// @Description Delete an operator account (Admin only)
// @Tags OperatorAccounts
// @Produce json
// @Security BearerAuth
// @Param username path string true "Username"
// @Param reason query string false "Reason"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /operator-accounts/{username} [delete]
func (h *CatalogHandler) DeleteOperatorAccount(c *fiber.Ctx) error {
	username := domain.NormalizeUsername(c.Params("username"))
	if username == "" {
		return response.BadRequest(c, "Invalid username")
	}
	err := h.catalog.DeleteOperatorAccount(c.UserContext(), usecases.DeleteOperatorAccount{
		Username: username,
		ActorID:  middleware.UserID(c),
		Reason:   c.Query("reason"),
	})
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return response.Success(c, "Operator account deleted successfully", nil)
}
