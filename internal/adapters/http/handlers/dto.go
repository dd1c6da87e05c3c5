package handlers

import (
	"time"

	"rf-loans/internal/core/domain"
)

// EmployeeResponse DTO
type EmployeeResponse struct {
	DocumentNumber string `json:"document_number"`
	FullName       string `json:"full_name"`
	Active         bool   `json:"active"`
}

func toEmployeeResponse(e domain.Employee) EmployeeResponse {
	return EmployeeResponse{DocumentNumber: e.DocumentNumber, FullName: e.FullName, Active: e.Active}
}

// RadioUnitResponse DTO
type RadioUnitResponse struct {
	Code        string  `json:"code"`
	Description *string `json:"description"`
	Active      bool    `json:"active"`
}

func toRadioUnitResponse(r domain.RadioUnit) RadioUnitResponse {
	return RadioUnitResponse{Code: r.Code, Description: r.Description, Active: r.Active}
}

// OperatorAccountResponse DTO
type OperatorAccountResponse struct {
	Username    string  `json:"username"`
	EmployeeKey *string `json:"employee_key"`
	Active      bool    `json:"active"`
}

func toOperatorAccountResponse(a domain.OperatorAccount) OperatorAccountResponse {
	return OperatorAccountResponse{Username: a.Username, EmployeeKey: a.EmployeeKey, Active: a.Active}
}

// LoanResponse DTO
type LoanResponse struct {
	ID               uint       `json:"id"`
	EmployeeKey      string     `json:"employee"`
	EmployeeName     string     `json:"employee_name"`
	OperatorUsername string     `json:"operator_account"`
	RadioUnitCode    string     `json:"radio_unit"`
	AssignedAt       time.Time  `json:"assigned_at"`
	Shift            string     `json:"shift"`
	State            string     `json:"state"`
	ReturnedAt       *time.Time `json:"returned_at"`
	RegisteredBy     uint       `json:"registered_by"`
}

func toLoanResponse(l domain.Loan) LoanResponse {
	return LoanResponse{
		ID:               l.ID,
		EmployeeKey:      l.EmployeeKey,
		EmployeeName:     l.EmployeeName,
		OperatorUsername: l.OperatorUsername,
		RadioUnitCode:    l.RadioUnitCode,
		AssignedAt:       l.AssignedAt,
		Shift:            l.Shift.String(),
		State:            l.State.String(),
		ReturnedAt:       l.ReturnedAt,
		RegisteredBy:     l.RegisteredBy,
	}
}

// AuditEventResponse DTO
type AuditEventResponse struct {
	Aggregate   string          `json:"aggregate"`
	Action      string          `json:"action"`
	KeyRef      string          `json:"key"`
	At          time.Time       `json:"at"`
	ActorUserID uint            `json:"actor_user_id"`
	Before      domain.Snapshot `json:"before"`
	After       domain.Snapshot `json:"after"`
	Reason      *string         `json:"reason"`
}

func toAuditEventResponse(e domain.AdminChangeEvent) AuditEventResponse {
	return AuditEventResponse{
		Aggregate:   string(e.Aggregate),
		Action:      string(e.Action),
		KeyRef:      e.KeyRef,
		At:          e.At,
		ActorUserID: e.ActorUserID,
		Before:      e.Before,
		After:       e.After,
		Reason:      e.Reason,
	}
}

func mapSlice[T, R any](in []T, f func(T) R) []R {
	out := make([]R, 0, len(in))
	for _, v := range in {
		out = append(out, f(v))
	}
	return out
}
