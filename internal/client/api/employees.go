package api

import (
	"context"
	"fmt"
	"net/http"

	pkgapi "github.com/pixelforge/backoffice/pkg/api"
)

// Административные операции над сотрудниками (/NguoiDung/*)

// GetAllEmployees возвращает список всех сотрудников
func (c *Client) GetAllEmployees(ctx context.Context) ([]pkgapi.Employee, error) {
	var employees []pkgapi.Employee
	if err := c.doAuth(ctx, http.MethodGet, "/NguoiDung/getAllEmployees", nil, nil, &employees); err != nil {
		return nil, fmt.Errorf("get all employees failed: %w", err)
	}
	return employees, nil
}

// CreateEmployee создает нового сотрудника
func (c *Client) CreateEmployee(ctx context.Context, req pkgapi.CreateEmployeeRequest) (*pkgapi.Employee, error) {
	var created pkgapi.Employee
	if err := c.doAuth(ctx, http.MethodPost, "/NguoiDung/createEmployee", nil, req, &created); err != nil {
		return nil, fmt.Errorf("create employee failed: %w", err)
	}
	return &created, nil
}

// UpdateEmployeeRoles обновляет набор ролей сотрудника
func (c *Client) UpdateEmployeeRoles(ctx context.Context, userID string, roles []string) error {
	path := fmt.Sprintf("/NguoiDung/%s/updateRoles", userID)
	req := pkgapi.UpdateRolesRequest{Roles: roles}
	if err := c.doAuth(ctx, http.MethodPut, path, nil, req, nil); err != nil {
		return fmt.Errorf("update employee roles failed: %w", err)
	}
	return nil
}

// ToggleAccountStatus блокирует или разблокирует учетную запись
func (c *Client) ToggleAccountStatus(ctx context.Context, userID string) error {
	req := pkgapi.ToggleAccountStatusRequest{UserID: userID}
	if err := c.doAuth(ctx, http.MethodPost, "/NguoiDung/toggleAccountStatus", nil, req, nil); err != nil {
		return fmt.Errorf("toggle account status failed: %w", err)
	}
	return nil
}

// ResetEmployeePassword сбрасывает пароль сотрудника (только для администратора)
func (c *Client) ResetEmployeePassword(ctx context.Context, userID, newPassword string) error {
	req := pkgapi.ResetPasswordRequest{UserID: userID, NewPassword: newPassword}
	if err := c.doAuth(ctx, http.MethodPost, "/NguoiDung/admin/resetpassword", nil, req, nil); err != nil {
		return fmt.Errorf("reset employee password failed: %w", err)
	}
	return nil
}
