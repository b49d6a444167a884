package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/pixelforge/backoffice/internal/validation"
	pkgapi "github.com/pixelforge/backoffice/pkg/api"
)

// runEmployees handles the staff-account admin commands. All of them are
// gated behind the Admin role, mirroring the web back-office route guard.
func (c *Cli) runEmployees(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: employees <list|create|set-roles|toggle-status|reset-password> [args]")
	}

	if err := c.requireRole(ctx, "Admin"); err != nil {
		return err
	}

	switch args[0] {
	case "list":
		return c.runEmployeesList(ctx)
	case "create":
		return c.runEmployeesCreate(ctx)
	case "set-roles":
		if len(args) < 3 {
			return fmt.Errorf("usage: employees set-roles <id> <role,role,...>")
		}
		return c.runEmployeesSetRoles(ctx, args[1], args[2])
	case "toggle-status":
		if len(args) < 2 {
			return fmt.Errorf("usage: employees toggle-status <id>")
		}
		return c.runEmployeesToggleStatus(ctx, args[1])
	case "reset-password":
		if len(args) < 2 {
			return fmt.Errorf("usage: employees reset-password <id>")
		}
		return c.runEmployeesResetPassword(ctx, args[1])
	default:
		return fmt.Errorf("unknown employees subcommand: %s", args[0])
	}
}

func (c *Cli) runEmployeesList(ctx context.Context) error {
	employees, err := c.apiClient.GetAllEmployees(ctx)
	if err != nil {
		return err
	}

	c.io.Printf("%-38s %-16s %-24s %-8s %s\n", "ID", "USERNAME", "EMAIL", "ACTIVE", "ROLES")
	for _, e := range employees {
		c.io.Printf("%-38s %-16s %-24s %-8t %s\n",
			e.UserID, e.Username, e.Email, e.Active, strings.Join(e.Roles, ","))
	}
	return nil
}

func (c *Cli) runEmployeesCreate(ctx context.Context) error {
	c.io.Println("=== Create Employee ===")
	c.io.Println("")

	username, err := c.io.ReadInput("Username: ")
	if err != nil {
		return fmt.Errorf("failed to read username: %w", err)
	}
	if err := validation.ValidateUsername(username); err != nil {
		return fmt.Errorf("invalid username: %w", err)
	}

	password, err := c.io.ReadPassword("Password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	if err := validation.ValidatePassword(password); err != nil {
		return fmt.Errorf("invalid password: %w", err)
	}

	email, err := c.io.ReadInput("Email: ")
	if err != nil {
		return fmt.Errorf("failed to read email: %w", err)
	}

	displayName, err := c.io.ReadInput("Display name: ")
	if err != nil {
		return fmt.Errorf("failed to read display name: %w", err)
	}

	rolesInput, err := c.io.ReadInput("Roles (comma-separated): ")
	if err != nil {
		return fmt.Errorf("failed to read roles: %w", err)
	}

	req := pkgapi.CreateEmployeeRequest{
		Username:    username,
		Password:    password,
		Email:       email,
		DisplayName: displayName,
		Roles:       splitRoles(rolesInput),
	}

	created, err := c.apiClient.CreateEmployee(ctx, req)
	if err != nil {
		return err
	}

	c.io.Println("")
	c.io.Printf("✓ Created employee %s (%s)\n", created.Username, created.UserID)
	return nil
}

func (c *Cli) runEmployeesSetRoles(ctx context.Context, userID, rolesArg string) error {
	roles := splitRoles(rolesArg)
	if len(roles) == 0 {
		return fmt.Errorf("at least one role is required")
	}

	if err := c.apiClient.UpdateEmployeeRoles(ctx, userID, roles); err != nil {
		return err
	}

	c.io.Printf("✓ Updated roles for %s: %s\n", userID, strings.Join(roles, ", "))
	return nil
}

func (c *Cli) runEmployeesToggleStatus(ctx context.Context, userID string) error {
	if err := c.apiClient.ToggleAccountStatus(ctx, userID); err != nil {
		return err
	}

	c.io.Printf("✓ Toggled account status for %s\n", userID)
	return nil
}

func (c *Cli) runEmployeesResetPassword(ctx context.Context, userID string) error {
	newPassword, err := c.io.ReadPassword("New password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	if err := validation.ValidatePassword(newPassword); err != nil {
		return fmt.Errorf("invalid password: %w", err)
	}

	if err := c.apiClient.ResetEmployeePassword(ctx, userID, newPassword); err != nil {
		return err
	}

	c.io.Printf("✓ Password reset for %s\n", userID)
	return nil
}

// splitRoles разбирает список ролей из строки с запятыми
func splitRoles(input string) []string {
	var roles []string
	for _, role := range strings.Split(input, ",") {
		role = strings.TrimSpace(role)
		if role != "" {
			roles = append(roles, role)
		}
	}
	return roles
}
