package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/pixelforge/backoffice/internal/client/auth"
)

func (c *Cli) runLogin(ctx context.Context) error {
	c.io.Println("=== Login ===")
	c.io.Println("")

	// Запрашиваем учетную запись
	username, err := c.io.ReadInput("Username: ")
	if err != nil {
		return fmt.Errorf("failed to read username: %w", err)
	}

	// Запрашиваем пароль без отображения
	password, err := c.io.ReadPassword("Password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	c.io.Println("")
	c.io.Println("Authenticating...")

	if err := c.session.Login(ctx, username, password); err != nil {
		// Ошибки логина — структурированный результат, показываем inline
		var authErr *auth.Error
		if errors.As(err, &authErr) {
			c.io.Printf("✗ %s\n", authErr.Msg)
		}
		return err
	}

	profile := c.session.Profile()

	c.io.Println("")
	c.io.Println("✓ Login successful!")
	if profile != nil {
		c.io.Printf("Username: %s\n", profile.Username)
		if len(profile.Roles) > 0 {
			c.io.Printf("Roles:    %v\n", profile.Roles)
		}
	}
	c.io.Println("")
	c.io.Println("Your session has been saved.")

	return nil
}
