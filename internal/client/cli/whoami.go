package cli

import (
	"context"
	"fmt"
	"strings"
)

func (c *Cli) runWhoami(ctx context.Context) error {
	// Обновляем профиль с бэкенда; при недоступной сети
	// показываем кэшированную копию
	profile := c.session.FetchUserData(ctx)
	if profile == nil {
		profile = c.session.Profile()
	}
	if profile == nil {
		return fmt.Errorf("not authenticated, run 'backoffice login' first")
	}

	c.io.Printf("User ID:      %s\n", profile.UserID)
	c.io.Printf("Username:     %s\n", profile.Username)
	c.io.Printf("Display name: %s\n", profile.DisplayName)
	c.io.Printf("Email:        %s\n", profile.Email)
	if profile.LoginMethod != "" {
		c.io.Printf("Login method: %s\n", profile.LoginMethod)
	}
	if len(profile.Roles) > 0 {
		c.io.Printf("Roles:        %s\n", strings.Join(profile.Roles, ", "))
	} else {
		c.io.Println("Roles:        (none)")
	}

	return nil
}
