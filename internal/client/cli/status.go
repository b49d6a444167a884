package cli

import (
	"context"
)

func (c *Cli) runStatus(ctx context.Context) error {
	c.io.Println("=== Authentication Status ===")
	c.io.Println("")

	if !c.session.CheckAuthStatus(ctx) {
		c.io.Println("Status: Not authenticated")
		c.io.Println("")
		c.io.Println("Run 'backoffice login' to authenticate.")
		return nil
	}

	c.io.Printf("Status: Authenticated (%s)\n", c.session.State())

	if profile := c.session.Profile(); profile != nil {
		c.io.Printf("Username: %s\n", profile.Username)
		if len(profile.Roles) > 0 {
			c.io.Printf("Roles:    %v\n", profile.Roles)
		} else {
			c.io.Println("⚠️  No roles associated with this session.")
		}
	}

	return nil
}
