package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/pixelforge/backoffice/internal/client/api"
	"github.com/pixelforge/backoffice/internal/client/auth"
	"github.com/pixelforge/backoffice/internal/client/guard"
	"github.com/pixelforge/backoffice/internal/client/iocli"
)

type Cli struct {
	apiClient *api.Client
	session   auth.Session
	io        iocli.IO
}

func New(apiClient *api.Client, session auth.Session, io iocli.IO) *Cli {
	return &Cli{
		apiClient: apiClient,
		session:   session,
		io:        io,
	}
}

// Run dispatches a single command. Session-expiry errors are translated into
// an instruction to login again (the CLI analogue of a redirect to /login).
func (c *Cli) Run(ctx context.Context, command string, args []string) error {
	var err error
	switch command {
	case "login":
		err = c.runLogin(ctx)
	case "logout":
		err = c.runLogout(ctx)
	case "status":
		err = c.runStatus(ctx)
	case "whoami":
		err = c.runWhoami(ctx)
	case "list":
		err = c.runList(ctx, args)
	case "create":
		err = c.runCreate(ctx, args)
	case "update":
		err = c.runUpdate(ctx, args)
	case "delete":
		err = c.runDelete(ctx, args)
	case "employees":
		err = c.runEmployees(ctx, args)
	default:
		PrintUsage(c.io)
		return fmt.Errorf("unknown command: %s", command)
	}

	if errors.Is(err, api.ErrSessionExpired) {
		c.io.Println("Session expired. Run 'backoffice login' to sign in again.")
	}
	return err
}

// requireRole gates admin commands the same way the web back-office gates its
// routes: any one of the required roles grants access.
func (c *Cli) requireRole(ctx context.Context, required ...string) error {
	if !c.session.CheckAuthStatus(ctx) {
		return fmt.Errorf("not authenticated, run 'backoffice login' first")
	}

	var held []string
	if p := c.session.Profile(); p != nil {
		held = p.Roles
	}

	decision := guard.Decide(c.session.State(), held, required)
	if decision.RedirectTo == guard.UnauthorizedPath {
		return fmt.Errorf("access denied: requires one of roles %v", required)
	}
	if !decision.Allowed() {
		return fmt.Errorf("not authenticated, run 'backoffice login' first")
	}
	return nil
}

func PrintUsage(io iocli.IO) {
	io.Println("Pixelforge Back-office CLI")
	io.Println("")
	io.Println("Usage:")
	io.Println("  backoffice [OPTIONS] COMMAND")
	io.Println("")
	io.Println("Options:")
	io.Println("  --version        Show version information")
	io.Println("  --server URL     Backend URL (overrides BACKOFFICE_API_URL)")
	io.Println("  --db PATH        Path to local session database (overrides BACKOFFICE_DB_PATH)")
	io.Println("")
	io.Println("Commands:")
	io.Println("  login                                Sign in with a staff account")
	io.Println("  logout                               Sign out and clear the local session")
	io.Println("  status                               Show authentication status")
	io.Println("  whoami                               Show the current user profile")
	io.Println("  list <entity>                        List entities")
	io.Println("  create <entity> <json>               Create an entity from a JSON payload")
	io.Println("  update <entity> <id> <json>          Update an entity")
	io.Println("  delete <entity> <id>                 Delete an entity")
	io.Println("  employees list                       List staff accounts (Admin)")
	io.Println("  employees create                     Create a staff account (Admin)")
	io.Println("  employees set-roles <id> <roles>     Replace an employee's roles (Admin)")
	io.Println("  employees toggle-status <id>         Lock/unlock an account (Admin)")
	io.Println("  employees reset-password <id>        Reset an employee's password (Admin)")
	io.Println("")
	io.Println("Entities:")
	io.Println("  levels, achievements, achievement-types, rewards, skins, players, roles")
	io.Println("")
	io.Println("Examples:")
	io.Println("  backoffice login")
	io.Println("  backoffice list levels")
	io.Println("  backoffice create levels '{\"tenCapDo\":\"Level 10\",\"diemKinhNghiem\":4500}'")
	io.Println("  backoffice update skins 3 '{\"tenTrangPhuc\":\"Dragon Armor\",\"gia\":1200}'")
	io.Println("  backoffice employees set-roles 42a781 Admin,Editor")
}
