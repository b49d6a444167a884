package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixelforge/backoffice/internal/client/api"
	"github.com/pixelforge/backoffice/internal/client/auth"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeIO собирает весь вывод и отдает заранее подготовленный ввод
type fakeIO struct {
	output    strings.Builder
	inputs    []string
	passwords []string
}

func (f *fakeIO) Println(a ...any) {
	f.output.WriteString(fmt.Sprintln(a...))
}

func (f *fakeIO) Printf(format string, a ...any) {
	f.output.WriteString(fmt.Sprintf(format, a...))
}

func (f *fakeIO) ReadInput(prompt string) (string, error) {
	if len(f.inputs) == 0 {
		return "", fmt.Errorf("no input queued for prompt %q", prompt)
	}
	next := f.inputs[0]
	f.inputs = f.inputs[1:]
	return next, nil
}

func (f *fakeIO) ReadPassword(prompt string) (string, error) {
	if len(f.passwords) == 0 {
		return "", fmt.Errorf("no password queued for prompt %q", prompt)
	}
	next := f.passwords[0]
	f.passwords = f.passwords[1:]
	return next, nil
}

// fakeSession implements auth.Session (and api.TokenSource) so CLI commands
// run without a real backend.
type fakeSession struct {
	loginErr      error
	profile       *auth.UserProfile
	state         auth.State
	token         string
	checkResult   bool
	refreshResult bool
	logoutCalls   int
}

func (f *fakeSession) Login(ctx context.Context, username, password string) error {
	return f.loginErr
}

func (f *fakeSession) Logout(ctx context.Context) {
	f.logoutCalls++
	f.profile = nil
	f.token = ""
	f.state = auth.StateUnauthenticated
}

func (f *fakeSession) CheckAuthStatus(ctx context.Context) bool { return f.checkResult }

func (f *fakeSession) FetchUserData(ctx context.Context) *auth.UserProfile { return f.profile }

func (f *fakeSession) RefreshAuthToken(ctx context.Context) bool { return f.refreshResult }

func (f *fakeSession) HasRole(role string) bool {
	if f.profile == nil {
		return false
	}
	for _, held := range f.profile.Roles {
		if strings.EqualFold(held, role) {
			return true
		}
	}
	return false
}

func (f *fakeSession) Profile() *auth.UserProfile { return f.profile }

func (f *fakeSession) State() auth.State { return f.state }

func (f *fakeSession) AccessToken() string { return f.token }

func (f *fakeSession) EnsureAuthenticated(ctx context.Context) bool { return f.checkResult }

func (f *fakeSession) Refresh(ctx context.Context) bool { return f.refreshResult }

func (f *fakeSession) ForceLogout(ctx context.Context) { f.Logout(ctx) }

var _ auth.Session = (*fakeSession)(nil)
var _ api.TokenSource = (*fakeSession)(nil)

func newTestCli(t *testing.T, handler http.Handler, session *fakeSession, ioFake *fakeIO) *Cli {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	apiClient := api.NewClient(server.URL, testLogger())
	apiClient.SetTokenSource(session)
	return New(apiClient, session, ioFake)
}

func TestSplitRoles(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "single role", input: "Admin", want: []string{"Admin"}},
		{name: "comma separated", input: "Admin,Editor", want: []string{"Admin", "Editor"}},
		{name: "whitespace trimmed", input: " Admin , Editor ", want: []string{"Admin", "Editor"}},
		{name: "empty segments dropped", input: "Admin,,Editor,", want: []string{"Admin", "Editor"}},
		{name: "empty input", input: "", want: nil},
		{name: "only separators", input: " , , ", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitRoles(tt.input))
		})
	}
}

func TestRun_UnknownCommand(t *testing.T) {
	ioFake := &fakeIO{}
	cli := newTestCli(t, http.NotFoundHandler(), &fakeSession{}, ioFake)

	err := cli.Run(context.Background(), "frobnicate", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
	assert.Contains(t, ioFake.output.String(), "Usage:")
}

func TestRun_SessionExpiredMessage(t *testing.T) {
	// Бэкенд отвечает 401, refresh не срабатывает: пользователю
	// предлагают залогиниться заново
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	session := &fakeSession{
		token:       "stale",
		state:       auth.StateAuthenticated,
		checkResult: true,
	}
	ioFake := &fakeIO{}
	cli := newTestCli(t, handler, session, ioFake)

	err := cli.Run(context.Background(), "list", []string{"levels"})
	require.ErrorIs(t, err, api.ErrSessionExpired)
	assert.Contains(t, ioFake.output.String(), "Session expired")
	assert.Equal(t, 1, session.logoutCalls)
}

func TestRunLogin_Success(t *testing.T) {
	session := &fakeSession{
		profile: &auth.UserProfile{Username: "alice", Roles: []string{"Admin"}},
	}
	ioFake := &fakeIO{inputs: []string{"alice"}, passwords: []string{"secret-password"}}
	cli := newTestCli(t, http.NotFoundHandler(), session, ioFake)

	require.NoError(t, cli.Run(context.Background(), "login", nil))

	out := ioFake.output.String()
	assert.Contains(t, out, "✓ Login successful!")
	assert.Contains(t, out, "alice")
}

func TestRunLogin_InvalidCredentials(t *testing.T) {
	session := &fakeSession{
		loginErr: &auth.Error{Kind: auth.KindInvalidCredentials, Msg: "invalid username or password"},
	}
	ioFake := &fakeIO{inputs: []string{"alice"}, passwords: []string{"wrong-password"}}
	cli := newTestCli(t, http.NotFoundHandler(), session, ioFake)

	err := cli.Run(context.Background(), "login", nil)
	require.Error(t, err)

	var authErr *auth.Error
	require.ErrorAs(t, err, &authErr)
	assert.Contains(t, ioFake.output.String(), "✗ invalid username or password")
}

func TestRunLogout(t *testing.T) {
	session := &fakeSession{token: "tok", state: auth.StateAuthenticated}
	ioFake := &fakeIO{}
	cli := newTestCli(t, http.NotFoundHandler(), session, ioFake)

	require.NoError(t, cli.Run(context.Background(), "logout", nil))
	assert.Equal(t, 1, session.logoutCalls)
	assert.Contains(t, ioFake.output.String(), "✓ Logout successful!")

	// Повторный logout тоже успешен
	require.NoError(t, cli.Run(context.Background(), "logout", nil))
	assert.Equal(t, 2, session.logoutCalls)
}

func TestRunStatus(t *testing.T) {
	t.Run("authenticated", func(t *testing.T) {
		session := &fakeSession{
			checkResult: true,
			state:       auth.StateAuthenticated,
			profile:     &auth.UserProfile{Username: "alice", Roles: []string{"Admin", "Editor"}},
		}
		ioFake := &fakeIO{}
		cli := newTestCli(t, http.NotFoundHandler(), session, ioFake)

		require.NoError(t, cli.Run(context.Background(), "status", nil))

		out := ioFake.output.String()
		assert.Contains(t, out, "Status: Authenticated")
		assert.Contains(t, out, "alice")
	})

	t.Run("not authenticated", func(t *testing.T) {
		session := &fakeSession{state: auth.StateUnauthenticated}
		ioFake := &fakeIO{}
		cli := newTestCli(t, http.NotFoundHandler(), session, ioFake)

		require.NoError(t, cli.Run(context.Background(), "status", nil))
		assert.Contains(t, ioFake.output.String(), "Status: Not authenticated")
	})
}

func TestRunWhoami(t *testing.T) {
	session := &fakeSession{
		profile: &auth.UserProfile{
			UserID:   "u1",
			Username: "alice",
			Email:    "alice@pixelforge.dev",
			Roles:    []string{"Admin"},
		},
	}
	ioFake := &fakeIO{}
	cli := newTestCli(t, http.NotFoundHandler(), session, ioFake)

	require.NoError(t, cli.Run(context.Background(), "whoami", nil))

	out := ioFake.output.String()
	assert.Contains(t, out, "alice")
	assert.Contains(t, out, "alice@pixelforge.dev")
	assert.Contains(t, out, "Admin")
}

func TestRunWhoami_NotAuthenticated(t *testing.T) {
	cli := newTestCli(t, http.NotFoundHandler(), &fakeSession{}, &fakeIO{})

	err := cli.Run(context.Background(), "whoami", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not authenticated")
}

// Админские команды закрыты для пользователей без роли Admin
func TestRunEmployees_RequiresAdmin(t *testing.T) {
	session := &fakeSession{
		checkResult: true,
		state:       auth.StateAuthenticated,
		profile:     &auth.UserProfile{Username: "bob", Roles: []string{"Viewer"}},
	}
	cli := newTestCli(t, http.NotFoundHandler(), session, &fakeIO{})

	err := cli.Run(context.Background(), "employees", []string{"list"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access denied")
}

// Переименованная админская роль все равно проходит
func TestRunEmployees_AdminVariantAllowed(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/NguoiDung/getAllEmployees", r.URL.Path)
		_, _ = w.Write([]byte(`[{"maNguoiDung":"u2","taiKhoan":"carol","email":"carol@pixelforge.dev","trangThai":true}]`))
	})
	session := &fakeSession{
		checkResult: true,
		state:       auth.StateAuthenticated,
		token:       "tok",
		profile:     &auth.UserProfile{Username: "carol", Roles: []string{"SuperAdmin"}},
	}
	ioFake := &fakeIO{}
	cli := newTestCli(t, handler, session, ioFake)

	require.NoError(t, cli.Run(context.Background(), "employees", []string{"list"}))
	assert.Contains(t, ioFake.output.String(), "carol")
}

func TestRunEmployees_NotAuthenticated(t *testing.T) {
	cli := newTestCli(t, http.NotFoundHandler(), &fakeSession{}, &fakeIO{})

	err := cli.Run(context.Background(), "employees", []string{"list"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not authenticated")
}

func TestRunEmployees_SetRoles(t *testing.T) {
	var gotBody string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/NguoiDung/u1/updateRoles", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
	})
	session := &fakeSession{
		checkResult: true,
		state:       auth.StateAuthenticated,
		token:       "tok",
		profile:     &auth.UserProfile{Username: "alice", Roles: []string{"Admin"}},
	}
	ioFake := &fakeIO{}
	cli := newTestCli(t, handler, session, ioFake)

	require.NoError(t, cli.Run(context.Background(), "employees", []string{"set-roles", "u1", "Admin, Editor"}))
	assert.Contains(t, gotBody, "Admin")
	assert.Contains(t, gotBody, "Editor")
	assert.Contains(t, ioFake.output.String(), "✓ Updated roles for u1")
}

func TestRunList_Levels(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/CapDo", r.URL.Path)
		_, _ = w.Write([]byte(`[{"maCapDo":1,"tenCapDo":"Level 1","diemKinhNghiem":100}]`))
	})
	session := &fakeSession{
		checkResult: true,
		state:       auth.StateAuthenticated,
		token:       "tok",
	}
	ioFake := &fakeIO{}
	cli := newTestCli(t, handler, session, ioFake)

	require.NoError(t, cli.Run(context.Background(), "list", []string{"levels"}))
	assert.Contains(t, ioFake.output.String(), "Level 1")
}

func TestRunDelete_UnknownEntity(t *testing.T) {
	cli := newTestCli(t, http.NotFoundHandler(), &fakeSession{token: "tok", checkResult: true}, &fakeIO{})

	err := cli.Run(context.Background(), "delete", []string{"widgets", "1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not support delete")
}
