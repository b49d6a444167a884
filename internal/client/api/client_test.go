package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgapi "github.com/pixelforge/backoffice/pkg/api"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeTokenSource реализует TokenSource для тестов
type fakeTokenSource struct {
	mu            sync.Mutex
	token         string
	refreshedTo   string
	refreshResult bool
	ensureResult  bool
	refreshCalls  int
	ensureCalls   int
	logoutCalls   int
}

func (f *fakeTokenSource) AccessToken() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

func (f *fakeTokenSource) EnsureAuthenticated(ctx context.Context) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ensureCalls++
	if f.ensureResult {
		f.token = f.refreshedTo
	}
	return f.ensureResult
}

func (f *fakeTokenSource) Refresh(ctx context.Context) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refreshCalls++
	if f.refreshResult {
		f.token = f.refreshedTo
	}
	return f.refreshResult
}

func (f *fakeTokenSource) ForceLogout(ctx context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logoutCalls++
	f.token = ""
}

func TestNewClient(t *testing.T) {
	client := NewClient("http://localhost:5000", testLogger())

	assert.NotNil(t, client)
	assert.Equal(t, "http://localhost:5000", client.baseURL)
	assert.NotNil(t, client.httpClient)
	assert.Equal(t, 30*time.Second, client.httpClient.Timeout)
}

// Логин: проверяем путь, заголовки, тело запроса и декодирование ответа
func TestClient_Login(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/Authentication/login", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "*/*", r.Header.Get("Accept"))
		assert.NotEmpty(t, r.Header.Get("X-Request-Id"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "alice", body["TaiKhoan"])
		assert.Equal(t, "secret-password", body["MatKhau"])

		_ = json.NewEncoder(w).Encode(map[string]any{
			"token":        "access-token",
			"refreshToken": "refresh-token",
			"user": map[string]any{
				"maNguoiDung": "u1",
				"taiKhoan":    "alice",
				"roleUsers":   []string{"Admin"},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, testLogger())

	resp, err := client.Login(context.Background(), pkgapi.LoginRequest{
		Username: "alice",
		Password: "secret-password",
	})

	require.NoError(t, err)
	assert.Equal(t, "access-token", resp.Token)
	assert.Equal(t, "refresh-token", resp.RefreshToken)
	assert.Equal(t, "alice", resp.User.Username)
	assert.Equal(t, []string{"Admin"}, resp.User.Roles)
}

// Ошибки логина приходят как HTTPError с кодом статуса
func TestClient_Login_ErrorStatuses(t *testing.T) {
	tests := []struct {
		name       string
		message    string
		statusCode int
	}{
		{name: "invalid credentials", statusCode: http.StatusUnauthorized, message: "invalid credentials"},
		{name: "forbidden", statusCode: http.StatusForbidden, message: "account disabled"},
		{name: "server error", statusCode: http.StatusInternalServerError, message: "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				_ = json.NewEncoder(w).Encode(pkgapi.ErrorResponse{Message: tt.message})
			}))
			defer server.Close()

			client := NewClient(server.URL, testLogger())

			_, err := client.Login(context.Background(), pkgapi.LoginRequest{Username: "alice", Password: "wrong-password"})
			require.Error(t, err)

			var httpErr *HTTPError
			require.ErrorAs(t, err, &httpErr)
			assert.Equal(t, tt.statusCode, httpErr.StatusCode)
			assert.Equal(t, tt.message, httpErr.Message)
		})
	}
}

// Refresh token уходит query-параметром с пустым телом
func TestClient_RefreshToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/Authentication/refreshToken", r.URL.Path)
		assert.Equal(t, "old-refresh", r.URL.Query().Get("refreshToken"))

		_ = json.NewEncoder(w).Encode(pkgapi.RefreshResponse{
			Token:        "new-access",
			RefreshToken: "new-refresh",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, testLogger())

	resp, err := client.RefreshToken(context.Background(), "old-refresh")
	require.NoError(t, err)
	assert.Equal(t, "new-access", resp.Token)
	assert.Equal(t, "new-refresh", resp.RefreshToken)
}

// Авторизованный запрос несет bearer token
func TestClient_DoAuth_BearerInjected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer current-token", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode([]pkgapi.Level{{LevelID: 1, Name: "Level 1"}})
	}))
	defer server.Close()

	client := NewClient(server.URL, testLogger())
	client.SetTokenSource(&fakeTokenSource{token: "current-token"})

	levels, err := client.ListLevels(context.Background())
	require.NoError(t, err)
	require.Len(t, levels, 1)
	assert.Equal(t, "Level 1", levels[0].Name)
}

// 401 + успешный refresh: запрос повторяется ровно один раз с новым токеном
func TestClient_DoAuth_RetryOnceAfterRefresh(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if r.Header.Get("Authorization") != "Bearer new-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode([]pkgapi.Skin{{SkinID: 3, Name: "Dragon Armor"}})
	}))
	defer server.Close()

	tokens := &fakeTokenSource{token: "stale-token", refreshResult: true, refreshedTo: "new-token"}
	client := NewClient(server.URL, testLogger())
	client.SetTokenSource(tokens)

	skins, err := client.ListSkins(context.Background())
	require.NoError(t, err)
	require.Len(t, skins, 1)

	assert.Equal(t, 2, requests)
	assert.Equal(t, 1, tokens.refreshCalls)
	assert.Equal(t, 0, tokens.logoutCalls)
}

// Повторный 401 после refresh не вызывает третью попытку
func TestClient_DoAuth_NoThirdAttempt(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	tokens := &fakeTokenSource{token: "stale-token", refreshResult: true, refreshedTo: "new-token"}
	client := NewClient(server.URL, testLogger())
	client.SetTokenSource(tokens)

	_, err := client.ListSkins(context.Background())
	require.Error(t, err)

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.StatusCode)

	assert.Equal(t, 2, requests)
	assert.Equal(t, 1, tokens.refreshCalls)
}

// 401 + неудачный refresh: сессия принудительно закрывается
func TestClient_DoAuth_RefreshFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	tokens := &fakeTokenSource{token: "stale-token", refreshResult: false}
	client := NewClient(server.URL, testLogger())
	client.SetTokenSource(tokens)

	_, err := client.ListLevels(context.Background())
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.Equal(t, 1, tokens.refreshCalls)
	assert.Equal(t, 1, tokens.logoutCalls)
}

// Без токена клиент сначала пытается восстановить сессию
func TestClient_DoAuth_EnsureAuthenticatedFirst(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer restored-token", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode([]pkgapi.Player{})
	}))
	defer server.Close()

	tokens := &fakeTokenSource{ensureResult: true, refreshedTo: "restored-token"}
	client := NewClient(server.URL, testLogger())
	client.SetTokenSource(tokens)

	_, err := client.ListPlayers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, tokens.ensureCalls)
}

// Ошибки кроме 401 уходят вызывающему без retry
func TestClient_DoAuth_NonUnauthorizedPassthrough(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(pkgapi.ErrorResponse{Message: "database down"})
	}))
	defer server.Close()

	tokens := &fakeTokenSource{token: "current-token"}
	client := NewClient(server.URL, testLogger())
	client.SetTokenSource(tokens)

	_, err := client.ListRoles(context.Background())
	require.Error(t, err)

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusInternalServerError, httpErr.StatusCode)
	assert.Equal(t, "database down", httpErr.Message)

	assert.Equal(t, 1, requests)
	assert.Equal(t, 0, tokens.refreshCalls)
}

// Заголовок обхода ngrok-заглушки добавляется только по конфигурации
func TestClient_TunnelBypassHeader(t *testing.T) {
	var header string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header = r.Header.Get("ngrok-skip-browser-warning")
		_ = json.NewEncoder(w).Encode(pkgapi.RefreshResponse{})
	}))
	defer server.Close()

	client := NewClient(server.URL, testLogger())
	_, err := client.RefreshToken(context.Background(), "tok")
	require.NoError(t, err)
	assert.Empty(t, header)

	client.EnableTunnelBypass()
	_, err = client.RefreshToken(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "true", header)
}

// Административные операции над сотрудниками: пути и тела запросов
func TestClient_EmployeeOperations(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == "GET" && r.URL.Path == "/NguoiDung/getAllEmployees":
			_ = json.NewEncoder(w).Encode([]pkgapi.Employee{{UserID: "u1", Username: "alice"}})
		case r.Method == "PUT" && r.URL.Path == "/NguoiDung/u1/updateRoles":
			var req pkgapi.UpdateRolesRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, []string{"Admin", "Editor"}, req.Roles)
			w.WriteHeader(http.StatusNoContent)
		case r.Method == "POST" && r.URL.Path == "/NguoiDung/toggleAccountStatus":
			var req pkgapi.ToggleAccountStatusRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "u1", req.UserID)
			w.WriteHeader(http.StatusNoContent)
		case r.Method == "POST" && r.URL.Path == "/NguoiDung/admin/resetpassword":
			var req pkgapi.ResetPasswordRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "new-password", req.NewPassword)
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL, testLogger())
	client.SetTokenSource(&fakeTokenSource{token: "tok"})
	ctx := context.Background()

	employees, err := client.GetAllEmployees(ctx)
	require.NoError(t, err)
	require.Len(t, employees, 1)
	assert.Equal(t, "alice", employees[0].Username)

	require.NoError(t, client.UpdateEmployeeRoles(ctx, "u1", []string{"Admin", "Editor"}))
	require.NoError(t, client.ToggleAccountStatus(ctx, "u1"))
	require.NoError(t, client.ResetEmployeePassword(ctx, "u1", "new-password"))
}
