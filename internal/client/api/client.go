package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
)

// TokenSource supplies bearer tokens for authenticated requests and handles
// recovery when they go stale. Implemented by the auth session service.
type TokenSource interface {
	// AccessToken returns the current access token, empty when logged out
	AccessToken() string

	// EnsureAuthenticated tries to establish a session from stored state
	// (cached profile or refresh token). Used before the first request
	// after a process restart.
	EnsureAuthenticated(ctx context.Context) bool

	// Refresh exchanges the refresh token for a new token pair
	Refresh(ctx context.Context) bool

	// ForceLogout clears the session after an unrecoverable 401
	ForceLogout(ctx context.Context)
}

// Client представляет HTTP клиент для взаимодействия с бэкендом
type Client struct {
	httpClient   *http.Client
	logger       *slog.Logger
	tokens       TokenSource
	baseURL      string
	tunnelBypass bool
}

// NewClient создает новый API клиент
func NewClient(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			// Настройка обработки редиректов
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Ограничиваем количество редиректов
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Копируем заголовок Authorization при редиректе
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}
}

// SetTokenSource wires the auth session in. Until it is set, authenticated
// requests go out without a bearer token.
func (c *Client) SetTokenSource(tokens TokenSource) {
	c.tokens = tokens
}

// EnableTunnelBypass adds the ngrok interstitial bypass header to every
// request. Needed while the backend is exposed through a tunnel.
func (c *Client) EnableTunnelBypass() {
	c.tunnelBypass = true
}

// doPublic выполняет запрос без bearer token (логин, обмен refresh token).
// Не делает retry: эти запросы сами являются частью восстановления сессии.
func (c *Client) doPublic(ctx context.Context, method, path string, query url.Values, body, result any) error {
	return c.send(ctx, method, path, query, body, result, "")
}

// doAuth выполняет запрос с bearer token. Если токена нет, сначала пытается
// восстановить сессию. На 401 обновляет токен и повторяет запрос ровно один
// раз; повторный 401 возвращается вызывающему как есть.
func (c *Client) doAuth(ctx context.Context, method, path string, query url.Values, body, result any) error {
	var token string
	if c.tokens != nil {
		token = c.tokens.AccessToken()
		if token == "" && c.tokens.EnsureAuthenticated(ctx) {
			token = c.tokens.AccessToken()
		}
	}

	err := c.send(ctx, method, path, query, body, result, token)
	if err == nil {
		return nil
	}

	var httpErr *HTTPError
	if !errors.As(err, &httpErr) || httpErr.StatusCode != http.StatusUnauthorized || c.tokens == nil {
		c.logger.Warn("request failed", "method", method, "path", path, "error", err)
		return err
	}

	// Токен протух: обновляем и повторяем запрос один раз
	if !c.tokens.Refresh(ctx) {
		c.tokens.ForceLogout(ctx)
		return ErrSessionExpired
	}

	if retryErr := c.send(ctx, method, path, query, body, result, c.tokens.AccessToken()); retryErr != nil {
		c.logger.Warn("request failed after token refresh", "method", method, "path", path, "error", retryErr)
		return retryErr
	}
	return nil
}

// send выполняет один HTTP запрос
func (c *Client) send(ctx context.Context, method, path string, query url.Values, body, result any, token string) error {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "*/*")
	req.Header.Set("X-Request-Id", uuid.New().String())
	if c.tunnelBypass {
		req.Header.Set("ngrok-skip-browser-warning", "true")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	// Читаем тело ответа
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	// Проверяем статус код
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.httpError(resp.StatusCode, respBody)
	}

	// Декодируем успешный ответ
	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// httpError строит HTTPError из тела ответа бэкенда
func (c *Client) httpError(statusCode int, respBody []byte) error {
	var errResp struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(respBody, &errResp); err == nil {
		msg := errResp.Message
		if msg == "" {
			msg = errResp.Error
		}
		if msg != "" {
			return &HTTPError{StatusCode: statusCode, Message: msg}
		}
	}
	return &HTTPError{StatusCode: statusCode, Message: string(respBody)}
}
