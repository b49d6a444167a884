package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	pkgapi "github.com/pixelforge/backoffice/pkg/api"
)

// Login выполняет аутентификацию сотрудника.
// Credentials живут только в рамках этого вызова и нигде не сохраняются.
func (c *Client) Login(ctx context.Context, req pkgapi.LoginRequest) (*pkgapi.LoginResponse, error) {
	var resp pkgapi.LoginResponse
	if err := c.doPublic(ctx, http.MethodPost, "/Authentication/login", nil, req, &resp); err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	return &resp, nil
}

// RefreshToken обменивает refresh token на новую пару токенов.
// Бэкенд принимает refresh token как query-параметр с пустым телом.
func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (*pkgapi.RefreshResponse, error) {
	query := url.Values{"refreshToken": {refreshToken}}
	var resp pkgapi.RefreshResponse
	if err := c.doPublic(ctx, http.MethodPost, "/Authentication/refreshToken", query, nil, &resp); err != nil {
		return nil, fmt.Errorf("refresh token request failed: %w", err)
	}
	return &resp, nil
}

// GetUserInfo запрашивает профиль текущего сотрудника
func (c *Client) GetUserInfo(ctx context.Context) (*pkgapi.UserInfoResponse, error) {
	var resp pkgapi.UserInfoResponse
	if err := c.doAuth(ctx, http.MethodGet, "/NguoiDung/getInforUser", nil, nil, &resp); err != nil {
		return nil, fmt.Errorf("get user info request failed: %w", err)
	}
	return &resp, nil
}
