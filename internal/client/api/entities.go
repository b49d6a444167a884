package api

import (
	"context"
	"fmt"
	"net/http"

	pkgapi "github.com/pixelforge/backoffice/pkg/api"
)

// Стандартные CRUD операции над игровыми сущностями. Все запросы
// авторизованные, единый контракт обработки 401 (см. doAuth).

// Levels (/CapDo)

func (c *Client) ListLevels(ctx context.Context) ([]pkgapi.Level, error) {
	var levels []pkgapi.Level
	if err := c.doAuth(ctx, http.MethodGet, "/CapDo", nil, nil, &levels); err != nil {
		return nil, fmt.Errorf("list levels failed: %w", err)
	}
	return levels, nil
}

func (c *Client) CreateLevel(ctx context.Context, level pkgapi.Level) (*pkgapi.Level, error) {
	var created pkgapi.Level
	if err := c.doAuth(ctx, http.MethodPost, "/CapDo", nil, level, &created); err != nil {
		return nil, fmt.Errorf("create level failed: %w", err)
	}
	return &created, nil
}

func (c *Client) UpdateLevel(ctx context.Context, id int, level pkgapi.Level) error {
	path := fmt.Sprintf("/CapDo/%d", id)
	if err := c.doAuth(ctx, http.MethodPut, path, nil, level, nil); err != nil {
		return fmt.Errorf("update level failed: %w", err)
	}
	return nil
}

func (c *Client) DeleteLevel(ctx context.Context, id int) error {
	path := fmt.Sprintf("/CapDo/%d", id)
	if err := c.doAuth(ctx, http.MethodDelete, path, nil, nil, nil); err != nil {
		return fmt.Errorf("delete level failed: %w", err)
	}
	return nil
}

// Achievements (/NhiemVu)

func (c *Client) ListAchievements(ctx context.Context) ([]pkgapi.Achievement, error) {
	var achievements []pkgapi.Achievement
	if err := c.doAuth(ctx, http.MethodGet, "/NhiemVu", nil, nil, &achievements); err != nil {
		return nil, fmt.Errorf("list achievements failed: %w", err)
	}
	return achievements, nil
}

func (c *Client) CreateAchievement(ctx context.Context, a pkgapi.Achievement) (*pkgapi.Achievement, error) {
	var created pkgapi.Achievement
	if err := c.doAuth(ctx, http.MethodPost, "/NhiemVu", nil, a, &created); err != nil {
		return nil, fmt.Errorf("create achievement failed: %w", err)
	}
	return &created, nil
}

func (c *Client) UpdateAchievement(ctx context.Context, id int, a pkgapi.Achievement) error {
	path := fmt.Sprintf("/NhiemVu/%d", id)
	if err := c.doAuth(ctx, http.MethodPut, path, nil, a, nil); err != nil {
		return fmt.Errorf("update achievement failed: %w", err)
	}
	return nil
}

func (c *Client) DeleteAchievement(ctx context.Context, id int) error {
	path := fmt.Sprintf("/NhiemVu/%d", id)
	if err := c.doAuth(ctx, http.MethodDelete, path, nil, nil, nil); err != nil {
		return fmt.Errorf("delete achievement failed: %w", err)
	}
	return nil
}

// Achievement types (/LoaiNhiemVu)

func (c *Client) ListAchievementTypes(ctx context.Context) ([]pkgapi.AchievementType, error) {
	var types []pkgapi.AchievementType
	if err := c.doAuth(ctx, http.MethodGet, "/LoaiNhiemVu", nil, nil, &types); err != nil {
		return nil, fmt.Errorf("list achievement types failed: %w", err)
	}
	return types, nil
}

func (c *Client) CreateAchievementType(ctx context.Context, t pkgapi.AchievementType) (*pkgapi.AchievementType, error) {
	var created pkgapi.AchievementType
	if err := c.doAuth(ctx, http.MethodPost, "/LoaiNhiemVu", nil, t, &created); err != nil {
		return nil, fmt.Errorf("create achievement type failed: %w", err)
	}
	return &created, nil
}

func (c *Client) DeleteAchievementType(ctx context.Context, id int) error {
	path := fmt.Sprintf("/LoaiNhiemVu/%d", id)
	if err := c.doAuth(ctx, http.MethodDelete, path, nil, nil, nil); err != nil {
		return fmt.Errorf("delete achievement type failed: %w", err)
	}
	return nil
}

// Rewards (/PhanThuong)

func (c *Client) ListRewards(ctx context.Context) ([]pkgapi.Reward, error) {
	var rewards []pkgapi.Reward
	if err := c.doAuth(ctx, http.MethodGet, "/PhanThuong", nil, nil, &rewards); err != nil {
		return nil, fmt.Errorf("list rewards failed: %w", err)
	}
	return rewards, nil
}

func (c *Client) CreateReward(ctx context.Context, r pkgapi.Reward) (*pkgapi.Reward, error) {
	var created pkgapi.Reward
	if err := c.doAuth(ctx, http.MethodPost, "/PhanThuong", nil, r, &created); err != nil {
		return nil, fmt.Errorf("create reward failed: %w", err)
	}
	return &created, nil
}

func (c *Client) DeleteReward(ctx context.Context, id int) error {
	path := fmt.Sprintf("/PhanThuong/%d", id)
	if err := c.doAuth(ctx, http.MethodDelete, path, nil, nil, nil); err != nil {
		return fmt.Errorf("delete reward failed: %w", err)
	}
	return nil
}

// Skins (/TrangPhuc)

func (c *Client) ListSkins(ctx context.Context) ([]pkgapi.Skin, error) {
	var skins []pkgapi.Skin
	if err := c.doAuth(ctx, http.MethodGet, "/TrangPhuc", nil, nil, &skins); err != nil {
		return nil, fmt.Errorf("list skins failed: %w", err)
	}
	return skins, nil
}

func (c *Client) CreateSkin(ctx context.Context, skin pkgapi.Skin) (*pkgapi.Skin, error) {
	var created pkgapi.Skin
	if err := c.doAuth(ctx, http.MethodPost, "/TrangPhuc", nil, skin, &created); err != nil {
		return nil, fmt.Errorf("create skin failed: %w", err)
	}
	return &created, nil
}

func (c *Client) UpdateSkin(ctx context.Context, id int, skin pkgapi.Skin) error {
	path := fmt.Sprintf("/TrangPhuc/%d", id)
	if err := c.doAuth(ctx, http.MethodPut, path, nil, skin, nil); err != nil {
		return fmt.Errorf("update skin failed: %w", err)
	}
	return nil
}

func (c *Client) DeleteSkin(ctx context.Context, id int) error {
	path := fmt.Sprintf("/TrangPhuc/%d", id)
	if err := c.doAuth(ctx, http.MethodDelete, path, nil, nil, nil); err != nil {
		return fmt.Errorf("delete skin failed: %w", err)
	}
	return nil
}

// Players (/NguoiChoi)

func (c *Client) ListPlayers(ctx context.Context) ([]pkgapi.Player, error) {
	var players []pkgapi.Player
	if err := c.doAuth(ctx, http.MethodGet, "/NguoiChoi", nil, nil, &players); err != nil {
		return nil, fmt.Errorf("list players failed: %w", err)
	}
	return players, nil
}

func (c *Client) DeletePlayer(ctx context.Context, id string) error {
	path := "/NguoiChoi/" + id
	if err := c.doAuth(ctx, http.MethodDelete, path, nil, nil, nil); err != nil {
		return fmt.Errorf("delete player failed: %w", err)
	}
	return nil
}

// Roles (/VaiTro)

func (c *Client) ListRoles(ctx context.Context) ([]pkgapi.Role, error) {
	var roles []pkgapi.Role
	if err := c.doAuth(ctx, http.MethodGet, "/VaiTro", nil, nil, &roles); err != nil {
		return nil, fmt.Errorf("list roles failed: %w", err)
	}
	return roles, nil
}
