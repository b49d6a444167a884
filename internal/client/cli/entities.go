package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	pkgapi "github.com/pixelforge/backoffice/pkg/api"
)

// entityNames listed in usage output and error messages
var entityNames = []string{
	"levels", "achievements", "achievement-types", "rewards", "skins", "players", "roles",
}

func (c *Cli) runList(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: list <entity> (one of: %s)", strings.Join(entityNames, ", "))
	}

	switch args[0] {
	case "levels":
		levels, err := c.apiClient.ListLevels(ctx)
		if err != nil {
			return err
		}
		c.io.Printf("%-8s %-24s %-10s\n", "ID", "NAME", "XP")
		for _, l := range levels {
			c.io.Printf("%-8d %-24s %-10d\n", l.LevelID, l.Name, l.RequiredXP)
		}
	case "achievements":
		achievements, err := c.apiClient.ListAchievements(ctx)
		if err != nil {
			return err
		}
		c.io.Printf("%-8s %-28s %-8s %-8s %-8s\n", "ID", "NAME", "TYPE", "REWARD", "ACTIVE")
		for _, a := range achievements {
			c.io.Printf("%-8d %-28s %-8d %-8d %-8t\n", a.AchievementID, a.Name, a.TypeID, a.RewardID, a.Active)
		}
	case "achievement-types":
		types, err := c.apiClient.ListAchievementTypes(ctx)
		if err != nil {
			return err
		}
		c.io.Printf("%-8s %-28s\n", "ID", "NAME")
		for _, t := range types {
			c.io.Printf("%-8d %-28s\n", t.TypeID, t.Name)
		}
	case "rewards":
		rewards, err := c.apiClient.ListRewards(ctx)
		if err != nil {
			return err
		}
		c.io.Printf("%-8s %-24s %-10s %-10s\n", "ID", "NAME", "GOLD", "DIAMONDS")
		for _, r := range rewards {
			c.io.Printf("%-8d %-24s %-10d %-10d\n", r.RewardID, r.Name, r.Gold, r.Diamonds)
		}
	case "skins":
		skins, err := c.apiClient.ListSkins(ctx)
		if err != nil {
			return err
		}
		c.io.Printf("%-8s %-24s %-10s\n", "ID", "NAME", "PRICE")
		for _, s := range skins {
			c.io.Printf("%-8d %-24s %-10d\n", s.SkinID, s.Name, s.Price)
		}
	case "players":
		players, err := c.apiClient.ListPlayers(ctx)
		if err != nil {
			return err
		}
		c.io.Printf("%-38s %-24s %-8s %-10s\n", "ID", "NAME", "LEVEL", "XP")
		for _, p := range players {
			c.io.Printf("%-38s %-24s %-8d %-10d\n", p.PlayerID, p.Name, p.Level, p.XP)
		}
	case "roles":
		roles, err := c.apiClient.ListRoles(ctx)
		if err != nil {
			return err
		}
		c.io.Printf("%-38s %-24s\n", "ID", "NAME")
		for _, r := range roles {
			c.io.Printf("%-38s %-24s\n", r.RoleID, r.Name)
		}
	default:
		return fmt.Errorf("unknown entity %q (one of: %s)", args[0], strings.Join(entityNames, ", "))
	}
	return nil
}

func (c *Cli) runCreate(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: create <entity> <json>")
	}
	entity, payload := args[0], args[1]

	switch entity {
	case "levels":
		var level pkgapi.Level
		if err := json.Unmarshal([]byte(payload), &level); err != nil {
			return fmt.Errorf("invalid level payload: %w", err)
		}
		created, err := c.apiClient.CreateLevel(ctx, level)
		if err != nil {
			return err
		}
		c.io.Printf("✓ Created level %d (%s)\n", created.LevelID, created.Name)
	case "achievements":
		var a pkgapi.Achievement
		if err := json.Unmarshal([]byte(payload), &a); err != nil {
			return fmt.Errorf("invalid achievement payload: %w", err)
		}
		created, err := c.apiClient.CreateAchievement(ctx, a)
		if err != nil {
			return err
		}
		c.io.Printf("✓ Created achievement %d (%s)\n", created.AchievementID, created.Name)
	case "achievement-types":
		var t pkgapi.AchievementType
		if err := json.Unmarshal([]byte(payload), &t); err != nil {
			return fmt.Errorf("invalid achievement type payload: %w", err)
		}
		created, err := c.apiClient.CreateAchievementType(ctx, t)
		if err != nil {
			return err
		}
		c.io.Printf("✓ Created achievement type %d (%s)\n", created.TypeID, created.Name)
	case "rewards":
		var r pkgapi.Reward
		if err := json.Unmarshal([]byte(payload), &r); err != nil {
			return fmt.Errorf("invalid reward payload: %w", err)
		}
		created, err := c.apiClient.CreateReward(ctx, r)
		if err != nil {
			return err
		}
		c.io.Printf("✓ Created reward %d (%s)\n", created.RewardID, created.Name)
	case "skins":
		var skin pkgapi.Skin
		if err := json.Unmarshal([]byte(payload), &skin); err != nil {
			return fmt.Errorf("invalid skin payload: %w", err)
		}
		created, err := c.apiClient.CreateSkin(ctx, skin)
		if err != nil {
			return err
		}
		c.io.Printf("✓ Created skin %d (%s)\n", created.SkinID, created.Name)
	default:
		return fmt.Errorf("entity %q does not support create", entity)
	}
	return nil
}

func (c *Cli) runUpdate(ctx context.Context, args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("usage: update <entity> <id> <json>")
	}
	entity, payload := args[0], args[2]

	id, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid id %q: %w", args[1], err)
	}

	switch entity {
	case "levels":
		var level pkgapi.Level
		if err := json.Unmarshal([]byte(payload), &level); err != nil {
			return fmt.Errorf("invalid level payload: %w", err)
		}
		if err := c.apiClient.UpdateLevel(ctx, id, level); err != nil {
			return err
		}
	case "achievements":
		var a pkgapi.Achievement
		if err := json.Unmarshal([]byte(payload), &a); err != nil {
			return fmt.Errorf("invalid achievement payload: %w", err)
		}
		if err := c.apiClient.UpdateAchievement(ctx, id, a); err != nil {
			return err
		}
	case "skins":
		var skin pkgapi.Skin
		if err := json.Unmarshal([]byte(payload), &skin); err != nil {
			return fmt.Errorf("invalid skin payload: %w", err)
		}
		if err := c.apiClient.UpdateSkin(ctx, id, skin); err != nil {
			return err
		}
	default:
		return fmt.Errorf("entity %q does not support update", entity)
	}

	c.io.Printf("✓ Updated %s %d\n", entity, id)
	return nil
}

func (c *Cli) runDelete(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: delete <entity> <id>")
	}
	entity := args[0]

	// Игроки адресуются строковым ID, остальные сущности — числовым
	if entity == "players" {
		if err := c.apiClient.DeletePlayer(ctx, args[1]); err != nil {
			return err
		}
		c.io.Printf("✓ Deleted player %s\n", args[1])
		return nil
	}

	id, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid id %q: %w", args[1], err)
	}

	switch entity {
	case "levels":
		err = c.apiClient.DeleteLevel(ctx, id)
	case "achievements":
		err = c.apiClient.DeleteAchievement(ctx, id)
	case "achievement-types":
		err = c.apiClient.DeleteAchievementType(ctx, id)
	case "rewards":
		err = c.apiClient.DeleteReward(ctx, id)
	case "skins":
		err = c.apiClient.DeleteSkin(ctx, id)
	default:
		return fmt.Errorf("entity %q does not support delete", entity)
	}
	if err != nil {
		return err
	}

	c.io.Printf("✓ Deleted %s %d\n", entity, id)
	return nil
}
