package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/portfolio-backend/internal/config"
	"github.com/stemsi/portfolio-backend/internal/model"
)

// DefaultTheme is served to visitors without a stored preference.
const DefaultTheme = model.ThemeLight

// PreferenceService stores the theme flag per visitor in Redis.
type PreferenceService struct {
	rdb *redis.Client
	ttl time.Duration
	log zerolog.Logger
}

func NewPreferenceService(rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *PreferenceService {
	return &PreferenceService{
		rdb: rdb,
		ttl: cfg.ThemeTTL,
		log: log.With().Str("component", "preference_service").Logger(),
	}
}

// GetTheme returns the stored theme, or DefaultTheme when none is stored or
// the stored value is unrecognised.
func (s *PreferenceService) GetTheme(ctx context.Context, visitorID string) (model.Theme, error) {
	val, err := s.rdb.Get(ctx, config.CacheKey.VisitorThemeKey(visitorID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return DefaultTheme, nil
		}
		return "", fmt.Errorf("get theme: %w", err)
	}

	switch theme := model.Theme(val); theme {
	case model.ThemeLight, model.ThemeDark:
		return theme, nil
	default:
		s.log.Warn().Str("visitor_id", visitorID).Str("value", val).Msg("Ignoring unknown stored theme")
		return DefaultTheme, nil
	}
}

// SetTheme stores the theme and refreshes its TTL.
func (s *PreferenceService) SetTheme(ctx context.Context, visitorID string, theme model.Theme) error {
	if err := s.rdb.Set(ctx, config.CacheKey.VisitorThemeKey(visitorID), string(theme), s.ttl).Err(); err != nil {
		return fmt.Errorf("set theme: %w", err)
	}
	return nil
}

// ToggleTheme flips the stored theme and returns the new value.
func (s *PreferenceService) ToggleTheme(ctx context.Context, visitorID string) (model.Theme, error) {
	current, err := s.GetTheme(ctx, visitorID)
	if err != nil {
		return "", err
	}
	next := current.Toggle()
	if err := s.SetTheme(ctx, visitorID, next); err != nil {
		return "", err
	}
	return next, nil
}
