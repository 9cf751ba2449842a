package model

import "time"

// Theme is the persisted colour scheme preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// UpdateThemeRequest is the payload for setting the theme explicitly.
type UpdateThemeRequest struct {
	Theme Theme `json:"theme" binding:"required,oneof=light dark"`
}

// ThemeResponse is returned by every theme endpoint.
type ThemeResponse struct {
	Theme Theme `json:"theme"`
}

// VisitorTokenResponse carries a freshly issued visitor token.
type VisitorTokenResponse struct {
	Token     string    `json:"token"`
	VisitorID string    `json:"visitor_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SiteInfo is public page metadata.
type SiteInfo struct {
	Year         int   `json:"year"`
	DefaultTheme Theme `json:"default_theme"`
}
