package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/portfolio-backend/internal/middleware"
	"github.com/stemsi/portfolio-backend/internal/model"
	"github.com/stemsi/portfolio-backend/internal/response"
	"github.com/stemsi/portfolio-backend/internal/service"
	"github.com/stemsi/portfolio-backend/internal/validator"
)

type PreferenceHandler struct {
	visitorService    *service.VisitorService
	preferenceService *service.PreferenceService
	log               zerolog.Logger
}

func NewPreferenceHandler(visitorService *service.VisitorService, preferenceService *service.PreferenceService, log zerolog.Logger) *PreferenceHandler {
	return &PreferenceHandler{
		visitorService:    visitorService,
		preferenceService: preferenceService,
		log:               log.With().Str("component", "preference_handler").Logger(),
	}
}

// IssueVisitor godoc
// POST /api/v1/visitor
func (h *PreferenceHandler) IssueVisitor(c *gin.Context) {
	token, visitorID, expiresAt, err := h.visitorService.IssueToken()
	if err != nil {
		h.log.Error().Err(err).Msg("Issue visitor token failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusCreated, model.VisitorTokenResponse{
		Token:     token,
		VisitorID: visitorID,
		ExpiresAt: expiresAt,
	})
}

// GetTheme godoc
// GET /api/v1/preferences/theme
func (h *PreferenceHandler) GetTheme(c *gin.Context) {
	claims := middleware.GetClaims(c)

	theme, err := h.preferenceService.GetTheme(c.Request.Context(), claims.VisitorID)
	if err != nil {
		h.log.Error().Err(err).Msg("Get theme failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, model.ThemeResponse{Theme: theme})
}

// SetTheme godoc
// PUT /api/v1/preferences/theme
func (h *PreferenceHandler) SetTheme(c *gin.Context) {
	claims := middleware.GetClaims(c)

	var req model.UpdateThemeRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.preferenceService.SetTheme(c.Request.Context(), claims.VisitorID, req.Theme); err != nil {
		h.log.Error().Err(err).Msg("Set theme failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, model.ThemeResponse{Theme: req.Theme})
}

// ToggleTheme godoc
// POST /api/v1/preferences/theme/toggle
func (h *PreferenceHandler) ToggleTheme(c *gin.Context) {
	claims := middleware.GetClaims(c)

	theme, err := h.preferenceService.ToggleTheme(c.Request.Context(), claims.VisitorID)
	if err != nil {
		h.log.Error().Err(err).Msg("Toggle theme failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, model.ThemeResponse{Theme: theme})
}
