package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/portfolio-backend/internal/model"
	"github.com/stemsi/portfolio-backend/internal/response"
	"github.com/stemsi/portfolio-backend/internal/service"
)

type SiteHandler struct {
	now func() time.Time
}

func NewSiteHandler() *SiteHandler {
	return &SiteHandler{now: time.Now}
}

// Health godoc
// GET /health
func (h *SiteHandler) Health(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"status": "ok"})
}

// GetSiteInfo godoc
// GET /api/v1/public/site
func (h *SiteHandler) GetSiteInfo(c *gin.Context) {
	response.Success(c, http.StatusOK, model.SiteInfo{
		Year:         h.now().Year(),
		DefaultTheme: service.DefaultTheme,
	})
}
