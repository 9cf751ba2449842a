package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/portfolio-backend/internal/gpa"
	"github.com/stemsi/portfolio-backend/internal/importer"
	"github.com/stemsi/portfolio-backend/internal/model"
	"github.com/stemsi/portfolio-backend/internal/response"
	"github.com/stemsi/portfolio-backend/internal/service"
	"github.com/stemsi/portfolio-backend/internal/validator"
)

// GPAHandler serves the stateless GPA calculator endpoints.
type GPAHandler struct {
	gpaService     *service.GPAService
	maxUploadBytes int64
	log            zerolog.Logger
}

func NewGPAHandler(gpaService *service.GPAService, maxUploadBytes int64, log zerolog.Logger) *GPAHandler {
	return &GPAHandler{
		gpaService:     gpaService,
		maxUploadBytes: maxUploadBytes,
		log:            log.With().Str("component", "gpa_handler").Logger(),
	}
}

// GetScale godoc
// GET /api/v1/gpa/scale
func (h *GPAHandler) GetScale(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"scale": h.gpaService.Scale()})
}

// Calculate godoc
// POST /api/v1/gpa/calculate
func (h *GPAHandler) Calculate(c *gin.Context) {
	var req model.CalculateGPARequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrInvalidPayload, fields)
		return
	}

	res, err := h.gpaService.Calculate(c.Request.Context(), req.Courses)
	h.writeResult(c, res, err, service.ValidationFields)
}

// Import godoc
// POST /api/v1/gpa/import
// Accepts a multipart "file" field holding an .xlsx sheet of course rows.
func (h *GPAHandler) Import(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)

	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Fail(c, http.StatusRequestEntityTooLarge, response.ErrFileTooLarge)
			return
		}
		response.Fail(c, http.StatusBadRequest, response.ErrFileRequired)
		return
	}

	f, err := header.Open()
	if err != nil {
		h.log.Error().Err(err).Msg("Open uploaded sheet failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	defer f.Close()

	res, err := h.gpaService.Import(c.Request.Context(), f)
	h.writeResult(c, res, err, service.SheetValidationFields)
}

// writeResult maps engine and import errors to response codes. fields renders
// validation errors for the input shape the caller accepted.
func (h *GPAHandler) writeResult(c *gin.Context, res gpa.Result, err error, fields func(error) map[string]string) {
	switch {
	case err == nil:
		response.Success(c, http.StatusOK, model.NewGPAResponse(res))
	case errors.Is(err, gpa.ErrEmptyBatch):
		response.Fail(c, http.StatusBadRequest, response.ErrEmptyBatch)
	case errors.Is(err, gpa.ErrValidation):
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields(err))
	case errors.Is(err, importer.ErrInvalidSpreadsheet), errors.Is(err, importer.ErrNoSheet):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidSpreadsheet)
	default:
		h.log.Error().Err(err).Msg("GPA calculation failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
