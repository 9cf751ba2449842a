package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/portfolio-backend/internal/model"
	"github.com/stemsi/portfolio-backend/internal/response"
	"github.com/stemsi/portfolio-backend/internal/service"
	"github.com/stemsi/portfolio-backend/internal/validator"
)

type ContactHandler struct {
	contactService *service.ContactService
	log            zerolog.Logger
}

func NewContactHandler(contactService *service.ContactService, log zerolog.Logger) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
		log:            log.With().Str("component", "contact_handler").Logger(),
	}
}

// Validate godoc
// POST /api/v1/contact/validate
// Field-level feedback while the visitor is still typing. Always 200 for a
// well-formed body; fields lists the rules currently failing.
func (h *ContactHandler) Validate(c *gin.Context) {
	var req model.ContactRequest
	fields, err := validator.Check(c, &req)
	if err != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrInvalidPayload, validator.TranslateErrors(err))
		return
	}
	if fields == nil {
		fields = map[string]string{}
	}
	response.Success(c, http.StatusOK, gin.H{"valid": len(fields) == 0, "fields": fields})
}

// Submit godoc
// POST /api/v1/contact
func (h *ContactHandler) Submit(c *gin.Context) {
	var req model.ContactRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if _, err := h.contactService.Submit(c.Request.Context(), req, c.ClientIP()); err != nil {
		if errors.Is(err, service.ErrDuplicateSubmission) {
			response.Fail(c, http.StatusConflict, response.ErrDuplicateSubmission)
			return
		}
		h.log.Error().Err(err).Msg("Contact submit failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusAccepted, gin.H{"message": "Thank you! Your message has been received."})
}
