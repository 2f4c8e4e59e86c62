package handler

import (
	"encoding/base64"
	"net/http"

	"github.com/gin-gonic/gin"

	"gpcaffidavit/internal/domain"
	"gpcaffidavit/internal/service"
)

// AffidavitHandler handles affidavit generation.
type AffidavitHandler struct {
	affidavits service.AffidavitService
}

// NewAffidavitHandler creates a new AffidavitHandler.
func NewAffidavitHandler(affidavits service.AffidavitService) *AffidavitHandler {
	return &AffidavitHandler{affidavits: affidavits}
}

// Generate handles POST /api/v1/generate
// @Summary Generate an Affidavit of Service
// @Description Fills the Affidavit of Service template for one defendant. Pass encoding=base64 for a base64 body.
// @Tags affidavits
// @Accept json
// @Produce application/vnd.openxmlformats-officedocument.wordprocessingml.document
// @Param body body domain.AffidavitRequest true "Case details and the defendant served"
// @Param encoding query string false "Set to base64 to receive a base64-encoded body"
// @Success 200 {file} file "Affidavit .docx"
// @Failure 400 {object} ErrorBody "Invalid request"
// @Failure 500 {object} ErrorBody "Template missing or render failed"
// @Security BearerAuth
// @Router /generate [post]
func (h *AffidavitHandler) Generate(c *gin.Context) {
	var req domain.AffidavitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body", err.Error())
		return
	}

	doc, err := h.affidavits.Generate(c.Request.Context(), &req)
	if err != nil {
		HandleError(c, err)
		return
	}

	attachment(c, doc.FileName)
	if c.Query("encoding") == "base64" {
		c.Header("Content-Transfer-Encoding", "base64")
		c.Data(http.StatusOK, domain.ContentTypeDocx, []byte(base64.StdEncoding.EncodeToString(doc.Content)))
		return
	}
	c.Data(http.StatusOK, domain.ContentTypeDocx, doc.Content)
}
