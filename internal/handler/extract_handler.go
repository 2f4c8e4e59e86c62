package handler

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"gpcaffidavit/internal/domain"
	"gpcaffidavit/internal/service"
)

// ExtractHandler handles GPC extraction.
type ExtractHandler struct {
	extraction service.ExtractionService
}

// NewExtractHandler creates a new ExtractHandler.
func NewExtractHandler(extraction service.ExtractionService) *ExtractHandler {
	return &ExtractHandler{extraction: extraction}
}

// Extract handles POST /api/v1/extract
// @Summary Extract case details from a GPC
// @Description Reads a General Procedure Claim PDF (multipart field "pdf") or previously extracted text (JSON) and returns the case number, claimant and defendants.
// @Tags extraction
// @Accept multipart/form-data
// @Accept json
// @Produce json
// @Param pdf formData file false "GPC PDF"
// @Param body body ExtractTextRequest false "Text already read from the GPC"
// @Success 200 {object} domain.ExtractedCase
// @Failure 400 {object} ErrorBody "Missing input, non-PDF upload or invalid extraction"
// @Failure 413 {object} ErrorBody "File too large"
// @Failure 429 {object} ErrorBody "Extraction provider rate limited"
// @Failure 500 {object} ErrorBody "Extraction failed"
// @Security BearerAuth
// @Router /extract [post]
func (h *ExtractHandler) Extract(c *gin.Context) {
	input, err := readExtractInput(c)
	if err != nil {
		HandleError(c, err)
		return
	}

	result, err := h.extraction.Extract(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func readExtractInput(c *gin.Context) (*service.ExtractInput, error) {
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		file, header, err := c.Request.FormFile("pdf")
		if err != nil {
			return nil, formError(err)
		}
		defer func() { _ = file.Close() }()

		data, err := io.ReadAll(file)
		if err != nil {
			return nil, formError(err)
		}
		return &service.ExtractInput{FileName: header.Filename, Data: data}, nil
	}

	var req ExtractTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, formError(err)
	}
	return &service.ExtractInput{FileName: req.FileName, Text: req.Text}, nil
}

// formError classifies a failure to read the request body.
func formError(err error) error {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge), errors.Is(err, multipart.ErrMessageTooLarge):
		return fmt.Errorf("%w: %v", domain.ErrFileTooLarge, err)
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, io.EOF):
		return domain.ErrMissingInput
	default:
		return fmt.Errorf("%w: %v", domain.ErrMissingInput, err)
	}
}
