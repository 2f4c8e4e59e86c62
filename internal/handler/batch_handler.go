package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gpcaffidavit/internal/domain"
	"gpcaffidavit/internal/service"
)

// BatchHandler handles multi-file uploads.
type BatchHandler struct {
	batches service.BatchService
}

// NewBatchHandler creates a new BatchHandler.
func NewBatchHandler(batches service.BatchService) *BatchHandler {
	return &BatchHandler{batches: batches}
}

// Process handles POST /api/v1/batches
// @Summary Generate affidavits for a batch of GPCs
// @Description Processes every uploaded PDF in order, one affidavit per defendant, and returns a zip with the affidavits and manifest.xlsx. Files that fail are listed in the manifest and do not stop the batch. Pass format=json for a summary instead of the zip.
// @Tags affidavits
// @Accept multipart/form-data
// @Produce application/zip
// @Produce json
// @Param pdfs formData file true "GPC PDFs (repeat the field)"
// @Param format query string false "Set to json for a summary"
// @Success 200 {file} file "Zip bundle"
// @Failure 400 {object} ErrorBody "No files or too many files"
// @Failure 413 {object} ErrorBody "Upload too large"
// @Security BearerAuth
// @Router /batches [post]
func (h *BatchHandler) Process(c *gin.Context) {
	files, err := readBatchFiles(c)
	if err != nil {
		HandleError(c, err)
		return
	}

	result, err := h.batches.Process(c.Request.Context(), files)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("X-Batch-ID", result.ID.String())
	c.Header("X-Batch-Total", strconv.Itoa(result.Counts.Total))
	c.Header("X-Batch-Completed", strconv.Itoa(result.Counts.Completed))
	c.Header("X-Batch-Failed", strconv.Itoa(result.Counts.Failed))
	if result.BundleURL != "" {
		c.Header("X-Batch-Bundle-URL", result.BundleURL)
	}

	if c.Query("format") == "json" {
		c.JSON(http.StatusOK, BatchSummary{
			ID:        result.ID.String(),
			Counts:    result.Counts,
			Items:     result.Items,
			BundleURL: result.BundleURL,
		})
		return
	}

	attachment(c, "affidavits_"+result.ID.String()+".zip")
	c.Data(http.StatusOK, "application/zip", result.Bundle)
}

func readBatchFiles(c *gin.Context) ([]service.BatchFile, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, formError(err)
	}
	headers := form.File["pdfs"]
	if len(headers) == 0 {
		return nil, domain.ErrEmptyBatch
	}

	files := make([]service.BatchFile, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return nil, formError(err)
		}
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			return nil, formError(err)
		}
		files = append(files, service.BatchFile{FileName: fh.Filename, Data: data})
	}
	return files, nil
}
