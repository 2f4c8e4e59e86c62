package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"gpcaffidavit/internal/domain"
	"gpcaffidavit/internal/middleware"
	"gpcaffidavit/internal/parser"
)

// ErrorBody is the envelope for every error response.
type ErrorBody struct {
	Error   string `json:"error" example:"failed to extract data from GPC"`
	Code    string `json:"code" example:"EXTRACTION_FAILED"`
	Details string `json:"details,omitempty" example:"claude API returned status 529"`
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg, details string) {
	c.AbortWithStatusJSON(status, ErrorBody{Error: msg, Code: code, Details: details})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	var rle *parser.RateLimitError
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized"
	case errors.Is(err, domain.ErrMissingInput):
		return http.StatusBadRequest, "MISSING_INPUT", "no PDF file or text provided"
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", "unsupported file type; only PDF is accepted"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size"
	case errors.Is(err, domain.ErrInvalidPDF):
		return http.StatusBadRequest, "INVALID_PDF", "file is not a readable PDF"
	case errors.Is(err, domain.ErrInvalidExtraction):
		return http.StatusBadRequest, "INVALID_EXTRACTION", "extracted data does not match expected format"
	case errors.Is(err, domain.ErrInvalidRequest):
		return http.StatusBadRequest, "INVALID_REQUEST", "invalid affidavit request"
	case errors.Is(err, domain.ErrEmptyBatch):
		return http.StatusBadRequest, "EMPTY_BATCH", "no files in batch"
	case errors.Is(err, domain.ErrTooManyFiles):
		return http.StatusBadRequest, "TOO_MANY_FILES", "too many files in batch"
	case errors.As(err, &rle):
		return http.StatusTooManyRequests, "RATE_LIMITED", "extraction provider is rate limited; retry later"
	case errors.Is(err, domain.ErrUnparsableResponse):
		return http.StatusInternalServerError, "UNPARSABLE_RESPONSE", "could not parse JSON from model response"
	case errors.Is(err, domain.ErrExtractionFailed):
		return http.StatusInternalServerError, "EXTRACTION_FAILED", "failed to extract data from GPC"
	case errors.Is(err, domain.ErrTemplateNotFound):
		return http.StatusInternalServerError, "TEMPLATE_NOT_FOUND", "template file not found"
	case errors.Is(err, domain.ErrTemplateRender):
		return http.StatusInternalServerError, "TEMPLATE_RENDER_FAILED", "failed to render affidavit template"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "TIMEOUT", "request timed out"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
// Validation failures always list their fields; 5xx detail is only exposed
// when debug errors are on.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)

	var details string
	var verr *domain.ValidationError
	var rle *parser.RateLimitError
	switch {
	case errors.As(err, &verr):
		details = strings.Join(verr.Fields, ", ")
	case errors.As(err, &rle):
		c.Header("Retry-After", strconv.Itoa(int(rle.RetryAfter.Seconds())))
	}

	if status >= 500 {
		requestID, _ := c.Get(middleware.ContextKeyRequestID)
		log.Printf("[%s] internal error: %v", requestID, err)
		if c.GetBool(middleware.ContextKeyDebugErrors) {
			details = err.Error()
		}
	}
	RespondError(c, status, code, msg, details)
}

// attachment sets Content-Disposition for a download named fileName.
func attachment(c *gin.Context, fileName string) {
	c.Header("Content-Disposition", `attachment; filename="`+strings.ReplaceAll(fileName, `"`, "")+`"`)
}
