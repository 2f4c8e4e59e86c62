package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gpcaffidavit/internal/domain"
	"gpcaffidavit/internal/handler"
	"gpcaffidavit/internal/service"
	"gpcaffidavit/internal/session"
	"gpcaffidavit/mocks"
)

func batchResult() *service.BatchResult {
	return &service.BatchResult{
		ID: uuid.MustParse("5f0c1a8e-8a57-4f5e-9a43-0d2d0c6f1c11"),
		Items: []session.Item{
			{Index: 0, FileName: "a.pdf", Status: domain.FileStatusCompleted},
			{Index: 1, FileName: "b.pdf", Status: domain.FileStatusError, Error: "extraction failed"},
		},
		Counts:    session.Counts{Total: 2, Completed: 1, Failed: 1},
		Bundle:    []byte("PK zip"),
		BundleURL: "https://bucket.example/batches/affidavits.zip",
	}
}

func TestBatchHandler_Process_Zip(t *testing.T) {
	mockSvc := new(mocks.MockBatchService)
	h := handler.NewBatchHandler(mockSvc)

	mockSvc.On("Process", mock.Anything, mock.MatchedBy(func(files []service.BatchFile) bool {
		return len(files) == 2
	})).Return(batchResult(), nil)

	body, ct := multipartBody(t, "pdfs", map[string][]byte{"a.pdf": []byte("%PDF a"), "b.pdf": []byte("%PDF b")})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/batches", body)
	c.Request.Header.Set("Content-Type", ct)

	h.Process(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/zip", w.Header().Get("Content-Type"))
	assert.Equal(t, "5f0c1a8e-8a57-4f5e-9a43-0d2d0c6f1c11", w.Header().Get("X-Batch-ID"))
	assert.Equal(t, "2", w.Header().Get("X-Batch-Total"))
	assert.Equal(t, "1", w.Header().Get("X-Batch-Completed"))
	assert.Equal(t, "1", w.Header().Get("X-Batch-Failed"))
	assert.Equal(t, "https://bucket.example/batches/affidavits.zip", w.Header().Get("X-Batch-Bundle-URL"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "affidavits_5f0c1a8e-8a57-4f5e-9a43-0d2d0c6f1c11.zip")
	assert.Equal(t, []byte("PK zip"), w.Body.Bytes())
	mockSvc.AssertExpectations(t)
}

func TestBatchHandler_Process_JSON(t *testing.T) {
	mockSvc := new(mocks.MockBatchService)
	h := handler.NewBatchHandler(mockSvc)
	mockSvc.On("Process", mock.Anything, mock.Anything).Return(batchResult(), nil)

	body, ct := multipartBody(t, "pdfs", map[string][]byte{"a.pdf": []byte("%PDF a")})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/batches?format=json", body)
	c.Request.Header.Set("Content-Type", ct)

	h.Process(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var summary handler.BatchSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Equal(t, 2, summary.Counts.Total)
	require.Len(t, summary.Items, 2)
	assert.Equal(t, domain.FileStatusError, summary.Items[1].Status)
	assert.Equal(t, "extraction failed", summary.Items[1].Error)
}

func TestBatchHandler_Process_NoFiles(t *testing.T) {
	mockSvc := new(mocks.MockBatchService)
	h := handler.NewBatchHandler(mockSvc)

	body, ct := multipartBody(t, "other", map[string][]byte{"a.pdf": []byte("%PDF a")})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/batches", body)
	c.Request.Header.Set("Content-Type", ct)

	h.Process(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "EMPTY_BATCH", decodeError(t, w).Code)
	mockSvc.AssertNotCalled(t, "Process", mock.Anything, mock.Anything)
}

func TestBatchHandler_Process_TooManyFiles(t *testing.T) {
	mockSvc := new(mocks.MockBatchService)
	h := handler.NewBatchHandler(mockSvc)
	mockSvc.On("Process", mock.Anything, mock.Anything).Return(nil, domain.ErrTooManyFiles)

	body, ct := multipartBody(t, "pdfs", map[string][]byte{"a.pdf": []byte("%PDF a")})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/batches", bytes.NewReader(body.Bytes()))
	c.Request.Header.Set("Content-Type", ct)

	h.Process(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "TOO_MANY_FILES", decodeError(t, w).Code)
}
