package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/Aashish23092/statement-parser/dto"
	"github.com/Aashish23092/statement-parser/service"
)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	// file collaborators are not exercised by the text endpoint
	h := NewExtractHandler(service.NewExtractionService(nil, nil))

	router := gin.New()
	router.POST("/api/v1/statements/extract", h.ExtractText)
	router.POST("/api/v1/statements/extract-file", h.ExtractFile)
	return router
}

func TestExtractTextMalformedBody(t *testing.T) {
	router := setupTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/statements/extract", strings.NewReader("not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var errResp dto.ErrorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
	assert.Equal(t, "EXTRACTION_FAILED", errResp.Error)
}

func TestExtractTextEmptyRequest(t *testing.T) {
	router := setupTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/statements/extract", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExtractTextSuccess(t *testing.T) {
	router := setupTestRouter()

	body := `{"text": "Form 26AS Annual Tax Statement\nPAN: ABCDE1234F\nTAN: MUMX12345A\nAssessment Year: 2024-25", "filename": "form26as.pdf"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/statements/extract", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.ExtractionResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	if assert.NotNil(t, resp.Result) {
		assert.Equal(t, dto.DocTypeTaxStatement, resp.Result.DocumentType)
		assert.Equal(t, "ABCDE1234F", resp.Result.Header["pan"])
	}
	assert.NotEmpty(t, resp.ProcessedAt)
}

func TestExtractFileMissingUpload(t *testing.T) {
	router := setupTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/statements/extract-file", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
