package handler

import (
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Aashish23092/statement-parser/dto"
	"github.com/Aashish23092/statement-parser/service"
)

type ExtractHandler struct {
	extractionService *service.ExtractionService
}

func NewExtractHandler(extractionService *service.ExtractionService) *ExtractHandler {
	return &ExtractHandler{
		extractionService: extractionService,
	}
}

// ExtractText handles POST /statements/extract: raw recovered text in, an
// extraction result out. Extraction itself never fails; only malformed
// requests are rejected.
func (h *ExtractHandler) ExtractText(c *gin.Context) {
	var request dto.ExtractionRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := request.Validate(); err != nil {
		h.sendError(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	log.Printf("Extracting from text (%d chars, filename=%q)", len(request.Text), request.Filename)
	result := h.extractionService.ExtractFromText(request.ToRawText(), request.Filename)

	c.JSON(http.StatusOK, dto.ExtractionResponse{
		Result:      result,
		ProcessedAt: time.Now().Format(time.RFC3339),
	})
}

// ExtractFile handles POST /statements/extract-file: a PDF or image upload
// routed through the PDF/OCR collaborators before extraction.
func (h *ExtractHandler) ExtractFile(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "No file provided", err)
		return
	}
	password := c.PostForm("password")

	f, err := fileHeader.Open()
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "Failed to open uploaded file", err)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "Failed to read uploaded file", err)
		return
	}

	log.Printf("Extracting from file %s (%d bytes)", fileHeader.Filename, len(data))
	result, err := h.extractionService.ExtractFromFile(data, fileHeader.Filename, password)
	if err != nil {
		h.sendError(c, http.StatusInternalServerError, "Failed to process file", err)
		return
	}

	c.JSON(http.StatusOK, dto.ExtractionResponse{
		Result:      result,
		ProcessedAt: time.Now().Format(time.RFC3339),
	})
}

// sendError sends a structured error response
func (h *ExtractHandler) sendError(c *gin.Context, statusCode int, message string, err error) {
	errorMsg := message
	if err != nil {
		errorMsg = err.Error()
		log.Printf("Error: %s - %v", message, err)
	}

	c.JSON(statusCode, dto.ErrorResponse{
		Error:   "EXTRACTION_FAILED",
		Message: errorMsg,
		Code:    statusCode,
	})
}
