package dto

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// ExtractionResponse wraps the extraction result for the API layer
type ExtractionResponse struct {
	Result      *ExtractionResult `json:"result"`
	ProcessedAt string            `json:"processed_at"`
}
