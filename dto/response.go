package dto

import "errors"

// Custom errors
var (
	ErrNoFilesProvided = errors.New("at least one receipt image or PDF is required")
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// ReceiptExtractionResponse is the final response structure
type ReceiptExtractionResponse struct {
	Results     []ReceiptFileResult `json:"results"`
	ProcessedAt string              `json:"processed_at"`
}
