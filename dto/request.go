package dto

import (
	"mime/multipart"
)

// ReceiptExtractionRequest represents the incoming multipart request
type ReceiptExtractionRequest struct {
	Files []*multipart.FileHeader `form:"files[]" binding:"required"`
}

// Validate performs basic validation on the request
func (r *ReceiptExtractionRequest) Validate() error {
	if len(r.Files) == 0 {
		return ErrNoFilesProvided
	}
	return nil
}
