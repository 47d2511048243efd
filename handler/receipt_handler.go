package handler

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fatura-ocr/receipt-extraction/dto"
	"github.com/fatura-ocr/receipt-extraction/service"
)

type ReceiptHandler struct {
	extractService *service.ExtractService
}

func NewReceiptHandler(extractService *service.ExtractService) *ReceiptHandler {
	return &ReceiptHandler{
		extractService: extractService,
	}
}

// ExtractReceipts handles the POST /receipts/extract endpoint
func (h *ReceiptHandler) ExtractReceipts(c *gin.Context) {
	log.Println("Received receipt extraction request")

	form, err := c.MultipartForm()
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "Failed to parse multipart form", err)
		return
	}

	request := &dto.ReceiptExtractionRequest{
		Files: form.File["files[]"],
	}
	if err := request.Validate(); err != nil {
		h.sendError(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	log.Printf("Processing %d files", len(request.Files))

	results := make([]dto.ReceiptFileResult, 0, len(request.Files))
	for _, fileHeader := range request.Files {
		result, err := h.extractService.ExtractReceipt(c.Request.Context(), fileHeader)
		if err != nil {
			h.sendError(c, http.StatusInternalServerError, "Failed to extract receipt fields", err)
			return
		}
		results = append(results, *result)
	}

	log.Println("Receipt extraction completed successfully")
	c.JSON(http.StatusOK, dto.ReceiptExtractionResponse{
		Results:     results,
		ProcessedAt: time.Now().Format(time.RFC3339),
	})
}

// sendError sends a structured error response
func (h *ReceiptHandler) sendError(c *gin.Context, statusCode int, message string, err error) {
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
