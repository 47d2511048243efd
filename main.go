package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/fatura-ocr/receipt-extraction/client"
	"github.com/fatura-ocr/receipt-extraction/config"
	"github.com/fatura-ocr/receipt-extraction/handler"
	"github.com/fatura-ocr/receipt-extraction/service"
	"github.com/fatura-ocr/receipt-extraction/utils"
)

func main() {
	// Initialize configuration
	cfg := config.LoadConfig()

	// Initialize OCR clients
	tesseractClient := client.NewTesseractClient(cfg.TesseractDataPath, cfg.TesseractLanguage)
	defer tesseractClient.Close()

	paddleClient := client.NewPaddleClient(cfg.PaddleAPIURL)

	// Gemini enrichment is optional: without an API key extraction runs
	// on the regex pass alone
	var geminiClient *client.GeminiClient
	if cfg.GeminiAPIKey != "" {
		var err error
		geminiClient, err = client.NewGeminiClient(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Printf("Gemini client could not be configured, enrichment disabled: %v", err)
		} else {
			defer geminiClient.Close()
		}
	} else {
		log.Println("GEMINI_API_KEY not set, LLM enrichment disabled")
	}

	// Initialize PDF processor and QR decoder
	pdfProcessor := service.NewPDFProcessor()
	qrDecoder := service.NewQRDecoder()

	// Initialize the field extraction core
	parser := utils.NewReceiptParser(utils.ParserConfig{
		MaxNumericDocumentNumberLength: cfg.MaxNumericDocNoLength,
		AmountCeiling:                  cfg.AmountCeiling,
	})

	// Initialize service layer
	extractService := service.NewExtractService(tesseractClient, paddleClient, geminiClient, pdfProcessor, qrDecoder, parser)

	// Initialize handler layer
	receiptHandler := handler.NewReceiptHandler(extractService)

	// Setup Gin router
	router := gin.Default()

	// Configure max multipart memory (32 MB)
	router.MaxMultipartMemory = 32 << 20

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "Receipt Field Extraction",
		})
	})

	// API routes
	api := router.Group("/api/v1")
	{
		receipts := api.Group("/receipts")
		{
			receipts.POST("/extract", receiptHandler.ExtractReceipts)
		}
	}

	// Start server
	log.Printf("Starting Receipt Field Extraction Service on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
