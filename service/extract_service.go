package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg" // register decoder for uploaded photos
	"image/png"
	"io"
	"log"
	"mime/multipart"
	"os"
	"strings"
	"sync"

	"github.com/fatura-ocr/receipt-extraction/client"
	"github.com/fatura-ocr/receipt-extraction/dto"
	"github.com/fatura-ocr/receipt-extraction/utils"
)

// a PDF text layer shorter than this is treated as a scanned PDF
const minPDFTextLength = 20

// engineOutput is one engine's raw take on a document before field
// extraction runs over it.
type engineOutput struct {
	engine     string
	text       string
	detections []dto.Detection
}

// ExtractService runs the configured OCR engines over an upload, extracts
// the structured fields from each engine's text, optionally enriches the
// result with Gemini and merges everything into one record. All
// collaborators are injected; there are no process-wide engine singletons.
type ExtractService struct {
	tesseractClient *client.TesseractClient
	paddleClient    *client.PaddleClient
	geminiClient    *client.GeminiClient // nil when enrichment is not configured
	pdfProcessor    PDFProcessor
	qrDecoder       *QRDecoder
	parser          *utils.ReceiptParser
}

func NewExtractService(
	tesseractClient *client.TesseractClient,
	paddleClient *client.PaddleClient,
	geminiClient *client.GeminiClient,
	pdfProcessor PDFProcessor,
	qrDecoder *QRDecoder,
	parser *utils.ReceiptParser,
) *ExtractService {
	return &ExtractService{
		tesseractClient: tesseractClient,
		paddleClient:    paddleClient,
		geminiClient:    geminiClient,
		pdfProcessor:    pdfProcessor,
		qrDecoder:       qrDecoder,
		parser:          parser,
	}
}

// ExtractReceipt processes one uploaded receipt/invoice file end to end.
func (s *ExtractService) ExtractReceipt(ctx context.Context, fileHeader *multipart.FileHeader) (*dto.ReceiptFileResult, error) {
	f, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", fileHeader.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", fileHeader.Filename, err)
	}

	var outputs []engineOutput
	var qrPayload string

	isPDF := strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".pdf")
	if isPDF {
		outputs = s.runPDFEngines(data)
	} else {
		outputs = s.runImageEngines(fileHeader, data)
		qrPayload = s.decodeQR(data)
	}

	result := &dto.ReceiptFileResult{
		Filename:  fileHeader.Filename,
		QRPayload: qrPayload,
	}

	for _, out := range outputs {
		regexFields := s.parser.Parse(out.text)

		engineResult := dto.EngineResult{
			Engine:         out.engine,
			TextLength:     len(out.text),
			DetectionCount: len(out.detections),
			RegexFields:    regexFields,
		}

		if s.geminiClient != nil && strings.TrimSpace(out.text) != "" {
			llmFields, err := s.geminiClient.EnrichFields(ctx, out.text, regexFields)
			if err != nil {
				log.Printf("Gemini enrichment failed for %s (%s): %v", fileHeader.Filename, out.engine, err)
			} else {
				engineResult.LLMFields = llmFields
			}
		}

		result.Engines = append(result.Engines, engineResult)
	}

	result.Fields = s.mergeFields(result.Engines, qrPayload)
	return result, nil
}

// runImageEngines fans out over the image OCR engines concurrently; each
// engine's failure is logged and skipped rather than failing the upload.
func (s *ExtractService) runImageEngines(fileHeader *multipart.FileHeader, data []byte) []engineOutput {
	var outputs []engineOutput
	var mu sync.Mutex
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		text, detections, conf, err := s.tesseractClient.ExtractFromFile(fileHeader)
		if err != nil {
			log.Printf("Tesseract OCR failed for %s: %v", fileHeader.Filename, err)
			return
		}
		log.Printf("Tesseract extracted %d characters from %s (avg confidence %.1f)", len(text), fileHeader.Filename, conf)
		mu.Lock()
		outputs = append(outputs, engineOutput{engine: "tesseract", text: text, detections: detections})
		mu.Unlock()
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		text, detections, err := s.paddleClient.ExtractText(data)
		if err != nil {
			log.Printf("PaddleOCR failed for %s: %v", fileHeader.Filename, err)
			return
		}
		mu.Lock()
		outputs = append(outputs, engineOutput{engine: "paddleocr", text: text, detections: detections})
		mu.Unlock()
	}()

	wg.Wait()
	return outputs
}

// runPDFEngines tries the PDF text layer first and falls back to OCR over
// the extracted page images when the layer is absent or too thin.
func (s *ExtractService) runPDFEngines(data []byte) []engineOutput {
	text, err := s.pdfProcessor.ExtractText(data, "")
	if err != nil {
		log.Printf("PDF text extraction failed: %v", err)
	}
	if len(strings.TrimSpace(text)) >= minPDFTextLength {
		return []engineOutput{{engine: "pdf-text", text: text}}
	}

	log.Println("PDF seems to be scanned or has minimal text, attempting image-based OCR")
	images, err := s.pdfProcessor.ExtractImages(data, "")
	if err != nil || len(images) == 0 {
		log.Printf("Failed to extract images from PDF: %v", err)
		return nil
	}

	var combined strings.Builder
	var detections []dto.Detection
	for _, img := range images {
		pageText, pageDetections, err := s.ocrImage(img)
		if err != nil {
			log.Printf("OCR failed for a PDF page: %v", err)
			continue
		}
		combined.WriteString(pageText)
		combined.WriteString("\n")
		detections = append(detections, pageDetections...)
	}

	if strings.TrimSpace(combined.String()) == "" {
		return nil
	}
	return []engineOutput{{engine: "pdf-ocr", text: combined.String(), detections: detections}}
}

// ocrImage runs PaddleOCR first and falls back to Tesseract.
func (s *ExtractService) ocrImage(img image.Image) (string, []dto.Detection, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", nil, fmt.Errorf("failed to encode image: %w", err)
	}

	text, detections, err := s.paddleClient.ExtractText(buf.Bytes())
	if err == nil && len(strings.TrimSpace(text)) > 10 {
		return text, detections, nil
	}

	tempFile, err := saveImageToTempFile(img)
	if err != nil {
		return "", nil, err
	}
	defer os.Remove(tempFile)

	text, detections, _, err = s.tesseractClient.ExtractFromImagePath(tempFile)
	if err != nil {
		return "", nil, err
	}
	return text, detections, nil
}

// decodeQR attempts to read an e-invoice QR code from the uploaded image.
func (s *ExtractService) decodeQR(data []byte) string {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return ""
	}
	payload, err := s.qrDecoder.Decode(img)
	if err != nil {
		return ""
	}
	return payload
}

// mergeFields assembles the final record. Regex extractions win in engine
// order, LLM guesses backfill remaining gaps, QR payload data fills last.
func (s *ExtractService) mergeFields(engines []dto.EngineResult, qrPayload string) dto.ReceiptFields {
	var merged dto.ReceiptFields

	for _, engine := range engines {
		fillMissing(&merged, engine.RegexFields)
	}
	for _, engine := range engines {
		if engine.LLMFields != nil {
			fillMissing(&merged, *engine.LLMFields)
		}
	}
	if qrPayload != "" {
		if qrFields := s.qrDecoder.ParseFields(qrPayload); qrFields != nil {
			fillMissing(&merged, *qrFields)
		}
	}

	return merged
}

func fillMissing(dst *dto.ReceiptFields, src dto.ReceiptFields) {
	if dst.Date == nil {
		dst.Date = src.Date
	}
	if dst.Amount == nil {
		dst.Amount = src.Amount
	}
	if dst.DocumentNumber == nil {
		dst.DocumentNumber = src.DocumentNumber
	}
	if dst.SellerName == nil {
		dst.SellerName = src.SellerName
	}
}

// saveImageToTempFile saves an image.Image to a temporary PNG file.
func saveImageToTempFile(img image.Image) (string, error) {
	tempFile, err := os.CreateTemp("", "ocr-img-*.png")
	if err != nil {
		return "", fmt.Errorf("failed to create temp image file: %w", err)
	}
	defer tempFile.Close()

	if err := png.Encode(tempFile, img); err != nil {
		return "", fmt.Errorf("failed to encode image to PNG: %w", err)
	}

	return tempFile.Name(), nil
}
