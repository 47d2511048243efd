package client

import (
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/otiai10/gosseract/v2"

	"github.com/fatura-ocr/receipt-extraction/dto"
)

// minimum word confidence (0-100) for a detection to be kept
const minWordConfidence = 20

type TesseractClient struct {
	dataPath string
	language string
}

func NewTesseractClient(dataPath, language string) *TesseractClient {
	return &TesseractClient{
		dataPath: dataPath,
		language: language,
	}
}

// ExtractFromFile runs OCR over an uploaded file and returns the full text,
// the word-level detections and the average word confidence (0-100).
func (tc *TesseractClient) ExtractFromFile(fileHeader *multipart.FileHeader) (string, []dto.Detection, float64, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", nil, 0, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	tempFile, err := tc.CreateTempFile(file, fileHeader.Filename)
	if err != nil {
		return "", nil, 0, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tempFile)

	return tc.ExtractFromImagePath(tempFile)
}

// ExtractFromImagePath runs OCR over an image on disk.
func (tc *TesseractClient) ExtractFromImagePath(imagePath string) (string, []dto.Detection, float64, error) {
	ocr := gosseract.NewClient()
	defer ocr.Close()

	ocr.SetTessdataPrefix(tc.dataPath)

	if err := ocr.SetLanguage(tc.language); err != nil {
		return "", nil, 0, fmt.Errorf("failed to set language: %w", err)
	}
	if err := ocr.SetImage(imagePath); err != nil {
		return "", nil, 0, fmt.Errorf("failed to set image: %w", err)
	}

	text, err := ocr.Text()
	if err != nil {
		return "", nil, 0, fmt.Errorf("failed to extract text: %w", err)
	}

	boxes, err := ocr.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		// detections are best-effort; the text alone is still usable
		return text, nil, 0, nil
	}

	var detections []dto.Detection
	var totalConf float64
	var count int
	for _, box := range boxes {
		totalConf += box.Confidence
		count++

		if box.Confidence <= minWordConfidence || box.Word == "" {
			continue
		}
		detections = append(detections, dto.Detection{
			Text: box.Word,
			Box: dto.BoundingBox{
				Kind: dto.BoxRect,
				Rect: &dto.Rect{
					X:      box.Box.Min.X,
					Y:      box.Box.Min.Y,
					Width:  box.Box.Dx(),
					Height: box.Box.Dy(),
				},
			},
			Confidence: box.Confidence / 100,
		})
	}

	avgConf := 0.0
	if count > 0 {
		avgConf = totalConf / float64(count)
	}

	return text, detections, avgConf, nil
}

// CreateTempFile creates a temporary file from uploaded content
func (tc *TesseractClient) CreateTempFile(file multipart.File, filename string) (string, error) {
	ext := filepath.Ext(filename)
	tempFile, err := os.CreateTemp("", "ocr-*"+ext)
	if err != nil {
		return "", err
	}
	defer tempFile.Close()

	if _, err := io.Copy(tempFile, file); err != nil {
		os.Remove(tempFile.Name())
		return "", err
	}

	return tempFile.Name(), nil
}

// Close performs cleanup
func (tc *TesseractClient) Close() {
	log.Println("Tesseract client closed")
}
