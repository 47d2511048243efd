package client

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/fatura-ocr/receipt-extraction/dto"
)

// minimum line confidence (0-1) for a PaddleOCR detection to be kept
const minLineConfidence = 0.3

// PaddleClient talks to a PaddleOCR REST endpoint (hub serving
// ocr_system). It returns the recognized text plus polygon detections.
type PaddleClient struct {
	apiURL     string
	httpClient *http.Client
}

func NewPaddleClient(apiURL string) *PaddleClient {
	return &PaddleClient{
		apiURL: apiURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type paddleRequest struct {
	Images []string `json:"images"`
}

type paddleLine struct {
	Text       string      `json:"text"`
	Confidence float64     `json:"confidence"`
	TextRegion [][]float64 `json:"text_region"`
}

type paddleResponse struct {
	Results [][]paddleLine `json:"results"`
}

// ExtractText sends an image to the PaddleOCR API and returns the
// recognized text (one line per text region) and the polygon detections.
func (p *PaddleClient) ExtractText(imageData []byte) (string, []dto.Detection, error) {
	payload := paddleRequest{
		Images: []string{base64.StdEncoding.EncodeToString(imageData)},
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return "", nil, fmt.Errorf("failed to marshal request payload: %w", err)
	}

	resp, err := p.httpClient.Post(p.apiURL, "application/json", bytes.NewBuffer(payloadBytes))
	if err != nil {
		return "", nil, fmt.Errorf("failed to call PaddleOCR API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", nil, fmt.Errorf("PaddleOCR API returned status %d: %s", resp.StatusCode, string(body))
	}

	var result paddleResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", nil, fmt.Errorf("failed to decode PaddleOCR response: %w", err)
	}

	var textBuilder strings.Builder
	var detections []dto.Detection
	if len(result.Results) > 0 {
		for _, line := range result.Results[0] {
			if line.Confidence <= minLineConfidence || strings.TrimSpace(line.Text) == "" {
				continue
			}
			textBuilder.WriteString(line.Text)
			textBuilder.WriteString("\n")

			polygon := make([]dto.Point, 0, len(line.TextRegion))
			for _, pt := range line.TextRegion {
				if len(pt) == 2 {
					polygon = append(polygon, dto.Point{X: int(pt[0]), Y: int(pt[1])})
				}
			}
			detections = append(detections, dto.Detection{
				Text: line.Text,
				Box: dto.BoundingBox{
					Kind:    dto.BoxPolygon,
					Polygon: polygon,
				},
				Confidence: line.Confidence,
			})
		}
	}

	text := textBuilder.String()
	if strings.TrimSpace(text) == "" {
		return "", nil, fmt.Errorf("PaddleOCR extracted no text from image")
	}

	log.Printf("PaddleOCR extracted %d characters across %d regions", len(text), len(detections))
	return text, detections, nil
}
