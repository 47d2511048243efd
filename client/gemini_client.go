package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/fatura-ocr/receipt-extraction/dto"
)

const notFoundMarker = "Bulunamadı"

// GeminiClient produces an independent second guess of the receipt fields.
// It consumes the same OCR text as the regex pass plus the regex results,
// and the caller decides how the two records are merged.
type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiClient(ctx context.Context, apiKey, modelName string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if modelName == "" {
		modelName = "gemini-1.5-flash-latest"
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		model:  client.GenerativeModel(modelName),
	}, nil
}

// EnrichFields asks the model for its own best-guess record over the OCR
// text. The regex extractions are included in the prompt as hints but the
// model is told to rely on the text first.
func (g *GeminiClient) EnrichFields(ctx context.Context, ocrText string, regexFields dto.ReceiptFields) (*dto.ReceiptFields, error) {
	if strings.TrimSpace(ocrText) == "" {
		return nil, fmt.Errorf("ocr text is empty")
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	prompt := buildEnrichmentPrompt(ocrText, regexFields)

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("generating content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no response from gemini")
	}

	var responseText strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			responseText.WriteString(string(text))
		}
	}

	fields, err := parseFieldsJSON(responseText.String())
	if err != nil {
		return nil, fmt.Errorf("parsing gemini response: %w", err)
	}
	return fields, nil
}

// Close closes the Gemini client
func (g *GeminiClient) Close() error {
	return g.client.Close()
}

func buildEnrichmentPrompt(ocrText string, regexFields dto.ReceiptFields) string {
	return fmt.Sprintf(`Bir OCR çıktısından bilgi çıkarımı yapacaksın. Bu metin Türkçe bir fatura, fiş veya benzeri bir belgeye ait olabilir.
Belge üzerindeki şu temel bilgileri tespit et:
1. Tarih (belgenin düzenlenme tarihi, GG.AA.YYYY formatına yakın olmalı)
2. Toplam Tutar (KDV dahil genel toplam; metindeki en olası "Toplam Tutar" değerini bul)
3. Belge Numarası (Fatura No, Fiş No, Seri No gibi benzersiz tanımlayıcı)
4. Satıcı Adı/Ünvanı (genellikle belgenin üst kısmında; A.Ş., LTD., ŞTİ. gibi ifadeler içerebilir)

Daha önce regex ile denenen çıkarımlar:
Tarih: %s
Tutar: %s
Belge No: %s
Satıcı Adı: %s

OCR metni:
--- METIN BAŞLANGICI ---
%s
--- METIN SONU ---

Regex sonuçlarını dikkate al ama öncelikle metne odaklan. Yalnızca şu JSON'u döndür, başka hiçbir açıklama yapma:
{"date": "...", "amount": "...", "document_number": "...", "seller_name": "..."}
Bir bilgi metinde kesin olarak bulunamıyorsa değerini "%s" olarak belirt.`,
		fieldOrMarker(regexFields.Date),
		fieldOrMarker(regexFields.Amount),
		fieldOrMarker(regexFields.DocumentNumber),
		fieldOrMarker(regexFields.SellerName),
		ocrText,
		notFoundMarker,
	)
}

func fieldOrMarker(v *string) string {
	if v == nil || *v == "" {
		return notFoundMarker
	}
	return *v
}

// parseFieldsJSON extracts the JSON object from the model response,
// tolerating markdown code fences and surrounding prose.
func parseFieldsJSON(text string) (*dto.ReceiptFields, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSpace(text)

	startIdx := strings.Index(text, "{")
	if startIdx == -1 {
		return nil, fmt.Errorf("no JSON object found in response")
	}
	endIdx := strings.LastIndex(text, "}")
	if endIdx == -1 || endIdx < startIdx {
		return nil, fmt.Errorf("invalid JSON object in response")
	}
	text = text[startIdx : endIdx+1]

	var raw struct {
		Date           string `json:"date"`
		Amount         string `json:"amount"`
		DocumentNumber string `json:"document_number"`
		SellerName     string `json:"seller_name"`
	}
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("unmarshaling json: %w", err)
	}

	fields := &dto.ReceiptFields{
		Date:           cleanLLMValue(raw.Date),
		Amount:         cleanLLMValue(raw.Amount),
		DocumentNumber: cleanLLMValue(raw.DocumentNumber),
		SellerName:     cleanLLMValue(raw.SellerName),
	}
	return fields, nil
}

func cleanLLMValue(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" || strings.EqualFold(v, notFoundMarker) {
		return nil
	}
	return &v
}
