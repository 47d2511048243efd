package client

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fatura-ocr/receipt-extraction/dto"
)

func TestParseFieldsJSON(t *testing.T) {
	text := "```json\n{\"date\": \"15.03.2024\", \"amount\": \"118,00\", \"document_number\": \"AB123456\", \"seller_name\": \"ABC TİCARET LTD. ŞTİ.\"}\n```"

	fields, err := parseFieldsJSON(text)

	assert.NoError(t, err)
	assert.Equal(t, "15.03.2024", *fields.Date)
	assert.Equal(t, "118,00", *fields.Amount)
	assert.Equal(t, "AB123456", *fields.DocumentNumber)
	assert.Equal(t, "ABC TİCARET LTD. ŞTİ.", *fields.SellerName)
}

func TestParseFieldsJSONNotFoundMarker(t *testing.T) {
	text := `{"date": "15.03.2024", "amount": "Bulunamadı", "document_number": "", "seller_name": "bulunamadı"}`

	fields, err := parseFieldsJSON(text)

	assert.NoError(t, err)
	assert.Equal(t, "15.03.2024", *fields.Date)
	assert.Nil(t, fields.Amount)
	assert.Nil(t, fields.DocumentNumber)
	assert.Nil(t, fields.SellerName)
}

func TestParseFieldsJSONSurroundingProse(t *testing.T) {
	text := "İşte sonuç:\n{\"date\": \"15.03.2024\"}\nBaşka bir açıklama."

	fields, err := parseFieldsJSON(text)

	assert.NoError(t, err)
	assert.Equal(t, "15.03.2024", *fields.Date)
}

func TestParseFieldsJSONNoObject(t *testing.T) {
	_, err := parseFieldsJSON("üzgünüm, metinde bilgi bulamadım")
	assert.Error(t, err)
}

func TestBuildEnrichmentPromptCarriesRegexResults(t *testing.T) {
	fields := dto.ReceiptFields{Date: strPtr("15.03.2024")}

	prompt := buildEnrichmentPrompt("Toplam: 118,00 TL", fields)

	assert.True(t, strings.Contains(prompt, "15.03.2024"))
	assert.True(t, strings.Contains(prompt, "Toplam: 118,00 TL"))
	// unset fields are reported as not found
	assert.True(t, strings.Contains(prompt, notFoundMarker))
}

func strPtr(s string) *string { return &s }
