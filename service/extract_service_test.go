package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fatura-ocr/receipt-extraction/dto"
)

func strPtr(s string) *string { return &s }

func TestMergeFieldsRegexWinsOverLLM(t *testing.T) {
	service := &ExtractService{qrDecoder: NewQRDecoder()}

	engines := []dto.EngineResult{
		{
			Engine: "tesseract",
			RegexFields: dto.ReceiptFields{
				Date:   strPtr("15.03.2024"),
				Amount: strPtr("118,00"),
			},
			LLMFields: &dto.ReceiptFields{
				Date:           strPtr("16.03.2024"),
				Amount:         strPtr("100,00"),
				DocumentNumber: strPtr("AB123456"),
			},
		},
	}

	merged := service.mergeFields(engines, "")

	assert.Equal(t, "15.03.2024", *merged.Date)
	assert.Equal(t, "118,00", *merged.Amount)
	// the LLM guess only backfills what the regex pass left unset
	assert.Equal(t, "AB123456", *merged.DocumentNumber)
	assert.Nil(t, merged.SellerName)
}

func TestMergeFieldsEngineOrder(t *testing.T) {
	service := &ExtractService{qrDecoder: NewQRDecoder()}

	engines := []dto.EngineResult{
		{
			Engine:      "tesseract",
			RegexFields: dto.ReceiptFields{Date: strPtr("15.03.2024")},
		},
		{
			Engine: "paddleocr",
			RegexFields: dto.ReceiptFields{
				Date:       strPtr("99.99.9999"),
				SellerName: strPtr("ABC TİCARET LTD. ŞTİ."),
			},
		},
	}

	merged := service.mergeFields(engines, "")

	assert.Equal(t, "15.03.2024", *merged.Date)
	assert.Equal(t, "ABC TİCARET LTD. ŞTİ.", *merged.SellerName)
}

func TestMergeFieldsQRBackfillsLast(t *testing.T) {
	service := &ExtractService{qrDecoder: NewQRDecoder()}

	engines := []dto.EngineResult{
		{
			Engine:      "tesseract",
			RegexFields: dto.ReceiptFields{Amount: strPtr("118,00")},
		},
	}
	payload := `{"no":"gib2024000001","tarih":"15.03.2024","toplam":"118.00"}`

	merged := service.mergeFields(engines, payload)

	assert.Equal(t, "118,00", *merged.Amount)
	assert.Equal(t, "15.03.2024", *merged.Date)
	assert.Equal(t, "GIB2024000001", *merged.DocumentNumber)
}

func TestQRDecoderParseFields(t *testing.T) {
	decoder := NewQRDecoder()

	fields := decoder.ParseFields(`{"no":"GIB2024000001","tarih":"15.03.2024","toplam":"100.00","odenecek":"118.00"}`)
	if assert.NotNil(t, fields) {
		assert.Equal(t, "GIB2024000001", *fields.DocumentNumber)
		assert.Equal(t, "15.03.2024", *fields.Date)
		// odenecek (the payable total) is preferred over toplam
		assert.Equal(t, "118.00", *fields.Amount)
	}
}

func TestQRDecoderParseFieldsRejectsNonJSON(t *testing.T) {
	decoder := NewQRDecoder()

	assert.Nil(t, decoder.ParseFields("https://example.com/receipt/123"))
	assert.Nil(t, decoder.ParseFields(`{"vkntckn":"1234567890"}`))
}
