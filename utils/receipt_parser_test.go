package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseReceipt(t *testing.T) {
	text := `ABC TİCARET LTD. ŞTİ.
Fatura No: AB123456
Tarih: 15.03.2024
Ara Toplam: 100,00 TL
Genel Toplam: 118,00 TL`

	fields := ParseReceipt(text)

	if assert.NotNil(t, fields.Date) {
		assert.Equal(t, "15.03.2024", *fields.Date)
	}
	if assert.NotNil(t, fields.Amount) {
		assert.Equal(t, "118,00", *fields.Amount)
	}
	if assert.NotNil(t, fields.DocumentNumber) {
		assert.Equal(t, "AB123456", *fields.DocumentNumber)
	}
	if assert.NotNil(t, fields.SellerName) {
		assert.Equal(t, "ABC TİCARET LTD. ŞTİ.", *fields.SellerName)
	}
}

func TestParseReceiptEmptyInput(t *testing.T) {
	for _, text := range []string{"", "   \n\t "} {
		fields := ParseReceipt(text)
		assert.Nil(t, fields.Date)
		assert.Nil(t, fields.Amount)
		assert.Nil(t, fields.DocumentNumber)
		assert.Nil(t, fields.SellerName)
	}
}

func TestAmountKeywordPrecedence(t *testing.T) {
	// the keyword-anchored total must beat a larger bare number elsewhere
	text := `Ürün bedeli 999999
Toplam: 150,00 TL`

	fields := ParseReceipt(text)

	if assert.NotNil(t, fields.Amount) {
		assert.Equal(t, "150,00", *fields.Amount)
	}
}

func TestAmountKeywordKeepsLargestTotal(t *testing.T) {
	text := `Ara Toplam: 100,00 TL
KDV Tutar: 18,00 TL
Genel Toplam: 118,00 TL`

	fields := ParseReceipt(text)

	if assert.NotNil(t, fields.Amount) {
		assert.Equal(t, "118,00", *fields.Amount)
	}
}

func TestAmountCeilingConfigurable(t *testing.T) {
	text := "12345678,90"

	fields := ParseReceipt(text)
	if assert.NotNil(t, fields.Amount) {
		assert.Equal(t, "12345678,90", *fields.Amount)
	}

	strict := NewReceiptParser(ParserConfig{AmountCeiling: 10_000_000})
	fields = strict.Parse(text)
	assert.Nil(t, fields.Amount)
}

func TestDocumentNumberRejectsLongNumeric(t *testing.T) {
	fields := ParseReceipt("Belge 12345678901234567890 tutanağı")
	assert.Nil(t, fields.DocumentNumber)
}

func TestDocumentNumberAcceptsAlphanumeric(t *testing.T) {
	fields := ParseReceipt("Kod AB123456 uyarınca")
	if assert.NotNil(t, fields.DocumentNumber) {
		assert.Equal(t, "AB123456", *fields.DocumentNumber)
	}
}

func TestDocumentNumberLowercaseWithoutKeyword(t *testing.T) {
	// letter-prefixed series are matched case-insensitively even with no label
	fields := ParseReceipt("Ref ab123456 geçerli")
	if assert.NotNil(t, fields.DocumentNumber) {
		assert.Equal(t, "AB123456", *fields.DocumentNumber)
	}
}

func TestDocumentNumberUpperCased(t *testing.T) {
	fields := ParseReceipt("Fatura No: ab-123456")
	if assert.NotNil(t, fields.DocumentNumber) {
		assert.Equal(t, "AB-123456", *fields.DocumentNumber)
	}
}

func TestDocumentNumberLengthConfigurable(t *testing.T) {
	text := "Fiş No: 1234567890123456"

	fields := ParseReceipt(text)
	if assert.NotNil(t, fields.DocumentNumber) {
		assert.Equal(t, "1234567890123456", *fields.DocumentNumber)
	}

	strict := NewReceiptParser(ParserConfig{MaxNumericDocumentNumberLength: 15})
	fields = strict.Parse(text)
	assert.Nil(t, fields.DocumentNumber)
}

func TestSellerNameHeaderRestriction(t *testing.T) {
	filler := []string{
		"Fiş",
		"Kasa 3",
		"Tarih 15.03.2024",
		"Saat 14:05",
		"Masa 12",
	}

	// company name on line 6 of a 10-line document is outside the header
	lines := append(append([]string{}, filler...), "XYZ GIDA LTD. ŞTİ.", "", "", "", "")
	fields := ParseReceipt(strings.Join(lines, "\n"))
	assert.Nil(t, fields.SellerName)

	// the same name on line 2 is selected
	lines = append([]string{"Fiş", "XYZ GIDA LTD. ŞTİ."}, filler...)
	fields = ParseReceipt(strings.Join(lines, "\n"))
	if assert.NotNil(t, fields.SellerName) {
		assert.Equal(t, "XYZ GIDA LTD. ŞTİ.", *fields.SellerName)
	}
}

func TestSellerNameSkipsBranchAndTaxOfficeLines(t *testing.T) {
	text := `DEF MARKET A.Ş. KADIKÖY ŞUBESİ
DEF MARKET TİCARET A.Ş.
Fatura No: DM123456`

	fields := ParseReceipt(text)

	if assert.NotNil(t, fields.SellerName) {
		assert.Equal(t, "DEF MARKET TİCARET A.Ş.", *fields.SellerName)
	}
}

func TestSellerNameRejectsAddressLines(t *testing.T) {
	// a candidate starting with an address marker is an address, not a name
	text := `CAD. GIDA MARKET LTD. ŞTİ.
Tarih: 15.03.2024`

	fields := ParseReceipt(text)
	assert.Nil(t, fields.SellerName)
}

func TestSellerNameAllowsEmbeddedAddressMarker(t *testing.T) {
	// street names inside a registered company name must not disqualify it
	text := `GÜZEL CAD. MARKET LTD. ŞTİ.
Tarih: 15.03.2024`

	fields := ParseReceipt(text)
	if assert.NotNil(t, fields.SellerName) {
		assert.Equal(t, "GÜZEL CAD. MARKET LTD. ŞTİ.", *fields.SellerName)
	}
}

func TestDateFirstPatternWins(t *testing.T) {
	// the day-first pattern outranks the month-name pattern
	text := "Sipariş 1 Ocak 2024, teslim 15.03.2024"

	fields := ParseReceipt(text)
	if assert.NotNil(t, fields.Date) {
		assert.Equal(t, "15.03.2024", *fields.Date)
	}
}

func TestDateYearFirstPattern(t *testing.T) {
	fields := ParseReceipt("Tarih: 2024-03-15")
	if assert.NotNil(t, fields.Date) {
		assert.Equal(t, "2024-03-15", *fields.Date)
	}
}

func TestDateMonthNamePattern(t *testing.T) {
	fields := ParseReceipt("Düzenlenme: 5 Ocak 2024")
	if assert.NotNil(t, fields.Date) {
		assert.Equal(t, "5 Ocak 2024", *fields.Date)
	}
}
