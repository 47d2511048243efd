package utils

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/fatura-ocr/receipt-extraction/dto"
)

const (
	// DefaultMaxNumericDocumentNumberLength is the longest purely numeric
	// token still accepted as a document number. Historical revisions of the
	// extraction rules used 15 here; the permissive value is the default and
	// the threshold is configurable to keep the discrepancy testable.
	DefaultMaxNumericDocumentNumberLength = 18

	// DefaultAmountCeiling bounds bare-number amount candidates, rejecting
	// OCR garbage such as a full digit run read as one number. The stricter
	// historical value was 10,000,000.
	DefaultAmountCeiling = 100_000_000

	minNumericDocumentNumberLength = 6

	// seller names appear at the document top; only this many leading lines
	// are scanned
	sellerHeaderLines = 5
)

// ParserConfig carries the tunable extraction thresholds. Zero values fall
// back to the documented defaults.
type ParserConfig struct {
	MaxNumericDocumentNumberLength int
	AmountCeiling                  float64
}

// ReceiptParser extracts the issue date, total amount, document number and
// seller name from raw receipt/invoice OCR text. It holds no mutable state;
// a single parser is safe for concurrent use.
type ReceiptParser struct {
	maxNumericDocNoLen int
	amountCeiling      float64
}

func NewReceiptParser(cfg ParserConfig) *ReceiptParser {
	if cfg.MaxNumericDocumentNumberLength <= 0 {
		cfg.MaxNumericDocumentNumberLength = DefaultMaxNumericDocumentNumberLength
	}
	if cfg.AmountCeiling <= 0 {
		cfg.AmountCeiling = DefaultAmountCeiling
	}
	return &ReceiptParser{
		maxNumericDocNoLen: cfg.MaxNumericDocumentNumberLength,
		amountCeiling:      cfg.AmountCeiling,
	}
}

var defaultParser = NewReceiptParser(ParserConfig{})

// ParseReceipt extracts structured fields from receipt OCR text using the
// default thresholds.
func ParseReceipt(ocrText string) dto.ReceiptFields {
	return defaultParser.Parse(ocrText)
}

// Parse runs the four field extractors over one text blob. It never fails:
// empty or malformed input yields a record with all fields unset, and
// per-candidate normalization failures are swallowed while scanning
// continues.
func (p *ReceiptParser) Parse(ocrText string) dto.ReceiptFields {
	if strings.TrimSpace(ocrText) == "" {
		return dto.ReceiptFields{}
	}
	return dto.ReceiptFields{
		Date:           p.extractDate(ocrText),
		Amount:         p.extractAmount(ocrText),
		DocumentNumber: p.extractDocumentNumber(ocrText),
		SellerName:     p.extractSellerName(ocrText),
	}
}

// extractDate returns the first match of the highest-priority date pattern.
// Lower-priority patterns are not consulted once one matches.
func (p *ReceiptParser) extractDate(text string) *string {
	for _, entry := range datePatterns {
		if m := entry.Regexp.FindStringSubmatch(text); len(m) > 1 {
			date := m[1]
			return &date
		}
	}
	return nil
}

// extractDocumentNumber tries the document-number patterns in priority
// order. The first candidate passing the acceptance filter wins; remaining
// lower-priority patterns may still replace it with a strictly longer
// identifier, after which extraction stops.
func (p *ReceiptParser) extractDocumentNumber(text string) *string {
	var accepted string
	for _, entry := range documentNumberPatterns {
		m := entry.Regexp.FindStringSubmatch(text)
		if len(m) < 2 {
			continue
		}
		candidate := strings.ToUpper(strings.TrimSpace(m[1]))
		if accepted == "" {
			if p.acceptDocumentNumber(candidate) {
				accepted = candidate
			}
			continue
		}
		if p.acceptDocumentNumber(candidate) && len(candidate) > len(accepted) {
			accepted = candidate
			break
		}
	}
	if accepted == "" {
		return nil
	}
	return &accepted
}

// acceptDocumentNumber rejects purely numeric tokens outside the plausible
// length band, then requires at least one letter or a length of 7+.
func (p *ReceiptParser) acceptDocumentNumber(candidate string) bool {
	if isDigits(candidate) &&
		(len(candidate) > p.maxNumericDocNoLen || len(candidate) < minNumericDocumentNumberLength) {
		return false
	}
	return containsLetter(candidate) || len(candidate) >= 7
}

// extractSellerName scans the header region line by line. Lines carrying
// branch/address/tax-office keywords are skipped entirely; the first
// candidate surviving the address-marker and minimum-length checks wins.
func (p *ReceiptParser) extractSellerName(text string) *string {
	lines := strings.Split(text, "\n")
	if len(lines) > sellerHeaderLines {
		lines = lines[:sellerHeaderLines]
	}

	for _, line := range lines {
		upper := strings.ToUpper(line)
		if containsAny(upper, sellerSkipKeywords) {
			continue
		}
		for _, entry := range sellerPatterns {
			m := entry.Regexp.FindStringSubmatch(line)
			if len(m) < 2 {
				continue
			}
			candidate := strings.TrimSpace(m[1])
			if utf8.RuneCountInString(candidate) <= 4 {
				continue
			}
			if sellerRejectPattern.MatchString(strings.ToUpper(candidate)) {
				continue
			}
			return &candidate
		}
	}
	return nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func containsLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
