package utils

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	nonAmountChars  = regexp.MustCompile(`[^\d.,]`)
	canonicalAmount = regexp.MustCompile(`^\d+(\.\d+)?$`)
)

// NormalizeAmount converts a raw numeric-looking token into a canonical
// decimal string using "." as the decimal point, resolving thousands/decimal
// separator ambiguity ("1.234,56" and "1,234.56" both become "1234.56").
// The parsed value is returned alongside for comparisons. ok is false when
// the token does not reduce to a valid finite non-negative decimal.
//
// The both-separators case must be resolved before the single-separator
// cases, otherwise "1.234,56" would be read as "1.234" plus a stray ",56".
func NormalizeAmount(raw string) (string, float64, bool) {
	s := strings.TrimSpace(strings.ReplaceAll(raw, " ", ""))
	s = nonAmountChars.ReplaceAllString(s, "")
	if s == "" {
		return "", 0, false
	}

	hasDot := strings.Contains(s, ".")
	hasComma := strings.Contains(s, ",")
	switch {
	case hasDot && hasComma:
		if strings.LastIndex(s, ".") > strings.LastIndex(s, ",") {
			// 1,234.56 format: comma groups thousands
			s = strings.ReplaceAll(s, ",", "")
		} else {
			// 1.234,56 format: dot groups thousands, comma is the decimal mark
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		}
	case hasComma:
		// a lone comma is a decimal separator: 123,45
		s = strings.ReplaceAll(s, ",", ".")
	}

	// a single trailing separator is an OCR artifact, e.g. "1.250."
	if strings.HasSuffix(s, ".") || strings.HasSuffix(s, ",") {
		s = s[:len(s)-1]
	}

	// collapse leading thousands groups when several dots survive: 1.2.345 -> 12.345
	if strings.Count(s, ".") > 1 {
		parts := strings.Split(s, ".")
		if len(parts) > 2 && len(parts[len(parts)-1]) != 2 {
			s = strings.Join(parts[:len(parts)-1], "") + "." + parts[len(parts)-1]
		}
	}

	if !canonicalAmount.MatchString(s) {
		return "", 0, false
	}

	value, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(value, 0) || math.IsNaN(value) || value < 0 {
		return "", 0, false
	}
	return s, value, true
}

// extractAmount scans all amount patterns, normalizes every candidate and
// keeps a running maximum. Keyword-anchored candidates compete by magnitude
// among themselves and always beat bare numbers; a bare number is only
// accepted when nothing else matched, and must fall in a plausible range.
// The selected amount is reported as its original raw substring, not the
// normalized form.
func (p *ReceiptParser) extractAmount(text string) *string {
	var best string
	var maxValue float64

	for i, entry := range amountPatterns {
		fallback := i == len(amountPatterns)-1
		if fallback && best != "" {
			// the bare-number fallback never overrides an earlier candidate
			continue
		}

		for _, loc := range entry.Regexp.FindAllStringSubmatchIndex(text, -1) {
			if loc[2] < 0 {
				continue
			}
			raw := text[loc[2]:loc[3]]
			if fallback && followedByDigit(text, loc[1]) {
				// the match is a prefix of a longer number
				continue
			}

			_, value, ok := NormalizeAmount(raw)
			if !ok {
				continue
			}

			if entry.KeywordAnchored {
				if value > maxValue {
					maxValue = value
					best = strings.TrimSpace(raw)
				}
			} else if best == "" && value > 0.01 && value < p.amountCeiling {
				if value > maxValue {
					maxValue = value
					best = strings.TrimSpace(raw)
				}
			}
		}
	}

	if best == "" {
		return nil
	}
	return &best
}

func followedByDigit(text string, pos int) bool {
	for i := pos; i < len(text); i++ {
		switch text[i] {
		case ' ', '\t', '\n', '\r':
			continue
		default:
			return text[i] >= '0' && text[i] <= '9'
		}
	}
	return false
}
