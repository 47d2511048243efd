package utils

import "regexp"

// PatternEntry is one row of the pattern catalogue for a field. Entries are
// tried in ascending Rank order (lower rank = higher precedence); the tables
// are laid out in that order, so Rank documents each entry's position rather
// than being consulted at match time. KeywordAnchored marks patterns that
// require a contextual keyword such as "toplam" or "total" adjacent to the
// value.
type PatternEntry struct {
	Regexp          *regexp.Regexp
	Rank            int
	KeywordAnchored bool
}

// Issue-date patterns. The first pattern with a match anywhere in the text
// wins; lower-ranked patterns are not consulted after a hit.
var datePatterns = []PatternEntry{
	{Regexp: regexp.MustCompile(`\b(\d{1,2}[./-]\d{1,2}[./-]\d{2,4})\b`), Rank: 0},
	{Regexp: regexp.MustCompile(`\b(\d{2,4}[./-]\d{1,2}[./-]\d{1,2})\b`), Rank: 1},
	{Regexp: regexp.MustCompile(`(?i)\b(\d{1,2}\s+(?:Ocak|Şubat|Mart|Nisan|Mayıs|Haziran|Temmuz|Ağustos|Eylül|Ekim|Kasım|Aralık|JAN|FEB|MAR|APR|MAY|JUN|JUL|AUG|SEP|OCT|NOV|DEC)\s+\d{2,4})\b`), Rank: 2},
}

// Amount patterns. Ranks 0-1 anchor the number to a total/sum keyword,
// rank 2 requires an adjacent currency token, rank 3 is the bare-number
// fallback. RE2 has no lookahead, so the original trailing (?!\s*\d) guard
// of the fallback is applied in code after matching.
var amountPatterns = []PatternEntry{
	{Regexp: regexp.MustCompile(`(?i)(?:toplam|tutar|yek[üu]n|total|ara\s*toplam|genel\s*toplam)\s*[:\s]*([0-9.,]+)\s*(?:tl|try|eur|usd|€|\$)?`), Rank: 0, KeywordAnchored: true},
	{Regexp: regexp.MustCompile(`(?i)([0-9.,]+)\s*(?:tl|try|eur|usd|€|\$)\s*(?:toplam|tutar|yek[üu]n|total|genel\s*toplam)`), Rank: 1, KeywordAnchored: true},
	{Regexp: regexp.MustCompile(`(?i)\b([0-9.,]+)\s*(?:tl|try|eur|usd|€|\$)\b`), Rank: 2},
	{Regexp: regexp.MustCompile(`\b(\d{1,3}(?:[.,]\d{3})*(?:[.,]\d{1,2})?|\d+[.,]\d{1,2})\b`), Rank: 3},
}

// Document-number patterns: keyword-labelled identifier, letter-prefixed
// numeric series, bare alphanumeric token. All three are case-insensitive;
// the extractor upper-cases whatever matched.
var documentNumberPatterns = []PatternEntry{
	{Regexp: regexp.MustCompile(`(?i)(?:fatura\s*(?:no|numarası)|belge\s*no|fiş\s*no|seri\s*no|işlem\s*no|sipariş\s*no|doküman\s*no|invoice\s*n[o.]?\.?|receipt\s*no)\s*[:\s]*([a-z0-9\-/]{5,30})`), Rank: 0, KeywordAnchored: true},
	{Regexp: regexp.MustCompile(`(?i)\b([A-Z]{1,4}[-/]?\s?\d{6,25})\b`), Rank: 1},
	{Regexp: regexp.MustCompile(`(?i)\b([A-Z0-9]{8,25})\b`), Rank: 2},
}

// Seller-name patterns: a capitalized phrase ending in a Turkish/English
// legal-entity suffix, either spanning a whole header line or embedded in one.
var sellerPatterns = []PatternEntry{
	{Regexp: regexp.MustCompile(`^([A-ZÇĞİÖŞÜ][A-Za-zÇĞİÖŞÜçğıöşü\s.,&-]+(?:A\.Ş\.|LTD\.|ŞTİ\.|ANONİM ŞİRKETİ|LİMİTED ŞİRKETİ|CO\.|INC\.))\s*$`), Rank: 0},
	{Regexp: regexp.MustCompile(`([A-ZÇĞİÖŞÜ][A-Za-zÇĞİÖŞÜçğıöşü\s.,&-]{5,50}(?:A\.Ş\.|LTD\.|ŞTİ\.))`), Rank: 1},
}

// Lines containing these are branch/address/tax-office noise, never the
// seller name itself.
var sellerSkipKeywords = []string{"MERKEZİ", "ŞUBESİ", "VERGİ DAİRESİ", "V.D."}

// Candidates that begin with a street number or an address marker are
// rejected even when a legal-entity suffix matched. A marker later in the
// candidate is fine: street names are part of many registered company names.
var sellerRejectPattern = regexp.MustCompile(`^(?:\d+\s|NO:|CAD\.|SOK\.)`)
