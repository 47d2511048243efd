package dto

// ReceiptFields is the structured record recovered from one OCR text blob.
// Nil means the field could not be extracted; that is a normal outcome, not
// an error. Each field is set at most once per extraction pass and the
// record is never mutated after it is returned.
type ReceiptFields struct {
	Date           *string `json:"date,omitempty"`
	Amount         *string `json:"amount,omitempty"`
	DocumentNumber *string `json:"document_number,omitempty"`
	SellerName     *string `json:"seller_name,omitempty"`
}

// IsEmpty reports whether no field was extracted.
func (f ReceiptFields) IsEmpty() bool {
	return f.Date == nil && f.Amount == nil && f.DocumentNumber == nil && f.SellerName == nil
}

type BoxKind string

const (
	BoxRect    BoxKind = "rect"
	BoxPolygon BoxKind = "polygon"
)

type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// BoundingBox is a tagged variant over the box shapes the OCR engines
// report: Tesseract yields axis-aligned rectangles, PaddleOCR yields
// four-point polygons. Exactly one of Rect/Polygon is set, per Kind.
type BoundingBox struct {
	Kind    BoxKind `json:"kind"`
	Rect    *Rect   `json:"rect,omitempty"`
	Polygon []Point `json:"polygon,omitempty"`
}

// Detection is one recognized token with its location and confidence.
type Detection struct {
	Text       string      `json:"text"`
	Box        BoundingBox `json:"box"`
	Confidence float64     `json:"confidence"`
}

// EngineResult is the extraction outcome for one (file, engine) pair.
type EngineResult struct {
	Engine         string         `json:"engine"`
	TextLength     int            `json:"text_length"`
	DetectionCount int            `json:"detection_count"`
	RegexFields    ReceiptFields  `json:"regex_fields"`
	LLMFields      *ReceiptFields `json:"llm_fields,omitempty"`
}

// ReceiptFileResult aggregates all engine results for one uploaded file.
// Fields is the merged record: regex-extracted values first, LLM guesses
// backfilling gaps, QR payload data last.
type ReceiptFileResult struct {
	Filename  string         `json:"filename"`
	Engines   []EngineResult `json:"engines"`
	QRPayload string         `json:"qr_payload,omitempty"`
	Fields    ReceiptFields  `json:"fields"`
}
