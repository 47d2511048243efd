package service

import (
	"encoding/json"
	"fmt"
	"image"
	"log"
	"strings"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"

	"github.com/fatura-ocr/receipt-extraction/dto"
)

// QRDecoder reads the QR code Turkish e-invoice/e-archive documents carry.
// Its JSON payload holds the document number, date and totals, which can
// backfill fields the text extraction left unset.
type QRDecoder struct{}

func NewQRDecoder() *QRDecoder {
	return &QRDecoder{}
}

// Decode returns the raw QR payload of the image, if any.
func (d *QRDecoder) Decode(img image.Image) (string, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", fmt.Errorf("failed to create binary bitmap: %w", err)
	}

	qrReader := qrcode.NewQRCodeReader()
	result, err := qrReader.Decode(bmp, nil)
	if err != nil {
		return "", fmt.Errorf("failed to decode QR code: %w", err)
	}

	payload := result.GetText()
	log.Printf("QR code decoded, length: %d bytes", len(payload))
	return payload, nil
}

// eInvoiceQRPayload mirrors the GIB e-invoice QR JSON (relevant keys only).
type eInvoiceQRPayload struct {
	No       string `json:"no"`
	Tarih    string `json:"tarih"`
	Toplam   string `json:"toplam"`
	Odenecek string `json:"odenecek"`
}

// ParseFields maps a decoded e-invoice QR payload onto receipt fields.
// Returns nil when the payload is not the expected JSON or carries nothing
// usable.
func (d *QRDecoder) ParseFields(payload string) *dto.ReceiptFields {
	var qr eInvoiceQRPayload
	if err := json.Unmarshal([]byte(payload), &qr); err != nil {
		return nil
	}

	fields := &dto.ReceiptFields{}
	if qr.Tarih != "" {
		date := qr.Tarih
		fields.Date = &date
	}
	amount := qr.Odenecek
	if amount == "" {
		amount = qr.Toplam
	}
	if amount != "" {
		fields.Amount = &amount
	}
	if qr.No != "" {
		docNo := strings.ToUpper(strings.TrimSpace(qr.No))
		fields.DocumentNumber = &docNo
	}

	if fields.IsEmpty() {
		return nil
	}
	return fields
}
