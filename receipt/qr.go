package receipt

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ohm-hive/orders-api/models"
	"github.com/skip2/go-qrcode"
)

// QRSize is the default edge length of the QR code image in pixels
const QRSize = 256

// QRPayload is the machine-readable summary encoded in the receipt QR code
type QRPayload struct {
	OrderNumber string `json:"orderNumber"`
	Customer    string `json:"customer"`
	Service     string `json:"service"`
	Date        string `json:"date"`
}

// NewQRPayload builds the QR payload for an order
func NewQRPayload(order *models.Order) QRPayload {
	return QRPayload{
		OrderNumber: order.OrderNumber,
		Customer:    order.CustomerName(),
		Service:     string(order.ServiceType),
		Date:        order.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// QRCodePNG encodes the order's QR payload as a PNG image
func QRCodePNG(order *models.Order, size int) ([]byte, error) {
	payload, err := json.Marshal(NewQRPayload(order))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal QR payload: %w", err)
	}
	png, err := qrcode.Encode(string(payload), qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR code: %w", err)
	}
	return png, nil
}

// QRCodeDataURL returns the QR PNG as a data URL for embedding in HTML
func QRCodeDataURL(order *models.Order, size int) (string, error) {
	png, err := QRCodePNG(order, size)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
