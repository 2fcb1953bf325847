package render

import (
	"encoding/base64"
	"fmt"
	"net/url"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	qrcode "github.com/skip2/go-qrcode"
)

// UPIConfig identifies the payee encoded into payment QR codes.
type UPIConfig struct {
	VPA       string // virtual payment address, e.g. shop@ybl
	PayeeName string
}

// PaymentQR encodes a UPI payment URI for the given amount and returns it as
// a base64 PNG data URI. On any failure it logs the error and returns "" so
// a broken QR never blocks the invoice it decorates.
func PaymentQR(log *logrus.Logger, cfg UPIConfig, amount decimal.Decimal) string {
	if cfg.VPA == "" {
		return ""
	}

	uri := fmt.Sprintf("upi://pay?pa=%s&pn=%s&am=%s&tn=Invoice",
		url.QueryEscape(cfg.VPA),
		url.QueryEscape(cfg.PayeeName),
		amount.StringFixed(2),
	)

	png, err := qrcode.Encode(uri, qrcode.Low, 256)
	if err != nil {
		log.WithFields(logrus.Fields{
			"vpa":    cfg.VPA,
			"amount": amount.StringFixed(2),
		}).WithError(err).Error("failed to generate payment QR code")
		return ""
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
}
