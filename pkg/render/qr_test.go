package render

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestPaymentQRWithoutVPAIsEmpty(t *testing.T) {
	got := PaymentQR(logrus.New(), UPIConfig{}, decimal.NewFromInt(100))
	assert.Empty(t, got)
}

func TestPaymentQRProducesDataURI(t *testing.T) {
	cfg := UPIConfig{VPA: "shop@ybl", PayeeName: "Prathibha Computer & Hardware Services"}
	got := PaymentQR(logrus.New(), cfg, decimal.RequireFromString("1121.00"))
	assert.True(t, strings.HasPrefix(got, "data:image/png;base64,"), "got %q", got)
}
