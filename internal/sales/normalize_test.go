package sales

import (
	"testing"

	"dairy-pos/internal/models"

	"github.com/stretchr/testify/require"
)

func TestNormalizePayment(t *testing.T) {
	tests := []struct {
		name       string
		saleType   models.SaleType
		status     models.PaymentStatus
		method     models.PaymentMethod
		wantStatus models.PaymentStatus
		wantMethod models.PaymentMethod
	}{
		{"cash defaults", models.SaleTypeCash, "", "", models.PaymentPaid, models.MethodCash},
		{"cash forced paid", models.SaleTypeCash, models.PaymentUnpaid, models.MethodOnline, models.PaymentPaid, models.MethodOnline},
		{"cash none becomes cash", models.SaleTypeCash, models.PaymentPaid, models.MethodNone, models.PaymentPaid, models.MethodCash},
		{"tab unpaid has no method", models.SaleTypeTab, models.PaymentUnpaid, models.MethodOnline, models.PaymentUnpaid, models.MethodNone},
		{"tab paid keeps method", models.SaleTypeTab, models.PaymentPaid, models.MethodOnline, models.PaymentPaid, models.MethodOnline},
		{"tab defaults to paid cash", models.SaleTypeTab, "", "", models.PaymentPaid, models.MethodCash},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, method := NormalizePayment(tt.saleType, tt.status, tt.method)
			require.Equal(t, tt.wantStatus, status)
			require.Equal(t, tt.wantMethod, method)
		})
	}
}
