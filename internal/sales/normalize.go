package sales

import "dairy-pos/internal/models"

// NormalizePayment derives the payment fields a sale is stored with.
//
// Cash sales are always paid, and never by "none". Unpaid tab sales have no
// payment method. Anything else keeps what the caller sent, with paid/cash
// filling in blanks.
func NormalizePayment(t models.SaleType, status models.PaymentStatus, method models.PaymentMethod) (models.PaymentStatus, models.PaymentMethod) {
	if status == "" {
		status = models.PaymentPaid
	}
	if method == "" {
		method = models.MethodCash
	}

	switch {
	case t == models.SaleTypeCash:
		status = models.PaymentPaid
		if method == models.MethodNone {
			method = models.MethodCash
		}
	case t == models.SaleTypeTab && status == models.PaymentUnpaid:
		method = models.MethodNone
	}
	return status, method
}
