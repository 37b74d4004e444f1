package models

// Unit is the measure a product is sold in.
type Unit string

const (
	UnitLitre  Unit = "Litre"
	Unit500ml  Unit = "500ml"
	UnitPacket Unit = "Packet"
	UnitKg     Unit = "kg"
	Unit500g   Unit = "500g"
)

// Units lists every accepted Unit, in display order.
var Units = []Unit{UnitLitre, Unit500ml, UnitPacket, UnitKg, Unit500g}

func (u Unit) Valid() bool {
	for _, known := range Units {
		if u == known {
			return true
		}
	}
	return false
}

type SaleType string

const (
	SaleTypeCash SaleType = "cash"
	SaleTypeTab  SaleType = "tab"
)

func (t SaleType) Valid() bool {
	return t == SaleTypeCash || t == SaleTypeTab
}

type PaymentStatus string

const (
	PaymentPaid   PaymentStatus = "paid"
	PaymentUnpaid PaymentStatus = "unpaid"
)

func (s PaymentStatus) Valid() bool {
	return s == PaymentPaid || s == PaymentUnpaid
}

type PaymentMethod string

const (
	MethodCash   PaymentMethod = "cash"
	MethodOnline PaymentMethod = "online"
	MethodNone   PaymentMethod = "none" // unpaid tab sales only
)

func (m PaymentMethod) Valid() bool {
	return m == MethodCash || m == MethodOnline || m == MethodNone
}

// Settles reports whether m can be used to pay off a debt.
func (m PaymentMethod) Settles() bool {
	return m == MethodCash || m == MethodOnline
}

// DefaultCategory is applied to products saved without a category.
const DefaultCategory = "Uncategorized"
