package model

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Order is a purchase order placed with a supplier. Status is free text drawn
// from the configurable status list; transitions are unconstrained.
type Order struct {
	ID                 uint                `json:"id" gorm:"primaryKey"`
	OrderNumber        string              `json:"orderNumber" gorm:"type:varchar(50);uniqueIndex;not null"`
	SupplierID         uint                `json:"supplierId" gorm:"not null;index"`
	Status             string              `json:"status" gorm:"type:varchar(100);not null"`
	Currency           string              `json:"currency" gorm:"type:varchar(3);not null;default:'USD'"`
	TotalAmount        decimal.Decimal     `json:"totalAmount" gorm:"type:numeric(14,2);not null;default:0"`
	AdvancePayment     decimal.Decimal     `json:"advancePayment" gorm:"type:numeric(14,2);not null;default:0"`
	FinalPayment       decimal.Decimal     `json:"finalPayment" gorm:"type:numeric(14,2);not null;default:0"`
	ExchangeRate       decimal.NullDecimal `json:"exchangeRate" gorm:"type:numeric(14,6)"`
	ShippingMethod     string              `json:"shippingMethod" gorm:"type:varchar(50)"`
	TrackingNumber     string              `json:"trackingNumber" gorm:"type:varchar(100)"`
	CustomsDeclaration string              `json:"customsDeclaration" gorm:"type:varchar(100)"`
	CustomsCost        decimal.NullDecimal `json:"customsCost" gorm:"type:numeric(14,2)"`
	ExpectedDelivery   *time.Time          `json:"expectedDelivery"`
	Notes              string              `json:"notes" gorm:"type:text"`
	CreatedAt          time.Time           `json:"createdAt" gorm:"index"`
	UpdatedAt          time.Time           `json:"updatedAt"`

	Supplier *Supplier `json:"-" gorm:"constraint:OnDelete:RESTRICT"`
}

func (Order) TableName() string { return "orders" }

// NewOrder builds an order, rejecting a blank number, owner or status
func NewOrder(orderNumber string, supplierID uint, status string) (*Order, error) {
	orderNumber = strings.TrimSpace(orderNumber)
	status = strings.TrimSpace(status)
	switch {
	case orderNumber == "":
		return nil, errors.New("order number is required")
	case supplierID == 0:
		return nil, errors.New("supplier is required")
	case status == "":
		return nil, errors.New("status is required")
	}
	return &Order{
		OrderNumber: orderNumber,
		SupplierID:  supplierID,
		Status:      status,
		Currency:    "USD",
	}, nil
}

// Balance is what remains to be paid after the advance and final payments
func (o *Order) Balance() decimal.Decimal {
	return o.TotalAmount.Sub(o.AdvancePayment).Sub(o.FinalPayment)
}

// AmountInBase converts TotalAmount with the exchange rate, if one is recorded
func (o *Order) AmountInBase() (decimal.Decimal, bool) {
	if !o.ExchangeRate.Valid {
		return decimal.Zero, false
	}
	return o.TotalAmount.Mul(o.ExchangeRate.Decimal).Round(2), true
}
