package model

import (
	"errors"
	"strings"
	"time"
)

// Supplier represents the supplier model stored in the database.
// Archiving clears IsActive; there is no soft-delete column, permanent deletion
// removes the row.
type Supplier struct {
	ID                      uint      `json:"id" gorm:"primaryKey"`
	Name                    string    `json:"name" gorm:"type:varchar(200);index;not null"`
	Code                    string    `json:"code" gorm:"type:varchar(50);index"`
	ContactPerson           string    `json:"contactPerson" gorm:"type:varchar(100)"`
	Email                   string    `json:"email" gorm:"type:varchar(100)"`
	Phone                   string    `json:"phone" gorm:"type:varchar(30)"`
	Address                 string    `json:"address" gorm:"type:text"`
	Country                 string    `json:"country" gorm:"type:varchar(60)"`
	Website                 string    `json:"website" gorm:"type:varchar(200)"`
	ProductionLeadTimeWeeks *int      `json:"productionLeadTimeWeeks"`
	ShippingLeadTimeWeeks   *int      `json:"shippingLeadTimeWeeks"`
	PaymentTerms            string    `json:"paymentTerms" gorm:"type:varchar(200)"`
	BankName                string    `json:"bankName" gorm:"type:varchar(200)"`
	BankAccount             string    `json:"bankAccount" gorm:"type:varchar(100)"`
	SwiftCode               string    `json:"swiftCode" gorm:"type:varchar(20)"`
	Notes                   string    `json:"notes" gorm:"type:text"`
	IsActive                bool      `json:"isActive" gorm:"not null;index"`
	CreatedAt               time.Time `json:"createdAt"`
	UpdatedAt               time.Time `json:"updatedAt" gorm:"index"`
}

func (Supplier) TableName() string { return "suppliers" }

// NewSupplier builds an active supplier, rejecting a blank name
func NewSupplier(name string) (*Supplier, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("supplier name is required")
	}
	return &Supplier{Name: name, IsActive: true}, nil
}

// Category groups suppliers by what they sell
type Category struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(100);uniqueIndex;not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Category) TableName() string { return "categories" }

// SupplierCategory links a supplier to a category
type SupplierCategory struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	SupplierID uint      `json:"supplierId" gorm:"not null;uniqueIndex:idx_supplier_category"`
	CategoryID uint      `json:"categoryId" gorm:"not null;uniqueIndex:idx_supplier_category"`
	CreatedAt  time.Time `json:"createdAt"`

	Supplier *Supplier `json:"-" gorm:"constraint:OnDelete:RESTRICT"`
	Category *Category `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

func (SupplierCategory) TableName() string { return "supplier_categories" }
