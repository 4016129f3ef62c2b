package model

import "time"

// SupplierFile is a document attached to a supplier (contract, certificate, price list)
type SupplierFile struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	SupplierID uint      `json:"supplierId" gorm:"not null;index"`
	FileName   string    `json:"fileName" gorm:"type:varchar(255);not null"`
	FileSize   int64     `json:"fileSize" gorm:"not null;default:0"`
	FilePath   string    `json:"filePath" gorm:"type:varchar(500);not null"`
	FileType   string    `json:"fileType" gorm:"type:varchar(50)"`
	UploadedAt time.Time `json:"uploadedAt" gorm:"autoCreateTime;index"`

	Supplier *Supplier `json:"-" gorm:"constraint:OnDelete:RESTRICT"`
}

func (SupplierFile) TableName() string { return "supplier_files" }

// OrderFile is a document attached to an order. Unlike SupplierFile it has no
// stored type; the type comes from the file name.
type OrderFile struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	OrderID    uint      `json:"orderId" gorm:"not null;index"`
	FileName   string    `json:"fileName" gorm:"type:varchar(255);not null"`
	FileSize   int64     `json:"fileSize" gorm:"not null;default:0"`
	FilePath   string    `json:"filePath" gorm:"type:varchar(500);not null"`
	UploadedAt time.Time `json:"uploadedAt" gorm:"autoCreateTime;index"`

	Order *Order `json:"-" gorm:"constraint:OnDelete:RESTRICT"`
}

func (OrderFile) TableName() string { return "order_files" }
