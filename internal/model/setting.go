package model

import "time"

// SystemSetting stores admin-configurable key/value settings. Value holds JSON.
type SystemSetting struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Key         string    `json:"key" gorm:"type:varchar(100);uniqueIndex;not null"`
	Value       string    `json:"value" gorm:"type:text;not null"`
	Type        string    `json:"type" gorm:"type:varchar(20);not null;default:'json'"`
	Category    string    `json:"category" gorm:"type:varchar(50)"`
	Description string    `json:"description" gorm:"type:varchar(255)"`
	IsEditable  bool      `json:"isEditable" gorm:"not null"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (SystemSetting) TableName() string { return "system_settings" }

// StageTemplate is a production/logistics stage offered in order forms
type StageTemplate struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"type:varchar(100);not null"`
	Description string    `json:"description" gorm:"type:text"`
	SortOrder   int       `json:"sortOrder" gorm:"not null;default:0;index"`
	IsActive    bool      `json:"isActive" gorm:"not null"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (StageTemplate) TableName() string { return "stage_templates" }

// All lists every model in migration order
func All() []interface{} {
	return []interface{}{
		&Supplier{},
		&Category{},
		&SupplierCategory{},
		&Order{},
		&SupplierFile{},
		&OrderFile{},
		&SystemSetting{},
		&StageTemplate{},
	}
}
