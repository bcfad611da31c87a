package models

import (
	"time"

	"gorm.io/gorm"
)

type DiscountType string

const (
	DiscountAmount  DiscountType = "amount"
	DiscountPercent DiscountType = "percent"
)

type Product struct {
	ID           uint                  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string                `gorm:"not null" json:"name"`
	Description  string                `json:"description"`
	Price        float64               `gorm:"not null" json:"price"`
	Stock        int                   `json:"stock"`
	IsActive     bool                  `gorm:"default:true" json:"is_active"`
	Discount     float64               `gorm:"default:0" json:"discount"`
	DiscountType DiscountType          `gorm:"type:VARCHAR(10);default:'amount'" json:"discount_type"`
	CategoryID   uint                  `gorm:"index;not null" json:"category_id"`
	Category     *Category             `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Images       []ProductImage        `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"images"`
	Labels       []ProductLabel        `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"labels,omitempty"`
	Attributes   []ProductFieldValue   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"attributes,omitempty"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
	DeletedAt    gorm.DeletedAt        `gorm:"index" json:"-"`
}

type ProductImage struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID uint   `gorm:"index;not null" json:"product_id"`
	URL       string `gorm:"not null" json:"url"`
	Key       string `gorm:"not null" json:"key"`
	IsMain    bool   `gorm:"default:false" json:"is_main"`
}

// ProductFieldValue stores one dynamic attribute value per (product, field)
// pair. Values are kept as plain text regardless of the field's declared type.
type ProductFieldValue struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID uint           `gorm:"index;not null" json:"product_id"`
	FieldID   uint           `gorm:"index;not null" json:"field_id"`
	Field     *CategoryField `gorm:"foreignKey:FieldID" json:"field,omitempty"`
	Value     string         `json:"value"`
}
