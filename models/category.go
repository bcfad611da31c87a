package models

import "time"

type FieldType string

const (
	FieldTypeString      FieldType = "string"
	FieldTypeNumber      FieldType = "number"
	FieldTypeBoolean     FieldType = "boolean"
	FieldTypeSelect      FieldType = "select"
	FieldTypeMultiSelect FieldType = "multi-select"
)

// ValidFieldType reports whether t is one of the supported dynamic field types.
func ValidFieldType(t FieldType) bool {
	switch t {
	case FieldTypeString, FieldTypeNumber, FieldTypeBoolean, FieldTypeSelect, FieldTypeMultiSelect:
		return true
	}
	return false
}

type Category struct {
	ID        uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string          `gorm:"uniqueIndex;not null" json:"name"`
	Image     string          `json:"image"`
	Fields    []CategoryField `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"fields"`
	Products  []Product       `gorm:"foreignKey:CategoryID" json:"products,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// CategoryField is a category-defined dynamic attribute. Options is the JSON
// serialized option list, only meaningful for select/multi-select fields.
type CategoryField struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CategoryID uint      `gorm:"index;not null" json:"category_id"`
	Name       string    `gorm:"not null" json:"name"`
	Type       FieldType `gorm:"type:VARCHAR(20);not null" json:"type"`
	Required   bool      `gorm:"default:true" json:"required"`
	Options    string    `json:"-"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
