package services

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/MrPouyaSaad/rivaland-backend/apperr"
	"github.com/MrPouyaSaad/rivaland-backend/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// FieldService owns the dynamic attribute schema: category field definitions
// and per-product values keyed to them.
type FieldService struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewFieldService(db *gorm.DB, log *zap.SugaredLogger) *FieldService {
	return &FieldService{db: db, log: log}
}

type FieldInput struct {
	Name     string           `json:"name"`
	Type     models.FieldType `json:"type"`
	Required *bool            `json:"required"`
	Options  []string         `json:"options"`
}

type FieldValueInput struct {
	FieldID uint   `json:"fieldId"`
	Value   string `json:"value"`
}

// FieldView is the full field representation with deserialized options.
type FieldView struct {
	ID        uint             `json:"id"`
	Name      string           `json:"name"`
	Type      models.FieldType `json:"type"`
	Required  bool             `json:"required"`
	Options   []string         `json:"options"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// SanitizedFieldView is the field representation with options stripped, used
// by the field-listing and field-creation endpoints.
type SanitizedFieldView struct {
	ID        uint             `json:"id"`
	Name      string           `json:"name"`
	Type      models.FieldType `json:"type"`
	Required  bool             `json:"required"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// ValidateFieldInput checks name and type; options are accepted as-is since
// values are stored untyped.
func ValidateFieldInput(in FieldInput) error {
	if in.Name == "" || in.Type == "" {
		return apperr.Validation("هر فیلد باید نام و نوع داشته باشد")
	}
	if !models.ValidFieldType(in.Type) {
		return apperr.Validation("نوع فیلد " + in.Name + " معتبر نیست")
	}
	return nil
}

func encodeOptions(options []string) string {
	if len(options) == 0 {
		return ""
	}
	raw, err := json.Marshal(options)
	if err != nil {
		return ""
	}
	return string(raw)
}

func decodeOptions(raw string) []string {
	if raw == "" {
		return nil
	}
	var options []string
	if err := json.Unmarshal([]byte(raw), &options); err != nil {
		return nil
	}
	return options
}

func toFieldModel(categoryID uint, in FieldInput) models.CategoryField {
	required := true
	if in.Required != nil {
		required = *in.Required
	}
	return models.CategoryField{
		CategoryID: categoryID,
		Name:       in.Name,
		Type:       in.Type,
		Required:   required,
		Options:    encodeOptions(in.Options),
	}
}

// FormatField deserializes options for client responses.
func FormatField(f models.CategoryField) FieldView {
	return FieldView{
		ID:        f.ID,
		Name:      f.Name,
		Type:      f.Type,
		Required:  f.Required,
		Options:   decodeOptions(f.Options),
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

// SanitizeField strips options from a field before it leaves the API.
func SanitizeField(f models.CategoryField) SanitizedFieldView {
	return SanitizedFieldView{
		ID:        f.ID,
		Name:      f.Name,
		Type:      f.Type,
		Required:  f.Required,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

// GetCategoryFields lists the field definitions of a category.
func (s *FieldService) GetCategoryFields(categoryID uint) ([]models.CategoryField, error) {
	var category models.Category
	if err := s.db.First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("دسته‌بندی یافت نشد")
		}
		return nil, apperr.Internal("دریافت دسته‌بندی با مشکل مواجه شد", err)
	}

	var fields []models.CategoryField
	if err := s.db.Where("category_id = ?", categoryID).Order("id ASC").Find(&fields).Error; err != nil {
		return nil, apperr.Internal("دریافت فیلدها با مشکل مواجه شد", err)
	}
	return fields, nil
}

// AddField appends one field definition to a category.
func (s *FieldService) AddField(categoryID uint, in FieldInput) (*models.CategoryField, error) {
	if err := ValidateFieldInput(in); err != nil {
		return nil, err
	}

	var category models.Category
	if err := s.db.First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("دسته‌بندی یافت نشد")
		}
		return nil, apperr.Internal("دریافت دسته‌بندی با مشکل مواجه شد", err)
	}

	field := toFieldModel(categoryID, in)
	if err := s.db.Create(&field).Error; err != nil {
		return nil, apperr.Internal("افزودن فیلد با مشکل مواجه شد", err)
	}
	return &field, nil
}

// RemoveField deletes a field definition together with every product value
// stored against it.
func (s *FieldService) RemoveField(fieldID uint) error {
	var field models.CategoryField
	if err := s.db.First(&field, fieldID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("فیلد یافت نشد")
		}
		return apperr.Internal("دریافت فیلد با مشکل مواجه شد", err)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("field_id = ?", fieldID).Delete(&models.ProductFieldValue{}).Error; err != nil {
			return err
		}
		return tx.Delete(&field).Error
	})
	if err != nil {
		return apperr.Internal("حذف فیلد با مشکل مواجه شد", err)
	}
	return nil
}

// ReplaceFields swaps a category's entire field set inside tx. Delete and
// recreate share one transaction so readers never observe the empty window.
func ReplaceFields(tx *gorm.DB, categoryID uint, inputs []FieldInput) error {
	for _, in := range inputs {
		if err := ValidateFieldInput(in); err != nil {
			return err
		}
	}

	if err := tx.Where("category_id = ?", categoryID).Delete(&models.CategoryField{}).Error; err != nil {
		return err
	}
	if len(inputs) == 0 {
		return nil
	}

	fields := make([]models.CategoryField, 0, len(inputs))
	for _, in := range inputs {
		fields = append(fields, toFieldModel(categoryID, in))
	}
	return tx.Create(&fields).Error
}

// ReplaceProductValues swaps a product's attribute values inside tx, same
// replace-wholesale contract as ReplaceFields. Values stay untyped text.
func ReplaceProductValues(tx *gorm.DB, productID uint, values []FieldValueInput) error {
	if err := tx.Where("product_id = ?", productID).Delete(&models.ProductFieldValue{}).Error; err != nil {
		return err
	}
	if len(values) == 0 {
		return nil
	}

	rows := make([]models.ProductFieldValue, 0, len(values))
	for _, v := range values {
		rows = append(rows, models.ProductFieldValue{
			ProductID: productID,
			FieldID:   v.FieldID,
			Value:     v.Value,
		})
	}
	return tx.Create(&rows).Error
}

// ReplaceFields is the service-level entry point wrapping its own transaction.
func (s *FieldService) ReplaceFields(categoryID uint, inputs []FieldInput) error {
	var category models.Category
	if err := s.db.First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("دسته‌بندی یافت نشد")
		}
		return apperr.Internal("دریافت دسته‌بندی با مشکل مواجه شد", err)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		return ReplaceFields(tx, categoryID, inputs)
	})
	if err != nil {
		if apperr.KindOf(err) == apperr.KindValidation {
			return err
		}
		return apperr.Internal("بروزرسانی فیلدها با مشکل مواجه شد", err)
	}
	return nil
}

// SetProductValues is the service-level entry point wrapping its own
// transaction.
func (s *FieldService) SetProductValues(productID uint, values []FieldValueInput) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		return ReplaceProductValues(tx, productID, values)
	})
	if err != nil {
		return apperr.Internal("بروزرسانی مقادیر فیلد با مشکل مواجه شد", err)
	}
	return nil
}
