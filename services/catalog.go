package services

import (
	"errors"
	"mime/multipart"
	"strings"
	"time"

	"github.com/MrPouyaSaad/rivaland-backend/apperr"
	"github.com/MrPouyaSaad/rivaland-backend/models"
	"github.com/MrPouyaSaad/rivaland-backend/storage"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CategoryService struct {
	db    *gorm.DB
	store storage.Storage
	log   *zap.SugaredLogger
}

func NewCategoryService(db *gorm.DB, store storage.Storage, log *zap.SugaredLogger) *CategoryService {
	return &CategoryService{db: db, store: store, log: log}
}

type CategoryInput struct {
	Name   string
	Fields []FieldInput
}

// CategoryView carries deserialized field options, unlike the fields
// endpoints which sanitize them away.
type CategoryView struct {
	ID        uint        `json:"id"`
	Name      string      `json:"name"`
	Image     string      `json:"image"`
	Fields    []FieldView `json:"fields"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

func formatCategory(c models.Category) CategoryView {
	fields := make([]FieldView, 0, len(c.Fields))
	for _, f := range c.Fields {
		fields = append(fields, FormatField(f))
	}
	return CategoryView{
		ID:        c.ID,
		Name:      c.Name,
		Image:     c.Image,
		Fields:    fields,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// List returns every category with its fields, ordered by name.
func (s *CategoryService) List() ([]CategoryView, error) {
	var categories []models.Category
	if err := s.db.Preload("Fields").Order("name ASC").Find(&categories).Error; err != nil {
		return nil, apperr.Internal("دریافت دسته‌بندی‌ها با مشکل مواجه شد", err)
	}

	views := make([]CategoryView, 0, len(categories))
	for _, c := range categories {
		views = append(views, formatCategory(c))
	}
	return views, nil
}

func (s *CategoryService) Get(id uint) (*CategoryView, error) {
	var category models.Category
	if err := s.db.Preload("Fields").First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("دسته‌بندی یافت نشد")
		}
		return nil, apperr.Internal("دریافت دسته‌بندی با مشکل مواجه شد", err)
	}
	view := formatCategory(category)
	return &view, nil
}

// nameTaken checks the case-insensitive unique name constraint, excluding
// excludeID when updating.
func (s *CategoryService) nameTaken(name string, excludeID uint) (bool, error) {
	var count int64
	q := s.db.Model(&models.Category{}).Where("LOWER(name) = LOWER(?)", name)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, apperr.Internal("بررسی نام دسته‌بندی با مشکل مواجه شد", err)
	}
	return count > 0, nil
}

// Create stores a category with its field set. The image upload happens
// before the transaction; the object is cleaned up best-effort if the
// database write fails.
func (s *CategoryService) Create(input CategoryInput, image *multipart.FileHeader) (*CategoryView, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperr.Validation("نام دسته‌بندی الزامی است")
	}
	for _, f := range input.Fields {
		if err := ValidateFieldInput(f); err != nil {
			return nil, err
		}
	}

	taken, err := s.nameTaken(name, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Conflict("دسته‌بندی با این نام قبلاً وجود دارد")
	}

	var uploaded *storage.StoredFile
	if image != nil {
		uploaded, err = s.store.Upload(image, "categories")
		if err != nil {
			return nil, apperr.Internal("آپلود تصویر با مشکل مواجه شد", err)
		}
	}

	category := models.Category{Name: name}
	if uploaded != nil {
		category.Image = uploaded.URL
	}
	for _, f := range input.Fields {
		category.Fields = append(category.Fields, toFieldModel(0, f))
	}

	if err := s.db.Create(&category).Error; err != nil {
		if uploaded != nil {
			storage.Cleanup(s.store, s.log, uploaded.Key)
		}
		return nil, apperr.Internal("ایجاد دسته‌بندی با مشکل مواجه شد", err)
	}

	return s.Get(category.ID)
}

// Update modifies name and image and, when a field set is supplied, replaces
// the fields wholesale within one transaction.
func (s *CategoryService) Update(id uint, input CategoryInput, replaceFields bool, image *multipart.FileHeader) (*CategoryView, error) {
	var existing models.Category
	if err := s.db.Preload("Fields").First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("دسته‌بندی یافت نشد")
		}
		return nil, apperr.Internal("دریافت دسته‌بندی با مشکل مواجه شد", err)
	}

	name := strings.TrimSpace(input.Name)
	if name != "" && !strings.EqualFold(name, existing.Name) {
		taken, err := s.nameTaken(name, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperr.Conflict("دسته‌بندی با این نام قبلاً وجود دارد")
		}
		existing.Name = name
	}

	if replaceFields {
		for _, f := range input.Fields {
			if err := ValidateFieldInput(f); err != nil {
				return nil, err
			}
		}
	}

	var uploaded *storage.StoredFile
	oldImageKey := ""
	if image != nil {
		var err error
		uploaded, err = s.store.Upload(image, "categories")
		if err != nil {
			return nil, apperr.Internal("آپلود تصویر با مشکل مواجه شد", err)
		}
		oldImageKey = imageKey(existing.Image, "categories")
		existing.Image = uploaded.URL
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Category{}).Where("id = ?", id).
			Updates(map[string]interface{}{"name": existing.Name, "image": existing.Image}).Error; err != nil {
			return err
		}
		if replaceFields {
			return ReplaceFields(tx, id, input.Fields)
		}
		return nil
	})
	if err != nil {
		if uploaded != nil {
			storage.Cleanup(s.store, s.log, uploaded.Key)
		}
		return nil, apperr.Internal("بروزرسانی دسته‌بندی با مشکل مواجه شد", err)
	}

	// The replaced image is removed only after the store write settles.
	if oldImageKey != "" {
		storage.Cleanup(s.store, s.log, oldImageKey)
	}

	return s.Get(id)
}

// Delete removes a category and its fields. It is blocked while any product
// still references the category; the category and fields stay intact.
func (s *CategoryService) Delete(id uint) error {
	var existing models.Category
	if err := s.db.Preload("Products").Preload("Fields").First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("دسته‌بندی یافت نشد")
		}
		return apperr.Internal("دریافت دسته‌بندی با مشکل مواجه شد", err)
	}

	if len(existing.Products) > 0 {
		return apperr.Conflict("امکان حذف دسته‌بندی دارای محصول وجود ندارد")
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", id).Delete(&models.CategoryField{}).Error; err != nil {
			return err
		}
		return tx.Delete(&existing).Error
	})
	if err != nil {
		return apperr.Internal("حذف دسته‌بندی با مشکل مواجه شد", err)
	}

	if key := imageKey(existing.Image, "categories"); key != "" {
		storage.Cleanup(s.store, s.log, key)
	}
	return nil
}

// imageKey recovers the storage key of an uploaded image URL, e.g.
// ".../uploads/categories/<name>" → "categories/<name>".
func imageKey(url, folder string) string {
	marker := "/" + folder + "/"
	idx := strings.LastIndex(url, marker)
	if idx < 0 {
		return ""
	}
	return folder + "/" + url[idx+len(marker):]
}
