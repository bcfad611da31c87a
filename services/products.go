package services

import (
	"errors"
	"math"
	"mime/multipart"
	"time"

	"github.com/MrPouyaSaad/rivaland-backend/apperr"
	"github.com/MrPouyaSaad/rivaland-backend/models"
	"github.com/MrPouyaSaad/rivaland-backend/storage"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ProductService struct {
	db    *gorm.DB
	store storage.Storage
	log   *zap.SugaredLogger
}

func NewProductService(db *gorm.DB, store storage.Storage, log *zap.SugaredLogger) *ProductService {
	return &ProductService{db: db, store: store, log: log}
}

type ProductListParams struct {
	CategoryID uint
	Status     string // "active" | "inactive" | ""
	MinPrice   *float64
	MaxPrice   *float64
	Search     string
	Page       int
	Limit      int
}

type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

type ProductPage struct {
	Data       []ProductView `json:"data"`
	Pagination Pagination    `json:"pagination"`
}

type LabelView struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Title string `json:"title"`
	Color string `json:"color"`
}

// AttributeView is a product's value joined with its field definition.
type AttributeView struct {
	ID       uint             `json:"id"`
	Title    string           `json:"title"`
	Type     models.FieldType `json:"type"`
	Required bool             `json:"required"`
	Options  []string         `json:"options"`
	Value    string           `json:"value"`
}

type ProductView struct {
	ID           uint                  `json:"id"`
	Name         string                `json:"name"`
	Description  string                `json:"description"`
	Price        float64               `json:"price"`
	Stock        int                   `json:"stock"`
	IsActive     bool                  `json:"is_active"`
	Discount     float64               `json:"discount"`
	DiscountType models.DiscountType   `json:"discount_type"`
	CategoryID   uint                  `json:"category_id"`
	Category     *CategoryView         `json:"category,omitempty"`
	Image        string                `json:"image"`
	Images       []models.ProductImage `json:"images"`
	Labels       []LabelView           `json:"labels"`
	Fields       []AttributeView       `json:"fields"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

// mainImageURL resolves the display image: the one flagged main, else the
// first stored image.
func mainImageURL(images []models.ProductImage) string {
	for _, img := range images {
		if img.IsMain {
			return img.URL
		}
	}
	if len(images) > 0 {
		return images[0].URL
	}
	return ""
}

func formatProduct(p models.Product) ProductView {
	view := ProductView{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price,
		Stock:        p.Stock,
		IsActive:     p.IsActive,
		Discount:     p.Discount,
		DiscountType: p.DiscountType,
		CategoryID:   p.CategoryID,
		Image:        mainImageURL(p.Images),
		Images:       p.Images,
		Labels:       make([]LabelView, 0, len(p.Labels)),
		Fields:       make([]AttributeView, 0, len(p.Attributes)),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
	if p.Category != nil {
		cv := formatCategory(*p.Category)
		view.Category = &cv
	}
	for _, rel := range p.Labels {
		if rel.Label == nil {
			continue
		}
		view.Labels = append(view.Labels, LabelView{
			ID:    rel.Label.ID,
			Name:  rel.Label.Name,
			Title: rel.Label.Title,
			Color: rel.Label.Color,
		})
	}
	for _, attr := range p.Attributes {
		av := AttributeView{ID: attr.FieldID, Value: attr.Value}
		if attr.Field != nil {
			av.Title = attr.Field.Name
			av.Type = attr.Field.Type
			av.Required = attr.Field.Required
			av.Options = decodeOptions(attr.Field.Options)
		}
		view.Fields = append(view.Fields, av)
	}
	return view
}

func normalizePaging(page, limit int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	return page, limit
}

func (s *ProductService) preloadAll(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Category.Fields").
		Preload("Images").
		Preload("Labels.Label").
		Preload("Attributes.Field")
}

// List composes the admin filter set: category, active status, price range
// and case-insensitive name search, with offset pagination.
func (s *ProductService) List(params ProductListParams) (*ProductPage, error) {
	page, limit := normalizePaging(params.Page, params.Limit)

	query := s.db.Model(&models.Product{})
	if params.CategoryID != 0 {
		query = query.Where("category_id = ?", params.CategoryID)
	}
	if params.Status != "" {
		query = query.Where("is_active = ?", params.Status == "active")
	}
	if params.MinPrice != nil {
		query = query.Where("price >= ?", *params.MinPrice)
	}
	if params.MaxPrice != nil {
		query = query.Where("price <= ?", *params.MaxPrice)
	}
	if params.Search != "" {
		query = query.Where("LOWER(name) LIKE LOWER(?)", "%"+params.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, apperr.Internal("دریافت محصولات با مشکل مواجه شد", err)
	}

	var products []models.Product
	err := s.preloadAll(query).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, apperr.Internal("دریافت محصولات با مشکل مواجه شد", err)
	}

	return s.page(products, total, page, limit), nil
}

func (s *ProductService) page(products []models.Product, total int64, page, limit int) *ProductPage {
	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, formatProduct(p))
	}
	return &ProductPage{
		Data: views,
		Pagination: Pagination{
			Total:      total,
			Page:       page,
			Limit:      limit,
			TotalPages: totalPages(total, limit),
		},
	}
}

func totalPages(total int64, limit int) int {
	return int(math.Ceil(float64(total) / float64(limit)))
}

func (s *ProductService) Get(id uint) (*ProductView, error) {
	var product models.Product
	if err := s.preloadAll(s.db).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("محصول یافت نشد")
		}
		return nil, apperr.Internal("دریافت محصول با مشکل مواجه شد", err)
	}
	view := formatProduct(product)
	return &view, nil
}

type ProductInput struct {
	Name         string
	Description  string
	Price        float64
	Stock        *int  // nil leaves stock untouched on update
	IsActive     *bool // nil leaves the status untouched on update
	Discount     float64
	DiscountType models.DiscountType
	CategoryID   uint
	Fields       []FieldValueInput // nil leaves values untouched on update
	Labels       []uint            // nil leaves labels untouched on update
}

func (s *ProductService) uploadImages(files []*multipart.FileHeader) ([]storage.StoredFile, error) {
	uploaded := make([]storage.StoredFile, 0, len(files))
	for _, file := range files {
		stored, err := s.store.Upload(file, "products")
		if err != nil {
			keys := make([]string, 0, len(uploaded))
			for _, u := range uploaded {
				keys = append(keys, u.Key)
			}
			storage.Cleanup(s.store, s.log, keys...)
			return nil, apperr.Internal("آپلود تصویر با مشکل مواجه شد", err)
		}
		uploaded = append(uploaded, *stored)
	}
	return uploaded, nil
}

func uploadedKeys(uploaded []storage.StoredFile) []string {
	keys := make([]string, 0, len(uploaded))
	for _, u := range uploaded {
		keys = append(keys, u.Key)
	}
	return keys
}

// Create stores a product with its images (first upload becomes main),
// attribute values and label relations. Uploaded objects are removed
// best-effort when the database write fails.
func (s *ProductService) Create(input ProductInput, files []*multipart.FileHeader) (*ProductView, error) {
	if input.Name == "" {
		return nil, apperr.Validation("نام محصول الزامی است")
	}
	if input.CategoryID == 0 {
		return nil, apperr.Validation("دسته‌بندی محصول الزامی است")
	}
	var category models.Category
	if err := s.db.First(&category, input.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("دسته‌بندی یافت نشد")
		}
		return nil, apperr.Internal("دریافت دسته‌بندی با مشکل مواجه شد", err)
	}
	if input.DiscountType == "" {
		input.DiscountType = models.DiscountAmount
	}

	uploaded, err := s.uploadImages(files)
	if err != nil {
		return nil, err
	}

	product := models.Product{
		Name:         input.Name,
		Description:  input.Description,
		Price:        input.Price,
		IsActive:     true,
		Discount:     input.Discount,
		DiscountType: input.DiscountType,
		CategoryID:   input.CategoryID,
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	for i, img := range uploaded {
		product.Images = append(product.Images, models.ProductImage{
			URL:    img.URL,
			Key:    img.Key,
			IsMain: i == 0,
		})
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&product).Error; err != nil {
			return err
		}
		if input.Fields != nil {
			if err := ReplaceProductValues(tx, product.ID, input.Fields); err != nil {
				return err
			}
		}
		return replaceLabels(tx, product.ID, input.Labels)
	})
	if err != nil {
		storage.Cleanup(s.store, s.log, uploadedKeys(uploaded)...)
		return nil, apperr.Internal("ایجاد محصول با مشکل مواجه شد", err)
	}

	return s.Get(product.ID)
}

func replaceLabels(tx *gorm.DB, productID uint, labelIDs []uint) error {
	if labelIDs == nil {
		return nil
	}
	if err := tx.Where("product_id = ?", productID).Delete(&models.ProductLabel{}).Error; err != nil {
		return err
	}
	if len(labelIDs) == 0 {
		return nil
	}
	rels := make([]models.ProductLabel, 0, len(labelIDs))
	for _, id := range labelIDs {
		rels = append(rels, models.ProductLabel{ProductID: productID, LabelID: id})
	}
	return tx.Create(&rels).Error
}

// Update rewrites scalar fields and, when provided, replaces images, labels
// and attribute values wholesale. New images are uploaded before the old
// ones are deleted from storage.
func (s *ProductService) Update(id uint, input ProductInput, files []*multipart.FileHeader) (*ProductView, error) {
	var existing models.Product
	if err := s.db.Preload("Images").First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("محصول یافت نشد")
		}
		return nil, apperr.Internal("دریافت محصول با مشکل مواجه شد", err)
	}

	if input.CategoryID != 0 && input.CategoryID != existing.CategoryID {
		var category models.Category
		if err := s.db.First(&category, input.CategoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.NotFound("دسته‌بندی یافت نشد")
			}
			return nil, apperr.Internal("دریافت دسته‌بندی با مشکل مواجه شد", err)
		}
		existing.CategoryID = input.CategoryID
	}

	if input.Name != "" {
		existing.Name = input.Name
	}
	if input.Description != "" {
		existing.Description = input.Description
	}
	if input.Price != 0 {
		existing.Price = input.Price
	}
	if input.Stock != nil {
		existing.Stock = *input.Stock
	}
	if input.IsActive != nil {
		existing.IsActive = *input.IsActive
	}
	existing.Discount = input.Discount
	if input.DiscountType != "" {
		existing.DiscountType = input.DiscountType
	}

	var uploaded []storage.StoredFile
	if len(files) > 0 {
		var err error
		uploaded, err = s.uploadImages(files)
		if err != nil {
			return nil, err
		}
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Product{}).Where("id = ?", id).
			Updates(map[string]interface{}{
				"name":          existing.Name,
				"description":   existing.Description,
				"price":         existing.Price,
				"stock":         existing.Stock,
				"is_active":     existing.IsActive,
				"discount":      existing.Discount,
				"discount_type": existing.DiscountType,
				"category_id":   existing.CategoryID,
			}).Error; err != nil {
			return err
		}

		if len(uploaded) > 0 {
			if err := tx.Where("product_id = ?", id).Delete(&models.ProductImage{}).Error; err != nil {
				return err
			}
			images := make([]models.ProductImage, 0, len(uploaded))
			for i, img := range uploaded {
				images = append(images, models.ProductImage{
					ProductID: id,
					URL:       img.URL,
					Key:       img.Key,
					IsMain:    i == 0,
				})
			}
			if err := tx.Create(&images).Error; err != nil {
				return err
			}
		}

		if input.Fields != nil {
			if err := ReplaceProductValues(tx, id, input.Fields); err != nil {
				return err
			}
		}
		return replaceLabels(tx, id, input.Labels)
	})
	if err != nil {
		storage.Cleanup(s.store, s.log, uploadedKeys(uploaded)...)
		return nil, apperr.Internal("بروزرسانی محصول با مشکل مواجه شد", err)
	}

	// Old objects go only after the database swap settles.
	if len(uploaded) > 0 {
		for _, img := range existing.Images {
			storage.Cleanup(s.store, s.log, img.Key)
		}
	}

	return s.Get(id)
}

// Delete removes the product row together with its images, attribute values
// and label relations; stored objects are cleaned up best-effort.
func (s *ProductService) Delete(id uint) error {
	var existing models.Product
	if err := s.db.Preload("Images").First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("محصول یافت نشد")
		}
		return apperr.Internal("دریافت محصول با مشکل مواجه شد", err)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductImage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductFieldValue{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductLabel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&existing).Error
	})
	if err != nil {
		return apperr.Internal("حذف محصول با مشکل مواجه شد", err)
	}

	for _, img := range existing.Images {
		storage.Cleanup(s.store, s.log, img.Key)
	}
	return nil
}

// ListActive is the storefront listing: active products only.
func (s *ProductService) ListActive(page, limit int) (*ProductPage, error) {
	return s.listWhere(page, limit, "is_active = ?", true)
}

// ListByCategory is the storefront category listing.
func (s *ProductService) ListByCategory(categoryID uint, page, limit int) (*ProductPage, error) {
	return s.listWhere(page, limit, "is_active = ? AND category_id = ?", true, categoryID)
}

// ListByLabel lists active products carrying the named label.
func (s *ProductService) ListByLabel(labelName string, page, limit int) (*ProductPage, error) {
	return s.listWhere(page, limit,
		"is_active = ? AND id IN (?)", true,
		s.db.Model(&models.ProductLabel{}).
			Select("product_labels.product_id").
			Joins("JOIN labels ON labels.id = product_labels.label_id").
			Where("labels.name = ?", labelName),
	)
}

func (s *ProductService) listWhere(page, limit int, cond string, args ...interface{}) (*ProductPage, error) {
	page, limit = normalizePaging(page, limit)
	query := s.db.Model(&models.Product{}).Where(cond, args...)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, apperr.Internal("دریافت محصولات با مشکل مواجه شد", err)
	}

	var products []models.Product
	err := s.preloadAll(query).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, apperr.Internal("دریافت محصولات با مشکل مواجه شد", err)
	}

	return s.page(products, total, page, limit), nil
}
