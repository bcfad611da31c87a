package services

import (
	"errors"
	"mime/multipart"

	"github.com/MrPouyaSaad/rivaland-backend/apperr"
	"github.com/MrPouyaSaad/rivaland-backend/models"
	"github.com/MrPouyaSaad/rivaland-backend/storage"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BannerService manages storefront content banners (slider, product, small).
type BannerService struct {
	db    *gorm.DB
	store storage.Storage
	log   *zap.SugaredLogger
}

func NewBannerService(db *gorm.DB, store storage.Storage, log *zap.SugaredLogger) *BannerService {
	return &BannerService{db: db, store: store, log: log}
}

func validBannerType(t models.BannerType) bool {
	switch t {
	case models.BannerSlider, models.BannerProduct, models.BannerSmall:
		return true
	}
	return false
}

func (s *BannerService) List(bannerType string) ([]models.Banner, error) {
	query := s.db.Model(&models.Banner{})
	if bannerType != "" {
		if !validBannerType(models.BannerType(bannerType)) {
			return nil, apperr.Validation("نوع بنر معتبر نیست")
		}
		query = query.Where("type = ?", bannerType)
	}

	var banners []models.Banner
	if err := query.Order("created_at DESC").Find(&banners).Error; err != nil {
		return nil, apperr.Internal("دریافت بنرها با مشکل مواجه شد", err)
	}
	return banners, nil
}

func (s *BannerService) Create(bannerType, title, link string, image *multipart.FileHeader) (*models.Banner, error) {
	if !validBannerType(models.BannerType(bannerType)) {
		return nil, apperr.Validation("نوع بنر معتبر نیست")
	}
	if image == nil {
		return nil, apperr.Validation("تصویر بنر الزامی است")
	}

	uploaded, err := s.store.Upload(image, "banners")
	if err != nil {
		return nil, apperr.Internal("آپلود تصویر با مشکل مواجه شد", err)
	}

	banner := models.Banner{
		Type:     models.BannerType(bannerType),
		Title:    title,
		Link:     link,
		ImageURL: uploaded.URL,
		ImageKey: uploaded.Key,
	}
	if err := s.db.Create(&banner).Error; err != nil {
		storage.Cleanup(s.store, s.log, uploaded.Key)
		return nil, apperr.Internal("ایجاد بنر با مشکل مواجه شد", err)
	}
	return &banner, nil
}

func (s *BannerService) Delete(id uint) error {
	var banner models.Banner
	if err := s.db.First(&banner, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("بنر یافت نشد")
		}
		return apperr.Internal("دریافت بنر با مشکل مواجه شد", err)
	}

	if err := s.db.Delete(&banner).Error; err != nil {
		return apperr.Internal("حذف بنر با مشکل مواجه شد", err)
	}

	storage.Cleanup(s.store, s.log, banner.ImageKey)
	return nil
}
