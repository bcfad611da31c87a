package services

import (
	"errors"

	"github.com/MrPouyaSaad/rivaland-backend/apperr"
	"github.com/MrPouyaSaad/rivaland-backend/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CartService struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewCartService(db *gorm.DB, log *zap.SugaredLogger) *CartService {
	return &CartService{db: db, log: log}
}

type CartView struct {
	Items         []models.CartItem `json:"items"`
	TotalQuantity int               `json:"totalQuantity"`
}

func (s *CartService) Get(userID uint) (*CartView, error) {
	var items []models.CartItem
	err := s.db.Where("user_id = ?", userID).
		Preload("Product.Images").
		Preload("Product.Labels.Label").
		Find(&items).Error
	if err != nil {
		return nil, apperr.Internal("خطا در دریافت سبد خرید", err)
	}

	view := &CartView{Items: items}
	for _, item := range items {
		view.TotalQuantity += item.Quantity
	}
	return view, nil
}

// Add puts a product in the cart, bumping the quantity when the line already
// exists.
func (s *CartService) Add(userID, productID uint, quantity int) (*models.CartItem, error) {
	if quantity <= 0 {
		quantity = 1
	}

	var product models.Product
	if err := s.db.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("محصول یافت نشد")
		}
		return nil, apperr.Internal("خطا در افزودن به سبد خرید", err)
	}

	var item models.CartItem
	err := s.db.Where("user_id = ? AND product_id = ?", userID, productID).First(&item).Error
	switch {
	case err == nil:
		item.Quantity += quantity
		if err := s.db.Save(&item).Error; err != nil {
			return nil, apperr.Internal("خطا در افزودن به سبد خرید", err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		item = models.CartItem{UserID: userID, ProductID: productID, Quantity: quantity}
		if err := s.db.Create(&item).Error; err != nil {
			return nil, apperr.Internal("خطا در افزودن به سبد خرید", err)
		}
	default:
		return nil, apperr.Internal("خطا در افزودن به سبد خرید", err)
	}
	return &item, nil
}

// UpdateQuantity sets a line's quantity; zero or less removes the line.
func (s *CartService) UpdateQuantity(userID, productID uint, quantity int) (*models.CartItem, error) {
	if quantity <= 0 {
		if err := s.Remove(userID, productID); err != nil {
			return nil, err
		}
		return nil, nil
	}

	var item models.CartItem
	if err := s.db.Where("user_id = ? AND product_id = ?", userID, productID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("کالا در سبد خرید نیست")
		}
		return nil, apperr.Internal("خطا در بروزرسانی تعداد کالا", err)
	}

	item.Quantity = quantity
	if err := s.db.Save(&item).Error; err != nil {
		return nil, apperr.Internal("خطا در بروزرسانی تعداد کالا", err)
	}
	return &item, nil
}

func (s *CartService) Remove(userID, productID uint) error {
	result := s.db.Where("user_id = ? AND product_id = ?", userID, productID).Delete(&models.CartItem{})
	if result.Error != nil {
		return apperr.Internal("خطا در حذف کالا از سبد خرید", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("کالا در سبد خرید نیست")
	}
	return nil
}
