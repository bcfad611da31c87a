package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MrPouyaSaad/rivaland-backend/apperr"
	"github.com/MrPouyaSaad/rivaland-backend/messaging"
	"github.com/MrPouyaSaad/rivaland-backend/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type OrderService struct {
	db       *gorm.DB
	log      *zap.SugaredLogger
	messages *messaging.Service
}

func NewOrderService(db *gorm.DB, log *zap.SugaredLogger, messages *messaging.Service) *OrderService {
	return &OrderService{db: db, log: log, messages: messages}
}

type OrderListParams struct {
	Page   int
	Limit  int
	Status string
	Search string // matches user name or email
}

type StatusCount struct {
	Status models.OrderStatus `json:"status"`
	Count  int64              `json:"count"`
}

type OrderPage struct {
	Orders     []models.Order `json:"orders"`
	Pagination Pagination     `json:"pagination"`
	Stats      []StatusCount  `json:"stats"`
}

func parseOrderStatus(status string) (models.OrderStatus, error) {
	switch models.OrderStatus(strings.ToLower(status)) {
	case models.OrderStatusPending:
		return models.OrderStatusPending, nil
	case models.OrderStatusPaid:
		return models.OrderStatusPaid, nil
	case models.OrderStatusShipped:
		return models.OrderStatusShipped, nil
	case models.OrderStatusDelivered:
		return models.OrderStatusDelivered, nil
	case models.OrderStatusReturned:
		return models.OrderStatusReturned, nil
	case models.OrderStatusCancelled:
		return models.OrderStatusCancelled, nil
	}
	return "", apperr.Validation("وضعیت سفارش معتبر نیست")
}

func parsePaymentStatus(status string) (models.PaymentStatus, error) {
	switch models.PaymentStatus(strings.ToLower(status)) {
	case models.PaymentStatusPending:
		return models.PaymentStatusPending, nil
	case models.PaymentStatusPaid:
		return models.PaymentStatusPaid, nil
	case models.PaymentStatusFailed:
		return models.PaymentStatusFailed, nil
	case models.PaymentStatusRefunded:
		return models.PaymentStatusRefunded, nil
	}
	return "", apperr.Validation("وضعیت پرداخت معتبر نیست")
}

// List returns a filtered admin page plus order counts grouped by status.
func (s *OrderService) List(params OrderListParams) (*OrderPage, error) {
	page, limit := normalizePaging(params.Page, params.Limit)

	query := s.db.Model(&models.Order{})
	if params.Status != "" {
		status, err := parseOrderStatus(params.Status)
		if err != nil {
			return nil, err
		}
		query = query.Where("status = ?", status)
	}
	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		query = query.
			Joins("JOIN users ON users.id = orders.user_id").
			Where("LOWER(users.username) LIKE LOWER(?) OR LOWER(users.email) LIKE LOWER(?)", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, apperr.Internal("دریافت سفارش‌ها با مشکل مواجه شد", err)
	}

	var orders []models.Order
	err := query.Preload("User").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, apperr.Internal("دریافت سفارش‌ها با مشکل مواجه شد", err)
	}

	var stats []StatusCount
	err = s.db.Model(&models.Order{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&stats).Error
	if err != nil {
		return nil, apperr.Internal("دریافت آمار سفارش‌ها با مشکل مواجه شد", err)
	}

	return &OrderPage{
		Orders: orders,
		Pagination: Pagination{
			Total:      total,
			Page:       page,
			Limit:      limit,
			TotalPages: totalPages(total, limit),
		},
		Stats: stats,
	}, nil
}

func (s *OrderService) Get(id uint) (*models.Order, error) {
	var order models.Order
	err := s.db.
		Preload("Items.Product.Images").
		Preload("User").
		First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("سفارش یافت نشد")
		}
		return nil, apperr.Internal("دریافت سفارش با مشکل مواجه شد", err)
	}
	return &order, nil
}

// UpdateStatus changes the order status; the tracking code is only recorded
// when the order moves to shipped. The customer is notified via the message
// channel.
func (s *OrderService) UpdateStatus(id uint, status, trackingCode string) (*models.Order, error) {
	parsed, err := parseOrderStatus(status)
	if err != nil {
		return nil, err
	}

	order, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"status": parsed, "updated_at": time.Now()}
	if parsed == models.OrderStatusShipped && trackingCode != "" {
		updates["shipping_tracking_code"] = trackingCode
	}
	if err := s.db.Model(order).Updates(updates).Error; err != nil {
		return nil, apperr.Internal("بروزرسانی وضعیت سفارش با مشکل مواجه شد", err)
	}

	if order.User != nil {
		s.messages.SendOrderStatusUpdate(order.User, order.ID, string(parsed), trackingCode)
	}
	return s.Get(id)
}

// UpdatePayment records payment method, status and settlement time.
func (s *OrderService) UpdatePayment(id uint, method, status string, paidAt *time.Time) (*models.Order, error) {
	parsed, err := parsePaymentStatus(status)
	if err != nil {
		return nil, err
	}

	order, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	when := time.Now()
	if paidAt != nil {
		when = *paidAt
	}
	updates := map[string]interface{}{
		"payment_method": method,
		"payment_status": parsed,
		"paid_at":        when,
	}
	if err := s.db.Model(order).Updates(updates).Error; err != nil {
		return nil, apperr.Internal("ثبت اطلاعات پرداخت با مشکل مواجه شد", err)
	}

	if order.User != nil {
		s.messages.SendPaymentUpdate(order.User, order.ID, string(parsed), method)
	}
	return s.Get(id)
}

// effectivePrice applies the product discount to the list price; the result
// is snapshotted onto the order item.
func effectivePrice(p models.Product) float64 {
	switch p.DiscountType {
	case models.DiscountPercent:
		price := p.Price * (1 - p.Discount/100)
		if price < 0 {
			return 0
		}
		return price
	default:
		price := p.Price - p.Discount
		if price < 0 {
			return 0
		}
		return price
	}
}

// CreateFromCart turns the user's cart into a pending order: prices are
// snapshotted with discounts applied, stock is decremented and the cart is
// emptied, all in one transaction.
func (s *OrderService) CreateFromCart(userID uint) (*models.Order, error) {
	var items []models.CartItem
	err := s.db.Where("user_id = ?", userID).Preload("Product").Find(&items).Error
	if err != nil {
		return nil, apperr.Internal("ثبت سفارش با مشکل مواجه شد", err)
	}
	if len(items) == 0 {
		return nil, apperr.Validation("سبد خرید خالی است")
	}

	order := models.Order{UserID: userID}
	for _, item := range items {
		if item.Product == nil {
			return nil, apperr.NotFound("محصول یافت نشد")
		}
		if item.Product.Stock < item.Quantity {
			return nil, apperr.Validation("موجودی محصول " + item.Product.Name + " کافی نیست")
		}
		price := effectivePrice(*item.Product)
		order.Items = append(order.Items, models.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     price,
		})
		order.Total += price * float64(item.Quantity)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		for _, item := range items {
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", item.ProductID, item.Quantity).
				Update("stock", gorm.Expr("stock - ?", item.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return errors.New("insufficient stock")
			}
		}
		return tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, apperr.Internal("ثبت سفارش با مشکل مواجه شد", err)
	}

	return s.Get(order.ID)
}

type UserOrderItemView struct {
	ProductID uint    `json:"productId"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
}

type UserOrderView struct {
	ID         string              `json:"id"`
	Date       time.Time           `json:"date"`
	Status     models.OrderStatus  `json:"status"`
	StatusText string              `json:"statusText"`
	Total      float64             `json:"total"`
	Items      []UserOrderItemView `json:"items"`
}

func statusText(status models.OrderStatus) string {
	switch status {
	case models.OrderStatusPending:
		return "در انتظار پرداخت"
	case models.OrderStatusPaid:
		return "پرداخت شده"
	case models.OrderStatusShipped:
		return "ارسال شده"
	case models.OrderStatusDelivered:
		return "تحویل داده شده"
	case models.OrderStatusReturned:
		return "مرجوع شده"
	case models.OrderStatusCancelled:
		return "لغو شده"
	}
	return string(status)
}

// UserOrders lists a user's order history for the storefront profile.
func (s *OrderService) UserOrders(userID uint, status string) ([]UserOrderView, error) {
	query := s.db.Where("user_id = ?", userID)
	if status != "" {
		parsed, err := parseOrderStatus(status)
		if err != nil {
			return nil, err
		}
		query = query.Where("status = ?", parsed)
	}

	var orders []models.Order
	err := query.Preload("Items.Product.Images").
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, apperr.Internal("دریافت سفارش‌ها با مشکل مواجه شد", err)
	}

	views := make([]UserOrderView, 0, len(orders))
	for _, order := range orders {
		view := UserOrderView{
			ID:         fmt.Sprintf("ORD-%d", order.ID),
			Date:       order.CreatedAt,
			Status:     order.Status,
			StatusText: statusText(order.Status),
			Total:      order.Total,
		}
		for _, item := range order.Items {
			iv := UserOrderItemView{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Price:     item.Price,
			}
			if item.Product != nil {
				iv.Name = item.Product.Name
				iv.Image = mainImageURL(item.Product.Images)
			}
			view.Items = append(view.Items, iv)
		}
		views = append(views, view)
	}
	return views, nil
}
