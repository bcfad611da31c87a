package services

import (
	"errors"
	"time"

	"github.com/MrPouyaSaad/rivaland-backend/apperr"
	"github.com/MrPouyaSaad/rivaland-backend/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type UserService struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewUserService(db *gorm.DB, log *zap.SugaredLogger) *UserService {
	return &UserService{db: db, log: log}
}

// UserView is the admin listing row with order aggregates attached.
type UserView struct {
	ID            uint       `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	City          string     `json:"city"`
	CreatedAt     time.Time  `json:"created_at"`
	LastLogin     *time.Time `json:"last_login"`
	OrderCount    int        `json:"orderCount"`
	TotalPurchase float64    `json:"totalPurchase"`
	Status        string     `json:"status"`
}

func formatUser(u models.User) UserView {
	view := UserView{
		ID:        u.ID,
		Name:      u.Username,
		Email:     u.Email,
		City:      u.City,
		CreatedAt: u.CreatedAt,
		LastLogin: u.LastLogin,
		Status:    "inactive",
	}
	if view.Name == "" {
		view.Name = "نامشخص"
	}
	if view.Email == "" {
		view.Email = "ندارد"
	}
	if view.City == "" {
		view.City = "نامشخص"
	}
	if u.IsActive {
		view.Status = "active"
	}
	view.OrderCount = len(u.Orders)
	for _, order := range u.Orders {
		if order.Status == models.OrderStatusPaid {
			view.TotalPurchase += order.Total
		}
	}
	return view
}

// List filters users (all/active/inactive/buyers/no_buy/pending) and searches
// by name or email, attaching order count and paid purchase total per user.
func (s *UserService) List(filter, search string) ([]UserView, error) {
	query := s.db.Model(&models.User{})

	switch filter {
	case "active":
		query = query.Where("is_active = ?", true)
	case "inactive":
		query = query.Where("is_active = ?", false)
	case "buyers":
		query = query.Where("EXISTS (SELECT 1 FROM orders WHERE orders.user_id = users.id)")
	case "no_buy":
		query = query.Where("NOT EXISTS (SELECT 1 FROM orders WHERE orders.user_id = users.id)")
	case "pending":
		query = query.Where("EXISTS (SELECT 1 FROM orders WHERE orders.user_id = users.id AND orders.status = ?)",
			models.OrderStatusPending)
	}

	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("LOWER(username) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?)", pattern, pattern)
	}

	var users []models.User
	if err := query.Preload("Orders").Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, apperr.Internal("دریافت کاربران با مشکل مواجه شد", err)
	}

	views := make([]UserView, 0, len(users))
	for _, u := range users {
		views = append(views, formatUser(u))
	}
	return views, nil
}

func (s *UserService) Get(id uint) (*UserView, error) {
	var user models.User
	if err := s.db.Preload("Orders").First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("کاربر پیدا نشد")
		}
		return nil, apperr.Internal("دریافت کاربر با مشکل مواجه شد", err)
	}
	view := formatUser(user)
	return &view, nil
}

func (s *UserService) Delete(id uint) error {
	result := s.db.Delete(&models.User{}, id)
	if result.Error != nil {
		return apperr.Internal("حذف کاربر با مشکل مواجه شد", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("کاربر پیدا نشد")
	}
	return nil
}

type ProfileView struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	City      string    `json:"city"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *UserService) GetProfile(userID uint) (*ProfileView, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("کاربر پیدا نشد")
		}
		return nil, apperr.Internal("دریافت کاربر با مشکل مواجه شد", err)
	}
	return &ProfileView{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Phone:     user.Phone,
		City:      user.City,
		Address:   user.Address,
		CreatedAt: user.CreatedAt,
	}, nil
}

type ProfileUpdate struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	City    string `json:"city"`
	Address string `json:"address"`
}

func (s *UserService) UpdateProfile(userID uint, update ProfileUpdate) (*ProfileView, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("کاربر پیدا نشد")
		}
		return nil, apperr.Internal("دریافت کاربر با مشکل مواجه شد", err)
	}

	if update.Name != "" {
		user.Username = update.Name
	}
	if update.Email != "" {
		user.Email = update.Email
	}
	if update.Phone != "" {
		user.Phone = update.Phone
	}
	if update.City != "" {
		user.City = update.City
	}
	if update.Address != "" {
		user.Address = update.Address
	}

	if err := s.db.Save(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("ایمیل یا شماره تلفن قبلا ثبت شده است")
		}
		return nil, apperr.Internal("خطا در بروزرسانی اطلاعات کاربر", err)
	}
	return s.GetProfile(userID)
}
