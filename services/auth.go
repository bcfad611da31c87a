package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/MrPouyaSaad/rivaland-backend/apperr"
	"github.com/MrPouyaSaad/rivaland-backend/messaging"
	"github.com/MrPouyaSaad/rivaland-backend/models"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const loginCodeTTL = 2 * time.Minute

type AuthService struct {
	db        *gorm.DB
	log       *zap.SugaredLogger
	messages  *messaging.Service
	jwtSecret []byte
	adminUser string
	adminPass string
}

func NewAuthService(db *gorm.DB, log *zap.SugaredLogger, messages *messaging.Service, jwtSecret, adminUser, adminPass string) *AuthService {
	return &AuthService{
		db:        db,
		log:       log,
		messages:  messages,
		jwtSecret: []byte(jwtSecret),
		adminUser: adminUser,
		adminPass: adminPass,
	}
}

type TokenResult struct {
	Token     string `json:"token"`
	Role      string `json:"role"`
	IsNewUser bool   `json:"isNewUser,omitempty"`
}

func (s *AuthService) generateToken(userID uint, role string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"role": role,
		"exp":  time.Now().Add(ttl).Unix(),
		"iat":  time.Now().Unix(),
	}
	if userID != 0 {
		claims["sub"] = fmt.Sprintf("%d", userID)
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// AdminLogin checks the panel credentials configured in the environment.
func (s *AuthService) AdminLogin(username, password string) (*TokenResult, error) {
	if s.adminUser == "" || username != s.adminUser || password != s.adminPass {
		return nil, apperr.Validation("نام کاربری یا رمز عبور اشتباه است")
	}
	token, err := s.generateToken(0, "admin", 24*time.Hour)
	if err != nil {
		return nil, apperr.Internal("صدور توکن با مشکل مواجه شد", err)
	}
	return &TokenResult{Token: token, Role: "admin"}, nil
}

func randomCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(90000))
	if err != nil {
		return "12345"
	}
	return fmt.Sprintf("%05d", n.Int64()+10000)
}

// RequestLoginCode stores a fresh 5-digit code for the phone and hands it to
// the message channel.
func (s *AuthService) RequestLoginCode(phone string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return apperr.Validation("شماره تلفن الزامی است")
	}

	code := randomCode()
	expiresAt := time.Now().Add(loginCodeTTL)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("phone = ?", phone).Delete(&models.LoginCode{}).Error; err != nil {
			return err
		}
		return tx.Create(&models.LoginCode{Phone: phone, Code: code, ExpiresAt: expiresAt}).Error
	})
	if err != nil {
		return apperr.Internal("ارسال کد با مشکل مواجه شد", err)
	}

	s.messages.SendLoginCode(phone, code)
	return nil
}

// VerifyLoginCode validates the code, auto-registers unknown phones and
// issues a one-week token. Used codes are deleted.
func (s *AuthService) VerifyLoginCode(phone, code string) (*TokenResult, error) {
	var record models.LoginCode
	err := s.db.Where("phone = ?", phone).First(&record).Error
	if err != nil || record.Code != code || record.ExpiresAt.Before(time.Now()) {
		return nil, apperr.Validation("کد نامعتبر یا منقضی شده است")
	}

	isNew := false
	var user models.User
	err = s.db.Where("phone = ?", phone).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{
			Phone:    phone,
			Username: fmt.Sprintf("user_%d", time.Now().Unix()),
			Role:     "user",
		}
		if err := s.db.Create(&user).Error; err != nil {
			return nil, apperr.Internal("ثبت‌نام کاربر با مشکل مواجه شد", err)
		}
		isNew = true
	} else if err != nil {
		return nil, apperr.Internal("ورود با مشکل مواجه شد", err)
	}

	now := time.Now()
	s.db.Model(&user).Update("last_login", now)
	s.db.Where("phone = ?", phone).Delete(&models.LoginCode{})

	token, err := s.generateToken(user.ID, user.Role, 7*24*time.Hour)
	if err != nil {
		return nil, apperr.Internal("صدور توکن با مشکل مواجه شد", err)
	}
	return &TokenResult{Token: token, Role: user.Role, IsNewUser: isNew}, nil
}

// Register creates a password-backed account.
func (s *AuthService) Register(username, email, password string) (*TokenResult, error) {
	if email == "" || password == "" {
		return nil, apperr.Validation("ایمیل و رمز عبور الزامی هستند")
	}

	var count int64
	if err := s.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, apperr.Internal("ثبت‌نام کاربر با مشکل مواجه شد", err)
	}
	if count > 0 {
		return nil, apperr.Conflict("ایمیل قبلا ثبت شده است")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Internal("ثبت‌نام کاربر با مشکل مواجه شد", err)
	}

	user := models.User{
		Username: username,
		Email:    email,
		Password: string(hash),
		Role:     "user",
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, apperr.Internal("ثبت‌نام کاربر با مشکل مواجه شد", err)
	}

	token, err := s.generateToken(user.ID, user.Role, 7*24*time.Hour)
	if err != nil {
		return nil, apperr.Internal("صدور توکن با مشکل مواجه شد", err)
	}
	return &TokenResult{Token: token, Role: user.Role, IsNewUser: true}, nil
}

// Login authenticates a password-backed account.
func (s *AuthService) Login(email, password string) (*TokenResult, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, apperr.Validation("ایمیل یا رمز عبور اشتباه است")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, apperr.Validation("ایمیل یا رمز عبور اشتباه است")
	}

	now := time.Now()
	s.db.Model(&user).Update("last_login", now)

	token, err := s.generateToken(user.ID, user.Role, 7*24*time.Hour)
	if err != nil {
		return nil, apperr.Internal("صدور توکن با مشکل مواجه شد", err)
	}
	return &TokenResult{Token: token, Role: user.Role}, nil
}
