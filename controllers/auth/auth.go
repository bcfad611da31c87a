package authController

import (
	"github.com/MrPouyaSaad/rivaland-backend/controllers/respond"
	"github.com/MrPouyaSaad/rivaland-backend/services"
	"github.com/gin-gonic/gin"
)

type adminLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func AdminLogin(svc *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req adminLoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.BadRequest(c, "نام کاربری و رمز عبور الزامی هستند")
			return
		}
		result, err := svc.AdminLogin(req.Username, req.Password)
		if err != nil {
			respond.Error(c, err)
			return
		}
		respond.OKMessage(c, result, "ورود با موفقیت انجام شد")
	}
}

type phoneRequest struct {
	Phone string `json:"phone" binding:"required"`
}

func RequestCode(svc *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req phoneRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.BadRequest(c, "شماره تلفن الزامی است")
			return
		}
		if err := svc.RequestLoginCode(req.Phone); err != nil {
			respond.Error(c, err)
			return
		}
		respond.Message(c, "کد ورود ارسال شد")
	}
}

type verifyRequest struct {
	Phone string `json:"phone" binding:"required"`
	Code  string `json:"code" binding:"required"`
}

func VerifyCode(svc *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req verifyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.BadRequest(c, "شماره تلفن و کد الزامی هستند")
			return
		}
		result, err := svc.VerifyLoginCode(req.Phone, req.Code)
		if err != nil {
			respond.Error(c, err)
			return
		}
		respond.OKMessage(c, result, "ورود با موفقیت انجام شد")
	}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func Register(svc *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req registerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.BadRequest(c, "ایمیل و رمز عبور الزامی هستند")
			return
		}
		result, err := svc.Register(req.Username, req.Email, req.Password)
		if err != nil {
			respond.Error(c, err)
			return
		}
		respond.Created(c, result, "ثبت‌نام با موفقیت انجام شد")
	}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func Login(svc *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.BadRequest(c, "ایمیل و رمز عبور الزامی هستند")
			return
		}
		result, err := svc.Login(req.Email, req.Password)
		if err != nil {
			respond.Error(c, err)
			return
		}
		respond.OKMessage(c, result, "ورود با موفقیت انجام شد")
	}
}
