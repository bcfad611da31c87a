package shopController

import (
	"net/http"

	orderController "github.com/MrPouyaSaad/rivaland-backend/controllers/order"
	"github.com/MrPouyaSaad/rivaland-backend/controllers/respond"
	"github.com/MrPouyaSaad/rivaland-backend/middleware"
	"github.com/MrPouyaSaad/rivaland-backend/services"
	"github.com/gin-gonic/gin"
)

func authedUser(c *gin.Context) (uint, bool) {
	id, ok := middleware.UserID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "کاربر احراز هویت نشده است"})
		return 0, false
	}
	return id, true
}

func GetProfile(svc *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := authedUser(c)
		if !ok {
			return
		}
		profile, err := svc.GetProfile(userID)
		if err != nil {
			respond.Error(c, err)
			return
		}
		respond.OK(c, profile)
	}
}

func UpdateProfile(svc *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := authedUser(c)
		if !ok {
			return
		}

		var update services.ProfileUpdate
		if err := c.ShouldBindJSON(&update); err != nil {
			respond.BadRequest(c, "بدنه درخواست نامعتبر است")
			return
		}

		profile, err := svc.UpdateProfile(userID, update)
		if err != nil {
			respond.Error(c, err)
			return
		}
		respond.OKMessage(c, profile, "اطلاعات کاربر بروزرسانی شد")
	}
}

// CreateOrder checks out the user's cart and notifies the admin feed.
func CreateOrder(svc *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := authedUser(c)
		if !ok {
			return
		}
		order, err := svc.CreateFromCart(userID)
		if err != nil {
			respond.Error(c, err)
			return
		}
		orderController.BroadcastOrderUpdate(order)
		respond.Created(c, order, "سفارش با موفقیت ثبت شد")
	}
}

// GetMyOrders returns the authenticated user's order history.
func GetMyOrders(svc *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := authedUser(c)
		if !ok {
			return
		}
		orders, err := svc.UserOrders(userID, c.Query("status"))
		if err != nil {
			respond.Error(c, err)
			return
		}
		respond.OK(c, orders)
	}
}
