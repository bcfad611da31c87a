package cartController

import (
	"net/http"

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

func GetCart(svc *services.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := authedUser(c)
		if !ok {
			return
		}
		cart, err := svc.Get(userID)
		if err != nil {
			respond.Error(c, err)
			return
		}
		respond.OK(c, cart)
	}
}

type cartRequest struct {
	ProductID uint `json:"productId" binding:"required"`
	Quantity  int  `json:"quantity"`
}

func AddToCart(svc *services.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := authedUser(c)
		if !ok {
			return
		}

		var req cartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.BadRequest(c, "بدنه درخواست نامعتبر است")
			return
		}

		item, err := svc.Add(userID, req.ProductID, req.Quantity)
		if err != nil {
			respond.Error(c, err)
			return
		}
		respond.OK(c, item)
	}
}

func UpdateCartItem(svc *services.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := authedUser(c)
		if !ok {
			return
		}

		var req cartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.BadRequest(c, "بدنه درخواست نامعتبر است")
			return
		}

		item, err := svc.UpdateQuantity(userID, req.ProductID, req.Quantity)
		if err != nil {
			respond.Error(c, err)
			return
		}
		if item == nil {
			respond.Message(c, "کالا از سبد خرید حذف شد")
			return
		}
		respond.OK(c, item)
	}
}

func RemoveFromCart(svc *services.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := authedUser(c)
		if !ok {
			return
		}

		var req cartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.BadRequest(c, "بدنه درخواست نامعتبر است")
			return
		}

		if err := svc.Remove(userID, req.ProductID); err != nil {
			respond.Error(c, err)
			return
		}
		respond.Message(c, "کالا از سبد خرید حذف شد")
	}
}
