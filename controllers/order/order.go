package orderController

import (
	"strconv"
	"time"

	"github.com/MrPouyaSaad/rivaland-backend/controllers/respond"
	"github.com/MrPouyaSaad/rivaland-backend/services"
	"github.com/gin-gonic/gin"
)

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		respond.BadRequest(c, "شناسه معتبر نیست")
		return 0, false
	}
	return uint(id), true
}

func queryInt(c *gin.Context, name string, fallback int) int {
	v, err := strconv.Atoi(c.DefaultQuery(name, strconv.Itoa(fallback)))
	if err != nil {
		return fallback
	}
	return v
}

func GetOrders(svc *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, err := svc.List(services.OrderListParams{
			Page:   queryInt(c, "page", 1),
			Limit:  queryInt(c, "limit", 10),
			Status: c.Query("status"),
			Search: c.Query("search"),
		})
		if err != nil {
			respond.Error(c, err)
			return
		}
		c.JSON(200, gin.H{
			"success":    true,
			"data":       page.Orders,
			"pagination": page.Pagination,
			"stats":      page.Stats,
		})
	}
}

func GetOrder(svc *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		order, err := svc.Get(id)
		if err != nil {
			respond.Error(c, err)
			return
		}
		respond.OK(c, order)
	}
}

type updateStatusRequest struct {
	Status       string `json:"status" binding:"required"`
	TrackingCode string `json:"trackingCode"`
}

func UpdateOrderStatus(svc *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}

		var req updateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.BadRequest(c, "بدنه درخواست نامعتبر است")
			return
		}

		order, err := svc.UpdateStatus(id, req.Status, req.TrackingCode)
		if err != nil {
			respond.Error(c, err)
			return
		}

		BroadcastOrderUpdate(order)
		respond.OKMessage(c, order, "وضعیت سفارش بروزرسانی شد")
	}
}

type updatePaymentRequest struct {
	Method string     `json:"method" binding:"required"`
	Status string     `json:"status" binding:"required"`
	PaidAt *time.Time `json:"paidAt"`
}

func UpdateOrderPayment(svc *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}

		var req updatePaymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.BadRequest(c, "بدنه درخواست نامعتبر است")
			return
		}

		order, err := svc.UpdatePayment(id, req.Method, req.Status, req.PaidAt)
		if err != nil {
			respond.Error(c, err)
			return
		}

		BroadcastOrderUpdate(order)
		respond.OKMessage(c, order, "اطلاعات پرداخت ثبت شد")
	}
}
