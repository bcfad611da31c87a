package dashboardController

import (
	"github.com/MrPouyaSaad/rivaland-backend/controllers/respond"
	"github.com/MrPouyaSaad/rivaland-backend/services"
	"github.com/gin-gonic/gin"
)

// GetSummary returns the lifetime revenue/orders/users totals.
func GetSummary(svc *services.DashboardService) gin.HandlerFunc {
	return func(c *gin.Context) {
		summary, err := svc.GetSummary()
		if err != nil {
			respond.Error(c, err)
			return
		}
		respond.OK(c, summary)
	}
}

// GetOverview returns the month-over-month KPI block with charts and product
// rankings.
func GetOverview(svc *services.DashboardService) gin.HandlerFunc {
	return func(c *gin.Context) {
		overview, err := svc.GetOverview()
		if err != nil {
			respond.Error(c, err)
			return
		}
		respond.OK(c, overview)
	}
}
