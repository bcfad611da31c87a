package labelController

import (
	"github.com/MrPouyaSaad/rivaland-backend/apperr"
	"github.com/MrPouyaSaad/rivaland-backend/controllers/respond"
	"github.com/MrPouyaSaad/rivaland-backend/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetLabels lists the static label taxonomy.
func GetLabels(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var labels []models.Label
		if err := db.Order("id ASC").Find(&labels).Error; err != nil {
			respond.Error(c, apperr.Internal("دریافت لیبل‌ها با مشکل مواجه شد", err))
			return
		}
		respond.OKMessage(c, labels, "لیست لیبل‌ها با موفقیت ارسال شد")
	}
}
