package services

import (
	"github.com/MrPouyaSaad/rivaland-backend/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EnsureLabels seeds the static label taxonomy, skipping names that already
// exist so redeploys stay idempotent.
func EnsureLabels(db *gorm.DB, log *zap.SugaredLogger) error {
	for _, label := range models.DefaultLabels {
		var count int64
		if err := db.Model(&models.Label{}).Where("name = ?", label.Name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := db.Create(&label).Error; err != nil {
			return err
		}
		log.Infow("label seeded", "name", label.Name)
	}
	return nil
}
