package services

import (
	"fmt"
	"mime/multipart"
	"testing"

	"github.com/MrPouyaSaad/rivaland-backend/models"
	"github.com/MrPouyaSaad/rivaland-backend/storage"
	qt "github.com/frankban/quicktest"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	c := qt.New(t)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	c.Assert(err, qt.IsNil)

	// The shared-cache in-memory database does not tolerate concurrent
	// connections, so the pool is pinned to one.
	sqlDB, err := db.DB()
	c.Assert(err, qt.IsNil)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.LoginCode{},
		&models.Category{},
		&models.CategoryField{},
		&models.Product{},
		&models.ProductImage{},
		&models.ProductFieldValue{},
		&models.Label{},
		&models.ProductLabel{},
		&models.Order{},
		&models.OrderItem{},
		&models.CartItem{},
		&models.Banner{},
	)
	c.Assert(err, qt.IsNil)
	return db
}

func testLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

// memStore is an in-memory stand-in for the upload backend.
type memStore struct {
	uploads int
	deleted []string
}

func (m *memStore) Upload(file *multipart.FileHeader, folder string) (*storage.StoredFile, error) {
	m.uploads++
	key := fmt.Sprintf("%s/test-%d.jpg", folder, m.uploads)
	return &storage.StoredFile{URL: "http://cdn.test/uploads/" + key, Key: key}, nil
}

func (m *memStore) Delete(key string) error {
	m.deleted = append(m.deleted, key)
	return nil
}

func seedUser(c *qt.C, db *gorm.DB, user models.User) models.User {
	c.Assert(db.Create(&user).Error, qt.IsNil)
	return user
}

func seedCategory(c *qt.C, db *gorm.DB, name string) models.Category {
	category := models.Category{Name: name}
	c.Assert(db.Create(&category).Error, qt.IsNil)
	return category
}

func seedProduct(c *qt.C, db *gorm.DB, product models.Product) models.Product {
	c.Assert(db.Create(&product).Error, qt.IsNil)
	return product
}
