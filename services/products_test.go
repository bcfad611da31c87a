package services

import (
	"testing"

	"github.com/MrPouyaSaad/rivaland-backend/apperr"
	"github.com/MrPouyaSaad/rivaland-backend/models"
	qt "github.com/frankban/quicktest"
)

func newProductService(t *testing.T) *ProductService {
	return NewProductService(newTestDB(t), &memStore{}, testLogger())
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int { return &v }

func TestMainImageURL(t *testing.T) {
	c := qt.New(t)

	c.Assert(mainImageURL(nil), qt.Equals, "")
	c.Assert(mainImageURL([]models.ProductImage{
		{URL: "a.jpg"},
		{URL: "b.jpg", IsMain: true},
	}), qt.Equals, "b.jpg")
	c.Assert(mainImageURL([]models.ProductImage{
		{URL: "a.jpg"},
		{URL: "b.jpg"},
	}), qt.Equals, "a.jpg")
}

func TestTotalPages(t *testing.T) {
	c := qt.New(t)

	c.Assert(totalPages(0, 10), qt.Equals, 0)
	c.Assert(totalPages(10, 10), qt.Equals, 1)
	c.Assert(totalPages(11, 10), qt.Equals, 2)
	c.Assert(totalPages(5, 2), qt.Equals, 3)
}

func TestProductCreateValidation(t *testing.T) {
	c := qt.New(t)
	svc := newProductService(t)

	_, err := svc.Create(ProductInput{CategoryID: 1}, nil)
	c.Assert(apperr.KindOf(err), qt.Equals, apperr.KindValidation)

	_, err = svc.Create(ProductInput{Name: "Alpha"}, nil)
	c.Assert(apperr.KindOf(err), qt.Equals, apperr.KindValidation)

	_, err = svc.Create(ProductInput{Name: "Alpha", CategoryID: 99}, nil)
	c.Assert(apperr.KindOf(err), qt.Equals, apperr.KindNotFound)
}

func TestProductCreateWithAttributes(t *testing.T) {
	c := qt.New(t)
	svc := newProductService(t)
	fields := NewFieldService(svc.db, testLogger())

	category := seedCategory(c, svc.db, "کفش")
	size, err := fields.AddField(category.ID, FieldInput{
		Name: "سایز", Type: models.FieldTypeSelect, Options: []string{"40", "41"},
	})
	c.Assert(err, qt.IsNil)

	label := models.Label{Name: "new", Title: "جدید", Color: "#00f"}
	c.Assert(svc.db.Create(&label).Error, qt.IsNil)

	view, err := svc.Create(ProductInput{
		Name:       "Alpha",
		Price:      150,
		Stock:      intPtr(3),
		CategoryID: category.ID,
		Fields:     []FieldValueInput{{FieldID: size.ID, Value: "41"}},
		Labels:     []uint{label.ID},
	}, nil)
	c.Assert(err, qt.IsNil)

	c.Assert(view.Stock, qt.Equals, 3)
	c.Assert(view.IsActive, qt.IsTrue)
	c.Assert(view.DiscountType, qt.Equals, models.DiscountAmount)
	c.Assert(view.Fields, qt.HasLen, 1)
	c.Assert(view.Fields[0].ID, qt.Equals, size.ID)
	c.Assert(view.Fields[0].Title, qt.Equals, "سایز")
	c.Assert(view.Fields[0].Value, qt.Equals, "41")
	c.Assert(view.Fields[0].Options, qt.DeepEquals, []string{"40", "41"})
	c.Assert(view.Labels, qt.HasLen, 1)
	c.Assert(view.Labels[0].Title, qt.Equals, "جدید")
}

func TestProductListFilters(t *testing.T) {
	c := qt.New(t)
	svc := newProductService(t)

	shoes := seedCategory(c, svc.db, "کفش")
	bags := seedCategory(c, svc.db, "کیف")
	seedProduct(c, svc.db, models.Product{Name: "Runner Pro", Price: 100, CategoryID: shoes.ID, IsActive: true})
	seedProduct(c, svc.db, models.Product{Name: "Runner Lite", Price: 50, CategoryID: shoes.ID, IsActive: false})
	seedProduct(c, svc.db, models.Product{Name: "City Bag", Price: 200, CategoryID: bags.ID, IsActive: true})

	page, err := svc.List(ProductListParams{CategoryID: shoes.ID})
	c.Assert(err, qt.IsNil)
	c.Assert(page.Pagination.Total, qt.Equals, int64(2))

	page, err = svc.List(ProductListParams{Status: "active"})
	c.Assert(err, qt.IsNil)
	c.Assert(page.Pagination.Total, qt.Equals, int64(2))

	page, err = svc.List(ProductListParams{MinPrice: floatPtr(60), MaxPrice: floatPtr(150)})
	c.Assert(err, qt.IsNil)
	c.Assert(page.Pagination.Total, qt.Equals, int64(1))
	c.Assert(page.Data[0].Name, qt.Equals, "Runner Pro")

	page, err = svc.List(ProductListParams{Search: "runner"})
	c.Assert(err, qt.IsNil)
	c.Assert(page.Pagination.Total, qt.Equals, int64(2))

	page, err = svc.List(ProductListParams{Page: 2, Limit: 2})
	c.Assert(err, qt.IsNil)
	c.Assert(page.Pagination, qt.Equals, Pagination{Total: 3, Page: 2, Limit: 2, TotalPages: 2})
	c.Assert(page.Data, qt.HasLen, 1)
}

func TestProductUpdateReplacesRelations(t *testing.T) {
	c := qt.New(t)
	svc := newProductService(t)
	fields := NewFieldService(svc.db, testLogger())

	category := seedCategory(c, svc.db, "کفش")
	size, err := fields.AddField(category.ID, FieldInput{Name: "سایز", Type: models.FieldTypeNumber})
	c.Assert(err, qt.IsNil)
	color, err := fields.AddField(category.ID, FieldInput{Name: "رنگ", Type: models.FieldTypeString})
	c.Assert(err, qt.IsNil)

	created, err := svc.Create(ProductInput{
		Name:       "Alpha",
		Price:      150,
		CategoryID: category.ID,
		Fields:     []FieldValueInput{{FieldID: size.ID, Value: "41"}},
	}, nil)
	c.Assert(err, qt.IsNil)

	updated, err := svc.Update(created.ID, ProductInput{
		Name:   "Alpha v2",
		Price:  180,
		Fields: []FieldValueInput{{FieldID: color.ID, Value: "مشکی"}},
	}, nil)
	c.Assert(err, qt.IsNil)
	c.Assert(updated.Name, qt.Equals, "Alpha v2")
	c.Assert(updated.Price, qt.Equals, 180.0)
	c.Assert(updated.Fields, qt.HasLen, 1)
	c.Assert(updated.Fields[0].ID, qt.Equals, color.ID)

	// A nil field set leaves the stored values untouched.
	updated, err = svc.Update(created.ID, ProductInput{}, nil)
	c.Assert(err, qt.IsNil)
	c.Assert(updated.Fields, qt.HasLen, 1)
	c.Assert(updated.Fields[0].ID, qt.Equals, color.ID)
}

func TestProductUpdateOmittedScalars(t *testing.T) {
	c := qt.New(t)
	svc := newProductService(t)

	category := seedCategory(c, svc.db, "کفش")
	created, err := svc.Create(ProductInput{
		Name:       "Alpha",
		Price:      150,
		Stock:      intPtr(7),
		IsActive:   boolPtr(false),
		CategoryID: category.ID,
	}, nil)
	c.Assert(err, qt.IsNil)

	// An update that omits stock and isActive leaves both alone: the stock
	// stays at 7 and the product stays inactive.
	updated, err := svc.Update(created.ID, ProductInput{Name: "Alpha v2"}, nil)
	c.Assert(err, qt.IsNil)
	c.Assert(updated.Name, qt.Equals, "Alpha v2")
	c.Assert(updated.Stock, qt.Equals, 7)
	c.Assert(updated.IsActive, qt.IsFalse)

	// Explicit values still win.
	updated, err = svc.Update(created.ID, ProductInput{Stock: intPtr(0), IsActive: boolPtr(true)}, nil)
	c.Assert(err, qt.IsNil)
	c.Assert(updated.Stock, qt.Equals, 0)
	c.Assert(updated.IsActive, qt.IsTrue)
}

func TestProductDeleteCleansRelations(t *testing.T) {
	c := qt.New(t)
	svc := newProductService(t)
	fields := NewFieldService(svc.db, testLogger())

	category := seedCategory(c, svc.db, "کفش")
	size, err := fields.AddField(category.ID, FieldInput{Name: "سایز", Type: models.FieldTypeNumber})
	c.Assert(err, qt.IsNil)

	created, err := svc.Create(ProductInput{
		Name:       "Alpha",
		Price:      150,
		CategoryID: category.ID,
		Fields:     []FieldValueInput{{FieldID: size.ID, Value: "41"}},
	}, nil)
	c.Assert(err, qt.IsNil)

	c.Assert(svc.Delete(created.ID), qt.IsNil)

	_, err = svc.Get(created.ID)
	c.Assert(apperr.KindOf(err), qt.Equals, apperr.KindNotFound)

	var values int64
	c.Assert(svc.db.Model(&models.ProductFieldValue{}).Where("product_id = ?", created.ID).Count(&values).Error, qt.IsNil)
	c.Assert(values, qt.Equals, int64(0))
}

func TestStorefrontListings(t *testing.T) {
	c := qt.New(t)
	svc := newProductService(t)

	shoes := seedCategory(c, svc.db, "کفش")
	bags := seedCategory(c, svc.db, "کیف")
	label := models.Label{Name: "amazing", Title: "شگفت‌انگیز", Color: "#f00"}
	c.Assert(svc.db.Create(&label).Error, qt.IsNil)

	active := seedProduct(c, svc.db, models.Product{Name: "Runner", Price: 100, CategoryID: shoes.ID, IsActive: true})
	seedProduct(c, svc.db, models.Product{Name: "Hidden", Price: 100, CategoryID: shoes.ID, IsActive: false})
	seedProduct(c, svc.db, models.Product{Name: "Bag", Price: 200, CategoryID: bags.ID, IsActive: true})
	c.Assert(svc.db.Create(&models.ProductLabel{ProductID: active.ID, LabelID: label.ID}).Error, qt.IsNil)

	page, err := svc.ListActive(1, 10)
	c.Assert(err, qt.IsNil)
	c.Assert(page.Pagination.Total, qt.Equals, int64(2))

	page, err = svc.ListByCategory(shoes.ID, 1, 10)
	c.Assert(err, qt.IsNil)
	c.Assert(page.Pagination.Total, qt.Equals, int64(1))
	c.Assert(page.Data[0].Name, qt.Equals, "Runner")

	page, err = svc.ListByLabel("amazing", 1, 10)
	c.Assert(err, qt.IsNil)
	c.Assert(page.Pagination.Total, qt.Equals, int64(1))
	c.Assert(page.Data[0].ID, qt.Equals, active.ID)

	page, err = svc.ListByLabel("missing", 1, 10)
	c.Assert(err, qt.IsNil)
	c.Assert(page.Pagination.Total, qt.Equals, int64(0))
}
