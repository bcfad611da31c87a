package services

import (
	"testing"

	"github.com/MrPouyaSaad/rivaland-backend/apperr"
	"github.com/MrPouyaSaad/rivaland-backend/models"
	qt "github.com/frankban/quicktest"
)

func boolPtr(v bool) *bool { return &v }

func TestValidateFieldInput(t *testing.T) {
	c := qt.New(t)

	c.Assert(ValidateFieldInput(FieldInput{Name: "رنگ", Type: models.FieldTypeSelect}), qt.IsNil)

	err := ValidateFieldInput(FieldInput{Name: "", Type: models.FieldTypeString})
	c.Assert(apperr.KindOf(err), qt.Equals, apperr.KindValidation)

	err = ValidateFieldInput(FieldInput{Name: "رنگ", Type: "dropdown"})
	c.Assert(apperr.KindOf(err), qt.Equals, apperr.KindValidation)
}

func TestFieldOptionsRoundTrip(t *testing.T) {
	c := qt.New(t)
	db := newTestDB(t)
	svc := NewFieldService(db, testLogger())
	category := seedCategory(c, db, "کفش")

	field, err := svc.AddField(category.ID, FieldInput{
		Name:    "سایز",
		Type:    models.FieldTypeSelect,
		Options: []string{"40", "41", "42"},
	})
	c.Assert(err, qt.IsNil)

	view := FormatField(*field)
	c.Assert(view.Options, qt.DeepEquals, []string{"40", "41", "42"})
	c.Assert(view.Required, qt.IsTrue) // required defaults on

	// Optional fields keep nil options after the round trip.
	field, err = svc.AddField(category.ID, FieldInput{
		Name:     "توضیح",
		Type:     models.FieldTypeString,
		Required: boolPtr(false),
	})
	c.Assert(err, qt.IsNil)
	view = FormatField(*field)
	c.Assert(view.Options, qt.IsNil)
	c.Assert(view.Required, qt.IsFalse)
}

func TestAddFieldUnknownCategory(t *testing.T) {
	c := qt.New(t)
	db := newTestDB(t)
	svc := NewFieldService(db, testLogger())

	_, err := svc.AddField(99, FieldInput{Name: "سایز", Type: models.FieldTypeNumber})
	c.Assert(apperr.KindOf(err), qt.Equals, apperr.KindNotFound)
}

func TestReplaceFieldsWholesale(t *testing.T) {
	c := qt.New(t)
	db := newTestDB(t)
	svc := NewFieldService(db, testLogger())
	category := seedCategory(c, db, "کفش")

	_, err := svc.AddField(category.ID, FieldInput{Name: "سایز", Type: models.FieldTypeSelect, Options: []string{"40"}})
	c.Assert(err, qt.IsNil)
	_, err = svc.AddField(category.ID, FieldInput{Name: "رنگ", Type: models.FieldTypeString})
	c.Assert(err, qt.IsNil)

	err = svc.ReplaceFields(category.ID, []FieldInput{
		{Name: "جنس", Type: models.FieldTypeString},
	})
	c.Assert(err, qt.IsNil)

	fields, err := svc.GetCategoryFields(category.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(fields, qt.HasLen, 1)
	c.Assert(fields[0].Name, qt.Equals, "جنس")

	// An invalid input rejects the whole set and leaves the old one alone.
	err = svc.ReplaceFields(category.ID, []FieldInput{
		{Name: "وزن", Type: models.FieldTypeNumber},
		{Name: "", Type: models.FieldTypeString},
	})
	c.Assert(apperr.KindOf(err), qt.Equals, apperr.KindValidation)

	fields, err = svc.GetCategoryFields(category.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(fields, qt.HasLen, 1)
	c.Assert(fields[0].Name, qt.Equals, "جنس")
}

func TestReplaceFieldsUnknownCategory(t *testing.T) {
	c := qt.New(t)
	db := newTestDB(t)
	svc := NewFieldService(db, testLogger())

	err := svc.ReplaceFields(99, []FieldInput{
		{Name: "سایز", Type: models.FieldTypeNumber},
	})
	c.Assert(apperr.KindOf(err), qt.Equals, apperr.KindNotFound)

	// No dangling rows were written for the missing category.
	var count int64
	c.Assert(db.Model(&models.CategoryField{}).Where("category_id = ?", 99).Count(&count).Error, qt.IsNil)
	c.Assert(count, qt.Equals, int64(0))
}

func TestReplaceFieldsEmptySet(t *testing.T) {
	c := qt.New(t)
	db := newTestDB(t)
	svc := NewFieldService(db, testLogger())
	category := seedCategory(c, db, "کفش")

	_, err := svc.AddField(category.ID, FieldInput{Name: "سایز", Type: models.FieldTypeNumber})
	c.Assert(err, qt.IsNil)

	c.Assert(svc.ReplaceFields(category.ID, nil), qt.IsNil)

	fields, err := svc.GetCategoryFields(category.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(fields, qt.HasLen, 0)
}

func TestRemoveFieldDeletesValues(t *testing.T) {
	c := qt.New(t)
	db := newTestDB(t)
	svc := NewFieldService(db, testLogger())
	category := seedCategory(c, db, "کفش")
	product := seedProduct(c, db, models.Product{Name: "Alpha", Price: 10, CategoryID: category.ID})

	field, err := svc.AddField(category.ID, FieldInput{Name: "سایز", Type: models.FieldTypeNumber})
	c.Assert(err, qt.IsNil)
	c.Assert(svc.SetProductValues(product.ID, []FieldValueInput{{FieldID: field.ID, Value: "42"}}), qt.IsNil)

	c.Assert(svc.RemoveField(field.ID), qt.IsNil)

	var values int64
	c.Assert(db.Model(&models.ProductFieldValue{}).Where("field_id = ?", field.ID).Count(&values).Error, qt.IsNil)
	c.Assert(values, qt.Equals, int64(0))

	c.Assert(apperr.KindOf(svc.RemoveField(field.ID)), qt.Equals, apperr.KindNotFound)
}

func TestSetProductValuesWholesale(t *testing.T) {
	c := qt.New(t)
	db := newTestDB(t)
	svc := NewFieldService(db, testLogger())
	category := seedCategory(c, db, "کفش")
	product := seedProduct(c, db, models.Product{Name: "Alpha", Price: 10, CategoryID: category.ID})

	size, err := svc.AddField(category.ID, FieldInput{Name: "سایز", Type: models.FieldTypeNumber})
	c.Assert(err, qt.IsNil)
	color, err := svc.AddField(category.ID, FieldInput{Name: "رنگ", Type: models.FieldTypeString})
	c.Assert(err, qt.IsNil)

	c.Assert(svc.SetProductValues(product.ID, []FieldValueInput{
		{FieldID: size.ID, Value: "42"},
		{FieldID: color.ID, Value: "مشکی"},
	}), qt.IsNil)

	c.Assert(svc.SetProductValues(product.ID, []FieldValueInput{
		{FieldID: color.ID, Value: "سفید"},
	}), qt.IsNil)

	var values []models.ProductFieldValue
	c.Assert(db.Where("product_id = ?", product.ID).Find(&values).Error, qt.IsNil)
	c.Assert(values, qt.HasLen, 1)
	c.Assert(values[0].FieldID, qt.Equals, color.ID)
	c.Assert(values[0].Value, qt.Equals, "سفید")
}
