package services

import (
	"testing"
	"time"

	"github.com/MrPouyaSaad/rivaland-backend/models"
	qt "github.com/frankban/quicktest"
)

func TestGrowth(t *testing.T) {
	c := qt.New(t)

	tests := []struct {
		name     string
		current  float64
		previous float64
		want     float64
	}{
		{"both empty", 0, 0, 0},
		{"fresh start", 5, 0, 100},
		{"dropped to zero", 0, 5, -100},
		{"up by half", 150, 100, 50},
		{"down by half", 50, 100, -50},
		{"tripled", 300, 100, 200},
	}
	for _, tt := range tests {
		c.Run(tt.name, func(c *qt.C) {
			c.Assert(growth(tt.current, tt.previous), qt.Equals, tt.want)
		})
	}
}

// seedDashboard builds the fixture used by the summary and overview tests:
// three users registered in January, April and May 2024 and four orders for
// the first user spread over the same months.
func seedDashboard(c *qt.C, svc *DashboardService) (models.Product, models.Product) {
	db := svc.db

	at := func(month time.Month, day int) time.Time {
		return time.Date(2024, month, day, 10, 0, 0, 0, time.UTC)
	}

	buyer := seedUser(c, db, models.User{Username: "buyer", Email: "buyer@test.ir", Phone: "0911", CreatedAt: at(time.January, 10)})
	seedUser(c, db, models.User{Username: "april", Email: "april@test.ir", Phone: "0912", CreatedAt: at(time.April, 20)})
	seedUser(c, db, models.User{Username: "may", Email: "may@test.ir", Phone: "0913", CreatedAt: at(time.May, 5)})

	category := seedCategory(c, db, "کفش")
	alpha := seedProduct(c, db, models.Product{Name: "Alpha", Price: 10, CategoryID: category.ID, IsActive: true})
	beta := seedProduct(c, db, models.Product{Name: "Beta", Price: 20, CategoryID: category.ID, IsActive: true})

	orders := []models.Order{
		{UserID: buyer.ID, Total: 100, CreatedAt: at(time.May, 3), Items: []models.OrderItem{
			{ProductID: alpha.ID, Quantity: 2, Price: 10},
		}},
		{UserID: buyer.ID, Total: 200, CreatedAt: at(time.May, 10), Items: []models.OrderItem{
			{ProductID: alpha.ID, Quantity: 3, Price: 10},
			{ProductID: beta.ID, Quantity: 1, Price: 20},
		}},
		{UserID: buyer.ID, Total: 100, CreatedAt: at(time.April, 10), Items: []models.OrderItem{
			{ProductID: alpha.ID, Quantity: 1, Price: 10},
		}},
		{UserID: buyer.ID, Total: 50, CreatedAt: at(time.January, 20)},
	}
	for i := range orders {
		c.Assert(db.Create(&orders[i]).Error, qt.IsNil)
	}
	return alpha, beta
}

func TestDashboardSummary(t *testing.T) {
	c := qt.New(t)
	db := newTestDB(t)
	svc := NewDashboardService(db, testLogger())
	seedDashboard(c, svc)

	summary, err := svc.GetSummary()
	c.Assert(err, qt.IsNil)
	c.Assert(summary.Revenue, qt.Equals, 450.0)
	c.Assert(summary.Orders, qt.Equals, int64(4))
	c.Assert(summary.Users, qt.Equals, int64(3))
}

func TestDashboardSummaryEmpty(t *testing.T) {
	c := qt.New(t)
	db := newTestDB(t)
	svc := NewDashboardService(db, testLogger())

	summary, err := svc.GetSummary()
	c.Assert(err, qt.IsNil)
	c.Assert(summary.Revenue, qt.Equals, 0.0)
	c.Assert(summary.Orders, qt.Equals, int64(0))
	c.Assert(summary.Users, qt.Equals, int64(0))
}

func TestDashboardOverview(t *testing.T) {
	c := qt.New(t)
	db := newTestDB(t)
	svc := NewDashboardService(db, testLogger())
	svc.now = func() time.Time {
		return time.Date(2024, time.May, 15, 12, 0, 0, 0, time.UTC)
	}
	alpha, beta := seedDashboard(c, svc)

	overview, err := svc.GetOverview()
	c.Assert(err, qt.IsNil)

	c.Assert(overview.Revenue, qt.Equals, Metric{Value: 300, Growth: 200})
	c.Assert(overview.Orders, qt.Equals, Metric{Value: 2, Growth: 100})
	c.Assert(overview.Customers, qt.Equals, Metric{Value: 1, Growth: 0})
	c.Assert(overview.AvgBasket, qt.Equals, Metric{Value: 150, Growth: 50})

	c.Assert(overview.WeeklyChart, qt.DeepEquals, []DayBucket{
		{Day: 3, Revenue: 100, Orders: 1},
		{Day: 10, Revenue: 200, Orders: 1},
	})
	c.Assert(overview.MonthlyChart, qt.DeepEquals, []MonthBucket{
		{Month: 1, Revenue: 50, Orders: 1},
		{Month: 4, Revenue: 100, Orders: 1},
		{Month: 5, Revenue: 300, Orders: 2},
	})

	// Rankings are lifetime sums: alpha sold 2+3+1=6, beta sold 1.
	c.Assert(len(overview.TopProducts), qt.Equals, 2)
	c.Assert(overview.TopProducts[0].ID, qt.Equals, alpha.ID)
	c.Assert(overview.TopProducts[0].Sold, qt.Equals, 6)
	c.Assert(overview.TopProducts[1].ID, qt.Equals, beta.ID)
	c.Assert(overview.TopProducts[1].Sold, qt.Equals, 1)

	c.Assert(len(overview.LowProducts), qt.Equals, 2)
	c.Assert(overview.LowProducts[0].ID, qt.Equals, beta.ID)
	c.Assert(overview.LowProducts[1].ID, qt.Equals, alpha.ID)
}

func TestDashboardOverviewAfterProductDelete(t *testing.T) {
	c := qt.New(t)
	db := newTestDB(t)
	svc := NewDashboardService(db, testLogger())
	svc.now = func() time.Time {
		return time.Date(2024, time.May, 15, 12, 0, 0, 0, time.UTC)
	}
	alpha, beta := seedDashboard(c, svc)

	// Deleting an ordered product must not break the overview: the soft
	// deleted row stays in the rankings.
	products := NewProductService(db, &memStore{}, testLogger())
	c.Assert(products.Delete(alpha.ID), qt.IsNil)

	overview, err := svc.GetOverview()
	c.Assert(err, qt.IsNil)
	c.Assert(len(overview.TopProducts), qt.Equals, 2)
	c.Assert(overview.TopProducts[0].ID, qt.Equals, alpha.ID)
	c.Assert(overview.TopProducts[0].Sold, qt.Equals, 6)

	// A hard-deleted product drops out of the rankings without failing.
	c.Assert(db.Unscoped().Delete(&models.Product{}, beta.ID).Error, qt.IsNil)

	overview, err = svc.GetOverview()
	c.Assert(err, qt.IsNil)
	c.Assert(len(overview.TopProducts), qt.Equals, 1)
	c.Assert(overview.TopProducts[0].ID, qt.Equals, alpha.ID)
}

func TestDashboardOverviewEmpty(t *testing.T) {
	c := qt.New(t)
	db := newTestDB(t)
	svc := NewDashboardService(db, testLogger())
	svc.now = func() time.Time {
		return time.Date(2024, time.May, 15, 12, 0, 0, 0, time.UTC)
	}

	overview, err := svc.GetOverview()
	c.Assert(err, qt.IsNil)

	// No activity in either month collapses every growth to zero, never NaN.
	c.Assert(overview.Revenue, qt.Equals, Metric{Value: 0, Growth: 0})
	c.Assert(overview.Orders, qt.Equals, Metric{Value: 0, Growth: 0})
	c.Assert(overview.AvgBasket, qt.Equals, Metric{Value: 0, Growth: 0})
	c.Assert(overview.WeeklyChart, qt.HasLen, 0)
	c.Assert(overview.MonthlyChart, qt.HasLen, 0)
	c.Assert(overview.TopProducts, qt.HasLen, 0)
	c.Assert(overview.LowProducts, qt.HasLen, 0)
}
