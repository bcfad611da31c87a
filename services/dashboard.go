package services

import (
	"errors"
	"sort"
	"time"

	"github.com/MrPouyaSaad/rivaland-backend/apperr"
	"github.com/MrPouyaSaad/rivaland-backend/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// DashboardService recomputes every statistic from the order, product and
// user tables on each call; nothing is cached or materialized.
type DashboardService struct {
	db  *gorm.DB
	log *zap.SugaredLogger
	now func() time.Time
}

func NewDashboardService(db *gorm.DB, log *zap.SugaredLogger) *DashboardService {
	return &DashboardService{db: db, log: log, now: time.Now}
}

type Summary struct {
	Revenue float64 `json:"revenue"`
	Orders  int64   `json:"orders"`
	Users   int64   `json:"users"`
}

// Metric is a value with its month-over-month growth percentage.
type Metric struct {
	Value  float64 `json:"value"`
	Growth float64 `json:"growth"`
}

type DayBucket struct {
	Day     int     `json:"day"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

type MonthBucket struct {
	Month   int     `json:"month"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

// RankedProduct is a product joined with its lifetime sold quantity.
type RankedProduct struct {
	models.Product
	Sold int `json:"sold"`
}

type Overview struct {
	Revenue      Metric          `json:"revenue"`
	Orders       Metric          `json:"orders"`
	Customers    Metric          `json:"customers"`
	AvgBasket    Metric          `json:"avgBasket"`
	WeeklyChart  []DayBucket     `json:"weeklyChart"`
	MonthlyChart []MonthBucket   `json:"monthlyChart"`
	TopProducts  []RankedProduct `json:"topProducts"`
	LowProducts  []RankedProduct `json:"lowProducts"`
}

// growth is the period-over-period percentage. A zero baseline yields the
// fixed 100 sentinel when the current value is non-zero, and 0 when both
// periods are empty.
func growth(current, previous float64) float64 {
	if previous == 0 {
		if current == 0 {
			return 0
		}
		return 100
	}
	return (current - previous) / previous * 100
}

// GetSummary returns lifetime totals, fetched concurrently.
func (s *DashboardService) GetSummary() (*Summary, error) {
	var summary Summary

	g := new(errgroup.Group)
	g.Go(func() error {
		return s.db.Model(&models.Order{}).
			Select("COALESCE(SUM(total), 0)").
			Scan(&summary.Revenue).Error
	})
	g.Go(func() error {
		return s.db.Model(&models.Order{}).Count(&summary.Orders).Error
	})
	g.Go(func() error {
		return s.db.Model(&models.User{}).Count(&summary.Users).Error
	})

	if err := g.Wait(); err != nil {
		return nil, apperr.Aggregation("خطایی در دریافت آمار کلی داشبورد رخ داده است", err)
	}
	return &summary, nil
}

// GetOverview compares the current calendar month with the immediately
// preceding one and attaches the sparse sales charts and lifetime product
// rankings.
func (s *DashboardService) GetOverview() (*Overview, error) {
	now := s.now()
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	startOfPrevMonth := startOfMonth.AddDate(0, -1, 0)
	startOfYear := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())

	revenueCur, err := s.sumOrderTotals(startOfMonth, now)
	if err != nil {
		return nil, err
	}
	revenuePrev, err := s.sumOrderTotals(startOfPrevMonth, startOfMonth)
	if err != nil {
		return nil, err
	}

	ordersCur, err := s.countRows(&models.Order{}, startOfMonth, now)
	if err != nil {
		return nil, err
	}
	ordersPrev, err := s.countRows(&models.Order{}, startOfPrevMonth, startOfMonth)
	if err != nil {
		return nil, err
	}

	customersCur, err := s.countRows(&models.User{}, startOfMonth, now)
	if err != nil {
		return nil, err
	}
	customersPrev, err := s.countRows(&models.User{}, startOfPrevMonth, startOfMonth)
	if err != nil {
		return nil, err
	}

	avgBasketCur := revenueCur / float64(max64(ordersCur, 1))
	avgBasketPrev := revenuePrev / float64(max64(ordersPrev, 1))

	weekly, err := s.weeklyChart(startOfMonth)
	if err != nil {
		return nil, err
	}
	monthly, err := s.monthlyChart(startOfYear)
	if err != nil {
		return nil, err
	}

	top, err := s.rankedProducts("DESC")
	if err != nil {
		return nil, err
	}
	low, err := s.rankedProducts("ASC")
	if err != nil {
		return nil, err
	}

	return &Overview{
		Revenue:      Metric{Value: revenueCur, Growth: growth(revenueCur, revenuePrev)},
		Orders:       Metric{Value: float64(ordersCur), Growth: growth(float64(ordersCur), float64(ordersPrev))},
		Customers:    Metric{Value: float64(customersCur), Growth: growth(float64(customersCur), float64(customersPrev))},
		AvgBasket:    Metric{Value: avgBasketCur, Growth: growth(avgBasketCur, avgBasketPrev)},
		WeeklyChart:  weekly,
		MonthlyChart: monthly,
		TopProducts:  top,
		LowProducts:  low,
	}, nil
}

func (s *DashboardService) sumOrderTotals(from, to time.Time) (float64, error) {
	var total float64
	err := s.db.Model(&models.Order{}).
		Select("COALESCE(SUM(total), 0)").
		Where("created_at >= ? AND created_at < ?", from, to).
		Scan(&total).Error
	if err != nil {
		return 0, apperr.Aggregation("خطایی در دریافت آمار نمای کلی رخ داده است", err)
	}
	return total, nil
}

func (s *DashboardService) countRows(model interface{}, from, to time.Time) (int64, error) {
	var count int64
	err := s.db.Model(model).
		Where("created_at >= ? AND created_at < ?", from, to).
		Count(&count).Error
	if err != nil {
		return 0, apperr.Aggregation("خطایی در دریافت آمار نمای کلی رخ داده است", err)
	}
	return count, nil
}

// weeklyChart buckets this month's orders by day of month. Days without
// orders are omitted rather than zero-filled.
func (s *DashboardService) weeklyChart(startOfMonth time.Time) ([]DayBucket, error) {
	var orders []models.Order
	err := s.db.Select("created_at", "total").
		Where("created_at >= ?", startOfMonth).
		Find(&orders).Error
	if err != nil {
		return nil, apperr.Aggregation("خطایی در دریافت آمار نمای کلی رخ داده است", err)
	}

	byDay := make(map[int]*DayBucket)
	for _, order := range orders {
		day := order.CreatedAt.Day()
		bucket, ok := byDay[day]
		if !ok {
			bucket = &DayBucket{Day: day}
			byDay[day] = bucket
		}
		bucket.Revenue += order.Total
		bucket.Orders++
	}

	chart := make([]DayBucket, 0, len(byDay))
	for _, bucket := range byDay {
		chart = append(chart, *bucket)
	}
	sort.Slice(chart, func(i, j int) bool { return chart[i].Day < chart[j].Day })
	return chart, nil
}

// monthlyChart buckets this year's orders by month of year, sparse like
// weeklyChart.
func (s *DashboardService) monthlyChart(startOfYear time.Time) ([]MonthBucket, error) {
	var orders []models.Order
	err := s.db.Select("created_at", "total").
		Where("created_at >= ?", startOfYear).
		Find(&orders).Error
	if err != nil {
		return nil, apperr.Aggregation("خطایی در دریافت آمار نمای کلی رخ داده است", err)
	}

	byMonth := make(map[int]*MonthBucket)
	for _, order := range orders {
		month := int(order.CreatedAt.Month())
		bucket, ok := byMonth[month]
		if !ok {
			bucket = &MonthBucket{Month: month}
			byMonth[month] = bucket
		}
		bucket.Revenue += order.Total
		bucket.Orders++
	}

	chart := make([]MonthBucket, 0, len(byMonth))
	for _, bucket := range byMonth {
		chart = append(chart, *bucket)
	}
	sort.Slice(chart, func(i, j int) bool { return chart[i].Month < chart[j].Month })
	return chart, nil
}

// rankedProducts groups every order item ever written by product, sums
// quantities and joins the top five back to full product records. The
// ranking is lifetime-scoped on purpose, unlike the month-scoped KPIs.
func (s *DashboardService) rankedProducts(direction string) ([]RankedProduct, error) {
	type productSold struct {
		ProductID uint
		Sold      int
	}

	var rows []productSold
	err := s.db.Model(&models.OrderItem{}).
		Select("product_id, SUM(quantity) AS sold").
		Group("product_id").
		Order("sold " + direction).
		Order("product_id ASC").
		Limit(5).
		Scan(&rows).Error
	if err != nil {
		return nil, apperr.Aggregation("خطایی در دریافت آمار نمای کلی رخ داده است", err)
	}

	// Order items outlive their products, so deleted products must not sink
	// the whole overview: soft-deleted rows are still ranked, vanished rows
	// are skipped.
	ranked := make([]RankedProduct, 0, len(rows))
	for _, row := range rows {
		var product models.Product
		err := s.db.Unscoped().Preload("Images").First(&product, row.ProductID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return nil, apperr.Aggregation("خطایی در دریافت آمار نمای کلی رخ داده است", err)
		}
		ranked = append(ranked, RankedProduct{Product: product, Sold: row.Sold})
	}
	return ranked, nil
}

func max64(v, floor int64) int64 {
	if v < floor {
		return floor
	}
	return v
}
