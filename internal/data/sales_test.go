package data

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/retail-pulse/analytics/internal/biz"
	"github.com/retail-pulse/analytics/internal/model"
)

func date(s string) time.Time {
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

func newTestRepo(t *testing.T) biz.SalesRepo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Sale{}))

	sales := []model.Sale{
		{TransactionID: 1, SaleDate: date("2022-01-03"), CustomerID: 10, Gender: "Female", Category: "Beauty", Quantity: 1, TotalSale: 100},
		{TransactionID: 2, SaleDate: date("2022-01-03"), CustomerID: 11, Gender: "Male", Category: "Clothing", Quantity: 2, TotalSale: 50},
		{TransactionID: 3, SaleDate: date("2022-01-09"), CustomerID: 10, Gender: "Female", Category: "Beauty", Quantity: 1, TotalSale: 150},
		{TransactionID: 4, SaleDate: date("2022-02-01"), CustomerID: 12, Gender: "Male", Category: "Electronics", Quantity: 1, TotalSale: 300},
	}
	require.NoError(t, db.Create(&sales).Error)

	return NewSalesRepo(&Data{db: db}, log.DefaultLogger)
}

func januaryFilter() biz.SalesFilter {
	return biz.SalesFilter{
		StartDate:  date("2022-01-01"),
		EndDate:    date("2022-01-31"),
		Genders:    []string{"Female", "Male"},
		Categories: []string{"Beauty", "Clothing", "Electronics"},
	}
}

func TestSalesRepo_DateBounds(t *testing.T) {
	repo := newTestRepo(t)

	bounds, err := repo.DateBounds(context.Background())
	require.NoError(t, err)
	assert.Equal(t, date("2022-01-03"), bounds.Min.UTC())
	assert.Equal(t, date("2022-02-01"), bounds.Max.UTC())
}

func TestSalesRepo_DistinctDimensions(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	genders, err := repo.DistinctGenders(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Female", "Male"}, genders)

	categories, err := repo.DistinctCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Beauty", "Clothing", "Electronics"}, categories)
}

func TestSalesRepo_Summary(t *testing.T) {
	repo := newTestRepo(t)

	s, err := repo.Summary(context.Background(), januaryFilter())
	require.NoError(t, err)
	assert.Equal(t, float64(300), s.GrossRevenue)
	assert.Equal(t, int64(3), s.TotalOrders)
	assert.Equal(t, int64(2), s.UniqueCustomers)
}

func TestSalesRepo_Summary_EmptySlice(t *testing.T) {
	repo := newTestRepo(t)

	f := januaryFilter()
	f.Categories = []string{"Furniture"}

	s, err := repo.Summary(context.Background(), f)
	require.NoError(t, err)
	assert.Zero(t, s.GrossRevenue)
	assert.Zero(t, s.TotalOrders)
	assert.Zero(t, s.UniqueCustomers)
}

func TestSalesRepo_Summary_FilterByGender(t *testing.T) {
	repo := newTestRepo(t)

	f := januaryFilter()
	f.Genders = []string{"Female"}

	s, err := repo.Summary(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, float64(250), s.GrossRevenue)
	assert.Equal(t, int64(2), s.TotalOrders)
	assert.Equal(t, int64(1), s.UniqueCustomers)
}

func TestSalesRepo_DailyBreakdown(t *testing.T) {
	repo := newTestRepo(t)

	rows, err := repo.DailyBreakdown(context.Background(), januaryFilter())
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// Ordered by sale_date; revenue summed per (date, category, gender).
	assert.Equal(t, date("2022-01-03"), rows[0].SaleDate.UTC())
	assert.Equal(t, date("2022-01-09"), rows[2].SaleDate.UTC())

	var total float64
	for _, row := range rows {
		total += row.Revenue
	}
	assert.Equal(t, float64(300), total)
}

func TestSalesRepo_Ledger(t *testing.T) {
	repo := newTestRepo(t)

	entries, err := repo.Ledger(context.Background(), januaryFilter(), 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Newest first.
	assert.Equal(t, date("2022-01-09"), entries[0].SaleDate.UTC())
	assert.Equal(t, float64(150), entries[0].TotalSale)
	assert.Equal(t, date("2022-01-03"), entries[1].SaleDate.UTC())
}

func TestSalesRepo_Insert(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	err := repo.Insert(ctx, &biz.NewSale{
		TransactionID: 99,
		SaleDate:      date("2022-01-15"),
		CustomerID:    20,
		Gender:        "Female",
		Category:      "Clothing",
		Quantity:      3,
		PricePerUnit:  25,
		TotalSale:     75,
	})
	require.NoError(t, err)

	s, err := repo.Summary(ctx, januaryFilter())
	require.NoError(t, err)
	assert.Equal(t, float64(375), s.GrossRevenue)
	assert.Equal(t, int64(4), s.TotalOrders)
	assert.Equal(t, int64(3), s.UniqueCustomers)
}
