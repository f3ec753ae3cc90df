package biz_test

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/retail-pulse/analytics/internal/biz"
	"github.com/retail-pulse/analytics/internal/biz/mocks"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

// fullFilter returns a resolved filter so tests skip dimension discovery.
func fullFilter() biz.SalesFilter {
	return biz.SalesFilter{
		StartDate:  date("2022-01-01"),
		EndDate:    date("2022-12-31"),
		Genders:    []string{"Female", "Male"},
		Categories: []string{"Beauty", "Clothing", "Electronics"},
	}
}

func newUsecase(t *testing.T, repo biz.SalesRepo, tx biz.Transaction, cache biz.Cache, pub biz.SalePublisher) *biz.DashboardUsecase {
	t.Helper()
	return biz.NewDashboardUsecase(repo, tx, cache, pub, nil, log.DefaultLogger)
}

func TestSalesFilter_Validate(t *testing.T) {
	f := fullFilter()
	require.NoError(t, f.Validate())

	bad := fullFilter()
	bad.StartDate, bad.EndDate = bad.EndDate, bad.StartDate
	assert.ErrorIs(t, bad.Validate(), biz.ErrInvalidDateRange)

	noGender := fullFilter()
	noGender.Genders = []string{}
	assert.ErrorIs(t, noGender.Validate(), biz.ErrEmptyGenders)

	noCategory := fullFilter()
	noCategory.Categories = []string{}
	assert.ErrorIs(t, noCategory.Validate(), biz.ErrEmptyCategories)
}

func TestSalesFilter_CacheKey(t *testing.T) {
	a := fullFilter()
	b := fullFilter()
	// List order must not matter.
	b.Genders = []string{"Male", "Female"}
	b.Categories = []string{"Electronics", "Beauty", "Clothing"}
	assert.Equal(t, a.CacheKey(), b.CacheKey())

	c := fullFilter()
	c.EndDate = date("2022-06-30")
	assert.NotEqual(t, a.CacheKey(), c.CacheKey())

	d := fullFilter()
	d.Categories = []string{"Beauty"}
	assert.NotEqual(t, a.CacheKey(), d.CacheKey())
}

func TestSummary_ComputesAOV(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockSalesRepo(ctrl)
	f := fullFilter()

	repo.EXPECT().Summary(gomock.Any(), f).Return(&biz.Summary{
		GrossRevenue:    1000,
		TotalOrders:     4,
		UniqueCustomers: 3,
	}, nil)

	uc := newUsecase(t, repo, nil, nil, nil)
	got, err := uc.Summary(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, float64(1000), got.GrossRevenue)
	assert.Equal(t, int64(4), got.TotalOrders)
	assert.Equal(t, int64(3), got.UniqueCustomers)
	assert.Equal(t, float64(250), got.AvgOrderValue)
}

func TestSummary_ZeroOrders(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockSalesRepo(ctrl)
	f := fullFilter()

	repo.EXPECT().Summary(gomock.Any(), f).Return(&biz.Summary{}, nil)

	uc := newUsecase(t, repo, nil, nil, nil)
	got, err := uc.Summary(context.Background(), f)
	require.NoError(t, err)
	assert.Zero(t, got.GrossRevenue)
	assert.Zero(t, got.TotalOrders)
	assert.Zero(t, got.AvgOrderValue)
}

func TestSummary_CacheHit(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockSalesRepo(ctrl)
	cache := mocks.NewMockCache(ctrl)
	f := fullFilter()

	cache.EXPECT().
		Get(gomock.Any(), "summary:"+f.CacheKey(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, out any) (bool, error) {
			*out.(*biz.Summary) = biz.Summary{GrossRevenue: 42, TotalOrders: 1, AvgOrderValue: 42}
			return true, nil
		})

	uc := newUsecase(t, repo, nil, cache, nil)
	got, err := uc.Summary(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, float64(42), got.GrossRevenue)
	// repo.Summary must not have been called: no expectation was set.
}

func TestSummary_CacheMissPopulates(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockSalesRepo(ctrl)
	cache := mocks.NewMockCache(ctrl)
	f := fullFilter()

	cache.EXPECT().Get(gomock.Any(), "summary:"+f.CacheKey(), gomock.Any()).Return(false, nil)
	repo.EXPECT().Summary(gomock.Any(), f).Return(&biz.Summary{GrossRevenue: 10, TotalOrders: 2}, nil)
	cache.EXPECT().
		Set(gomock.Any(), "summary:"+f.CacheKey(), gomock.Any(), gomock.Any()).
		Return(nil)

	uc := newUsecase(t, repo, nil, cache, nil)
	got, err := uc.Summary(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, float64(5), got.AvgOrderValue)
}

func TestSummary_CacheErrorDegradesToMiss(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockSalesRepo(ctrl)
	cache := mocks.NewMockCache(ctrl)
	f := fullFilter()

	cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, errors.New("redis down"))
	repo.EXPECT().Summary(gomock.Any(), f).Return(&biz.Summary{GrossRevenue: 7, TotalOrders: 1}, nil)
	cache.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

	uc := newUsecase(t, repo, nil, cache, nil)
	got, err := uc.Summary(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, float64(7), got.GrossRevenue)
}

func TestResolveFilter_Defaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockSalesRepo(ctrl)

	repo.EXPECT().DateBounds(gomock.Any()).Return(biz.DateBounds{
		Min: date("2022-01-01"), Max: date("2022-12-31"),
	}, nil)
	repo.EXPECT().DistinctGenders(gomock.Any()).Return([]string{"Female", "Male"}, nil)
	repo.EXPECT().DistinctCategories(gomock.Any()).Return([]string{"Beauty", "Clothing"}, nil)

	uc := newUsecase(t, repo, nil, nil, nil)
	resolved, err := uc.ResolveFilter(context.Background(), biz.SalesFilter{})
	require.NoError(t, err)
	assert.Equal(t, date("2022-01-01"), resolved.StartDate)
	assert.Equal(t, date("2022-12-31"), resolved.EndDate)
	assert.Equal(t, []string{"Female", "Male"}, resolved.Genders)
	assert.Equal(t, []string{"Beauty", "Clothing"}, resolved.Categories)
}

func TestResolveFilter_ExplicitEmptyListRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockSalesRepo(ctrl)

	f := fullFilter()
	f.Genders = []string{} // explicit empty selection, not unset

	uc := newUsecase(t, repo, nil, nil, nil)
	_, err := uc.ResolveFilter(context.Background(), f)
	assert.ErrorIs(t, err, biz.ErrEmptyGenders)
}

func TestRefreshDimensions_RewritesLiveEntry(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockSalesRepo(ctrl)
	cache := mocks.NewMockCache(ctrl)

	repo.EXPECT().DateBounds(gomock.Any()).Return(biz.DateBounds{
		Min: date("2022-01-01"), Max: date("2022-12-31"),
	}, nil)
	repo.EXPECT().DistinctGenders(gomock.Any()).Return([]string{"Female", "Male"}, nil)
	repo.EXPECT().DistinctCategories(gomock.Any()).Return([]string{"Beauty"}, nil)
	// Only a Set is expected: the refresh never reads the cache, so a
	// still-live entry gets overwritten and its TTL restarts.
	cache.EXPECT().Set(gomock.Any(), "dimensions", gomock.Any(), gomock.Any()).Return(nil)

	uc := newUsecase(t, repo, nil, cache, nil)
	dims, err := uc.RefreshDimensions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Beauty"}, dims.Categories)
}

func TestDimensions_EmptyTable(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockSalesRepo(ctrl)
	cache := mocks.NewMockCache(ctrl)

	cache.EXPECT().Get(gomock.Any(), "dimensions", gomock.Any()).Return(false, nil)
	repo.EXPECT().DateBounds(gomock.Any()).Return(biz.DateBounds{}, nil)
	// No Set expectation: an empty dataset must not be cached.

	uc := newUsecase(t, repo, nil, cache, nil)
	_, err := uc.Dimensions(context.Background())
	assert.ErrorIs(t, err, biz.ErrEmptyDataset)
}

func TestCharts_Derivations(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockSalesRepo(ctrl)
	f := fullFilter()

	// 2022-01-03 is a Monday, 2022-01-09 a Sunday.
	rows := []biz.DailyRevenueRow{
		{SaleDate: date("2022-01-03"), Category: "Beauty", Gender: "Female", Revenue: 100},
		{SaleDate: date("2022-01-03"), Category: "Clothing", Gender: "Male", Revenue: 50},
		{SaleDate: date("2022-01-09"), Category: "Beauty", Gender: "Male", Revenue: 150},
		{SaleDate: date("2022-01-09"), Category: "Beauty", Gender: "Female", Revenue: 100},
	}
	repo.EXPECT().DailyBreakdown(gomock.Any(), f).Return(rows, nil)

	uc := newUsecase(t, repo, nil, nil, nil)
	charts, err := uc.Charts(context.Background(), f)
	require.NoError(t, err)

	// Trend: per-date totals, ascending.
	require.Len(t, charts.Trend, 2)
	assert.Equal(t, date("2022-01-03"), charts.Trend[0].Date)
	assert.Equal(t, float64(150), charts.Trend[0].Revenue)
	assert.Equal(t, date("2022-01-09"), charts.Trend[1].Date)
	assert.Equal(t, float64(250), charts.Trend[1].Revenue)

	// Category share: revenue-descending, percents of the grand total.
	require.Len(t, charts.CategoryShare, 2)
	assert.Equal(t, "Beauty", charts.CategoryShare[0].Category)
	assert.Equal(t, float64(350), charts.CategoryShare[0].Revenue)
	assert.Equal(t, 87.5, charts.CategoryShare[0].Percent)
	assert.Equal(t, "Clothing", charts.CategoryShare[1].Category)
	assert.Equal(t, 12.5, charts.CategoryShare[1].Percent)

	// Heatmap: Monday-first rows, sorted category columns.
	assert.Equal(t, []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}, charts.Heatmap.Weekdays)
	assert.Equal(t, []string{"Beauty", "Clothing"}, charts.Heatmap.Categories)
	assert.Equal(t, float64(100), charts.Heatmap.Cells[0][0]) // Monday / Beauty
	assert.Equal(t, float64(50), charts.Heatmap.Cells[0][1])  // Monday / Clothing
	assert.Equal(t, float64(250), charts.Heatmap.Cells[6][0]) // Sunday / Beauty
	assert.Equal(t, float64(0), charts.Heatmap.Cells[3][1])   // Thursday / Clothing

	// Demographics: (category, gender) totals, sorted.
	require.Len(t, charts.Demographics, 3)
	assert.Equal(t, biz.DemographicSlice{Category: "Beauty", Gender: "Female", Revenue: 200}, charts.Demographics[0])
	assert.Equal(t, biz.DemographicSlice{Category: "Beauty", Gender: "Male", Revenue: 150}, charts.Demographics[1])
	assert.Equal(t, biz.DemographicSlice{Category: "Clothing", Gender: "Male", Revenue: 50}, charts.Demographics[2])
}

func TestCharts_EmptyResult(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockSalesRepo(ctrl)
	f := fullFilter()

	repo.EXPECT().DailyBreakdown(gomock.Any(), f).Return(nil, nil)

	uc := newUsecase(t, repo, nil, nil, nil)
	charts, err := uc.Charts(context.Background(), f)
	require.NoError(t, err)
	assert.Empty(t, charts.Trend)
	assert.Empty(t, charts.CategoryShare)
	assert.Empty(t, charts.Heatmap.Categories)
	assert.Len(t, charts.Heatmap.Weekdays, 7)
	assert.Empty(t, charts.Demographics)
}

func TestLedger_CapsLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockSalesRepo(ctrl)
	f := fullFilter()

	repo.EXPECT().Ledger(gomock.Any(), f, biz.MaxLedgerRows).Return([]biz.LedgerEntry{}, nil).Times(2)
	repo.EXPECT().Ledger(gomock.Any(), f, 20).Return([]biz.LedgerEntry{}, nil)

	uc := newUsecase(t, repo, nil, nil, nil)
	ctx := context.Background()

	_, err := uc.Ledger(ctx, f, 0) // default
	require.NoError(t, err)
	_, err = uc.Ledger(ctx, f, 10000) // capped
	require.NoError(t, err)
	_, err = uc.Ledger(ctx, f, 20) // passed through
	require.NoError(t, err)
}

func TestLedger_CacheHit(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockSalesRepo(ctrl)
	cache := mocks.NewMockCache(ctrl)
	f := fullFilter()

	cache.EXPECT().
		Get(gomock.Any(), "ledger:"+f.CacheKey()+":20", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, out any) (bool, error) {
			*out.(*[]biz.LedgerEntry) = []biz.LedgerEntry{
				{SaleDate: date("2022-01-09"), CustomerID: 10, Gender: "Female", Category: "Beauty", TotalSale: 150},
			}
			return true, nil
		})

	uc := newUsecase(t, repo, nil, cache, nil)
	entries, err := uc.Ledger(context.Background(), f, 20)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, float64(150), entries[0].TotalSale)
	// repo.Ledger must not have been called: no expectation was set.
}

func TestLedger_CacheMissPopulates(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockSalesRepo(ctrl)
	cache := mocks.NewMockCache(ctrl)
	f := fullFilter()

	// The cache key carries the capped limit, not the requested one.
	key := "ledger:" + f.CacheKey() + ":" + strconv.Itoa(biz.MaxLedgerRows)
	entries := []biz.LedgerEntry{
		{SaleDate: date("2022-01-03"), CustomerID: 11, Gender: "Male", Category: "Clothing", TotalSale: 50},
	}
	cache.EXPECT().Get(gomock.Any(), key, gomock.Any()).Return(false, nil)
	repo.EXPECT().Ledger(gomock.Any(), f, biz.MaxLedgerRows).Return(entries, nil)
	cache.EXPECT().Set(gomock.Any(), key, entries, gomock.Any()).Return(nil)

	uc := newUsecase(t, repo, nil, cache, nil)
	got, err := uc.Ledger(context.Background(), f, 10000)
	require.NoError(t, err)
	assert.Equal(t, entries, got)
}

func TestRecordSale_Publishes(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockSalesRepo(ctrl)
	pub := mocks.NewMockSalePublisher(ctrl)

	sale := &biz.NewSale{
		SaleDate: date("2022-05-01"), Gender: "Female", Category: "Beauty",
		Quantity: 2, TotalSale: 100,
	}

	pub.EXPECT().Enabled().Return(true)
	pub.EXPECT().PublishSale(gomock.Any(), sale).Return("msg-123", nil)

	uc := newUsecase(t, repo, nil, nil, pub)
	published, id, err := uc.RecordSale(context.Background(), sale)
	require.NoError(t, err)
	assert.True(t, published)
	assert.Equal(t, "msg-123", id)
}

func TestRecordSale_DirectInsertWhenBrokerDisabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockSalesRepo(ctrl)
	tx := mocks.NewMockTransaction(ctrl)
	pub := mocks.NewMockSalePublisher(ctrl)

	sale := &biz.NewSale{
		SaleDate: date("2022-05-01"), Gender: "Male", Category: "Clothing",
		Quantity: 1, TotalSale: 30,
	}

	pub.EXPECT().Enabled().Return(false)
	tx.EXPECT().InTx(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		})
	repo.EXPECT().Insert(gomock.Any(), sale).Return(nil)

	uc := newUsecase(t, repo, tx, nil, pub)
	published, id, err := uc.RecordSale(context.Background(), sale)
	require.NoError(t, err)
	assert.False(t, published)
	assert.Empty(t, id)
}

func TestRecordSale_Invalid(t *testing.T) {
	uc := newUsecase(t, nil, nil, nil, nil)

	cases := []*biz.NewSale{
		nil,
		{},
		{SaleDate: date("2022-05-01"), Gender: "Male", Category: "Beauty", Quantity: 0, TotalSale: 10},
		{SaleDate: date("2022-05-01"), Gender: "Male", Category: "Beauty", Quantity: 1, TotalSale: -1},
		{SaleDate: date("2022-05-01"), Gender: "", Category: "Beauty", Quantity: 1, TotalSale: 10},
	}
	for _, sale := range cases {
		_, _, err := uc.RecordSale(context.Background(), sale)
		assert.ErrorIs(t, err, biz.ErrInvalidSale)
	}
}
