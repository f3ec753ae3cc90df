package biz

import (
	"context"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/retail-pulse/analytics/internal/conf"
)

const dimensionsCacheKey = "dimensions"

// weekdayOrder fixes the heatmap row order, Monday first.
var weekdayOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// MaxLedgerRows caps the ledger response size.
const MaxLedgerRows = 500

// DashboardUsecase computes the dashboard KPIs and chart datasets from
// filtered sales, caching every response for the configured TTL.
type DashboardUsecase struct {
	repo      SalesRepo
	tx        Transaction
	cache     Cache
	publisher SalePublisher
	ttl       time.Duration
	log       *log.Helper
}

// NewDashboardUsecase creates a DashboardUsecase.
func NewDashboardUsecase(repo SalesRepo, tx Transaction, cache Cache, publisher SalePublisher, c *conf.Data, logger log.Logger) *DashboardUsecase {
	var cacheConf *conf.Cache
	if c != nil {
		cacheConf = c.Cache
	}
	return &DashboardUsecase{
		repo:      repo,
		tx:        tx,
		cache:     cache,
		publisher: publisher,
		ttl:       cacheConf.GetTTL(),
		log:       log.NewHelper(log.With(logger, "module", "biz/dashboard")),
	}
}

// Dimensions returns the filterable dimension values, cached.
func (uc *DashboardUsecase) Dimensions(ctx context.Context) (*Dimensions, error) {
	var cached Dimensions
	if ok := uc.cacheGet(ctx, dimensionsCacheKey, &cached); ok {
		return &cached, nil
	}
	return uc.RefreshDimensions(ctx)
}

// RefreshDimensions loads the dimension values from the store and
// rewrites the cache entry regardless of its freshness, so a periodic
// caller can keep the entry warm across TTL expiry.
func (uc *DashboardUsecase) RefreshDimensions(ctx context.Context) (*Dimensions, error) {
	bounds, err := uc.repo.DateBounds(ctx)
	if err != nil {
		return nil, err
	}
	if bounds.Min.IsZero() || bounds.Max.IsZero() {
		return nil, ErrEmptyDataset
	}
	genders, err := uc.repo.DistinctGenders(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := uc.repo.DistinctCategories(ctx)
	if err != nil {
		return nil, err
	}

	dims := &Dimensions{Dates: bounds, Genders: genders, Categories: categories}
	uc.cacheSet(ctx, dimensionsCacheKey, dims)
	return dims, nil
}

// ResolveFilter fills unset filter fields from the dimension set and
// validates the result. Unset dates default to the table's date bounds;
// nil dimension lists default to every distinct value, mirroring the
// dashboard's control defaults. Explicitly empty lists stay empty and
// fail validation.
func (uc *DashboardUsecase) ResolveFilter(ctx context.Context, f SalesFilter) (SalesFilter, error) {
	if f.StartDate.IsZero() || f.EndDate.IsZero() || f.Genders == nil || f.Categories == nil {
		dims, err := uc.Dimensions(ctx)
		if err != nil {
			return SalesFilter{}, err
		}
		if f.StartDate.IsZero() {
			f.StartDate = dims.Dates.Min
		}
		if f.EndDate.IsZero() {
			f.EndDate = dims.Dates.Max
		}
		if f.Genders == nil {
			f.Genders = dims.Genders
		}
		if f.Categories == nil {
			f.Categories = dims.Categories
		}
	}
	if err := f.Validate(); err != nil {
		return SalesFilter{}, err
	}
	return f, nil
}

// Summary returns the KPI card values for the filtered slice.
func (uc *DashboardUsecase) Summary(ctx context.Context, f SalesFilter) (*Summary, error) {
	f, err := uc.ResolveFilter(ctx, f)
	if err != nil {
		return nil, err
	}

	key := "summary:" + f.CacheKey()
	var cached Summary
	if ok := uc.cacheGet(ctx, key, &cached); ok {
		return &cached, nil
	}

	s, err := uc.repo.Summary(ctx, f)
	if err != nil {
		return nil, err
	}
	if s.TotalOrders > 0 {
		s.AvgOrderValue = roundTo2(s.GrossRevenue / float64(s.TotalOrders))
	} else {
		s.AvgOrderValue = 0
	}

	uc.cacheSet(ctx, key, s)
	return s, nil
}

// Charts returns the four chart datasets, derived in-memory from one
// grouped query over the filtered slice.
func (uc *DashboardUsecase) Charts(ctx context.Context, f SalesFilter) (*ChartData, error) {
	f, err := uc.ResolveFilter(ctx, f)
	if err != nil {
		return nil, err
	}

	key := "charts:" + f.CacheKey()
	var cached ChartData
	if ok := uc.cacheGet(ctx, key, &cached); ok {
		return &cached, nil
	}

	rows, err := uc.repo.DailyBreakdown(ctx, f)
	if err != nil {
		return nil, err
	}

	charts := &ChartData{
		Trend:         deriveTrend(rows),
		CategoryShare: deriveCategoryShare(rows),
		Heatmap:       deriveHeatmap(rows),
		Demographics:  deriveDemographics(rows),
	}

	uc.cacheSet(ctx, key, charts)
	return charts, nil
}

// Ledger returns the most recent transactions in the filtered slice,
// newest first. limit is defaulted and hard-capped at MaxLedgerRows.
func (uc *DashboardUsecase) Ledger(ctx context.Context, f SalesFilter, limit int) ([]LedgerEntry, error) {
	f, err := uc.ResolveFilter(ctx, f)
	if err != nil {
		return nil, err
	}
	if limit <= 0 || limit > MaxLedgerRows {
		limit = MaxLedgerRows
	}

	key := "ledger:" + f.CacheKey() + ":" + strconv.Itoa(limit)
	var cached []LedgerEntry
	if ok := uc.cacheGet(ctx, key, &cached); ok {
		return cached, nil
	}

	entries, err := uc.repo.Ledger(ctx, f, limit)
	if err != nil {
		return nil, err
	}
	uc.cacheSet(ctx, key, entries)
	return entries, nil
}

// RecordSale accepts a new sale. When a broker is configured the sale is
// published for the ingest consumer and the broker message id is
// returned with published=true; otherwise the row is inserted directly.
func (uc *DashboardUsecase) RecordSale(ctx context.Context, sale *NewSale) (published bool, messageID string, err error) {
	if err := sale.Validate(); err != nil {
		return false, "", err
	}

	if uc.publisher != nil && uc.publisher.Enabled() {
		id, err := uc.publisher.PublishSale(ctx, sale)
		if err != nil {
			return false, "", err
		}
		return true, id, nil
	}

	err = uc.tx.InTx(ctx, func(ctx context.Context) error {
		return uc.repo.Insert(ctx, sale)
	})
	if err != nil {
		return false, "", err
	}
	return false, "", nil
}

// cacheGet reads a cached value; cache failures degrade to a miss.
func (uc *DashboardUsecase) cacheGet(ctx context.Context, key string, out any) bool {
	if uc.cache == nil {
		return false
	}
	ok, err := uc.cache.Get(ctx, key, out)
	if err != nil {
		uc.log.WithContext(ctx).Warnf("cache get %s: %v", key, err)
		return false
	}
	return ok
}

// cacheSet writes a cached value; failures are logged, not returned.
func (uc *DashboardUsecase) cacheSet(ctx context.Context, key string, value any) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Set(ctx, key, value, uc.ttl); err != nil {
		uc.log.WithContext(ctx).Warnf("cache set %s: %v", key, err)
	}
}

func deriveTrend(rows []DailyRevenueRow) []TrendPoint {
	byDate := make(map[time.Time]float64)
	for _, r := range rows {
		byDate[r.SaleDate] = byDate[r.SaleDate] + r.Revenue
	}

	points := make([]TrendPoint, 0, len(byDate))
	for date, revenue := range byDate {
		points = append(points, TrendPoint{Date: date, Revenue: roundTo2(revenue)})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
	return points
}

func deriveCategoryShare(rows []DailyRevenueRow) []CategoryShare {
	byCategory := make(map[string]float64)
	var total float64
	for _, r := range rows {
		byCategory[r.Category] += r.Revenue
		total += r.Revenue
	}

	shares := make([]CategoryShare, 0, len(byCategory))
	for category, revenue := range byCategory {
		share := CategoryShare{Category: category, Revenue: roundTo2(revenue)}
		if total > 0 {
			share.Percent = roundTo2(100 * revenue / total)
		}
		shares = append(shares, share)
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Revenue != shares[j].Revenue {
			return shares[i].Revenue > shares[j].Revenue
		}
		return shares[i].Category < shares[j].Category
	})
	return shares
}

func deriveHeatmap(rows []DailyRevenueRow) Heatmap {
	categorySet := make(map[string]bool)
	type cellKey struct {
		weekday  time.Weekday
		category string
	}
	cells := make(map[cellKey]float64)
	for _, r := range rows {
		categorySet[r.Category] = true
		cells[cellKey{r.SaleDate.Weekday(), r.Category}] += r.Revenue
	}

	categories := make([]string, 0, len(categorySet))
	for c := range categorySet {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	weekdays := make([]string, len(weekdayOrder))
	matrix := make([][]float64, len(weekdayOrder))
	for i, wd := range weekdayOrder {
		weekdays[i] = wd.String()
		matrix[i] = make([]float64, len(categories))
		for j, c := range categories {
			matrix[i][j] = roundTo2(cells[cellKey{wd, c}])
		}
	}

	return Heatmap{Weekdays: weekdays, Categories: categories, Cells: matrix}
}

func deriveDemographics(rows []DailyRevenueRow) []DemographicSlice {
	type sliceKey struct {
		category string
		gender   string
	}
	byKey := make(map[sliceKey]float64)
	for _, r := range rows {
		byKey[sliceKey{r.Category, r.Gender}] += r.Revenue
	}

	slices := make([]DemographicSlice, 0, len(byKey))
	for key, revenue := range byKey {
		slices = append(slices, DemographicSlice{
			Category: key.category,
			Gender:   key.gender,
			Revenue:  roundTo2(revenue),
		})
	}
	sort.Slice(slices, func(i, j int) bool {
		if slices[i].Category != slices[j].Category {
			return slices[i].Category < slices[j].Category
		}
		return slices[i].Gender < slices[j].Gender
	})
	return slices
}

func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
