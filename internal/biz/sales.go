package biz

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
	"time"

	"github.com/go-kratos/kratos/v2/errors"
)

// Filter validation errors surfaced at the API edge.
var (
	ErrInvalidDateRange = errors.BadRequest("INVALID_DATE_RANGE", "start_date must not be after end_date")
	ErrEmptyGenders     = errors.BadRequest("EMPTY_FILTER", "at least one gender is required")
	ErrEmptyCategories  = errors.BadRequest("EMPTY_FILTER", "at least one category is required")
	ErrInvalidSale      = errors.BadRequest("INVALID_SALE", "sale record is incomplete")

	// ErrEmptyDataset is returned when the retail_sales table holds no
	// rows, so there are no date bounds to anchor the dashboard on.
	ErrEmptyDataset = errors.NotFound("EMPTY_DATASET", "no sales data is available")
)

// SalesFilter restricts dashboard queries to a date range and a set of
// gender/category dimension values.
type SalesFilter struct {
	StartDate  time.Time
	EndDate    time.Time
	Genders    []string
	Categories []string
}

// Validate checks a fully resolved filter.
func (f SalesFilter) Validate() error {
	if f.StartDate.After(f.EndDate) {
		return ErrInvalidDateRange
	}
	if len(f.Genders) == 0 {
		return ErrEmptyGenders
	}
	if len(f.Categories) == 0 {
		return ErrEmptyCategories
	}
	return nil
}

// CacheKey returns a deterministic digest of the filter. Dimension lists
// are sorted first so logically equal filters share a cache entry.
func (f SalesFilter) CacheKey() string {
	genders := append([]string(nil), f.Genders...)
	categories := append([]string(nil), f.Categories...)
	sort.Strings(genders)
	sort.Strings(categories)

	var b strings.Builder
	b.WriteString(f.StartDate.Format("2006-01-02"))
	b.WriteByte('|')
	b.WriteString(f.EndDate.Format("2006-01-02"))
	b.WriteByte('|')
	b.WriteString(strings.Join(genders, ","))
	b.WriteByte('|')
	b.WriteString(strings.Join(categories, ","))

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:8])
}

// DateBounds is the min/max sale_date present in the table.
type DateBounds struct {
	Min time.Time `json:"min"`
	Max time.Time `json:"max"`
}

// Dimensions is the set of filterable dimension values, used to populate
// the dashboard controls and to default unset filter parameters.
type Dimensions struct {
	Dates      DateBounds `json:"dates"`
	Genders    []string   `json:"genders"`
	Categories []string   `json:"categories"`
}

// Summary holds the KPI card values for a filtered slice of sales.
type Summary struct {
	GrossRevenue    float64 `json:"gross_revenue"`
	TotalOrders     int64   `json:"total_orders"`
	UniqueCustomers int64   `json:"unique_customers"`
	AvgOrderValue   float64 `json:"avg_order_value"`
}

// DailyRevenueRow is one row of the grouped base query:
// revenue summed per (sale_date, category, gender).
type DailyRevenueRow struct {
	SaleDate time.Time
	Category string
	Gender   string
	Revenue  float64
}

// TrendPoint is one point on the revenue trajectory chart.
type TrendPoint struct {
	Date    time.Time `json:"date"`
	Revenue float64   `json:"revenue"`
}

// CategoryShare is one slice of the category share donut.
type CategoryShare struct {
	Category string  `json:"category"`
	Revenue  float64 `json:"revenue"`
	Percent  float64 `json:"percent"`
}

// Heatmap is the weekday x category sales intensity matrix.
// Rows are always Monday..Sunday; columns are sorted category names.
// Cells[r][c] is the summed revenue for (Weekdays[r], Categories[c]).
type Heatmap struct {
	Weekdays   []string    `json:"weekdays"`
	Categories []string    `json:"categories"`
	Cells      [][]float64 `json:"cells"`
}

// DemographicSlice is one (category, gender) segment of the stacked
// demographic preferences chart.
type DemographicSlice struct {
	Category string  `json:"category"`
	Gender   string  `json:"gender"`
	Revenue  float64 `json:"revenue"`
}

// ChartData bundles the chart datasets derived from one grouped query.
type ChartData struct {
	Trend         []TrendPoint       `json:"trend"`
	CategoryShare []CategoryShare    `json:"category_share"`
	Heatmap       Heatmap            `json:"heatmap"`
	Demographics  []DemographicSlice `json:"demographics"`
}

// LedgerEntry is one row of the transaction ledger view.
type LedgerEntry struct {
	SaleDate   time.Time `json:"sale_date"`
	CustomerID int64     `json:"customer_id"`
	Gender     string    `json:"gender"`
	Category   string    `json:"category"`
	TotalSale  float64   `json:"total_sale"`
}

// NewSale is an incoming sale record from the write path.
type NewSale struct {
	TransactionID int64     `json:"transaction_id"`
	SaleDate      time.Time `json:"sale_date"`
	SaleTime      string    `json:"sale_time"`
	CustomerID    int64     `json:"customer_id"`
	Gender        string    `json:"gender"`
	Age           int32     `json:"age"`
	Category      string    `json:"category"`
	Quantity      int32     `json:"quantity"`
	PricePerUnit  float64   `json:"price_per_unit"`
	COGS          float64   `json:"cogs"`
	TotalSale     float64   `json:"total_sale"`
}

// Validate checks the fields the aggregations depend on.
func (s *NewSale) Validate() error {
	if s == nil || s.SaleDate.IsZero() || s.Gender == "" || s.Category == "" {
		return ErrInvalidSale
	}
	if s.Quantity <= 0 || s.TotalSale < 0 {
		return ErrInvalidSale
	}
	return nil
}

// SalesRepo is the read/write interface over the retail_sales table.
// Defined in biz layer, implemented by data layer.
type SalesRepo interface {
	DateBounds(ctx context.Context) (DateBounds, error)
	DistinctGenders(ctx context.Context) ([]string, error)
	DistinctCategories(ctx context.Context) ([]string, error)
	Summary(ctx context.Context, f SalesFilter) (*Summary, error)
	DailyBreakdown(ctx context.Context, f SalesFilter) ([]DailyRevenueRow, error)
	Ledger(ctx context.Context, f SalesFilter, limit int) ([]LedgerEntry, error)
	Insert(ctx context.Context, sale *NewSale) error
}

// Cache is a read-through TTL cache for dashboard responses.
// Defined in biz layer, implemented by data/infra layer.
type Cache interface {
	// Get unmarshals the cached value into out and reports whether the
	// key was present.
	Get(ctx context.Context, key string, out any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// SalePublisher publishes accepted sales to the ingest pipeline.
type SalePublisher interface {
	// Enabled reports whether a broker is configured.
	Enabled() bool
	// PublishSale publishes the sale and returns the broker message id.
	PublishSale(ctx context.Context, sale *NewSale) (string, error)
}
