package data

import (
	"context"
	"database/sql"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"gorm.io/gorm"

	"github.com/retail-pulse/analytics/internal/biz"
	"github.com/retail-pulse/analytics/internal/model"
)

type salesRepo struct {
	data *Data
	log  *log.Helper
}

// NewSalesRepo creates the retail_sales repository.
func NewSalesRepo(data *Data, logger log.Logger) biz.SalesRepo {
	return &salesRepo{
		data: data,
		log:  log.NewHelper(log.With(logger, "module", "data/sales")),
	}
}

// queryErr wraps a database failure for the API edge.
func queryErr(op string, err error) error {
	return errors.InternalServer("DATA_QUERY_FAILED", op).WithCause(err)
}

// filtered returns the base query restricted to the filter's date range
// and dimension values. Everything is bound as parameters.
func (r *salesRepo) filtered(ctx context.Context, f biz.SalesFilter) *gorm.DB {
	return r.data.DB(ctx).
		Model(&model.Sale{}).
		Where("sale_date BETWEEN ? AND ?", f.StartDate, f.EndDate).
		Where("gender IN ?", f.Genders).
		Where("category IN ?", f.Categories)
}

func (r *salesRepo) DateBounds(ctx context.Context) (biz.DateBounds, error) {
	var row struct {
		MinDate sql.NullTime
		MaxDate sql.NullTime
	}
	err := r.data.DB(ctx).
		Model(&model.Sale{}).
		Select("MIN(sale_date) AS min_date, MAX(sale_date) AS max_date").
		Scan(&row).Error
	if err != nil {
		return biz.DateBounds{}, queryErr("date bounds", err)
	}

	var bounds biz.DateBounds
	if row.MinDate.Valid {
		bounds.Min = row.MinDate.Time
	}
	if row.MaxDate.Valid {
		bounds.Max = row.MaxDate.Time
	}
	return bounds, nil
}

func (r *salesRepo) DistinctGenders(ctx context.Context) ([]string, error) {
	var genders []string
	err := r.data.DB(ctx).
		Model(&model.Sale{}).
		Distinct().
		Order("gender").
		Pluck("gender", &genders).Error
	if err != nil {
		return nil, queryErr("distinct genders", err)
	}
	return genders, nil
}

func (r *salesRepo) DistinctCategories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.data.DB(ctx).
		Model(&model.Sale{}).
		Distinct().
		Order("category").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, queryErr("distinct categories", err)
	}
	return categories, nil
}

func (r *salesRepo) Summary(ctx context.Context, f biz.SalesFilter) (*biz.Summary, error) {
	var row struct {
		TotalSales     float64
		TotalCustomers int64
		TotalOrders    int64
	}
	err := r.filtered(ctx, f).
		Select("COALESCE(SUM(total_sale), 0) AS total_sales, " +
			"COUNT(DISTINCT customer_id) AS total_customers, " +
			"COUNT(transaction_id) AS total_orders").
		Scan(&row).Error
	if err != nil {
		return nil, queryErr("kpi summary", err)
	}

	return &biz.Summary{
		GrossRevenue:    row.TotalSales,
		TotalOrders:     row.TotalOrders,
		UniqueCustomers: row.TotalCustomers,
	}, nil
}

func (r *salesRepo) DailyBreakdown(ctx context.Context, f biz.SalesFilter) ([]biz.DailyRevenueRow, error) {
	var rows []struct {
		SaleDate sql.NullTime
		Category string
		Gender   string
		Revenue  float64
	}
	err := r.filtered(ctx, f).
		Select("sale_date, category, gender, SUM(total_sale) AS revenue").
		Group("sale_date, category, gender").
		Order("sale_date").
		Scan(&rows).Error
	if err != nil {
		return nil, queryErr("daily breakdown", err)
	}

	out := make([]biz.DailyRevenueRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, biz.DailyRevenueRow{
			SaleDate: row.SaleDate.Time,
			Category: row.Category,
			Gender:   row.Gender,
			Revenue:  row.Revenue,
		})
	}
	return out, nil
}

func (r *salesRepo) Ledger(ctx context.Context, f biz.SalesFilter, limit int) ([]biz.LedgerEntry, error) {
	var rows []struct {
		SaleDate   sql.NullTime
		CustomerID int64
		Gender     string
		Category   string
		TotalSale  float64
	}
	err := r.filtered(ctx, f).
		Select("sale_date, customer_id, gender, category, total_sale").
		Order("sale_date DESC, transaction_id DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, queryErr("transaction ledger", err)
	}

	entries := make([]biz.LedgerEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, biz.LedgerEntry{
			SaleDate:   row.SaleDate.Time,
			CustomerID: row.CustomerID,
			Gender:     row.Gender,
			Category:   row.Category,
			TotalSale:  row.TotalSale,
		})
	}
	return entries, nil
}

func (r *salesRepo) Insert(ctx context.Context, sale *biz.NewSale) error {
	row := &model.Sale{
		TransactionID: sale.TransactionID,
		SaleDate:      sale.SaleDate,
		SaleTime:      sale.SaleTime,
		CustomerID:    sale.CustomerID,
		Gender:        sale.Gender,
		Age:           sale.Age,
		Category:      sale.Category,
		Quantity:      sale.Quantity,
		PricePerUnit:  sale.PricePerUnit,
		COGS:          sale.COGS,
		TotalSale:     sale.TotalSale,
	}
	if err := r.data.DB(ctx).Create(row).Error; err != nil {
		return queryErr("insert sale", err)
	}
	r.log.WithContext(ctx).Debugf("inserted sale transaction_id=%d", row.TransactionID)
	return nil
}
