package service

import (
	"net/url"
	"strconv"
	"time"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	khttp "github.com/go-kratos/kratos/v2/transport/http"

	"github.com/retail-pulse/analytics/internal/biz"
)

const dateLayout = "2006-01-02"

// ErrInvalidDate is returned for query dates not in YYYY-MM-DD form.
var ErrInvalidDate = errors.BadRequest("INVALID_DATE", "dates must be YYYY-MM-DD")

// DashboardService exposes the dashboard usecase over HTTP.
type DashboardService struct {
	uc  *biz.DashboardUsecase
	log *log.Helper
}

// NewDashboardService creates a DashboardService.
func NewDashboardService(uc *biz.DashboardUsecase, logger log.Logger) *DashboardService {
	return &DashboardService{
		uc:  uc,
		log: log.NewHelper(log.With(logger, "module", "service/dashboard")),
	}
}

// parseFilter builds a SalesFilter from dashboard query parameters.
// Absent parameters stay unset and are defaulted by the usecase;
// present-but-empty dimension params become explicit empty selections.
func parseFilter(q url.Values) (biz.SalesFilter, error) {
	var f biz.SalesFilter

	if v := q.Get("start_date"); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return f, ErrInvalidDate
		}
		f.StartDate = t
	}
	if v := q.Get("end_date"); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return f, ErrInvalidDate
		}
		f.EndDate = t
	}
	if vs, ok := q["gender"]; ok {
		f.Genders = nonEmpty(vs)
	}
	if vs, ok := q["category"]; ok {
		f.Categories = nonEmpty(vs)
	}
	return f, nil
}

func nonEmpty(vs []string) []string {
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

type dimensionsReply struct {
	MinDate    string   `json:"min_date"`
	MaxDate    string   `json:"max_date"`
	Genders    []string `json:"genders"`
	Categories []string `json:"categories"`
}

// GetFilters serves GET /v1/dashboard/filters.
func (s *DashboardService) GetFilters(ctx khttp.Context) error {
	dims, err := s.uc.Dimensions(ctx)
	if err != nil {
		return err
	}
	return ctx.Result(200, &dimensionsReply{
		MinDate:    dims.Dates.Min.Format(dateLayout),
		MaxDate:    dims.Dates.Max.Format(dateLayout),
		Genders:    dims.Genders,
		Categories: dims.Categories,
	})
}

// GetSummary serves GET /v1/dashboard/summary.
func (s *DashboardService) GetSummary(ctx khttp.Context) error {
	f, err := parseFilter(ctx.Query())
	if err != nil {
		return err
	}
	summary, err := s.uc.Summary(ctx, f)
	if err != nil {
		return err
	}
	return ctx.Result(200, summary)
}

type trendPointReply struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
}

type chartsReply struct {
	Trend         []trendPointReply      `json:"trend"`
	CategoryShare []biz.CategoryShare    `json:"category_share"`
	Heatmap       biz.Heatmap            `json:"heatmap"`
	Demographics  []biz.DemographicSlice `json:"demographics"`
}

// GetCharts serves GET /v1/dashboard/charts.
func (s *DashboardService) GetCharts(ctx khttp.Context) error {
	f, err := parseFilter(ctx.Query())
	if err != nil {
		return err
	}
	charts, err := s.uc.Charts(ctx, f)
	if err != nil {
		return err
	}

	reply := &chartsReply{
		Trend:         make([]trendPointReply, 0, len(charts.Trend)),
		CategoryShare: charts.CategoryShare,
		Heatmap:       charts.Heatmap,
		Demographics:  charts.Demographics,
	}
	for _, p := range charts.Trend {
		reply.Trend = append(reply.Trend, trendPointReply{
			Date:    p.Date.Format(dateLayout),
			Revenue: p.Revenue,
		})
	}
	return ctx.Result(200, reply)
}

type ledgerRowReply struct {
	SaleDate   string  `json:"sale_date"`
	CustomerID int64   `json:"customer_id"`
	Gender     string  `json:"gender"`
	Category   string  `json:"category"`
	TotalSale  float64 `json:"total_sale"`
}

type ledgerReply struct {
	Rows []ledgerRowReply `json:"rows"`
}

// GetLedger serves GET /v1/dashboard/ledger.
func (s *DashboardService) GetLedger(ctx khttp.Context) error {
	q := ctx.Query()
	f, err := parseFilter(q)
	if err != nil {
		return err
	}

	limit := 0
	if v := q.Get("limit"); v != "" {
		limit, err = strconv.Atoi(v)
		if err != nil || limit < 0 {
			return errors.BadRequest("INVALID_LIMIT", "limit must be a non-negative integer")
		}
	}

	entries, err := s.uc.Ledger(ctx, f, limit)
	if err != nil {
		return err
	}

	reply := &ledgerReply{Rows: make([]ledgerRowReply, 0, len(entries))}
	for _, e := range entries {
		reply.Rows = append(reply.Rows, ledgerRowReply{
			SaleDate:   e.SaleDate.Format(dateLayout),
			CustomerID: e.CustomerID,
			Gender:     e.Gender,
			Category:   e.Category,
			TotalSale:  e.TotalSale,
		})
	}
	return ctx.Result(200, reply)
}

type recordSaleRequest struct {
	TransactionID int64   `json:"transaction_id"`
	SaleDate      string  `json:"sale_date"`
	SaleTime      string  `json:"sale_time"`
	CustomerID    int64   `json:"customer_id"`
	Gender        string  `json:"gender"`
	Age           int32   `json:"age"`
	Category      string  `json:"category"`
	Quantity      int32   `json:"quantity"`
	PricePerUnit  float64 `json:"price_per_unit"`
	COGS          float64 `json:"cogs"`
	TotalSale     float64 `json:"total_sale"`
}

type recordSaleReply struct {
	Published bool   `json:"published"`
	MessageID string `json:"message_id,omitempty"`
}

// RecordSale serves POST /v1/sales.
func (s *DashboardService) RecordSale(ctx khttp.Context) error {
	var req recordSaleRequest
	if err := ctx.Bind(&req); err != nil {
		return errors.BadRequest("INVALID_BODY", "request body is not valid JSON")
	}

	saleDate, err := time.Parse(dateLayout, req.SaleDate)
	if err != nil {
		return ErrInvalidDate
	}

	sale := &biz.NewSale{
		TransactionID: req.TransactionID,
		SaleDate:      saleDate,
		SaleTime:      req.SaleTime,
		CustomerID:    req.CustomerID,
		Gender:        req.Gender,
		Age:           req.Age,
		Category:      req.Category,
		Quantity:      req.Quantity,
		PricePerUnit:  req.PricePerUnit,
		COGS:          req.COGS,
		TotalSale:     req.TotalSale,
	}

	published, msgID, err := s.uc.RecordSale(ctx, sale)
	if err != nil {
		return err
	}

	code := 201
	if published {
		code = 202
	}
	return ctx.Result(code, &recordSaleReply{Published: published, MessageID: msgID})
}

// Healthz serves GET /healthz.
func (s *DashboardService) Healthz(ctx khttp.Context) error {
	return ctx.Result(200, map[string]string{"status": "ok"})
}
