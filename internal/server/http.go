package server

import (
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/logging"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/retail-pulse/analytics/internal/conf"
	"github.com/retail-pulse/analytics/internal/service"
)

// NewHTTPServer creates the HTTP server and registers the dashboard routes.
func NewHTTPServer(c *conf.Server, svc *service.DashboardService, logger log.Logger) *http.Server {
	opts := []http.ServerOption{
		http.Middleware(
			recovery.Recovery(),
			logging.Server(logger),
		),
	}
	if c.HTTP != nil {
		if c.HTTP.Network != "" {
			opts = append(opts, http.Network(c.HTTP.Network))
		}
		if c.HTTP.Addr != "" {
			opts = append(opts, http.Address(c.HTTP.Addr))
		}
		if c.HTTP.Timeout != 0 {
			opts = append(opts, http.Timeout(c.HTTP.Timeout.AsDuration()))
		}
	}

	srv := http.NewServer(opts...)
	registerRoutes(srv, svc)
	return srv
}

func registerRoutes(srv *http.Server, svc *service.DashboardService) {
	root := srv.Route("/")
	root.GET("/healthz", svc.Healthz)

	v1 := srv.Route("/v1")
	v1.GET("/dashboard/filters", svc.GetFilters)
	v1.GET("/dashboard/summary", svc.GetSummary)
	v1.GET("/dashboard/charts", svc.GetCharts)
	v1.GET("/dashboard/ledger", svc.GetLedger)
	v1.POST("/sales", svc.RecordSale)
}
