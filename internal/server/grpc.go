package server

import (
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/logging"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport/grpc"
	googlegrpc "google.golang.org/grpc"

	"github.com/retail-pulse/analytics/internal/conf"
)

// maxRecvMsgSize bounds inbound gRPC messages; the health/reflection
// surface this server exposes never needs more.
const maxRecvMsgSize = 4 << 20

// NewGRPCServer creates the gRPC server. Only the built-in health and
// reflection services are exposed; the dashboard API itself is HTTP.
func NewGRPCServer(c *conf.Server, logger log.Logger) *grpc.Server {
	opts := []grpc.ServerOption{
		grpc.Middleware(
			recovery.Recovery(),
			logging.Server(logger),
		),
		grpc.Options(googlegrpc.MaxRecvMsgSize(maxRecvMsgSize)),
	}
	if c.GRPC != nil {
		if c.GRPC.Network != "" {
			opts = append(opts, grpc.Network(c.GRPC.Network))
		}
		if c.GRPC.Addr != "" {
			opts = append(opts, grpc.Address(c.GRPC.Addr))
		}
		if c.GRPC.Timeout != 0 {
			opts = append(opts, grpc.Timeout(c.GRPC.Timeout.AsDuration()))
		}
	}
	return grpc.NewServer(opts...)
}
