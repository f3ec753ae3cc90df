//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package main

import (
	"github.com/go-kratos/kratos/v2"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"

	"github.com/retail-pulse/analytics/internal/biz"
	"github.com/retail-pulse/analytics/internal/conf"
	"github.com/retail-pulse/analytics/internal/data"
	"github.com/retail-pulse/analytics/internal/ingest"
	"github.com/retail-pulse/analytics/internal/job"
	"github.com/retail-pulse/analytics/internal/server"
	"github.com/retail-pulse/analytics/internal/service"
	"github.com/retail-pulse/analytics/pkg/registry/nacos"
)

// wireApp init kratos application.
func wireApp(*conf.Server, *conf.Data, *conf.RocketMQ, *nacos.Registry, log.Logger) (*kratos.App, func(), error) {
	panic(wire.Build(server.ProviderSet, data.ProviderSet, biz.ProviderSet, service.ProviderSet, job.ProviderSet, ingest.ProviderSet, newApp))
}
