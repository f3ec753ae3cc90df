package job

import (
	"github.com/go-kratos/kratos/v2/transport"
	"github.com/google/wire"
)

// Registry holds all background jobs for Kratos lifecycle management.
type Registry struct {
	WarmCache *WarmCacheJob
}

// Servers returns all enabled jobs as a transport.Server slice for
// kratos.Server(). Disabled jobs are nil and skipped.
func (r *Registry) Servers() []transport.Server {
	servers := make([]transport.Server, 0, 1)
	if r.WarmCache != nil {
		servers = append(servers, r.WarmCache)
	}
	return servers
}

// ProviderSet is the job providers.
var ProviderSet = wire.NewSet(
	NewWarmCacheJob,
	wire.Struct(new(Registry), "*"),
)
