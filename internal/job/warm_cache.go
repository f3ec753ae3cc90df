package job

import (
	"context"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/retail-pulse/analytics/internal/biz"
	"github.com/retail-pulse/analytics/internal/conf"
)

// WarmCacheJob periodically refreshes the cached filter dimensions so
// the dashboard filter panel stays warm across cache TTL expiry. It
// runs once at startup and then on every interval tick.
type WarmCacheJob struct {
	TickerJob
	uc *biz.DashboardUsecase
}

// NewWarmCacheJob creates the cache warming job. Returns nil when the
// warm interval is configured negative, which disables the job.
func NewWarmCacheJob(c *conf.Data, uc *biz.DashboardUsecase, logger log.Logger) *WarmCacheJob {
	var cacheConf *conf.Cache
	if c != nil {
		cacheConf = c.Cache
	}
	interval := cacheConf.GetWarmInterval()
	if interval <= 0 {
		return nil
	}
	j := &WarmCacheJob{uc: uc}
	j.TickerJob = newTickerJob("warm-cache-job", interval, logger, j.execute, true)
	return j
}

func (j *WarmCacheJob) execute(ctx context.Context) {
	// RefreshDimensions rather than Dimensions: a read-through lookup
	// would no-op while the entry is live and let it expire between
	// ticks; the refresh rewrites the entry and restarts its TTL.
	if _, err := j.uc.RefreshDimensions(ctx); err != nil {
		j.log.Warnf("warm-cache-job: refresh dimensions: %v", err)
	}
}
