package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"

	"github.com/retail-pulse/analytics/internal/biz"
	"github.com/retail-pulse/analytics/internal/conf"
	"github.com/retail-pulse/analytics/internal/data"
	"github.com/retail-pulse/analytics/pkg/rocketmq"
)

// ProviderSet is ingest providers.
var ProviderSet = wire.NewSet(NewServer)

// Server consumes sale events from the sale topic and inserts them into
// the sales store. When RocketMQ is not configured the server is a no-op
// and sales are only written through the direct insert path.
type Server struct {
	consumer *rocketmq.PushConsumer
	repo     biz.SalesRepo
	log      *log.Helper
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewServer creates the sale ingest server.
func NewServer(c *conf.RocketMQ, repo biz.SalesRepo, logger log.Logger) (*Server, func(), error) {
	logHelper := log.NewHelper(log.With(logger, "module", "ingest"))

	s := &Server{
		repo:   repo,
		log:    logHelper,
		stopCh: make(chan struct{}),
	}
	if !c.Enabled() {
		logHelper.Info("rocketmq not configured, sale ingest disabled")
		return s, func() {}, nil
	}

	cfg := rocketmq.NewConfigFromConf(c)
	cfg.ConsumerGroup = c.GetConsumerGroup()
	subscriptions := map[string]*rocketmq.FilterExpression{
		c.GetSaleTopic(): rocketmq.NewFilterExpression(data.SaleTag),
	}

	consumer, cleanup, err := rocketmq.NewPushConsumer(
		rocketmq.NewPushConsumerConfigFromConfig(cfg), subscriptions, s.handle, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("create sale ingest consumer: %w", err)
	}

	s.consumer = consumer
	return s, cleanup, nil
}

// handle processes one sale event. Malformed events are acknowledged and
// dropped so they are not redelivered forever; insert failures are
// retried by the broker.
func (s *Server) handle(msg *rocketmq.MessageView) rocketmq.ConsumerResult {
	sale, err := decodeSale(msg.GetBody())
	if err != nil {
		s.log.Errorf("drop malformed sale event %s: %v", msg.GetMessageId(), err)
		return rocketmq.ConsumeSuccess
	}

	if err := s.repo.Insert(context.Background(), sale); err != nil {
		s.log.Errorf("insert sale event %s: %v", msg.GetMessageId(), err)
		return rocketmq.ConsumeFailure
	}
	return rocketmq.ConsumeSuccess
}

// decodeSale decodes and validates a sale event body.
func decodeSale(body []byte) (*biz.NewSale, error) {
	var sale biz.NewSale
	if err := json.Unmarshal(body, &sale); err != nil {
		return nil, fmt.Errorf("decode sale event: %w", err)
	}
	if err := sale.Validate(); err != nil {
		return nil, err
	}
	return &sale, nil
}

// Start implements transport.Server. It returns immediately when ingest
// is disabled, otherwise it blocks until Stop or context cancellation.
func (s *Server) Start(ctx context.Context) error {
	if s.consumer == nil {
		return nil
	}
	if err := s.consumer.Start(); err != nil {
		return err
	}
	s.log.Info("sale ingest started")

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.stopCh:
		return nil
	}
}

// Stop implements transport.Server. Safe to call multiple times.
func (s *Server) Stop(_ context.Context) error {
	s.stopOnce.Do(func() {
		close(s.stopCh)
	})
	return nil
}
