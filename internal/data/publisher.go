package data

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/retail-pulse/analytics/internal/biz"
	"github.com/retail-pulse/analytics/internal/conf"
	"github.com/retail-pulse/analytics/pkg/rocketmq"
)

// SaleTag is the message tag carried by sale events, matched by the
// ingest consumer's filter expression.
const SaleTag = "sale"

// salePublisher publishes accepted sales to the RocketMQ sale topic.
type salePublisher struct {
	producer *rocketmq.Producer
	topic    string
	log      *log.Helper
}

// NewSalePublisher creates the biz.SalePublisher. When RocketMQ is not
// configured it returns a disabled publisher and the usecase falls back
// to direct inserts.
func NewSalePublisher(c *conf.RocketMQ, logger log.Logger) (biz.SalePublisher, func(), error) {
	logHelper := log.NewHelper(log.With(logger, "module", "data/publisher"))

	if !c.Enabled() {
		logHelper.Info("rocketmq not configured, sale publishing disabled")
		return &salePublisher{log: logHelper}, func() {}, nil
	}

	cfg := rocketmq.NewConfigFromConf(c)
	producer, cleanup, err := rocketmq.NewProducer(cfg, []string{c.GetSaleTopic()}, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("create sale publisher: %w", err)
	}

	return &salePublisher{
		producer: producer,
		topic:    c.GetSaleTopic(),
		log:      logHelper,
	}, cleanup, nil
}

func (p *salePublisher) Enabled() bool {
	return p.producer != nil
}

func (p *salePublisher) PublishSale(ctx context.Context, sale *biz.NewSale) (string, error) {
	body, err := json.Marshal(sale)
	if err != nil {
		return "", fmt.Errorf("encode sale event: %w", err)
	}

	receipt, err := p.producer.SendMessage(ctx, &rocketmq.Message{
		Topic: p.topic,
		Body:  body,
		Keys:  saleKeys(sale),
		Tag:   SaleTag,
	})
	if err != nil {
		return "", fmt.Errorf("publish sale event: %w", err)
	}

	p.log.WithContext(ctx).Debugf("published sale event msgId=%s", receipt.MessageID)
	return receipt.MessageID, nil
}

func saleKeys(sale *biz.NewSale) []string {
	if sale.TransactionID == 0 {
		return nil
	}
	return []string{strconv.FormatInt(sale.TransactionID, 10)}
}
