package relay

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Mohahamed99-by/shoe-store-morocco/internal/config"
	"github.com/Mohahamed99-by/shoe-store-morocco/pkg/httpclient"
	"github.com/Mohahamed99-by/shoe-store-morocco/pkg/kafka"
)

// CloseFunc releases resources held by a relay.
type CloseFunc func() error

func noopClose() error { return nil }

// New builds the instrumented relay selected by cfg.RelayDriver.
func New(cfg *config.Storefront, logger *slog.Logger) (Relay, CloseFunc, error) {
	switch cfg.RelayDriver {
	case config.RelayLog:
		return Instrument(NewLog(logger)), noopClose, nil

	case config.RelayEmailJS:
		httpCfg := httpclient.DefaultConfig()
		httpCfg.Timeout = cfg.HTTPTimeout()
		httpCfg.MaxRetries = 0
		breaker := httpclient.NewCircuitBreakerClient(
			httpclient.New(httpCfg),
			httpclient.DefaultCircuitBreakerConfig("emailjs"),
			logger,
		)
		r := NewEmailJS(EmailJSConfig{
			Endpoint:   cfg.EmailJSEndpoint,
			ServiceID:  cfg.EmailJSServiceID,
			TemplateID: cfg.EmailJSTemplateID,
			UserID:     cfg.EmailJSUserID,
		}, breaker, logger)
		return Instrument(r), noopClose, nil

	case config.RelayKafka:
		producer := kafka.NewProducer(kafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)
		// The writer dials lazily; an unreachable cluster only warns here.
		ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPTimeout())
		if err := producer.Ping(ctx); err != nil {
			logger.Warn("kafka brokers unreachable, orders will fail until they recover",
				slog.Any("brokers", cfg.KafkaBrokers),
				slog.String("error", err.Error()),
			)
		}
		cancel()
		return Instrument(NewKafka(producer, cfg.OrderTopic)), producer.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown relay driver %q", cfg.RelayDriver)
	}
}
