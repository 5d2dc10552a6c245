package kafka

import (
	"context"

	"github.com/segmentio/kafka-go"

	"JaxSpot/pkg/logger"
)

// ConsumerHook observes message handling. BeforeHandle may rewrite the
// context, message or payload; returning an error skips the handler and
// routes the message through error processing and the DLQ.
type ConsumerHook interface {
	BeforeHandle(ctx context.Context, topic string, km kafka.Message, data []byte) (context.Context, kafka.Message, []byte, error)
	AfterHandle(ctx context.Context, topic string, km kafka.Message, data []byte, err error)
	OnError(ctx context.Context, topic string, km kafka.Message, data []byte, err error)
}

// NoopHook passes everything through untouched.
type NoopHook struct{}

func (NoopHook) BeforeHandle(ctx context.Context, _ string, km kafka.Message, data []byte) (context.Context, kafka.Message, []byte, error) {
	return ctx, km, data, nil
}

func (NoopHook) AfterHandle(context.Context, string, kafka.Message, []byte, error) {}

func (NoopHook) OnError(context.Context, string, kafka.Message, []byte, error) {}

// LoggingHook records per-attempt handler failures. Successes stay quiet;
// the consumer's own metrics cover throughput.
type LoggingHook struct {
	log *logger.Logger
}

func NewLoggingHook(lgr *logger.Logger) *LoggingHook {
	return &LoggingHook{log: lgr}
}

func (h *LoggingHook) BeforeHandle(ctx context.Context, _ string, km kafka.Message, data []byte) (context.Context, kafka.Message, []byte, error) {
	return ctx, km, data, nil
}

func (h *LoggingHook) AfterHandle(context.Context, string, kafka.Message, []byte, error) {}

func (h *LoggingHook) OnError(_ context.Context, topic string, km kafka.Message, _ []byte, err error) {
	h.log.Warn("message handling failed",
		logger.String("topic", topic),
		logger.Int("partition", km.Partition),
		logger.Int64("offset", km.Offset),
		logger.Error(err))
}
