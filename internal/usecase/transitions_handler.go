package usecase

import (
	"context"
	"encoding/json"
	"time"

	"JaxSpot/internal/domain/models"
	domrepo "JaxSpot/internal/domain/repository"
	"JaxSpot/internal/notifier"
	pkgkafka "JaxSpot/pkg/kafka"
)

// TransitionsHandler consumes transition events off the bus, lands them in
// the analytics sink, and fans them out to the notifier.
type TransitionsHandler struct {
	topic    string
	sink     domrepo.AnalyticsSink
	notifier *notifier.Notifier
	metrics  domrepo.Metrics
}

func NewTransitionsHandler(topic string, sink domrepo.AnalyticsSink, n *notifier.Notifier, metrics domrepo.Metrics) *TransitionsHandler {
	return &TransitionsHandler{topic: topic, sink: sink, notifier: n, metrics: metrics}
}

func (h *TransitionsHandler) Topic() string { return h.topic }

func (h *TransitionsHandler) Handle(ctx context.Context, b []byte) error {
	var ev models.TransitionEvent
	if err := json.Unmarshal(b, &ev); err != nil {
		h.metrics.RecordError("consumer_unmarshal")
		return err
	}
	// E2E latency from event time to now (approx)
	h.metrics.RecordLatency("transition_e2e_seconds", time.Since(ev.At).Seconds())

	if h.sink != nil {
		start := time.Now()
		if err := h.sink.StoreTransition(ctx, &ev); err != nil {
			h.metrics.RecordError("consumer_store")
			return err
		}
		h.metrics.RecordLatency("ch_insert_seconds", time.Since(start).Seconds())
	}

	if h.notifier != nil {
		h.notifier.Notify(&ev)
	}
	return nil
}

var _ pkgkafka.MessageHandler = (*TransitionsHandler)(nil)
