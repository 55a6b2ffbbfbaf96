package services

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/nimeshabuddhika/donation-service/pkg"
	"github.com/nimeshabuddhika/donation-service/pkg/cache"
	"github.com/nimeshabuddhika/donation-service/services/donation-api/internal/observability"
	"github.com/stripe/stripe-go/v74"
	"go.uber.org/zap"
)

const eventPaymentIntentSucceeded = "payment_intent.succeeded"

// EventProcessorConfig holds the collaborators of an EventProcessor.
type EventProcessorConfig struct {
	Context  context.Context // parent of every background handling; cancel on shutdown
	Logger   *zap.Logger
	Deduper  cache.Deduper // optional
	DedupTTL time.Duration
	Notifier Notifier
}

// EventProcessor handles verified processor events in the background so the
// webhook can answer immediately.
type EventProcessor struct {
	cfg EventProcessorConfig
	wg  sync.WaitGroup
}

func NewEventProcessor(cfg EventProcessorConfig) *EventProcessor {
	if cfg.Context == nil {
		cfg.Context = context.Background()
	}
	return &EventProcessor{cfg: cfg}
}

// Dispatch starts handling event and returns at once.
func (p *EventProcessor) Dispatch(event stripe.Event) {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		p.Handle(p.cfg.Context, event)
	}()
}

// Wait blocks until every dispatched event has been handled.
func (p *EventProcessor) Wait() {
	p.wg.Wait()
}

// Handle processes one event: redeliveries are dropped, succeeded payment
// intents are announced through the notifier.
func (p *EventProcessor) Handle(ctx context.Context, event stripe.Event) {
	logger := p.cfg.Logger.With(zap.String(pkg.EventId, event.ID), zap.String(pkg.EventType, string(event.Type)))

	if p.cfg.Deduper != nil && event.ID != "" {
		first, err := p.cfg.Deduper.Claim(ctx, event.ID, p.cfg.DedupTTL)
		switch {
		case err != nil:
			logger.Warn("event dedup unavailable, handling anyway", zap.Error(err))
		case !first:
			observability.DuplicateEvents.Inc()
			logger.Info("dropping redelivered event")
			return
		}
	}
	observability.WebhookEvents.WithLabelValues(string(event.Type)).Inc()

	var fields []zap.Field
	if event.Type == eventPaymentIntentSucceeded {
		intent, ok := decodePaymentIntent(event)
		if !ok {
			logger.Warn("event carries no payment intent")
			return
		}
		donation := Donation{Amount: float64(intent.Amount) / 100.0, Test: !event.Livemode}
		fields = append(fields, zap.String("amount", FormatAmount(donation.Amount)))

		if err := p.cfg.Notifier.Notify(ctx, donation); err != nil {
			logger.Error("failed to send webhook", zap.Error(err))
		}
	}
	if event.Created > 0 {
		fields = append(fields, zap.Time("created", time.Unix(event.Created, 0).UTC()))
	}
	logger.Info("handled webhook event", fields...)
}

func decodePaymentIntent(event stripe.Event) (stripe.PaymentIntent, bool) {
	var intent stripe.PaymentIntent
	if event.Data == nil || len(event.Data.Raw) == 0 {
		return intent, false
	}
	if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
		return intent, false
	}
	return intent, true
}
