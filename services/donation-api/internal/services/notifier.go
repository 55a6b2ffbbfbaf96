package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/nimeshabuddhika/donation-service/pkg/utils"
	"github.com/nimeshabuddhika/donation-service/services/donation-api/internal/observability"
	"go.uber.org/zap"
)

const (
	donationTitle = "💸 new donation 💸"
	donationColor = 0xff83fa
)

// Donation is a succeeded payment worth announcing.
type Donation struct {
	Amount float64 // in dollars
	Test   bool
}

// Notifier announces donations.
type Notifier interface {
	Notify(ctx context.Context, d Donation) error
}

type chatMessage struct {
	Content string      `json:"content,omitempty"`
	Embeds  []chatEmbed `json:"embeds"`
}

type chatEmbed struct {
	Title  string           `json:"title"`
	Color  int              `json:"color"`
	Fields []chatEmbedField `json:"fields"`
}

type chatEmbedField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// FormatAmount renders dollars as $X.YY.
func FormatAmount(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}

func donationMessage(mentions string, d Donation) chatMessage {
	embed := chatEmbed{
		Title:  donationTitle,
		Color:  donationColor,
		Fields: []chatEmbedField{{Name: "amount", Value: FormatAmount(d.Amount)}},
	}
	if d.Test {
		embed.Fields = append(embed.Fields, chatEmbedField{Name: "**THIS IS A TEST**", Value: "**DO NOT FREAK OUT**"})
	}
	return chatMessage{Content: mentions, Embeds: []chatEmbed{embed}}
}

// StatusError is a non-2xx answer from the chat webhook.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("chat webhook answered %d: %s", e.Status, e.Body)
}

// retryable reports whether another delivery attempt may succeed.
func retryable(err error) bool {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Status == http.StatusTooManyRequests || se.Status >= http.StatusInternalServerError
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

// WebhookNotifierConfig holds the delivery settings of a WebhookNotifier.
type WebhookNotifierConfig struct {
	Logger      *zap.Logger
	Client      *http.Client
	URL         string
	Mentions    string
	MaxRetries  int
	BaseBackoff time.Duration
	MaxBackoff  time.Duration
}

// WebhookNotifier posts donation messages to a chat webhook, retrying
// throttled and failed deliveries with jittered exponential backoff.
type WebhookNotifier struct {
	cfg WebhookNotifierConfig
}

func NewWebhookNotifier(cfg WebhookNotifierConfig) *WebhookNotifier {
	if cfg.Client == nil {
		cfg.Client = utils.NewHTTPClient()
	}
	return &WebhookNotifier{cfg: cfg}
}

func (n *WebhookNotifier) Notify(ctx context.Context, d Donation) error {
	start := time.Now()
	defer func() { observability.NotificationLatency.Observe(time.Since(start).Seconds()) }()

	body, err := json.Marshal(donationMessage(n.cfg.Mentions, d))
	if err != nil {
		return err
	}

	for attempt := 0; ; attempt++ {
		err = n.send(ctx, body)
		if err == nil {
			observability.Notifications.WithLabelValues("delivered").Inc()
			return nil
		}
		if attempt >= n.cfg.MaxRetries || !retryable(err) {
			observability.Notifications.WithLabelValues("failed").Inc()
			return err
		}

		delay := utils.CalculateExponentialBackoffWithJitter(attempt+1, n.cfg.BaseBackoff, n.cfg.MaxBackoff)
		n.cfg.Logger.Warn("chat webhook delivery failed, retrying",
			zap.Int("attempt", attempt+1),
			zap.Duration("backoff", delay),
			zap.Error(err),
		)
		observability.Notifications.WithLabelValues("retried").Inc()

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			observability.Notifications.WithLabelValues("failed").Inc()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

func (n *WebhookNotifier) send(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.cfg.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return &StatusError{Status: resp.StatusCode, Body: string(msg)}
}
