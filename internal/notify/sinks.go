package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"astronaut-schedule/internal/domain"
	"astronaut-schedule/internal/logx"

	"golang.org/x/time/rate"
)

// LogSink writes every conflict as a warning.
type LogSink struct {
	Log logx.Logger
}

func (s LogSink) Name() string { return "log" }

func (s LogSink) Deliver(_ context.Context, ev Event) error {
	s.Log.Warn("schedule conflict",
		logx.String("event_id", ev.ID),
		logx.String("attempted", ev.Attempted.String()),
		logx.String("existing", ev.Existing.String()),
	)
	return nil
}

var ErrThrottled = errors.New("webhook delivery throttled")

// WebhookSink POSTs conflicts as JSON. Deliveries above the configured rate are
// dropped with ErrThrottled instead of queueing.
type WebhookSink struct {
	url     string
	client  *http.Client
	limiter *rate.Limiter
}

func NewWebhookSink(url string, perSecond float64, timeout time.Duration) *WebhookSink {
	burst := int(perSecond)
	if burst < 1 {
		burst = 1
	}
	return &WebhookSink{
		url:     url,
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
	}
}

func (s *WebhookSink) Name() string { return "webhook" }

type webhookTask struct {
	Description string `json:"description"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Priority    string `json:"priority"`
}

type webhookPayload struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	At        time.Time   `json:"at"`
	Message   string      `json:"message"`
	Attempted webhookTask `json:"attempted"`
	Existing  webhookTask `json:"existing"`
}

func toWebhookTask(t domain.Task) webhookTask {
	return webhookTask{
		Description: t.Description(),
		Start:       t.Start().String(),
		End:         t.End().String(),
		Priority:    string(t.Priority()),
	}
}

func (s *WebhookSink) Deliver(ctx context.Context, ev Event) error {
	if !s.limiter.Allow() {
		return ErrThrottled
	}

	conflict := &domain.ConflictError{Attempted: ev.Attempted, Existing: ev.Existing}
	body, err := json.Marshal(webhookPayload{
		ID:        ev.ID,
		Type:      "schedule.conflict",
		At:        ev.At,
		Message:   conflict.Error(),
		Attempted: toWebhookTask(ev.Attempted),
		Existing:  toWebhookTask(ev.Existing),
	})
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook responded %d", resp.StatusCode)
	}
	return nil
}
