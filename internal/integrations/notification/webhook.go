package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// WebhookSink отправляет события POST-запросом во внешний сервис уведомлений
type WebhookSink struct {
	url        string
	httpClient *http.Client
	log        Logger
}

// NewWebhookSink создает новый экземпляр webhook клиента
func NewWebhookSink(url string, timeout time.Duration, log Logger) *WebhookSink {
	return &WebhookSink{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

func (s *WebhookSink) Notify(ctx context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: marshal event %s: %v", ErrPublish, event.ID, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrPublish, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Event-ID", event.ID)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrPublish, err)
	}
	defer resp.Body.Close()

	// Любой 2xx считаем доставкой
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	s.log.Info("WebhookSink: delivered %s id=%s", event.Type, event.ID)
	return nil
}

func (s *WebhookSink) Close() error { return nil }
