// Package notify posts record changes to an optional family-chat webhook.
// Delivery is best effort; failures are logged and never surfaced.
package notify

import (
	"fmt"
	"log/slog"

	"github.com/go-resty/resty/v2"
	"golang.org/x/net/context"
)

// Event describes one record change on a calendar.
type Event struct {
	CalendarID  string  `json:"calendarId"`
	Date        string  `json:"date"`
	Name        string  `json:"name"`
	NeedsDinner bool    `json:"needsDinner"`
	DinnerTime  *string `json:"dinnerTime,omitempty"`
	Action      string  `json:"action"`
}

const (
	ActionAdded   = "added"
	ActionRemoved = "removed"
)

type Service interface {
	// Notify posts the event to the configured webhook. A service with no
	// webhook URL is a no-op.
	Notify(ctx context.Context, event Event) error
}

type service struct {
	http       *resty.Client
	webhookURL string
}

var _ Service = (*service)(nil)

func NewService(client *resty.Client, webhookURL string) Service {
	return &service{
		http:       client,
		webhookURL: webhookURL,
	}
}

func (s *service) Notify(ctx context.Context, event Event) error {
	if s.webhookURL == "" {
		return nil
	}
	resp, err := s.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(event).
		Post(s.webhookURL)
	if err != nil {
		slog.With("error", err.Error()).Error("Error posting webhook notification")
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("webhook returned %s", resp.Status())
	}
	return nil
}
