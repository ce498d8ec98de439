package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

const (
	CampaignCreated           = "campaign.created"
	CampaignClosed            = "campaign.closed"
	CampaignSelectionFinished = "campaign.selection_finalized"
	ApplicationSubmitted      = "application.submitted"
)

// Event is a domain fact emitted after a state change has been committed.
type Event struct {
	Type       string         `json:"type"`
	OccurredAt time.Time      `json:"occurredAt"`
	Payload    map[string]any `json:"payload"`
}

func New(eventType string, payload map[string]any) Event {
	return Event{Type: eventType, OccurredAt: time.Now().UTC(), Payload: payload}
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// LogPublisher writes events to the log when no broker is configured.
type LogPublisher struct {
	logger log.Logger
}

func NewLogPublisher(logger log.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(_ context.Context, event Event) error {
	payload, err := json.Marshal(event.Payload)
	if err != nil {
		return err
	}
	return level.Info(p.logger).Log("msg", "domain event", "type", event.Type, "payload", string(payload))
}
