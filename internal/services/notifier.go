package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"campaignhub/internal/events"
	"campaignhub/internal/interfaces"
	"campaignhub/internal/metrics"
	"campaignhub/internal/models"
)

// notifyTimeout bounds one campaign's worth of selection mail.
const notifyTimeout = 2 * time.Minute

// SelectionNotifier emails every selected influencer after a selection commits.
// Deliveries run in the background; Wait blocks until they have finished.
type SelectionNotifier struct {
	applications interfaces.ApplicationRepository
	mailer       EmailSender
	metrics      *metrics.Metrics
	logger       log.Logger
	wg           sync.WaitGroup
}

func NewSelectionNotifier(applications interfaces.ApplicationRepository, mailer EmailSender, m *metrics.Metrics, logger log.Logger) *SelectionNotifier {
	return &SelectionNotifier{applications: applications, mailer: mailer, metrics: m, logger: logger}
}

// Notify returns immediately. Mail is sent on a context detached from ctx's
// cancellation. Every delivery problem is logged and counted.
func (n *SelectionNotifier) Notify(ctx context.Context, campaign *models.Campaign) {
	if n == nil || n.mailer == nil || campaign == nil {
		return
	}
	c := *campaign
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
		defer cancel()
		n.deliver(sendCtx, &c)
	}()
}

// Wait blocks until every pending delivery has finished.
func (n *SelectionNotifier) Wait() {
	if n == nil {
		return
	}
	n.wg.Wait()
}

func (n *SelectionNotifier) deliver(ctx context.Context, campaign *models.Campaign) {
	recipients, err := n.applications.SelectedRecipients(ctx, campaign.ID)
	if err != nil {
		level.Error(n.logger).Log("op", "notify.selected", "campaign_id", campaign.ID, "err", err)
		n.metrics.RecordNotificationFailure()
		return
	}

	subject := fmt.Sprintf("You were selected for %q", campaign.Title)
	for _, rc := range recipients {
		body := fmt.Sprintf(
			"Hi %s,\n\nCongratulations! Your application to %q has been selected.\n\nMission:\n%s\n\nBenefits:\n%s\n",
			rc.Name, campaign.Title, campaign.Mission, campaign.Benefits,
		)
		if err := n.mailer.Send(ctx, rc.Email, subject, body); err != nil {
			level.Warn(n.logger).Log("op", "notify.selected", "campaign_id", campaign.ID,
				"application_id", rc.ApplicationID, "err", err)
			n.metrics.RecordNotificationFailure()
		}
	}
}

func publish(ctx context.Context, pub events.Publisher, logger log.Logger, event events.Event) {
	if pub == nil {
		return
	}
	if err := pub.Publish(ctx, event); err != nil {
		level.Warn(logger).Log("msg", "event publish failed", "type", event.Type, "err", err)
	}
}
