package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/unifix/complaint-service/internal/config"
	"github.com/unifix/complaint-service/internal/events"
	"github.com/unifix/complaint-service/internal/persistence"
)

// NotificationService reacts to domain events with notification stubs. The
// dedup checker keeps a replayed event from notifying twice.
type NotificationService struct {
	dispatcher events.Dispatcher
	dedup      *persistence.DedupChecker
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, dedup *persistence.DedupChecker, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		dedup:      dedup,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventComplaintSubmitted, n.handleComplaintSubmitted)
	n.dispatcher.Subscribe(events.EventComplaintAssigned, n.handleComplaintAssigned)
	n.dispatcher.Subscribe(events.EventComplaintResolved, n.handleComplaintResolved)
	n.dispatcher.Subscribe(events.EventUserRemoved, n.handleUserRemoved)
}

func (n *NotificationService) handleComplaintSubmitted(ctx context.Context, event events.Event) error {
	if n.alreadyNotified(ctx, event) {
		return nil
	}
	n.logger.Info("ComplaintSubmitted", zap.Int64("complaint_id", event.ComplaintID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleComplaintAssigned(ctx context.Context, event events.Event) error {
	if n.alreadyNotified(ctx, event) {
		return nil
	}
	n.logger.Info("ComplaintAssigned", zap.Int64("complaint_id", event.ComplaintID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleComplaintResolved(ctx context.Context, event events.Event) error {
	if n.alreadyNotified(ctx, event) {
		return nil
	}
	n.logger.Info("ComplaintResolved", zap.Int64("complaint_id", event.ComplaintID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleUserRemoved(ctx context.Context, event events.Event) error {
	if n.alreadyNotified(ctx, event) {
		return nil
	}
	n.logger.Info("UserRemoved", zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) alreadyNotified(ctx context.Context, event events.Event) bool {
	if n.dedup == nil || event.ID == "" {
		return false
	}
	if n.dedup.Seen(ctx, event.ID) {
		return true
	}
	_ = n.dedup.Mark(ctx, event.ID)
	return false
}

func (n *NotificationService) sendEmailNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.Int64("complaint_id", event.ComplaintID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.Int64("complaint_id", event.ComplaintID),
		zap.String("event_type", string(event.Type)))
}
