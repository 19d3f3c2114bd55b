package service

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"pumphouse-kiosk-be/internal/pkg/logger"
	"pumphouse-kiosk-be/internal/pkg/mailer"
	"pumphouse-kiosk-be/pkg/events"
	pkgNats "pumphouse-kiosk-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// StatusBroadcaster pushes transient UI state at the connected renderer
// screens. The websocket hub implements it.
type StatusBroadcaster interface {
	BroadcastStatus(kind string, payload map[string]interface{})
}

// IConsumerService drains the in-process bus: every kiosk event is fanned
// out to the renderer screens and relayed to the museum's NATS telemetry
// stream, and save failures are counted toward an ops alert.
type IConsumerService interface {
	Consume(ctx context.Context) error
	// SetConfigListener registers the callback run when a display config
	// is activated. The scene service hangs its reload here.
	SetConfigListener(fn func(context.Context) error)
}

type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	natsPub   *pkgNats.Publisher
	screens   StatusBroadcaster
	alerts    mailer.IAlertMailer
	logger    logger.ILogger

	// Save-failure alert throttling
	alertThreshold int
	alertWindow    time.Duration

	mu               sync.Mutex
	failures         []time.Time
	lastAlert        time.Time
	onConfigActivate func(context.Context) error
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	natsPub *pkgNats.Publisher,
	screens StatusBroadcaster,
	alerts mailer.IAlertMailer,
	sysLogger logger.ILogger,
	alertThreshold int,
	alertWindow time.Duration,
) IConsumerService {
	return &consumerService{
		pubSub:         pubSub,
		topicName:      topicName,
		natsPub:        natsPub,
		screens:        screens,
		alerts:         alerts,
		logger:         sysLogger,
		alertThreshold: alertThreshold,
		alertWindow:    alertWindow,
	}
}

func (cs *consumerService) SetConfigListener(fn func(context.Context) error) {
	cs.mu.Lock()
	cs.onConfigActivate = fn
	cs.mu.Unlock()
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload struct {
		Type       string                 `json:"type"`
		Data       map[string]interface{} `json:"data"`
		OccurredAt time.Time              `json:"occurred_at"`
	}
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal bus message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	event := events.BaseEvent{
		Type:       payload.Type,
		Data:       payload.Data,
		OccurredAt: payload.OccurredAt,
	}

	// Screens render selection highlights, idle fades and save toasts off
	// this feed. Pose frames travel separately through the hub.
	if cs.screens != nil {
		cs.screens.BroadcastStatus(payload.Type, payload.Data)
	}

	if payload.Type == events.TypeSaveFailed {
		cs.trackSaveFailure(event)
	}

	if payload.Type == events.TypeConfigActivated {
		cs.mu.Lock()
		listener := cs.onConfigActivate
		cs.mu.Unlock()
		if listener != nil {
			if err := listener(ctx); err != nil {
				cs.logger.Error("Consumer", "Config reload failed", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}
	}

	// Relay to the museum CMS. Telemetry is best-effort; a NATS outage
	// never stalls the kiosk.
	if cs.natsPub != nil {
		relayCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		if err := cs.natsPub.Publish(relayCtx, event); err != nil {
			cs.logger.Warn("Consumer", "Telemetry relay failed", map[string]interface{}{
				"event_type": payload.Type,
				"error":      err.Error(),
			})
		}
		cancel()
	}

	msg.Ack()
}

// trackSaveFailure counts failures in a sliding window and sends at most
// one ops email per window when the threshold is crossed.
func (cs *consumerService) trackSaveFailure(event events.Event) {
	cs.mu.Lock()
	now := time.Now()
	cutoff := now.Add(-cs.alertWindow)
	kept := cs.failures[:0]
	for _, t := range cs.failures {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	cs.failures = append(kept, now)

	shouldAlert := len(cs.failures) >= cs.alertThreshold &&
		now.Sub(cs.lastAlert) > cs.alertWindow
	if shouldAlert {
		cs.lastAlert = now
	}
	cs.mu.Unlock()

	if !shouldAlert || cs.alerts == nil {
		return
	}

	data := event.Payload()
	kind, _ := data["kind"].(string)
	recordId, _ := data["record_id"].(string)
	reason, _ := data["reason"].(string)
	if err := cs.alerts.SendSaveFailureAlert(kind, recordId, reason); err != nil {
		cs.logger.Error("Consumer", "Ops alert mail failed", map[string]interface{}{"error": err.Error()})
	}
}
