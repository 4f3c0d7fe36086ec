package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

const (
	SubjectUserRegistered         = "user.registered"
	SubjectUserActivated          = "user.activated"
	SubjectPasswordResetRequested = "user.password_reset_requested"
	SubjectPasswordChanged        = "user.password_changed"
	SubjectUserDeleted            = "user.deleted"
)

// AccountEvent is the payload published for account lifecycle changes.
type AccountEvent struct {
	EventType  string    `json:"event_type"`
	UserID     uuid.UUID `json:"user_id"`
	Email      string    `json:"email"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewAccountEvent(subject string, userID uuid.UUID, email string) AccountEvent {
	return AccountEvent{
		EventType:  subject,
		UserID:     userID,
		Email:      email,
		OccurredAt: time.Now().UTC(),
	}
}

type Publisher interface {
	PublishAccountEvent(event AccountEvent) error
	Close()
}

// New connects to NATS, or returns a publisher that drops events when url is empty.
func New(url string, log *zap.Logger) (Publisher, error) {
	if url == "" {
		log.Info("NATS_URL not set, account events are disabled")
		return NopPublisher{}, nil
	}
	return NewNatsPublisher(url, log)
}

type NatsPublisher struct {
	conn *nats.Conn
	log  *zap.Logger
}

func NewNatsPublisher(url string, log *zap.Logger) (*NatsPublisher, error) {
	nc, err := nats.Connect(url,
		nats.Name("erp-backend"),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to nats %s: %w", url, err)
	}

	return &NatsPublisher{
		conn: nc,
		log:  log.With(zap.String("component", "events")),
	}, nil
}

func (p *NatsPublisher) PublishAccountEvent(event AccountEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", event.EventType, err)
	}

	if err := p.conn.Publish(event.EventType, payload); err != nil {
		p.log.Error("Failed to publish event",
			zap.Error(err),
			zap.String("subject", event.EventType),
			zap.String("user_id", event.UserID.String()),
		)
		return fmt.Errorf("publish %s: %w", event.EventType, err)
	}

	p.log.Debug("Event published",
		zap.String("subject", event.EventType),
		zap.String("user_id", event.UserID.String()),
	)
	return nil
}

func (p *NatsPublisher) Close() {
	if err := p.conn.Drain(); err != nil {
		p.log.Warn("Failed to drain nats connection", zap.Error(err))
	}
}

type NopPublisher struct{}

func (NopPublisher) PublishAccountEvent(AccountEvent) error { return nil }

func (NopPublisher) Close() {}
