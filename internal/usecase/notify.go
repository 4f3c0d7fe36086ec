package usecase

import (
	"context"
	"sync"
	"time"

	"erp-backend/pkg/events"
	"erp-backend/pkg/mailer"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const notifyTimeout = 30 * time.Second

// notifier sends account mails and events after the database write has
// succeeded. Failures are logged and never reach the caller.
type notifier struct {
	mailer mailer.Mailer
	events events.Publisher
	log    *zap.Logger

	// run executes deliveries; tests replace it to deliver synchronously.
	run     func(func())
	pending sync.WaitGroup
}

func newNotifier(m mailer.Mailer, p events.Publisher, log *zap.Logger) *notifier {
	if p == nil {
		p = events.NopPublisher{}
	}
	return &notifier{
		mailer: m,
		events: p,
		log:    log.With(zap.String("component", "notifier")),
		run:    func(f func()) { go f() },
	}
}

// dispatch hands f to run and tracks it until it returns.
func (n *notifier) dispatch(f func()) {
	n.pending.Add(1)
	n.run(func() {
		defer n.pending.Done()
		f()
	})
}

// wait blocks until every dispatched delivery has finished.
func (n *notifier) wait() {
	n.pending.Wait()
}

func (n *notifier) mail(msg mailer.Message) {
	if n.mailer == nil {
		return
	}
	n.dispatch(func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		if err := n.mailer.Send(ctx, msg); err != nil {
			n.log.Error("Failed to send email",
				zap.Error(err),
				zap.String("to", msg.To),
				zap.String("subject", msg.Subject),
			)
		}
	})
}

func (n *notifier) publish(subject string, userID uuid.UUID, email string) {
	event := events.NewAccountEvent(subject, userID, email)
	n.dispatch(func() {
		if err := n.events.PublishAccountEvent(event); err != nil {
			n.log.Warn("Failed to publish account event",
				zap.Error(err),
				zap.String("subject", subject),
				zap.String("user_id", userID.String()),
			)
		}
	})
}
