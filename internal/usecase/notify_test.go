package usecase

import (
	"context"
	"testing"
	"time"

	"erp-backend/internal/data/repository"
	"erp-backend/internal/dto/request"
	"erp-backend/pkg/events"
	"erp-backend/pkg/mailer"
	"erp-backend/pkg/token"
	"erp-backend/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// blockingPublisher holds every publish until release is closed.
type blockingPublisher struct {
	fakePublisher
	release chan struct{}
}

func (p *blockingPublisher) PublishAccountEvent(e events.AccountEvent) error {
	<-p.release
	return p.fakePublisher.PublishAccountEvent(e)
}

func TestNotifier_WaitDrainsPendingDeliveries(t *testing.T) {
	pub := &blockingPublisher{release: make(chan struct{})}
	mail := &fakeMailer{}
	n := newNotifier(mail, pub, zap.NewNop())

	n.publish(events.SubjectUserRegistered, uuid.New(), "ada@example.com")
	n.mail(mailer.Message{To: "ada@example.com", Subject: "Welcome"})

	done := make(chan struct{})
	go func() {
		n.wait()
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("wait returned before the event was published")
	case <-time.After(50 * time.Millisecond):
	}

	close(pub.release)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("wait did not return after delivery")
	}
	assert.Equal(t, []string{events.SubjectUserRegistered}, pub.subjects())
	assert.Equal(t, "Welcome", mail.last().Subject)
}

func TestService_WaitAfterCreateSuperuser(t *testing.T) {
	pub := &fakePublisher{}
	repos := &repository.Repository{User: newFakeUserRepo()}
	config := &utils.Config{
		JWT: utils.JWTConfig{Secret: "test-secret", AccessTTLMinutes: 5, RefreshTTLHours: 1, AccountTokenTTLHours: 1},
	}

	svc := NewService(repos, config, Deps{Tokens: token.NewManager(config.JWT), Events: pub}, zap.NewNop())
	_, err := svc.Account.CreateSuperuser(context.Background(), &request.CreateUserRequest{
		Email:    "root@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	svc.Wait()
	assert.Equal(t, []string{events.SubjectUserRegistered}, pub.subjects())
}
