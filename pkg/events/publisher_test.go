package events_test

import (
	"encoding/json"
	"testing"

	"erp-backend/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAccountEventPayload(t *testing.T) {
	id := uuid.New()
	ev := events.NewAccountEvent(events.SubjectUserActivated, id, "a@example.com")

	b, err := json.Marshal(ev)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &decoded))
	require.Equal(t, "user.activated", decoded["event_type"])
	require.Equal(t, id.String(), decoded["user_id"])
	require.Equal(t, "a@example.com", decoded["email"])
	require.NotEmpty(t, decoded["occurred_at"])
}

func TestNewWithoutURLReturnsNop(t *testing.T) {
	p, err := events.New("", zap.NewNop())
	require.NoError(t, err)
	require.IsType(t, events.NopPublisher{}, p)
	require.NoError(t, p.PublishAccountEvent(events.NewAccountEvent(events.SubjectUserRegistered, uuid.New(), "x@y.z")))
	p.Close()
}
