package rabbitmq

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"

	"github.com/GoArmGo/UserRegistry/internal/messaging/payloads"
)

type recordingAcknowledger struct {
	acked   int
	nacked  int
	requeue bool
}

func (a *recordingAcknowledger) Ack(uint64, bool) error {
	a.acked++
	return nil
}

func (a *recordingAcknowledger) Nack(_ uint64, _ bool, requeue bool) error {
	a.nacked++
	a.requeue = requeue
	return nil
}

func (a *recordingAcknowledger) Reject(uint64, bool) error { return nil }

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestHandleDelivery(t *testing.T) {
	id := uuid.New()
	valid := []byte(`{"userId":"` + id.String() + `","email":"jo@x.com","registeredAt":"2025-03-01T12:00:00Z"}`)

	t.Run("ack on success", func(t *testing.T) {
		ack := &recordingAcknowledger{}
		var got payloads.UserRegisteredPayload

		handleDelivery(context.Background(), amqp.Delivery{Acknowledger: ack, Body: valid},
			func(_ context.Context, p payloads.UserRegisteredPayload) error {
				got = p
				return nil
			}, discard)

		assert.Equal(t, 1, ack.acked)
		assert.Zero(t, ack.nacked)
		assert.Equal(t, id, got.UserID)
		assert.Equal(t, "jo@x.com", got.Email)
	})

	t.Run("malformed message is dropped", func(t *testing.T) {
		ack := &recordingAcknowledger{}
		called := false

		handleDelivery(context.Background(), amqp.Delivery{Acknowledger: ack, Body: []byte("{not json")},
			func(context.Context, payloads.UserRegisteredPayload) error {
				called = true
				return nil
			}, discard)

		assert.False(t, called)
		assert.Equal(t, 1, ack.nacked)
		assert.False(t, ack.requeue)
	})

	t.Run("handler error requeues", func(t *testing.T) {
		ack := &recordingAcknowledger{}

		handleDelivery(context.Background(), amqp.Delivery{Acknowledger: ack, Body: valid},
			func(context.Context, payloads.UserRegisteredPayload) error {
				return errors.New("audit sink down")
			}, discard)

		assert.Zero(t, ack.acked)
		assert.Equal(t, 1, ack.nacked)
		assert.True(t, ack.requeue)
	})
}
