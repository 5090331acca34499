package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakePublisher struct {
	exchange string
	key      string
	msg      amqp091.Publishing
	err      error
}

func (f *fakePublisher) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp091.Publishing) error {
	f.exchange = exchange
	f.key = key
	f.msg = msg
	return f.err
}

func TestNewInvitation(t *testing.T) {
	inv := NewInvitation("bob@example.com", "fam-1", "Ann Lee", "ann@example.com", "https://app/register?family=fam-1")

	assert.Equal(t, invitationSubject, inv.Subject)
	assert.Contains(t, inv.Text, "Ann Lee invited you")
	assert.Contains(t, inv.Text, "https://app/register?family=fam-1")
	assert.False(t, inv.CreatedAt.IsZero())

	anon := NewInvitation("bob@example.com", "fam-1", "", "ann@example.com", "u")
	assert.Contains(t, anon.Text, "ann@example.com invited you")
}

func TestAMQPNotifierPublishes(t *testing.T) {
	pub := &fakePublisher{}
	n := &AMQPNotifier{channel: pub, queue: "finpal.invitations", logger: zap.NewNop()}

	inv := NewInvitation("bob@example.com", "fam-1", "Ann", "ann@example.com", "https://app/register?family=fam-1")
	require.NoError(t, n.SendInvitation(context.Background(), inv))

	assert.Equal(t, "", pub.exchange)
	assert.Equal(t, "finpal.invitations", pub.key)
	assert.Equal(t, "application/json", pub.msg.ContentType)
	assert.Equal(t, amqp091.Persistent, pub.msg.DeliveryMode)
	assert.Equal(t, "family.invitation", pub.msg.Type)
	assert.NotEmpty(t, pub.msg.MessageId)

	var got Invitation
	require.NoError(t, json.Unmarshal(pub.msg.Body, &got))
	assert.Equal(t, "bob@example.com", got.Email)
	assert.Equal(t, "https://app/register?family=fam-1", got.RegistrationURL)
}

func TestAMQPNotifierPublishError(t *testing.T) {
	pub := &fakePublisher{err: errors.New("channel closed")}
	n := &AMQPNotifier{channel: pub, queue: "q", logger: zap.NewNop()}

	err := n.SendInvitation(context.Background(), NewInvitation("a@b.c", "f", "", "", "u"))
	assert.ErrorContains(t, err, "publish invitation")
}

func TestLogNotifier(t *testing.T) {
	n := NewLogNotifier(zap.NewNop())
	assert.NoError(t, n.SendInvitation(context.Background(), Invitation{Email: "a@b.c"}))
	assert.NoError(t, n.Close())
}
