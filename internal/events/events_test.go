package events

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/go-kit/log"
	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChannel struct {
	published []amqp.Publishing
	keys      []string
	err       error
	closed    bool
}

func (f *fakeChannel) Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	if f.err != nil {
		return f.err
	}
	f.keys = append(f.keys, key)
	f.published = append(f.published, msg)
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func TestAMQPPublisherSendsPersistentJSON(t *testing.T) {
	ch := &fakeChannel{}
	p := newAMQPPublisher(ch, "campaign_events")

	err := p.Publish(context.Background(), New(CampaignClosed, map[string]any{"campaignId": 1}))
	require.NoError(t, err)

	require.Len(t, ch.published, 1)
	msg := ch.published[0]
	assert.Equal(t, "campaign_events", ch.keys[0])
	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, uint8(amqp.Persistent), msg.DeliveryMode)
	assert.Equal(t, CampaignClosed, msg.Type)

	var decoded Event
	require.NoError(t, json.Unmarshal(msg.Body, &decoded))
	assert.Equal(t, CampaignClosed, decoded.Type)
	assert.EqualValues(t, 1, decoded.Payload["campaignId"])

	require.NoError(t, p.Close())
	assert.True(t, ch.closed)
}

func TestAMQPPublisherReturnsBrokerError(t *testing.T) {
	p := newAMQPPublisher(&fakeChannel{err: errors.New("channel closed")}, "q")
	assert.Error(t, p.Publish(context.Background(), New(CampaignCreated, nil)))
}

func TestAMQPPublisherHonoursCancelledContext(t *testing.T) {
	ch := &fakeChannel{}
	p := newAMQPPublisher(ch, "q")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, p.Publish(ctx, New(CampaignCreated, nil)), context.Canceled)
	assert.Empty(t, ch.published)
}

func TestLogPublisher(t *testing.T) {
	var buf bytes.Buffer
	p := NewLogPublisher(log.NewLogfmtLogger(&buf))

	require.NoError(t, p.Publish(context.Background(), New(ApplicationSubmitted, map[string]any{"applicationId": 10})))
	assert.Contains(t, buf.String(), "type=application.submitted")
}
