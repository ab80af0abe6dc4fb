package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crm/internal/logger"
)

func TestKafkaPublisher_Publish(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var e Event
		if err := json.Unmarshal(val, &e); err != nil {
			return err
		}
		if e.Type != OrderCreated || e.EntityID != 7 {
			return errors.New("unexpected event")
		}
		return nil
	})

	pub := NewKafkaPublisherFromProducer(producer, "crm-events", logger.NewNop())
	err := pub.Publish(context.Background(), Event{
		Type:       OrderCreated,
		EntityID:   7,
		OccurredAt: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	})
	require.NoError(t, err)
	require.NoError(t, pub.Close())
}

func TestKafkaPublisher_SendFails(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndFail(errors.New("broker down"))

	pub := NewKafkaPublisherFromProducer(producer, "crm-events", logger.NewNop())
	err := pub.Publish(context.Background(), Event{Type: CustomerCreated, EntityID: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "customer.created")
	require.NoError(t, pub.Close())
}

func TestNop(t *testing.T) {
	var p Publisher = Nop{}
	assert.NoError(t, p.Publish(context.Background(), Event{}))
	assert.NoError(t, p.Close())
}
