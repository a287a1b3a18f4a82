package notification

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PropertyService/pkg/logger"
)

func TestEvent_Stream(t *testing.T) {
	assert.Equal(t, "booking", NewEvent(EventBookingConfirmed, 1, nil).Stream())
	assert.Equal(t, "commission", NewEvent(EventCommissionPaid, 1, nil).Stream())
}

func TestKafkaSink_Notify(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	event := NewEvent(EventBookingConfirmed, 42, map[string]any{"property_id": 7})

	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		if msg.Topic != "property.booking.events" {
			return errors.New("unexpected topic " + msg.Topic)
		}
		key, _ := msg.Key.Encode()
		if string(key) != "42" {
			return errors.New("unexpected key " + string(key))
		}
		value, _ := msg.Value.Encode()
		var got Event
		if err := json.Unmarshal(value, &got); err != nil {
			return err
		}
		if got.ID != event.ID || got.Type != EventBookingConfirmed {
			return errors.New("unexpected payload")
		}
		return nil
	})

	sink := NewKafkaSinkWithProducer(producer, "property.", logger.NewNop())
	require.NoError(t, sink.Notify(context.Background(), event))
	require.NoError(t, sink.Close())
}

func TestKafkaSink_NotifyFailure(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	sink := NewKafkaSinkWithProducer(producer, "", logger.NewNop())
	err := sink.Notify(context.Background(), NewEvent(EventCommissionPaid, 1, nil))

	assert.ErrorIs(t, err, ErrPublish)
	assert.Equal(t, "commission.events", sink.Topic(NewEvent(EventCommissionPaid, 1, nil)))
	require.NoError(t, sink.Close())
}

func TestWebhookSink_Notify(t *testing.T) {
	var received Event
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &received)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	sink := NewWebhookSink(srv.URL, time.Second, logger.NewNop())
	event := NewEvent(EventBookingCancelled, 5, nil)

	require.NoError(t, sink.Notify(context.Background(), event))
	assert.Equal(t, event.ID, received.ID)
	assert.Equal(t, int64(5), received.AggregateID)
}

func TestWebhookSink_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	sink := NewWebhookSink(srv.URL, time.Second, logger.NewNop())
	err := sink.Notify(context.Background(), NewEvent(EventBookingExpired, 1, nil))

	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestLogSink(t *testing.T) {
	sink := NewLogSink(logger.NewNop())
	assert.NoError(t, sink.Notify(context.Background(), NewEvent(EventBookingCreated, 1, nil)))
}
