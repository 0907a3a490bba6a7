package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mrsyaban/bike-rental-analysis/communication"
	"github.com/mrsyaban/bike-rental-analysis/domain/business/queryresponse"
	"github.com/mrsyaban/bike-rental-analysis/domain/entities/interval"
	"github.com/mrsyaban/bike-rental-analysis/domain/entities/rental"
	"github.com/mrsyaban/bike-rental-analysis/pipeline"
	"github.com/mrsyaban/bike-rental-analysis/testutils"
)

func testSnapshot() Snapshot {
	start := time.Date(2011, 1, 1, 0, 0, 0, 0, time.UTC)
	request := pipeline.NewRequest(interval.NewDateInterval(start, start.AddDate(0, 0, 6)), rental.AllUsers)
	views := map[string]*queryresponse.QueryResponse{
		"summary-handler": queryresponse.NewQueryResponse("5", "hour", "summary-handler", "summary", "total users 10", map[string]int{"total": 10}),
	}
	return NewSnapshot(request, views)
}

func TestSetupDeclaresExchange(t *testing.T) {
	channel := new(testutils.MockChannel)
	channel.On("ExchangeDeclare", "bike-rental", "topic", false, false, false, false, amqp.Table(nil)).Return(nil)

	rabbitPublisher := NewRabbitPublisher(communication.NewRabbitMQWithChannel(channel), communication.RabbitMQConfig{})
	require.NoError(t, rabbitPublisher.Setup())
	channel.AssertExpectations(t)
	channel.AssertNotCalled(t, "QueueDeclare", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSetupDeclaresAndBindsSnapshotQueue(t *testing.T) {
	config := communication.RabbitMQConfig{
		Exchange:      communication.ExchangeDeclarationConfig{Name: "dashboard", Type: "direct", Durable: true},
		SnapshotQueue: communication.QueueDeclarationConfig{Name: "snapshots", Durable: true},
	}

	channel := new(testutils.MockChannel)
	channel.On("ExchangeDeclare", "dashboard", "direct", true, false, false, false, amqp.Table(nil)).Return(nil)
	channel.On("QueueDeclare", "snapshots", true, false, false, false, amqp.Table(nil)).Return(amqp.Queue{Name: "snapshots"}, nil)
	channel.On("QueueBind", "snapshots", "dashboard.snapshot", "dashboard", false, amqp.Table(nil)).Return(nil)

	rabbitPublisher := NewRabbitPublisher(communication.NewRabbitMQWithChannel(channel), config)
	require.NoError(t, rabbitPublisher.Setup())
	channel.AssertExpectations(t)
}

func TestSetupExchangeError(t *testing.T) {
	channel := new(testutils.MockChannel)
	channel.On("ExchangeDeclare", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("access refused"))

	rabbitPublisher := NewRabbitPublisher(communication.NewRabbitMQWithChannel(channel), communication.RabbitMQConfig{})
	assert.ErrorContains(t, rabbitPublisher.Setup(), "access refused")
}

func TestPublish(t *testing.T) {
	snapshot := testSnapshot()

	channel := new(testutils.MockChannel)
	channel.On("PublishWithContext", mock.Anything, "bike-rental", "dashboard.snapshot", false, false, mock.MatchedBy(func(publishing amqp.Publishing) bool {
		var decoded Snapshot
		if err := json.Unmarshal(publishing.Body, &decoded); err != nil {
			return false
		}
		return publishing.ContentType == "application/json" &&
			publishing.DeliveryMode == amqp.Persistent &&
			decoded.Request.Interval.Start.Equal(snapshot.Request.Interval.Start) &&
			len(decoded.Views) == 1
	})).Return(nil)

	rabbitPublisher := NewRabbitPublisher(communication.NewRabbitMQWithChannel(channel), communication.RabbitMQConfig{})
	require.NoError(t, rabbitPublisher.Publish(context.Background(), snapshot))
	channel.AssertExpectations(t)
}

func TestPublishSetsDeadline(t *testing.T) {
	channel := new(testutils.MockChannel)
	channel.On("PublishWithContext", mock.MatchedBy(func(ctx context.Context) bool {
		_, ok := ctx.Deadline()
		return ok
	}), mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("channel closed"))

	rabbitPublisher := NewRabbitPublisher(communication.NewRabbitMQWithChannel(channel), communication.RabbitMQConfig{TimeoutSeconds: 1})
	assert.ErrorContains(t, rabbitPublisher.Publish(context.Background(), testSnapshot()), "channel closed")
	channel.AssertExpectations(t)
}

func TestSubscribeAnonymousQueue(t *testing.T) {
	body, err := json.Marshal(testSnapshot())
	require.NoError(t, err)

	deliveries := make(chan amqp.Delivery, 2)
	deliveries <- amqp.Delivery{Body: body}
	deliveries <- amqp.Delivery{Body: body}
	close(deliveries)

	config := communication.RabbitMQConfig{Consumption: communication.ConsumptionConfig{AutoACK: true}}
	channel := new(testutils.MockChannel)
	channel.On("QueueDeclare", "", false, true, true, false, amqp.Table(nil)).Return(amqp.Queue{Name: "amq.gen-1"}, nil)
	channel.On("QueueBind", "amq.gen-1", "dashboard.snapshot", "bike-rental", false, amqp.Table(nil)).Return(nil)
	channel.On("Consume", "amq.gen-1", "", true, false, false, false, amqp.Table(nil)).Return((<-chan amqp.Delivery)(deliveries), nil)

	subscriber := NewSubscriber(communication.NewRabbitMQWithChannel(channel), config)

	received := make([]Snapshot, 0)
	err = subscriber.Subscribe(context.Background(), func(snapshot Snapshot) error {
		received = append(received, snapshot)
		return nil
	})

	require.NoError(t, err)
	require.Len(t, received, 2)
	assert.Equal(t, rental.AllUsers, received[0].Request.UserType)
	assert.Contains(t, received[0].Views, "summary-handler")
	channel.AssertExpectations(t)
}

func TestSubscribeSnapshotQueueHandlerError(t *testing.T) {
	body, err := json.Marshal(testSnapshot())
	require.NoError(t, err)

	deliveries := make(chan amqp.Delivery, 1)
	deliveries <- amqp.Delivery{Body: body}

	config := communication.RabbitMQConfig{
		SnapshotQueue: communication.QueueDeclarationConfig{Name: "snapshots"},
		Consumption:   communication.ConsumptionConfig{Consumer: "cli", AutoACK: true},
	}
	channel := new(testutils.MockChannel)
	channel.On("Consume", "snapshots", "cli", true, false, false, false, amqp.Table(nil)).Return((<-chan amqp.Delivery)(deliveries), nil)

	subscriber := NewSubscriber(communication.NewRabbitMQWithChannel(channel), config)
	err = subscriber.Subscribe(context.Background(), func(snapshot Snapshot) error {
		return errors.New("stop")
	})

	assert.EqualError(t, err, "stop")
}

func TestSubscribeInvalidMessage(t *testing.T) {
	deliveries := make(chan amqp.Delivery, 1)
	deliveries <- amqp.Delivery{Body: []byte("not json")}

	config := communication.RabbitMQConfig{
		SnapshotQueue: communication.QueueDeclarationConfig{Name: "snapshots"},
		Consumption:   communication.ConsumptionConfig{AutoACK: true},
	}
	channel := new(testutils.MockChannel)
	channel.On("Consume", "snapshots", "", true, false, false, false, amqp.Table(nil)).Return((<-chan amqp.Delivery)(deliveries), nil)

	subscriber := NewSubscriber(communication.NewRabbitMQWithChannel(channel), config)
	err := subscriber.Subscribe(context.Background(), func(snapshot Snapshot) error { return nil })
	assert.ErrorContains(t, err, "error unmarshalling snapshot")
}

func TestSubscribeAcksSnapshot(t *testing.T) {
	body, err := json.Marshal(testSnapshot())
	require.NoError(t, err)

	acknowledger := new(testutils.MockAcknowledger)
	acknowledger.On("Ack", uint64(3), false).Return(nil)

	deliveries := make(chan amqp.Delivery, 1)
	deliveries <- amqp.Delivery{Acknowledger: acknowledger, DeliveryTag: 3, Body: body}
	close(deliveries)

	config := communication.RabbitMQConfig{SnapshotQueue: communication.QueueDeclarationConfig{Name: "snapshots"}}
	channel := new(testutils.MockChannel)
	channel.On("Consume", "snapshots", "", false, false, false, false, amqp.Table(nil)).Return((<-chan amqp.Delivery)(deliveries), nil)

	subscriber := NewSubscriber(communication.NewRabbitMQWithChannel(channel), config)
	require.NoError(t, subscriber.Subscribe(context.Background(), func(snapshot Snapshot) error { return nil }))
	acknowledger.AssertExpectations(t)
}

func TestSubscribeInvalidMessageIsDroppedWithoutRequeue(t *testing.T) {
	acknowledger := new(testutils.MockAcknowledger)
	acknowledger.On("Nack", uint64(7), false, false).Return(nil)

	deliveries := make(chan amqp.Delivery, 1)
	deliveries <- amqp.Delivery{Acknowledger: acknowledger, DeliveryTag: 7, Body: []byte("not json")}

	config := communication.RabbitMQConfig{SnapshotQueue: communication.QueueDeclarationConfig{Name: "snapshots"}}
	channel := new(testutils.MockChannel)
	channel.On("Consume", "snapshots", "", false, false, false, false, amqp.Table(nil)).Return((<-chan amqp.Delivery)(deliveries), nil)

	subscriber := NewSubscriber(communication.NewRabbitMQWithChannel(channel), config)
	err := subscriber.Subscribe(context.Background(), func(snapshot Snapshot) error { return nil })

	assert.ErrorContains(t, err, "error unmarshalling snapshot")
	acknowledger.AssertExpectations(t)
	acknowledger.AssertNotCalled(t, "Ack", mock.Anything, mock.Anything)
}

func TestSubscribeStopsOnContextCancel(t *testing.T) {
	deliveries := make(chan amqp.Delivery)
	config := communication.RabbitMQConfig{SnapshotQueue: communication.QueueDeclarationConfig{Name: "snapshots"}}
	channel := new(testutils.MockChannel)
	channel.On("Consume", "snapshots", "", false, false, false, false, amqp.Table(nil)).Return((<-chan amqp.Delivery)(deliveries), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	subscriber := NewSubscriber(communication.NewRabbitMQWithChannel(channel), config)
	assert.NoError(t, subscriber.Subscribe(ctx, func(snapshot Snapshot) error { return nil }))
}

func TestClose(t *testing.T) {
	channel := new(testutils.MockChannel)
	channel.On("Close").Return(nil)

	rabbitPublisher := NewRabbitPublisher(communication.NewRabbitMQWithChannel(channel), communication.RabbitMQConfig{})
	assert.NoError(t, rabbitPublisher.Close())
	channel.AssertNumberOfCalls(t, "Close", 1)
}
