package publisher

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	log "github.com/sirupsen/logrus"

	"github.com/mrsyaban/bike-rental-analysis/communication"
)

// Subscriber reads the snapshots published by RabbitPublisher
type Subscriber struct {
	rabbitMQ *communication.RabbitMQ
	config   communication.RabbitMQConfig
}

func NewSubscriber(rabbitMQ *communication.RabbitMQ, config communication.RabbitMQConfig) *Subscriber {
	return &Subscriber{
		rabbitMQ: rabbitMQ,
		config:   withDefaults(config),
	}
}

// Subscribe calls handle for every snapshot until ctx is done or the broker closes the consumer.
// It reads from the snapshot queue when one is configured, otherwise from an anonymous queue
// bound to the exchange
func (s *Subscriber) Subscribe(ctx context.Context, handle func(snapshot Snapshot) error) error {
	var err error
	queueName := s.config.SnapshotQueue.Name
	exchangeName := s.config.Exchange.Name

	if queueName == "" {
		err = s.rabbitMQ.Bind([]string{exchangeName}, []string{s.config.Publishing.RoutingKey})
		if err != nil {
			return err
		}
	}

	deliveries, err := s.consumer(queueName, exchangeName)
	if err != nil {
		log.Error(getLogMessage("Subscribe", "error getting consumer", err))
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case delivery, ok := <-deliveries:
			if !ok {
				log.Info(getLogMessage("Subscribe", "consumer closed", nil))
				return nil
			}

			var snapshot Snapshot
			if err := json.Unmarshal(delivery.Body, &snapshot); err != nil {
				log.Error(getLogMessage("Subscribe", "error unmarshalling snapshot", err))
				if !s.config.Consumption.AutoACK {
					// dropped without requeue
					if nackErr := delivery.Nack(false, false); nackErr != nil {
						log.Error(getLogMessage("Subscribe", "error rejecting invalid snapshot", nackErr))
					}
				}
				return fmt.Errorf("error unmarshalling snapshot: %w", err)
			}

			if err := handle(snapshot); err != nil {
				return err
			}

			if !s.config.Consumption.AutoACK {
				if err := delivery.Ack(false); err != nil {
					return fmt.Errorf("error acking snapshot: %w", err)
				}
			}
		}
	}
}

func (s *Subscriber) consumer(queueName string, exchangeName string) (<-chan amqp.Delivery, error) {
	if queueName != "" {
		return s.rabbitMQ.GetQueueConsumer(queueName, s.config.Consumption)
	}
	return s.rabbitMQ.GetConsumerForExchange(exchangeName, s.config.Consumption)
}

func (s *Subscriber) Close() error {
	return s.rabbitMQ.Close()
}
