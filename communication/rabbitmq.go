package communication

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Channel subset of *amqp.Channel used by RabbitMQ
type Channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	QueueBind(name, key, exchange string, noWait bool, args amqp.Table) error
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type RabbitMQ struct {
	connection                  *amqp.Connection
	channel                     Channel
	exchangeToAnonymousQueueMap map[string]string
}

// NewRabbitMQ constructor for RabbitMQ. This function returns a RabbitMQ
// with connections already established.
func NewRabbitMQ(url string) (*RabbitMQ, error) {
	connection, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	channel, err := connection.Channel()
	if err != nil {
		_ = connection.Close()
		return nil, err
	}

	rabbitMQ := NewRabbitMQWithChannel(channel)
	rabbitMQ.connection = connection
	return rabbitMQ, nil
}

// NewRabbitMQWithChannel wraps an already open channel. Close only closes the channel
func NewRabbitMQWithChannel(channel Channel) *RabbitMQ {
	return &RabbitMQ{
		channel:                     channel,
		exchangeToAnonymousQueueMap: make(map[string]string),
	}
}

// DeclareNonAnonymousQueues declares non-anonymous queues based on the slice of configs
func (r *RabbitMQ) DeclareNonAnonymousQueues(queuesConfig []QueueDeclarationConfig) error {
	for idx := range queuesConfig {
		queueName := queuesConfig[idx].Name
		_, err := r.channel.QueueDeclare(
			queueName,
			queuesConfig[idx].Durable,
			queuesConfig[idx].DeleteWhenUnused,
			queuesConfig[idx].Exclusive,
			queuesConfig[idx].NoWait,
			nil,
		)

		if err != nil {
			return fmt.Errorf("error declaring queue %s: %w", queueName, err)
		}
	}
	return nil
}

// DeclareExchanges declare exchanges based on the slice of configs
func (r *RabbitMQ) DeclareExchanges(exchangesConfig []ExchangeDeclarationConfig) error {
	for idx := range exchangesConfig {
		exchangeName := exchangesConfig[idx].Name
		err := r.channel.ExchangeDeclare(
			exchangeName,
			exchangesConfig[idx].Type,
			exchangesConfig[idx].Durable,
			exchangesConfig[idx].AutoDeleted,
			exchangesConfig[idx].Internal,
			exchangesConfig[idx].NoWait,
			nil,
		)

		if err != nil {
			return fmt.Errorf("error declaring exchange %s: %w", exchangeName, err)
		}
	}
	return nil
}

// PublishMessageInExchange publish a persistent message in a given exchange with the routing key of publishingConfig
func (r *RabbitMQ) PublishMessageInExchange(ctx context.Context, exchange string, publishingConfig PublishingConfig, message []byte) error {
	return r.channel.PublishWithContext(ctx,
		exchange,
		publishingConfig.RoutingKey,
		publishingConfig.Mandatory,
		publishingConfig.Immediate,
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  publishingConfig.ContentType,
			Body:         message,
		},
	)
}

// BindQueue binds a non-anonymous queue to an exchange with a routing key
func (r *RabbitMQ) BindQueue(queueName string, exchange string, routingKey string) error {
	err := r.channel.QueueBind(queueName, routingKey, exchange, false, nil)
	if err != nil {
		return fmt.Errorf("error binding queue %s to exchange %s: %w", queueName, exchange, err)
	}
	return nil
}

// Bind binds input exchanges with routing keys. The anonymous queues declare here are saved.
func (r *RabbitMQ) Bind(inputExchanges []string, routingKeys []string) error {
	for _, exchange := range inputExchanges {
		anonymousQueue, err := r.channel.QueueDeclare(
			"",
			false,
			true,
			true,
			false,
			nil,
		)

		if err != nil {
			return fmt.Errorf("error declaring anonymous queue: %w", err)
		}

		for _, routingKey := range routingKeys {
			err = r.channel.QueueBind(
				anonymousQueue.Name,
				routingKey,
				exchange,
				false,
				nil,
			)
			if err != nil {
				return fmt.Errorf("error binding routing key %s: %w", routingKey, err)
			}
		}
		r.exchangeToAnonymousQueueMap[exchange] = anonymousQueue.Name
	}
	return nil
}

// GetConsumerForExchange returns a consumer for the anonymous queue bound to the given exchange
func (r *RabbitMQ) GetConsumerForExchange(exchangeName string, consumptionConfig ConsumptionConfig) (<-chan amqp.Delivery, error) {
	queueName, ok := r.exchangeToAnonymousQueueMap[exchangeName]
	if !ok {
		return nil, fmt.Errorf("error queue not found for exchange %s", exchangeName)
	}

	consumer, err := r.GetQueueConsumer(queueName, consumptionConfig)
	if err != nil {
		return nil, fmt.Errorf("error getting consumer for exchange %s: %w", exchangeName, err)
	}

	return consumer, nil
}

// GetQueueConsumer returns a consumer for a given queue
func (r *RabbitMQ) GetQueueConsumer(queueName string, consumptionConfig ConsumptionConfig) (<-chan amqp.Delivery, error) {
	consumer, err := r.channel.Consume(
		queueName,
		consumptionConfig.Consumer,
		consumptionConfig.AutoACK,
		consumptionConfig.Exclusive,
		consumptionConfig.NoLocal,
		consumptionConfig.NoWait,
		nil,
	)

	if err != nil {
		return nil, fmt.Errorf("error getting consumer for queue %s: %w", queueName, err)
	}

	return consumer, nil
}

// Close closes RabbitMQ's channel and, when it owns one, the connection
func (r *RabbitMQ) Close() error {
	err := r.channel.Close()
	if err != nil {
		return fmt.Errorf("error closing RabbitMQ channel: %w", err)
	}

	if r.connection == nil {
		return nil
	}

	err = r.connection.Close()
	if err != nil {
		return fmt.Errorf("error closing RabbitMQ connection: %w", err)
	}

	return nil
}
