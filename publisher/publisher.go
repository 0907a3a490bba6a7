package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/mrsyaban/bike-rental-analysis/communication"
	"github.com/mrsyaban/bike-rental-analysis/domain/business/queryresponse"
	"github.com/mrsyaban/bike-rental-analysis/pipeline"
)

const (
	publisherType       = "snapshot-publisher"
	contentTypeJson     = "application/json"
	defaultTimeout      = 5 * time.Second
	defaultExchange     = "bike-rental"
	defaultExchangeType = "topic"
	defaultRoutingKey   = "dashboard.snapshot"
)

// Snapshot every view of the dashboard for one request
// + Views: query responses keyed by handler type
type Snapshot struct {
	GeneratedAt time.Time                               `json:"generated_at"`
	Request     pipeline.Request                        `json:"request"`
	Views       map[string]*queryresponse.QueryResponse `json:"views"`
}

func NewSnapshot(request pipeline.Request, views map[string]*queryresponse.QueryResponse) Snapshot {
	return Snapshot{
		GeneratedAt: time.Now().UTC(),
		Request:     request,
		Views:       views,
	}
}

// Publisher sends snapshots to the consumers of the dashboard
type Publisher interface {
	Publish(ctx context.Context, snapshot Snapshot) error
	Close() error
}

// RabbitPublisher publishes snapshots as JSON in a RabbitMQ exchange
type RabbitPublisher struct {
	rabbitMQ *communication.RabbitMQ
	config   communication.RabbitMQConfig
}

// NewRabbitPublisher fills the missing fields of config with defaults
func NewRabbitPublisher(rabbitMQ *communication.RabbitMQ, config communication.RabbitMQConfig) *RabbitPublisher {
	return &RabbitPublisher{
		rabbitMQ: rabbitMQ,
		config:   withDefaults(config),
	}
}

func getLogMessage(method string, message string, err error) string {
	if err != nil {
		return fmt.Sprintf("[component: %s][method: %s][status: ERROR] %s: %s", publisherType, method, message, err.Error())
	}
	return fmt.Sprintf("[component: %s][method: %s][status: OK] %s", publisherType, method, message)
}

// Setup declares the exchange and, if configured, the snapshot queue bound to it
func (rp *RabbitPublisher) Setup() error {
	err := rp.rabbitMQ.DeclareExchanges([]communication.ExchangeDeclarationConfig{rp.config.Exchange})
	if err != nil {
		log.Error(getLogMessage("Setup", "error declaring exchange", err))
		return err
	}

	if rp.config.SnapshotQueue.Name == "" {
		log.Info(getLogMessage("Setup", fmt.Sprintf("exchange %s declared", rp.config.Exchange.Name), nil))
		return nil
	}

	err = rp.rabbitMQ.DeclareNonAnonymousQueues([]communication.QueueDeclarationConfig{rp.config.SnapshotQueue})
	if err != nil {
		log.Error(getLogMessage("Setup", "error declaring snapshot queue", err))
		return err
	}

	err = rp.rabbitMQ.BindQueue(rp.config.SnapshotQueue.Name, rp.config.Exchange.Name, rp.config.Publishing.RoutingKey)
	if err != nil {
		log.Error(getLogMessage("Setup", "error binding snapshot queue", err))
		return err
	}

	log.Info(getLogMessage("Setup", fmt.Sprintf("exchange %s and queue %s declared", rp.config.Exchange.Name, rp.config.SnapshotQueue.Name), nil))
	return nil
}

// Publish sends the snapshot. The publish is cancelled after the configured timeout
func (rp *RabbitPublisher) Publish(ctx context.Context, snapshot Snapshot) error {
	snapshotBytes, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("error marshalling snapshot: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(rp.config.TimeoutSeconds)*time.Second)
	defer cancel()

	err = rp.rabbitMQ.PublishMessageInExchange(ctx, rp.config.Exchange.Name, rp.config.Publishing, snapshotBytes)
	if err != nil {
		log.Error(getLogMessage("Publish", "error publishing snapshot", err))
		return err
	}

	log.Info(getLogMessage("Publish", fmt.Sprintf("snapshot with %v views published in %s", len(snapshot.Views), rp.config.Exchange.Name), nil))
	return nil
}

func (rp *RabbitPublisher) Close() error {
	return rp.rabbitMQ.Close()
}

func withDefaults(config communication.RabbitMQConfig) communication.RabbitMQConfig {
	if config.Exchange.Name == "" {
		config.Exchange.Name = defaultExchange
	}
	if config.Exchange.Type == "" {
		config.Exchange.Type = defaultExchangeType
	}
	if config.Publishing.RoutingKey == "" {
		config.Publishing.RoutingKey = defaultRoutingKey
	}
	if config.Publishing.ContentType == "" {
		config.Publishing.ContentType = contentTypeJson
	}
	if config.TimeoutSeconds <= 0 {
		config.TimeoutSeconds = int(defaultTimeout / time.Second)
	}
	return config
}
