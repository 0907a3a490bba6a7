package communication

// RabbitMQConfig contains everything needed to publish and consume dashboard snapshots
// + URL: AMQP URL of the broker, RABBIT_URL overrides it
// + Exchange: exchange the snapshots are published to
// + SnapshotQueue: optional durable queue bound to the exchange. Empty name means subscribers use an anonymous queue
// + TimeoutSeconds: timeout of each publish
type RabbitMQConfig struct {
	URL            string                    `yaml:"url"`
	Exchange       ExchangeDeclarationConfig `yaml:"exchange"`
	SnapshotQueue  QueueDeclarationConfig    `yaml:"snapshot_queue"`
	Publishing     PublishingConfig          `yaml:"publishing"`
	Consumption    ConsumptionConfig         `yaml:"consumption"`
	TimeoutSeconds int                       `yaml:"timeout_seconds"`
}

// QueueDeclarationConfig contains the parameters to declare a RabbitMQ queue
type QueueDeclarationConfig struct {
	Name             string `yaml:"name"`
	Durable          bool   `yaml:"durable"`
	DeleteWhenUnused bool   `yaml:"delete_when_unused"`
	Exclusive        bool   `yaml:"exclusive"`
	NoWait           bool   `yaml:"no_wait"`
}

// ExchangeDeclarationConfig contains the parameters to declare a RabbitMQ exchange
type ExchangeDeclarationConfig struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Durable     bool   `yaml:"durable"`
	AutoDeleted bool   `yaml:"auto_deleted"`
	Internal    bool   `yaml:"internal"`
	NoWait      bool   `yaml:"no_wait"`
}

// PublishingConfig config use it for publishing messages in a RabbitMQ exchange
type PublishingConfig struct {
	RoutingKey  string `yaml:"routing_key"`
	Mandatory   bool   `yaml:"mandatory"`
	Immediate   bool   `yaml:"immediate"`
	ContentType string `yaml:"content_type"`
}

// ConsumptionConfig config use it for consuming a RabbitMQ queue
type ConsumptionConfig struct {
	Consumer  string `yaml:"consumer"`
	AutoACK   bool   `yaml:"auto_ack"`
	Exclusive bool   `yaml:"exclusive"`
	NoLocal   bool   `yaml:"no_local"`
	NoWait    bool   `yaml:"no_wait"`
}
