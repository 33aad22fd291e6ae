package config

import (
	"time"

	"github.com/IBM/sarama"
)

type Server interface {
	Host() string
	Port() int
	Address() string
	ReadTimeout() time.Duration
	ShutdownTimeout() time.Duration
	DBReadTimeout() time.Duration
	DBWriteTimeout() time.Duration
}

type Logger interface {
	Level() string
	AsJSON() bool
}

type Database interface {
	MigrationDirectory() string
	DSN() string
}

type Mongo interface {
	DSN() string
	DatabaseName() string
	ComponentsCollection() string
}

type Kafka interface {
	Brokers() []string
	StatusChangedTopic() string
	CheckoutTopic() string
	ConsumerGroupID() string
	CheckoutConsumerConfig() *sarama.Config
	StatusChangedProducerConfig() *sarama.Config
}

type Orders interface {
	AllowTerminalOverride() bool
}
