package envconfig

import (
	"github.com/IBM/sarama"
	"github.com/caarlos0/env/v11"
)

type kafkaEnv struct {
	Brokers                []string `env:"KAFKA_BROKERS,required"`
	StatusChangedTopicName string   `env:"ORDER_STATUS_CHANGED_TOPIC_NAME,required"`
	CheckoutTopicName      string   `env:"CART_CHECKOUT_TOPIC_NAME,required"`
	ConsumerGroupID        string   `env:"CART_CHECKOUT_CONSUMER_GROUP_ID,required"`
}

type kafka struct {
	raw kafkaEnv
}

func NewKafkaConfig() (*kafka, error) {
	var raw kafkaEnv
	if err := env.Parse(&raw); err != nil {
		return nil, err
	}
	return &kafka{raw: raw}, nil
}

func (cfg *kafka) Brokers() []string          { return cfg.raw.Brokers }
func (cfg *kafka) StatusChangedTopic() string { return cfg.raw.StatusChangedTopicName }
func (cfg *kafka) CheckoutTopic() string      { return cfg.raw.CheckoutTopicName }
func (cfg *kafka) ConsumerGroupID() string    { return cfg.raw.ConsumerGroupID }

func (cfg *kafka) CheckoutConsumerConfig() *sarama.Config {
	config := sarama.NewConfig()
	config.Version = sarama.V4_0_0_0
	config.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	config.Consumer.Offsets.Initial = sarama.OffsetOldest

	return config
}

func (cfg *kafka) StatusChangedProducerConfig() *sarama.Config {
	config := sarama.NewConfig()
	config.Version = sarama.V4_0_0_0
	config.Producer.Return.Successes = true

	return config
}
