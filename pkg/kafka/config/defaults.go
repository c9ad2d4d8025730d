package kafka_config

import "time"

const (
	DefaultKafkaBrokers         = "localhost:9092"
	DefaultKafkaClientID        = "spacebook-reservations"
	DefaultKafkaAutoCreateTopic = false

	DefaultProducerMaxAttempts  = 3
	DefaultProducerBatchTimeout = 5 * time.Millisecond
	DefaultProducerWriteTimeout = 5 * time.Second
	DefaultProducerRequireAcks  = -1 // all in-sync replicas
	DefaultProducerCompression  = "snappy"
	DefaultProducerAsync        = false

	DefaultEnableMiddleware = true
)
