package kafka_config

const (
	EnvKafkaEnabled              = "KAFKA_ENABLED"
	EnvKafkaBrokers              = "KAFKA_BROKERS"
	EnvKafkaLifecycleTopic       = "KAFKA_LIFECYCLE_TOPIC"
	EnvKafkaLifecycleDLQTopic    = "KAFKA_LIFECYCLE_DLQ_TOPIC"
	EnvKafkaProducerMaxAttempts  = "KAFKA_PRODUCER_MAX_ATTEMPTS"
	EnvKafkaProducerBatchTimeout = "KAFKA_PRODUCER_BATCH_TIMEOUT"
	EnvKafkaProducerRequireAcks  = "KAFKA_PRODUCER_REQUIRE_ACKS"
	EnvKafkaProducerCompression  = "KAFKA_PRODUCER_COMPRESSION"
	EnvKafkaProducerAsync        = "KAFKA_PRODUCER_ASYNC"
	EnvKafkaEnableMiddleware     = "KAFKA_ENABLE_MIDDLEWARE"
)
