package kafka_client

const (
	KAFKA_TOPIC_PREDICTIONS = "market-predictions" // resolved market trend predictions
)

const (
	PRODUCE_RETRIES     = 3
	FLUSH_TIMEOUT_MS    = 5000
	DELIVERY_TIMEOUT_MS = 10000
)
