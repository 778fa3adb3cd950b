package config

// Kafka is shared by the relay, which only produces, and the event consumer.
// Group is read by the consumer alone.
type Kafka struct {
	Addresses []string `env:"KAFKA_ADDRESSES,required" envSeparator:","`
	ClientID  string   `env:"KAFKA_CLIENT_ID" envDefault:"bizsuite"`
	Group     string   `env:"KAFKA_GROUP" envDefault:"bizsuite-events"`
}
