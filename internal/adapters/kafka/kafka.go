package kafka

import (
	"encoding/json"
	"log/slog"

	"social-service/internal/ws"

	"github.com/IBM/sarama"
)

func NewProducer(brokers []string) (sarama.SyncProducer, error) {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	config.Producer.Return.Successes = true
	config.Producer.Compression = sarama.CompressionSnappy
	config.Producer.Partitioner = sarama.NewHashPartitioner
	config.Version = sarama.V2_0_0_0
	config.ClientID = "social-service"

	return sarama.NewSyncProducer(brokers, config)
}

// Journal publishes emitted live events to a Kafka topic for offline
// analytics. Best effort: journal failures never reach the mutation path.
type Journal struct {
	producer sarama.SyncProducer
	topic    string
}

// NewJournal returns nil when no producer is configured; a nil Journal is
// safe to call.
func NewJournal(producer sarama.SyncProducer, topic string) *Journal {
	if producer == nil {
		return nil
	}
	return &Journal{producer: producer, topic: topic}
}

// Record journals one event keyed by the recipient so per-user ordering
// survives partitioning.
func (j *Journal) Record(userID string, event ws.Event) {
	if j == nil {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		slog.Error("failed to marshal journal event", "type", event.Type, "error", err)
		return
	}
	_, _, err = j.producer.SendMessage(&sarama.ProducerMessage{
		Topic: j.topic,
		Key:   sarama.StringEncoder(userID),
		Value: sarama.ByteEncoder(payload),
	})
	if err != nil {
		slog.Error("failed to journal event", "type", event.Type, "userId", userID, "error", err)
	}
}
