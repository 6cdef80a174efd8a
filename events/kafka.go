package events

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/IBM/sarama"
)

const kafkaQueueSize = 256

// KafkaPublisher writes each event as JSON to the Kafka topic of the same name.
// Sends happen on a background goroutine; Publish only enqueues and drops
// the event when the queue is full.
type KafkaPublisher struct {
	producer sarama.SyncProducer
	queue    chan *sarama.ProducerMessage
	done     chan struct{}

	mu     sync.Mutex
	closed bool
}

// NewKafkaPublisher connects a sync producer, retrying while the brokers come up.
func NewKafkaPublisher(brokers []string, attempts int) (*KafkaPublisher, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 3
	config.ClientID = "shopfront-api"

	if attempts < 1 {
		attempts = 1
	}
	var err error
	for i := 1; i <= attempts; i++ {
		var producer sarama.SyncProducer
		producer, err = sarama.NewSyncProducer(brokers, config)
		if err == nil {
			log.Printf("📡 Kafka producer connected to %v", brokers)
			return NewKafkaPublisherWithProducer(producer), nil
		}
		log.Printf("⏳ Waiting for Kafka... (%d/%d) error: %v", i, attempts, err)
		if i < attempts {
			time.Sleep(2 * time.Second)
		}
	}
	return nil, err
}

func NewKafkaPublisherWithProducer(producer sarama.SyncProducer) *KafkaPublisher {
	p := &KafkaPublisher{
		producer: producer,
		queue:    make(chan *sarama.ProducerMessage, kafkaQueueSize),
		done:     make(chan struct{}),
	}
	go p.run()
	return p
}

func (p *KafkaPublisher) Publish(_ context.Context, topic string, data any) {
	payload, err := json.Marshal(Event{Topic: topic, Data: data, At: time.Now().UTC()})
	if err != nil {
		log.Printf("❌ Failed to marshal %s event: %v", topic, err)
		return
	}
	msg := &sarama.ProducerMessage{
		Topic: topic,
		Value: sarama.ByteEncoder(payload),
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	select {
	case p.queue <- msg:
	default:
		log.Printf("⚠️ Kafka queue full, dropping %s event", topic)
	}
}

func (p *KafkaPublisher) run() {
	defer close(p.done)
	for msg := range p.queue {
		if _, _, err := p.producer.SendMessage(msg); err != nil {
			log.Printf("❌ Failed to publish %s event: %v", msg.Topic, err)
		}
	}
}

// Close sends whatever is still queued, then closes the producer.
func (p *KafkaPublisher) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.queue)
	p.mu.Unlock()

	<-p.done
	return p.producer.Close()
}
