package util

import (
	"context"
	"fmt"
	"time"

	"sliceline/pkg/metrics"

	"github.com/segmentio/kafka-go"
)

// KafkaProducer обертка над Kafka writer для отправки событий каталога
// Один writer на процесс, топик задается для каждого сообщения
// (события товаров и топпингов уходят в разные топики)
type KafkaProducer struct {
	writer *kafka.Writer
}

// NewKafkaProducer создает новый Kafka producer
// brokers - список брокеров Kafka в формате ["host:port"]
// Producer создается один раз при старте процесса и закрывается при остановке
func NewKafkaProducer(brokers []string) *KafkaProducer {
	writer := &kafka.Writer{
		Addr: kafka.TCP(brokers...),
		// Балансировка по наименьшему количеству байт для равномерного распределения
		Balancer:     &kafka.LeastBytes{},
		BatchSize:    100,
		BatchTimeout: 10 * time.Millisecond,
	}

	return &KafkaProducer{writer: writer}
}

// PublishMessage отправляет сообщение в указанный топик
// key - используется для партиционирования (ID сущности сохраняет порядок событий)
// value - JSON сериализованное событие
func (p *KafkaProducer) PublishMessage(ctx context.Context, topic string, key string, value []byte) error {
	message := kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: value,
		Time:  time.Now(),
	}

	start := time.Now()
	if err := p.writer.WriteMessages(ctx, message); err != nil {
		metrics.KafkaErrors.WithLabelValues("catalog-service", topic, "produce").Inc()
		return fmt.Errorf("failed to write message to kafka: %w", err)
	}

	metrics.KafkaMessagesProduced.WithLabelValues("catalog-service", topic).Inc()
	metrics.KafkaProduceDuration.WithLabelValues("catalog-service", topic).Observe(time.Since(start).Seconds())

	return nil
}

// Close закрывает Kafka writer и освобождает ресурсы
func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}
