package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/IBM/sarama"
)

// KafkaSink публикует события в топики <prefix>booking.events и <prefix>commission.events
type KafkaSink struct {
	producer    sarama.SyncProducer
	topicPrefix string
	log         Logger
}

// NewKafkaSink создает синхронного продюсера с подтверждением от всех реплик
func NewKafkaSink(brokers []string, topicPrefix string, log Logger) (*KafkaSink, error) {
	cfg := sarama.NewConfig()
	cfg.Version = sarama.V2_1_0_0
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Idempotent = true
	cfg.Producer.Return.Successes = true
	cfg.Net.MaxOpenRequests = 1

	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}
	return NewKafkaSinkWithProducer(producer, topicPrefix, log), nil
}

func NewKafkaSinkWithProducer(producer sarama.SyncProducer, topicPrefix string, log Logger) *KafkaSink {
	return &KafkaSink{producer: producer, topicPrefix: topicPrefix, log: log}
}

// Topic имя топика для события
func (s *KafkaSink) Topic(event Event) string {
	return s.topicPrefix + event.Stream() + ".events"
}

func (s *KafkaSink) Notify(ctx context.Context, event Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: marshal event %s: %v", ErrPublish, event.ID, err)
	}

	// ключ по агрегату сохраняет порядок событий одной сущности
	msg := &sarama.ProducerMessage{
		Topic: s.Topic(event),
		Key:   sarama.StringEncoder(strconv.FormatInt(event.AggregateID, 10)),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_type"), Value: []byte(event.Type)},
			{Key: []byte("event_id"), Value: []byte(event.ID)},
		},
	}

	partition, offset, err := s.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("%w: send %s to %s: %v", ErrPublish, event.Type, msg.Topic, err)
	}

	s.log.Info("KafkaSink: published %s id=%s to %s[%d]@%d", event.Type, event.ID, msg.Topic, partition, offset)
	return nil
}

func (s *KafkaSink) Close() error {
	if s.producer == nil {
		return nil
	}
	return s.producer.Close()
}
