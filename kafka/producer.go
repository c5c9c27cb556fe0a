package kafka

import (
	"errors"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	streamio "github.com/usherasnick/Useful-Go-Gadgets/stream-io"
)

var errSinkClosed = errors.New("kafka sink has been closed")

// Sink 缓冲写入的字节, 每次Flush将缓冲的字节作为一条消息发送到topic.
type Sink struct {
	producer sarama.SyncProducer
	topic    string
	key      string
	buf      streamio.Buffer
}

// NewSink 连接kafka并返回Sink实例.
func NewSink(cfg *Config) (*Sink, error) {
	conf, err := NewConfig(cfg)
	if err != nil {
		return nil, streamio.NewError(streamio.InvalidInput, err)
	}
	conf.Producer.Return.Successes = true
	conf.Producer.RequiredAcks = sarama.WaitForAll
	producer, err := sarama.NewSyncProducer(cfg.Brokers, conf)
	if err != nil {
		log.Error().Err(err).Strs("brokers", cfg.Brokers).Msg("failed to create kafka producer")
		return nil, streamio.NewError(streamio.Other, err)
	}
	s := NewSinkFromProducer(producer, cfg.Topic)
	s.SetKey(cfg.Key)
	return s, nil
}

// NewSinkFromProducer 使用已有的producer创建Sink.
func NewSinkFromProducer(producer sarama.SyncProducer, topic string) *Sink {
	return &Sink{
		producer: producer,
		topic:    topic,
	}
}

// SetKey 设置消息key, 为空时每条消息使用新的UUID作为key.
func (s *Sink) SetKey(key string) {
	s.key = key
}

// Write 缓冲p, 从不失败.
func (s *Sink) Write(p []byte) (int, error) {
	if s.producer == nil {
		return 0, streamio.NewError(streamio.InvalidInput, errSinkClosed)
	}
	return s.buf.Write(p)
}

// Flush 将缓冲的字节作为一条消息发送, 缓冲为空时不发送.
// 发送失败时缓冲保留, 可以再次Flush.
func (s *Sink) Flush() error {
	if s.producer == nil {
		return streamio.NewError(streamio.InvalidInput, errSinkClosed)
	}
	if s.buf.Len() == 0 {
		return nil
	}

	key := s.key
	if key == "" {
		key = uuid.NewString()
	}
	value := make([]byte, s.buf.Len())
	copy(value, s.buf)
	message := &sarama.ProducerMessage{
		Topic: s.topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(value),
	}

	partition, offset, err := s.producer.SendMessage(message)
	if err != nil {
		log.Warn().Err(err).Str("topic", s.topic).Msg("failed to publish message")
		return streamio.NewError(streamio.Other, err)
	}
	log.Debug().Str("topic", s.topic).Int32("partition", partition).Int64("offset", offset).
		Int("bytes", len(value)).Msg("message published")
	s.buf.Reset()
	return nil
}

// Close 关闭producer, 未Flush的字节被丢弃.
func (s *Sink) Close() error {
	if s.producer == nil {
		return nil
	}
	err := s.producer.Close()
	s.producer = nil
	s.buf.Reset()
	if err != nil {
		log.Error().Err(err).Msg("failed to close kafka producer")
		return streamio.NewError(streamio.Other, err)
	}
	return nil
}
