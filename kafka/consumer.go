package kafka

import (
	"errors"
	"sync"

	"github.com/IBM/sarama"
	"github.com/rs/zerolog/log"

	streamio "github.com/usherasnick/Useful-Go-Gadgets/stream-io"
)

// Source 将消息流作为字节流读取, 依次拼接每条消息的value. 消息通道关闭即数据耗尽.
type Source struct {
	msgs  <-chan *sarama.ConsumerMessage
	last  *sarama.ConsumerMessage
	value []byte
	off   int

	closer    func() error
	closeOnce sync.Once
	closeErr  error
}

// NewSource 返回读取msgs的Source实例.
func NewSource(msgs <-chan *sarama.ConsumerMessage) *Source {
	return &Source{msgs: msgs}
}

// NewPartitionSource 连接kafka并从指定partition的offset开始消费.
// offset小于0时按FromOldest从最早或最新的消息开始.
func NewPartitionSource(cfg *Config, partition int32, offset int64) (*Source, error) {
	conf, err := NewConfig(cfg)
	if err != nil {
		return nil, streamio.NewError(streamio.InvalidInput, err)
	}
	consumer, err := sarama.NewConsumer(cfg.Brokers, conf)
	if err != nil {
		log.Error().Err(err).Strs("brokers", cfg.Brokers).Msg("failed to create kafka consumer")
		return nil, streamio.NewError(streamio.Other, err)
	}
	s, err := newPartitionSource(consumer, cfg, partition, offset)
	if err != nil {
		consumer.Close() // nolint
		return nil, err
	}
	return s, nil
}

func newPartitionSource(consumer sarama.Consumer, cfg *Config, partition int32, offset int64) (*Source, error) {
	initial := sarama.OffsetNewest
	if cfg.FromOldest {
		initial = sarama.OffsetOldest
	}
	if offset < 0 {
		offset = initial
	}

	pc, err := consumer.ConsumePartition(cfg.Topic, partition, offset)
	if errors.Is(err, sarama.ErrOffsetOutOfRange) {
		log.Warn().Int32("partition", partition).Int64("offset", offset).Msg("offset out of range, fall back to initial offset")
		offset = initial
		pc, err = consumer.ConsumePartition(cfg.Topic, partition, offset)
	}
	if err != nil {
		return nil, streamio.NewError(streamio.Other, err)
	}

	log.Info().Msgf("create kafka consumer, partition: %v, offset: %v", partition, offset)

	s := NewSource(pc.Messages())
	s.closer = func() error {
		if err := pc.Close(); err != nil {
			log.Warn().Err(err).Msgf("failed to close consumer, partition: %v", partition)
		}
		return consumer.Close()
	}
	return s, nil
}

// Read 拷贝当前消息中尚未读取的字节, 当前消息读完后等待下一条消息.
func (s *Source) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	view, err := s.FillBuf()
	if err != nil {
		return 0, err
	}
	n := copy(p, view)
	s.Consume(n)
	return n, nil
}

// FillBuf 返回当前消息中尚未消费的字节, 消费完时阻塞等待下一条消息.
func (s *Source) FillBuf() ([]byte, error) {
	for s.off >= len(s.value) {
		msg, ok := <-s.msgs
		if !ok {
			return nil, nil
		}
		s.last, s.value, s.off = msg, msg.Value, 0
	}
	return s.value[s.off:], nil
}

// Consume 标记n字节已消费.
func (s *Source) Consume(n int) {
	s.off += n
	if s.off > len(s.value) {
		s.off = len(s.value)
	}
}

// Message 返回最近取出的一条消息.
func (s *Source) Message() *sarama.ConsumerMessage {
	return s.last
}

// Close 停止消费, 可以重复调用, 也可以在另一个goroutine中打断阻塞的读取.
// 对NewSource创建的Source什么也不做.
func (s *Source) Close() error {
	s.closeOnce.Do(func() {
		if s.closer == nil {
			return
		}
		if err := s.closer(); err != nil {
			s.closeErr = streamio.NewError(streamio.Other, err)
		}
	})
	return s.closeErr
}
