package kafka

import (
	"context"
	"errors"
	"sync"

	"github.com/IBM/sarama"
	"github.com/rs/zerolog/log"

	streamio "github.com/usherasnick/Useful-Go-Gadgets/stream-io"
)

const defaultCacheSize = 1024

// NewGroupSource 以消费组的方式消费cfg.Topic, 返回读取这些消息的Source.
// 消息进入缓存后即被标记为已消费.
func NewGroupSource(cfg *Config, cacheSize int) (*Source, error) {
	conf, err := NewConfig(cfg)
	if err != nil {
		return nil, streamio.NewError(streamio.InvalidInput, err)
	}
	// consumer groups are supported from version 0.10.2.0
	if !conf.Version.IsAtLeast(sarama.V0_10_2_0) {
		conf.Version = sarama.V0_10_2_0
	}
	conf.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	group, err := sarama.NewConsumerGroup(cfg.Brokers, cfg.ConsumerGroup, conf)
	if err != nil {
		log.Error().Err(err).Str("group", cfg.ConsumerGroup).Msg("failed to create kafka consumer group")
		return nil, streamio.NewError(streamio.Other, err)
	}
	return newGroupSource(group, cfg.Topic, cacheSize), nil
}

func newGroupSource(group sarama.ConsumerGroup, topic string, cacheSize int) *Source {
	if cacheSize <= 0 {
		cacheSize = defaultCacheSize
	}
	msgs := make(chan *sarama.ConsumerMessage, cacheSize)
	ctx, cancel := context.WithCancel(context.Background())
	handler := &groupHandler{msgs: msgs}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(msgs)

		log.Info().Str("topic", topic).Msg("starting consumer group")
		for {
			if err := group.Consume(ctx, []string{topic}, handler); err != nil {
				// consumer group has been closed, just return
				if errors.Is(err, sarama.ErrClosedConsumerGroup) {
					return
				}
				log.Error().Err(err).Msg("failed to consume kafka")
			}
			if ctx.Err() != nil {
				return
			}
			log.Info().Str("topic", topic).Msg("consumer group rebalances")
		}
	}()

	s := NewSource(msgs)
	s.closer = func() error {
		cancel()
		err := group.Close()
		wg.Wait()
		log.Info().Str("topic", topic).Msg("consumer group has been stopped")
		return err
	}
	return s
}

// groupHandler 将分配到的消息转入缓存通道.
type groupHandler struct {
	msgs chan<- *sarama.ConsumerMessage
}

func (h *groupHandler) Setup(session sarama.ConsumerGroupSession) error {
	log.Debug().Msgf("setup consumer: %v", session.Claims())
	return nil
}

func (h *groupHandler) Cleanup(session sarama.ConsumerGroupSession) error {
	log.Debug().Msgf("cleanup consumer: %v", session.Claims())
	return nil
}

func (h *groupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case msg, ok := <-claim.Messages():
			if !ok {
				return nil
			}
			select {
			case h.msgs <- msg:
				session.MarkMessage(msg, "")
			case <-session.Context().Done():
				return nil
			}
		case <-session.Context().Done():
			return nil
		}
	}
}
