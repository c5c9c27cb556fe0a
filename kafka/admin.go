package kafka

import (
	"errors"

	"github.com/IBM/sarama"
	"github.com/rs/zerolog/log"

	streamio "github.com/usherasnick/Useful-Go-Gadgets/stream-io"
)

// topicAdmin 是Admin用到的sarama.ClusterAdmin子集.
type topicAdmin interface {
	CreateTopic(topic string, detail *sarama.TopicDetail, validateOnly bool) error
	ListTopics() (map[string]sarama.TopicDetail, error)
	DeleteTopic(topic string) error
	Close() error
}

// Admin 管理topic.
type Admin struct {
	admin topicAdmin
}

// NewAdmin 连接kafka并返回Admin实例.
func NewAdmin(cfg *Config) (*Admin, error) {
	conf, err := NewConfig(cfg)
	if err != nil {
		return nil, streamio.NewError(streamio.InvalidInput, err)
	}
	// complete admin functions are supported from version 0.10.2.0
	if !conf.Version.IsAtLeast(sarama.V0_10_2_0) {
		conf.Version = sarama.V0_10_2_0
	}
	admin, err := sarama.NewClusterAdmin(cfg.Brokers, conf)
	if err != nil {
		log.Error().Err(err).Msg("failed to create kafka cluster admin")
		return nil, streamio.NewError(streamio.Other, err)
	}
	return &Admin{admin: admin}, nil
}

// CreateTopic 创建单分区单副本的topic, topic已存在时不报错.
func (a *Admin) CreateTopic(topic string) error {
	return a.CreateTopicWithPartition(topic, 1, 1)
}

// CreateTopicWithPartition 创建topic, topic已存在时不报错.
func (a *Admin) CreateTopicWithPartition(topic string, p int32, rf int16) error {
	if err := a.admin.CreateTopic(topic, &sarama.TopicDetail{
		NumPartitions:     p,
		ReplicationFactor: rf,
	}, false); err != nil {
		if errors.Is(err, sarama.ErrTopicAlreadyExists) {
			return nil
		}
		return streamio.NewError(streamio.Other, err)
	}
	return nil
}

// ListTopics 返回所有topic.
func (a *Admin) ListTopics() ([]string, error) {
	ret, err := a.admin.ListTopics()
	if err != nil {
		return nil, streamio.NewError(streamio.Other, err)
	}
	topics := make([]string, 0, len(ret))
	for k := range ret {
		topics = append(topics, k)
	}
	return topics, nil
}

// DeleteTopic 删除topic.
func (a *Admin) DeleteTopic(topic string) error {
	if err := a.admin.DeleteTopic(topic); err != nil {
		return streamio.NewError(streamio.Other, err)
	}
	return nil
}

// Close 关闭连接.
func (a *Admin) Close() {
	if a.admin != nil {
		if err := a.admin.Close(); err != nil {
			log.Error().Err(err).Msgf("failed to close kafka cluster admin")
		}
		a.admin = nil
	}
}
