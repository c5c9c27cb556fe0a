package kafka

import (
	"os"

	"github.com/IBM/sarama"
	"github.com/rs/zerolog/log"
)

// Config 描述如何连接kafka以及读写哪个topic.
type Config struct {
	Brokers       []string `json:"brokers" mapstructure:"brokers"`
	Topic         string   `json:"topic" mapstructure:"topic"`
	ConsumerGroup string   `json:"consumer_group" mapstructure:"consumer_group"`
	FromOldest    bool     `json:"from_oldest" mapstructure:"from_oldest"`
	ClientID      string   `json:"client_id" mapstructure:"client_id"`
	Key           string   `json:"key" mapstructure:"key"`
	Version       string   `json:"version" mapstructure:"version"`
}

// NewConfig 返回sarama配置, SASL账号取自环境变量KAFKA_USERNAME与KAFKA_PASSWORD.
func NewConfig(cfg *Config) (*sarama.Config, error) {
	conf := sarama.NewConfig()
	if cfg.Version != "" {
		version, err := sarama.ParseKafkaVersion(cfg.Version)
		if err != nil {
			return nil, err
		}
		conf.Version = version
	}
	if cfg.FromOldest {
		conf.Consumer.Offsets.Initial = sarama.OffsetOldest
	}
	if cfg.ClientID != "" {
		conf.ClientID = cfg.ClientID
	}
	GetKafkaAccessEnv(conf)
	return conf, nil
}

// GetKafkaAccessEnv 从环境变量读取SASL配置.
func GetKafkaAccessEnv(cfg *sarama.Config) {
	usr := os.Getenv("KAFKA_USERNAME")
	pwd := os.Getenv("KAFKA_PASSWORD")
	if usr == "" || pwd == "" {
		log.Warn().Msg("access kafka without SASL setting")
		return
	}
	cfg.Net.SASL.Enable = true
	cfg.Net.SASL.Mechanism = sarama.SASLTypePlaintext
	cfg.Net.SASL.User = usr
	cfg.Net.SASL.Password = pwd
	cfg.Net.SASL.Version = sarama.SASLHandshakeV1
}
