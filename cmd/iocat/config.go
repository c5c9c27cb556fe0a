package main

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/usherasnick/Useful-Go-Gadgets/kafka"
)

const (
	cfgKeyLogLevel   = "log_level"
	cfgKeyRate       = "rate"
	cfgKeyBurst      = "burst"
	cfgKeyOutput     = "output"
	cfgKeyBrokers    = "kafka.brokers"
	cfgKeyClientID   = "kafka.client_id"
	cfgKeyKey        = "kafka.key"
	cfgKeyVersion    = "kafka.version"
	cfgKeyGroup      = "kafka.group"
	cfgKeyFromOldest = "kafka.from_oldest"

	envPrefix = "IOCAT"
)

// bindFlags binds persistent flags of the root command to config keys.
func (a *app) bindFlags(cmd *cobra.Command) error {
	pf := cmd.PersistentFlags()
	for key, flag := range map[string]string{
		cfgKeyLogLevel:   "log-level",
		cfgKeyRate:       "rate",
		cfgKeyBurst:      "burst",
		cfgKeyOutput:     "output",
		cfgKeyBrokers:    "brokers",
		cfgKeyClientID:   "client-id",
		cfgKeyVersion:    "kafka-version",
		cfgKeyFromOldest: "from-oldest",
	} {
		if err := a.v.BindPFlag(key, pf.Lookup(flag)); err != nil {
			return fmt.Errorf("bind flag %s: %w", flag, err)
		}
	}
	return nil
}

// loadConfig reads the optional config file and the IOCAT_ environment,
// then applies the log level. Flags win over env, env wins over the file.
func (a *app) loadConfig() error {
	a.v.SetDefault(cfgKeyLogLevel, zerolog.InfoLevel.String())
	a.v.SetDefault(cfgKeyClientID, "iocat")
	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	a.v.AutomaticEnv()

	if a.configFile != "" {
		a.v.SetConfigFile(a.configFile)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config: %w", err)
		}
	}

	level, err := zerolog.ParseLevel(a.v.GetString(cfgKeyLogLevel))
	if err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}
	zerolog.SetGlobalLevel(level)
	return nil
}

// kafkaConfig assembles the kafka settings for a command working on topic.
func (a *app) kafkaConfig(topic string) *kafka.Config {
	return &kafka.Config{
		Brokers:       a.v.GetStringSlice(cfgKeyBrokers),
		Topic:         topic,
		ConsumerGroup: a.v.GetString(cfgKeyGroup),
		FromOldest:    a.v.GetBool(cfgKeyFromOldest),
		ClientID:      a.v.GetString(cfgKeyClientID),
		Key:           a.v.GetString(cfgKeyKey),
		Version:       a.v.GetString(cfgKeyVersion),
	}
}
