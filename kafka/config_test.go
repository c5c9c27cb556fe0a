package kafka

import (
	"testing"

	"github.com/IBM/sarama"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	t.Setenv("KAFKA_USERNAME", "")
	conf, err := NewConfig(&Config{ClientID: "iocat", FromOldest: true, Version: "2.8.0"})
	require.NoError(t, err)
	assert.Equal(t, "iocat", conf.ClientID)
	assert.Equal(t, sarama.OffsetOldest, conf.Consumer.Offsets.Initial)
	assert.Equal(t, sarama.V2_8_0_0, conf.Version)
	assert.False(t, conf.Net.SASL.Enable)

	_, err = NewConfig(&Config{Version: "not-a-version"})
	assert.Error(t, err)
}

func TestNewConfigSASL(t *testing.T) {
	t.Setenv("KAFKA_USERNAME", "alice")
	t.Setenv("KAFKA_PASSWORD", "secret")
	conf, err := NewConfig(&Config{})
	require.NoError(t, err)
	assert.True(t, conf.Net.SASL.Enable)
	assert.Equal(t, "alice", conf.Net.SASL.User)
	assert.Equal(t, "secret", conf.Net.SASL.Password)
}
