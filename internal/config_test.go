package internal

import (
	"os"
	"testing"
	"time"

	"github.com/Netflix/go-env"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("BUFFER_SIZE", "128")
	t.Setenv("NUMBER_OF_WORKERS", "4")
	t.Setenv("SINK_TIMEOUT", "250ms")
	t.Setenv("AUTH_TOKEN_DURATION", "24h")
	t.Setenv("JWT_KEY", "secret")
	t.Setenv("BADGER_FILEPATH", "/tmp/collabcast")
	t.Setenv("LOG_LEVEL", "INFO")
}

func TestConfig_Unmarshal_From_Environment(t *testing.T) {
	req := require.New(t)
	setRequired(t)
	t.Setenv("PORT", "9090")

	var config Config
	_, err := env.UnmarshalFromEnviron(&config)
	req.NoError(err)

	req.Equal(128, config.BufferSize)
	req.Equal(4, config.NumberOfWorkers)
	req.Equal(250*time.Millisecond, config.SinkTimeout)
	req.Equal(24*time.Hour, config.AuthTokenDuration)
	req.Equal(9090, config.Port)
}

func TestConfig_Defaults_Apply_When_Absent(t *testing.T) {
	req := require.New(t)
	setRequired(t)
	for _, key := range []string{"SINK_BUFFER_SIZE", "STATS_INTERVAL", "LATENCY_THRESHOLD", "HOST", "PORT", "REDIS_URL", "DEBUG_PORT"} {
		t.Setenv(key, "")
		_ = os.Unsetenv(key)
	}

	var config Config
	_, err := env.UnmarshalFromEnviron(&config)
	req.NoError(err)

	req.Equal(64, config.SinkBufferSize)
	req.Equal(30*time.Second, config.StatsInterval)
	req.Equal(500*time.Millisecond, config.LatencyThreshold)
	req.Equal("localhost", config.Host)
	req.Equal(8080, config.Port)
	req.Nil(config.RedisURL)
	req.Nil(config.DebugPort)
}

func TestConfig_Missing_Required_Variable(t *testing.T) {
	req := require.New(t)
	setRequired(t)
	t.Setenv("JWT_KEY", "")
	_ = os.Unsetenv("JWT_KEY")

	var config Config
	_, err := env.UnmarshalFromEnviron(&config)
	req.Error(err)
}
