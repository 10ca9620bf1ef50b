package internal

import "time"

type Config struct {
	BufferSize        int           `env:"BUFFER_SIZE,required=true"`
	NumberOfWorkers   int           `env:"NUMBER_OF_WORKERS,required=true"`
	SinkBufferSize    int           `env:"SINK_BUFFER_SIZE,default=64"`
	SinkTimeout       time.Duration `env:"SINK_TIMEOUT,required=true"`
	StatsInterval     time.Duration `env:"STATS_INTERVAL,default=30s"`
	LatencyThreshold  time.Duration `env:"LATENCY_THRESHOLD,default=500ms"`
	AuthTokenDuration time.Duration `env:"AUTH_TOKEN_DURATION,required=true"`
	JWTKey            string        `env:"JWT_KEY,required=true"`
	BadgerFilepath    string        `env:"BADGER_FILEPATH,required=true"`
	RedisURL          *string       `env:"REDIS_URL"`
	DebugPort         *int          `env:"DEBUG_PORT"`
	LogLevel          string        `env:"LOG_LEVEL,required=true"`
	Host              string        `env:"HOST,default=localhost"`
	Port              int           `env:"PORT,default=8080"`
}
