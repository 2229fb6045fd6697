package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	EventsDriverNone  = "none"
	EventsDriverRedis = "redis"
	EventsDriverNATS  = "nats"
)

var ErrUnknownEventsDriver = errors.New("unknown events driver")

type Config struct {
	LogLevel   string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort   string `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort string `yaml:"socket-port" env:"SOCKET_PORT" env-default:"8080"`
	PublicURL  string `yaml:"public-url" env:"PUBLIC_URL" env-default:"http://localhost:3000"`
	Socket     Socket `yaml:"socket"`
	Events     Events `yaml:"events"`
	Redis      Redis  `yaml:"redis"`
	NATS       NATS   `yaml:"nats"`
}

type Socket struct {
	WriteWait      time.Duration `yaml:"write-wait" env:"SOCKET_WRITE_WAIT" env-default:"10s"`
	PongWait       time.Duration `yaml:"pong-wait" env:"SOCKET_PONG_WAIT" env-default:"60s"`
	PingPeriod     time.Duration `yaml:"ping-period" env:"SOCKET_PING_PERIOD" env-default:"54s"`
	MaxMessageSize int64         `yaml:"max-message-size" env:"SOCKET_MAX_MESSAGE_SIZE" env-default:"4096"`
	SendBuffer     int           `yaml:"send-buffer" env:"SOCKET_SEND_BUFFER" env-default:"64"`
	AllowedOrigins []string      `yaml:"allowed-origins" env:"SOCKET_ALLOWED_ORIGINS" env-default:"*"`
}

type Events struct {
	Driver    string `yaml:"driver" env:"EVENTS_DRIVER" env-default:"none"`
	Workers   int    `yaml:"workers" env:"EVENTS_WORKERS" env-default:"4"`
	QueueSize int    `yaml:"queue-size" env:"EVENTS_QUEUE_SIZE" env-default:"1024"`
	Channel   string `yaml:"channel" env:"EVENTS_CHANNEL" env-default:"tictactoe.rooms"`
}

type Redis struct {
	Host     string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

type NATS struct {
	URL           string        `yaml:"url" env:"NATS_URL" env-default:"nats://localhost:4222"`
	Name          string        `yaml:"name" env:"NATS_NAME" env-default:"tictactoe-rooms"`
	MaxReconnects int           `yaml:"max-reconnects" env:"NATS_MAX_RECONNECTS" env-default:"10"`
	ReconnectWait time.Duration `yaml:"reconnect-wait" env:"NATS_RECONNECT_WAIT" env-default:"2s"`
}

// Load - reads the yml file when it exists, environment variables always win.
func Load(path string) (*Config, error) {
	config := &Config{}

	_, err := os.Stat(path)
	switch {
	case err == nil:
		if err = cleanenv.ReadConfig(path, config); err != nil {
			return nil, fmt.Errorf("unable to load config file: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist):
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("unable to load config from env: %w", err)
		}
	default:
		return nil, fmt.Errorf("unable to stat config file: %w", err)
	}

	if err = config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// MustLoad - load all configurations, panics on failure.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func (that *Config) validate() error {
	switch that.Events.Driver {
	case EventsDriverNone, EventsDriverRedis, EventsDriverNATS:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEventsDriver, that.Events.Driver)
	}
}

func (that *Redis) GetRedisAddr() string {
	return net.JoinHostPort(that.Host, that.Port)
}
