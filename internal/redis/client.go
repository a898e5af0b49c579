package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Client struct {
	client *redis.Client
	addr   string
}

type Config struct {
	Host         string
	Port         string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
	MaxRetries   int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	DialTimeout  time.Duration
}

// DefaultConfig returns connection settings for a local Redis.
func DefaultConfig() Config {
	return Config{
		Host:         "localhost",
		Port:         "6379",
		PoolSize:     10,
		MinIdleConns: 2,
		MaxRetries:   1,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
		DialTimeout:  2 * time.Second,
	}
}

// NewClient connects and pings Redis, failing fast when it is unreachable.
func NewClient(ctx context.Context, config Config, logger *zap.Logger) (*Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	address := fmt.Sprintf("%s:%s", config.Host, config.Port)

	options := &redis.Options{
		Addr:         address,
		Password:     config.Password,
		DB:           config.DB,
		PoolSize:     config.PoolSize,
		MinIdleConns: config.MinIdleConns,
		MaxRetries:   config.MaxRetries,
		DialTimeout:  config.DialTimeout,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
	}

	client := redis.NewClient(options)

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Connected to Redis", zap.String("addr", address), zap.Int("db", config.DB))

	return &Client{
		client: client,
		addr:   address,
	}, nil
}

func (c *Client) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

func (c *Client) GetClient() *redis.Client {
	return c.client
}

func (c *Client) Addr() string {
	return c.addr
}
