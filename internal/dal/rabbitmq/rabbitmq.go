package rabbitmq

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/spf13/viper"
	"github.com/streadway/amqp"
)

// Client represents a RabbitMQ client.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	mu      sync.Mutex
}

// Close closes the channel and connection for graceful shutdown.
func (r *Client) Close() error {
	if r.channel != nil {
		if err := r.channel.Close(); err != nil {
			return err
		}
	}
	if r.conn != nil {
		return r.conn.Close()
	}

	return nil
}

// URLFromConfig builds the AMQP URL from rabbitmq.host, rabbitmq.port and
// the RABBITMQ_DEFAULT_USER / RABBITMQ_DEFAULT_PASS variables.
func URLFromConfig() string {
	return fmt.Sprintf(
		"amqp://%s:%s@%s:%d/",
		os.Getenv("RABBITMQ_DEFAULT_USER"),
		os.Getenv("RABBITMQ_DEFAULT_PASS"),
		viper.GetString("rabbitmq.host"),
		viper.GetInt("rabbitmq.port"),
	)
}

// NewClient dials url and opens a channel.
func NewClient(url string) (*Client, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		if closeErr := conn.Close(); closeErr != nil {
			slog.Error("Failed to close RabbitMQ connection", "error", closeErr)
		}

		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	slog.Info("RabbitMQ connected")

	return &Client{
		conn:    conn,
		channel: channel,
	}, nil
}

// MustNewClient creates a new RabbitMQ client from the configuration.
func MustNewClient() *Client {
	client, err := NewClient(URLFromConfig())
	if err != nil {
		panic(err)
	}

	return client
}

type DeclareQueueConfig struct {
	Name       string
	Durable    bool
	AutoDelete bool
	Exclusive  bool
	NoWait     bool
	Args       amqp.Table
}

// DeclareQueue declares a queue with the given configuration.
func (r *Client) DeclareQueue(cfg DeclareQueueConfig) (amqp.Queue, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.channel.QueueDeclare(
		cfg.Name,
		cfg.Durable,
		cfg.AutoDelete,
		cfg.Exclusive,
		cfg.NoWait,
		cfg.Args,
	)
}

// Publish sends msg on the shared channel. Calls are serialized.
func (r *Client) Publish(exchange, routingKey string, msg amqp.Publishing) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.channel.Publish(exchange, routingKey, false, false, msg)
}
