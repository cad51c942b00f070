package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	ServiceName    = "backoffice"
	ServiceVersion = "0.1.0"
)

const (
	DefaultHTTPAddr          = ":8080"
	DefaultAuditTopic        = "audit-log"
	DefaultNotificationTopic = "notifications"
	DefaultEventWorkers      = 4
	EventQueueSize           = 256
	ShutdownTimeout          = 10 * time.Second
)

const (
	LogsPath      = "/otlp/v1/logs"
	TracesPath    = "/otlp/v1/traces"
	ExportTimeout = 30 * time.Second
	MaxQueueSize  = 2048
)

type Config struct {
	DatabaseURL string
	HTTPAddr    string

	// Kafka sinks are used only when KafkaBroker is set; events are logged otherwise.
	KafkaBroker       string
	AuditTopic        string
	NotificationTopic string
	EventWorkers      int

	OtelEndpoint   string
	OtelAuthHeader string

	SQSQueueURL string
	AWSRegion   string
}

func LoadConfig() (*Config, error) {
	config := &Config{
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		HTTPAddr:          getenv("HTTP_ADDR", DefaultHTTPAddr),
		KafkaBroker:       os.Getenv("KAFKA_BROKER"),
		AuditTopic:        getenv("AUDIT_TOPIC", DefaultAuditTopic),
		NotificationTopic: getenv("NOTIFICATION_TOPIC", DefaultNotificationTopic),
		EventWorkers:      DefaultEventWorkers,
		OtelEndpoint:      os.Getenv("OTEL_ENDPOINT"),
		OtelAuthHeader:    os.Getenv("OTEL_AUTH_HEADER"),
		SQSQueueURL:       os.Getenv("SQS_QUEUE_URL"),
		AWSRegion:         os.Getenv("AWS_REGION"),
	}

	if config.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	if v := os.Getenv("EVENT_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("EVENT_WORKERS must be a positive integer, got %q", v)
		}
		config.EventWorkers = n
	}

	if config.OtelEndpoint != "" && config.OtelAuthHeader == "" {
		return nil, fmt.Errorf("OTEL_AUTH_HEADER environment variable is required when OTEL_ENDPOINT is set")
	}

	if config.SQSQueueURL != "" && config.AWSRegion == "" {
		return nil, fmt.Errorf("AWS_REGION environment variable is required when SQS_QUEUE_URL is set")
	}

	return config, nil
}

func (c *Config) KafkaEnabled() bool { return c.KafkaBroker != "" }
func (c *Config) OtelEnabled() bool  { return c.OtelEndpoint != "" }
func (c *Config) SQSEnabled() bool   { return c.SQSQueueURL != "" }

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
