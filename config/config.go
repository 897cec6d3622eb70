package config

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v4"
)

type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Redis    RedisConfig    `yaml:"redis"`
	Log      LogConfig      `yaml:"log"`
	Site     SiteConfig     `yaml:"site"`
}

type DatabaseConfig struct {
	Driver   string `yaml:"driver"` // "postgres" | "sqlite"
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	DBName   string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`

	SQLitePath string `yaml:"sqlite_path"`

	ConnectTimeoutSeconds int `yaml:"connect_timeout_seconds"`
}

// Kafka отключена, если host пустой.
type KafkaConfig struct {
	Host                       string `yaml:"host"`
	Port                       int    `yaml:"port"`
	ShipmentUpdatedTopicName   string `yaml:"shipment_updated_topic_name"`
	SubmissionCreatedTopicName string `yaml:"submission_created_topic_name"`
}

// Redis отключён, если host пустой.
type RedisConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // json | text
}

type SiteConfig struct {
	HTTPAddr           string `yaml:"http_addr"`
	SwaggerPath        string `yaml:"swagger_path"`
	KafkaConsumerGroup string `yaml:"kafka_consumer_group"`

	ShipmentCacheTTLSeconds  int `yaml:"shipment_cache_ttl_seconds"`
	RequestTimeoutSeconds    int `yaml:"request_timeout_seconds"`
	SubmitRateLimitPerMinute int `yaml:"submit_rate_limit_per_minute"`
	SuccessBannerSeconds     int `yaml:"success_banner_seconds"`
	FormSessionIdleSeconds   int `yaml:"form_session_idle_seconds"`
}

func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal YAML: %w", err)
	}

	return &config, nil
}

// PostgresDSN собирает строку подключения; ssl_mode по умолчанию "disable".
func (c DatabaseConfig) PostgresDSN() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Username, c.Password, c.Host, c.Port, c.DBName, sslMode)
}

func (c KafkaConfig) Enabled() bool { return c.Host != "" }

func (c KafkaConfig) Brokers() []string {
	return []string{fmt.Sprintf("%s:%d", c.Host, c.Port)}
}

func (c RedisConfig) Enabled() bool { return c.Host != "" }

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
