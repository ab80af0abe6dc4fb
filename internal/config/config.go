// Package config loads application settings from an optional YAML file,
// CRM_* environment variables and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "CRM"

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
	Storage StorageConfig `mapstructure:"storage"`
	API     APIConfig     `mapstructure:"api"`
	Jobs    JobsConfig    `mapstructure:"jobs"`
	Kafka   KafkaConfig   `mapstructure:"kafka"`
	Tracing TracingConfig `mapstructure:"tracing"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type LogConfig struct {
	Mode string `mapstructure:"mode"`
}

// StorageConfig driver: memory | sqlite | postgres | mysql
type StorageConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

// APIConfig адрес GraphQL для задач и seed
type APIConfig struct {
	Endpoint string        `mapstructure:"endpoint"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

type JobConfig struct {
	Schedule string `mapstructure:"schedule"`
	LogFile  string `mapstructure:"log_file"`
}

type JobsConfig struct {
	RunTimeout        time.Duration `mapstructure:"run_timeout"`
	Heartbeat         JobConfig     `mapstructure:"heartbeat"`
	Restock           JobConfig     `mapstructure:"restock"`
	Report            JobConfig     `mapstructure:"report"`
	Reminders         JobConfig     `mapstructure:"reminders"`
	RemindersLookback time.Duration `mapstructure:"reminders_lookback"`
}

type KafkaConfig struct {
	Enabled bool     `mapstructure:"enabled"`
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

type TracingConfig struct {
	Exporter    string  `mapstructure:"exporter"`
	Endpoint    string  `mapstructure:"endpoint"`
	Insecure    bool    `mapstructure:"insecure"`
	ServiceName string  `mapstructure:"service_name"`
	SampleRatio float64 `mapstructure:"sample_ratio"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8000")
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("server.shutdown_timeout", 5*time.Second)

	v.SetDefault("log.mode", "development")

	v.SetDefault("storage.driver", "memory")
	v.SetDefault("storage.dsn", "")

	v.SetDefault("api.endpoint", "http://localhost:8000/graphql")
	v.SetDefault("api.timeout", 10*time.Second)

	v.SetDefault("jobs.run_timeout", time.Minute)
	v.SetDefault("jobs.heartbeat.schedule", "@every 5m")
	v.SetDefault("jobs.heartbeat.log_file", "/tmp/crm_heartbeat_log.txt")
	v.SetDefault("jobs.restock.schedule", "@every 12h")
	v.SetDefault("jobs.restock.log_file", "/tmp/low_stock_updates_log.txt")
	v.SetDefault("jobs.report.schedule", "0 0 6 * * 1")
	v.SetDefault("jobs.report.log_file", "/tmp/crm_report_log.txt")
	v.SetDefault("jobs.reminders.schedule", "0 0 8 * * *")
	v.SetDefault("jobs.reminders.log_file", "/tmp/order_reminders_log.txt")
	v.SetDefault("jobs.reminders_lookback", 7*24*time.Hour)

	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.brokers", []string{"127.0.0.1:9092"})
	v.SetDefault("kafka.topic", "crm-events")

	v.SetDefault("tracing.exporter", "none")
	v.SetDefault("tracing.endpoint", "localhost:4318")
	v.SetDefault("tracing.insecure", true)
	v.SetDefault("tracing.service_name", "crm")
	v.SetDefault("tracing.sample_ratio", 1.0)
}

// Load читает конфиг. Пустой path означает поиск config/config.yaml;
// отсутствие файла не ошибка, тогда работают значения по умолчанию.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Server.CORSOrigins = splitList(cfg.Server.CORSOrigins)
	cfg.Kafka.Brokers = splitList(cfg.Kafka.Brokers)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// splitList accepts both YAML lists and comma separated env values.
func splitList(in []string) []string {
	var out []string
	for _, s := range in {
		for _, part := range strings.Split(s, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case "memory", "sqlite", "postgres", "mysql":
	default:
		return fmt.Errorf("unsupported storage driver %q", c.Storage.Driver)
	}
	if c.Storage.Driver != "memory" && c.Storage.DSN == "" {
		return fmt.Errorf("storage.dsn is required for driver %q", c.Storage.Driver)
	}
	switch c.Tracing.Exporter {
	case "none", "stdout", "otlp":
	default:
		return fmt.Errorf("unsupported tracing exporter %q", c.Tracing.Exporter)
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return errors.New("kafka.brokers must not be empty when kafka is enabled")
	}
	return nil
}
