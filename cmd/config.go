package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"printshop/internal/adapters/out/postgres"
	"printshop/internal/pkg/telemetry"

	"github.com/robfig/cron/v3"
)

type Config struct {
	HTTPPort               string
	DBDriver               string
	DBHost                 string
	DBPort                 string
	DBUser                 string
	DBPassword             string
	DBName                 string
	DBSslMode              string
	SQLitePath             string
	RedisAddr              string
	RedisDB                int
	ProductCacheTTL        time.Duration
	KafkaHost              string
	KafkaOrderChangedTopic string
	OutboxRelaySchedule    string
	OTLPEndpoint           string
	ServiceName            string
}

// Validate reports every missing or malformed setting at once.
func (c Config) Validate() error {
	var err error
	if c.HTTPPort == "" {
		err = errors.Join(err, errors.New("HTTP_PORT is required"))
	}

	switch strings.ToLower(c.DBDriver) {
	case postgres.DriverPostgres, "":
		for key, value := range map[string]string{
			"DB_HOST": c.DBHost,
			"DB_PORT": c.DBPort,
			"DB_USER": c.DBUser,
			"DB_NAME": c.DBName,
		} {
			if value == "" {
				err = errors.Join(err, fmt.Errorf("%s is required for the postgres driver", key))
			}
		}
	case postgres.DriverSQLite:
	default:
		err = errors.Join(err, fmt.Errorf("DB_DRIVER %q is not supported", c.DBDriver))
	}

	if c.RedisDB < 0 {
		err = errors.Join(err, fmt.Errorf("REDIS_DB %d is negative", c.RedisDB))
	}
	if c.ProductCacheTTL < 0 {
		err = errors.Join(err, fmt.Errorf("PRODUCT_CACHE_TTL %s is negative", c.ProductCacheTTL))
	}
	if c.KafkaHost != "" && c.KafkaOrderChangedTopic == "" {
		err = errors.Join(err, errors.New("KAFKA_ORDER_CHANGED_TOPIC is required when KAFKA_HOST is set"))
	}
	if c.OutboxRelaySchedule != "" {
		if _, parseErr := cronParser.Parse(c.OutboxRelaySchedule); parseErr != nil {
			err = errors.Join(err, fmt.Errorf("OUTBOX_RELAY_SCHEDULE: %w", parseErr))
		}
	}
	return err
}

// cronParser accepts the schedules the relay job's cron accepts.
var cronParser = cron.NewParser(
	cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func (c Config) Database() postgres.DatabaseConfig {
	return postgres.DatabaseConfig{
		Driver:     strings.ToLower(c.DBDriver),
		Host:       c.DBHost,
		Port:       c.DBPort,
		User:       c.DBUser,
		Password:   c.DBPassword,
		Name:       c.DBName,
		SslMode:    c.DBSslMode,
		SQLitePath: c.SQLitePath,
	}
}

func (c Config) Telemetry() telemetry.Config {
	name := c.ServiceName
	if name == "" {
		name = "printshop"
	}
	return telemetry.Config{
		ServiceName:  name,
		OTLPEndpoint: c.OTLPEndpoint,
		Insecure:     true,
	}
}

// KafkaBrokers splits KAFKA_HOST on commas.
func (c Config) KafkaBrokers() []string {
	var brokers []string
	for _, b := range strings.Split(c.KafkaHost, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
