package cmd

import (
	"testing"
	"time"

	"printshop/internal/adapters/out/postgres"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPostgresConfig() Config {
	return Config{
		HTTPPort: "8080",
		DBHost:   "localhost",
		DBPort:   "5432",
		DBUser:   "printshop",
		DBName:   "printshop",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr []string
	}{
		{
			name:   "postgres defaults",
			mutate: func(*Config) {},
		},
		{
			name: "sqlite needs no host",
			mutate: func(c *Config) {
				*c = Config{HTTPPort: "8080", DBDriver: "SQLite", SQLitePath: "shop.db"}
			},
		},
		{
			name: "six field schedule",
			mutate: func(c *Config) {
				c.OutboxRelaySchedule = "*/5 * * * * *"
			},
		},
		{
			name: "every missing setting is reported",
			mutate: func(c *Config) {
				*c = Config{DBDriver: postgres.DriverPostgres}
			},
			wantErr: []string{"HTTP_PORT", "DB_HOST", "DB_PORT", "DB_USER", "DB_NAME"},
		},
		{
			name: "unknown driver",
			mutate: func(c *Config) {
				c.DBDriver = "mysql"
			},
			wantErr: []string{"DB_DRIVER"},
		},
		{
			name: "kafka without topic",
			mutate: func(c *Config) {
				c.KafkaHost = "localhost:9092"
			},
			wantErr: []string{"KAFKA_ORDER_CHANGED_TOPIC"},
		},
		{
			name: "negative cache settings",
			mutate: func(c *Config) {
				c.RedisDB = -1
				c.ProductCacheTTL = -time.Second
			},
			wantErr: []string{"REDIS_DB", "PRODUCT_CACHE_TTL"},
		},
		{
			name: "malformed schedule",
			mutate: func(c *Config) {
				c.OutboxRelaySchedule = "every second"
			},
			wantErr: []string{"OUTBOX_RELAY_SCHEDULE"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validPostgresConfig()
			tt.mutate(&c)

			err := c.Validate()
			if len(tt.wantErr) == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			for _, key := range tt.wantErr {
				assert.Contains(t, err.Error(), key)
			}
		})
	}
}

func TestConfig_Database(t *testing.T) {
	c := Config{DBDriver: "SQLITE", SQLitePath: "/var/lib/printshop.db"}

	db := c.Database()

	assert.Equal(t, postgres.DriverSQLite, db.Driver)
	assert.Equal(t, "/var/lib/printshop.db", db.SQLitePath)
}

func TestConfig_Telemetry_DefaultsServiceName(t *testing.T) {
	assert.Equal(t, "printshop", Config{}.Telemetry().ServiceName)
	assert.Equal(t, "shop-floor", Config{ServiceName: "shop-floor"}.Telemetry().ServiceName)
}

func TestConfig_KafkaBrokers(t *testing.T) {
	assert.Empty(t, Config{}.KafkaBrokers())
	assert.Equal(t,
		[]string{"kafka-1:9092", "kafka-2:9092"},
		Config{KafkaHost: " kafka-1:9092, ,kafka-2:9092"}.KafkaBrokers(),
	)
}
