package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/Behyna/hypeconnect/pkg/mq"
	"github.com/Behyna/hypeconnect/pkg/mysql"
	"github.com/Behyna/hypeconnect/pkg/paystack"
	"github.com/Behyna/hypeconnect/pkg/postgres"
	"github.com/Behyna/hypeconnect/pkg/redis"
	"github.com/Behyna/hypeconnect/pkg/telegram"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

type Config struct {
	API      API             `mapstructure:"api"`
	Database Database        `mapstructure:"database"`
	Paystack paystack.Config `mapstructure:"paystack"`
	RabbitMQ mq.Config       `mapstructure:"rabbitmq"`
	Redis    redis.Config    `mapstructure:"redis"`
	JWT      JWT             `mapstructure:"jwt"`
	Telegram telegram.Config `mapstructure:"telegram"`
	Payments Payments        `mapstructure:"payments"`
	Worker   Worker          `mapstructure:"worker"`
}

type API struct {
	Port    string `mapstructure:"port"`
	Version string `mapstructure:"version"`
}

type Database struct {
	Driver   string          `mapstructure:"driver"`
	Mysql    mysql.Config    `mapstructure:"mysql"`
	Postgres postgres.Config `mapstructure:"postgres"`
}

type JWT struct {
	Secret    string `mapstructure:"secret"`
	AdminRole string `mapstructure:"admin_role"`
}

type Payments struct {
	// MaxVariance is the tolerated difference in whole currency units
	// between the committed and the reported amount.
	MaxVariance            int64         `mapstructure:"max_variance"`
	DuplicateWindowMinutes int           `mapstructure:"duplicate_window_minutes"`
	DeliveryGuardTTL       time.Duration `mapstructure:"delivery_guard_ttl"`
}

type Worker struct {
	PublishInterval time.Duration `mapstructure:"publish_interval"`
}

func Load() (*Config, error) {
	return LoadFrom("./config")
}

// LoadFrom reads config.yml from path. Values from the environment (and a
// .env file, when present) override the file, with dots in keys replaced by
// underscores: PAYSTACK_SECRET_KEY overrides paystack.secret_key.
func LoadFrom(path string) (cfg *Config, err error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.AddConfigPath(path)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	err = v.ReadInConfig()
	if err != nil {
		return cfg, fmt.Errorf("failed to load config: %w", err)
	}

	err = v.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case DriverMySQL, DriverPostgres:
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}

	if c.Payments.MaxVariance < 0 {
		return fmt.Errorf("payments.max_variance must not be negative")
	}

	return nil
}
