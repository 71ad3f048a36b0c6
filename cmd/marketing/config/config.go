// Package config is responsible for marketing service runtime configuration.
package config

import (
	"strings"

	"github.com/spf13/viper"
)

const envPrefix = "MARKETING"

// Load reads the marketing service configuration from the environment.
func Load() *Config {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("port", 8082)
	v.SetDefault("dsn", "host=db user=postgres password=postgres dbname=postgres port=5432 sslmode=disable")
	v.SetDefault("migrations", "file:///db/migrations/marketing")
	v.SetDefault("redis.addr", "redis:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("mailgun.domain", "mg.roamvista.com")
	v.SetDefault("mailgun.host", "roamvista.com")

	return &Config{v: v}
}

// Config provides access to the marketing service's configuration values.
type Config struct {
	v *viper.Viper
}

// Port is the port the HTTP API listens on.
func (c Config) Port() int { return c.v.GetInt("port") }

// DSN is the postgres connection string.
func (c Config) DSN() string { return c.v.GetString("dsn") }

// Migrations is the source URL of the service's migration files.
func (c Config) Migrations() string { return c.v.GetString("migrations") }

// RedisAddr is the redis instance address.
func (c Config) RedisAddr() string { return c.v.GetString("redis.addr") }

// RedisPassword is the redis instance password.
func (c Config) RedisPassword() string { return c.v.GetString("redis.password") }

// MailgunDomain is the mailgun sending domain.
func (c Config) MailgunDomain() string { return c.v.GetString("mailgun.domain") }

// MailgunAPIKey is the mailgun private API key.
func (c Config) MailgunAPIKey() string { return c.v.GetString("mailgun.api.key") }

// MailgunHost is the public host linked to in outgoing email.
func (c Config) MailgunHost() string { return c.v.GetString("mailgun.host") }
