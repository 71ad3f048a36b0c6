// Package config is responsible for blog service runtime configuration.
package config

import (
	"strings"

	"github.com/spf13/viper"
)

const envPrefix = "BLOG"

// Load reads the blog service configuration from the environment.
func Load() *Config {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("port", 8081)
	v.SetDefault("dsn", "host=db user=postgres password=postgres dbname=postgres port=5432 sslmode=disable")
	v.SetDefault("migrations", "file:///db/migrations/blog")
	v.SetDefault("redis.addr", "redis:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("s3.bucket", "roamvista-media")
	v.SetDefault("s3.region", "us-east-1")

	return &Config{v: v}
}

// Config provides access to the blog service's configuration values.
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

// S3Bucket is the media bucket name.
func (c Config) S3Bucket() string { return c.v.GetString("s3.bucket") }

// S3Region is the media bucket region.
func (c Config) S3Region() string { return c.v.GetString("s3.region") }
