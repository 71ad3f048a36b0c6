// Package config is responsible for user service runtime configuration.
package config

import (
	"strings"

	"github.com/spf13/viper"
)

const envPrefix = "USER"

// Load reads the user service configuration from the environment.
func Load() *Config {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("port", 8080)
	v.SetDefault("dsn", "host=db user=postgres password=postgres dbname=postgres port=5432 sslmode=disable")
	v.SetDefault("migrations", "file:///db/migrations/user")
	v.SetDefault("redis.addr", "redis:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("mailgun.domain", "mg.roamvista.com")
	v.SetDefault("mailgun.host", "roamvista.com")
	v.SetDefault("admins", []string{})
	v.SetDefault("s3.bucket", "roamvista-media")
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("oidc.redirect.url", "https://roamvista.com/auth/callback")
	v.SetDefault("cookie.domain", "roamvista.com")
	v.SetDefault("cookie.secure", true)

	return &Config{v: v}
}

// Config provides access to the user service's configuration values.
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

// MailgunHost is the host linked to in transactional emails.
func (c Config) MailgunHost() string { return c.v.GetString("mailgun.host") }

// Admins is the set of email addresses granted the administrator role on
// sign-up.
func (c Config) Admins() []string { return c.v.GetStringSlice("admins") }

// S3Bucket is the bucket user-uploaded media is stored in.
func (c Config) S3Bucket() string { return c.v.GetString("s3.bucket") }

// S3Region is the region of the media bucket.
func (c Config) S3Region() string { return c.v.GetString("s3.region") }

// OIDCIssuer is the federated identity provider's issuer URL.
func (c Config) OIDCIssuer() string { return c.v.GetString("oidc.issuer") }

// OIDCClientID is the OAuth2 client ID registered with the federated
// identity provider.
func (c Config) OIDCClientID() string { return c.v.GetString("oidc.client.id") }

// OIDCClientSecret is the OAuth2 client secret registered with the federated
// identity provider.
func (c Config) OIDCClientSecret() string { return c.v.GetString("oidc.client.secret") }

// OIDCRedirectURL is the URL the federated identity provider redirects to
// after a sign-in attempt.
func (c Config) OIDCRedirectURL() string { return c.v.GetString("oidc.redirect.url") }

// CookieDomain is the domain session cookies are scoped to.
func (c Config) CookieDomain() string { return c.v.GetString("cookie.domain") }

// CookieSecure indicates if session cookies are only sent over https.
func (c Config) CookieSecure() bool { return c.v.GetBool("cookie.secure") }
