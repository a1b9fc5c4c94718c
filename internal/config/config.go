package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"
)

// Store drivers selectable through STORE_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
)

type Config struct {
	Port        string // PORT (default "5000")
	StoreDriver string // STORE_DRIVER (default "postgres")

	DatabaseURL string // DATABASE_URL (overrides the DB_* parts)
	DBHost      string // DB_HOST (default "localhost")
	DBPort      string // DB_PORT (default "5432")
	DBUser      string // DB_USER
	DBPassword  string // DB_PASSWORD
	DBName      string // DB_NAME (default "feedback")
	DBSSLMode   string // DB_SSLMODE (default "disable")

	MongoURI string // MONGODB_URI (required for the mongo driver)
	MongoDB  string // MONGODB_DB (default "feedback")

	AdminUsername string        // ADMIN_USERNAME (required)
	AdminPassword string        // ADMIN_PASSWORD (required)
	JWTSecret     string        // JWT_SECRET (required)
	TokenTTL      time.Duration // ADMIN_TOKEN_TTL (default 0 = tokens never expire)

	CORSOrigins []string // CORS_ORIGINS (comma-separated, default "*")

	// New-feedback e-mail notifications; disabled unless both key and recipient are set.
	ResendAPIKey string // RESEND_API_KEY
	FromEmail    string // FROM_EMAIL
	NotifyEmail  string // NOTIFY_EMAIL
}

// Load reads the server configuration from the environment.
func Load() (*Config, error) {
	c := &Config{
		Port:          envOrDefault("PORT", "5000"),
		StoreDriver:   strings.ToLower(envOrDefault("STORE_DRIVER", DriverPostgres)),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		DBHost:        envOrDefault("DB_HOST", "localhost"),
		DBPort:        envOrDefault("DB_PORT", "5432"),
		DBUser:        os.Getenv("DB_USER"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBName:        envOrDefault("DB_NAME", "feedback"),
		DBSSLMode:     envOrDefault("DB_SSLMODE", "disable"),
		MongoURI:      os.Getenv("MONGODB_URI"),
		MongoDB:       envOrDefault("MONGODB_DB", "feedback"),
		AdminUsername: os.Getenv("ADMIN_USERNAME"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		CORSOrigins:   splitList(envOrDefault("CORS_ORIGINS", "*")),
		ResendAPIKey:  os.Getenv("RESEND_API_KEY"),
		FromEmail:     envOrDefault("FROM_EMAIL", "onboarding@resend.dev"),
		NotifyEmail:   os.Getenv("NOTIFY_EMAIL"),
	}

	if ttl := os.Getenv("ADMIN_TOKEN_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return nil, fmt.Errorf("ADMIN_TOKEN_TTL: %w", err)
		}
		if d < 0 {
			return nil, fmt.Errorf("ADMIN_TOKEN_TTL must not be negative")
		}
		c.TokenTTL = d
	}

	switch c.StoreDriver {
	case DriverPostgres, DriverMemory:
	case DriverMongo:
		if c.MongoURI == "" {
			return nil, fmt.Errorf("MONGODB_URI is required when STORE_DRIVER=mongo")
		}
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}

	if c.AdminUsername == "" || c.AdminPassword == "" {
		return nil, fmt.Errorf("ADMIN_USERNAME and ADMIN_PASSWORD are required")
	}
	if c.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return c, nil
}

// LoadDatabase reads only the connection parameters, for the migration tool.
func LoadDatabase() *Config {
	return &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBHost:      envOrDefault("DB_HOST", "localhost"),
		DBPort:      envOrDefault("DB_PORT", "5432"),
		DBUser:      os.Getenv("DB_USER"),
		DBPassword:  os.Getenv("DB_PASSWORD"),
		DBName:      envOrDefault("DB_NAME", "feedback"),
		DBSSLMode:   envOrDefault("DB_SSLMODE", "disable"),
	}
}

// PostgresDSN returns DATABASE_URL when set, otherwise a URL assembled from the DB_* parts.
func (c *Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	u := url.URL{
		Scheme: "postgres",
		Host:   c.DBHost + ":" + c.DBPort,
		Path:   "/" + c.DBName,
	}
	if c.DBUser != "" {
		if c.DBPassword != "" {
			u.User = url.UserPassword(c.DBUser, c.DBPassword)
		} else {
			u.User = url.User(c.DBUser)
		}
	}
	q := url.Values{}
	q.Set("sslmode", c.DBSSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// EmailEnabled reports whether new-feedback notifications go out by e-mail.
func (c *Config) EmailEnabled() bool {
	return c.ResendAPIKey != "" && c.NotifyEmail != ""
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
