// Package config loads runtime settings from the environment.
//
// Values come from process environment variables, optionally primed from a
// .env file. Command-line flags in cmd/ override what Load returns.
package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

const (
	// DefaultDeepLURL is the DeepL free-tier translate endpoint.
	DefaultDeepLURL = "https://api-free.deepl.com/v2/translate"

	// DefaultListenAddr is the proxy's listen address.
	DefaultListenAddr = ":3001"

	// DefaultProxyURL is where the capture flow reaches the proxy.
	DefaultProxyURL = "http://localhost:3001"

	DefaultStoreBackend = "badger"
	DefaultStoreDSN     = "./data/conversation"
	DefaultLogLevel     = "info"
	DefaultEnvironment  = "dev"
)

// Config holds the settings shared by the proxy and the capture CLI.
type Config struct {
	DeepLAuthKey string
	DeepLURL     string
	ListenAddr   string
	ProxyURL     string
	StoreBackend string
	StoreDSN     string
	LogLevel     string
	Environment  string
}

// Load reads the configuration from the environment. If envFile is not
// empty it is loaded first; variables already set in the process win.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, errors.Wrapf(err, "failed to load env file %s", envFile)
		}
	}

	return &Config{
		DeepLAuthKey: strings.TrimSpace(os.Getenv("DEEPL_AUTH_KEY")),
		DeepLURL:     getenv("DEEPL_API_URL", DefaultDeepLURL),
		ListenAddr:   getenv("LISTEN_ADDR", DefaultListenAddr),
		ProxyURL:     getenv("PROXY_URL", DefaultProxyURL),
		StoreBackend: getenv("STORE_BACKEND", DefaultStoreBackend),
		StoreDSN:     getenv("STORE_DSN", DefaultStoreDSN),
		LogLevel:     getenv("LOG_LEVEL", DefaultLogLevel),
		Environment:  getenv("ENVIRONMENT", DefaultEnvironment),
	}, nil
}

// ValidateProxy checks the settings the translation proxy cannot run without.
func (c *Config) ValidateProxy() error {
	if c.DeepLAuthKey == "" {
		return errors.New("DEEPL_AUTH_KEY is required")
	}
	if c.DeepLURL == "" {
		return errors.New("DEEPL_API_URL is required")
	}
	return nil
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
