package backend

import (
	"fmt"

	"cashbook/internal/config"
)

// Config holds configuration for backend creation.
type Config struct {
	Type Type

	// SQLite specific
	SQLiteDBPath string
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}

// FromAppConfig converts the application config to backend config.
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}

	backendType := Type(appConfig.DataBackend)
	if !backendType.IsValid() {
		return Config{}, fmt.Errorf("invalid backend type in config: %s", appConfig.DataBackend)
	}

	return Config{
		Type:         backendType,
		SQLiteDBPath: appConfig.SQLiteDBPath,
		AMQPURL:      appConfig.AMQPURL,
		AMQPExchange: appConfig.AMQPExchange,
		AMQPQueue:    appConfig.AMQPQueue,
	}, nil
}

// Validate validates the backend configuration.
func (c Config) Validate() error {
	if !c.Type.IsValid() {
		return fmt.Errorf("invalid backend type: %s", c.Type)
	}

	if c.Type == SQLiteBackend && c.SQLiteDBPath == "" {
		return fmt.Errorf("SQLite database path is required for sqlite backend")
	}
	// AMQP is optional for every backend.

	return nil
}
