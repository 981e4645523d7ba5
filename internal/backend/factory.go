package backend

import (
	"context"
	"fmt"
	"log/slog"

	"cashbook/internal/amqp"
	"cashbook/internal/ledger/memory"
	"cashbook/internal/storage"
)

// DefaultFactory implements the Factory interface.
type DefaultFactory struct {
	logger *slog.Logger
}

// NewFactory creates a new backend factory.
func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{logger: logger}
}

// CreateBackend implements Factory.CreateBackend.
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*Result, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Type {
	case SQLiteBackend:
		return f.createSQLiteBackend(config)
	case MemoryBackend:
		return f.createMemoryBackend(config)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) createSQLiteBackend(config Config) (*Result, error) {
	repo, err := storage.NewSQLiteRepository(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("initialize sqlite repository: %w", err)
	}

	// AMQP is optional: without it writes still succeed, only the
	// change notifications are skipped.
	var publisher ChangePublisher
	var amqpClient *amqp.Client
	if config.AMQPURL != "" {
		amqpClient, err = amqp.NewClient(config.AMQPURL, config.AMQPExchange, config.AMQPQueue)
		if err != nil {
			f.logger.Warn("Failed to initialize AMQP client, continuing without notifications", "error", err)
		} else {
			publisher = amqpClient
			f.logger.Info("Initialized AMQP client",
				"exchange", config.AMQPExchange,
				"queue", config.AMQPQueue)
		}
	}

	f.logger.Info("Initialized SQLite backend",
		"db_path", config.SQLiteDBPath,
		"amqp_enabled", publisher != nil)

	cleanup := func() error {
		if amqpClient != nil {
			if err := amqpClient.Close(); err != nil {
				f.logger.Warn("Failed closing AMQP client", "error", err)
			}
		}
		return repo.Close()
	}

	return &Result{Backend: repo, Publisher: publisher, Cleanup: cleanup}, nil
}

func (f *DefaultFactory) createMemoryBackend(config Config) (*Result, error) {
	store := memory.New()

	f.logger.Info("Initialized memory backend")

	return &Result{
		Backend: store,
		Cleanup: func() error { return nil },
	}, nil
}
