package threads

import (
	"context"
	"fmt"
	"time"

	"github.com/skeinlab/skein/internal/skeind/service/threads/domain/repo"
	"github.com/skeinlab/skein/internal/skeind/service/threads/domain/service"
	"github.com/skeinlab/skein/internal/skeind/service/threads/hints"
	boltdbStore "github.com/skeinlab/skein/internal/skeind/service/threads/store/boltdb"
	"github.com/skeinlab/skein/internal/skeind/service/threads/store/inmemory"
	"github.com/skeinlab/skein/pkg/logger"
)

// Config holds the configuration for the Threads module.
// Follows the Config → Complete() → New(ctx, deps) convention.
type Config struct {
	// StoreType selects the persistence backend: "inmemory" or "boltdb".
	// Default: "inmemory".
	StoreType string `json:"store_type,omitempty"`

	// BoltDBPath is the file path for BoltDB storage (when StoreType="boltdb").
	// Default: "data/skein.db".
	BoltDBPath string `json:"boltdb_path,omitempty"`

	// HintTTL is how long pending-call hints stay readable.
	// Default: 2m.
	HintTTL time.Duration `json:"hint_ttl,omitempty"`
}

// CompletedConfig is the validated and completed configuration.
type CompletedConfig struct {
	*Config
}

// Complete validates and fills defaults.
func (c *Config) Complete() CompletedConfig {
	if c.StoreType == "" {
		c.StoreType = "inmemory"
	}
	if c.BoltDBPath == "" {
		c.BoltDBPath = "data/skein.db"
	}
	if c.HintTTL <= 0 {
		c.HintTTL = hints.DefaultTTL
	}
	return CompletedConfig{c}
}

// Dependencies holds the external collaborators required by the module.
type Dependencies struct {
	// Notifier receives append signals for the watch push channel.
	// May be nil; appends then go unannounced.
	Notifier service.Notifier
}

// Module is the top-level Threads module.
//
// It exposes:
//   - Service: conversation management, event ingestion, thread reconstruction
//   - Hints: the pending-call hint annotation store
type Module struct {
	Service service.ThreadService
	Hints   *hints.Store
	boltDB  *boltdbStore.DB // nil when using inmemory store
}

// Close releases resources held by the module (e.g., BoltDB handle).
func (m *Module) Close() error {
	if m.boltDB != nil {
		return m.boltDB.Close()
	}
	return nil
}

// New creates and initializes the Threads module from a completed config.
func (c CompletedConfig) New(_ context.Context, deps Dependencies) (*Module, error) {
	var (
		conversationStore repo.ConversationRepository
		eventStore        repo.EventRepository
		boltDB            *boltdbStore.DB
	)

	switch c.StoreType {
	case "boltdb":
		var err error
		boltDB, err = boltdbStore.Open(c.BoltDBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open boltdb at %s: %w", c.BoltDBPath, err)
		}
		conversationStore = boltdbStore.NewConversationStore(boltDB)
		eventStore = boltdbStore.NewEventStore(boltDB)
		logger.Info("[Threads] using BoltDB store at %s", c.BoltDBPath)
	default:
		conversationStore = inmemory.NewConversationStore()
		eventStore = inmemory.NewEventStore()
		logger.Info("[Threads] using in-memory store")
	}

	svc := service.NewThreadService(conversationStore, eventStore, deps.Notifier)

	logger.Info("[Threads] module initialized (store=%s, hint_ttl=%s)", c.StoreType, c.HintTTL)

	return &Module{
		Service: svc,
		Hints:   hints.NewStore(c.HintTTL),
		boltDB:  boltDB,
	}, nil
}
