package providers

import (
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/raymondchung216/instacook/internal/config"
	"github.com/raymondchung216/instacook/internal/logger"
	"github.com/raymondchung216/instacook/internal/store"
)

// StoreHandle wraps the store for lifecycle management.
type StoreHandle struct {
	*store.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Store.Close()
}

// ProvideStore provides the Badger-backed entity store.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	dbPath := filepath.Join(cfg.Storage.DataPath, "db")
	st, err := store.New(store.Options{
		Path:   dbPath,
		Logger: log.Logger,
	})
	if err != nil {
		return nil, err
	}

	log.WithField("path", dbPath).Info("Store opened")

	return &StoreHandle{Store: st}, nil
}
