package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/raymondchung216/instacook/internal/config"
	"github.com/raymondchung216/instacook/internal/logger"
	"github.com/raymondchung216/instacook/internal/search"
	"github.com/raymondchung216/instacook/internal/service"
)

// SearchIndexHandle wraps the search index for lifecycle management. The
// index is nil when search is disabled.
type SearchIndexHandle struct {
	*search.Index
}

// Shutdown implements do.Shutdownable.
func (h *SearchIndexHandle) Shutdown() error {
	if h.Index == nil {
		return nil
	}
	return h.Index.Close()
}

// ProvideSearchIndex provides the Bleve search index, or a nil handle when
// search is disabled in configuration.
func ProvideSearchIndex(i do.Injector) (*SearchIndexHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if !cfg.Search.Enabled {
		log.Info("Search disabled by configuration")
		return &SearchIndexHandle{}, nil
	}

	index, err := search.NewIndex(search.Options{
		DataPath: cfg.Storage.DataPath,
		Logger:   log.Logger,
	})
	if err != nil {
		return nil, err
	}

	return &SearchIndexHandle{Index: index}, nil
}

// TriggerSearchReindexIfNeeded rebuilds the search index from the store when
// configured to do so, or when the index is empty but recipes exist. Runs in
// the background so startup is not blocked.
func TriggerSearchReindexIfNeeded(i do.Injector) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if !cfg.Search.Enabled {
		return
	}

	searchService := do.MustInvoke[*service.SearchService](i)

	needed := cfg.Search.ReindexOnStart
	if !needed {
		docCount, err := searchService.DocumentCount()
		needed = err == nil && docCount == 0
	}
	if !needed {
		return
	}

	go func() {
		log.Info("Starting search reindex")
		if err := searchService.Reindex(context.Background()); err != nil {
			log.WithError(err).Error("Search reindex failed")
			return
		}
		log.Info("Search reindex complete")
	}()
}
