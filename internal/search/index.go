// Package search provides full-text recipe search backed by Bleve.
package search

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/blevesearch/bleve/v2"

	"github.com/raymondchung216/instacook/internal/domain"
)

// Index wraps a Bleve index with recipe-specific operations.
//
// Thread safety: all public methods are safe for concurrent use. The mutex
// protects against index corruption during rebuild operations.
type Index struct {
	index  bleve.Index
	path   string
	logger *slog.Logger
	mu     sync.RWMutex
}

// Options configures the search index.
type Options struct {
	DataPath string       // Directory for index storage
	Logger   *slog.Logger // Uses stderr text handler if nil
}

// mappingVersion is incremented whenever the index mapping changes, which
// triggers a rebuild on startup.
const mappingVersion = "1"

// NewIndex creates or opens a search index under opts.DataPath. A corrupted
// index or one built with an outdated mapping is removed and recreated.
func NewIndex(opts Options) (*Index, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}

	indexPath := filepath.Join(opts.DataPath, "search.bleve")
	versionPath := filepath.Join(opts.DataPath, "search.version")

	var index bleve.Index
	needsRebuild := false

	if _, err := os.Stat(indexPath); err == nil {
		version, readErr := os.ReadFile(versionPath)
		if readErr != nil || string(version) != mappingVersion {
			logger.Info("search index mapping outdated, rebuilding",
				"new_version", mappingVersion,
			)
			needsRebuild = true
		} else {
			index, err = bleve.Open(indexPath)
			if err != nil {
				logger.Warn("failed to open existing search index, recreating",
					"path", indexPath,
					"error", err,
				)
				needsRebuild = true
			}
		}
	}

	if needsRebuild {
		if err := os.RemoveAll(indexPath); err != nil {
			return nil, fmt.Errorf("remove old index: %w", err)
		}
		index = nil
	}

	if index == nil {
		var err error
		index, err = bleve.New(indexPath, buildIndexMapping())
		if err != nil {
			return nil, fmt.Errorf("create index: %w", err)
		}
		if err := os.WriteFile(versionPath, []byte(mappingVersion), 0o644); err != nil {
			logger.Warn("failed to write search version file", "error", err)
		}
		logger.Info("created new search index", "path", indexPath)
	} else {
		logger.Info("opened existing search index", "path", indexPath)
	}

	return &Index{
		index:  index,
		path:   indexPath,
		logger: logger,
	}, nil
}

// Close closes the index and releases resources.
func (s *Index) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index.Close()
}

// IndexRecipe adds or updates a recipe in the index. tagNames are the
// recipe's resolved tag names; raw tag ids are never indexed.
func (s *Index) IndexRecipe(recipe *domain.Recipe, tagNames []string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.Index(recipe.ID, recipeDoc(recipe, tagNames))
}

// IndexRecipes indexes multiple recipes in one batch. Used by the startup
// reindex; much faster than per-recipe calls.
func (s *Index) IndexRecipes(recipes []*domain.Recipe, tagNames map[string][]string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	batch := s.index.NewBatch()
	for _, recipe := range recipes {
		if err := batch.Index(recipe.ID, recipeDoc(recipe, tagNames[recipe.ID])); err != nil {
			return fmt.Errorf("batch index %s: %w", recipe.ID, err)
		}
	}
	return s.index.Batch(batch)
}

// RemoveRecipe deletes a recipe from the index.
func (s *Index) RemoveRecipe(recipeID string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.Delete(recipeID)
}

// DocumentCount returns the number of indexed recipes.
func (s *Index) DocumentCount() (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.DocCount()
}

// recipeDoc flattens a recipe into the map shape the mapping expects.
func recipeDoc(recipe *domain.Recipe, tagNames []string) map[string]any {
	if tagNames == nil {
		tagNames = []string{}
	}
	return map[string]any{
		"id":         recipe.ID,
		"title":      recipe.Title,
		"content":    recipe.Content,
		"tags":       tagNames,
		"like_count": recipe.LikeCount(),
		"created_at": recipe.CreatedAt.UnixMilli(),
	}
}
