// Package store implements the entity store for InstaCook on top of Badger.
//
// It exposes four entity kinds (users, recipes, tags, comments) through a
// generic Entity type plus typed wrappers for the multi-entity operations
// that must commit atomically (recipe create/delete with contributor list
// cleanup, like toggles). Every operation is bounded by a per-call timeout;
// a deadline hit surfaces as errors.ErrStoreUnavailable so callers can
// distinguish transient storage trouble from missing data.
package store

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/raymondchung216/instacook/internal/domain"
	"github.com/raymondchung216/instacook/internal/errors"
)

// Key prefixes per entity kind.
const (
	userPrefix    = "user:"
	recipePrefix  = "recipe:"
	tagPrefix     = "tag:"
	commentPrefix = "comment:"
	sessionPrefix = "session:"
)

// DefaultOpTimeout bounds each store call. Badger is local so this almost
// never fires, but the contract is that no caller blocks indefinitely on
// storage I/O.
const DefaultOpTimeout = 5 * time.Second

// maxTxnRetries bounds the optimistic-retry loop for read-modify-write
// transactions that may conflict under concurrent commits.
const maxTxnRetries = 5

// Options configures a Store.
type Options struct {
	Path      string
	Logger    *slog.Logger
	OpTimeout time.Duration // zero means DefaultOpTimeout
	InMemory  bool          // for tests
}

// Store wraps a Badger database instance.
type Store struct {
	db        *badger.DB
	logger    *slog.Logger
	opTimeout time.Duration

	// Generic entities
	Users    *Entity[domain.User]
	Recipes  *Entity[domain.Recipe]
	Tags     *Entity[domain.Tag]
	Comments *Entity[domain.Comment]
	Sessions *Entity[domain.Session]
}

// New opens or creates a store at the given path.
func New(opts Options) (*Store, error) {
	badgerOpts := badger.DefaultOptions(opts.Path)
	badgerOpts.Logger = nil            // Disable Badger's internal logging
	badgerOpts.SyncWrites = true       // Ensure writes are synced to disk to prevent corruption on crashes
	badgerOpts.CompactL0OnClose = true // Compact L0 tables on close for faster startup
	if opts.InMemory {
		badgerOpts = badgerOpts.WithInMemory(true).WithDir("").WithValueDir("")
	}

	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	timeout := opts.OpTimeout
	if timeout <= 0 {
		timeout = DefaultOpTimeout
	}

	store := &Store{
		db:        db,
		logger:    opts.Logger,
		opTimeout: timeout,
	}

	store.initEntities()

	if store.logger != nil {
		store.logger.Info("Badger database opened successfully", "path", opts.Path)
	}

	return store, nil
}

// Close gracefully closes the database connection.
func (s *Store) Close() error {
	if s.logger != nil {
		s.logger.Info("Closing database connection")
	}
	return s.db.Close()
}

// initEntities wires the generic entities and their secondary indexes.
// Usernames and emails are unique; emails are matched case-insensitively.
func (s *Store) initEntities() {
	s.Users = NewEntity[domain.User](s, userPrefix).
		WithIndex("username", func(u *domain.User) []string {
			return []string{u.Username}
		}).
		WithIndexTransform("email",
			func(u *domain.User) []string {
				return []string{normalizeEmail(u.Email)}
			},
			normalizeEmail,
		)

	s.Recipes = NewEntity[domain.Recipe](s, recipePrefix)
	s.Tags = NewEntity[domain.Tag](s, tagPrefix).
		WithIndex("name", func(t *domain.Tag) []string {
			return []string{t.Name}
		})
	s.Comments = NewEntity[domain.Comment](s, commentPrefix)
	s.Sessions = NewEntity[domain.Session](s, sessionPrefix).
		WithIndex("token_hash", func(sess *domain.Session) []string {
			return []string{sess.RefreshTokenHash}
		})
}

// opCtx derives a bounded context for a single store operation.
func (s *Store) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.opTimeout)
}

// translateErr maps low-level failures onto the domain error taxonomy.
// Deadline hits and closed-database errors become StoreUnavailable;
// key-not-found becomes NotFound; everything else passes through.
func translateErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.DeadlineExceeded):
		return errors.ErrStoreUnavailable.WithCause(err)
	case errors.Is(err, badger.ErrDBClosed), errors.Is(err, badger.ErrBlockedWrites):
		return errors.ErrStoreUnavailable.WithCause(err)
	case errors.Is(err, badger.ErrKeyNotFound):
		return errors.ErrNotFound
	default:
		return err
	}
}

// updateWithRetry runs fn inside a Badger update transaction, retrying a
// bounded number of times when the optimistic commit detects a conflict.
// This is the concurrency discipline for every read-modify-write that
// independent actors can race on (like toggles, owned-recipe lists).
func (s *Store) updateWithRetry(ctx context.Context, fn func(txn *badger.Txn) error) error {
	opCtx, cancel := s.opCtx(ctx)
	defer cancel()

	var err error
	for attempt := 0; attempt < maxTxnRetries; attempt++ {
		if ctxErr := opCtx.Err(); ctxErr != nil {
			return translateErr(ctxErr)
		}

		err = s.db.Update(fn)
		if !errors.Is(err, badger.ErrConflict) {
			return translateErr(err)
		}

		if s.logger != nil {
			s.logger.Debug("transaction conflict, retrying", "attempt", attempt+1)
		}
	}

	return errors.ErrConflict.WithCause(err)
}

// normalizeEmail lowercases and trims an email for index lookups.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// getJSON reads a key inside an open transaction and unmarshals it into dest.
// Returns badger.ErrKeyNotFound untranslated so txn composition can branch.
func getJSON(txn *badger.Txn, key string, dest any) error {
	item, err := txn.Get([]byte(key))
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, dest)
	})
}

// setJSON marshals v and writes it under key inside an open transaction.
func setJSON(txn *badger.Txn, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %q: %w", key, err)
	}
	return txn.Set([]byte(key), data)
}
