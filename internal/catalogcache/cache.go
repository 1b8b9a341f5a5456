// Package catalogcache persists the remote vaccine catalog and daily tip in a
// local SQLite database so the app keeps working offline. Entries carry a
// fetched_at timestamp; stale entries are refreshed from the backend when it
// is reachable and served as a fallback when it is not.
package catalogcache

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/tunza-app/tunza/internal/config"
	"github.com/tunza-app/tunza/internal/datemath"
	"github.com/tunza-app/tunza/internal/remote"
)

const schema = `
CREATE TABLE IF NOT EXISTS catalog_entries (
	key        TEXT PRIMARY KEY,
	payload    TEXT NOT NULL,
	fetched_at TEXT NOT NULL
);
`

// Cache keys, one row per remote collection.
const (
	keyVaccinesBaby   = "vaccines_baby"
	keyVaccinesMother = "vaccines_mother"
	keyDailyTip       = "daily_tip"
)

// Fetcher is the subset of the API client the cache refreshes from.
type Fetcher interface {
	Vaccines(ctx context.Context, recipient string) ([]remote.Vaccine, error)
	DailyTip(ctx context.Context) (remote.Tip, error)
}

// Cache is a read-through cache over the remote catalog endpoints.
type Cache struct {
	db      *sql.DB
	fetcher Fetcher
	clock   datemath.Clock
	ttl     time.Duration
	log     *slog.Logger
}

// Open creates or opens the cache database under dir and prepares the schema.
func Open(dir string, fetcher Fetcher, clock datemath.Clock, ttl time.Duration) (*Cache, error) {
	if err := os.MkdirAll(dir, config.DirPermUserRWX); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrCacheOpen, err)
	}

	db, err := sql.Open(config.CacheDriverName, filepath.Join(dir, config.CacheFileName))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrCacheOpen, err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", config.ErrCacheOpen, err)
	}

	if ttl <= 0 {
		ttl = config.DefaultCacheTTL
	}

	return &Cache{
		db:      db,
		fetcher: fetcher,
		clock:   clock,
		ttl:     ttl,
		log:     slog.With(slog.String(config.LogKeyComponent, config.CompCache)),
	}, nil
}

// Close releases the underlying database handle.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Vaccines returns the immunization catalog for the recipient, refreshing
// from the backend when the cached copy is missing or stale. A stale copy is
// returned when the backend is unreachable.
func (c *Cache) Vaccines(ctx context.Context, recipient string) ([]remote.Vaccine, error) {
	key := keyVaccinesBaby
	if recipient == config.RecipientMother {
		key = keyVaccinesMother
	}

	var vaccines []remote.Vaccine
	err := c.readThrough(ctx, key, &vaccines, func(ctx context.Context) (any, error) {
		return c.fetcher.Vaccines(ctx, recipient)
	})
	return vaccines, err
}

// DailyTip returns today's guidance, refreshing on the same TTL policy.
func (c *Cache) DailyTip(ctx context.Context) (remote.Tip, error) {
	var tip remote.Tip
	err := c.readThrough(ctx, keyDailyTip, &tip, func(ctx context.Context) (any, error) {
		return c.fetcher.DailyTip(ctx)
	})
	return tip, err
}

// readThrough implements the cache policy: fresh hit wins, stale or missing
// triggers a remote fetch, fetch failure falls back to whatever is stored.
func (c *Cache) readThrough(ctx context.Context, key string, out any, fetch func(context.Context) (any, error)) error {
	payload, fetchedAt, found, err := c.read(ctx, key)
	if err != nil {
		return err
	}

	now := c.clock.Now()
	if found && now.Sub(fetchedAt) < c.ttl {
		c.log.Debug(config.MsgCacheHit,
			slog.String(config.LogKeyKey, key),
			slog.String(config.LogKeyFetchedAt, fetchedAt.Format(time.RFC3339)),
		)
		return json.Unmarshal([]byte(payload), out)
	}

	if found {
		c.log.Debug(config.MsgCacheStale, slog.String(config.LogKeyKey, key))
	} else {
		c.log.Debug(config.MsgCacheMiss, slog.String(config.LogKeyKey, key))
	}

	fresh, fetchErr := fetch(ctx)
	if fetchErr != nil {
		if found {
			c.log.Warn(config.MsgCacheFallback,
				slog.String(config.LogKeyKey, key),
				slog.String(config.LogKeyError, fetchErr.Error()),
			)
			return json.Unmarshal([]byte(payload), out)
		}
		return fetchErr
	}

	raw, err := json.Marshal(fresh)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrCacheWrite, err)
	}
	if err := c.write(ctx, key, string(raw), now); err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

func (c *Cache) read(ctx context.Context, key string) (payload string, fetchedAt time.Time, found bool, err error) {
	var stamp string
	row := c.db.QueryRowContext(ctx,
		`SELECT payload, fetched_at FROM catalog_entries WHERE key = ?`, key)
	switch err := row.Scan(&payload, &stamp); err {
	case nil:
	case sql.ErrNoRows:
		return "", time.Time{}, false, nil
	default:
		return "", time.Time{}, false, fmt.Errorf("%s: %w", config.ErrCacheQuery, err)
	}

	fetchedAt, err = time.Parse(time.RFC3339, stamp)
	if err != nil {
		// Unreadable timestamp, treat the row as missing.
		return "", time.Time{}, false, nil
	}
	return payload, fetchedAt, true, nil
}

func (c *Cache) write(ctx context.Context, key, payload string, now time.Time) error {
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO catalog_entries (key, payload, fetched_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, fetched_at = excluded.fetched_at`,
		key, payload, now.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrCacheWrite, err)
	}
	return nil
}
