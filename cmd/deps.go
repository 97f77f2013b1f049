package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/redis/go-redis/v9"

	"github.com/deliverly/ordertray/internal/alerting"
	"github.com/deliverly/ordertray/internal/cache"
	"github.com/deliverly/ordertray/internal/config"
	"github.com/deliverly/ordertray/internal/domain"
	"github.com/deliverly/ordertray/internal/errors"
	"github.com/deliverly/ordertray/internal/storage/sqlite"
	"github.com/deliverly/ordertray/internal/store"
)

// console reports command outcomes on the terminal.
var console errors.ErrorHandler = errors.NewDefaultCLIHandler()

// openSnapshotStore opens the persisted inbox. The caller owns the storage
// handle and must close it.
func openSnapshotStore() (*store.Store, *sqlite.SnapshotStorage, error) {
	dbPath := config.Get("db_path", "")
	if dbPath == "" {
		return nil, nil, fmt.Errorf("db_path is not configured")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), config.FileModeDir); err != nil {
		return nil, nil, fmt.Errorf("create state directory: %w", err)
	}
	storage, err := sqlite.NewSnapshotStorage(dbPath)
	if err != nil {
		return nil, nil, err
	}
	return store.New(store.WithPersister(storage)), storage, nil
}

// viewerFromConfig builds the authenticated viewer context.
func viewerFromConfig() (domain.Viewer, error) {
	id := config.Get("viewer_id", "")
	if id == "" {
		return domain.Viewer{}, fmt.Errorf("viewer_id is not configured; set ORDERTRAY_VIEWER_ID or add it to the config file")
	}
	role, err := domain.ParseRole(config.Get("viewer_role", "vendor"))
	if err != nil {
		return domain.Viewer{}, err
	}
	return domain.Viewer{ID: id, Role: role}, nil
}

// newRedisClient dials the configured redis instance.
func newRedisClient() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     config.Get("redis_addr", "127.0.0.1:6379"),
		Password: config.Get("redis_password", ""),
		DB:       config.GetInt("redis_db", 0),
	})
}

// newOrderCache selects the order-cache backend.
func newOrderCache(rdb *redis.Client) cache.OrderCache {
	if config.Get("cache_backend", "memory") == "redis" {
		return cache.NewRedisCache(rdb, config.Get("channel_prefix", "ordertray"))
	}
	return cache.NewMemoryCache()
}

// alertPresenter surfaces toasts through the alerter. Hide is a no-op for
// line-oriented output.
type alertPresenter struct {
	alerter alerting.Alerter
}

func (p alertPresenter) Show(n domain.Notification) {
	p.alerter.Show(n.Title, n.Message)
}

func (p alertPresenter) Hide(id string) {}
