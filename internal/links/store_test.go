package links

import (
	"context"
	"errors"
	"testing"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/goliatone/go-skillmd/pkg/testsupport"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if _, err := store.Get(ctx, "https://docs.acme.dev/docs/x.md"); err == nil {
		t.Fatal("expected NotFoundError for unknown URL")
	} else {
		var notFound *NotFoundError
		if !errors.As(err, &notFound) {
			t.Fatalf("expected NotFoundError, got %v", err)
		}
	}

	probe := &LinkProbe{
		CanonicalURL: "https://docs.acme.dev/docs/x.md",
		Reachable:    true,
		StatusCode:   200,
		CheckedAt:    time.Now(),
	}
	if _, err := store.Put(ctx, probe); err != nil {
		t.Fatalf("Put() unexpected error: %v", err)
	}

	got, err := store.Get(ctx, probe.CanonicalURL)
	if err != nil {
		t.Fatalf("Get() unexpected error: %v", err)
	}
	if !got.Reachable || got.StatusCode != 200 {
		t.Fatalf("unexpected record: %+v", got)
	}

	// Returned records are copies; mutating one must not change the store.
	got.Reachable = false
	again, _ := store.Get(ctx, probe.CanonicalURL)
	if !again.Reachable {
		t.Fatal("store must hand out independent copies")
	}
}

func TestBunStore(t *testing.T) {
	ctx := context.Background()

	sqldb, err := testsupport.NewSQLiteMemoryDB()
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = sqldb.Close() })

	db := bun.NewDB(sqldb, sqlitedialect.New())
	if _, err := db.NewCreateTable().Model((*LinkProbe)(nil)).IfNotExists().Exec(ctx); err != nil {
		t.Fatalf("create table: %v", err)
	}

	store := NewBunStore(db)

	record := &LinkProbe{
		CanonicalURL: "https://docs.acme.dev/docs/deploy.md",
		Reachable:    false,
		StatusCode:   404,
		CheckedAt:    time.Now(),
	}
	created, err := store.Put(ctx, record)
	if err != nil {
		t.Fatalf("Put() unexpected error: %v", err)
	}
	if created.ID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Fatal("Put() must assign a deterministic ID")
	}

	got, err := store.Get(ctx, record.CanonicalURL)
	if err != nil {
		t.Fatalf("Get() unexpected error: %v", err)
	}
	if got.Reachable || got.StatusCode != 404 {
		t.Fatalf("unexpected record: %+v", got)
	}

	// A later probe of the same URL updates the existing row.
	record.Reachable = true
	record.StatusCode = 200
	if _, err := store.Put(ctx, record); err != nil {
		t.Fatalf("Put() update unexpected error: %v", err)
	}
	updated, err := store.Get(ctx, record.CanonicalURL)
	if err != nil {
		t.Fatalf("Get() after update unexpected error: %v", err)
	}
	if !updated.Reachable || updated.StatusCode != 200 {
		t.Fatalf("expected updated record, got %+v", updated)
	}
	if updated.ID != created.ID {
		t.Fatalf("update must keep the deterministic ID: %s vs %s", updated.ID, created.ID)
	}
}

func TestBunStoreWithCacheServesReadsFromCache(t *testing.T) {
	ctx := context.Background()

	sqldb, err := testsupport.NewSQLiteMemoryDB()
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = sqldb.Close() })

	db := bun.NewDB(sqldb, sqlitedialect.New())
	if _, err := db.NewCreateTable().Model((*LinkProbe)(nil)).IfNotExists().Exec(ctx); err != nil {
		t.Fatalf("create table: %v", err)
	}

	cacheCfg := repocache.DefaultConfig()
	cacheCfg.TTL = time.Minute
	cacheSvc, err := repocache.NewCacheService(cacheCfg)
	if err != nil {
		t.Fatalf("cache service: %v", err)
	}
	store := NewBunStoreWithCache(db, cacheSvc, repocache.NewDefaultKeySerializer())

	record := &LinkProbe{
		CanonicalURL: "https://docs.acme.dev/docs/cached.md",
		Reachable:    true,
		StatusCode:   200,
		CheckedAt:    time.Now(),
	}
	if _, err := store.Put(ctx, record); err != nil {
		t.Fatalf("Put() unexpected error: %v", err)
	}

	first, err := store.Get(ctx, record.CanonicalURL)
	if err != nil {
		t.Fatalf("first get: %v", err)
	}
	if !first.Reachable || first.StatusCode != 200 {
		t.Fatalf("unexpected record: %+v", first)
	}

	cached, err := store.Get(ctx, record.CanonicalURL)
	if err != nil {
		t.Fatalf("cached get: %v", err)
	}
	if cached.CanonicalURL != record.CanonicalURL || !cached.Reachable {
		t.Fatalf("unexpected cached record: %+v", cached)
	}
}
