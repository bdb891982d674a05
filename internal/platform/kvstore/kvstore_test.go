package kvstore_test

import (
	"bytes"
	"context"
	"errors"
	"log"
	"path/filepath"
	"strings"
	"testing"

	apperrors "studyplanner/internal/platform/errors"
	"studyplanner/internal/platform/kvstore"
	"studyplanner/internal/platform/notify"
	"studyplanner/internal/platform/sqlitedb"
)

func newSQLiteStore(t *testing.T, quota int64) *kvstore.SQLiteStore {
	t.Helper()
	db, err := sqlitedb.Open(filepath.Join(t.TempDir(), "planner.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	store, err := kvstore.NewSQLiteStore(context.Background(), db, quota)
	if err != nil {
		t.Fatalf("new sqlite store: %v", err)
	}
	return store
}

func TestStoresShareContract(t *testing.T) {
	t.Parallel()
	stores := map[string]kvstore.Store{
		"memory": kvstore.NewMemoryStore(0),
		"sqlite": newSQLiteStore(t, 0),
	}
	for name, store := range stores {
		ctx := context.Background()
		if _, err := store.Get(ctx, "missing"); !errors.Is(err, apperrors.ErrNotFound) {
			t.Fatalf("%s: expected not found, got %v", name, err)
		}
		if err := store.Set(ctx, "k", "v1"); err != nil {
			t.Fatalf("%s: set: %v", name, err)
		}
		if err := store.Set(ctx, "k", "v2"); err != nil {
			t.Fatalf("%s: overwrite: %v", name, err)
		}
		got, err := store.Get(ctx, "k")
		if err != nil || got != "v2" {
			t.Fatalf("%s: expected v2, got %q (%v)", name, got, err)
		}
		if err := store.Delete(ctx, "k"); err != nil {
			t.Fatalf("%s: delete: %v", name, err)
		}
		if _, err := store.Get(ctx, "k"); !errors.Is(err, apperrors.ErrNotFound) {
			t.Fatalf("%s: expected not found after delete, got %v", name, err)
		}
	}
}

func TestQuotaCountsOtherKeysAndReplacement(t *testing.T) {
	t.Parallel()
	stores := map[string]kvstore.Store{
		"memory": kvstore.NewMemoryStore(20),
		"sqlite": newSQLiteStore(t, 20),
	}
	for name, store := range stores {
		ctx := context.Background()
		if err := store.Set(ctx, "a", "123456789"); err != nil { // 10 bytes
			t.Fatalf("%s: first write: %v", name, err)
		}
		if err := store.Set(ctx, "a", "1234567890123456789"); err != nil { // replacing: 20 bytes
			t.Fatalf("%s: replacement within quota: %v", name, err)
		}
		if err := store.Set(ctx, "b", "x"); !errors.Is(err, apperrors.ErrQuotaExceeded) {
			t.Fatalf("%s: expected quota error, got %v", name, err)
		}
		got, _ := store.Get(ctx, "a")
		if got != "1234567890123456789" {
			t.Fatalf("%s: failed write must not disturb existing data, got %q", name, got)
		}
	}
}

func TestGuardedReportsQuotaWithoutFailing(t *testing.T) {
	t.Parallel()
	var messages []string
	logBuf := &bytes.Buffer{}
	guarded := kvstore.NewGuarded(
		kvstore.NewMemoryStore(8),
		notify.Func(func(level notify.Level, m string) { messages = append(messages, string(level)+":"+m) }),
		log.New(logBuf, "", 0),
	)
	ctx := context.Background()
	if !guarded.SetItem(ctx, "k", "small") {
		t.Fatalf("small write should succeed")
	}
	if guarded.SetItem(ctx, "k", "far too large for quota") {
		t.Fatalf("oversized write should report false")
	}
	if len(messages) != 1 || !strings.HasPrefix(messages[0], "error:Storage quota exceeded") {
		t.Fatalf("expected quota notification, got %v", messages)
	}
	if !strings.Contains(logBuf.String(), "storage error") {
		t.Fatalf("expected logged cause, got %q", logBuf.String())
	}
	value, ok := guarded.GetItem(ctx, "k")
	if !ok || value != "small" {
		t.Fatalf("expected previous value to survive, got %q %v", value, ok)
	}
	if _, ok := guarded.GetItem(ctx, "missing"); ok {
		t.Fatalf("missing key should report false")
	}
}

type brokenStore struct{}

func (brokenStore) Get(context.Context, string) (string, error) { return "", errors.New("disk gone") }
func (brokenStore) Set(context.Context, string, string) error  { return errors.New("disk gone") }
func (brokenStore) Delete(context.Context, string) error       { return errors.New("disk gone") }

func TestGuardedSwallowsReadFailures(t *testing.T) {
	t.Parallel()
	notified := 0
	logBuf := &bytes.Buffer{}
	guarded := kvstore.NewGuarded(brokenStore{}, notify.Func(func(notify.Level, string) { notified++ }), log.New(logBuf, "", 0))
	if _, ok := guarded.GetItem(context.Background(), "k"); ok {
		t.Fatalf("read failure should report false")
	}
	if guarded.SetItem(context.Background(), "k", "v") {
		t.Fatalf("write failure should report false")
	}
	if guarded.RemoveItem(context.Background(), "k") {
		t.Fatalf("delete failure should report false")
	}
	if notified != 0 {
		t.Fatalf("non-quota failures are logged, not notified; got %d notifications", notified)
	}
	if !strings.Contains(logBuf.String(), "storage read error") {
		t.Fatalf("expected read failure to be logged, got %q", logBuf.String())
	}
}
