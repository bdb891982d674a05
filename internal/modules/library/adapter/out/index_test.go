package out_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	libraryout "studyplanner/internal/modules/library/adapter/out"
	"studyplanner/internal/modules/library/domain"
	libraryport "studyplanner/internal/modules/library/port/out"
	apperrors "studyplanner/internal/platform/errors"
	"studyplanner/internal/platform/kvstore"
	"studyplanner/internal/platform/notify"
	"studyplanner/internal/platform/sqlitedb"
)

func TestEmbeddedCatalogLoads(t *testing.T) {
	t.Parallel()
	resources, err := libraryout.NewEmbeddedCatalog().Load(context.Background())
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	kinds := map[domain.Kind]int{}
	seen := map[string]bool{}
	for _, r := range resources {
		kinds[r.Kind]++
		if seen[r.ID] {
			t.Fatalf("duplicate catalog id %s", r.ID)
		}
		seen[r.ID] = true
	}
	if kinds[domain.KindTutorial] == 0 || kinds[domain.KindChannel] == 0 || kinds[domain.KindVideo] == 0 {
		t.Fatalf("catalog should carry tutorials, channels and videos: %v", kinds)
	}
	for _, r := range resources {
		if r.Kind == domain.KindVideo && r.URL != domain.WatchURL(r.YouTubeID) {
			t.Fatalf("video url should point at the watch page: %+v", r)
		}
	}
}

func newIndex(t *testing.T) libraryport.ResourceIndex {
	t.Helper()
	db, err := sqlitedb.Open(filepath.Join(t.TempDir(), "studyplanner.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	index, err := libraryout.NewSQLiteResourceIndex(context.Background(), db)
	if err != nil {
		t.Fatalf("new index: %v", err)
	}
	return index
}

func TestSQLiteIndexSearchAndTags(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	index := newIndex(t)
	fixtures := []domain.Resource{
		{ID: "a", Title: "Docker basics", URL: "https://a", Source: "Docs", Kind: domain.KindTutorial, Tags: []string{"Docker", "devops"}},
		{ID: "b", Title: "CSS grid", URL: "https://b", Source: "Blog", Kind: domain.KindArticle, Tags: []string{"css"}, Description: "100% layout"},
		{ID: "c", Title: "awesome-docker", URL: "https://c", Source: "GitHub", Kind: domain.KindRepository, Tags: []string{"github"}},
	}
	for _, r := range fixtures {
		if err := index.Upsert(ctx, r); err != nil {
			t.Fatalf("upsert %s: %v", r.ID, err)
		}
	}

	got, err := index.Search(ctx, "docker", "", "", 0)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 2 || got[0].ID != "c" || got[1].ID != "a" {
		t.Fatalf("expected title-ordered docker matches, got %+v", got)
	}
	byTag, err := index.Search(ctx, "", "DOCKER", "", 0)
	if err != nil || len(byTag) != 1 || byTag[0].ID != "a" {
		t.Fatalf("tag filter should be case-insensitive: %+v %v", byTag, err)
	}
	byKind, err := index.Search(ctx, "", "", domain.KindArticle, 0)
	if err != nil || len(byKind) != 1 || byKind[0].ID != "b" {
		t.Fatalf("kind filter failed: %+v %v", byKind, err)
	}
	percent, err := index.Search(ctx, "100%", "", "", 0)
	if err != nil || len(percent) != 1 {
		t.Fatalf("like wildcards should be escaped: %+v %v", percent, err)
	}
	limited, err := index.Search(ctx, "", "", "", 1)
	if err != nil || len(limited) != 1 {
		t.Fatalf("limit not applied: %+v %v", limited, err)
	}

	tags, err := index.Tags(ctx)
	if err != nil {
		t.Fatalf("tags: %v", err)
	}
	want := []string{"css", "devops", "docker", "github"}
	if len(tags) != len(want) {
		t.Fatalf("expected %v, got %v", want, tags)
	}
	for i := range want {
		if tags[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, tags)
		}
	}
}

func TestSQLiteIndexUpsertReplacesTags(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	index := newIndex(t)
	r := domain.Resource{ID: "x", Title: "First", URL: "https://x", Kind: domain.KindTutorial, Tags: []string{"old"}}
	if err := index.Upsert(ctx, r); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	r.Title, r.Tags = "Second", []string{"new"}
	if err := index.Upsert(ctx, r); err != nil {
		t.Fatalf("upsert again: %v", err)
	}
	got, err := index.Get(ctx, "x")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "Second" || len(got.Tags) != 1 || got.Tags[0] != "new" {
		t.Fatalf("upsert did not replace: %+v", got)
	}
	if old, _ := index.Search(ctx, "", "old", "", 0); len(old) != 0 {
		t.Fatalf("stale tag still indexed")
	}
	if err := index.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if _, err := index.Get(ctx, "x"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found after reset, got %v", err)
	}
}

func TestKVWatchlistStoreRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	kv := kvstore.NewMemoryStore(0)
	store := libraryout.NewKVWatchlistStore(kvstore.NewGuarded(kv, notify.Discard{}, nil))
	items, err := store.Load(ctx)
	if err != nil || len(items) != 0 {
		t.Fatalf("empty watchlist expected: %v %v", items, err)
	}
	want := []domain.WatchItem{{ID: "xyz", Title: "Intro", URL: "https://www.youtube.com/watch?v=xyz", Thumb: "t"}}
	if err := store.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	raw, err := kv.Get(ctx, kvstore.KeyWatchlist)
	if err != nil {
		t.Fatalf("raw get: %v", err)
	}
	if raw != `[{"id":"xyz","title":"Intro","url":"https://www.youtube.com/watch?v=xyz","thumb":"t"}]` {
		t.Fatalf("unexpected stored json: %s", raw)
	}
	if err := kv.Set(ctx, kvstore.KeyWatchlist, "{"); err != nil {
		t.Fatalf("raw set: %v", err)
	}
	if _, err := store.Load(ctx); !errors.Is(err, apperrors.ErrMalformedData) {
		t.Fatalf("expected malformed data, got %v", err)
	}
}
