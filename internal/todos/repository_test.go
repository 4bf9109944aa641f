package todos

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/sandeepkv93/tasklist/internal/model"
	"github.com/sandeepkv93/tasklist/internal/storage"
)

func fixedClock() func() time.Time {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return now }
}

func setupRepo(t *testing.T) (*Repository, *storage.Store) {
	t.Helper()
	store := storage.NewStore(storage.NewMemoryRepository(), nil)
	return New(store, store.Load(context.Background()), WithClock(fixedClock())), store
}

func assertPersisted(t *testing.T, repo *Repository, store *storage.Store) {
	t.Helper()
	got := store.Load(context.Background())
	if !reflect.DeepEqual(got, repo.Tasks()) {
		t.Fatalf("persisted collection differs from memory:\npersisted %#v\nmemory    %#v", got, repo.Tasks())
	}
}

func TestPersistedStateFollowsEveryMutation(t *testing.T) {
	repo, store := setupRepo(t)
	ctx := context.Background()

	a, _, err := repo.Add(ctx, "  write report  ")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	assertPersisted(t, repo, store)
	if a.Text != "write report" || a.Done {
		t.Fatalf("unexpected added task: %#v", a)
	}

	b, _, _ := repo.Add(ctx, "call bank")
	assertPersisted(t, repo, store)

	if _, _, err := repo.Toggle(ctx, a.ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	assertPersisted(t, repo, store)

	if ok, err := repo.Remove(ctx, b.ID); err != nil || !ok {
		t.Fatalf("remove: ok=%v err=%v", ok, err)
	}
	assertPersisted(t, repo, store)
	if repo.Len() != 1 {
		t.Fatalf("expected 1 task, got %d", repo.Len())
	}
}

func TestAddWhitespaceNeverChangesSize(t *testing.T) {
	repo, _ := setupRepo(t)
	for _, in := range []string{"", " ", "\t\n", "     "} {
		_, added, err := repo.Add(context.Background(), in)
		if err != nil || added {
			t.Fatalf("expected blank %q rejected, added=%v err=%v", in, added, err)
		}
	}
	if repo.Len() != 0 {
		t.Fatalf("expected empty collection, got %d", repo.Len())
	}
}

func TestAddIssuesDistinctMonotonicIDsOnFrozenClock(t *testing.T) {
	repo, _ := setupRepo(t)
	seen := make(map[int64]bool)
	var last int64
	for i := 0; i < 50; i++ {
		task, _, err := repo.Add(context.Background(), "item")
		if err != nil {
			t.Fatalf("add: %v", err)
		}
		if seen[task.ID] {
			t.Fatalf("duplicate id %d", task.ID)
		}
		if task.ID <= last {
			t.Fatalf("id %d not greater than previous %d", task.ID, last)
		}
		seen[task.ID] = true
		last = task.ID
	}
}

func TestAddAfterHydrationNeverReusesStoredID(t *testing.T) {
	store := storage.NewStore(storage.NewMemoryRepository(), nil)
	future := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
	repo := New(store, []model.Task{{ID: future, Text: "from the future"}}, WithClock(fixedClock()))
	task, _, _ := repo.Add(context.Background(), "now")
	if task.ID != future+1 {
		t.Fatalf("expected id after hydrated max, got %d", task.ID)
	}
}

func TestToggleTwiceIsIdentity(t *testing.T) {
	repo, store := setupRepo(t)
	ctx := context.Background()
	task, _, _ := repo.Add(ctx, "stretch")
	snapshot := store.Load(ctx)

	first, ok, _ := repo.Toggle(ctx, task.ID)
	if !ok || !first.Done {
		t.Fatalf("expected done after first toggle: %#v", first)
	}
	second, ok, _ := repo.Toggle(ctx, task.ID)
	if !ok || second.Done {
		t.Fatalf("expected active after second toggle: %#v", second)
	}
	if !reflect.DeepEqual(store.Load(ctx), snapshot) {
		t.Fatalf("expected persisted state unchanged after toggle pair")
	}
}

func TestUnknownIDsAreNoOps(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()
	if _, ok, err := repo.Toggle(ctx, 42); ok || err != nil {
		t.Fatalf("toggle unknown: ok=%v err=%v", ok, err)
	}
	if ok, err := repo.Remove(ctx, 42); ok || err != nil {
		t.Fatalf("remove unknown: ok=%v err=%v", ok, err)
	}
	if ids, err := repo.ClearCompleted(ctx); ids != nil || err != nil {
		t.Fatalf("clear with nothing done: ids=%v err=%v", ids, err)
	}
}

func TestClearCompletedKeepsActiveOrder(t *testing.T) {
	repo, store := setupRepo(t)
	ctx := context.Background()
	var ids []int64
	for _, text := range []string{"a", "b", "c", "d", "e"} {
		task, _, _ := repo.Add(ctx, text)
		ids = append(ids, task.ID)
	}
	_, _, _ = repo.Toggle(ctx, ids[1])
	_, _, _ = repo.Toggle(ctx, ids[3])

	removed, err := repo.ClearCompleted(ctx)
	if err != nil {
		t.Fatalf("clear completed: %v", err)
	}
	if !reflect.DeepEqual(removed, []int64{ids[1], ids[3]}) {
		t.Fatalf("unexpected removed ids: %v", removed)
	}
	var texts []string
	for _, task := range repo.Tasks() {
		texts = append(texts, task.Text)
	}
	if !reflect.DeepEqual(texts, []string{"a", "c", "e"}) {
		t.Fatalf("unexpected survivors: %v", texts)
	}
	if repo.HasCompleted() {
		t.Fatal("expected no completed tasks left")
	}
	assertPersisted(t, repo, store)
}

type failingSaver struct{ err error }

func (f failingSaver) Save(context.Context, []model.Task) error { return f.err }

func TestSaveFailureLeavesMemoryUnchanged(t *testing.T) {
	boom := errors.New("disk full")
	repo := New(failingSaver{err: boom}, []model.Task{{ID: 1, Text: "keep"}}, WithClock(fixedClock()))
	ctx := context.Background()

	if _, _, err := repo.Add(ctx, "new"); !errors.Is(err, boom) {
		t.Fatalf("expected save error from add, got %v", err)
	}
	if _, _, err := repo.Toggle(ctx, 1); !errors.Is(err, boom) {
		t.Fatalf("expected save error from toggle, got %v", err)
	}
	if _, err := repo.Remove(ctx, 1); !errors.Is(err, boom) {
		t.Fatalf("expected save error from remove, got %v", err)
	}
	if got := repo.Tasks(); len(got) != 1 || got[0].Done {
		t.Fatalf("expected untouched collection, got %#v", got)
	}
}
