package session

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

// memPrefStore implements PreferenceStore in memory for tests.
type memPrefStore struct {
	mu    sync.Mutex
	prefs map[int64]Preferences
	saves int
}

func newMemPrefStore() *memPrefStore {
	return &memPrefStore{prefs: make(map[int64]Preferences)}
}

func (m *memPrefStore) Load(userID int64) (Preferences, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.prefs[userID]
	return p, ok, nil
}

func (m *memPrefStore) Save(userID int64, p Preferences) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prefs[userID] = p
	m.saves++
	return nil
}

func TestStore_CurrentWithoutContext(t *testing.T) {
	store := NewStore(nil, "720p")

	_, generation, ok := store.Current(1)
	if ok {
		t.Error("expected no current context for a fresh session")
	}
	if generation != 0 {
		t.Errorf("expected generation 0, got %d", generation)
	}
	if phase := store.Phase(1); phase != PhaseIdle {
		t.Errorf("expected idle phase, got %s", phase)
	}
}

func TestStore_SetContext(t *testing.T) {
	store := NewStore(nil, "720p")

	gen := store.SetContext(1, VideoContext{VideoID: "abc", Title: "First"})
	if gen != 1 {
		t.Errorf("expected generation 1, got %d", gen)
	}

	vctx, generation, ok := store.Current(1)
	if !ok {
		t.Fatal("expected current context after SetContext")
	}
	if vctx.VideoID != "abc" || vctx.Title != "First" {
		t.Errorf("unexpected context %+v", vctx)
	}
	if generation != 1 {
		t.Errorf("expected generation 1, got %d", generation)
	}
	if phase := store.Phase(1); phase != PhaseAwaitingSelection {
		t.Errorf("expected awaiting_selection, got %s", phase)
	}
}

func TestStore_SetContextSupersedes(t *testing.T) {
	store := NewStore(nil, "720p")

	first := store.SetContext(1, VideoContext{VideoID: "old"})
	second := store.SetContext(1, VideoContext{VideoID: "new"})

	if second <= first {
		t.Errorf("replacing context must advance the generation: %d then %d", first, second)
	}

	vctx, generation, ok := store.Current(1)
	if !ok || vctx.VideoID != "new" {
		t.Errorf("expected new context, got %+v ok=%v", vctx, ok)
	}
	if generation != second {
		t.Errorf("Current generation = %d, want %d", generation, second)
	}

	// A job created under the first generation must detect supersession.
	if store.Generation(1) == first {
		t.Error("stale generation still current")
	}
}

func TestStore_ClearContext(t *testing.T) {
	store := NewStore(nil, "720p")

	gen := store.SetContext(1, VideoContext{VideoID: "abc"})
	store.ClearContext(1)

	if _, _, ok := store.Current(1); ok {
		t.Error("expected no context after ClearContext")
	}
	if store.Phase(1) != PhaseIdle {
		t.Errorf("expected idle after clear, got %s", store.Phase(1))
	}
	if store.Generation(1) <= gen {
		t.Error("clearing must advance the generation to invalidate in-flight jobs")
	}
}

func TestStore_ContextIsCopied(t *testing.T) {
	store := NewStore(nil, "720p")

	original := VideoContext{VideoID: "abc", Title: "Original"}
	store.SetContext(1, original)
	original.Title = "Mutated"

	vctx, _, _ := store.Current(1)
	if vctx.Title != "Original" {
		t.Errorf("stored context must not alias the caller's value, got %q", vctx.Title)
	}

	vctx.Title = "Mutated again"
	again, _, _ := store.Current(1)
	if again.Title != "Original" {
		t.Errorf("returned context must be a copy, got %q", again.Title)
	}
}

func TestStore_IdentitiesAreIndependent(t *testing.T) {
	store := NewStore(nil, "720p")

	store.SetContext(1, VideoContext{VideoID: "one"})
	store.SetContext(2, VideoContext{VideoID: "two"})
	store.ClearContext(1)

	vctx, _, ok := store.Current(2)
	if !ok || vctx.VideoID != "two" {
		t.Errorf("user 2's session affected by user 1's clear: %+v ok=%v", vctx, ok)
	}
}

func TestStore_DefaultPreferences(t *testing.T) {
	store := NewStore(nil, "720p")

	prefs := store.Preferences(1)
	if prefs.DefaultQuality != "720p" {
		t.Errorf("expected default quality 720p, got %q", prefs.DefaultQuality)
	}
	if prefs.AutoDownload || prefs.AsDocument {
		t.Errorf("expected toggles off by default, got %+v", prefs)
	}
}

func TestStore_LoadsPersistedPreferences(t *testing.T) {
	prefStore := newMemPrefStore()
	prefStore.prefs[1] = Preferences{DefaultQuality: "audio", AutoDownload: true}

	store := NewStore(prefStore, "720p")

	prefs := store.Preferences(1)
	if prefs.DefaultQuality != "audio" || !prefs.AutoDownload {
		t.Errorf("expected persisted preferences, got %+v", prefs)
	}

	// Unknown user falls back to defaults.
	other := store.Preferences(2)
	if other.DefaultQuality != "720p" {
		t.Errorf("expected default quality for unknown user, got %q", other.DefaultQuality)
	}
}

func TestStore_UpdatePreferencesWritesThrough(t *testing.T) {
	prefStore := newMemPrefStore()
	store := NewStore(prefStore, "720p")

	updated := store.UpdatePreferences(1, func(p *Preferences) {
		p.DefaultQuality = "360p"
		p.AsDocument = true
	})
	if updated.DefaultQuality != "360p" || !updated.AsDocument {
		t.Errorf("unexpected updated preferences %+v", updated)
	}

	saved, ok, _ := prefStore.Load(1)
	if !ok {
		t.Fatal("expected preferences to be persisted")
	}
	if saved.DefaultQuality != "360p" || !saved.AsDocument {
		t.Errorf("persisted preferences = %+v", saved)
	}
}

func TestStore_ConcurrentAccess(t *testing.T) {
	store := NewStore(nil, "720p")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			userID := int64(n % 5)
			store.SetContext(userID, VideoContext{VideoID: fmt.Sprintf("video-%d", n), Duration: time.Minute})
			store.Current(userID)
			store.Preferences(userID)
			store.Generation(userID)
		}(i)
	}
	wg.Wait()

	for userID := int64(0); userID < 5; userID++ {
		if _, _, ok := store.Current(userID); !ok {
			t.Errorf("user %d lost their context", userID)
		}
	}
}
