package repository_test

import (
	"testing"

	"github.com/artur/tubefetch/internal/database/repository"
	"github.com/artur/tubefetch/internal/session"
)

func TestPreferenceRepository_LoadMissing(t *testing.T) {
	db := setupTestDB(t)

	repo := repository.NewPreferenceRepository(db.DB)

	_, found, err := repo.Load(42)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if found {
		t.Error("Expected no preferences for unknown user")
	}
}

func TestPreferenceRepository_SaveAndLoad(t *testing.T) {
	db := setupTestDB(t)

	repo := repository.NewPreferenceRepository(db.DB)

	prefs := session.Preferences{
		DefaultQuality: "audio",
		AutoDownload:   true,
		AsDocument:     false,
	}
	if err := repo.Save(42, prefs); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, found, err := repo.Load(42)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !found {
		t.Fatal("Expected preferences to be found")
	}
	if loaded != prefs {
		t.Errorf("Loaded %+v, want %+v", loaded, prefs)
	}
}

func TestPreferenceRepository_SaveOverwrites(t *testing.T) {
	db := setupTestDB(t)

	repo := repository.NewPreferenceRepository(db.DB)

	repo.Save(42, session.Preferences{DefaultQuality: "720p"})
	repo.Save(42, session.Preferences{DefaultQuality: "360p", AsDocument: true})

	loaded, found, err := repo.Load(42)
	if err != nil || !found {
		t.Fatalf("Load failed: %v found=%v", err, found)
	}
	if loaded.DefaultQuality != "360p" || !loaded.AsDocument {
		t.Errorf("Expected overwritten preferences, got %+v", loaded)
	}
}
