package session

import (
	"log"
	"sync"
)

// PreferenceStore persists user preferences across process restarts.
type PreferenceStore interface {
	Load(userID int64) (prefs Preferences, found bool, err error)
	Save(userID int64, prefs Preferences) error
}

type sessionState struct {
	mu         sync.Mutex
	phase      Phase
	context    *VideoContext
	generation int64
	prefs      Preferences
}

// Store maps user identities to their session state. The outer lock guards
// only the map; each session carries its own lock, so operations on
// different users never serialize against each other.
type Store struct {
	mu       sync.RWMutex
	sessions map[int64]*sessionState

	prefStore      PreferenceStore
	defaultQuality string
}

// NewStore creates a Store. prefStore may be nil, in which case preferences
// live only in memory. defaultQuality seeds new sessions.
func NewStore(prefStore PreferenceStore, defaultQuality string) *Store {
	return &Store{
		sessions:       make(map[int64]*sessionState),
		prefStore:      prefStore,
		defaultQuality: defaultQuality,
	}
}

func (s *Store) session(userID int64) *sessionState {
	s.mu.RLock()
	st, ok := s.sessions[userID]
	s.mu.RUnlock()
	if ok {
		return st
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.sessions[userID]; ok {
		return st
	}

	st = &sessionState{prefs: Preferences{DefaultQuality: s.defaultQuality}}
	if s.prefStore != nil {
		prefs, found, err := s.prefStore.Load(userID)
		if err != nil {
			log.Printf("[SESSION] Failed to load preferences for %d: %v", userID, err)
		} else if found {
			st.prefs = prefs
		}
	}
	s.sessions[userID] = st
	return st
}

// SetContext replaces the user's current video context, bumps the session
// generation and moves the session to AwaitingSelection. Any job created
// under an earlier generation is thereby superseded. Returns the new
// generation.
func (s *Store) SetContext(userID int64, ctx VideoContext) int64 {
	st := s.session(userID)
	st.mu.Lock()
	defer st.mu.Unlock()

	c := ctx
	st.context = &c
	st.generation++
	st.phase = PhaseAwaitingSelection
	return st.generation
}

// ClearContext drops the current context and returns the session to Idle.
// The generation still advances so in-flight jobs are invalidated.
func (s *Store) ClearContext(userID int64) {
	st := s.session(userID)
	st.mu.Lock()
	defer st.mu.Unlock()

	st.context = nil
	st.generation++
	st.phase = PhaseIdle
}

// Current returns a copy of the user's current context and its generation.
// ok is false when the session is idle.
func (s *Store) Current(userID int64) (ctx VideoContext, generation int64, ok bool) {
	st := s.session(userID)
	st.mu.Lock()
	defer st.mu.Unlock()

	if st.context == nil {
		return VideoContext{}, st.generation, false
	}
	return *st.context, st.generation, true
}

// Generation returns the user's current session generation.
func (s *Store) Generation(userID int64) int64 {
	st := s.session(userID)
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.generation
}

// SetPhase records the session's lifecycle phase.
func (s *Store) SetPhase(userID int64, phase Phase) {
	st := s.session(userID)
	st.mu.Lock()
	defer st.mu.Unlock()
	st.phase = phase
}

// Phase returns the session's lifecycle phase.
func (s *Store) Phase(userID int64) Phase {
	st := s.session(userID)
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.phase
}

// Preferences returns a copy of the user's preferences, creating the session
// (and loading persisted preferences) on first access.
func (s *Store) Preferences(userID int64) Preferences {
	st := s.session(userID)
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.prefs
}

// UpdatePreferences applies fn to the user's preferences and writes the
// result through to the preference store.
func (s *Store) UpdatePreferences(userID int64, fn func(*Preferences)) Preferences {
	st := s.session(userID)
	st.mu.Lock()
	fn(&st.prefs)
	prefs := st.prefs
	st.mu.Unlock()

	if s.prefStore != nil {
		if err := s.prefStore.Save(userID, prefs); err != nil {
			log.Printf("[SESSION] Failed to save preferences for %d: %v", userID, err)
		}
	}
	return prefs
}
