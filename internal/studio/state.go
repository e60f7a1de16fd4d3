package studio

import (
	"sync"
	"time"
)

type Phase string

const (
	PhaseConfiguring Phase = "configuring"
	PhasePreviewing  Phase = "previewing"
	PhaseError       Phase = "error"
)

// Session is one user's wizard state in one chat.
type Session struct {
	Form       ProductFormData
	Outputs    []PromptOutput
	SelectedID string

	Phase     Phase
	LastError string

	MessageID     int
	AwaitingName  bool
	AwaitingPhoto bool
	Menu          string // "main" | "category" | "style" | "light" | "aspect" | "outputs"

	UpdatedAt time.Time
}

// Selected returns the output the user picked last, if it still exists.
func (s Session) Selected() (PromptOutput, bool) {
	if s.SelectedID == "" {
		return PromptOutput{}, false
	}
	return FindOutput(s.Outputs, s.SelectedID)
}

// InvalidateOutputs drops generated prompts after the form changed.
func (s *Session) InvalidateOutputs() {
	s.Outputs = nil
	s.SelectedID = ""
	if s.Phase == PhaseError {
		s.Phase = PhaseConfiguring
		s.LastError = ""
	}
}

func (s Session) clone() Session {
	s.Form = s.Form.Clone()
	if s.Outputs != nil {
		s.Outputs = append([]PromptOutput(nil), s.Outputs...)
	}
	return s
}

type Store struct {
	mu sync.Mutex
	m  map[sessionKey]*Session
}

type sessionKey struct {
	ChatID int64
	UserID int64
}

func NewStore() *Store {
	return &Store{m: make(map[sessionKey]*Session)}
}

func (s *Store) Get(chatID, userID int64) Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.getOrCreateLocked(chatID, userID).clone()
}

// Update applies fn under the store lock and returns a snapshot of the
// result. fn must not call back into the store.
func (s *Store) Update(chatID, userID int64, fn func(*Session)) Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.getOrCreateLocked(chatID, userID)
	if fn != nil {
		fn(st)
	}
	st.UpdatedAt = time.Now()
	return st.clone()
}

func (s *Store) Reset(chatID, userID int64) Session {
	return s.Update(chatID, userID, func(st *Session) {
		*st = defaultSession()
	})
}

// Len reports how many sessions are held.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.m)
}

// Prune drops sessions untouched for longer than idle and reports how many
// were removed.
func (s *Store) Prune(idle time.Duration) int {
	if idle <= 0 {
		return 0
	}
	cutoff := time.Now().Add(-idle)

	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for key, st := range s.m {
		if st.UpdatedAt.Before(cutoff) {
			delete(s.m, key)
			n++
		}
	}
	return n
}

func (s *Store) getOrCreateLocked(chatID, userID int64) *Session {
	key := sessionKey{ChatID: chatID, UserID: userID}
	if st, ok := s.m[key]; ok {
		return st
	}
	st := defaultSession()
	s.m[key] = &st
	return s.m[key]
}

func defaultSession() Session {
	return Session{
		Form:      DefaultForm(),
		Phase:     PhaseConfiguring,
		Menu:      "main",
		UpdatedAt: time.Now(),
	}
}
