// Package session implements the session manager (C6.3): a registry of
// named documents, each paired with its own history, keyed by string id
// with one active session at a time. Locking uses a sync.RWMutex: readers
// take RLock, mutators take Lock, and no method calls another exported
// method while holding the lock.
package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/assforge/ass/assutil"
	"github.com/assforge/ass/document"
	"github.com/assforge/ass/history"
)

// Limits bounds a Manager's resource usage.
type Limits struct {
	MaxSessions         int
	MaxMemoryPerSession int
	MaxMemoryAggregate  int
	HistoryMaxEntries   int
	HistoryMaxMemory    int
	StaleAfter          time.Duration // 0 disables stale-session cleanup
}

// Session is one named (document, history) pair plus bookkeeping.
type Session struct {
	ID           string
	Doc          *document.Document
	History      *history.History
	OpCount      int
	LastAccessed time.Time
	createdAt    time.Time
}

// Manager keys sessions by string id. One session is "active" at a time;
// most callers use WithDocument/WithDocumentMut rather than touching Doc/History
// directly, so operation counts and access times stay accurate.
type Manager struct {
	mu       sync.RWMutex
	limits   Limits
	sessions map[string]*Session
	active   string
	now      func() time.Time
}

// NewManager builds an empty Manager. now is injectable for deterministic
// stale-cleanup tests; callers pass time.Now in production.
func NewManager(limits Limits, now func() time.Time) *Manager {
	if now == nil {
		now = time.Now
	}
	return &Manager{limits: limits, sessions: make(map[string]*Session), now: now}
}

func (m *Manager) aggregateMemoryLocked() int {
	total := 0
	for _, s := range m.sessions {
		total += s.Doc.LenBytes() + s.History.MemoryUsage()
	}
	return total
}

// Create makes a new session with the given id and initial document
// content, and makes it active. Returns an *assutil.EditorError with Kind
// ErrSessionLimitExceeded if the session-count or aggregate-memory ceiling
// would be violated.
func (m *Manager) Create(id string, initial []byte) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sessions[id]; exists {
		return nil, assutil.NewEditorError(assutil.ErrPreconditionFailed, fmt.Sprintf("session id %q already exists", id))
	}
	if m.limits.MaxSessions > 0 && len(m.sessions) >= m.limits.MaxSessions {
		return nil, assutil.NewEditorError(assutil.ErrSessionLimitExceeded, fmt.Sprintf("max sessions (%d) reached", m.limits.MaxSessions))
	}
	if m.limits.MaxMemoryPerSession > 0 && len(initial) > m.limits.MaxMemoryPerSession {
		return nil, assutil.NewEditorError(assutil.ErrSessionLimitExceeded, "initial content exceeds per-session memory ceiling")
	}
	if m.limits.MaxMemoryAggregate > 0 && m.aggregateMemoryLocked()+len(initial) > m.limits.MaxMemoryAggregate {
		return nil, assutil.NewEditorError(assutil.ErrSessionLimitExceeded, "aggregate memory ceiling reached")
	}

	now := m.now()
	s := &Session{
		ID:           id,
		Doc:          document.New(initial),
		History:      history.New(m.limits.HistoryMaxEntries, m.limits.HistoryMaxMemory),
		LastAccessed: now,
		createdAt:    now,
	}
	m.sessions[id] = s
	m.active = id
	return s, nil
}

// Switch makes id the active session. Returns an error if id is unknown.
func (m *Manager) Switch(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return assutil.NewEditorError(assutil.ErrDocumentNotFound, fmt.Sprintf("session id %q not found", id))
	}
	m.active = id
	return nil
}

// Active returns the currently active session id, or "" if none exists.
func (m *Manager) Active() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.active
}

// Remove deletes a session. If it was active, no session remains active.
func (m *Manager) Remove(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return assutil.NewEditorError(assutil.ErrDocumentNotFound, fmt.Sprintf("session id %q not found", id))
	}
	delete(m.sessions, id)
	if m.active == id {
		m.active = ""
	}
	return nil
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// WithDocument provides read-only closure-style access to a session's
// document, tracking last-accessed time but not the operation count
// (f must not mutate doc).
func (m *Manager) WithDocument(id string, f func(doc *document.Document) error) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if !ok {
		m.mu.Unlock()
		return assutil.NewEditorError(assutil.ErrDocumentNotFound, fmt.Sprintf("session id %q not found", id))
	}
	s.LastAccessed = m.now()
	doc := s.Doc
	m.mu.Unlock()

	return f(doc)
}

// WithDocumentMut provides closure-style mutating access to a session's
// document and history, tracking last-accessed time and operation count.
// f receives both the document and its session's history so a command's
// CommandResult can be pushed in the same closure it was produced in.
func (m *Manager) WithDocumentMut(id string, f func(doc *document.Document, h *history.History) error) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if !ok {
		m.mu.Unlock()
		return assutil.NewEditorError(assutil.ErrDocumentNotFound, fmt.Sprintf("session id %q not found", id))
	}
	s.LastAccessed = m.now()
	s.OpCount++
	doc, h := s.Doc, s.History
	m.mu.Unlock()

	if err := f(doc, h); err != nil {
		return err
	}

	if m.limits.MaxMemoryPerSession > 0 && doc.LenBytes() > m.limits.MaxMemoryPerSession {
		return assutil.NewEditorError(assutil.ErrSessionLimitExceeded, fmt.Sprintf("session %q exceeds per-session memory ceiling", id))
	}
	m.mu.RLock()
	agg := m.aggregateMemoryLocked()
	m.mu.RUnlock()
	if m.limits.MaxMemoryAggregate > 0 && agg > m.limits.MaxMemoryAggregate {
		return assutil.NewEditorError(assutil.ErrSessionLimitExceeded, "aggregate memory ceiling exceeded")
	}
	return nil
}

// CleanupStale removes every session whose LastAccessed age exceeds
// Limits.StaleAfter, and returns the removed ids. A StaleAfter of zero
// disables cleanup (returns nil without scanning).
func (m *Manager) CleanupStale() []string {
	if m.limits.StaleAfter <= 0 {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	var removed []string
	for id, s := range m.sessions {
		if now.Sub(s.LastAccessed) > m.limits.StaleAfter {
			removed = append(removed, id)
		}
	}
	for _, id := range removed {
		delete(m.sessions, id)
		if m.active == id {
			m.active = ""
		}
	}
	return removed
}
