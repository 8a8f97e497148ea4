package session

import (
	"testing"
	"time"

	"github.com/assforge/ass/assutil"
	"github.com/assforge/ass/document"
	"github.com/assforge/ass/edit"
	"github.com/assforge/ass/history"
)

func TestCreateSwitchRemove(t *testing.T) {
	m := NewManager(Limits{}, nil)
	if _, err := m.Create("a", []byte("hello")); err != nil {
		t.Fatalf("create a: %v", err)
	}
	if _, err := m.Create("b", []byte("world")); err != nil {
		t.Fatalf("create b: %v", err)
	}
	if m.Active() != "b" {
		t.Fatalf("expected b active after create, got %q", m.Active())
	}
	if err := m.Switch("a"); err != nil {
		t.Fatalf("switch: %v", err)
	}
	if m.Active() != "a" {
		t.Fatalf("expected a active, got %q", m.Active())
	}
	if err := m.Remove("b"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if m.Count() != 1 {
		t.Fatalf("expected 1 session left, got %d", m.Count())
	}
}

func TestCreateDuplicateIDFails(t *testing.T) {
	m := NewManager(Limits{}, nil)
	if _, err := m.Create("a", nil); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := m.Create("a", nil); err == nil {
		t.Fatalf("expected duplicate id to fail")
	}
}

func TestMaxSessionsEnforced(t *testing.T) {
	m := NewManager(Limits{MaxSessions: 1}, nil)
	if _, err := m.Create("a", nil); err != nil {
		t.Fatalf("create a: %v", err)
	}
	_, err := m.Create("b", nil)
	if err == nil {
		t.Fatalf("expected session limit exceeded")
	}
	editorErr, ok := err.(*assutil.EditorError)
	if !ok || editorErr.Kind != assutil.ErrSessionLimitExceeded {
		t.Fatalf("expected *assutil.EditorError{Kind: ErrSessionLimitExceeded}, got %T (%v)", err, err)
	}
}

func TestWithDocumentMutTracksAccessAndOpCount(t *testing.T) {
	m := NewManager(Limits{}, nil)
	if _, err := m.Create("a", []byte("abc")); err != nil {
		t.Fatalf("create: %v", err)
	}

	err := m.WithDocumentMut("a", func(doc *document.Document, h *history.History) error {
		result, err := (edit.InsertText{Pos: 3, Text: "d"}).Execute(doc)
		if err != nil {
			return err
		}
		h.Push(result, "insert d", 3, 4)
		return nil
	})
	if err != nil {
		t.Fatalf("with_document_mut: %v", err)
	}

	var text string
	err = m.WithDocument("a", func(doc *document.Document) error {
		text = doc.Text()
		return nil
	})
	if err != nil {
		t.Fatalf("with_document: %v", err)
	}
	if text != "abcd" {
		t.Fatalf("got %q", text)
	}
}

func TestPerSessionMemoryCeilingRejectsOversizedEdit(t *testing.T) {
	m := NewManager(Limits{MaxMemoryPerSession: 4}, nil)
	if _, err := m.Create("a", []byte("ab")); err != nil {
		t.Fatalf("create: %v", err)
	}
	err := m.WithDocumentMut("a", func(doc *document.Document, h *history.History) error {
		_, err := (edit.InsertText{Pos: 2, Text: "cdef"}).Execute(doc)
		return err
	})
	if err == nil {
		t.Fatalf("expected per-session memory ceiling to trigger")
	}
	editorErr, ok := err.(*assutil.EditorError)
	if !ok || editorErr.Kind != assutil.ErrSessionLimitExceeded {
		t.Fatalf("expected *assutil.EditorError{Kind: ErrSessionLimitExceeded}, got %T (%v)", err, err)
	}
}

func TestCleanupStaleByLastAccessedAge(t *testing.T) {
	cur := time.Unix(1000, 0)
	clock := func() time.Time { return cur }
	m := NewManager(Limits{StaleAfter: 10 * time.Second}, clock)

	if _, err := m.Create("old", nil); err != nil {
		t.Fatalf("create old: %v", err)
	}
	cur = cur.Add(20 * time.Second)
	if _, err := m.Create("new", nil); err != nil {
		t.Fatalf("create new: %v", err)
	}

	removed := m.CleanupStale()
	if len(removed) != 1 || removed[0] != "old" {
		t.Fatalf("expected only 'old' removed, got %v", removed)
	}
	if m.Count() != 1 {
		t.Fatalf("expected 1 session left, got %d", m.Count())
	}
}

func TestCleanupStaleDisabledWhenZero(t *testing.T) {
	m := NewManager(Limits{}, nil)
	if _, err := m.Create("a", nil); err != nil {
		t.Fatalf("create: %v", err)
	}
	if removed := m.CleanupStale(); removed != nil {
		t.Fatalf("expected cleanup disabled, got %v", removed)
	}
}
