package document

import "testing"

func TestInsertAtStartAndEnd(t *testing.T) {
	d := New([]byte("Hello"))
	if _, err := d.Insert(0, ">>"); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if got := d.Text(); got != ">>Hello" {
		t.Errorf("Text() = %q, want %q", got, ">>Hello")
	}
	if _, err := d.Insert(d.LenBytes(), "<<"); err != nil {
		t.Fatalf("Insert at end: %v", err)
	}
	if got := d.Text(); got != ">>Hello<<" {
		t.Errorf("Text() = %q, want %q", got, ">>Hello<<")
	}
	if d.Generation() != 2 {
		t.Errorf("Generation() = %d, want 2", d.Generation())
	}
}

func TestInsertRejectsUTF8BoundaryViolation(t *testing.T) {
	d := New([]byte("héllo")) // é is 2 bytes, starting at offset 1
	before := d.Text()
	if _, err := d.Insert(2, "X"); err == nil {
		t.Fatal("expected an error inserting inside a UTF-8 sequence")
	}
	if d.Text() != before {
		t.Errorf("document mutated after a failed insert: got %q, want %q", d.Text(), before)
	}
	if d.Generation() != 0 {
		t.Errorf("generation advanced on a failed insert: got %d", d.Generation())
	}
}

func TestDeleteAtomicOnOutOfBounds(t *testing.T) {
	d := New([]byte("Start"))
	before := d.Text()
	if _, err := d.Delete(Range{Start: 2, End: 1000}); err == nil {
		t.Fatal("expected an out-of-bounds error")
	}
	if d.Text() != before {
		t.Errorf("document mutated after a failed delete: got %q, want %q", d.Text(), before)
	}
}

func TestReplaceSwapsInvertedRange(t *testing.T) {
	d := New([]byte("abcdef"))
	mut, err := d.Replace(Range{Start: 4, End: 1}, "XY")
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if got := d.Text(); got != "aXYef" {
		t.Errorf("Text() = %q, want %q", got, "aXYef")
	}
	if mut.OldText != "bcd" {
		t.Errorf("Mutation.OldText = %q, want %q", mut.OldText, "bcd")
	}
}

func TestTextRange(t *testing.T) {
	d := New([]byte("0123456789"))
	got, err := d.TextRange(Range{Start: 3, End: 6})
	if err != nil {
		t.Fatalf("TextRange: %v", err)
	}
	if got != "345" {
		t.Errorf("TextRange = %q, want %q", got, "345")
	}
}

func TestLenLinesAndPositionToLineCol(t *testing.T) {
	d := New([]byte("one\ntwo\nthree"))
	if got := d.LenLines(); got != 3 {
		t.Errorf("LenLines() = %d, want 3", got)
	}
	line, col := d.PositionToLineCol(5) // 't' of "two"
	if line != 1 || col != 1 {
		t.Errorf("PositionToLineCol(5) = (%d,%d), want (1,1)", line, col)
	}
	pos := d.LineColToPosition(2, 2) // "three"[2] == 'r'
	if got, _ := d.TextRange(Range{Start: pos, End: pos + 1}); got != "r" {
		t.Errorf("LineColToPosition(2,2) -> byte %q, want %q", got, "r")
	}
}

func TestLineIndexInvalidatedByEdit(t *testing.T) {
	d := New([]byte("abc"))
	if got := d.LenLines(); got != 1 {
		t.Fatalf("LenLines() = %d, want 1", got)
	}
	if _, err := d.Insert(1, "\n\n"); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if got := d.LenLines(); got != 3 {
		t.Errorf("LenLines() after insert = %d, want 3", got)
	}
}
