package candidatelist

import (
	"testing"

	"github.com/naoya-sato/henkan/pkg/transliteration"
)

func TestMoveNextWrapsWithinPage(t *testing.T) {
	l := New(true)
	for i := 0; i < 3; i++ {
		l.AddCandidate(i, "v")
	}
	l.MoveNext()
	l.MoveNext()
	if l.FocusedIndex() != 2 {
		t.Fatalf("FocusedIndex = %d, want 2", l.FocusedIndex())
	}
	l.MoveNext()
	if l.FocusedIndex() != 0 {
		t.Fatalf("MoveNext should wrap to 0, got %d", l.FocusedIndex())
	}
}

func TestMoveNextNoWrapWithoutRotate(t *testing.T) {
	l := New(false)
	for i := 0; i < 2; i++ {
		l.AddCandidate(i, "v")
	}
	l.MoveNext()
	l.MoveNext() // already at last, no rotate: no-op
	if l.FocusedIndex() != 1 {
		t.Fatalf("FocusedIndex = %d, want 1 (no wrap)", l.FocusedIndex())
	}
}

func TestMoveToIdDescendsIntoSubList(t *testing.T) {
	l := New(true)
	l.AddCandidate(0, "top")
	sub := l.AllocateSubCandidateList(false)
	sub.AddCandidateWithAttributes(-1, "hira", transliteration.Hira)
	sub.AddCandidateWithAttributes(-2, "kata", transliteration.Kata)

	l.MoveToId(-2)
	id, value, _, ok := l.GetDeepestFocusedCandidate()
	if !ok || id != -2 || value != "kata" {
		t.Fatalf("GetDeepestFocusedCandidate = (%d, %q, %v), want (-2, kata, true)", id, value, ok)
	}
}

func TestMoveToIdAbsentIsNoOp(t *testing.T) {
	l := New(true)
	l.AddCandidate(0, "a")
	l.AddCandidate(1, "b")
	l.MoveToId(1)
	l.MoveToId(99) // absent: no-op
	if l.FocusedIndex() != 1 {
		t.Fatalf("FocusedIndex = %d, want 1 (unchanged)", l.FocusedIndex())
	}
}

func TestMoveNextAttributesRotatesAmongMatches(t *testing.T) {
	l := New(true)
	l.AddCandidateWithAttributes(0, "A", transliteration.ASCII)
	l.AddCandidateWithAttributes(1, "hira", transliteration.Hira)
	l.AddCandidateWithAttributes(2, "kataFull", transliteration.Kata|transliteration.FullWidth)
	l.AddCandidateWithAttributes(3, "kataHalf", transliteration.Kata|transliteration.HalfWidth)

	if !l.MoveToAttributes(transliteration.Kata) {
		t.Fatal("MoveToAttributes(Kata) should find an entry")
	}
	if l.FocusedIndex() != 2 {
		t.Fatalf("FocusedIndex = %d, want 2 (first Kata match)", l.FocusedIndex())
	}
	if !l.MoveNextAttributes(transliteration.Kata) {
		t.Fatal("MoveNextAttributes(Kata) should find the next match")
	}
	if l.FocusedIndex() != 3 {
		t.Fatalf("FocusedIndex = %d, want 3 (second Kata match)", l.FocusedIndex())
	}
	if !l.MoveNextAttributes(transliteration.Kata) {
		t.Fatal("MoveNextAttributes(Kata) should wrap back to the first match")
	}
	if l.FocusedIndex() != 2 {
		t.Fatalf("FocusedIndex = %d, want 2 (wrapped)", l.FocusedIndex())
	}
}

func TestCandidateMoveToIdIsNoOpOnSelf(t *testing.T) {
	l := New(true)
	l.AddCandidate(10, "a")
	l.AddCandidate(20, "b")
	l.MoveToId(20)
	before := l.FocusedIndex()
	l.MoveToId(l.FocusedId())
	if l.FocusedIndex() != before {
		t.Fatalf("MoveToId(focused_id()) should be a no-op, focus moved from %d to %d", before, l.FocusedIndex())
	}
}

func TestPagingAcrossMultiplePages(t *testing.T) {
	l := New(false)
	for i := 0; i < DefaultPageSize+3; i++ {
		l.AddCandidate(i, "v")
	}
	l.MoveToPageIndex(2)
	l.MoveNextPage()
	entries, pageIdx, offset := l.CurrentPage()
	if pageIdx != 1 || offset != 2 {
		t.Fatalf("after MoveNextPage: pageIdx=%d offset=%d, want 1,2", pageIdx, offset)
	}
	if len(entries) != 3 {
		t.Fatalf("second page should have 3 entries, got %d", len(entries))
	}
	l.MovePrevPage()
	_, pageIdx, offset = l.CurrentPage()
	if pageIdx != 0 || offset != 2 {
		t.Fatalf("after MovePrevPage: pageIdx=%d offset=%d, want 0,2", pageIdx, offset)
	}
}
