package engine

import (
	"testing"

	"github.com/naoya-sato/henkan/pkg/segment"
)

func mustLoad(t *testing.T) *Dictionary {
	t.Helper()
	d, err := LoadDictionary()
	if err != nil {
		t.Fatalf("LoadDictionary() error: %v", err)
	}
	return d
}

type fakeComposer struct{ reading string }

func (f fakeComposer) GetQueryForConversion() string  { return f.reading }
func (f fakeComposer) GetQueryForPrediction() string  { return f.reading }
func (f fakeComposer) GetStringForSubmission() string { return f.reading }
func (f fakeComposer) InsertCharacterPreedit(string)  {}
func (f fakeComposer) DeleteAt(int)                   {}
func (f fakeComposer) GetLength() int                 { return len([]rune(f.reading)) }
func (f fakeComposer) Reset()                         {}
func (f fakeComposer) SetSourceText(string)           {}
func (f fakeComposer) Empty() bool                    { return f.reading == "" }

func TestStartConversionWithComposerSegmentsOnDictionaryBoundary(t *testing.T) {
	d := mustLoad(t)
	e := New(d)
	segs := segment.NewSegments()

	if !e.StartConversionWithComposer(segs, fakeComposer{reading: "にほんご"}) {
		t.Fatal("StartConversionWithComposer returned false")
	}
	if got := segs.ConversionSegmentsSize(); got != 1 {
		t.Fatalf("ConversionSegmentsSize() = %d, want 1 (にほんご is a whole dictionary entry)", got)
	}
	if got := segs.ConversionSegment(0).Candidate(0).Value; got != "日本語" {
		t.Fatalf("top candidate = %q, want 日本語", got)
	}
}

func TestStartConversionFallsBackToPerRuneSpans(t *testing.T) {
	d := mustLoad(t)
	e := New(d)
	segs := segment.NewSegments()

	if !e.StartConversionWithComposer(segs, fakeComposer{reading: "にほんxyz"}) {
		t.Fatal("StartConversionWithComposer returned false")
	}
	if got := segs.ConversionSegmentsSize(); got < 4 {
		t.Fatalf("ConversionSegmentsSize() = %d, want at least 4 (にほん + 3 fallback runes)", got)
	}
}

func TestStartConversionEmptyReadingRejected(t *testing.T) {
	d := mustLoad(t)
	e := New(d)
	segs := segment.NewSegments()
	if e.StartConversionWithComposer(segs, fakeComposer{reading: ""}) {
		t.Fatal("StartConversionWithComposer(empty reading) should return false")
	}
}

func TestStartSuggestionCollapsesMatchesIntoOneSegment(t *testing.T) {
	d := mustLoad(t)
	e := New(d)
	segs := segment.NewSegments()

	if !e.StartSuggestion(segs, "にほん") {
		t.Fatal("StartSuggestion returned false")
	}
	if got := segs.ConversionSegmentsSize(); got != 1 {
		t.Fatalf("ConversionSegmentsSize() = %d, want 1", got)
	}
	seg := segs.ConversionSegment(0)
	if seg.CandidatesSize() < 2 {
		t.Fatalf("CandidatesSize() = %d, want at least 2 (にほん and にほんご both match)", seg.CandidatesSize())
	}
}

func TestStartSuggestionNoMatchRejected(t *testing.T) {
	d := mustLoad(t)
	e := New(d)
	segs := segment.NewSegments()
	if e.StartSuggestion(segs, "zzz") {
		t.Fatal("StartSuggestion with no matching prefix should return false")
	}
}

func TestStartReverseConversionWholeText(t *testing.T) {
	d := mustLoad(t)
	e := New(d)
	segs := segment.NewSegments()

	if !e.StartReverseConversion(segs, "日本語") {
		t.Fatal("StartReverseConversion returned false")
	}
	if got := segs.ConversionSegment(0).Candidate(0).Value; got != "にほんご" {
		t.Fatalf("recovered reading = %q, want にほんご", got)
	}
}

func TestStartReverseConversionUnknownTextRejected(t *testing.T) {
	d := mustLoad(t)
	e := New(d)
	segs := segment.NewSegments()
	if e.StartReverseConversion(segs, "不明な文字列") {
		t.Fatal("StartReverseConversion of unrecognized text should return false")
	}
}

func TestResizeSegmentGrowMergesNeighbor(t *testing.T) {
	d := mustLoad(t)
	e := New(d)
	segs := segment.NewSegments()
	e.StartConversionWithComposer(segs, fakeComposer{reading: "にほんx"})
	// Expect segments: にほん, x

	if got := segs.ConversionSegmentsSize(); got != 2 {
		t.Fatalf("setup: ConversionSegmentsSize() = %d, want 2", got)
	}

	if !e.ResizeSegment(segs, 0, 1) {
		t.Fatal("ResizeSegment(grow by 1) returned false")
	}
	if got := segs.ConversionSegmentsSize(); got != 1 {
		t.Fatalf("after growing into the last rune, ConversionSegmentsSize() = %d, want 1", got)
	}
	if got := segs.ConversionSegment(0).Key(); got != "にほんx" {
		t.Fatalf("merged segment key = %q, want にほんx", got)
	}
}

func TestResizeSegmentShrinkMovesRunesToNext(t *testing.T) {
	d := mustLoad(t)
	e := New(d)
	segs := segment.NewSegments()
	e.StartConversionWithComposer(segs, fakeComposer{reading: "にほんご"})
	// One dictionary-matched segment: にほんご

	if !e.ResizeSegment(segs, 0, -1) {
		t.Fatal("ResizeSegment(shrink by 1) returned false")
	}
	if got := segs.ConversionSegmentsSize(); got != 2 {
		t.Fatalf("after shrinking, ConversionSegmentsSize() = %d, want 2", got)
	}
	if got := segs.ConversionSegment(0).Key(); got != "にほん" {
		t.Fatalf("shrunk segment key = %q, want にほん", got)
	}
	if got := segs.ConversionSegment(1).Key(); got != "ご" {
		t.Fatalf("spilled-over segment key = %q, want ご", got)
	}
}

func TestResizeSegmentOutOfRangeRejected(t *testing.T) {
	d := mustLoad(t)
	e := New(d)
	segs := segment.NewSegments()
	e.StartConversionWithComposer(segs, fakeComposer{reading: "にほん"})
	if e.ResizeSegment(segs, 5, 1) {
		t.Fatal("ResizeSegment with out-of-range index should return false")
	}
}

func TestSubmitFirstSegmentDropsAndShifts(t *testing.T) {
	d := mustLoad(t)
	e := New(d)
	segs := segment.NewSegments()
	e.StartConversionWithComposer(segs, fakeComposer{reading: "にほんご"})
	e.ResizeSegment(segs, 0, -1) // -> にほん, ご

	e.SubmitFirstSegment(segs, 0)

	if got := segs.ConversionSegmentsSize(); got != 1 {
		t.Fatalf("ConversionSegmentsSize() after submit = %d, want 1", got)
	}
	if got := segs.ConversionSegment(0).Key(); got != "ご" {
		t.Fatalf("remaining segment key = %q, want ご", got)
	}
}

func TestFinishConversionFeedsHistoryWhenEnabled(t *testing.T) {
	d := mustLoad(t)
	e := New(d)
	segs := segment.NewSegments()
	segs.SetUserHistoryEnabled(true)
	e.StartConversionWithComposer(segs, fakeComposer{reading: "にほん"})

	e.FinishConversion(segs)

	if got := segs.HistorySegmentsSize(); got != 1 {
		t.Fatalf("HistorySegmentsSize() = %d, want 1", got)
	}
}

func TestFinishConversionNoHistoryWhenDisabled(t *testing.T) {
	d := mustLoad(t)
	e := New(d)
	segs := segment.NewSegments()
	segs.SetUserHistoryEnabled(false)
	e.StartConversionWithComposer(segs, fakeComposer{reading: "にほん"})

	e.FinishConversion(segs)

	if got := segs.HistorySegmentsSize(); got != 0 {
		t.Fatalf("HistorySegmentsSize() = %d, want 0 with UseHistory disabled", got)
	}
}

func TestGroupIDStableAcrossCalls(t *testing.T) {
	d := mustLoad(t)
	id1, ok1 := d.GroupID("にほん")
	id2, ok2 := d.GroupID("にほん")
	if !ok1 || !ok2 {
		t.Fatal("GroupID(にほん) should be found")
	}
	if id1 != id2 {
		t.Fatalf("GroupID is not stable across calls: %q vs %q", id1, id2)
	}
	if _, ok := d.GroupID("not-a-reading"); ok {
		t.Fatal("GroupID for an unknown reading should report ok=false")
	}
}
