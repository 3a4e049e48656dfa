package output

import (
	"testing"

	"github.com/naoya-sato/henkan/pkg/candidatelist"
	"github.com/naoya-sato/henkan/pkg/segment"
)

func TestPreeditString(t *testing.T) {
	p := Preedit{Segments: []PreeditSegment{
		{Value: "かん"},
		{Value: "じ", Highlight: true},
	}}
	if got := p.String(); got != "かんじ" {
		t.Fatalf("Preedit.String() = %q, want かんじ", got)
	}
}

func TestBuildCandidatesNilOnEmptyList(t *testing.T) {
	if got := BuildCandidates(nil, CategoryConversion, DisplayMain, "", ""); got != nil {
		t.Fatalf("BuildCandidates(nil, ...) = %v, want nil", got)
	}
	list := candidatelist.New(false)
	if got := BuildCandidates(list, CategoryConversion, DisplayMain, "", ""); got != nil {
		t.Fatalf("BuildCandidates(empty list, ...) = %v, want nil", got)
	}
}

func TestBuildCandidatesProjectsCurrentPage(t *testing.T) {
	list := candidatelist.New(false)
	list.AddCandidate(0, "漢字")
	list.AddCandidate(1, "幹事")
	list.AddCandidate(2, "感じ")

	got := BuildCandidates(list, CategoryConversion, DisplayMain, "1/1", "123")
	if got == nil {
		t.Fatal("BuildCandidates returned nil for a populated list")
	}
	if len(got.Entries) != 3 {
		t.Fatalf("len(Entries) = %d, want 3", len(got.Entries))
	}
	if got.Entries[0].Value != "漢字" || got.Entries[0].ID != 0 {
		t.Fatalf("Entries[0] = %+v, want {ID:0 Value:漢字}", got.Entries[0])
	}
	if got.Category != CategoryConversion || got.DisplayType != DisplayMain {
		t.Fatalf("Category/DisplayType = %v/%v, want Conversion/Main", got.Category, got.DisplayType)
	}
	if got.Footer != "1/1" || got.Shortcuts != "123" {
		t.Fatalf("Footer/Shortcuts = %q/%q, want 1/1, 123", got.Footer, got.Shortcuts)
	}
}

func TestBuildCandidatesAttachesTransliterationSubList(t *testing.T) {
	list := candidatelist.New(false)
	list.AddCandidate(0, "漢字")
	sub := list.AllocateSubCandidateList(false)
	sub.SetName("transliteration")
	sub.AddCandidateWithAttributes(-1, "かんじ", 0)
	sub.AddCandidateWithAttributes(-2, "カンジ", 0)

	got := BuildCandidates(list, CategoryConversion, DisplayMain, "", "")
	if got == nil {
		t.Fatal("BuildCandidates returned nil")
	}
	if len(got.Entries) != 1 {
		t.Fatalf("len(Entries) = %d, want 1 (sub-list entry excluded from the main page)", len(got.Entries))
	}
	if got.Transliteration == nil {
		t.Fatal("Transliteration sub-window should be attached")
	}
	if len(got.Transliteration.Entries) != 2 {
		t.Fatalf("len(Transliteration.Entries) = %d, want 2", len(got.Transliteration.Entries))
	}
	if got.Transliteration.Entries[0].Value != "かんじ" {
		t.Fatalf("Transliteration.Entries[0].Value = %q, want かんじ", got.Transliteration.Entries[0].Value)
	}
	if got.Transliteration.Category != CategoryTransliteration || got.Transliteration.DisplayType != DisplayCascade {
		t.Fatalf("Transliteration Category/DisplayType = %v/%v, want Transliteration/Cascade",
			got.Transliteration.Category, got.Transliteration.DisplayType)
	}
}

func TestBuildAllCandidateWordsMarksFocused(t *testing.T) {
	var seg segment.Segment
	seg.AddCandidate(segment.Candidate{Value: "漢字"})
	seg.AddCandidate(segment.Candidate{Value: "幹事"})

	got := BuildAllCandidateWords(&seg, 1, CategoryConversion)
	if got == nil {
		t.Fatal("BuildAllCandidateWords returned nil for a populated segment")
	}
	if len(got.Entries) != 2 {
		t.Fatalf("len(Entries) = %d, want 2", len(got.Entries))
	}
	if got.FocusedIndex != 1 {
		t.Fatalf("FocusedIndex = %d, want 1", got.FocusedIndex)
	}
}

func TestBuildAllCandidateWordsNilSegment(t *testing.T) {
	if got := BuildAllCandidateWords(nil, 0, CategoryConversion); got != nil {
		t.Fatalf("BuildAllCandidateWords(nil, ...) = %v, want nil", got)
	}
}

func TestFillPreeditResult(t *testing.T) {
	var r Result
	FillPreeditResult("かんじ", &r)
	if r.Value != "かんじ" || r.Key != "かんじ" {
		t.Fatalf("FillPreeditResult result = %+v, want both fields かんじ", r)
	}
}

func TestFillContextFromHistory(t *testing.T) {
	segs := segment.NewSegments()
	var h1, h2 segment.Segment
	h1.AddCandidate(segment.Candidate{Value: "今日"})
	h2.AddCandidate(segment.Candidate{Value: "は"})
	segs.AddHistorySegment(h1)
	segs.AddHistorySegment(h2)

	var ctx Context
	FillContext(&ctx, segs)
	if ctx.PrecedingText != "今日は" {
		t.Fatalf("PrecedingText = %q, want 今日は", ctx.PrecedingText)
	}
}

func TestFillContextDoesNotOverwriteExisting(t *testing.T) {
	segs := segment.NewSegments()
	var h segment.Segment
	h.AddCandidate(segment.Candidate{Value: "今日"})
	segs.AddHistorySegment(h)

	ctx := Context{PrecedingText: "already set"}
	FillContext(&ctx, segs)
	if ctx.PrecedingText != "already set" {
		t.Fatalf("FillContext overwrote a pre-populated PrecedingText: got %q", ctx.PrecedingText)
	}
}
