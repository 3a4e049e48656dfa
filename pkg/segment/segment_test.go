package segment

import "testing"

func TestSegmentCandidates(t *testing.T) {
	var s Segment
	s.SetKey("かんじ")
	s.SetContentKey("かんじ")
	s.AddCandidate(Candidate{Value: "漢字"})
	s.AddCandidate(Candidate{Value: "幹事"})

	if got := s.CandidatesSize(); got != 2 {
		t.Fatalf("CandidatesSize() = %d, want 2", got)
	}
	if got := s.Candidate(0).Value; got != "漢字" {
		t.Fatalf("Candidate(0).Value = %q, want 漢字", got)
	}

	s.PushFrontCandidate(Candidate{Value: "感じ"})
	if got := s.Candidate(0).Value; got != "感じ" {
		t.Fatalf("after PushFrontCandidate, Candidate(0).Value = %q, want 感じ", got)
	}
	if got := s.CandidatesSize(); got != 3 {
		t.Fatalf("CandidatesSize() after push = %d, want 3", got)
	}
}

func TestCandidateHasFlag(t *testing.T) {
	c := Candidate{Value: "漢字", Flags: SpellingCorrection}
	if !c.HasFlag(SpellingCorrection) {
		t.Fatal("HasFlag(SpellingCorrection) = false, want true")
	}
	plain := Candidate{Value: "漢字"}
	if plain.HasFlag(SpellingCorrection) {
		t.Fatal("HasFlag(SpellingCorrection) = true on a plain candidate")
	}
}

func TestSegmentClear(t *testing.T) {
	var s Segment
	s.SetKey("x")
	s.AddCandidate(Candidate{Value: "x"})
	s.SetMetaCandidates([]Candidate{{Value: "X"}})

	s.Clear()

	if s.Key() != "" || s.CandidatesSize() != 0 || s.MetaCandidatesSize() != 0 {
		t.Fatalf("Clear() left state: key=%q candidates=%d meta=%d", s.Key(), s.CandidatesSize(), s.MetaCandidatesSize())
	}
}

func TestSegmentCloneIsDeepCopy(t *testing.T) {
	var s Segment
	s.SetKey("かんじ")
	s.AddCandidate(Candidate{Value: "漢字"})

	clone := s.Clone()
	clone.AddCandidate(Candidate{Value: "幹事"})

	if s.CandidatesSize() != 1 {
		t.Fatalf("mutating the clone affected the original: CandidatesSize() = %d, want 1", s.CandidatesSize())
	}
	if clone.CandidatesSize() != 2 {
		t.Fatalf("clone.CandidatesSize() = %d, want 2", clone.CandidatesSize())
	}
}

func TestSegmentsAddHistoryTrimsToMax(t *testing.T) {
	segs := NewSegments()
	segs.SetMaxHistorySegmentsSize(2)

	for i, key := range []string{"a", "b", "c"} {
		var s Segment
		s.SetKey(key)
		segs.AddHistorySegment(s)
		if i == 0 {
			continue
		}
	}

	if got := segs.HistorySegmentsSize(); got != 2 {
		t.Fatalf("HistorySegmentsSize() = %d, want 2", got)
	}
	if got := segs.HistorySegment(0).Key(); got != "b" {
		t.Fatalf("oldest surviving history segment key = %q, want b", got)
	}
	if got := segs.HistorySegment(1).Key(); got != "c" {
		t.Fatalf("newest history segment key = %q, want c", got)
	}
}

func TestSegmentsClearPreservesPreferences(t *testing.T) {
	segs := NewSegments()
	segs.SetUserHistoryEnabled(false)
	segs.SetMaxHistorySegmentsSize(5)

	var s Segment
	s.SetKey("x")
	segs.AddHistorySegment(s)
	segs.AddSegment()
	segs.SetRequestType(RequestPrediction)

	segs.Clear()

	if segs.HistorySegmentsSize() != 0 || segs.ConversionSegmentsSize() != 0 {
		t.Fatal("Clear() did not remove history/conversion segments")
	}
	if segs.RequestType() != RequestConversion {
		t.Fatalf("Clear() left RequestType = %v, want RequestConversion", segs.RequestType())
	}
	if segs.UseHistory() {
		t.Fatal("Clear() reset UseHistory, it should preserve preferences")
	}
	if segs.MaxHistorySegmentsSize() != 5 {
		t.Fatalf("Clear() reset MaxHistorySegmentsSize to %d, want 5 preserved", segs.MaxHistorySegmentsSize())
	}
}

func TestSegmentsCopyFromIsDeepCopy(t *testing.T) {
	src := NewSegments()
	var s Segment
	s.SetKey("かんじ")
	s.AddCandidate(Candidate{Value: "漢字"})
	src.AddSegment()
	*src.ConversionSegment(0) = s

	dst := NewSegments()
	dst.CopyFrom(src)

	dst.ConversionSegment(0).AddCandidate(Candidate{Value: "幹事"})

	if src.ConversionSegment(0).CandidatesSize() != 1 {
		t.Fatalf("mutating dst affected src: CandidatesSize() = %d, want 1", src.ConversionSegment(0).CandidatesSize())
	}
	if dst.ConversionSegment(0).CandidatesSize() != 2 {
		t.Fatalf("dst.ConversionSegment(0).CandidatesSize() = %d, want 2", dst.ConversionSegment(0).CandidatesSize())
	}
}

func TestRemoveTailOfHistorySegmentsNoOpOnNonPositive(t *testing.T) {
	segs := NewSegments()
	var s Segment
	s.SetKey("a")
	segs.AddHistorySegment(s)

	segs.RemoveTailOfHistorySegments(0)
	segs.RemoveTailOfHistorySegments(-3)

	if segs.HistorySegmentsSize() != 1 {
		t.Fatalf("HistorySegmentsSize() = %d, want 1 unchanged", segs.HistorySegmentsSize())
	}
}
