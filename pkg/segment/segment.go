// Package segment holds the in-memory representation of segmented
// conversion analyses and their ranked candidates (component C1). These are
// plain data containers; all conversion policy lives in package converter.
package segment

// CandidateFlag is a bitmask of per-candidate attributes.
type CandidateFlag uint32

const (
	// SpellingCorrection forces the candidate window visible when present
	// among the first 10 candidates of a segment.
	SpellingCorrection CandidateFlag = 1 << iota
)

// Candidate is a proposed surface form for a segment.
type Candidate struct {
	Value      string
	ContentKey string
	Flags      CandidateFlag
}

// HasFlag reports whether flag is set on the candidate.
func (c Candidate) HasFlag(flag CandidateFlag) bool {
	return c.Flags&flag != 0
}

// Segment is one contiguous, ordered slice of the reading under conversion.
type Segment struct {
	key            string
	contentKey     string
	candidates     []Candidate
	metaCandidates []Candidate // one per transliteration.Type, in canonical order
}

// Key returns the reading this segment covers.
func (s *Segment) Key() string { return s.key }

// SetKey sets the reading this segment covers.
func (s *Segment) SetKey(key string) { s.key = key }

// ContentKey returns the non-inflected prefix used during suggestion/prediction.
func (s *Segment) ContentKey() string { return s.contentKey }

// SetContentKey sets the non-inflected prefix.
func (s *Segment) SetContentKey(key string) { s.contentKey = key }

// CandidatesSize returns the number of ordinary candidates.
func (s *Segment) CandidatesSize() int { return len(s.candidates) }

// Candidate returns the i-th ordinary candidate.
func (s *Segment) Candidate(i int) *Candidate { return &s.candidates[i] }

// Candidates returns the full ordinary candidate slice, in rank order.
func (s *Segment) Candidates() []Candidate { return s.candidates }

// AddCandidate appends an ordinary candidate.
func (s *Segment) AddCandidate(c Candidate) { s.candidates = append(s.candidates, c) }

// PushFrontCandidate prepends an ordinary candidate, used by Predict/
// MaybeExpandPrediction to keep cached previous_suggestions ahead of
// strictly-new prediction results.
func (s *Segment) PushFrontCandidate(c Candidate) {
	s.candidates = append([]Candidate{c}, s.candidates...)
}

// MetaCandidatesSize returns the number of transliteration meta-candidates.
func (s *Segment) MetaCandidatesSize() int { return len(s.metaCandidates) }

// MetaCandidate returns the i-th meta-candidate (indexed by transliteration.Type).
func (s *Segment) MetaCandidate(i int) *Candidate { return &s.metaCandidates[i] }

// SetMetaCandidates replaces the full meta-candidate list.
func (s *Segment) SetMetaCandidates(cs []Candidate) { s.metaCandidates = cs }

// MetaCandidates returns the full meta-candidate slice, indexed by
// transliteration.Type.
func (s *Segment) MetaCandidates() []Candidate { return s.metaCandidates }

// Clear resets the segment to its zero value.
func (s *Segment) Clear() {
	s.key = ""
	s.contentKey = ""
	s.candidates = nil
	s.metaCandidates = nil
}

// Clone returns a deep copy of the segment.
func (s *Segment) Clone() Segment {
	out := Segment{key: s.key, contentKey: s.contentKey}
	if s.candidates != nil {
		out.candidates = append([]Candidate(nil), s.candidates...)
	}
	if s.metaCandidates != nil {
		out.metaCandidates = append([]Candidate(nil), s.metaCandidates...)
	}
	return out
}

// RequestType identifies which engine operation produced the current
// conversion segments.
type RequestType int

const (
	RequestConversion RequestType = iota
	RequestPrediction
	RequestSuggestion
)

// Segments is an ordered pair of regions: already-committed history segments
// and the conversion segments currently being edited.
type Segments struct {
	history    []Segment
	conversion []Segment

	requestType RequestType

	useHistory     bool
	maxHistorySize int
}

// NewSegments returns an empty Segments with the spec's default preferences
// (use_history=true, max_history_size=3).
func NewSegments() *Segments {
	return &Segments{useHistory: true, maxHistorySize: 3}
}

// HistorySegmentsSize returns the number of history segments.
func (s *Segments) HistorySegmentsSize() int { return len(s.history) }

// HistorySegment returns the i-th history segment.
func (s *Segments) HistorySegment(i int) *Segment { return &s.history[i] }

// AddHistorySegment appends a committed segment to history, trimming the
// oldest entries beyond MaxHistorySegmentsSize.
func (s *Segments) AddHistorySegment(seg Segment) {
	s.history = append(s.history, seg)
	s.RemoveTailOfHistorySegments(len(s.history) - s.maxHistorySize)
}

// RemoveTailOfHistorySegments removes n of the oldest history segments
// (oldest-first truncation), a no-op if n <= 0.
func (s *Segments) RemoveTailOfHistorySegments(n int) {
	if n <= 0 {
		return
	}
	if n > len(s.history) {
		n = len(s.history)
	}
	s.history = append([]Segment(nil), s.history[n:]...)
}

// ConversionSegmentsSize returns the number of conversion segments.
func (s *Segments) ConversionSegmentsSize() int { return len(s.conversion) }

// ConversionSegment returns the i-th conversion segment.
func (s *Segments) ConversionSegment(i int) *Segment { return &s.conversion[i] }

// MutableConversionSegment is an alias for ConversionSegment retained for
// symmetry with the source API; Go has no const-pointer distinction.
func (s *Segments) MutableConversionSegment(i int) *Segment { return &s.conversion[i] }

// AddSegment appends a new, empty conversion segment and returns it.
func (s *Segments) AddSegment() *Segment {
	s.conversion = append(s.conversion, Segment{})
	return &s.conversion[len(s.conversion)-1]
}

// ClearConversionSegments removes all conversion segments.
func (s *Segments) ClearConversionSegments() { s.conversion = nil }

// RequestType returns the engine operation that produced the current
// conversion segments.
func (s *Segments) RequestType() RequestType { return s.requestType }

// SetRequestType sets the request type.
func (s *Segments) SetRequestType(t RequestType) { s.requestType = t }

// UseHistory reports whether history segments inform further conversion.
func (s *Segments) UseHistory() bool { return s.useHistory }

// SetUserHistoryEnabled toggles UseHistory.
func (s *Segments) SetUserHistoryEnabled(enabled bool) { s.useHistory = enabled }

// MaxHistorySegmentsSize returns the retained history segment cap.
func (s *Segments) MaxHistorySegmentsSize() int { return s.maxHistorySize }

// SetMaxHistorySegmentsSize sets the retained history segment cap, trimming
// existing history to fit.
func (s *Segments) SetMaxHistorySegmentsSize(n int) {
	s.maxHistorySize = n
	s.RemoveTailOfHistorySegments(len(s.history) - n)
}

// Clear resets Segments to an empty state, preserving preferences.
func (s *Segments) Clear() {
	s.history = nil
	s.conversion = nil
	s.requestType = RequestConversion
}

// CopyFrom replaces the receiver's contents with a deep copy of src.
func (s *Segments) CopyFrom(src *Segments) {
	s.history = cloneSegments(src.history)
	s.conversion = cloneSegments(src.conversion)
	s.requestType = src.requestType
	s.useHistory = src.useHistory
	s.maxHistorySize = src.maxHistorySize
}

func cloneSegments(in []Segment) []Segment {
	if in == nil {
		return nil
	}
	out := make([]Segment, len(in))
	for i := range in {
		out[i] = in[i].Clone()
	}
	return out
}
