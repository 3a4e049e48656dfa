package converter

import (
	"unicode"
	"unicode/utf8"

	"github.com/naoya-sato/henkan/pkg/candidatelist"
	"github.com/naoya-sato/henkan/pkg/logging"
	"github.com/naoya-sato/henkan/pkg/output"
	"github.com/naoya-sato/henkan/pkg/segment"
	"github.com/naoya-sato/henkan/pkg/transliteration"
)

// SessionConverter is the session-layer state machine mediating between a
// Composer and an Engine. It owns its Segments and candidate list; the
// Composer is borrowed per-call, never stored (see interfaces.go).
type SessionConverter struct {
	engine Engine

	state        State
	segments     *segment.Segments
	segmentIndex int

	candidateList        *candidatelist.List
	candidateListVisible bool

	// previousSuggestions is a deep copy of the first conversion segment as
	// of the last successful Suggest, merged ahead of prediction results by
	// Predict so suggestion order survives into PREDICTION.
	previousSuggestions *segment.Segment

	result output.Result

	// composition is the full composition text cached by Convert, used to
	// decide transliteration/half-width targets and segment-0 resizing.
	composition string

	conversionPreferences ConversionPreferences
	operationPreferences  OperationPreferences
}

// New returns a SessionConverter bound to the given Engine, in state
// COMPOSITION, with the spec's default preferences.
func New(engine Engine) *SessionConverter {
	return &SessionConverter{
		engine:                engine,
		state:                 StateComposition,
		segments:              segment.NewSegments(),
		candidateList:         candidatelist.New(false),
		conversionPreferences: DefaultConversionPreferences(),
		operationPreferences:  DefaultOperationPreferences(),
	}
}

// SetConversionPreferences replaces the active conversion preferences.
func (c *SessionConverter) SetConversionPreferences(p ConversionPreferences) {
	c.conversionPreferences = p
	c.segments.SetUserHistoryEnabled(p.UseHistory)
	c.segments.SetMaxHistorySegmentsSize(p.MaxHistorySize)
}

// SetOperationPreferences replaces the active operation preferences.
func (c *SessionConverter) SetOperationPreferences(p OperationPreferences) {
	c.operationPreferences = p
}

// Segments exposes the owned Segments structure, primarily for tests and
// for a host UI inspecting state beyond what Output exposes.
func (c *SessionConverter) Segments() *segment.Segments { return c.segments }

// SegmentIndex returns the currently focused conversion segment index.
func (c *SessionConverter) SegmentIndex() int { return c.segmentIndex }

// CandidateListVisible reports whether the candidate window is shown.
func (c *SessionConverter) CandidateListVisible() bool { return c.candidateListVisible }

// attributeAdder is satisfied by both *candidatelist.List and
// *candidatelist.SubList, letting UpdateCandidateList target either without
// caring which one hosts the transliteration entries.
type attributeAdder interface {
	AddCandidateWithAttributes(id int, value string, attrs transliteration.Attributes)
}

// Convert starts a full conversion from the composer's current reading.
// Pre: state in {COMPOSITION, SUGGESTION, CONVERSION}.
func (c *SessionConverter) Convert(composer Composer) bool {
	if composer == nil {
		logging.Error("Convert: composer is nil")
		return false
	}
	if !c.CheckState(StateComposition | StateSuggestion | StateConversion) {
		logging.Error("Convert: invalid state %v", c.state)
		return false
	}
	key := composer.GetQueryForConversion()
	if !c.engine.StartConversionWithComposer(c.segments, composer) {
		logging.Warning("Convert: engine failed for key %q", key)
		return false
	}
	c.segments.SetRequestType(segment.RequestConversion)
	c.segmentIndex = 0
	c.state = StateConversion
	c.composition = key
	c.result = output.Result{}
	c.previousSuggestions = nil
	c.UpdateCandidateList()
	c.candidateListVisible = false
	return true
}

// ConvertReverse recovers a reading from surface text and converts it.
func (c *SessionConverter) ConvertReverse(sourceText string, composer Composer) bool {
	if composer == nil {
		logging.Error("ConvertReverse: composer is nil")
		return false
	}
	composer.Reset()
	if !c.engine.StartReverseConversion(c.segments, sourceText) {
		logging.Warning("ConvertReverse: engine failed for %q", sourceText)
		return false
	}
	if c.segments.ConversionSegmentsSize() == 0 {
		logging.Warning("ConvertReverse: engine returned no segments")
		return false
	}
	var reading string
	for i := 0; i < c.segments.ConversionSegmentsSize(); i++ {
		seg := c.segments.ConversionSegment(i)
		if seg.CandidatesSize() == 0 {
			logging.Warning("ConvertReverse: segment %d has no candidates", i)
			return false
		}
		reading += seg.Candidate(0).Value
	}
	for _, r := range reading {
		composer.InsertCharacterPreedit(string(r))
	}
	composer.SetSourceText(sourceText)
	c.segments.ClearConversionSegments()
	return c.Convert(composer)
}

// resizeFirstSegmentToFullComposition grows or shrinks conversion segment 0
// so its key covers the entire cached composition, used by
// ConvertToTransliteration/ConvertToHalfWidth/SwitchKanaType when a fresh
// Convert produced more than one segment.
func (c *SessionConverter) resizeFirstSegmentToFullComposition() {
	if c.segments.ConversionSegmentsSize() == 0 {
		return
	}
	total := utf8.RuneCountInString(c.composition)
	seg0 := utf8.RuneCountInString(c.segments.ConversionSegment(0).Key())
	delta := total - seg0
	if delta == 0 {
		return
	}
	if c.engine.ResizeSegment(c.segments, 0, delta) {
		c.UpdateCandidateList()
	}
}

// enterTransliterationConversion handles the shared precondition logic of
// ConvertToTransliteration/ConvertToHalfWidth/SwitchKanaType: cancel out of
// PREDICTION first, and if starting from COMPOSITION/SUGGESTION, convert
// and widen segment 0 to the full composition. Returns wasConversion (true
// if CONVERSION was already active before this call) and ok (false if a
// required Convert failed).
func (c *SessionConverter) enterTransliterationConversion(composer Composer) (wasConversion, ok bool) {
	wasConversion = c.CheckState(StateConversion)
	if c.CheckState(StatePrediction) {
		c.Cancel()
	}
	if c.CheckState(StateComposition | StateSuggestion) {
		if !c.Convert(composer) {
			return wasConversion, false
		}
		if c.segments.ConversionSegmentsSize() > 1 {
			c.resizeFirstSegmentToFullComposition()
		}
	}
	return wasConversion, true
}

// ConvertToTransliteration selects the meta-candidate for transliteration
// type t on the focused segment, converting first if not already active.
func (c *SessionConverter) ConvertToTransliteration(composer Composer, t transliteration.Type) bool {
	wasConversion, ok := c.enterTransliterationConversion(composer)
	if !ok {
		return false
	}
	mask := transliteration.MaskFromType(t)
	if !wasConversion {
		return c.candidateList.MoveToAttributes(mask)
	}
	if _, _, curAttrs, found := c.candidateList.GetDeepestFocusedCandidate(); found {
		if curAttrs.Contains(transliteration.ASCII) && mask.Contains(transliteration.ASCII) {
			curWidth := curAttrs & (transliteration.HalfWidth | transliteration.FullWidth)
			queryWidth := mask & (transliteration.HalfWidth | transliteration.FullWidth)
			if curWidth != 0 && queryWidth != 0 && curWidth != queryWidth {
				mask |= curAttrs.CasingBits()
			}
		}
	}
	return c.candidateList.MoveNextAttributes(mask)
}

// containsKanaOrKanji reports whether s contains any Hiragana, Katakana, or
// CJK ideograph rune — the signal ConvertToHalfWidth uses to prefer
// half-width katakana over half-width ASCII.
func containsKanaOrKanji(s string) bool {
	for _, r := range s {
		switch {
		case unicode.In(r, unicode.Hiragana, unicode.Katakana, unicode.Han):
			return true
		}
	}
	return false
}

// ConvertToHalfWidth converts the focused segment to its half-width
// rendering: half-width katakana if the composition contains kana/kanji,
// otherwise half-width ASCII inheriting the current casing.
func (c *SessionConverter) ConvertToHalfWidth(composer Composer) bool {
	wasConversion, ok := c.enterTransliterationConversion(composer)
	if !ok {
		return false
	}
	var mask transliteration.Attributes
	if containsKanaOrKanji(c.composition) {
		mask = transliteration.HalfWidth | transliteration.Kata
	} else {
		mask = transliteration.HalfWidth | transliteration.ASCII
		if _, _, curAttrs, found := c.candidateList.GetDeepestFocusedCandidate(); found {
			mask |= curAttrs.CasingBits()
		}
	}
	if !wasConversion {
		return c.candidateList.MoveToAttributes(mask)
	}
	return c.candidateList.MoveNextAttributes(mask)
}

// SwitchKanaType cycles the focused segment's rendering through
// HIRAGANA -> FULL_KATAKANA -> HALF_KATAKANA -> HIRAGANA.
func (c *SessionConverter) SwitchKanaType(composer Composer) bool {
	_, ok := c.enterTransliterationConversion(composer)
	if !ok {
		return false
	}
	_, _, attrs, found := c.candidateList.GetDeepestFocusedCandidate()
	if !found {
		return false
	}
	var target transliteration.Attributes
	switch {
	case attrs.Contains(transliteration.Hira):
		target = transliteration.FullWidth | transliteration.Kata
	case attrs.Contains(transliteration.FullWidth | transliteration.Kata):
		target = transliteration.HalfWidth | transliteration.Kata
	default:
		target = transliteration.Hira | transliteration.FullWidth
	}
	return c.candidateList.MoveToAttributes(target)
}

// UpdateCandidateList rebuilds the candidate list from the focused
// segment's ordinary candidates plus its transliteration meta-candidates.
// Called whenever the focused segment changes or conversion state is
// reinitialized.
func (c *SessionConverter) UpdateCandidateList() {
	c.candidateList.Clear()
	if c.segments.ConversionSegmentsSize() == 0 || c.segmentIndex >= c.segments.ConversionSegmentsSize() {
		return
	}
	seg := c.segments.ConversionSegment(c.segmentIndex)

	for i := 0; i < seg.CandidatesSize(); i++ {
		c.candidateList.AddCandidate(i, seg.Candidate(i).Value)
	}

	checkLimit := seg.CandidatesSize()
	if checkLimit > 10 {
		checkLimit = 10
	}
	for i := 0; i < checkLimit; i++ {
		if seg.Candidate(i).HasFlag(segment.SpellingCorrection) {
			c.candidateListVisible = true
			break
		}
	}

	c.candidateList.SetFocused(c.segments.RequestType() != segment.RequestSuggestion)

	if seg.MetaCandidatesSize() == 0 {
		return
	}

	var host attributeAdder
	if c.operationPreferences.UseCascadingWindow {
		sub := c.candidateList.AllocateSubCandidateList(false)
		sub.SetName("transliteration")
		sub.SetFocused(true)
		host = sub
	} else {
		host = c.candidateList
	}
	for _, t := range transliteration.Types {
		if int(t) >= seg.MetaCandidatesSize() {
			continue
		}
		mc := seg.MetaCandidate(int(t))
		host.AddCandidateWithAttributes(transliteration.CandidateID(t), mc.Value, transliteration.AttributesFor(t))
	}
}

// getCandidateIndexForConverter returns the candidate id to report to the
// engine for segment s: the candidate list's focused id when s is the
// focused segment, or 0 (the default top-ranked choice) otherwise.
func (c *SessionConverter) getCandidateIndexForConverter(s int) int {
	if s == c.segmentIndex {
		return c.candidateList.FocusedId()
	}
	return 0
}

// candidateValueForSegment resolves a candidate id (ordinary or a negative
// transliteration id) against segIndex's segment, returning its surface
// value.
func (c *SessionConverter) candidateValueForSegment(segIndex, id int) (string, bool) {
	if segIndex < 0 || segIndex >= c.segments.ConversionSegmentsSize() {
		return "", false
	}
	seg := c.segments.ConversionSegment(segIndex)
	if id >= 0 {
		if id < seg.CandidatesSize() {
			return seg.Candidate(id).Value, true
		}
		return "", false
	}
	t, ok := transliteration.TypeFromCandidateID(id)
	if !ok || int(t) >= seg.MetaCandidatesSize() {
		return "", false
	}
	return seg.MetaCandidate(int(t)).Value, true
}
