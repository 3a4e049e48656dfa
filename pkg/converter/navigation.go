package converter

import (
	"strings"

	"github.com/naoya-sato/henkan/pkg/logging"
	"github.com/naoya-sato/henkan/pkg/output"
)

// SegmentFix commits the currently focused candidate id into the focused
// segment's fixed state via the engine, without finalizing the whole
// conversion. Called before every focus move so the engine remembers what
// the user had selected for a segment once focus leaves it.
func (c *SessionConverter) SegmentFix() {
	if c.segments.ConversionSegmentsSize() == 0 {
		return
	}
	c.engine.CommitSegmentValue(c.segments, c.segmentIndex, c.candidateList.FocusedId())
}

// SegmentFocus notifies the engine of the new focused candidate id for the
// currently focused segment, without committing it.
func (c *SessionConverter) SegmentFocus() {
	if c.segments.ConversionSegmentsSize() == 0 {
		return
	}
	c.engine.FocusSegmentValue(c.segments, c.segmentIndex, c.candidateList.FocusedId())
}

// moveSegmentFocus is the shared body of the four SegmentFocus* operations:
// all are no-ops in PREDICTION (and outside CONVERSION), fix the outgoing
// segment's selection, then move to newIndex and rebuild the candidate list.
func (c *SessionConverter) moveSegmentFocus(newIndex int) bool {
	if c.CheckState(StatePrediction) {
		return false
	}
	if !c.CheckState(StateConversion) {
		return false
	}
	n := c.segments.ConversionSegmentsSize()
	if n == 0 {
		return false
	}
	c.SegmentFix()
	c.segmentIndex = newIndex
	c.UpdateCandidateList()
	return true
}

// SegmentFocusRight moves focus to the next segment, wrapping to 0.
func (c *SessionConverter) SegmentFocusRight() bool {
	n := c.segments.ConversionSegmentsSize()
	if n == 0 {
		return false
	}
	return c.moveSegmentFocus((c.segmentIndex + 1) % n)
}

// SegmentFocusLeft moves focus to the previous segment, wrapping to the last.
func (c *SessionConverter) SegmentFocusLeft() bool {
	n := c.segments.ConversionSegmentsSize()
	if n == 0 {
		return false
	}
	return c.moveSegmentFocus((c.segmentIndex - 1 + n) % n)
}

// SegmentFocusLeftEdge moves focus to segment 0.
func (c *SessionConverter) SegmentFocusLeftEdge() bool {
	return c.moveSegmentFocus(0)
}

// SegmentFocusLast moves focus to the final segment.
func (c *SessionConverter) SegmentFocusLast() bool {
	n := c.segments.ConversionSegmentsSize()
	if n == 0 {
		return false
	}
	return c.moveSegmentFocus(n - 1)
}

// SegmentWidthExpand grows the focused segment by one unit via the engine,
// rebuilding the candidate list on success; a no-op on engine failure.
func (c *SessionConverter) SegmentWidthExpand() bool {
	if !c.CheckState(StateConversion) {
		return false
	}
	if !c.engine.ResizeSegment(c.segments, c.segmentIndex, 1) {
		return false
	}
	c.UpdateCandidateList()
	return true
}

// SegmentWidthShrink shrinks the focused segment by one unit via the
// engine, rebuilding the candidate list on success; a no-op on failure.
func (c *SessionConverter) SegmentWidthShrink() bool {
	if !c.CheckState(StateConversion) {
		return false
	}
	if !c.engine.ResizeSegment(c.segments, c.segmentIndex, -1) {
		return false
	}
	c.UpdateCandidateList()
	return true
}

func (c *SessionConverter) resetResultBuffer() {
	c.result = output.Result{}
}

// CandidateNext advances candidate focus by one, notifies the engine, and
// may trigger MaybeExpandPrediction.
func (c *SessionConverter) CandidateNext(composer Composer) bool {
	if !c.IsActive() {
		return false
	}
	c.resetResultBuffer()
	c.candidateList.MoveNext()
	c.SegmentFocus()
	c.MaybeExpandPrediction(composer)
	return true
}

// CandidatePrev rewinds candidate focus by one and notifies the engine.
func (c *SessionConverter) CandidatePrev() bool {
	if !c.IsActive() {
		return false
	}
	c.resetResultBuffer()
	c.candidateList.MovePrev()
	c.SegmentFocus()
	return true
}

// CandidateNextPage advances to the next candidate page and notifies the engine.
func (c *SessionConverter) CandidateNextPage() bool {
	if !c.IsActive() {
		return false
	}
	c.resetResultBuffer()
	c.candidateList.MoveNextPage()
	c.SegmentFocus()
	return true
}

// CandidatePrevPage rewinds to the previous candidate page and notifies the engine.
func (c *SessionConverter) CandidatePrevPage() bool {
	if !c.IsActive() {
		return false
	}
	c.resetResultBuffer()
	c.candidateList.MovePrevPage()
	c.SegmentFocus()
	return true
}

// CandidateMoveToId focuses the candidate with the given id anywhere in the
// list. From SUGGESTION, it first promotes to PREDICTION (a direct
// selection implies the user wants the richer prediction list).
func (c *SessionConverter) CandidateMoveToId(id int, composer Composer) bool {
	if !c.IsActive() {
		return false
	}
	if c.CheckState(StateSuggestion) {
		if !c.Predict(composer) {
			return false
		}
	}
	c.resetResultBuffer()
	c.candidateList.MoveToId(id)
	c.SegmentFocus()
	return true
}

// CandidateMoveToPageIndex focuses the i-th visible entry on the current
// page, failing if i is out of range for that page.
func (c *SessionConverter) CandidateMoveToPageIndex(i int) bool {
	if !c.IsActive() {
		return false
	}
	if !c.candidateList.MoveToPageIndex(i) {
		return false
	}
	c.resetResultBuffer()
	c.SegmentFocus()
	return true
}

// CandidateMoveToShortcut focuses the candidate associated with shortcut
// character ch. Fails without touching focus if the candidate window is
// hidden, no shortcuts are configured, ch is not among them, or the
// resulting index is out of page range.
func (c *SessionConverter) CandidateMoveToShortcut(ch rune) bool {
	if !c.candidateListVisible {
		logging.Verbose(1, "CandidateMoveToShortcut: window hidden")
		return false
	}
	shortcuts := c.operationPreferences.CandidateShortcuts
	if shortcuts == "" {
		logging.Verbose(1, "CandidateMoveToShortcut: no shortcuts configured")
		return false
	}
	idx := strings.IndexRune(shortcuts, ch)
	if idx < 0 {
		logging.Verbose(1, "CandidateMoveToShortcut: %q not in shortcuts", ch)
		return false
	}
	if !c.candidateList.MoveToPageIndex(idx) {
		logging.Verbose(1, "CandidateMoveToShortcut: index %d out of page range", idx)
		return false
	}
	c.resetResultBuffer()
	c.SegmentFocus()
	return true
}
