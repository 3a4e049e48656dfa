package converter

import (
	"strings"
	"unicode/utf8"

	"github.com/naoya-sato/henkan/pkg/logging"
	"github.com/naoya-sato/henkan/pkg/output"
	"github.com/naoya-sato/henkan/pkg/segment"
)

// commitAll writes every conversion segment's focused candidate into the
// result buffer, tells the engine to commit each one and finalize, and
// returns to COMPOSITION. Shared by Commit and CommitSuggestion, which
// differ only in their precondition and in CommitSuggestion's preceding
// focus move.
func (c *SessionConverter) commitAll() {
	var value, key strings.Builder
	n := c.segments.ConversionSegmentsSize()
	for i := 0; i < n; i++ {
		seg := c.segments.ConversionSegment(i)
		id := c.getCandidateIndexForConverter(i)
		if v, ok := c.candidateValueForSegment(i, id); ok {
			value.WriteString(v)
		}
		key.WriteString(seg.Key())
		c.engine.CommitSegmentValue(c.segments, i, id)
	}
	c.engine.FinishConversion(c.segments)
	c.result = output.Result{Value: value.String(), Key: key.String()}
	c.clearConversionState()
}

// clearConversionState returns the converter to COMPOSITION, clearing all
// per-conversion state except the result buffer (callers set that
// themselves, since some — like Reset from COMPOSITION — intentionally
// leave it alone).
func (c *SessionConverter) clearConversionState() {
	c.segments.ClearConversionSegments()
	c.candidateList.Clear()
	c.candidateListVisible = false
	c.segmentIndex = 0
	c.previousSuggestions = nil
	c.composition = ""
	c.state = StateComposition
}

// Commit writes all conversion segments' focused candidates into the
// result and returns to COMPOSITION.
// Pre: state in {PREDICTION, CONVERSION}.
func (c *SessionConverter) Commit() bool {
	if !c.CheckState(StatePrediction | StateConversion) {
		logging.Error("Commit: invalid state %v", c.state)
		return false
	}
	c.commitAll()
	return true
}

// CommitSuggestion moves candidate list focus to index on the current page
// and then commits, as Commit does for a single segment.
// Pre: state == SUGGESTION.
func (c *SessionConverter) CommitSuggestion(index int) bool {
	if !c.CheckState(StateSuggestion) {
		logging.Error("CommitSuggestion: invalid state %v", c.state)
		return false
	}
	if !c.candidateList.MoveToPageIndex(index) {
		logging.Verbose(1, "CommitSuggestion: index %d out of range", index)
		return false
	}
	c.commitAll()
	return true
}

// CommitFirstSegment commits only the first conversion segment, shifting
// the remaining segments left by one and keeping the converter in its
// current active state. With a single segment it delegates to Commit.
// Pre: state in {PREDICTION, CONVERSION}.
func (c *SessionConverter) CommitFirstSegment(composer Composer) bool {
	if !c.CheckState(StatePrediction | StateConversion) {
		logging.Error("CommitFirstSegment: invalid state %v", c.state)
		return false
	}
	if composer == nil {
		logging.Error("CommitFirstSegment: composer is nil")
		return false
	}
	if c.segments.ConversionSegmentsSize() <= 1 {
		return c.Commit()
	}

	seg := c.segments.ConversionSegment(0)
	id := c.getCandidateIndexForConverter(0)
	if v, ok := c.candidateValueForSegment(0, id); ok {
		c.result.Value += v
	}
	c.result.Key += seg.Key()

	n := utf8.RuneCountInString(seg.Key())
	for i := 0; i < n; i++ {
		composer.DeleteAt(0)
	}
	if c.segmentIndex > 0 {
		c.segmentIndex--
	}

	c.engine.SubmitFirstSegment(c.segments, id)
	c.UpdateCandidateList()
	return true
}

// CommitPreedit commits the raw composition without running conversion,
// seeding a single history-recording segment so the engine can learn from
// it, and returns to COMPOSITION.
func (c *SessionConverter) CommitPreedit(composer Composer) bool {
	if composer == nil {
		logging.Error("CommitPreedit: composer is nil")
		return false
	}
	preedit := composer.GetStringForSubmission()
	normalized := output.NormalizePreeditText(preedit)
	output.FillPreeditResult(normalized, &c.result)

	c.segments.ClearConversionSegments()
	seg := c.segments.AddSegment()
	seg.SetKey(normalized)
	seg.SetContentKey(normalized)
	seg.AddCandidate(segment.Candidate{Value: normalized, ContentKey: normalized})

	c.engine.FinishConversion(c.segments)
	c.clearConversionState()
	return true
}

// CommitHead commits the first count UTF-8 characters of the preedit
// without running conversion, clamping count to the preedit's length, and
// removes them from the composer. State is unchanged — CommitHead is used
// mid-composition, not as a terminal commit.
func (c *SessionConverter) CommitHead(count int, composer Composer) bool {
	if composer == nil {
		logging.Error("CommitHead: composer is nil")
		return false
	}
	preedit := composer.GetStringForSubmission()
	runes := []rune(preedit)
	if count > len(runes) {
		count = len(runes)
	}
	if count < 0 {
		count = 0
	}
	normalized := output.NormalizePreeditText(string(runes[:count]))
	output.FillPreeditResult(normalized, &c.result)
	for i := 0; i < count; i++ {
		composer.DeleteAt(0)
	}
	return true
}

// Revert forwards to the engine, undoing the most recent commit if
// supported.
func (c *SessionConverter) Revert() {
	c.engine.RevertConversion(c.segments)
}

// Cancel abandons the conversion in progress while preserving history
// context, and returns to COMPOSITION.
// Pre: state in {PREDICTION, CONVERSION}.
func (c *SessionConverter) Cancel() bool {
	if !c.CheckState(StatePrediction | StateConversion) {
		logging.Error("Cancel: invalid state %v", c.state)
		return false
	}
	c.engine.CancelConversion(c.segments)
	c.result = output.Result{}
	c.clearConversionState()
	return true
}

// Reset fully clears converter state and returns to COMPOSITION. If no
// conversion segments are active, it also asks the engine to fully reset
// (clearing history) — this happens regardless of current state, including
// when already in COMPOSITION, since that is the common idle "clear history"
// call. Past that engine notify, being already in COMPOSITION is a no-op —
// in particular the result buffer is left untouched.
func (c *SessionConverter) Reset() {
	if c.segments.ConversionSegmentsSize() == 0 {
		c.engine.ResetConversion(c.segments)
	}
	if c.CheckState(StateComposition) {
		return
	}
	c.segments.Clear()
	c.result = output.Result{}
	c.clearConversionState()
}
