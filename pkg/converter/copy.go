package converter

import "github.com/naoya-sato/henkan/pkg/output"

// CopyFrom replaces the receiver's full state with a deep copy of src's —
// segments, candidate list focus (re-anchored by id after a full
// UpdateCandidateList rebuild, not by raw index, since arena layouts
// between the two lists are independent), state, preferences, result,
// previous-suggestions, composition string, and candidate visibility — but
// never the borrowed composer or engine references, since neither is ever
// retained as converter state (see interfaces.go).
//
// Order matters here exactly as in the source this is grounded on: Reset
// first so stale state cannot leak, then segments, then scalar state, then
// rebuild-and-refocus last so the rebuilt list reflects the copied
// segments and segmentIndex before the focus id is re-applied.
func (c *SessionConverter) CopyFrom(src *SessionConverter) {
	c.segments.Clear()
	c.result = output.Result{}
	c.clearConversionState()

	c.segments.CopyFrom(src.segments)
	c.segmentIndex = src.segmentIndex

	c.state = src.state
	c.conversionPreferences = src.conversionPreferences
	c.operationPreferences = src.operationPreferences
	c.result = src.result
	c.composition = src.composition
	c.candidateListVisible = src.candidateListVisible

	if src.previousSuggestions != nil {
		clone := src.previousSuggestions.Clone()
		c.previousSuggestions = &clone
	} else {
		c.previousSuggestions = nil
	}

	focusedID := src.candidateList.FocusedId()
	c.UpdateCandidateList()
	c.candidateList.MoveToId(focusedID)
}
