package converter

import (
	"github.com/naoya-sato/henkan/pkg/logging"
	"github.com/naoya-sato/henkan/pkg/output"
	"github.com/naoya-sato/henkan/pkg/segment"
)

// Suggest starts a suggestion for the composer's partial reading.
// Pre: state in {COMPOSITION, SUGGESTION}.
func (c *SessionConverter) Suggest(composer Composer) bool {
	if composer == nil {
		logging.Error("Suggest: composer is nil")
		return false
	}
	if !c.CheckState(StateComposition | StateSuggestion) {
		logging.Error("Suggest: invalid state %v", c.state)
		return false
	}
	c.result = output.Result{}
	c.segmentIndex = 0
	c.composition = ""
	c.previousSuggestions = nil

	preedit := composer.GetQueryForPrediction()
	if !c.engine.StartSuggestion(c.segments, preedit) {
		logging.Warning("Suggest: engine failed for %q", preedit)
		return false
	}
	c.segments.SetRequestType(segment.RequestSuggestion)

	if c.segments.ConversionSegmentsSize() > 0 {
		clone := c.segments.ConversionSegment(0).Clone()
		c.previousSuggestions = &clone
	}

	c.state = StateSuggestion
	c.UpdateCandidateList()
	c.candidateList.SetFocused(false)
	c.candidateListVisible = true
	return true
}

// Predict starts or expands a prediction for the composer's reading.
// Pre: state in {COMPOSITION, SUGGESTION, PREDICTION, CONVERSION}.
//
// When state is already PREDICTION this is "predict_expand": engine
// failure is tolerated and the existing candidate list remains usable.
// Otherwise it is "predict_first": engine failure resets to COMPOSITION
// and returns false.
func (c *SessionConverter) Predict(composer Composer) bool {
	if composer == nil {
		logging.Error("Predict: composer is nil")
		return false
	}
	if !c.CheckState(StateComposition | StateSuggestion | StatePrediction | StateConversion) {
		logging.Error("Predict: invalid state %v", c.state)
		return false
	}
	expand := c.CheckState(StatePrediction)

	preedit := composer.GetQueryForPrediction()
	if !c.engine.StartPrediction(c.segments, preedit) {
		if expand {
			logging.Warning("Predict: engine failed during expand, keeping existing list for %q", preedit)
			return true
		}
		logging.Warning("Predict: engine failed for %q", preedit)
		c.clearConversionState()
		return false
	}
	c.segments.SetRequestType(segment.RequestPrediction)

	if c.previousSuggestions != nil && c.segments.ConversionSegmentsSize() > 0 {
		first := c.segments.ConversionSegment(0)
		prev := c.previousSuggestions.Candidates()
		for i := len(prev) - 1; i >= 0; i-- {
			first.PushFrontCandidate(prev[i])
		}
		first.SetMetaCandidates(append([]segment.Candidate(nil), c.previousSuggestions.MetaCandidates()...))
	}

	c.segmentIndex = 0
	c.state = StatePrediction
	c.UpdateCandidateList()
	c.candidateListVisible = true
	return true
}

// MaybeExpandPrediction requests more predictions and seamlessly restores
// focus to the previously-last entry, but only when state is PREDICTION
// and focus currently sits on the candidate list's last index; otherwise a
// no-op with no engine call.
func (c *SessionConverter) MaybeExpandPrediction(composer Composer) {
	if !c.CheckState(StatePrediction) {
		return
	}
	if c.candidateList.FocusedIndex() != c.candidateList.LastIndex() {
		return
	}
	lastID := c.candidateList.FocusedId()
	if !c.Predict(composer) {
		return
	}
	c.candidateList.MoveToId(lastID)
}
