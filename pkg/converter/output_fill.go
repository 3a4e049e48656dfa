package converter

import "github.com/naoya-sato/henkan/pkg/output"

// GetPreeditAndConversion projects count conversion segments starting at
// index into a Preedit record, highlighting the focused segment.
//
// The second parameter is a count, not an absolute upper bound: the loop
// iterates i in [index, index+count), clamped to the number of conversion
// segments. (The source this was derived from wrote the loop bound as
// `i < size` with `size` meant as a count added to a starting `index` —
// collapsing to correct behavior only when index == 0. Every call site
// happened to pass index=0, leaving the bug latent; this implementation
// iterates the count from index correctly in all cases.)
func (c *SessionConverter) GetPreeditAndConversion(index, count int) output.Preedit {
	var pre output.Preedit
	total := c.segments.ConversionSegmentsSize()
	end := index + count
	if end > total {
		end = total
	}
	for i := index; i < end; i++ {
		if i < 0 {
			continue
		}
		seg := c.segments.ConversionSegment(i)
		id := c.getCandidateIndexForConverter(i)
		value, ok := c.candidateValueForSegment(i, id)
		if !ok {
			value = seg.Key()
		}
		pre.Segments = append(pre.Segments, output.PreeditSegment{
			Value:     value,
			Key:       seg.Key(),
			Highlight: i == c.segmentIndex && c.CheckState(StateConversion),
		})
	}
	return pre
}

// categoryForState maps the converter's current state to the Candidates
// category the output builder annotates its window with.
func (c *SessionConverter) categoryForState() output.Category {
	switch {
	case c.CheckState(StateSuggestion):
		return output.CategorySuggestion
	case c.CheckState(StatePrediction):
		return output.CategoryPrediction
	default:
		return output.CategoryConversion
	}
}

// FillOutput projects the converter's full current state into an
// output.Output record for a host UI: Preedit, Candidates, Result,
// AllCandidateWords, and Context.
func (c *SessionConverter) FillOutput() *output.Output {
	out := &output.Output{}

	if !c.CheckState(StateComposition) && c.segments.ConversionSegmentsSize() > 0 {
		pre := c.GetPreeditAndConversion(0, c.segments.ConversionSegmentsSize())
		out.Preedit = &pre
	}

	if c.candidateListVisible {
		category := c.categoryForState()
		out.Candidates = output.BuildCandidates(
			c.candidateList,
			category,
			output.DisplayMain,
			output.FooterForCategory(category),
			c.operationPreferences.CandidateShortcuts,
		)
	}

	if c.result.Value != "" || c.result.Key != "" {
		r := c.result
		out.Result = &r
	}

	if c.segments.ConversionSegmentsSize() > 0 && c.segmentIndex < c.segments.ConversionSegmentsSize() {
		seg := c.segments.ConversionSegment(c.segmentIndex)
		out.AllCandidateWords = output.BuildAllCandidateWords(seg, c.getCandidateIndexForConverter(c.segmentIndex), c.categoryForState())
	}

	output.FillContext(&out.Context, c.segments)
	return out
}
