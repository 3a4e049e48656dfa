// Package output projects Session Converter state into the UI-facing
// records a host application renders (component C3): Preedit, Candidates,
// Result, and AllCandidateWords. These are pure functions over the data
// model in package segment and package candidatelist; they hold no state of
// their own.
package output

import (
	"strings"

	"github.com/naoya-sato/henkan/pkg/candidatelist"
	"github.com/naoya-sato/henkan/pkg/segment"
	"github.com/naoya-sato/henkan/pkg/transliteration"
)

// Category classifies which operation produced a Candidates window.
type Category int

const (
	CategoryConversion Category = iota
	CategoryPrediction
	CategorySuggestion
	CategoryUsage
	CategoryTransliteration
)

// DisplayType distinguishes the main candidate window from a nested
// cascading sub-window (e.g. the transliteration sub-list).
type DisplayType int

const (
	DisplayMain DisplayType = iota
	DisplayCascade
)

// PreeditSegment is one highlightable span of the composition text.
type PreeditSegment struct {
	Value     string
	Key       string
	Highlight bool // true for the segment currently in focus during conversion
}

// Preedit is the current composition text, optionally segmented with a
// highlighted focused segment during conversion.
type Preedit struct {
	Segments []PreeditSegment
}

// String concatenates all segment values, the flattened preedit text.
func (p Preedit) String() string {
	var b strings.Builder
	for _, s := range p.Segments {
		b.WriteString(s.Value)
	}
	return b.String()
}

// CandidateWord is one entry in a rendered candidate window.
type CandidateWord struct {
	ID    int
	Value string
	Attrs transliteration.Attributes
}

// Candidates is the visible candidate window: the current page, its index,
// the within-page focused offset, and rendering metadata.
type Candidates struct {
	Entries      []CandidateWord
	PageIndex    int
	FocusedIndex int // within-page offset of the focused entry
	Category     Category
	DisplayType  DisplayType
	Footer       string
	Shortcuts    string // e.g. "123456789", index-aligned with Entries

	// Transliteration, when non-nil, is the nested sub-window rendered
	// below the main list when use_cascading_window is enabled.
	Transliteration *Candidates
	// Usage, when non-nil, is a nested usage/footnote sub-window.
	Usage *Candidates
}

// Result is the finalized text delivered to the host application on commit.
type Result struct {
	Value string
	Key   string // the reading that produced Value
}

// AllCandidateWords is the full, unpaginated candidate list for a segment.
type AllCandidateWords struct {
	Entries      []CandidateWord
	FocusedIndex int
	Category     Category
}

// Context carries ambient fields not owned by the converter's core state.
type Context struct {
	PrecedingText string
}

// Output is the full nested record produced by FillOutput.
type Output struct {
	Preedit           *Preedit
	Candidates        *Candidates
	Result            *Result
	AllCandidateWords *AllCandidateWords
	Context           Context
}

// FooterForCategory returns the hint text shown beneath a candidate window
// for the given category, mirroring the per-category footer the original
// fills in independently of any caller-supplied text.
func FooterForCategory(category Category) string {
	switch category {
	case CategorySuggestion:
		return "Tab: more suggestions"
	case CategoryPrediction:
		return "Shift+Tab: more predictions"
	case CategoryTransliteration:
		return "Ctrl+T: cycle transliteration"
	case CategoryUsage:
		return ""
	default:
		return "Space: next candidate"
	}
}

// BuildCandidates projects a candidatelist.List's current page into a
// Candidates record. category and displayType are supplied by the caller
// (package converter), which knows which operation produced the list.
func BuildCandidates(list *candidatelist.List, category Category, displayType DisplayType, footer, shortcuts string) *Candidates {
	if list == nil || list.Size() == 0 {
		return nil
	}
	entries, pageIdx, focusOff := list.CurrentPage()
	out := &Candidates{
		PageIndex:    pageIdx,
		FocusedIndex: focusOff,
		Category:     category,
		DisplayType:  displayType,
		Footer:       footer,
		Shortcuts:    shortcuts,
	}
	for _, e := range entries {
		if e.IsSubList {
			out.attachSubList(list, e)
			continue
		}
		out.Entries = append(out.Entries, CandidateWord{ID: e.ID, Value: e.Value, Attrs: e.Attrs})
	}
	return out
}

// attachSubList projects a nested sub-list entry into the matching cascade
// field. Usage is named "usage", everything else (currently only the
// transliteration sub-list) attaches as Transliteration.
func (out *Candidates) attachSubList(list *candidatelist.List, e candidatelist.Entry) {
	entries, pageIdx, focusOff, name := list.SubPage(e.SubIndex)
	sub := &Candidates{
		PageIndex:    pageIdx,
		FocusedIndex: focusOff,
		DisplayType:  DisplayCascade,
	}
	for _, se := range entries {
		if se.IsSubList {
			continue // sub-lists are not themselves nested further
		}
		sub.Entries = append(sub.Entries, CandidateWord{ID: se.ID, Value: se.Value, Attrs: se.Attrs})
	}
	if name == "usage" {
		sub.Category = CategoryUsage
		out.Usage = sub
		return
	}
	sub.Category = CategoryTransliteration
	out.Transliteration = sub
}

// BuildAllCandidateWords projects the full (unpaginated) segment candidate
// list, independent of any candidatelist.List pagination.
func BuildAllCandidateWords(seg *segment.Segment, focusedID int, category Category) *AllCandidateWords {
	if seg == nil {
		return nil
	}
	out := &AllCandidateWords{Category: category}
	for i := 0; i < seg.CandidatesSize(); i++ {
		c := seg.Candidate(i)
		out.Entries = append(out.Entries, CandidateWord{ID: i, Value: c.Value})
		if i == focusedID {
			out.FocusedIndex = len(out.Entries) - 1
		}
	}
	return out
}

// FillPreeditResult writes preedit text as a Result without running
// conversion, the helper used by CommitPreedit and CommitHead.
func FillPreeditResult(preedit string, result *Result) {
	result.Value = preedit
	result.Key = preedit
}

// NormalizePreeditText applies canonical text normalization prior to
// filling a Result. The exact mapping is delegated to a text-normalizer
// collaborator; the identity mapping below is the only normalization this
// package is itself responsible for (width/case canonicalization belongs to
// a platform-specific normalizer the caller may substitute).
func NormalizePreeditText(in string) string {
	return in
}

// FillContext fills ctx.PrecedingText from the top candidate value of each
// history segment, but only when the client has not already supplied one —
// it never overwrites a non-empty PrecedingText the caller pre-populated.
func FillContext(ctx *Context, segments *segment.Segments) {
	if ctx.PrecedingText != "" {
		return
	}
	var b strings.Builder
	for i := 0; i < segments.HistorySegmentsSize(); i++ {
		hs := segments.HistorySegment(i)
		if hs.CandidatesSize() > 0 {
			b.WriteString(hs.Candidate(0).Value)
		}
	}
	ctx.PrecedingText = b.String()
}
