// Package engine implements a reference Conversion Engine: a small embedded
// toy dictionary and greedy segmentation, satisfying converter.Engine. It
// exists so the repo has a runnable collaborator to exercise
// pkg/converter against; morphological analysis, lattice search and a real
// cost model are explicitly out of scope (spec.md §1's Non-goals).
package engine

import (
	"bufio"
	"embed"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/naoya-sato/henkan/pkg/converter"
	"github.com/naoya-sato/henkan/pkg/logging"
	"github.com/naoya-sato/henkan/pkg/segment"
)

//go:embed dictionary.tsv
var dictionaryFS embed.FS

// entry is one dictionary row: a kana reading plus its ranked surface forms.
type entry struct {
	reading    string
	surfaces   []string
	groupID    string // stable id for this reading's candidate group, for diagnostics/logging
}

// Dictionary is a loaded, queryable toy dictionary.
type Dictionary struct {
	byReading map[string]*entry
	bySurface map[string]string // surface -> reading, for reverse conversion
	maxRunes  int
}

// LoadDictionary parses the embedded dictionary.tsv (reading\tsurface1,surface2,...
// per line, '#'-prefixed comments and blank lines ignored).
func LoadDictionary() (*Dictionary, error) {
	f, err := dictionaryFS.Open("dictionary.tsv")
	if err != nil {
		return nil, err
	}
	defer f.Close()

	d := &Dictionary{
		byReading: make(map[string]*entry),
		bySurface: make(map[string]string),
	}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "\t", 2)
		if len(parts) != 2 {
			continue
		}
		reading := parts[0]
		surfaces := strings.Split(parts[1], ",")
		e := &entry{reading: reading, surfaces: surfaces, groupID: uuid.NewString()}
		d.byReading[reading] = e
		for _, s := range surfaces {
			d.bySurface[s] = reading
		}
		if n := runeLen(reading); n > d.maxRunes {
			d.maxRunes = n
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return d, nil
}

func runeLen(s string) int { return len([]rune(s)) }

// GroupID returns the stable id assigned to reading's candidate group at
// load time, for correlating log lines about the same dictionary entry
// across calls.
func (d *Dictionary) GroupID(reading string) (string, bool) {
	e, ok := d.byReading[reading]
	if !ok {
		return "", false
	}
	return e.groupID, true
}

// segmentReading greedily splits reading into dictionary-covered spans,
// preferring the longest match at each position; any uncovered rune becomes
// its own single-rune segment with itself as the sole candidate.
func (d *Dictionary) segmentReading(reading string) []string {
	runes := []rune(reading)
	var spans []string
	for i := 0; i < len(runes); {
		matched := false
		limit := d.maxRunes
		if limit == 0 || i+limit > len(runes) {
			limit = len(runes) - i
		}
		for l := limit; l >= 1; l-- {
			cand := string(runes[i : i+l])
			if _, ok := d.byReading[cand]; ok {
				spans = append(spans, cand)
				i += l
				matched = true
				break
			}
		}
		if !matched {
			spans = append(spans, string(runes[i]))
			i++
		}
	}
	return spans
}

func (d *Dictionary) candidatesFor(span string) []segment.Candidate {
	e, ok := d.byReading[span]
	if !ok {
		return []segment.Candidate{{Value: span, ContentKey: span}}
	}
	out := make([]segment.Candidate, len(e.surfaces))
	for i, s := range e.surfaces {
		out[i] = segment.Candidate{Value: s, ContentKey: span}
	}
	return out
}

// Engine is the reference converter.Engine implementation.
type Engine struct {
	dict *Dictionary
}

// New returns an Engine backed by the embedded toy dictionary.
func New(dict *Dictionary) *Engine {
	return &Engine{dict: dict}
}

func (e *Engine) fillFromReading(segs *segment.Segments, reading string) bool {
	if reading == "" {
		return false
	}
	segs.ClearConversionSegments()
	for _, span := range e.dict.segmentReading(reading) {
		seg := segs.AddSegment()
		seg.SetKey(span)
		seg.SetContentKey(span)
		for _, c := range e.dict.candidatesFor(span) {
			seg.AddCandidate(c)
		}
		if gid, ok := e.dict.GroupID(span); ok {
			logging.Verbose(2, "engine: span %q resolved to dictionary group %s", span, gid)
		}
	}
	return true
}

// StartConversionWithComposer fills segments from the composer's reading.
func (e *Engine) StartConversionWithComposer(segs *segment.Segments, composer converter.Composer) bool {
	return e.fillFromReading(segs, composer.GetQueryForConversion())
}

// StartSuggestion fills segments with every dictionary entry whose reading
// has preedit as a prefix, collapsed into one segment spanning preedit.
func (e *Engine) StartSuggestion(segs *segment.Segments, preedit string) bool {
	if preedit == "" {
		return false
	}
	var matches []*entry
	for reading, ent := range e.dict.byReading {
		if strings.HasPrefix(reading, preedit) {
			matches = append(matches, ent)
		}
	}
	if len(matches) == 0 {
		return false
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].reading < matches[j].reading })

	segs.ClearConversionSegments()
	seg := segs.AddSegment()
	seg.SetKey(preedit)
	seg.SetContentKey(preedit)
	for _, m := range matches {
		for _, s := range m.surfaces {
			seg.AddCandidate(segment.Candidate{Value: s, ContentKey: m.reading})
		}
	}
	return true
}

// StartPrediction fills segments the same way as StartSuggestion; a real
// engine would widen the result set on repeated predict_expand calls, but
// this reference dictionary has no notion of an exhausted result set.
func (e *Engine) StartPrediction(segs *segment.Segments, preedit string) bool {
	return e.StartSuggestion(segs, preedit)
}

// StartReverseConversion recovers a reading from surface text via the
// reverse index, falling back to per-character lookup when no whole-text
// entry exists.
func (e *Engine) StartReverseConversion(segs *segment.Segments, sourceText string) bool {
	if sourceText == "" {
		return false
	}
	if reading, ok := e.dict.bySurface[sourceText]; ok {
		segs.ClearConversionSegments()
		seg := segs.AddSegment()
		seg.SetKey(reading)
		seg.SetContentKey(reading)
		seg.AddCandidate(segment.Candidate{Value: reading, ContentKey: reading})
		return true
	}

	segs.ClearConversionSegments()
	for _, r := range sourceText {
		ch := string(r)
		reading, ok := e.dict.bySurface[ch]
		if !ok {
			logging.Warning("engine: no reverse entry for %q", ch)
			return false
		}
		seg := segs.AddSegment()
		seg.SetKey(reading)
		seg.SetContentKey(reading)
		seg.AddCandidate(segment.Candidate{Value: reading, ContentKey: reading})
	}
	return true
}

// ResizeSegment grows or shrinks the segment at index by delta characters of
// its neighbor's reading, re-running dictionary lookup over the new span.
//
// Every mutation below writes through a freshly-fetched
// segs.ConversionSegment(i) rather than holding a pointer across a call that
// can grow or rebuild the underlying slice (AddSegment, removeConversionSegment):
// segs.conversion is a plain slice, so append-driven reallocation silently
// strands any pointer captured beforehand.
func (e *Engine) ResizeSegment(segs *segment.Segments, index int, delta int) bool {
	n := segs.ConversionSegmentsSize()
	if index < 0 || index >= n {
		return false
	}
	runes := []rune(segs.ConversionSegment(index).Key())

	switch {
	case delta > 0:
		if index+1 >= n {
			return false
		}
		nextRunes := []rune(segs.ConversionSegment(index + 1).Key())
		if delta > len(nextRunes) {
			delta = len(nextRunes)
		}
		if delta == 0 {
			return false
		}
		runes = append(runes, nextRunes[:delta]...)
		remaining := nextRunes[delta:]

		e.replaceSegmentSpan(segs.ConversionSegment(index), string(runes))
		if len(remaining) == 0 {
			e.removeConversionSegment(segs, index+1)
		} else {
			e.replaceSegmentSpan(segs.ConversionSegment(index+1), string(remaining))
		}
		return true

	case delta < 0:
		m := -delta
		if m >= len(runes) {
			return false
		}
		removed := runes[len(runes)-m:]
		kept := runes[:len(runes)-m]
		e.replaceSegmentSpan(segs.ConversionSegment(index), string(kept))

		if index+1 < n {
			merged := string(removed) + segs.ConversionSegment(index+1).Key()
			e.replaceSegmentSpan(segs.ConversionSegment(index+1), merged)
		} else {
			// index was the last segment: AddSegment appends directly after it.
			newSeg := segs.AddSegment()
			e.replaceSegmentSpan(newSeg, string(removed))
		}
		return true

	default:
		return false
	}
}

func (e *Engine) replaceSegmentSpan(seg *segment.Segment, span string) {
	seg.Clear()
	seg.SetKey(span)
	seg.SetContentKey(span)
	for _, c := range e.dict.candidatesFor(span) {
		seg.AddCandidate(c)
	}
}

func (e *Engine) removeConversionSegment(segs *segment.Segments, index int) {
	n := segs.ConversionSegmentsSize()
	spans := make([]string, 0, n-1)
	for i := 0; i < n; i++ {
		if i == index {
			continue
		}
		spans = append(spans, segs.ConversionSegment(i).Key())
	}
	segs.ClearConversionSegments()
	for _, span := range spans {
		seg := segs.AddSegment()
		e.replaceSegmentSpan(seg, span)
	}
}

// FocusSegmentValue and CommitSegmentValue are no-ops for this reference
// engine: it has no persistent per-segment selection model to update.
func (e *Engine) FocusSegmentValue(segs *segment.Segments, index int, candidateID int)  {}
func (e *Engine) CommitSegmentValue(segs *segment.Segments, index int, candidateID int) {}

// SubmitFirstSegment drops conversion segment 0 and shifts the rest down,
// per the Engine contract (the converter never performs this shift itself).
func (e *Engine) SubmitFirstSegment(segs *segment.Segments, candidateID int) {
	n := segs.ConversionSegmentsSize()
	if n == 0 {
		return
	}
	spans := make([]string, 0, n-1)
	for i := 1; i < n; i++ {
		spans = append(spans, segs.ConversionSegment(i).Key())
	}
	segs.ClearConversionSegments()
	for _, span := range spans {
		seg := segs.AddSegment()
		e.replaceSegmentSpan(seg, span)
	}
}

// FinishConversion learns nothing (this reference engine has no trainable
// model) and moves the finished conversion segments into history so later
// calls see them as context, mirroring the real Engine's role described in
// spec.md §4.4 (history feeds back into further conversion when
// use_history is enabled).
func (e *Engine) FinishConversion(segs *segment.Segments) {
	if !segs.UseHistory() {
		return
	}
	for i := 0; i < segs.ConversionSegmentsSize(); i++ {
		segs.AddHistorySegment(segs.ConversionSegment(i).Clone())
	}
}

// CancelConversion and ResetConversion have nothing engine-side to undo for
// this reference implementation beyond what the converter itself clears.
func (e *Engine) CancelConversion(segs *segment.Segments) {}
func (e *Engine) ResetConversion(segs *segment.Segments)  {}

// RevertConversion is unsupported by this reference engine.
func (e *Engine) RevertConversion(segs *segment.Segments) {}
