// Package converter implements the Session Converter state machine
// (component C4): all conversion-mode transitions and policy. It mediates
// between a borrowed Composer and a borrowed Engine, producing
// output.Output records for a host UI.
package converter

import "github.com/naoya-sato/henkan/pkg/segment"

// Engine is the Conversion Engine external collaborator: morphological
// analysis, lattice search, and the cost model live entirely behind this
// interface. The converter never mutates segments itself except through
// these calls (plus the pure container operations segment.Segments exposes).
type Engine interface {
	// StartConversionWithComposer fills segments from the composer's
	// reading. Returns false on failure (segments left unspecified).
	StartConversionWithComposer(segments *segment.Segments, composer Composer) bool
	// StartSuggestion fills segments with suggestions for preedit.
	StartSuggestion(segments *segment.Segments, preedit string) bool
	// StartPrediction fills segments with predictions for preedit. Called
	// again during predict_expand with the same preedit to request more.
	StartPrediction(segments *segment.Segments, preedit string) bool
	// StartReverseConversion recovers a reading from surface text.
	StartReverseConversion(segments *segment.Segments, sourceText string) bool
	// ResizeSegment grows or shrinks the segment at index by delta
	// characters, re-running conversion over the new boundary.
	ResizeSegment(segments *segment.Segments, index int, delta int) bool
	// FocusSegmentValue notifies the engine that candidateID is now the
	// tentative selection for the segment at index (does not commit it).
	FocusSegmentValue(segments *segment.Segments, index int, candidateID int)
	// CommitSegmentValue commits candidateID as the fixed selection for the
	// segment at index, without finalizing the whole conversion.
	CommitSegmentValue(segments *segment.Segments, index int, candidateID int)
	// SubmitFirstSegment commits candidateID for segment 0 and drops it
	// from segments, shifting the remaining segments down by one.
	SubmitFirstSegment(segments *segment.Segments, candidateID int)
	// FinishConversion finalizes the conversion, e.g. committing learned
	// usage statistics and moving conversion segments into history.
	FinishConversion(segments *segment.Segments)
	// CancelConversion abandons the conversion in progress while preserving
	// history context.
	CancelConversion(segments *segment.Segments)
	// ResetConversion fully resets engine-side state, clearing history.
	ResetConversion(segments *segment.Segments)
	// RevertConversion undoes the most recent commit, if the engine
	// supports it.
	RevertConversion(segments *segment.Segments)
}

// Composer is the pre-conversion keystroke buffer external collaborator. It
// is borrowed by the Session Converter only for the duration of a call that
// takes it and is never retained; FillOutput renders the preedit from the
// converter's own segments and does not read the composer.
type Composer interface {
	// GetQueryForConversion returns the reading to hand the engine for a
	// full conversion.
	GetQueryForConversion() string
	// GetQueryForPrediction returns the reading to hand the engine for
	// suggestion/prediction.
	GetQueryForPrediction() string
	// GetStringForSubmission returns the text to commit verbatim, for
	// CommitPreedit.
	GetStringForSubmission() string
	// InsertCharacterPreedit appends one UTF-8 character to the composer's
	// buffer, used by ConvertReverse to feed back a recovered reading.
	InsertCharacterPreedit(ch string)
	// DeleteAt removes the character at byte-independent rune position pos.
	DeleteAt(pos int)
	// GetLength returns the number of runes currently buffered.
	GetLength() int
	// Reset clears the buffer.
	Reset()
	// SetSourceText records the original surface text a reverse conversion
	// was started from.
	SetSourceText(text string)
	// Empty reports whether the buffer holds no characters.
	Empty() bool
}
