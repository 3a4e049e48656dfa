package converter

// ConversionPreferences controls how history segments feed back into
// further conversion.
type ConversionPreferences struct {
	UseHistory     bool
	MaxHistorySize int
}

// DefaultConversionPreferences returns the spec's defaults
// (use_history=true, max_history_size=3).
func DefaultConversionPreferences() ConversionPreferences {
	return ConversionPreferences{UseHistory: true, MaxHistorySize: 3}
}

// OperationPreferences controls candidate-list presentation policy.
type OperationPreferences struct {
	UseCascadingWindow bool
	CandidateShortcuts string
}

// DefaultOperationPreferences returns the spec's defaults
// (use_cascading_window=true, candidate_shortcuts="").
func DefaultOperationPreferences() OperationPreferences {
	return OperationPreferences{UseCascadingWindow: true}
}
