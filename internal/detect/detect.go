// Package detect decides the natural language of a short text snippet.
//
// Detection runs as a staged pipeline: a statistical subword model first,
// deterministic script/character heuristics second, and a remote text model
// as the last resort for genuinely ambiguous inputs. Each stage reports a
// self-assessed confidence; the engine short-circuits at the first stage
// that clears its threshold and otherwise degrades to the configured
// default language rather than failing.
package detect

import "horse.fit/lingo/internal/language"

// Method identifies which pipeline stage produced a result.
type Method string

const (
	MethodStatistical Method = "statistical"
	MethodHeuristic   Method = "heuristic"
	MethodRemote      Method = "remote"
	MethodDefault     Method = "default"
)

// Result is one detection verdict. Confidence is a self-reported scalar in
// [0,1] used for thresholding, not a calibrated probability.
type Result struct {
	Language   language.Code `json:"language"`
	Confidence float64       `json:"confidence"`
	Method     Method        `json:"method"`
	Reasoning  string        `json:"reasoning,omitempty"`
}

// Stage thresholds. Empirically chosen defaults, overridable through
// Options; none of them carries a deeper statistical justification.
const (
	// DefaultStatisticalThreshold gates returning the subword model's
	// answer directly. Must stay >= DefaultStatisticalFloor.
	DefaultStatisticalThreshold = 0.85
	// DefaultStatisticalFloor is the minimum model confidence the adapter
	// accepts before it abstains.
	DefaultStatisticalFloor = 0.85
	// DefaultHeuristicThreshold gates returning the heuristic answer
	// directly.
	DefaultHeuristicThreshold = 0.75
	// DefaultRemoteGate is compared against the local-confidence estimate;
	// estimates below it send the text to the remote model.
	DefaultRemoteGate = 0.70

	// remoteVerdictConfidence is reported for a parsed remote answer.
	remoteVerdictConfidence = 0.90
	// degradedConfidence is reported whenever the pipeline falls back to
	// the default language.
	degradedConfidence = 0.50
)
