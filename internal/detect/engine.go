package detect

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"horse.fit/lingo/internal/language"
)

// Options configures a Detector. Zero-value fields fall back to the named
// defaults, so Options{} yields a heuristic-only detector that degrades to
// English.
type Options struct {
	// Subword backs the statistical stage; nil disables it.
	Subword SubwordProvider
	// Chat backs the remote stage; nil makes that stage degrade to the
	// default language immediately.
	Chat ChatProvider

	DefaultLanguage      language.Code
	StatisticalThreshold float64
	StatisticalFloor     float64
	HeuristicThreshold   float64
	RemoteGate           float64

	Logger zerolog.Logger
}

// Detector sequences the detection stages. Safe for concurrent use: the
// only shared mutable state is the statistical stage's memoized
// initialization.
type Detector struct {
	opts        Options
	statistical *statisticalStage
	remote      *remoteStage
	logger      zerolog.Logger
}

func New(opts Options) *Detector {
	if !language.IsSupported(opts.DefaultLanguage) {
		opts.DefaultLanguage = language.Default
	}
	if opts.StatisticalFloor <= 0 {
		opts.StatisticalFloor = DefaultStatisticalFloor
	}
	if opts.StatisticalThreshold <= 0 {
		opts.StatisticalThreshold = DefaultStatisticalThreshold
	}
	if opts.StatisticalThreshold < opts.StatisticalFloor {
		opts.StatisticalThreshold = opts.StatisticalFloor
	}
	if opts.HeuristicThreshold <= 0 {
		opts.HeuristicThreshold = DefaultHeuristicThreshold
	}
	if opts.RemoteGate <= 0 {
		opts.RemoteGate = DefaultRemoteGate
	}

	return &Detector{
		opts:        opts,
		statistical: newStatisticalStage(opts.Subword, opts.StatisticalFloor, opts.Logger),
		remote:      newRemoteStage(opts.Chat, opts.DefaultLanguage, opts.Logger),
		logger:      opts.Logger,
	}
}

// Detect runs the full pipeline. It never returns an error: every failure
// mode terminates in a low-confidence default result, because the caller
// needs some source-language hint to proceed with a translation request.
//
// Stages run strictly in the documented order and the remote call is never
// fired speculatively; it is reserved for inputs whose local-confidence
// estimate stays under the gate.
func (d *Detector) Detect(ctx context.Context, text string) Result {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return d.defaultResult("empty input")
	}

	statistical := d.statistical.tryDetect(ctx, trimmed)
	if statistical != nil && statistical.Confidence > d.opts.StatisticalThreshold {
		d.logStage(*statistical)
		return *statistical
	}

	stats := Scan(trimmed)
	heuristic := classify(trimmed, stats)
	if heuristic != nil && heuristic.Confidence > d.opts.HeuristicThreshold {
		d.logStage(*heuristic)
		return *heuristic
	}

	if localConfidence(stats) < d.opts.RemoteGate {
		result := d.remote.resolve(ctx, trimmed)
		d.logStage(result)
		return result
	}

	// Confident enough locally: take the best answer we already have,
	// even one that missed its own stage threshold.
	switch {
	case heuristic != nil:
		d.logStage(*heuristic)
		return *heuristic
	case statistical != nil:
		d.logStage(*statistical)
		return *statistical
	default:
		return d.defaultResult("all stages abstained")
	}
}

// DetectLocal is the synchronous variant for callers that cannot await
// I/O. It runs the heuristic cascade only and returns a Default-method
// result when the heuristic abstains. It never touches the statistical or
// remote stages.
func (d *Detector) DetectLocal(text string) Result {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return d.defaultResult("empty input")
	}
	if result := classify(trimmed, Scan(trimmed)); result != nil {
		return *result
	}
	return d.defaultResult("heuristic abstained")
}

// DefaultLanguage reports the language the detector degrades to.
func (d *Detector) DefaultLanguage() language.Code {
	return d.opts.DefaultLanguage
}

func (d *Detector) defaultResult(note string) Result {
	return Result{
		Language:   d.opts.DefaultLanguage,
		Confidence: degradedConfidence,
		Method:     MethodDefault,
		Reasoning:  note + "; assuming " + language.Name(d.opts.DefaultLanguage),
	}
}

func (d *Detector) logStage(result Result) {
	d.logger.Debug().
		Str("language", string(result.Language)).
		Float64("confidence", result.Confidence).
		Str("method", string(result.Method)).
		Msg("detection settled")
}

// Local-confidence bands for the remote gate. Values mirror how much each
// kind of evidence has been worth in practice; they are tunable, not
// derived.
const (
	scriptEvidenceConfidence = 0.85
	denseMarkerConfidence    = 0.80
	sparseMarkerConfidence   = 0.60
	longTextConfidence       = 0.65
	midTextConfidence        = 0.55
	shortTextConfidence      = 0.30
	neutralConfidence        = 0.50
)

// localConfidence estimates, from character statistics alone, how far local
// evidence can be trusted. Anything under the remote gate defers to the
// remote model; short token counts in particular are inherently ambiguous.
func localConfidence(stats Stats) float64 {
	markerEvidence := stats.Diacritics() + stats.SpanishPunct

	switch {
	case stats.Kana() > 0 || stats.Han > 0:
		return scriptEvidenceConfidence
	case markerEvidence > 0:
		if ratioOf(markerEvidence, stats.Total) >= markerDensityFloor {
			return denseMarkerConfidence
		}
		return sparseMarkerConfidence
	case stats.Tokens >= 5:
		return longTextConfidence
	case stats.Tokens >= 3:
		return midTextConfidence
	case stats.Tokens >= 1:
		return shortTextConfidence
	default:
		return neutralConfidence
	}
}
