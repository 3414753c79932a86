package detect

import (
	"context"
	"fmt"
	"strings"

	lingua "github.com/pemistahl/lingua-go"
)

// linguaProvider backs the statistical stage with the lingua-go n-gram
// models, restricted to the supported set so the detector never wastes
// memory on languages it cannot emit.
type linguaProvider struct {
	detector lingua.LanguageDetector
}

// NewLinguaProvider returns the default SubwordProvider. Model loading is
// deferred to Load so construction stays cheap.
func NewLinguaProvider() SubwordProvider {
	return &linguaProvider{}
}

func (p *linguaProvider) Load(_ context.Context) error {
	p.detector = lingua.NewLanguageDetectorBuilder().
		FromLanguages(
			lingua.English,
			lingua.German,
			lingua.French,
			lingua.Japanese,
			lingua.Spanish,
			lingua.Chinese,
		).
		WithPreloadedLanguageModels().
		Build()
	return nil
}

func (p *linguaProvider) Identify(_ context.Context, text string) (Identification, error) {
	if p.detector == nil {
		return Identification{}, fmt.Errorf("lingua detector is not loaded")
	}

	detected, exists := p.detector.DetectLanguageOf(text)
	if !exists {
		return Identification{}, nil
	}

	return Identification{
		Tag:   strings.ToLower(detected.IsoCode639_1().String()),
		Score: p.detector.ComputeLanguageConfidence(text, detected),
	}, nil
}
