package detect

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"horse.fit/lingo/internal/language"
)

// ChatProvider abstracts the remote text-generation service. The returned
// string is unstructured model output expected to contain a JSON verdict.
type ChatProvider interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

//go:embed remote_verdict.schema.json
var verdictSchemaJSON string

var (
	verdictSchemaOnce sync.Once
	verdictSchema     *jsonschema.Schema
	verdictSchemaErr  error
)

type remoteVerdict struct {
	Language string `json:"language"`
	Reason   string `json:"reason"`
}

// remoteStage is the last line of defense: it always produces a result and
// never surfaces an error to arbitration. Network failures, timeouts,
// unparsable output, and unsupported codes all degrade to the fallback
// language at low confidence.
type remoteStage struct {
	provider ChatProvider
	fallback language.Code
	logger   zerolog.Logger
}

func newRemoteStage(provider ChatProvider, fallback language.Code, logger zerolog.Logger) *remoteStage {
	if !language.IsSupported(fallback) {
		fallback = language.Default
	}
	return &remoteStage{provider: provider, fallback: fallback, logger: logger}
}

func (r *remoteStage) resolve(ctx context.Context, text string) Result {
	if r.provider == nil {
		return r.degraded("no remote model configured")
	}

	raw, err := r.provider.Complete(ctx, buildPrompt(text))
	if err != nil {
		r.logger.Warn().Err(err).Msg("remote model call failed")
		return r.degraded("remote model call failed")
	}

	verdict, err := parseVerdict(raw)
	if err != nil {
		r.logger.Warn().Err(err).Msg("remote model returned an unparsable verdict")
		return r.degraded("remote model verdict was unparsable")
	}

	code, ok := language.Parse(verdict.Language)
	if !ok {
		r.logger.Warn().Str("code", verdict.Language).Msg("remote model returned an unsupported language")
		return r.degraded(fmt.Sprintf("remote model chose unsupported language %q", verdict.Language))
	}

	return Result{
		Language:   code,
		Confidence: remoteVerdictConfidence,
		Method:     MethodRemote,
		Reasoning:  verdict.Reason,
	}
}

func (r *remoteStage) degraded(note string) Result {
	return Result{
		Language:   r.fallback,
		Confidence: degradedConfidence,
		Method:     MethodDefault,
		Reasoning:  note + "; falling back to " + language.Name(r.fallback),
	}
}

// parseVerdict locates the JSON object in raw model output and validates it
// against the embedded schema before trusting any field.
func parseVerdict(raw string) (*remoteVerdict, error) {
	payload := extractJSONObject(raw)
	if payload == "" {
		return nil, fmt.Errorf("no JSON object in model output")
	}

	var value any
	if err := json.Unmarshal([]byte(payload), &value); err != nil {
		return nil, fmt.Errorf("decode verdict JSON: %w", err)
	}

	schema, err := loadVerdictSchema()
	if err != nil {
		return nil, fmt.Errorf("load verdict schema: %w", err)
	}
	if err := schema.Validate(value); err != nil {
		return nil, fmt.Errorf("verdict schema validation failed: %w", err)
	}

	var verdict remoteVerdict
	if err := json.Unmarshal([]byte(payload), &verdict); err != nil {
		return nil, fmt.Errorf("decode verdict fields: %w", err)
	}
	return &verdict, nil
}

func loadVerdictSchema() (*jsonschema.Schema, error) {
	verdictSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("remote_verdict.schema.json", strings.NewReader(verdictSchemaJSON)); err != nil {
			verdictSchemaErr = err
			return
		}
		verdictSchema, verdictSchemaErr = compiler.Compile("remote_verdict.schema.json")
	})
	return verdictSchema, verdictSchemaErr
}

// extractJSONObject returns the widest {...} span in raw, tolerating prose
// around the payload.
func extractJSONObject(raw string) string {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return ""
	}
	return raw[start : end+1]
}
