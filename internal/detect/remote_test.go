package detect

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"

	"horse.fit/lingo/internal/language"
)

// stubChat is a scripted ChatProvider.
type stubChat struct {
	reply string
	err   error
	calls atomic.Int32
	last  atomic.Pointer[string]
}

func (s *stubChat) Complete(_ context.Context, prompt string) (string, error) {
	s.calls.Add(1)
	s.last.Store(&prompt)
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func TestRemoteStageParsesStructuredVerdict(t *testing.T) {
	t.Parallel()

	provider := &stubChat{reply: `Sure. {"language": "de", "reason": "definite article and verb-final order"}`}
	stage := newRemoteStage(provider, language.English, zerolog.Nop())

	res := stage.resolve(context.Background(), "die Katze schläft")
	if res.Language != language.German {
		t.Fatalf("unexpected language: %q", res.Language)
	}
	if res.Method != MethodRemote {
		t.Fatalf("unexpected method: %q", res.Method)
	}
	if res.Confidence != remoteVerdictConfidence {
		t.Fatalf("unexpected confidence: %v", res.Confidence)
	}
	if res.Reasoning != "definite article and verb-final order" {
		t.Fatalf("unexpected reasoning: %q", res.Reasoning)
	}
}

func TestRemoteStageDegradesOnTransportError(t *testing.T) {
	t.Parallel()

	provider := &stubChat{err: errors.New("connection refused")}
	stage := newRemoteStage(provider, language.English, zerolog.Nop())

	res := stage.resolve(context.Background(), "anything")
	if res.Language != language.English || res.Method != MethodDefault {
		t.Fatalf("unexpected degraded result: %+v", res)
	}
	if res.Confidence != degradedConfidence {
		t.Fatalf("unexpected confidence: %v", res.Confidence)
	}
	if !strings.Contains(res.Reasoning, "falling back") {
		t.Fatalf("reasoning must note the fallback: %q", res.Reasoning)
	}
}

func TestRemoteStageDegradesOnMalformedOutput(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"no json":        "the language is German",
		"truncated":      `{"language": "de", "reason": "cut off`,
		"wrong type":     `{"language": 5}`,
		"missing field":  `{"reason": "no code"}`,
		"empty language": `{"language": ""}`,
	}

	for name, reply := range cases {
		stage := newRemoteStage(&stubChat{reply: reply}, language.English, zerolog.Nop())
		res := stage.resolve(context.Background(), "anything")
		if res.Language != language.English || res.Method != MethodDefault {
			t.Fatalf("%s: unexpected result: %+v", name, res)
		}
	}
}

func TestRemoteStageDegradesOnUnsupportedCode(t *testing.T) {
	t.Parallel()

	provider := &stubChat{reply: `{"language": "ru", "reason": "cyrillic"}`}
	stage := newRemoteStage(provider, language.English, zerolog.Nop())

	res := stage.resolve(context.Background(), "привет")
	if res.Language != language.English || res.Method != MethodDefault {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestRemoteStageWithoutProviderDegradesImmediately(t *testing.T) {
	t.Parallel()

	stage := newRemoteStage(nil, language.Spanish, zerolog.Nop())
	res := stage.resolve(context.Background(), "anything")
	if res.Language != language.Spanish || res.Method != MethodDefault {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestRemoteStagePromptCarriesInputText(t *testing.T) {
	t.Parallel()

	provider := &stubChat{reply: `{"language": "fr"}`}
	stage := newRemoteStage(provider, language.English, zerolog.Nop())
	stage.resolve(context.Background(), "un texte ambigu")

	prompt := provider.last.Load()
	if prompt == nil || !strings.Contains(*prompt, "un texte ambigu") {
		t.Fatal("prompt must embed the input text")
	}
}

func TestExtractJSONObject(t *testing.T) {
	t.Parallel()

	if got := extractJSONObject(`noise {"a": 1} trailing`); got != `{"a": 1}` {
		t.Fatalf("unexpected extraction: %q", got)
	}
	if got := extractJSONObject("no braces here"); got != "" {
		t.Fatalf("expected empty extraction, got %q", got)
	}
	if got := extractJSONObject("}{"); got != "" {
		t.Fatalf("expected empty extraction for reversed braces, got %q", got)
	}
}
