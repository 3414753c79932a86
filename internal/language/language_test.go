package language

import "testing"

func TestParse(t *testing.T) {
	t.Parallel()

	if got, ok := Parse(" EN_us "); !ok || got != English {
		t.Fatalf("unexpected parse of EN_us: %q ok=%v", got, ok)
	}
	if got, ok := Parse("zh-Hans"); !ok || got != Chinese {
		t.Fatalf("unexpected parse of zh-Hans: %q ok=%v", got, ok)
	}
	if got, ok := Parse("jpn"); !ok || got != Japanese {
		t.Fatalf("unexpected parse of jpn: %q ok=%v", got, ok)
	}
	if got, ok := Parse("cmn"); !ok || got != Chinese {
		t.Fatalf("unexpected parse of cmn: %q ok=%v", got, ok)
	}
}

func TestParseRejectsUnsupported(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "  ", "ru", "pt-BR", "en123", "日本語"} {
		if got, ok := Parse(raw); ok {
			t.Fatalf("expected %q to be rejected, got %q", raw, got)
		}
	}
}

func TestSupportedSetIsClosed(t *testing.T) {
	t.Parallel()

	codes := Supported()
	if len(codes) != 6 {
		t.Fatalf("unexpected supported language count: %d", len(codes))
	}
	for _, code := range codes {
		if !IsSupported(code) {
			t.Fatalf("supported code %q not reported as supported", code)
		}
		if Name(code) == "" || NativeName(code) == "" {
			t.Fatalf("missing display names for %q", code)
		}
	}
	if !IsSupported(Default) {
		t.Fatalf("default language %q must be in the supported set", Default)
	}
}
