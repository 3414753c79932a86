package language

import "strings"

// Code is an ISO 639-1 code from the closed set of languages the detection
// engine can emit. The engine never produces a code outside this set; when
// nothing can be determined it degrades to Default instead.
type Code string

const (
	English  Code = "en"
	German   Code = "de"
	French   Code = "fr"
	Japanese Code = "ja"
	Spanish  Code = "es"
	Chinese  Code = "zh"
)

// Default is the language assumed when no stage can produce an answer.
const Default = English

var supported = []Code{English, German, French, Japanese, Spanish, Chinese}

var names = map[Code]struct {
	english string
	native  string
}{
	English:  {"English", "English"},
	German:   {"German", "Deutsch"},
	French:   {"French", "Français"},
	Japanese: {"Japanese", "日本語"},
	Spanish:  {"Spanish", "Español"},
	Chinese:  {"Chinese", "中文"},
}

// Three-letter and legacy aliases seen in model output and language tags.
var aliases = map[string]Code{
	"eng": English,
	"deu": German,
	"ger": German,
	"fra": French,
	"fre": French,
	"jpn": Japanese,
	"jp":  Japanese,
	"spa": Spanish,
	"zho": Chinese,
	"chi": Chinese,
	"cmn": Chinese,
}

// Supported returns the closed set of detectable languages in a stable order.
func Supported() []Code {
	out := make([]Code, len(supported))
	copy(out, supported)
	return out
}

// IsSupported reports whether code belongs to the closed set.
func IsSupported(code Code) bool {
	_, ok := names[code]
	return ok
}

// Name returns the English display name for a supported code.
func Name(code Code) string {
	return names[code].english
}

// NativeName returns the language's own name for a supported code.
func NativeName(code Code) string {
	return names[code].native
}

// Parse maps a raw language tag (for example "EN_us", "zh-Hans", "jpn") onto
// the supported set. The second return value is false when the tag is blank,
// malformed, or names a language outside the set.
func Parse(raw string) (Code, bool) {
	primary := primarySubtag(raw)
	if primary == "" {
		return "", false
	}
	if code := Code(primary); IsSupported(code) {
		return code, true
	}
	if code, ok := aliases[primary]; ok {
		return code, true
	}
	return "", false
}

// primarySubtag normalizes a tag to lowercase "-" form and returns the part
// before the first separator ("en" from "EN_us"). Empty string on invalid
// input.
func primarySubtag(raw string) string {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" {
		return ""
	}

	trimmed = strings.ReplaceAll(trimmed, "_", "-")
	primary, _, _ := strings.Cut(trimmed, "-")
	primary = strings.TrimSpace(primary)
	if primary == "" || !isAlphaLower(primary) {
		return ""
	}
	return primary
}

func isAlphaLower(value string) bool {
	for _, r := range value {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
