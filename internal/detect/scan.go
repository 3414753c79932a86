package detect

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Stats holds script-class counts for one input string. All counts are
// non-negative and recomputed per call; nothing here is cached.
type Stats struct {
	Hiragana int
	Katakana int
	// Han counts CJK ideographs. Japanese kanji land here too, which is
	// why the kana check must always run before any Han-based decision.
	Han int
	// GermanMarkers counts letters found only in German among the
	// supported languages (ä ö ß).
	GermanMarkers int
	// FrenchMarkers counts letters found only in French among the
	// supported languages (grave, circumflex, cedilla, ligatures, ï).
	FrenchMarkers int
	// SpanishMarkers counts letters found only in Spanish among the
	// supported languages (ñ and acute a/i/o/u).
	SpanishMarkers int
	// SpanishPunct counts the inverted punctuation pair ¿ ¡.
	SpanishPunct int
	// SharedDiacritics counts diacritic letters that several supported
	// languages use (é, ü): evidence that the text is not plain English,
	// but not evidence for any single language.
	SharedDiacritics int
	Letters          int
	Tokens           int
	Total            int
}

// Kana returns the combined hiragana and katakana count.
func (s Stats) Kana() int {
	return s.Hiragana + s.Katakana
}

// Diacritics returns the aggregate Latin diacritic count across all
// supported languages, including the shared ones.
func (s Stats) Diacritics() int {
	return s.GermanMarkers + s.FrenchMarkers + s.SpanishMarkers + s.SharedDiacritics
}

const (
	germanUnique  = "äöß"
	frenchUnique  = "àâæçèêëîïôœùûÿ"
	spanishUnique = "ñáíóú"
	sharedLetters = "éü"
	spanishPunct  = "¿¡"
)

// Halfwidth katakana block, common in scraped Japanese web content.
const (
	halfwidthKanaLo = 0xFF66
	halfwidthKanaHi = 0xFF9D
)

// Scan classifies every rune of text into at most one script class and
// accumulates counts. Pure and total: it never fails, whatever the input.
func Scan(text string) Stats {
	stats := Stats{
		Tokens: len(strings.Fields(text)),
		Total:  utf8.RuneCountInString(text),
	}

	for _, r := range text {
		if unicode.IsLetter(r) {
			stats.Letters++
		}

		switch {
		case r >= 0x3040 && r <= 0x309F:
			stats.Hiragana++
		case r >= 0x30A0 && r <= 0x30FF, r >= halfwidthKanaLo && r <= halfwidthKanaHi:
			stats.Katakana++
		case r >= 0x4E00 && r <= 0x9FFF, r >= 0x3400 && r <= 0x4DBF:
			stats.Han++
		case strings.ContainsRune(spanishPunct, r):
			stats.SpanishPunct++
		default:
			lower := unicode.ToLower(r)
			switch {
			case strings.ContainsRune(germanUnique, lower):
				stats.GermanMarkers++
			case strings.ContainsRune(frenchUnique, lower):
				stats.FrenchMarkers++
			case strings.ContainsRune(spanishUnique, lower):
				stats.SpanishMarkers++
			case strings.ContainsRune(sharedLetters, lower):
				stats.SharedDiacritics++
			}
		}
	}

	return stats
}
