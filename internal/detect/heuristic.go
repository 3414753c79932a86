package detect

import (
	"fmt"
	"strings"
	"unicode"

	"horse.fit/lingo/internal/language"
)

// Heuristic confidence shaping. Scaled values are clamped to the rule's
// ceiling so density never pushes a heuristic past it.
const (
	kanaBaseConfidence   = 0.80
	kanaMaxConfidence    = 0.98
	markerBaseConfidence = 0.85
	markerMaxConfidence  = 0.95
	wordBaseConfidence   = 0.76
	wordMaxConfidence    = 0.90
	plainConfidence      = 0.80

	// markerDensityFloor is the minimum unique-marker density for a single
	// marker occurrence to count as evidence on its own.
	markerDensityFloor = 0.05
	// plainMinTokens keeps the plain-Latin rule from claiming one- or
	// two-character snippets that should defer to the remote model.
	plainMinTokens = 2
)

// rule is one step of the heuristic cascade: a predicate-plus-producer over
// the scanned statistics. apply returns nil to pass control to the next
// rule.
type rule struct {
	name  string
	apply func(text string, stats Stats) *Result
}

// heuristicRules run strictly in order. Kana must stay ahead of Han:
// Japanese text routinely mixes kanji with kana, and a Han-first check
// would misread it as Chinese.
var heuristicRules = []rule{
	{name: "kana", apply: matchKana},
	{name: "han", apply: matchHan},
	{name: "unique-markers", apply: matchUniqueMarkers},
	{name: "function-words", apply: matchFunctionWords},
	{name: "plain-latin", apply: matchPlainLatin},
}

// classify runs the cascade until a rule fires. A nil return is an
// abstention, not an error; arbitration falls through to other stages.
func classify(text string, stats Stats) *Result {
	for _, r := range heuristicRules {
		if res := r.apply(text, stats); res != nil {
			return res
		}
	}
	return nil
}

func matchKana(_ string, stats Stats) *Result {
	if stats.Kana() == 0 {
		return nil
	}
	// Kanji count toward the Japanese ratio once any kana is present.
	ratio := ratioOf(stats.Kana()+stats.Han, stats.Total)
	return &Result{
		Language:   language.Japanese,
		Confidence: scaleConfidence(kanaBaseConfidence, kanaMaxConfidence, ratio),
		Method:     MethodHeuristic,
		Reasoning:  fmt.Sprintf("kana characters present (%d of %d runes Japanese script)", stats.Kana(), stats.Total),
	}
}

func matchHan(_ string, stats Stats) *Result {
	if stats.Han == 0 || stats.Kana() > 0 {
		return nil
	}
	ratio := ratioOf(stats.Han, stats.Total)
	return &Result{
		Language:   language.Chinese,
		Confidence: scaleConfidence(kanaBaseConfidence, kanaMaxConfidence, ratio),
		Method:     MethodHeuristic,
		Reasoning:  fmt.Sprintf("CJK ideographs without kana (%d of %d runes)", stats.Han, stats.Total),
	}
}

// matchUniqueMarkers fires when exactly one language shows characters unique
// to it, in sufficient count or density. Competing marker evidence is left
// to the function-word rule.
func matchUniqueMarkers(_ string, stats Stats) *Result {
	counts := markerCounts(stats)

	var winner language.Code
	candidates := 0
	for _, code := range markerLanguages {
		if counts[code] > 0 {
			candidates++
			winner = code
		}
	}
	if candidates != 1 {
		return nil
	}

	count := counts[winner]
	density := ratioOf(count, stats.Total)
	if count < 2 && density < markerDensityFloor {
		return nil
	}

	return &Result{
		Language:   winner,
		Confidence: scaleConfidence(markerBaseConfidence, markerMaxConfidence, density*5),
		Method:     MethodHeuristic,
		Reasoning:  fmt.Sprintf("%d character(s) unique to %s", count, language.Name(winner)),
	}
}

// matchFunctionWords breaks ties between languages with overlapping
// diacritic evidence using curated function-word lists. It requires a
// strict winner; tied word evidence falls back to strictly larger character
// evidence, and an exact tie abstains rather than guesses.
func matchFunctionWords(text string, stats Stats) *Result {
	counts := markerCounts(stats)
	candidates := 0
	for _, code := range markerLanguages {
		if counts[code] > 0 {
			candidates++
		}
	}
	// Only engage on genuinely overlapping evidence: several candidate
	// languages, or diacritics that belong to more than one of them. A
	// lone sparse marker stays an abstention for later stages to resolve.
	if candidates < 2 && stats.SharedDiacritics == 0 {
		return nil
	}

	tokens := tokenize(text)

	var best language.Code
	bestWords, runnerUpWords := -1, -1
	for _, code := range markerLanguages {
		matched := countFunctionWords(tokens, code)
		switch {
		case matched > bestWords:
			runnerUpWords = bestWords
			best, bestWords = code, matched
		case matched > runnerUpWords:
			runnerUpWords = matched
		}
	}

	if bestWords > 0 && bestWords > runnerUpWords {
		return &Result{
			Language:   best,
			Confidence: scaleConfidence(wordBaseConfidence, wordMaxConfidence, float64(bestWords)/4),
			Method:     MethodHeuristic,
			Reasoning:  fmt.Sprintf("%d %s function word(s), %d for closest competitor", bestWords, language.Name(best), runnerUpWords),
		}
	}

	// Word evidence tied or absent: compare raw character evidence.
	best = ""
	bestChars, runnerUpChars := -1, -1
	for _, code := range markerLanguages {
		switch {
		case counts[code] > bestChars:
			runnerUpChars = bestChars
			best, bestChars = code, counts[code]
		case counts[code] > runnerUpChars:
			runnerUpChars = counts[code]
		}
	}
	if bestChars > 0 && bestChars > runnerUpChars {
		return &Result{
			Language:   best,
			Confidence: wordBaseConfidence,
			Method:     MethodHeuristic,
			Reasoning:  fmt.Sprintf("character evidence favors %s (%d vs %d markers)", language.Name(best), bestChars, runnerUpChars),
		}
	}

	return nil
}

// matchPlainLatin claims unaccented basic-Latin text for the default
// language. Very short snippets abstain; a bare "in" could belong to half
// the supported set.
func matchPlainLatin(text string, stats Stats) *Result {
	if stats.Letters == 0 || stats.Tokens < plainMinTokens {
		return nil
	}
	for _, r := range text {
		if r > unicode.MaxASCII {
			return nil
		}
	}
	return &Result{
		Language:   language.Default,
		Confidence: plainConfidence,
		Method:     MethodHeuristic,
		Reasoning:  "basic Latin text without diacritics",
	}
}

// markerLanguages are the Latin-script languages distinguishable by unique
// characters, in a fixed iteration order.
var markerLanguages = []language.Code{language.German, language.French, language.Spanish}

func markerCounts(stats Stats) map[language.Code]int {
	return map[language.Code]int{
		language.German:  stats.GermanMarkers,
		language.French:  stats.FrenchMarkers,
		language.Spanish: stats.SpanishMarkers + stats.SpanishPunct,
	}
}

// functionWords lists high-frequency words that identify one language.
// Words shared with another supported language's common vocabulary are
// deliberately left out: "die" collides with English, "la"/"les" with
// Spanish, "es" with German, "que" with French and Spanish, and short
// prepositions like "in" or "a" identify nothing.
var functionWords = map[language.Code][]string{
	language.German: {
		"der", "das", "und", "ist", "nicht", "ein", "eine",
		"ich", "wir", "aber", "auch", "mit", "für", "werden",
	},
	language.French: {
		"le", "une", "est", "je", "vous", "nous", "dans",
		"avec", "cette", "mais", "pour", "être", "avoir",
	},
	language.Spanish: {
		"el", "los", "las", "una", "pero", "porque", "cómo",
		"está", "usted", "muy", "más", "para", "gracias",
	},
}

func countFunctionWords(tokens []string, code language.Code) int {
	matched := 0
	for _, token := range tokens {
		for _, word := range functionWords[code] {
			if token == word {
				matched++
				break
			}
		}
	}
	return matched
}

// tokenize lowercases and splits on non-letters, so "c'est" yields "c" and
// "est".
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
}

func ratioOf(count, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(count) / float64(total)
}

// scaleConfidence interpolates between base and ceiling by ratio, clamped
// to [base, ceiling].
func scaleConfidence(base, ceiling, ratio float64) float64 {
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	return base + (ceiling-base)*ratio
}
