package detect

import (
	"fmt"
	"strings"

	"horse.fit/lingo/internal/language"
)

// promptExamples are worked few-shot cases, including deliberately
// confusable pairs: "die" is both a German article and an English verb, and
// bare Romance words need grammatical markers to separate French from
// Spanish.
var promptExamples = []struct {
	text   string
	code   language.Code
	reason string
}{
	{
		text:   "die Katze schläft",
		code:   language.German,
		reason: "lowercase article 'die' with umlaut 'ä' and German verb-final order",
	},
	{
		text:   "die hard fans will love this",
		code:   language.English,
		reason: "'die' here is an English verb phrase; surrounding words are all English",
	},
	{
		text:   "est-ce que vous venez",
		code:   language.French,
		reason: "French interrogative 'est-ce que' and pronoun 'vous'",
	},
	{
		text:   "¿usted viene mañana?",
		code:   language.Spanish,
		reason: "inverted question mark and Spanish pronoun 'usted' with 'ñ'",
	},
	{
		text:   "東京タワーに行きました",
		code:   language.Japanese,
		reason: "hiragana and katakana mixed with kanji",
	},
	{
		text:   "我们明天见",
		code:   language.Chinese,
		reason: "Han ideographs with no kana at all",
	},
}

// buildPrompt renders the remote-model instruction for one snippet. Pure
// template rendering; transport lives elsewhere so the prompt content can
// be tested on its own.
func buildPrompt(text string) string {
	codes := make([]string, 0, 6)
	for _, code := range language.Supported() {
		codes = append(codes, fmt.Sprintf("%s (%s)", code, language.Name(code)))
	}

	var b strings.Builder
	b.WriteString("You are a language identification assistant.\n")
	b.WriteString("Decide which language the text below is written in.\n\n")
	b.WriteString("Before concluding, examine character features (scripts, diacritics, punctuation) ")
	b.WriteString("and grammatical structure (articles, word order, conjugation). ")
	b.WriteString("Do not decide from a single shared word.\n\n")
	b.WriteString("Allowed languages: " + strings.Join(codes, ", ") + ".\n\n")
	b.WriteString("Examples:\n")
	for _, ex := range promptExamples {
		fmt.Fprintf(&b, "Text: %q\nAnswer: {\"language\": %q, \"reason\": %q}\n\n", ex.text, ex.code, ex.reason)
	}
	b.WriteString("Respond with exactly one JSON object of the form ")
	b.WriteString(`{"language": "<code>", "reason": "<short justification>"}`)
	b.WriteString(" and nothing else.\n\n")
	fmt.Fprintf(&b, "Text: %q\nAnswer:", text)
	return b.String()
}
