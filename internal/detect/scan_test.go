package detect

import "testing"

func TestScanCountsJapaneseScripts(t *testing.T) {
	t.Parallel()

	stats := Scan("日本語のテスト")
	if stats.Hiragana != 1 {
		t.Fatalf("unexpected hiragana count: %d", stats.Hiragana)
	}
	if stats.Katakana != 3 {
		t.Fatalf("unexpected katakana count: %d", stats.Katakana)
	}
	if stats.Han != 3 {
		t.Fatalf("unexpected han count: %d", stats.Han)
	}
	if stats.Kana() != 4 {
		t.Fatalf("unexpected kana total: %d", stats.Kana())
	}
	if stats.Total != 7 {
		t.Fatalf("unexpected rune total: %d", stats.Total)
	}
}

func TestScanCountsUniqueMarkers(t *testing.T) {
	t.Parallel()

	german := Scan("Der Mann ist groß")
	if german.GermanMarkers != 1 {
		t.Fatalf("unexpected german marker count: %d", german.GermanMarkers)
	}
	if german.Tokens != 4 {
		t.Fatalf("unexpected token count: %d", german.Tokens)
	}

	spanish := Scan("¿Cómo estás?")
	if spanish.SpanishMarkers != 2 {
		t.Fatalf("unexpected spanish marker count: %d", spanish.SpanishMarkers)
	}
	if spanish.SpanishPunct != 1 {
		t.Fatalf("unexpected spanish punctuation count: %d", spanish.SpanishPunct)
	}

	french := Scan("le garçon è là")
	if french.FrenchMarkers != 3 {
		t.Fatalf("unexpected french marker count: %d", french.FrenchMarkers)
	}
}

func TestScanSharedDiacriticsStayGeneric(t *testing.T) {
	t.Parallel()

	stats := Scan("café über")
	if stats.SharedDiacritics != 2 {
		t.Fatalf("unexpected shared diacritic count: %d", stats.SharedDiacritics)
	}
	if stats.GermanMarkers != 0 || stats.FrenchMarkers != 0 || stats.SpanishMarkers != 0 {
		t.Fatalf("shared diacritics must not count as unique markers: %+v", stats)
	}
	if stats.Diacritics() != 2 {
		t.Fatalf("unexpected aggregate diacritic count: %d", stats.Diacritics())
	}
}

func TestScanIsTotal(t *testing.T) {
	t.Parallel()

	empty := Scan("")
	if empty != (Stats{}) {
		t.Fatalf("unexpected stats for empty input: %+v", empty)
	}

	// Mixed garbage must not panic and counts stay non-negative.
	stats := Scan("\x00�🎉 ¿ß日ヴ")
	if stats.Total <= 0 {
		t.Fatalf("unexpected total: %d", stats.Total)
	}
	if stats.SpanishPunct != 1 || stats.GermanMarkers != 1 || stats.Han != 1 || stats.Katakana != 1 {
		t.Fatalf("unexpected counts: %+v", stats)
	}
}

func TestScanUppercaseMarkers(t *testing.T) {
	t.Parallel()

	stats := Scan("ÑANDÚ ÖL")
	if stats.SpanishMarkers != 2 {
		t.Fatalf("unexpected spanish marker count: %d", stats.SpanishMarkers)
	}
	if stats.GermanMarkers != 1 {
		t.Fatalf("unexpected german marker count: %d", stats.GermanMarkers)
	}
}
