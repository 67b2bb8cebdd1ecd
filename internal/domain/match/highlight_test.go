package match

import (
	"testing"
	"unicode/utf8"
)

func TestHighlight_EmptyQueryIsNoOp(t *testing.T) {
	for _, text := range []string{"", "Bronpompen 4 inch", "no markup <here>"} {
		if got := Highlight(text, ""); got != text {
			t.Errorf("Highlight(%q, \"\") = %q, want unchanged", text, got)
		}
		if got := Highlight(text, "   "); got != text {
			t.Errorf("Highlight(%q, whitespace) = %q, want unchanged", text, got)
		}
	}
}

func TestHighlight_WrapsOccurrences(t *testing.T) {
	got := Highlight("Bronpompen en dompelpompen", "pomp")
	want := "Bron<mark>pomp</mark>en en dompel<mark>pomp</mark>en"
	if got != want {
		t.Errorf("Highlight() = %q, want %q", got, want)
	}
}

func TestHighlight_CaseInsensitivePreservesCasing(t *testing.T) {
	got := Highlight("POMP en pomp", "Pomp")
	want := "<mark>POMP</mark> en <mark>pomp</mark>"
	if got != want {
		t.Errorf("Highlight() = %q, want %q", got, want)
	}
}

func TestHighlight_NoOccurrence(t *testing.T) {
	if got := Highlight("RVS Fittingen", "pomp"); got != "RVS Fittingen" {
		t.Errorf("Highlight() = %q, want unchanged", got)
	}
}

func TestHighlight_LowercaseGrowsRuneEncoding(t *testing.T) {
	// U+023A lowercases to U+2C65, which is one byte longer in UTF-8, so
	// offsets found in the lowered text do not line up with the original.
	got := Highlight("ȺȺab", "ab")
	want := "ȺȺ<mark>ab</mark>"
	if got != want {
		t.Errorf("Highlight() = %q, want %q", got, want)
	}
}

func TestHighlight_LowercaseShrinksRuneEncoding(t *testing.T) {
	// U+0130 lowercases to the one-byte "i".
	got := Highlight("İİİab", "ab")
	want := "İİİ<mark>ab</mark>"
	if got != want {
		t.Errorf("Highlight() = %q, want %q", got, want)
	}
	if !utf8.ValidString(got) {
		t.Errorf("Highlight() produced invalid UTF-8: %q", got)
	}
}

func TestHighlight_MultibyteMatch(t *testing.T) {
	got := Highlight("Ⱥb x", "ⱥb")
	want := "<mark>Ⱥb</mark> x"
	if got != want {
		t.Errorf("Highlight() = %q, want %q", got, want)
	}
}

func TestIndexFold(t *testing.T) {
	start, end := IndexFold("İİ waterleiding", "WATER")
	if start < 0 {
		t.Fatal("IndexFold found no match")
	}
	if got := "İİ waterleiding"[start:end]; got != "water" {
		t.Errorf("matched slice = %q, want water", got)
	}

	if start, end := IndexFold("buis", "pomp"); start != -1 || end != -1 {
		t.Errorf("IndexFold miss = (%d, %d), want (-1, -1)", start, end)
	}
}
