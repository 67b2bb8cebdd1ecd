package match

import (
	"reflect"
	"testing"
)

func TestTokenize_DropsShortTerms(t *testing.T) {
	got := Tokenize("a b cd efg")
	want := []string{"cd", "efg"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize() = %v, want %v", got, want)
	}
}

func TestTokenize_LowercasesAndStripsPunctuation(t *testing.T) {
	got := Tokenize("RVS-Fittingen, 1/2\" (DN15)!")
	want := []string{"rvs", "fittingen", "dn15"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize() = %v, want %v", got, want)
	}
}

func TestTokenize_Empty(t *testing.T) {
	if got := Tokenize(""); len(got) != 0 {
		t.Errorf("Tokenize(\"\") = %v, want empty", got)
	}
	if got := Tokenize("a ! b"); len(got) != 0 {
		t.Errorf("Tokenize(all-short) = %v, want empty", got)
	}
}

func TestTokenize_KeepsDigits(t *testing.T) {
	got := Tokenize("buis 50mm")
	want := []string{"buis", "50mm"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize() = %v, want %v", got, want)
	}
}
