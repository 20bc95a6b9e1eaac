package lang

import (
	"reflect"
	"testing"
)

func TestParseList(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"single valid code", "en", []string{"en"}},
		{"multiple valid codes keep order", "hi,ta,en", []string{"hi", "ta", "en"}},
		{"unknown codes dropped", "en,xx,hi", []string{"en", "hi"}},
		{"whitespace and case normalized", " EN , Hi ", []string{"en", "hi"}},
		{"duplicates collapsed", "en,en,hi", []string{"en", "hi"}},
		{"empty request falls back to all", "", Codes()},
		{"only unknown codes falls back to all", "xx,yy,zz", Codes()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseList(tt.raw)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseList(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestCodes(t *testing.T) {
	codes := Codes()
	if len(codes) != 12 {
		t.Fatalf("expected 12 supported languages, got %d", len(codes))
	}
	if codes[0] != Source {
		t.Errorf("expected source language %q first, got %q", Source, codes[0])
	}
	for _, code := range codes {
		if !IsSupported(code) {
			t.Errorf("code %q from Codes() not supported", code)
		}
	}

	// Codes must return a copy, not the backing array
	codes[0] = "xx"
	if Codes()[0] != Source {
		t.Error("mutating Codes() result affected the supported set")
	}
}

func TestName(t *testing.T) {
	if got := Name("hi"); got != "Hindi" {
		t.Errorf("Name(hi) = %q, want Hindi", got)
	}
	if got := Name("zz"); got != "zz" {
		t.Errorf("Name(zz) = %q, want the code itself", got)
	}
}
