package i18n

import "testing"

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want Language
		ok   bool
	}{
		{"fr", French, true},
		{"en", English, true},
		{"ar", Arabic, true},
		{"FR", French, true},
		{"es", French, false},
		{"", French, false},
	}
	for _, tc := range cases {
		got, ok := Parse(tc.in)
		if ok != tc.ok {
			t.Fatalf("Parse(%q): ok = %v, want %v", tc.in, ok, tc.ok)
		}
		if ok && got != tc.want {
			t.Fatalf("Parse(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestSpeechTag(t *testing.T) {
	if got := French.SpeechTag(); got != "fr-FR" {
		t.Fatalf("French.SpeechTag() = %q", got)
	}
	if got := English.SpeechTag(); got != "en-US" {
		t.Fatalf("English.SpeechTag() = %q", got)
	}
	if got := Arabic.SpeechTag(); got != "ar-SA" {
		t.Fatalf("Arabic.SpeechTag() = %q", got)
	}
}

func TestMatchLanguageName(t *testing.T) {
	cases := []struct {
		heard string
		want  Language
		ok    bool
	}{
		{"je veux commencer en francais", French, true},
		{"français s'il vous plait", French, true},
		{"english please", English, true},
		{"anglais", English, true},
		{"arabic", Arabic, true},
		{"je ne sais pas", French, false},
	}
	for _, tc := range cases {
		got, ok := MatchLanguageName(tc.heard)
		if ok != tc.ok {
			t.Fatalf("MatchLanguageName(%q): ok = %v, want %v", tc.heard, ok, tc.ok)
		}
		if ok && got != tc.want {
			t.Fatalf("MatchLanguageName(%q) = %v, want %v", tc.heard, got, tc.want)
		}
	}
}

func TestCatalogFallback(t *testing.T) {
	// All keys present in French must resolve for every language, even if the
	// per-language map lacks them.
	for key := range catalog[French] {
		for _, lang := range []Language{French, English, Arabic} {
			if got := T(lang, key); got == key {
				t.Fatalf("T(%v, %q) fell through to the key", lang, key)
			}
		}
	}
	if got := T(English, "no_such_key"); got != "no_such_key" {
		t.Fatalf("unknown key should echo back, got %q", got)
	}
}

func TestKeywordSetsCoverAllLanguages(t *testing.T) {
	for _, lang := range []Language{French, English, Arabic} {
		if len(YesWords(lang)) == 0 {
			t.Fatalf("no yes words for %v", lang)
		}
		if len(NoWords(lang)) == 0 {
			t.Fatalf("no no words for %v", lang)
		}
		if len(ConfirmWords(lang)) == 0 {
			t.Fatalf("no confirm words for %v", lang)
		}
		if len(CancelWords(lang)) == 0 {
			t.Fatalf("no cancel words for %v", lang)
		}
		if len(CloseWords(lang)) == 0 {
			t.Fatalf("no close words for %v", lang)
		}
	}
}
