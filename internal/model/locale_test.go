package model

import "testing"

func TestIsSupportedLocale(t *testing.T) {
	for _, l := range SupportedLocales {
		if !IsSupportedLocale(string(l)) {
			t.Errorf("IsSupportedLocale(%q) = false, want true", l)
		}
	}

	for _, code := range []string{"", "xx", "en-US", "EN-GB", "english", "ru"} {
		if IsSupportedLocale(code) {
			t.Errorf("IsSupportedLocale(%q) = true, want false", code)
		}
	}

	// Case-insensitive match
	if !IsSupportedLocale("ZH") {
		t.Error("IsSupportedLocale(\"ZH\") = false, want true")
	}
}

func TestNormalizeLocale(t *testing.T) {
	tests := []struct {
		in   string
		want Locale
	}{
		{"en", LocaleEN},
		{"ES", LocaleES},
		{"zh", LocaleZH},
		{"", DefaultLocale},
		{"xx", DefaultLocale},
		{"en-US", DefaultLocale},
	}
	for _, tt := range tests {
		if got := NormalizeLocale(tt.in); got != tt.want {
			t.Errorf("NormalizeLocale(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTargetLocales(t *testing.T) {
	targets := TargetLocales(LocaleEN)
	if len(targets) != len(SupportedLocales)-1 {
		t.Fatalf("len(targets) = %d, want %d", len(targets), len(SupportedLocales)-1)
	}
	for _, l := range targets {
		if l == LocaleEN {
			t.Error("targets must not contain the source locale")
		}
	}
}
