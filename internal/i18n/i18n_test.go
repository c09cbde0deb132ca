package i18n

import (
	"testing"
)

func TestT_ReturnsDefaultMessage(t *testing.T) {
	Init("en")
	got := T("alert.noColors", "No colors found in the selected object.")
	if got != "No colors found in the selected object." {
		t.Errorf("T() = %q, want %q", got, "No colors found in the selected object.")
	}
}

func TestTn_Pluralization(t *testing.T) {
	Init("en")

	one := Tn("test.swatches", "{{.Count}} swatch", "{{.Count}} swatches", 1)
	if one != "1 swatch" {
		t.Errorf("Tn(1) = %q, want %q", one, "1 swatch")
	}

	many := Tn("test.swatches", "{{.Count}} swatch", "{{.Count}} swatches", 5)
	if many != "5 swatches" {
		t.Errorf("Tn(5) = %q, want %q", many, "5 swatches")
	}
}

func TestTf_Formats(t *testing.T) {
	Init("en")
	got := Tf("test.wrote", "Wrote %s", "out.svg")
	if got != "Wrote out.svg" {
		t.Errorf("Tf() = %q", got)
	}
}

func TestInit_FallbackToEnglish(t *testing.T) {
	Init("xx-nonexistent")
	got := T("alert.emptySelection", "Please select at least one object.")
	if got != "Please select at least one object." {
		t.Errorf("expected English fallback, got %q", got)
	}
}

func TestResolveLocale(t *testing.T) {
	t.Setenv("SWATCHSHEET_LANG", "")
	t.Setenv("LC_ALL", "")
	t.Setenv("LANG", "de_DE.UTF-8")

	if got := ResolveLocale(""); got != "de-DE" {
		t.Errorf("ResolveLocale(LANG) = %q, want de-DE", got)
	}
	if got := ResolveLocale("fr"); got != "fr" {
		t.Errorf("ResolveLocale(config) = %q, want fr", got)
	}

	t.Setenv("SWATCHSHEET_LANG", "en")
	if got := ResolveLocale("fr"); got != "en" {
		t.Errorf("ResolveLocale(env) = %q, want en", got)
	}

	t.Setenv("SWATCHSHEET_LANG", "")
	t.Setenv("LANG", "")
	if got := ResolveLocale(""); got != "en" {
		t.Errorf("ResolveLocale() = %q, want en", got)
	}
}

func TestTnWithoutLocalizer(t *testing.T) {
	mu.Lock()
	prev := localizer
	localizer = nil
	mu.Unlock()
	defer func() {
		mu.Lock()
		localizer = prev
		mu.Unlock()
	}()

	if got := Tn("preview.swatchCount", "{{.Count}} swatch", "{{.Count}} swatches", 3); got != "3 swatches" {
		t.Errorf("Tn() = %q, want %q", got, "3 swatches")
	}
}

func TestPosixLocale(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"de_DE.UTF-8", "de-DE", true},
		{"de_DE.UTF-8@euro", "de-DE", true},
		{"zh_CN", "zh-CN", true},
		{"C", "", false},
		{"POSIX", "", false},
		{"C.UTF-8", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := posixLocale(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("posixLocale(%q) = %q, %v, want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestResolveLocaleSkipsCLocale(t *testing.T) {
	t.Setenv(LangEnvVar, "")
	t.Setenv("LC_ALL", "C")
	t.Setenv("LANG", "de_AT.UTF-8")
	if got := ResolveLocale(""); got != "de-AT" {
		t.Errorf("ResolveLocale() = %q, want de-AT", got)
	}
}

func TestSupported(t *testing.T) {
	for lang, want := range map[string]bool{"de": true, "de-CH": true, "en-GB": true, "fr": false, "not a tag": false} {
		if got := Supported(lang); got != want {
			t.Errorf("Supported(%q) = %v, want %v", lang, got, want)
		}
	}
}
