package i18n

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"testing"
)

func TestCataloguesParse(t *testing.T) {
	langs := Locales()
	if !slices.Equal(langs, []string{"de", "en"}) {
		t.Fatalf("Locales() = %v, want [de en]", langs)
	}
	for _, lang := range langs {
		ids, err := MessageIDs(lang)
		if err != nil {
			t.Errorf("MessageIDs(%q) error = %v", lang, err)
			continue
		}
		if !slices.Contains(ids, "alert.noColors") || !slices.Contains(ids, "preview.swatchCount") {
			t.Errorf("%s catalogue = %v", lang, ids)
		}
	}
	if _, err := MessageIDs("xx"); err == nil {
		t.Error("MessageIDs(xx) should fail")
	}
	if err := Init("en"); err != nil {
		t.Errorf("Init() error = %v", err)
	}
}

// TestEnglishCatalogueCoversSource fails when a T/Tf/Tn call uses an ID that
// en.toml does not define. Other languages only report their gaps.
func TestEnglishCatalogueCoversSource(t *testing.T) {
	used := sourceMessageIDs(t)
	if len(used) == 0 {
		t.Fatal("found no message IDs in source")
	}

	for _, lang := range Locales() {
		defined, err := MessageIDs(lang)
		if err != nil {
			t.Fatal(err)
		}
		var missing []string
		for _, id := range used {
			if !slices.Contains(defined, id) {
				missing = append(missing, id)
			}
		}
		t.Logf("%s: %d/%d messages translated", lang, len(used)-len(missing), len(used))
		if lang == "en" && len(missing) > 0 {
			t.Errorf("en.toml is missing %v", missing)
		}
		for _, id := range missing {
			t.Logf("%s: missing %s", lang, id)
		}
	}
}

// messageIDPattern matches the ID argument of T, Tf and Tn calls. IDs have at
// least two dot-separated segments.
var messageIDPattern = regexp.MustCompile(`\bT[fn]?\("([a-zA-Z][a-zA-Z0-9]*(?:\.[a-zA-Z][a-zA-Z0-9]*)+)"`)

func sourceMessageIDs(t *testing.T) []string {
	t.Helper()
	root, err := projectRoot()
	if err != nil {
		t.Fatal(err)
	}

	seen := make(map[string]bool)
	for _, dir := range []string{"internal", "cmd"} {
		err := filepath.WalkDir(filepath.Join(root, dir), func(path string, d os.DirEntry, err error) error {
			if err != nil || d.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			for _, m := range messageIDPattern.FindAllSubmatch(data, -1) {
				seen[string(m[1])] = true
			}
			return nil
		})
		if err != nil {
			t.Fatalf("walking %s: %v", dir, err)
		}
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func projectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("go.mod not found")
		}
		dir = parent
	}
}
