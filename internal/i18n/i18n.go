// Package i18n localizes the alerts and status lines swatchsheet prints.
//
// Messages live in embedded TOML catalogues, one per language under locales/.
// Every call site passes its English text along with the message ID, so a
// missing translation, or a missing catalogue, still yields readable output:
//
//	i18n.T("alert.noColors", "No colors found in the selected object.")
//	i18n.Tn("preview.swatchCount", "{{.Count}} swatch", "{{.Count}} swatches", n)
package i18n

import (
	"embed"
	"fmt"
	"os"
	"path"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var localeFS embed.FS

// LangEnvVar overrides the configured language.
const LangEnvVar = "SWATCHSHEET_LANG"

var (
	mu        sync.RWMutex
	localizer *i18n.Localizer
)

// loadBundle parses every embedded catalogue once.
var loadBundle = sync.OnceValues(func() (*i18n.Bundle, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	files, err := localeFiles()
	if err != nil {
		return bundle, err
	}
	for _, name := range files {
		if _, err := bundle.LoadMessageFileFS(localeFS, name); err != nil {
			return bundle, fmt.Errorf("load %s: %w", name, err)
		}
	}
	return bundle, nil
})

// localeFiles lists the embedded catalogues in sorted order.
func localeFiles() ([]string, error) {
	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && path.Ext(e.Name()) == ".toml" {
			files = append(files, path.Join("locales", e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// Init selects the language used by T, Tf and Tn. Languages without a
// catalogue fall back to English. A broken catalogue is reported and the
// English defaults at each call site are used instead.
func Init(lang string) error {
	bundle, err := loadBundle()

	mu.Lock()
	defer mu.Unlock()
	if err != nil {
		localizer = nil
		return err
	}
	localizer = i18n.NewLocalizer(bundle, lang, language.English.String())
	return nil
}

// Locales returns the languages that have a catalogue, sorted.
func Locales() []string {
	files, _ := localeFiles()
	langs := make([]string, 0, len(files))
	for _, f := range files {
		langs = append(langs, strings.TrimSuffix(path.Base(f), ".toml"))
	}
	return langs
}

// Supported reports whether lang has a catalogue of its own.
func Supported(lang string) bool {
	tag, err := language.Parse(lang)
	if err != nil {
		return false
	}
	base, _ := tag.Base()
	for _, l := range Locales() {
		if b, _ := language.Make(l).Base(); b == base {
			return true
		}
	}
	return false
}

// MessageIDs returns the IDs defined in a language's catalogue, sorted.
func MessageIDs(lang string) ([]string, error) {
	data, err := localeFS.ReadFile("locales/" + lang + ".toml")
	if err != nil {
		return nil, fmt.Errorf("no catalogue for %q", lang)
	}
	var tree map[string]any
	if _, err := toml.Decode(string(data), &tree); err != nil {
		return nil, fmt.Errorf("%s.toml: %w", lang, err)
	}

	var ids []string
	var walk func(prefix string, m map[string]any)
	walk = func(prefix string, m map[string]any) {
		if _, ok := m["other"]; ok {
			ids = append(ids, prefix)
			return
		}
		for k, v := range m {
			if sub, ok := v.(map[string]any); ok {
				walk(strings.TrimPrefix(prefix+"."+k, "."), sub)
			}
		}
	}
	walk("", tree)
	sort.Strings(ids)
	return ids, nil
}

// T returns the message for id, or defaultMsg when it has no translation.
func T(id string, defaultMsg string) string {
	return localize(&i18n.Message{ID: id, Other: defaultMsg}, nil)
}

// Tf is T followed by fmt.Sprintf.
func Tf(id string, defaultMsg string, args ...any) string {
	return fmt.Sprintf(T(id, defaultMsg), args...)
}

// Tn returns the plural form of id for count. one and other are the English
// forms; {{.Count}} in them is replaced by count.
func Tn(id string, one string, other string, count int) string {
	return localize(&i18n.Message{ID: id, One: one, Other: other}, &count)
}

func localize(msg *i18n.Message, count *int) string {
	mu.RLock()
	l := localizer
	mu.RUnlock()

	cfg := &i18n.LocalizeConfig{DefaultMessage: msg}
	if count != nil {
		cfg.PluralCount = *count
		cfg.TemplateData = map[string]int{"Count": *count}
	}
	if l != nil {
		if s, err := l.Localize(cfg); err == nil {
			return s
		}
	}

	if count == nil {
		return msg.Other
	}
	text := msg.Other
	if *count == 1 && msg.One != "" {
		text = msg.One
	}
	return strings.ReplaceAll(text, "{{.Count}}", strconv.Itoa(*count))
}

// ResolveLocale picks the language to use. The first usable source wins:
// SWATCHSHEET_LANG, the configured language, LC_ALL, LANG, then English.
// POSIX values such as "de_DE.UTF-8@euro" become BCP 47 tags; "C" and
// "POSIX" are skipped.
func ResolveLocale(configLang string) string {
	if v := os.Getenv(LangEnvVar); v != "" {
		return v
	}
	if configLang != "" {
		return configLang
	}
	for _, env := range []string{"LC_ALL", "LANG"} {
		if tag, ok := posixLocale(os.Getenv(env)); ok {
			return tag
		}
	}
	return language.English.String()
}

// posixLocale converts a POSIX locale name to a BCP 47 tag.
func posixLocale(v string) (string, bool) {
	v, _, _ = strings.Cut(v, ".")
	v, _, _ = strings.Cut(v, "@")
	if v == "" || v == "C" || v == "POSIX" {
		return "", false
	}
	tag, err := language.Parse(strings.ReplaceAll(v, "_", "-"))
	if err != nil {
		return "", false
	}
	return tag.String(), true
}
