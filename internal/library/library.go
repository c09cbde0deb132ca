// Package library provides named swatch libraries used to name colors.
//
// A library is a list of named swatches. A swatch may be known in several
// representations (a spot ink, a CMYK build and an RGB screen value); a color
// matches a swatch when it is the same variant with identical values, or a
// spot ink with the same name.
package library

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/wethinkt/go-swatchsheet/internal/color"
	"github.com/wethinkt/go-swatchsheet/internal/config"
	"github.com/wethinkt/go-swatchsheet/internal/runlog"
)

//go:embed libraries/*.toml
var embeddedLibraries embed.FS

// ErrNotFound is returned when no library has the requested name.
var ErrNotFound = errors.New("swatch library not found")

// ErrInvalidName is returned by Save for names that are not a plain file name.
var ErrInvalidName = errors.New("invalid library name")

// validName reports whether name can be used as a file name inside the
// libraries directory.
func validName(name string) bool {
	if name == "" || strings.Contains(name, "..") || strings.ContainsAny(name, `/\`) {
		return false
	}
	return filepath.Base(name) == name
}

// Swatch is one named color.
type Swatch struct {
	Name  string
	Color color.Color
}

// MarshalJSON encodes the swatch with its color model, value and hex preview.
func (s Swatch) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name  string      `json:"name"`
		Model color.Model `json:"model"`
		Value string      `json:"value"`
		Hex   string      `json:"hex"`
	}{s.Name, s.Color.Model(), color.String(s.Color), s.Color.Hex()})
}

// Library is a named collection of swatches.
type Library struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Swatches    []Swatch `json:"swatches"`
}

// Lookup returns the name of the first swatch equal to c.
func (l Library) Lookup(c color.Color) (string, bool) {
	for _, s := range l.Swatches {
		if color.Equal(s.Color, c) {
			return s.Name, true
		}
	}
	return "", false
}

// Names returns the distinct swatch names in library order.
func (l Library) Names() []string {
	var names []string
	seen := make(map[string]bool)
	for _, s := range l.Swatches {
		if !seen[s.Name] {
			seen[s.Name] = true
			names = append(names, s.Name)
		}
	}
	return names
}

// Set is an ordered list of libraries searched front to back.
type Set []Library

// Lookup returns the first match across the set.
func (s Set) Lookup(c color.Color) (string, bool) {
	for _, l := range s {
		if name, ok := l.Lookup(c); ok {
			return name, true
		}
	}
	return "", false
}

// Meta holds metadata about an available library.
type Meta struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Path        string `json:"path,omitempty"` // File path (empty for embedded)
	Embedded    bool   `json:"embedded"`       // True if this is a built-in library
	Swatches    int    `json:"swatches"`
}

// extensions lists the file formats a library may be stored in.
var extensions = []string{".toml", ".yaml", ".yml"}

// Dir returns the path to the user libraries directory.
func Dir() (string, error) {
	configDir, err := config.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "libraries"), nil
}

// LoadEmbedded loads a built-in library.
func LoadEmbedded(name string) (Library, error) {
	if !validName(name) {
		return Library{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	data, err := embeddedLibraries.ReadFile("libraries/" + name + ".toml")
	if err != nil {
		return Library{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	lib, err := Decode(data, ".toml")
	if err != nil {
		return Library{}, fmt.Errorf("embedded library %s: %w", name, err)
	}
	if lib.Name == "" {
		lib.Name = name
	}
	return lib, nil
}

// ListEmbedded returns the names of all built-in libraries.
func ListEmbedded() []string {
	entries, err := embeddedLibraries.ReadDir("libraries")
	if err != nil {
		return nil
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".toml") {
			names = append(names, strings.TrimSuffix(entry.Name(), ".toml"))
		}
	}
	return names
}

// LoadFile reads a library from a TOML or YAML file. The file name is used
// when the library does not name itself.
func LoadFile(path string) (Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Library{}, err
	}
	lib, err := Decode(data, filepath.Ext(path))
	if err != nil {
		return Library{}, fmt.Errorf("%s: %w", path, err)
	}
	if lib.Name == "" {
		base := filepath.Base(path)
		lib.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return lib, nil
}

// userFile returns the path of a user library, trying each extension.
func userFile(name string) (string, bool) {
	if !validName(name) {
		return "", false
	}
	dir, err := Dir()
	if err != nil {
		return "", false
	}
	for _, ext := range extensions {
		path := filepath.Join(dir, name+ext)
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}
	return "", false
}

// LoadByName loads a library by name, checking user libraries first, then
// the built-in ones.
func LoadByName(name string) (Library, error) {
	if !validName(name) {
		return Library{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if path, ok := userFile(name); ok {
		lib, err := LoadFile(path)
		if err == nil {
			lib.Name = name
			return lib, nil
		}
		runlog.Log.Warn("Skipping unreadable user library", "path", path, "error", err)
	}
	return LoadEmbedded(name)
}

// LoadSet loads the named libraries in order.
func LoadSet(names []string) (Set, error) {
	set := make(Set, 0, len(names))
	for _, name := range names {
		lib, err := LoadByName(name)
		if err != nil {
			return nil, err
		}
		runlog.Log.Debug("Loaded swatch library", "name", name, "swatches", len(lib.Swatches))
		set = append(set, lib)
	}
	return set, nil
}

// ListAvailable returns all available libraries (built-in + user). A user
// library with the same name as a built-in one shadows it.
func ListAvailable() ([]Meta, error) {
	byName := make(map[string]Meta)

	for _, name := range ListEmbedded() {
		lib, err := LoadEmbedded(name)
		if err != nil {
			continue
		}
		byName[name] = Meta{
			Name:        name,
			Description: lib.Description,
			Embedded:    true,
			Swatches:    len(lib.Names()),
		}
	}

	dir, err := Dir()
	if err == nil {
		entries, err := os.ReadDir(dir)
		if err == nil {
			for _, entry := range entries {
				ext := filepath.Ext(entry.Name())
				if entry.IsDir() || !isLibraryExt(ext) {
					continue
				}

				name := strings.TrimSuffix(entry.Name(), ext)
				path := filepath.Join(dir, entry.Name())

				description := "User library"
				count := 0
				if lib, err := LoadFile(path); err == nil {
					if lib.Description != "" {
						description = lib.Description
					}
					count = len(lib.Names())
				}

				byName[name] = Meta{
					Name:        name,
					Description: description,
					Path:        path,
					Swatches:    count,
				}
			}
		}
	}

	libs := make([]Meta, 0, len(byName))
	for _, m := range byName {
		libs = append(libs, m)
	}
	sort.Slice(libs, func(i, j int) bool { return libs[i].Name < libs[j].Name })
	return libs, nil
}

// Save writes a library to the user libraries directory as TOML.
func Save(lib Library) (string, error) {
	if lib.Name == "" {
		return "", errors.New("library has no name")
	}
	if !validName(lib.Name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, lib.Name)
	}

	dir, err := Dir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	data, err := Encode(lib)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, lib.Name+".toml")
	return path, os.WriteFile(path, data, 0644)
}

func isLibraryExt(ext string) bool {
	for _, e := range extensions {
		if strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}
