// Package lesson defines the lesson corpus and its loaders.
package lesson

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Lesson is a single scripted typing lesson. Immutable once loaded.
type Lesson struct {
	Level        int      `json:"level"`
	Title        string   `json:"title"`
	Difficulty   int      `json:"difficulty"`
	Words        []string `json:"words,omitempty"`
	Sentences    []string `json:"sentences"`
	Translations []string `json:"translations,omitempty"`
}

//go:embed lessons.json
var defaultLessonsJSON []byte

// Default returns the built-in lesson corpus.
func Default() []Lesson {
	lessons, err := decode(defaultLessonsJSON)
	if err != nil {
		// The embedded corpus is validated by tests; this cannot happen at runtime.
		panic(fmt.Sprintf("invalid embedded lessons: %v", err))
	}
	return lessons
}

// LoadFile reads a JSON array of lessons from path.
func LoadFile(path string) ([]Lesson, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lessons: %w", err)
	}
	lessons, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return lessons, nil
}

// LoadDir loads every *.json lesson file in dir in name order and
// concatenates the results. A missing directory yields no lessons.
func LoadDir(dir string) ([]Lesson, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read lessons dir: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	var all []Lesson
	for _, name := range names {
		lessons, err := LoadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		all = append(all, lessons...)
	}
	return all, nil
}

func decode(data []byte) ([]Lesson, error) {
	var lessons []Lesson
	if err := json.Unmarshal(data, &lessons); err != nil {
		return nil, err
	}
	for i, l := range lessons {
		if len(l.Sentences) == 0 {
			return nil, fmt.Errorf("lesson %d (%q) has no sentences", i, l.Title)
		}
	}
	return lessons, nil
}
