// Copyright © 2026 The iota authors

// Package explain documents the semantic errors reported by the analyzer.
package explain

import (
	_ "embed"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/iotalang/iota/analysis"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"gopkg.in/yaml.v3"
)

//go:embed kinds.yaml
var catalogYAML []byte

// Entry explains one error kind.
type Entry struct {
	Kind        analysis.ErrorKind `yaml:"-"`
	Name        string             `yaml:"name"`
	Summary     string             `yaml:"summary"`
	Description string             `yaml:"description"`
	Example     string             `yaml:"example"`
}

var (
	catalogOnce sync.Once
	catalog     []Entry
	catalogErr  error
)

// Catalog returns an entry for every error kind, in code order.
func Catalog() ([]Entry, error) {
	catalogOnce.Do(func() {
		catalog, catalogErr = load(catalogYAML)
	})
	return catalog, catalogErr
}

func load(data []byte) ([]Entry, error) {
	var entries []Entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("explain: parsing catalog: %w", err)
	}
	byKind := make(map[analysis.ErrorKind]Entry, len(entries))
	for _, e := range entries {
		kind, ok := analysis.ParseKind(e.Name)
		if !ok {
			return nil, fmt.Errorf("explain: catalog entry for unknown kind %q", e.Name)
		}
		if _, dup := byKind[kind]; dup {
			return nil, fmt.Errorf("explain: duplicate catalog entry %q", e.Name)
		}
		e.Kind = kind
		byKind[kind] = e
	}
	ordered := make([]Entry, 0, len(byKind))
	for _, kind := range analysis.Kinds() {
		e, ok := byKind[kind]
		if !ok {
			return nil, fmt.Errorf("explain: no catalog entry for %s", kind)
		}
		ordered = append(ordered, e)
	}
	return ordered, nil
}

// Lookup finds the entry for an error kind given by name ("missing-return")
// or code ("E0003").
func Lookup(query string) (Entry, error) {
	kind, ok := analysis.ParseKind(query)
	if !ok {
		return Entry{}, fmt.Errorf("unknown error kind or code %q", query)
	}
	entries, err := Catalog()
	if err != nil {
		return Entry{}, err
	}
	return entries[int(kind)-1], nil
}

// Format writes e to w with the description wrapped to width columns.
func Format(w io.Writer, e Entry, width int) error {
	if width <= 0 {
		width = 72
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n\n", e.Kind.Code(), e.Name)
	fmt.Fprintf(&b, "%s\n\n", indent.String(wordwrap.String(e.Summary, width-2), 2))
	desc := strings.Join(strings.Fields(e.Description), " ")
	fmt.Fprintf(&b, "%s\n", indent.String(wordwrap.String(desc, width-2), 2))
	if e.Example != "" {
		fmt.Fprintf(&b, "\n  Example:\n\n%s\n", indent.String(strings.TrimRight(e.Example, "\n"), 4))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// FormatIndex writes one line per error kind: code, name, and summary.
func FormatIndex(w io.Writer) error {
	entries, err := Catalog()
	if err != nil {
		return err
	}
	for _, e := range entries {
		if _, err := fmt.Fprintf(w, "%s  %-26s %s\n", e.Kind.Code(), e.Name, e.Summary); err != nil {
			return err
		}
	}
	return nil
}
