// Copyright © 2026 The iota authors

package repl

import (
	"sort"
	"strings"

	"github.com/iotalang/iota/parser"
	"github.com/iotalang/iota/types"
)

// symbolCompleter implements readline.AutoCompleter with keywords, type
// names, and the global symbols of the session.
type symbolCompleter struct {
	session *Session
}

func (c *symbolCompleter) Do(line []rune, pos int) ([][]rune, int) {
	start := pos
	for start > 0 && isIdentRune(line[start-1]) {
		start--
	}
	prefix := string(line[start:pos])
	if prefix == "" {
		return nil, 0
	}

	candidates := c.collect(prefix)
	if len(candidates) == 0 {
		return nil, 0
	}
	result := make([][]rune, 0, len(candidates))
	for _, name := range candidates {
		result = append(result, []rune(name[len(prefix):]))
	}
	return result, len(prefix)
}

func (c *symbolCompleter) collect(prefix string) []string {
	seen := make(map[string]bool)
	var result []string
	add := func(name string) {
		if strings.HasPrefix(name, prefix) && !seen[name] {
			seen[name] = true
			result = append(result, name)
		}
	}
	for _, kw := range parser.Keywords() {
		add(kw)
	}
	for _, t := range types.All {
		if t != types.Untyped {
			add(t.String())
		}
	}
	if c.session != nil {
		for _, sym := range c.session.Globals() {
			add(sym.Name)
		}
	}
	sort.Strings(result)
	return result
}

func isIdentRune(r rune) bool {
	return r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9'
}
