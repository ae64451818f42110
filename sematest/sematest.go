// Copyright © 2026 The iota authors

// Package sematest runs semantic analysis test cases.
//
// Every case parses its source text afresh: a tree is analyzed at most once,
// so cases never share nodes.
package sematest

import (
	"bufio"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iotalang/iota/analysis"
	"github.com/iotalang/iota/ast"
	"github.com/iotalang/iota/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// OK is the expected kind of a case that analyzes without error.
const OK analysis.ErrorKind = 0

// TestCase is a program and the outcome analysis should produce.
type TestCase struct {
	Name   string
	Source string
	Want   analysis.ErrorKind
}

// TestSuite is a set of independent cases.
type TestSuite []TestCase

// Analyze parses source as a program and analyzes it, logging the analyzer's
// debug output through t.  Parse failures fail the test immediately.
func Analyze(t testing.TB, source string) (*ast.Program, *analysis.Result, error) {
	t.Helper()
	prog, err := parser.Parse(t.Name(), []byte(source))
	require.NoError(t, err, "parse error")
	res, err := analysis.Analyze(prog, &analysis.Config{Logger: NewEntry(t)})
	return prog, res, err
}

// ErrorOf returns the semantic error held by err, failing the test when err
// is nil or of another type.
func ErrorOf(t testing.TB, err error) *analysis.Error {
	t.Helper()
	require.Error(t, err)
	var serr *analysis.Error
	require.True(t, errors.As(err, &serr), "not a semantic error: %v", err)
	return serr
}

// AssertOutcome checks err against want.
func AssertOutcome(t testing.TB, want analysis.ErrorKind, err error) bool {
	t.Helper()
	if want == OK {
		return assert.NoError(t, err)
	}
	if !assert.Error(t, err, "expected %s", want) {
		return false
	}
	var serr *analysis.Error
	if !assert.True(t, errors.As(err, &serr), "not a semantic error: %v", err) {
		return false
	}
	return assert.Equal(t, want, serr.Kind, "got %v", err)
}

// RunTestSuite runs each case as a subtest.
func RunTestSuite(t *testing.T, tests TestSuite) {
	for _, tc := range tests {
		tc := tc
		t.Run(tc.Name, func(t *testing.T) {
			_, _, err := Analyze(t, tc.Source)
			AssertOutcome(t, tc.Want, err)
		})
	}
}

// RunTestFile analyzes the program in path.  The first line of the file
// must be a directive naming the expected outcome, either "// want: ok" or
// "// want: <kind>" with a kind name or code.
func RunTestFile(t *testing.T, path string) {
	source, err := os.ReadFile(path) //#nosec G304
	if err != nil {
		t.Errorf("Unable to read test file: %v", err)
		return
	}
	want, err := directive(source)
	if err != nil {
		t.Errorf("%s: %v", path, err)
		return
	}
	_, _, err = Analyze(t, string(source))
	AssertOutcome(t, want, err)
}

// RunTestDir runs RunTestFile for every .iota file in dir.
func RunTestDir(t *testing.T, dir string) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.iota"))
	require.NoError(t, err)
	require.NotEmpty(t, paths, "no test files in %s", dir)
	for _, path := range paths {
		path := path
		t.Run(filepath.Base(path), func(t *testing.T) {
			RunTestFile(t, path)
		})
	}
}

func directive(source []byte) (analysis.ErrorKind, error) {
	line, _ := bufio.NewReader(bytes.NewReader(source)).ReadString('\n')
	rest, ok := strings.CutPrefix(strings.TrimSpace(line), "// want:")
	if !ok {
		return OK, errors.New("missing '// want:' directive")
	}
	rest = strings.TrimSpace(rest)
	if rest == "ok" {
		return OK, nil
	}
	kind, ok := analysis.ParseKind(rest)
	if !ok {
		return OK, errors.New("unknown error kind " + rest)
	}
	return kind, nil
}

// BenchmarkAnalyze returns a benchmark that parses and analyzes the program
// in path on every iteration.
func BenchmarkAnalyze(path string) func(*testing.B) {
	return func(b *testing.B) {
		buf, err := os.ReadFile(path) //#nosec G304
		if err != nil {
			b.Fatalf("Unable to read source file %v: %v", path, err)
		}
		b.SetBytes(int64(len(buf)))
		for i := 0; i < b.N; i++ {
			prog, err := parser.Parse(path, buf)
			if err != nil {
				b.Fatalf("Parse failure: %v", err)
			}
			if _, err := analysis.Analyze(prog, nil); err != nil {
				b.Fatalf("Analysis failure: %v", err)
			}
		}
	}
}
