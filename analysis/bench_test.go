// Copyright © 2026 The iota authors

package analysis_test

import (
	"testing"

	"github.com/iotalang/iota/sematest"
)

func BenchmarkAnalyze_Fib(b *testing.B) {
	sematest.BenchmarkAnalyze("testdata/fib.iota")(b)
}

func BenchmarkAnalyze_Mixed(b *testing.B) {
	sematest.BenchmarkAnalyze("testdata/mixed.iota")(b)
}
