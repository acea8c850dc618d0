package outline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWordCount(t *testing.T) {
	cases := map[string]int{
		"":                     0,
		"   ":                  0,
		"one":                  1,
		"  a   b  ":            2,
		"line one\nline\ttwo":  4,
		"don't stop-believing": 2,
	}

	for input, want := range cases {
		assert.Equal(t, want, WordCount(input), "input %q", input)
	}
}

func TestWordCounterMemoizes(t *testing.T) {
	w := newWordCounter()

	assert.Equal(t, 3, w.count("a b c"))
	assert.Equal(t, 1, w.memo.Len())
	assert.Equal(t, 3, w.count("a b c"))
	assert.Equal(t, 1, w.memo.Len())
	assert.Equal(t, 0, w.count(""))
}
