package outline

import (
	"strings"

	"github.com/Paintersrp/quire/internal/cache"
)

const wordCountMemoSize = 2048

// WordCount counts whitespace-delimited tokens. Leading and trailing
// whitespace is ignored and runs of whitespace separate a single pair of words.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// wordCounter memoizes WordCount by content so re-sorting a folder does not
// re-scan unchanged documents.
type wordCounter struct {
	memo *cache.LRU[string, int]
}

func newWordCounter() *wordCounter {
	return &wordCounter{memo: cache.NewLRU[string, int](wordCountMemoSize)}
}

func (w *wordCounter) count(text string) int {
	if text == "" {
		return 0
	}
	if n, ok := w.memo.Get(text); ok {
		return n
	}
	n := WordCount(text)
	w.memo.Put(text, n)
	return n
}
