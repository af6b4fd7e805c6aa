package docsearch

import "strings"

const (
	// MaxChunkWords is the largest word-window size generated for a unit.
	MaxChunkWords = 15

	// MaxSubstringLen is the longest character substring generated for a
	// unit. Queries longer than this can only match as word n-grams.
	MaxSubstringLen = 20
)

// Chunks expands normalized text into the full set of candidate search keys:
// every contiguous word window of size 1..min(MaxChunkWords, words) at every
// start position, plus every contiguous character substring of length
// 1..MaxSubstringLen. The returned slice is deduplicated; its order is
// unspecified.
//
// For n words and m characters the expansion is O(n*min(n,15) + m*20) keys.
// The set is bounded per unit and released by the builder before the next
// unit is processed, so peak memory tracks the largest unit, not the corpus.
func Chunks(text string) []string {
	seen := make(map[string]struct{})

	words := strings.Fields(text)
	maxWindow := MaxChunkWords
	if len(words) < maxWindow {
		maxWindow = len(words)
	}
	for size := 1; size <= maxWindow; size++ {
		for i := 0; i+size <= len(words); i++ {
			seen[strings.Join(words[i:i+size], " ")] = struct{}{}
		}
	}

	// Normalized text is ASCII, so byte indexing is rune-safe here.
	for i := 0; i < len(text); i++ {
		end := i + MaxSubstringLen
		if end > len(text) {
			end = len(text)
		}
		for j := i + 1; j <= end; j++ {
			seen[text[i:j]] = struct{}{}
		}
	}

	chunks := make([]string, 0, len(seen))
	for chunk := range seen {
		chunks = append(chunks, chunk)
	}
	return chunks
}
