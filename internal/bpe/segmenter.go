package bpe

import (
	"slices"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// defaultCacheSize bounds the per-segmenter word cache.
const defaultCacheSize = 1 << 16

// Segmenter applies ranked merge rules to words. Each Segmenter owns a
// private word cache; the cache is bounded and updated on every
// uncached SegmentWord call, so one Segmenter must not be shared across
// goroutines without external serialization.
type Segmenter struct {
	codes       *Codes
	vocab       *Vocabulary
	separator   string
	glossaries  []string
	caseFeature bool
	cache       *lru.Cache[string, []string]
}

// Option configures a Segmenter.
type Option func(*Segmenter)

// WithVocabulary constrains output tokens to the given vocabulary,
// reverting merges that produce out-of-vocabulary tokens.
func WithVocabulary(v *Vocabulary) Option {
	return func(s *Segmenter) { s.vocab = v }
}

// WithSeparator overrides the marker appended to non-final tokens.
func WithSeparator(sep string) Option {
	return func(s *Segmenter) { s.separator = sep }
}

// WithGlossaries exempts the given literal strings from merging. They
// are applied in the given order and always emitted as isolated tokens.
func WithGlossaries(glossaries ...string) Option {
	return func(s *Segmenter) { s.glossaries = glossaries }
}

// WithCaseFeature makes the segmenter lowercase each word before
// segmentation and annotate every output token with a case tag, so the
// original capitalization can be restored by DetokenizeLine.
func WithCaseFeature() Option {
	return func(s *Segmenter) { s.caseFeature = true }
}

// WithCacheSize overrides the word cache capacity.
func WithCacheSize(n int) Option {
	return func(s *Segmenter) {
		if n > 0 {
			cache, err := lru.New[string, []string](n)
			if err == nil {
				s.cache = cache
			}
		}
	}
}

// NewSegmenter returns a Segmenter over the given merge rules.
func NewSegmenter(codes *Codes, opts ...Option) *Segmenter {
	cache, _ := lru.New[string, []string](defaultCacheSize)

	s := &Segmenter{
		codes:     codes,
		separator: DefaultSeparator,
		cache:     cache,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Separator reports the configured non-final token marker.
func (s *Segmenter) Separator() string { return s.separator }

// CaseFeature reports whether case-tag annotation is enabled.
func (s *Segmenter) CaseFeature() bool { return s.caseFeature }

// SegmentWord splits one word into subword tokens by applying merge
// rules best-rank first. Concatenating the returned tokens reproduces
// the word exactly. Results are cached per Segmenter instance.
func (s *Segmenter) SegmentWord(word string) []string {
	if cached, ok := s.cache.Get(word); ok {
		return cached
	}

	if slices.Contains(s.glossaries, word) {
		result := []string{word}
		s.cache.Add(word, result)
		return result
	}

	symbols := s.initialSymbols(word)
	if len(symbols) < 2 {
		// Nothing to merge. Mirrors the reference behavior of emitting
		// the raw characters, uncached and without vocabulary filtering.
		return splitRunes(word)
	}

	for {
		best, ok := s.lowestRankedPair(symbols)
		if !ok {
			break
		}
		symbols = mergePair(symbols, best)
		if len(symbols) == 1 {
			break
		}
	}

	symbols = stripEndOfWord(symbols)

	if s.vocab != nil {
		symbols = s.splitByVocab(symbols)
	}

	s.cache.Add(word, symbols)
	return symbols
}

// initialSymbols decomposes word into one symbol per character and
// attaches the end-of-word marker according to the codes version:
// 0.1 appends it as its own symbol, 0.2 fuses it onto the last one.
func (s *Segmenter) initialSymbols(word string) []string {
	runes := []rune(word)

	switch s.codes.Version() {
	case Version02:
		if len(runes) == 0 {
			return nil
		}
		symbols := make([]string, len(runes))
		for i, r := range runes[:len(runes)-1] {
			symbols[i] = string(r)
		}
		symbols[len(runes)-1] = string(runes[len(runes)-1]) + endOfWord
		return symbols
	default: // Version01
		symbols := make([]string, len(runes)+1)
		for i, r := range runes {
			symbols[i] = string(r)
		}
		symbols[len(runes)] = endOfWord
		return symbols
	}
}

// lowestRankedPair finds the adjacent symbol pair with the lowest rank.
// Pairs without a rank are skipped; ok is false when no adjacent pair
// is a known merge rule.
func (s *Segmenter) lowestRankedPair(symbols []string) (Pair, bool) {
	var best Pair
	bestRank := -1

	for i := 0; i < len(symbols)-1; i++ {
		p := Pair{symbols[i], symbols[i+1]}
		r, ok := s.codes.Rank(p)
		if !ok {
			continue
		}
		if bestRank < 0 || r < bestRank {
			best, bestRank = p, r
		}
	}

	return best, bestRank >= 0
}

// mergePair rewrites symbols left to right, replacing every adjacent
// occurrence of the pair with its concatenation.
func mergePair(symbols []string, p Pair) []string {
	merged := make([]string, 0, len(symbols))

	for i := 0; i < len(symbols); {
		j := indexFrom(symbols, p.First, i)
		if j < 0 {
			merged = append(merged, symbols[i:]...)
			break
		}
		merged = append(merged, symbols[i:j]...)
		i = j

		if i < len(symbols)-1 && symbols[i+1] == p.Second {
			merged = append(merged, p.First+p.Second)
			i += 2
		} else {
			merged = append(merged, symbols[i])
			i++
		}
	}

	return merged
}

// indexFrom reports the first index >= start whose symbol equals want,
// or -1 when absent.
func indexFrom(symbols []string, want string, start int) int {
	for i := start; i < len(symbols); i++ {
		if symbols[i] == want {
			return i
		}
	}
	return -1
}

// stripEndOfWord removes the internal end-of-word marker: a trailing
// marker symbol is dropped, a marker suffix on the last symbol is
// trimmed off.
func stripEndOfWord(symbols []string) []string {
	last := symbols[len(symbols)-1]
	switch {
	case last == endOfWord:
		return symbols[:len(symbols)-1]
	case strings.HasSuffix(last, endOfWord):
		symbols[len(symbols)-1] = strings.TrimSuffix(last, endOfWord)
	}
	return symbols
}

// splitRunes returns one token per character of word.
func splitRunes(word string) []string {
	runes := []rune(word)
	tokens := make([]string, len(runes))
	for i, r := range runes {
		tokens[i] = string(r)
	}
	return tokens
}

// SegmentLine tokenizes line on whitespace, segments each word, and
// reassembles the output line. Non-final tokens of a word carry the
// separator suffix; with the case feature enabled every token also
// carries a feature separator and case tag derived from the original
// surface form.
func (s *Segmenter) SegmentLine(line string) string {
	var out []string

	for _, word := range strings.Fields(line) {
		norm := word
		if s.caseFeature {
			norm = normalizeCase(word)
		}

		var tokens []string
		for _, fragment := range applyGlossaries(norm, s.glossaries) {
			tokens = append(tokens, s.SegmentWord(fragment)...)
		}
		if len(tokens) == 0 {
			continue
		}

		if s.caseFeature {
			out = append(out, s.annotateCase(word, tokens)...)
			continue
		}

		for _, tok := range tokens[:len(tokens)-1] {
			out = append(out, tok+s.separator)
		}
		out = append(out, tokens[len(tokens)-1])
	}

	return strings.Join(out, " ")
}
