package bpe

import "strings"

// splitByVocab checks each token of a segmented word against the
// vocabulary and reverts the merges of out-of-vocabulary tokens.
// Non-final tokens are tested with the trailing separator attached,
// the final token by plain membership.
func (s *Segmenter) splitByVocab(tokens []string) []string {
	out := make([]string, 0, len(tokens))

	for _, tok := range tokens[:len(tokens)-1] {
		if s.vocab.Contains(tok + s.separator) {
			out = append(out, tok)
		} else {
			out = s.recursiveSplit(out, tok, false)
		}
	}

	last := tokens[len(tokens)-1]
	if s.vocab.Contains(last) {
		out = append(out, last)
	} else {
		out = s.recursiveSplit(out, last, true)
	}

	return out
}

// recursiveSplit undoes the merge that produced segment and appends the
// resulting pieces to out, recursing into any piece that is still out
// of vocabulary. A segment with no recorded merge is appended as-is.
// For the final segment of a word, the reverse lookup accounts for the
// end-of-word marker and the right half is tested without a separator.
func (s *Segmenter) recursiveSplit(out []string, segment string, final bool) []string {
	var left, right string

	if final {
		pair, ok := s.codes.ReversePair(segment + endOfWord)
		if !ok {
			return append(out, segment)
		}
		left, right = pair.First, strings.TrimSuffix(pair.Second, endOfWord)
	} else {
		pair, ok := s.codes.ReversePair(segment)
		if !ok {
			return append(out, segment)
		}
		left, right = pair.First, pair.Second
	}

	if s.vocab.Contains(left + s.separator) {
		out = append(out, left)
	} else {
		out = s.recursiveSplit(out, left, false)
	}

	if (final && s.vocab.Contains(right)) || (!final && s.vocab.Contains(right+s.separator)) {
		out = append(out, right)
	} else {
		out = s.recursiveSplit(out, right, final)
	}

	return out
}
