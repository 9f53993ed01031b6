package bpe

import "strings"

// DetokenizeLine reverses a segmented line: each token's case tag is
// split off and applied back onto its text, tokens are rejoined with
// single spaces, and every merge marker is removed together with the
// adjacent space it faces, making merged word halves contiguous.
// Tokens without a feature separator pass through unchanged. The pass
// is stateless and needs no codes or vocabulary.
func DetokenizeLine(line string) string {
	words := strings.Fields(line)
	out := make([]string, 0, len(words))

	for _, word := range words {
		idx := strings.Index(word, FeatureSeparator)
		if idx < 0 {
			out = append(out, word)
			continue
		}
		norm := word[:idx]
		tag := word[idx+len(FeatureSeparator):]
		out = append(out, ApplyCase(norm, tag))
	}

	joined := strings.Join(out, " ")
	joined = strings.ReplaceAll(joined, OpenNMTSeparator+" ", "")
	joined = strings.ReplaceAll(joined, " "+OpenNMTSeparator, "")
	return joined
}
