package bpe

import "strings"

// isolateGlossary splits word on every occurrence of glossary, keeping
// each occurrence as its own standalone element. Pieces around the
// occurrences are trimmed of surrounding whitespace; empty pieces are
// dropped. A word that equals the glossary, or does not contain it,
// comes back unchanged as a single element.
//
// For glossary "USA" and word "1934USABUSA" the result is
// ["1934", "USA", "B", "USA"].
func isolateGlossary(word, glossary string) []string {
	if word == glossary || !strings.Contains(word, glossary) {
		return []string{word}
	}

	splits := strings.Split(word, glossary)
	segments := make([]string, 0, 2*len(splits))

	for _, piece := range splits[:len(splits)-1] {
		if p := strings.TrimSpace(piece); p != "" {
			segments = append(segments, p)
		}
		segments = append(segments, glossary)
	}
	if p := strings.TrimSpace(splits[len(splits)-1]); p != "" {
		segments = append(segments, p)
	}

	return segments
}

// applyGlossaries runs isolateGlossary once per glossary in list order,
// feeding the fragments produced by one glossary into the next.
func applyGlossaries(word string, glossaries []string) []string {
	segments := []string{word}
	for _, gloss := range glossaries {
		next := make([]string, 0, len(segments))
		for _, seg := range segments {
			next = append(next, isolateGlossary(seg, gloss)...)
		}
		segments = next
	}
	return segments
}
