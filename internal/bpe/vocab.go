package bpe

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrVocabFormat is returned when a vocabulary line is not
// "token frequency" with an integer frequency.
var ErrVocabFormat = errors.New("malformed vocabulary line")

// Vocabulary is the closed set of permitted output tokens. Tokens
// outside it are decomposed further during segmentation. Read-only
// after construction and safe to share across segmenters.
type Vocabulary struct {
	tokens map[string]struct{}
}

// LoadVocabulary reads "token frequency" lines from r, keeping tokens
// whose frequency is at least threshold.
func LoadVocabulary(r io.Reader, threshold int) (*Vocabulary, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	v := &Vocabulary{tokens: make(map[string]struct{})}

	lineNo := 0
	for sc.Scan() {
		lineNo++
		fields := strings.Fields(sc.Text())
		if len(fields) != 2 {
			return nil, fmt.Errorf("%w: line %d: want \"token frequency\", got %q", ErrVocabFormat, lineNo, sc.Text())
		}

		freq, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: frequency %q is not an integer", ErrVocabFormat, lineNo, fields[1])
		}

		if freq >= threshold {
			v.tokens[fields[0]] = struct{}{}
		}
	}

	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read vocabulary: %w", err)
	}

	return v, nil
}

// LoadVocabularyFile opens path and loads a vocabulary from it.
func LoadVocabularyFile(path string, threshold int) (*Vocabulary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open vocabulary file: %w", err)
	}
	defer func() { _ = f.Close() }()

	v, err := LoadVocabulary(f, threshold)
	if err != nil {
		return nil, fmt.Errorf("load vocabulary file %q: %w", path, err)
	}
	return v, nil
}

// Contains reports whether token is in the vocabulary.
func (v *Vocabulary) Contains(token string) bool {
	_, ok := v.tokens[token]
	return ok
}

// Len reports the number of tokens kept after threshold filtering.
func (v *Vocabulary) Len() int { return len(v.tokens) }
