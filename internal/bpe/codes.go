// Package bpe applies byte-pair-encoding merge operations to text,
// segmenting words into subword units drawn from a learned code table.
// The algorithm and file formats follow Sennrich et al.'s subword-nmt:
// ranked merge rules, optional vocabulary-constrained splitting,
// glossary isolation, and an optional case feature that lets
// segmentation run on lowercased text while preserving capitalization.
package bpe

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// endOfWord marks the word-final position during merge application.
// It never appears in final output.
const endOfWord = "</w>"

// DefaultSeparator is the marker appended to non-final subword tokens.
const DefaultSeparator = "@@"

var (
	// ErrBadVersionHeader is returned when a codes file starts with a
	// "#version:" line that cannot be parsed as X.Y.
	ErrBadVersionHeader = errors.New("malformed version header in codes file")

	// ErrUnsupportedVersion is returned when a codes file declares a
	// version other than 0.1 or 0.2.
	ErrUnsupportedVersion = errors.New("unsupported codes file version")
)

// Version identifies the codes file format, which controls how the
// end-of-word marker is attached during segmentation.
type Version struct {
	Major, Minor int
}

var (
	// Version01 appends the end-of-word marker as its own trailing symbol.
	Version01 = Version{0, 1}
	// Version02 fuses the end-of-word marker onto the last character's symbol.
	Version02 = Version{0, 2}
)

func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Pair is one merge rule: two adjacent symbols that may be joined.
type Pair struct {
	First, Second string
}

// Codes holds the ranked merge rules of one BPE model.
// Lower rank means higher merge priority. Codes is read-only after
// construction and safe to share across segmenters.
type Codes struct {
	version Version
	ranks   map[Pair]int
	ordered []Pair // first-occurrence file order, drives reverse construction
	reverse map[string]Pair
}

// trailing ".0" groups in a version number are insignificant: 0.2.0 == 0.2.
var versionZeros = regexp.MustCompile(`(\.0+)*$`)

// parseVersionHeader parses a "#version: X.Y" line.
func parseVersionHeader(line string) (Version, error) {
	fields := strings.Fields(line)
	raw := fields[len(fields)-1]

	trimmed := versionZeros.ReplaceAllString(raw, "")

	parts := strings.Split(trimmed, ".")
	nums := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Version{}, fmt.Errorf("%w: %q", ErrBadVersionHeader, raw)
		}
		nums[i] = n
	}

	if len(nums) != 2 {
		return Version{}, fmt.Errorf("%w: %q", ErrUnsupportedVersion, raw)
	}

	v := Version{nums[0], nums[1]}
	if v != Version01 && v != Version02 {
		return Version{}, fmt.Errorf("%w: %q", ErrUnsupportedVersion, raw)
	}

	return v, nil
}

// LoadCodes reads ranked merge rules from r.
//
// The stream may begin with a "#version: X.Y" header (0.1 assumed when
// absent). Each following line holds the two symbols of one merge rule;
// earlier lines rank higher. When the same pair appears twice, the first
// occurrence keeps its rank and later duplicates are ignored.
func LoadCodes(r io.Reader) (*Codes, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	c := &Codes{
		version: Version01,
		ranks:   make(map[Pair]int),
		reverse: make(map[string]Pair),
	}

	first := true
	rank := 0

	for sc.Scan() {
		line := sc.Text()

		if first {
			first = false
			if strings.HasPrefix(line, "#version:") {
				v, err := parseVersionHeader(line)
				if err != nil {
					return nil, err
				}
				c.version = v
				continue
			}
		}

		fields := strings.Fields(line)
		if len(fields) != 2 {
			// Blank or malformed rule lines carry no pair to merge.
			continue
		}

		pair := Pair{fields[0], fields[1]}
		if _, dup := c.ranks[pair]; !dup {
			c.ranks[pair] = rank
			c.ordered = append(c.ordered, pair)
		}
		rank++
	}

	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read codes: %w", err)
	}

	// Reverse lookup from merged symbol to the pair that produced it.
	// Ambiguity: two distinct pairs can concatenate to the same symbol;
	// the later pair in file order wins.
	for _, p := range c.ordered {
		c.reverse[p.First+p.Second] = p
	}

	return c, nil
}

// LoadCodesFile opens path and loads merge rules from it.
func LoadCodesFile(path string) (*Codes, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open codes file: %w", err)
	}
	defer func() { _ = f.Close() }()

	c, err := LoadCodes(f)
	if err != nil {
		return nil, fmt.Errorf("load codes file %q: %w", path, err)
	}
	return c, nil
}

// Version reports the codes file format version.
func (c *Codes) Version() Version { return c.version }

// Len reports the number of distinct merge rules.
func (c *Codes) Len() int { return len(c.ordered) }

// Rank reports the priority of a pair. Lower is better. The second
// return value is false when the pair is not a known merge rule.
func (c *Codes) Rank(p Pair) (int, bool) {
	r, ok := c.ranks[p]
	return r, ok
}

// ReversePair reports the pair whose concatenation produced merged.
func (c *Codes) ReversePair(merged string) (Pair, bool) {
	p, ok := c.reverse[merged]
	return p, ok
}
