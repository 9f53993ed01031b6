package bpe

import (
	"errors"
	"strings"
	"testing"
)

func loadCodes(t *testing.T, content string) *Codes {
	t.Helper()

	c, err := LoadCodes(strings.NewReader(content))
	if err != nil {
		t.Fatalf("LoadCodes: %v", err)
	}
	return c
}

// ---------------------------------------------------------------------------
// version header
// ---------------------------------------------------------------------------

func TestLoadCodes_DefaultsToVersion01(t *testing.T) {
	c := loadCodes(t, "l o\nlo w\n")

	if c.Version() != Version01 {
		t.Errorf("Version() = %v, want %v", c.Version(), Version01)
	}

	// The first line must not be swallowed as a header.
	if _, ok := c.Rank(Pair{"l", "o"}); !ok {
		t.Error("expected rule (l,o) from first line")
	}
}

func TestLoadCodes_Version02Header(t *testing.T) {
	c := loadCodes(t, "#version: 0.2\nl o\n")

	if c.Version() != Version02 {
		t.Errorf("Version() = %v, want %v", c.Version(), Version02)
	}

	if r, ok := c.Rank(Pair{"l", "o"}); !ok || r != 0 {
		t.Errorf("Rank(l,o) = %d,%v, want 0,true", r, ok)
	}
}

func TestLoadCodes_TrailingZeroGroupsInsignificant(t *testing.T) {
	c := loadCodes(t, "#version: 0.2.0\nl o\n")

	if c.Version() != Version02 {
		t.Errorf("Version() = %v, want %v", c.Version(), Version02)
	}
}

func TestLoadCodes_MalformedHeader(t *testing.T) {
	_, err := LoadCodes(strings.NewReader("#version: abc\nl o\n"))
	if !errors.Is(err, ErrBadVersionHeader) {
		t.Errorf("want ErrBadVersionHeader, got %v", err)
	}
}

func TestLoadCodes_UnsupportedVersions(t *testing.T) {
	for _, header := range []string{"#version: 0.3", "#version: 1.1", "#version: 0.10", "#version: 2"} {
		_, err := LoadCodes(strings.NewReader(header + "\nl o\n"))
		if !errors.Is(err, ErrUnsupportedVersion) {
			t.Errorf("%q: want ErrUnsupportedVersion, got %v", header, err)
		}
	}
}

// ---------------------------------------------------------------------------
// ranks
// ---------------------------------------------------------------------------

func TestLoadCodes_RanksFollowLineOrder(t *testing.T) {
	c := loadCodes(t, "l o\nlo w\ne r\n")

	for i, p := range []Pair{{"l", "o"}, {"lo", "w"}, {"e", "r"}} {
		r, ok := c.Rank(p)
		if !ok {
			t.Fatalf("Rank(%v): not found", p)
		}
		if r != i {
			t.Errorf("Rank(%v) = %d, want %d", p, r, i)
		}
	}

	if _, ok := c.Rank(Pair{"x", "y"}); ok {
		t.Error("Rank(x,y) reported present for unknown pair")
	}
}

func TestLoadCodes_DuplicatePairKeepsFirstRank(t *testing.T) {
	c := loadCodes(t, "l o\nl o\nt h\n")

	if r, _ := c.Rank(Pair{"l", "o"}); r != 0 {
		t.Errorf("Rank(l,o) = %d, want 0 (first occurrence)", r)
	}

	// The duplicate line still consumes a rank position.
	if r, _ := c.Rank(Pair{"t", "h"}); r != 2 {
		t.Errorf("Rank(t,h) = %d, want 2", r)
	}

	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2 distinct rules", c.Len())
	}
}

func TestLoadCodes_SkipsBlankAndMalformedLines(t *testing.T) {
	c := loadCodes(t, "l o\n\nlo w e\nt h\n")

	if _, ok := c.Rank(Pair{"l", "o"}); !ok {
		t.Error("expected rule (l,o)")
	}
	if _, ok := c.Rank(Pair{"t", "h"}); !ok {
		t.Error("expected rule (t,h)")
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
}

// ---------------------------------------------------------------------------
// reverse table
// ---------------------------------------------------------------------------

func TestReversePair_MapsMergedSymbolToPair(t *testing.T) {
	c := loadCodes(t, "l o\nlo w\n")

	p, ok := c.ReversePair("low")
	if !ok {
		t.Fatal("ReversePair(low): not found")
	}
	if p != (Pair{"lo", "w"}) {
		t.Errorf("ReversePair(low) = %v, want {lo w}", p)
	}

	if _, ok := c.ReversePair("xyz"); ok {
		t.Error("ReversePair(xyz) reported present for unknown symbol")
	}
}

func TestReversePair_CollisionLastWriteWins(t *testing.T) {
	// Both rules concatenate to "abc"; the later rule wins.
	c := loadCodes(t, "a bc\nab c\n")

	p, ok := c.ReversePair("abc")
	if !ok {
		t.Fatal("ReversePair(abc): not found")
	}
	if p != (Pair{"ab", "c"}) {
		t.Errorf("ReversePair(abc) = %v, want {ab c}", p)
	}
}
