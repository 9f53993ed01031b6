package bpe

import "testing"

func TestDetokenizeLine_PassThroughWithoutFeature(t *testing.T) {
	if got := DetokenizeLine("plain words only"); got != "plain words only" {
		t.Errorf("DetokenizeLine = %q", got)
	}
}

func TestDetokenizeLine_RestoresCaseAndCollapsesMarkers(t *testing.T) {
	got := DetokenizeLine("low￭￨S er￨N")
	if got != "Lower" {
		t.Errorf("DetokenizeLine = %q, want Lower", got)
	}
}

func TestDetokenizeLine_MarkerSideControlsAttachment(t *testing.T) {
	// A leading marker glues its token to the previous one, a trailing
	// marker to the next one.
	got := DetokenizeLine("usa￨A ￭-￨N based￨N")
	if got != "USA- based" {
		t.Errorf("DetokenizeLine = %q, want %q", got, "USA- based")
	}

	got = DetokenizeLine("usa￨A -￭￨N based￨N")
	if got != "USA -based" {
		t.Errorf("DetokenizeLine = %q, want %q", got, "USA -based")
	}
}

func TestDetokenizeLine_MixedAnnotatedAndPlainTokens(t *testing.T) {
	got := DetokenizeLine("hello low￭￨S er￨N world")
	if got != "hello Lower world" {
		t.Errorf("DetokenizeLine = %q, want %q", got, "hello Lower world")
	}
}

// ---------------------------------------------------------------------------
// encode/decode round trip
// ---------------------------------------------------------------------------

func TestCaseFeature_RoundTrip(t *testing.T) {
	s := newSegmenter(t, "l o\nlo w\ne r\nu s\nus a\n",
		WithCaseFeature(), WithSeparator(OpenNMTSeparator))

	// ASCII-only inputs; the B tag is excluded because its decode
	// restores only the leading capital.
	lines := []string{
		"lower",
		"Lower",
		"LOWER",
		"loweR",
		"Lower USA lower",
		"a A",
	}

	for _, line := range lines {
		encoded := s.SegmentLine(line)
		if got := DetokenizeLine(encoded); got != line {
			t.Errorf("round trip %q -> %q -> %q", line, encoded, got)
		}
	}
}
