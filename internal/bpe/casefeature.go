package bpe

import (
	"strings"
	"unicode"
)

// FeatureSeparator joins a token with its case tag. U+FFE8, the
// feature marker used by OpenNMT.
const FeatureSeparator = "￨"

// OpenNMTSeparator is the single-character merge marker used in
// OpenNMT mode instead of the default "@@".
const OpenNMTSeparator = "￭"

// Case tags describe which characters of a token's source text were
// uppercase.
const (
	caseStart = "S" // first character only
	caseEnd   = "E" // last character only
	caseBoth  = "B" // first and last, not in between
	caseAll   = "A" // every character
	caseNone  = "N" // none
)

// normalizeCase lowercases word for segmentation. A literal feature
// separator in the input would collide with the annotation format, so
// it is replaced with a plain pipe.
func normalizeCase(word string) string {
	norm := strings.ToLower(word)
	return strings.ReplaceAll(norm, FeatureSeparator, "|")
}

// caseTag derives the case tag for a surface slice of the original word.
func caseTag(surf []rune) string {
	if len(surf) == 0 {
		return caseNone
	}

	uStart := unicode.IsUpper(surf[0])
	if len(surf) == 1 {
		if uStart {
			return caseStart
		}
		return caseNone
	}

	uEnd := unicode.IsUpper(surf[len(surf)-1])
	if len(surf) == 2 {
		switch {
		case uStart && uEnd:
			return caseAll
		case uStart:
			return caseStart
		case uEnd:
			return caseEnd
		default:
			return caseNone
		}
	}

	uMid := true
	for _, r := range surf[1 : len(surf)-1] {
		if !unicode.IsUpper(r) {
			uMid = false
			break
		}
	}

	if uEnd {
		switch {
		case uStart && uMid:
			return caseAll
		case uStart:
			return caseBoth
		default:
			return caseEnd
		}
	}
	if uStart {
		return caseStart
	}
	return caseNone
}

// annotateCase formats the tokens of one word, attaching to each the
// case tag of the matching slice of the original surface form. Token
// boundaries in the normalized and original words are assumed
// character-aligned; length-changing case folding is unspecified input.
func (s *Segmenter) annotateCase(word string, tokens []string) []string {
	surf := []rune(word)
	out := make([]string, 0, len(tokens))

	pos := 0
	for _, tok := range tokens[:len(tokens)-1] {
		n := len([]rune(tok))
		end := pos + n
		if end > len(surf) {
			end = len(surf)
		}
		tag := caseTag(surf[min(pos, len(surf)):end])
		out = append(out, tok+s.separator+FeatureSeparator+tag)
		pos = end
	}

	tag := caseTag(surf[min(pos, len(surf)):])
	out = append(out, tokens[len(tokens)-1]+FeatureSeparator+tag)

	return out
}

// ApplyCase restores the capitalization encoded by tag onto the
// normalized token text. A merge marker attached to the front or back
// of the text is never case-altered: it is detached before the E and B
// tags touch the first or last character, then reattached.
func ApplyCase(norm, tag string) string {
	switch tag {
	case caseNone:
		return norm
	case caseAll:
		return strings.ToUpper(norm)
	case caseStart:
		return upperFirst(norm)
	}

	core := norm
	startSep, endSep := "", ""
	if strings.HasSuffix(core, OpenNMTSeparator) {
		endSep = OpenNMTSeparator
		core = strings.TrimSuffix(core, OpenNMTSeparator)
	}
	if strings.HasPrefix(core, OpenNMTSeparator) {
		startSep = OpenNMTSeparator
		core = strings.TrimPrefix(core, OpenNMTSeparator)
	}

	switch tag {
	case caseEnd:
		core = upperLast(core)
	case caseBoth:
		core = upperFirst(core)
	}

	return startSep + core + endSep
}

func upperFirst(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func upperLast(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[len(runes)-1] = unicode.ToUpper(runes[len(runes)-1])
	return string(runes)
}
