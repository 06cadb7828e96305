// Package hyph implements TeX-style (Liang) hyphenation: a trie of
// digit-annotated patterns scores every position in a word, and odd
// scores mark permitted hyphenation points.
package hyph

import (
	"bufio"
	"io"
	"strings"
	"text/scanner"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/text/language"
)

// softHyphen is inserted at permitted break points; a renderer shows it
// only when the line actually breaks there.
const softHyphen = "­"

// langMap maps a language tag to the name of the builtin pattern set
// that should be used for it, for languages whose region doesn't carry
// its own patterns.
var langMap = map[string]string{
	"en":    "en",
	"en-us": "en",
	"en-gb": "en",
}

// Hyphenator inserts soft hyphens into words using a loaded pattern
// trie and an optional exceptions dictionary.
type Hyphenator struct {
	patterns   *trie
	exceptions map[string]string
	language   string
}

// New builds a Hyphenator for lang using the builtin pattern set. It
// returns nil (not an error) when no builtin patterns exist for lang,
// since hyphenation is always optional: the caller should treat a nil
// *Hyphenator as "pass text through unchanged", which Hyphenate does.
func New(lang language.Tag, log *zap.Logger) *Hyphenator {
	name := strings.ToLower(lang.String())

	patterns, ok := builtinPatternsFor(name)
	if !ok {
		base, confidence := lang.Base()
		if confidence == language.No {
			log.Warn("unable to determine language base for hyphenation", zap.Stringer("tag", lang))
			return nil
		}
		patterns, ok = builtinPatternsFor(strings.ToLower(base.String()))
	}
	if !ok {
		log.Debug("no builtin hyphenation patterns, hyphenation disabled", zap.Stringer("tag", lang))
		return nil
	}

	h := &Hyphenator{language: name}
	h.patterns = newTrie()
	loadPatternStrings(h.patterns, patterns)
	h.exceptions = map[string]string{}
	return h
}

func builtinPatternsFor(name string) ([]string, bool) {
	if mapped, ok := langMap[name]; ok {
		name = mapped
	}
	switch name {
	case "en":
		return builtinPatternsEN, true
	default:
		return nil, false
	}
}

// LoadPatterns replaces h's pattern trie with the lines read from r,
// each a TeX-style digit-interleaved pattern ("hy3ph", ".ab1le4"). It
// lets a caller supply a full dictionary (e.g. the public-domain
// hyph-en-us.tex pattern file) in place of the builtin sample set.
func (h *Hyphenator) LoadPatterns(r io.Reader) error {
	t := newTrie()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "%") {
			continue
		}
		t.addPatternString(line)
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	h.patterns = t
	return nil
}

// LoadExceptions replaces h's exception table with entries read from
// r, one hyphenated word per line (e.g. "as-so-ciate").
func (h *Hyphenator) LoadExceptions(r io.Reader) error {
	exceptions := make(map[string]string)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		key := strings.ReplaceAll(line, "-", "")
		exceptions[key] = line
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	h.exceptions = exceptions
	return nil
}

// Hyphenate inserts soft hyphens into every word of in. A nil receiver
// passes the text through unchanged, so callers never need a nil check
// before hyphenating.
func (h *Hyphenator) Hyphenate(in string) string {
	if h == nil {
		return in
	}
	return h.hyphString(in, softHyphen)
}

// Syllables splits a single trimmed word at its permitted hyphenation
// points, returning the pieces in order. A nil receiver, or a word
// with no permitted break, returns the word as its own single-element
// slice.
func (h *Hyphenator) Syllables(word string) []string {
	if h == nil || word == "" {
		return []string{word}
	}
	if exc, ok := h.exceptions[word]; ok {
		return strings.Split(exc, "-")
	}
	hyphenated := h.hyphenateWord(word, softHyphen)
	return strings.Split(hyphenated, softHyphen)
}

func (h *Hyphenator) hyphenateWord(s, hyphen string) string {
	testStr := `.` + s + `.`
	v := make([]int, utf8.RuneCountInString(testStr))

	vIndex := 0
	for pos := range testStr {
		t := testStr[pos:]
		strs, values := h.patterns.allSubstringsAndValues(t)
		for i := range len(values) {
			str := strs[i]
			val := values[i].([]int)

			diff := len(val) - utf8.RuneCountInString(str)
			vs := v[vIndex-diff:]

			for i := range len(val) {
				if val[i] > vs[i] {
					vs[i] = val[i]
				}
			}
		}
		vIndex++
	}

	var outstr string

	// trim the values for the beginning and ending dots
	markers := v[1 : len(v)-1]
	mIndex := 0
	u := make([]byte, 4)
	for _, ch := range s {
		l := utf8.EncodeRune(u, ch)
		outstr += string(u[0:l])
		// don't hyphenate between (or after) first two and the last two characters of a string
		if 1 <= mIndex && mIndex < len(markers)-2 {
			// hyphens are inserted on odd values, skipped on even ones
			if markers[mIndex]%2 != 0 {
				outstr += hyphen
			}
		}
		mIndex++
	}

	return outstr
}

func (h *Hyphenator) hyphString(s, hyphen string) string {
	var sc scanner.Scanner
	sc.Init(strings.NewReader(s))
	sc.Mode = scanner.ScanIdents
	sc.Whitespace = 0

	var outstr string

	tok := sc.Scan()
	for tok != scanner.EOF {
		switch tok {
		case scanner.Ident:
			t := sc.TokenText()
			if exc := h.exceptions[t]; len(exc) != 0 {
				if hyphen != `-` {
					exc = strings.ReplaceAll(exc, `-`, hyphen)
				}
				outstr += exc
			} else {
				outstr += h.hyphenateWord(t, hyphen)
			}
		default:
			p := make([]byte, utf8.UTFMax)
			l := utf8.EncodeRune(p, tok)
			outstr += string(p[0:l])
		}

		tok = sc.Scan()
	}
	return outstr
}
