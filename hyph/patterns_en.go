package hyph

// builtinPatternsEN is a small, illustrative set of TeX-style (Liang)
// hyphenation patterns for US English, in the digit-interleaved format
// consumed by (*trie).addPatternString (e.g. "hy3ph", ".ab1le4").
//
// This is not the full hyph-en-us.tex pattern set distributed by CTAN
// (that file carries its own copyright and runs to several thousand
// lines); it covers a sample of common prefixes, suffixes and digraphs
// so the package hyphenates ordinary English text out of the box. A
// full dictionary, in the same format, can be loaded at runtime with
// LoadPatterns.
var builtinPatternsEN = []string{
	// common suffixes
	"1tion", "1sion", "2ssion", "1ing2", "1ings2", "2ed1", "1er1",
	"1est1", "1ly1", "1ness", "1ment", "1ful1", "1less", "1able",
	"1ible", "2al1", "1ize", "1ise", "1ist", "1ism", "2ic1", "2ical",
	// common prefixes
	"1un", "1re2", "1in2", "1dis", "1pre", "1pro2", "1non1", "1sub2",
	"1inter", "1trans", "1over1", "1under1", "1mis2",
	// common digraphs / consonant clusters, conservative values only
	"1bl", "1br", "1cl", "1cr", "1dr", "1fl", "1fr", "1gl", "1gr",
	"1pl", "1pr", "1sc", "1sk", "1sl", "1sm", "1sn", "1sp", "1st",
	"1sw", "1tr", "1tw", "1wr",
	"ck1", "ct1", "ft1", "ld1", "lk1", "lm1", "lp1", "lt1", "mp1",
	"nd1", "nk1", "nt1", "pt1", "rd1", "rk1", "rm1", "rn1", "rt1",
	"st1", "2th2",
	// vowel-consonant-vowel, the classic break point before a single
	// medial consonant
	"a1ba", "e1be", "i1bi", "o1bo", "u1bu",
	"a1ta", "e1te", "i1ti", "o1to", "u1tu",
	"a1na", "e1ne", "i1ni", "o1no", "u1nu",
	"a1ra", "e1re", "i1ri", "o1ro", "u1ru",
	"a1la", "e1le", "i1li", "o1lo", "u1lu",
}

// loadPatternStrings adds every pattern line from strs to t, in Liang's
// digit-interleaved notation.
func loadPatternStrings(t *trie, strs []string) {
	for _, s := range strs {
		t.addPatternString(s)
	}
}
