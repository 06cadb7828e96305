// Package cssparse implements the grouped-property style-sheet
// grammar of the layout engine: `selectors { group: { key: value; … }; … }`
// plus the bare `key: value;` form line-height accepts directly.
// Tokenization rides on the generic CSS token grammar; the grouped
// block structure itself is hand-parsed since it nests declaration
// blocks in a way plain CSS does not.
package cssparse

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"

	"typeset/lerr"
	"typeset/style"
	"typeset/unit"
)

// Selector is one parsed selector of a rule: node-name with an
// optional class and an optional pseudo-class.
type Selector struct {
	NodeName string
	Class    *string
	Pseudo   *style.PseudoClass
}

// Rule is one parsed stylesheet rule: a selector list sharing one
// declaration block.
type Rule struct {
	Selectors    []Selector
	Declarations []style.Declaration
}

// Stylesheet is the full result of parsing one style sheet.
type Stylesheet struct {
	Rules []Rule
}

// Parser parses the style sheet grammar described in the external
// interfaces section: comma-separated selector groups, each followed
// by a declaration block of grouped or scalar properties.
type Parser struct {
	log *zap.Logger
}

func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("style-parser")}
}

type tok struct {
	tt   css.TokenType
	data string
}

// tokenize runs the whole input through the CSS lexer once, dropping
// whitespace and comments, the way a recursive-descent parser over a
// custom grammar wants its token stream.
func tokenize(data []byte) []tok {
	l := css.NewLexer(parse.NewInput(bytes.NewReader(data)))
	var toks []tok
	for {
		tt, d := l.Next()
		if tt == css.ErrorToken {
			break
		}
		if tt == css.WhitespaceToken || tt == css.CommentToken {
			continue
		}
		toks = append(toks, tok{tt: tt, data: string(d)})
	}
	return toks
}

// Parse parses a complete style sheet.
func (p *Parser) Parse(data []byte) (*Stylesheet, error) {
	toks := tokenize(data)
	sheet := &Stylesheet{}
	i := 0
	for i < len(toks) {
		selStart := i
		for i < len(toks) && toks[i].tt != css.LeftBraceToken {
			i++
		}
		if i >= len(toks) {
			if i > selStart {
				return nil, lerr.ParseError("unterminated selector list at end of style sheet")
			}
			break
		}
		selText := joinTokens(toks[selStart:i])
		selectors, err := parseSelectorList(selText)
		if err != nil {
			return nil, err
		}

		i++ // consume '{'
		decls, consumed, err := parseBlock(toks[i:])
		if err != nil {
			return nil, err
		}
		i += consumed

		sheet.Rules = append(sheet.Rules, Rule{Selectors: selectors, Declarations: decls})
		p.log.Debug("parsed style rule", zap.Int("selectors", len(selectors)), zap.Int("declarations", len(decls)))
	}
	return sheet, nil
}

func joinTokens(toks []tok) string {
	var b strings.Builder
	for _, t := range toks {
		b.WriteString(t.data)
	}
	return b.String()
}

// parseBlock parses declarations up to and including the matching
// RightBraceToken. It returns the declarations and how many tokens
// (including the closing brace) were consumed.
func parseBlock(toks []tok) ([]style.Declaration, int, error) {
	var decls []style.Declaration
	i := 0
	for i < len(toks) {
		if toks[i].tt == css.RightBraceToken {
			return decls, i + 1, nil
		}
		if toks[i].tt == css.SemicolonToken {
			i++
			continue
		}
		if toks[i].tt != css.IdentToken {
			return nil, 0, lerr.ParseError(fmt.Sprintf("expected property name, found %q", toks[i].data))
		}
		key := strings.ToLower(toks[i].data)
		i++
		if i >= len(toks) || toks[i].tt != css.ColonToken {
			return nil, 0, lerr.ParseError(fmt.Sprintf("expected ':' after property %q", key))
		}
		i++

		if i < len(toks) && toks[i].tt == css.LeftBraceToken {
			i++
			sub, consumed, err := parseGroupBody(toks[i:])
			if err != nil {
				return nil, 0, err
			}
			i += consumed
			groupDecls, err := declarationsForGroup(key, sub)
			if err != nil {
				return nil, 0, err
			}
			decls = append(decls, groupDecls...)
			continue
		}

		valueStart := i
		for i < len(toks) && toks[i].tt != css.SemicolonToken && toks[i].tt != css.RightBraceToken {
			i++
		}
		raw := joinTokens(toks[valueStart:i])
		d, err := declarationForBareKey(key, raw)
		if err != nil {
			return nil, 0, err
		}
		decls = append(decls, d)
	}
	return nil, 0, lerr.ParseError("unterminated declaration block")
}

// parseGroupBody parses `subkey: value;` pairs up to the matching
// RightBraceToken, returning a map and how many tokens (including the
// closing brace) were consumed.
func parseGroupBody(toks []tok) (map[string]string, int, error) {
	sub := map[string]string{}
	i := 0
	for i < len(toks) {
		if toks[i].tt == css.RightBraceToken {
			return sub, i + 1, nil
		}
		if toks[i].tt == css.SemicolonToken {
			i++
			continue
		}
		if toks[i].tt != css.IdentToken {
			return nil, 0, lerr.ParseError(fmt.Sprintf("expected sub-property name, found %q", toks[i].data))
		}
		key := strings.ToLower(toks[i].data)
		i++
		if i >= len(toks) || toks[i].tt != css.ColonToken {
			return nil, 0, lerr.ParseError(fmt.Sprintf("expected ':' after sub-property %q", key))
		}
		i++
		valueStart := i
		for i < len(toks) && toks[i].tt != css.SemicolonToken && toks[i].tt != css.RightBraceToken {
			i++
		}
		sub[key] = joinTokens(toks[valueStart:i])
	}
	return nil, 0, lerr.ParseError("unterminated property group")
}

func parseSelectorList(text string) ([]Selector, error) {
	var selectors []Selector
	for _, part := range strings.Split(text, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		sel, err := parseSelector(part)
		if err != nil {
			return nil, err
		}
		selectors = append(selectors, sel)
	}
	if len(selectors) == 0 {
		return nil, lerr.ParseError("empty selector list")
	}
	return selectors, nil
}

func parseSelector(text string) (Selector, error) {
	sel := Selector{}

	// pseudo-class: name:pseudo(args)
	rest := text
	if idx := strings.IndexByte(rest, ':'); idx >= 0 {
		pseudoText := rest[idx+1:]
		rest = rest[:idx]
		pc, err := parsePseudoClass(pseudoText)
		if err != nil {
			return Selector{}, err
		}
		sel.Pseudo = &pc
	}

	if idx := strings.IndexByte(rest, '.'); idx >= 0 {
		class := rest[idx+1:]
		rest = rest[:idx]
		sel.Class = &class
	}

	if rest == "" {
		return Selector{}, lerr.ParseError("selector missing node name: " + text)
	}
	sel.NodeName = rest
	return sel, nil
}

func parsePseudoClass(text string) (style.PseudoClass, error) {
	open := strings.IndexByte(text, '(')
	if open < 0 || !strings.HasSuffix(text, ")") {
		return style.PseudoClass{}, lerr.ParseError("malformed pseudo-class: " + text)
	}
	name := strings.ToLower(text[:open])
	args := text[open+1 : len(text)-1]
	switch name {
	case "level":
		n, err := strconv.Atoi(strings.TrimSpace(args))
		if err != nil {
			return style.PseudoClass{}, lerr.ParseError("level() pseudo-class expects an integer: " + text)
		}
		return style.Level(n), nil
	default:
		return style.PseudoClass{}, lerr.ParseError("unsupported pseudo-class: " + name)
	}
}

// declarationsForGroup maps a recognised group name and its
// parsed sub-key values to one or more style declarations.
func declarationsForGroup(group string, sub map[string]string) ([]style.Declaration, error) {
	switch group {
	case "size":
		return mapDeclarations(sub, map[string]func(unit.Distance) style.Declaration{
			"width":  style.Width,
			"height": style.Height,
		}, parseDistance)
	case "margin":
		return mapDeclarations(sub, map[string]func(unit.Distance) style.Declaration{
			"top":    style.MarginTop,
			"right":  style.MarginRight,
			"bottom": style.MarginBottom,
			"left":   style.MarginLeft,
		}, parseDistance)
	case "padding":
		return mapDeclarations(sub, map[string]func(unit.Distance) style.Declaration{
			"top":    style.PaddingTop,
			"right":  style.PaddingRight,
			"bottom": style.PaddingBottom,
			"left":   style.PaddingLeft,
		}, parseDistance)
	case "font":
		return parseFontGroup(sub)
	case "inline":
		return parseInlineGroup(sub)
	default:
		return nil, lerr.StyleValueError("unrecognised property group: " + group)
	}
}

func mapDeclarations(sub map[string]string, build map[string]func(unit.Distance) style.Declaration, parse func(string) (unit.Distance, error)) ([]style.Declaration, error) {
	var decls []style.Declaration
	for key, raw := range sub {
		fn, ok := build[key]
		if !ok {
			return nil, lerr.StyleValueError("unrecognised sub-key: " + key)
		}
		d, err := parse(raw)
		if err != nil {
			return nil, err
		}
		decls = append(decls, fn(d))
	}
	return decls, nil
}

func parseFontGroup(sub map[string]string) ([]style.Declaration, error) {
	var decls []style.Declaration
	for key, raw := range sub {
		raw = strings.TrimSpace(raw)
		switch key {
		case "size":
			d, err := parseDistance(raw)
			if err != nil {
				return nil, err
			}
			decls = append(decls, style.FontSize(d))
		case "family":
			fs, err := parseFamily(raw)
			if err != nil {
				return nil, err
			}
			decls = append(decls, style.FontFamily(fs))
		case "weight":
			w, err := parseWeight(raw)
			if err != nil {
				return nil, err
			}
			decls = append(decls, style.FontWeight(w))
		case "stretch":
			s, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, lerr.StyleValueError("invalid font stretch: " + raw)
			}
			decls = append(decls, style.FontStretch(s))
		case "style":
			fst, err := parseFontStyle(raw)
			if err != nil {
				return nil, err
			}
			decls = append(decls, style.FontStyle(fst))
		case "variation-settings":
			vs, err := parseVariationSettings(raw)
			if err != nil {
				return nil, err
			}
			decls = append(decls, style.FontVariationSettings(vs))
		default:
			return nil, lerr.StyleValueError("unrecognised font sub-key: " + key)
		}
	}
	return decls, nil
}

func parseInlineGroup(sub map[string]string) ([]style.Declaration, error) {
	var decls []style.Declaration
	for key, raw := range sub {
		d, err := inlineDeclaration(key, raw)
		if err != nil {
			return nil, err
		}
		decls = append(decls, d)
	}
	return decls, nil
}

func inlineDeclaration(key, raw string) (style.Declaration, error) {
	raw = strings.TrimSpace(raw)
	switch key {
	case "line-height":
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return style.Declaration{}, lerr.StyleValueError("invalid line-height: " + raw)
		}
		return style.LineHeight(v), nil
	case "alignment":
		a, err := parseAlignment(raw)
		if err != nil {
			return style.Declaration{}, err
		}
		return style.Alignment(a), nil
	case "first-line-indent":
		d, err := parseDistance(raw)
		if err != nil {
			return style.Declaration{}, err
		}
		return style.FirstLineIndent(d), nil
	default:
		return style.Declaration{}, lerr.StyleValueError("unrecognised inline sub-key: " + key)
	}
}

// declarationForBareKey handles the one bare scalar form the grammar
// accepts outside a group block: `line-height: <number>;`.
func declarationForBareKey(key, raw string) (style.Declaration, error) {
	if key != "line-height" {
		return style.Declaration{}, lerr.StyleValueError("unrecognised property outside a group: " + key)
	}
	return inlineDeclaration(key, raw)
}
