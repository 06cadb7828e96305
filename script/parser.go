// Package script implements the script parser collaborator: it reads
// the HTML-like document dialect and builds a document.Tree honouring
// the tree invariants (every Text node has a Paragraph ancestor, the
// outer <document> element is transparent, unknown elements become
// Custom nodes).
package script

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
	"go.uber.org/zap"

	"typeset/document"
	"typeset/lerr"
)

// Parser reads the script dialect into a document.Tree.
type Parser struct {
	log *zap.Logger
}

func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("script-parser")}
}

// elementAliases maps every recognised short alias, and every
// canonical name itself, to its canonical element name.
var elementAliases = map[string]string{
	"s":   "section",
	"p":   "paragraph",
	"h":   "heading",
	"l":   "list",
	"li":  "list-item",
	"t":   "table",
	"br":  "break",
	"img": "image",
	"b":   "bold",
	"i":   "italic",

	"section":   "section",
	"paragraph": "paragraph",
	"heading":   "heading",
	"list":      "list",
	"list-item": "list-item",
	"table":     "table",
	"break":     "break",
	"image":     "image",
	"bold":      "bold",
	"italic":    "italic",
	"document":  "document",
}

func canonicalName(raw string) string {
	name := strings.ToLower(raw)
	if c, ok := elementAliases[name]; ok {
		return c
	}
	return name
}

func isVoidElement(canonical string) bool {
	return canonical == "break" || canonical == "image"
}

func isInlineWrapper(canonical string) bool {
	return canonical == "bold" || canonical == "italic"
}

// valueForElement builds the NodeValue for every canonical element
// name except "image", which additionally needs its attributes.
func valueForElement(canonical string) document.NodeValue {
	switch canonical {
	case "section":
		return document.Section()
	case "paragraph":
		return document.Paragraph()
	case "heading":
		return document.Heading()
	case "list":
		return document.List()
	case "list-item":
		return document.ListItem()
	case "break":
		return document.Break()
	case "bold":
		return document.Bold()
	case "italic":
		return document.Italic()
	default:
		return document.Custom(canonical)
	}
}

type stackFrame struct {
	id            document.ID
	elementName   string // "" for the root frame
	hasParagraph  bool
	openSynthetic *document.ID
}

type parseState struct {
	tree  *document.Tree
	log   *zap.Logger
	stack []stackFrame
}

func attrMap(tok html.Token) map[string]string {
	if len(tok.Attr) == 0 {
		return nil
	}
	attrs := make(map[string]string, len(tok.Attr))
	for _, a := range tok.Attr {
		attrs[a.Key] = a.Val
	}
	return attrs
}

func parseFloatAttr(attrs map[string]string, key string) *float64 {
	raw, ok := attrs[key]
	if !ok {
		return nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return nil
	}
	return &v
}

// insertionParent returns the node id that inline content (text,
// break, image, bold, italic) attaches to under frame, synthesising a
// Paragraph under it on first use if frame has no Paragraph ancestor
// yet.
func (ps *parseState) insertionParent(frame *stackFrame, pos *document.SourcePosition) document.ID {
	if frame.hasParagraph {
		return frame.id
	}
	if frame.openSynthetic == nil {
		id, _ := ps.tree.Insert(frame.id, "paragraph", document.Paragraph(), nil, pos)
		frame.openSynthetic = &id
	}
	return *frame.openSynthetic
}

func (ps *parseState) top() *stackFrame {
	return &ps.stack[len(ps.stack)-1]
}

func (ps *parseState) handleStartTag(tok html.Token, pos *document.SourcePosition) error {
	canonical := canonicalName(tok.Data)
	cur := ps.top()

	if canonical == "document" {
		ps.stack = append(ps.stack, stackFrame{
			id:           cur.id,
			elementName:  "document",
			hasParagraph: cur.hasParagraph,
		})
		return nil
	}

	if isVoidElement(canonical) {
		parentID := ps.insertionParent(cur, pos)
		attrs := attrMap(tok)
		if canonical == "image" {
			src, ok := attrs["src"]
			if !ok || src == "" {
				return lerr.ParseErrorAt(pos.Line, pos.Column, "image element missing required src attribute")
			}
			img := document.Image{
				Source: src,
				Width:  parseFloatAttr(attrs, "width"),
				Height: parseFloatAttr(attrs, "height"),
			}
			ps.tree.Insert(parentID, canonical, document.ImageNode(img), attrs, pos)
		} else {
			ps.tree.Insert(parentID, canonical, valueForElement(canonical), attrs, pos)
		}
		// Void elements don't get a frame: if the script still carries a
		// matching end tag, handleEndTag is a no-op for it since the
		// stack top won't have this element name.
		return nil
	}

	if isInlineWrapper(canonical) {
		parentID := ps.insertionParent(cur, pos)
		id, _ := ps.tree.Insert(parentID, canonical, valueForElement(canonical), attrMap(tok), pos)
		ps.stack = append(ps.stack, stackFrame{id: id, elementName: canonical, hasParagraph: true})
		return nil
	}

	// Block-level element: close any synthesized paragraph open directly
	// under the current frame so trailing siblings start a fresh one.
	cur.openSynthetic = nil
	id, _ := ps.tree.Insert(cur.id, canonical, valueForElement(canonical), attrMap(tok), pos)
	hasParagraph := cur.hasParagraph || canonical == "paragraph"
	ps.stack = append(ps.stack, stackFrame{id: id, elementName: canonical, hasParagraph: hasParagraph})
	return nil
}

func (ps *parseState) handleEndTag(tok html.Token) {
	canonical := canonicalName(tok.Data)
	if len(ps.stack) <= 1 {
		return
	}
	top := ps.top()
	if top.elementName != canonical {
		return
	}
	ps.stack = ps.stack[:len(ps.stack)-1]
}

func (ps *parseState) handleText(text string, pos *document.SourcePosition) {
	cur := ps.top()
	if strings.TrimSpace(text) == "" && !cur.hasParagraph && cur.openSynthetic == nil {
		return
	}
	parentID := ps.insertionParent(cur, pos)
	ps.tree.Insert(parentID, "", document.Text(text), nil, pos)
}

// Parse reads data as UTF-8 (a leading byte-order mark naming another
// Unicode encoding takes precedence) and returns the resulting document
// tree.
func (p *Parser) Parse(data []byte) (*document.Tree, error) {
	r, err := charset.NewReader(strings.NewReader(string(data)), "text/html; charset=utf-8")
	if err != nil {
		return nil, lerr.ParseError("failed to determine document encoding: " + err.Error())
	}

	z := html.NewTokenizer(r)
	ps := &parseState{
		tree:  document.New(),
		log:   p.log,
		stack: []stackFrame{{id: document.RootID}},
	}

	line, col := 1, 1
	advance := func(raw []byte) {
		for _, b := range raw {
			if b == '\n' {
				line++
				col = 1
			} else {
				col++
			}
		}
	}

	for {
		tt := z.Next()
		raw := z.Raw()

		switch tt {
		case html.ErrorToken:
			if err := z.Err(); err != nil && err.Error() != "EOF" {
				return nil, lerr.ParseErrorAt(line, col, "script parse error: "+err.Error())
			}
			return ps.tree, nil

		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			pos := &document.SourcePosition{Line: line, Column: col}
			if err := ps.handleStartTag(tok, pos); err != nil {
				return nil, err
			}

		case html.EndTagToken:
			tok := z.Token()
			ps.handleEndTag(tok)

		case html.TextToken:
			pos := &document.SourcePosition{Line: line, Column: col}
			ps.handleText(string(z.Text()), pos)

		case html.CommentToken, html.DoctypeToken:
			// not part of the document model
		}

		advance(raw)
	}
}
