package script

import (
	"strings"
	"testing"

	"typeset/document"
	"typeset/lerr"
)

func mustParse(t *testing.T, src string) *document.Tree {
	t.Helper()
	tree, err := NewParser(nil).Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", src, err)
	}
	return tree
}

func children(tree *document.Tree, id document.ID) []*document.Node {
	node := tree.Get(id)
	out := make([]*document.Node, 0, len(node.Children))
	for _, c := range node.Children {
		out = append(out, tree.Get(c))
	}
	return out
}

func TestParseElementAliases(t *testing.T) {
	tree := mustParse(t, `<s><p>hello</p></s>`)
	kids := children(tree, document.RootID)
	if len(kids) != 1 || kids[0].Value.Kind != document.KindSection {
		t.Fatalf("root children = %+v, want one Section", kids)
	}
	sectionKids := children(tree, kids[0].ID)
	if len(sectionKids) != 1 || sectionKids[0].Value.Kind != document.KindParagraph {
		t.Fatalf("section children = %+v, want one Paragraph", sectionKids)
	}
}

func TestParseBareTextSynthesizesParagraph(t *testing.T) {
	tree := mustParse(t, `<s>hello world</s>`)
	section := children(tree, document.RootID)[0]
	kids := children(tree, section.ID)
	if len(kids) != 1 || kids[0].Value.Kind != document.KindParagraph {
		t.Fatalf("section children = %+v, want a synthesized Paragraph", kids)
	}
	textKids := children(tree, kids[0].ID)
	if len(textKids) != 1 || textKids[0].Value.Kind != document.KindText || textKids[0].Value.Text != "hello world" {
		t.Fatalf("paragraph children = %+v", textKids)
	}
}

func TestParseBareTextUnderRoot(t *testing.T) {
	tree := mustParse(t, `plain text`)
	kids := children(tree, document.RootID)
	if len(kids) != 1 || kids[0].Value.Kind != document.KindParagraph {
		t.Fatalf("root children = %+v, want a synthesized Paragraph", kids)
	}
}

func TestParseHeadingSynthesizesParagraph(t *testing.T) {
	tree := mustParse(t, `<h>Title</h>`)
	heading := children(tree, document.RootID)[0]
	if heading.Value.Kind != document.KindHeading {
		t.Fatalf("root child = %+v, want Heading", heading)
	}
	kids := children(tree, heading.ID)
	if len(kids) != 1 || kids[0].Value.Kind != document.KindParagraph {
		t.Fatalf("heading children = %+v, want a synthesized Paragraph", kids)
	}
}

func TestParseListItemSynthesizesParagraph(t *testing.T) {
	tree := mustParse(t, `<l><li>item one</li></l>`)
	list := children(tree, document.RootID)[0]
	item := children(tree, list.ID)[0]
	if item.Value.Kind != document.KindListItem {
		t.Fatalf("list child = %+v, want ListItem", item)
	}
	kids := children(tree, item.ID)
	if len(kids) != 1 || kids[0].Value.Kind != document.KindParagraph {
		t.Fatalf("list-item children = %+v, want a synthesized Paragraph", kids)
	}
}

func TestParseMultipleSiblingTextsGetSeparateParagraphs(t *testing.T) {
	tree := mustParse(t, `<s>first<p>explicit</p>second</s>`)
	section := children(tree, document.RootID)[0]
	kids := children(tree, section.ID)
	if len(kids) != 3 {
		t.Fatalf("section children = %+v, want 3 (synthesized, explicit, synthesized)", kids)
	}
	for _, k := range kids {
		if k.Value.Kind != document.KindParagraph {
			t.Errorf("child %+v, want Paragraph", k)
		}
	}
}

func TestParseBoldItalicInlineWrapping(t *testing.T) {
	tree := mustParse(t, `<p>plain <b>bold <i>both</i></b> text</p>`)
	para := children(tree, document.RootID)[0]
	kids := children(tree, para.ID)
	if len(kids) != 3 {
		t.Fatalf("paragraph children = %+v, want text, bold, text", kids)
	}
	if kids[0].Value.Kind != document.KindText || kids[0].Value.Text != "plain " {
		t.Errorf("first child = %+v", kids[0])
	}
	bold := kids[1]
	if bold.Value.Kind != document.KindBold {
		t.Fatalf("second child = %+v, want Bold", bold)
	}
	boldKids := children(tree, bold.ID)
	if len(boldKids) != 2 {
		t.Fatalf("bold children = %+v, want text + italic", boldKids)
	}
	if boldKids[1].Value.Kind != document.KindItalic {
		t.Fatalf("bold's second child = %+v, want Italic", boldKids[1])
	}
}

func TestParseDocumentWrapperIsTransparent(t *testing.T) {
	tree := mustParse(t, `<document><p>hi</p></document>`)
	kids := children(tree, document.RootID)
	if len(kids) != 1 || kids[0].Value.Kind != document.KindParagraph {
		t.Fatalf("root children = %+v, want the paragraph directly under root", kids)
	}
}

func TestParseUnknownElementBecomesCustom(t *testing.T) {
	tree := mustParse(t, `<footnote>ref</footnote>`)
	kids := children(tree, document.RootID)
	if len(kids) != 1 || kids[0].Value.Kind != document.KindCustom || kids[0].Value.CustomName != "footnote" {
		t.Fatalf("root children = %+v, want Custom(footnote)", kids)
	}
}

func TestParseTableFallsBackToCustom(t *testing.T) {
	tree := mustParse(t, `<t></t>`)
	kids := children(tree, document.RootID)
	if len(kids) != 1 || kids[0].Value.Kind != document.KindCustom || kids[0].Value.CustomName != "table" {
		t.Fatalf("root children = %+v, want Custom(table)", kids)
	}
}

func TestParseImageRequiresSrc(t *testing.T) {
	_, err := NewParser(nil).Parse([]byte(`<img>`))
	if err == nil {
		t.Fatal("expected error for image missing src")
	}
	if !lerr.Is(err, lerr.ParseErrorKind) {
		t.Errorf("error = %v, want ParseErrorKind", err)
	}
}

func TestParseImageWithAttributes(t *testing.T) {
	tree := mustParse(t, `<img src="cover.png" width="100" height="50">`)
	kids := children(tree, document.RootID)
	if len(kids) != 1 {
		t.Fatalf("root children = %+v, want one image paragraph", kids)
	}
	img := children(tree, kids[0].ID)[0]
	if img.Value.Kind != document.KindImage || img.Value.Image.Source != "cover.png" {
		t.Fatalf("image = %+v", img)
	}
	if img.Value.Image.Width == nil || *img.Value.Image.Width != 100 {
		t.Errorf("width = %v, want 100", img.Value.Image.Width)
	}
	if img.Value.Image.Height == nil || *img.Value.Image.Height != 50 {
		t.Errorf("height = %v, want 50", img.Value.Image.Height)
	}
}

func TestParseBreakIsVoid(t *testing.T) {
	tree := mustParse(t, `<p>one<br>two</p>`)
	para := children(tree, document.RootID)[0]
	kids := children(tree, para.ID)
	if len(kids) != 3 {
		t.Fatalf("paragraph children = %+v, want text, break, text", kids)
	}
	if kids[1].Value.Kind != document.KindBreak {
		t.Fatalf("middle child = %+v, want Break", kids[1])
	}
}

func TestParseWhitespaceOnlyAtBlockBoundarySkipped(t *testing.T) {
	tree := mustParse(t, "<s>\n  <p>hi</p>\n</s>")
	section := children(tree, document.RootID)[0]
	kids := children(tree, section.ID)
	if len(kids) != 1 {
		t.Fatalf("section children = %+v, want only the explicit paragraph", kids)
	}
}

func TestParseNestedSections(t *testing.T) {
	tree := mustParse(t, `<s><s><p>deep</p></s></s>`)
	outer := children(tree, document.RootID)[0]
	inner := children(tree, outer.ID)[0]
	if inner.Value.Kind != document.KindSection {
		t.Fatalf("nested child = %+v, want Section", inner)
	}
}

func TestParseSourcePositionsRecorded(t *testing.T) {
	tree := mustParse(t, "<p>a</p>\n<p>b</p>")
	kids := children(tree, document.RootID)
	if len(kids) != 2 {
		t.Fatalf("root children = %+v, want 2 paragraphs", kids)
	}
	if kids[1].Position == nil || kids[1].Position.Line != 2 {
		t.Errorf("second paragraph position = %+v, want line 2", kids[1].Position)
	}
}

func TestParseClassAttributePreserved(t *testing.T) {
	tree := mustParse(t, `<p class="intro">hi</p>`)
	para := children(tree, document.RootID)[0]
	if para.Attributes["class"] != "intro" {
		t.Errorf("attributes = %+v, want class=intro", para.Attributes)
	}
}

func TestParseEmptyDocument(t *testing.T) {
	tree := mustParse(t, "")
	if len(children(tree, document.RootID)) != 0 {
		t.Error("expected empty document to produce no children")
	}
}

func TestParseLeadingPlainTextThenMarkup(t *testing.T) {
	tree := mustParse(t, strings.Repeat("x", 3)+`<p>y</p>`)
	kids := children(tree, document.RootID)
	if len(kids) != 2 {
		t.Fatalf("root children = %+v, want synthesized paragraph then explicit paragraph", kids)
	}
	if kids[0].Value.Kind != document.KindParagraph || kids[1].Value.Kind != document.KindParagraph {
		t.Errorf("children kinds = %v, %v", kids[0].Value.Kind, kids[1].Value.Kind)
	}
}
