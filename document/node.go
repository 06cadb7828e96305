// Package document implements the id-addressed node tree produced by
// the script parser and consumed, read-only, by the layout driver.
package document

// ID addresses a node in a Tree. 0 always names the document root.
type ID uint64

const RootID ID = 0

// SourcePosition locates a node in the text the parser read it from.
type SourcePosition struct {
	Line   int
	Column int
}

// Image carries the attributes of an image node.
type Image struct {
	Source string
	Width  *float64
	Height *float64
}

// Kind discriminates the NodeValue variants.
type Kind int

const (
	KindDocumentRoot Kind = iota
	KindText
	KindSection
	KindHeading
	KindParagraph
	KindList
	KindListItem
	KindImage
	KindBreak
	KindBold
	KindItalic
	KindCustom
)

func (k Kind) String() string {
	switch k {
	case KindDocumentRoot:
		return "DocumentRoot"
	case KindText:
		return "Text"
	case KindSection:
		return "Section"
	case KindHeading:
		return "Heading"
	case KindParagraph:
		return "Paragraph"
	case KindList:
		return "List"
	case KindListItem:
		return "ListItem"
	case KindImage:
		return "Image"
	case KindBreak:
		return "Break"
	case KindBold:
		return "Bold"
	case KindItalic:
		return "Italic"
	case KindCustom:
		return "Custom"
	default:
		return "Unknown"
	}
}

// NodeValue is the tagged payload of a Node. Exactly one of Text,
// Image or CustomName is meaningful, depending on Kind.
type NodeValue struct {
	Kind       Kind
	Text       string
	Image      Image
	CustomName string
}

func (v NodeValue) String() string {
	switch v.Kind {
	case KindText:
		return "Text(" + v.Text + ")"
	case KindCustom:
		return "Custom(" + v.CustomName + ")"
	case KindImage:
		return "Image(" + v.Image.Source + ")"
	default:
		return v.Kind.String()
	}
}

// Node is one entry of the document tree's arena.
type Node struct {
	ID       ID
	Parent   *ID
	Children []ID
	Name     string
	Value    NodeValue
	Attributes map[string]string
	Position   *SourcePosition
}

// HasParent reports whether the node has a parent (false only for root).
func (n *Node) HasParent() bool {
	return n.Parent != nil
}

func textValue(s string) NodeValue     { return NodeValue{Kind: KindText, Text: s} }
func customValue(name string) NodeValue { return NodeValue{Kind: KindCustom, CustomName: name} }
func imageValue(img Image) NodeValue   { return NodeValue{Kind: KindImage, Image: img} }

func simpleValue(k Kind) NodeValue { return NodeValue{Kind: k} }

// Text, Section, Heading, Paragraph, List, ListItem, Break, Bold,
// Italic, Image and Custom build the corresponding NodeValue.
func Text(s string) NodeValue       { return textValue(s) }
func Section() NodeValue            { return simpleValue(KindSection) }
func Heading() NodeValue            { return simpleValue(KindHeading) }
func Paragraph() NodeValue          { return simpleValue(KindParagraph) }
func List() NodeValue               { return simpleValue(KindList) }
func ListItem() NodeValue           { return simpleValue(KindListItem) }
func Break() NodeValue              { return simpleValue(KindBreak) }
func Bold() NodeValue               { return simpleValue(KindBold) }
func Italic() NodeValue             { return simpleValue(KindItalic) }
func ImageNode(img Image) NodeValue { return imageValue(img) }
func Custom(name string) NodeValue  { return customValue(name) }
