package document

import (
	"typeset/utils/debug"
)

// Tree is an arena mapping ID to Node, built once by the parser and
// read-only afterwards, during layout.
type Tree struct {
	nodes  map[ID]*Node
	nextID ID
}

// New returns a tree containing only the DocumentRoot node at id 0.
func New() *Tree {
	t := &Tree{
		nodes:  make(map[ID]*Node),
		nextID: 1,
	}
	t.nodes[RootID] = &Node{
		ID:         RootID,
		Value:      simpleValue(KindDocumentRoot),
		Attributes: map[string]string{},
	}
	return t
}

// UnusedID returns the next id that Insert will hand out, without
// consuming it.
func (t *Tree) UnusedID() ID {
	return t.nextID
}

// Get returns the node at id, or nil if none exists.
func (t *Tree) Get(id ID) *Node {
	return t.nodes[id]
}

// Insert appends a new node as the last child of parent and returns
// its id. If parent does not exist, Insert is a no-op and returns
// false as its second value.
func (t *Tree) Insert(parent ID, name string, value NodeValue, attrs map[string]string, pos *SourcePosition) (ID, bool) {
	parentNode, ok := t.nodes[parent]
	if !ok {
		return 0, false
	}
	if attrs == nil {
		attrs = map[string]string{}
	}
	id := t.nextID
	t.nextID++
	p := parent
	node := &Node{
		ID:         id,
		Parent:     &p,
		Name:       name,
		Value:      value,
		Attributes: attrs,
		Position:   pos,
	}
	t.nodes[id] = node
	parentNode.Children = append(parentNode.Children, id)
	return id, true
}

// GetPath returns the chain of ancestor ids from root to id
// (inclusive), or nil if id does not exist.
func (t *Tree) GetPath(id ID) []ID {
	node := t.nodes[id]
	if node == nil {
		return nil
	}
	path := []ID{id}
	for node.HasParent() {
		node = t.nodes[*node.Parent]
		if node == nil {
			break
		}
		path = append([]ID{node.ID}, path...)
	}
	return path
}

// HasParagraphAncestor reports whether id has a Paragraph node somewhere
// along its ancestor chain (id itself is not counted).
func (t *Tree) HasParagraphAncestor(id ID) bool {
	node := t.nodes[id]
	if node == nil {
		return false
	}
	for node.HasParent() {
		node = t.nodes[*node.Parent]
		if node == nil {
			return false
		}
		if node.Value.Kind == KindParagraph {
			return true
		}
	}
	return false
}

// PrettyPrint renders the subtree rooted at id as indented lines, one
// node per line, `[NodeValue]` with children indented two spaces
// further than their parent.
func (t *Tree) PrettyPrint(id ID) string {
	tw := debug.NewTreeWriter()
	t.prettyPrint(tw, id, 0)
	return tw.String()
}

func (t *Tree) prettyPrint(tw *debug.TreeWriter, id ID, depth int) {
	node := t.nodes[id]
	if node == nil {
		return
	}
	tw.Line(depth, "[%s]", node.Value.String())
	for _, child := range node.Children {
		t.prettyPrint(tw, child, depth+1)
	}
}

// Walk visits id and every descendant, depth-first, left to right.
func (t *Tree) Walk(id ID, visit func(*Node)) {
	node := t.nodes[id]
	if node == nil {
		return
	}
	visit(node)
	for _, child := range node.Children {
		t.Walk(child, visit)
	}
}
