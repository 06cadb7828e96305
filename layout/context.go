package layout

import (
	"fmt"

	"go.uber.org/zap"

	"typeset/document"
	"typeset/font"
	"typeset/style"
	"typeset/unit"
)

// pushedFrame is one entry of Context's style stack: the resolved
// style plus the bookkeeping PopNodeStyles needs to undo the bounds
// change PushNodeStyles made for it.
type pushedFrame struct {
	style       style.LayoutStyle
	bottomInset unit.Distance
	wasSection  bool
	root        bool // installed by SeedRootStyle
}

// Context carries the state the layout driver threads through one pass
// over the document tree: the style cascade stack, the bounds still
// available on the current page, the in-progress DocumentLayout, and
// the collaborators (style registry, font registry, page sizing) the
// driver resolves against.
type Context struct {
	log *zap.Logger

	styles *style.Registry
	fonts  *font.Registry
	sizing PageSizing

	frames       []pushedFrame
	sectionDepth int

	bounds         Bounds
	layout         *DocumentLayout
	currentPageIdx int
	nextElementID  ElementID
}

// NewContext builds a Context with its first page already pushed.
func NewContext(styles *style.Registry, fonts *font.Registry, sizing PageSizing, log *zap.Logger) *Context {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Context{
		log:            log.Named("layout-context"),
		styles:         styles,
		fonts:          fonts,
		sizing:         sizing,
		layout:         NewDocumentLayout(),
		currentPageIdx: -1,
	}
	c.PushPage()
	return c
}

// Layout returns the DocumentLayout built so far.
func (c *Context) Layout() *DocumentLayout { return c.layout }

// SeedRootStyle installs s as the bottommost style frame, the one
// CurrentStyle returns before any node has been pushed. s's font-side
// properties cascade down to every node; its margin/size properties
// don't re-shrink bounds (PushPage skips this frame, since the page
// sizing already applied them) and are not inherited by the first real
// node's frame, since Push always resets margin/padding to zero.
func (c *Context) SeedRootStyle(s style.LayoutStyle) {
	c.frames = []pushedFrame{{style: s, root: true}}
}

// Bounds returns the bounds currently available for content.
func (c *Context) Bounds() Bounds { return c.bounds }

// SetBounds overrides the bounds currently available for content, used
// by a caller (e.g. the inline rule, after placing a line) to shrink
// the remaining vertical space.
func (c *Context) SetBounds(b Bounds) { c.bounds = b }

// ChooseNextBounds returns the bounds content should be placed into
// next, forcing a page break first if the current bounds have gone
// negative (no room left on the page).
func (c *Context) ChooseNextBounds() Bounds {
	if c.bounds.Size.IsNegative() {
		c.PushPage()
	}
	return c.bounds
}

// CurrentStyle returns the style frame on top of the stack, or the
// root default frame if the stack is empty.
func (c *Context) CurrentStyle() style.LayoutStyle {
	if len(c.frames) == 0 {
		return style.DefaultLayoutStyle()
	}
	return c.frames[len(c.frames)-1].style
}

func nodeSelectorName(n *document.Node) string {
	if n.Value.Kind == document.KindDocumentRoot {
		return "document"
	}
	if n.Value.Kind == document.KindCustom {
		return n.Value.CustomName
	}
	return n.Name
}

func nodeClass(n *document.Node) *string {
	if n.Attributes == nil {
		return nil
	}
	if v, ok := n.Attributes["class"]; ok && v != "" {
		return &v
	}
	return nil
}

func insets(s style.LayoutStyle) (left, top, right, bottom unit.Distance) {
	left = s.MarginLeft.Add(s.PaddingLeft)
	top = s.MarginTop.Add(s.PaddingTop)
	right = s.MarginRight.Add(s.PaddingRight)
	bottom = s.MarginBottom.Add(s.PaddingBottom)
	return
}

func shrink(b Bounds, left, top, right, bottom unit.Distance) Bounds {
	return Bounds{
		Position: Position{X: b.Position.X.Add(left), Y: b.Position.Y.Add(top)},
		Size: Size{
			Width:  b.Size.Width.Sub(left).Sub(right),
			Height: b.Size.Height.Sub(top).Sub(bottom),
		},
	}
}

// PushNodeStyles resolves node's style against the cascade, pushes the
// resulting frame onto the stack, and shrinks the current bounds by
// its margin and padding. If the shrunk bounds go negative, it forces
// a page break before reporting the new bounds, so a node that no
// longer fits the remaining page starts fresh on the next one.
func (c *Context) PushNodeStyles(node *document.Node) error {
	name := nodeSelectorName(node)
	class := nodeClass(node)

	pc := style.Context{}
	if node.Value.Kind == document.KindHeading {
		pc.HasLevel = true
		pc.Level = c.sectionDepth
	}

	ids := c.styles.Resolve(name, class, pc)
	decls := c.styles.Flatten(ids)

	next := c.CurrentStyle().Push().Apply(decls)
	left, top, right, bottom := insets(next)

	wasSection := node.Value.Kind == document.KindSection
	if wasSection {
		c.sectionDepth++
	}

	newBounds := shrink(c.bounds, left, top, right, bottom)
	if newBounds.Size.IsNegative() {
		c.PushPage()
		newBounds = shrink(c.bounds, left, top, right, bottom)
	}

	c.frames = append(c.frames, pushedFrame{style: next, bottomInset: bottom, wasSection: wasSection})
	c.bounds = newBounds
	return nil
}

// PopNodeStyles undoes the frame PushNodeStyles pushed for node: it
// pops the style stack and re-inflates the current bounds by the
// frame's bottom margin and padding only. The frame's top/left/right
// insets are not restored: they shrank the space available to node's
// own subtree, and siblings after node lay out starting from wherever
// that subtree left the cursor, not from node's original bounds.
func (c *Context) PopNodeStyles(node *document.Node) {
	if len(c.frames) == 0 {
		return
	}
	f := c.frames[len(c.frames)-1]
	c.frames = c.frames[:len(c.frames)-1]
	c.bounds.Size.Height = c.bounds.Size.Height.Add(f.bottomInset)
	if f.wasSection {
		c.sectionDepth--
	}
}

// PushPage starts a new page: it asks the page-sizing collaborator for
// the next page's constraints, registers the page's own Page element,
// and resets bounds to the page's content area, reduced by every style
// frame still on the stack except the seeded root frame (a page break
// mid-subtree must still honor the margins/padding of every ancestor
// still open).
func (c *Context) PushPage() {
	number := len(c.layout.pages) + 1
	constraints := c.sizing.GetPageConstraints(number)
	content := constraints.ContentBounds()

	pageElementID := c.registerElementRaw(LayoutElement{
		Bounds:  Bounds{Position: ZeroPosition(), Size: constraints.Size},
		Content: LayoutElementContent{Kind: ElementPage},
	})

	c.layout.addPage(Page{Number: number, Element: pageElementID})
	c.currentPageIdx = len(c.layout.pages) - 1
	c.bounds = content

	for _, f := range c.frames {
		if f.root {
			continue
		}
		left, top, right, bottom := insets(f.style)
		c.bounds = shrink(c.bounds, left, top, right, bottom)
	}
}

func (c *Context) registerElementRaw(e LayoutElement) ElementID {
	id := c.nextElementID
	c.nextElementID++
	e.ID = id
	c.layout.setElement(e)
	return id
}

// RegisterElement assigns e an id, stores it in the layout's arena,
// and attaches it to the current page, then returns the assigned id.
func (c *Context) RegisterElement(e LayoutElement) ElementID {
	id := c.registerElementRaw(e)
	if c.currentPageIdx >= 0 {
		c.layout.pages[c.currentPageIdx].AddElement(id)
	}
	return id
}

// FindFont resolves family/settings to a loaded font id through the
// font registry, dispatching on the family source's kind.
func (c *Context) FindFont(family style.FamilySource, settings font.StyleSettings) (font.ID, error) {
	switch family.Kind {
	case style.FamilyDefault:
		return font.DefaultID, nil
	case style.FamilyOfType:
		return c.fonts.FindByType(family.Type, settings)
	case style.FamilyByName:
		return c.fonts.FindByName(family.Name, settings)
	case style.FamilyByPath:
		return c.fonts.FindByPath(family.Path)
	default:
		return 0, fmt.Errorf("layout: unknown font family source kind %d", family.Kind)
	}
}

// GetFontMut returns the loaded font at id for mutation (marking
// codepoints used, subsetting).
func (c *Context) GetFontMut(id font.ID) *font.Font {
	return c.fonts.GetFontMut(id)
}
