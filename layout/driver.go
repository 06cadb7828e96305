package layout

import (
	"fmt"

	"go.uber.org/zap"

	"typeset/document"
	"typeset/font"
	"typeset/hyph"
	"typeset/lerr"
	"typeset/style"
	"typeset/unit"
)

// Options configures the layout driver's pass loop.
type Options struct {
	// MaxPasses bounds how many times the driver may re-run the whole
	// tree looking for a stable layout before giving up. Zero means
	// DefaultOptions' value.
	MaxPasses int
}

func DefaultOptions() Options { return Options{MaxPasses: 100} }

// Layout runs the layout driver over tree: it resolves the document
// node's style for page sizing, then walks every node, pushing and
// popping the style cascade and dispatching paragraphs, headings, list
// items and bare text to the inline rule. Every pass counts as stable,
// so the tree is walked once; MaxPasses bounds the pass loop.
func Layout(tree *document.Tree, styles *style.Registry, fonts *font.Registry, hyphenator *hyph.Hyphenator, log *zap.Logger, opts Options) (*DocumentLayout, error) {
	if opts.MaxPasses <= 0 {
		opts = DefaultOptions()
	}
	if log == nil {
		log = zap.NewNop()
	}

	root := tree.Get(document.RootID)
	if root == nil {
		return nil, lerr.ParseError("document tree has no root node")
	}

	rootStyle := style.DefaultLayoutStyle().Push().Apply(styles.Flatten(styles.Resolve("document", nil, style.Context{})))
	sizing := OneSizeFitsAll{Constraints: LayoutConstraints{
		Size:   Size{Width: rootStyle.Width, Height: rootStyle.Height},
		Top:    rootStyle.MarginTop,
		Bottom: rootStyle.MarginBottom,
		Left:   rootStyle.MarginLeft,
		Right:  rootStyle.MarginRight,
	}}

	var result *DocumentLayout
	for pass := 1; ; pass++ {
		if pass > opts.MaxPasses {
			return nil, lerr.LayoutBudgetExceeded(
				fmt.Sprintf("max layout passes (%d) exceeded without reaching a stable layout", opts.MaxPasses))
		}

		ctx := NewContext(styles, fonts, sizing, log)
		ctx.SeedRootStyle(rootStyle)

		if err := processChildren(ctx, tree, root, hyphenator); err != nil {
			return nil, err
		}
		result = ctx.Layout()
		break
	}

	if err := fonts.SubsetFonts(); err != nil {
		return nil, err
	}
	return result, nil
}

func processChildren(ctx *Context, tree *document.Tree, node *document.Node, hy *hyph.Hyphenator) error {
	for _, id := range node.Children {
		child := tree.Get(id)
		if child == nil {
			continue
		}
		if err := processNode(ctx, tree, child, hy); err != nil {
			return err
		}
	}
	return nil
}

func processNode(ctx *Context, tree *document.Tree, node *document.Node, hy *hyph.Hyphenator) error {
	if err := ctx.PushNodeStyles(node); err != nil {
		return err
	}
	defer ctx.PopNodeStyles(node)

	switch node.Value.Kind {
	case document.KindText, document.KindParagraph, document.KindHeading, document.KindListItem:
		return layoutInline(ctx, tree, node, hy)
	case document.KindImage:
		return placeImage(ctx, node)
	default:
		return processChildren(ctx, tree, node, hy)
	}
}

// placeImage reserves the element's declared (or else remaining-bounds)
// size, registers an Image element there, and advances the cursor past
// it, matching the vertical-flow placement the inline rule uses for
// text.
func placeImage(ctx *Context, node *document.Node) error {
	bounds := ctx.ChooseNextBounds()
	width := bounds.Size.Width
	height := bounds.Size.Height

	if node.Value.Image.Width != nil {
		if d, err := unit.New(*node.Value.Image.Width, unit.MM); err == nil {
			width = unit.Min(width, d)
		}
	}
	if node.Value.Image.Height != nil {
		if d, err := unit.New(*node.Value.Image.Height, unit.MM); err == nil {
			height = unit.Min(height, d)
		}
	}

	ctx.RegisterElement(LayoutElement{
		Bounds:  Bounds{Position: bounds.Position, Size: Size{Width: width, Height: height}},
		Content: LayoutElementContent{Kind: ElementImage, Image: ImageContent{Source: node.Value.Image.Source}},
	})

	ctx.SetBounds(Bounds{
		Position: Position{X: bounds.Position.X, Y: bounds.Position.Y.Add(height)},
		Size:     Size{Width: bounds.Size.Width, Height: bounds.Size.Height.Sub(height)},
	})
	return nil
}
