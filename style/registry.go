package style

// PseudoKind discriminates the pseudo-class variants. Level is
// currently the only one.
type PseudoKind int

const (
	PseudoLevel PseudoKind = iota
)

// PseudoClass is a selector's pseudo-class component.
type PseudoClass struct {
	Kind  PseudoKind
	Level int
}

func Level(n int) PseudoClass { return PseudoClass{Kind: PseudoLevel, Level: n} }

// StyleID identifies a registered Definition.
type StyleID int

// Context supplies the pseudo-classes applicable at the node currently
// being resolved. Today that's a single Level(N) when the node is a
// Heading nested N sections deep; HasLevel reports whether one
// applies at all.
type Context struct {
	HasLevel bool
	Level    int
}

// PseudoClasses returns the pseudo-classes ctx contributes to
// resolution, in the order the cascade should consider them.
func (c Context) PseudoClasses() []PseudoClass {
	if !c.HasLevel {
		return nil
	}
	return []PseudoClass{Level(c.Level)}
}

type selectorEntry struct {
	nodeName  string
	class     string
	hasClass  bool
	pseudo    PseudoClass
	hasPseudo bool
	id        StyleID
}

func (e selectorEntry) matchesBase(nodeName string) bool {
	return !e.hasClass && !e.hasPseudo && e.nodeName == nodeName
}

func (e selectorEntry) matchesClass(nodeName, class string) bool {
	return e.hasClass && !e.hasPseudo && e.nodeName == nodeName && e.class == class
}

func (e selectorEntry) matchesPseudo(nodeName, class string, hasClass bool, pc PseudoClass) bool {
	if !e.hasPseudo || e.nodeName != nodeName || e.pseudo != pc {
		return false
	}
	if !e.hasClass {
		return true
	}
	return hasClass && e.class == class
}

// Registry maps style ids to Definitions and keeps the selector index
// that resolve() walks, in registration order.
type Registry struct {
	definitions map[StyleID]Definition
	entries     []selectorEntry
	nextID      StyleID
}

// NewRegistry returns an empty style registry.
func NewRegistry() *Registry {
	return &Registry{definitions: make(map[StyleID]Definition)}
}

// AddDefinition stores def and returns the id it was assigned.
func (r *Registry) AddDefinition(def Definition) StyleID {
	id := r.nextID
	r.nextID++
	r.definitions[id] = def
	return id
}

// Definition returns the definition registered under id, or nil.
func (r *Registry) Definition(id StyleID) Definition {
	return r.definitions[id]
}

// Register appends (node-name, class?, pseudo-class?) -> id to the
// selector index. Duplicate selector keys are allowed; registration
// order is preserved.
func (r *Registry) Register(nodeName string, class *string, pseudo *PseudoClass, id StyleID) {
	e := selectorEntry{nodeName: nodeName, id: id}
	if class != nil {
		e.hasClass = true
		e.class = *class
	}
	if pseudo != nil {
		e.hasPseudo = true
		e.pseudo = *pseudo
	}
	r.entries = append(r.entries, e)
}

// Resolve returns, in cascade order, the style ids applicable to a
// node named nodeName with an optional class, under ctx:
//  1. every (node-name, none, none) entry,
//  2. if class is set, every (node-name, class, none) entry,
//  3. for each pseudo-class ctx contributes, every (node-name, class?, pc)
//     entry — matching either no class or the node's own class.
func (r *Registry) Resolve(nodeName string, class *string, ctx Context) []StyleID {
	var ids []StyleID

	for _, e := range r.entries {
		if e.matchesBase(nodeName) {
			ids = append(ids, e.id)
		}
	}

	if class != nil {
		for _, e := range r.entries {
			if e.matchesClass(nodeName, *class) {
				ids = append(ids, e.id)
			}
		}
	}

	for _, pc := range ctx.PseudoClasses() {
		hasClass := class != nil
		var c string
		if hasClass {
			c = *class
		}
		for _, e := range r.entries {
			if e.matchesPseudo(nodeName, c, hasClass, pc) {
				ids = append(ids, e.id)
			}
		}
	}

	return ids
}

// Flatten maps a list of style ids to their definitions and
// concatenates them into one declaration list, the cascade the caller
// applies to a LayoutStyle from left to right.
func (r *Registry) Flatten(ids []StyleID) []Declaration {
	var decls []Declaration
	for _, id := range ids {
		decls = append(decls, r.definitions[id]...)
	}
	return decls
}
