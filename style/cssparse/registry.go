package cssparse

import "typeset/style"

// Populate registers every rule of s onto r: each rule's declaration
// block becomes one Definition, registered under every selector the
// rule lists. Rules are applied in file order, after whatever r
// already holds (e.g. the built-in defaults from
// style.NewDefaultRegistry), so a document's own style sheet always
// cascades after the defaults for a selector they share.
func (s *Stylesheet) Populate(r *style.Registry) {
	for _, rule := range s.Rules {
		id := r.AddDefinition(rule.Declarations)
		for _, sel := range rule.Selectors {
			r.Register(sel.NodeName, sel.Class, sel.Pseudo, id)
		}
	}
}
