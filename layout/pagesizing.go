package layout

// PageSizing supplies the constraints available to page pageNumber
// (1-indexed). Implementations may return the same constraints for
// every page, or vary them (e.g. a cover page with no margins).
type PageSizing interface {
	GetPageConstraints(pageNumber int) LayoutConstraints
}

// OneSizeFitsAll is a PageSizing that ignores pageNumber and always
// returns the same constraints, the common case for a document whose
// style sheet declares one page size/margin set on the document node.
type OneSizeFitsAll struct {
	Constraints LayoutConstraints
}

func (o OneSizeFitsAll) GetPageConstraints(pageNumber int) LayoutConstraints {
	return o.Constraints
}
