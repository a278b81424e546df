// File: pkg/bundle/filter.go
package bundle

// Filter selects candidates whose extension tag is in the effective set:
// the supported set for "all", otherwise the supported set intersected with
// the requested tags. Unrecognized requested tags are dropped silently, so
// a selector made only of unknown tags selects nothing.
type Filter struct {
	effective ExtensionSet
}

// NewFilter resolves sel against supported.
func NewFilter(sel Selector, supported ExtensionSet) Filter {
	return Filter{effective: sel.Effective(supported)}
}

// Extensions returns the effective extension set.
func (f Filter) Extensions() ExtensionSet {
	return f.effective
}

// Selects reports whether c passes the filter.
func (f Filter) Selects(c CandidateFile) bool {
	return f.effective.Contains(c.Tag)
}

// IsSelected reports whether the file at path passes sel.
func IsSelected(path string, sel Selector, supported ExtensionSet) bool {
	return NewFilter(sel, supported).Selects(CandidateFile{Path: path, Tag: ExtensionTag(path)})
}
