package domain

import (
	"sort"
	"strings"
)

// Fragment is an immutable titled block of report text. Fragments compose
// into a tree: a fragment carries either content lines, child fragments, or
// both. The zero-value (or nil) fragment is the empty fragment.
//
// Fragments are value objects. Constructors copy their inputs and no method
// mutates the receiver, so fragments can be shared freely across goroutines.
type Fragment struct {
	title    string
	order    int
	lines    []string
	children []*Fragment
}

// NewFragment builds a titled fragment from content lines. Blank lines are
// kept; they only count as content if any line carries visible text.
func NewFragment(title string, order int, lines ...string) *Fragment {
	f := &Fragment{title: title, order: order}
	if len(lines) > 0 {
		f.lines = make([]string, len(lines))
		copy(f.lines, lines)
	}
	return f
}

// NewGroup builds a titled fragment from child fragments.
func NewGroup(title string, order int, children ...*Fragment) *Fragment {
	f := &Fragment{title: title, order: order}
	for _, c := range children {
		if c != nil {
			f.children = append(f.children, c)
		}
	}
	return f
}

// Empty returns the empty fragment.
func Empty() *Fragment {
	return &Fragment{}
}

// Title returns the fragment's heading. Untitled fragments act as
// transparent containers when merged.
func (f *Fragment) Title() string {
	if f == nil {
		return ""
	}
	return f.title
}

// Order is the fragment's sort key within the merged report.
func (f *Fragment) Order() int {
	if f == nil {
		return 0
	}
	return f.order
}

// Lines returns the fragment's content lines. The returned slice is a
// read-only view; callers must not modify it.
func (f *Fragment) Lines() []string {
	if f == nil {
		return nil
	}
	return f.lines
}

// Children returns the fragment's child fragments as a read-only view.
func (f *Fragment) Children() []*Fragment {
	if f == nil {
		return nil
	}
	return f.children
}

// HasContent reports whether any line or descendant carries visible text.
// Fragments without content never appear in the final merged tree.
func (f *Fragment) HasContent() bool {
	if f == nil {
		return false
	}
	for _, l := range f.lines {
		if strings.TrimSpace(l) != "" {
			return true
		}
	}
	for _, c := range f.children {
		if c.HasContent() {
			return true
		}
	}
	return false
}

// Merge combines two fragments into a new one without mutating either input.
// Merging with an empty fragment yields the other operand, so Merge is
// associative and folding order does not matter. Non-empty operands are
// collected as siblings under an untitled container; untitled containers are
// flattened so nesting depth stays independent of fold shape.
func Merge(a, b *Fragment) *Fragment {
	switch {
	case !a.HasContent() && !b.HasContent():
		return Empty()
	case !a.HasContent():
		return b
	case !b.HasContent():
		return a
	}
	children := make([]*Fragment, 0, len(a.children)+len(b.children))
	children = append(children, a.siblings()...)
	children = append(children, b.siblings()...)
	return &Fragment{children: children}
}

// siblings returns the fragments a merge should treat as top-level: the
// fragment itself, or its children when it is an untitled container.
func (f *Fragment) siblings() []*Fragment {
	if f.title == "" && len(f.lines) == 0 {
		return f.children
	}
	return []*Fragment{f}
}

// Sorted returns a copy of the tree with children ordered by their order key
// (stable, so equal keys keep fold order) and content-free children dropped.
func (f *Fragment) Sorted() *Fragment {
	if f == nil {
		return Empty()
	}
	out := &Fragment{title: f.title, order: f.order, lines: f.lines}
	for _, c := range f.children {
		if c.HasContent() {
			out.children = append(out.children, c.Sorted())
		}
	}
	sort.SliceStable(out.children, func(i, j int) bool {
		return out.children[i].order < out.children[j].order
	})
	return out
}

// Render flattens the tree to plain text, one heading per titled fragment.
// It exists for diagnostics and tests; presentation-quality rendering lives
// with the host.
func (f *Fragment) Render() string {
	var sb strings.Builder
	f.render(&sb, 0)
	return sb.String()
}

func (f *Fragment) render(sb *strings.Builder, depth int) {
	if f == nil || !f.HasContent() {
		return
	}
	indent := strings.Repeat("  ", depth)
	if f.title != "" {
		sb.WriteString(indent)
		sb.WriteString(f.title)
		sb.WriteString("\n")
		depth++
		indent = strings.Repeat("  ", depth)
	}
	for _, l := range f.lines {
		sb.WriteString(indent)
		sb.WriteString(l)
		sb.WriteString("\n")
	}
	for _, c := range f.children {
		c.render(sb, depth)
	}
}
