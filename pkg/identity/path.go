package identity

import (
	"strconv"
	"strings"
)

// fallbackLabel is used when a node declares neither a label override nor a
// structural name.
const fallbackLabel = "unknown"

// PathSegment is one breadcrumb entry, derived from a node's role and label.
// Immutable once created.
type PathSegment struct {
	// Role describes the node's function, e.g. "element", "container", "button".
	Role string
	// Label is the normalized node label.
	Label string
	// Index disambiguates siblings sharing the same (role, label) pair.
	// The first occurrence under a parent has index 0 and renders without it.
	Index int
}

// render returns the segment as it appears inside an identifier.
func (s PathSegment) render() string {
	if s.Index > 0 {
		return s.Label + strconv.Itoa(s.Index)
	}
	return s.Label
}

// String returns a diagnostic representation including the role.
func (s PathSegment) String() string {
	return s.Role + ":" + s.render()
}

// NormalizeLabel applies the fixed label formatting: lower-case with all
// non-alphanumeric characters stripped. This is the single place the rule is
// defined; every label in every identifier passes through it.
func NormalizeLabel(raw string) string {
	var sb strings.Builder
	for _, r := range raw {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			sb.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			sb.WriteRune(r + ('a' - 'A'))
		}
	}
	return sb.String()
}

type ledgerKey struct {
	parent string
	role   string
	label  string
}

// PathBuilder derives path segments for nodes and owns the per-traversal
// sibling ledger used for disambiguation. A builder belongs to exactly one
// Tracker; it has no state beyond the ledger.
type PathBuilder struct {
	counts map[ledgerKey]int
}

func newPathBuilder() *PathBuilder {
	return &PathBuilder{counts: make(map[ledgerKey]int)}
}

// Segment produces the PathSegment for a node entering the traversal under
// the given parent path. Label priority: explicit override if non-empty after
// normalization, then the declared structural name, then "unknown". Siblings
// repeating a (role, label) pair under the same parent receive increasing
// indices in encounter order.
func (b *PathBuilder) Segment(parent []PathSegment, role, labelOverride, declaredName string) PathSegment {
	segment := newSegment(role, labelOverride, declaredName)

	key := ledgerKey{parent: renderPath(parent), role: role, label: segment.Label}
	segment.Index = b.counts[key]
	b.counts[key] = segment.Index + 1

	return segment
}

// newSegment derives a segment from the label priority rules alone, without
// consulting any sibling ledger.
func newSegment(role, labelOverride, declaredName string) PathSegment {
	label := NormalizeLabel(labelOverride)
	if label == "" {
		label = NormalizeLabel(declaredName)
	}
	if label == "" {
		label = fallbackLabel
	}
	return PathSegment{Role: role, Label: label}
}

// renderPath joins rendered segments with the identifier separator.
func renderPath(segments []PathSegment) string {
	if len(segments) == 0 {
		return ""
	}
	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		if r := seg.render(); r != "" {
			parts = append(parts, r)
		}
	}
	return strings.Join(parts, ".")
}
