package identity

import (
	"github.com/google/uuid"

	"github.com/go-drift/ident/pkg/errors"
)

// Tracker maintains the breadcrumb for a single tree traversal: the chain of
// ancestor path segments of the node currently being processed. Entering a
// subtree pushes a segment, leaving pops it, in strict LIFO order.
//
// A tracker belongs to exactly one traversal and is not safe for concurrent
// use. Concurrent traversals of independent trees must each own their own
// tracker; nothing is shared between instances. A tracker abandoned mid-walk
// (aborted traversal) is simply discarded and must not be reused.
type Tracker struct {
	path    []PathSegment
	builder *PathBuilder
	traceID string
}

// NewTracker creates an empty tracker for a new traversal.
func NewTracker() *Tracker {
	return &Tracker{
		builder: newPathBuilder(),
		traceID: uuid.NewString(),
	}
}

// TraceID returns the traversal's trace identifier. It only appears in debug
// logs; generated identifiers never depend on it.
func (t *Tracker) TraceID() string {
	return t.traceID
}

// Depth returns the number of segments currently on the breadcrumb.
func (t *Tracker) Depth() int {
	return len(t.path)
}

// CurrentPath returns a copy of the breadcrumb from root to the current node.
func (t *Tracker) CurrentPath() []PathSegment {
	path := make([]PathSegment, len(t.path))
	copy(path, t.path)
	return path
}

// Resume seeds a fresh tracker with an already-derived ancestor chain. It is
// used when a traversal restarts below the root, e.g. rebuilding a subtree:
// the cached segments are replayed verbatim so regenerated identifiers stay
// byte-identical. Resuming a tracker that has already entered a scope is a
// bookkeeping violation.
func (t *Tracker) Resume(segments []PathSegment) {
	if len(t.path) != 0 {
		errors.FatalTraversal(&errors.TraversalError{
			Op:           "identity.Tracker.Resume",
			Segment:      t.path[len(t.path)-1].String(),
			Depth:        0,
			CurrentDepth: len(t.path),
		})
	}
	t.path = append(t.path, segments...)
}

// Describe derives the path segment for a node about to enter the traversal
// under the current breadcrumb, consuming a sibling-ledger slot.
func (t *Tracker) Describe(role, labelOverride, declaredName string) PathSegment {
	return t.builder.Segment(t.path, role, labelOverride, declaredName)
}

// Enter pushes a segment onto the breadcrumb and returns the scope handle
// that must be used to pop it.
func (t *Tracker) Enter(segment PathSegment) *Scope {
	t.path = append(t.path, segment)
	return &Scope{tracker: t, segment: segment, depth: len(t.path)}
}

// Scope is the handle for one entered segment. Exit pops exactly that
// segment; popping anything but the most recently entered segment is a fatal
// internal-consistency failure, not a recoverable error.
type Scope struct {
	tracker *Tracker
	segment PathSegment
	depth   int
	exited  bool
}

// Segment returns the path segment this scope entered.
func (s *Scope) Segment() PathSegment {
	return s.segment
}

// Exit pops the scope's segment from the breadcrumb. Callers typically defer
// it immediately after Enter so the segment is popped even when subtree
// processing panics.
func (s *Scope) Exit() {
	t := s.tracker
	if s.exited || len(t.path) != s.depth || t.path[s.depth-1] != s.segment {
		errors.FatalTraversal(&errors.TraversalError{
			Op:           "identity.Scope.Exit",
			Segment:      s.segment.String(),
			Depth:        s.depth,
			CurrentDepth: len(t.path),
		})
	}
	s.exited = true
	t.path = t.path[:s.depth-1]
}
