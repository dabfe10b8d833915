package widgets

import (
	"reflect"
	"sync"

	"github.com/go-drift/ident/pkg/core"
	"github.com/go-drift/ident/pkg/identity"
)

// Standard roles for identifier path segments.
const (
	RoleElement   = "element"
	RoleContainer = "container"
	RoleButton    = "button"
	RoleText      = "text"
)

var (
	defaultConfigOnce sync.Once
	defaultConfig     *identity.Config
)

// DefaultConfig returns the process-wide identifier configuration used by
// attachers mounted outside any IdentifierScope. Applications that want an
// isolated configuration wrap their tree in an IdentifierScope instead.
func DefaultConfig() *identity.Config {
	defaultConfigOnce.Do(func() {
		defaultConfig = identity.NewConfig()
	})
	return defaultConfig
}

// IdentifierScope carries an identifier configuration down the tree.
// Attachers below the scope read it instead of the process-wide default, so
// independent trees (and independent tests) can run with independent
// settings.
type IdentifierScope struct {
	core.InheritedBase
	Config *identity.Config
	Child  core.Widget
}

// ChildWidget returns the subtree the scope wraps, anchored by the tracker
// host so every attacher in the scoped tree shares one traversal tracker.
func (s IdentifierScope) ChildWidget() core.Widget { return trackerRoot{Child: s.Child} }

// UpdateShouldNotify reports whether dependents must rebuild. The config is a
// shared mutable object, so only swapping it for a different instance counts
// as a change.
func (s IdentifierScope) UpdateShouldNotify(old core.InheritedWidget) bool {
	prev, ok := old.(IdentifierScope)
	return !ok || prev.Config != s.Config
}

// ConfigOf returns the identifier configuration visible at the given context:
// the nearest enclosing IdentifierScope's config, or the process default.
func ConfigOf(ctx core.BuildContext) *identity.Config {
	found := ctx.DependOnInherited(reflect.TypeOf((*IdentifierScope)(nil)).Elem(), nil)
	if scope, ok := found.(IdentifierScope); ok && scope.Config != nil {
		return scope.Config
	}
	return DefaultConfig()
}

// IdentifierCarrier is implemented by elements that hold an identifier
// binding of their own.
type IdentifierCarrier interface {
	// Identifier returns the bound identifier. The second value is false when
	// no identifier was attached (generation disabled, or manual mode with no
	// manual identifier).
	Identifier() (string, bool)
}

// IdentifierOf resolves the identifier visible at an element: the element's
// own binding if it carries one, otherwise the binding of the innermost
// enclosing attacher. The second value is false when no binding is in scope.
func IdentifierOf(element core.Element) (string, bool) {
	if carrier, ok := element.(IdentifierCarrier); ok {
		if id, bound := carrier.Identifier(); bound {
			return id, true
		}
	}
	ancestor := element.FindAncestor(func(el core.Element) bool {
		carrier, ok := el.(IdentifierCarrier)
		if !ok {
			return false
		}
		_, bound := carrier.Identifier()
		return bound
	})
	if ancestor == nil {
		return "", false
	}
	return ancestor.(IdentifierCarrier).Identifier()
}

// AutoID attaches an accessibility identifier to the subtree it wraps.
//
// The identifier is derived once, when the hosting element mounts, and is
// never rewritten afterwards: configuration changes only affect attachers
// mounted later. In automatic mode the string is built from the attacher's
// ancestor chain; ID, when set, always wins verbatim.
type AutoID struct {
	// Role describes the node, e.g. RoleButton. Empty defaults to RoleElement.
	Role string
	// Name is the structural name used as the label when Label is empty.
	// Leaving both empty produces the "unknown" fallback label.
	Name string
	// Label is an optional label override.
	Label string
	// ID is an explicit identifier. Required in manual mode; in automatic
	// mode it overrides the derived string.
	ID string
	// Child is the wrapped subtree.
	Child core.Widget
}

// CreateElement returns the attacher element hosting this widget.
func (AutoID) CreateElement() core.Element { return newAutoIDElement() }

// Key returns nil (no key).
func (AutoID) Key() any { return nil }

// role returns the effective role.
func (w AutoID) role() string {
	if w.Role != "" {
		return w.Role
	}
	return RoleElement
}

// autoIDElement hosts an AutoID widget. It derives the identifier at mount
// time and exposes it through IdentifierCarrier.
type autoIDElement struct {
	core.ElementBase
	child core.Element

	// crumb is the breadcrumb from the root down to and including this
	// attacher's own segment, cached at mount so rebuilds and late-mounted
	// descendants replay the exact same ancestor chain.
	crumb []identity.PathSegment

	// activeTracker is non-nil only while this attacher's subtree is being
	// mounted or rebuilt. Descendant attachers mounted during that window
	// share it, which keeps the sibling ledger continuous across them.
	activeTracker *identity.Tracker

	identifier string
	bound      bool
}

func newAutoIDElement() *autoIDElement {
	element := &autoIDElement{}
	element.SetSelf(element)
	return element
}

// Identifier returns the identifier bound at mount time.
func (e *autoIDElement) Identifier() (string, bool) {
	return e.identifier, e.bound
}

func (e *autoIDElement) Mount(parent core.Element, slot any) {
	e.BaseMount(parent, slot)

	widget := e.Widget().(AutoID)
	config := ConfigOf(e)

	tracker := e.traversalTracker()
	segment := tracker.Describe(widget.role(), widget.Label, widget.Name)
	scope := tracker.Enter(segment)
	defer scope.Exit()

	e.crumb = tracker.CurrentPath()
	e.identifier, e.bound = identity.NewGenerator(config).Generate(identity.Request{
		Role:         widget.role(),
		Label:        widget.Label,
		DeclaredName: widget.Name,
		ManualID:     widget.ID,
	}, tracker)

	e.activeTracker = tracker
	defer func() { e.activeTracker = nil }()
	e.RebuildIfNeeded()
}

// trackerHost is implemented by elements that can supply the tracker for a
// traversal passing through them: attachers and the scope's tracker anchor.
type trackerHost interface {
	liveTracker() *identity.Tracker
	resumePoint() []identity.PathSegment
}

func (e *autoIDElement) liveTracker() *identity.Tracker { return e.activeTracker }

func (e *autoIDElement) resumePoint() []identity.PathSegment { return e.crumb }

// traversalTracker returns the tracker for this attacher's mount. When the
// nearest ancestor host is mid-traversal its tracker is joined, keeping one
// sibling ledger per traversal; otherwise a fresh tracker is seeded with the
// host's cached breadcrumb.
func (e *autoIDElement) traversalTracker() *identity.Tracker {
	ancestor := e.FindAncestor(func(el core.Element) bool {
		_, ok := el.(trackerHost)
		return ok
	})
	if ancestor == nil {
		return identity.NewTracker()
	}
	host := ancestor.(trackerHost)
	if tracker := host.liveTracker(); tracker != nil {
		return tracker
	}
	tracker := identity.NewTracker()
	tracker.Resume(host.resumePoint())
	return tracker
}

func (e *autoIDElement) Update(newWidget core.Widget) {
	// The binding is attach-time only; a new widget configuration updates the
	// subtree but never regenerates the identifier.
	e.SetWidget(newWidget)
	e.MarkNeedsBuild()
}

func (e *autoIDElement) Unmount() {
	e.BaseUnmount()
	if e.child != nil {
		e.child.Unmount()
		e.child = nil
	}
}

func (e *autoIDElement) RebuildIfNeeded() {
	if !e.BeginRebuild() {
		return
	}
	if e.activeTracker == nil {
		tracker := identity.NewTracker()
		tracker.Resume(e.crumb)
		e.activeTracker = tracker
		defer func() { e.activeTracker = nil }()
	}
	widget := e.Widget().(AutoID)
	e.child = core.UpdateChild(e.child, widget.Child, e, e.Owner())
}

func (e *autoIDElement) VisitChildren(visitor func(core.Element) bool) {
	if e.child != nil {
		visitor(e.child)
	}
}

// trackerRoot anchors the breadcrumb tracker for one traversal. The
// IdentifierScope inserts it above its child, so sibling attachers that have
// no enclosing attacher still share a ledger and get disambiguated.
type trackerRoot struct {
	Child core.Widget
}

func (trackerRoot) CreateElement() core.Element { return newTrackerRootElement() }

func (trackerRoot) Key() any { return nil }

type trackerRootElement struct {
	core.ElementBase
	child core.Element

	// tracker is non-nil only while the subtree is being mounted or rebuilt.
	tracker *identity.Tracker
}

func newTrackerRootElement() *trackerRootElement {
	element := &trackerRootElement{}
	element.SetSelf(element)
	return element
}

func (e *trackerRootElement) liveTracker() *identity.Tracker { return e.tracker }

func (e *trackerRootElement) resumePoint() []identity.PathSegment { return nil }

func (e *trackerRootElement) Mount(parent core.Element, slot any) {
	e.BaseMount(parent, slot)
	e.RebuildIfNeeded()
}

func (e *trackerRootElement) Update(newWidget core.Widget) {
	e.SetWidget(newWidget)
	e.MarkNeedsBuild()
}

func (e *trackerRootElement) Unmount() {
	e.BaseUnmount()
	if e.child != nil {
		e.child.Unmount()
		e.child = nil
	}
}

func (e *trackerRootElement) RebuildIfNeeded() {
	if !e.BeginRebuild() {
		return
	}
	if e.tracker == nil {
		e.tracker = identity.NewTracker()
		defer func() { e.tracker = nil }()
	}
	widget := e.Widget().(trackerRoot)
	e.child = core.UpdateChild(e.child, widget.Child, e, e.Owner())
}

func (e *trackerRootElement) VisitChildren(visitor func(core.Element) bool) {
	if e.child != nil {
		visitor(e.child)
	}
}
