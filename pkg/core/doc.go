// Package core provides the widget and element framework interfaces and lifecycle.
//
// This package defines the foundational types for describing a declarative
// view tree: Widget, Element, State, and BuildContext. Widgets are immutable,
// lightweight descriptions of tree nodes; Elements are their instantiations at
// particular locations in the tree and manage lifecycle and identity.
//
// The tree built here carries no layout or painting. It exists as the
// substrate the identifier system decorates: mounting a widget tree is the
// depth-first traversal during which accessibility identifiers are derived
// and bound (see the identity and widgets packages).
//
// # Stateless Widgets
//
// Embed StatelessBase and implement Build:
//
//	type Greeting struct {
//	    core.StatelessBase
//	    Name string
//	}
//
//	func (g Greeting) Build(ctx core.BuildContext) core.Widget {
//	    return widgets.Text{Content: "Hello, " + g.Name}
//	}
//
// # Stateful Widgets
//
// For widgets that need mutable state, embed StateBase in your state struct:
//
//	type counterState struct {
//	    core.StateBase
//	    count int
//	}
//
//	func (s *counterState) Build(ctx core.BuildContext) core.Widget {
//	    return widgets.Text{Content: fmt.Sprintf("Count: %d", s.count)}
//	}
//
// # Constructor Conventions
//
// Long-lived mutable objects (BuildOwner, trackers, configs) use NewX()
// constructors returning pointers. Immutable configuration objects (widgets)
// use struct literals.
package core
