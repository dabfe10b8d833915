package core

import "reflect"

// Widget is an immutable description of part of the tree.
// Widgets are lightweight configuration objects that can be created frequently
// without performance concerns.
type Widget interface {
	// CreateElement instantiates the element that will host this widget.
	CreateElement() Element
	// Key distinguishes widgets of the same type during updates.
	Key() any
}

// StatelessWidget describes a node purely in terms of its configuration.
type StatelessWidget interface {
	Widget
	// Build returns the child widget this widget expands to.
	Build(ctx BuildContext) Widget
}

// StatefulWidget describes a node whose element owns mutable state.
type StatefulWidget interface {
	Widget
	// CreateState creates the mutable state for this widget.
	CreateState() State
}

// State is the mutable companion of a StatefulWidget.
type State interface {
	// InitState is called once after the state is attached to its element.
	InitState()
	// Build returns the child widget for the current state.
	Build(ctx BuildContext) Widget
	// Dispose releases resources when the element unmounts.
	Dispose()
	// DidChangeDependencies is called when an inherited dependency changes.
	DidChangeDependencies()
	// DidUpdateWidget is called when the hosting element receives a new widget.
	DidUpdateWidget(oldWidget StatefulWidget)
}

// InheritedWidget propagates data down the tree. Descendants that read it via
// BuildContext.DependOnInherited are rebuilt when UpdateShouldNotify reports a
// relevant change.
type InheritedWidget interface {
	Widget
	// ChildWidget returns the subtree this widget wraps.
	ChildWidget() Widget
	// UpdateShouldNotify reports whether dependents must rebuild after an update.
	UpdateShouldNotify(old InheritedWidget) bool
}

// BuildContext is the view of an element handed to widget builds.
type BuildContext interface {
	// Widget returns the widget currently hosted by this element.
	Widget() Widget
	// FindAncestor walks up the tree and returns the first ancestor element
	// satisfying the predicate, or nil.
	FindAncestor(predicate func(Element) bool) Element
	// DependOnInherited registers a dependency on the nearest inherited widget
	// of the given type and returns it, or nil if none is found.
	DependOnInherited(inheritedType reflect.Type, aspect any) any
}

// Element is the instantiation of a Widget at a particular location in the
// tree. Elements manage the lifecycle and identity of widgets.
type Element interface {
	BuildContext
	// Mount attaches the element under parent at the given slot.
	Mount(parent Element, slot any)
	// Update replaces the hosted widget with a compatible new configuration.
	Update(newWidget Widget)
	// Unmount detaches the element and its subtree.
	Unmount()
	// RebuildIfNeeded rebuilds the subtree if the element is dirty.
	RebuildIfNeeded()
	// MarkNeedsBuild schedules the element for rebuild.
	MarkNeedsBuild()
	// VisitChildren calls visitor for each child until it returns false.
	VisitChildren(visitor func(Element) bool)
	// Depth returns the element's depth from the root.
	Depth() int
}
