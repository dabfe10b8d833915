package core

import (
	"reflect"
	"time"

	"github.com/go-drift/ident/pkg/errors"
)

// ElementBase carries the bookkeeping shared by all element types. Custom
// element implementations outside this package (such as the identifier
// attacher) embed it and call the Base* lifecycle helpers.
type ElementBase struct {
	widget     Widget
	parent     Element
	depth      int
	slot       any
	buildOwner *BuildOwner
	dirty      bool
	self       Element
	mounted    bool
}

// Widget returns the widget currently hosted by this element.
func (e *ElementBase) Widget() Widget {
	return e.widget
}

// Depth returns the element's depth from the root.
func (e *ElementBase) Depth() int {
	return e.depth
}

// MarkNeedsBuild schedules the element for rebuild.
func (e *ElementBase) MarkNeedsBuild() {
	if e.dirty {
		return
	}
	e.dirty = true
	if e.buildOwner != nil && e.self != nil {
		e.buildOwner.ScheduleBuild(e.self)
	}
}

// SetSelf records the outermost element value so scheduling and parent
// references see the concrete type rather than the embedded base.
func (e *ElementBase) SetSelf(self Element) {
	e.self = self
}

// SetWidget replaces the hosted widget configuration.
func (e *ElementBase) SetWidget(widget Widget) {
	e.widget = widget
}

// SetBuildOwner attaches the element to a build owner.
func (e *ElementBase) SetBuildOwner(owner *BuildOwner) {
	e.buildOwner = owner
}

// Owner returns the build owner the element is attached to.
func (e *ElementBase) Owner() *BuildOwner {
	return e.buildOwner
}

// BaseMount records parent, slot, and depth, and marks the element mounted
// and dirty. Element implementations call it at the top of Mount.
func (e *ElementBase) BaseMount(parent Element, slot any) {
	e.parent = parent
	e.slot = slot
	if parent != nil {
		e.depth = parent.Depth() + 1
	}
	e.mounted = true
	e.dirty = true
}

// BaseUnmount marks the element unmounted.
func (e *ElementBase) BaseUnmount() {
	e.mounted = false
}

// BeginRebuild reports whether a rebuild should proceed, clearing the dirty
// flag when it does.
func (e *ElementBase) BeginRebuild() bool {
	if !e.dirty || !e.mounted {
		return false
	}
	e.dirty = false
	return true
}

// Mounted reports whether the element is currently mounted.
func (e *ElementBase) Mounted() bool {
	return e.mounted
}

func (e *ElementBase) parentElement() Element {
	return e.parent
}

func (e *ElementBase) isMounted() bool {
	return e.mounted
}

// FindAncestor walks up the element tree and returns the first ancestor
// satisfying the predicate, or nil.
func (e *ElementBase) FindAncestor(predicate func(Element) bool) Element {
	current := e.parent
	for current != nil {
		if predicate(current) {
			return current
		}
		if base, ok := current.(interface{ parentElement() Element }); ok {
			current = base.parentElement()
		} else {
			break
		}
	}
	return nil
}

// DependOnInherited walks up the element tree to find the nearest inherited
// widget of the requested type, registering this element as a dependent.
func (e *ElementBase) DependOnInherited(inheritedType reflect.Type, aspect any) any {
	current := e.parent
	for current != nil {
		if inherited, ok := current.(*InheritedElement); ok {
			widgetType := reflect.TypeOf(inherited.widget)
			if widgetType == inheritedType || (widgetType.Kind() == reflect.Pointer && widgetType.Elem() == inheritedType) {
				inherited.AddDependent(e.self, aspect)
				return inherited.widget
			}
		}
		if base, ok := current.(interface{ parentElement() Element }); ok {
			current = base.parentElement()
		} else {
			break
		}
	}
	return nil
}

// SafeBuild executes a build function with panic recovery. If the build
// panics, the error is reported to the global handler and nil is returned so
// the subtree renders nothing instead of crashing the traversal.
func (e *ElementBase) SafeBuild(buildFn func() Widget) Widget {
	var built Widget
	var buildErr *errors.BuildError

	func() {
		defer func() {
			if r := recover(); r != nil {
				buildErr = &errors.BuildError{
					Widget:     reflect.TypeOf(e.widget).String(),
					Element:    reflect.TypeOf(e.self).String(),
					Recovered:  r,
					StackTrace: errors.CaptureStack(),
					Timestamp:  time.Now(),
				}
			}
		}()
		built = buildFn()
	}()

	if buildErr != nil {
		errors.ReportBuildError(buildErr)
		return nil
	}
	return built
}

// StatelessElement hosts a StatelessWidget.
type StatelessElement struct {
	ElementBase
	child Element
}

// NewStatelessElement creates a StatelessElement.
// The widget and build owner are set later by the framework during inflation.
func NewStatelessElement() *StatelessElement {
	element := &StatelessElement{}
	element.SetSelf(element)
	return element
}

func (e *StatelessElement) Mount(parent Element, slot any) {
	e.BaseMount(parent, slot)
	e.RebuildIfNeeded()
}

func (e *StatelessElement) Update(newWidget Widget) {
	e.widget = newWidget
	e.MarkNeedsBuild()
}

func (e *StatelessElement) Unmount() {
	e.BaseUnmount()
	if e.child != nil {
		e.child.Unmount()
		e.child = nil
	}
}

func (e *StatelessElement) RebuildIfNeeded() {
	if !e.BeginRebuild() {
		return
	}
	widget := e.widget.(StatelessWidget)
	built := e.SafeBuild(func() Widget {
		return widget.Build(e)
	})
	e.child = UpdateChild(e.child, built, e, e.buildOwner)
}

func (e *StatelessElement) VisitChildren(visitor func(Element) bool) {
	if e.child != nil {
		visitor(e.child)
	}
}

// StatefulElement hosts a StatefulWidget and its State.
type StatefulElement struct {
	ElementBase
	child Element
	state State
}

// NewStatefulElement creates a StatefulElement.
// The widget and build owner are set later by the framework during inflation.
func NewStatefulElement() *StatefulElement {
	element := &StatefulElement{}
	element.SetSelf(element)
	return element
}

// State returns the state object hosted by this element.
func (e *StatefulElement) State() State {
	return e.state
}

func (e *StatefulElement) Mount(parent Element, slot any) {
	e.BaseMount(parent, slot)
	widget := e.widget.(StatefulWidget)
	e.state = widget.CreateState()
	if setter, ok := e.state.(interface{ SetElement(*StatefulElement) }); ok {
		setter.SetElement(e)
	}
	e.state.InitState()
	e.RebuildIfNeeded()
}

func (e *StatefulElement) Update(newWidget Widget) {
	oldWidget := e.widget.(StatefulWidget)
	e.widget = newWidget
	e.state.DidUpdateWidget(oldWidget)
	e.MarkNeedsBuild()
}

func (e *StatefulElement) Unmount() {
	e.BaseUnmount()
	if e.child != nil {
		e.child.Unmount()
		e.child = nil
	}
	if e.state != nil {
		e.state.Dispose()
	}
}

func (e *StatefulElement) RebuildIfNeeded() {
	if !e.BeginRebuild() {
		return
	}
	built := e.SafeBuild(func() Widget {
		return e.state.Build(e)
	})
	e.child = UpdateChild(e.child, built, e, e.buildOwner)
}

func (e *StatefulElement) VisitChildren(visitor func(Element) bool) {
	if e.child != nil {
		visitor(e.child)
	}
}

// NodeElement hosts a concrete tree node that exposes children directly,
// without a build step. The hosted widget provides either ChildWidget() or
// ChildrenWidgets().
type NodeElement struct {
	ElementBase
	children []Element
}

// NewNodeElement creates a NodeElement.
// The widget and build owner are set later by the framework during inflation.
func NewNodeElement() *NodeElement {
	element := &NodeElement{}
	element.SetSelf(element)
	return element
}

func (e *NodeElement) Mount(parent Element, slot any) {
	e.BaseMount(parent, slot)
	e.RebuildIfNeeded()
}

func (e *NodeElement) Update(newWidget Widget) {
	e.widget = newWidget
	e.MarkNeedsBuild()
}

func (e *NodeElement) Unmount() {
	e.BaseUnmount()
	for _, child := range e.children {
		child.Unmount()
	}
	e.children = nil
}

func (e *NodeElement) RebuildIfNeeded() {
	if !e.BeginRebuild() {
		return
	}

	switch typed := e.widget.(type) {
	case interface{ ChildWidget() Widget }:
		childWidget := typed.ChildWidget()
		var child Element
		if len(e.children) > 0 {
			child = e.children[0]
		}
		child = UpdateChild(child, childWidget, e.self, e.buildOwner)
		if child != nil {
			e.children = []Element{child}
		} else {
			e.children = nil
		}

	case interface{ ChildrenWidgets() []Widget }:
		widgets := typed.ChildrenWidgets()
		updated := make([]Element, 0, len(widgets))
		for index, childWidget := range widgets {
			var existing Element
			if index < len(e.children) {
				existing = e.children[index]
			}
			child := UpdateChild(existing, childWidget, e.self, e.buildOwner)
			if child != nil {
				updated = append(updated, child)
			}
		}
		for i := len(widgets); i < len(e.children); i++ {
			e.children[i].Unmount()
		}
		e.children = updated
	}
}

func (e *NodeElement) VisitChildren(visitor func(Element) bool) {
	for _, child := range e.children {
		if !visitor(child) {
			return
		}
	}
}

// UpdateChild reconciles an existing child element against a new widget:
// unmounting, updating in place, or inflating a replacement as appropriate.
func UpdateChild(existing Element, widget Widget, parent Element, owner *BuildOwner) Element {
	if widget == nil {
		if existing != nil {
			existing.Unmount()
		}
		return nil
	}
	if existing != nil && canUpdateWidget(existing.Widget(), widget) {
		existing.Update(widget)
		existing.RebuildIfNeeded()
		return existing
	}
	if existing != nil {
		existing.Unmount()
	}
	element := InflateWidget(widget, owner)
	element.Mount(parent, nil)
	return element
}

func canUpdateWidget(existing Widget, next Widget) bool {
	if existing == nil || next == nil {
		return false
	}
	if reflect.TypeOf(existing) != reflect.TypeOf(next) {
		return false
	}
	return reflect.DeepEqual(existing.Key(), next.Key())
}

// InflateWidget creates and configures the element for a widget without
// mounting it.
func InflateWidget(widget Widget, owner *BuildOwner) Element {
	if widget == nil {
		return nil
	}
	element := widget.CreateElement()
	if setter, ok := element.(interface{ SetWidget(Widget) }); ok {
		setter.SetWidget(widget)
	}
	if setter, ok := element.(interface{ SetBuildOwner(*BuildOwner) }); ok {
		setter.SetBuildOwner(owner)
	}
	if setter, ok := element.(interface{ SetSelf(Element) }); ok {
		setter.SetSelf(element)
	}
	return element
}

// MountRoot inflates a widget and mounts it as the root of a new tree.
func MountRoot(widget Widget, owner *BuildOwner) Element {
	element := InflateWidget(widget, owner)
	if element == nil {
		return nil
	}
	element.Mount(nil, nil)
	return element
}
