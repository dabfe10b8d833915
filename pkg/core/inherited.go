package core

// InheritedElement is the element that hosts an [InheritedWidget] and manages
// the dependency tracking for descendant widgets.
//
// When a descendant calls [BuildContext.DependOnInherited], it registers as a
// dependent of this element. When the InheritedWidget is updated and
// [InheritedWidget.UpdateShouldNotify] returns true, all registered dependents
// are notified and scheduled for rebuild.
type InheritedElement struct {
	ElementBase
	child      Element
	dependents map[Element]struct{}
}

// NewInheritedElement creates an InheritedElement.
// The widget and build owner are set later by the framework during inflation.
func NewInheritedElement() *InheritedElement {
	return &InheritedElement{
		dependents: make(map[Element]struct{}),
	}
}

func (e *InheritedElement) Mount(parent Element, slot any) {
	e.BaseMount(parent, slot)
	e.RebuildIfNeeded()
}

func (e *InheritedElement) Update(newWidget Widget) {
	oldWidget := e.widget.(InheritedWidget)
	e.widget = newWidget
	newInherited := newWidget.(InheritedWidget)

	// UpdateShouldNotify acts as the gate. If it returns false, no dependents
	// are notified.
	if newInherited.UpdateShouldNotify(oldWidget) {
		for dependent := range e.dependents {
			notifyDependent(dependent)
		}
	}
	e.MarkNeedsBuild()
}

func (e *InheritedElement) Unmount() {
	e.BaseUnmount()
	if e.child != nil {
		e.child.Unmount()
		e.child = nil
	}
	e.dependents = nil
}

func (e *InheritedElement) RebuildIfNeeded() {
	if !e.BeginRebuild() {
		return
	}
	inherited := e.widget.(InheritedWidget)
	e.child = UpdateChild(e.child, inherited.ChildWidget(), e, e.buildOwner)
}

func (e *InheritedElement) VisitChildren(visitor func(Element) bool) {
	if e.child != nil {
		visitor(e.child)
	}
}

// AddDependent registers an element as depending on this inherited widget.
func (e *InheritedElement) AddDependent(dependent Element, aspect any) {
	if dependent == nil {
		return
	}
	if e.dependents == nil {
		e.dependents = make(map[Element]struct{})
	}
	e.dependents[dependent] = struct{}{}
}

// RemoveDependent unregisters an element as depending on this inherited widget.
func (e *InheritedElement) RemoveDependent(dependent Element) {
	delete(e.dependents, dependent)
}

// notifyDependent triggers DidChangeDependencies on the dependent element.
func notifyDependent(element Element) {
	if stateful, ok := element.(*StatefulElement); ok {
		if stateful.state != nil {
			stateful.state.DidChangeDependencies()
		}
		stateful.MarkNeedsBuild()
		return
	}
	element.MarkNeedsBuild()
}
