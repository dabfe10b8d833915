package widgets

import "github.com/go-drift/ident/pkg/core"

// Text is a leaf widget displaying a string.
type Text struct {
	core.NodeBase
	Content string
}

// Container wraps a single child.
type Container struct {
	core.NodeBase
	Child core.Widget
}

// ChildWidget returns the wrapped child.
func (c Container) ChildWidget() core.Widget { return c.Child }

// Column lays out children vertically.
type Column struct {
	core.NodeBase
	Children []core.Widget
}

// ChildrenWidgets returns the column's children.
func (c Column) ChildrenWidgets() []core.Widget { return c.Children }

// Row lays out children horizontally.
type Row struct {
	core.NodeBase
	Children []core.Widget
}

// ChildrenWidgets returns the row's children.
func (r Row) ChildrenWidgets() []core.Widget { return r.Children }

// Button is a pressable widget. It wraps its label in an AutoID with
// RoleButton so every button receives an identifier without the caller
// spelling out the attachment.
type Button struct {
	core.StatelessBase
	Label     string
	ID        string
	OnPressed func()
}

func (b Button) Build(ctx core.BuildContext) core.Widget {
	return AutoID{
		Role:  RoleButton,
		Label: b.Label,
		ID:    b.ID,
		Child: Text{Content: b.Label},
	}
}

// Keyed wraps a child widget with a reconciliation key, letting updates match
// elements by identity rather than position.
type Keyed struct {
	core.NodeBase
	KeyValue any
	Child    core.Widget
}

// Key returns the reconciliation key.
func (k Keyed) Key() any { return k.KeyValue }

// ChildWidget returns the wrapped child.
func (k Keyed) ChildWidget() core.Widget { return k.Child }
